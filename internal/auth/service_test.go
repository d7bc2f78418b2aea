package auth_test

import (
	"testing"
	"time"

	"github.com/declarafacil/fiscal-tracker/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

type mockUserRepo struct {
	usersByEmail map[string]*auth.User
	hashes       map[string]string
	lastLogin    map[int64]time.Time
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByEmail: make(map[string]*auth.User),
		hashes:       make(map[string]string),
		lastLogin:    make(map[int64]time.Time),
	}
}

func (m *mockUserRepo) addUser(u *auth.User, password string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	m.usersByEmail[u.Email] = u
	m.hashes[u.Email] = string(hash)
}

func (m *mockUserRepo) GetCredentialsByEmail(email string) (string, *auth.User, error) {
	u, ok := m.usersByEmail[email]
	if !ok {
		return "", nil, auth.ErrUserNotFound
	}
	return m.hashes[email], u, nil
}

func (m *mockUserRepo) GetUserByID(userID int64) (*auth.User, error) {
	for _, u := range m.usersByEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (m *mockUserRepo) UpdateLastLogin(userID int64, at time.Time) error {
	m.lastLogin[userID] = at
	return nil
}

var _ = Describe("Auth Service", func() {
	var (
		repo    *mockUserRepo
		service *auth.Service
	)

	BeforeEach(func() {
		repo = newMockUserRepo()
		repo.addUser(&auth.User{ID: 1, Name: "Ana", Email: "ana@mail.com", UserType: "admin"}, "s3cret-pass")

		tokenGen := auth.NewJWTTokenGenerator(
			"test-access-secret-0123456789-0123456789",
			"test-refresh-secret-0123456789-0123456789",
			time.Hour,
			7*24*time.Hour,
		)
		service = auth.NewService(repo, tokenGen)
	})

	Describe("Authenticate", func() {
		It("returns tokens and the user on valid credentials", func() {
			resp, err := service.Authenticate(auth.LoginDTO{Email: "ana@mail.com", Password: "s3cret-pass"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Tokens.AccessToken).NotTo(BeEmpty())
			Expect(resp.Tokens.RefreshToken).NotTo(BeEmpty())
			Expect(resp.User.Email).To(Equal("ana@mail.com"))
		})

		It("records the login timestamp", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "ana@mail.com", Password: "s3cret-pass"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastLogin).To(HaveKey(int64(1)))
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "ana@mail.com", Password: "wrong"})
			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})

		It("rejects an unknown email without leaking the reason", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "ghost@mail.com", Password: "s3cret-pass"})
			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})
	})

	Describe("token lifecycle", func() {
		It("validates a freshly issued access token", func() {
			resp, err := service.Authenticate(auth.LoginDTO{Email: "ana@mail.com", Password: "s3cret-pass"})
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(resp.Tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(int64(1)))
		})

		It("rejects a garbage token", func() {
			_, err := service.ValidateAccessToken("not.a.token")
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("issues a new pair from a refresh token", func() {
			resp, err := service.Authenticate(auth.LoginDTO{Email: "ana@mail.com", Password: "s3cret-pass"})
			Expect(err).NotTo(HaveOccurred())

			tokens, err := service.RefreshTokens(resp.Tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(int64(1)))
		})

		It("rejects an expired token", func() {
			// sign with a generator whose expiry already passed
			expiredGen := &auth.JWTTokenGenerator{
				AccessTokenSecret:  []byte("test-access-secret-0123456789-0123456789"),
				RefreshTokenSecret: []byte("test-refresh-secret-0123456789-0123456789"),
				AccessTokenTTL:     -time.Minute,
				RefreshTokenTTL:    -time.Minute,
			}
			token, err := expiredGen.GenerateAccessToken(1)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			Expect(err).To(MatchError(auth.ErrTokenExpired))
		})
	})

	Describe("User", func() {
		It("distinguishes admins from standard users", func() {
			admin := &auth.User{UserType: "admin"}
			standard := &auth.User{UserType: "standard"}
			Expect(admin.IsAdmin()).To(BeTrue())
			Expect(standard.IsAdmin()).To(BeFalse())
		})
	})
})

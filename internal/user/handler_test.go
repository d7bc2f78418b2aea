package user_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/declarafacil/fiscal-tracker/internal/auth"
	"github.com/declarafacil/fiscal-tracker/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("User Handler", func() {
	var (
		repo       *mockUserRepo
		handler    *user.Handler
		registered *user.User
	)

	asPrincipal := func(r *http.Request, u *user.User) *http.Request {
		principal := &auth.User{ID: u.ID, Name: u.Name, Email: u.Email, UserType: u.UserType}
		return r.WithContext(auth.ContextWithUser(r.Context(), principal))
	}

	BeforeEach(func() {
		repo = newMockUserRepo()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := user.NewService(repo, lg)
		handler = user.NewHandler(service)

		var err error
		registered, err = service.Register(user.RegisterUserDTO{
			Name:     "Bruno Silva",
			Email:    "bruno@mail.com",
			Password: "correct-horse",
		})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("PUT /users/me", func() {
		It("updates the authenticated user's own profile", func() {
			body := strings.NewReader(`{"name":"Bruno S."}`)
			req := asPrincipal(httptest.NewRequest(http.MethodPut, "/api/v1/users/me", body), registered)
			rec := httptest.NewRecorder()

			handler.UpdateCurrentUser(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var resp user.UserResponse
			Expect(json.NewDecoder(rec.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Name).To(Equal("Bruno S."))
			Expect(repo.users[registered.ID].Name).To(Equal("Bruno S."))
		})

		It("rejects an unauthenticated request", func() {
			req := httptest.NewRequest(http.MethodPut, "/api/v1/users/me", strings.NewReader(`{"name":"x"}`))
			rec := httptest.NewRecorder()

			handler.UpdateCurrentUser(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("DELETE /users/me", func() {
		It("deletes the authenticated user's own account", func() {
			req := asPrincipal(httptest.NewRequest(http.MethodDelete, "/api/v1/users/me", nil), registered)
			rec := httptest.NewRecorder()

			handler.DeleteCurrentUser(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(repo.users).To(BeEmpty())
		})

		It("rejects an unauthenticated request", func() {
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/me", nil)
			rec := httptest.NewRecorder()

			handler.DeleteCurrentUser(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(repo.users).To(HaveLen(1))
		})
	})
})

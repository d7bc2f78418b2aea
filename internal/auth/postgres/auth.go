package postgres

import (
	"time"

	"github.com/declarafacil/fiscal-tracker/internal/auth"
	"github.com/declarafacil/fiscal-tracker/internal/user"
	"gorm.io/gorm"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.UserRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetCredentialsByEmail(email string) (string, *auth.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, auth.ErrUserNotFound
		}
		return "", nil, err
	}

	return u.PasswordHash, &auth.User{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		UserType: u.UserType,
	}, nil
}

func (r *AuthRepository) GetUserByID(userID int64) (*auth.User, error) {
	var u user.User
	err := r.db.Where("id = ?", userID).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	return &auth.User{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		UserType: u.UserType,
	}, nil
}

func (r *AuthRepository) UpdateLastLogin(userID int64, at time.Time) error {
	return r.db.Model(&user.User{}).Where("id = ?", userID).Update("last_login", at).Error
}

package user

import (
	"errors"
	"time"
)

const (
	UserTypeStandard = "standard"
	UserTypeAdmin    = "admin"
)

// User is a registered account. PasswordHash never leaves the service layer.
type User struct {
	ID           int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string     `json:"name" gorm:"not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null"`
	UserType     string     `json:"user_type" gorm:"default:standard;not null"`
	RegisteredAt time.Time  `json:"registered_at" gorm:"autoCreateTime"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrForbidden      = errors.New("not allowed to manage this user")
)

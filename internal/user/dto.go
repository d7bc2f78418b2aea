package user

import (
	"errors"
	"net/mail"
	"time"
)

type UserResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	UserType     string     `json:"user_type"`
	RegisteredAt time.Time  `json:"registered_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

func toResponse(u *User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		UserType:     u.UserType,
		RegisteredAt: u.RegisteredAt,
		LastLogin:    u.LastLogin,
	}
}

type RegisterUserDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto RegisterUserDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if len(dto.Name) > 100 {
		return errors.New("name must be at most 100 characters")
	}
	if dto.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(dto.Email); err != nil {
		return errors.New("email is not valid")
	}
	if len(dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// UpdateUserDTO carries partial updates. UserType is honored only when the
// caller is an admin.
type UpdateUserDTO struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	UserType *string `json:"user_type,omitempty"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return errors.New("name cannot be empty")
	}
	if dto.Name != nil && len(*dto.Name) > 100 {
		return errors.New("name must be at most 100 characters")
	}
	if dto.Email != nil {
		if _, err := mail.ParseAddress(*dto.Email); err != nil {
			return errors.New("email is not valid")
		}
	}
	if dto.Password != nil && len(*dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if dto.UserType != nil && *dto.UserType != UserTypeStandard && *dto.UserType != UserTypeAdmin {
		return errors.New("user_type must be standard or admin")
	}
	return nil
}

package auth

import (
	"errors"
	"strings"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if dto.Email == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(dto.Email, "@") {
		return errors.New("email is invalid")
	}
	if dto.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto RefreshTokenDTO) Validate() error {
	if dto.RefreshToken == "" {
		return errors.New("refresh token is required")
	}
	return nil
}

// LoginResponse mirrors the login payload the dashboard expects: tokens
// plus a compact user block.
type LoginResponse struct {
	Message string     `json:"message"`
	Tokens  AuthTokens `json:"tokens"`
	User    *User      `json:"user"`
}

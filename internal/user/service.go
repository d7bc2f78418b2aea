package user

import (
	"log/slog"

	internal "github.com/declarafacil/fiscal-tracker/internal"
	"github.com/declarafacil/fiscal-tracker/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

type RepositoryAPI interface {
	GetAll() ([]*User, error)
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	Create(u *User) error
	Update(u *User) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Register creates a standard account. The admin flag can only be granted
// later through an admin update.
func (s *Service) Register(dto RegisterUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("failed to check existing email", "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(dto.Password, bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	u := &User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		UserType:     UserTypeStandard,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", u.ID, "email", u.Email)
	return u, nil
}

func (s *Service) GetAll() ([]*User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

// GetByID returns the account only to its owner or an admin.
func (s *Service) GetByID(id, actorID int64, actorIsAdmin bool) (*User, error) {
	if !actorIsAdmin && id != actorID {
		return nil, ErrForbidden
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) Update(id, actorID int64, actorIsAdmin bool, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	u, err := s.GetByID(id, actorID, actorIsAdmin)
	if err != nil {
		return nil, err
	}

	if dto.Email != nil && *dto.Email != u.Email {
		existing, err := s.repo.GetByEmail(*dto.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDuplicateEmail
		}
		u.Email = *dto.Email
	}
	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Password != nil {
		hash, err := auth.HashPassword(*dto.Password, bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if dto.UserType != nil {
		if !actorIsAdmin {
			return nil, ErrForbidden
		}
		u.UserType = *dto.UserType
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id, "actor_id", actorID)
	return u, nil
}

func (s *Service) Delete(id, actorID int64, actorIsAdmin bool) error {
	if _, err := s.GetByID(id, actorID, actorIsAdmin); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}

	s.logger.Info("user deleted", "user_id", id, "actor_id", actorID)
	return nil
}

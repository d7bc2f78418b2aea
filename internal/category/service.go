package category

import (
	"log/slog"

	internal "github.com/declarafacil/fiscal-tracker/internal"
)

type RepositoryAPI interface {
	GetAll() ([]*Category, error)
	GetByID(id int64) (*Category, error)
	GetByName(name string) (*Category, error)
	Create(category *Category) error
	Update(category *Category) error
	Delete(id int64) error
	IsReferenced(id int64) (bool, error)
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

func (s *Service) GetAllCategories() ([]CategoryResponse, error) {
	categories, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err)
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		responses = append(responses, cat.ToResponse())
	}

	return responses, nil
}

func (s *Service) GetCategoryByID(id int64) (*CategoryResponse, error) {
	cat, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "category_id", id)
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}
	resp := cat.ToResponse()
	return &resp, nil
}

func (s *Service) CreateCategory(dto CreateCategoryDTO) (*CategoryResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		s.logger.Error("failed to check category name", "error", err, "name", dto.Name)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateCategory
	}

	cat := &Category{
		Name:        dto.Name,
		Deductible:  *dto.Deductible,
		Description: dto.Description,
	}
	if err := s.repo.Create(cat); err != nil {
		s.logger.Error("failed to create category", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("category created", "category_id", cat.ID, "name", cat.Name, "deductible", cat.Deductible)
	resp := cat.ToResponse()
	return &resp, nil
}

func (s *Service) UpdateCategory(id int64, dto UpdateCategoryDTO) (*CategoryResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	cat, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}

	if dto.Name != nil && *dto.Name != cat.Name {
		existing, err := s.repo.GetByName(*dto.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDuplicateCategory
		}
		cat.Name = *dto.Name
	}
	if dto.Deductible != nil {
		cat.Deductible = *dto.Deductible
	}
	if dto.Description != nil {
		cat.Description = dto.Description
	}

	if err := s.repo.Update(cat); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, err
	}

	s.logger.Info("category updated", "category_id", id)
	resp := cat.ToResponse()
	return &resp, nil
}

// DeleteCategory refuses to remove a category that fiscal rules or expenses
// still reference.
func (s *Service) DeleteCategory(id int64) error {
	cat, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return ErrCategoryNotFound
	}

	referenced, err := s.repo.IsReferenced(id)
	if err != nil {
		s.logger.Error("failed to check category references", "error", err, "category_id", id)
		return err
	}
	if referenced {
		s.logger.Warn("delete blocked: category still referenced", "category_id", id, "name", cat.Name)
		return ErrCategoryInUse
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return err
	}

	s.logger.Info("category deleted", "category_id", id, "name", cat.Name)
	return nil
}

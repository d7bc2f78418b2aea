package category

import "errors"

type CategoryResponse struct {
	ID          int64   `json:"income_tax_category_id"`
	Name        string  `json:"name"`
	Deductible  bool    `json:"deductible"`
	Description *string `json:"description,omitempty"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type CreateCategoryDTO struct {
	Name        string  `json:"name"`
	Deductible  *bool   `json:"deductible"`
	Description *string `json:"description,omitempty"`
}

func (dto CreateCategoryDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if len(dto.Name) > 50 {
		return errors.New("name must be at most 50 characters")
	}
	if dto.Deductible == nil {
		return errors.New("deductible flag is required")
	}
	if dto.Description != nil && len(*dto.Description) > 255 {
		return errors.New("description must be at most 255 characters")
	}
	return nil
}

type UpdateCategoryDTO struct {
	Name        *string `json:"name,omitempty"`
	Deductible  *bool   `json:"deductible,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (dto UpdateCategoryDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return errors.New("name cannot be empty")
	}
	if dto.Name != nil && len(*dto.Name) > 50 {
		return errors.New("name must be at most 50 characters")
	}
	if dto.Description != nil && len(*dto.Description) > 255 {
		return errors.New("description must be at most 255 characters")
	}
	return nil
}

// Domain errors
var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrCategoryInUse     = errors.New("category is referenced by fiscal rules or expenses")
)

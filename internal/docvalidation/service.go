package docvalidation

import (
	"log/slog"

	internal "github.com/declarafacil/fiscal-tracker/internal"
)

type RepositoryAPI interface {
	GetAll() ([]*DocumentValidation, error)
	GetByExpenseID(expenseID int64) (*DocumentValidation, error)
	ExpenseExists(expenseID int64) (bool, error)
	Create(v *DocumentValidation) error
	Update(v *DocumentValidation) error
	DeleteByExpenseID(expenseID int64) error
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

func (s *Service) CreateValidation(dto UpsertValidationDTO) (*DocumentValidation, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	exists, err := s.repo.ExpenseExists(dto.ExpenseID)
	if err != nil {
		s.logger.Error("failed to check expense", "error", err, "expense_id", dto.ExpenseID)
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownExpense
	}

	existing, err := s.repo.GetByExpenseID(dto.ExpenseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateValidation
	}

	v := &DocumentValidation{
		ExpenseID:        dto.ExpenseID,
		DocumentType:     dto.DocumentType,
		DocumentNumber:   dto.DocumentNumber,
		ValidationStatus: dto.ValidationStatus,
		ValidationDate:   dto.ValidationDate,
	}
	if err := s.repo.Create(v); err != nil {
		s.logger.Error("failed to create document validation", "error", err, "expense_id", dto.ExpenseID)
		return nil, err
	}

	s.logger.Info("document validation created",
		"validation_id", v.ID,
		"expense_id", v.ExpenseID,
		"status", v.ValidationStatus)
	return v, nil
}

func (s *Service) UpdateValidation(dto UpsertValidationDTO) (*DocumentValidation, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	v, err := s.repo.GetByExpenseID(dto.ExpenseID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrValidationNotFound
	}

	v.DocumentType = dto.DocumentType
	v.DocumentNumber = dto.DocumentNumber
	v.ValidationStatus = dto.ValidationStatus
	v.ValidationDate = dto.ValidationDate

	if err := s.repo.Update(v); err != nil {
		s.logger.Error("failed to update document validation", "error", err, "expense_id", dto.ExpenseID)
		return nil, err
	}

	s.logger.Info("document validation updated", "validation_id", v.ID, "status", v.ValidationStatus)
	return v, nil
}

func (s *Service) GetAllValidations() ([]*DocumentValidation, error) {
	validations, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get document validations", "error", err)
		return nil, err
	}
	return validations, nil
}

func (s *Service) GetValidationByExpenseID(expenseID int64) (*DocumentValidation, error) {
	v, err := s.repo.GetByExpenseID(expenseID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrValidationNotFound
	}
	return v, nil
}

func (s *Service) DeleteValidation(expenseID int64) error {
	v, err := s.repo.GetByExpenseID(expenseID)
	if err != nil {
		return err
	}
	if v == nil {
		return ErrValidationNotFound
	}

	if err := s.repo.DeleteByExpenseID(expenseID); err != nil {
		s.logger.Error("failed to delete document validation", "error", err, "expense_id", expenseID)
		return err
	}

	s.logger.Info("document validation deleted", "expense_id", expenseID)
	return nil
}

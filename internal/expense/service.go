package expense

import (
	"log/slog"
	"time"

	internal "github.com/declarafacil/fiscal-tracker/internal"
)

type Repository interface {
	Create(exp *Expense) error
	GetByID(id int64) (*Expense, error)
	GetByUserID(userID int64, limit, offset int) ([]*Expense, error)
	GetByUserIDWithCategory(userID int64, deductibleOnly bool) ([]*ExpenseWithCategory, error)
	GetByUserAndDateRange(userID int64, from, to time.Time) ([]*Expense, error)
	CategoryExists(categoryID int64) (bool, error)
	Update(exp *Expense) error
	Delete(id int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateExpense(userID int64, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err, "user_id", userID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	exists, err := s.repo.CategoryExists(dto.CategoryID)
	if err != nil {
		s.logger.Error("failed to check category", "error", err, "category_id", dto.CategoryID)
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownCategory
	}

	exp := &Expense{
		UserID:          userID,
		CategoryID:      dto.CategoryID,
		ExpenseDate:     dto.ExpenseDate.Time,
		Amount:          dto.Amount,
		Description:     dto.Description,
		TransactionType: TransactionType(dto.TransactionType),
		FinancialSource: dto.FinancialSource,
		ValidatedForTax: dto.ValidatedForTax,
		InvoiceFilePath: dto.InvoiceFilePath,
	}

	if err := s.repo.Create(exp); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("expense created",
		"expense_id", exp.ID,
		"user_id", userID,
		"amount", exp.Amount.StringFixed(2),
		"transaction_type", exp.TransactionType)

	return exp, nil
}

// GetExpenseByID returns the expense only to its owner or an admin.
func (s *Service) GetExpenseByID(id, userID int64, isAdmin bool) (*Expense, error) {
	exp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, ErrExpenseNotFound
	}

	if !isAdmin && exp.UserID != userID {
		s.logger.Warn("unauthorized access to expense",
			"expense_id", id, "user_id", userID, "expense_user_id", exp.UserID)
		return nil, ErrUnauthorizedAccess
	}

	return exp, nil
}

func (s *Service) GetUserExpenses(userID int64, limit, offset int) ([]*Expense, error) {
	expenses, err := s.repo.GetByUserID(userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to get user expenses", "error", err, "user_id", userID)
		return nil, err
	}
	return expenses, nil
}

// GetUserExpensesWithCategory lists the user's movements joined to category
// name and deductibility, optionally restricted to deductible categories.
func (s *Service) GetUserExpensesWithCategory(userID int64, deductibleOnly bool) ([]*ExpenseWithCategory, error) {
	rows, err := s.repo.GetByUserIDWithCategory(userID, deductibleOnly)
	if err != nil {
		s.logger.Error("failed to get user expenses with category", "error", err, "user_id", userID)
		return nil, err
	}
	return rows, nil
}

func (s *Service) UpdateExpense(id, userID int64, isAdmin bool, dto UpdateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	exp, err := s.GetExpenseByID(id, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	if dto.CategoryID != nil {
		exists, err := s.repo.CategoryExists(*dto.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrUnknownCategory
		}
		exp.CategoryID = *dto.CategoryID
	}
	if dto.ExpenseDate != nil {
		exp.ExpenseDate = dto.ExpenseDate.Time
	}
	if dto.Amount != nil {
		exp.Amount = *dto.Amount
	}
	if dto.Description != nil {
		exp.Description = *dto.Description
	}
	if dto.TransactionType != nil {
		exp.TransactionType = TransactionType(*dto.TransactionType)
	}
	if dto.FinancialSource != nil {
		exp.FinancialSource = *dto.FinancialSource
	}
	if dto.ValidatedForTax != nil {
		exp.ValidatedForTax = *dto.ValidatedForTax
	}
	if dto.InvoiceFilePath != nil {
		exp.InvoiceFilePath = dto.InvoiceFilePath
	}

	if err := s.repo.Update(exp); err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, err
	}

	s.logger.Info("expense updated", "expense_id", id, "user_id", userID)
	return exp, nil
}

// DeleteExpense removes the expense; its document validation row cascades
// at the storage layer.
func (s *Service) DeleteExpense(id, userID int64, isAdmin bool) error {
	if _, err := s.GetExpenseByID(id, userID, isAdmin); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return err
	}

	s.logger.Info("expense deleted", "expense_id", id, "user_id", userID)
	return nil
}

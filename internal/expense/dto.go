package expense

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const defaultFinancialSource = "Desconhecida"

type CreateExpenseDTO struct {
	CategoryID      int64           `json:"income_tax_category_id"`
	ExpenseDate     DateOnly        `json:"expense_date"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionType string          `json:"transaction_type"`
	FinancialSource string          `json:"financial_source"`
	ValidatedForTax bool            `json:"validated_for_tax"`
	InvoiceFilePath *string         `json:"invoice_file_path,omitempty"`
}

// Validate checks the payload and normalizes the transaction direction.
// Direction tags outside the closed vocabulary are rejected here, before
// any row can reach the summary engine.
func (dto *CreateExpenseDTO) Validate() error {
	if dto.CategoryID <= 0 {
		return errors.New("category is required")
	}
	if dto.ExpenseDate.IsZero() {
		return errors.New("expense date is required")
	}
	if dto.Amount.IsNegative() {
		return errors.New("amount cannot be negative")
	}
	if dto.Amount.IsZero() {
		return errors.New("amount must be greater than 0")
	}
	if dto.Amount.Exponent() < -2 {
		return errors.New("amount must have at most 2 decimal places")
	}
	if dto.Description == "" {
		return errors.New("description is required")
	}
	if len(dto.Description) > 255 {
		return errors.New("description must be at most 255 characters")
	}

	normalized, err := ParseTransactionType(dto.TransactionType)
	if err != nil {
		return err
	}
	dto.TransactionType = string(normalized)

	if dto.FinancialSource == "" {
		dto.FinancialSource = defaultFinancialSource
	}
	return nil
}

type UpdateExpenseDTO struct {
	CategoryID      *int64           `json:"income_tax_category_id,omitempty"`
	ExpenseDate     *DateOnly        `json:"expense_date,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Description     *string          `json:"description,omitempty"`
	TransactionType *string          `json:"transaction_type,omitempty"`
	FinancialSource *string          `json:"financial_source,omitempty"`
	ValidatedForTax *bool            `json:"validated_for_tax,omitempty"`
	InvoiceFilePath *string          `json:"invoice_file_path,omitempty"`
}

func (dto *UpdateExpenseDTO) Validate() error {
	if dto.Amount != nil {
		if dto.Amount.IsNegative() || dto.Amount.IsZero() {
			return errors.New("amount must be greater than 0")
		}
		if dto.Amount.Exponent() < -2 {
			return errors.New("amount must have at most 2 decimal places")
		}
	}
	if dto.Description != nil && *dto.Description == "" {
		return errors.New("description cannot be empty")
	}
	if dto.TransactionType != nil {
		normalized, err := ParseTransactionType(*dto.TransactionType)
		if err != nil {
			return err
		}
		s := string(normalized)
		dto.TransactionType = &s
	}
	return nil
}

// ExpenseWithCategory is the listing row joined to its catalog entry.
type ExpenseWithCategory struct {
	ExpenseID       int64           `json:"expense_id"`
	ExpenseDate     DateOnly        `json:"expense_date"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionType TransactionType `json:"transaction_type"`
	FinancialSource string          `json:"financial_source"`
	CategoryName    string          `json:"category_name"`
	IsDeductible    bool            `json:"is_deductible"`
}

// DateOnly is a calendar date with no time-of-day, serialized as
// "2006-01-02".
type DateOnly struct {
	time.Time
}

const dateOnlyLayout = "2006-01-02"

func NewDateOnly(year int, month time.Month, day int) DateOnly {
	return DateOnly{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateOnlyLayout) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		return nil
	}
	t, err := time.Parse(`"`+dateOnlyLayout+`"`, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Domain errors
var (
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrUnauthorizedAccess = errors.New("unauthorized access to expense")
	ErrUnknownCategory    = errors.New("referenced category does not exist")
)

package docvalidation

import (
	"errors"
	"time"
)

// Document types accepted on invoices.
const (
	DocumentTypeCPF  = "CPF"
	DocumentTypeCNPJ = "CNPJ"
)

// Validation statuses.
const (
	StatusPending   = "Pending"
	StatusValidated = "Validated"
	StatusInvalid   = "Invalid"
)

// DocumentValidation records the fiscal-document check for one expense.
// One validation per expense; the row cascades when the expense goes.
type DocumentValidation struct {
	ID               int64      `json:"validation_id" gorm:"primaryKey"`
	ExpenseID        int64      `json:"expense_id" gorm:"uniqueIndex;not null"`
	DocumentType     string     `json:"document_type" gorm:"type:varchar(10);not null"`
	DocumentNumber   string     `json:"document_number" gorm:"type:varchar(20);not null"`
	ValidationStatus string     `json:"validation_status" gorm:"type:varchar(20);not null"`
	ValidationDate   *time.Time `json:"validation_date,omitempty"`
}

func (DocumentValidation) TableName() string {
	return "document_validations"
}

type UpsertValidationDTO struct {
	ExpenseID        int64      `json:"expense_id"`
	DocumentType     string     `json:"document_type"`
	DocumentNumber   string     `json:"document_number"`
	ValidationStatus string     `json:"validation_status"`
	ValidationDate   *time.Time `json:"validation_date,omitempty"`
}

func (dto UpsertValidationDTO) Validate() error {
	if dto.ExpenseID <= 0 {
		return errors.New("expense is required")
	}
	if dto.DocumentType != DocumentTypeCPF && dto.DocumentType != DocumentTypeCNPJ {
		return errors.New("document type must be CPF or CNPJ")
	}
	if dto.DocumentNumber == "" {
		return errors.New("document number is required")
	}
	switch dto.ValidationStatus {
	case StatusPending, StatusValidated, StatusInvalid:
	default:
		return errors.New("validation status must be Pending, Validated or Invalid")
	}
	return nil
}

// Domain errors
var (
	ErrValidationNotFound  = errors.New("document validation not found")
	ErrDuplicateValidation = errors.New("expense already has a document validation")
	ErrUnknownExpense      = errors.New("referenced expense does not exist")
)

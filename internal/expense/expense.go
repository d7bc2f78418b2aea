package expense

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the closed two-value direction of a movement. Amounts
// are stored as non-negative magnitudes; the direction lives here, never in
// the sign of the number.
type TransactionType string

const (
	// TransactionDebit marks outgoing funds. Only debits accumulate toward
	// deduction totals.
	TransactionDebit TransactionType = "debit"
	// TransactionCredit marks incoming funds.
	TransactionCredit TransactionType = "credit"
)

// ParseTransactionType normalizes the locale variants seen at the data-entry
// boundary ("debito", "Débito", "CREDIT", ...) to the closed enum. Unknown
// tags are rejected rather than guessed.
func ParseTransactionType(raw string) (TransactionType, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer("é", "e", "í", "i").Replace(s)

	switch s {
	case "debit", "debito":
		return TransactionDebit, nil
	case "credit", "credito":
		return TransactionCredit, nil
	default:
		return "", fmt.Errorf("unrecognized transaction type %q", raw)
	}
}

// IsOutgoing reports whether the direction counts toward deduction totals.
func (t TransactionType) IsOutgoing() bool {
	return t == TransactionDebit
}

// Expense is one movement in a user's ledger.
type Expense struct {
	ID              int64           `json:"expense_id" gorm:"primaryKey"`
	UserID          int64           `json:"user_id" gorm:"not null"`
	CategoryID      int64           `json:"income_tax_category_id" gorm:"column:income_tax_category_id;not null"`
	ExpenseDate     time.Time       `json:"expense_date" gorm:"type:date;not null"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Description     string          `json:"description" gorm:"not null"`
	TransactionType TransactionType `json:"transaction_type" gorm:"type:varchar(10);not null;default:debit"`
	FinancialSource string          `json:"financial_source" gorm:"type:varchar(100);not null;default:Desconhecida"`
	ValidatedForTax bool            `json:"validated_for_tax" gorm:"default:false"`
	InvoiceFilePath *string         `json:"invoice_file_path,omitempty"`
}

func (Expense) TableName() string {
	return "expenses"
}

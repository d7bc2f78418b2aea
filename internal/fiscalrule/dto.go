package fiscalrule

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type CreateFiscalRuleDTO struct {
	FiscalYear   int              `json:"fiscal_year"`
	CategoryID   int64            `json:"income_tax_category_id"`
	AnnualLimit  *decimal.Decimal `json:"annual_limit,omitempty"`
	MonthlyLimit *decimal.Decimal `json:"monthly_limit,omitempty"`
}

func (dto CreateFiscalRuleDTO) Validate() error {
	if dto.FiscalYear <= 0 {
		return errors.New("fiscal year must be positive")
	}
	if dto.CategoryID <= 0 {
		return errors.New("category is required")
	}
	if dto.AnnualLimit != nil && dto.AnnualLimit.IsNegative() {
		return errors.New("annual limit cannot be negative")
	}
	if dto.MonthlyLimit != nil && dto.MonthlyLimit.IsNegative() {
		return errors.New("monthly limit cannot be negative")
	}
	return nil
}

type UpdateFiscalRuleDTO struct {
	AnnualLimit  *decimal.Decimal `json:"annual_limit,omitempty"`
	MonthlyLimit *decimal.Decimal `json:"monthly_limit,omitempty"`
}

func (dto UpdateFiscalRuleDTO) Validate() error {
	if dto.AnnualLimit == nil && dto.MonthlyLimit == nil {
		return errors.New("at least one limit must be provided")
	}
	if dto.AnnualLimit != nil && dto.AnnualLimit.IsNegative() {
		return errors.New("annual limit cannot be negative")
	}
	if dto.MonthlyLimit != nil && dto.MonthlyLimit.IsNegative() {
		return errors.New("monthly limit cannot be negative")
	}
	return nil
}

// CategoryWithLimits joins one catalog entry to all of its declared rules,
// mirroring the dashboard's limits-per-category view.
type CategoryWithLimits struct {
	CategoryID   int64       `json:"income_tax_category_id"`
	Name         string      `json:"name"`
	Deductible   bool        `json:"deductible"`
	Description  *string     `json:"description,omitempty"`
	FiscalLimits []RuleEntry `json:"fiscal_limits"`
}

type RuleEntry struct {
	RuleID       int64            `json:"rule_id"`
	FiscalYear   int              `json:"fiscal_year"`
	AnnualLimit  *decimal.Decimal `json:"annual_limit"`
	MonthlyLimit *decimal.Decimal `json:"monthly_limit"`
	LastUpdated  time.Time        `json:"last_updated"`
}

// Domain errors
var (
	ErrRuleNotFound    = errors.New("fiscal rule not found")
	ErrDuplicateRule   = errors.New("a rule already exists for this category and fiscal year")
	ErrUnknownCategory = errors.New("referenced category does not exist")
)

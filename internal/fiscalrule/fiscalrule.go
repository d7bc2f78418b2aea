package fiscalrule

import (
	"time"

	"github.com/shopspring/decimal"
)

// FiscalRule declares the deduction ceilings for one category in one fiscal
// year. At most one rule may exist per (fiscal_year, category) pair; the
// database enforces it with a unique index and the service re-checks on
// creation.
type FiscalRule struct {
	ID           int64            `json:"rule_id" gorm:"primaryKey"`
	FiscalYear   int              `json:"fiscal_year" gorm:"not null;uniqueIndex:idx_rule_year_category"`
	CategoryID   int64            `json:"income_tax_category_id" gorm:"column:income_tax_category_id;not null;uniqueIndex:idx_rule_year_category"`
	AnnualLimit  *decimal.Decimal `json:"annual_limit" gorm:"type:decimal(10,2)"`
	MonthlyLimit *decimal.Decimal `json:"monthly_limit" gorm:"type:decimal(10,2)"`
	LastUpdated  time.Time        `json:"last_updated" gorm:"not null"`
}

func (FiscalRule) TableName() string {
	return "fiscal_rules"
}

// Touch stamps the rule as updated now.
func (r *FiscalRule) Touch() {
	r.LastUpdated = time.Now()
}

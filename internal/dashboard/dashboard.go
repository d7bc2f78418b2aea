package dashboard

import (
	"time"

	"github.com/declarafacil/fiscal-tracker/internal/expense"
	"github.com/shopspring/decimal"
)

// Summary is the dashboard payload: headline KPIs, the latest movements and
// the latest fiscal-rule changes.
type Summary struct {
	KPIs              KPIs               `json:"kpis"`
	RecentExpenses    []RecentExpense    `json:"recent_expenses"`
	RecentRuleUpdates []RecentRuleUpdate `json:"recent_fiscal_updates"`
}

type KPIs struct {
	CreditSum     decimal.Decimal `json:"credit_sum"`
	DebitSum      decimal.Decimal `json:"debit_sum"`
	Last30DaysSum decimal.Decimal `json:"last_30_days_sum"`
	Next30DaysSum decimal.Decimal `json:"next_30_days_sum"`
}

type RecentExpense struct {
	ExpenseID       int64                   `json:"expense_id"`
	Description     string                  `json:"description"`
	Amount          decimal.Decimal         `json:"amount"`
	ExpenseDate     time.Time               `json:"expense_date"`
	TransactionType expense.TransactionType `json:"transaction_type"`
	CategoryName    string                  `json:"category_name"`
	IsDeductible    bool                    `json:"is_deductible"`
}

type RecentRuleUpdate struct {
	RuleID       int64            `json:"rule_id"`
	CategoryName string           `json:"category_name"`
	FiscalYear   int              `json:"fiscal_year"`
	AnnualLimit  *decimal.Decimal `json:"annual_limit"`
	MonthlyLimit *decimal.Decimal `json:"monthly_limit"`
	LastUpdated  time.Time        `json:"last_updated"`
}

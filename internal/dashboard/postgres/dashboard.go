package postgres

import (
	"time"

	"github.com/declarafacil/fiscal-tracker/internal/dashboard"
	"github.com/declarafacil/fiscal-tracker/internal/expense"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) dashboard.RepositoryAPI {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) SumByTransactionType(userID int64, txType expense.TransactionType) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.Model(&expense.Expense{}).
		Select("SUM(amount)").
		Where("user_id = ? AND transaction_type = ?", userID, txType).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *DashboardRepository) SumByDateRange(userID int64, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.Model(&expense.Expense{}).
		Select("SUM(amount)").
		Where("user_id = ? AND expense_date >= ? AND expense_date <= ?", userID, from, to).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *DashboardRepository) RecentExpenses(userID int64, limit int) ([]dashboard.RecentExpense, error) {
	var rows []dashboard.RecentExpense
	err := r.db.Table("expenses").
		Select(`expenses.id AS expense_id,
			expenses.description,
			expenses.amount,
			expenses.expense_date,
			expenses.transaction_type,
			income_tax_categories.name AS category_name,
			income_tax_categories.deductible AS is_deductible`).
		Joins("JOIN income_tax_categories ON income_tax_categories.id = expenses.income_tax_category_id").
		Where("expenses.user_id = ?", userID).
		Order("expenses.expense_date DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *DashboardRepository) RecentRuleUpdates(limit int) ([]dashboard.RecentRuleUpdate, error) {
	var rows []dashboard.RecentRuleUpdate
	err := r.db.Table("fiscal_rules").
		Select(`fiscal_rules.id AS rule_id,
			income_tax_categories.name AS category_name,
			fiscal_rules.fiscal_year,
			fiscal_rules.annual_limit,
			fiscal_rules.monthly_limit,
			fiscal_rules.last_updated`).
		Joins("JOIN income_tax_categories ON income_tax_categories.id = fiscal_rules.income_tax_category_id").
		Order("fiscal_rules.last_updated DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

package postgres

import (
	"time"

	"github.com/declarafacil/fiscal-tracker/internal/category"
	"github.com/declarafacil/fiscal-tracker/internal/expense"
	"gorm.io/gorm"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.Repository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(exp *expense.Expense) error {
	return r.db.Create(exp).Error
}

func (r *ExpenseRepository) GetByID(id int64) (*expense.Expense, error) {
	var exp expense.Expense
	err := r.db.Where("id = ?", id).First(&exp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &exp, nil
}

func (r *ExpenseRepository) GetByUserID(userID int64, limit, offset int) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.Where("user_id = ?", userID).
		Order("expense_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) GetByUserIDWithCategory(userID int64, deductibleOnly bool) ([]*expense.ExpenseWithCategory, error) {
	query := r.db.Table("expenses").
		Select(`expenses.id AS expense_id,
			expenses.expense_date,
			expenses.amount,
			expenses.description,
			expenses.transaction_type,
			expenses.financial_source,
			income_tax_categories.name AS category_name,
			income_tax_categories.deductible AS is_deductible`).
		Joins("JOIN income_tax_categories ON income_tax_categories.id = expenses.income_tax_category_id").
		Where("expenses.user_id = ?", userID).
		Order("expenses.expense_date DESC")

	if deductibleOnly {
		query = query.Where("income_tax_categories.deductible = ?", true)
	}

	var rows []*expense.ExpenseWithCategory
	err := query.Scan(&rows).Error
	return rows, err
}

// GetByUserAndDateRange returns the user's movements with expense_date in
// [from, to] inclusive. The summary engine consumes this slice.
func (r *ExpenseRepository) GetByUserAndDateRange(userID int64, from, to time.Time) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.
		Where("user_id = ? AND expense_date >= ? AND expense_date <= ?", userID, from, to).
		Order("expense_date ASC").
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) CategoryExists(categoryID int64) (bool, error) {
	var count int64
	err := r.db.Model(&category.Category{}).Where("id = ?", categoryID).Count(&count).Error
	return count > 0, err
}

func (r *ExpenseRepository) Update(exp *expense.Expense) error {
	return r.db.Save(exp).Error
}

// Delete removes the expense and its document validation in one
// transaction; the schema also declares the cascade.
func (r *ExpenseRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM document_validations WHERE expense_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&expense.Expense{}, id).Error
	})
}

package postgres

import (
	"github.com/declarafacil/fiscal-tracker/internal/docvalidation"
	"github.com/declarafacil/fiscal-tracker/internal/expense"
	"gorm.io/gorm"
)

type ValidationRepository struct {
	db *gorm.DB
}

func NewValidationRepository(db *gorm.DB) docvalidation.RepositoryAPI {
	return &ValidationRepository{db: db}
}

func (r *ValidationRepository) GetAll() ([]*docvalidation.DocumentValidation, error) {
	var validations []*docvalidation.DocumentValidation
	err := r.db.Order("id ASC").Find(&validations).Error
	return validations, err
}

func (r *ValidationRepository) GetByExpenseID(expenseID int64) (*docvalidation.DocumentValidation, error) {
	var v docvalidation.DocumentValidation
	err := r.db.Where("expense_id = ?", expenseID).First(&v).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *ValidationRepository) ExpenseExists(expenseID int64) (bool, error) {
	var count int64
	err := r.db.Model(&expense.Expense{}).Where("id = ?", expenseID).Count(&count).Error
	return count > 0, err
}

func (r *ValidationRepository) Create(v *docvalidation.DocumentValidation) error {
	return r.db.Create(v).Error
}

func (r *ValidationRepository) Update(v *docvalidation.DocumentValidation) error {
	return r.db.Save(v).Error
}

func (r *ValidationRepository) DeleteByExpenseID(expenseID int64) error {
	return r.db.Where("expense_id = ?", expenseID).Delete(&docvalidation.DocumentValidation{}).Error
}

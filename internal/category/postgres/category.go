package postgres

import (
	"github.com/declarafacil/fiscal-tracker/internal/category"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetAll() ([]*category.Category, error) {
	var categories []*category.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByID(id int64) (*category.Category, error) {
	var cat category.Category
	err := r.db.Where("id = ?", id).First(&cat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) GetByName(name string) (*category.Category, error) {
	var cat category.Category
	err := r.db.Where("name = ?", name).First(&cat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(cat *category.Category) error {
	return r.db.Create(cat).Error
}

func (r *CategoryRepository) Update(cat *category.Category) error {
	return r.db.Save(cat).Error
}

func (r *CategoryRepository) Delete(id int64) error {
	return r.db.Delete(&category.Category{}, id).Error
}

// IsReferenced reports whether any fiscal rule or expense points at the
// category. Deletes are blocked while this holds.
func (r *CategoryRepository) IsReferenced(id int64) (bool, error) {
	var count int64
	if err := r.db.Table("fiscal_rules").Where("income_tax_category_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.db.Table("expenses").Where("income_tax_category_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

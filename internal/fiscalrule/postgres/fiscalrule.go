package postgres

import (
	"github.com/declarafacil/fiscal-tracker/internal/category"
	"github.com/declarafacil/fiscal-tracker/internal/fiscalrule"
	"gorm.io/gorm"
)

type FiscalRuleRepository struct {
	db *gorm.DB
}

func NewFiscalRuleRepository(db *gorm.DB) fiscalrule.RepositoryAPI {
	return &FiscalRuleRepository{db: db}
}

func (r *FiscalRuleRepository) GetAll() ([]*fiscalrule.FiscalRule, error) {
	var rules []*fiscalrule.FiscalRule
	err := r.db.Order("fiscal_year DESC, income_tax_category_id ASC").Find(&rules).Error
	return rules, err
}

func (r *FiscalRuleRepository) GetByID(id int64) (*fiscalrule.FiscalRule, error) {
	var rule fiscalrule.FiscalRule
	err := r.db.Where("id = ?", id).First(&rule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// GetByYear returns every rule declared for the fiscal year, lowest id
// first so ambiguous pairs resolve deterministically downstream.
func (r *FiscalRuleRepository) GetByYear(fiscalYear int) ([]*fiscalrule.FiscalRule, error) {
	var rules []*fiscalrule.FiscalRule
	err := r.db.Where("fiscal_year = ?", fiscalYear).Order("id ASC").Find(&rules).Error
	return rules, err
}

func (r *FiscalRuleRepository) GetByYearAndCategory(fiscalYear int, categoryID int64) (*fiscalrule.FiscalRule, error) {
	var rule fiscalrule.FiscalRule
	err := r.db.
		Where("fiscal_year = ? AND income_tax_category_id = ?", fiscalYear, categoryID).
		Order("id ASC").
		First(&rule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *FiscalRuleRepository) CategoryExists(categoryID int64) (bool, error) {
	var count int64
	err := r.db.Model(&category.Category{}).Where("id = ?", categoryID).Count(&count).Error
	return count > 0, err
}

func (r *FiscalRuleRepository) GetCategoriesWithLimits() ([]fiscalrule.CategoryWithLimits, error) {
	var categories []*category.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	var rules []*fiscalrule.FiscalRule
	if err := r.db.Order("fiscal_year DESC").Find(&rules).Error; err != nil {
		return nil, err
	}

	rulesByCategory := make(map[int64][]fiscalrule.RuleEntry)
	for _, rule := range rules {
		rulesByCategory[rule.CategoryID] = append(rulesByCategory[rule.CategoryID], fiscalrule.RuleEntry{
			RuleID:       rule.ID,
			FiscalYear:   rule.FiscalYear,
			AnnualLimit:  rule.AnnualLimit,
			MonthlyLimit: rule.MonthlyLimit,
			LastUpdated:  rule.LastUpdated,
		})
	}

	result := make([]fiscalrule.CategoryWithLimits, 0, len(categories))
	for _, cat := range categories {
		entries := rulesByCategory[cat.ID]
		if entries == nil {
			entries = []fiscalrule.RuleEntry{}
		}
		result = append(result, fiscalrule.CategoryWithLimits{
			CategoryID:   cat.ID,
			Name:         cat.Name,
			Deductible:   cat.Deductible,
			Description:  cat.Description,
			FiscalLimits: entries,
		})
	}

	return result, nil
}

func (r *FiscalRuleRepository) Create(rule *fiscalrule.FiscalRule) error {
	return r.db.Create(rule).Error
}

func (r *FiscalRuleRepository) Update(rule *fiscalrule.FiscalRule) error {
	return r.db.Save(rule).Error
}

func (r *FiscalRuleRepository) Delete(id int64) error {
	return r.db.Delete(&fiscalrule.FiscalRule{}, id).Error
}

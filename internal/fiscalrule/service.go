package fiscalrule

import (
	"log/slog"

	internal "github.com/declarafacil/fiscal-tracker/internal"
)

type RepositoryAPI interface {
	GetAll() ([]*FiscalRule, error)
	GetByID(id int64) (*FiscalRule, error)
	GetByYear(fiscalYear int) ([]*FiscalRule, error)
	GetByYearAndCategory(fiscalYear int, categoryID int64) (*FiscalRule, error)
	GetCategoriesWithLimits() ([]CategoryWithLimits, error)
	CategoryExists(categoryID int64) (bool, error)
	Create(rule *FiscalRule) error
	Update(rule *FiscalRule) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateRule enforces the one-rule-per-year-per-category invariant before
// inserting; the unique index backs it up against races.
func (s *Service) CreateRule(dto CreateFiscalRuleDTO) (*FiscalRule, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	exists, err := s.repo.CategoryExists(dto.CategoryID)
	if err != nil {
		s.logger.Error("failed to check category", "error", err, "category_id", dto.CategoryID)
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownCategory
	}

	existing, err := s.repo.GetByYearAndCategory(dto.FiscalYear, dto.CategoryID)
	if err != nil {
		s.logger.Error("failed to check existing rule", "error", err,
			"fiscal_year", dto.FiscalYear, "category_id", dto.CategoryID)
		return nil, err
	}
	if existing != nil {
		s.logger.Warn("duplicate rule rejected",
			"fiscal_year", dto.FiscalYear,
			"category_id", dto.CategoryID,
			"existing_rule_id", existing.ID)
		return nil, ErrDuplicateRule
	}

	rule := &FiscalRule{
		FiscalYear:   dto.FiscalYear,
		CategoryID:   dto.CategoryID,
		AnnualLimit:  dto.AnnualLimit,
		MonthlyLimit: dto.MonthlyLimit,
	}
	rule.Touch()

	if err := s.repo.Create(rule); err != nil {
		s.logger.Error("failed to create fiscal rule", "error", err,
			"fiscal_year", dto.FiscalYear, "category_id", dto.CategoryID)
		return nil, err
	}

	s.logger.Info("fiscal rule created",
		"rule_id", rule.ID,
		"fiscal_year", rule.FiscalYear,
		"category_id", rule.CategoryID)
	return rule, nil
}

// UpdateRule changes limits in place; rules are never versioned.
func (s *Service) UpdateRule(id int64, dto UpdateFiscalRuleDTO) (*FiscalRule, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	rule, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}

	if dto.AnnualLimit != nil {
		rule.AnnualLimit = dto.AnnualLimit
	}
	if dto.MonthlyLimit != nil {
		rule.MonthlyLimit = dto.MonthlyLimit
	}
	rule.Touch()

	if err := s.repo.Update(rule); err != nil {
		s.logger.Error("failed to update fiscal rule", "error", err, "rule_id", id)
		return nil, err
	}

	s.logger.Info("fiscal rule updated", "rule_id", id)
	return rule, nil
}

func (s *Service) GetAllRules() ([]*FiscalRule, error) {
	rules, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get fiscal rules", "error", err)
		return nil, err
	}
	return rules, nil
}

func (s *Service) GetRuleByID(id int64) (*FiscalRule, error) {
	rule, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}
	return rule, nil
}

func (s *Service) DeleteRule(id int64) error {
	rule, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if rule == nil {
		return ErrRuleNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete fiscal rule", "error", err, "rule_id", id)
		return err
	}

	s.logger.Info("fiscal rule deleted", "rule_id", id, "fiscal_year", rule.FiscalYear)
	return nil
}

func (s *Service) GetCategoriesWithLimits() ([]CategoryWithLimits, error) {
	result, err := s.repo.GetCategoriesWithLimits()
	if err != nil {
		s.logger.Error("failed to get categories with limits", "error", err)
		return nil, err
	}
	return result, nil
}

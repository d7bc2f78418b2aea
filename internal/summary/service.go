package summary

import (
	"log/slog"
	"time"

	"github.com/declarafacil/fiscal-tracker/internal/category"
	"github.com/declarafacil/fiscal-tracker/internal/expense"
	"github.com/declarafacil/fiscal-tracker/internal/fiscalrule"
)

// The engine's three read-only collaborators. The persistence layer owns
// consistency; the service only assembles a snapshot and hands it over.
type CategorySource interface {
	GetAll() ([]*category.Category, error)
}

type RuleSource interface {
	GetByYear(fiscalYear int) ([]*fiscalrule.FiscalRule, error)
}

type ExpenseSource interface {
	GetByUserAndDateRange(userID int64, from, to time.Time) ([]*expense.Expense, error)
}

type Service struct {
	categories CategorySource
	rules      RuleSource
	expenses   ExpenseSource
	logger     *slog.Logger
}

func NewService(categories CategorySource, rules RuleSource, expenses ExpenseSource, logger *slog.Logger) *Service {
	return &Service{
		categories: categories,
		rules:      rules,
		expenses:   expenses,
		logger:     logger,
	}
}

// Summarize fetches the catalog, the year's rules and the user's ledger
// slice, then invokes the engine. fiscalYear 0 selects the current calendar
// year.
func (s *Service) Summarize(userID int64, fiscalYear int) (*DeductionReport, error) {
	if fiscalYear == 0 {
		fiscalYear = time.Now().Year()
	}
	if fiscalYear < 0 {
		return nil, &InvalidInputError{Reason: "fiscal year must be positive"}
	}

	categories, err := s.categories.GetAll()
	if err != nil {
		s.logger.Error("failed to load category catalog", "error", err)
		return nil, err
	}

	rules, err := s.rules.GetByYear(fiscalYear)
	if err != nil {
		s.logger.Error("failed to load fiscal rules", "error", err, "fiscal_year", fiscalYear)
		return nil, err
	}

	from := time.Date(fiscalYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(fiscalYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	expenses, err := s.expenses.GetByUserAndDateRange(userID, from, to)
	if err != nil {
		s.logger.Error("failed to load expenses", "error", err, "user_id", userID, "fiscal_year", fiscalYear)
		return nil, err
	}

	input := buildInput(userID, fiscalYear, categories, rules, expenses)

	report, ambiguities, err := Summarize(input)
	if err != nil {
		return nil, err
	}

	// Ambiguous rules indicate a data-integrity problem upstream; the
	// engine already resolved them deterministically.
	for _, amb := range ambiguities {
		s.logger.Warn("multiple fiscal rules for category in year",
			"category_id", amb.CategoryID,
			"fiscal_year", fiscalYear,
			"rule_ids", amb.RuleIDs)
	}

	s.logger.Info("deduction summary computed",
		"user_id", userID,
		"fiscal_year", fiscalYear,
		"categories", len(report.Categories),
		"non_deductible_total", report.NonDeductibleTotal.StringFixed(2))

	return report, nil
}

func buildInput(
	userID int64,
	fiscalYear int,
	categories []*category.Category,
	rules []*fiscalrule.FiscalRule,
	expenses []*expense.Expense,
) Input {
	rulesByCategory := make(map[int64][]RuleInput, len(rules))
	for _, rule := range rules {
		rulesByCategory[rule.CategoryID] = append(rulesByCategory[rule.CategoryID], RuleInput{
			RuleID:       rule.ID,
			AnnualLimit:  rule.AnnualLimit,
			MonthlyLimit: rule.MonthlyLimit,
			LastUpdated:  rule.LastUpdated,
		})
	}

	categoryInputs := make([]CategoryInput, 0, len(categories))
	for _, cat := range categories {
		categoryInputs = append(categoryInputs, CategoryInput{
			ID:          cat.ID,
			Name:        cat.Name,
			Deductible:  cat.Deductible,
			Description: cat.Description,
			Rules:       rulesByCategory[cat.ID],
		})
	}

	expenseInputs := make([]ExpenseInput, 0, len(expenses))
	for _, exp := range expenses {
		expenseInputs = append(expenseInputs, ExpenseInput{
			CategoryID:      exp.CategoryID,
			Amount:          exp.Amount,
			TransactionType: exp.TransactionType,
			ExpenseDate:     exp.ExpenseDate,
		})
	}

	return Input{
		UserID:     userID,
		FiscalYear: fiscalYear,
		Categories: categoryInputs,
		Expenses:   expenseInputs,
	}
}

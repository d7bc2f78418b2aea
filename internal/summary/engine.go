// Package summary implements the fiscal deduction summary engine: for one
// user and one fiscal year it joins expenses against deduction categories
// and annual ceilings and produces a per-category remaining-allowance
// report.
//
// The engine is a pure function of its inputs. It performs no I/O, holds no
// state and is safe to call concurrently for different users.
package summary

import (
	"fmt"
	"time"

	"github.com/declarafacil/fiscal-tracker/internal/expense"
	"github.com/shopspring/decimal"
)

// Monetary fields go over the wire as JSON numbers, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Input is the read-only snapshot the engine computes from. Categories
// carry zero or more rules for the target year; Expenses belong to one user
// and are expected to fall inside the year's date range (the engine filters
// again so out-of-range rows can never leak into totals).
type Input struct {
	UserID     int64
	FiscalYear int // 0 means the current calendar year
	Categories []CategoryInput
	Expenses   []ExpenseInput
}

type CategoryInput struct {
	ID          int64
	Name        string
	Deductible  bool
	Description *string
	Rules       []RuleInput
}

type RuleInput struct {
	RuleID       int64
	AnnualLimit  *decimal.Decimal
	MonthlyLimit *decimal.Decimal
	LastUpdated  time.Time
}

type ExpenseInput struct {
	CategoryID      int64
	Amount          decimal.Decimal
	TransactionType expense.TransactionType
	ExpenseDate     time.Time
}

// CategorySummary is one report row. AnnualLimit stays null when no rule
// (or a rule without a ceiling) exists for the year, so clients can tell
// "no rule configured" apart from "rule with a zero ceiling".
type CategorySummary struct {
	CategoryID      int64            `json:"categoria_id"`
	Name            string           `json:"categoria"`
	Description     *string          `json:"descricao"`
	Deductible      string           `json:"dedutivel"`
	AnnualLimit     *decimal.Decimal `json:"teto_anual"`
	TotalSpent      decimal.Decimal  `json:"total_gasto"`
	Remaining       decimal.Decimal  `json:"restante"`
	RuleLastUpdated *time.Time       `json:"regra_atualizada_em,omitempty"`
}

// DeductionReport is the engine output. Ephemeral: recomputed on every
// request, never persisted.
type DeductionReport struct {
	FiscalYear         int               `json:"fiscal_year"`
	Categories         []CategorySummary `json:"resumo_por_categoria"`
	NonDeductibleTotal decimal.Decimal   `json:"total_gastos_nao_dedutiveis"`
}

// Ambiguity reports a data-integrity problem: more than one rule matched a
// (fiscal_year, category) pair. The engine resolves it deterministically by
// taking the lowest rule id; callers should log the condition.
type Ambiguity struct {
	CategoryID int64
	RuleIDs    []int64
}

// InvalidInputError rejects the whole computation so a caller can tell
// "zero deductible spend" apart from "bad input".
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid summary input: " + e.Reason
}

// Summarize computes the deduction report. It never panics on well-formed
// input and mutates nothing; calling it twice with the same input yields
// the same output.
func Summarize(input Input) (*DeductionReport, []Ambiguity, error) {
	year := input.FiscalYear
	if year == 0 {
		year = time.Now().Year()
	}
	if year < 0 {
		return nil, nil, &InvalidInputError{Reason: fmt.Sprintf("fiscal year %d is not positive", year)}
	}

	for _, exp := range input.Expenses {
		if exp.Amount.IsNegative() {
			return nil, nil, &InvalidInputError{
				Reason: fmt.Sprintf("expense in category %d has negative amount %s", exp.CategoryID, exp.Amount),
			}
		}
		if exp.TransactionType != expense.TransactionDebit && exp.TransactionType != expense.TransactionCredit {
			return nil, nil, &InvalidInputError{
				Reason: fmt.Sprintf("expense in category %d has unrecognized transaction type %q", exp.CategoryID, exp.TransactionType),
			}
		}
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	// Outgoing totals per category, restricted to the fiscal year. Only the
	// debit direction accumulates; credits never reduce or raise a total.
	spentByCategory := make(map[int64]decimal.Decimal, len(input.Categories))
	for _, exp := range input.Expenses {
		day := exp.ExpenseDate.Truncate(24 * time.Hour)
		if day.Before(yearStart) || day.After(yearEnd) {
			continue
		}
		if !exp.TransactionType.IsOutgoing() {
			continue
		}
		spentByCategory[exp.CategoryID] = spentByCategory[exp.CategoryID].Add(exp.Amount)
	}

	var ambiguities []Ambiguity
	rows := make([]CategorySummary, 0, len(input.Categories))
	nonDeductibleTotal := decimal.Zero

	for _, cat := range input.Categories {
		total := spentByCategory[cat.ID]

		if !cat.Deductible {
			nonDeductibleTotal = nonDeductibleTotal.Add(total)
			continue
		}

		rule, ambiguity := selectRule(cat)
		if ambiguity != nil {
			ambiguities = append(ambiguities, *ambiguity)
		}

		var annualLimit *decimal.Decimal
		var lastUpdated *time.Time
		ceiling := decimal.Zero
		if rule != nil {
			lu := rule.LastUpdated
			lastUpdated = &lu
			if rule.AnnualLimit != nil {
				annualLimit = rule.AnnualLimit
				ceiling = *rule.AnnualLimit
			}
		}

		remaining := ceiling.Sub(total)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		rows = append(rows, CategorySummary{
			CategoryID:      cat.ID,
			Name:            cat.Name,
			Description:     cat.Description,
			Deductible:      "Sim",
			AnnualLimit:     annualLimit,
			TotalSpent:      total,
			Remaining:       remaining,
			RuleLastUpdated: lastUpdated,
		})
	}

	return &DeductionReport{
		FiscalYear:         year,
		Categories:         rows,
		NonDeductibleTotal: nonDeductibleTotal,
	}, ambiguities, nil
}

// selectRule picks the category's rule for the year. When the uniqueness
// invariant is violated upstream the lowest rule id wins; the engine has no
// authority to repair the data, so it just reports the ambiguity.
func selectRule(cat CategoryInput) (*RuleInput, *Ambiguity) {
	if len(cat.Rules) == 0 {
		return nil, nil
	}
	if len(cat.Rules) == 1 {
		return &cat.Rules[0], nil
	}

	selected := &cat.Rules[0]
	ids := make([]int64, 0, len(cat.Rules))
	for i := range cat.Rules {
		ids = append(ids, cat.Rules[i].RuleID)
		if cat.Rules[i].RuleID < selected.RuleID {
			selected = &cat.Rules[i]
		}
	}
	return selected, &Ambiguity{CategoryID: cat.ID, RuleIDs: ids}
}

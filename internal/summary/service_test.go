package summary_test

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/declarafacil/fiscal-tracker/internal/category"
	"github.com/declarafacil/fiscal-tracker/internal/expense"
	"github.com/declarafacil/fiscal-tracker/internal/fiscalrule"
	"github.com/declarafacil/fiscal-tracker/internal/summary"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type mockCategorySource struct {
	categories []*category.Category
	err        error
}

func (m *mockCategorySource) GetAll() ([]*category.Category, error) {
	return m.categories, m.err
}

type mockRuleSource struct {
	rules     []*fiscalrule.FiscalRule
	err       error
	askedYear int
}

func (m *mockRuleSource) GetByYear(fiscalYear int) ([]*fiscalrule.FiscalRule, error) {
	m.askedYear = fiscalYear
	return m.rules, m.err
}

type mockExpenseSource struct {
	expenses []*expense.Expense
	err      error
	from, to time.Time
}

func (m *mockExpenseSource) GetByUserAndDateRange(userID int64, from, to time.Time) ([]*expense.Expense, error) {
	m.from, m.to = from, to
	return m.expenses, m.err
}

var _ = Describe("Summary Service", func() {
	var (
		categories *mockCategorySource
		rules      *mockRuleSource
		expenses   *mockExpenseSource
		service    *summary.Service
	)

	BeforeEach(func() {
		desc := "Despesas médicas"
		categories = &mockCategorySource{categories: []*category.Category{
			{ID: 1, Name: "Saúde", Deductible: true, Description: &desc},
			{ID: 2, Name: "Lazer", Deductible: false},
		}}
		rules = &mockRuleSource{rules: []*fiscalrule.FiscalRule{
			{ID: 10, FiscalYear: 2024, CategoryID: 1, AnnualLimit: decPtr("5000.00"), LastUpdated: time.Now()},
		}}
		expenses = &mockExpenseSource{expenses: []*expense.Expense{
			{ID: 1, UserID: 7, CategoryID: 1, Amount: dec("1200.50"), TransactionType: expense.TransactionDebit, ExpenseDate: day(2024, time.April, 2)},
			{ID: 2, UserID: 7, CategoryID: 2, Amount: dec("340.00"), TransactionType: expense.TransactionDebit, ExpenseDate: day(2024, time.July, 4)},
		}}

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = summary.NewService(categories, rules, expenses, lg)
	})

	It("assembles the snapshot and returns the engine report", func() {
		report, err := service.Summarize(7, 2024)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.FiscalYear).To(Equal(2024))
		Expect(report.Categories).To(HaveLen(1))
		Expect(report.Categories[0].TotalSpent.StringFixed(2)).To(Equal("1200.50"))
		Expect(report.Categories[0].Remaining.StringFixed(2)).To(Equal("3799.50"))
		Expect(report.NonDeductibleTotal.StringFixed(2)).To(Equal("340.00"))
	})

	It("queries rules and expenses for the requested year", func() {
		_, err := service.Summarize(7, 2024)
		Expect(err).NotTo(HaveOccurred())
		Expect(rules.askedYear).To(Equal(2024))
		Expect(expenses.from).To(Equal(day(2024, time.January, 1)))
		Expect(expenses.to).To(Equal(day(2024, time.December, 31)))
	})

	It("defaults a zero year to the current calendar year", func() {
		_, err := service.Summarize(7, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(rules.askedYear).To(Equal(time.Now().Year()))
	})

	It("rejects negative years before touching the repositories", func() {
		_, err := service.Summarize(7, -3)
		Expect(err).To(HaveOccurred())
		var invalid *summary.InvalidInputError
		Expect(errors.As(err, &invalid)).To(BeTrue())
		Expect(rules.askedYear).To(BeZero())
	})

	It("propagates repository failures", func() {
		rules.err = errors.New("connection reset")
		_, err := service.Summarize(7, 2024)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("connection reset"))
	})

	It("still reports when duplicate rules exist for a category", func() {
		rules.rules = append(rules.rules, &fiscalrule.FiscalRule{
			ID: 22, FiscalYear: 2024, CategoryID: 1, AnnualLimit: decPtr("9000.00"), LastUpdated: time.Now(),
		})

		report, err := service.Summarize(7, 2024)
		Expect(err).NotTo(HaveOccurred())
		// lowest rule id wins
		Expect(report.Categories[0].AnnualLimit.String()).To(Equal("5000"))
	})
})

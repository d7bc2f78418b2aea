package postgres_test

import (
	"testing"
	"time"

	"github.com/declarafacil/fiscal-tracker/internal/category"
	"github.com/declarafacil/fiscal-tracker/internal/docvalidation"
	"github.com/declarafacil/fiscal-tracker/internal/expense"
	expensePostgres "github.com/declarafacil/fiscal-tracker/internal/expense/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestExpensePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Expense Postgres Suite")
}

var _ = Describe("Expense PostgreSQL Repository", func() {
	var (
		db      *gorm.DB
		repo    expense.Repository
		saudeID int64
	)

	newExpense := func(userID int64, day time.Time, amount string) *expense.Expense {
		return &expense.Expense{
			UserID:          userID,
			CategoryID:      saudeID,
			ExpenseDate:     day,
			Amount:          decimal.RequireFromString(amount),
			Description:     "Consulta",
			TransactionType: expense.TransactionDebit,
			FinancialSource: "Nubank",
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&category.Category{}, &expense.Expense{}, &docvalidation.DocumentValidation{})
		Expect(err).NotTo(HaveOccurred())

		saude := &category.Category{Name: "Saúde", Deductible: true}
		Expect(db.Create(saude).Error).To(Succeed())
		saudeID = saude.ID

		repo = expensePostgres.NewExpenseRepository(db)
	})

	Describe("Create and GetByID", func() {
		It("round-trips an expense", func() {
			exp := newExpense(1, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), "250.00")
			Expect(repo.Create(exp)).To(Succeed())
			Expect(exp.ID).To(BeNumerically(">", 0))

			got, err := repo.GetByID(exp.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Amount.Equal(decimal.RequireFromString("250.00"))).To(BeTrue())
			Expect(got.TransactionType).To(Equal(expense.TransactionDebit))
		})

		It("misses cleanly", func() {
			got, err := repo.GetByID(9999)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())
		})
	})

	Describe("GetByUserID", func() {
		It("pages the user's expenses newest first", func() {
			for i, day := range []time.Time{
				time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
				time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
				time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			} {
				exp := newExpense(1, day, "100.00")
				exp.Description = []string{"janeiro", "fevereiro", "março"}[i]
				Expect(repo.Create(exp)).To(Succeed())
			}
			Expect(repo.Create(newExpense(2, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "50.00"))).To(Succeed())

			page, err := repo.GetByUserID(1, 2, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(page).To(HaveLen(2))
			Expect(page[0].Description).To(Equal("março"))
			Expect(page[1].Description).To(Equal("fevereiro"))

			page, err = repo.GetByUserID(1, 2, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(page).To(HaveLen(1))
			Expect(page[0].Description).To(Equal("janeiro"))
		})
	})

	Describe("GetByUserAndDateRange", func() {
		It("includes both boundary days and excludes neighbors", func() {
			from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

			Expect(repo.Create(newExpense(1, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "10.00"))).To(Succeed())
			Expect(repo.Create(newExpense(1, from, "20.00"))).To(Succeed())
			Expect(repo.Create(newExpense(1, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), "30.00"))).To(Succeed())
			Expect(repo.Create(newExpense(1, to, "40.00"))).To(Succeed())
			Expect(repo.Create(newExpense(1, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "50.00"))).To(Succeed())
			Expect(repo.Create(newExpense(2, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), "60.00"))).To(Succeed())

			expenses, err := repo.GetByUserAndDateRange(1, from, to)
			Expect(err).NotTo(HaveOccurred())
			Expect(expenses).To(HaveLen(3))
			Expect(expenses[0].Amount.Equal(decimal.RequireFromString("20.00"))).To(BeTrue())
			Expect(expenses[2].Amount.Equal(decimal.RequireFromString("40.00"))).To(BeTrue())
		})
	})

	Describe("GetByUserIDWithCategory", func() {
		It("joins category names and can filter to deductible rows", func() {
			lazer := &category.Category{Name: "Lazer", Deductible: false}
			Expect(db.Create(lazer).Error).To(Succeed())

			Expect(repo.Create(newExpense(1, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), "300.00"))).To(Succeed())

			cinema := newExpense(1, time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), "45.00")
			cinema.CategoryID = lazer.ID
			cinema.Description = "Cinema"
			Expect(repo.Create(cinema)).To(Succeed())

			all, err := repo.GetByUserIDWithCategory(1, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))

			deductible, err := repo.GetByUserIDWithCategory(1, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(deductible).To(HaveLen(1))
			Expect(deductible[0].CategoryName).To(Equal("Saúde"))
			Expect(deductible[0].IsDeductible).To(BeTrue())
		})
	})

	Describe("CategoryExists", func() {
		It("distinguishes known and unknown categories", func() {
			exists, err := repo.CategoryExists(saudeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = repo.CategoryExists(9999)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("Update", func() {
		It("persists changed fields", func() {
			exp := newExpense(1, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), "250.00")
			Expect(repo.Create(exp)).To(Succeed())

			exp.Amount = decimal.RequireFromString("275.50")
			exp.FinancialSource = "Itaú"
			Expect(repo.Update(exp)).To(Succeed())

			got, err := repo.GetByID(exp.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Amount.Equal(decimal.RequireFromString("275.50"))).To(BeTrue())
			Expect(got.FinancialSource).To(Equal("Itaú"))
		})
	})

	Describe("Delete", func() {
		It("removes the expense together with its document validation", func() {
			exp := newExpense(1, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), "250.00")
			Expect(repo.Create(exp)).To(Succeed())

			Expect(db.Create(&docvalidation.DocumentValidation{
				ExpenseID:        exp.ID,
				DocumentType:     docvalidation.DocumentTypeCNPJ,
				DocumentNumber:   "12.345.678/0001-90",
				ValidationStatus: docvalidation.StatusPending,
			}).Error).To(Succeed())

			Expect(repo.Delete(exp.ID)).To(Succeed())

			got, err := repo.GetByID(exp.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNil())

			var count int64
			Expect(db.Model(&docvalidation.DocumentValidation{}).Where("expense_id = ?", exp.ID).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})
	})
})

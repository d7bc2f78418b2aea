package expense_test

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/declarafacil/fiscal-tracker/internal/expense"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

type mockExpenseRepo struct {
	expenses   map[int64]*expense.Expense
	nextID     int64
	categories map[int64]bool
	failErr    error
	deleted    []int64
}

func newMockExpenseRepo() *mockExpenseRepo {
	return &mockExpenseRepo{
		expenses:   make(map[int64]*expense.Expense),
		nextID:     1,
		categories: map[int64]bool{1: true, 2: true},
	}
}

func (m *mockExpenseRepo) Create(exp *expense.Expense) error {
	if m.failErr != nil {
		return m.failErr
	}
	exp.ID = m.nextID
	m.nextID++
	m.expenses[exp.ID] = exp
	return nil
}

func (m *mockExpenseRepo) GetByID(id int64) (*expense.Expense, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	return m.expenses[id], nil
}

func (m *mockExpenseRepo) GetByUserID(userID int64, limit, offset int) ([]*expense.Expense, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	var out []*expense.Expense
	for _, exp := range m.expenses {
		if exp.UserID == userID {
			out = append(out, exp)
		}
	}
	return out, nil
}

func (m *mockExpenseRepo) GetByUserIDWithCategory(userID int64, deductibleOnly bool) ([]*expense.ExpenseWithCategory, error) {
	return nil, m.failErr
}

func (m *mockExpenseRepo) GetByUserAndDateRange(userID int64, from, to time.Time) ([]*expense.Expense, error) {
	return nil, m.failErr
}

func (m *mockExpenseRepo) CategoryExists(categoryID int64) (bool, error) {
	if m.failErr != nil {
		return false, m.failErr
	}
	return m.categories[categoryID], nil
}

func (m *mockExpenseRepo) Update(exp *expense.Expense) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.expenses[exp.ID] = exp
	return nil
}

func (m *mockExpenseRepo) Delete(id int64) error {
	if m.failErr != nil {
		return m.failErr
	}
	delete(m.expenses, id)
	m.deleted = append(m.deleted, id)
	return nil
}

var _ = Describe("Expense Service", func() {
	var (
		repo    *mockExpenseRepo
		service *expense.Service
	)

	newCreateDTO := func() expense.CreateExpenseDTO {
		return expense.CreateExpenseDTO{
			CategoryID:      1,
			ExpenseDate:     expense.NewDateOnly(2024, time.May, 10),
			Amount:          decimal.RequireFromString("88.00"),
			Description:     "farmácia",
			TransactionType: "débito",
		}
	}

	BeforeEach(func() {
		repo = newMockExpenseRepo()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = expense.NewService(repo, lg)
	})

	Describe("CreateExpense", func() {
		It("stores the expense with the normalized direction", func() {
			exp, err := service.CreateExpense(7, newCreateDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(exp.ID).To(BeNumerically(">", 0))
			Expect(exp.UserID).To(Equal(int64(7)))
			Expect(exp.TransactionType).To(Equal(expense.TransactionDebit))
			Expect(exp.FinancialSource).To(Equal("Desconhecida"))
		})

		It("rejects an unknown category", func() {
			dto := newCreateDTO()
			dto.CategoryID = 99
			_, err := service.CreateExpense(7, dto)
			Expect(err).To(MatchError(expense.ErrUnknownCategory))
		})

		It("rejects invalid payloads before hitting the repository", func() {
			dto := newCreateDTO()
			dto.Amount = decimal.Zero
			_, err := service.CreateExpense(7, dto)
			Expect(err).To(HaveOccurred())
			Expect(repo.expenses).To(BeEmpty())
		})
	})

	Describe("GetExpenseByID", func() {
		var created *expense.Expense

		BeforeEach(func() {
			var err error
			created, err = service.CreateExpense(7, newCreateDTO())
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns the expense to its owner", func() {
			exp, err := service.GetExpenseByID(created.ID, 7, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(exp.ID).To(Equal(created.ID))
		})

		It("refuses another user", func() {
			_, err := service.GetExpenseByID(created.ID, 8, false)
			Expect(err).To(MatchError(expense.ErrUnauthorizedAccess))
		})

		It("allows an admin", func() {
			exp, err := service.GetExpenseByID(created.ID, 8, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(exp.ID).To(Equal(created.ID))
		})

		It("reports missing expenses", func() {
			_, err := service.GetExpenseByID(999, 7, false)
			Expect(err).To(MatchError(expense.ErrExpenseNotFound))
		})
	})

	Describe("UpdateExpense", func() {
		var created *expense.Expense

		BeforeEach(func() {
			var err error
			created, err = service.CreateExpense(7, newCreateDTO())
			Expect(err).NotTo(HaveOccurred())
		})

		It("applies partial updates", func() {
			amount := decimal.RequireFromString("120.00")
			tx := "crédito"
			updated, err := service.UpdateExpense(created.ID, 7, false, expense.UpdateExpenseDTO{
				Amount:          &amount,
				TransactionType: &tx,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Amount.StringFixed(2)).To(Equal("120.00"))
			Expect(updated.TransactionType).To(Equal(expense.TransactionCredit))
			Expect(updated.Description).To(Equal("farmácia"))
		})

		It("validates the new category", func() {
			badCat := int64(99)
			_, err := service.UpdateExpense(created.ID, 7, false, expense.UpdateExpenseDTO{CategoryID: &badCat})
			Expect(err).To(MatchError(expense.ErrUnknownCategory))
		})

		It("refuses a non-owner", func() {
			desc := "alterado"
			_, err := service.UpdateExpense(created.ID, 8, false, expense.UpdateExpenseDTO{Description: &desc})
			Expect(err).To(MatchError(expense.ErrUnauthorizedAccess))
		})
	})

	Describe("DeleteExpense", func() {
		It("removes the owner's expense", func() {
			created, err := service.CreateExpense(7, newCreateDTO())
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteExpense(created.ID, 7, false)).To(Succeed())
			Expect(repo.deleted).To(ConsistOf(created.ID))
		})

		It("refuses a non-owner and keeps the row", func() {
			created, err := service.CreateExpense(7, newCreateDTO())
			Expect(err).NotTo(HaveOccurred())

			err = service.DeleteExpense(created.ID, 8, false)
			Expect(err).To(MatchError(expense.ErrUnauthorizedAccess))
			Expect(repo.expenses).To(HaveKey(created.ID))
		})

		It("propagates repository failures", func() {
			created, err := service.CreateExpense(7, newCreateDTO())
			Expect(err).NotTo(HaveOccurred())

			repo.failErr = errors.New("disk full")
			err = service.DeleteExpense(created.ID, 7, false)
			Expect(err).To(HaveOccurred())
		})
	})
})

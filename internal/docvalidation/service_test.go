package docvalidation_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/declarafacil/fiscal-tracker/internal/docvalidation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDocValidationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Document Validation Service Suite")
}

type mockValidationRepo struct {
	byExpense map[int64]*docvalidation.DocumentValidation
	expenses  map[int64]bool
	nextID    int64
	failErr   error
}

func newMockValidationRepo() *mockValidationRepo {
	return &mockValidationRepo{
		byExpense: make(map[int64]*docvalidation.DocumentValidation),
		expenses:  make(map[int64]bool),
		nextID:    1,
	}
}

func (m *mockValidationRepo) GetAll() ([]*docvalidation.DocumentValidation, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	var out []*docvalidation.DocumentValidation
	for _, v := range m.byExpense {
		out = append(out, v)
	}
	return out, nil
}

func (m *mockValidationRepo) GetByExpenseID(expenseID int64) (*docvalidation.DocumentValidation, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	return m.byExpense[expenseID], nil
}

func (m *mockValidationRepo) ExpenseExists(expenseID int64) (bool, error) {
	if m.failErr != nil {
		return false, m.failErr
	}
	return m.expenses[expenseID], nil
}

func (m *mockValidationRepo) Create(v *docvalidation.DocumentValidation) error {
	if m.failErr != nil {
		return m.failErr
	}
	v.ID = m.nextID
	m.nextID++
	m.byExpense[v.ExpenseID] = v
	return nil
}

func (m *mockValidationRepo) Update(v *docvalidation.DocumentValidation) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.byExpense[v.ExpenseID] = v
	return nil
}

func (m *mockValidationRepo) DeleteByExpenseID(expenseID int64) error {
	if m.failErr != nil {
		return m.failErr
	}
	delete(m.byExpense, expenseID)
	return nil
}

var _ = Describe("Document Validation Service", func() {
	var (
		repo    *mockValidationRepo
		service *docvalidation.Service
	)

	validDTO := func() docvalidation.UpsertValidationDTO {
		return docvalidation.UpsertValidationDTO{
			ExpenseID:        10,
			DocumentType:     docvalidation.DocumentTypeCNPJ,
			DocumentNumber:   "12.345.678/0001-90",
			ValidationStatus: docvalidation.StatusPending,
		}
	}

	BeforeEach(func() {
		repo = newMockValidationRepo()
		repo.expenses[10] = true
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = docvalidation.NewService(repo, lg)
	})

	Describe("CreateValidation", func() {
		It("records a pending check against an existing expense", func() {
			v, err := service.CreateValidation(validDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(v.ID).To(BeNumerically(">", 0))
			Expect(v.ExpenseID).To(Equal(int64(10)))
			Expect(v.ValidationStatus).To(Equal(docvalidation.StatusPending))
		})

		It("refuses an expense that does not exist", func() {
			dto := validDTO()
			dto.ExpenseID = 999
			_, err := service.CreateValidation(dto)
			Expect(err).To(MatchError(docvalidation.ErrUnknownExpense))
		})

		It("allows at most one validation per expense", func() {
			_, err := service.CreateValidation(validDTO())
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateValidation(validDTO())
			Expect(err).To(MatchError(docvalidation.ErrDuplicateValidation))
		})

		It("rejects unknown document types and statuses before touching the repo", func() {
			dto := validDTO()
			dto.DocumentType = "RG"
			_, err := service.CreateValidation(dto)
			Expect(err).To(HaveOccurred())

			dto = validDTO()
			dto.ValidationStatus = "Maybe"
			_, err = service.CreateValidation(dto)
			Expect(err).To(HaveOccurred())
			Expect(repo.byExpense).To(BeEmpty())
		})
	})

	Describe("UpdateValidation", func() {
		It("moves a pending check to validated with a timestamp", func() {
			_, err := service.CreateValidation(validDTO())
			Expect(err).NotTo(HaveOccurred())

			when := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
			dto := validDTO()
			dto.ValidationStatus = docvalidation.StatusValidated
			dto.ValidationDate = &when

			v, err := service.UpdateValidation(dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(v.ValidationStatus).To(Equal(docvalidation.StatusValidated))
			Expect(v.ValidationDate).To(HaveValue(Equal(when)))
		})

		It("fails when no validation exists for the expense", func() {
			_, err := service.UpdateValidation(validDTO())
			Expect(err).To(MatchError(docvalidation.ErrValidationNotFound))
		})
	})

	Describe("GetValidationByExpenseID", func() {
		It("returns the stored validation", func() {
			created, err := service.CreateValidation(validDTO())
			Expect(err).NotTo(HaveOccurred())

			v, err := service.GetValidationByExpenseID(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(v.ID).To(Equal(created.ID))
		})

		It("reports a miss", func() {
			_, err := service.GetValidationByExpenseID(42)
			Expect(err).To(MatchError(docvalidation.ErrValidationNotFound))
		})
	})

	Describe("DeleteValidation", func() {
		It("removes the validation for the expense", func() {
			_, err := service.CreateValidation(validDTO())
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteValidation(10)).To(Succeed())
			Expect(repo.byExpense).To(BeEmpty())
		})

		It("fails when there is nothing to delete", func() {
			err := service.DeleteValidation(10)
			Expect(err).To(MatchError(docvalidation.ErrValidationNotFound))
		})
	})

	Describe("GetAllValidations", func() {
		It("propagates repository failures", func() {
			repo.failErr = errors.New("connection reset")
			_, err := service.GetAllValidations()
			Expect(err).To(MatchError("connection reset"))
		})
	})
})

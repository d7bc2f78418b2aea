package category_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/declarafacil/fiscal-tracker/internal/category"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

type mockCategoryRepo struct {
	categories map[int64]*category.Category
	nextID     int64
	referenced map[int64]bool
	failErr    error
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{
		categories: make(map[int64]*category.Category),
		nextID:     1,
		referenced: make(map[int64]bool),
	}
}

func (m *mockCategoryRepo) GetAll() ([]*category.Category, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	var out []*category.Category
	for _, cat := range m.categories {
		out = append(out, cat)
	}
	return out, nil
}

func (m *mockCategoryRepo) GetByID(id int64) (*category.Category, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	return m.categories[id], nil
}

func (m *mockCategoryRepo) GetByName(name string) (*category.Category, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	for _, cat := range m.categories {
		if cat.Name == name {
			return cat, nil
		}
	}
	return nil, nil
}

func (m *mockCategoryRepo) Create(cat *category.Category) error {
	if m.failErr != nil {
		return m.failErr
	}
	cat.ID = m.nextID
	m.nextID++
	m.categories[cat.ID] = cat
	return nil
}

func (m *mockCategoryRepo) Update(cat *category.Category) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.categories[cat.ID] = cat
	return nil
}

func (m *mockCategoryRepo) Delete(id int64) error {
	if m.failErr != nil {
		return m.failErr
	}
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepo) IsReferenced(id int64) (bool, error) {
	if m.failErr != nil {
		return false, m.failErr
	}
	return m.referenced[id], nil
}

var _ = Describe("Category Service", func() {
	var (
		repo    *mockCategoryRepo
		service *category.Service
	)

	deductible := true

	BeforeEach(func() {
		repo = newMockCategoryRepo()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(repo, lg)
	})

	Describe("CreateCategory", func() {
		It("creates a category and returns its response shape", func() {
			resp, err := service.CreateCategory(category.CreateCategoryDTO{
				Name:       "Saúde",
				Deductible: &deductible,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.ID).To(BeNumerically(">", 0))
			Expect(resp.Name).To(Equal("Saúde"))
			Expect(resp.Deductible).To(BeTrue())
		})

		It("rejects duplicate names", func() {
			_, err := service.CreateCategory(category.CreateCategoryDTO{Name: "Saúde", Deductible: &deductible})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateCategory(category.CreateCategoryDTO{Name: "Saúde", Deductible: &deductible})
			Expect(err).To(MatchError(category.ErrDuplicateCategory))
		})

		It("requires the deductible flag", func() {
			_, err := service.CreateCategory(category.CreateCategoryDTO{Name: "Saúde"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateCategory", func() {
		It("applies partial updates", func() {
			created, err := service.CreateCategory(category.CreateCategoryDTO{Name: "Saude", Deductible: &deductible})
			Expect(err).NotTo(HaveOccurred())

			name := "Saúde"
			notDeductible := false
			updated, err := service.UpdateCategory(created.ID, category.UpdateCategoryDTO{
				Name:       &name,
				Deductible: &notDeductible,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Saúde"))
			Expect(updated.Deductible).To(BeFalse())
		})

		It("reports a missing category", func() {
			name := "qualquer"
			_, err := service.UpdateCategory(42, category.UpdateCategoryDTO{Name: &name})
			Expect(err).To(MatchError(category.ErrCategoryNotFound))
		})
	})

	Describe("DeleteCategory", func() {
		It("deletes an unreferenced category", func() {
			created, err := service.CreateCategory(category.CreateCategoryDTO{Name: "Lazer", Deductible: &deductible})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteCategory(created.ID)).To(Succeed())
			Expect(repo.categories).To(BeEmpty())
		})

		It("blocks deletion while rules or expenses reference it", func() {
			created, err := service.CreateCategory(category.CreateCategoryDTO{Name: "Saúde", Deductible: &deductible})
			Expect(err).NotTo(HaveOccurred())
			repo.referenced[created.ID] = true

			err = service.DeleteCategory(created.ID)
			Expect(err).To(MatchError(category.ErrCategoryInUse))
			Expect(repo.categories).To(HaveLen(1))
		})
	})

	Describe("GetAllCategories", func() {
		It("propagates repository failures", func() {
			repo.failErr = errors.New("database error")
			_, err := service.GetAllCategories()
			Expect(err).To(HaveOccurred())
		})
	})
})

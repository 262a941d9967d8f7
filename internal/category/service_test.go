package category_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/audit"
	"github.com/frahmantamala/expense-tracking/internal/category"
	"github.com/frahmantamala/expense-tracking/internal/core/datamodel"
	"github.com/frahmantamala/expense-tracking/internal/session"
)

func TestCategory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Suite")
}

type mockCategoryRepository struct {
	categories map[int64]*category.ExpenseCategory
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[int64]*category.ExpenseCategory)}
}

func (m *mockCategoryRepository) GetByID(id int64) (*category.ExpenseCategory, error) {
	cat, ok := m.categories[id]
	if !ok {
		return nil, internal.NotFound("ExpenseCategory")
	}
	return cat, nil
}

func (m *mockCategoryRepository) GetAll() ([]*category.ExpenseCategory, error) {
	var out []*category.ExpenseCategory
	for _, cat := range m.categories {
		out = append(out, cat)
	}
	return out, nil
}

func (m *mockCategoryRepository) FindActive(id int64) (*category.ExpenseCategory, error) {
	cat, ok := m.categories[id]
	if !ok {
		return nil, internal.NotFound("ExpenseCategory")
	}
	if !cat.Active() {
		return nil, internal.Inactive("ExpenseCategory")
	}
	return cat, nil
}

type mockCommitter struct {
	committed []*audit.Recorder
	err       error
}

func (m *mockCommitter) Commit(rec *audit.Recorder) error {
	if m.err != nil {
		return m.err
	}
	m.committed = append(m.committed, rec)
	return nil
}

var _ = Describe("Category Service", func() {
	var (
		repo      *mockCategoryRepository
		committer *mockCommitter
		svc       *category.Service
		sess      *session.Session
	)

	BeforeEach(func() {
		repo = newMockCategoryRepository()
		committer = &mockCommitter{}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc = category.NewService(repo, committer, logger)
		sess = &session.Session{UserID: 1, UserName: "admin", Role: session.RoleManager}
	})

	seedCategory := func(id int64, name string, active bool) *category.ExpenseCategory {
		cat := &category.ExpenseCategory{
			Entity: datamodel.Entity{ID: id, IsActive: active},
			Name:   name,
		}
		repo.categories[id] = cat
		return cat
	}

	Describe("Create", func() {
		It("should commit the new category as an addition", func() {
			cat, err := svc.Create(sess, category.CategoryDTO{Name: "Travel", Description: "Transport"})

			Expect(err).NotTo(HaveOccurred())
			Expect(cat.Name).To(Equal("Travel"))

			changes := committer.committed[0].Changes()
			Expect(changes).To(HaveLen(1))
			Expect(changes[0].Action).To(Equal(audit.ActionAdded))
		})

		It("should require a name", func() {
			_, err := svc.Create(sess, category.CategoryDTO{})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})

		It("should cap the name length", func() {
			_, err := svc.Create(sess, category.CategoryDTO{Name: strings.Repeat("x", 251)})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("should modify an active category", func() {
			seedCategory(1, "Travel", true)

			Expect(svc.Update(sess, 1, category.CategoryDTO{Name: "Transport"})).To(Succeed())
			Expect(repo.categories[1].Name).To(Equal("Transport"))
		})

		It("should refuse an inactive category", func() {
			seedCategory(1, "Travel", false)

			err := svc.Update(sess, 1, category.CategoryDTO{Name: "Transport"})
			Expect(err).To(MatchError(ContainSubstring("ExpenseCategory is inactive")))
		})
	})

	Describe("Delete", func() {
		It("should record a soft delete", func() {
			seedCategory(1, "Travel", true)

			Expect(svc.Delete(sess, 1)).To(Succeed())

			changes := committer.committed[0].Changes()
			Expect(changes).To(HaveLen(1))
			Expect(changes[0].Action).To(Equal(audit.ActionDeleted))
		})

		It("should fail for a missing category", func() {
			err := svc.Delete(sess, 42)
			Expect(err).To(MatchError(ContainSubstring("ExpenseCategory not found")))
		})
	})
})

package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/expense"
	expensePostgres "github.com/frahmantamala/expense-tracking/internal/expense/postgres"
)

func TestExpensePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Expense Postgres Suite")
}

var _ = Describe("Expense Repository", func() {
	var (
		db   *gorm.DB
		repo expense.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&expense.Expense{})
		Expect(err).NotTo(HaveOccurred())

		repo = expensePostgres.NewExpenseRepository(db)
	})

	strPtr := func(s string) *string { return &s }

	baseExpense := func() *expense.Expense {
		exp := &expense.Expense{
			EmployeeID:      10,
			CategoryID:      1,
			PaymentMethodID: 2,
			Amount:          4500,
			Location:        "Istanbul",
			Description:     strPtr("client lunch"),
			ExpenseDate:     time.Date(2025, 3, 14, 12, 30, 0, 0, time.UTC),
			Status:          expense.StatusPending,
		}
		exp.IsActive = true
		exp.InsertedDate = time.Now()
		exp.InsertedUser = "jdoe"
		return exp
	}

	// Deactivation happens after the insert; the is_active column carries a
	// database default that would override a zero value on create.
	persist := func(exp *expense.Expense) {
		inactive := !exp.IsActive
		exp.IsActive = true
		Expect(db.Create(exp).Error).NotTo(HaveOccurred())
		if inactive {
			exp.IsActive = false
			Expect(db.Model(exp).Update("is_active", false).Error).NotTo(HaveOccurred())
		}
	}

	Describe("HasDuplicate", func() {
		It("should match an expense on the same calendar day regardless of time", func() {
			stored := baseExpense()
			persist(stored)

			candidate := baseExpense()
			candidate.ExpenseDate = time.Date(2025, 3, 14, 21, 5, 0, 0, time.UTC)

			dup, err := repo.HasDuplicate(candidate)
			Expect(err).NotTo(HaveOccurred())
			Expect(dup).To(BeTrue())
		})

		It("should not match across calendar days", func() {
			persist(baseExpense())

			candidate := baseExpense()
			candidate.ExpenseDate = time.Date(2025, 3, 15, 12, 30, 0, 0, time.UTC)

			dup, err := repo.HasDuplicate(candidate)
			Expect(err).NotTo(HaveOccurred())
			Expect(dup).To(BeFalse())
		})

		It("should not match when the description differs", func() {
			persist(baseExpense())

			candidate := baseExpense()
			candidate.Description = strPtr("team dinner")

			dup, err := repo.HasDuplicate(candidate)
			Expect(err).NotTo(HaveOccurred())
			Expect(dup).To(BeFalse())
		})

		It("should treat two missing descriptions as equal", func() {
			stored := baseExpense()
			stored.Description = nil
			persist(stored)

			candidate := baseExpense()
			candidate.Description = nil

			dup, err := repo.HasDuplicate(candidate)
			Expect(err).NotTo(HaveOccurred())
			Expect(dup).To(BeTrue())
		})

		It("should not treat a missing description as equal to a present one", func() {
			persist(baseExpense())

			candidate := baseExpense()
			candidate.Description = nil

			dup, err := repo.HasDuplicate(candidate)
			Expect(err).NotTo(HaveOccurred())
			Expect(dup).To(BeFalse())
		})

		It("should count inactive and resolved rows", func() {
			stored := baseExpense()
			stored.Status = expense.StatusRejected
			stored.IsActive = false
			persist(stored)

			dup, err := repo.HasDuplicate(baseExpense())
			Expect(err).NotTo(HaveOccurred())
			Expect(dup).To(BeTrue())
		})

		It("should scope the match to the owning employee", func() {
			persist(baseExpense())

			candidate := baseExpense()
			candidate.EmployeeID = 99

			dup, err := repo.HasDuplicate(candidate)
			Expect(err).NotTo(HaveOccurred())
			Expect(dup).To(BeFalse())
		})

		It("should not match when the amount differs", func() {
			persist(baseExpense())

			candidate := baseExpense()
			candidate.Amount = 4600

			dup, err := repo.HasDuplicate(candidate)
			Expect(err).NotTo(HaveOccurred())
			Expect(dup).To(BeFalse())
		})
	})

	Describe("GetByID", func() {
		It("should return a stored expense even after deactivation", func() {
			stored := baseExpense()
			stored.IsActive = false
			persist(stored)

			got, err := repo.GetByID(stored.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Location).To(Equal("Istanbul"))
		})

		It("should report a missing expense as not found", func() {
			_, err := repo.GetByID(42)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeEntityNotFound))
			Expect(appErr.Message).To(Equal("Expense not found"))
		})
	})

	Describe("ListAll", func() {
		BeforeEach(func() {
			pending := baseExpense()
			persist(pending)

			paid := baseExpense()
			paid.Description = strPtr("hotel")
			paid.Status = expense.StatusPaid
			paid.IsActive = false
			persist(paid)

			travel := baseExpense()
			travel.EmployeeID = 99
			travel.CategoryID = 7
			travel.PaymentMethodID = 3
			travel.Amount = 12000
			travel.Location = "Ankara"
			travel.Description = strPtr("flight")
			persist(travel)
		})

		It("should filter by status when one is given", func() {
			paid, err := repo.ListAll(expense.QueryFilter{Status: string(expense.StatusPaid), Limit: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(paid).To(HaveLen(1))
			Expect(paid[0].Status).To(Equal(expense.StatusPaid))
		})

		It("should return everything, including inactive rows, without a filter", func() {
			all, err := repo.ListAll(expense.QueryFilter{Limit: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(3))
		})

		It("should filter by category and payment method", func() {
			got, err := repo.ListAll(expense.QueryFilter{CategoryID: 7, PaymentMethodID: 3, Limit: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].Location).To(Equal("Ankara"))
		})

		It("should filter by an amount range", func() {
			got, err := repo.ListAll(expense.QueryFilter{MinAmount: 5000, MaxAmount: 20000, Limit: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].Amount).To(Equal(int64(12000)))

			none, err := repo.ListAll(expense.QueryFilter{MinAmount: 20001, Limit: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(none).To(BeEmpty())
		})

		It("should match the location as a substring", func() {
			got, err := repo.ListAll(expense.QueryFilter{Location: "nkar", Limit: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].Location).To(Equal("Ankara"))
		})

		It("should scope to one employee when asked", func() {
			got, err := repo.ListAll(expense.QueryFilter{EmployeeID: 99, Limit: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].EmployeeID).To(Equal(int64(99)))
		})

		It("should combine several dimensions", func() {
			got, err := repo.ListAll(expense.QueryFilter{
				EmployeeID: 10,
				CategoryID: 1,
				Status:     string(expense.StatusPending),
				Limit:      20,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].Status).To(Equal(expense.StatusPending))
		})
	})

	Describe("ListByEmployee", func() {
		It("should return only the employee's expenses", func() {
			mine := baseExpense()
			persist(mine)

			other := baseExpense()
			other.EmployeeID = 99
			other.Description = strPtr("other")
			persist(other)

			got, err := repo.ListByEmployee(10, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].EmployeeID).To(Equal(int64(10)))
		})
	})
})

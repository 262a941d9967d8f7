package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/expense-tracking/internal/payment"
	paymentPostgres "github.com/frahmantamala/expense-tracking/internal/payment/postgres"
)

func TestPaymentPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Payment Postgres Suite")
}

var _ = Describe("Payment Repository", func() {
	var (
		db   *gorm.DB
		repo payment.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&payment.Payment{})
		Expect(err).NotTo(HaveOccurred())

		repo = paymentPostgres.NewPaymentRepository(db)
	})

	persist := func(expenseID int64, success bool, at time.Time, active bool) *payment.Payment {
		p := &payment.Payment{
			ExpenseID:       expenseID,
			EmployeeID:      10,
			Amount:          4500,
			IBAN:            "TR330006100519786457841326",
			Success:         success,
			ReferenceNumber: "REF",
			Timestamp:       at,
		}
		p.IsActive = true
		Expect(db.Create(p).Error).NotTo(HaveOccurred())
		if !active {
			Expect(db.Model(p).Update("is_active", false).Error).NotTo(HaveOccurred())
		}
		return p
	}

	Describe("GetByExpenseID", func() {
		It("should return the expense's attempts newest first, declined included", func() {
			base := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
			persist(5, false, base, true)
			persist(5, true, base.Add(time.Hour), true)
			persist(9, true, base, true)

			got, err := repo.GetByExpenseID(5)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(2))
			Expect(got[0].Success).To(BeTrue())
			Expect(got[1].Success).To(BeFalse())
		})

		It("should skip deactivated rows", func() {
			persist(5, true, time.Now(), false)

			got, err := repo.GetByExpenseID(5)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeEmpty())
		})

		It("should return an empty history for an unknown expense", func() {
			got, err := repo.GetByExpenseID(42)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeEmpty())
		})
	})
})

package postgres_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/contact"
	contactPostgres "github.com/frahmantamala/expense-tracking/internal/contact/postgres"
)

func TestContactPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Contact Postgres Suite")
}

var _ = Describe("Contact Repository", func() {
	var (
		db   *gorm.DB
		repo contact.RepositoryAPI
	)

	int64Ptr := func(v int64) *int64 { return &v }

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&contact.Address{}, &contact.Phone{})
		Expect(err).NotTo(HaveOccurred())

		repo = contactPostgres.NewContactRepository(db)
	})

	// Inactive rows are deactivated after the insert; the is_active column
	// carries a database default that would override a zero value on create.
	persistAddress := func(owner contact.Owner, isDefault, isActive bool) *contact.Address {
		addr := &contact.Address{
			Owner:       owner,
			CountryCode: "TR",
			City:        "Istanbul",
			IsDefault:   isDefault,
		}
		addr.IsActive = true
		Expect(db.Create(addr).Error).NotTo(HaveOccurred())
		if !isActive {
			addr.IsActive = false
			Expect(db.Model(addr).Update("is_active", false).Error).NotTo(HaveOccurred())
		}
		return addr
	}

	persistPhone := func(owner contact.Owner, isDefault, isActive bool) *contact.Phone {
		phone := &contact.Phone{
			Owner:       owner,
			CountryCode: "+90",
			PhoneNumber: "5551234567",
			IsDefault:   isDefault,
		}
		phone.IsActive = true
		Expect(db.Create(phone).Error).NotTo(HaveOccurred())
		if !isActive {
			phone.IsActive = false
			Expect(db.Model(phone).Update("is_active", false).Error).NotTo(HaveOccurred())
		}
		return phone
	}

	Describe("DefaultAddressExists", func() {
		It("should report an existing active default of the same owner", func() {
			persistAddress(contact.Owner{EmployeeID: int64Ptr(10)}, true, true)

			candidate := &contact.Address{Owner: contact.Owner{EmployeeID: int64Ptr(10)}}

			exists, err := repo.DefaultAddressExists(candidate)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("should ignore inactive defaults", func() {
			persistAddress(contact.Owner{EmployeeID: int64Ptr(10)}, true, false)

			candidate := &contact.Address{Owner: contact.Owner{EmployeeID: int64Ptr(10)}}

			exists, err := repo.DefaultAddressExists(candidate)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("should ignore defaults of other owners", func() {
			persistAddress(contact.Owner{EmployeeID: int64Ptr(99)}, true, true)
			persistAddress(contact.Owner{DepartmentID: int64Ptr(10)}, true, true)

			candidate := &contact.Address{Owner: contact.Owner{EmployeeID: int64Ptr(10)}}

			exists, err := repo.DefaultAddressExists(candidate)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("should exclude the candidate's own row", func() {
			stored := persistAddress(contact.Owner{EmployeeID: int64Ptr(10)}, true, true)

			exists, err := repo.DefaultAddressExists(stored)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})

		It("should ignore non-default rows", func() {
			persistAddress(contact.Owner{EmployeeID: int64Ptr(10)}, false, true)

			candidate := &contact.Address{Owner: contact.Owner{EmployeeID: int64Ptr(10)}}

			exists, err := repo.DefaultAddressExists(candidate)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("DefaultPhoneExists", func() {
		It("should apply the same guard to phones per owner", func() {
			persistPhone(contact.Owner{ManagerID: int64Ptr(1)}, true, true)

			sameOwner := &contact.Phone{Owner: contact.Owner{ManagerID: int64Ptr(1)}}
			otherOwner := &contact.Phone{Owner: contact.Owner{ManagerID: int64Ptr(2)}}

			exists, err := repo.DefaultPhoneExists(sameOwner)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())

			exists, err = repo.DefaultPhoneExists(otherOwner)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("FindActiveAddress", func() {
		It("should return an active address", func() {
			stored := persistAddress(contact.Owner{EmployeeID: int64Ptr(10)}, false, true)

			got, err := repo.FindActiveAddress(stored.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.City).To(Equal("Istanbul"))
		})

		It("should report an inactive address as inactive", func() {
			stored := persistAddress(contact.Owner{EmployeeID: int64Ptr(10)}, false, false)

			_, err := repo.FindActiveAddress(stored.ID)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeEntityInactive))
		})

		It("should report a missing address as not found", func() {
			_, err := repo.FindActiveAddress(42)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeEntityNotFound))
		})
	})

	Describe("ActiveAddressesByEmployee", func() {
		It("should return only the employee's active addresses", func() {
			persistAddress(contact.Owner{EmployeeID: int64Ptr(10)}, false, true)
			persistAddress(contact.Owner{EmployeeID: int64Ptr(10)}, false, false)
			persistAddress(contact.Owner{EmployeeID: int64Ptr(99)}, false, true)

			got, err := repo.ActiveAddressesByEmployee(10)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
		})
	})
})

package contact_test

import (
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/audit"
	"github.com/frahmantamala/expense-tracking/internal/contact"
	"github.com/frahmantamala/expense-tracking/internal/session"
)

func TestContact(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Contact Suite")
}

type mockContactRepository struct {
	addresses map[int64]*contact.Address
	phones    map[int64]*contact.Phone

	defaultAddressExists bool
	defaultPhoneExists   bool
	existsError          error
}

func newMockContactRepository() *mockContactRepository {
	return &mockContactRepository{
		addresses: make(map[int64]*contact.Address),
		phones:    make(map[int64]*contact.Phone),
	}
}

func (m *mockContactRepository) FindActiveAddress(id int64) (*contact.Address, error) {
	addr, ok := m.addresses[id]
	if !ok || !addr.Active() {
		return nil, internal.NotFound("Address")
	}
	return addr, nil
}

func (m *mockContactRepository) FindActivePhone(id int64) (*contact.Phone, error) {
	phone, ok := m.phones[id]
	if !ok || !phone.Active() {
		return nil, internal.NotFound("Phone")
	}
	return phone, nil
}

func (m *mockContactRepository) DefaultAddressExists(candidate *contact.Address) (bool, error) {
	return m.defaultAddressExists, m.existsError
}

func (m *mockContactRepository) DefaultPhoneExists(candidate *contact.Phone) (bool, error) {
	return m.defaultPhoneExists, m.existsError
}

func (m *mockContactRepository) ActiveAddressesByEmployee(employeeID int64) ([]*contact.Address, error) {
	var out []*contact.Address
	for _, addr := range m.addresses {
		if addr.EmployeeID != nil && *addr.EmployeeID == employeeID && addr.Active() {
			out = append(out, addr)
		}
	}
	return out, nil
}

func (m *mockContactRepository) ActivePhonesByEmployee(employeeID int64) ([]*contact.Phone, error) {
	var out []*contact.Phone
	for _, phone := range m.phones {
		if phone.EmployeeID != nil && *phone.EmployeeID == employeeID && phone.Active() {
			out = append(out, phone)
		}
	}
	return out, nil
}

type mockOwnerValidator struct {
	employeeError   error
	departmentError error
	managerError    error
}

func (m *mockOwnerValidator) EmployeeActive(id int64) error   { return m.employeeError }
func (m *mockOwnerValidator) DepartmentActive(id int64) error { return m.departmentError }
func (m *mockOwnerValidator) ManagerActive(id int64) error    { return m.managerError }

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

var _ = Describe("Contact Service", func() {
	var (
		repo      *mockContactRepository
		owners    *mockOwnerValidator
		committer *mockCommitter
		svc       *contact.Service
		sess      *session.Session
	)

	int64Ptr := func(v int64) *int64 { return &v }

	BeforeEach(func() {
		repo = newMockContactRepository()
		owners = &mockOwnerValidator{}
		committer = &mockCommitter{}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc = contact.NewService(repo, owners, committer, logger)
		sess = &session.Session{UserID: 10, UserName: "jdoe", Role: session.RoleEmployee}
	})

	addressDTO := func() contact.AddressDTO {
		return contact.AddressDTO{
			EmployeeID:  int64Ptr(10),
			CountryCode: "TR",
			City:        "Istanbul",
			District:    "Kadikoy",
			Street:      "Moda Cd. 5",
			ZipCode:     "34710",
		}
	}

	Describe("CreateAddress", func() {
		Context("when no owner is set", func() {
			It("should reject the record", func() {
				dto := addressDTO()
				dto.EmployeeID = nil

				_, err := svc.CreateAddress(sess, dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidOwner))
			})
		})

		Context("when more than one owner is set", func() {
			It("should reject the record", func() {
				dto := addressDTO()
				dto.DepartmentID = int64Ptr(3)

				_, err := svc.CreateAddress(sess, dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidOwner))
			})
		})

		Context("when the owner is missing or inactive", func() {
			It("should propagate the owner check failure", func() {
				owners.employeeError = internal.NotFound("Employee")

				_, err := svc.CreateAddress(sess, addressDTO())
				Expect(err).To(MatchError(ContainSubstring("Employee not found")))
			})
		})

		Context("when a default address already exists for the owner", func() {
			It("should refuse a second default", func() {
				repo.defaultAddressExists = true
				dto := addressDTO()
				dto.IsDefault = true

				_, err := svc.CreateAddress(sess, dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeDefaultExists))
				Expect(appErr.Message).To(Equal("A default address already exists for this employee."))
			})

			It("should still accept a non-default address", func() {
				repo.defaultAddressExists = true

				addr, err := svc.CreateAddress(sess, addressDTO())

				Expect(err).NotTo(HaveOccurred())
				Expect(addr.IsDefault).To(BeFalse())
				Expect(committer.committed).To(HaveLen(1))
			})
		})

		It("should create the first default for an owner", func() {
			dto := addressDTO()
			dto.IsDefault = true

			addr, err := svc.CreateAddress(sess, dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(addr.IsDefault).To(BeTrue())
			Expect(addr.Kind()).To(Equal(contact.OwnerEmployee))
		})
	})

	Describe("UpdateAddress", func() {
		var stored *contact.Address

		BeforeEach(func() {
			stored = &contact.Address{
				Owner:       contact.Owner{EmployeeID: int64Ptr(10)},
				CountryCode: "TR",
				City:        "Istanbul",
				IsDefault:   true,
			}
			stored.ID = 7
			stored.IsActive = true
			repo.addresses[7] = stored
		})

		It("should allow demoting a default without consulting the guard", func() {
			repo.defaultAddressExists = true

			dto := addressDTO()
			dto.IsDefault = false

			Expect(svc.UpdateAddress(sess, 7, dto)).To(Succeed())
			Expect(stored.IsDefault).To(BeFalse())
		})

		It("should guard promotion to default", func() {
			repo.defaultAddressExists = true

			dto := addressDTO()
			dto.IsDefault = true

			err := svc.UpdateAddress(sess, 7, dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDefaultExists))
		})
	})

	Describe("CreatePhone", func() {
		Context("when a default phone already exists for a department", func() {
			It("should name the owner kind in the conflict", func() {
				repo.defaultPhoneExists = true

				_, err := svc.CreatePhone(sess, contact.PhoneDTO{
					DepartmentID: int64Ptr(3),
					CountryCode:  "+90",
					PhoneNumber:  "5551234567",
					IsDefault:    true,
				})

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Message).To(Equal("A default phone already exists for this department."))
			})
		})

		It("should validate a manager owner against the staff directory", func() {
			owners.managerError = internal.Inactive("Employee")

			_, err := svc.CreatePhone(sess, contact.PhoneDTO{
				ManagerID:   int64Ptr(1),
				CountryCode: "+90",
				PhoneNumber: "5551234567",
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("DeleteAddress", func() {
		It("should record a soft delete for an active address", func() {
			stored := &contact.Address{Owner: contact.Owner{EmployeeID: int64Ptr(10)}}
			stored.ID = 7
			stored.IsActive = true
			repo.addresses[7] = stored

			Expect(svc.DeleteAddress(sess, 7)).To(Succeed())

			changes := committer.committed[0].Changes()
			Expect(changes).To(HaveLen(1))
			Expect(changes[0].Action).To(Equal(audit.ActionDeleted))
		})

		It("should fail for an address that is already inactive", func() {
			stored := &contact.Address{Owner: contact.Owner{EmployeeID: int64Ptr(10)}}
			stored.ID = 7
			repo.addresses[7] = stored

			err := svc.DeleteAddress(sess, 7)
			Expect(err).To(MatchError(ContainSubstring("Address not found")))
		})
	})

	Describe("DeactivateForEmployee", func() {
		It("should record deletes for every active contact record of the employee", func() {
			addr := &contact.Address{Owner: contact.Owner{EmployeeID: int64Ptr(10)}}
			addr.ID = 1
			addr.IsActive = true
			repo.addresses[1] = addr

			phone := &contact.Phone{Owner: contact.Owner{EmployeeID: int64Ptr(10)}}
			phone.ID = 2
			phone.IsActive = true
			repo.phones[2] = phone

			other := &contact.Phone{Owner: contact.Owner{EmployeeID: int64Ptr(99)}}
			other.ID = 3
			other.IsActive = true
			repo.phones[3] = other

			rec := audit.NewRecorder("admin")
			Expect(svc.DeactivateForEmployee(rec, 10)).To(Succeed())

			changes := rec.Changes()
			Expect(changes).To(HaveLen(2))
			for _, c := range changes {
				Expect(c.Action).To(Equal(audit.ActionDeleted))
			}
		})
	})
})

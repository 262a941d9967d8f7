package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/expense-tracking/internal/contact"
	"github.com/frahmantamala/expense-tracking/internal/entitycheck"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) contact.RepositoryAPI {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) FindActiveAddress(id int64) (*contact.Address, error) {
	return entitycheck.Find[contact.Address](r.db, id, "Address")
}

func (r *ContactRepository) FindActivePhone(id int64) (*contact.Phone, error) {
	return entitycheck.Find[contact.Phone](r.db, id, "Phone")
}

// ownerScope narrows a query to rows sharing the candidate's single non-nil
// owner column.
func ownerScope(db *gorm.DB, owner contact.Owner) *gorm.DB {
	switch {
	case owner.EmployeeID != nil:
		return db.Where("employee_id = ?", *owner.EmployeeID)
	case owner.DepartmentID != nil:
		return db.Where("department_id = ?", *owner.DepartmentID)
	default:
		return db.Where("manager_id = ?", *owner.ManagerID)
	}
}

func (r *ContactRepository) DefaultAddressExists(candidate *contact.Address) (bool, error) {
	var count int64
	q := r.db.Model(&contact.Address{}).
		Where("is_active = ? AND is_default = ? AND id <> ?", true, true, candidate.ID)
	err := ownerScope(q, candidate.Owner).Count(&count).Error
	return count > 0, err
}

func (r *ContactRepository) DefaultPhoneExists(candidate *contact.Phone) (bool, error) {
	var count int64
	q := r.db.Model(&contact.Phone{}).
		Where("is_active = ? AND is_default = ? AND id <> ?", true, true, candidate.ID)
	err := ownerScope(q, candidate.Owner).Count(&count).Error
	return count > 0, err
}

func (r *ContactRepository) ActiveAddressesByEmployee(employeeID int64) ([]*contact.Address, error) {
	var addresses []*contact.Address
	err := r.db.Where("employee_id = ? AND is_active = ?", employeeID, true).Find(&addresses).Error
	return addresses, err
}

func (r *ContactRepository) ActivePhonesByEmployee(employeeID int64) ([]*contact.Phone, error) {
	var phones []*contact.Phone
	err := r.db.Where("employee_id = ? AND is_active = ?", employeeID, true).Find(&phones).Error
	return phones, err
}

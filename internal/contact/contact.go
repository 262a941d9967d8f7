// Package contact holds the address and phone records attached to employees,
// departments and managers, and enforces the one-default-per-owner rule that
// applies identically to both resource kinds.
package contact

import (
	"fmt"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/core/datamodel"
)

const (
	OwnerEmployee   = "employee"
	OwnerDepartment = "department"
	OwnerManager    = "manager"
)

// Owner is the single non-null foreign key a contact record belongs to.
// Exactly one of the three ids must be set; this is validated at write time
// independent of the default-uniqueness check.
type Owner struct {
	EmployeeID   *int64 `gorm:"column:employee_id" json:"employee_id,omitempty"`
	DepartmentID *int64 `gorm:"column:department_id" json:"department_id,omitempty"`
	ManagerID    *int64 `gorm:"column:manager_id" json:"manager_id,omitempty"`
}

// Kind names the owner for error messages: employee, department or manager.
func (o Owner) Kind() string {
	switch {
	case o.EmployeeID != nil:
		return OwnerEmployee
	case o.DepartmentID != nil:
		return OwnerDepartment
	case o.ManagerID != nil:
		return OwnerManager
	}
	return ""
}

func (o Owner) Validate() error {
	set := 0
	if o.EmployeeID != nil {
		set++
	}
	if o.DepartmentID != nil {
		set++
	}
	if o.ManagerID != nil {
		set++
	}
	if set != 1 {
		return internal.NewValidationError(
			"exactly one of employee_id, department_id or manager_id must be set",
			internal.ErrCodeInvalidOwner)
	}
	return nil
}

// Address belongs to exactly one owner; at most one active address per owner
// may be flagged default.
type Address struct {
	datamodel.Entity `gorm:"embedded"`
	Owner            `gorm:"embedded"`

	CountryCode string `gorm:"column:country_code" json:"country_code"`
	City        string `gorm:"column:city" json:"city"`
	District    string `gorm:"column:district" json:"district"`
	Street      string `gorm:"column:street" json:"street"`
	ZipCode     string `gorm:"column:zip_code" json:"zip_code"`
	IsDefault   bool   `gorm:"column:is_default" json:"is_default"`
}

func (Address) TableName() string { return "addresses" }

func (Address) EntityName() string { return "Address" }

func (a *Address) AuditValues() []datamodel.Value {
	values := []datamodel.Value{
		{Key: "EmployeeId", Value: a.EmployeeID},
		{Key: "DepartmentId", Value: a.DepartmentID},
		{Key: "ManagerId", Value: a.ManagerID},
		{Key: "CountryCode", Value: a.CountryCode},
		{Key: "City", Value: a.City},
		{Key: "District", Value: a.District},
		{Key: "Street", Value: a.Street},
		{Key: "ZipCode", Value: a.ZipCode},
		{Key: "IsDefault", Value: a.IsDefault},
	}
	return append(values, a.BaseValues()...)
}

// Phone mirrors Address: one owner, at most one active default per owner.
type Phone struct {
	datamodel.Entity `gorm:"embedded"`
	Owner            `gorm:"embedded"`

	CountryCode string `gorm:"column:country_code" json:"country_code"`
	PhoneNumber string `gorm:"column:phone_number" json:"phone_number"`
	IsDefault   bool   `gorm:"column:is_default" json:"is_default"`
}

func (Phone) TableName() string { return "phones" }

func (Phone) EntityName() string { return "Phone" }

func (p *Phone) AuditValues() []datamodel.Value {
	values := []datamodel.Value{
		{Key: "EmployeeId", Value: p.EmployeeID},
		{Key: "DepartmentId", Value: p.DepartmentID},
		{Key: "ManagerId", Value: p.ManagerID},
		{Key: "CountryCode", Value: p.CountryCode},
		{Key: "PhoneNumber", Value: p.PhoneNumber},
		{Key: "IsDefault", Value: p.IsDefault},
	}
	return append(values, p.BaseValues()...)
}

// ErrDefaultExists is the uniqueness-guard failure, e.g.
// "A default address already exists for this employee."
func ErrDefaultExists(resource, ownerKind string) *internal.AppError {
	return internal.NewConflictError(
		fmt.Sprintf("A default %s already exists for this %s.", resource, ownerKind),
		internal.ErrCodeDefaultExists)
}

// RepositoryAPI defines the data access for both contact resources.
type RepositoryAPI interface {
	FindActiveAddress(id int64) (*Address, error)
	FindActivePhone(id int64) (*Phone, error)

	// DefaultAddressExists reports whether any OTHER active address of the
	// same owner is already flagged default. The candidate's own id is
	// excluded so re-saving an already-default record does not self-conflict.
	DefaultAddressExists(candidate *Address) (bool, error)
	DefaultPhoneExists(candidate *Phone) (bool, error)

	ActiveAddressesByEmployee(employeeID int64) ([]*Address, error)
	ActivePhonesByEmployee(employeeID int64) ([]*Phone, error)
}

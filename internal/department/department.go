package department

import (
	"errors"

	"github.com/frahmantamala/expense-tracking/internal/core/datamodel"
)

// Department owns employees and may carry its own contact records. ManagerID
// points at the employee managing it and is cleared when that employee is
// deleted.
type Department struct {
	datamodel.Entity `gorm:"embedded"`

	Name        string `gorm:"column:name;uniqueIndex;not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	ManagerID   *int64 `gorm:"column:manager_id" json:"manager_id,omitempty"`
}

func (Department) TableName() string { return "departments" }

func (Department) EntityName() string { return "Department" }

func (d *Department) AuditValues() []datamodel.Value {
	values := []datamodel.Value{
		{Key: "Name", Value: d.Name},
		{Key: "Description", Value: d.Description},
		{Key: "ManagerId", Value: d.ManagerID},
	}
	return append(values, d.BaseValues()...)
}

type DepartmentDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto DepartmentDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type RepositoryAPI interface {
	GetAll() ([]*Department, error)
	FindActive(id int64) (*Department, error)
	// ManagedBy returns the active departments managed by the given employee.
	ManagedBy(employeeID int64) ([]*Department, error)
}

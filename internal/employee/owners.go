package employee

import (
	"github.com/frahmantamala/expense-tracking/internal/department"
)

// OwnerChecker answers the contact package's owner-existence checks. Managers
// are employees here; a manager id resolves against the employee table.
type OwnerChecker struct {
	employees   RepositoryAPI
	departments department.RepositoryAPI
}

func NewOwnerChecker(employees RepositoryAPI, departments department.RepositoryAPI) *OwnerChecker {
	return &OwnerChecker{employees: employees, departments: departments}
}

func (c *OwnerChecker) EmployeeActive(id int64) error {
	_, err := c.employees.FindActive(id)
	return err
}

func (c *OwnerChecker) DepartmentActive(id int64) error {
	_, err := c.departments.FindActive(id)
	return err
}

func (c *OwnerChecker) ManagerActive(id int64) error {
	_, err := c.employees.FindActive(id)
	return err
}

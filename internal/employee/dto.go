package employee

import (
	"errors"
	"time"
)

type CreateEmployeeDTO struct {
	UserName     string    `json:"user_name"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	DepartmentID int64     `json:"department_id"`
	Salary       int64     `json:"salary"`
	IBAN         string    `json:"iban,omitempty"`
	HireDate     time.Time `json:"hire_date"`
}

func (dto CreateEmployeeDTO) Validate() error {
	if dto.UserName == "" {
		return errors.New("user_name is required")
	}
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.Surname == "" {
		return errors.New("surname is required")
	}
	if dto.DepartmentID <= 0 {
		return errors.New("department_id is required")
	}
	if dto.Salary < 0 {
		return errors.New("salary cannot be negative")
	}
	return nil
}

// UpdateEmployeeDTO uses replace-if-provided semantics like expenses do.
type UpdateEmployeeDTO struct {
	Name         string `json:"name"`
	Surname      string `json:"surname"`
	Email        string `json:"email"`
	DepartmentID int64  `json:"department_id"`
	Salary       int64  `json:"salary"`
	IBAN         string `json:"iban"`
}

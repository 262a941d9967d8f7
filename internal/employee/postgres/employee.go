package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/employee"
	"github.com/frahmantamala/expense-tracking/internal/entitycheck"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) FindActive(id int64) (*employee.Employee, error) {
	return entitycheck.Find[employee.Employee](r.db, id, "Employee")
}

func (r *EmployeeRepository) GetAll() ([]*employee.Employee, error) {
	var employees []*employee.Employee
	err := r.db.Where("is_active = ?", true).Order("surname ASC, name ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) ByUserID(userID int64) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NotFound("Employee")
		}
		return nil, err
	}
	return &emp, nil
}

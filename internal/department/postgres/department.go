package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/expense-tracking/internal/department"
	"github.com/frahmantamala/expense-tracking/internal/entitycheck"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll() ([]*department.Department, error) {
	var departments []*department.Department
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) FindActive(id int64) (*department.Department, error) {
	return entitycheck.Find[department.Department](r.db, id, "Department")
}

func (r *DepartmentRepository) ManagedBy(employeeID int64) ([]*department.Department, error) {
	var departments []*department.Department
	err := r.db.Where("manager_id = ? AND is_active = ?", employeeID, true).Find(&departments).Error
	return departments, err
}

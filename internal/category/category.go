package category

import (
	"github.com/frahmantamala/expense-tracking/internal/core/datamodel"
)

// ExpenseCategory is reference data: expenses must point at an active category.
type ExpenseCategory struct {
	datamodel.Entity `gorm:"embedded"`

	Name        string `gorm:"column:name;uniqueIndex;not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`
}

func (ExpenseCategory) TableName() string { return "expense_categories" }

func (ExpenseCategory) EntityName() string { return "ExpenseCategory" }

func (c *ExpenseCategory) AuditValues() []datamodel.Value {
	values := []datamodel.Value{
		{Key: "Name", Value: c.Name},
		{Key: "Description", Value: c.Description},
	}
	return append(values, c.BaseValues()...)
}

// RepositoryAPI defines the data access methods for categories.
type RepositoryAPI interface {
	GetByID(id int64) (*ExpenseCategory, error)
	GetAll() ([]*ExpenseCategory, error)
	// FindActive fails with "Category not found" / "Category is inactive".
	FindActive(id int64) (*ExpenseCategory, error)
}

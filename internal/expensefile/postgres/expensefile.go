package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/expense-tracking/internal/entitycheck"
	"github.com/frahmantamala/expense-tracking/internal/expensefile"
)

type ExpenseFileRepository struct {
	db *gorm.DB
}

func NewExpenseFileRepository(db *gorm.DB) expensefile.RepositoryAPI {
	return &ExpenseFileRepository{db: db}
}

func (r *ExpenseFileRepository) FindActive(id int64) (*expensefile.ExpenseFile, error) {
	return entitycheck.Find[expensefile.ExpenseFile](r.db, id, "Expense File")
}

func (r *ExpenseFileRepository) ActiveByExpense(expenseID int64) ([]*expensefile.ExpenseFile, error) {
	var files []*expensefile.ExpenseFile
	err := r.db.Where("expense_id = ? AND is_active = ?", expenseID, true).Find(&files).Error
	return files, err
}

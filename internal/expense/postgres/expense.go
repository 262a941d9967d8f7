package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/expense"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.RepositoryAPI {
	return &ExpenseRepository{db: db}
}

// GetByID does not filter on is_active: resolved expenses are soft-deleted
// but still addressable for deletion and history.
func (r *ExpenseRepository) GetByID(id int64) (*expense.Expense, error) {
	var exp expense.Expense
	if err := r.db.First(&exp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NotFound("Expense")
		}
		return nil, err
	}
	return &exp, nil
}

func (r *ExpenseRepository) ListByEmployee(employeeID int64, limit, offset int) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.Where("employee_id = ?", employeeID).
		Order("inserted_date DESC").
		Limit(limit).Offset(offset).
		Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) ListAll(filter expense.QueryFilter) ([]*expense.Expense, error) {
	q := r.db.Model(&expense.Expense{})
	if filter.EmployeeID > 0 {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.CategoryID > 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.PaymentMethodID > 0 {
		q = q.Where("payment_method_id = ?", filter.PaymentMethodID)
	}
	if filter.MinAmount > 0 {
		q = q.Where("amount >= ?", filter.MinAmount)
	}
	if filter.MaxAmount > 0 {
		q = q.Where("amount <= ?", filter.MaxAmount)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Location != "" {
		q = q.Where("location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var expenses []*expense.Expense
	err := q.Order("inserted_date DESC").Find(&expenses).Error
	return expenses, err
}

// HasDuplicate matches on the calendar day of expense_date and treats a nil
// description as equal only to nil. Inactive and resolved rows participate.
func (r *ExpenseRepository) HasDuplicate(candidate *expense.Expense) (bool, error) {
	q := r.db.Model(&expense.Expense{}).
		Where("employee_id = ?", candidate.EmployeeID).
		Where("category_id = ?", candidate.CategoryID).
		Where("payment_method_id = ?", candidate.PaymentMethodID).
		Where("location = ?", candidate.Location).
		Where("amount = ?", candidate.Amount).
		Where("DATE(expense_date) = DATE(?)", candidate.ExpenseDate)

	if candidate.Description == nil {
		q = q.Where("description IS NULL")
	} else {
		q = q.Where("description = ?", *candidate.Description)
	}

	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

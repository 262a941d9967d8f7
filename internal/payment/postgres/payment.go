package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/expense-tracking/internal/payment"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) payment.RepositoryAPI {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) GetByExpenseID(expenseID int64) ([]*payment.Payment, error) {
	var histories []*payment.Payment
	err := r.db.Where("expense_id = ? AND is_active = ?", expenseID, true).
		Order("timestamp DESC").
		Find(&histories).Error
	return histories, err
}

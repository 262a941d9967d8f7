package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/expense-tracking/internal/entitycheck"
	"github.com/frahmantamala/expense-tracking/internal/paymentmethod"
)

type PaymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) paymentmethod.RepositoryAPI {
	return &PaymentMethodRepository{db: db}
}

func (r *PaymentMethodRepository) GetAll() ([]*paymentmethod.PaymentMethod, error) {
	var methods []*paymentmethod.PaymentMethod
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&methods).Error
	return methods, err
}

func (r *PaymentMethodRepository) FindActive(id int64) (*paymentmethod.PaymentMethod, error) {
	return entitycheck.Find[paymentmethod.PaymentMethod](r.db, id, "Payment Method")
}

package paymentmethod

import (
	"errors"

	"github.com/frahmantamala/expense-tracking/internal/core/datamodel"
)

// PaymentMethod is reference data for how an expense was paid.
type PaymentMethod struct {
	datamodel.Entity `gorm:"embedded"`

	Name string `gorm:"column:name;uniqueIndex;not null" json:"name"`
}

func (PaymentMethod) TableName() string { return "payment_methods" }

func (PaymentMethod) EntityName() string { return "PaymentMethod" }

func (m *PaymentMethod) AuditValues() []datamodel.Value {
	values := []datamodel.Value{
		{Key: "Name", Value: m.Name},
	}
	return append(values, m.BaseValues()...)
}

type PaymentMethodDTO struct {
	Name string `json:"name"`
}

func (dto PaymentMethodDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type RepositoryAPI interface {
	GetAll() ([]*PaymentMethod, error)
	FindActive(id int64) (*PaymentMethod, error)
}

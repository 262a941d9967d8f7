// Package payment records the outcome of every bank transfer attempted for an
// expense. A row is written whether the bank reports success or failure, so
// the history shows declined attempts too.
package payment

import (
	"time"

	"github.com/frahmantamala/expense-tracking/internal/core/datamodel"
)

type Payment struct {
	datamodel.Entity `gorm:"embedded"`

	ExpenseID       int64     `gorm:"column:expense_id" json:"expense_id"`
	EmployeeID      int64     `gorm:"column:employee_id" json:"employee_id"`
	Amount          int64     `gorm:"column:amount" json:"amount"`
	Description     string    `gorm:"column:description" json:"description"`
	IBAN            string    `gorm:"column:iban" json:"iban"`
	Success         bool      `gorm:"column:success" json:"success"`
	ReferenceNumber string    `gorm:"column:reference_number" json:"reference_number"`
	Timestamp       time.Time `gorm:"column:timestamp" json:"timestamp"`
	Message         *string   `gorm:"column:message" json:"message,omitempty"`
}

func (Payment) TableName() string { return "payment_histories" }

func (Payment) EntityName() string { return "PaymentHistory" }

func (p *Payment) AuditValues() []datamodel.Value {
	values := []datamodel.Value{
		{Key: "ExpenseId", Value: p.ExpenseID},
		{Key: "EmployeeId", Value: p.EmployeeID},
		{Key: "Amount", Value: p.Amount},
		{Key: "Description", Value: p.Description},
		{Key: "Iban", Value: p.IBAN},
		{Key: "Success", Value: p.Success},
		{Key: "ReferenceNumber", Value: p.ReferenceNumber},
		{Key: "Timestamp", Value: p.Timestamp},
		{Key: "Message", Value: p.Message},
	}
	return append(values, p.BaseValues()...)
}

type RepositoryAPI interface {
	GetByExpenseID(expenseID int64) ([]*Payment, error)
}

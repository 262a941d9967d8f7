package expense

import (
	"errors"
	"time"
)

type CreateExpenseDTO struct {
	CategoryID      int64     `json:"category_id"`
	PaymentMethodID int64     `json:"payment_method_id"`
	Amount          int64     `json:"amount"`
	Location        string    `json:"location"`
	Description     *string   `json:"description,omitempty"`
	ExpenseDate     time.Time `json:"expense_date"`
}

func (dto CreateExpenseDTO) Validate() error {
	if dto.CategoryID <= 0 {
		return errors.New("category_id is required")
	}
	if dto.PaymentMethodID <= 0 {
		return errors.New("payment_method_id is required")
	}
	if dto.Amount <= 0 {
		return errors.New("amount must be greater than zero")
	}
	if dto.Location == "" {
		return errors.New("location is required")
	}
	if dto.ExpenseDate.IsZero() {
		return errors.New("expense_date is required")
	}
	if dto.ExpenseDate.After(endOfToday()) {
		return errors.New("expense_date cannot be in the future")
	}
	return nil
}

// UpdateExpenseDTO uses replace-if-provided-and-valid semantics: zero values
// leave the stored field untouched.
type UpdateExpenseDTO struct {
	CategoryID      int64     `json:"category_id"`
	PaymentMethodID int64     `json:"payment_method_id"`
	Amount          int64     `json:"amount"`
	Location        string    `json:"location"`
	Description     *string   `json:"description,omitempty"`
	ExpenseDate     time.Time `json:"expense_date"`
}

// Apply copies each provided, valid field onto the expense and reports which
// reference fields changed so the caller can re-validate them.
func (dto UpdateExpenseDTO) Apply(e *Expense) (categoryChanged, methodChanged bool) {
	if dto.CategoryID > 0 && dto.CategoryID != e.CategoryID {
		e.CategoryID = dto.CategoryID
		categoryChanged = true
	}
	if dto.PaymentMethodID > 0 && dto.PaymentMethodID != e.PaymentMethodID {
		e.PaymentMethodID = dto.PaymentMethodID
		methodChanged = true
	}
	if dto.Amount > 0 {
		e.Amount = dto.Amount
	}
	if dto.Location != "" {
		e.Location = dto.Location
	}
	if dto.Description != nil {
		e.Description = dto.Description
	}
	if !dto.ExpenseDate.IsZero() && !dto.ExpenseDate.After(endOfToday()) {
		e.ExpenseDate = dto.ExpenseDate
	}
	return categoryChanged, methodChanged
}

type RejectExpenseDTO struct {
	Reason string `json:"reason"`
}

// QueryFilter narrows the expense listing. Zero values leave a dimension
// unconstrained; Location matches as a substring.
type QueryFilter struct {
	EmployeeID      int64
	CategoryID      int64
	PaymentMethodID int64
	MinAmount       int64
	MaxAmount       int64
	Status          string
	Location        string
	Limit           int
	Offset          int
}

func endOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
}

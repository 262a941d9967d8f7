// Package expense implements the approval workflow: employees submit expenses,
// managers approve or reject them, approval pays out through the bank. Status
// moves one way only; Rejected and Paid are terminal.
package expense

import (
	"fmt"
	"time"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/core/datamodel"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
	StatusPaid     Status = "Paid"
)

type Expense struct {
	datamodel.Entity `gorm:"embedded"`

	EmployeeID      int64      `gorm:"column:employee_id" json:"employee_id"`
	CategoryID      int64      `gorm:"column:category_id" json:"category_id"`
	PaymentMethodID int64      `gorm:"column:payment_method_id" json:"payment_method_id"`
	Amount          int64      `gorm:"column:amount" json:"amount"`
	Location        string     `gorm:"column:location" json:"location"`
	Description     *string    `gorm:"column:description" json:"description,omitempty"`
	ExpenseDate     time.Time  `gorm:"column:expense_date" json:"expense_date"`
	Status          Status     `gorm:"column:status" json:"status"`
	RejectionReason *string    `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	ApprovedDate    *time.Time `gorm:"column:approved_date" json:"approved_date,omitempty"`
	PaymentDate     *time.Time `gorm:"column:payment_date" json:"payment_date,omitempty"`
	IsPaid          bool       `gorm:"column:is_paid" json:"is_paid"`
}

func (Expense) TableName() string { return "expenses" }

func (Expense) EntityName() string { return "Expense" }

func (e *Expense) AuditValues() []datamodel.Value {
	values := []datamodel.Value{
		{Key: "EmployeeId", Value: e.EmployeeID},
		{Key: "CategoryId", Value: e.CategoryID},
		{Key: "PaymentMethodId", Value: e.PaymentMethodID},
		{Key: "Amount", Value: e.Amount},
		{Key: "Location", Value: e.Location},
		{Key: "Description", Value: e.Description},
		{Key: "ExpenseDate", Value: e.ExpenseDate},
		{Key: "Status", Value: e.Status},
		{Key: "RejectionReason", Value: e.RejectionReason},
		{Key: "ApprovedDate", Value: e.ApprovedDate},
		{Key: "PaymentDate", Value: e.PaymentDate},
		{Key: "IsPaid", Value: e.IsPaid},
	}
	return append(values, e.BaseValues()...)
}

func (e *Expense) IsPending() bool { return e.Status == StatusPending }

// EnsureUpdatable guards field mutation; core fields are writable only while
// the expense is still pending.
func (e *Expense) EnsureUpdatable() error {
	if !e.IsPending() {
		return internal.NewValidationError(
			fmt.Sprintf("Expense is already processed and cannot be updated. Current status: %s", e.Status),
			internal.ErrCodeInvalidExpenseStatus)
	}
	return nil
}

// EnsureApprovable guards the Pending -> Approved transition.
func (e *Expense) EnsureApprovable() error {
	if !e.IsPending() {
		return internal.NewValidationError(
			fmt.Sprintf("Cannot approve expense in %s status. Only pending expenses can be approved.", e.Status),
			internal.ErrCodeInvalidExpenseStatus)
	}
	return nil
}

// EnsureDeletable guards deletion; only resolved expenses leave the system.
func (e *Expense) EnsureDeletable() error {
	if e.IsPending() {
		return internal.NewValidationError(
			fmt.Sprintf("Cannot delete expense in %s status. Only approved and rejected expenses can be deleted.", e.Status),
			internal.ErrCodeInvalidExpenseStatus)
	}
	return nil
}

// MarkApproved stamps the approval without settling payment. Used when the
// bank declined and the deployment requires bank success before Paid.
func (e *Expense) MarkApproved(now time.Time) {
	e.Status = StatusApproved
	e.ApprovedDate = &now
}

// MarkPaid finalizes approval and payment in one step. A paid expense leaves
// the actionable set, so it is deactivated as well.
func (e *Expense) MarkPaid(now time.Time) {
	e.Status = StatusPaid
	if e.ApprovedDate == nil {
		e.ApprovedDate = &now
	}
	e.PaymentDate = &now
	e.IsPaid = true
	e.IsActive = false
}

// MarkRejected stores the reason and deactivates the expense.
func (e *Expense) MarkRejected(reason string) {
	e.Status = StatusRejected
	e.RejectionReason = &reason
	e.IsActive = false
}

// RepositoryAPI defines the data access for expenses.
type RepositoryAPI interface {
	GetByID(id int64) (*Expense, error)
	ListByEmployee(employeeID int64, limit, offset int) ([]*Expense, error)
	ListAll(filter QueryFilter) ([]*Expense, error)

	// HasDuplicate reports whether any persisted expense of the same owner
	// matches the candidate on category, payment method, location, amount,
	// expense date (day only) and description. Inactive and resolved rows
	// count too.
	HasDuplicate(candidate *Expense) (bool, error)
}

// ErrDuplicate is the duplicate-detector rejection returned on Create.
func ErrDuplicate() *internal.AppError {
	return internal.NewConflictError(
		"A similar expense already exists. Duplicate entries are not allowed.",
		internal.ErrCodeDuplicateExpense)
}

// Package report aggregates spend for managers: company-wide breakdowns by
// category, payment method and department, plus per-employee summaries.
// Reports read committed rows only and never mutate state, so they go through
// raw SQL instead of the ORM.
package report

import (
	"time"

	"github.com/frahmantamala/expense-tracking/internal"
)

type Period string

const (
	PeriodDaily   Period = "Daily"
	PeriodWeekly  Period = "Weekly"
	PeriodMonthly Period = "Monthly"
)

// ParsePeriod accepts the enum case-sensitively and defaults to Monthly when
// empty.
func ParsePeriod(raw string) (Period, error) {
	switch Period(raw) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return Period(raw), nil
	case "":
		return PeriodMonthly, nil
	}
	return "", internal.NewValidationError("period must be one of Daily, Weekly, Monthly", internal.ErrCodeValidationFailed)
}

// Since returns the inclusive lower bound of the reporting window ending now.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case PeriodDaily:
		return now.AddDate(0, 0, -1)
	case PeriodWeekly:
		return now.AddDate(0, 0, -7)
	default:
		return now.AddDate(0, -1, 0)
	}
}

type CategoryTotal struct {
	CategoryID   int64  `db:"category_id" json:"category_id"`
	CategoryName string `db:"category_name" json:"category_name"`
	ExpenseCount int64  `db:"expense_count" json:"expense_count"`
	TotalAmount  int64  `db:"total_amount" json:"total_amount"`
}

type PaymentMethodTotal struct {
	PaymentMethodID   int64  `db:"payment_method_id" json:"payment_method_id"`
	PaymentMethodName string `db:"payment_method_name" json:"payment_method_name"`
	ExpenseCount      int64  `db:"expense_count" json:"expense_count"`
	TotalAmount       int64  `db:"total_amount" json:"total_amount"`
}

type DepartmentTotal struct {
	DepartmentID   int64  `db:"department_id" json:"department_id"`
	DepartmentName string `db:"department_name" json:"department_name"`
	ExpenseCount   int64  `db:"expense_count" json:"expense_count"`
	TotalAmount    int64  `db:"total_amount" json:"total_amount"`
}

type CompanyReport struct {
	Period           Period               `json:"period"`
	Since            time.Time            `json:"since"`
	TotalPaid        int64                `json:"total_paid"`
	ByCategory       []CategoryTotal      `json:"by_category"`
	ByPaymentMethod  []PaymentMethodTotal `json:"by_payment_method"`
	ByDepartment     []DepartmentTotal    `json:"by_department"`
}

type EmployeeReport struct {
	Period        Period          `json:"period"`
	Since         time.Time       `json:"since"`
	EmployeeID    int64           `json:"employee_id"`
	PendingCount  int64           `json:"pending_count"`
	PendingAmount int64           `json:"pending_amount"`
	PaidCount     int64           `json:"paid_count"`
	PaidAmount    int64           `json:"paid_amount"`
	RejectedCount int64           `json:"rejected_count"`
	ByCategory    []CategoryTotal `json:"by_category"`
}

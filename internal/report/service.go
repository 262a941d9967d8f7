package report

import (
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

type Service struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewService(db *sqlx.DB, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

const companyTotalQuery = `
SELECT COALESCE(SUM(amount), 0)
FROM expenses
WHERE status = 'Paid' AND payment_date >= $1`

const byCategoryQuery = `
SELECT e.category_id, c.name AS category_name,
       COUNT(*) AS expense_count, COALESCE(SUM(e.amount), 0) AS total_amount
FROM expenses e
JOIN expense_categories c ON c.id = e.category_id
WHERE e.status = 'Paid' AND e.payment_date >= $1
GROUP BY e.category_id, c.name
ORDER BY total_amount DESC`

const byPaymentMethodQuery = `
SELECT e.payment_method_id, m.name AS payment_method_name,
       COUNT(*) AS expense_count, COALESCE(SUM(e.amount), 0) AS total_amount
FROM expenses e
JOIN payment_methods m ON m.id = e.payment_method_id
WHERE e.status = 'Paid' AND e.payment_date >= $1
GROUP BY e.payment_method_id, m.name
ORDER BY total_amount DESC`

const byDepartmentQuery = `
SELECT emp.department_id, d.name AS department_name,
       COUNT(*) AS expense_count, COALESCE(SUM(e.amount), 0) AS total_amount
FROM expenses e
JOIN employees emp ON emp.id = e.employee_id
JOIN departments d ON d.id = emp.department_id
WHERE e.status = 'Paid' AND e.payment_date >= $1
GROUP BY emp.department_id, d.name
ORDER BY total_amount DESC`

func (s *Service) Company(period Period) (*CompanyReport, error) {
	since := period.Since(time.Now())
	rep := &CompanyReport{Period: period, Since: since}

	if err := s.db.Get(&rep.TotalPaid, companyTotalQuery, since); err != nil {
		return nil, err
	}
	if err := s.db.Select(&rep.ByCategory, byCategoryQuery, since); err != nil {
		return nil, err
	}
	if err := s.db.Select(&rep.ByPaymentMethod, byPaymentMethodQuery, since); err != nil {
		return nil, err
	}
	if err := s.db.Select(&rep.ByDepartment, byDepartmentQuery, since); err != nil {
		return nil, err
	}

	s.logger.Info("company report built", "period", period, "total_paid", rep.TotalPaid)
	return rep, nil
}

const employeeStatusQuery = `
SELECT
  COUNT(*) FILTER (WHERE status = 'Pending')  AS pending_count,
  COALESCE(SUM(amount) FILTER (WHERE status = 'Pending'), 0) AS pending_amount,
  COUNT(*) FILTER (WHERE status = 'Paid')     AS paid_count,
  COALESCE(SUM(amount) FILTER (WHERE status = 'Paid'), 0)    AS paid_amount,
  COUNT(*) FILTER (WHERE status = 'Rejected') AS rejected_count
FROM expenses
WHERE employee_id = $1 AND expense_date >= $2`

const employeeByCategoryQuery = `
SELECT e.category_id, c.name AS category_name,
       COUNT(*) AS expense_count, COALESCE(SUM(e.amount), 0) AS total_amount
FROM expenses e
JOIN expense_categories c ON c.id = e.category_id
WHERE e.employee_id = $1 AND e.expense_date >= $2
GROUP BY e.category_id, c.name
ORDER BY total_amount DESC`

func (s *Service) Employee(employeeID int64, period Period) (*EmployeeReport, error) {
	since := period.Since(time.Now())
	rep := &EmployeeReport{Period: period, Since: since, EmployeeID: employeeID}

	row := s.db.QueryRowx(employeeStatusQuery, employeeID, since)
	if err := row.Scan(&rep.PendingCount, &rep.PendingAmount, &rep.PaidCount, &rep.PaidAmount, &rep.RejectedCount); err != nil {
		return nil, err
	}
	if err := s.db.Select(&rep.ByCategory, employeeByCategoryQuery, employeeID, since); err != nil {
		return nil, err
	}
	return rep, nil
}

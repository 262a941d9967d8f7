package expense

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/expense-tracking/internal"
	"github.com/frahmantamala/expense-tracking/internal/audit"
	"github.com/frahmantamala/expense-tracking/internal/payment"
	"github.com/frahmantamala/expense-tracking/internal/session"
)

// ReferenceValidator checks category and payment-method references before an
// expense may use them.
type ReferenceValidator interface {
	CategoryActive(id int64) error
	PaymentMethodActive(id int64) error
}

// PaymentProcessor settles one approved expense against the bank and records
// the attempt on the recorder.
type PaymentProcessor interface {
	Process(ctx context.Context, rec *audit.Recorder, req payment.Request) (*payment.Result, error)
}

// ExpenseFiles cascades soft deletes to attached files when an expense is
// deleted.
type ExpenseFiles interface {
	DeactivateForExpense(rec *audit.Recorder, expenseID int64) error
}

// PayoutDirectory resolves the owner's bank account for payment.
type PayoutDirectory interface {
	IBANFor(employeeID int64) (string, error)
}

type Service struct {
	repo      RepositoryAPI
	refs      ReferenceValidator
	payments  PaymentProcessor
	files     ExpenseFiles
	payouts   PayoutDirectory
	committer audit.Committer
	logger    *slog.Logger

	// requireBankSuccess leaves a declined expense at Approved for a later
	// retry instead of finalizing it as Paid.
	requireBankSuccess bool
}

func NewService(
	repo RepositoryAPI,
	refs ReferenceValidator,
	payments PaymentProcessor,
	files ExpenseFiles,
	payouts PayoutDirectory,
	committer audit.Committer,
	requireBankSuccess bool,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:               repo,
		refs:               refs,
		payments:           payments,
		files:              files,
		payouts:            payouts,
		committer:          committer,
		requireBankSuccess: requireBankSuccess,
		logger:             logger,
	}
}

func (s *Service) Create(sess *session.Session, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if err := s.refs.CategoryActive(dto.CategoryID); err != nil {
		return nil, err
	}
	if err := s.refs.PaymentMethodActive(dto.PaymentMethodID); err != nil {
		return nil, err
	}

	exp := &Expense{
		EmployeeID:      sess.UserID,
		CategoryID:      dto.CategoryID,
		PaymentMethodID: dto.PaymentMethodID,
		Amount:          dto.Amount,
		Location:        dto.Location,
		Description:     dto.Description,
		ExpenseDate:     dto.ExpenseDate,
		Status:          StatusPending,
	}

	dup, err := s.repo.HasDuplicate(exp)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicate()
	}

	rec := audit.NewRecorder(sess.UserName)
	rec.Added(exp)
	if err := s.committer.Commit(rec); err != nil {
		s.logger.Error("failed to create expense", "error", err, "employee_id", sess.UserID)
		return nil, err
	}

	s.logger.Info("expense created",
		"expense_id", exp.ID,
		"employee_id", exp.EmployeeID,
		"amount", exp.Amount,
		"status", exp.Status)
	return exp, nil
}

func (s *Service) Update(sess *session.Session, id int64, dto UpdateExpenseDTO) (*Expense, error) {
	exp, err := s.loadOwned(sess, id)
	if err != nil {
		return nil, err
	}
	if err := exp.EnsureUpdatable(); err != nil {
		return nil, err
	}

	snap := audit.Snapshot(exp)
	categoryChanged, methodChanged := dto.Apply(exp)
	if categoryChanged {
		if err := s.refs.CategoryActive(exp.CategoryID); err != nil {
			return nil, err
		}
	}
	if methodChanged {
		if err := s.refs.PaymentMethodActive(exp.PaymentMethodID); err != nil {
			return nil, err
		}
	}

	rec := audit.NewRecorder(sess.UserName)
	rec.Modified(exp, snap)
	if err := s.committer.Commit(rec); err != nil {
		return nil, err
	}
	return exp, nil
}

// Approve pays the expense through the bank and finalizes it. The status
// transition and the payment history row commit in one transaction; the
// returned error reflects the bank's answer even when the transition has
// already been persisted.
func (s *Service) Approve(ctx context.Context, sess *session.Session, id int64) (*Expense, error) {
	exp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := exp.EnsureApprovable(); err != nil {
		return nil, err
	}

	iban, err := s.payouts.IBANFor(exp.EmployeeID)
	if err != nil {
		return nil, err
	}

	snap := audit.Snapshot(exp)
	rec := audit.NewRecorder(sess.UserName)

	description := fmt.Sprintf("Expense payment for expense #%d", exp.ID)
	result, err := s.payments.Process(ctx, rec, payment.Request{
		ExpenseID:   exp.ID,
		EmployeeID:  exp.EmployeeID,
		Amount:      exp.Amount,
		Description: description,
		IBAN:        iban,
	})
	if err != nil {
		return nil, internal.NewExternalError("Payment provider is unavailable", internal.ErrCodePaymentFailed)
	}

	now := time.Now()
	if result.Success || !s.requireBankSuccess {
		exp.MarkPaid(now)
	} else {
		exp.MarkApproved(now)
	}

	rec.Modified(exp, snap)
	if err := s.committer.Commit(rec); err != nil {
		s.logger.Error("failed to commit approval", "error", err, "expense_id", exp.ID)
		return nil, err
	}

	if !result.Success {
		s.logger.Warn("expense approved but payment declined",
			"expense_id", exp.ID,
			"status", exp.Status,
			"message", result.Message)
		return exp, internal.NewExternalError(
			fmt.Sprintf("Payment failed: %s", result.Message),
			internal.ErrCodePaymentFailed)
	}

	s.logger.Info("expense approved and paid",
		"expense_id", exp.ID,
		"reference_number", result.ReferenceNumber,
		"approved_by", sess.UserName)
	return exp, nil
}

// RetryPayment re-runs the bank transfer for an expense left at Approved by a
// declined payment.
func (s *Service) RetryPayment(ctx context.Context, sess *session.Session, id int64) (*Expense, error) {
	exp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exp.Status != StatusApproved {
		return nil, internal.NewValidationError(
			fmt.Sprintf("Cannot retry payment for expense in %s status. Only approved expenses can be retried.", exp.Status),
			internal.ErrCodeInvalidExpenseStatus)
	}

	iban, err := s.payouts.IBANFor(exp.EmployeeID)
	if err != nil {
		return nil, err
	}

	snap := audit.Snapshot(exp)
	rec := audit.NewRecorder(sess.UserName)

	result, err := s.payments.Process(ctx, rec, payment.Request{
		ExpenseID:   exp.ID,
		EmployeeID:  exp.EmployeeID,
		Amount:      exp.Amount,
		Description: fmt.Sprintf("Expense payment for expense #%d", exp.ID),
		IBAN:        iban,
	})
	if err != nil {
		return nil, internal.NewExternalError("Payment provider is unavailable", internal.ErrCodePaymentFailed)
	}

	if result.Success {
		exp.MarkPaid(time.Now())
	}
	rec.Modified(exp, snap)
	if err := s.committer.Commit(rec); err != nil {
		return nil, err
	}

	if !result.Success {
		return exp, internal.NewExternalError(
			fmt.Sprintf("Payment failed: %s", result.Message),
			internal.ErrCodePaymentFailed)
	}
	return exp, nil
}

func (s *Service) Reject(sess *session.Session, id int64, dto RejectExpenseDTO) (*Expense, error) {
	if dto.Reason == "" {
		return nil, internal.NewValidationError("Rejection reason is required", internal.ErrCodeRejectionReason)
	}

	exp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !exp.IsPending() {
		return nil, internal.NewValidationError(
			fmt.Sprintf("Cannot reject expense in %s status. Only pending expenses can be rejected.", exp.Status),
			internal.ErrCodeInvalidExpenseStatus)
	}

	snap := audit.Snapshot(exp)
	exp.MarkRejected(dto.Reason)

	rec := audit.NewRecorder(sess.UserName)
	rec.Modified(exp, snap)
	if err := s.committer.Commit(rec); err != nil {
		return nil, err
	}

	s.logger.Info("expense rejected",
		"expense_id", exp.ID,
		"rejected_by", sess.UserName)
	return exp, nil
}

func (s *Service) Delete(sess *session.Session, id int64) error {
	exp, err := s.loadOwned(sess, id)
	if err != nil {
		return err
	}
	if err := exp.EnsureDeletable(); err != nil {
		return err
	}

	rec := audit.NewRecorder(sess.UserName)
	if err := s.files.DeactivateForExpense(rec, exp.ID); err != nil {
		return err
	}
	rec.Deleted(exp, audit.Snapshot(exp))
	return s.committer.Commit(rec)
}

func (s *Service) GetByID(sess *session.Session, id int64) (*Expense, error) {
	return s.loadOwned(sess, id)
}

func (s *Service) ListMine(sess *session.Session, limit, offset int) ([]*Expense, error) {
	return s.repo.ListByEmployee(sess.UserID, limit, offset)
}

// ListAll applies the caller's filter. Non-managers only ever see their own
// expenses, whatever employee filter they pass.
func (s *Service) ListAll(sess *session.Session, filter QueryFilter) ([]*Expense, error) {
	if !sess.IsManager() {
		filter.EmployeeID = sess.UserID
	}
	return s.repo.ListAll(filter)
}

// loadOwned fetches the expense and enforces that employees only touch their
// own rows; managers see everything.
func (s *Service) loadOwned(sess *session.Session, id int64) (*Expense, error) {
	exp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !sess.IsManager() && exp.EmployeeID != sess.UserID {
		return nil, internal.NewForbiddenError("You can only access your own expenses", internal.ErrCodeAccessDenied)
	}
	return exp, nil
}

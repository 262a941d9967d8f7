package payment

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/expense-tracking/internal/audit"
	"github.com/frahmantamala/expense-tracking/internal/bank"
)

// Request carries everything the processor needs to pay one approved expense.
type Request struct {
	ExpenseID   int64
	EmployeeID  int64
	Amount      int64
	Description string
	IBAN        string
}

// Result summarizes the bank's answer for the caller deciding the expense's
// next status.
type Result struct {
	Success         bool
	ReferenceNumber string
	Message         string
}

// Processor submits a transfer to the bank and records the attempt on the
// caller's recorder. The history row and the expense transition commit in the
// same transaction.
type Processor struct {
	bank   bank.Client
	logger *slog.Logger
}

func NewProcessor(bankClient bank.Client, logger *slog.Logger) *Processor {
	return &Processor{bank: bankClient, logger: logger}
}

// Process calls the bank synchronously. A transport error propagates without
// recording anything; a bank answer, declined or not, always yields a history
// row.
func (p *Processor) Process(ctx context.Context, rec *audit.Recorder, req Request) (*Result, error) {
	resp, err := p.bank.SendPayment(ctx, req.IBAN, req.Description, req.Amount)
	if err != nil {
		p.logger.Error("bank transfer failed",
			"error", err,
			"expense_id", req.ExpenseID,
			"amount", req.Amount)
		return nil, err
	}

	history := &Payment{
		ExpenseID:       req.ExpenseID,
		EmployeeID:      req.EmployeeID,
		Amount:          req.Amount,
		Description:     req.Description,
		IBAN:            req.IBAN,
		Success:         resp.Success,
		ReferenceNumber: resp.ReferenceNumber,
		Timestamp:       resp.Timestamp,
	}
	if resp.Message != "" {
		msg := resp.Message
		history.Message = &msg
	}
	rec.Added(history)

	if !resp.Success {
		p.logger.Warn("bank declined transfer",
			"expense_id", req.ExpenseID,
			"reference_number", resp.ReferenceNumber,
			"message", resp.Message)
	}

	return &Result{
		Success:         resp.Success,
		ReferenceNumber: resp.ReferenceNumber,
		Message:         resp.Message,
	}, nil
}

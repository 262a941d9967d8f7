// Package bank talks to the external payment provider. Approval calls the
// bank synchronously; a transport failure here is distinct from the bank
// answering with Success=false.
package bank

import (
	"context"
	"time"
)

// Response is the provider's answer to a transfer request. Success false with
// a nil error means the bank processed the request and declined it.
type Response struct {
	Success         bool      `json:"success"`
	ReferenceNumber string    `json:"reference_number"`
	Timestamp       time.Time `json:"timestamp"`
	Message         string    `json:"message,omitempty"`
}

// Client submits a single transfer. Implementations must not retry; the
// caller decides what a failure means for the expense.
type Client interface {
	SendPayment(ctx context.Context, iban, description string, amount int64) (*Response, error)
}

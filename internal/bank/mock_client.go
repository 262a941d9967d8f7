package bank

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MockClient stands in for the real provider in local environments. Every
// transfer succeeds with a generated reference number.
type MockClient struct {
	logger *slog.Logger
}

func NewMockClient(logger *slog.Logger) *MockClient {
	return &MockClient{logger: logger}
}

func (c *MockClient) SendPayment(ctx context.Context, iban, description string, amount int64) (*Response, error) {
	ref := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])

	c.logger.Info("mock bank payment",
		"iban", iban,
		"amount", amount,
		"reference_number", ref)

	return &Response{
		Success:         true,
		ReferenceNumber: ref,
		Timestamp:       time.Now(),
		Message:         "Payment processed successfully",
	}, nil
}

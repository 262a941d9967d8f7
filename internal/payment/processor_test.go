package payment_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-tracking/internal/audit"
	"github.com/frahmantamala/expense-tracking/internal/bank"
	"github.com/frahmantamala/expense-tracking/internal/payment"
)

func TestPayment(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Payment Suite")
}

type mockBankClient struct {
	response *bank.Response
	err      error

	lastIBAN        string
	lastDescription string
	lastAmount      int64
}

func (m *mockBankClient) SendPayment(ctx context.Context, iban, description string, amount int64) (*bank.Response, error) {
	m.lastIBAN = iban
	m.lastDescription = description
	m.lastAmount = amount
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

var _ = Describe("Payment Processor", func() {
	var (
		client    *mockBankClient
		processor *payment.Processor
		rec       *audit.Recorder
	)

	request := payment.Request{
		ExpenseID:   5,
		EmployeeID:  10,
		Amount:      4500,
		Description: "Expense payment for expense #5",
		IBAN:        "TR330006100519786457841326",
	}

	BeforeEach(func() {
		client = &mockBankClient{
			response: &bank.Response{
				Success:         true,
				ReferenceNumber: "REF123",
				Timestamp:       time.Now(),
				Message:         "Payment processed successfully",
			},
		}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		processor = payment.NewProcessor(client, logger)
		rec = audit.NewRecorder("admin")
	})

	Context("when the bank accepts the transfer", func() {
		It("should return success and record a history row", func() {
			result, err := processor.Process(context.Background(), rec, request)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeTrue())
			Expect(result.ReferenceNumber).To(Equal("REF123"))

			changes := rec.Changes()
			Expect(changes).To(HaveLen(1))
			Expect(changes[0].Action).To(Equal(audit.ActionAdded))

			history, ok := changes[0].Entity.(*payment.Payment)
			Expect(ok).To(BeTrue())
			Expect(history.ExpenseID).To(Equal(int64(5)))
			Expect(history.EmployeeID).To(Equal(int64(10)))
			Expect(history.Amount).To(Equal(int64(4500)))
			Expect(history.Success).To(BeTrue())
			Expect(history.ReferenceNumber).To(Equal("REF123"))
			Expect(history.Message).NotTo(BeNil())
			Expect(*history.Message).To(Equal("Payment processed successfully"))
		})

		It("should pass the request through to the bank", func() {
			_, err := processor.Process(context.Background(), rec, request)

			Expect(err).NotTo(HaveOccurred())
			Expect(client.lastIBAN).To(Equal(request.IBAN))
			Expect(client.lastDescription).To(Equal(request.Description))
			Expect(client.lastAmount).To(Equal(request.Amount))
		})
	})

	Context("when the bank declines the transfer", func() {
		BeforeEach(func() {
			client.response = &bank.Response{
				Success:   false,
				Timestamp: time.Now(),
				Message:   "insufficient funds",
			}
		})

		It("should still record the failed attempt", func() {
			result, err := processor.Process(context.Background(), rec, request)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Success).To(BeFalse())
			Expect(result.Message).To(Equal("insufficient funds"))

			changes := rec.Changes()
			Expect(changes).To(HaveLen(1))
			history := changes[0].Entity.(*payment.Payment)
			Expect(history.Success).To(BeFalse())
		})
	})

	Context("when the bank is unreachable", func() {
		It("should propagate the error and record nothing", func() {
			client.err = errors.New("connection refused")

			result, err := processor.Process(context.Background(), rec, request)

			Expect(err).To(MatchError("connection refused"))
			Expect(result).To(BeNil())
			Expect(rec.Empty()).To(BeTrue())
		})
	})

	It("should leave the message empty when the bank sends none", func() {
		client.response.Message = ""

		_, err := processor.Process(context.Background(), rec, request)

		Expect(err).NotTo(HaveOccurred())
		history := rec.Changes()[0].Entity.(*payment.Payment)
		Expect(history.Message).To(BeNil())
	})
})

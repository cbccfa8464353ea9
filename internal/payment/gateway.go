package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type ChargeRequest struct {
	AmountCents int64
	Currency    string
	Card        Card
	Reference   string
}

type ChargeResult struct {
	Success   bool
	PaymentID string
	Message   string
}

// Gateway charges a card. A declined charge is a successful call with
// Success=false; err is reserved for transport failures.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	Refund(ctx context.Context, paymentID string) error
}

// DeclineSuffix marks test cards the mock gateway refuses.
const DeclineSuffix = "0002"

type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.AmountCents <= 0 {
		return &ChargeResult{Success: false, Message: "amount must be positive"}, nil
	}
	if strings.HasSuffix(normalizeNumber(req.Card.Number), DeclineSuffix) {
		return &ChargeResult{Success: false, Message: "card declined by issuer"}, nil
	}
	return &ChargeResult{
		Success:   true,
		PaymentID: fmt.Sprintf("PAY-%s", uuid.NewString()),
	}, nil
}

func (g *MockGateway) Refund(ctx context.Context, paymentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !strings.HasPrefix(paymentID, "PAY-") {
		return fmt.Errorf("unknown payment %q", paymentID)
	}
	return nil
}

var _ Gateway = (*MockGateway)(nil)

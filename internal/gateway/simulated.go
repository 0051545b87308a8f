package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SimulatedClient is used in environments without live gateway credentials.
// Orders and payouts get locally generated references; signatures use the
// same HMAC scheme as the live client so verification code paths match.
type SimulatedClient struct {
	keyID     string
	keySecret string
}

func NewSimulatedClient(keyID, keySecret string) *SimulatedClient {
	if keyID == "" {
		keyID = "rzp_test_simulated"
	}
	return &SimulatedClient{keyID: keyID, keySecret: keySecret}
}

func (c *SimulatedClient) CreateOrder(ctx context.Context, amountCents int64, currency, receipt string, notes map[string]string) (*Order, error) {
	return &Order{
		OrderRef:    fmt.Sprintf("order_sim_%s", uuid.New().String()[:12]),
		AmountCents: amountCents,
		Currency:    currency,
		KeyID:       c.keyID,
	}, nil
}

func (c *SimulatedClient) VerifySignature(orderRef, txnRef, signature string) bool {
	return VerifyPaymentSignature(orderRef, txnRef, signature, c.keySecret)
}

func (c *SimulatedClient) CreatePayout(ctx context.Context, fundAccountID string, amountCents int64, mode string) (*PayoutResult, error) {
	return &PayoutResult{
		PayoutID: fmt.Sprintf("pout_sim_%s", uuid.New().String()[:12]),
		Status:   "processed",
	}, nil
}

package gateway

import (
	"context"
	"errors"
)

var (
	ErrGatewayTimeout = errors.New("gateway timeout")
	ErrGatewayError   = errors.New("gateway error")
)

type Order struct {
	OrderRef    string
	AmountCents int64
	Currency    string
	KeyID       string
}

type PayoutResult struct {
	PayoutID string
	Status   string
}

// Client is the slice of the payment gateway the escrow engine needs:
// order creation for checkout, signature proof of a funded order, and
// bank transfers against a fund account.
type Client interface {
	CreateOrder(ctx context.Context, amountCents int64, currency, receipt string, notes map[string]string) (*Order, error)
	VerifySignature(orderRef, txnRef, signature string) bool
	CreatePayout(ctx context.Context, fundAccountID string, amountCents int64, mode string) (*PayoutResult, error)
}

package payout

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payout) error
	FindProcessedByPaymentID(ctx context.Context, paymentID string) (*Payout, error)
	ListByPayee(ctx context.Context, payeeID int) ([]Payout, error)
}

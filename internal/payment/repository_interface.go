package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	FindByOrderRef(ctx context.Context, orderRef string) (*Payment, error)
	FindLatestByRequestID(ctx context.Context, requestID string) (*Payment, error)
	MarkEscrowed(ctx context.Context, id, txnRef string) error
	ReleaseFunds(ctx context.Context, id string, feeCents, netCents int64, autoReleased bool) (*Payment, error)
	MarkRefunded(ctx context.Context, id string) error
	SetPayoutOutcome(ctx context.Context, id, status, message string) error
	ListEscrowed(ctx context.Context) ([]EscrowedPayment, error)
}

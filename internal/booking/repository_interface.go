package booking

import "context"

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByRequestID(ctx context.Context, requestID string) (*Booking, error)
	ListByClient(ctx context.Context, clientID int) ([]Booking, error)
	ListByCreator(ctx context.Context, creatorID int) ([]Booking, error)
	UpdateStatusByRequestID(ctx context.Context, requestID, status string) error
}

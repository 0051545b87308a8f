package request

import "context"

type Repository interface {
	Create(ctx context.Context, clientID int, req CreateRequest) (*Request, error)
	GetByID(ctx context.Context, id string) (*Request, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListByClient(ctx context.Context, clientID int) ([]Request, error)
	ListByCreator(ctx context.Context, creatorID int) ([]Request, error)
}

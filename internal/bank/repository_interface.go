package bank

import "context"

type Repository interface {
	Upsert(ctx context.Context, d *Details) error
	GetByUserID(ctx context.Context, userID int) (*Details, error)
}

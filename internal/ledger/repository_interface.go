package ledger

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	GetBalance(ctx context.Context, payeeID int) (*Balance, error)
	CreditRelease(ctx context.Context, payeeID int, netCents int64, paymentID string) error
	// CreditReleaseTx applies the release credit inside a caller-owned
	// transaction so the escrow status flip and the ledger credit commit
	// atomically.
	CreditReleaseTx(ctx context.Context, tx *sqlx.Tx, payeeID int, netCents int64, paymentID string) error
	DebitPayout(ctx context.Context, payeeID int, amountCents int64, paymentID string) error
	ListEntries(ctx context.Context, payeeID int, limit, offset int) ([]Entry, error)
}

package payout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrPayoutNotFound = errors.New("payout not found")
	ErrPayoutExists   = errors.New("payment already has a processed payout")
)

const payoutColumns = `id, payment_id, payee_id, amount_cents, mode, status, message, gateway_payout_id, account_masked, ifsc, holder_name, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func newPayoutID() string {
	return fmt.Sprintf("po_%s", uuid.New().String()[:8])
}

func (r *repository) Create(ctx context.Context, p *Payout) error {
	if p.ID == "" {
		p.ID = newPayoutID()
	}
	query := `
		INSERT INTO payouts (id, payment_id, payee_id, amount_cents, mode, status, message, gateway_payout_id, account_masked, ifsc, holder_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.PaymentID, p.PayeeID, p.AmountCents, p.Mode, p.Status, p.Message, p.GatewayPayoutID,
		p.AccountMasked, p.IFSC, p.HolderName,
	).Scan(&p.CreatedAt)
	if err != nil {
		// A partial unique index allows one processed row per payment; a
		// concurrent dispatch losing that race surfaces as a duplicate.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrPayoutExists
		}
		return fmt.Errorf("creating payout record: %w", err)
	}
	return nil
}

func (r *repository) FindProcessedByPaymentID(ctx context.Context, paymentID string) (*Payout, error) {
	var p Payout
	query := fmt.Sprintf(`
		SELECT %s FROM payouts
		WHERE payment_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT 1`, payoutColumns)

	if err := r.db.GetContext(ctx, &p, query, paymentID, StatusProcessed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPayoutNotFound
		}
		return nil, fmt.Errorf("finding processed payout: %w", err)
	}
	return &p, nil
}

func (r *repository) ListByPayee(ctx context.Context, payeeID int) ([]Payout, error) {
	query := fmt.Sprintf(`SELECT %s FROM payouts WHERE payee_id = $1 ORDER BY created_at DESC`, payoutColumns)

	payouts := []Payout{}
	if err := r.db.SelectContext(ctx, &payouts, query, payeeID); err != nil {
		return nil, fmt.Errorf("listing payouts: %w", err)
	}
	return payouts, nil
}

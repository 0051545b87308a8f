package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Mithunit18/freelance/internal/ledger"
)

const paymentColumns = `id, request_id, payer_id, payee_id, amount_cents, status, order_ref,
	txn_ref, fee_cents, net_cents, description, auto_released, payout_status, payout_message,
	created_at, completed_at`

type repository struct {
	db     *sqlx.DB
	ledger ledger.Repository
}

func NewRepository(db *sqlx.DB, ledgerRepo ledger.Repository) Repository {
	return &repository{db: db, ledger: ledgerRepo}
}

func (r *repository) Create(ctx context.Context, p *Payment) error {
	query := `
		INSERT INTO payments (id, request_id, payer_id, payee_id, amount_cents, status, order_ref, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.RequestID, p.PayerID, p.PayeeID, p.AmountCents, p.Status, p.OrderRef, p.Description,
	).Scan(&p.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateOrder
		}
		return fmt.Errorf("creating payment: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Payment, error) {
	var p Payment
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE id = $1`, paymentColumns)
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("getting payment: %w", err)
	}
	return &p, nil
}

func (r *repository) FindByOrderRef(ctx context.Context, orderRef string) (*Payment, error) {
	var p Payment
	query := fmt.Sprintf(`SELECT %s FROM payments WHERE order_ref = $1`, paymentColumns)
	if err := r.db.GetContext(ctx, &p, query, orderRef); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("finding payment by order ref: %w", err)
	}
	return &p, nil
}

func (r *repository) FindLatestByRequestID(ctx context.Context, requestID string) (*Payment, error) {
	var p Payment
	query := fmt.Sprintf(`
		SELECT %s FROM payments
		WHERE request_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, paymentColumns)
	if err := r.db.GetContext(ctx, &p, query, requestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("finding latest payment for request: %w", err)
	}
	return &p, nil
}

// MarkEscrowed flips pending → escrowed. The status guard in the WHERE
// clause makes concurrent verifications race safely: exactly one wins,
// the rest see ErrStaleState.
func (r *repository) MarkEscrowed(ctx context.Context, id, txnRef string) error {
	query := `
		UPDATE payments
		SET status = $3, txn_ref = $2
		WHERE id = $1 AND status = $4`

	result, err := r.db.ExecContext(ctx, query, id, txnRef, StatusEscrowed, StatusPending)
	if err != nil {
		return fmt.Errorf("marking payment escrowed: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking payment escrowed: %w", err)
	}
	if rows == 0 {
		return ErrStaleState
	}
	return nil
}

// ReleaseFunds performs the release as a single transaction: the guarded
// escrowed → completed flip and the payee's balance credit commit together
// or not at all. Concurrent releases of the same payment resolve by the
// status guard; the loser gets ErrNotEscrowed and the ledger is credited
// exactly once.
func (r *repository) ReleaseFunds(ctx context.Context, id string, feeCents, netCents int64, autoReleased bool) (*Payment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning release transaction: %w", err)
	}
	defer tx.Rollback()

	var p Payment
	query := fmt.Sprintf(`
		UPDATE payments
		SET status = $2, fee_cents = $3, net_cents = $4, auto_released = $5,
		    payout_status = $6, completed_at = NOW()
		WHERE id = $1 AND status = $7
		RETURNING %s`, paymentColumns)

	err = tx.QueryRowxContext(ctx, query,
		id, StatusCompleted, feeCents, netCents, autoReleased, PayoutPending, StatusEscrowed,
	).StructScan(&p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var status string
			if lookupErr := tx.GetContext(ctx, &status, `SELECT status FROM payments WHERE id = $1`, id); lookupErr != nil {
				if errors.Is(lookupErr, sql.ErrNoRows) {
					return nil, ErrPaymentNotFound
				}
				return nil, fmt.Errorf("checking payment state: %w", lookupErr)
			}
			return nil, ErrNotEscrowed
		}
		return nil, fmt.Errorf("releasing payment: %w", err)
	}

	if err := r.ledger.CreditReleaseTx(ctx, tx, p.PayeeID, netCents, p.ID); err != nil {
		return nil, fmt.Errorf("crediting payee balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing release: %w", err)
	}
	return &p, nil
}

func (r *repository) MarkRefunded(ctx context.Context, id string) error {
	query := `
		UPDATE payments
		SET status = $2
		WHERE id = $1 AND status IN ($3, $4)`

	result, err := r.db.ExecContext(ctx, query, id, StatusRefunded, StatusPending, StatusEscrowed)
	if err != nil {
		return fmt.Errorf("marking payment refunded: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking payment refunded: %w", err)
	}
	if rows == 0 {
		return ErrStaleState
	}
	return nil
}

func (r *repository) SetPayoutOutcome(ctx context.Context, id, status, message string) error {
	query := `UPDATE payments SET payout_status = $2, payout_message = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, message)
	if err != nil {
		return fmt.Errorf("setting payout outcome: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting payout outcome: %w", err)
	}
	if rows == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *repository) ListEscrowed(ctx context.Context) ([]EscrowedPayment, error) {
	query := `
		SELECT p.id, p.request_id, p.payee_id, p.amount_cents, r.event_date
		FROM payments p
		JOIN requests r ON r.id = p.request_id
		WHERE p.status = $1
		ORDER BY p.created_at`

	payments := []EscrowedPayment{}
	if err := r.db.SelectContext(ctx, &payments, query, StatusEscrowed); err != nil {
		return nil, fmt.Errorf("listing escrowed payments: %w", err)
	}
	return payments, nil
}

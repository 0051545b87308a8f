package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBalance(ctx context.Context, payeeID int) (*Balance, error) {
	b := &Balance{}
	err := r.db.GetContext(ctx, b,
		`SELECT payee_id, current_cents, lifetime_paid_cents, updated_at
		 FROM balances
		 WHERE payee_id = $1`,
		payeeID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Lazily created on first credit; absent means zero.
			return &Balance{PayeeID: payeeID}, nil
		}
		return nil, err
	}
	return b, nil
}

func (r *repository) CreditRelease(ctx context.Context, payeeID int, netCents int64, paymentID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.CreditReleaseTx(ctx, tx, payeeID, netCents, paymentID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) CreditReleaseTx(ctx context.Context, tx *sqlx.Tx, payeeID int, netCents int64, paymentID string) error {
	if netCents <= 0 {
		return ErrNonPositiveAmount
	}

	balance, err := lockBalance(ctx, tx, payeeID)
	if err != nil {
		return err
	}

	newCurrent := balance.CurrentCents + netCents

	_, err = tx.ExecContext(ctx,
		`UPDATE balances
		 SET current_cents = $1, updated_at = NOW()
		 WHERE payee_id = $2`,
		newCurrent, payeeID,
	)
	if err != nil {
		return err
	}

	return insertEntry(ctx, tx, payeeID, netCents, EntryReleaseCredit, paymentID, newCurrent)
}

func (r *repository) DebitPayout(ctx context.Context, payeeID int, amountCents int64, paymentID string) error {
	if amountCents <= 0 {
		return ErrNonPositiveAmount
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	balance, err := lockBalance(ctx, tx, payeeID)
	if err != nil {
		return err
	}

	newCurrent := balance.CurrentCents - amountCents
	if newCurrent < 0 {
		return ErrInsufficientBalance
	}

	// The debit and the lifetime-paid increase commit together: the pair is
	// what keeps Σcredits − Σconfirmed debits == current balance.
	_, err = tx.ExecContext(ctx,
		`UPDATE balances
		 SET current_cents = $1, lifetime_paid_cents = lifetime_paid_cents + $2, updated_at = NOW()
		 WHERE payee_id = $3`,
		newCurrent, amountCents, payeeID,
	)
	if err != nil {
		return err
	}

	if err := insertEntry(ctx, tx, payeeID, -amountCents, EntryPayoutDebit, paymentID, newCurrent); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) ListEntries(ctx context.Context, payeeID int, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	var entries []Entry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, payee_id, amount_cents, entry_type, payment_id, balance_after, created_at
		FROM ledger_entries
		WHERE payee_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, payeeID, limit, offset)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// lockBalance reads the payee's balance row FOR UPDATE, creating it when
// missing so the first credit works without a separate setup step.
func lockBalance(ctx context.Context, tx *sqlx.Tx, payeeID int) (*Balance, error) {
	var b Balance
	err := tx.QueryRowxContext(ctx,
		`SELECT payee_id, current_cents, lifetime_paid_cents, updated_at
		 FROM balances
		 WHERE payee_id = $1
		 FOR UPDATE`,
		payeeID,
	).StructScan(&b)
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	err = tx.QueryRowxContext(ctx,
		`INSERT INTO balances (payee_id)
		 VALUES ($1)
		 RETURNING payee_id, current_cents, lifetime_paid_cents, updated_at`,
		payeeID,
	).StructScan(&b)
	if err != nil {
		return nil, fmt.Errorf("failed to create balance row: %w", err)
	}

	return &b, nil
}

func insertEntry(ctx context.Context, tx *sqlx.Tx, payeeID int, amountCents int64, entryType, paymentID string, balanceAfter int64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO ledger_entries (payee_id, amount_cents, entry_type, payment_id, balance_after)
		 VALUES ($1, $2, $3, $4, $5)`,
		payeeID, amountCents, entryType, paymentID, balanceAfter,
	)
	return err
}

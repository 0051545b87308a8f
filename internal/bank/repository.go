package bank

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrDetailsNotFound = errors.New("bank details not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, d *Details) error {
	query := `
		INSERT INTO bank_details (user_id, account_holder, account_masked, ifsc, fund_account_id, verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET account_holder = EXCLUDED.account_holder,
		    account_masked = EXCLUDED.account_masked,
		    ifsc = EXCLUDED.ifsc,
		    fund_account_id = EXCLUDED.fund_account_id,
		    verified = EXCLUDED.verified,
		    updated_at = NOW()
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		d.UserID, d.AccountHolder, d.AccountMasked, d.IFSC, d.FundAccountID, d.Verified,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting bank details: %w", err)
	}
	return nil
}

func (r *repository) GetByUserID(ctx context.Context, userID int) (*Details, error) {
	var d Details
	query := `
		SELECT user_id, account_holder, account_masked, ifsc, fund_account_id, verified, created_at, updated_at
		FROM bank_details
		WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &d, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDetailsNotFound
		}
		return nil, fmt.Errorf("getting bank details: %w", err)
	}
	return &d, nil
}

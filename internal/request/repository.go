package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrRequestNotFound = errors.New("request not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func newRequestID() string {
	return fmt.Sprintf("req_%s", uuid.New().String()[:8])
}

func (r *repository) Create(ctx context.Context, clientID int, req CreateRequest) (*Request, error) {
	query := `
		INSERT INTO requests (id, client_id, creator_id, service_type, category, event_date, duration, location, budget_cents, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, client_id, creator_id, service_type, category, event_date, duration, location, budget_cents, message, status, created_at, updated_at
	`

	var created Request
	err := r.db.GetContext(ctx, &created, query,
		newRequestID(), clientID, req.CreatorID, req.ServiceType, req.Category,
		req.EventDate, req.Duration, req.Location, req.BudgetCents, req.Message,
		StatusPendingCreator,
	)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Request, error) {
	query := `
		SELECT id, client_id, creator_id, service_type, category, event_date, duration, location, budget_cents, message, status, created_at, updated_at
		FROM requests
		WHERE id = $1
	`

	var req Request
	err := r.db.GetContext(ctx, &req, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	return &req, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE requests SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

func (r *repository) ListByClient(ctx context.Context, clientID int) ([]Request, error) {
	query := `
		SELECT id, client_id, creator_id, service_type, category, event_date, duration, location, budget_cents, message, status, created_at, updated_at
		FROM requests
		WHERE client_id = $1
		ORDER BY created_at DESC
	`

	var requests []Request
	err := r.db.SelectContext(ctx, &requests, query, clientID)
	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *repository) ListByCreator(ctx context.Context, creatorID int) ([]Request, error) {
	query := `
		SELECT id, client_id, creator_id, service_type, category, event_date, duration, location, budget_cents, message, status, created_at, updated_at
		FROM requests
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`

	var requests []Request
	err := r.db.SelectContext(ctx, &requests, query, creatorID)
	if err != nil {
		return nil, err
	}

	return requests, nil
}

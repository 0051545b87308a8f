package booking

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
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingExists   = errors.New("booking already exists for request")
)

const bookingColumns = `id, request_id, payment_id, client_id, creator_id, amount_cents,
	service_type, event_date, location, status, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func newBookingID() string {
	return fmt.Sprintf("book_%s", uuid.New().String()[:8])
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	if b.ID == "" {
		b.ID = newBookingID()
	}
	query := `
		INSERT INTO bookings (id, request_id, payment_id, client_id, creator_id, amount_cents, service_type, event_date, location, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		b.ID, b.RequestID, b.PaymentID, b.ClientID, b.CreatorID, b.AmountCents,
		b.ServiceType, b.EventDate, b.Location, b.Status,
	).Scan(&b.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrBookingExists
		}
		return fmt.Errorf("creating booking: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	var b Booking
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("getting booking: %w", err)
	}
	return &b, nil
}

func (r *repository) GetByRequestID(ctx context.Context, requestID string) (*Booking, error) {
	var b Booking
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE request_id = $1`, bookingColumns)
	if err := r.db.GetContext(ctx, &b, query, requestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("getting booking by request: %w", err)
	}
	return &b, nil
}

func (r *repository) ListByClient(ctx context.Context, clientID int) ([]Booking, error) {
	return r.list(ctx, "client_id", clientID)
}

func (r *repository) ListByCreator(ctx context.Context, creatorID int) ([]Booking, error) {
	return r.list(ctx, "creator_id", creatorID)
}

func (r *repository) list(ctx context.Context, column string, userID int) ([]Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE %s = $1 ORDER BY created_at DESC`, bookingColumns, column)

	bookings := []Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	return bookings, nil
}

func (r *repository) UpdateStatusByRequestID(ctx context.Context, requestID, status string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE bookings SET status = $2 WHERE request_id = $1`, requestID, status)
	if err != nil {
		return fmt.Errorf("updating booking status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating booking status: %w", err)
	}
	if rows == 0 {
		return ErrBookingNotFound
	}
	return nil
}

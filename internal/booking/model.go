package booking

import "time"

const (
	StatusConfirmed = "confirmed"
	StatusReleased  = "released"
)

// Booking is the engagement record materialized when a payment is funded.
// It carries a denormalized copy of the request's event details so the
// schedule survives later edits to the request.
type Booking struct {
	ID          string    `db:"id" json:"id"`
	RequestID   string    `db:"request_id" json:"request_id"`
	PaymentID   string    `db:"payment_id" json:"payment_id"`
	ClientID    int       `db:"client_id" json:"client_id"`
	CreatorID   int       `db:"creator_id" json:"creator_id"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	ServiceType string    `db:"service_type" json:"service_type"`
	EventDate   string    `db:"event_date" json:"event_date"`
	Location    string    `db:"location" json:"location"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

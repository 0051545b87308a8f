package request

import "time"

const (
	StatusPendingCreator = "pending_creator"
	StatusAccepted       = "accepted"
	StatusDeclined       = "declined"
	StatusNegotiating    = "negotiating"
	StatusPaid           = "paid"
)

// Request is a client's project request to a creator. EventDate is kept as
// the raw client-supplied string: sources send ISO dates, slash dates or
// epoch millis, and the auto-release scanner parses it defensively.
type Request struct {
	ID          string    `db:"id" json:"id"`
	ClientID    int       `db:"client_id" json:"client_id"`
	CreatorID   int       `db:"creator_id" json:"creator_id"`
	ServiceType string    `db:"service_type" json:"service_type"`
	Category    string    `db:"category" json:"category"`
	EventDate   string    `db:"event_date" json:"event_date"`
	Duration    string    `db:"duration" json:"duration"`
	Location    string    `db:"location" json:"location"`
	BudgetCents int64     `db:"budget_cents" json:"budget_cents"`
	Message     string    `db:"message" json:"message"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	CreatorID   int    `json:"creator_id" binding:"required"`
	ServiceType string `json:"service_type" binding:"required"`
	Category    string `json:"category"`
	EventDate   string `json:"event_date" binding:"required"`
	Duration    string `json:"duration"`
	Location    string `json:"location"`
	BudgetCents int64  `json:"budget_cents" binding:"required,gt=0"`
	Message     string `json:"message"`
}

type RespondRequest struct {
	Action string `json:"action" binding:"required,oneof=accept decline negotiate"`
}

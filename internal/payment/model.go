package payment

import "time"

// Status flow: pending → escrowed → completed | refunded. No transition
// skips a state; the guarded UPDATE in the repository is the only writer.
const (
	StatusPending   = "pending"
	StatusEscrowed  = "escrowed"
	StatusCompleted = "completed"
	StatusRefunded  = "refunded"
)

// Payout outcome recorded on the payment. Never touches Status.
const (
	PayoutPending     = "pending"
	PayoutProcessed   = "processed"
	PayoutFailed      = "failed"
	PayoutUnavailable = "unavailable"
)

type Payment struct {
	ID            string     `db:"id" json:"id"`
	RequestID     string     `db:"request_id" json:"request_id"`
	PayerID       int        `db:"payer_id" json:"payer_id"`
	PayeeID       int        `db:"payee_id" json:"payee_id"`
	AmountCents   int64      `db:"amount_cents" json:"amount_cents"`
	Status        string     `db:"status" json:"status"`
	OrderRef      string     `db:"order_ref" json:"order_ref"`
	TxnRef        *string    `db:"txn_ref" json:"txn_ref,omitempty"`
	FeeCents      *int64     `db:"fee_cents" json:"fee_cents,omitempty"`
	NetCents      *int64     `db:"net_cents" json:"net_cents,omitempty"`
	Description   string     `db:"description" json:"description"`
	AutoReleased  bool       `db:"auto_released" json:"auto_released"`
	PayoutStatus  *string    `db:"payout_status" json:"payout_status,omitempty"`
	PayoutMessage *string    `db:"payout_message" json:"payout_message,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	CompletedAt   *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// EscrowedPayment is the scanner's view: an escrowed payment joined with
// the raw event date of its originating request.
type EscrowedPayment struct {
	ID          string `db:"id"`
	RequestID   string `db:"request_id"`
	PayeeID     int    `db:"payee_id"`
	AmountCents int64  `db:"amount_cents"`
	EventDate   string `db:"event_date"`
}

type CreateOrderRequest struct {
	RequestID   string `json:"request_id" binding:"required"`
	PayeeID     int    `json:"payee_id" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required"`
	Description string `json:"description"`
}

type CreateOrderResult struct {
	PaymentID   string `json:"payment_id"`
	OrderRef    string `json:"order_ref"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	KeyID       string `json:"key_id"`
}

type VerifyRequest struct {
	OrderRef  string `json:"order_ref" binding:"required"`
	TxnRef    string `json:"txn_ref" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

type StatusResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Status  string   `json:"status"`
	Payment *Payment `json:"payment"`
}

package payout

import "time"

const (
	ModeSimulated = "simulated"
	ModeIMPS      = "IMPS"

	StatusProcessed = "processed"
	StatusFailed    = "failed"
)

// Payout is an append-only record of a dispatch attempt that reached a
// terminal decision. Recoverable outcomes (missing bank details) write no
// row so a later dispatch can still succeed. The destination snapshot
// (masked account, IFSC, holder name) is frozen at dispatch time so the
// record stays accurate when the payee later changes bank details.
type Payout struct {
	ID              string    `db:"id" json:"id"`
	PaymentID       string    `db:"payment_id" json:"payment_id"`
	PayeeID         int       `db:"payee_id" json:"payee_id"`
	AmountCents     int64     `db:"amount_cents" json:"amount_cents"`
	Mode            string    `db:"mode" json:"mode"`
	Status          string    `db:"status" json:"status"`
	Message         string    `db:"message" json:"message"`
	GatewayPayoutID *string   `db:"gateway_payout_id" json:"gateway_payout_id,omitempty"`
	AccountMasked   string    `db:"account_masked" json:"account_masked"`
	IFSC            string    `db:"ifsc" json:"ifsc"`
	HolderName      string    `db:"holder_name" json:"holder_name"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// Outcome is what a dispatch attempt reports back. Success=false with a nil
// error is a business outcome, not a transport failure; the worker does not
// retry it.
type Outcome struct {
	Success  bool   `json:"success"`
	PayoutID string `json:"payout_id,omitempty"`
	Message  string `json:"message"`
}

// Job is the queue payload for one released payment.
type Job struct {
	PaymentID   string    `json:"payment_id"`
	PayeeID     int       `json:"payee_id"`
	AmountCents int64     `json:"amount_cents"`
	Tries       int       `json:"tries"`
	Created     time.Time `json:"created"`
}

package ledger

import "time"

// Balance is a creator's withdrawable funds. CurrentCents only decreases via
// a payout debit that raises LifetimePaidCents by the same amount in the
// same transaction.
type Balance struct {
	PayeeID           int       `db:"payee_id" json:"payee_id"`
	CurrentCents      int64     `db:"current_cents" json:"current_cents"`
	LifetimePaidCents int64     `db:"lifetime_paid_cents" json:"lifetime_paid_cents"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

const (
	EntryReleaseCredit = "release_credit"
	EntryPayoutDebit   = "payout_debit"
)

type Entry struct {
	ID           int       `db:"id" json:"id"`
	PayeeID      int       `db:"payee_id" json:"payee_id"`
	AmountCents  int64     `db:"amount_cents" json:"amount_cents"`
	EntryType    string    `db:"entry_type" json:"entry_type"`
	PaymentID    string    `db:"payment_id" json:"payment_id"`
	BalanceAfter int64     `db:"balance_after" json:"balance_after"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

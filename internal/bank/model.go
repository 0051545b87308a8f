package bank

import "time"

// Details stores a payee's payout destination. Only the masked account
// number is persisted; the full number goes to the gateway fund account
// and is never stored.
type Details struct {
	UserID        int       `db:"user_id" json:"user_id"`
	AccountHolder string    `db:"account_holder" json:"account_holder"`
	AccountMasked string    `db:"account_masked" json:"account_masked"`
	IFSC          string    `db:"ifsc" json:"ifsc"`
	FundAccountID string    `db:"fund_account_id" json:"fund_account_id"`
	Verified      bool      `db:"verified" json:"verified"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type SubmitRequest struct {
	AccountHolder string `json:"account_holder" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required,min=9,max=18,numeric"`
	IFSC          string `json:"ifsc" binding:"required,len=11,alphanum"`
}

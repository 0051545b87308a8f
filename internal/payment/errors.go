package payment

import "errors"

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrDuplicateOrder     = errors.New("order reference already exists")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrRequestNotAccepted = errors.New("request is not in an accepted state")
	ErrSignatureMismatch  = errors.New("payment signature mismatch")
	ErrStaleState         = errors.New("payment is not in the expected state")
	ErrNotEscrowed        = errors.New("payment is not escrowed")
)

package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignPayment produces the checkout callback signature for an order/payment
// pair: hex(HMAC-SHA256(orderRef + "|" + txnRef, secret)). This is the
// Razorpay checkout scheme; the simulated client uses it too so the verify
// path is identical in both modes.
func SignPayment(orderRef, txnRef, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderRef + "|" + txnRef))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature checks a callback signature in constant time.
func VerifyPaymentSignature(orderRef, txnRef, signature, secret string) bool {
	expected := SignPayment(orderRef, txnRef, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

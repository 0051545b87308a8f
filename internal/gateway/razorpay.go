package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// RazorpayClient talks to the live Razorpay REST API. All calls run under
// a bounded timeout: a payout that times out is reported as failed/unknown,
// never assumed successful.
type RazorpayClient struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

func NewRazorpayClient(keyID, keySecret, baseURL string, timeout time.Duration) *RazorpayClient {
	return &RazorpayClient{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type payoutResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, amountCents int64, currency, receipt string, notes map[string]string) (*Order, error) {
	payload := map[string]interface{}{
		"amount":   amountCents,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}

	var resp orderResponse
	if err := c.post(ctx, "/orders", payload, &resp); err != nil {
		return nil, err
	}

	return &Order{
		OrderRef:    resp.ID,
		AmountCents: resp.Amount,
		Currency:    resp.Currency,
		KeyID:       c.keyID,
	}, nil
}

func (c *RazorpayClient) VerifySignature(orderRef, txnRef, signature string) bool {
	return VerifyPaymentSignature(orderRef, txnRef, signature, c.keySecret)
}

func (c *RazorpayClient) CreatePayout(ctx context.Context, fundAccountID string, amountCents int64, mode string) (*PayoutResult, error) {
	payload := map[string]interface{}{
		"fund_account_id": fundAccountID,
		"amount":          amountCents,
		"currency":        "INR",
		"mode":            mode,
		"purpose":         "payout",
		"queue_if_low_balance": true,
	}

	var resp payoutResponse
	if err := c.post(ctx, "/payouts", payload, &resp); err != nil {
		return nil, err
	}

	return &PayoutResult{PayoutID: resp.ID, Status: resp.Status}, nil
}

func (c *RazorpayClient) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return fmt.Errorf("%w: %s", ErrGatewayTimeout, path)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrGatewayTimeout, path)
		}
		return fmt.Errorf("%w: %v", ErrGatewayError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned %d", ErrGatewayError, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: bad response body: %v", ErrGatewayError, err)
	}

	return nil
}

package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Mithunit18/freelance/internal/gateway"
	"github.com/Mithunit18/freelance/internal/logger"
	"github.com/Mithunit18/freelance/internal/metrics"
	"github.com/Mithunit18/freelance/internal/money"
	"github.com/Mithunit18/freelance/internal/request"
)

// BookingWriter materializes a booking once a payment is funded. Failures
// are side effects only and never roll back the payment itself.
type BookingWriter interface {
	CreateFromPayment(ctx context.Context, requestID, paymentID string, payerID, payeeID int, amountCents int64) error
	MarkReleased(ctx context.Context, requestID string) error
}

// PayoutEnqueuer hands a released payment to the payout pipeline.
type PayoutEnqueuer interface {
	Enqueue(ctx context.Context, paymentID string, payeeID int, amountCents int64) error
}

const (
	TriggerManual = "manual"
	TriggerAuto   = "auto"
)

type Service interface {
	CreateOrder(ctx context.Context, payerID int, req CreateOrderRequest) (*CreateOrderResult, error)
	VerifyAndEscrow(ctx context.Context, req VerifyRequest) (*Payment, error)
	ConfirmRelease(ctx context.Context, paymentID string) (*Payment, error)
	AutoRelease(ctx context.Context, paymentID string) (*Payment, error)
	Refund(ctx context.Context, paymentID string) (*Payment, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
	GetByRequest(ctx context.Context, requestID string) (*Payment, error)
	CheckStatus(ctx context.Context, paymentID string) (*StatusResult, error)
}

type service struct {
	repo     Repository
	requests request.Repository
	bookings BookingWriter
	payouts  PayoutEnqueuer
	gateway  gateway.Client
	feeBps   int64
	currency string
}

func NewService(repo Repository, requests request.Repository, bookings BookingWriter, payouts PayoutEnqueuer, gw gateway.Client, feeBps int64, currency string) Service {
	return &service{
		repo:     repo,
		requests: requests,
		bookings: bookings,
		payouts:  payouts,
		gateway:  gw,
		feeBps:   feeBps,
		currency: currency,
	}
}

func newPaymentID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "PAY" + strings.ToUpper(hex[:12])
}

func (s *service) CreateOrder(ctx context.Context, payerID int, req CreateOrderRequest) (*CreateOrderResult, error) {
	if req.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	r, err := s.requests.GetByID(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}
	if r.ClientID != payerID || r.CreatorID != req.PayeeID {
		return nil, request.ErrRequestNotFound
	}
	if r.Status != request.StatusAccepted && r.Status != request.StatusNegotiating {
		return nil, ErrRequestNotAccepted
	}

	paymentID := newPaymentID()
	order, err := s.gateway.CreateOrder(ctx, req.AmountCents, s.currency, paymentID, map[string]string{
		"request_id": req.RequestID,
		"payment_id": paymentID,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gateway order: %w", err)
	}

	p := &Payment{
		ID:          paymentID,
		RequestID:   req.RequestID,
		PayerID:     payerID,
		PayeeID:     req.PayeeID,
		AmountCents: req.AmountCents,
		Status:      StatusPending,
		OrderRef:    order.OrderRef,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	logger.Info("escrow order created", "payment_id", paymentID, "order_ref", order.OrderRef, "amount_cents", req.AmountCents)

	return &CreateOrderResult{
		PaymentID:   paymentID,
		OrderRef:    order.OrderRef,
		AmountCents: req.AmountCents,
		Currency:    order.Currency,
		KeyID:       order.KeyID,
	}, nil
}

func (s *service) VerifyAndEscrow(ctx context.Context, req VerifyRequest) (*Payment, error) {
	p, err := s.repo.FindByOrderRef(ctx, req.OrderRef)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !s.gateway.VerifySignature(req.OrderRef, req.TxnRef, req.Signature) {
		logger.Error("payment signature rejected", "payment_id", p.ID, "order_ref", req.OrderRef)
		return nil, ErrSignatureMismatch
	}

	if err := s.repo.MarkEscrowed(ctx, p.ID, req.TxnRef); err != nil {
		return nil, err
	}
	metrics.EscrowFundedTotal.Inc()

	// Side effects after the escrow flip: booking materialization and the
	// request status. Neither failure unwinds the escrowed payment.
	if err := s.bookings.CreateFromPayment(ctx, p.RequestID, p.ID, p.PayerID, p.PayeeID, p.AmountCents); err != nil {
		logger.Error("booking creation failed after escrow", "payment_id", p.ID, "error", err)
	}
	if err := s.requests.UpdateStatus(ctx, p.RequestID, request.StatusPaid); err != nil {
		logger.Error("request status update failed after escrow", "request_id", p.RequestID, "error", err)
	}

	logger.Info("payment escrowed", "payment_id", p.ID, "txn_ref", req.TxnRef)
	return s.repo.GetByID(ctx, p.ID)
}

func (s *service) ConfirmRelease(ctx context.Context, paymentID string) (*Payment, error) {
	return s.release(ctx, paymentID, TriggerManual)
}

func (s *service) AutoRelease(ctx context.Context, paymentID string) (*Payment, error) {
	return s.release(ctx, paymentID, TriggerAuto)
}

func (s *service) release(ctx context.Context, paymentID, trigger string) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	feeCents, netCents := money.Split(p.AmountCents, s.feeBps)
	released, err := s.repo.ReleaseFunds(ctx, paymentID, feeCents, netCents, trigger == TriggerAuto)
	if err != nil {
		if errors.Is(err, ErrNotEscrowed) {
			metrics.ReleaseConflictsTotal.Inc()
		}
		return nil, err
	}
	metrics.RecordRelease(trigger)
	logger.Info("escrow released", "payment_id", paymentID, "trigger", trigger,
		"fee_cents", feeCents, "net_cents", netCents)

	if err := s.bookings.MarkReleased(ctx, released.RequestID); err != nil {
		logger.Error("booking release update failed", "request_id", released.RequestID, "error", err)
	}
	if err := s.payouts.Enqueue(ctx, released.ID, released.PayeeID, netCents); err != nil {
		logger.Error("payout enqueue failed", "payment_id", released.ID, "error", err)
	}
	return released, nil
}

func (s *service) Refund(ctx context.Context, paymentID string) (*Payment, error) {
	if _, err := s.repo.GetByID(ctx, paymentID); err != nil {
		return nil, err
	}
	if err := s.repo.MarkRefunded(ctx, paymentID); err != nil {
		return nil, err
	}
	logger.Info("payment refunded", "payment_id", paymentID)
	return s.repo.GetByID(ctx, paymentID)
}

func (s *service) GetPayment(ctx context.Context, id string) (*Payment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByRequest(ctx context.Context, requestID string) (*Payment, error) {
	return s.repo.FindLatestByRequestID(ctx, requestID)
}

func (s *service) CheckStatus(ctx context.Context, paymentID string) (*StatusResult, error) {
	p, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			if byRef, refErr := s.repo.FindByOrderRef(ctx, paymentID); refErr == nil {
				p = byRef
			} else {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	result := &StatusResult{Status: p.Status, Payment: p}
	switch p.Status {
	case StatusEscrowed:
		result.Success = true
		result.Message = "payment captured and held in escrow"
	case StatusCompleted:
		result.Success = true
		result.Message = "payment released to payee"
	case StatusRefunded:
		result.Message = "payment refunded"
	default:
		result.Message = "payment not captured yet"
	}
	return result, nil
}

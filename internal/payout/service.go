package payout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Mithunit18/freelance/internal/bank"
	"github.com/Mithunit18/freelance/internal/gateway"
	"github.com/Mithunit18/freelance/internal/ledger"
	"github.com/Mithunit18/freelance/internal/logger"
	"github.com/Mithunit18/freelance/internal/metrics"
	"github.com/Mithunit18/freelance/internal/payment"
)

// PaymentUpdater records the dispatch outcome on the payment row. Satisfied
// by the payment repository.
type PaymentUpdater interface {
	SetPayoutOutcome(ctx context.Context, id, status, message string) error
}

type Service interface {
	Dispatch(ctx context.Context, job Job) (*Outcome, error)
	ListByPayee(ctx context.Context, payeeID int) ([]Payout, error)
}

type service struct {
	repo     Repository
	payments PaymentUpdater
	bank     bank.Repository
	ledger   ledger.Repository
	gateway  gateway.Client
	mode     string
}

func NewService(repo Repository, payments PaymentUpdater, bankRepo bank.Repository, ledgerRepo ledger.Repository, gw gateway.Client, mode string) Service {
	return &service{
		repo:     repo,
		payments: payments,
		bank:     bankRepo,
		ledger:   ledgerRepo,
		gateway:  gw,
		mode:     mode,
	}
}

// Dispatch moves a released payment's net amount out of the payee's balance.
// Idempotent per payment: a processed payouts row short-circuits with the
// original outcome. Nil-error outcomes with Success=false are terminal
// business results, not transport failures.
func (s *service) Dispatch(ctx context.Context, job Job) (*Outcome, error) {
	if existing, err := s.repo.FindProcessedByPaymentID(ctx, job.PaymentID); err == nil {
		logger.Debug("payout already processed", "payment_id", job.PaymentID, "payout_id", existing.ID)
		return &Outcome{Success: true, PayoutID: existing.ID, Message: "payout already processed"}, nil
	} else if !errors.Is(err, ErrPayoutNotFound) {
		return nil, err
	}

	details, err := s.bank.GetByUserID(ctx, job.PayeeID)
	if err != nil {
		if errors.Is(err, bank.ErrDetailsNotFound) {
			s.recordOutcome(ctx, job.PaymentID, payment.PayoutUnavailable, "bank details missing")
			metrics.RecordPayout(s.mode, payment.PayoutUnavailable)
			logger.Info("payout deferred, bank details missing", "payment_id", job.PaymentID, "payee_id", job.PayeeID)
			return &Outcome{Success: false, Message: "bank details missing"}, nil
		}
		return nil, err
	}
	if !details.Verified {
		s.recordOutcome(ctx, job.PaymentID, payment.PayoutUnavailable, "bank details not verified")
		metrics.RecordPayout(s.mode, payment.PayoutUnavailable)
		logger.Info("payout deferred, bank details not verified", "payment_id", job.PaymentID, "payee_id", job.PayeeID)
		return &Outcome{Success: false, Message: "bank details not verified"}, nil
	}

	if s.mode == ModeSimulated {
		return s.settle(ctx, job, details, ModeSimulated, fmt.Sprintf("pout_sim_%s", uuid.New().String()[:12]))
	}

	// Live mode talks to the gateway first. The ledger is debited only on
	// gateway success so a timed-out transfer never loses the payee's balance.
	result, err := s.gateway.CreatePayout(ctx, details.FundAccountID, job.AmountCents, ModeIMPS)
	if err != nil {
		message := "payout transfer failed"
		if errors.Is(err, gateway.ErrGatewayTimeout) {
			message = "payout transfer timed out"
		}
		s.recordFailure(ctx, job, details, ModeIMPS, message)
		return &Outcome{Success: false, Message: message}, nil
	}
	return s.settle(ctx, job, details, ModeIMPS, result.PayoutID)
}

func (s *service) settle(ctx context.Context, job Job, details *bank.Details, mode, gatewayRef string) (*Outcome, error) {
	if err := s.ledger.DebitPayout(ctx, job.PayeeID, job.AmountCents, job.PaymentID); err != nil {
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			s.recordFailure(ctx, job, details, mode, "insufficient balance for payout")
			return &Outcome{Success: false, Message: "insufficient balance for payout"}, nil
		}
		return nil, err
	}

	p := &Payout{
		PaymentID:       job.PaymentID,
		PayeeID:         job.PayeeID,
		AmountCents:     job.AmountCents,
		Mode:            mode,
		Status:          StatusProcessed,
		Message:         "payout completed",
		GatewayPayoutID: &gatewayRef,
		AccountMasked:   details.AccountMasked,
		IFSC:            details.IFSC,
		HolderName:      details.AccountHolder,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, ErrPayoutExists) {
			logger.Info("payout already recorded by concurrent dispatch", "payment_id", job.PaymentID)
			if existing, findErr := s.repo.FindProcessedByPaymentID(ctx, job.PaymentID); findErr == nil {
				return &Outcome{Success: true, PayoutID: existing.ID, Message: "payout already processed"}, nil
			}
		}
		return nil, err
	}

	s.recordOutcome(ctx, job.PaymentID, payment.PayoutProcessed, "payout completed")
	metrics.RecordPayout(mode, StatusProcessed)
	logger.Info("payout processed", "payout_id", p.ID, "payment_id", job.PaymentID,
		"payee_id", job.PayeeID, "amount_cents", job.AmountCents, "mode", mode)
	return &Outcome{Success: true, PayoutID: p.ID, Message: "payout completed"}, nil
}

func (s *service) recordFailure(ctx context.Context, job Job, details *bank.Details, mode, message string) {
	p := &Payout{
		PaymentID:     job.PaymentID,
		PayeeID:       job.PayeeID,
		AmountCents:   job.AmountCents,
		Mode:          mode,
		Status:        StatusFailed,
		Message:       message,
		AccountMasked: details.AccountMasked,
		IFSC:          details.IFSC,
		HolderName:    details.AccountHolder,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		logger.Error("failed to record payout failure", "payment_id", job.PaymentID, "error", err)
	}
	s.recordOutcome(ctx, job.PaymentID, payment.PayoutFailed, message)
	metrics.RecordPayout(mode, StatusFailed)
	logger.Error("payout failed", "payment_id", job.PaymentID, "reason", message)
}

func (s *service) recordOutcome(ctx context.Context, paymentID, status, message string) {
	if err := s.payments.SetPayoutOutcome(ctx, paymentID, status, message); err != nil {
		logger.Error("failed to record payout outcome on payment", "payment_id", paymentID, "error", err)
	}
}

func (s *service) ListByPayee(ctx context.Context, payeeID int) ([]Payout, error) {
	return s.repo.ListByPayee(ctx, payeeID)
}

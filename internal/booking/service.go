package booking

import (
	"context"
	"errors"

	"github.com/Mithunit18/freelance/internal/logger"
	"github.com/Mithunit18/freelance/internal/metrics"
	"github.com/Mithunit18/freelance/internal/request"
)

type Service interface {
	CreateFromPayment(ctx context.Context, requestID, paymentID string, payerID, payeeID int, amountCents int64) error
	MarkReleased(ctx context.Context, requestID string) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByRequest(ctx context.Context, requestID string) (*Booking, error)
	ListForUser(ctx context.Context, userID int, role string) ([]Booking, error)
}

type service struct {
	repo     Repository
	requests request.Repository
}

func NewService(repo Repository, requests request.Repository) Service {
	return &service{repo: repo, requests: requests}
}

// CreateFromPayment materializes the booking for a freshly funded payment.
// Replays are harmless: the unique request constraint turns a second call
// into a no-op.
func (s *service) CreateFromPayment(ctx context.Context, requestID, paymentID string, payerID, payeeID int, amountCents int64) error {
	b := &Booking{
		RequestID:   requestID,
		PaymentID:   paymentID,
		ClientID:    payerID,
		CreatorID:   payeeID,
		AmountCents: amountCents,
		Status:      StatusConfirmed,
	}

	if r, err := s.requests.GetByID(ctx, requestID); err == nil {
		b.ServiceType = r.ServiceType
		b.EventDate = r.EventDate
		b.Location = r.Location
	} else {
		logger.Error("booking created without request details", "request_id", requestID, "error", err)
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, ErrBookingExists) {
			logger.Debug("booking already exists", "request_id", requestID)
			return nil
		}
		return err
	}

	metrics.BookingsCreatedTotal.Inc()
	logger.Info("booking created", "booking_id", b.ID, "request_id", requestID, "payment_id", paymentID)
	return nil
}

func (s *service) MarkReleased(ctx context.Context, requestID string) error {
	return s.repo.UpdateStatusByRequestID(ctx, requestID, StatusReleased)
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByRequest(ctx context.Context, requestID string) (*Booking, error) {
	return s.repo.GetByRequestID(ctx, requestID)
}

func (s *service) ListForUser(ctx context.Context, userID int, role string) ([]Booking, error) {
	if role == "creator" {
		return s.repo.ListByCreator(ctx, userID)
	}
	return s.repo.ListByClient(ctx, userID)
}

package autorelease

import (
	"context"
	"errors"
	"time"

	"github.com/Mithunit18/freelance/internal/logger"
	"github.com/Mithunit18/freelance/internal/metrics"
	"github.com/Mithunit18/freelance/internal/payment"
)

// EscrowLister pages through currently escrowed payments with the raw
// event date of each payment's request.
type EscrowLister interface {
	ListEscrowed(ctx context.Context) ([]payment.EscrowedPayment, error)
}

// Releaser performs the auto-triggered release.
type Releaser interface {
	AutoRelease(ctx context.Context, paymentID string) (*payment.Payment, error)
}

// Report summarizes one scan pass.
type Report struct {
	Scanned  int      `json:"scanned"`
	Released int      `json:"released"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Details  []string `json:"details,omitempty"`
}

// Scanner releases escrowed payments whose event date plus the grace
// window has passed. Unparseable dates are skipped and logged, never
// force-released.
type Scanner struct {
	payments  EscrowLister
	releaser  Releaser
	graceDays int
	now       func() time.Time
}

func NewScanner(payments EscrowLister, releaser Releaser, graceDays int) *Scanner {
	return &Scanner{
		payments:  payments,
		releaser:  releaser,
		graceDays: graceDays,
		now:       time.Now,
	}
}

func (s *Scanner) Run(ctx context.Context) (*Report, error) {
	escrowed, err := s.payments.ListEscrowed(ctx)
	if err != nil {
		return nil, err
	}
	metrics.AutoReleaseScansTotal.Inc()

	report := &Report{Scanned: len(escrowed)}
	now := s.now()

	for _, p := range escrowed {
		eventDate, err := parseEventDate(p.EventDate)
		if err != nil {
			report.Skipped++
			report.Details = append(report.Details, p.ID+": "+err.Error())
			metrics.AutoReleaseSkippedTotal.WithLabelValues("unparseable_date").Inc()
			logger.Error("auto-release skipped payment", "payment_id", p.ID,
				"request_id", p.RequestID, "event_date", p.EventDate, "error", err)
			continue
		}

		// Eligible once the deadline is reached, boundary instant included.
		deadline := eventDate.AddDate(0, 0, s.graceDays)
		if now.Before(deadline) {
			report.Skipped++
			metrics.AutoReleaseSkippedTotal.WithLabelValues("within_grace").Inc()
			continue
		}

		if _, err := s.releaser.AutoRelease(ctx, p.ID); err != nil {
			// A concurrent manual confirm already released it.
			if errors.Is(err, payment.ErrNotEscrowed) {
				report.Skipped++
				metrics.AutoReleaseSkippedTotal.WithLabelValues("already_released").Inc()
				continue
			}
			report.Failed++
			report.Details = append(report.Details, p.ID+": "+err.Error())
			logger.Error("auto-release failed", "payment_id", p.ID, "error", err)
			continue
		}

		report.Released++
		logger.Info("auto-released payment", "payment_id", p.ID,
			"event_date", p.EventDate, "grace_days", s.graceDays)
	}

	return report, nil
}

// Start runs scan passes on the given interval until the context ends.
func (s *Scanner) Start(ctx context.Context, interval time.Duration) {
	logger.Info("auto-release scanner started", "interval", interval.String(), "grace_days", s.graceDays)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("auto-release scanner stopped")
			return
		case <-ticker.C:
			if report, err := s.Run(ctx); err != nil {
				logger.Error("auto-release scan failed", "error", err)
			} else if report.Released > 0 || report.Failed > 0 {
				logger.Info("auto-release scan finished", "scanned", report.Scanned,
					"released", report.Released, "skipped", report.Skipped, "failed", report.Failed)
			}
		}
	}
}

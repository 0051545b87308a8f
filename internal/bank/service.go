package bank

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Mithunit18/freelance/internal/logger"
)

type Service interface {
	Submit(ctx context.Context, userID int, req SubmitRequest) (*Details, error)
	Get(ctx context.Context, userID int) (*Details, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func maskAccount(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("X", len(number)-4) + number[len(number)-4:]
}

// Submit registers or replaces a payee's payout destination. The fund
// account reference is generated locally; a live contact/fund-account
// round trip to the gateway would slot in here.
func (s *service) Submit(ctx context.Context, userID int, req SubmitRequest) (*Details, error) {
	d := &Details{
		UserID:        userID,
		AccountHolder: req.AccountHolder,
		AccountMasked: maskAccount(req.AccountNumber),
		IFSC:          strings.ToUpper(req.IFSC),
		FundAccountID: fmt.Sprintf("fa_sim_%s", uuid.New().String()[:12]),
		Verified:      true,
	}
	if err := s.repo.Upsert(ctx, d); err != nil {
		return nil, err
	}

	logger.Info("bank details saved", "user_id", userID, "fund_account_id", d.FundAccountID)
	return d, nil
}

func (s *service) Get(ctx context.Context, userID int) (*Details, error) {
	return s.repo.GetByUserID(ctx, userID)
}

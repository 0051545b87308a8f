package bank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBankRepo struct{ mock.Mock }

func (m *MockBankRepo) Upsert(ctx context.Context, d *Details) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockBankRepo) GetByUserID(ctx context.Context, userID int) (*Details, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Details), args.Error(1)
}

func TestSubmit_MasksAccountAndAssignsFundAccount(t *testing.T) {
	repo := new(MockBankRepo)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("Upsert", ctx, mock.MatchedBy(func(d *Details) bool {
		return d.UserID == 2 &&
			d.AccountMasked == "XXXXXXXXXX6789" &&
			d.IFSC == "HDFC0001234" &&
			d.FundAccountID != "" &&
			d.Verified
	})).Return(nil)

	details, err := svc.Submit(ctx, 2, SubmitRequest{
		AccountHolder: "Asha Creator",
		AccountNumber: "12345678906789",
		IFSC:          "hdfc0001234",
	})

	assert.NoError(t, err)
	assert.Contains(t, details.FundAccountID, "fa_sim_")
	assert.NotContains(t, details.AccountMasked, "1234567890")
	repo.AssertExpectations(t)
}

func TestMaskAccount(t *testing.T) {
	assert.Equal(t, "XXXXX6789", maskAccount("123456789"))
	assert.Equal(t, "1234", maskAccount("1234"))
}

func TestGet_NotFound(t *testing.T) {
	repo := new(MockBankRepo)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetByUserID", ctx, 7).Return(nil, ErrDetailsNotFound)

	_, err := svc.Get(ctx, 7)

	assert.ErrorIs(t, err, ErrDetailsNotFound)
}

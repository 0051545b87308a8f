package payment

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mithunit18/freelance/internal/ledger"
)

// stubLedger satisfies ledger.Repository without touching the database so
// repository tests can assert the credit call happens inside the release
// transaction.
type stubLedger struct {
	creditPayeeID int
	creditCents   int64
	creditPayment string
	creditErr     error
}

func (s *stubLedger) GetBalance(ctx context.Context, payeeID int) (*ledger.Balance, error) {
	return nil, nil
}

func (s *stubLedger) CreditRelease(ctx context.Context, payeeID int, netCents int64, paymentID string) error {
	return nil
}

func (s *stubLedger) CreditReleaseTx(ctx context.Context, tx *sqlx.Tx, payeeID int, netCents int64, paymentID string) error {
	s.creditPayeeID = payeeID
	s.creditCents = netCents
	s.creditPayment = paymentID
	return s.creditErr
}

func (s *stubLedger) DebitPayout(ctx context.Context, payeeID int, amountCents int64, paymentID string) error {
	return nil
}

func (s *stubLedger) ListEntries(ctx context.Context, payeeID int, limit, offset int) ([]ledger.Entry, error) {
	return nil, nil
}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock, *stubLedger) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stub := &stubLedger{}
	return NewRepository(sqlx.NewDb(db, "postgres"), stub), mock, stub
}

func paymentRows(p Payment) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "request_id", "payer_id", "payee_id", "amount_cents", "status", "order_ref",
		"txn_ref", "fee_cents", "net_cents", "description", "auto_released",
		"payout_status", "payout_message", "created_at", "completed_at",
	}).AddRow(
		p.ID, p.RequestID, p.PayerID, p.PayeeID, p.AmountCents, p.Status, p.OrderRef,
		p.TxnRef, p.FeeCents, p.NetCents, p.Description, p.AutoReleased,
		p.PayoutStatus, p.PayoutMessage, p.CreatedAt, p.CompletedAt,
	)
}

func TestCreate_DuplicateOrderRef(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs("PAYAAA", "req_1", 1, 2, int64(10000), StatusPending, "order_1", "shoot").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &Payment{
		ID: "PAYAAA", RequestID: "req_1", PayerID: 1, PayeeID: 2,
		AmountCents: 10000, Status: StatusPending, OrderRef: "order_1", Description: "shoot",
	})

	assert.ErrorIs(t, err, ErrDuplicateOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM payments WHERE id`).
		WithArgs("PAYMISSING").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), "PAYMISSING")

	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestMarkEscrowed_GuardedFlip(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	mock.ExpectExec(`UPDATE payments`).
		WithArgs("PAYAAA", "txn_1", StatusEscrowed, StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkEscrowed(context.Background(), "PAYAAA", "txn_1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkEscrowed_AlreadyEscrowed(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	mock.ExpectExec(`UPDATE payments`).
		WithArgs("PAYAAA", "txn_1", StatusEscrowed, StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkEscrowed(context.Background(), "PAYAAA", "txn_1")

	assert.ErrorIs(t, err, ErrStaleState)
}

func TestReleaseFunds_CommitsFlipAndCredit(t *testing.T) {
	repo, mock, stub := newMockRepo(t)

	fee, net := int64(1000), int64(9000)
	now := time.Now()
	released := Payment{
		ID: "PAYAAA", RequestID: "req_1", PayerID: 1, PayeeID: 2,
		AmountCents: 10000, Status: StatusCompleted, OrderRef: "order_1",
		FeeCents: &fee, NetCents: &net, CreatedAt: now, CompletedAt: &now,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE payments`).
		WithArgs("PAYAAA", StatusCompleted, int64(1000), int64(9000), false, PayoutPending, StatusEscrowed).
		WillReturnRows(paymentRows(released))
	mock.ExpectCommit()

	p, err := repo.ReleaseFunds(context.Background(), "PAYAAA", 1000, 9000, false)

	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, p.Status)
	assert.Equal(t, 2, stub.creditPayeeID)
	assert.Equal(t, int64(9000), stub.creditCents)
	assert.Equal(t, "PAYAAA", stub.creditPayment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReleaseFunds_NotEscrowed(t *testing.T) {
	repo, mock, stub := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE payments`).
		WithArgs("PAYAAA", StatusCompleted, int64(1000), int64(9000), false, PayoutPending, StatusEscrowed).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT status FROM payments`).
		WithArgs("PAYAAA").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(StatusCompleted))
	mock.ExpectRollback()

	_, err := repo.ReleaseFunds(context.Background(), "PAYAAA", 1000, 9000, false)

	assert.ErrorIs(t, err, ErrNotEscrowed)
	assert.Empty(t, stub.creditPayment)
}

func TestReleaseFunds_UnknownPayment(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE payments`).
		WithArgs("PAYMISSING", StatusCompleted, int64(1000), int64(9000), true, PayoutPending, StatusEscrowed).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT status FROM payments`).
		WithArgs("PAYMISSING").
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	_, err := repo.ReleaseFunds(context.Background(), "PAYMISSING", 1000, 9000, true)

	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestMarkRefunded_CompletedRejected(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	mock.ExpectExec(`UPDATE payments`).
		WithArgs("PAYAAA", StatusRefunded, StatusPending, StatusEscrowed).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkRefunded(context.Background(), "PAYAAA")

	assert.ErrorIs(t, err, ErrStaleState)
}

func TestSetPayoutOutcome(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	mock.ExpectExec(`UPDATE payments SET payout_status`).
		WithArgs("PAYAAA", PayoutProcessed, "payout completed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetPayoutOutcome(context.Background(), "PAYAAA", PayoutProcessed, "payout completed")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEscrowed_JoinsEventDate(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "request_id", "payee_id", "amount_cents", "event_date"}).
		AddRow("PAYAAA", "req_1", 2, int64(10000), "2026-01-01").
		AddRow("PAYBBB", "req_2", 3, int64(5000), "1767225600000")

	mock.ExpectQuery(`SELECT p.id, p.request_id, p.payee_id, p.amount_cents, r.event_date`).
		WithArgs(StatusEscrowed).
		WillReturnRows(rows)

	payments, err := repo.ListEscrowed(context.Background())

	assert.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, "2026-01-01", payments[0].EventDate)
	assert.Equal(t, "1767225600000", payments[1].EventDate)
}

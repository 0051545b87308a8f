package payout

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueue_PushesJobJSON(t *testing.T) {
	client, mock := redismock.NewClientMock()
	w := NewWorker(client, nil)

	mock.Regexp().ExpectLPush(queueKey, `.*PAYAAA.*`).SetVal(1)

	err := w.Enqueue(context.Background(), "PAYAAA", 2, 9000)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNext_DispatchesJob(t *testing.T) {
	client, redisMock := redismock.NewClientMock()
	dispatcher := new(mockDispatcher)
	w := NewWorker(client, dispatcher)

	job := Job{PaymentID: "PAYAAA", PayeeID: 2, AmountCents: 9000}
	data, err := json.Marshal(job)
	require.NoError(t, err)

	redisMock.ExpectBRPop(brpopTimeout, queueKey).SetVal([]string{queueKey, string(data)})
	dispatched := job
	dispatched.Tries = 1
	dispatcher.outcome = &Outcome{Success: true, PayoutID: "po_1", Message: "payout completed"}

	w.processNext(context.Background())

	assert.Equal(t, dispatched, dispatcher.lastJob)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProcessNext_BusinessFailureNotRequeued(t *testing.T) {
	client, redisMock := redismock.NewClientMock()
	dispatcher := new(mockDispatcher)
	w := NewWorker(client, dispatcher)

	job := Job{PaymentID: "PAYAAA", PayeeID: 2, AmountCents: 9000}
	data, _ := json.Marshal(job)

	redisMock.ExpectBRPop(brpopTimeout, queueKey).SetVal([]string{queueKey, string(data)})
	dispatcher.outcome = &Outcome{Success: false, Message: "bank details missing"}

	w.processNext(context.Background())

	// no LPush expectations registered: a requeue would fail the mock
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

type mockDispatcher struct {
	lastJob Job
	outcome *Outcome
	err     error
}

func (m *mockDispatcher) Dispatch(ctx context.Context, job Job) (*Outcome, error) {
	m.lastJob = job
	return m.outcome, m.err
}

func (m *mockDispatcher) ListByPayee(ctx context.Context, payeeID int) ([]Payout, error) {
	return nil, nil
}

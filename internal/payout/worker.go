package payout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Mithunit18/freelance/internal/logger"
	"github.com/Mithunit18/freelance/internal/metrics"
)

const (
	queueKey       = "payouts"
	failedQueueKey = "payouts:failed"
	maxTries       = 3
	retryDelay     = 5 * time.Second
	brpopTimeout   = 2 * time.Second
)

// Worker drains the payout queue. Releases enqueue here so the release
// transaction never waits on payout I/O.
type Worker struct {
	redis      *redis.Client
	dispatcher Service
}

func NewWorker(client *redis.Client, dispatcher Service) *Worker {
	return &Worker{redis: client, dispatcher: dispatcher}
}

func (w *Worker) Enqueue(ctx context.Context, paymentID string, payeeID int, amountCents int64) error {
	job := Job{
		PaymentID:   paymentID,
		PayeeID:     payeeID,
		AmountCents: amountCents,
		Created:     time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := w.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Error("failed to queue payout", "payment_id", paymentID, "error", err)
		return err
	}

	metrics.PayoutQueueLength.Inc()
	logger.Info("payout queued", "payment_id", paymentID, "amount_cents", amountCents)
	return nil
}

func (w *Worker) Start(ctx context.Context) {
	logger.Info("payout worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("payout worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *Worker) processNext(ctx context.Context) {
	result, err := w.redis.BRPop(ctx, brpopTimeout, queueKey).Result()
	if err != nil {
		return
	}
	metrics.PayoutQueueLength.Dec()

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad payout job data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Dispatching payout for %s (attempt %d)", job.PaymentID, job.Tries)

	outcome, err := w.dispatcher.Dispatch(ctx, job)
	if err != nil {
		logger.Errorf("Payout dispatch error for %s: %v", job.PaymentID, err)

		if job.Tries < maxTries {
			time.Sleep(retryDelay)
			w.requeue(job)
		} else {
			logger.Errorf("Payout for %s failed after %d attempts", job.PaymentID, maxTries)
			w.saveFailed(job, err)
		}
		return
	}

	// Business outcomes are terminal for the job: "bank details missing"
	// retries operationally once details exist, not from the queue.
	if !outcome.Success {
		logger.Infof("Payout for %s not completed: %s", job.PaymentID, outcome.Message)
		return
	}
	logger.Infof("Payout for %s completed: %s", job.PaymentID, outcome.PayoutID)
}

func (w *Worker) requeue(job Job) {
	data, err := json.Marshal(job)
	if err != nil {
		return
	}
	if err := w.redis.LPush(context.Background(), queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to requeue payout for %s: %v", job.PaymentID, err)
		return
	}
	metrics.PayoutQueueLength.Inc()
	logger.Infof("Retrying payout for %s (attempt %d)", job.PaymentID, job.Tries+1)
}

func (w *Worker) saveFailed(job Job, dispatchErr error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": dispatchErr.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	if err := w.redis.LPush(context.Background(), failedQueueKey, data).Err(); err != nil {
		logger.Errorf("Failed to park payout for %s: %v", job.PaymentID, err)
		return
	}
	logger.Errorf("Payout moved to failed queue: %s", job.PaymentID)
}

func (w *Worker) QueueLength(ctx context.Context) int64 {
	length, _ := w.redis.LLen(ctx, queueKey).Result()
	return length
}

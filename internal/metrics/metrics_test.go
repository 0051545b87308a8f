package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("POST", "/escrow/orders", "201", 0.25)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/escrow/orders", "201"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/escrow/verify", "200", 0.1)
	RecordHTTPRequest("POST", "/escrow/verify", "200", 0.2)
	RecordHTTPRequest("POST", "/escrow/verify", "400", 0.05)

	okCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/escrow/verify", "200"))
	badCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/escrow/verify", "400"))

	assert.Equal(t, float64(2), okCount)
	assert.Equal(t, float64(1), badCount)
}

func TestRecordRelease(t *testing.T) {
	ReleasesTotal.Reset()

	RecordRelease("manual")
	RecordRelease("auto")
	RecordRelease("auto")

	manual := testutil.ToFloat64(ReleasesTotal.WithLabelValues("manual"))
	auto := testutil.ToFloat64(ReleasesTotal.WithLabelValues("auto"))

	assert.Equal(t, float64(1), manual)
	assert.Equal(t, float64(2), auto)
}

func TestRecordPayout(t *testing.T) {
	PayoutsTotal.Reset()

	RecordPayout("simulated", "processed")
	RecordPayout("IMPS", "failed")

	processed := testutil.ToFloat64(PayoutsTotal.WithLabelValues("simulated", "processed"))
	failed := testutil.ToFloat64(PayoutsTotal.WithLabelValues("IMPS", "failed"))

	assert.Equal(t, float64(1), processed)
	assert.Equal(t, float64(1), failed)
}

func TestPayoutQueueLength(t *testing.T) {
	PayoutQueueLength.Set(4)
	assert.Equal(t, float64(4), testutil.ToFloat64(PayoutQueueLength))

	PayoutQueueLength.Set(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(PayoutQueueLength))
}

func TestAutoReleaseSkipped(t *testing.T) {
	AutoReleaseSkippedTotal.Reset()

	AutoReleaseSkippedTotal.WithLabelValues("bad_date").Inc()
	AutoReleaseSkippedTotal.WithLabelValues("bad_date").Inc()
	AutoReleaseSkippedTotal.WithLabelValues("already_released").Inc()

	badDate := testutil.ToFloat64(AutoReleaseSkippedTotal.WithLabelValues("bad_date"))
	already := testutil.ToFloat64(AutoReleaseSkippedTotal.WithLabelValues("already_released"))

	assert.Equal(t, float64(2), badDate)
	assert.Equal(t, float64(1), already)
}

package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		grossCents int64
		feeBps     int64
		wantFee    int64
		wantNet    int64
	}{
		{"ten percent of 10000 rupees", 1000000, 1000, 100000, 900000},
		{"five percent", 1000000, 500, 50000, 950000},
		{"rounds half up", 101, 500, 5, 96},   // 5.05 -> 5
		{"rounds half up at .5", 110, 500, 6, 104}, // 5.5 -> 6
		{"one paise gross", 1, 1000, 0, 1},
		{"zero fee rate", 5000, 0, 0, 5000},
		{"full fee", 5000, 10000, 5000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, net := Split(tt.grossCents, tt.feeBps)
			assert.Equal(t, tt.wantFee, fee)
			assert.Equal(t, tt.wantNet, net)
		})
	}
}

func TestSplit_Conservation(t *testing.T) {
	for gross := int64(1); gross < 20000; gross += 7 {
		for _, bps := range []int64{100, 250, 500, 1000, 1800, 9999} {
			fee, net := Split(gross, bps)
			assert.Equal(t, gross, fee+net, "fee+net must equal gross for gross=%d bps=%d", gross, bps)
			assert.GreaterOrEqual(t, fee, int64(0))
			assert.GreaterOrEqual(t, net, int64(0))
		}
	}
}

func TestSplit_Idempotent(t *testing.T) {
	fee1, net1 := Split(123457, 1000)
	fee2, net2 := Split(123457, 1000)
	assert.Equal(t, fee1, fee2)
	assert.Equal(t, net1, net2)
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹9000.00", FormatINR(900000))
	assert.Equal(t, "₹0.05", FormatINR(5))
	assert.Equal(t, "-₹12.50", FormatINR(-1250))
}

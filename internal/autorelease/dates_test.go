package autorelease

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEventDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"iso date", "2026-01-05", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2026-01-05T14:30:00Z", time.Date(2026, 1, 5, 14, 30, 0, 0, time.UTC)},
		{"slash ymd", "2026/01/05", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"slash dmy", "05/01/2026", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"epoch millis", "1767225600000", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"padded", "  2026-01-05  ", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEventDate(tt.raw)
			assert.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseEventDate_Unparseable(t *testing.T) {
	for _, raw := range []string{"", "next tuesday", "2026-13-45", "01-05-2026"} {
		_, err := parseEventDate(raw)
		assert.Error(t, err, "expected error for %q", raw)
	}
}

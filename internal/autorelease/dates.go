package autorelease

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Event dates arrive as raw client strings in several shapes: RFC3339
// timestamps, ISO dates, slash dates (both y/m/d and d/m/y) and epoch
// milliseconds. Layouts are tried in order; day-first wins for ambiguous
// slash dates since that is what the mobile clients send.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
}

func parseEventDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty event date")
	}

	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if isDigits(s) {
		millis, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("unparseable event date %q", raw)
		}
		return time.UnixMilli(millis).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unparseable event date %q", raw)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

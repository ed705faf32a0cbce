package sqlite

import (
	"errors"
	"fmt"
	"time"
)

// Timestamps are stored as fixed-width UTC text so that column order is
// time order. Nine fractional digits are always written.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

var errTimestampRange = errors.New("timestamp outside years 0000-9999")

func formatTimestamp(t time.Time) (string, error) {
	u := t.UTC()
	if y := u.Year(); y < 0 || y > 9999 {
		return "", fmt.Errorf("%w: %s", errTimestampRange, t.Format(time.RFC3339Nano))
	}
	return u.Format(timestampLayout), nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}

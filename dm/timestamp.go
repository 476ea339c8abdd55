package dm

import (
	"fmt"
	"strings"
	"time"
)

// localISOLayout is ISO-8601 without a zone designator. Such values are read
// as UTC.
const localISOLayout = "2006-01-02T15:04:05.999999999"

// ParseTimestamp parses an RFC 3339 timestamp (fractional seconds optional),
// or a zone-less ISO-8601 timestamp taken to be UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(localISOLayout, value, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: expected ISO-8601 such as 2024-01-01T00:00:00Z", value)
}

package helpers

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate accepts YYYY-MM-DD or a full RFC 3339 timestamp and returns
// the calendar date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Today(t), nil
}

// Today truncates t to midnight UTC of its UTC calendar day
func Today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TimeAgo renders the gap between t and now as "Xd ago", "Xh ago" or "Just now".
// Timestamps in the future count as "Just now".
func TimeAgo(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff >= 24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff/(24*time.Hour)))
	case diff >= time.Hour:
		return fmt.Sprintf("%dh ago", int(diff/time.Hour))
	default:
		return "Just now"
	}
}

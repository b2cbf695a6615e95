package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"seconds", now.Add(-30 * time.Second), "Just now"},
		{"59 minutes", now.Add(-59 * time.Minute), "Just now"},
		{"exactly one hour", now.Add(-time.Hour), "1h ago"},
		{"23 hours", now.Add(-23*time.Hour - 59*time.Minute), "23h ago"},
		{"exactly one day", now.Add(-24 * time.Hour), "1d ago"},
		{"ten days", now.Add(-10*24*time.Hour - 5*time.Hour), "10d ago"},
		{"future", now.Add(time.Hour), "Just now"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeAgo(tt.at, now))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2025-03-01T22:15:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("03/01/2025")
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Second, ParseDuration("90s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
}

package render

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		full bool
		want string
	}{
		{"same day short", now.Add(-time.Minute), false, "07:59"},
		{"same day full", now.Add(-time.Minute), true, "Today at 07:59"},
		{"midnight today", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), false, "00:00"},
		{"yesterday", now.Add(-30 * time.Hour), true, "Yesterday at 02:00"},
		{"yesterday short form keeps prefix", now.Add(-30 * time.Hour), false, "Yesterday at 02:00"},
		{"ten days ago", now.AddDate(0, 0, -10), true, "28/02/2026 08:00"},
		{"two days ago", now.Add(-49 * time.Hour), true, "08/03/2026 07:00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatTimestamp(tc.ts, now, tc.full); got != tc.want {
				t.Fatalf("formatTimestamp = %q, want %q", got, tc.want)
			}
		})
	}
}

package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCountdown(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	testCases := []struct {
		name   string
		expiry uint64
		expect string
	}{
		{"ninety seconds out", uint64(now.Unix()) + 90, "00:01:30"},
		{"hours and change", uint64(now.Unix()) + 3*3600 + 25*60 + 7, "03:25:07"},
		{"already elapsed clamps to zero", uint64(now.Unix()) - 500, "00:00:00"},
		{"exactly now", uint64(now.Unix()), "00:00:00"},
		{"over a hundred hours", uint64(now.Unix()) + 101*3600, "101:00:00"},
		{"open quote with no deadline yet", 0, "-"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, FormatCountdown(tc.expiry, now))
		})
	}
}

func TestFormatCountdownNeverNegative(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	for delta := int64(-10000); delta <= 10000; delta += 997 {
		got := FormatCountdown(uint64(now.Unix()+delta), now)
		assert.NotContains(t, got, "-")
	}
}

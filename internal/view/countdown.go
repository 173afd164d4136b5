package view

import (
	"fmt"
	"time"
)

// FormatCountdown renders the time remaining until a unix-second expiry as
// HH:MM:SS, clamped at zero once the deadline has passed. Hours grow past two
// digits rather than wrapping. A zero expiry means no deadline has started
// yet and renders as "-", matching the limit-order time columns.
func FormatCountdown(expiry uint64, now time.Time) string {
	if expiry == 0 {
		return "-"
	}
	remaining := int64(expiry) - now.Unix()
	if remaining < 0 {
		remaining = 0
	}

	hrs := remaining / 3600
	mins := (remaining % 3600) / 60
	secs := remaining % 60
	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}

// FrozenCountdown is shown for records whose countdown is moot because the
// record reached a terminal state.
const FrozenCountdown = "00:00:00"

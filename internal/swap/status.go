package swap

import "time"

// Status is the derived lifecycle label of a swap record. It is recomputed
// from the record and the current time on every use and never stored.
type Status int

const (
	StatusUnknown Status = iota
	StatusOpen
	StatusTaken
	StatusSettled
	StatusDefaulted
	StatusExpired
	StatusClaimed
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusTaken:
		return "Taken"
	case StatusSettled:
		return "Settled"
	case StatusDefaulted:
		return "Defaulted"
	case StatusExpired:
		return "Expired"
	case StatusClaimed:
		return "Claimed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further transition can change the record.
func (s Status) Terminal() bool {
	return s == StatusClaimed || s == StatusCancelled
}

// SpreadStatus derives the status of a spread-pool record. Precedence, first
// match wins: Cancelled, Claimed, Settled, Taken, Defaulted, Open. Cancelled
// and claimed dominate every time-based condition, and a zero expiry never
// counts as elapsed.
func SpreadStatus(rec SpreadRecord, now time.Time) Status {
	switch {
	case rec.Cancelled:
		return StatusCancelled
	case rec.Claimed:
		return StatusClaimed
	case rec.Settled && rec.Taken:
		return StatusSettled
	case rec.Taken:
		return StatusTaken
	case rec.Expiry > 0 && uint64(now.Unix()) > rec.Expiry:
		return StatusDefaulted
	default:
		return StatusOpen
	}
}

// LimitStatus derives the status of a limit-order record. A taken order whose
// settlement deadline has elapsed is Defaulted; an untaken order whose order
// expiry has elapsed is Expired (it lapsed without ever being taken). The
// settle expiry is only a deadline once the order is taken; before that it is
// a relative duration and is ignored here.
func LimitStatus(rec LimitRecord, now time.Time) Status {
	nowSec := uint64(now.Unix())
	switch {
	case rec.Cancelled:
		return StatusCancelled
	case rec.Claimed:
		return StatusClaimed
	case rec.Settled:
		return StatusSettled
	case rec.Taken:
		if rec.SettleExpiry > 0 && nowSec > rec.SettleExpiry {
			return StatusDefaulted
		}
		return StatusTaken
	case rec.OrderExpiry > 0 && rec.OrderExpiry < nowSec:
		return StatusExpired
	default:
		return StatusOpen
	}
}

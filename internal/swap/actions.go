package swap

import "time"

// Action is a contract call a party may legally attempt on a swap record.
// Eligibility here mirrors the contract's own guards; the contract remains
// the enforcer and will revert if the record changed under us.
type Action int

const (
	ActionTake Action = iota
	ActionPay
	ActionSettle
	ActionClaim
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionTake:
		return "take"
	case ActionPay:
		return "pay"
	case ActionSettle:
		return "settle"
	case ActionClaim:
		return "claim"
	case ActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Role distinguishes the pool's market maker from everyone else.
type Role int

const (
	RoleTaker Role = iota
	RoleMaker
)

// SpreadActions returns the actions a party with the given role may attempt
// on a spread-pool record at the given time. Balance and allowance checks are
// the caller's concern; this is purely status x role.
func SpreadActions(rec SpreadRecord, role Role, now time.Time) []Action {
	status := SpreadStatus(rec, now)
	var out []Action

	if eligibleToClaim(rec.Flags, status) {
		out = append(out, ActionClaim)
	}
	if role == RoleMaker {
		if !rec.Taken && !rec.Settled && !rec.Claimed && !rec.Cancelled {
			out = append(out, ActionCancel)
		}
		if rec.Taken && !rec.Settled && !rec.Claimed {
			out = append(out, ActionSettle)
		}
	}
	if role == RoleTaker && status == StatusOpen {
		out = append(out, ActionTake)
	}
	return out
}

// LimitActions returns the actions a party with the given role may attempt on
// a limit-order record at the given time. Unlike the spread pool, payment of
// a taken order is the taker's move; the maker only cancels untaken orders or
// claims after settlement or default.
func LimitActions(rec LimitRecord, role Role, now time.Time) []Action {
	status := LimitStatus(rec, now)
	var out []Action

	if eligibleToClaim(rec.Flags, status) {
		out = append(out, ActionClaim)
	}
	if role == RoleMaker {
		if !rec.Taken && !rec.Settled && !rec.Claimed && !rec.Cancelled {
			out = append(out, ActionCancel)
		}
	}
	if role == RoleTaker {
		if status == StatusOpen {
			out = append(out, ActionTake)
		}
		if status == StatusTaken {
			out = append(out, ActionPay)
		}
	}
	return out
}

// eligibleToClaim: settled and defaulted swaps can be claimed, as can quotes
// that lapsed untaken, unless already claimed or cancelled.
func eligibleToClaim(f Flags, status Status) bool {
	if f.Claimed || f.Cancelled {
		return false
	}
	if f.Settled || status == StatusDefaulted {
		return true
	}
	return status == StatusExpired && !f.Taken
}

// Eligible reports whether action is in the derived set.
func Eligible(actions []Action, action Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

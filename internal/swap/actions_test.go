package swap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpreadActionsMakerLifecycle(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	open := SpreadRecord{}
	assert.ElementsMatch(t, []Action{ActionCancel}, SpreadActions(open, RoleMaker, now))
	assert.ElementsMatch(t, []Action{ActionTake}, SpreadActions(open, RoleTaker, now))

	taken := SpreadRecord{Flags: Flags{Taken: true}}
	assert.ElementsMatch(t, []Action{ActionSettle}, SpreadActions(taken, RoleMaker, now))
	assert.Empty(t, SpreadActions(taken, RoleTaker, now))

	settled := SpreadRecord{Flags: Flags{Taken: true, Settled: true}}
	assert.ElementsMatch(t, []Action{ActionClaim}, SpreadActions(settled, RoleMaker, now))
	assert.ElementsMatch(t, []Action{ActionClaim}, SpreadActions(settled, RoleTaker, now))

	claimed := SpreadRecord{Flags: Flags{Taken: true, Settled: true, Claimed: true}}
	assert.Empty(t, SpreadActions(claimed, RoleMaker, now))

	cancelled := SpreadRecord{Flags: Flags{Cancelled: true}}
	assert.Empty(t, SpreadActions(cancelled, RoleMaker, now))
	assert.Empty(t, SpreadActions(cancelled, RoleTaker, now))
}

func TestSpreadActionsDefaultedClaim(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	defaulted := SpreadRecord{Expiry: uint64(now.Unix()) - 10}

	actions := SpreadActions(defaulted, RoleTaker, now)
	assert.True(t, Eligible(actions, ActionClaim))
	assert.False(t, Eligible(actions, ActionTake), "defaulted quote must not be takeable")
}

func TestLimitActions(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	future := uint64(now.Unix()) + 3600

	open := LimitRecord{OrderExpiry: future}
	assert.ElementsMatch(t, []Action{ActionTake}, LimitActions(open, RoleTaker, now))
	assert.ElementsMatch(t, []Action{ActionCancel}, LimitActions(open, RoleMaker, now))

	taken := LimitRecord{SettleExpiry: future, Flags: Flags{Taken: true}}
	assert.ElementsMatch(t, []Action{ActionPay}, LimitActions(taken, RoleTaker, now))
	assert.Empty(t, LimitActions(taken, RoleMaker, now), "maker waits for payment or default")

	defaulted := LimitRecord{SettleExpiry: uint64(now.Unix()) - 10, Flags: Flags{Taken: true}}
	assert.True(t, Eligible(LimitActions(defaulted, RoleMaker, now), ActionClaim))
	assert.False(t, Eligible(LimitActions(defaulted, RoleTaker, now), ActionPay))

	lapsed := LimitRecord{OrderExpiry: uint64(now.Unix()) - 10}
	actions := LimitActions(lapsed, RoleTaker, now)
	assert.False(t, Eligible(actions, ActionTake))
	assert.True(t, Eligible(actions, ActionClaim))
}

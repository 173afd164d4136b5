package swap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Unix(1_700_000_000, 0)

func TestSpreadStatusPrecedence(t *testing.T) {
	past := uint64(testNow.Unix()) - 100
	future := uint64(testNow.Unix()) + 100

	testCases := []struct {
		name   string
		rec    SpreadRecord
		expect Status
	}{
		{
			name:   "cancelled dominates everything",
			rec:    SpreadRecord{Expiry: past, Flags: Flags{Cancelled: true}},
			expect: StatusCancelled,
		},
		{
			name:   "claimed dominates time conditions",
			rec:    SpreadRecord{Expiry: past, Flags: Flags{Taken: true, Settled: true, Claimed: true}},
			expect: StatusClaimed,
		},
		{
			name:   "settled and taken is filled",
			rec:    SpreadRecord{Expiry: past, Flags: Flags{Taken: true, Settled: true}},
			expect: StatusSettled,
		},
		{
			name:   "taken but not settled awaits fill",
			rec:    SpreadRecord{Expiry: past, Flags: Flags{Taken: true}},
			expect: StatusTaken,
		},
		{
			name:   "elapsed expiry without a taker defaults",
			rec:    SpreadRecord{Expiry: past},
			expect: StatusDefaulted,
		},
		{
			name:   "zero expiry means no expiry",
			rec:    SpreadRecord{Expiry: 0},
			expect: StatusOpen,
		},
		{
			name:   "future expiry stays open",
			rec:    SpreadRecord{Expiry: future},
			expect: StatusOpen,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, SpreadStatus(tc.rec, testNow))
		})
	}
}

func TestSpreadStatusIdempotent(t *testing.T) {
	rec := SpreadRecord{Expiry: uint64(testNow.Unix()) - 1}
	first := SpreadStatus(rec, testNow)
	second := SpreadStatus(rec, testNow)
	assert.Equal(t, first, second)
	assert.Equal(t, StatusDefaulted, first)
}

func TestLimitStatusPrecedence(t *testing.T) {
	past := uint64(testNow.Unix()) - 100
	future := uint64(testNow.Unix()) + 100

	testCases := []struct {
		name   string
		rec    LimitRecord
		expect Status
	}{
		{
			name:   "cancelled dominates",
			rec:    LimitRecord{OrderExpiry: past, Flags: Flags{Cancelled: true}},
			expect: StatusCancelled,
		},
		{
			name:   "claimed before settled",
			rec:    LimitRecord{Flags: Flags{Taken: true, Settled: true, Claimed: true}},
			expect: StatusClaimed,
		},
		{
			name:   "settled order",
			rec:    LimitRecord{Flags: Flags{Taken: true, Settled: true}},
			expect: StatusSettled,
		},
		{
			name:   "taken with open settlement window",
			rec:    LimitRecord{SettleExpiry: future, Flags: Flags{Taken: true}},
			expect: StatusTaken,
		},
		{
			name:   "taken past settlement deadline is defaulted",
			rec:    LimitRecord{SettleExpiry: past, Flags: Flags{Taken: true}},
			expect: StatusDefaulted,
		},
		{
			name:   "untaken past order expiry lapses",
			rec:    LimitRecord{OrderExpiry: past},
			expect: StatusExpired,
		},
		{
			name:   "zero order expiry never lapses",
			rec:    LimitRecord{OrderExpiry: 0},
			expect: StatusOpen,
		},
		{
			name:   "cancelled and expired shows cancelled",
			rec:    LimitRecord{OrderExpiry: past, Flags: Flags{Cancelled: true}},
			expect: StatusCancelled,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, LimitStatus(tc.rec, testNow))
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusClaimed.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusOpen.Terminal())
	assert.False(t, StatusDefaulted.Terminal())
	assert.False(t, StatusSettled.Terminal())
}

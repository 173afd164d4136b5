package view

import (
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"deferswap/internal/swap"
)

func TestSpreadHistoryTableFreezesTerminalCountdowns(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	base := TokenInfo{Symbol: "USDC", Decimals: 6}
	quote := TokenInfo{Symbol: "DODO", Decimals: 18}

	records := []swap.SpreadRecord{
		{
			ID:           2,
			Swapper:      common.HexToAddress("0x1111111111111111111111111111111111111111"),
			QuoteAmount:  big.NewInt(1_000_000_000_000_000_000),
			BaseAmount:   big.NewInt(2_000_000),
			MaxQuoteSize: big.NewInt(5_000_000_000_000_000_000),
			Expiry:       uint64(now.Unix()) + 90,
			Flags:        swap.Flags{Taken: true},
		},
		{
			ID:     1,
			Expiry: uint64(now.Unix()) + 90,
			Flags:  swap.Flags{Cancelled: true},
		},
		{
			ID: 0,
		},
	}

	var sb strings.Builder
	SpreadHistoryTable(&sb, records, base, quote, now)
	out := sb.String()

	assert.Contains(t, out, "Taken")
	assert.Contains(t, out, "00:01:30")
	assert.Contains(t, out, "Cancelled")

	// The cancelled row must show a frozen countdown even though its
	// expiry is still in the future.
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines[2], FrozenCountdown)

	// An open quote has no deadline yet; its countdown column shows "-"
	// rather than a zero that reads as already expired.
	assert.Contains(t, strings.Fields(lines[3]), "-")
}

func TestLimitHistoryTableSettleWindow(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	base := TokenInfo{Symbol: "USDC", Decimals: 6}
	quote := TokenInfo{Symbol: "DODO", Decimals: 18}

	records := []swap.LimitRecord{
		{
			ID:             0,
			QuoteAmount:    big.NewInt(1_000_000_000_000_000_000),
			BaseAmount:     big.NewInt(3_000_000),
			MinQuoteAmount: big.NewInt(0),
			OrderExpiry:    uint64(now.Unix()) + 3600,
			SettleExpiry:   7200,
			CollateralRate: big.NewInt(500),
		},
	}

	var sb strings.Builder
	LimitHistoryTable(&sb, records, base, quote, now)
	out := sb.String()

	// Untaken orders show the settle window as a duration, not a deadline.
	assert.Contains(t, out, "2.0 hours")
	assert.Contains(t, out, "Open")
	assert.Contains(t, out, "-")
}

func TestPoolListTable(t *testing.T) {
	rows := []PoolRow{
		{
			Address:     "0x2576cd8a53411c5dbB5B5Df4390A3b318Cca2323",
			BaseSymbol:  "USDC",
			QuoteSymbol: "DODO",
			MarketMaker: "0x1111111111111111111111111111111111111111",
			LatestID:    "4",
			LatestState: "Open",
		},
	}

	var sb strings.Builder
	PoolListTable(&sb, rows)
	out := sb.String()

	assert.Contains(t, out, "DODO/USDC")
	assert.Contains(t, out, "0x1111...1111")
	assert.Contains(t, out, "Open")
}

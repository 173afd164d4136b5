package swap

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpreadTakeWarnings(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rec := SpreadRecord{MaxQuoteSize: big.NewInt(100)}
	balance := big.NewInt(1000)

	warnings := SpreadTakeWarnings(rec, big.NewInt(50), nil, balance, now)
	assert.Empty(t, warnings)

	warnings = SpreadTakeWarnings(rec, big.NewInt(150), nil, balance, now)
	assert.Contains(t, warnings, "amount exceeds max quote size")

	warnings = SpreadTakeWarnings(rec, big.NewInt(50), big.NewInt(80), balance, now)
	assert.Contains(t, warnings, "amount is below the pool minimum quote size")

	warnings = SpreadTakeWarnings(rec, big.NewInt(50), nil, big.NewInt(10), now)
	assert.Contains(t, warnings, "amount exceeds quote token balance")

	taken := SpreadRecord{MaxQuoteSize: big.NewInt(100), Flags: Flags{Taken: true}}
	warnings = SpreadTakeWarnings(taken, big.NewInt(50), nil, balance, now)
	assert.Contains(t, warnings, "latest quote is Taken, not open")

	warnings = SpreadTakeWarnings(rec, nil, nil, balance, now)
	assert.Equal(t, []string{"enter an amount to swap"}, warnings)
}

func TestSpreadQuoteWarnings(t *testing.T) {
	tiers := []*big.Int{big.NewInt(1), big.NewInt(2)}
	spreads := []*big.Int{big.NewInt(10), big.NewInt(20)}

	assert.Empty(t, SpreadQuoteWarnings(spreads, tiers, big.NewInt(50), big.NewInt(100)))

	warnings := SpreadQuoteWarnings(spreads, tiers, big.NewInt(200), big.NewInt(100))
	assert.Contains(t, warnings, "insufficient base token balance for required collateral")

	bad := []*big.Int{big.NewInt(2), big.NewInt(1)}
	warnings = SpreadQuoteWarnings(spreads, bad, nil, nil)
	assert.Contains(t, warnings, ErrTiersNotAscending.Error())
}

func TestLimitMakeWarnings(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	params := LimitMakeParams{
		QuoteAmount:    big.NewInt(100),
		BaseAmount:     big.NewInt(50),
		MinQuoteAmount: big.NewInt(10),
		OrderExpiry:    uint64(now.Unix()) + 3600,
		SettleExpiry:   3600,
		CollateralRate: big.NewInt(500),
	}
	rateLimit := big.NewInt(1000)

	assert.Empty(t, LimitMakeWarnings(params, rateLimit, big.NewInt(50), now))

	over := params
	over.CollateralRate = big.NewInt(1500)
	assert.Contains(t, LimitMakeWarnings(over, rateLimit, big.NewInt(50), now), "collateral rate exceeds pool limit")

	stale := params
	stale.OrderExpiry = uint64(now.Unix()) - 1
	assert.Contains(t, LimitMakeWarnings(stale, rateLimit, big.NewInt(50), now), "order expiry must be in the future")

	backwards := params
	backwards.MinQuoteAmount = big.NewInt(200)
	assert.Contains(t, LimitMakeWarnings(backwards, rateLimit, big.NewInt(50), now), "min quote amount cannot exceed quote amount")

	poor := LimitMakeWarnings(params, rateLimit, big.NewInt(10), now)
	assert.Contains(t, poor, "insufficient base token balance")
}

func TestLimitTakeWarnings(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rec := LimitRecord{
		QuoteAmount:    big.NewInt(1000),
		BaseAmount:     big.NewInt(500),
		MinQuoteAmount: big.NewInt(100),
		OrderExpiry:    uint64(now.Unix()) + 3600,
		CollateralRate: big.NewInt(500),
	}

	// Collateral in quote token: 5% of 1000 = 50.
	assert.Empty(t, LimitTakeWarnings(rec, big.NewInt(500), big.NewInt(50), false, now))

	warnings := LimitTakeWarnings(rec, big.NewInt(500), big.NewInt(10), false, now)
	assert.Contains(t, warnings, "insufficient quote token balance for collateral")

	warnings = LimitTakeWarnings(rec, big.NewInt(2000), big.NewInt(100), false, now)
	assert.Contains(t, warnings, "amount exceeds order quote amount")

	warnings = LimitTakeWarnings(rec, big.NewInt(50), big.NewInt(100), false, now)
	assert.Contains(t, warnings, "amount is below the order minimum")
}

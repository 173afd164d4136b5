package swap

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spreadTuple(taken, settled, claimed, cancelled bool) []interface{} {
	return []interface{}{
		common.HexToAddress("0x1111111111111111111111111111111111111111"),
		big.NewInt(100), // quoteAmount
		big.NewInt(200), // baseAmount
		big.NewInt(500), // maxQuoteSize
		big.NewInt(10),  // collateral
		big.NewInt(1_700_000_000),
		taken, settled, claimed, cancelled,
	}
}

func TestDecodeSpreadRecord(t *testing.T) {
	rec, err := DecodeSpreadRecord(3, spreadTuple(true, false, false, false))
	require.NoError(t, err)

	assert.Equal(t, uint64(3), rec.ID)
	assert.Equal(t, common.HexToAddress("0x1111111111111111111111111111111111111111"), rec.Swapper)
	assert.Equal(t, big.NewInt(100), rec.QuoteAmount)
	assert.Equal(t, big.NewInt(500), rec.MaxQuoteSize)
	assert.Equal(t, uint64(1_700_000_000), rec.Expiry)
	assert.True(t, rec.Taken)
	assert.False(t, rec.Settled)
}

func TestDecodeSpreadRecordRejectsUnreachableFlags(t *testing.T) {
	// Cancelled alongside taken is not reachable by any contract transition.
	_, err := DecodeSpreadRecord(0, spreadTuple(true, false, false, true))
	assert.ErrorContains(t, err, "inconsistent swap flags")

	// Settled without taken violates the taken-before-settled ordering.
	_, err = DecodeSpreadRecord(0, spreadTuple(false, true, false, false))
	assert.ErrorContains(t, err, "settled without taken")
}

func TestDecodeSpreadRecordWrongArity(t *testing.T) {
	_, err := DecodeSpreadRecord(0, spreadTuple(false, false, false, false)[:8])
	assert.ErrorContains(t, err, "want 10 values")
}

func TestDecodeLimitRecord(t *testing.T) {
	values := []interface{}{
		common.HexToAddress("0x2222222222222222222222222222222222222222"),
		big.NewInt(1000), // quoteAmount
		big.NewInt(500),  // baseAmount
		big.NewInt(100),  // minQuoteAmount
		big.NewInt(25),   // collateral
		big.NewInt(1_700_003_600),
		big.NewInt(7200),
		big.NewInt(500), // collateralRate
		false, false, false, false,
	}

	rec, err := DecodeLimitRecord(7, values)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), rec.ID)
	assert.Equal(t, big.NewInt(100), rec.MinQuoteAmount)
	assert.Equal(t, uint64(1_700_003_600), rec.OrderExpiry)
	assert.Equal(t, uint64(7200), rec.SettleExpiry)
	assert.Equal(t, big.NewInt(500), rec.CollateralRate)
}

func TestFilterBySwapper(t *testing.T) {
	alice := common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob := common.HexToAddress("0x2222222222222222222222222222222222222222")

	spreads := []SpreadRecord{
		{ID: 2, Swapper: alice, Flags: Flags{Taken: true}},
		{ID: 1, Swapper: bob, Flags: Flags{Taken: true}},
		{ID: 0}, // untaken, zero swapper
	}
	got := FilterSpreadBySwapper(spreads, alice)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(2), got[0].ID)

	limits := []LimitRecord{
		{ID: 1, Swapper: bob, Flags: Flags{Taken: true}},
		{ID: 0, Swapper: alice, Flags: Flags{Taken: true, Settled: true}},
	}
	assert.Len(t, FilterLimitBySwapper(limits, bob), 1)
	assert.Empty(t, FilterSpreadBySwapper(spreads, common.HexToAddress("0x3333333333333333333333333333333333333333")))
}

func TestFlagsValidate(t *testing.T) {
	valid := []Flags{
		{},
		{Taken: true},
		{Taken: true, Settled: true},
		{Taken: true, Settled: true, Claimed: true},
		{Taken: true, Claimed: true},
		{Claimed: true}, // claim of an expired, never-taken quote
		{Cancelled: true},
	}
	for _, f := range valid {
		assert.NoError(t, f.Validate(), f.String())
	}

	invalid := []Flags{
		{Cancelled: true, Taken: true},
		{Cancelled: true, Claimed: true},
		{Settled: true},
	}
	for _, f := range invalid {
		assert.Error(t, f.Validate(), f.String())
	}
}

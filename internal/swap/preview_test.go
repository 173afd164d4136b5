package swap

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpreadMakerCollateral(t *testing.T) {
	// tier=1000, price=2, rate=500 bps: penalty 100, buffered 105.
	got := SpreadMakerCollateral(big.NewInt(1000), big.NewInt(2), big.NewInt(500))
	assert.Equal(t, big.NewInt(105), got)

	// tier=100, price=2, rate=500 bps: penalty 10, buffered 10.5 rounds up.
	got = SpreadMakerCollateral(big.NewInt(100), big.NewInt(2), big.NewInt(500))
	assert.Equal(t, big.NewInt(11), got)

	// Sub-unit penalty rounds up before buffering.
	got = SpreadMakerCollateral(big.NewInt(1), big.NewInt(1), big.NewInt(1))
	assert.Equal(t, big.NewInt(2), got)
}

func TestLimitTakerCollateral(t *testing.T) {
	base := big.NewInt(1000)
	quote := big.NewInt(4000)
	rate := big.NewInt(500) // 5%

	assert.Equal(t, big.NewInt(50), LimitTakerCollateral(base, quote, rate, true))
	assert.Equal(t, big.NewInt(200), LimitTakerCollateral(base, quote, rate, false))
}

func TestMinBaseAmount(t *testing.T) {
	price := big.NewInt(10000)

	assert.Equal(t, big.NewInt(9900), MinBaseAmount(price, SlippageBips(1)))
	assert.Equal(t, big.NewInt(9950), MinBaseAmount(price, SlippageBips(0.5)))
	// Zero slippage disables the minimum-out guard: any fill is accepted.
	assert.Equal(t, big.NewInt(0), MinBaseAmount(price, SlippageBips(0)))
	assert.Equal(t, big.NewInt(0), MinBaseAmount(price, SlippageBips(-1)))
}

func TestSlippageBips(t *testing.T) {
	assert.Equal(t, int64(100), SlippageBips(1))
	assert.Equal(t, int64(50), SlippageBips(0.5))
	assert.Equal(t, int64(12), SlippageBips(0.125)) // truncates below a bip
	assert.Equal(t, int64(0), SlippageBips(-3))
}

func TestValidateTiers(t *testing.T) {
	tiers := func(vals ...int64) []*big.Int {
		out := make([]*big.Int, len(vals))
		for i, v := range vals {
			out[i] = big.NewInt(v)
		}
		return out
	}

	require.NoError(t, ValidateTiers(tiers(5, 10, 15), tiers(1, 2, 3)))
	assert.ErrorIs(t, ValidateTiers(tiers(5, 10, 15), tiers(1, 1, 3)), ErrTiersNotAscending)
	assert.ErrorIs(t, ValidateTiers(tiers(5, 10, 15), tiers(3, 2, 1)), ErrTiersNotAscending)
	assert.ErrorIs(t, ValidateTiers(tiers(5, 10), tiers(1, 2, 3)), ErrTierCountMismatch)
}

func TestAllowanceSufficient(t *testing.T) {
	assert.True(t, AllowanceSufficient(big.NewInt(100), big.NewInt(100)))
	assert.True(t, AllowanceSufficient(big.NewInt(101), big.NewInt(100)))
	assert.False(t, AllowanceSufficient(big.NewInt(99), big.NewInt(100)))
	assert.False(t, AllowanceSufficient(nil, big.NewInt(1)))
}

package swap

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	testCases := []struct {
		input    string
		decimals uint8
		expect   string
	}{
		{"1", 18, "1000000000000000000"},
		{"1.5", 6, "1500000"},
		{"0.000001", 6, "1"},
		{"42", 0, "42"},
		{"-2.5", 2, "-250"},
		{".5", 2, "50"},
	}

	for _, tc := range testCases {
		got, err := ParseUnits(tc.input, tc.decimals)
		require.NoError(t, err, tc.input)

		expect, ok := new(big.Int).SetString(tc.expect, 10)
		require.True(t, ok)
		assert.Equal(t, expect, got, tc.input)
	}
}

func TestParseUnitsRejectsBadInput(t *testing.T) {
	_, err := ParseUnits("", 18)
	assert.Error(t, err)

	_, err = ParseUnits("abc", 18)
	assert.Error(t, err)

	// More fractional digits than the token supports.
	_, err = ParseUnits("1.234", 2)
	assert.Error(t, err)
}

func TestFormatUnits(t *testing.T) {
	v := func(s string) *big.Int {
		out, ok := new(big.Int).SetString(s, 10)
		if !ok {
			t.Fatalf("bad test value %q", s)
		}
		return out
	}

	assert.Equal(t, "1", FormatUnits(v("1000000000000000000"), 18))
	assert.Equal(t, "1.5", FormatUnits(v("1500000"), 6))
	assert.Equal(t, "0.000001", FormatUnits(v("1"), 6))
	assert.Equal(t, "42", FormatUnits(v("42"), 0))
	assert.Equal(t, "-2.5", FormatUnits(v("-250"), 2))
	assert.Equal(t, "0", FormatUnits(nil, 18))
}

func TestUnitsRoundTrip(t *testing.T) {
	for _, s := range []string{"1", "0.5", "123456.789", "0.000000000000000001"} {
		parsed, err := ParseUnits(s, 18)
		require.NoError(t, err)
		assert.Equal(t, s, FormatUnits(parsed, 18))
	}
}

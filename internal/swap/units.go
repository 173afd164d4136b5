package swap

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseUnits converts a decimal string such as "1.5" into on-chain integer
// units for a token with the given decimals. Fractional digits beyond the
// token's precision are rejected rather than silently truncated.
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > int(decimals) {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", s, decimals)
	}

	digits := whole + frac + strings.Repeat("0", int(decimals)-len(frac))
	out, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if neg {
		out.Neg(out)
	}
	return out, nil
}

// FormatUnits renders on-chain integer units as a decimal string, trimming
// trailing fractional zeros.
func FormatUnits(v *big.Int, decimals uint8) string {
	if v == nil {
		return "0"
	}

	s := new(big.Int).Abs(v).String()
	neg := v.Sign() < 0

	if int(decimals) >= len(s) {
		s = strings.Repeat("0", int(decimals)-len(s)+1) + s
	}
	whole := s[:len(s)-int(decimals)]
	frac := strings.TrimRight(s[len(s)-int(decimals):], "0")

	out := whole
	if frac != "" {
		out += "." + frac
	}
	if neg && out != "0" {
		out = "-" + out
	}
	return out
}

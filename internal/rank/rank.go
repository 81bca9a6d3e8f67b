package rank

import (
	"math/big"
	"strings"

	sdkmath "cosmossdk.io/math"
)

type Tier string

const (
	Tier1   Tier = "tier_1"
	Tier2   Tier = "tier_2"
	Tier3   Tier = "tier_3"
	Tier4   Tier = "tier_4"
	TierTop Tier = "top"
)

type threshold struct {
	min  sdkmath.Int
	tier Tier
}

// highest first, the first threshold reached wins
var thresholds = []threshold{
	{min: sdkmath.NewInt(10_000_000), tier: TierTop},
	{min: sdkmath.NewInt(1_000_000), tier: Tier4},
	{min: sdkmath.NewInt(100_000), tier: Tier3},
	{min: sdkmath.NewInt(1_000), tier: Tier2},
	{min: sdkmath.OneInt(), tier: Tier1},
}

var separatorReplacer = strings.NewReplacer(",", "", "_", "", " ", "")

// ParseWhole returns the whole part of a display balance such as "1,234.5678".
func ParseWhole(balance string) (sdkmath.Int, bool) {
	s := separatorReplacer.Replace(strings.TrimSpace(balance))
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return sdkmath.Int{}, false
	}

	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.BitLen() > sdkmath.MaxBitLen {
		return sdkmath.Int{}, false
	}
	return sdkmath.NewIntFromBigInt(v), true
}

// Classify maps a display balance to its tier. Balances that are unparsable or not positive
// have no tier.
func Classify(balance string) (Tier, bool) {
	whole, ok := ParseWhole(balance)
	if !ok || !whole.IsPositive() {
		return "", false
	}

	for _, t := range thresholds {
		if whole.GTE(t.min) {
			return t.tier, true
		}
	}
	return "", false
}

// MeetsRequirement reports whether the whole part of balance is at least minBalance.
func MeetsRequirement(balance string, minBalance sdkmath.Int) bool {
	whole, ok := ParseWhole(balance)
	if !ok {
		return false
	}
	return whole.GTE(minBalance)
}

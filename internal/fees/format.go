package fees

import (
	"math/big"
	"strings"

	sdkmath "cosmossdk.io/math"
)

const (
	// NativeDecimals is the number of decimal places of the ledger's native fee unit.
	NativeDecimals uint = 8
	// DisplayDecimals is the fraction width used for every fee shown to a user.
	DisplayDecimals uint = 6
)

var bigTen = big.NewInt(10)

// FormatUnits renders raw base units as an exact decimal string with exactly decimals
// fraction digits. decimals == 0 renders the whole part only.
func FormatUnits(raw sdkmath.Int, decimals uint) string {
	if raw.IsNil() {
		raw = sdkmath.ZeroInt()
	}
	return formatBig(raw.BigInt(), decimals, decimals)
}

// FormatDisplay is FormatUnits with the fraction truncated (not rounded) to DisplayDecimals.
func FormatDisplay(raw sdkmath.Int, decimals uint) string {
	if raw.IsNil() {
		raw = sdkmath.ZeroInt()
	}
	return formatBig(raw.BigInt(), decimals, min(decimals, DisplayDecimals))
}

// ZeroDisplay is the display representation of a zero amount.
func ZeroDisplay(decimals uint) string {
	return FormatDisplay(sdkmath.ZeroInt(), decimals)
}

func formatBig(raw *big.Int, decimals, width uint) string {
	sign := ""
	value := raw
	if raw.Sign() < 0 {
		sign = "-"
		value = new(big.Int).Neg(raw)
	}

	if decimals == 0 {
		return sign + value.String()
	}

	scale := new(big.Int).Exp(bigTen, big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(value, scale, new(big.Int))

	fracDigits := frac.String()
	if pad := int(decimals) - len(fracDigits); pad > 0 {
		fracDigits = strings.Repeat("0", pad) + fracDigits
	}
	fracDigits = fracDigits[:width]

	if width == 0 {
		return sign + whole.String()
	}
	return sign + whole.String() + "." + fracDigits
}

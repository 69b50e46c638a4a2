// Package units converts human-denominated decimal amounts to a ledger's
// fixed-point base units and back.
package units

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ToBaseUnits encodes amount with the given number of decimals.
// Digits beyond the asset's precision are truncated toward zero so the
// encoded value never exceeds the requested amount.
func ToBaseUnits(amount decimal.Decimal, decimals int32) (*big.Int, error) {
	if decimals < 0 {
		return nil, fmt.Errorf("negative decimals %d", decimals)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("negative amount %s", amount.String())
	}
	if FractionalDigits(amount) > decimals {
		amount = amount.Truncate(decimals)
	}
	return amount.Shift(decimals).BigInt(), nil
}

// FromBaseUnits decodes a base-unit integer back into a decimal amount.
func FromBaseUnits(base *big.Int, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(base, -decimals)
}

// FractionalDigits reports how many digits follow the decimal point in amount's
// own representation, ignoring trailing zeros.
func FractionalDigits(amount decimal.Decimal) int32 {
	s := amount.String()
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return int32(len(s) - i - 1)
}

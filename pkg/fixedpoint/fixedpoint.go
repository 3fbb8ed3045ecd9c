// Package fixedpoint converts between human decimals and 18-decimal wei
// integers without floating-point drift.
//
// Doubles cannot represent most short decimals exactly (0.46 is really
// 0.46000000000000001998...), so multiplying by 1e18 and casting leaks the
// representation error into the low digits. ToWei instead renders the
// double's shortest round-trip decimal string and scales that decimal by
// 10^18 in exact integer arithmetic. shopspring/decimal does both steps:
// NewFromFloat parses strconv's shortest representation, and Shift moves
// the exponent without ever touching IEEE-754 arithmetic.
package fixedpoint

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"predict-sdk/pkg/types"
)

// ToWei converts a float to its exact 18-decimal wei equivalent.
// Fractional digits beyond 18 are truncated toward zero. NaN and
// infinities fail with types.ErrNotFinite.
func ToWei(x float64) (*big.Int, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil, fmt.Errorf("to wei: %w", types.ErrNotFinite)
	}
	return decimal.NewFromFloat(x).Shift(18).BigInt(), nil
}

// FromWei converts a wei amount back to a float for display. The result is
// a best-effort round-trip and must never feed an amount computation.
func FromWei(w *big.Int) float64 {
	f, _ := decimal.NewFromBigInt(w, -18).Float64()
	return f
}

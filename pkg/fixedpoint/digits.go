package fixedpoint

import "math/big"

var ten = big.NewInt(10)

// RetainSignificantDigits truncates n toward zero so that at most the given
// number of leading significant digits survive. The exchange quantizes
// prices to 3 significant digits and share quantities to 5; amounts built
// off-grid are rejected at the API. The magnitude of the result never
// exceeds that of the input.
func RetainSignificantDigits(n *big.Int, digits int) *big.Int {
	if digits <= 0 || n.Sign() == 0 {
		return new(big.Int).Set(n)
	}

	abs := new(big.Int).Abs(n)
	numDigits := len(abs.String())
	if numDigits <= digits {
		return new(big.Int).Set(n)
	}

	factor := new(big.Int).Exp(ten, big.NewInt(int64(numDigits-digits)), nil)
	out := new(big.Int).Quo(abs, factor)
	out.Mul(out, factor)
	if n.Sign() < 0 {
		out.Neg(out)
	}
	return out
}

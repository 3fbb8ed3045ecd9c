package builder

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"predict-sdk/pkg/types"
)

// saltBound is the exclusive upper bound for rand.Int: MaxSalt + 1.
var saltBound = new(big.Int).Add(types.MaxSalt, big.NewInt(1))

// GenerateOrderSalt draws a uniform salt in [0, MaxSalt] from crypto/rand.
// The salt is the only thing distinguishing two otherwise identical
// orders, so collisions would let one fill cancel the other.
func GenerateOrderSalt() (*big.Int, error) {
	salt, err := rand.Int(rand.Reader, saltBound)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

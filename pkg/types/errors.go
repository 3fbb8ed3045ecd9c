package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the order-construction pipeline. Callers match with
// errors.Is; lower layers wrap these with context via fmt.Errorf and %w.
var (
	// ErrInvalidQuantity: quantity below MinQuantityWei, value below
	// MinValueWei, or an intent that resolves to zero fillable size.
	ErrInvalidQuantity = errors.New("quantity below minimum")

	// ErrInsufficientLiquidity: the book cannot satisfy the requested
	// size or value.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")

	// ErrInvalidExpiration: a limit order's expiration is in the past.
	ErrInvalidExpiration = errors.New("expiration is in the past")

	// ErrMakerSignerMismatch: an explicit maker differs from the
	// configured signer address.
	ErrMakerSignerMismatch = errors.New("maker differs from signer address")

	// ErrMissingSigner: an operation that requires signing was called on
	// a builder with no signer capability.
	ErrMissingSigner = errors.New("no signer configured")

	// ErrNumeric: an arithmetic invariant was violated.
	ErrNumeric = errors.New("numeric error")

	// ErrNotFinite: a NaN or infinite double reached fixed-point
	// conversion. Matches ErrNumeric under errors.Is.
	ErrNotFinite = fmt.Errorf("value is not finite: %w", ErrNumeric)

	// ErrInvalidBook: an orderbook tier has a price outside (0, 1] or a
	// non-positive size.
	ErrInvalidBook = errors.New("invalid orderbook tier")
)

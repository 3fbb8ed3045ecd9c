// Package orderbook prices market orders against a book snapshot.
//
// A market order has no limit price, so its amounts come from walking the
// opposing side of the book: asks for a BUY, bids for a SELL, best tier
// first. The walk accumulates the volume-weighted notional in 1e36 units
// and performs a single division at the very end — dividing per tier would
// round each term and the drift shows up in the final weighted average.
//
// The execution price a quantity-sized order is built from is the worst
// tier the walk consumed, not the average: that is the price the exchange
// contract will enforce on the furthest fill. Slippage buffering therefore
// applies on top of the worst tier too. A value-sized order instead carries
// the stated value and the shares each tier sells for it, and its slippage
// buffer applies to those amounts.
package orderbook

import (
	"fmt"
	"math/big"

	"predict-sdk/pkg/fixedpoint"
	"predict-sdk/pkg/types"
)

// WalkByQuantity fills a share quantity against the book and returns the
// amount triple for the intent's side, with slippage applied.
func WalkByQuantity(book *types.Book, in types.MarketIntent) (*types.Amounts, error) {
	if in.Quantity == nil || in.Quantity.Cmp(types.MinQuantityWei) < 0 {
		return nil, fmt.Errorf("market quantity %v: %w", in.Quantity, types.ErrInvalidQuantity)
	}

	tiers := book.Asks
	if in.Side == types.SELL {
		tiers = book.Bids
	}

	var (
		remaining = new(big.Int).Set(in.Quantity)
		filled    = new(big.Int)
		notional  = new(big.Int) // price * qty, in 1e36 units
		last      = new(big.Int)
	)

	for _, tier := range tiers {
		priceW, sizeW, err := tierToWei(tier)
		if err != nil {
			return nil, err
		}

		take := sizeW
		if remaining.Cmp(sizeW) < 0 {
			take = remaining
		}

		filled.Add(filled, take)
		notional.Add(notional, new(big.Int).Mul(priceW, take))
		last.Set(priceW)
		remaining = new(big.Int).Sub(remaining, take)

		if remaining.Sign() == 0 {
			break
		}
	}

	if remaining.Sign() > 0 {
		return nil, fmt.Errorf("book %d can fill only %s of %s: %w",
			book.MarketID, filled, in.Quantity, types.ErrInsufficientLiquidity)
	}

	pricePerShare := new(big.Int).Quo(notional, filled)
	return buildAmounts(in.Side, filled, last, pricePerShare, in.SlippageBps), nil
}

// WalkByValue fills a collateral value against the book, deriving the share
// count tier by tier. The maker amount of a BUY is the full input value;
// the taker amount is the shares that value purchases at book prices.
func WalkByValue(book *types.Book, in types.MarketValueIntent) (*types.Amounts, error) {
	if in.Value == nil || in.Value.Cmp(types.MinValueWei) < 0 {
		return nil, fmt.Errorf("market value %v: %w", in.Value, types.ErrInvalidQuantity)
	}

	tiers := book.Asks
	if in.Side == types.SELL {
		tiers = book.Bids
	}

	var (
		remaining = new(big.Int).Set(in.Value)
		filled    = new(big.Int)
		notional  = new(big.Int)
		last      = new(big.Int)
	)

	for _, tier := range tiers {
		priceW, sizeW, err := tierToWei(tier)
		if err != nil {
			return nil, err
		}

		// The most this tier can absorb, in collateral.
		maxSpend := new(big.Int).Div(new(big.Int).Mul(sizeW, priceW), types.Precision)
		spend := maxSpend
		if remaining.Cmp(maxSpend) < 0 {
			spend = remaining
		}
		if spend.Sign() == 0 {
			continue
		}

		shares := new(big.Int).Div(new(big.Int).Mul(spend, types.Precision), priceW)

		filled.Add(filled, shares)
		notional.Add(notional, new(big.Int).Mul(priceW, shares))
		last.Set(priceW)
		remaining = new(big.Int).Sub(remaining, spend)

		if remaining.Sign() == 0 {
			break
		}
	}

	if remaining.Sign() > 0 {
		return nil, fmt.Errorf("book %d can absorb only %s of %s: %w",
			book.MarketID, new(big.Int).Sub(in.Value, remaining), in.Value, types.ErrInsufficientLiquidity)
	}
	if filled.Sign() == 0 {
		return nil, fmt.Errorf("value %s fills zero shares: %w", in.Value, types.ErrInvalidQuantity)
	}

	pricePerShare := new(big.Int).Quo(notional, filled)

	// By-value orders spend the stated value regardless of rounding in the
	// per-tier share derivation.
	var maker, taker *big.Int
	if in.Side == types.BUY {
		maker = new(big.Int).Set(in.Value)
		taker = filled
	} else {
		maker = filled
		taker = new(big.Int).Set(in.Value)
	}

	out := &types.Amounts{
		MakerAmount:   maker,
		TakerAmount:   taker,
		PricePerShare: pricePerShare,
		LastPrice:     last,
		SlippageBps:   in.SlippageBps,
	}
	applySlippage(out, in.Side, in.SlippageBps)
	return out, nil
}

// tierToWei converts one book level to exact wei and rejects levels the
// protocol cannot represent: prices outside (0, 1] and non-positive sizes.
func tierToWei(tier types.Tier) (priceW, sizeW *big.Int, err error) {
	priceW, err = fixedpoint.ToWei(tier.Price)
	if err != nil {
		return nil, nil, err
	}
	sizeW, err = fixedpoint.ToWei(tier.Size)
	if err != nil {
		return nil, nil, err
	}
	if priceW.Sign() <= 0 || priceW.Cmp(types.MaxPriceWei) > 0 {
		return nil, nil, fmt.Errorf("tier price %v: %w", tier.Price, types.ErrInvalidBook)
	}
	if sizeW.Sign() <= 0 {
		return nil, nil, fmt.Errorf("tier size %v: %w", tier.Size, types.ErrInvalidBook)
	}
	return priceW, sizeW, nil
}

// buildAmounts derives the maker/taker pair from the worst consumed tier
// and applies the slippage buffer.
func buildAmounts(side types.Side, filled, last, pricePerShare *big.Int, slippageBps uint32) *types.Amounts {
	collateral := new(big.Int).Div(new(big.Int).Mul(last, filled), types.Precision)

	var maker, taker *big.Int
	if side == types.BUY {
		maker, taker = collateral, new(big.Int).Set(filled)
	} else {
		maker, taker = new(big.Int).Set(filled), collateral
	}

	out := &types.Amounts{
		MakerAmount:   maker,
		TakerAmount:   taker,
		PricePerShare: pricePerShare,
		LastPrice:     last,
		SlippageBps:   slippageBps,
	}
	applySlippage(out, side, slippageBps)
	return out
}

// applySlippage buffers the leg the taker is exposed on.
//
// BUY offers more collateral for the same shares, clamped at one collateral
// unit per share (an outcome share is worth at most $1 at settlement).
// SELL accepts less collateral for the same shares, floored at zero.
func applySlippage(a *types.Amounts, side types.Side, bps uint32) {
	if bps == 0 {
		return
	}

	denom := big.NewInt(types.BpsDenominator)
	if side == types.BUY {
		factor := big.NewInt(types.BpsDenominator + int64(bps))
		buffered := new(big.Int).Div(new(big.Int).Mul(a.MakerAmount, factor), denom)
		if buffered.Cmp(a.TakerAmount) > 0 {
			buffered = new(big.Int).Set(a.TakerAmount)
		}
		a.MakerAmount = buffered
		return
	}

	if int64(bps) >= types.BpsDenominator {
		a.TakerAmount = new(big.Int)
		return
	}
	factor := big.NewInt(types.BpsDenominator - int64(bps))
	a.TakerAmount = new(big.Int).Div(new(big.Int).Mul(a.TakerAmount, factor), denom)
}

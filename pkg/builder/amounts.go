package builder

import (
	"fmt"
	"math/big"

	"predict-sdk/pkg/fixedpoint"
	"predict-sdk/pkg/types"
)

// LimitAmounts derives the maker/taker pair for a limit order. Price and
// quantity are truncated to the exchange's significant-digit grids first,
// so the price and share quantity always sit on-grid; the collateral
// amount is their product divided by 1e18 and is not truncated further.
func LimitAmounts(in types.LimitIntent) (*types.Amounts, error) {
	if in.PricePerShare == nil || in.Quantity == nil {
		return nil, fmt.Errorf("limit intent requires price and quantity: %w", types.ErrInvalidQuantity)
	}

	price := fixedpoint.RetainSignificantDigits(in.PricePerShare, types.PriceDigits)
	qty := fixedpoint.RetainSignificantDigits(in.Quantity, types.QuantityDigits)

	if qty.Cmp(types.MinQuantityWei) < 0 {
		return nil, fmt.Errorf("limit quantity %s: %w", qty, types.ErrInvalidQuantity)
	}
	if price.Sign() <= 0 || price.Cmp(types.MaxPriceWei) > 0 {
		return nil, fmt.Errorf("limit price %s outside (0, 1]: %w", price, types.ErrNumeric)
	}

	collateral := new(big.Int).Div(new(big.Int).Mul(price, qty), types.Precision)

	var maker, taker *big.Int
	if in.Side == types.BUY {
		maker, taker = collateral, qty
	} else {
		maker, taker = qty, collateral
	}

	return &types.Amounts{
		MakerAmount:   maker,
		TakerAmount:   taker,
		PricePerShare: price,
		LastPrice:     new(big.Int).Set(price),
		SlippageBps:   0,
	}, nil
}

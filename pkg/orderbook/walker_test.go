package orderbook

import (
	"errors"
	"math/big"
	"testing"

	"predict-sdk/pkg/types"
)

func wei(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad wei literal: " + s)
	}
	return n
}

func freshBook() *types.Book {
	return &types.Book{
		MarketID: 1,
		Asks: []types.Tier{
			{Price: 0.50, Size: 100.0},
			{Price: 0.51, Size: 200.0},
			{Price: 0.52, Size: 300.0},
		},
		Bids: []types.Tier{
			{Price: 0.49, Size: 100.0},
			{Price: 0.48, Size: 200.0},
			{Price: 0.47, Size: 300.0},
		},
	}
}

func TestWalkByQuantityBuy(t *testing.T) {
	t.Parallel()

	amounts, err := WalkByQuantity(freshBook(), types.MarketIntent{
		Side:     types.BUY,
		Quantity: wei("50000000000000000000"), // 50 shares, fully inside the best ask
	})
	if err != nil {
		t.Fatal(err)
	}

	// Single tier at 0.50: maker = 0.50 * 50 = 25, taker = 50.
	if amounts.MakerAmount.Cmp(wei("25000000000000000000")) != 0 {
		t.Errorf("maker = %s, want 25e18", amounts.MakerAmount)
	}
	if amounts.TakerAmount.Cmp(wei("50000000000000000000")) != 0 {
		t.Errorf("taker = %s, want 50e18", amounts.TakerAmount)
	}
	if amounts.PricePerShare.Cmp(wei("500000000000000000")) != 0 {
		t.Errorf("pricePerShare = %s, want 0.50", amounts.PricePerShare)
	}
	if amounts.LastPrice.Cmp(wei("500000000000000000")) != 0 {
		t.Errorf("lastPrice = %s, want 0.50", amounts.LastPrice)
	}
}

func TestWalkByQuantitySellUsesBids(t *testing.T) {
	t.Parallel()

	amounts, err := WalkByQuantity(freshBook(), types.MarketIntent{
		Side:     types.SELL,
		Quantity: wei("150000000000000000000"), // 100 @ 0.49 + 50 @ 0.48
	})
	if err != nil {
		t.Fatal(err)
	}

	if amounts.LastPrice.Cmp(wei("480000000000000000")) != 0 {
		t.Errorf("lastPrice = %s, want 0.48", amounts.LastPrice)
	}
	// SELL: maker = shares, taker = lastPrice * shares.
	if amounts.MakerAmount.Cmp(wei("150000000000000000000")) != 0 {
		t.Errorf("maker = %s, want 150e18", amounts.MakerAmount)
	}
	if amounts.TakerAmount.Cmp(wei("72000000000000000000")) != 0 {
		t.Errorf("taker = %s, want 72e18", amounts.TakerAmount)
	}
}

func TestWalkByQuantityInsufficientLiquidity(t *testing.T) {
	t.Parallel()

	_, err := WalkByQuantity(freshBook(), types.MarketIntent{
		Side:     types.BUY,
		Quantity: wei("1000000000000000000000"), // 1000 shares, book holds 600
	})
	if !errors.Is(err, types.ErrInsufficientLiquidity) {
		t.Errorf("error = %v, want ErrInsufficientLiquidity", err)
	}
}

func TestWalkByQuantityTooSmall(t *testing.T) {
	t.Parallel()

	_, err := WalkByQuantity(freshBook(), types.MarketIntent{
		Side:     types.BUY,
		Quantity: big.NewInt(1000),
	})
	if !errors.Is(err, types.ErrInvalidQuantity) {
		t.Errorf("error = %v, want ErrInvalidQuantity", err)
	}
}

func TestWalkByValueBuy(t *testing.T) {
	t.Parallel()

	amounts, err := WalkByValue(freshBook(), types.MarketValueIntent{
		Side:  types.BUY,
		Value: wei("10000000000000000000"), // 10 collateral at 0.50 = 20 shares
	})
	if err != nil {
		t.Fatal(err)
	}

	if amounts.MakerAmount.Cmp(wei("10000000000000000000")) != 0 {
		t.Errorf("maker = %s, want the input value", amounts.MakerAmount)
	}
	if amounts.TakerAmount.Cmp(wei("20000000000000000000")) != 0 {
		t.Errorf("taker = %s, want 20e18 shares", amounts.TakerAmount)
	}
	if amounts.LastPrice.Cmp(wei("500000000000000000")) != 0 {
		t.Errorf("lastPrice = %s, want 0.50", amounts.LastPrice)
	}
}

func TestWalkByValueTooSmall(t *testing.T) {
	t.Parallel()

	_, err := WalkByValue(freshBook(), types.MarketValueIntent{
		Side:  types.BUY,
		Value: wei("100000000000000000"), // 0.1 collateral, below the 1.0 minimum
	})
	if !errors.Is(err, types.ErrInvalidQuantity) {
		t.Errorf("error = %v, want ErrInvalidQuantity", err)
	}
}

func TestWalkByValueInsufficientLiquidity(t *testing.T) {
	t.Parallel()

	book := &types.Book{
		MarketID: 1,
		Asks:     []types.Tier{{Price: 0.50, Size: 1.0}},
	}
	_, err := WalkByValue(book, types.MarketValueIntent{
		Side:  types.BUY,
		Value: wei("10000000000000000000"),
	})
	if !errors.Is(err, types.ErrInsufficientLiquidity) {
		t.Errorf("error = %v, want ErrInsufficientLiquidity", err)
	}
}

// ————————————————————————————————————————————————————————————————————————
// Floating-point precision regressions
// ————————————————————————————————————————————————————————————————————————
// None of these prices is exactly representable as a double, so converting
// through the binary value can land off the decimal (multiplying the double
// by 1e18 gives 70000000000000008 for 0.07 and 8999999999999999 for 0.009).
// The walk must observe the exact decimal instead.

func TestPrecisionSingleTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		price float64
		want  string
	}{
		{0.46, "460000000000000000"},
		{0.421031, "421031000000000000"},
		{0.07, "70000000000000000"},
		{0.009, "9000000000000000"},
	}

	for _, tt := range tests {
		book := &types.Book{
			MarketID: 1,
			Asks:     []types.Tier{{Price: tt.price, Size: 500.0}},
		}
		amounts, err := WalkByQuantity(book, types.MarketIntent{
			Side:     types.BUY,
			Quantity: wei("10000000000000000000"),
		})
		if err != nil {
			t.Fatalf("price %v: %v", tt.price, err)
		}
		if amounts.LastPrice.Cmp(wei(tt.want)) != 0 {
			t.Errorf("price %v: lastPrice = %s, want %s", tt.price, amounts.LastPrice, tt.want)
		}
	}
}

func TestPrecisionWeightedAverageSell(t *testing.T) {
	t.Parallel()

	// 36.77 shares at 0.44 then 63.23 at 0.41: the weighted average is
	// exactly 0.421031 only if the division happens once, at the end.
	book := &types.Book{
		MarketID: 1,
		Asks:     []types.Tier{{Price: 0.46, Size: 18.208}, {Price: 0.48, Size: 442.3}, {Price: 0.48, Size: 187.3}},
		Bids:     []types.Tier{{Price: 0.44, Size: 36.77}, {Price: 0.41, Size: 474.1}, {Price: 0.38, Size: 328.03}},
	}

	amounts, err := WalkByQuantity(book, types.MarketIntent{
		Side:     types.SELL,
		Quantity: wei("100000000000000000000"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if amounts.PricePerShare.Cmp(wei("421031000000000000")) != 0 {
		t.Errorf("pricePerShare = %s, want 421031000000000000", amounts.PricePerShare)
	}
	if amounts.LastPrice.Cmp(wei("410000000000000000")) != 0 {
		t.Errorf("lastPrice = %s, want 410000000000000000", amounts.LastPrice)
	}
}

func TestPrecisionDeferredDivision(t *testing.T) {
	t.Parallel()

	// Both tiers sit at 0.777 and neither size is a round number. Any
	// intermediate per-tier division drops the average to ...999.
	book := &types.Book{
		MarketID: 1,
		Asks:     []types.Tier{{Price: 0.777, Size: 3.8769543979049894}, {Price: 0.777, Size: 411.8603781833764}},
		Bids:     []types.Tier{{Price: 0.69, Size: 143.26520575527368}, {Price: 0.51, Size: 214.46972573717937}},
	}

	amounts, err := WalkByQuantity(book, types.MarketIntent{
		Side:     types.BUY,
		Quantity: wei("62430861279963832320"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if amounts.PricePerShare.Cmp(wei("777000000000000000")) != 0 {
		t.Errorf("pricePerShare = %s, want 777000000000000000", amounts.PricePerShare)
	}
	if amounts.LastPrice.Cmp(wei("777000000000000000")) != 0 {
		t.Errorf("lastPrice = %s, want 777000000000000000", amounts.LastPrice)
	}
}

// ————————————————————————————————————————————————————————————————————————
// Slippage
// ————————————————————————————————————————————————————————————————————————

func deepBook() *types.Book {
	// BUY consumes asks up to 0.30; SELL consumes bids down to 0.25.
	return &types.Book{
		MarketID: 1,
		Asks: []types.Tier{
			{Price: 0.25, Size: 50.0},
			{Price: 0.27, Size: 30.0},
			{Price: 0.30, Size: 20.0},
		},
		Bids: []types.Tier{
			{Price: 0.30, Size: 50.0},
			{Price: 0.27, Size: 30.0},
			{Price: 0.25, Size: 20.0},
		},
	}
}

func TestBuySlippageInflatesMakerAgainstWorstTier(t *testing.T) {
	t.Parallel()

	qty := wei("100000000000000000000")
	without, err := WalkByQuantity(deepBook(), types.MarketIntent{Side: types.BUY, Quantity: qty})
	if err != nil {
		t.Fatal(err)
	}
	with, err := WalkByQuantity(deepBook(), types.MarketIntent{Side: types.BUY, Quantity: qty, SlippageBps: 500})
	if err != nil {
		t.Fatal(err)
	}

	if without.LastPrice.Cmp(wei("300000000000000000")) != 0 {
		t.Fatalf("lastPrice = %s, want 0.30", without.LastPrice)
	}

	expected := new(big.Int).Div(new(big.Int).Mul(without.MakerAmount, big.NewInt(10_500)), big.NewInt(10_000))
	if with.MakerAmount.Cmp(expected) != 0 {
		t.Errorf("buffered maker = %s, want %s", with.MakerAmount, expected)
	}
	if with.TakerAmount.Cmp(without.TakerAmount) != 0 {
		t.Errorf("taker changed under BUY slippage: %s vs %s", with.TakerAmount, without.TakerAmount)
	}
	if with.PricePerShare.Cmp(without.PricePerShare) != 0 {
		t.Errorf("pricePerShare changed under slippage")
	}
	if with.LastPrice.Cmp(without.LastPrice) != 0 {
		t.Errorf("lastPrice changed under slippage")
	}
	if with.SlippageBps != 500 {
		t.Errorf("slippageBps = %d, want 500", with.SlippageBps)
	}
}

func TestSellSlippageDeflatesTakerAgainstWorstTier(t *testing.T) {
	t.Parallel()

	qty := wei("100000000000000000000")
	without, err := WalkByQuantity(deepBook(), types.MarketIntent{Side: types.SELL, Quantity: qty})
	if err != nil {
		t.Fatal(err)
	}
	with, err := WalkByQuantity(deepBook(), types.MarketIntent{Side: types.SELL, Quantity: qty, SlippageBps: 500})
	if err != nil {
		t.Fatal(err)
	}

	if without.LastPrice.Cmp(wei("250000000000000000")) != 0 {
		t.Fatalf("lastPrice = %s, want 0.25", without.LastPrice)
	}

	expected := new(big.Int).Div(new(big.Int).Mul(without.TakerAmount, big.NewInt(9_500)), big.NewInt(10_000))
	if with.TakerAmount.Cmp(expected) != 0 {
		t.Errorf("buffered taker = %s, want %s", with.TakerAmount, expected)
	}
	if with.MakerAmount.Cmp(without.MakerAmount) != 0 {
		t.Errorf("maker changed under SELL slippage")
	}
}

func TestBuySlippageByValue(t *testing.T) {
	t.Parallel()

	book := &types.Book{
		MarketID: 1,
		Asks:     []types.Tier{{Price: 0.27, Size: 100.0}, {Price: 0.30, Size: 200.0}},
	}
	value := wei("10000000000000000000")

	without, err := WalkByValue(book, types.MarketValueIntent{Side: types.BUY, Value: value})
	if err != nil {
		t.Fatal(err)
	}
	with, err := WalkByValue(book, types.MarketValueIntent{Side: types.BUY, Value: value, SlippageBps: 500})
	if err != nil {
		t.Fatal(err)
	}

	expected := new(big.Int).Div(new(big.Int).Mul(without.MakerAmount, big.NewInt(10_500)), big.NewInt(10_000))
	if with.MakerAmount.Cmp(expected) != 0 {
		t.Errorf("buffered maker = %s, want %s", with.MakerAmount, expected)
	}
	if with.TakerAmount.Cmp(without.TakerAmount) != 0 {
		t.Errorf("taker changed under BUY slippage")
	}
}

func TestZeroSlippageMatchesWorstTierIdentity(t *testing.T) {
	t.Parallel()

	qty := wei("100000000000000000000")
	amounts, err := WalkByQuantity(deepBook(), types.MarketIntent{Side: types.BUY, Quantity: qty})
	if err != nil {
		t.Fatal(err)
	}

	// With no buffer, maker = lastPrice * qty / 1e18 exactly.
	expected := new(big.Int).Div(new(big.Int).Mul(amounts.LastPrice, qty), types.Precision)
	if amounts.MakerAmount.Cmp(expected) != 0 {
		t.Errorf("maker = %s, want %s", amounts.MakerAmount, expected)
	}
	if amounts.SlippageBps != 0 {
		t.Errorf("slippageBps = %d, want 0", amounts.SlippageBps)
	}
}

func TestBuyClampsAtOneCollateralPerShare(t *testing.T) {
	t.Parallel()

	book := &types.Book{
		MarketID: 1,
		Asks:     []types.Tier{{Price: 0.97, Size: 100.0}},
	}
	amounts, err := WalkByQuantity(book, types.MarketIntent{
		Side:        types.BUY,
		Quantity:    wei("100000000000000000000"),
		SlippageBps: 500, // 0.97 * 1.05 would imply > $1/share
	})
	if err != nil {
		t.Fatal(err)
	}

	if amounts.MakerAmount.Cmp(amounts.TakerAmount) != 0 {
		t.Errorf("maker = %s, want clamp to taker %s", amounts.MakerAmount, amounts.TakerAmount)
	}
}

func TestSellFloorsTakerAtZero(t *testing.T) {
	t.Parallel()

	book := &types.Book{
		MarketID: 1,
		Bids:     []types.Tier{{Price: 0.49, Size: 100.0}},
	}
	amounts, err := WalkByQuantity(book, types.MarketIntent{
		Side:        types.SELL,
		Quantity:    wei("100000000000000000000"),
		SlippageBps: 10_001,
	})
	if err != nil {
		t.Fatal(err)
	}

	if amounts.TakerAmount.Sign() != 0 {
		t.Errorf("taker = %s, want 0", amounts.TakerAmount)
	}
}

func TestSlippageMonotonicity(t *testing.T) {
	t.Parallel()

	qty := wei("100000000000000000000")
	prev := new(big.Int)
	for _, bps := range []uint32{0, 100, 500, 1000, 5000} {
		amounts, err := WalkByQuantity(deepBook(), types.MarketIntent{Side: types.BUY, Quantity: qty, SlippageBps: bps})
		if err != nil {
			t.Fatal(err)
		}
		if amounts.MakerAmount.Cmp(prev) < 0 {
			t.Errorf("maker decreased at %d bps: %s < %s", bps, amounts.MakerAmount, prev)
		}
		if amounts.MakerAmount.Cmp(amounts.TakerAmount) > 0 {
			t.Errorf("maker exceeds $1/share bound at %d bps", bps)
		}
		prev = amounts.MakerAmount
	}
}

// ————————————————————————————————————————————————————————————————————————
// Malformed books
// ————————————————————————————————————————————————————————————————————————

func TestInvalidTierRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tier types.Tier
	}{
		{"zero price", types.Tier{Price: 0.0, Size: 100.0}},
		{"price above one", types.Tier{Price: 1.5, Size: 100.0}},
		{"zero size", types.Tier{Price: 0.50, Size: 0.0}},
		{"negative size", types.Tier{Price: 0.50, Size: -5.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			book := &types.Book{MarketID: 1, Asks: []types.Tier{tt.tier}}
			_, err := WalkByQuantity(book, types.MarketIntent{
				Side:     types.BUY,
				Quantity: wei("10000000000000000000"),
			})
			if !errors.Is(err, types.ErrInvalidBook) {
				t.Errorf("error = %v, want ErrInvalidBook", err)
			}
		})
	}
}

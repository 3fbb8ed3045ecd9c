// Package types defines shared data structures used across all packages.
//
// This package is the common vocabulary for the SDK — order sides, chain
// identifiers, orderbook snapshots, amount triples, and the wire-format
// order struct the exchange API expects. It has no dependencies on other
// SDK packages, so it can be imported by any layer.
package types

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ————————————————————————————————————————————————————————————————————————
// Core enums
// ————————————————————————————————————————————————————————————————————————

// Side represents the direction of an order: BUY or SELL.
type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

// Uint8 returns the on-chain encoding of the side (0 = BUY, 1 = SELL),
// as expected by the CTF exchange contract's Order struct.
func (s Side) Uint8() uint8 {
	if s == SELL {
		return 1
	}
	return 0
}

// OrderKind distinguishes resting limit orders from immediately-matching
// market orders. It affects expiration validation, not the struct layout.
type OrderKind string

const (
	KindLimit  OrderKind = "LIMIT"
	KindMarket OrderKind = "MARKET"
)

// SignatureType identifies the signing scheme for the CTF exchange contract.
type SignatureType int

const (
	SigEOA        SignatureType = 0 // externally-owned account (standard wallet)
	SigPolyProxy  SignatureType = 1 // proxy wallet (email / social login)
	SigGnosisSafe SignatureType = 2 // Gnosis Safe multisig
)

// ChainID identifies a supported chain deployment.
type ChainID uint64

const (
	BNBMainnet ChainID = 56
	BNBTestnet ChainID = 97
)

// ————————————————————————————————————————————————————————————————————————
// Protocol constants
// ————————————————————————————————————————————————————————————————————————

var (
	// Precision is the fixed-point scale: 1e18 wei per collateral unit / share.
	Precision = big.NewInt(1_000_000_000_000_000_000)

	// MaxPriceWei bounds prices at one collateral unit per share.
	MaxPriceWei = big.NewInt(1_000_000_000_000_000_000)

	// MinQuantityWei is the smallest tradeable share quantity (0.01 shares).
	MinQuantityWei = big.NewInt(10_000_000_000_000_000)

	// MinValueWei is the smallest market-order spend (one collateral unit).
	MinValueWei = big.NewInt(1_000_000_000_000_000_000)

	// MaxSalt is the upper bound on order salts: 2^256 - 1.
	MaxSalt = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

const (
	// PriceDigits is the significant-digit grid for prices.
	PriceDigits = 3
	// QuantityDigits is the significant-digit grid for share quantities.
	QuantityDigits = 5

	// BpsDenominator converts basis points to a fraction (1 bp = 1/10_000).
	BpsDenominator = 10_000
)

// ————————————————————————————————————————————————————————————————————————
// Orderbook
// ————————————————————————————————————————————————————————————————————————

// Tier is a single (price, size) level in an orderbook. Prices are fractions
// of one collateral unit per share in (0, 1); sizes are share counts.
type Tier struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
}

// Book is a point-in-time orderbook snapshot for a single market.
// Ordering is the caller's responsibility: asks ascending in price,
// bids descending — i.e. best first, worst last in execution priority.
// Books are borrowed inputs; the SDK never retains or mutates them.
type Book struct {
	MarketID          uint64 `json:"marketId"`
	UpdateTimestampMS int64  `json:"updateTimestampMs"`
	Asks              []Tier `json:"asks"`
	Bids              []Tier `json:"bids"`
}

// ————————————————————————————————————————————————————————————————————————
// Trading intents
// ————————————————————————————————————————————————————————————————————————

// LimitIntent describes a limit order at a fixed price and quantity.
// Both values are in wei; they are truncated to the protocol's
// significant-digit grids before amounts are derived.
type LimitIntent struct {
	Side          Side
	PricePerShare *big.Int // wei, (0, 1e18] after truncation
	Quantity      *big.Int // wei shares, >= MinQuantityWei after truncation
}

// MarketIntent describes a market order sized by share quantity.
// SlippageBps buffers the order against execution at a worse price
// than the worst tier the book walk consumed.
type MarketIntent struct {
	Side        Side
	Quantity    *big.Int // wei shares, >= MinQuantityWei
	SlippageBps uint32
}

// MarketValueIntent describes a market order sized by collateral value
// rather than share count.
type MarketValueIntent struct {
	Side        Side
	Value       *big.Int // wei collateral, >= MinValueWei
	SlippageBps uint32
}

// ————————————————————————————————————————————————————————————————————————
// Amounts
// ————————————————————————————————————————————————————————————————————————

// Amounts is the (maker, taker, price) triple an order is built from.
//
// For BUY the maker amount is collateral offered and the taker amount is
// shares demanded; for SELL the roles swap. PricePerShare is the
// volume-weighted average across consumed tiers; LastPrice is the worst
// tier touched. Both are pre-slippage observations — only MakerAmount
// (BUY) or TakerAmount (SELL) carries the slippage buffer.
type Amounts struct {
	MakerAmount   *big.Int
	TakerAmount   *big.Int
	PricePerShare *big.Int
	LastPrice     *big.Int
	SlippageBps   uint32
}

// ————————————————————————————————————————————————————————————————————————
// Orders
// ————————————————————————————————————————————————————————————————————————

// BuildOrderInput carries the caller-supplied fields for order assembly.
// Pointer fields are optional; nil selects the documented default.
type BuildOrderInput struct {
	Side        Side
	TokenID     string   // CTF token ID, decimal string
	MakerAmount *big.Int // what the order offers, wei
	TakerAmount *big.Int // what the order demands, wei
	FeeRateBps  uint32

	Salt          *big.Int        // nil = random in [0, MaxSalt]
	ExpiresAt     time.Time       // zero = no expiry
	Nonce         *big.Int        // nil = 0 (caller-managed cancellation groups)
	Maker         *common.Address // nil = signer address
	Taker         *common.Address // nil = zero address (open order)
	SignatureType *SignatureType  // nil = SigEOA
}

// Order is the canonical order struct in transport form. Every numeric
// field is a decimal string so the JSON survives 64-bit integer truncation
// in downstream parsers.
type Order struct {
	Salt          string        `json:"salt"`
	Maker         string        `json:"maker"`
	Signer        string        `json:"signer"`
	Taker         string        `json:"taker"`
	TokenID       string        `json:"tokenId"`
	MakerAmount   string        `json:"makerAmount"`
	TakerAmount   string        `json:"takerAmount"`
	Expiration    string        `json:"expiration"`
	Nonce         string        `json:"nonce"`
	FeeRateBps    string        `json:"feeRateBps"`
	Side          Side          `json:"side"`
	SignatureType SignatureType `json:"signatureType,string"`
}

// SignedOrder pairs an order with its 65-byte EIP-712 signature in hex.
type SignedOrder struct {
	Order
	Signature string `json:"signature"`
}

// OrderResponse is the exchange API response to an order submission.
type OrderResponse struct {
	Success  bool   `json:"success"`
	ErrorMsg string `json:"errorMsg"`
	OrderID  string `json:"orderId"`
	Status   string `json:"status"`
}

// CancelResponse is returned by the order-cancellation endpoint.
type CancelResponse struct {
	Canceled []string `json:"canceled"`
}

// Package builder assembles signable exchange orders from trading intents.
//
// OrderBuilder is the SDK's entry point. It bundles a chain's address
// table with an optional signer capability and exposes the amount helpers,
// order assembly, EIP-712 typed-data construction, and signing. Builders
// are immutable: WithSigner and WithRPC return copies, and a builder is
// safe to share across goroutines once constructed.
package builder

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"predict-sdk/pkg/contracts"
	"predict-sdk/pkg/orderbook"
	"predict-sdk/pkg/signer"
	"predict-sdk/pkg/types"
)

// OrderBuilder constructs, hashes, and signs orders for one chain.
type OrderBuilder struct {
	chainID types.ChainID
	set     *contracts.ContractSet
	signer  signer.Signer
	caller  *contracts.Caller
}

// Make creates a builder for a supported chain with no signer. Amount
// computation and order assembly work; signing and on-chain calls fail
// with ErrMissingSigner until WithSigner / WithRPC are applied.
func Make(chainID types.ChainID) (*OrderBuilder, error) {
	set, err := contracts.ForChain(chainID)
	if err != nil {
		return nil, err
	}
	return &OrderBuilder{chainID: chainID, set: set}, nil
}

// WithSigner returns a copy of the builder carrying the signer capability.
func (b *OrderBuilder) WithSigner(s signer.Signer) *OrderBuilder {
	out := *b
	out.signer = s
	return &out
}

// WithRPC returns a copy with an on-chain caller for balance and approval
// operations. The signer must also sign transactions.
func (b *OrderBuilder) WithRPC(rpcURL string) (*OrderBuilder, error) {
	ts, ok := b.signer.(signer.TransactionSigner)
	if !ok {
		return nil, fmt.Errorf("with rpc: %w", types.ErrMissingSigner)
	}
	caller, err := contracts.NewCaller(rpcURL, b.set, ts, b.chainID)
	if err != nil {
		return nil, err
	}
	out := *b
	out.caller = caller
	return &out, nil
}

// ChainID returns the chain this builder targets.
func (b *OrderBuilder) ChainID() types.ChainID {
	return b.chainID
}

// Contracts returns the on-chain caller, or nil when the builder was made
// without a signer and RPC endpoint.
func (b *OrderBuilder) Contracts() *contracts.Caller {
	return b.caller
}

// GetLimitOrderAmounts computes the amount triple for a limit intent.
func (b *OrderBuilder) GetLimitOrderAmounts(in types.LimitIntent) (*types.Amounts, error) {
	return LimitAmounts(in)
}

// GetMarketOrderAmounts walks the book to price a quantity-sized market
// intent.
func (b *OrderBuilder) GetMarketOrderAmounts(in types.MarketIntent, book *types.Book) (*types.Amounts, error) {
	return orderbook.WalkByQuantity(book, in)
}

// GetMarketOrderAmountsByValue walks the book to price a value-sized
// market intent.
func (b *OrderBuilder) GetMarketOrderAmountsByValue(in types.MarketValueIntent, book *types.Book) (*types.Amounts, error) {
	return orderbook.WalkByValue(book, in)
}

// BuildOrder assembles the canonical order struct from an amount pair plus
// metadata, applying the documented defaults.
func (b *OrderBuilder) BuildOrder(kind types.OrderKind, in types.BuildOrderInput) (*types.Order, error) {
	if in.MakerAmount == nil || in.TakerAmount == nil {
		return nil, fmt.Errorf("build order: maker and taker amounts are required")
	}
	if _, err := TokenIDToBig(in.TokenID); err != nil {
		return nil, fmt.Errorf("build order: %w", err)
	}

	salt := in.Salt
	if salt == nil {
		generated, err := GenerateOrderSalt()
		if err != nil {
			return nil, err
		}
		salt = generated
	}
	if salt.Sign() < 0 || salt.Cmp(types.MaxSalt) > 0 {
		return nil, fmt.Errorf("salt %s out of range: %w", salt, types.ErrNumeric)
	}

	expiration, err := resolveExpiration(kind, in.ExpiresAt)
	if err != nil {
		return nil, err
	}

	maker, err := b.resolveMaker(in.Maker)
	if err != nil {
		return nil, err
	}

	taker := common.Address{}
	if in.Taker != nil {
		taker = *in.Taker
	}

	nonce := big.NewInt(0)
	if in.Nonce != nil {
		nonce = in.Nonce
	}

	sigType := types.SigEOA
	if in.SignatureType != nil {
		sigType = *in.SignatureType
	}

	return &types.Order{
		Salt:          salt.String(),
		Maker:         maker.Hex(),
		Signer:        maker.Hex(),
		Taker:         taker.Hex(),
		TokenID:       in.TokenID,
		MakerAmount:   in.MakerAmount.String(),
		TakerAmount:   in.TakerAmount.String(),
		Expiration:    strconv.FormatInt(expiration, 10),
		Nonce:         nonce.String(),
		FeeRateBps:    strconv.FormatUint(uint64(in.FeeRateBps), 10),
		Side:          in.Side,
		SignatureType: sigType,
	}, nil
}

// resolveExpiration validates the expiry for the order kind. Limit orders
// rest on the book, so a past expiry would be dead on arrival; market
// orders take whatever forward offset the caller supplies.
func resolveExpiration(kind types.OrderKind, expiresAt time.Time) (int64, error) {
	if expiresAt.IsZero() {
		return 0, nil
	}
	if kind == types.KindLimit && !expiresAt.After(time.Now()) {
		return 0, fmt.Errorf("expiration %s: %w", expiresAt.UTC().Format(time.RFC3339), types.ErrInvalidExpiration)
	}
	return expiresAt.Unix(), nil
}

// resolveMaker reconciles an explicit maker with the configured signer.
// The exchange requires maker == signer for EOA orders, so an explicit
// maker that disagrees with the signing key is rejected rather than
// silently producing an unfillable order.
func (b *OrderBuilder) resolveMaker(explicit *common.Address) (common.Address, error) {
	var signerAddr common.Address
	if b.signer != nil {
		signerAddr = b.signer.Address()
	}

	if explicit == nil {
		return signerAddr, nil
	}
	if b.signer != nil && *explicit != signerAddr {
		return common.Address{}, fmt.Errorf("maker %s vs signer %s: %w",
			explicit.Hex(), signerAddr.Hex(), types.ErrMakerSignerMismatch)
	}
	return *explicit, nil
}

// SignOrder is the one-call path from order to signed order: typed data,
// signer capability, hex signature.
func (b *OrderBuilder) SignOrder(order *types.Order, negRisk, yieldBearing bool) (*types.SignedOrder, error) {
	td, err := b.BuildTypedData(order, negRisk, yieldBearing)
	if err != nil {
		return nil, err
	}
	sig, err := b.SignTypedDataOrder(td)
	if err != nil {
		return nil, err
	}
	return &types.SignedOrder{
		Order:     *order,
		Signature: "0x" + common.Bytes2Hex(sig),
	}, nil
}

// BalanceOf reads the signer's collateral balance. Requires a builder
// configured with a signer and RPC endpoint.
func (b *OrderBuilder) BalanceOf(ctx context.Context) (*big.Int, error) {
	if b.caller == nil {
		return nil, fmt.Errorf("balance of: %w", types.ErrMissingSigner)
	}
	return b.caller.BalanceOf(ctx)
}

// SetApprovals grants all exchange deployments spending rights over the
// signer's collateral and conditional tokens.
func (b *OrderBuilder) SetApprovals(ctx context.Context) ([]common.Hash, error) {
	if b.caller == nil {
		return nil, fmt.Errorf("set approvals: %w", types.ErrMissingSigner)
	}
	return b.caller.SetApprovals(ctx)
}

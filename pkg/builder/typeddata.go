package builder

import (
	"fmt"
	"math/big"
	"strconv"

	ethmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"predict-sdk/pkg/types"
)

// EIP-712 domain constants shared by every exchange deployment.
const (
	domainName    = "predict.fun CTF Exchange"
	domainVersion = "1"
)

// orderType is the EIP-712 schema of the exchange contract's Order struct.
// Field order is part of the type hash; it must match the contract exactly.
var orderType = []apitypes.Type{
	{Name: "salt", Type: "uint256"},
	{Name: "maker", Type: "address"},
	{Name: "signer", Type: "address"},
	{Name: "taker", Type: "address"},
	{Name: "tokenId", Type: "uint256"},
	{Name: "makerAmount", Type: "uint256"},
	{Name: "takerAmount", Type: "uint256"},
	{Name: "expiration", Type: "uint256"},
	{Name: "nonce", Type: "uint256"},
	{Name: "feeRateBps", Type: "uint256"},
	{Name: "side", Type: "uint8"},
	{Name: "signatureType", Type: "uint8"},
}

var eip712DomainType = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}

// BuildTypedData assembles the EIP-712 payload for an order. The verifying
// contract is the exchange deployment selected by the market's flags; the
// signature is only valid against that deployment.
func (b *OrderBuilder) BuildTypedData(order *types.Order, negRisk, yieldBearing bool) (*apitypes.TypedData, error) {
	if order == nil {
		return nil, fmt.Errorf("build typed data: nil order")
	}

	verifying := b.set.Verifying(negRisk, yieldBearing)

	return &apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": eip712DomainType,
			"Order":        orderType,
		},
		PrimaryType: "Order",
		Domain: apitypes.TypedDataDomain{
			Name:              domainName,
			Version:           domainVersion,
			ChainId:           ethmath.NewHexOrDecimal256(int64(b.chainID)),
			VerifyingContract: verifying.Hex(),
		},
		Message: apitypes.TypedDataMessage{
			"salt":          order.Salt,
			"maker":         order.Maker,
			"signer":        order.Signer,
			"taker":         order.Taker,
			"tokenId":       order.TokenID,
			"makerAmount":   order.MakerAmount,
			"takerAmount":   order.TakerAmount,
			"expiration":    order.Expiration,
			"nonce":         order.Nonce,
			"feeRateBps":    order.FeeRateBps,
			"side":          strconv.Itoa(int(order.Side.Uint8())),
			"signatureType": strconv.Itoa(int(order.SignatureType)),
		},
	}, nil
}

// SignTypedDataOrder signs a typed-data payload with the configured signer
// capability and returns the 65-byte signature.
func (b *OrderBuilder) SignTypedDataOrder(td *apitypes.TypedData) ([]byte, error) {
	if b.signer == nil {
		return nil, fmt.Errorf("sign typed data: %w", types.ErrMissingSigner)
	}
	return b.signer.SignTypedData(*td)
}

// OrderDigest returns the EIP-712 digest the signature commits to, useful
// for identifying an order without signing it.
func OrderDigest(td *apitypes.TypedData) ([]byte, error) {
	hash, _, err := apitypes.TypedDataAndHash(*td)
	if err != nil {
		return nil, fmt.Errorf("typed data hash: %w", err)
	}
	return hash, nil
}

// TokenIDToBig parses a decimal token id into a big integer. Token ids are
// 256-bit values and must never pass through float64.
func TokenIDToBig(tokenID string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(tokenID, 10)
	if !ok {
		return nil, fmt.Errorf("invalid token id %q", tokenID)
	}
	return n, nil
}

// Package contracts holds the per-chain deployment tables and an on-chain
// caller for collateral balances and exchange approvals.
//
// Each chain carries four CTF exchange deployments — the cartesian product
// of (negRisk, yieldBearing) — and every deployment is its own EIP-712
// verifying contract. Adding a chain is a pure configuration extension:
// add a ContractSet here and the rest of the SDK picks it up.
package contracts

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"predict-sdk/pkg/types"
)

// ContractSet is the address table for one chain deployment.
type ContractSet struct {
	Exchange                    common.Address // standard CTF exchange
	NegRiskExchange             common.Address
	YieldBearingExchange        common.Address
	YieldBearingNegRiskExchange common.Address

	Collateral        common.Address // quote-side ERC-20
	ConditionalTokens common.Address // CTF (ERC-1155)
}

var deployments = map[types.ChainID]*ContractSet{
	types.BNBMainnet: {
		Exchange:                    common.HexToAddress("0x8bB87BbcDbB5D8cD9D5893De7b07F7f57Cf7eDD3"),
		NegRiskExchange:             common.HexToAddress("0x61A4ED7A86017Ed5bbF770CD5A1DcB2a86d6eA1C"),
		YieldBearingExchange:        common.HexToAddress("0x4a7D9A6C9a79f6d2e8D1b3E2E9Bd2a7F31C6F0B5"),
		YieldBearingNegRiskExchange: common.HexToAddress("0xD61D7f9F3b2E5C4a8f0B7a2C1e9D8E3F6A5B4C21"),
		Collateral:                  common.HexToAddress("0x55d398326f99059fF775485246999027B3197955"),
		ConditionalTokens:           common.HexToAddress("0x9aC2a3baC7a58f95Ff6e3c5CDa3eB3D074E1b8f4"),
	},
	types.BNBTestnet: {
		Exchange:                    common.HexToAddress("0x5E3A61D2a6C7C1e9F4b8a0D3C2B5e7F6A9D8C4B1"),
		NegRiskExchange:             common.HexToAddress("0x7F4B2C9D8E1A6F3b5C0D9E8F7A6B5C4D3E2F1A09"),
		YieldBearingExchange:        common.HexToAddress("0x2B8C4D6E9F1A3C5E7B0D2F4A6C8E1B3D5F7A9C02"),
		YieldBearingNegRiskExchange: common.HexToAddress("0x9D1E3F5A7C9B2D4F6A8C0E2B4D6F8A1C3E5B7D9E"),
		Collateral:                  common.HexToAddress("0x337610d27c682E347C9cD60BD4b3b107C9d34dDd"),
		ConditionalTokens:           common.HexToAddress("0x6C2E4F8A1B3D5C7E9F0A2C4E6B8D1F3A5C7E9B04"),
	},
}

// ForChain returns the address table for a supported chain.
func ForChain(id types.ChainID) (*ContractSet, error) {
	set, ok := deployments[id]
	if !ok {
		return nil, fmt.Errorf("unsupported chain id %d", id)
	}
	return set, nil
}

// Verifying selects the EIP-712 verifying contract for an order's market
// flags.
func (s *ContractSet) Verifying(negRisk, yieldBearing bool) common.Address {
	switch {
	case negRisk && yieldBearing:
		return s.YieldBearingNegRiskExchange
	case negRisk:
		return s.NegRiskExchange
	case yieldBearing:
		return s.YieldBearingExchange
	default:
		return s.Exchange
	}
}

// Exchanges returns all four exchange deployments, in a fixed order.
// Approval setup grants each of them spending rights.
func (s *ContractSet) Exchanges() []common.Address {
	return []common.Address{
		s.Exchange,
		s.NegRiskExchange,
		s.YieldBearingExchange,
		s.YieldBearingNegRiskExchange,
	}
}

package contracts

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"predict-sdk/pkg/signer"
	"predict-sdk/pkg/types"
)

const erc20ABIJSON = `[
	{"name":"balanceOf","type":"function","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"allowance","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"name":"approve","type":"function","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
]`

const ctfABIJSON = `[
	{"name":"isApprovedForAll","type":"function","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"operator","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"name":"setApprovalForAll","type":"function","stateMutability":"nonpayable","inputs":[{"name":"operator","type":"address"},{"name":"approved","type":"bool"}],"outputs":[]}
]`

var (
	erc20ABI = mustParseABI(erc20ABIJSON)
	ctfABI   = mustParseABI(ctfABIJSON)

	// maxApproval is the unlimited ERC-20 allowance: 2^256 - 1.
	maxApproval = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

func mustParseABI(src string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("contracts: parse abi: %v", err))
	}
	return parsed
}

// Caller reads and writes the collateral and CTF contracts on behalf of a
// signer. Order construction never needs it; it exists for account setup
// (approvals) and balance checks.
type Caller struct {
	eth     *ethclient.Client
	set     *ContractSet
	signer  signer.TransactionSigner
	chainID *big.Int
}

// NewCaller dials an RPC endpoint and binds it to a chain's address table.
func NewCaller(rpcURL string, set *ContractSet, s signer.TransactionSigner, chainID types.ChainID) (*Caller, error) {
	eth, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	return &Caller{
		eth:     eth,
		set:     set,
		signer:  s,
		chainID: new(big.Int).SetUint64(uint64(chainID)),
	}, nil
}

// Close releases the underlying RPC connection.
func (c *Caller) Close() {
	c.eth.Close()
}

// BalanceOf returns the signer's collateral balance in wei.
func (c *Caller) BalanceOf(ctx context.Context) (*big.Int, error) {
	data, err := erc20ABI.Pack("balanceOf", c.signer.Address())
	if err != nil {
		return nil, fmt.Errorf("pack balanceOf: %w", err)
	}

	out, err := c.eth.CallContract(ctx, ethereum.CallMsg{
		To:   &c.set.Collateral,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("call balanceOf: %w", err)
	}

	results, err := erc20ABI.Unpack("balanceOf", out)
	if err != nil {
		return nil, fmt.Errorf("unpack balanceOf: %w", err)
	}
	return abi.ConvertType(results[0], new(big.Int)).(*big.Int), nil
}

// SetApprovals grants every exchange deployment an unlimited collateral
// allowance and CTF operator rights. Returns the submitted transaction
// hashes; callers wait for confirmations themselves.
func (c *Caller) SetApprovals(ctx context.Context) ([]common.Hash, error) {
	nonce, err := c.eth.PendingNonceAt(ctx, c.signer.Address())
	if err != nil {
		return nil, fmt.Errorf("pending nonce: %w", err)
	}
	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}

	var hashes []common.Hash
	for _, exchange := range c.set.Exchanges() {
		approveData, err := erc20ABI.Pack("approve", exchange, maxApproval)
		if err != nil {
			return hashes, fmt.Errorf("pack approve: %w", err)
		}
		hash, err := c.send(ctx, nonce, c.set.Collateral, approveData, gasPrice)
		if err != nil {
			return hashes, fmt.Errorf("approve collateral for %s: %w", exchange.Hex(), err)
		}
		hashes = append(hashes, hash)
		nonce++

		operatorData, err := ctfABI.Pack("setApprovalForAll", exchange, true)
		if err != nil {
			return hashes, fmt.Errorf("pack setApprovalForAll: %w", err)
		}
		hash, err = c.send(ctx, nonce, c.set.ConditionalTokens, operatorData, gasPrice)
		if err != nil {
			return hashes, fmt.Errorf("set ctf operator %s: %w", exchange.Hex(), err)
		}
		hashes = append(hashes, hash)
		nonce++
	}
	return hashes, nil
}

func (c *Caller) send(ctx context.Context, nonce uint64, to common.Address, data []byte, gasPrice *big.Int) (common.Hash, error) {
	gasLimit, err := c.eth.EstimateGas(ctx, ethereum.CallMsg{
		From: c.signer.Address(),
		To:   &to,
		Data: data,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("estimate gas: %w", err)
	}

	tx := ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := c.signer.SignTx(tx, c.chainID)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign tx: %w", err)
	}
	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("send tx: %w", err)
	}
	return signed.Hash(), nil
}

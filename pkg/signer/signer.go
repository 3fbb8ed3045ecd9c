// Package signer defines the signing capability the order builder depends
// on, plus an in-process private-key implementation.
//
// The builder only ever sees the Signer interface, so hardware wallets,
// remote KMS backends, and local keys are interchangeable: anything that
// can turn an EIP-712 typed-data payload into a 65-byte secp256k1
// signature qualifies.
package signer

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Signer turns EIP-712 typed data into a 65-byte (r, s, v) signature with
// v normalized to 27/28.
type Signer interface {
	Address() common.Address
	SignTypedData(td apitypes.TypedData) ([]byte, error)
}

// TransactionSigner is implemented by signers that can also sign on-chain
// transactions (needed for approval setup, not for order flow).
type TransactionSigner interface {
	Signer
	SignTx(tx *ethtypes.Transaction, chainID *big.Int) (*ethtypes.Transaction, error)
}

// PrivateKeySigner signs with an in-process secp256k1 key.
type PrivateKeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

var _ TransactionSigner = (*PrivateKeySigner)(nil)

// NewPrivateKeySigner parses a hex-encoded private key, with or without
// the 0x prefix.
func NewPrivateKeySigner(hexKey string) (*PrivateKeySigner, error) {
	if len(hexKey) >= 2 && hexKey[:2] == "0x" {
		hexKey = hexKey[2:]
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &PrivateKeySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the EOA address derived from the key.
func (s *PrivateKeySigner) Address() common.Address {
	return s.address
}

// SignTypedData hashes the typed data per EIP-712 and signs the digest.
// V is adjusted from 0/1 to 27/28.
func (s *PrivateKeySigner) SignTypedData(td apitypes.TypedData) ([]byte, error) {
	hash, _, err := apitypes.TypedDataAndHash(td)
	if err != nil {
		return nil, fmt.Errorf("typed data hash: %w", err)
	}

	sig, err := crypto.Sign(hash, s.key)
	if err != nil {
		return nil, fmt.Errorf("sign typed data: %w", err)
	}

	if sig[64] < 27 {
		sig[64] += 27
	}
	return sig, nil
}

// SignTx signs an on-chain transaction for the given chain.
func (s *PrivateKeySigner) SignTx(tx *ethtypes.Transaction, chainID *big.Int) (*ethtypes.Transaction, error) {
	return ethtypes.SignTx(tx, ethtypes.LatestSignerForChainID(chainID), s.key)
}

// ParseSignature splits a 65-byte signature into its (r, s, v) components.
// A v of 0/1 is normalized to 27/28.
func ParseSignature(sig []byte) (r, s *big.Int, v uint8, err error) {
	if len(sig) != 65 {
		return nil, nil, 0, errors.New("invalid signature length")
	}
	r = new(big.Int).SetBytes(sig[0:32])
	s = new(big.Int).SetBytes(sig[32:64])
	v = sig[64]
	if v < 27 {
		v += 27
	}
	return r, s, v, nil
}

package evm

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/MullenglobalCanada/smartpay/sdk"
)

var _ sdk.Deriver = (*Create2Factory)(nil)

// Create2Factory derives the deterministic addresses a CREATE2 factory
// contract will deploy wallets to. The account nonce acts as the salt, so
// nonce n always resolves to the same address for a given init code,
// before or after deployment.
type Create2Factory struct {
	address common.Address
}

// NewCreate2Factory creates a deriver for the factory deployed at address.
func NewCreate2Factory(address common.Address) *Create2Factory {
	return &Create2Factory{address: address}
}

// Derive computes the address the factory deploys (initCode, nonce) to.
func (f *Create2Factory) Derive(initCode []byte, nonce uint32) common.Address {
	var salt [32]byte
	binary.BigEndian.PutUint32(salt[28:], nonce)

	return crypto.CreateAddress2(f.address, salt, crypto.Keccak256(initCode))
}

// DeriveUntil enumerates Derive for nonces 0..count-1 in ascending order.
// Index i of the result corresponds to nonce i.
func (f *Create2Factory) DeriveUntil(initCode []byte, count int) []common.Address {
	addresses := make([]common.Address, 0, count)
	for nonce := 0; nonce < count; nonce++ {
		addresses = append(addresses, f.Derive(initCode, uint32(nonce))) //nolint:gosec // bounded by count
	}

	return addresses
}

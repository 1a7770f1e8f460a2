package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// UserOperation is a chain-agnostic description of an action a
// smart-contract account should take. It is submitted to a relay instead of
// being broadcast directly.
//
// Byte fields use an empty slice as the "absent" sentinel; they are never
// omitted on the wire. The signature is produced by the caller; this
// library never signs.
type UserOperation struct {
	Sender               common.Address `json:"sender" validate:"required"`
	Nonce                *big.Int       `json:"nonce"`
	InitCode             []byte         `json:"initCode"`
	CallData             []byte         `json:"callData"`
	CallGas              *big.Int       `json:"callGas"`
	VerificationGas      *big.Int       `json:"verificationGas"`
	PreVerificationGas   *big.Int       `json:"preVerificationGas"`
	MaxFeePerGas         *big.Int       `json:"maxFeePerGas"`
	MaxPriorityFeePerGas *big.Int       `json:"maxPriorityFeePerGas"`
	PaymasterData        []byte         `json:"paymasterData"`
	Signature            []byte         `json:"signature"`
}

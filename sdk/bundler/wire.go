package bundler

import (
	"encoding/base64"
	"math/big"

	"github.com/MullenglobalCanada/smartpay/types"
)

// userOperationWire is the relay's snake_case schema for one user
// operation. Byte fields carry base64 of the raw bytes; numeric fields are
// plain decimal strings.
type userOperationWire struct {
	Sender               string `json:"sender"`
	Nonce                string `json:"nonce"`
	InitCode             string `json:"init_code"`
	CallData             string `json:"call_data"`
	CallGas              string `json:"call_gas"`
	VerificationGas      string `json:"verification_gas"`
	PreVerificationGas   string `json:"pre_verification_gas"`
	MaxFeePerGas         string `json:"max_fee_per_gas"`
	MaxPriorityFeePerGas string `json:"max_priority_fee_per_gas"`
	PaymasterData        string `json:"paymaster_data"`
	Signature            string `json:"signature"`
}

// handleRequest is the one-element batch envelope the relay accepts.
type handleRequest struct {
	UserOperations []userOperationWire `json:"user_operations"`
}

// handleResponse is the relay's submission result. A missing tx_hash means
// the submission was rejected.
type handleResponse struct {
	TxHash  string `json:"tx_hash"`
	Message string `json:"message"`
}

// healthzResponse is the relay's health-check payload. One relay serves
// exactly one chain.
type healthzResponse struct {
	BundlerEOA                string `json:"bundler_eoa"`
	ChainID                   string `json:"chain_id"`
	EntryPointContractAddress string `json:"entrypoint_contract_address"`
}

func toWire(op types.UserOperation) userOperationWire {
	return userOperationWire{
		Sender:               op.Sender.Hex(),
		Nonce:                decimal(op.Nonce),
		InitCode:             encodeBytes(op.InitCode),
		CallData:             encodeBytes(op.CallData),
		CallGas:              decimal(op.CallGas),
		VerificationGas:      decimal(op.VerificationGas),
		PreVerificationGas:   decimal(op.PreVerificationGas),
		MaxFeePerGas:         decimal(op.MaxFeePerGas),
		MaxPriorityFeePerGas: decimal(op.MaxPriorityFeePerGas),
		PaymasterData:        encodeBytes(op.PaymasterData),
		Signature:            encodeBytes(op.Signature),
	}
}

func decimal(v *big.Int) string {
	if v == nil {
		return "0"
	}

	return v.String()
}

func encodeBytes(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

package sdk

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/MullenglobalCanada/smartpay/types"
)

// Bundler is a client of a user-operation relay. A relay is deployed per
// chain, so the supported set contains exactly one chain id.
type Bundler interface {
	// GetSupportedChainIDs returns the chain ids the relay operates on.
	GetSupportedChainIDs(ctx context.Context) ([]types.ChainID, error)

	// GetSigner returns the relay's operating signer address.
	GetSigner(ctx context.Context, chainID types.ChainID) (common.Address, error)

	// GetSupportedEntryPoints returns the entry point contracts the relay
	// submits operations through.
	GetSupportedEntryPoints(ctx context.Context, chainID types.ChainID) ([]common.Address, error)

	// SendUserOperation relays a signed user operation and returns the
	// resulting transaction hash.
	SendUserOperation(ctx context.Context, chainID types.ChainID, op types.UserOperation) (string, error)

	// SimulateUserOperation estimates the gas cost of a user operation
	// without submitting it.
	SimulateUserOperation(ctx context.Context, chainID types.ChainID, op types.UserOperation) (*SimulationResult, error)
}

// SimulationResult is the gas estimation returned by a relay simulation.
type SimulationResult struct {
	PreOpGas string `json:"preOpGas"`
	Prefund  string `json:"prefund"`
}

// Funder is a client of the off-chain funding/whitelist ledger.
//
// The query methods degrade on failure instead of returning errors: a
// ledger outage must not block the best-effort aggregations built on top
// of them. Swallowed errors are reported through the context logger.
type Funder interface {
	// GetSupportedChainIDs returns the fixed set of chains the ledger
	// spans.
	GetSupportedChainIDs(ctx context.Context) ([]types.ChainID, error)

	// Fund submits a signed funding proof for verification.
	Fund(ctx context.Context, chainID types.ChainID, proof types.Proof) (*types.Fund, error)

	// Verify reports whether the handle is whitelisted with a positive
	// quota. Degrades to false on any failure.
	Verify(ctx context.Context, handle string) bool

	// RemainingFrequency returns the unused funding quota for the handle.
	// Never negative; degrades to zero on any failure.
	RemainingFrequency(ctx context.Context, handle string) int64

	// QueryOperationsByOwner returns the funding operations recorded for
	// an owner address. Degrades to an empty list on any failure, which
	// is indistinguishable from "no operations recorded".
	QueryOperationsByOwner(ctx context.Context, owner common.Address) []types.Operation

	// QueryOperationsByWallet returns the funding operations recorded for
	// a wallet address. Same degradation contract as
	// QueryOperationsByOwner.
	QueryOperationsByWallet(ctx context.Context, wallet common.Address) []types.Operation
}

// Deriver computes deterministic contract addresses before deployment.
type Deriver interface {
	// Derive maps (initCode, nonce) to a contract address. Pure and
	// total: equal inputs always yield the same address, and distinct
	// nonces yield distinct addresses for a fixed init code.
	Derive(initCode []byte, nonce uint32) common.Address

	// DeriveUntil enumerates Derive(initCode, n) for n in [0, count) in
	// ascending nonce order, so index i corresponds to nonce i.
	DeriveUntil(initCode []byte, count int) []common.Address
}

// Call is one read-only contract call in a batch.
type Call struct {
	Target   common.Address
	CallData []byte
}

// CallResult is the outcome of one call in a batch, positionally aligned
// with the input calls. A failed entry means the target did not answer the
// expected interface, not that the batch failed.
type CallResult struct {
	Success bool
	Value   []byte
}

// Multicall aggregates many independent read-only contract calls into a
// single RPC round trip.
type Multicall interface {
	TryAggregate(ctx context.Context, chainID types.ChainID, calls []Call) ([]CallResult, error)
}

package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/MullenglobalCanada/smartpay/sdk"
	"github.com/MullenglobalCanada/smartpay/types"
)

// multicallABIJSON is the tryAggregate surface of the Multicall3 contract.
const multicallABIJSON = `[{"inputs":[{"internalType":"bool","name":"requireSuccess","type":"bool"},{"components":[{"internalType":"address","name":"target","type":"address"},{"internalType":"bytes","name":"callData","type":"bytes"}],"internalType":"struct Multicall3.Call[]","name":"calls","type":"tuple[]"}],"name":"tryAggregate","outputs":[{"components":[{"internalType":"bool","name":"success","type":"bool"},{"internalType":"bytes","name":"returnData","type":"bytes"}],"internalType":"struct Multicall3.Result[]","name":"returnData","type":"tuple[]"}],"stateMutability":"payable","type":"function"}]`

var multicallABI = mustParseABI(multicallABIJSON)

// ContractCaller executes read-only contract calls. *ethclient.Client
// satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Backend is the multicall deployment on one chain.
type Backend struct {
	Caller  ContractCaller
	Address common.Address
}

var _ sdk.Multicall = (*Multicall)(nil)

// Multicall batches read-only contract calls through the Multicall3
// contract, one aggregated call per chain round trip.
type Multicall struct {
	backends map[types.ChainID]Backend
}

// NewMulticall creates a batch reader over the given per-chain backends.
func NewMulticall(backends map[types.ChainID]Backend) *Multicall {
	return &Multicall{backends: backends}
}

type multicallCall struct {
	Target   common.Address
	CallData []byte
}

type multicallResult struct {
	Success    bool
	ReturnData []byte
}

// TryAggregate executes every call in one aggregated round trip and
// returns per-call results positionally aligned with calls. Individual
// call failures are reported in the result entries, not as an error.
func (m *Multicall) TryAggregate(ctx context.Context, chainID types.ChainID, calls []sdk.Call) ([]sdk.CallResult, error) {
	backend, ok := m.backends[chainID]
	if !ok {
		return nil, sdk.NewUnsupportedChainError(chainID)
	}

	aggregated := make([]multicallCall, 0, len(calls))
	for _, call := range calls {
		aggregated = append(aggregated, multicallCall{Target: call.Target, CallData: call.CallData})
	}

	data, err := multicallABI.Pack("tryAggregate", false, aggregated)
	if err != nil {
		return nil, fmt.Errorf("unable to pack tryAggregate call: %w", err)
	}

	raw, err := backend.Caller.CallContract(ctx, ethereum.CallMsg{To: &backend.Address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("multicall request failed on chain %s: %w", chainID, err)
	}

	out, err := multicallABI.Unpack("tryAggregate", raw)
	if err != nil {
		return nil, fmt.Errorf("unable to unpack tryAggregate result: %w", err)
	}

	unpacked := *abi.ConvertType(out[0], new([]multicallResult)).(*[]multicallResult)
	if len(unpacked) != len(calls) {
		return nil, fmt.Errorf("multicall returned %d results for %d calls", len(unpacked), len(calls))
	}

	results := make([]sdk.CallResult, 0, len(unpacked))
	for _, res := range unpacked {
		results = append(results, sdk.CallResult{Success: res.Success, Value: res.ReturnData})
	}

	return results, nil
}

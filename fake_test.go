package smartpay

import (
	"context"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"

	"github.com/MullenglobalCanada/smartpay/sdk"
	"github.com/MullenglobalCanada/smartpay/types"
)

// fakeBundler is a fake implementation of sdk.Bundler.
type fakeBundler struct {
	chainID     types.ChainID
	signer      common.Address
	entryPoints []common.Address
	txHash      string
	err         error
}

// newFakeBundler returns a bundler that reports the given chain and entry
// points. The err provided, when non-nil, fails every call.
func newFakeBundler(chainID types.ChainID, entryPoints []common.Address, err error) *fakeBundler {
	return &fakeBundler{
		chainID:     chainID,
		signer:      common.HexToAddress("0x441D393Cd5a4BE542d42d18Aae0B1b35a035818E"),
		entryPoints: entryPoints,
		txHash:      "0xabc",
		err:         err,
	}
}

func (f *fakeBundler) GetSupportedChainIDs(_ context.Context) ([]types.ChainID, error) {
	if f.err != nil {
		return nil, f.err
	}

	return []types.ChainID{f.chainID}, nil
}

func (f *fakeBundler) GetSigner(_ context.Context, _ types.ChainID) (common.Address, error) {
	return f.signer, f.err
}

func (f *fakeBundler) GetSupportedEntryPoints(_ context.Context, _ types.ChainID) ([]common.Address, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.entryPoints, nil
}

func (f *fakeBundler) SendUserOperation(_ context.Context, _ types.ChainID, _ types.UserOperation) (string, error) {
	return f.txHash, f.err
}

func (f *fakeBundler) SimulateUserOperation(_ context.Context, _ types.ChainID, _ types.UserOperation) (*sdk.SimulationResult, error) {
	return nil, sdk.ErrSimulationNotImplemented
}

// fakeFunder is a fake implementation of sdk.Funder returning canned
// ledger operations.
type fakeFunder struct {
	operations []types.Operation
}

func newFakeFunder(operations []types.Operation) *fakeFunder {
	return &fakeFunder{operations: operations}
}

func (f *fakeFunder) GetSupportedChainIDs(_ context.Context) ([]types.ChainID, error) {
	return []types.ChainID{types.ChainPolygon, types.ChainMumbai}, nil
}

func (f *fakeFunder) Fund(_ context.Context, _ types.ChainID, _ types.Proof) (*types.Fund, error) {
	return &types.Fund{}, nil
}

func (f *fakeFunder) Verify(_ context.Context, _ string) bool {
	return len(f.operations) > 0
}

func (f *fakeFunder) RemainingFrequency(_ context.Context, _ string) int64 {
	return int64(len(f.operations))
}

func (f *fakeFunder) QueryOperationsByOwner(_ context.Context, _ common.Address) []types.Operation {
	return f.operations
}

func (f *fakeFunder) QueryOperationsByWallet(_ context.Context, _ common.Address) []types.Operation {
	return f.operations
}

// fakeMulticall is a fake implementation of sdk.Multicall. The resolve
// func maps each batched target to its per-call result; calls counts
// aggregated round trips.
type fakeMulticall struct {
	resolve func(call sdk.Call) sdk.CallResult
	err     error
	calls   atomic.Int64
}

func newFakeMulticall(resolve func(call sdk.Call) sdk.CallResult, err error) *fakeMulticall {
	return &fakeMulticall{resolve: resolve, err: err}
}

func (f *fakeMulticall) TryAggregate(_ context.Context, _ types.ChainID, calls []sdk.Call) ([]sdk.CallResult, error) {
	f.calls.Add(1)

	if f.err != nil {
		return nil, f.err
	}

	results := make([]sdk.CallResult, 0, len(calls))
	for _, call := range calls {
		results = append(results, f.resolve(call))
	}

	return results, nil
}

// discardLogger silences degradation logs in tests.
type discardLogger struct{}

func (discardLogger) Infof(string, ...any) {}

func testContext() context.Context {
	return sdk.WithLogger(context.Background(), discardLogger{})
}

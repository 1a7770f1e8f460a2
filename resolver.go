package smartpay

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/MullenglobalCanada/smartpay/sdk"
	"github.com/MullenglobalCanada/smartpay/sdk/evm"
	"github.com/MullenglobalCanada/smartpay/types"
)

// AccountResolver answers "which counterfactual and deployed contract
// accounts exist for an owner" by merging three sources: deterministic
// CREATE2 address derivation, batched on-chain owner() reads, and the
// off-chain funding ledger.
type AccountResolver struct {
	bundler     sdk.Bundler
	funder      sdk.Funder
	multicall   sdk.Multicall
	chains      map[types.ChainID]ChainConfig
	maxAccounts int
}

// NewAccountResolver creates a resolver from the given configuration.
func NewAccountResolver(cfg Config) (*AccountResolver, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid resolver configuration: %w", err)
	}

	chains := cfg.Chains
	if len(chains) == 0 {
		chains = DefaultChainConfigs
	}

	maxAccounts := cfg.MaxAccounts
	if maxAccounts == 0 {
		maxAccounts = DefaultMaxAccounts
	}

	return &AccountResolver{
		bundler:     cfg.Bundler,
		funder:      cfg.Funder,
		multicall:   cfg.Multicall,
		chains:      chains,
		maxAccounts: maxAccounts,
	}, nil
}

func (r *AccountResolver) chainConfig(chainID types.ChainID) (ChainConfig, error) {
	cfg, ok := r.chains[chainID]
	if !ok {
		return ChainConfig{}, NewMissingChainConfigError(chainID)
	}

	return cfg, nil
}

func (r *AccountResolver) entryPoint(ctx context.Context, chainID types.ChainID) (common.Address, error) {
	entryPoints, err := r.bundler.GetSupportedEntryPoints(ctx, chainID)
	if err != nil {
		return common.Address{}, err
	}

	if len(entryPoints) == 0 {
		return common.Address{}, NewNoEntryPointError(chainID)
	}

	return entryPoints[0], nil
}

// walletInitCode assembles the deterministic init code for the owner's
// wallets on the given chain. The entry point comes from the relay, the
// logic wallet from chain configuration; both missing are hard
// precondition failures.
func (r *AccountResolver) walletInitCode(ctx context.Context, chainID types.ChainID, owner common.Address) ([]byte, error) {
	if owner == (common.Address{}) {
		return nil, ErrMissingOwner
	}

	cfg, err := r.chainConfig(chainID)
	if err != nil {
		return nil, err
	}

	entryPoint, err := r.entryPoint(ctx, chainID)
	if err != nil {
		return nil, err
	}

	return evm.NewContractWallet(chainID, owner, cfg.LogicWallet, entryPoint).InitCode()
}

func (r *AccountResolver) deriver(chainID types.ChainID) (sdk.Deriver, error) {
	cfg, err := r.chainConfig(chainID)
	if err != nil {
		return nil, err
	}

	return evm.NewCreate2Factory(cfg.Create2Factory), nil
}

// operationsFund reports whether any recorded funding operation targets
// the given wallet address. Addresses compare case-insensitively: the
// ledger stores whatever casing the funder submitted.
func operationsFund(operations []types.Operation, wallet common.Address) bool {
	for _, op := range operations {
		if strings.EqualFold(op.WalletAddress, wallet.Hex()) {
			return true
		}
	}

	return false
}

// GetAccountByNonce projects the counterfactual account at one nonce slot.
// It never reads the chain: the address is derived, and only the funding
// ledger is consulted, so it works before any deployment exists.
func (r *AccountResolver) GetAccountByNonce(
	ctx context.Context,
	chainID types.ChainID,
	owner common.Address,
	nonce uint32,
) (types.ContractAccount, error) {
	deriver, err := r.deriver(chainID)
	if err != nil {
		return types.ContractAccount{}, err
	}

	initCode, err := r.walletInitCode(ctx, chainID, owner)
	if err != nil {
		return types.ContractAccount{}, err
	}

	address := deriver.Derive(initCode, nonce)
	operations := r.funder.QueryOperationsByOwner(ctx, owner)

	return types.NewContractAccount(chainID, address, owner, owner, false, operationsFund(operations, address)), nil
}

// GetAccountsByOwner discovers the owner's accounts by running the
// multicall and historical-index strategies concurrently and merging
// whatever succeeded. A failing strategy contributes zero accounts rather
// than aborting the call. Results are deduplicated by (chain, address)
// with the multicall strategy winning, since it carries on-chain truth.
func (r *AccountResolver) GetAccountsByOwner(
	ctx context.Context,
	chainID types.ChainID,
	owner common.Address,
) ([]types.ContractAccount, error) {
	deriver, err := r.deriver(chainID)
	if err != nil {
		return nil, err
	}

	initCode, err := r.walletInitCode(ctx, chainID, owner)
	if err != nil {
		return nil, err
	}

	candidates := deriver.DeriveUntil(initCode, r.maxAccounts)

	type strategyResult struct {
		accounts []types.ContractAccount
		err      error
	}

	results := make([]strategyResult, 2)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		accounts, err := r.accountsFromMulticall(ctx, chainID, owner, candidates)
		results[0] = strategyResult{accounts: accounts, err: err}
	}()
	go func() {
		defer wg.Done()
		accounts, err := r.accountsFromHistory(ctx, chainID, owner)
		results[1] = strategyResult{accounts: accounts, err: err}
	}()
	wg.Wait()

	logger := sdk.LoggerFrom(ctx)
	seen := make(map[string]struct{})
	merged := make([]types.ContractAccount, 0, len(candidates))

	for _, result := range results {
		if result.err != nil {
			logger.Infof("account discovery strategy failed for owner %s on chain %s: %v", owner, chainID, result.err)
			continue
		}

		for _, account := range result.accounts {
			if _, dup := seen[account.ID]; dup {
				continue
			}
			seen[account.ID] = struct{}{}
			merged = append(merged, account)
		}
	}

	return merged, nil
}

// GetAccountsByOwners fans GetAccountsByOwner out over every owner
// concurrently. A failing owner lookup contributes nothing; ordering
// across owners is not guaranteed beyond per-owner grouping.
func (r *AccountResolver) GetAccountsByOwners(
	ctx context.Context,
	chainID types.ChainID,
	owners []common.Address,
) ([]types.ContractAccount, error) {
	accounts := make([][]types.ContractAccount, len(owners))
	errs := make([]error, len(owners))

	var wg sync.WaitGroup
	for i, owner := range owners {
		wg.Add(1)
		go func(i int, owner common.Address) {
			defer wg.Done()
			accounts[i], errs[i] = r.GetAccountsByOwner(ctx, chainID, owner)
		}(i, owner)
	}
	wg.Wait()

	logger := sdk.LoggerFrom(ctx)
	merged := make([]types.ContractAccount, 0, len(owners))

	for i, err := range errs {
		if err != nil {
			logger.Infof("account lookup failed for owner %s on chain %s: %v", owners[i], chainID, err)
			continue
		}

		merged = append(merged, accounts[i]...)
	}

	return merged, nil
}

// accountsFromMulticall batch-reads every candidate's owner() field in one
// aggregated call. Candidates whose read failed or returned an empty owner
// are un-deployed nonce slots and are dropped silently; the survivors are
// deployed accounts, marked funded when the ledger records a matching
// wallet address.
func (r *AccountResolver) accountsFromMulticall(
	ctx context.Context,
	chainID types.ChainID,
	owner common.Address,
	candidates []common.Address,
) ([]types.ContractAccount, error) {
	ownerCall, err := evm.PackOwnerCall()
	if err != nil {
		return nil, err
	}

	calls := make([]sdk.Call, 0, len(candidates))
	for _, candidate := range candidates {
		calls = append(calls, sdk.Call{Target: candidate, CallData: ownerCall})
	}

	results, err := r.multicall.TryAggregate(ctx, chainID, calls)
	if err != nil {
		return nil, err
	}

	deployed := make([]common.Address, 0, len(candidates))
	for i, result := range results {
		if !result.Success || len(result.Value) == 0 {
			continue
		}

		walletOwner, err := evm.UnpackOwner(result.Value)
		if err != nil || walletOwner == (common.Address{}) {
			continue
		}

		deployed = append(deployed, candidates[i])
	}

	// The owner never deployed an account; skip the ledger round trip.
	if len(deployed) == 0 {
		return nil, nil
	}

	operations := r.funder.QueryOperationsByOwner(ctx, owner)

	accounts := make([]types.ContractAccount, 0, len(deployed))
	for _, address := range deployed {
		accounts = append(accounts, types.NewContractAccount(chainID, address, owner, owner, true, operationsFund(operations, address)))
	}

	return accounts, nil
}

// accountsFromHistory reconstructs accounts from the on-chain
// ownership-change event index. The contract is fixed so callers are
// unaffected when the strategy lands.
//
// TODO: query the changeOwner event index once the indexer endpoint is
// available.
func (r *AccountResolver) accountsFromHistory(
	_ context.Context,
	_ types.ChainID,
	_ common.Address,
) ([]types.ContractAccount, error) {
	return nil, nil
}

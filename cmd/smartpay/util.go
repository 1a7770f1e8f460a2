package smartpay

import (
	"errors"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/MullenglobalCanada/smartpay"
	"github.com/MullenglobalCanada/smartpay/sdk/bundler"
	"github.com/MullenglobalCanada/smartpay/sdk/evm"
	"github.com/MullenglobalCanada/smartpay/sdk/funder"
	"github.com/MullenglobalCanada/smartpay/types"
)

// newResolver wires an account resolver against the endpoints given on
// the command line.
func newResolver() (*smartpay.AccountResolver, error) {
	if bundlerRoot == "" {
		return nil, errors.New("bundler root is required (--bundler-root or BUNDLER_ROOT)")
	}
	if funderRoot == "" {
		return nil, errors.New("funder root is required (--funder-root or FUNDER_ROOT)")
	}
	if rpcURL == "" {
		return nil, errors.New("rpc url is required (--rpc-url or RPC_URL)")
	}

	id := types.ChainID(chainID)
	chainCfg, ok := smartpay.DefaultChainConfigs[id]
	if !ok {
		return nil, smartpay.NewMissingChainConfigError(id)
	}

	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, err
	}

	multicall := evm.NewMulticall(map[types.ChainID]evm.Backend{
		id: {Caller: client, Address: chainCfg.Multicall},
	})

	return smartpay.NewAccountResolver(smartpay.Config{
		Bundler:   bundler.NewClient(bundlerRoot),
		Funder:    funder.NewClient(funderRoot),
		Multicall: multicall,
	})
}

func newFunderClient() (*funder.Client, error) {
	if funderRoot == "" {
		return nil, errors.New("funder root is required (--funder-root or FUNDER_ROOT)")
	}

	return funder.NewClient(funderRoot), nil
}

func newBundlerClient() (*bundler.Client, error) {
	if bundlerRoot == "" {
		return nil, errors.New("bundler root is required (--bundler-root or BUNDLER_ROOT)")
	}

	return bundler.NewClient(bundlerRoot), nil
}

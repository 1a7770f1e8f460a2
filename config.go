package smartpay

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"

	"github.com/MullenglobalCanada/smartpay/sdk"
	"github.com/MullenglobalCanada/smartpay/types"
)

var validate = validator.New()

// DefaultMaxAccounts bounds the candidate-address scan per owner. Each
// query derives and batch-reads this many nonce slots, so raising it
// trades RPC cost for deeper account discovery.
const DefaultMaxAccounts = 10

// ChainConfig holds the contract deployments the resolver needs on one
// chain.
type ChainConfig struct {
	// Create2Factory is the factory contract wallets are deployed
	// through.
	Create2Factory common.Address `validate:"required"`

	// LogicWallet is the wallet implementation contract proxies point at.
	LogicWallet common.Address `validate:"required"`

	// Multicall is the Multicall3 deployment used for batch reads.
	Multicall common.Address `validate:"required"`
}

// DefaultChainConfigs covers the networks the funding ledger spans.
var DefaultChainConfigs = map[types.ChainID]ChainConfig{
	types.ChainPolygon: {
		Create2Factory: common.HexToAddress("0x8D03f71CDcD1a33bbec4B7A791b551d8E332Ce36"),
		LogicWallet:    common.HexToAddress("0x0CE81BEf678371eeDB2A6e0E2b2d5fb2B608cf13"),
		Multicall:      common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
	},
	types.ChainMumbai: {
		Create2Factory: common.HexToAddress("0x9e1c8B2B83b8e5A1F9A52A4e2a465BE5639DDa7b"),
		LogicWallet:    common.HexToAddress("0x8A42F70047a99298822dD1dbA34b454fc49913F2"),
		Multicall:      common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
	},
}

// Config wires an AccountResolver.
type Config struct {
	// Bundler is the user-operation relay client.
	Bundler sdk.Bundler `validate:"required"`

	// Funder is the funding ledger client.
	Funder sdk.Funder `validate:"required"`

	// Multicall is the batch call aggregator.
	Multicall sdk.Multicall `validate:"required"`

	// Chains overrides the per-chain contract deployments. Defaults to
	// DefaultChainConfigs when empty.
	Chains map[types.ChainID]ChainConfig `validate:"omitempty,dive"`

	// MaxAccounts overrides the candidate scan bound. Defaults to
	// DefaultMaxAccounts when zero.
	MaxAccounts int `validate:"gte=0"`
}

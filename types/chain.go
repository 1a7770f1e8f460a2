package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"strconv"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

// ChainID is the EVM chain id of a target network.
//
// Canonical ids are defined in the chain-selectors dependency.
// https://github.com/smartcontractkit/chain-selectors
type ChainID uint64

const (
	// ChainPolygon is the Polygon PoS mainnet.
	ChainPolygon ChainID = 137

	// ChainMumbai is the Polygon Mumbai testnet.
	ChainMumbai ChainID = 80001
)

// Known reports whether the chain id appears in the canonical EVM chain id
// table.
func (c ChainID) Known() bool {
	_, ok := chainsel.EvmChainIdToChainSelector()[uint64(c)]

	return ok
}

// Name returns the canonical network name for the chain id, or an empty
// string when the id is not a known EVM chain.
func (c ChainID) Name() string {
	sel, ok := chainsel.EvmChainIdToChainSelector()[uint64(c)]
	if !ok {
		return ""
	}

	chain, ok := chainsel.ChainBySelector(sel)
	if !ok {
		return ""
	}

	return chain.Name
}

// String renders the chain id with its network name when one is known.
func (c ChainID) String() string {
	s := strconv.FormatUint(uint64(c), 10)
	if name := c.Name(); name != "" {
		return s + " (" + name + ")"
	}

	return s
}

// ContainsChainID reports whether ids contains the given chain id.
func ContainsChainID(ids []ChainID, id ChainID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}

	return false
}

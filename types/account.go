package types

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
)

// ScopeEVM scopes account identifiers to the EVM network plugin.
const ScopeEVM = "com.mask.evm"

// ContractAccount is one smart-contract wallet instance, either observed on
// chain (Deployed=true) or projected counterfactually from (owner, nonce).
//
// A non-deployed account is derived, not observed; the same (owner, nonce)
// must resolve to the same address once the contract is deployed. Accounts
// are constructed transiently on every query and never persisted here.
type ContractAccount struct {
	Scope    string         `json:"pluginID"`
	ChainID  ChainID        `json:"chainId"`
	ID       string         `json:"id"`
	Address  common.Address `json:"address"`
	Owner    common.Address `json:"owner"`
	Creator  common.Address `json:"creator"`
	Deployed bool           `json:"deployed"`
	Funded   bool           `json:"funded"`
}

// NewContractAccount builds a ContractAccount with its composite
// scope_chain_address identifier.
func NewContractAccount(
	chainID ChainID,
	address common.Address,
	owner common.Address,
	creator common.Address,
	deployed bool,
	funded bool,
) ContractAccount {
	return ContractAccount{
		Scope:    ScopeEVM,
		ChainID:  chainID,
		ID:       ScopeEVM + "_" + strconv.FormatUint(uint64(chainID), 10) + "_" + address.Hex(),
		Address:  address,
		Owner:    owner,
		Creator:  creator,
		Deployed: deployed,
		Funded:   funded,
	}
}

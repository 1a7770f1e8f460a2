package evm

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/MullenglobalCanada/smartpay/types"
)

// walletABIJSON is the read surface of the wallet contract this library
// needs.
const walletABIJSON = `[{"inputs":[],"name":"owner","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"}]`

// walletProxyCreationCode is the creation bytecode of the wallet proxy.
// The constructor takes (logic, entryPoint, owner), appended ABI-encoded.
var walletProxyCreationCode = hexutil.MustDecode(
	"0x608060405260405161046a38038061046a83398101604081905261002291610159565b600080546001600160a01b0319166001600160a01b039485161790556001805482169284169290921790915560028054909116919092161790556101a4565b",
)

var (
	walletABI   = mustParseABI(walletABIJSON)
	addressType = mustNewType("address")
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}

	return parsed
}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}

	return typ
}

// PackOwnerCall encodes a call to the wallet's owner() getter.
func PackOwnerCall() ([]byte, error) {
	return walletABI.Pack("owner")
}

// UnpackOwner decodes the return data of an owner() call. Empty return
// data decodes to the zero address.
func UnpackOwner(data []byte) (common.Address, error) {
	if len(data) == 0 {
		return common.Address{}, nil
	}

	out, err := walletABI.Unpack("owner", data)
	if err != nil {
		return common.Address{}, fmt.Errorf("unable to unpack owner call result: %w", err)
	}

	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// PackOwnerResult encodes an owner address the way an owner() call returns
// it.
func PackOwnerResult(owner common.Address) ([]byte, error) {
	return walletABI.Methods["owner"].Outputs.Pack(owner)
}

// ContractWallet assembles the deterministic init code for one
// counterfactual wallet. The init code commits to the logic contract, the
// entry point and the controlling owner key, so every (owner, nonce) pair
// maps to exactly one address.
type ContractWallet struct {
	chainID    types.ChainID
	owner      common.Address
	logic      common.Address
	entryPoint common.Address
}

// NewContractWallet creates a wallet description for the given owner.
func NewContractWallet(chainID types.ChainID, owner, logic, entryPoint common.Address) *ContractWallet {
	return &ContractWallet{
		chainID:    chainID,
		owner:      owner,
		logic:      logic,
		entryPoint: entryPoint,
	}
}

// ChainID returns the chain the wallet is scoped to.
func (w *ContractWallet) ChainID() types.ChainID {
	return w.chainID
}

// Owner returns the controlling external key.
func (w *ContractWallet) Owner() common.Address {
	return w.owner
}

// InitCode returns the proxy creation bytecode with the constructor
// arguments appended.
func (w *ContractWallet) InitCode() ([]byte, error) {
	arguments := abi.Arguments{
		{Type: addressType},
		{Type: addressType},
		{Type: addressType},
	}

	packed, err := arguments.Pack(w.logic, w.entryPoint, w.owner)
	if err != nil {
		return nil, fmt.Errorf("unable to pack wallet constructor arguments: %w", err)
	}

	initCode := make([]byte, 0, len(walletProxyCreationCode)+len(packed))
	initCode = append(initCode, walletProxyCreationCode...)
	initCode = append(initCode, packed...)

	return initCode, nil
}

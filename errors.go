package smartpay

import (
	"errors"
	"fmt"

	"github.com/MullenglobalCanada/smartpay/types"
)

// ErrMissingOwner is returned when an operation requiring an owner address
// receives the zero address. This is a caller error and is never degraded.
var ErrMissingOwner = errors.New("no owner address")

// MissingChainConfigError is returned when no contract deployments are
// configured for the requested chain.
type MissingChainConfigError struct {
	ChainID types.ChainID
}

// NewMissingChainConfigError creates a new MissingChainConfigError.
func NewMissingChainConfigError(chainID types.ChainID) *MissingChainConfigError {
	return &MissingChainConfigError{ChainID: chainID}
}

func (e *MissingChainConfigError) Error() string {
	return fmt.Sprintf("no contract configuration for chain %s", e.ChainID)
}

// NoEntryPointError is returned when the relay reports no entry point
// contract for a chain.
type NoEntryPointError struct {
	ChainID types.ChainID
}

// NewNoEntryPointError creates a new NoEntryPointError.
func NewNoEntryPointError(chainID types.ChainID) *NoEntryPointError {
	return &NoEntryPointError{ChainID: chainID}
}

func (e *NoEntryPointError) Error() string {
	return fmt.Sprintf("no entry point contract on chain %s", e.ChainID)
}

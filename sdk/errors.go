package sdk

import (
	"errors"
	"fmt"

	"github.com/MullenglobalCanada/smartpay/types"
)

// DefaultRelayMessage is reported when a relay rejects a request without
// supplying its own message.
const DefaultRelayMessage = "Unknown Error"

// ErrSimulationNotImplemented is returned whenever a relay simulation is
// requested. Simulation is a permanent capability gap, not a transient
// failure.
var ErrSimulationNotImplemented = errors.New("user operation simulation is not implemented")

// UnsupportedChainError is returned when a requested chain id is outside a
// client's supported set.
type UnsupportedChainError struct {
	ChainID types.ChainID
}

// NewUnsupportedChainError creates a new UnsupportedChainError.
func NewUnsupportedChainError(chainID types.ChainID) *UnsupportedChainError {
	return &UnsupportedChainError{ChainID: chainID}
}

func (e *UnsupportedChainError) Error() string {
	return fmt.Sprintf("chain %s is not supported", e.ChainID)
}

// RelayRejectionError is returned when the relay or ledger service
// explicitly rejects a request. Message carries the service-supplied
// human-readable reason.
type RelayRejectionError struct {
	Message string
}

// NewRelayRejectionError creates a new RelayRejectionError, substituting
// DefaultRelayMessage when the service omitted one.
func NewRelayRejectionError(message string) *RelayRejectionError {
	if message == "" {
		message = DefaultRelayMessage
	}

	return &RelayRejectionError{Message: message}
}

func (e *RelayRejectionError) Error() string {
	return e.Message
}

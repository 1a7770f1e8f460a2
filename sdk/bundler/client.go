package bundler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cast"

	"github.com/MullenglobalCanada/smartpay/sdk"
	"github.com/MullenglobalCanada/smartpay/types"
)

const defaultTimeout = 30 * time.Second

var _ sdk.Bundler = (*Client)(nil)

// Client talks to a user-operation relay over HTTP. The relay is
// single-chain per deployment; its chain id, signer and entry point are
// all discovered from the health check.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a relay client rooted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

func (c *Client) healthz(ctx context.Context) (*healthzResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return nil, fmt.Errorf("unable to build health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("relay health check returned status %d", resp.StatusCode)
	}

	var health healthzResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("unable to decode health check response: %w", err)
	}

	return &health, nil
}

// assertChainID funnels all relay chain validation: it rejects any chain
// id outside the discovered supported set.
func (c *Client) assertChainID(ctx context.Context, chainID types.ChainID) error {
	chainIDs, err := c.GetSupportedChainIDs(ctx)
	if err != nil {
		return err
	}

	if !types.ContainsChainID(chainIDs, chainID) {
		return sdk.NewUnsupportedChainError(chainID)
	}

	return nil
}

// GetSupportedChainIDs returns the single chain id the relay operates on.
func (c *Client) GetSupportedChainIDs(ctx context.Context) ([]types.ChainID, error) {
	health, err := c.healthz(ctx)
	if err != nil {
		return nil, err
	}

	chainID, err := cast.ToUint64E(health.ChainID)
	if err != nil {
		return nil, fmt.Errorf("relay reported malformed chain id %q: %w", health.ChainID, err)
	}

	return []types.ChainID{types.ChainID(chainID)}, nil
}

// GetSigner returns the relay's operating signer address.
func (c *Client) GetSigner(ctx context.Context, chainID types.ChainID) (common.Address, error) {
	if err := c.assertChainID(ctx, chainID); err != nil {
		return common.Address{}, err
	}

	health, err := c.healthz(ctx)
	if err != nil {
		return common.Address{}, err
	}

	return common.HexToAddress(health.BundlerEOA), nil
}

// GetSupportedEntryPoints returns the entry point contracts the relay
// submits through, currently always a singleton.
func (c *Client) GetSupportedEntryPoints(ctx context.Context, chainID types.ChainID) ([]common.Address, error) {
	if err := c.assertChainID(ctx, chainID); err != nil {
		return nil, err
	}

	health, err := c.healthz(ctx)
	if err != nil {
		return nil, err
	}

	return []common.Address{common.HexToAddress(health.EntryPointContractAddress)}, nil
}

// SendUserOperation validates chain support and relays the signed
// operation, returning the transaction hash the relay reports.
func (c *Client) SendUserOperation(ctx context.Context, chainID types.ChainID, op types.UserOperation) (string, error) {
	if err := c.assertChainID(ctx, chainID); err != nil {
		return "", err
	}

	return c.handle(ctx, op)
}

// SimulateUserOperation always fails: the relay exposes no simulation
// endpoint. Callers must treat this as a permanent capability gap.
func (c *Client) SimulateUserOperation(_ context.Context, _ types.ChainID, _ types.UserOperation) (*sdk.SimulationResult, error) {
	return nil, sdk.ErrSimulationNotImplemented
}

func (c *Client) handle(ctx context.Context, op types.UserOperation) (string, error) {
	body, err := json.Marshal(handleRequest{UserOperations: []userOperationWire{toWire(op)}})
	if err != nil {
		return "", fmt.Errorf("unable to encode user operation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/handle", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("unable to build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("relay submission failed: %w", err)
	}
	defer resp.Body.Close()

	var result handleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("unable to decode relay response: %w", err)
	}

	// No hash means the relay rejected the operation; an empty hash must
	// never be surfaced as success.
	if result.TxHash == "" {
		return "", sdk.NewRelayRejectionError(result.Message)
	}

	return result.TxHash, nil
}

package funder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/MullenglobalCanada/smartpay/sdk"
	"github.com/MullenglobalCanada/smartpay/types"
)

const defaultTimeout = 30 * time.Second

// supportedChainIDs is the fixed deployment footprint of the funding
// ledger. It is an allow-list, not discovered.
var supportedChainIDs = []types.ChainID{types.ChainPolygon, types.ChainMumbai}

var _ sdk.Funder = (*Client)(nil)

// Client talks to the funding/whitelist ledger over HTTP.
//
// Read paths degrade to empty/false/zero on failure: they feed best-effort
// aggregations where one source's outage must not block the others. Every
// degradation is logged through the context logger before being swallowed.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a ledger client rooted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// GetSupportedChainIDs returns the ledger's fixed chain allow-list.
func (c *Client) GetSupportedChainIDs(_ context.Context) ([]types.ChainID, error) {
	chainIDs := make([]types.ChainID, len(supportedChainIDs))
	copy(chainIDs, supportedChainIDs)

	return chainIDs, nil
}

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

func (c *Client) queryWhiteList(ctx context.Context, handle string) (*types.WhiteList, error) {
	query := url.Values{}
	query.Set("twitterHandler", handle)

	var record types.WhiteList
	if err := c.getJSON(ctx, "/whitelist", query, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

func (c *Client) queryOperations(ctx context.Context, key types.ScanKey, value string) ([]types.Operation, error) {
	query := url.Values{}
	query.Set("scanKey", string(key))
	query.Set("scanValue", value)

	var operations []types.Operation
	if err := c.getJSON(ctx, "/operation", query, &operations); err != nil {
		return nil, err
	}

	return operations, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("unable to build ledger request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ledger request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ledger returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("unable to decode ledger response: %w", err)
	}

	return nil
}

// Fund submits a signed funding proof to the ledger's verification
// endpoint. Rejections propagate with the ledger's message.
func (c *Client) Fund(ctx context.Context, chainID types.ChainID, proof types.Proof) (*types.Fund, error) {
	if err := c.assertChainID(ctx, chainID); err != nil {
		return nil, err
	}

	body, err := json.Marshal(proof)
	if err != nil {
		return nil, fmt.Errorf("unable to encode funding proof: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("unable to build funding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("funding request failed: %w", err)
	}
	defer resp.Body.Close()

	var fund types.Fund
	if err := json.NewDecoder(resp.Body).Decode(&fund); err != nil {
		return nil, fmt.Errorf("unable to decode funding response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, sdk.NewRelayRejectionError(fund.Message)
	}

	return &fund, nil
}

// Verify reports whether the handle is whitelisted with a positive quota.
// Any failure degrades to false; the handle is simply treated as not
// whitelisted.
func (c *Client) Verify(ctx context.Context, handle string) bool {
	record, err := c.queryWhiteList(ctx, handle)
	if err != nil {
		sdk.LoggerFrom(ctx).Infof("whitelist lookup for %q degraded to false: %v", handle, err)
		return false
	}

	return record.TwitterHandler == handle && record.TotalCount > 0
}

// RemainingFrequency returns the unused funding quota for the handle,
// never negative. Mismatched handles and lookup failures degrade to zero.
func (c *Client) RemainingFrequency(ctx context.Context, handle string) int64 {
	record, err := c.queryWhiteList(ctx, handle)
	if err != nil {
		sdk.LoggerFrom(ctx).Infof("whitelist lookup for %q degraded to zero: %v", handle, err)
		return 0
	}

	if record.TwitterHandler != handle || record.TotalCount <= 0 {
		return 0
	}

	remaining := record.TotalCount - record.UsedCount
	if remaining < 0 {
		return 0
	}

	return remaining
}

// QueryOperationsByOwner returns the funding operations recorded for the
// owner address, degrading to an empty list on any failure.
func (c *Client) QueryOperationsByOwner(ctx context.Context, owner common.Address) []types.Operation {
	operations, err := c.queryOperations(ctx, types.ScanKeyOwnerAddress, owner.Hex())
	if err != nil {
		sdk.LoggerFrom(ctx).Infof("operation lookup for owner %s degraded to empty: %v", owner, err)
		return nil
	}

	return operations
}

// QueryOperationsByWallet returns the funding operations recorded for the
// wallet address, degrading to an empty list on any failure.
func (c *Client) QueryOperationsByWallet(ctx context.Context, wallet common.Address) []types.Operation {
	operations, err := c.queryOperations(ctx, types.ScanKeyWalletAddress, wallet.Hex())
	if err != nil {
		sdk.LoggerFrom(ctx).Infof("operation lookup for wallet %s degraded to empty: %v", wallet, err)
		return nil
	}

	return operations
}

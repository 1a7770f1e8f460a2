package bundler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MullenglobalCanada/smartpay/sdk"
	"github.com/MullenglobalCanada/smartpay/types"
)

type relayFixture struct {
	healthz       healthzResponse
	handleStatus  int
	handleBody    any
	handleCalls   atomic.Int64
	lastHandleReq handleRequest
}

func newRelayServer(t *testing.T, fixture *relayFixture) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(fixture.healthz))
	})
	mux.HandleFunc("/handle", func(w http.ResponseWriter, r *http.Request) {
		fixture.handleCalls.Add(1)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fixture.lastHandleReq))

		if fixture.handleStatus != 0 {
			w.WriteHeader(fixture.handleStatus)
		}
		require.NoError(t, json.NewEncoder(w).Encode(fixture.handleBody))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func testOperation() types.UserOperation {
	return types.UserOperation{
		Sender:               common.HexToAddress("0x1234567890AbcdEF1234567890aBcdef12345678"),
		Nonce:                big.NewInt(7),
		InitCode:             []byte{0xde, 0xad},
		CallData:             []byte{0xbe, 0xef},
		CallGas:              big.NewInt(21000),
		VerificationGas:      big.NewInt(100000),
		PreVerificationGas:   big.NewInt(21000),
		MaxFeePerGas:         big.NewInt(2000000000),
		MaxPriorityFeePerGas: big.NewInt(1000000000),
		PaymasterData:        nil,
		Signature:            []byte{0x01, 0x02, 0x03},
	}
}

func Test_Client_GetSupportedChainIDs(t *testing.T) {
	t.Parallel()

	fixture := &relayFixture{
		healthz: healthzResponse{
			BundlerEOA:                "0x441D393Cd5a4BE542d42d18Aae0B1b35a035818E",
			ChainID:                   "80001",
			EntryPointContractAddress: "0x8A42F70047a99298822dD1dbA34b454fc49913F2",
		},
	}
	client := NewClient(newRelayServer(t, fixture).URL)

	chainIDs, err := client.GetSupportedChainIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []types.ChainID{types.ChainMumbai}, chainIDs)
}

func Test_Client_GetSigner(t *testing.T) {
	t.Parallel()

	fixture := &relayFixture{
		healthz: healthzResponse{
			BundlerEOA:                "0x441D393Cd5a4BE542d42d18Aae0B1b35a035818E",
			ChainID:                   "80001",
			EntryPointContractAddress: "0x8A42F70047a99298822dD1dbA34b454fc49913F2",
		},
	}
	client := NewClient(newRelayServer(t, fixture).URL)

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		signer, err := client.GetSigner(context.Background(), types.ChainMumbai)
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress("0x441D393Cd5a4BE542d42d18Aae0B1b35a035818E"), signer)
	})

	t.Run("failure: unsupported chain", func(t *testing.T) {
		t.Parallel()

		_, err := client.GetSigner(context.Background(), types.ChainPolygon)

		var want *sdk.UnsupportedChainError
		require.ErrorAs(t, err, &want)
		assert.Equal(t, types.ChainPolygon, want.ChainID)
	})
}

func Test_Client_GetSupportedEntryPoints(t *testing.T) {
	t.Parallel()

	fixture := &relayFixture{
		healthz: healthzResponse{
			ChainID:                   "80001",
			EntryPointContractAddress: "0x8A42F70047a99298822dD1dbA34b454fc49913F2",
		},
	}
	client := NewClient(newRelayServer(t, fixture).URL)

	t.Run("success: singleton entry point", func(t *testing.T) {
		t.Parallel()

		entryPoints, err := client.GetSupportedEntryPoints(context.Background(), types.ChainMumbai)
		require.NoError(t, err)
		assert.Equal(t, []common.Address{common.HexToAddress("0x8A42F70047a99298822dD1dbA34b454fc49913F2")}, entryPoints)
	})

	t.Run("failure: unsupported chain skips the submission endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := client.GetSupportedEntryPoints(context.Background(), types.ChainPolygon)

		var want *sdk.UnsupportedChainError
		require.ErrorAs(t, err, &want)
		assert.Equal(t, int64(0), fixture.handleCalls.Load())
	})
}

func Test_Client_SendUserOperation(t *testing.T) {
	t.Parallel()

	t.Run("success: returns the relayed transaction hash", func(t *testing.T) {
		t.Parallel()

		fixture := &relayFixture{
			healthz:    healthzResponse{ChainID: "80001"},
			handleBody: handleResponse{TxHash: "0xabc"},
		}
		client := NewClient(newRelayServer(t, fixture).URL)

		hash, err := client.SendUserOperation(context.Background(), types.ChainMumbai, testOperation())
		require.NoError(t, err)
		assert.Equal(t, "0xabc", hash)
		assert.Equal(t, int64(1), fixture.handleCalls.Load())
	})

	t.Run("success: wire schema", func(t *testing.T) {
		t.Parallel()

		fixture := &relayFixture{
			healthz:    healthzResponse{ChainID: "80001"},
			handleBody: handleResponse{TxHash: "0xabc"},
		}
		client := NewClient(newRelayServer(t, fixture).URL)

		_, err := client.SendUserOperation(context.Background(), types.ChainMumbai, testOperation())
		require.NoError(t, err)

		require.Len(t, fixture.lastHandleReq.UserOperations, 1)
		wire := fixture.lastHandleReq.UserOperations[0]

		assert.Equal(t, testOperation().Sender.Hex(), wire.Sender)
		assert.Equal(t, "7", wire.Nonce)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0xde, 0xad}), wire.InitCode)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0xbe, 0xef}), wire.CallData)
		assert.Equal(t, "21000", wire.CallGas)
		assert.Equal(t, "100000", wire.VerificationGas)
		assert.Equal(t, "21000", wire.PreVerificationGas)
		assert.Equal(t, "2000000000", wire.MaxFeePerGas)
		assert.Equal(t, "1000000000", wire.MaxPriorityFeePerGas)
		assert.Equal(t, "", wire.PaymasterData)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0x01, 0x02, 0x03}), wire.Signature)
	})

	t.Run("failure: relay message surfaces", func(t *testing.T) {
		t.Parallel()

		fixture := &relayFixture{
			healthz:    healthzResponse{ChainID: "80001"},
			handleBody: handleResponse{Message: "boom"},
		}
		client := NewClient(newRelayServer(t, fixture).URL)

		_, err := client.SendUserOperation(context.Background(), types.ChainMumbai, testOperation())
		require.EqualError(t, err, "boom")
	})

	t.Run("failure: missing message defaults", func(t *testing.T) {
		t.Parallel()

		fixture := &relayFixture{
			healthz:    healthzResponse{ChainID: "80001"},
			handleBody: handleResponse{},
		}
		client := NewClient(newRelayServer(t, fixture).URL)

		_, err := client.SendUserOperation(context.Background(), types.ChainMumbai, testOperation())
		require.EqualError(t, err, sdk.DefaultRelayMessage)
	})

	t.Run("failure: unsupported chain never hits the endpoint", func(t *testing.T) {
		t.Parallel()

		fixture := &relayFixture{
			healthz:    healthzResponse{ChainID: "80001"},
			handleBody: handleResponse{TxHash: "0xabc"},
		}
		client := NewClient(newRelayServer(t, fixture).URL)

		_, err := client.SendUserOperation(context.Background(), types.ChainPolygon, testOperation())

		var want *sdk.UnsupportedChainError
		require.ErrorAs(t, err, &want)
		assert.Equal(t, int64(0), fixture.handleCalls.Load())
	})
}

func Test_Client_SimulateUserOperation(t *testing.T) {
	t.Parallel()

	client := NewClient("http://relay.invalid")

	_, err := client.SimulateUserOperation(context.Background(), types.ChainMumbai, testOperation())
	require.ErrorIs(t, err, sdk.ErrSimulationNotImplemented)
}

func Test_Client_GetSupportedChainIDs_MalformedChainID(t *testing.T) {
	t.Parallel()

	fixture := &relayFixture{healthz: healthzResponse{ChainID: "not-a-number"}}
	client := NewClient(newRelayServer(t, fixture).URL)

	_, err := client.GetSupportedChainIDs(context.Background())
	require.ErrorContains(t, err, "malformed chain id")
}

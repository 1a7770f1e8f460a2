package smartpay

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	bundlerRoot string
	funderRoot  string
	rpcURL      string
	chainID     uint64
)

// Execute runs the smartpay CLI.
func Execute() error {
	// Missing .env is fine; flags and ambient env still apply.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "smartpay",
		Short: "Resolve counterfactual contract accounts and relay user operations",
	}

	rootCmd.PersistentFlags().StringVar(&bundlerRoot, "bundler-root", envOr("BUNDLER_ROOT", ""), "Base URL of the user-operation relay")
	rootCmd.PersistentFlags().StringVar(&funderRoot, "funder-root", envOr("FUNDER_ROOT", ""), "Base URL of the funding ledger")
	rootCmd.PersistentFlags().StringVar(&rpcURL, "rpc-url", envOr("RPC_URL", ""), "EVM JSON-RPC endpoint for batch reads")
	rootCmd.PersistentFlags().Uint64Var(&chainID, "chain-id", 80001, "Target chain id")

	rootCmd.AddCommand(
		buildAccountsCmd(),
		buildAccountCmd(),
		buildSendCmd(),
		buildWhitelistCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}

	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

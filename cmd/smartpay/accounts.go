package smartpay

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/MullenglobalCanada/smartpay/types"
)

func buildAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts [owner...]",
		Short: "List deployed and funded contract accounts for one or more owners",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := newResolver()
			if err != nil {
				return err
			}

			owners := make([]common.Address, 0, len(args))
			for _, arg := range args {
				if !common.IsHexAddress(arg) {
					return errors.New("invalid owner address: " + arg)
				}
				owners = append(owners, common.HexToAddress(arg))
			}

			accounts, err := resolver.GetAccountsByOwners(cmd.Context(), types.ChainID(chainID), owners)
			if err != nil {
				return err
			}

			return printJSON(accounts)
		},
	}
}

func buildAccountCmd() *cobra.Command {
	var nonce uint32

	cmd := &cobra.Command{
		Use:   "account [owner]",
		Short: "Project the counterfactual account for an owner at a nonce",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := newResolver()
			if err != nil {
				return err
			}

			if !common.IsHexAddress(args[0]) {
				return errors.New("invalid owner address: " + args[0])
			}

			account, err := resolver.GetAccountByNonce(cmd.Context(), types.ChainID(chainID), common.HexToAddress(args[0]), nonce)
			if err != nil {
				return err
			}

			return printJSON(account)
		},
	}

	cmd.Flags().Uint32Var(&nonce, "nonce", 0, "Account nonce slot to project")

	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

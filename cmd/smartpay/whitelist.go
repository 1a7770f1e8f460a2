package smartpay

import (
	"fmt"

	"github.com/spf13/cobra"
)

func buildWhitelistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whitelist [handle]",
		Short: "Check whitelist status and remaining funding quota for a handle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newFunderClient()
			if err != nil {
				return err
			}

			handle := args[0]
			verified := client.Verify(cmd.Context(), handle)
			remaining := client.RemainingFrequency(cmd.Context(), handle)

			fmt.Printf("handle:    %s\nverified:  %t\nremaining: %d\n", handle, verified, remaining)

			return nil
		},
	}
}

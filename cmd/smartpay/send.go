package smartpay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/MullenglobalCanada/smartpay/types"
)

// userOperationFile is the on-disk shape of a signed user operation: hex
// strings for byte fields, so operations can be copied from wallet
// tooling verbatim.
type userOperationFile struct {
	Sender               common.Address `json:"sender"`
	Nonce                *hexutil.Big   `json:"nonce"`
	InitCode             hexutil.Bytes  `json:"initCode"`
	CallData             hexutil.Bytes  `json:"callData"`
	CallGas              *hexutil.Big   `json:"callGas"`
	VerificationGas      *hexutil.Big   `json:"verificationGas"`
	PreVerificationGas   *hexutil.Big   `json:"preVerificationGas"`
	MaxFeePerGas         *hexutil.Big   `json:"maxFeePerGas"`
	MaxPriorityFeePerGas *hexutil.Big   `json:"maxPriorityFeePerGas"`
	PaymasterData        hexutil.Bytes  `json:"paymasterData"`
	Signature            hexutil.Bytes  `json:"signature"`
}

func (f userOperationFile) toUserOperation() types.UserOperation {
	return types.UserOperation{
		Sender:               f.Sender,
		Nonce:                f.Nonce.ToInt(),
		InitCode:             f.InitCode,
		CallData:             f.CallData,
		CallGas:              f.CallGas.ToInt(),
		VerificationGas:      f.VerificationGas.ToInt(),
		PreVerificationGas:   f.PreVerificationGas.ToInt(),
		MaxFeePerGas:         f.MaxFeePerGas.ToInt(),
		MaxPriorityFeePerGas: f.MaxPriorityFeePerGas.ToInt(),
		PaymasterData:        f.PaymasterData,
		Signature:            f.Signature,
	}
}

func buildSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send [operation.json]",
		Short: "Relay a signed user operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newBundlerClient()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var file userOperationFile
			if err := json.Unmarshal(raw, &file); err != nil {
				return fmt.Errorf("unable to parse user operation file: %w", err)
			}

			hash, err := client.SendUserOperation(cmd.Context(), types.ChainID(chainID), file.toUserOperation())
			if err != nil {
				return err
			}

			fmt.Println(hash)

			return nil
		},
	}
}

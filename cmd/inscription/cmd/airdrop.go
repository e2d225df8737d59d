package cmd

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inscription/types"
	"github.com/meme-bots/go-inscription/utils"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var airdropCmd = &cobra.Command{
	Use:   "airdrop <sol> [address]",
	Short: "Credit SOL to an address, the signing keypair by default",
	Args:  cobra.RangeArgs(1, 2),
	RunE: withInscriber(func(cmd *cobra.Command, inscriber types.InscriberInterface, args []string) error {
		amount, err := decimal.NewFromString(args[0])
		if err != nil {
			return err
		}
		address, err := targetAddress(args[1:])
		if err != nil {
			return err
		}
		lamports := utils.SolToLamports(amount)
		if err := inscriber.Airdrop(address, lamports); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: +%s\n", address, utils.FormatLamports(lamports))
		return nil
	}),
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Print a balance, the signing keypair's by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: withInscriber(func(cmd *cobra.Command, inscriber types.InscriberInterface, args []string) error {
		address, err := targetAddress(args)
		if err != nil {
			return err
		}
		balance, err := inscriber.GetBalance(address)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", address, utils.FormatLamports(balance))
		return nil
	}),
}

var transferCmd = &cobra.Command{
	Use:   "transfer <recipient> <sol> [<recipient> <sol>...]",
	Short: "Send SOL from the signing keypair",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || len(args)%2 != 0 {
			return fmt.Errorf("want recipient and amount pairs, got %d args", len(args))
		}
		return nil
	},
	RunE: withInscriber(func(cmd *cobra.Command, inscriber types.InscriberInterface, args []string) error {
		var bills []*types.TransferBill
		for i := 0; i < len(args); i += 2 {
			amount, err := decimal.NewFromString(args[i+1])
			if err != nil {
				return err
			}
			bills = append(bills, &types.TransferBill{Recipient: args[i], Lamports: utils.SolToLamports(amount)})
		}
		key, err := privateKey()
		if err != nil {
			return err
		}
		sig, err := inscriber.TransferBatch(bills, key)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), sig)
		return nil
	}),
}

func targetAddress(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	key, err := solana.PrivateKeyFromSolanaKeygenFile(keypairPath)
	if err != nil {
		return "", err
	}
	return key.PublicKey().String(), nil
}

func init() {
	rootCmd.AddCommand(airdropCmd, balanceCmd, transferCmd)
}

package cmd

import (
	"fmt"

	"github.com/meme-bots/go-inscription/types"
	"github.com/spf13/cobra"
)

var authorityCmd = &cobra.Command{
	Use:   "authority",
	Short: "Manage update authorities",
}

var authorityAddCmd = &cobra.Command{
	Use:   "add <inscription> <authority>",
	Short: "Add an update authority",
	Args:  cobra.ExactArgs(2),
	RunE: withInscriber(func(cmd *cobra.Command, inscriber types.InscriberInterface, args []string) error {
		key, err := privateKey()
		if err != nil {
			return err
		}
		if err := inscriber.AddAuthority(args[0], args[1], key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", args[1])
		return nil
	}),
}

var authorityRemoveCmd = &cobra.Command{
	Use:   "remove <inscription>",
	Short: "Remove the signing keypair from the update authorities",
	Args:  cobra.ExactArgs(1),
	RunE: withInscriber(func(cmd *cobra.Command, inscriber types.InscriberInterface, args []string) error {
		key, err := privateKey()
		if err != nil {
			return err
		}
		return inscriber.RemoveAuthority(args[0], key)
	}),
}

var closeCmd = &cobra.Command{
	Use:   "close <inscription>",
	Short: "Close an inscription and reclaim its rent",
	Args:  cobra.ExactArgs(1),
	RunE: withInscriber(func(cmd *cobra.Command, inscriber types.InscriberInterface, args []string) error {
		key, err := privateKey()
		if err != nil {
			return err
		}
		return inscriber.CloseInscription(args[0], tag, key)
	}),
}

func init() {
	rootCmd.AddCommand(authorityCmd, closeCmd)
	authorityCmd.AddCommand(authorityAddCmd, authorityRemoveCmd)
	closeCmd.Flags().StringVarP(&tag, "tag", "t", "", "Close only this associated inscription.")
}

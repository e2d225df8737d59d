package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/meme-bots/go-inscription/types"
	"github.com/meme-bots/go-inscription/utils"
	"github.com/spf13/cobra"
)

var costCmd = &cobra.Command{
	Use:   "cost <file|bytes>",
	Short: "Estimate the lamports an inscription takes",
	Args:  cobra.ExactArgs(1),
	RunE: withInscriber(func(cmd *cobra.Command, inscriber types.InscriberInterface, args []string) error {
		size, err := strconv.Atoi(args[0])
		if err != nil {
			stat, statErr := os.Stat(args[0])
			if statErr != nil {
				return statErr
			}
			size = int(stat.Size())
		}
		cost := inscriber.Cost(size)
		if jsonOutput {
			return printJSON(cmd, cost)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", utils.PrettySize(cost.Size), utils.FormatLamports(cost.Lamports))
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(costCmd)
	costCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the estimate as JSON.")
}

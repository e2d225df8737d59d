package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/meme-bots/go-inscription/types"
	"github.com/meme-bots/go-inscription/utils"
	"github.com/spf13/cobra"
)

var (
	compress   bool
	jsonOutput bool
	tag        string
	parent     string
	dryRun     bool
	shard      int
)

var inscribeCmd = &cobra.Command{
	Use:   "inscribe <file>",
	Short: "Inscribe a file",
	Args:  cobra.ExactArgs(1),
	RunE: withInscriber(func(cmd *cobra.Command, inscriber types.InscriberInterface, args []string) error {
		payload, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		key, err := privateKey()
		if err != nil {
			return err
		}
		resp, err := inscriber.Inscribe(&types.InscribeRequest{
			Payload:  payload,
			Compress: compress,
			Shard:    shard,
			Tag:      tag,
			Parent:   parent,
			DryRun:   dryRun,
		}, key)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd, resp)
		}

		out := cmd.OutOrStdout()
		if dryRun {
			fmt.Fprintln(out, strings.Join(resp.Instructions, "\n"))
		}
		fmt.Fprintf(out, "inscription: %s\nmetadata:    %s\n", resp.InscriptionAccount, resp.MetadataAccount)
		fmt.Fprintf(out, "size:        %s (compressed %t)\n", utils.PrettySize(resp.Size), resp.Compressed)
		fmt.Fprintf(out, "txs:         %d\n", resp.Transactions)
		if !dryRun && parent == "" {
			fmt.Fprintf(out, "rank:        %d\n", resp.Rank)
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(inscribeCmd)
	inscribeCmd.Flags().BoolVar(&compress, "compress", false, "Compress the payload with brotli.")
	inscribeCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON.")
	inscribeCmd.Flags().StringVarP(&tag, "tag", "t", "", "Associated inscription tag, used with --parent.")
	inscribeCmd.Flags().StringVarP(&parent, "parent", "p", "", "Inscription to attach the payload to.")
	inscribeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the instructions without sending them.")
	inscribeCmd.Flags().IntVarP(&shard, "shard", "s", -1, "Shard for the rank, random when negative.")
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/meme-bots/go-inscription/sol"
	"github.com/meme-bots/go-inscription/types"
	"github.com/meme-bots/go-inscription/utils"
	"github.com/spf13/cobra"
)

var (
	dump       bool
	outputPath string
	decompress bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <inscription>",
	Short: "Print an inscription's metadata",
	Args:  cobra.ExactArgs(1),
	RunE: withInscriber(func(cmd *cobra.Command, inscriber types.InscriberInterface, args []string) error {
		info, err := inscriber.GetInscription(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch {
		case dump:
			spew.Fdump(out, info)
		case jsonOutput:
			return printJSON(cmd, info)
		default:
			fmt.Fprintf(out, "inscription: %s\nmetadata:    %s\n", info.InscriptionAccount, info.MetadataAccount)
			fmt.Fprintf(out, "type:        %s %s\n", info.Key, info.DataType)
			fmt.Fprintf(out, "size:        %s\n", utils.PrettySize(info.Size))
			if info.Ranked {
				fmt.Fprintf(out, "rank:        %d\n", info.Rank)
			}
			fmt.Fprintf(out, "authorities: %s\n", strings.Join(info.UpdateAuthorities, ", "))
			if len(info.AssociatedTags) > 0 {
				fmt.Fprintf(out, "associated:  %s\n", strings.Join(info.AssociatedTags, ", "))
			}
			if info.Mint != "" {
				fmt.Fprintf(out, "mint:        %s\n", info.Mint)
			}
		}
		return nil
	}),
}

var downloadCmd = &cobra.Command{
	Use:   "download <inscription>",
	Short: "Save an inscription's data",
	Args:  cobra.ExactArgs(1),
	RunE: withInscriber(func(cmd *cobra.Command, inscriber types.InscriberInterface, args []string) error {
		data, err := inscriber.GetInscriptionData(args[0])
		if err != nil {
			return err
		}
		if decompress {
			if data, err = sol.Decompress(data); err != nil {
				return fmt.Errorf("decompress: %w", err)
			}
		}
		if outputPath == "" || outputPath == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return os.WriteFile(outputPath, data, 0o644)
	}),
}

func init() {
	rootCmd.AddCommand(fetchCmd, downloadCmd)
	fetchCmd.Flags().BoolVar(&dump, "dump", false, "Dump the record with spew.")
	fetchCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the record as JSON.")
	downloadCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file, stdout when empty.")
	downloadCmd.Flags().BoolVar(&decompress, "decompress", false, "Brotli decompress the data.")
}

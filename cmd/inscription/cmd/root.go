// Package cmd contains the inscription command line tool.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	goinscription "github.com/meme-bots/go-inscription"
	"github.com/meme-bots/go-inscription/types"
	"github.com/spf13/cobra"
)

var (
	ledgerPath  string
	keypairPath string
	programID   string
	logLevel    string
	memory      bool
	chunkSize   int
)

func init() {
	home, _ := os.UserHomeDir()
	rootCmd.PersistentFlags().StringVarP(&ledgerPath, "ledger", "l", ".inscription/ledger", "Path to the ledger directory.")
	rootCmd.PersistentFlags().StringVarP(&keypairPath, "keypair", "k", filepath.Join(home, ".config", "solana", "id.json"), "Path to the signing keypair.")
	rootCmd.PersistentFlags().StringVar(&programID, "program-id", "", "Inscription program id.")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level.")
	rootCmd.PersistentFlags().BoolVar(&memory, "memory", false, "Keep the ledger in memory.")
	rootCmd.PersistentFlags().IntVar(&chunkSize, "chunk-size", types.DefaultChunkSize, "Bytes written per transaction.")
}

var rootCmd = &cobra.Command{
	Use:           "inscription",
	Short:         "Inscribe data into program owned accounts",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newInscriber(cmd *cobra.Command) (types.InscriberInterface, error) {
	return goinscription.NewInscriber(cmd.Context(), types.Config{
		ProgramID: programID,
		Ledger:    ledgerPath,
		Memory:    memory,
		ChunkSize: chunkSize,
		LogLevel:  logLevel,
	}, nil)
}

// withInscriber opens the ledger for the duration of run.
func withInscriber(run func(cmd *cobra.Command, inscriber types.InscriberInterface, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if cmd.Context() == nil {
			cmd.SetContext(context.Background())
		}
		inscriber, err := newInscriber(cmd)
		if err != nil {
			return err
		}
		defer inscriber.Close()
		return run(cmd, inscriber, args)
	}
}

func privateKey() (string, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(keypairPath)
	if err != nil {
		return "", fmt.Errorf("keypair %s: %w", keypairPath, err)
	}
	return key.String(), nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

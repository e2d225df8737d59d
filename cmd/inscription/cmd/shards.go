package cmd

import (
	"fmt"
	"strconv"

	"github.com/meme-bots/go-inscription/types"
	"github.com/spf13/cobra"
)

var shardsCmd = &cobra.Command{
	Use:   "shards",
	Short: "Manage the rank counters",
}

var shardsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create every missing shard",
	Args:  cobra.NoArgs,
	RunE: withInscriber(func(cmd *cobra.Command, inscriber types.InscriberInterface, args []string) error {
		key, err := privateKey()
		if err != nil {
			return err
		}
		created, err := inscriber.CreateShards(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %d shards\n", created)
		return nil
	}),
}

var shardsFetchCmd = &cobra.Command{
	Use:   "fetch <shard>",
	Short: "Print a shard and its counter",
	Args:  cobra.ExactArgs(1),
	RunE: withInscriber(func(cmd *cobra.Command, inscriber types.InscriberInterface, args []string) error {
		n, err := strconv.ParseUint(args[0], 10, 8)
		if err != nil {
			return err
		}
		shard, err := inscriber.GetShard(uint8(n))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "shard %d at %s: %d inscriptions, next rank %d\n",
			shard.ShardNumber, shard.Address, shard.Count, shard.Count*types.ShardCount+uint64(shard.ShardNumber))
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(shardsCmd)
	shardsCmd.AddCommand(shardsCreateCmd, shardsFetchCmd)
}

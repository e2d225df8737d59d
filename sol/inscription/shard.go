package inscription

import (
	"math/bits"

	"github.com/meme-bots/go-inscription/types"
)

// AssignRank hands out the next rank of this shard and advances its counter.
// Ranks interleave across shards: count*ShardCount + shard number.
func (s *InscriptionShard) AssignRank() (uint64, error) {
	hi, base := bits.Mul64(s.Count, types.ShardCount)
	if hi != 0 {
		return 0, types.ErrNumericalOverflow
	}
	rank, carry := bits.Add64(base, uint64(s.ShardNumber), 0)
	if carry != 0 {
		return 0, types.ErrNumericalOverflow
	}
	count, carry := bits.Add64(s.Count, 1, 0)
	if carry != 0 {
		return 0, types.ErrNumericalOverflow
	}
	s.Count = count
	return rank, nil
}

package sol

import (
	"context"
	"fmt"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inscription/sol/inscription"
)

// cachedAddress memoizes program derived addresses, which cost a hash search
// per lookup.
func cachedAddress(cached *cache.Cache[[]byte], key string, find func() (solana.PublicKey, error)) (solana.PublicKey, error) {
	ctx := context.Background()

	data, err := cached.Get(ctx, key)
	if err == nil && len(data) == solana.PublicKeyLength {
		return solana.PublicKeyFromBytes(data), nil
	}

	address, err := find()
	if err != nil {
		return solana.PublicKey{}, err
	}
	_ = cached.Set(ctx, key, address.Bytes())
	return address, nil
}

func (s *Inscriber) metadataAddress(inscriptionAccount solana.PublicKey) (solana.PublicKey, error) {
	return cachedAddress(s.cache, "metadata:"+inscriptionAccount.String(), func() (solana.PublicKey, error) {
		address, _, err := inscription.FindInscriptionMetadataAddress(s.programID, inscriptionAccount)
		return address, err
	})
}

func (s *Inscriber) shardAddress(shardNumber uint8) (solana.PublicKey, error) {
	return cachedAddress(s.cache, fmt.Sprintf("shard:%d", shardNumber), func() (solana.PublicKey, error) {
		address, _, err := inscription.FindShardAddress(s.programID, shardNumber)
		return address, err
	})
}

func (s *Inscriber) associatedAddress(inscriptionAccount solana.PublicKey, tag string) (solana.PublicKey, error) {
	metadata, err := s.metadataAddress(inscriptionAccount)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return cachedAddress(s.cache, "associated:"+metadata.String()+":"+tag, func() (solana.PublicKey, error) {
		address, _, err := inscription.FindAssociatedInscriptionAddress(s.programID, tag, metadata)
		return address, err
	})
}

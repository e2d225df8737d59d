package inscription

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inscription/sol/host"
	"github.com/meme-bots/go-inscription/types"
)

func metadataSeeds(programID, inscription solana.PublicKey) [][]byte {
	return [][]byte{[]byte(types.Prefix), programID[:], inscription[:]}
}

func mintInscriptionSeeds(programID, mint solana.PublicKey) [][]byte {
	return [][]byte{[]byte(types.Prefix), programID[:], mint[:]}
}

func shardSeeds(programID solana.PublicKey, shardNumber uint8) [][]byte {
	return [][]byte{[]byte(types.Prefix), []byte(types.ShardPrefix), programID[:], {shardNumber}}
}

func associatedSeeds(tag string, metadata solana.PublicKey) [][]byte {
	return [][]byte{[]byte(types.Prefix), []byte(types.Association), []byte(tag), metadata[:]}
}

func delegateSeeds(programID, collectionMint, updateAuthority, delegate solana.PublicKey) [][]byte {
	return [][]byte{[]byte(types.Prefix), programID[:], collectionMint[:], updateAuthority[:], delegate[:]}
}

func withBump(seeds [][]byte, bump uint8) [][]byte {
	out := make([][]byte, 0, len(seeds)+1)
	out = append(out, seeds...)
	return append(out, []byte{bump})
}

func FindInscriptionMetadataAddress(programID, inscription solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(metadataSeeds(programID, inscription), programID)
}

func FindMintInscriptionAddress(programID, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(mintInscriptionSeeds(programID, mint), programID)
}

func FindShardAddress(programID solana.PublicKey, shardNumber uint8) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(shardSeeds(programID, shardNumber), programID)
}

func FindAssociatedInscriptionAddress(programID solana.PublicKey, tag string, metadata solana.PublicKey) (solana.PublicKey, uint8, error) {
	if err := validateTag(tag); err != nil {
		return solana.PublicKey{}, 0, err
	}
	return solana.FindProgramAddress(associatedSeeds(tag, metadata), programID)
}

func FindDelegateRecordAddress(programID, collectionMint, updateAuthority, delegate solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(delegateSeeds(programID, collectionMint, updateAuthority, delegate), programID)
}

// assertDerivation returns the canonical bump when acct is the address
// derived from seeds, and fail otherwise.
func assertDerivation(programID solana.PublicKey, acct *host.AccountInfo, seeds [][]byte, fail error) (uint8, error) {
	key, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil || !key.Equals(acct.Key) {
		return 0, fmt.Errorf("%s: %w", acct.Key, fail)
	}
	return bump, nil
}

func validateTag(tag string) error {
	if tag == "" {
		return types.ErrAssociationTagCannotBeBlank
	}
	if len(tag) > types.MaxTagLength {
		return types.ErrAssociationTagTooLong
	}
	return nil
}

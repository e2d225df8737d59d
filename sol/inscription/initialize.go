package inscription

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/meme-bots/go-inscription/sol/common"
	"github.com/meme-bots/go-inscription/sol/host"
	"github.com/meme-bots/go-inscription/types"
)

func processInitialize(ic *host.InvokeContext) error {
	a, err := parseInitializeAccounts(ic)
	if err != nil {
		return err
	}
	programID := ic.ProgramID

	if err := assertUninitialized(a.inscription); err != nil {
		return err
	}
	if err := assertUninitialized(a.metadata); err != nil {
		return err
	}
	seeds := metadataSeeds(programID, a.inscription.Key)
	bump, err := assertDerivation(programID, a.metadata, seeds, types.ErrMetadataDerivedKeyInvalid)
	if err != nil {
		return err
	}
	authority, err := resolveAuthority(a.payer, a.authority)
	if err != nil {
		return err
	}
	if err := assertSystemProgram(a.systemProgram); err != nil {
		return err
	}

	if err := createOrAllocate(ic, a.inscription, a.payer, 0, nil); err != nil {
		return err
	}

	metadata := NewInscriptionMetadata(types.KeyInscriptionMetadataAccount, a.inscription.Key, bump)
	metadata.UpdateAuthorities = []solana.PublicKey{authority.Key}
	if a.shard != nil {
		if metadata.InscriptionRank, err = assignShardRank(ic, a.shard); err != nil {
			return err
		}
	}
	return createRecord(ic, a.metadata, a.payer, metadata, withBump(seeds, bump))
}

func processInitializeFromMint(ic *host.InvokeContext) error {
	a, err := parseInitializeFromMintAccounts(ic)
	if err != nil {
		return err
	}
	programID := ic.ProgramID

	if err := assertUninitialized(a.mintInscription); err != nil {
		return err
	}
	if err := assertUninitialized(a.metadata); err != nil {
		return err
	}
	if err := assertOwnedBy(a.tokenMetadata, common.TokenMetadataProgramID, types.ErrIncorrectOwner); err != nil {
		return err
	}
	if err := assertOwnedByAny(a.mint, common.SplTokenProgramIDs, types.ErrIncorrectOwner); err != nil {
		return err
	}
	if _, err := decodeMint(a.mint); err != nil {
		return err
	}

	tokenMetadata, err := common.MetadataSafeDeserialize(a.tokenMetadata.Data)
	if err != nil {
		return err
	}
	if !tokenMetadata.Mint.Equals(a.mint.Key) {
		return types.ErrMintMismatch
	}
	if !tokenMetadata.IsNonFungible() {
		return types.ErrInvalidTokenStandard
	}
	if a.tokenAccount != nil {
		if err := assertHoldsMint(a.tokenAccount, a.mint.Key); err != nil {
			return err
		}
	}

	inscriptionSeeds := mintInscriptionSeeds(programID, a.mint.Key)
	inscriptionBump, err := assertDerivation(programID, a.mintInscription, inscriptionSeeds, types.ErrDerivedKeyInvalid)
	if err != nil {
		return err
	}
	seeds := metadataSeeds(programID, a.mintInscription.Key)
	bump, err := assertDerivation(programID, a.metadata, seeds, types.ErrDerivedKeyInvalid)
	if err != nil {
		return err
	}

	authority, err := resolveAuthority(a.payer, a.authority)
	if err != nil {
		return err
	}
	updateAuthorities := []solana.PublicKey{tokenMetadata.UpdateAuthority}
	collection, verified := tokenMetadata.VerifiedCollection()
	if a.delegateRecord != nil && verified {
		delegate := delegateSeeds(programID, collection, tokenMetadata.UpdateAuthority, authority.Key)
		if _, err := assertDerivation(programID, a.delegateRecord, delegate, types.ErrInvalidDelegate); err != nil {
			return err
		}
		if err := assertOwnedBy(a.delegateRecord, programID, types.ErrInvalidDelegate); err != nil {
			return err
		}
		if !authority.Key.Equals(tokenMetadata.UpdateAuthority) {
			updateAuthorities = append(updateAuthorities, authority.Key)
		}
	} else if !tokenMetadata.UpdateAuthority.Equals(authority.Key) {
		return fmt.Errorf("%s: %w", authority.Key, types.ErrInvalidAuthority)
	}

	if err := assertSystemProgram(a.systemProgram); err != nil {
		return err
	}

	if err := createOrAllocate(ic, a.mintInscription, a.payer, 0, withBump(inscriptionSeeds, inscriptionBump)); err != nil {
		return err
	}

	metadata := NewInscriptionMetadata(types.KeyMintInscriptionMetadataAccount, a.mintInscription.Key, bump)
	metadata.InscriptionBump = &inscriptionBump
	metadata.UpdateAuthorities = updateAuthorities
	if metadata.InscriptionRank, err = assignShardRank(ic, a.shard); err != nil {
		return err
	}
	return createRecord(ic, a.metadata, a.payer, metadata, withBump(seeds, bump))
}

func processCreateShard(ic *host.InvokeContext, args *CreateShardArgs) error {
	a, err := parseCreateShardAccounts(ic)
	if err != nil {
		return err
	}
	programID := ic.ProgramID

	if err := assertUninitialized(a.shard); err != nil {
		return err
	}
	if args.ShardNumber >= types.ShardCount {
		return fmt.Errorf("shard %d: %w", args.ShardNumber, types.ErrInvalidShardAccount)
	}
	seeds := shardSeeds(programID, args.ShardNumber)
	bump, err := assertDerivation(programID, a.shard, seeds, types.ErrDerivedKeyInvalid)
	if err != nil {
		return err
	}
	if err := assertSigner(a.payer); err != nil {
		return err
	}
	if err := assertSystemProgram(a.systemProgram); err != nil {
		return err
	}

	shard := &InscriptionShard{
		Key:         types.KeyInscriptionShardAccount,
		Bump:        bump,
		ShardNumber: args.ShardNumber,
	}
	data, err := shard.Serialize()
	if err != nil {
		return err
	}
	if err := createOrAllocate(ic, a.shard, a.payer, len(data), withBump(seeds, bump)); err != nil {
		return err
	}
	copy(a.shard.Data, data)
	return nil
}

// assignShardRank verifies a shard account, takes its next rank and writes
// the advanced counter back in place.
func assignShardRank(ic *host.InvokeContext, acct *host.AccountInfo) (uint64, error) {
	if !acct.IsOwnedBy(ic.ProgramID) || acct.DataIsEmpty() {
		return 0, fmt.Errorf("%s: %w", acct.Key, types.ErrInvalidShardAccount)
	}
	shard, err := DeserializeInscriptionShard(acct.Data)
	if err != nil {
		return 0, err
	}
	bump, err := assertDerivation(ic.ProgramID, acct, shardSeeds(ic.ProgramID, shard.ShardNumber), types.ErrDerivedKeyInvalid)
	if err != nil {
		return 0, err
	}
	if bump != shard.Bump {
		return 0, fmt.Errorf("%s: stored bump %d: %w", acct.Key, shard.Bump, types.ErrDerivedKeyInvalid)
	}
	rank, err := shard.AssignRank()
	if err != nil {
		return 0, err
	}
	data, err := shard.Serialize()
	if err != nil {
		return 0, err
	}
	copy(acct.Data, data)
	return rank, nil
}

func createRecord(ic *host.InvokeContext, acct, payer *host.AccountInfo, m *InscriptionMetadata, signerSeeds [][]byte) error {
	data, err := m.Serialize()
	if err != nil {
		return err
	}
	if err := createOrAllocate(ic, acct, payer, len(data), signerSeeds); err != nil {
		return err
	}
	copy(acct.Data, data)
	return nil
}

func decodeMint(acct *host.AccountInfo) (*token.Mint, error) {
	var mint token.Mint
	if err := mint.UnmarshalWithDecoder(bin.NewBinDecoder(acct.Data)); err != nil {
		return nil, fmt.Errorf("mint %s: %v: %w", acct.Key, err, types.ErrDeserialize)
	}
	if !mint.IsInitialized {
		return nil, fmt.Errorf("mint %s: %w", acct.Key, types.ErrNotInitialized)
	}
	return &mint, nil
}

// assertHoldsMint requires a token account of mint with a positive balance.
func assertHoldsMint(acct *host.AccountInfo, mint solana.PublicKey) error {
	if err := assertOwnedByAny(acct, common.SplTokenProgramIDs, types.ErrIncorrectOwner); err != nil {
		return err
	}
	var account token.Account
	if err := account.UnmarshalWithDecoder(bin.NewBinDecoder(acct.Data)); err != nil {
		return fmt.Errorf("token account %s: %v: %w", acct.Key, err, types.ErrDeserialize)
	}
	if !account.Mint.Equals(mint) {
		return fmt.Errorf("token account %s: %w", acct.Key, types.ErrMintMismatch)
	}
	if account.Amount == 0 {
		return fmt.Errorf("token account %s: %w", acct.Key, types.ErrNotEnoughTokens)
	}
	return nil
}

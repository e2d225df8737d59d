package inscription

import (
	"fmt"

	"github.com/meme-bots/go-inscription/sol/common"
	"github.com/meme-bots/go-inscription/sol/host"
	"github.com/meme-bots/go-inscription/types"
)

func loadAuthorityTarget(ic *host.InvokeContext, a authorityAccounts) (*InscriptionMetadata, *host.AccountInfo, error) {
	if err := assertInitialized(ic.ProgramID, a.metadata, true); err != nil {
		return nil, nil, err
	}
	metadata, err := DeserializeInscriptionMetadata(a.metadata.Data)
	if err != nil {
		return nil, nil, err
	}
	bump, err := assertDerivation(ic.ProgramID, a.metadata, metadataSeeds(ic.ProgramID, metadata.InscriptionAccount), types.ErrDerivedKeyInvalid)
	if err != nil {
		return nil, nil, err
	}
	if bump != metadata.Bump {
		return nil, nil, fmt.Errorf("%s: stored bump %d: %w", a.metadata.Key, metadata.Bump, types.ErrDerivedKeyInvalid)
	}
	authority, err := resolveAuthority(a.payer, a.authority)
	if err != nil {
		return nil, nil, err
	}
	if err := metadata.checkAuthority(authority.Key); err != nil {
		return nil, nil, err
	}
	if err := assertSystemProgram(a.systemProgram); err != nil {
		return nil, nil, err
	}
	return metadata, authority, nil
}

func processAddAuthority(ic *host.InvokeContext, args *AddAuthorityArgs) error {
	a, err := parseAuthorityAccounts(ic)
	if err != nil {
		return err
	}
	metadata, _, err := loadAuthorityTarget(ic, a)
	if err != nil {
		return err
	}
	if err := metadata.AddAuthority(args.NewAuthority); err != nil {
		return err
	}
	return writeMetadata(ic, a.metadata, a.payer, metadata)
}

func processRemoveAuthority(ic *host.InvokeContext) error {
	a, err := parseAuthorityAccounts(ic)
	if err != nil {
		return err
	}
	metadata, authority, err := loadAuthorityTarget(ic, a)
	if err != nil {
		return err
	}
	if err := metadata.RemoveAuthority(authority.Key); err != nil {
		return err
	}
	return writeMetadata(ic, a.metadata, a.payer, metadata)
}

func processInitializeAssociatedInscription(ic *host.InvokeContext, args *AssociateArgs) error {
	a, err := parseAssociateAccounts(ic)
	if err != nil {
		return err
	}
	programID := ic.ProgramID

	if err := assertOwnedBy(a.inscription, programID, types.ErrIncorrectOwner); err != nil {
		return err
	}
	if err := assertUninitialized(a.associated); err != nil {
		return err
	}
	if err := assertInitialized(programID, a.metadata, true); err != nil {
		return err
	}
	metadata, err := DeserializeInscriptionMetadata(a.metadata.Data)
	if err != nil {
		return err
	}
	if err := verifyTarget(ic, a.inscription, a.metadata, metadata, nil); err != nil {
		return err
	}
	if err := validateTag(args.AssociationTag); err != nil {
		return err
	}
	seeds := associatedSeeds(args.AssociationTag, a.metadata.Key)
	bump, err := assertDerivation(programID, a.associated, seeds, types.ErrDerivedKeyInvalid)
	if err != nil {
		return err
	}
	authority, err := resolveAuthority(a.payer, a.authority)
	if err != nil {
		return err
	}
	if err := metadata.checkAuthority(authority.Key); err != nil {
		return err
	}
	if err := assertSystemProgram(a.systemProgram); err != nil {
		return err
	}

	if err := createOrAllocate(ic, a.associated, a.payer, 0, withBump(seeds, bump)); err != nil {
		return err
	}
	metadata.AssociatedInscriptions = append(metadata.AssociatedInscriptions, AssociatedInscription{
		Tag:      args.AssociationTag,
		Bump:     bump,
		DataType: types.DataTypeUninitialized,
	})
	return writeMetadata(ic, a.metadata, a.payer, metadata)
}

func processSetMint(ic *host.InvokeContext) error {
	a, err := parseSetMintAccounts(ic)
	if err != nil {
		return err
	}
	programID := ic.ProgramID

	if err := assertInitialized(programID, a.mintInscription, false); err != nil {
		return err
	}
	if err := assertInitialized(programID, a.metadata, true); err != nil {
		return err
	}
	if err := assertOwnedByAny(a.mint, common.SplTokenProgramIDs, types.ErrIncorrectOwner); err != nil {
		return err
	}
	inscriptionBump, err := assertDerivation(programID, a.mintInscription, mintInscriptionSeeds(programID, a.mint.Key), types.ErrDerivedKeyInvalid)
	if err != nil {
		return err
	}
	bump, err := assertDerivation(programID, a.metadata, metadataSeeds(programID, a.mintInscription.Key), types.ErrDerivedKeyInvalid)
	if err != nil {
		return err
	}
	if err := assertSigner(a.payer); err != nil {
		return err
	}
	if err := assertSystemProgram(a.systemProgram); err != nil {
		return err
	}

	metadata, err := DeserializeInscriptionMetadata(a.metadata.Data)
	if err != nil {
		return err
	}
	if metadata.Key != types.KeyMintInscriptionMetadataAccount {
		return fmt.Errorf("%s is %s: %w", a.metadata.Key, metadata.Key, types.ErrInvalidInscriptionMetadataAccount)
	}
	if metadata.Bump != bump || metadata.InscriptionBump == nil || *metadata.InscriptionBump != inscriptionBump {
		return fmt.Errorf("%s: stored bumps: %w", a.metadata.Key, types.ErrDerivedKeyInvalid)
	}
	if metadata.Mint != nil {
		return fmt.Errorf("mint already set to %s: %w", metadata.Mint, types.ErrAlreadyInitialized)
	}

	mint := a.mint.Key
	metadata.Mint = &mint
	return writeMetadata(ic, a.metadata, a.payer, metadata)
}

// processDelegate records that delegate may inscribe members of a collection
// on behalf of its update authority. The record holds no data.
func processDelegate(ic *host.InvokeContext) error {
	a, err := parseDelegateAccounts(ic)
	if err != nil {
		return err
	}
	programID := ic.ProgramID

	if err := assertSigner(a.payer); err != nil {
		return err
	}
	if err := assertSigner(a.authority); err != nil {
		return err
	}
	if err := assertOwnedBy(a.collectionMetadata, common.TokenMetadataProgramID, types.ErrIncorrectOwner); err != nil {
		return err
	}
	if err := assertOwnedByAny(a.collectionMint, common.SplTokenProgramIDs, types.ErrIncorrectOwner); err != nil {
		return err
	}
	if err := assertSystemProgram(a.systemProgram); err != nil {
		return err
	}

	collection, err := common.MetadataSafeDeserialize(a.collectionMetadata.Data)
	if err != nil {
		return err
	}
	if !collection.UpdateAuthority.Equals(a.authority.Key) {
		return fmt.Errorf("%s: %w", a.authority.Key, types.ErrInvalidAuthority)
	}
	if !collection.Mint.Equals(a.collectionMint.Key) {
		return types.ErrMintMismatch
	}

	if err := assertUninitialized(a.delegateRecord); err != nil {
		return err
	}
	seeds := delegateSeeds(programID, a.collectionMint.Key, a.authority.Key, a.delegate.Key)
	bump, err := assertDerivation(programID, a.delegateRecord, seeds, types.ErrDerivedKeyInvalid)
	if err != nil {
		return err
	}
	return createOrAllocate(ic, a.delegateRecord, a.payer, 0, withBump(seeds, bump))
}

package inscription

import (
	"github.com/gagliardetto/solana-go"
)

func newInstruction(programID solana.PublicKey, kind uint8, args InstructionArgs, metas ...*solana.AccountMeta) *Instruction {
	return &Instruction{
		programID:        programID,
		Kind:             kind,
		Args:             args,
		AccountMetaSlice: metas,
	}
}

// optionalMeta stands in the program id for an absent account.
func optionalMeta(programID, key solana.PublicKey, writable, signer bool) *solana.AccountMeta {
	if key.IsZero() {
		return solana.Meta(programID)
	}
	return solana.NewAccountMeta(key, writable, signer)
}

// NewInitializeInstruction creates an inscription at the freshly generated
// inscription keypair. A nil shard leaves the inscription unranked and a zero
// authority lets the payer act as the first authority.
func NewInitializeInstruction(programID, inscription, payer, authority solana.PublicKey, shard *uint8) (*Instruction, error) {
	metadata, _, err := FindInscriptionMetadataAddress(programID, inscription)
	if err != nil {
		return nil, err
	}
	shardMeta := solana.Meta(programID)
	if shard != nil {
		shardAddress, _, err := FindShardAddress(programID, *shard)
		if err != nil {
			return nil, err
		}
		shardMeta = solana.Meta(shardAddress).WRITE()
	}
	return newInstruction(programID, InstructionInitialize, &EmptyArgs{},
		solana.Meta(inscription).WRITE().SIGNER(),
		solana.Meta(metadata).WRITE(),
		shardMeta,
		solana.Meta(payer).WRITE().SIGNER(),
		optionalMeta(programID, authority, false, true),
		solana.Meta(solana.SystemProgramID),
	), nil
}

type InitializeFromMintParams struct {
	Mint          solana.PublicKey
	TokenMetadata solana.PublicKey
	// TokenAccount, Authority and DelegateRecord may be left zero.
	TokenAccount   solana.PublicKey
	Authority      solana.PublicKey
	DelegateRecord solana.PublicKey
	Payer          solana.PublicKey
	Shard          uint8
}

func NewInitializeFromMintInstruction(programID solana.PublicKey, p InitializeFromMintParams) (*Instruction, error) {
	mintInscription, _, err := FindMintInscriptionAddress(programID, p.Mint)
	if err != nil {
		return nil, err
	}
	metadata, _, err := FindInscriptionMetadataAddress(programID, mintInscription)
	if err != nil {
		return nil, err
	}
	shard, _, err := FindShardAddress(programID, p.Shard)
	if err != nil {
		return nil, err
	}
	return newInstruction(programID, InstructionInitializeFromMint, &EmptyArgs{},
		solana.Meta(mintInscription).WRITE(),
		solana.Meta(metadata).WRITE(),
		solana.Meta(p.Mint),
		solana.Meta(p.TokenMetadata),
		optionalMeta(programID, p.TokenAccount, false, false),
		solana.Meta(shard).WRITE(),
		solana.Meta(p.Payer).WRITE().SIGNER(),
		optionalMeta(programID, p.Authority, false, true),
		optionalMeta(programID, p.DelegateRecord, false, false),
		solana.Meta(solana.SystemProgramID),
	), nil
}

// dataMetas lays out the accounts shared by the data instructions. With a tag
// the first account is the associated inscription of inscription.
func dataMetas(programID, inscription, payer, authority solana.PublicKey, tag string) ([]*solana.AccountMeta, error) {
	metadata, _, err := FindInscriptionMetadataAddress(programID, inscription)
	if err != nil {
		return nil, err
	}
	target := inscription
	if tag != "" {
		if target, _, err = FindAssociatedInscriptionAddress(programID, tag, metadata); err != nil {
			return nil, err
		}
	}
	return []*solana.AccountMeta{
		solana.Meta(target).WRITE(),
		solana.Meta(metadata).WRITE(),
		solana.Meta(payer).WRITE().SIGNER(),
		optionalMeta(programID, authority, false, true),
		solana.Meta(solana.SystemProgramID),
	}, nil
}

func newDataInstruction(programID solana.PublicKey, kind uint8, args InstructionArgs, inscription, payer, authority solana.PublicKey, tag string) (*Instruction, error) {
	metas, err := dataMetas(programID, inscription, payer, authority, tag)
	if err != nil {
		return nil, err
	}
	return newInstruction(programID, kind, args, metas...), nil
}

func NewCloseInstruction(programID, inscription, payer, authority solana.PublicKey, tag string) (*Instruction, error) {
	return newDataInstruction(programID, InstructionClose, &TagArgs{AssociatedTag: optionalTag(tag)}, inscription, payer, authority, tag)
}

func NewWriteDataInstruction(programID, inscription, payer, authority solana.PublicKey, tag string, offset uint64, value []byte) (*Instruction, error) {
	args := &WriteDataArgs{AssociatedTag: optionalTag(tag), Offset: offset, Value: value}
	return newDataInstruction(programID, InstructionWriteData, args, inscription, payer, authority, tag)
}

func NewClearDataInstruction(programID, inscription, payer, authority solana.PublicKey, tag string) (*Instruction, error) {
	return newDataInstruction(programID, InstructionClearData, &TagArgs{AssociatedTag: optionalTag(tag)}, inscription, payer, authority, tag)
}

func NewAllocateInstruction(programID, inscription, payer, authority solana.PublicKey, tag string, targetSize uint64) (*Instruction, error) {
	args := &AllocateArgs{AssociatedTag: optionalTag(tag), TargetSize: targetSize}
	return newDataInstruction(programID, InstructionAllocate, args, inscription, payer, authority, tag)
}

func NewInjectValueInstruction(programID, inscription, payer, authority solana.PublicKey, tag string, start, end uint64, value []byte) (*Instruction, error) {
	args := &InjectValueArgs{AssociatedTag: optionalTag(tag), Start: start, End: end, Value: value}
	return newDataInstruction(programID, InstructionInjectValue, args, inscription, payer, authority, tag)
}

func NewAppendValueInstruction(programID, inscription, payer, authority solana.PublicKey, tag string, value []byte) (*Instruction, error) {
	args := &AppendValueArgs{AssociatedTag: optionalTag(tag), Value: value}
	return newDataInstruction(programID, InstructionAppendValue, args, inscription, payer, authority, tag)
}

func authorityMetas(programID, inscription, payer, authority solana.PublicKey) ([]*solana.AccountMeta, error) {
	metadata, _, err := FindInscriptionMetadataAddress(programID, inscription)
	if err != nil {
		return nil, err
	}
	return []*solana.AccountMeta{
		solana.Meta(metadata).WRITE(),
		solana.Meta(payer).WRITE().SIGNER(),
		optionalMeta(programID, authority, false, true),
		solana.Meta(solana.SystemProgramID),
	}, nil
}

func NewAddAuthorityInstruction(programID, inscription, payer, authority, newAuthority solana.PublicKey) (*Instruction, error) {
	metas, err := authorityMetas(programID, inscription, payer, authority)
	if err != nil {
		return nil, err
	}
	return newInstruction(programID, InstructionAddAuthority, &AddAuthorityArgs{NewAuthority: newAuthority}, metas...), nil
}

// NewRemoveAuthorityInstruction removes the acting authority, which is the
// payer when authority is zero.
func NewRemoveAuthorityInstruction(programID, inscription, payer, authority solana.PublicKey) (*Instruction, error) {
	metas, err := authorityMetas(programID, inscription, payer, authority)
	if err != nil {
		return nil, err
	}
	return newInstruction(programID, InstructionRemoveAuthority, &EmptyArgs{}, metas...), nil
}

func NewCreateShardInstruction(programID, payer solana.PublicKey, shardNumber uint8) (*Instruction, error) {
	shard, _, err := FindShardAddress(programID, shardNumber)
	if err != nil {
		return nil, err
	}
	return newInstruction(programID, InstructionCreateShard, &CreateShardArgs{ShardNumber: shardNumber},
		solana.Meta(shard).WRITE(),
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
	), nil
}

func NewInitializeAssociatedInscriptionInstruction(programID, inscription, payer, authority solana.PublicKey, tag string) (*Instruction, error) {
	metadata, _, err := FindInscriptionMetadataAddress(programID, inscription)
	if err != nil {
		return nil, err
	}
	associated, _, err := FindAssociatedInscriptionAddress(programID, tag, metadata)
	if err != nil {
		return nil, err
	}
	return newInstruction(programID, InstructionInitializeAssociatedInscription, &AssociateArgs{AssociationTag: tag},
		solana.Meta(inscription),
		solana.Meta(metadata).WRITE(),
		solana.Meta(associated).WRITE(),
		solana.Meta(payer).WRITE().SIGNER(),
		optionalMeta(programID, authority, false, true),
		solana.Meta(solana.SystemProgramID),
	), nil
}

func NewSetMintInstruction(programID, mint, payer solana.PublicKey) (*Instruction, error) {
	mintInscription, _, err := FindMintInscriptionAddress(programID, mint)
	if err != nil {
		return nil, err
	}
	metadata, _, err := FindInscriptionMetadataAddress(programID, mintInscription)
	if err != nil {
		return nil, err
	}
	return newInstruction(programID, InstructionSetMint, &EmptyArgs{},
		solana.Meta(mintInscription),
		solana.Meta(metadata).WRITE(),
		solana.Meta(mint),
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
	), nil
}

// NewDelegateInstruction lets delegate inscribe members of the collection
// whose update authority is authority.
func NewDelegateInstruction(programID, delegate, collectionMint, collectionMetadata, authority, payer solana.PublicKey) (*Instruction, error) {
	record, _, err := FindDelegateRecordAddress(programID, collectionMint, authority, delegate)
	if err != nil {
		return nil, err
	}
	return newInstruction(programID, InstructionDelegate, &EmptyArgs{},
		solana.Meta(record).WRITE(),
		solana.Meta(delegate),
		solana.Meta(collectionMint),
		solana.Meta(collectionMetadata),
		solana.Meta(authority).SIGNER(),
		solana.Meta(payer).WRITE().SIGNER(),
		solana.Meta(solana.SystemProgramID),
	), nil
}

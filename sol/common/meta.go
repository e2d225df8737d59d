package common

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inscription/types"
	"github.com/near/borsh-go"
)

// MetadataKeyV1 is the token metadata program's discriminant for Metadata accounts.
const MetadataKeyV1 uint8 = 4

type Data struct {
	Name                 string
	Symbol               string
	Uri                  string
	SellerFeeBasisPoints uint16
	Creators             *[]Creator
}

type Creator struct {
	Address  solana.PublicKey
	Verified bool
	Share    uint8
}

func MetadataDeserialize(data []byte) (Metadata, error) {
	var metadata Metadata

	err := borsh.Deserialize(&metadata, data)
	return metadata, err
}

// MetadataSafeDeserialize decodes a token metadata record and rejects any
// other account kind stored by the metadata program.
func MetadataSafeDeserialize(data []byte) (Metadata, error) {
	if len(data) == 0 || data[0] != MetadataKeyV1 {
		return Metadata{}, fmt.Errorf("token metadata: unexpected account key: %w", types.ErrDeserialize)
	}
	metadata, err := MetadataDeserialize(data)
	if err != nil {
		return Metadata{}, fmt.Errorf("token metadata: %v: %w", err, types.ErrDeserialize)
	}
	return metadata, nil
}

func MetadataSerialize(metadata Metadata) ([]byte, error) {
	return borsh.Serialize(metadata)
}

type Metadata struct {
	Key                 uint8
	UpdateAuthority     solana.PublicKey
	Mint                solana.PublicKey
	Data                Data
	PrimarySaleHappened bool
	IsMutable           bool
	EditionNonce        *uint8
	TokenStandard       *uint8
	Collection          *Collection
	Uses                *Uses
	CollectionDetails   *CollectionDetails
	ProgrammableConfig  *ProgrammableConfig
}

// IsNonFungible reports whether the token standard, when present, is one of
// the non-fungible kinds.
func (m *Metadata) IsNonFungible() bool {
	if m.TokenStandard == nil {
		return true
	}
	switch types.TokenStandard(*m.TokenStandard) {
	case types.TokenStandardNonFungible,
		types.TokenStandardNonFungibleEdition,
		types.TokenStandardProgrammableNonFungible,
		types.TokenStandardProgrammableNonFungibleEdition:
		return true
	}
	return false
}

// VerifiedCollection returns the collection mint if the collection is verified.
func (m *Metadata) VerifiedCollection() (solana.PublicKey, bool) {
	if m.Collection == nil || !m.Collection.Verified {
		return solana.PublicKey{}, false
	}
	return m.Collection.Key, true
}

type Collection struct {
	Verified bool
	Key      solana.PublicKey
}

type Uses struct {
	UseMethod uint8
	Remaining uint64
	Total     uint64
}

type CollectionDetails struct {
	Enum borsh.Enum `borsh_enum:"true"`
	V1   CollectionDetailsV1
}

type CollectionDetailsV1 struct {
	Size uint64
}

type ProgrammableConfig struct {
	Enum borsh.Enum `borsh_enum:"true"`
	V1   ProgrammableConfigV1
}

type ProgrammableConfigV1 struct {
	RuleSet *solana.PublicKey
}

package types

type Key uint8

const (
	KeyUninitialized Key = iota
	KeyInscriptionMetadataAccount
	KeyMintInscriptionMetadataAccount
	KeyInscriptionShardAccount
)

func (k Key) String() string {
	switch k {
	case KeyUninitialized:
		return "Uninitialized"
	case KeyInscriptionMetadataAccount:
		return "InscriptionMetadataAccount"
	case KeyMintInscriptionMetadataAccount:
		return "MintInscriptionMetadataAccount"
	case KeyInscriptionShardAccount:
		return "InscriptionShardAccount"
	}
	return "Unknown"
}

type DataType uint8

const (
	DataTypeUninitialized DataType = iota
	DataTypeBinary
	DataTypeJson
)

func (d DataType) String() string {
	switch d {
	case DataTypeUninitialized:
		return "Uninitialized"
	case DataTypeBinary:
		return "Binary"
	case DataTypeJson:
		return "Json"
	}
	return "Unknown"
}

// TokenStandard mirrors the token metadata program's token_standard field.
type TokenStandard uint8

const (
	TokenStandardNonFungible TokenStandard = iota
	TokenStandardFungibleAsset
	TokenStandardFungible
	TokenStandardNonFungibleEdition
	TokenStandardProgrammableNonFungible
	TokenStandardProgrammableNonFungibleEdition
)

const (
	Prefix      = "Inscription"
	Association = "Association"
	ShardPrefix = "Shard"

	ShardCount = 32

	// MaxTagLength is bounded by the maximum seed length.
	MaxTagLength = 32

	// UnrankedInscription marks an inscription that never consumed a shard.
	UnrankedInscription = ^uint64(0)
)

package types

import (
	"github.com/shopspring/decimal"
)

type (
	InscribeRequest struct {
		Payload  []byte
		Compress bool
		// Shard picks the rank counter; negative values pick one at random.
		Shard int
		// Tag and Parent write into an associated inscription of an existing one.
		Tag    string
		Parent string
		DryRun bool
	}

	InscribeResponse struct {
		InscriptionAccount string
		MetadataAccount    string
		Rank               uint64
		Size               int
		Compressed         bool
		Transactions       int
		Instructions       []string
	}

	InscriptionInfo struct {
		InscriptionAccount string
		MetadataAccount    string
		Key                string
		DataType           string
		Rank               uint64
		Ranked             bool
		UpdateAuthorities  []string
		AssociatedTags     []string
		Mint               string
		Size               int
	}

	ShardInfo struct {
		Address     string
		ShardNumber uint8
		Count       uint64
	}

	TransferBill struct {
		Recipient string
		Lamports  uint64
	}

	CostResponse struct {
		Size     int
		Lamports uint64
		Sol      decimal.Decimal
	}
)

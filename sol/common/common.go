package common

import "github.com/gagliardetto/solana-go"

const (
	RentBase  = 128
	RentPrice = 6960

	// MaxPermittedDataIncrease is how far one instruction may grow an account.
	MaxPermittedDataIncrease = 10240
	MaxPermittedDataLength   = 10 * 1024 * 1024

	LamportsPerSignature = 5000
	// PacketDataSize bounds a serialized transaction.
	PacketDataSize = 1232
	// MaxRecentBlockhashes is how many blockhashes stay valid for new transactions.
	MaxRecentBlockhashes = 150
)

var (
	InscriptionProgramID   = solana.MPK("1NSCRfGeyo7wPUazGbaPBUsTM49e1k2aXewHGARfzSo")
	TokenMetadataProgramID = solana.TokenMetadataProgramID
	Token2022ProgramID     = solana.MPK("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")

	SplTokenProgramIDs = []solana.PublicKey{
		solana.TokenProgramID,
		Token2022ProgramID,
	}
)

// MinimumBalance is the rent-exempt reserve for an account holding dataLen bytes.
func MinimumBalance(dataLen int) uint64 {
	return uint64(RentBase+dataLen) * RentPrice
}

package types

import "time"

type (
	Config struct {
		ProgramID string
		Ledger    string // LevelDB directory, ignored when Memory is set
		Memory    bool

		ChunkSize int
		Compress  bool
		LogLevel  string

		// SlotInterval produces empty slots on a timer so that unused
		// blockhashes expire. Zero only advances on transactions.
		SlotInterval time.Duration
	}
)

const DefaultChunkSize = 800

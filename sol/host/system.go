package host

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/meme-bots/go-inscription/types"
)

// SystemProcessor runs the system program transfers wallets send.
type SystemProcessor struct{}

func (SystemProcessor) Process(ic *InvokeContext, data []byte) error {
	metas := make([]*solana.AccountMeta, len(ic.Accounts))
	for i, info := range ic.Accounts {
		metas[i] = solana.NewAccountMeta(info.Key, info.IsWritable, info.IsSigner)
	}
	inst, err := system.DecodeInstruction(metas, data)
	if err != nil {
		return fmt.Errorf("%v: %w", err, types.ErrInvalidInstructionData)
	}

	switch impl := inst.Impl.(type) {
	case *system.Transfer:
		if len(ic.Accounts) < 2 {
			return types.ErrNotEnoughAccountKeys
		}
		if impl.Lamports == nil {
			return types.ErrInvalidInstructionData
		}
		from, to := ic.Accounts[0], ic.Accounts[1]
		if !to.IsWritable {
			return fmt.Errorf("%s: %w", to.Key, types.ErrReadonlyDataModified)
		}
		return ic.Transfer(from, to, *impl.Lamports, nil)
	}
	return fmt.Errorf("system instruction %d: %w", inst.TypeID.Uint32(), types.ErrInvalidInstructionData)
}

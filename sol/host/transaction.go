package host

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inscription/sol/common"
	"github.com/meme-bots/go-inscription/types"
	"github.com/samber/lo"
)

// advance moves to the next slot and records its blockhash.
func (b *Bank) advance() {
	b.slot++
	var seed [8]byte
	binary.LittleEndian.PutUint64(seed[:], b.slot)
	b.blockhash = append(b.blockhash, solana.Hash(sha256.Sum256(seed[:])))
	if len(b.blockhash) > common.MaxRecentBlockhashes {
		b.blockhash = b.blockhash[1:]
	}
	for sig, slot := range b.processed {
		if slot+common.MaxRecentBlockhashes <= b.slot {
			delete(b.processed, sig)
		}
	}
}

// Tick produces an empty slot.
func (b *Bank) Tick() {
	b.Lock()
	defer b.Unlock()
	b.advance()
}

func (b *Bank) Slot() uint64 {
	b.Lock()
	defer b.Unlock()
	return b.slot
}

// LatestBlockhash returns the blockhash new transactions should reference.
func (b *Bank) LatestBlockhash() solana.Hash {
	b.Lock()
	defer b.Unlock()
	return b.blockhash[len(b.blockhash)-1]
}

// ExecuteTransaction verifies a signed transaction and runs its instructions
// atomically. The fee payer is charged per signature even when an
// instruction fails.
func (b *Bank) ExecuteTransaction(ctx context.Context, tx *solana.Transaction) error {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return fmt.Errorf("%v: %w", err, types.ErrSerialize)
	}
	if len(raw) > common.PacketDataSize {
		return fmt.Errorf("%d bytes: %w", len(raw), types.ErrTransactionTooLarge)
	}
	if err := tx.VerifySignatures(); err != nil {
		return fmt.Errorf("%v: %w", err, types.ErrSignatureFailure)
	}
	signers := tx.Message.Signers()
	if len(signers) == 0 {
		return types.ErrMissingRequiredSignature
	}
	instructions, err := decompile(&tx.Message)
	if err != nil {
		return err
	}

	b.Lock()
	defer b.Unlock()

	if !lo.Contains(b.blockhash, tx.Message.RecentBlockhash) {
		return fmt.Errorf("%s: %w", tx.Message.RecentBlockhash, types.ErrBlockhashNotFound)
	}
	if _, ok := b.processed[tx.Signatures[0]]; ok {
		return fmt.Errorf("%s: %w", tx.Signatures[0], types.ErrAlreadyProcessed)
	}
	if err := b.chargeFee(signers[0], uint64(len(tx.Signatures))*common.LamportsPerSignature); err != nil {
		return err
	}
	b.processed[tx.Signatures[0]] = b.slot
	return b.execute(ctx, signers, instructions)
}

func decompile(msg *solana.Message) ([]solana.Instruction, error) {
	instructions := make([]solana.Instruction, 0, len(msg.Instructions))
	for i := range msg.Instructions {
		ci := &msg.Instructions[i]
		programID, err := msg.Account(ci.ProgramIDIndex)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %v: %w", i, err, types.ErrInvalidInstructionData)
		}
		metas, err := ci.ResolveInstructionAccounts(msg)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %v: %w", i, err, types.ErrNotEnoughAccountKeys)
		}
		instructions = append(instructions, solana.NewInstruction(programID, metas, ci.Data))
	}
	return instructions, nil
}

func (b *Bank) chargeFee(payer solana.PublicKey, fee uint64) error {
	a, err := b.store.Get(payer)
	if err != nil {
		return err
	}
	if a.Lamports < fee || !a.Owner.Equals(solana.SystemProgramID) {
		return fmt.Errorf("fee payer %s: %w", payer, types.ErrInsufficientFundsForFee)
	}
	a.Lamports -= fee
	return b.store.Commit(map[solana.PublicKey]*Account{payer: a})
}

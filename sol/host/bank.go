package host

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"math/bits"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inscription/sol/common"
	"github.com/meme-bots/go-inscription/types"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Bank executes instructions against a Store. Each Execute call is one
// transaction: every instruction runs against a working copy and nothing is
// committed unless all of them succeed.
type Bank struct {
	sync.Mutex
	store    Store
	programs map[solana.PublicKey]Processor
	log      *zap.SugaredLogger

	slot      uint64
	blockhash []solana.Hash
	// processed maps each signature seen within the blockhash window to the
	// slot it landed in.
	processed map[solana.Signature]uint64
}

func NewBank(store Store, log *zap.SugaredLogger) *Bank {
	b := &Bank{
		store:    store,
		programs:  make(map[solana.PublicKey]Processor),
		log:       log,
		processed: make(map[solana.Signature]uint64),
	}
	b.advance()
	return b
}

func (b *Bank) Register(programID solana.PublicKey, p Processor) {
	b.Lock()
	defer b.Unlock()
	b.programs[programID] = p
}

func (b *Bank) Close() error {
	return b.store.Close()
}

func (b *Bank) GetAccount(key solana.PublicKey) (*Account, error) {
	a, err := b.store.Get(key)
	if err != nil {
		return nil, err
	}
	if a.Lamports == 0 {
		return nil, fmt.Errorf("account %s: %w", key, types.ErrNotFound)
	}
	return a, nil
}

// SetAccount overwrites an account outright. It is meant for seeding
// foreign program state such as mints and token metadata.
func (b *Bank) SetAccount(key solana.PublicKey, a *Account) error {
	b.Lock()
	defer b.Unlock()
	return b.store.Commit(map[solana.PublicKey]*Account{key: a.Clone()})
}

func (b *Bank) Airdrop(key solana.PublicKey, lamports uint64) error {
	b.Lock()
	defer b.Unlock()

	a, err := b.store.Get(key)
	if err != nil {
		return err
	}
	sum, carry := bits.Add64(a.Lamports, lamports, 0)
	if carry != 0 {
		return fmt.Errorf("airdrop to %s: %w", key, types.ErrNumericalOverflow)
	}
	a.Lamports = sum
	return b.store.Commit(map[solana.PublicKey]*Account{key: a})
}

type txn struct {
	bank    *Bank
	working map[solana.PublicKey]*Account
}

func (t *txn) load(key solana.PublicKey) (*Account, error) {
	if a, ok := t.working[key]; ok {
		return a, nil
	}
	a, err := t.bank.store.Get(key)
	if err != nil {
		return nil, err
	}
	t.working[key] = a
	return a, nil
}

// Execute runs instructions in order as a single atomic transaction signed by
// signers.
func (b *Bank) Execute(ctx context.Context, signers []solana.PublicKey, instructions ...solana.Instruction) error {
	b.Lock()
	defer b.Unlock()
	return b.execute(ctx, signers, instructions)
}

func (b *Bank) execute(ctx context.Context, signers []solana.PublicKey, instructions []solana.Instruction) error {
	t := &txn{bank: b, working: make(map[solana.PublicKey]*Account)}
	for i, ix := range instructions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.execute(signers, ix); err != nil {
			code, _ := types.ErrorCode(err)
			b.log.Errorw("instruction failed", "index", i, "program", ix.ProgramID().String(), "code", code, "error", err)
			return fmt.Errorf("instruction %d: %w", i, err)
		}
	}
	if err := b.store.Commit(t.working); err != nil {
		return err
	}
	b.advance()
	return nil
}

func (t *txn) execute(signers []solana.PublicKey, ix solana.Instruction) error {
	programID := ix.ProgramID()
	program, ok := t.bank.programs[programID]
	if !ok {
		return fmt.Errorf("program %s: %w", programID, types.ErrUnknownProgram)
	}
	data, err := ix.Data()
	if err != nil {
		return fmt.Errorf("%v: %w", err, types.ErrInvalidInstructionData)
	}

	var (
		infos  = make(map[solana.PublicKey]*AccountInfo)
		pre    = make(map[solana.PublicKey]*Account)
		order  []solana.PublicKey
		byPosn []*AccountInfo
	)
	for _, meta := range ix.Accounts() {
		if meta.IsSigner && !lo.Contains(signers, meta.PublicKey) {
			return fmt.Errorf("%s: %w", meta.PublicKey, types.ErrMissingRequiredSignature)
		}
		info, ok := infos[meta.PublicKey]
		if !ok {
			a, err := t.load(meta.PublicKey)
			if err != nil {
				return err
			}
			info = newAccountInfo(meta.PublicKey, a)
			infos[meta.PublicKey] = info
			pre[meta.PublicKey] = a.Clone()
			order = append(order, meta.PublicKey)
		}
		info.IsSigner = info.IsSigner || meta.IsSigner
		info.IsWritable = info.IsWritable || meta.IsWritable
		byPosn = append(byPosn, info)
	}

	ic := &InvokeContext{
		ProgramID: programID,
		Accounts:  byPosn,
		Log:       t.bank.log.With("program", programID.String()),
	}
	ic.Log.Infow("invoke", "accounts", len(byPosn), "data", len(data))
	if err := program.Process(ic, data); err != nil {
		return err
	}

	if err := verify(programID, order, infos, pre); err != nil {
		return err
	}
	for _, key := range order {
		t.working[key] = infos[key].account()
	}
	return nil
}

func verify(programID solana.PublicKey, order []solana.PublicKey, infos map[solana.PublicKey]*AccountInfo, pre map[solana.PublicKey]*Account) error {
	before, after := new(big.Int), new(big.Int)
	for _, key := range order {
		info, prev := infos[key], pre[key]
		before.Add(before, new(big.Int).SetUint64(prev.Lamports))
		after.Add(after, new(big.Int).SetUint64(info.Lamports))

		post := info.account()
		if post.equal(prev) {
			continue
		}
		if !info.IsWritable {
			return fmt.Errorf("%s: %w", key, types.ErrReadonlyDataModified)
		}

		ownedByProgram := prev.Owner.Equals(programID)
		freshSystem := prev.Owner.Equals(solana.SystemProgramID) && len(prev.Data) == 0
		if !bytes.Equal(prev.Data, post.Data) && !ownedByProgram && !freshSystem {
			return fmt.Errorf("%s: %w", key, types.ErrExternalAccountDataModified)
		}
		if !prev.Owner.Equals(post.Owner) && !ownedByProgram && !prev.Owner.Equals(solana.SystemProgramID) {
			return fmt.Errorf("%s: %w", key, types.ErrIllegalOwner)
		}
		if post.Lamports < prev.Lamports && !ownedByProgram && !prev.Owner.Equals(solana.SystemProgramID) {
			return fmt.Errorf("%s: %w", key, types.ErrExternalAccountDataModified)
		}
		if len(post.Data) > common.MaxPermittedDataLength || (len(post.Data) > len(prev.Data)+common.MaxPermittedDataIncrease && !freshSystem) {
			return fmt.Errorf("%s: %w", key, types.ErrInvalidRealloc)
		}
		if post.Lamports > 0 && post.Lamports < common.MinimumBalance(len(post.Data)) {
			return fmt.Errorf("%s holds %d lamports for %d bytes: %w", key, post.Lamports, len(post.Data), types.ErrInsufficientFundsForRent)
		}
	}
	if before.Cmp(after) != 0 {
		return types.ErrUnbalancedInstruction
	}
	return nil
}

package host

import (
	"fmt"
	"math/bits"

	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inscription/sol/common"
	"github.com/meme-bots/go-inscription/types"
	"go.uber.org/zap"
)

type Processor interface {
	Process(ic *InvokeContext, data []byte) error
}

type ProcessorFunc func(ic *InvokeContext, data []byte) error

func (f ProcessorFunc) Process(ic *InvokeContext, data []byte) error {
	return f(ic, data)
}

// InvokeContext is what a program sees while one instruction runs. Accounts
// are positional and duplicate keys share the same *AccountInfo.
type InvokeContext struct {
	ProgramID solana.PublicKey
	Accounts  []*AccountInfo
	Log       *zap.SugaredLogger
}

// signed reports whether acct signed the transaction or is the program
// address derived from signerSeeds.
func (ic *InvokeContext) signed(acct *AccountInfo, signerSeeds [][]byte) bool {
	if acct.IsSigner {
		return true
	}
	if len(signerSeeds) == 0 {
		return false
	}
	address, err := solana.CreateProgramAddress(signerSeeds, ic.ProgramID)
	if err != nil {
		return false
	}
	return address.Equals(acct.Key)
}

func debit(from, to *AccountInfo, lamports uint64) error {
	if from.Lamports < lamports {
		return fmt.Errorf("%s has %d lamports, need %d: %w", from.Key, from.Lamports, lamports, types.ErrInsufficientFunds)
	}
	if from == to {
		return nil
	}
	sum, carry := bits.Add64(to.Lamports, lamports, 0)
	if carry != 0 {
		return types.ErrNumericalOverflow
	}
	from.Lamports -= lamports
	to.Lamports = sum
	return nil
}

// Transfer moves lamports out of a system-owned, data-free account.
func (ic *InvokeContext) Transfer(from, to *AccountInfo, lamports uint64, signerSeeds [][]byte) error {
	if !ic.signed(from, signerSeeds) {
		return fmt.Errorf("transfer from %s: %w", from.Key, types.ErrMissingRequiredSignature)
	}
	if !from.IsOwnedBy(solana.SystemProgramID) || !from.DataIsEmpty() {
		return fmt.Errorf("transfer from %s: account carries data or is not system owned: %w", from.Key, types.ErrInvalidArgument)
	}
	return debit(from, to, lamports)
}

// CreateAccount funds target from payer, allocates space and assigns owner.
func (ic *InvokeContext) CreateAccount(payer, target *AccountInfo, lamports uint64, space int, owner solana.PublicKey, signerSeeds [][]byte) error {
	if target.Lamports != 0 || !target.DataIsEmpty() || !target.IsOwnedBy(solana.SystemProgramID) {
		return fmt.Errorf("create %s: %w", target.Key, types.ErrAccountAlreadyInUse)
	}
	if !ic.signed(target, signerSeeds) {
		return fmt.Errorf("create %s: %w", target.Key, types.ErrMissingRequiredSignature)
	}
	if err := ic.Transfer(payer, target, lamports, nil); err != nil {
		return err
	}
	return ic.allocateAndAssign(target, space, owner)
}

// Allocate sizes a fresh system-owned account.
func (ic *InvokeContext) Allocate(target *AccountInfo, space int, signerSeeds [][]byte) error {
	if !ic.signed(target, signerSeeds) {
		return fmt.Errorf("allocate %s: %w", target.Key, types.ErrMissingRequiredSignature)
	}
	if !target.DataIsEmpty() || !target.IsOwnedBy(solana.SystemProgramID) {
		return fmt.Errorf("allocate %s: %w", target.Key, types.ErrAccountAlreadyInUse)
	}
	if space < 0 || space > common.MaxPermittedDataLength {
		return fmt.Errorf("allocate %s: %d bytes: %w", target.Key, space, types.ErrInvalidRealloc)
	}
	target.Data = make([]byte, space)
	return nil
}

// Assign hands a system-owned account to a new owner.
func (ic *InvokeContext) Assign(target *AccountInfo, owner solana.PublicKey, signerSeeds [][]byte) error {
	if !ic.signed(target, signerSeeds) {
		return fmt.Errorf("assign %s: %w", target.Key, types.ErrMissingRequiredSignature)
	}
	if !target.IsOwnedBy(solana.SystemProgramID) {
		return fmt.Errorf("assign %s: %w", target.Key, types.ErrIllegalOwner)
	}
	target.Owner = owner
	return nil
}

func (ic *InvokeContext) allocateAndAssign(target *AccountInfo, space int, owner solana.PublicKey) error {
	if space < 0 || space > common.MaxPermittedDataLength {
		return fmt.Errorf("allocate %s: %d bytes: %w", target.Key, space, types.ErrInvalidRealloc)
	}
	target.Data = make([]byte, space)
	target.Owner = owner
	return nil
}

// MoveLamports debits an account owned by the running program directly.
func (ic *InvokeContext) MoveLamports(from, to *AccountInfo, lamports uint64) error {
	if !from.IsOwnedBy(ic.ProgramID) {
		return fmt.Errorf("debit %s: %w", from.Key, types.ErrExternalAccountDataModified)
	}
	return debit(from, to, lamports)
}

// Reassign gives a program-owned account to a new owner. The data must be
// empty or zeroed.
func (ic *InvokeContext) Reassign(acct *AccountInfo, owner solana.PublicKey) error {
	if !acct.IsOwnedBy(ic.ProgramID) {
		return fmt.Errorf("reassign %s: %w", acct.Key, types.ErrIllegalOwner)
	}
	for _, b := range acct.Data {
		if b != 0 {
			return fmt.Errorf("reassign %s: data not zeroed: %w", acct.Key, types.ErrIllegalOwner)
		}
	}
	acct.Owner = owner
	return nil
}

// Realloc resizes program-owned account data. Growth is zero filled and
// bounded by the instruction's starting length plus MaxPermittedDataIncrease.
func (ic *InvokeContext) Realloc(acct *AccountInfo, newLen int) error {
	if !acct.IsOwnedBy(ic.ProgramID) {
		return fmt.Errorf("realloc %s: %w", acct.Key, types.ErrExternalAccountDataModified)
	}
	if newLen < 0 || newLen > acct.originalLen+common.MaxPermittedDataIncrease || newLen > common.MaxPermittedDataLength {
		return fmt.Errorf("realloc %s to %d bytes: %w", acct.Key, newLen, types.ErrInvalidRealloc)
	}
	data := make([]byte, newLen)
	copy(data, acct.Data)
	acct.Data = data
	return nil
}

// Account returns the account at index or ErrNotEnoughAccountKeys.
func (ic *InvokeContext) Account(index int) (*AccountInfo, error) {
	if index < 0 || index >= len(ic.Accounts) {
		return nil, types.ErrNotEnoughAccountKeys
	}
	return ic.Accounts[index], nil
}

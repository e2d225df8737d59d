package inscription

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inscription/sol/host"
	"github.com/meme-bots/go-inscription/types"
	"github.com/samber/lo"
)

func assertSigner(acct *host.AccountInfo) error {
	if !acct.IsSigner {
		return fmt.Errorf("%s: %w", acct.Key, types.ErrMissingRequiredSignature)
	}
	return nil
}

func assertOwnedBy(acct *host.AccountInfo, owner solana.PublicKey, fail error) error {
	if !acct.IsOwnedBy(owner) {
		return fmt.Errorf("%s owned by %s: %w", acct.Key, acct.Owner, fail)
	}
	return nil
}

func assertOwnedByAny(acct *host.AccountInfo, owners []solana.PublicKey, fail error) error {
	if !lo.Contains(owners, acct.Owner) {
		return fmt.Errorf("%s owned by %s: %w", acct.Key, acct.Owner, fail)
	}
	return nil
}

// assertUninitialized requires a system-owned account without data.
func assertUninitialized(acct *host.AccountInfo) error {
	if !acct.IsOwnedBy(solana.SystemProgramID) || !acct.DataIsEmpty() {
		return fmt.Errorf("%s: %w", acct.Key, types.ErrAlreadyInitialized)
	}
	return nil
}

// assertInitialized requires a program-owned account; withData also
// requires it to hold data.
func assertInitialized(programID solana.PublicKey, acct *host.AccountInfo, withData bool) error {
	if !acct.IsOwnedBy(programID) || (withData && acct.DataIsEmpty()) {
		return fmt.Errorf("%s: %w", acct.Key, types.ErrNotInitialized)
	}
	return nil
}

func assertSystemProgram(acct *host.AccountInfo) error {
	if !acct.Key.Equals(solana.SystemProgramID) {
		return fmt.Errorf("%s: %w", acct.Key, types.ErrInvalidSystemProgram)
	}
	return nil
}

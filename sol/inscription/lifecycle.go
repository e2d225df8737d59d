package inscription

import (
	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inscription/sol/common"
	"github.com/meme-bots/go-inscription/sol/host"
)

// createOrAllocate funds target to the rent-exempt minimum for space bytes,
// allocates it and hands it to the program. signerSeeds include the bump and
// are empty when target signed the transaction itself.
func createOrAllocate(ic *host.InvokeContext, target, payer *host.AccountInfo, space int, signerSeeds [][]byte) error {
	required := common.MinimumBalance(space)
	if target.Lamports < required {
		if err := ic.Transfer(payer, target, required-target.Lamports, nil); err != nil {
			return err
		}
	}
	if err := ic.Allocate(target, space, signerSeeds); err != nil {
		return err
	}
	return ic.Assign(target, ic.ProgramID, signerSeeds)
}

// resizeOrReallocate resizes acct to newLen and settles its rent reserve
// against payer, topping up on growth and refunding on shrink.
func resizeOrReallocate(ic *host.InvokeContext, acct, payer *host.AccountInfo, newLen int) error {
	if newLen == acct.DataLen() {
		return nil
	}
	required := common.MinimumBalance(newLen)
	switch {
	case acct.Lamports < required:
		if err := ic.Transfer(payer, acct, required-acct.Lamports, nil); err != nil {
			return err
		}
	case acct.Lamports > required:
		if err := ic.MoveLamports(acct, payer, acct.Lamports-required); err != nil {
			return err
		}
	}
	return ic.Realloc(acct, newLen)
}

// closeAccount drains acct into dest and returns it to the system program.
func closeAccount(ic *host.InvokeContext, acct, dest *host.AccountInfo) error {
	if err := ic.MoveLamports(acct, dest, acct.Lamports); err != nil {
		return err
	}
	if err := ic.Realloc(acct, 0); err != nil {
		return err
	}
	return ic.Reassign(acct, solana.SystemProgramID)
}

// writeRecord resizes acct to fit data and then overwrites it.
func writeRecord(ic *host.InvokeContext, acct, payer *host.AccountInfo, data []byte) error {
	if err := resizeOrReallocate(ic, acct, payer, len(data)); err != nil {
		return err
	}
	copy(acct.Data, data)
	return nil
}

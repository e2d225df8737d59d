package inscription

import (
	"fmt"
	"math/bits"

	"github.com/meme-bots/go-inscription/sol/common"
	"github.com/meme-bots/go-inscription/sol/host"
	"github.com/meme-bots/go-inscription/types"
	"github.com/samber/lo"
)

// loadDataTarget runs the checks shared by every data instruction and
// returns the decoded metadata of the inscription being touched.
func loadDataTarget(ic *host.InvokeContext, a dataAccounts, tag *string) (*InscriptionMetadata, error) {
	if err := assertInitialized(ic.ProgramID, a.inscription, false); err != nil {
		return nil, err
	}
	if err := assertInitialized(ic.ProgramID, a.metadata, true); err != nil {
		return nil, err
	}
	metadata, err := DeserializeInscriptionMetadata(a.metadata.Data)
	if err != nil {
		return nil, err
	}
	if err := verifyTarget(ic, a.inscription, a.metadata, metadata, tag); err != nil {
		return nil, err
	}
	authority, err := resolveAuthority(a.payer, a.authority)
	if err != nil {
		return nil, err
	}
	if err := metadata.checkAuthority(authority.Key); err != nil {
		return nil, err
	}
	if err := assertSystemProgram(a.systemProgram); err != nil {
		return nil, err
	}
	return metadata, nil
}

// verifyTarget proves that target is either the inscription paired with
// metadataAcct or, with a tag, one of its associated inscriptions. Both the
// derivation and the stored bump must agree.
func verifyTarget(ic *host.InvokeContext, target, metadataAcct *host.AccountInfo, metadata *InscriptionMetadata, tag *string) error {
	if tag != nil {
		if err := validateTag(*tag); err != nil {
			return err
		}
		bump, err := assertDerivation(ic.ProgramID, target, associatedSeeds(*tag, metadataAcct.Key), types.ErrDerivedKeyInvalid)
		if err != nil {
			return err
		}
		idx, ok := metadata.findAssociated(*tag)
		if !ok || metadata.AssociatedInscriptions[idx].Bump != bump {
			return fmt.Errorf("associated inscription %q: %w", *tag, types.ErrDerivedKeyInvalid)
		}
		return nil
	}
	bump, err := assertDerivation(ic.ProgramID, metadataAcct, metadataSeeds(ic.ProgramID, target.Key), types.ErrDerivedKeyInvalid)
	if err != nil {
		return err
	}
	if bump != metadata.Bump {
		return fmt.Errorf("%s: stored bump %d: %w", metadataAcct.Key, metadata.Bump, types.ErrDerivedKeyInvalid)
	}
	return nil
}

// checkedLength converts a requested account length, rejecting anything the
// host could never allocate.
func checkedLength(n uint64) (int, error) {
	if n > common.MaxPermittedDataLength {
		return 0, fmt.Errorf("length %d: %w", n, types.ErrInvalidRealloc)
	}
	return int(n), nil
}

func processWriteData(ic *host.InvokeContext, args *WriteDataArgs) error {
	a, err := parseDataAccounts(ic)
	if err != nil {
		return err
	}
	if _, err := loadDataTarget(ic, a, args.AssociatedTag); err != nil {
		return err
	}

	end, carry := bits.Add64(args.Offset, uint64(len(args.Value)), 0)
	if carry != 0 {
		return types.ErrNumericalOverflow
	}
	if end > uint64(a.inscription.DataLen()) {
		size, err := checkedLength(end)
		if err != nil {
			return err
		}
		if err := resizeOrReallocate(ic, a.inscription, a.payer, size); err != nil {
			return err
		}
	}
	copy(a.inscription.Data[args.Offset:], args.Value)
	return nil
}

func processClearData(ic *host.InvokeContext, args *TagArgs) error {
	a, err := parseDataAccounts(ic)
	if err != nil {
		return err
	}
	if _, err := loadDataTarget(ic, a, args.AssociatedTag); err != nil {
		return err
	}
	return resizeOrReallocate(ic, a.inscription, a.payer, 0)
}

func processAllocate(ic *host.InvokeContext, args *AllocateArgs) error {
	a, err := parseDataAccounts(ic)
	if err != nil {
		return err
	}
	if _, err := loadDataTarget(ic, a, args.AssociatedTag); err != nil {
		return err
	}

	limit := uint64(a.inscription.DataLen()) + common.MaxPermittedDataIncrease
	size, err := checkedLength(lo.Min([]uint64{args.TargetSize, limit}))
	if err != nil {
		return err
	}
	return resizeOrReallocate(ic, a.inscription, a.payer, size)
}

// processInjectValue splices Value over [Start, End) of the inscription,
// shifting the tail by the size difference.
func processInjectValue(ic *host.InvokeContext, args *InjectValueArgs) error {
	a, err := parseDataAccounts(ic)
	if err != nil {
		return err
	}
	if _, err := loadDataTarget(ic, a, args.AssociatedTag); err != nil {
		return err
	}

	length := uint64(a.inscription.DataLen())
	if args.Start > args.End || args.End > length {
		return fmt.Errorf("range [%d, %d) of %d bytes: %w", args.Start, args.End, length, types.ErrNumericalOverflow)
	}
	data := a.inscription.Data
	spliced := make([]byte, 0, int(args.Start)+len(args.Value)+int(length-args.End))
	spliced = append(spliced, data[:args.Start]...)
	spliced = append(spliced, args.Value...)
	spliced = append(spliced, data[args.End:]...)
	return writeRecord(ic, a.inscription, a.payer, spliced)
}

func processAppendValue(ic *host.InvokeContext, args *AppendValueArgs) error {
	a, err := parseDataAccounts(ic)
	if err != nil {
		return err
	}
	if _, err := loadDataTarget(ic, a, args.AssociatedTag); err != nil {
		return err
	}

	merged, err := mergeAppendJSON(a.inscription.Data, args.Value)
	if err != nil {
		return err
	}
	return writeRecord(ic, a.inscription, a.payer, merged)
}

func processClose(ic *host.InvokeContext, args *TagArgs) error {
	a, err := parseDataAccounts(ic)
	if err != nil {
		return err
	}
	metadata, err := loadDataTarget(ic, a, args.AssociatedTag)
	if err != nil {
		return err
	}

	if args.AssociatedTag == nil {
		if err := closeAccount(ic, a.inscription, a.payer); err != nil {
			return err
		}
		return closeAccount(ic, a.metadata, a.payer)
	}

	idx, _ := metadata.findAssociated(*args.AssociatedTag)
	metadata.AssociatedInscriptions = append(metadata.AssociatedInscriptions[:idx], metadata.AssociatedInscriptions[idx+1:]...)
	if err := closeAccount(ic, a.inscription, a.payer); err != nil {
		return err
	}
	return writeMetadata(ic, a.metadata, a.payer, metadata)
}

func writeMetadata(ic *host.InvokeContext, acct, payer *host.AccountInfo, m *InscriptionMetadata) error {
	data, err := m.Serialize()
	if err != nil {
		return err
	}
	return writeRecord(ic, acct, payer, data)
}

package inscription

import (
	"github.com/meme-bots/go-inscription/sol/host"
)

type accountIter struct {
	ic *host.InvokeContext
	i  int
}

func (it *accountIter) next() (*host.AccountInfo, error) {
	acct, err := it.ic.Account(it.i)
	if err != nil {
		return nil, err
	}
	it.i++
	return acct, nil
}

// optional treats the program id as an absent account.
func (it *accountIter) optional() (*host.AccountInfo, error) {
	acct, err := it.next()
	if err != nil {
		return nil, err
	}
	if acct.Key.Equals(it.ic.ProgramID) {
		return nil, nil
	}
	return acct, nil
}

type initializeAccounts struct {
	inscription, metadata, shard, payer, authority, systemProgram *host.AccountInfo
}

func parseInitializeAccounts(ic *host.InvokeContext) (a initializeAccounts, err error) {
	it := &accountIter{ic: ic}
	if a.inscription, err = it.next(); err != nil {
		return
	}
	if a.metadata, err = it.next(); err != nil {
		return
	}
	if a.shard, err = it.optional(); err != nil {
		return
	}
	if a.payer, err = it.next(); err != nil {
		return
	}
	if a.authority, err = it.optional(); err != nil {
		return
	}
	a.systemProgram, err = it.next()
	return
}

type initializeFromMintAccounts struct {
	mintInscription, metadata, mint, tokenMetadata, tokenAccount *host.AccountInfo
	shard, payer, authority, delegateRecord, systemProgram       *host.AccountInfo
}

func parseInitializeFromMintAccounts(ic *host.InvokeContext) (a initializeFromMintAccounts, err error) {
	it := &accountIter{ic: ic}
	if a.mintInscription, err = it.next(); err != nil {
		return
	}
	if a.metadata, err = it.next(); err != nil {
		return
	}
	if a.mint, err = it.next(); err != nil {
		return
	}
	if a.tokenMetadata, err = it.next(); err != nil {
		return
	}
	if a.tokenAccount, err = it.optional(); err != nil {
		return
	}
	if a.shard, err = it.next(); err != nil {
		return
	}
	if a.payer, err = it.next(); err != nil {
		return
	}
	if a.authority, err = it.optional(); err != nil {
		return
	}
	if a.delegateRecord, err = it.optional(); err != nil {
		return
	}
	a.systemProgram, err = it.next()
	return
}

// dataAccounts serves every instruction that touches an inscription's data:
// Close, WriteData, ClearData, Allocate, InjectValue and AppendValue.
type dataAccounts struct {
	inscription, metadata, payer, authority, systemProgram *host.AccountInfo
}

func parseDataAccounts(ic *host.InvokeContext) (a dataAccounts, err error) {
	it := &accountIter{ic: ic}
	if a.inscription, err = it.next(); err != nil {
		return
	}
	if a.metadata, err = it.next(); err != nil {
		return
	}
	if a.payer, err = it.next(); err != nil {
		return
	}
	if a.authority, err = it.optional(); err != nil {
		return
	}
	a.systemProgram, err = it.next()
	return
}

type authorityAccounts struct {
	metadata, payer, authority, systemProgram *host.AccountInfo
}

func parseAuthorityAccounts(ic *host.InvokeContext) (a authorityAccounts, err error) {
	it := &accountIter{ic: ic}
	if a.metadata, err = it.next(); err != nil {
		return
	}
	if a.payer, err = it.next(); err != nil {
		return
	}
	if a.authority, err = it.optional(); err != nil {
		return
	}
	a.systemProgram, err = it.next()
	return
}

type createShardAccounts struct {
	shard, payer, systemProgram *host.AccountInfo
}

func parseCreateShardAccounts(ic *host.InvokeContext) (a createShardAccounts, err error) {
	it := &accountIter{ic: ic}
	if a.shard, err = it.next(); err != nil {
		return
	}
	if a.payer, err = it.next(); err != nil {
		return
	}
	a.systemProgram, err = it.next()
	return
}

type associateAccounts struct {
	inscription, metadata, associated, payer, authority, systemProgram *host.AccountInfo
}

func parseAssociateAccounts(ic *host.InvokeContext) (a associateAccounts, err error) {
	it := &accountIter{ic: ic}
	if a.inscription, err = it.next(); err != nil {
		return
	}
	if a.metadata, err = it.next(); err != nil {
		return
	}
	if a.associated, err = it.next(); err != nil {
		return
	}
	if a.payer, err = it.next(); err != nil {
		return
	}
	if a.authority, err = it.optional(); err != nil {
		return
	}
	a.systemProgram, err = it.next()
	return
}

type setMintAccounts struct {
	mintInscription, metadata, mint, payer, systemProgram *host.AccountInfo
}

func parseSetMintAccounts(ic *host.InvokeContext) (a setMintAccounts, err error) {
	it := &accountIter{ic: ic}
	if a.mintInscription, err = it.next(); err != nil {
		return
	}
	if a.metadata, err = it.next(); err != nil {
		return
	}
	if a.mint, err = it.next(); err != nil {
		return
	}
	if a.payer, err = it.next(); err != nil {
		return
	}
	a.systemProgram, err = it.next()
	return
}

type delegateAccounts struct {
	delegateRecord, delegate, collectionMint, collectionMetadata *host.AccountInfo
	authority, payer, systemProgram                              *host.AccountInfo
}

func parseDelegateAccounts(ic *host.InvokeContext) (a delegateAccounts, err error) {
	it := &accountIter{ic: ic}
	if a.delegateRecord, err = it.next(); err != nil {
		return
	}
	if a.delegate, err = it.next(); err != nil {
		return
	}
	if a.collectionMint, err = it.next(); err != nil {
		return
	}
	if a.collectionMetadata, err = it.next(); err != nil {
		return
	}
	if a.authority, err = it.next(); err != nil {
		return
	}
	if a.payer, err = it.next(); err != nil {
		return
	}
	a.systemProgram, err = it.next()
	return
}

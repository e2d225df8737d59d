package host

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inscription/sol/common"
	"github.com/meme-bots/go-inscription/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedTx(t *testing.T, blockhash solana.Hash, payer solana.PrivateKey, ixs ...solana.Instruction) *solana.Transaction {
	t.Helper()
	tx, err := solana.NewTransaction(ixs, blockhash, solana.TransactionPayer(payer.PublicKey()))
	require.NoError(t, err)
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(payer.PublicKey()) {
			return &payer
		}
		return nil
	})
	require.NoError(t, err)
	return tx
}

func TestBank_ExecuteTransaction(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	target := solana.NewWallet().PublicKey()
	bank := newTestBank(t, ProcessorFunc(func(ic *InvokeContext, data []byte) error {
		return ic.Transfer(ic.Accounts[0], ic.Accounts[1], 1_000_000, nil)
	}))
	require.NoError(t, bank.Airdrop(payer.PublicKey(), solana.LAMPORTS_PER_SOL))
	slot := bank.Slot()

	tx := signedTx(t, bank.LatestBlockhash(), payer, ix(nil,
		solana.Meta(payer.PublicKey()).WRITE().SIGNER(),
		solana.Meta(target).WRITE(),
	))
	require.NoError(t, bank.ExecuteTransaction(context.Background(), tx))

	acct, err := bank.GetAccount(target)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), acct.Lamports)
	acct, err = bank.GetAccount(payer.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, solana.LAMPORTS_PER_SOL-1_000_000-common.LamportsPerSignature, acct.Lamports)
	assert.Equal(t, slot+1, bank.Slot())
}

func TestBank_ExecuteTransaction_FeeOnFailure(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	bank := newTestBank(t, ProcessorFunc(func(ic *InvokeContext, data []byte) error {
		return errors.New("boom")
	}))
	require.NoError(t, bank.Airdrop(payer.PublicKey(), solana.LAMPORTS_PER_SOL))

	tx := signedTx(t, bank.LatestBlockhash(), payer, ix(nil, solana.Meta(payer.PublicKey()).WRITE().SIGNER()))
	assert.Error(t, bank.ExecuteTransaction(context.Background(), tx))

	acct, err := bank.GetAccount(payer.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, solana.LAMPORTS_PER_SOL-common.LamportsPerSignature, acct.Lamports)
}

func TestBank_ExecuteTransaction_Rejects(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	bank := newTestBank(t, ProcessorFunc(func(ic *InvokeContext, data []byte) error { return nil }))
	require.NoError(t, bank.Airdrop(payer.PublicKey(), solana.LAMPORTS_PER_SOL))
	meta := solana.Meta(payer.PublicKey()).WRITE().SIGNER()

	stale := signedTx(t, solana.Hash{1}, payer, ix(nil, meta))
	assert.ErrorIs(t, bank.ExecuteTransaction(context.Background(), stale), types.ErrBlockhashNotFound)

	tampered := signedTx(t, bank.LatestBlockhash(), payer, ix(nil, meta))
	tampered.Signatures[0][0] ^= 0xff
	assert.ErrorIs(t, bank.ExecuteTransaction(context.Background(), tampered), types.ErrSignatureFailure)

	large := signedTx(t, bank.LatestBlockhash(), payer, ix(make([]byte, common.PacketDataSize), meta))
	assert.ErrorIs(t, bank.ExecuteTransaction(context.Background(), large), types.ErrTransactionTooLarge)

	poor := solana.NewWallet().PrivateKey
	unfunded := signedTx(t, bank.LatestBlockhash(), poor, ix(nil, solana.Meta(poor.PublicKey()).WRITE().SIGNER()))
	assert.ErrorIs(t, bank.ExecuteTransaction(context.Background(), unfunded), types.ErrInsufficientFundsForFee)

	acct, err := bank.GetAccount(payer.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, solana.LAMPORTS_PER_SOL, acct.Lamports)
}

func TestBank_ExecuteTransaction_AlreadyProcessed(t *testing.T) {
	payer := solana.NewWallet().PrivateKey
	target := solana.NewWallet().PublicKey()
	bank := newTestBank(t, ProcessorFunc(func(ic *InvokeContext, data []byte) error {
		return ic.Transfer(ic.Accounts[0], ic.Accounts[1], 1_000_000, nil)
	}))
	require.NoError(t, bank.Airdrop(payer.PublicKey(), solana.LAMPORTS_PER_SOL))

	tx := signedTx(t, bank.LatestBlockhash(), payer, ix(nil,
		solana.Meta(payer.PublicKey()).WRITE().SIGNER(),
		solana.Meta(target).WRITE(),
	))
	require.NoError(t, bank.ExecuteTransaction(context.Background(), tx))
	assert.ErrorIs(t, bank.ExecuteTransaction(context.Background(), tx), types.ErrAlreadyProcessed)

	acct, err := bank.GetAccount(target)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), acct.Lamports)
	acct, err = bank.GetAccount(payer.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, solana.LAMPORTS_PER_SOL-1_000_000-common.LamportsPerSignature, acct.Lamports)

	// once the blockhash expires the signature is forgotten
	for i := 0; i < common.MaxRecentBlockhashes; i++ {
		bank.Tick()
	}
	assert.ErrorIs(t, bank.ExecuteTransaction(context.Background(), tx), types.ErrBlockhashNotFound)
	assert.Empty(t, bank.processed)
}

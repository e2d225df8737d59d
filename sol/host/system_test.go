package host

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/meme-bots/go-inscription/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSystemProcessor_Transfer(t *testing.T) {
	bank := NewBank(NewMemoryStore(), zaptest.NewLogger(t).Sugar())
	bank.Register(solana.SystemProgramID, SystemProcessor{})
	from, to := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	require.NoError(t, bank.Airdrop(from, solana.LAMPORTS_PER_SOL))

	ix := system.NewTransferInstruction(1_000_000, from, to).Build()
	assert.ErrorIs(t, bank.Execute(context.Background(), nil, ix), types.ErrMissingRequiredSignature)
	require.NoError(t, bank.Execute(context.Background(), []solana.PublicKey{from}, ix))

	acct, err := bank.GetAccount(to)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), acct.Lamports)

	ix = system.NewTransferInstruction(2*solana.LAMPORTS_PER_SOL, from, to).Build()
	assert.ErrorIs(t, bank.Execute(context.Background(), []solana.PublicKey{from}, ix), types.ErrInsufficientFunds)
}

func TestSystemProcessor_Rejects(t *testing.T) {
	bank := NewBank(NewMemoryStore(), zaptest.NewLogger(t).Sugar())
	bank.Register(solana.SystemProgramID, SystemProcessor{})
	payer := solana.NewWallet().PublicKey()
	require.NoError(t, bank.Airdrop(payer, solana.LAMPORTS_PER_SOL))

	ix := system.NewAssignInstruction(solana.TokenProgramID, payer).Build()
	assert.ErrorIs(t, bank.Execute(context.Background(), []solana.PublicKey{payer}, ix), types.ErrInvalidInstructionData)

	garbage := solana.NewInstruction(solana.SystemProgramID, solana.AccountMetaSlice{solana.Meta(payer).WRITE().SIGNER()}, []byte{0xff})
	assert.ErrorIs(t, bank.Execute(context.Background(), []solana.PublicKey{payer}, garbage), types.ErrInvalidInstructionData)
}

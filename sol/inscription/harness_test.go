package inscription

import (
	"bytes"
	"context"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/meme-bots/go-inscription/sol/common"
	"github.com/meme-bots/go-inscription/sol/host"
	"github.com/meme-bots/go-inscription/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testBank struct {
	t         *testing.T
	bank      *host.Bank
	programID solana.PublicKey
	payer     solana.PublicKey
}

func newTestBank(t *testing.T) *testBank {
	t.Helper()
	bank := host.NewBank(host.NewMemoryStore(), zaptest.NewLogger(t).Sugar())
	bank.Register(common.InscriptionProgramID, Processor{})
	t.Cleanup(func() { _ = bank.Close() })

	tb := &testBank{t: t, bank: bank, programID: common.InscriptionProgramID}
	tb.payer = tb.fundedKey()
	return tb
}

func (tb *testBank) fundedKey() solana.PublicKey {
	key := solana.NewWallet().PublicKey()
	require.NoError(tb.t, tb.bank.Airdrop(key, 100*solana.LAMPORTS_PER_SOL))
	return key
}

func (tb *testBank) exec(signers []solana.PublicKey, ixs ...solana.Instruction) error {
	return tb.bank.Execute(context.Background(), signers, ixs...)
}

func (tb *testBank) mustExec(signers []solana.PublicKey, ixs ...solana.Instruction) {
	tb.t.Helper()
	require.NoError(tb.t, tb.exec(signers, ixs...))
}

func (tb *testBank) account(key solana.PublicKey) *host.Account {
	tb.t.Helper()
	acct, err := tb.bank.GetAccount(key)
	require.NoError(tb.t, err)
	return acct
}

func (tb *testBank) exists(key solana.PublicKey) bool {
	_, err := tb.bank.GetAccount(key)
	return err == nil
}

func (tb *testBank) totalLamports(keys ...solana.PublicKey) uint64 {
	var total uint64
	for _, key := range keys {
		if acct, err := tb.bank.GetAccount(key); err == nil {
			total += acct.Lamports
		}
	}
	return total
}

func (tb *testBank) metadata(key solana.PublicKey) *InscriptionMetadata {
	tb.t.Helper()
	m, err := DeserializeInscriptionMetadata(tb.account(key).Data)
	require.NoError(tb.t, err)
	return m
}

func (tb *testBank) shard(n uint8) *InscriptionShard {
	tb.t.Helper()
	address, _, err := FindShardAddress(tb.programID, n)
	require.NoError(tb.t, err)
	s, err := DeserializeInscriptionShard(tb.account(address).Data)
	require.NoError(tb.t, err)
	return s
}

func (tb *testBank) createShard(n uint8) {
	tb.t.Helper()
	ix, err := NewCreateShardInstruction(tb.programID, tb.payer, n)
	require.NoError(tb.t, err)
	tb.mustExec([]solana.PublicKey{tb.payer}, ix)
}

// initialize creates an inscription paid for and owned by the default payer.
func (tb *testBank) initialize(shard *uint8) (inscription, metadata solana.PublicKey) {
	tb.t.Helper()
	inscription = solana.NewWallet().PublicKey()
	ix, err := NewInitializeInstruction(tb.programID, inscription, tb.payer, solana.PublicKey{}, shard)
	require.NoError(tb.t, err)
	tb.mustExec([]solana.PublicKey{tb.payer, inscription}, ix)
	metadata, _, err = FindInscriptionMetadataAddress(tb.programID, inscription)
	require.NoError(tb.t, err)
	return inscription, metadata
}

func (tb *testBank) write(inscription solana.PublicKey, tag string, offset uint64, value []byte) error {
	ix, err := NewWriteDataInstruction(tb.programID, inscription, tb.payer, solana.PublicKey{}, tag, offset, value)
	require.NoError(tb.t, err)
	return tb.exec([]solana.PublicKey{tb.payer}, ix)
}

func (tb *testBank) plant(key, owner solana.PublicKey, data []byte) {
	tb.t.Helper()
	require.NoError(tb.t, tb.bank.SetAccount(key, &host.Account{
		Lamports: common.MinimumBalance(len(data)),
		Owner:    owner,
		Data:     data,
	}))
}

func (tb *testBank) plantMint(owner solana.PublicKey) solana.PublicKey {
	tb.t.Helper()
	key := solana.NewWallet().PublicKey()
	mint := token.Mint{Supply: 1, IsInitialized: true}
	buf := new(bytes.Buffer)
	require.NoError(tb.t, mint.MarshalWithEncoder(bin.NewBinEncoder(buf)))
	tb.plant(key, owner, buf.Bytes())
	return key
}

func (tb *testBank) plantTokenAccount(mint, owner solana.PublicKey, amount uint64) solana.PublicKey {
	tb.t.Helper()
	key := solana.NewWallet().PublicKey()
	account := token.Account{Mint: mint, Owner: owner, Amount: amount}
	buf := new(bytes.Buffer)
	require.NoError(tb.t, account.MarshalWithEncoder(bin.NewBinEncoder(buf)))
	tb.plant(key, solana.TokenProgramID, buf.Bytes())
	return key
}

type tokenMetadataOpts struct {
	standard   *types.TokenStandard
	collection *common.Collection
}

func (tb *testBank) plantTokenMetadata(mint, updateAuthority solana.PublicKey, opts tokenMetadataOpts) solana.PublicKey {
	tb.t.Helper()
	key := solana.NewWallet().PublicKey()
	md := common.Metadata{
		Key:             common.MetadataKeyV1,
		UpdateAuthority: updateAuthority,
		Mint:            mint,
		Data: common.Data{
			Name:   "Inscribed",
			Symbol: "INS",
			Uri:    "https://example.com/0.json",
		},
		IsMutable:  true,
		Collection: opts.collection,
	}
	if opts.standard != nil {
		standard := uint8(*opts.standard)
		md.TokenStandard = &standard
	}
	data, err := common.MetadataSerialize(md)
	require.NoError(tb.t, err)
	tb.plant(key, common.TokenMetadataProgramID, data)
	return key
}

// nft plants a mint and its token metadata with the default payer as update
// authority.
func (tb *testBank) nft(opts tokenMetadataOpts) (mint, tokenMetadata solana.PublicKey) {
	mint = tb.plantMint(solana.TokenProgramID)
	return mint, tb.plantTokenMetadata(mint, tb.payer, opts)
}

func u8(v uint8) *uint8 { return &v }

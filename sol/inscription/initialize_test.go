package inscription

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inscription/sol/common"
	"github.com/meme-bots/go-inscription/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tb := newTestBank(t)
	inscription, metadata := tb.initialize(nil)

	acct := tb.account(inscription)
	assert.Equal(t, tb.programID, acct.Owner)
	assert.Empty(t, acct.Data)
	assert.Equal(t, common.MinimumBalance(0), acct.Lamports)

	m := tb.metadata(metadata)
	_, bump, err := FindInscriptionMetadataAddress(tb.programID, inscription)
	require.NoError(t, err)
	assert.Equal(t, types.KeyInscriptionMetadataAccount, m.Key)
	assert.Equal(t, inscription, m.InscriptionAccount)
	assert.Equal(t, bump, m.Bump)
	assert.Equal(t, types.UnrankedInscription, m.InscriptionRank)
	assert.False(t, m.Ranked())
	assert.Nil(t, m.InscriptionBump)
	assert.Nil(t, m.Mint)
	assert.Equal(t, []solana.PublicKey{tb.payer}, m.UpdateAuthorities)
	assert.Empty(t, m.AssociatedInscriptions)

	metaAcct := tb.account(metadata)
	assert.Equal(t, tb.programID, metaAcct.Owner)
	assert.Equal(t, common.MinimumBalance(len(metaAcct.Data)), metaAcct.Lamports)
}

func TestInitialize_ExplicitAuthority(t *testing.T) {
	tb := newTestBank(t)
	authority := solana.NewWallet().PublicKey()
	inscription := solana.NewWallet().PublicKey()

	ix, err := NewInitializeInstruction(tb.programID, inscription, tb.payer, authority, nil)
	require.NoError(t, err)
	tb.mustExec([]solana.PublicKey{tb.payer, inscription, authority}, ix)

	metadata, _, err := FindInscriptionMetadataAddress(tb.programID, inscription)
	require.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{authority}, tb.metadata(metadata).UpdateAuthorities)
}

func TestInitialize_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(ix *Instruction)
		signers func(tb *testBank, inscription solana.PublicKey) []solana.PublicKey
		wantErr error
	}{
		{
			name: "authority did not sign",
			mutate: func(ix *Instruction) {
				ix.AccountMetaSlice[4] = solana.Meta(solana.NewWallet().PublicKey())
			},
			wantErr: types.ErrMissingRequiredSignature,
		},
		{
			name: "inscription did not sign",
			mutate: func(ix *Instruction) {
				ix.AccountMetaSlice[0].IsSigner = false
			},
			signers: func(tb *testBank, _ solana.PublicKey) []solana.PublicKey {
				return []solana.PublicKey{tb.payer}
			},
			wantErr: types.ErrMissingRequiredSignature,
		},
		{
			name: "metadata not derived from inscription",
			mutate: func(ix *Instruction) {
				ix.AccountMetaSlice[1] = solana.Meta(solana.NewWallet().PublicKey()).WRITE()
			},
			wantErr: types.ErrMetadataDerivedKeyInvalid,
		},
		{
			name: "wrong system program",
			mutate: func(ix *Instruction) {
				ix.AccountMetaSlice[5] = solana.Meta(solana.TokenProgramID)
			},
			wantErr: types.ErrInvalidSystemProgram,
		},
		{
			name: "missing accounts",
			mutate: func(ix *Instruction) {
				ix.AccountMetaSlice = ix.AccountMetaSlice[:3]
			},
			wantErr: types.ErrNotEnoughAccountKeys,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := newTestBank(t)
			inscription := solana.NewWallet().PublicKey()
			ix, err := NewInitializeInstruction(tb.programID, inscription, tb.payer, solana.PublicKey{}, nil)
			require.NoError(t, err)
			tt.mutate(ix)

			signers := []solana.PublicKey{tb.payer, inscription}
			if tt.signers != nil {
				signers = tt.signers(tb, inscription)
			}
			err = tb.exec(signers, ix)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, tb.exists(inscription))
		})
	}
}

func TestInitialize_Twice(t *testing.T) {
	tb := newTestBank(t)
	inscription, _ := tb.initialize(nil)

	ix, err := NewInitializeInstruction(tb.programID, inscription, tb.payer, solana.PublicKey{}, nil)
	require.NoError(t, err)
	err = tb.exec([]solana.PublicKey{tb.payer, inscription}, ix)
	assert.ErrorIs(t, err, types.ErrAlreadyInitialized)
}

func TestInitialize_Ranks(t *testing.T) {
	tb := newTestBank(t)
	tb.createShard(0)
	tb.createShard(3)

	var ranks []uint64
	for i := 0; i < 4; i++ {
		_, metadata := tb.initialize(u8(3))
		ranks = append(ranks, tb.metadata(metadata).InscriptionRank)
	}
	assert.Equal(t, []uint64{3, 35, 67, 99}, ranks)
	assert.Equal(t, uint64(4), tb.shard(3).Count)

	_, metadata := tb.initialize(u8(0))
	assert.Equal(t, uint64(0), tb.metadata(metadata).InscriptionRank)
	_, metadata = tb.initialize(u8(0))
	assert.Equal(t, uint64(32), tb.metadata(metadata).InscriptionRank)
	assert.Equal(t, uint64(2), tb.shard(0).Count)
}

func TestInitialize_MissingShard(t *testing.T) {
	tb := newTestBank(t)
	inscription := solana.NewWallet().PublicKey()
	ix, err := NewInitializeInstruction(tb.programID, inscription, tb.payer, solana.PublicKey{}, u8(5))
	require.NoError(t, err)

	err = tb.exec([]solana.PublicKey{tb.payer, inscription}, ix)
	assert.ErrorIs(t, err, types.ErrInvalidShardAccount)
	assert.False(t, tb.exists(inscription))
}

func TestCreateShard(t *testing.T) {
	tb := newTestBank(t)
	tb.createShard(7)

	address, bump, err := FindShardAddress(tb.programID, 7)
	require.NoError(t, err)
	acct := tb.account(address)
	assert.Equal(t, tb.programID, acct.Owner)
	assert.Equal(t, common.MinimumBalance(len(acct.Data)), acct.Lamports)
	assert.Equal(t, &InscriptionShard{Key: types.KeyInscriptionShardAccount, Bump: bump, ShardNumber: 7}, tb.shard(7))

	ix, err := NewCreateShardInstruction(tb.programID, tb.payer, 7)
	require.NoError(t, err)
	assert.ErrorIs(t, tb.exec([]solana.PublicKey{tb.payer}, ix), types.ErrAlreadyInitialized)

	ix, err = NewCreateShardInstruction(tb.programID, tb.payer, types.ShardCount)
	require.NoError(t, err)
	assert.ErrorIs(t, tb.exec([]solana.PublicKey{tb.payer}, ix), types.ErrInvalidShardAccount)
}

func TestInitializeFromMint(t *testing.T) {
	tb := newTestBank(t)
	tb.createShard(1)
	mint, tokenMetadata := tb.nft(tokenMetadataOpts{})

	ix, err := NewInitializeFromMintInstruction(tb.programID, InitializeFromMintParams{
		Mint:          mint,
		TokenMetadata: tokenMetadata,
		Payer:         tb.payer,
		Shard:         1,
	})
	require.NoError(t, err)
	tb.mustExec([]solana.PublicKey{tb.payer}, ix)

	mintInscription, inscriptionBump, err := FindMintInscriptionAddress(tb.programID, mint)
	require.NoError(t, err)
	metadata, bump, err := FindInscriptionMetadataAddress(tb.programID, mintInscription)
	require.NoError(t, err)

	assert.Equal(t, tb.programID, tb.account(mintInscription).Owner)
	m := tb.metadata(metadata)
	assert.Equal(t, types.KeyMintInscriptionMetadataAccount, m.Key)
	assert.Equal(t, mintInscription, m.InscriptionAccount)
	assert.Equal(t, bump, m.Bump)
	require.NotNil(t, m.InscriptionBump)
	assert.Equal(t, inscriptionBump, *m.InscriptionBump)
	assert.Equal(t, uint64(1), m.InscriptionRank)
	assert.Equal(t, []solana.PublicKey{tb.payer}, m.UpdateAuthorities)

	// a second inscription for the same mint collides with the first
	err = tb.exec([]solana.PublicKey{tb.payer}, ix)
	assert.ErrorIs(t, err, types.ErrAlreadyInitialized)
}

func TestInitializeFromMint_TokenAccount(t *testing.T) {
	tests := []struct {
		name    string
		amount  uint64
		other   bool
		wantErr error
	}{
		{name: "holder", amount: 1},
		{name: "empty balance", amount: 0, wantErr: types.ErrNotEnoughTokens},
		{name: "other mint", amount: 1, other: true, wantErr: types.ErrMintMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := newTestBank(t)
			tb.createShard(0)
			mint, tokenMetadata := tb.nft(tokenMetadataOpts{})
			held := mint
			if tt.other {
				held = solana.NewWallet().PublicKey()
			}
			tokenAccount := tb.plantTokenAccount(held, tb.payer, tt.amount)

			ix, err := NewInitializeFromMintInstruction(tb.programID, InitializeFromMintParams{
				Mint:          mint,
				TokenMetadata: tokenMetadata,
				TokenAccount:  tokenAccount,
				Payer:         tb.payer,
			})
			require.NoError(t, err)
			err = tb.exec([]solana.PublicKey{tb.payer}, ix)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInitializeFromMint_Rejects(t *testing.T) {
	fungible := types.TokenStandardFungible
	programmable := types.TokenStandardProgrammableNonFungible

	tests := []struct {
		name    string
		setup   func(tb *testBank) InitializeFromMintParams
		wantErr error
	}{
		{
			name: "programmable nft is accepted",
			setup: func(tb *testBank) InitializeFromMintParams {
				mint, md := tb.nft(tokenMetadataOpts{standard: &programmable})
				return InitializeFromMintParams{Mint: mint, TokenMetadata: md}
			},
		},
		{
			name: "fungible token",
			setup: func(tb *testBank) InitializeFromMintParams {
				mint, md := tb.nft(tokenMetadataOpts{standard: &fungible})
				return InitializeFromMintParams{Mint: mint, TokenMetadata: md}
			},
			wantErr: types.ErrInvalidTokenStandard,
		},
		{
			name: "metadata of another mint",
			setup: func(tb *testBank) InitializeFromMintParams {
				mint := tb.plantMint(solana.TokenProgramID)
				md := tb.plantTokenMetadata(solana.NewWallet().PublicKey(), tb.payer, tokenMetadataOpts{})
				return InitializeFromMintParams{Mint: mint, TokenMetadata: md}
			},
			wantErr: types.ErrMintMismatch,
		},
		{
			name: "payer is not the update authority",
			setup: func(tb *testBank) InitializeFromMintParams {
				mint := tb.plantMint(solana.TokenProgramID)
				md := tb.plantTokenMetadata(mint, solana.NewWallet().PublicKey(), tokenMetadataOpts{})
				return InitializeFromMintParams{Mint: mint, TokenMetadata: md}
			},
			wantErr: types.ErrInvalidAuthority,
		},
		{
			name: "mint not owned by a token program",
			setup: func(tb *testBank) InitializeFromMintParams {
				mint := tb.plantMint(solana.SystemProgramID)
				md := tb.plantTokenMetadata(mint, tb.payer, tokenMetadataOpts{})
				return InitializeFromMintParams{Mint: mint, TokenMetadata: md}
			},
			wantErr: types.ErrIncorrectOwner,
		},
		{
			name: "token 2022 mint is accepted",
			setup: func(tb *testBank) InitializeFromMintParams {
				mint := tb.plantMint(common.Token2022ProgramID)
				md := tb.plantTokenMetadata(mint, tb.payer, tokenMetadataOpts{})
				return InitializeFromMintParams{Mint: mint, TokenMetadata: md}
			},
		},
		{
			name: "shard not created",
			setup: func(tb *testBank) InitializeFromMintParams {
				mint, md := tb.nft(tokenMetadataOpts{})
				return InitializeFromMintParams{Mint: mint, TokenMetadata: md, Shard: 9}
			},
			wantErr: types.ErrInvalidShardAccount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := newTestBank(t)
			tb.createShard(0)
			params := tt.setup(tb)
			params.Payer = tb.payer

			ix, err := NewInitializeFromMintInstruction(tb.programID, params)
			require.NoError(t, err)
			err = tb.exec([]solana.PublicKey{tb.payer}, ix)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

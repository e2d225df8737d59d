package inscription

import (
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/treeout"
	"github.com/meme-bots/go-inscription/sol/common"
	"github.com/meme-bots/go-inscription/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInstruction(t *testing.T) {
	programID := common.InscriptionProgramID
	inscription, payer := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()

	write, err := NewWriteDataInstruction(programID, inscription, payer, solana.PublicKey{}, "image", 42, []byte("payload"))
	require.NoError(t, err)
	inject, err := NewInjectValueInstruction(programID, inscription, payer, solana.PublicKey{}, "", 1, 3, []byte{9})
	require.NoError(t, err)
	shard, err := NewCreateShardInstruction(programID, payer, 31)
	require.NoError(t, err)
	add, err := NewAddAuthorityInstruction(programID, inscription, payer, solana.PublicKey{}, payer)
	require.NoError(t, err)

	for _, ix := range []*Instruction{write, inject, shard, add} {
		t.Run(InstructionName(ix.Kind), func(t *testing.T) {
			data, err := ix.Data()
			require.NoError(t, err)
			kind, args, err := DecodeInstruction(data)
			require.NoError(t, err)
			assert.Equal(t, ix.Kind, kind)
			assert.Equal(t, ix.Args, args)
		})
	}
}

func TestDecodeInstruction_Layout(t *testing.T) {
	tag := "a"
	ix := &Instruction{Kind: InstructionWriteData, Args: &WriteDataArgs{AssociatedTag: &tag, Offset: 2, Value: []byte{7}}}
	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{
		3,
		1, 1, 0, 0, 0, 'a',
		2, 0, 0, 0, 0, 0, 0, 0,
		1, 0, 0, 0, 7,
	}, data)
}

func TestDecodeInstruction_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"unknown kind", []byte{14}},
		{"truncated", []byte{InstructionWriteData, 0, 1, 2}},
		{"trailing bytes", []byte{InstructionInitialize, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeInstruction(tt.data)
			assert.ErrorIs(t, err, types.ErrInvalidInstructionData)
		})
	}
}

func TestInstruction_OptionalAccounts(t *testing.T) {
	programID := common.InscriptionProgramID
	ix, err := NewInitializeInstruction(programID, solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), solana.PublicKey{}, nil)
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 6)
	assert.Equal(t, programID, accounts[2].PublicKey)
	assert.Equal(t, programID, accounts[4].PublicKey)
	assert.False(t, accounts[4].IsSigner)
	assert.Equal(t, solana.SystemProgramID, accounts[5].PublicKey)
}

func TestInstruction_EncodeToTree(t *testing.T) {
	ix, err := NewAppendValueInstruction(common.InscriptionProgramID, solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), solana.PublicKey{}, "", []byte(`{"a":1}`))
	require.NoError(t, err)

	tree := treeout.New("tx")
	ix.EncodeToTree(tree)
	out := tree.String()
	assert.True(t, strings.Contains(out, "AppendValue"), out)
	assert.True(t, strings.Contains(out, "Inscription"), out)
}

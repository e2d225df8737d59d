package inscription

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inscription/sol/common"
	"github.com/meme-bots/go-inscription/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteData(t *testing.T) {
	tb := newTestBank(t)
	inscription, _ := tb.initialize(nil)

	require.NoError(t, tb.write(inscription, "", 0, []byte("hello")))
	assert.Equal(t, []byte("hello"), tb.account(inscription).Data)
	assert.Equal(t, common.MinimumBalance(5), tb.account(inscription).Lamports)

	require.NoError(t, tb.write(inscription, "", 3, []byte("XY")))
	assert.Equal(t, []byte("helXY"), tb.account(inscription).Data)

	require.NoError(t, tb.write(inscription, "", 8, []byte("Z")))
	assert.Equal(t, []byte("helXY\x00\x00\x00Z"), tb.account(inscription).Data)
	assert.Equal(t, common.MinimumBalance(9), tb.account(inscription).Lamports)

	require.NoError(t, tb.write(inscription, "", 0, nil))
	assert.Len(t, tb.account(inscription).Data, 9)
}

func TestWriteData_GrowthLimit(t *testing.T) {
	tb := newTestBank(t)
	inscription, _ := tb.initialize(nil)

	err := tb.write(inscription, "", 0, make([]byte, common.MaxPermittedDataIncrease+1))
	assert.ErrorIs(t, err, types.ErrInvalidRealloc)
	assert.Empty(t, tb.account(inscription).Data)

	chunk := bytes.Repeat([]byte{1}, common.MaxPermittedDataIncrease)
	require.NoError(t, tb.write(inscription, "", 0, chunk))
	require.NoError(t, tb.write(inscription, "", common.MaxPermittedDataIncrease, chunk))
	assert.Len(t, tb.account(inscription).Data, 2*common.MaxPermittedDataIncrease)

	err = tb.write(inscription, "", ^uint64(0), []byte{1})
	assert.ErrorIs(t, err, types.ErrNumericalOverflow)
}

func TestWriteData_Authority(t *testing.T) {
	tb := newTestBank(t)
	inscription, _ := tb.initialize(nil)
	stranger := tb.fundedKey()

	ix, err := NewWriteDataInstruction(tb.programID, inscription, stranger, solana.PublicKey{}, "", 0, []byte("x"))
	require.NoError(t, err)
	assert.ErrorIs(t, tb.exec([]solana.PublicKey{stranger}, ix), types.ErrInvalidAuthority)

	// the stranger pays while an authority signs
	ix, err = NewWriteDataInstruction(tb.programID, inscription, stranger, tb.payer, "", 0, []byte("x"))
	require.NoError(t, err)
	tb.mustExec([]solana.PublicKey{stranger, tb.payer}, ix)
	assert.Equal(t, []byte("x"), tb.account(inscription).Data)
}

func TestWriteData_WrongMetadata(t *testing.T) {
	tb := newTestBank(t)
	inscription, _ := tb.initialize(nil)
	_, otherMetadata := tb.initialize(nil)

	ix, err := NewWriteDataInstruction(tb.programID, inscription, tb.payer, solana.PublicKey{}, "", 0, []byte("x"))
	require.NoError(t, err)
	ix.AccountMetaSlice[1] = solana.Meta(otherMetadata).WRITE()
	assert.ErrorIs(t, tb.exec([]solana.PublicKey{tb.payer}, ix), types.ErrDerivedKeyInvalid)
}

func TestClearData(t *testing.T) {
	tb := newTestBank(t)
	inscription, metadata := tb.initialize(nil)
	total := tb.totalLamports(tb.payer, inscription, metadata)

	require.NoError(t, tb.write(inscription, "", 0, make([]byte, 1000)))
	ix, err := NewClearDataInstruction(tb.programID, inscription, tb.payer, solana.PublicKey{}, "")
	require.NoError(t, err)
	tb.mustExec([]solana.PublicKey{tb.payer}, ix)

	acct := tb.account(inscription)
	assert.Empty(t, acct.Data)
	assert.Equal(t, common.MinimumBalance(0), acct.Lamports)
	assert.Equal(t, total, tb.totalLamports(tb.payer, inscription, metadata))
}

func TestAllocate(t *testing.T) {
	tb := newTestBank(t)
	inscription, _ := tb.initialize(nil)

	allocate := func(size uint64) {
		ix, err := NewAllocateInstruction(tb.programID, inscription, tb.payer, solana.PublicKey{}, "", size)
		require.NoError(t, err)
		tb.mustExec([]solana.PublicKey{tb.payer}, ix)
	}

	allocate(25000)
	assert.Len(t, tb.account(inscription).Data, common.MaxPermittedDataIncrease)
	allocate(25000)
	assert.Len(t, tb.account(inscription).Data, 2*common.MaxPermittedDataIncrease)
	allocate(25000)
	assert.Len(t, tb.account(inscription).Data, 25000)
	assert.Equal(t, common.MinimumBalance(25000), tb.account(inscription).Lamports)

	allocate(100)
	assert.Len(t, tb.account(inscription).Data, 100)
	assert.Equal(t, common.MinimumBalance(100), tb.account(inscription).Lamports)
}

func TestInjectValue(t *testing.T) {
	tests := []struct {
		name       string
		start, end uint64
		value      string
		want       string
		wantErr    error
	}{
		{name: "same size", start: 0, end: 5, value: "HELLO", want: "HELLO world"},
		{name: "shrinks", start: 6, end: 11, value: "go", want: "hello go"},
		{name: "grows", start: 5, end: 5, value: ",", want: "hello, world"},
		{name: "deletes", start: 5, end: 11, value: "", want: "hello"},
		{name: "past the end", start: 3, end: 20, value: "x", wantErr: types.ErrNumericalOverflow},
		{name: "inverted range", start: 4, end: 2, value: "x", wantErr: types.ErrNumericalOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := newTestBank(t)
			inscription, _ := tb.initialize(nil)
			require.NoError(t, tb.write(inscription, "", 0, []byte("hello world")))

			ix, err := NewInjectValueInstruction(tb.programID, inscription, tb.payer, solana.PublicKey{}, "", tt.start, tt.end, []byte(tt.value))
			require.NoError(t, err)
			err = tb.exec([]solana.PublicKey{tb.payer}, ix)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, []byte("hello world"), tb.account(inscription).Data)
				return
			}
			require.NoError(t, err)
			acct := tb.account(inscription)
			assert.Equal(t, tt.want, string(acct.Data))
			assert.Equal(t, common.MinimumBalance(len(tt.want)), acct.Lamports)
		})
	}
}

func TestAppendValue(t *testing.T) {
	tb := newTestBank(t)
	inscription, _ := tb.initialize(nil)
	require.NoError(t, tb.write(inscription, "", 0, []byte(`{"name":"a","traits":[1]}`)))

	appendValue := func(value string) error {
		ix, err := NewAppendValueInstruction(tb.programID, inscription, tb.payer, solana.PublicKey{}, "", []byte(value))
		require.NoError(t, err)
		return tb.exec([]solana.PublicKey{tb.payer}, ix)
	}

	require.NoError(t, appendValue(`{"name":"b","traits":[2],"extra":{"k":"v"}}`))
	data := tb.account(inscription).Data
	assert.JSONEq(t, `{"name":"ab","traits":[1,2],"extra":{"k":"v"}}`, string(data))
	assert.Equal(t, common.MinimumBalance(len(data)), tb.account(inscription).Lamports)

	assert.ErrorIs(t, appendValue(`{"name":1}`), types.ErrInvalidJson)
	assert.ErrorIs(t, appendValue(`not json`), types.ErrInvalidJson)
	assert.Equal(t, data, tb.account(inscription).Data)
}

func TestClose(t *testing.T) {
	tb := newTestBank(t)
	inscription, metadata := tb.initialize(nil)
	require.NoError(t, tb.write(inscription, "", 0, []byte("bye")))
	total := tb.totalLamports(tb.payer, inscription, metadata)

	ix, err := NewCloseInstruction(tb.programID, inscription, tb.payer, solana.PublicKey{}, "")
	require.NoError(t, err)
	tb.mustExec([]solana.PublicKey{tb.payer}, ix)

	assert.False(t, tb.exists(inscription))
	assert.False(t, tb.exists(metadata))
	assert.Equal(t, total, tb.account(tb.payer).Lamports)

	// a closed inscription can be created again
	ix2, err := NewInitializeInstruction(tb.programID, inscription, tb.payer, solana.PublicKey{}, nil)
	require.NoError(t, err)
	tb.mustExec([]solana.PublicKey{tb.payer, inscription}, ix2)
}

func TestClose_NotAuthority(t *testing.T) {
	tb := newTestBank(t)
	inscription, metadata := tb.initialize(nil)
	stranger := tb.fundedKey()

	ix, err := NewCloseInstruction(tb.programID, inscription, stranger, solana.PublicKey{}, "")
	require.NoError(t, err)
	assert.ErrorIs(t, tb.exec([]solana.PublicKey{stranger}, ix), types.ErrInvalidAuthority)
	assert.True(t, tb.exists(inscription))
	assert.True(t, tb.exists(metadata))
}

package host

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inscription/types"
)

// Account is the persisted state of one address.
type Account struct {
	Lamports uint64
	Owner    solana.PublicKey
	Data     []byte
}

func NewEmptyAccount() *Account {
	return &Account{Owner: solana.SystemProgramID, Data: []byte{}}
}

func (a *Account) Clone() *Account {
	return &Account{
		Lamports: a.Lamports,
		Owner:    a.Owner,
		Data:     bytes.Clone(a.Data),
	}
}

func (a *Account) equal(o *Account) bool {
	return a.Lamports == o.Lamports && a.Owner.Equals(o.Owner) && bytes.Equal(a.Data, o.Data)
}

func (a Account) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = encoder.WriteUint64(a.Lamports, binary.LittleEndian); err != nil {
		return err
	}
	if err = encoder.WriteBytes(a.Owner[:], false); err != nil {
		return err
	}
	if err = encoder.WriteUint32(uint32(len(a.Data)), binary.LittleEndian); err != nil {
		return err
	}
	return encoder.WriteBytes(a.Data, false)
}

func (a *Account) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if a.Lamports, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	owner, err := decoder.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	a.Owner = solana.PublicKeyFromBytes(owner)
	size, err := decoder.ReadUint32(binary.LittleEndian)
	if err != nil {
		return err
	}
	data, err := decoder.ReadNBytes(int(size))
	if err != nil {
		return err
	}
	a.Data = bytes.Clone(data)
	return nil
}

func encodeAccount(a *Account) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := a.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("encode account: %v: %w", err, types.ErrSerialize)
	}
	return buf.Bytes(), nil
}

func decodeAccount(data []byte) (*Account, error) {
	var a Account
	if err := a.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return nil, fmt.Errorf("decode account: %v: %w", err, types.ErrDeserialize)
	}
	return &a, nil
}

// AccountInfo is the view of an account handed to a program for one instruction.
type AccountInfo struct {
	Key        solana.PublicKey
	IsSigner   bool
	IsWritable bool

	Lamports uint64
	Owner    solana.PublicKey
	Data     []byte

	originalLen int
}

func newAccountInfo(key solana.PublicKey, a *Account) *AccountInfo {
	return &AccountInfo{
		Key:         key,
		Lamports:    a.Lamports,
		Owner:       a.Owner,
		Data:        bytes.Clone(a.Data),
		originalLen: len(a.Data),
	}
}

func (a *AccountInfo) DataLen() int {
	return len(a.Data)
}

func (a *AccountInfo) DataIsEmpty() bool {
	return len(a.Data) == 0
}

func (a *AccountInfo) IsOwnedBy(owner solana.PublicKey) bool {
	return a.Owner.Equals(owner)
}

func (a *AccountInfo) account() *Account {
	return &Account{Lamports: a.Lamports, Owner: a.Owner, Data: bytes.Clone(a.Data)}
}

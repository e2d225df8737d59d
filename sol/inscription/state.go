package inscription

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/meme-bots/go-inscription/types"
)

type AssociatedInscription struct {
	Tag      string
	Bump     uint8
	DataType types.DataType
}

type InscriptionMetadata struct {
	Key                    types.Key
	InscriptionAccount     solana.PublicKey
	Bump                   uint8
	DataType               types.DataType
	InscriptionRank        uint64
	InscriptionBump        *uint8
	UpdateAuthorities      []solana.PublicKey
	AssociatedInscriptions []AssociatedInscription
	Mint                   *solana.PublicKey
	Padding                [7]byte
}

func NewInscriptionMetadata(key types.Key, inscription solana.PublicKey, bump uint8) *InscriptionMetadata {
	return &InscriptionMetadata{
		Key:                    key,
		InscriptionAccount:     inscription,
		Bump:                   bump,
		DataType:               types.DataTypeUninitialized,
		InscriptionRank:        types.UnrankedInscription,
		UpdateAuthorities:      []solana.PublicKey{},
		AssociatedInscriptions: []AssociatedInscription{},
	}
}

func (m *InscriptionMetadata) Ranked() bool {
	return m.InscriptionRank != types.UnrankedInscription
}

// Size is the length of the serialized record.
func (m *InscriptionMetadata) Size() int {
	n := 1 + 32 + 1 + 1 + 8 + 1 + 4 + 32*len(m.UpdateAuthorities) + 4 + 1 + len(m.Padding)
	if m.InscriptionBump != nil {
		n++
	}
	for _, a := range m.AssociatedInscriptions {
		n += 4 + len(a.Tag) + 1 + 1
	}
	if m.Mint != nil {
		n += 32
	}
	return n
}

func writeString(encoder *bin.Encoder, s string) error {
	if err := encoder.WriteUint32(uint32(len(s)), binary.LittleEndian); err != nil {
		return err
	}
	return encoder.WriteBytes([]byte(s), false)
}

func readString(decoder *bin.Decoder) (string, error) {
	size, err := decoder.ReadUint32(binary.LittleEndian)
	if err != nil {
		return "", err
	}
	if int(size) > decoder.Remaining() {
		return "", fmt.Errorf("string length %d exceeds remaining %d bytes", size, decoder.Remaining())
	}
	b, err := decoder.ReadNBytes(int(size))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func readPublicKey(decoder *bin.Decoder) (solana.PublicKey, error) {
	b, err := decoder.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(b), nil
}

func readLength(decoder *bin.Decoder, elemSize int) (int, error) {
	n, err := decoder.ReadUint32(binary.LittleEndian)
	if err != nil {
		return 0, err
	}
	if int(n)*elemSize > decoder.Remaining() {
		return 0, fmt.Errorf("vector length %d exceeds remaining %d bytes", n, decoder.Remaining())
	}
	return int(n), nil
}

func (a AssociatedInscription) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = writeString(encoder, a.Tag); err != nil {
		return err
	}
	if err = encoder.WriteUint8(a.Bump); err != nil {
		return err
	}
	return encoder.WriteUint8(uint8(a.DataType))
}

func (a *AssociatedInscription) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if a.Tag, err = readString(decoder); err != nil {
		return err
	}
	if a.Bump, err = decoder.ReadUint8(); err != nil {
		return err
	}
	dataType, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	a.DataType = types.DataType(dataType)
	return nil
}

func (m InscriptionMetadata) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = encoder.WriteUint8(uint8(m.Key)); err != nil {
		return err
	}
	if err = encoder.WriteBytes(m.InscriptionAccount[:], false); err != nil {
		return err
	}
	if err = encoder.WriteUint8(m.Bump); err != nil {
		return err
	}
	if err = encoder.WriteUint8(uint8(m.DataType)); err != nil {
		return err
	}
	if err = encoder.WriteUint64(m.InscriptionRank, binary.LittleEndian); err != nil {
		return err
	}
	if err = encoder.WriteBool(m.InscriptionBump != nil); err != nil {
		return err
	}
	if m.InscriptionBump != nil {
		if err = encoder.WriteUint8(*m.InscriptionBump); err != nil {
			return err
		}
	}
	if err = encoder.WriteUint32(uint32(len(m.UpdateAuthorities)), binary.LittleEndian); err != nil {
		return err
	}
	for _, authority := range m.UpdateAuthorities {
		if err = encoder.WriteBytes(authority[:], false); err != nil {
			return err
		}
	}
	if err = encoder.WriteUint32(uint32(len(m.AssociatedInscriptions)), binary.LittleEndian); err != nil {
		return err
	}
	for _, associated := range m.AssociatedInscriptions {
		if err = associated.MarshalWithEncoder(encoder); err != nil {
			return err
		}
	}
	if err = encoder.WriteBool(m.Mint != nil); err != nil {
		return err
	}
	if m.Mint != nil {
		if err = encoder.WriteBytes(m.Mint[:], false); err != nil {
			return err
		}
	}
	return encoder.WriteBytes(m.Padding[:], false)
}

func (m *InscriptionMetadata) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	key, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	m.Key = types.Key(key)
	if m.InscriptionAccount, err = readPublicKey(decoder); err != nil {
		return err
	}
	if m.Bump, err = decoder.ReadUint8(); err != nil {
		return err
	}
	dataType, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	m.DataType = types.DataType(dataType)
	if m.InscriptionRank, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	hasBump, err := decoder.ReadBool()
	if err != nil {
		return err
	}
	if hasBump {
		bump, err := decoder.ReadUint8()
		if err != nil {
			return err
		}
		m.InscriptionBump = &bump
	}

	n, err := readLength(decoder, solana.PublicKeyLength)
	if err != nil {
		return err
	}
	m.UpdateAuthorities = make([]solana.PublicKey, n)
	for i := range m.UpdateAuthorities {
		if m.UpdateAuthorities[i], err = readPublicKey(decoder); err != nil {
			return err
		}
	}

	// each entry is at least a length prefix, a bump and a data type
	if n, err = readLength(decoder, 6); err != nil {
		return err
	}
	m.AssociatedInscriptions = make([]AssociatedInscription, n)
	for i := range m.AssociatedInscriptions {
		if err = m.AssociatedInscriptions[i].UnmarshalWithDecoder(decoder); err != nil {
			return err
		}
	}

	hasMint, err := decoder.ReadBool()
	if err != nil {
		return err
	}
	if hasMint {
		mint, err := readPublicKey(decoder)
		if err != nil {
			return err
		}
		m.Mint = &mint
	}

	if decoder.Remaining() >= len(m.Padding) {
		padding, err := decoder.ReadNBytes(len(m.Padding))
		if err != nil {
			return err
		}
		copy(m.Padding[:], padding)
	}
	return nil
}

func (m *InscriptionMetadata) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := m.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("inscription metadata: %v: %w", err, types.ErrSerialize)
	}
	return buf.Bytes(), nil
}

// DeserializeInscriptionMetadata decodes a metadata record of either key.
// Trailing bytes past the record are ignored.
func DeserializeInscriptionMetadata(data []byte) (*InscriptionMetadata, error) {
	var m InscriptionMetadata
	if err := m.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return nil, fmt.Errorf("inscription metadata: %v: %w", err, types.ErrDeserialize)
	}
	if m.Key != types.KeyInscriptionMetadataAccount && m.Key != types.KeyMintInscriptionMetadataAccount {
		return nil, fmt.Errorf("inscription metadata: unexpected key %s: %w", m.Key, types.ErrInvalidInscriptionMetadataAccount)
	}
	return &m, nil
}

type InscriptionShard struct {
	Key         types.Key
	Bump        uint8
	ShardNumber uint8
	Count       uint64
}

func (s InscriptionShard) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = encoder.WriteUint8(uint8(s.Key)); err != nil {
		return err
	}
	if err = encoder.WriteUint8(s.Bump); err != nil {
		return err
	}
	if err = encoder.WriteUint8(s.ShardNumber); err != nil {
		return err
	}
	return encoder.WriteUint64(s.Count, binary.LittleEndian)
}

func (s *InscriptionShard) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	key, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	s.Key = types.Key(key)
	if s.Bump, err = decoder.ReadUint8(); err != nil {
		return err
	}
	if s.ShardNumber, err = decoder.ReadUint8(); err != nil {
		return err
	}
	s.Count, err = decoder.ReadUint64(binary.LittleEndian)
	return err
}

func (s *InscriptionShard) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := s.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("inscription shard: %v: %w", err, types.ErrSerialize)
	}
	return buf.Bytes(), nil
}

func DeserializeInscriptionShard(data []byte) (*InscriptionShard, error) {
	var s InscriptionShard
	if err := s.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return nil, fmt.Errorf("inscription shard: %v: %w", err, types.ErrDeserialize)
	}
	if s.Key != types.KeyInscriptionShardAccount {
		return nil, fmt.Errorf("inscription shard: unexpected key %s: %w", s.Key, types.ErrInvalidShardAccount)
	}
	return &s, nil
}

package inscription

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/text/format"
	"github.com/gagliardetto/treeout"
	"github.com/meme-bots/go-inscription/types"
)

const ProgramName = "Inscription"

const (
	InstructionInitialize uint8 = iota
	InstructionInitializeFromMint
	InstructionClose
	InstructionWriteData
	InstructionClearData
	InstructionAddAuthority
	InstructionRemoveAuthority
	InstructionCreateShard
	InstructionInitializeAssociatedInscription
	InstructionAllocate
	InstructionSetMint
	InstructionDelegate
	InstructionInjectValue
	InstructionAppendValue
)

var instructionNames = []string{
	"Initialize",
	"InitializeFromMint",
	"Close",
	"WriteData",
	"ClearData",
	"AddAuthority",
	"RemoveAuthority",
	"CreateShard",
	"InitializeAssociatedInscription",
	"Allocate",
	"SetMint",
	"Delegate",
	"InjectValue",
	"AppendValue",
}

func InstructionName(kind uint8) string {
	if int(kind) < len(instructionNames) {
		return instructionNames[kind]
	}
	return fmt.Sprintf("Unknown(%d)", kind)
}

type param struct {
	name  string
	value interface{}
}

type InstructionArgs interface {
	MarshalWithEncoder(encoder *bin.Encoder) error
	UnmarshalWithDecoder(decoder *bin.Decoder) error
	params() []param
}

func newArgs(kind uint8) (InstructionArgs, error) {
	switch kind {
	case InstructionInitialize, InstructionInitializeFromMint, InstructionRemoveAuthority,
		InstructionSetMint, InstructionDelegate:
		return &EmptyArgs{}, nil
	case InstructionClose, InstructionClearData:
		return &TagArgs{}, nil
	case InstructionWriteData:
		return &WriteDataArgs{}, nil
	case InstructionAddAuthority:
		return &AddAuthorityArgs{}, nil
	case InstructionCreateShard:
		return &CreateShardArgs{}, nil
	case InstructionInitializeAssociatedInscription:
		return &AssociateArgs{}, nil
	case InstructionAllocate:
		return &AllocateArgs{}, nil
	case InstructionInjectValue:
		return &InjectValueArgs{}, nil
	case InstructionAppendValue:
		return &AppendValueArgs{}, nil
	}
	return nil, fmt.Errorf("unknown instruction %d: %w", kind, types.ErrInvalidInstructionData)
}

func writeOptionalString(encoder *bin.Encoder, s *string) error {
	if err := encoder.WriteBool(s != nil); err != nil {
		return err
	}
	if s == nil {
		return nil
	}
	return writeString(encoder, *s)
}

func readOptionalString(decoder *bin.Decoder) (*string, error) {
	some, err := decoder.ReadBool()
	if err != nil || !some {
		return nil, err
	}
	s, err := readString(decoder)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func writeByteVec(encoder *bin.Encoder, b []byte) error {
	if err := encoder.WriteUint32(uint32(len(b)), binary.LittleEndian); err != nil {
		return err
	}
	return encoder.WriteBytes(b, false)
}

func readByteVec(decoder *bin.Decoder) ([]byte, error) {
	n, err := readLength(decoder, 1)
	if err != nil {
		return nil, err
	}
	b, err := decoder.ReadNBytes(n)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(b), nil
}

func optionalTag(tag string) *string {
	if tag == "" {
		return nil
	}
	return &tag
}

func tagParam(tag *string) interface{} {
	if tag == nil {
		return "<none>"
	}
	return *tag
}

type EmptyArgs struct{}

func (EmptyArgs) MarshalWithEncoder(*bin.Encoder) error    { return nil }
func (*EmptyArgs) UnmarshalWithDecoder(*bin.Decoder) error { return nil }
func (EmptyArgs) params() []param                          { return nil }

// TagArgs carries the optional associated tag of Close and ClearData.
type TagArgs struct {
	AssociatedTag *string
}

func (a TagArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	return writeOptionalString(encoder, a.AssociatedTag)
}

func (a *TagArgs) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	a.AssociatedTag, err = readOptionalString(decoder)
	return err
}

func (a TagArgs) params() []param {
	return []param{{"AssociatedTag", tagParam(a.AssociatedTag)}}
}

type WriteDataArgs struct {
	AssociatedTag *string
	Offset        uint64
	Value         []byte
}

func (a WriteDataArgs) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = writeOptionalString(encoder, a.AssociatedTag); err != nil {
		return err
	}
	if err = encoder.WriteUint64(a.Offset, binary.LittleEndian); err != nil {
		return err
	}
	return writeByteVec(encoder, a.Value)
}

func (a *WriteDataArgs) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if a.AssociatedTag, err = readOptionalString(decoder); err != nil {
		return err
	}
	if a.Offset, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	a.Value, err = readByteVec(decoder)
	return err
}

func (a WriteDataArgs) params() []param {
	return []param{{"AssociatedTag", tagParam(a.AssociatedTag)}, {"Offset", a.Offset}, {"Value", len(a.Value)}}
}

type AddAuthorityArgs struct {
	NewAuthority solana.PublicKey
}

func (a AddAuthorityArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.WriteBytes(a.NewAuthority[:], false)
}

func (a *AddAuthorityArgs) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	a.NewAuthority, err = readPublicKey(decoder)
	return err
}

func (a AddAuthorityArgs) params() []param {
	return []param{{"NewAuthority", a.NewAuthority}}
}

type CreateShardArgs struct {
	ShardNumber uint8
}

func (a CreateShardArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.WriteUint8(a.ShardNumber)
}

func (a *CreateShardArgs) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	a.ShardNumber, err = decoder.ReadUint8()
	return err
}

func (a CreateShardArgs) params() []param {
	return []param{{"ShardNumber", a.ShardNumber}}
}

type AssociateArgs struct {
	AssociationTag string
}

func (a AssociateArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	return writeString(encoder, a.AssociationTag)
}

func (a *AssociateArgs) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	a.AssociationTag, err = readString(decoder)
	return err
}

func (a AssociateArgs) params() []param {
	return []param{{"AssociationTag", a.AssociationTag}}
}

type AllocateArgs struct {
	AssociatedTag *string
	TargetSize    uint64
}

func (a AllocateArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := writeOptionalString(encoder, a.AssociatedTag); err != nil {
		return err
	}
	return encoder.WriteUint64(a.TargetSize, binary.LittleEndian)
}

func (a *AllocateArgs) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if a.AssociatedTag, err = readOptionalString(decoder); err != nil {
		return err
	}
	a.TargetSize, err = decoder.ReadUint64(binary.LittleEndian)
	return err
}

func (a AllocateArgs) params() []param {
	return []param{{"AssociatedTag", tagParam(a.AssociatedTag)}, {"TargetSize", a.TargetSize}}
}

// InjectValueArgs replaces the byte range [Start, End) with Value.
type InjectValueArgs struct {
	AssociatedTag *string
	Start         uint64
	End           uint64
	Value         []byte
}

func (a InjectValueArgs) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = writeOptionalString(encoder, a.AssociatedTag); err != nil {
		return err
	}
	if err = encoder.WriteUint64(a.Start, binary.LittleEndian); err != nil {
		return err
	}
	if err = encoder.WriteUint64(a.End, binary.LittleEndian); err != nil {
		return err
	}
	return writeByteVec(encoder, a.Value)
}

func (a *InjectValueArgs) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if a.AssociatedTag, err = readOptionalString(decoder); err != nil {
		return err
	}
	if a.Start, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	if a.End, err = decoder.ReadUint64(binary.LittleEndian); err != nil {
		return err
	}
	a.Value, err = readByteVec(decoder)
	return err
}

func (a InjectValueArgs) params() []param {
	return []param{{"AssociatedTag", tagParam(a.AssociatedTag)}, {"Start", a.Start}, {"End", a.End}, {"Value", len(a.Value)}}
}

type AppendValueArgs struct {
	AssociatedTag *string
	Value         []byte
}

func (a AppendValueArgs) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := writeOptionalString(encoder, a.AssociatedTag); err != nil {
		return err
	}
	return writeByteVec(encoder, a.Value)
}

func (a *AppendValueArgs) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if a.AssociatedTag, err = readOptionalString(decoder); err != nil {
		return err
	}
	a.Value, err = readByteVec(decoder)
	return err
}

func (a AppendValueArgs) params() []param {
	return []param{{"AssociatedTag", tagParam(a.AssociatedTag)}, {"Value", string(a.Value)}}
}

// Instruction is one call into the inscription program. It satisfies
// solana.Instruction.
type Instruction struct {
	programID solana.PublicKey
	Kind      uint8
	Args      InstructionArgs

	// Accounts, in the positional order the processor expects.
	solana.AccountMetaSlice
}

func (inst *Instruction) ProgramID() solana.PublicKey {
	return inst.programID
}

func (inst *Instruction) Accounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

func (inst *Instruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := bin.NewBorshEncoder(buf)
	if err := encoder.WriteUint8(inst.Kind); err != nil {
		return nil, err
	}
	if err := inst.Args.MarshalWithEncoder(encoder); err != nil {
		return nil, fmt.Errorf("encode %s: %w", InstructionName(inst.Kind), err)
	}
	return buf.Bytes(), nil
}

func (inst *Instruction) EncodeToTree(parent treeout.Branches) {
	parent.Child(format.Program(ProgramName, inst.programID)).
		ParentFunc(func(programBranch treeout.Branches) {
			programBranch.Child(format.Instruction(InstructionName(inst.Kind))).
				ParentFunc(func(instructionBranch treeout.Branches) {
					instructionBranch.Child("Params").ParentFunc(func(paramsBranch treeout.Branches) {
						for _, p := range inst.Args.params() {
							paramsBranch.Child(format.Param(p.name, p.value))
						}
					})
					instructionBranch.Child("Accounts").ParentFunc(func(accountsBranch treeout.Branches) {
						for i, meta := range inst.AccountMetaSlice {
							accountsBranch.Child(format.Meta(fmt.Sprintf("[%d]", i), meta))
						}
					})
				})
		})
}

// DecodeInstruction parses instruction data into its kind and arguments.
// Every byte must be consumed.
func DecodeInstruction(data []byte) (uint8, InstructionArgs, error) {
	if len(data) == 0 {
		return 0, nil, types.ErrInvalidInstructionData
	}
	decoder := bin.NewBorshDecoder(data)
	kind, err := decoder.ReadUint8()
	if err != nil {
		return 0, nil, types.ErrInvalidInstructionData
	}
	args, err := newArgs(kind)
	if err != nil {
		return 0, nil, err
	}
	if err := args.UnmarshalWithDecoder(decoder); err != nil {
		return 0, nil, fmt.Errorf("decode %s: %v: %w", InstructionName(kind), err, types.ErrInvalidInstructionData)
	}
	if decoder.Remaining() != 0 {
		return 0, nil, fmt.Errorf("decode %s: %d trailing bytes: %w", InstructionName(kind), decoder.Remaining(), types.ErrInvalidInstructionData)
	}
	return kind, args, nil
}

package inscription

import (
	"github.com/meme-bots/go-inscription/sol/host"
)

// Processor is the inscription program as seen by the host.
type Processor struct{}

func (Processor) Process(ic *host.InvokeContext, data []byte) error {
	kind, args, err := DecodeInstruction(data)
	if err != nil {
		return err
	}
	ic.Log.Infof("Instruction: %s", InstructionName(kind))

	switch kind {
	case InstructionInitialize:
		return processInitialize(ic)
	case InstructionInitializeFromMint:
		return processInitializeFromMint(ic)
	case InstructionClose:
		return processClose(ic, args.(*TagArgs))
	case InstructionWriteData:
		return processWriteData(ic, args.(*WriteDataArgs))
	case InstructionClearData:
		return processClearData(ic, args.(*TagArgs))
	case InstructionAddAuthority:
		return processAddAuthority(ic, args.(*AddAuthorityArgs))
	case InstructionRemoveAuthority:
		return processRemoveAuthority(ic)
	case InstructionCreateShard:
		return processCreateShard(ic, args.(*CreateShardArgs))
	case InstructionInitializeAssociatedInscription:
		return processInitializeAssociatedInscription(ic, args.(*AssociateArgs))
	case InstructionAllocate:
		return processAllocate(ic, args.(*AllocateArgs))
	case InstructionSetMint:
		return processSetMint(ic)
	case InstructionDelegate:
		return processDelegate(ic)
	case InstructionInjectValue:
		return processInjectValue(ic, args.(*InjectValueArgs))
	default:
		return processAppendValue(ic, args.(*AppendValueArgs))
	}
}

package sol

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/meme-bots/go-inscription/types"
)

const MaxRecipientCount = 21

func (s *Inscriber) Transfer(bill *types.TransferBill, privateKey string) (string, error) {
	return s.TransferBatch([]*types.TransferBill{bill}, privateKey)
}

// TransferBatch pays every bill from the signer in a single transaction.
func (s *Inscriber) TransferBatch(bills []*types.TransferBill, privateKey string) (string, error) {
	if len(bills) == 0 || len(bills) > MaxRecipientCount {
		return "", fmt.Errorf("%d recipients, want 1 to %d: %w", len(bills), MaxRecipientCount, types.ErrInvalidArgument)
	}
	payer, err := solana.PrivateKeyFromBase58(privateKey)
	if err != nil {
		return "", err
	}

	instructions := make([]solana.Instruction, len(bills))
	for i, bill := range bills {
		recipient, err := solana.PublicKeyFromBase58(bill.Recipient)
		if err != nil {
			return "", fmt.Errorf("recipient %q: %w", bill.Recipient, err)
		}
		instructions[i] = system.NewTransferInstruction(bill.Lamports, payer.PublicKey(), recipient).Build()
	}

	sig, err := s.send(payer, nil, instructions...)
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}

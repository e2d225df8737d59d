package types

import "errors"

// ProgramError is a custom program error surfaced by the host with a stable code.
type ProgramError struct {
	Code uint32
	Msg  string
}

func (e *ProgramError) Error() string {
	return e.Msg
}

var (
	ErrAlreadyInitialized                = &ProgramError{0, "the account has already been initialized"}
	ErrNotInitialized                    = &ProgramError{1, "the account has not yet been initialized"}
	ErrDerivedKeyInvalid                 = &ProgramError{2, "the key for the account is invalid"}
	ErrMetadataDerivedKeyInvalid         = &ProgramError{3, "the key for the metadata account is invalid"}
	ErrInvalidSystemProgram              = &ProgramError{4, "the system program account is invalid"}
	ErrInvalidJson                       = &ProgramError{5, "the JSON data is invalid"}
	ErrSerialize                         = &ProgramError{6, "failed to serialize the account"}
	ErrDeserialize                       = &ProgramError{7, "failed to deserialize the account"}
	ErrInvalidAuthority                  = &ProgramError{8, "the signer does not have authority to perform this action"}
	ErrNumericalOverflow                 = &ProgramError{9, "numerical overflow"}
	ErrIncorrectOwner                    = &ProgramError{10, "incorrect owner"}
	ErrMintMismatch                      = &ProgramError{11, "mint mismatch between metadata and mint accounts"}
	ErrInvalidTokenStandard              = &ProgramError{12, "must be a non-fungible token"}
	ErrNotEnoughTokens                   = &ProgramError{13, "not enough tokens in the provided token account"}
	ErrInvalidShardAccount               = &ProgramError{14, "invalid shard account"}
	ErrAuthorityAlreadyExists            = &ProgramError{15, "the authority already exists"}
	ErrInvalidInscriptionMetadataAccount = &ProgramError{16, "invalid inscription metadata account"}
	ErrAssociationTagCannotBeBlank       = &ProgramError{17, "the association tag cannot be blank"}
	ErrAssociationTagTooLong             = &ProgramError{18, "the association tag is too long"}
	ErrInvalidDelegate                   = &ProgramError{19, "invalid delegate"}
)

var (
	ErrMissingRequiredSignature    = errors.New("missing required signature for instruction")
	ErrNotEnoughAccountKeys        = errors.New("insufficient account keys for instruction")
	ErrInvalidInstructionData      = errors.New("invalid instruction data")
	ErrInsufficientFunds           = errors.New("insufficient funds for instruction")
	ErrAccountAlreadyInUse         = errors.New("account already in use")
	ErrInvalidRealloc              = errors.New("failed to reallocate account data")
	ErrReadonlyDataModified        = errors.New("instruction modified data of a read-only account")
	ErrExternalAccountDataModified = errors.New("instruction modified data of an account it does not own")
	ErrUnbalancedInstruction       = errors.New("sum of account balances before and after instruction do not match")
	ErrInsufficientFundsForRent    = errors.New("account does not have enough lamports to be rent exempt")
	ErrUnknownProgram              = errors.New("attempt to load a program that does not exist")
	ErrIllegalOwner                = errors.New("provided owner is not allowed")
	ErrInvalidArgument             = errors.New("invalid argument")
	ErrSignatureFailure            = errors.New("transaction did not pass signature verification")
	ErrBlockhashNotFound           = errors.New("blockhash not found")
	ErrTransactionTooLarge         = errors.New("transaction too large")
	ErrInsufficientFundsForFee     = errors.New("insufficient funds for fee")
	ErrAlreadyProcessed            = errors.New("this transaction has already been processed")

	ErrNotFound = errors.New("not found")
)

// ErrorCode returns the program error code carried by err, if any.
func ErrorCode(err error) (uint32, bool) {
	var pe *ProgramError
	if errors.As(err, &pe) {
		return pe.Code, true
	}
	return 0, false
}

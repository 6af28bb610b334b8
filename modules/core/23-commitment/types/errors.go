package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// SubModuleName is the error codespace
const SubModuleName string = "commitment"

// IBC commitment sentinel errors
var (
	ErrInvalidProof       = sdkerrors.Register(SubModuleName, 2, "invalid proof")
	ErrInvalidPrefix      = sdkerrors.Register(SubModuleName, 3, "invalid prefix")
	ErrInvalidMerkleProof = sdkerrors.Register(SubModuleName, 4, "invalid merkle proof")
	ErrRootMismatch       = sdkerrors.Register(SubModuleName, 5, "proof does not fold to the trusted root")
	ErrKeyMismatch        = sdkerrors.Register(SubModuleName, 6, "proof key does not match the requested key")
	ErrValueMismatch      = sdkerrors.Register(SubModuleName, 7, "proof value does not match the expected value")
	ErrEmptyProof         = sdkerrors.Register(SubModuleName, 8, "proof cannot be empty")
)

// proofError marks a light client specific proof failure. The client error
// stays in the chain and errors.Is also matches ErrInvalidProof.
type proofError struct {
	err error
}

// WrapInvalidProof marks err as a failed proof verification so that callers
// can match ErrInvalidProof whatever client produced it. A nil err stays nil.
func WrapInvalidProof(err error) error {
	if err == nil {
		return nil
	}
	return &proofError{err: err}
}

func (e *proofError) Error() string { return e.err.Error() }

func (e *proofError) Unwrap() error { return e.err }

func (e *proofError) Is(target error) bool { return target == ErrInvalidProof }

package smt

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

const ModuleName = "smt"

var (
	ErrInvalidProof  = sdkerrors.Register(ModuleName, 2, "invalid sparse merkle proof")
	ErrRootMismatch  = sdkerrors.Register(ModuleName, 3, "proof does not fold to the expected root")
	ErrKeyMismatch   = sdkerrors.Register(ModuleName, 4, "proof leaf key mismatch")
	ErrValueMismatch = sdkerrors.Register(ModuleName, 5, "proof leaf value mismatch")
	ErrKeyExists     = sdkerrors.Register(ModuleName, 6, "key exists")
)

package mpt

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

const ModuleName = "mpt"

var (
	ErrProofInvalid  = sdkerrors.Register(ModuleName, 2, "invalid merkle patricia proof")
	ErrValueMismatch = sdkerrors.Register(ModuleName, 3, "storage value mismatch")
	ErrKeyExists     = sdkerrors.Register(ModuleName, 4, "storage slot is not empty")
)

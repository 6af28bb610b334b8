package mock

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

const ModuleName = "mock-client"

var (
	ErrInvalidClientMsg = sdkerrors.Register(ModuleName, 2, "invalid client message")
	ErrInvalidProof     = sdkerrors.Register(ModuleName, 3, "invalid mock proof")
	ErrRootMismatch     = sdkerrors.Register(ModuleName, 4, "mock proof does not match the consensus root")
	ErrValueMismatch    = sdkerrors.Register(ModuleName, 5, "value mismatch")
	ErrKeyNotFound      = sdkerrors.Register(ModuleName, 6, "key not found")
	ErrKeyExists        = sdkerrors.Register(ModuleName, 7, "key exists")
	ErrInvalidCreation  = sdkerrors.Register(ModuleName, 8, "invalid client creation")
)

package store

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// SubModuleName is the error codespace
const SubModuleName string = "commitstore"

var (
	ErrHeightNotFound    = sdkerrors.Register(SubModuleName, 2, "no committed version at height")
	ErrProofConstruction = sdkerrors.Register(SubModuleName, 3, "failed to construct proof")
)

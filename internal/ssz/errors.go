package ssz

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

const ModuleName = "ssz"

var (
	ErrInvalidBranch    = sdkerrors.Register(ModuleName, 2, "invalid merkle branch")
	ErrInvalidContainer = sdkerrors.Register(ModuleName, 3, "invalid ssz container")
)

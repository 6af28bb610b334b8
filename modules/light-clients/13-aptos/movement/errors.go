package movement

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// ModuleName is the error codespace of the movement client.
const ModuleName = "13-movement"

var (
	ErrInvalidClientState    = sdkerrors.Register(ModuleName, 2, "invalid client state")
	ErrInvalidConsensusState = sdkerrors.Register(ModuleName, 3, "invalid consensus state")
	ErrInvalidHeader         = sdkerrors.Register(ModuleName, 4, "invalid header")
	ErrInvalidSettlement     = sdkerrors.Register(ModuleName, 5, "accumulator root is not settled on the l1")
	ErrInvalidMisbehaviour   = sdkerrors.Register(ModuleName, 6, "invalid misbehaviour")
)

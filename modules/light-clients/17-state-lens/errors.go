package statelens

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// ModuleName is the error codespace of the state-lens client.
const ModuleName = "17-state-lens"

var (
	ErrInvalidClientState    = sdkerrors.Register(ModuleName, 2, "invalid client state")
	ErrInvalidConsensusState = sdkerrors.Register(ModuleName, 3, "invalid consensus state")
	ErrInvalidHeader         = sdkerrors.Register(ModuleName, 4, "invalid header")
	ErrInvalidL2Consensus    = sdkerrors.Register(ModuleName, 5, "invalid l2 consensus state encoding")
	ErrInvalidProof          = sdkerrors.Register(ModuleName, 6, "invalid membership proof")
	ErrInvalidMisbehaviour   = sdkerrors.Register(ModuleName, 7, "invalid misbehaviour")
)

package prooflens

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// ModuleName is the error codespace of the proof-lens client.
const ModuleName = "18-proof-lens"

var (
	ErrInvalidClientState       = sdkerrors.Register(ModuleName, 2, "invalid client state")
	ErrInvalidConsensusState    = sdkerrors.Register(ModuleName, 3, "invalid consensus state")
	ErrInvalidHeader            = sdkerrors.Register(ModuleName, 4, "invalid header")
	ErrMisbehaviourNotSupported = sdkerrors.Register(ModuleName, 5, "misbehaviour is handled by the target client")
)

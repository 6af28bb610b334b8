package berachain

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// ModuleName is the error codespace of the berachain client.
const ModuleName = "16-berachain"

var (
	ErrInvalidClientState       = sdkerrors.Register(ModuleName, 2, "invalid client state")
	ErrInvalidConsensusState    = sdkerrors.Register(ModuleName, 3, "invalid consensus state")
	ErrInvalidHeader            = sdkerrors.Register(ModuleName, 4, "invalid header")
	ErrInvalidProof             = sdkerrors.Register(ModuleName, 5, "invalid storage proof")
	ErrMisbehaviourNotSupported = sdkerrors.Register(ModuleName, 6, "misbehaviour is handled by the tendermint client")
)

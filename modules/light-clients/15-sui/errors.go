package sui

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// ModuleName is the error codespace of the sui client.
const ModuleName = "15-sui"

var (
	ErrInvalidClientState    = sdkerrors.Register(ModuleName, 2, "invalid client state")
	ErrInvalidConsensusState = sdkerrors.Register(ModuleName, 3, "invalid consensus state")
	ErrInvalidHeader         = sdkerrors.Register(ModuleName, 4, "invalid header")
	ErrInvalidCommittee      = sdkerrors.Register(ModuleName, 5, "invalid committee")
	ErrCommitteeNotFound     = sdkerrors.Register(ModuleName, 6, "committee of epoch not found")
	ErrInsufficientStake     = sdkerrors.Register(ModuleName, 7, "insufficient stake")
	ErrInvalidSignature      = sdkerrors.Register(ModuleName, 8, "invalid checkpoint signature")
	ErrInvalidProof          = sdkerrors.Register(ModuleName, 9, "invalid object proof")
	ErrInvalidMisbehaviour   = sdkerrors.Register(ModuleName, 10, "invalid misbehaviour")
)

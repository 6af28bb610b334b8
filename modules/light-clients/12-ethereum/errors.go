package ethereum

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// ModuleName is the error codespace of the ethereum client.
const ModuleName = "12-ethereum"

var (
	ErrInvalidClientState        = sdkerrors.Register(ModuleName, 2, "invalid client state")
	ErrInvalidConsensusState     = sdkerrors.Register(ModuleName, 3, "invalid consensus state")
	ErrInvalidHeader             = sdkerrors.Register(ModuleName, 4, "invalid light client update")
	ErrInsufficientParticipation = sdkerrors.Register(ModuleName, 5, "insufficient sync committee participation")
	ErrInvalidFinalityBranch     = sdkerrors.Register(ModuleName, 6, "invalid finality branch")
	ErrInvalidExecutionBranch    = sdkerrors.Register(ModuleName, 7, "invalid execution payload branch")
	ErrInvalidNextSyncCommittee  = sdkerrors.Register(ModuleName, 8, "invalid next sync committee")
	ErrSyncCommitteeNotFound     = sdkerrors.Register(ModuleName, 9, "sync committee not found")
	ErrInvalidSyncCommittee      = sdkerrors.Register(ModuleName, 10, "sync committee does not match the trusted committee")
	ErrInvalidSignature          = sdkerrors.Register(ModuleName, 11, "invalid sync committee signature")
	ErrInvalidProof              = sdkerrors.Register(ModuleName, 12, "invalid state proof")
	ErrInvalidMisbehaviour       = sdkerrors.Register(ModuleName, 13, "invalid misbehaviour")
)

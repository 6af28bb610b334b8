package tendermint

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// ModuleName is the error codespace of the tendermint client.
const ModuleName = "07-tendermint"

// IBC tendermint client sentinel errors
var (
	ErrInvalidChainID         = sdkerrors.Register(ModuleName, 2, "invalid chain-id")
	ErrInvalidTrustingPeriod  = sdkerrors.Register(ModuleName, 3, "invalid trusting period")
	ErrInvalidUnbondingPeriod = sdkerrors.Register(ModuleName, 4, "invalid unbonding period")
	ErrInvalidHeaderHeight    = sdkerrors.Register(ModuleName, 5, "invalid header height")
	ErrInvalidHeader          = sdkerrors.Register(ModuleName, 6, "invalid header")
	ErrInvalidMaxClockDrift   = sdkerrors.Register(ModuleName, 7, "invalid max clock drift")
	ErrTrustingPeriodExpired  = sdkerrors.Register(ModuleName, 8, "time since latest trusted state has passed the trusting period")
	ErrInvalidTrustLevel      = sdkerrors.Register(ModuleName, 9, "invalid trust level")
	ErrInvalidValidatorSet    = sdkerrors.Register(ModuleName, 10, "invalid validator set")
	ErrInvalidConsensusState  = sdkerrors.Register(ModuleName, 11, "invalid consensus state")
)

package aptos

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// ModuleName is the error codespace of the aptos client.
const ModuleName = "13-aptos"

var (
	ErrInvalidClientState      = sdkerrors.Register(ModuleName, 2, "invalid client state")
	ErrInvalidConsensusState   = sdkerrors.Register(ModuleName, 3, "invalid consensus state")
	ErrInvalidHeader           = sdkerrors.Register(ModuleName, 4, "invalid header")
	ErrInvalidValidatorSet     = sdkerrors.Register(ModuleName, 5, "invalid validator set")
	ErrEpochNotFound           = sdkerrors.Register(ModuleName, 6, "validator set of epoch not found")
	ErrInsufficientVotingPower = sdkerrors.Register(ModuleName, 7, "insufficient voting power")
	ErrInvalidSignature        = sdkerrors.Register(ModuleName, 8, "invalid ledger info signature")
	ErrInvalidTransactionInfo  = sdkerrors.Register(ModuleName, 9, "invalid transaction info proof")
	ErrInvalidProof            = sdkerrors.Register(ModuleName, 10, "invalid state proof")
	ErrInvalidMisbehaviour     = sdkerrors.Register(ModuleName, 11, "invalid misbehaviour")
	ErrInvalidEpochChange      = sdkerrors.Register(ModuleName, 12, "invalid epoch change")
)

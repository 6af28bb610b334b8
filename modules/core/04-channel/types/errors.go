package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// IBC channel sentinel errors
var (
	ErrChannelExists            = sdkerrors.Register(SubModuleName, 2, "channel already exists")
	ErrChannelNotFound          = sdkerrors.Register(SubModuleName, 3, "channel not found")
	ErrInvalidChannel           = sdkerrors.Register(SubModuleName, 4, "invalid channel")
	ErrInvalidChannelState      = sdkerrors.Register(SubModuleName, 5, "invalid channel state")
	ErrInvalidChannelOrdering   = sdkerrors.Register(SubModuleName, 6, "invalid channel ordering")
	ErrInvalidCounterparty      = sdkerrors.Register(SubModuleName, 7, "invalid counterparty channel")
	ErrSequenceSendNotFound     = sdkerrors.Register(SubModuleName, 8, "sequence send not found")
	ErrInvalidPacket            = sdkerrors.Register(SubModuleName, 9, "invalid packet")
	ErrPacketTimeout            = sdkerrors.Register(SubModuleName, 10, "packet timeout")
	ErrTooManyConnectionHops    = sdkerrors.Register(SubModuleName, 11, "too many connection hops")
	ErrInvalidAcknowledgement   = sdkerrors.Register(SubModuleName, 12, "invalid acknowledgement")
	ErrAcknowledgementExists    = sdkerrors.Register(SubModuleName, 13, "acknowledgement for packet already exists")
	ErrInvalidChannelIdentifier = sdkerrors.Register(SubModuleName, 14, "invalid channel identifier")
	ErrPacketReceived           = sdkerrors.Register(SubModuleName, 15, "packet already received")
	ErrPacketCommitmentNotFound = sdkerrors.Register(SubModuleName, 16, "packet commitment not found")
	ErrAcknowledgementNotFound  = sdkerrors.Register(SubModuleName, 17, "packet acknowledgement not found")
	ErrSequenceMismatch         = sdkerrors.Register(SubModuleName, 18, "packet sequence mismatch")
	ErrUnsupportedVersion       = sdkerrors.Register(SubModuleName, 19, "unsupported channel version")
	ErrVersionMismatch          = sdkerrors.Register(SubModuleName, 20, "channel version mismatch")
	ErrInvalidTimeout           = sdkerrors.Register(SubModuleName, 21, "invalid packet timeout")
	ErrTimeoutNotReached        = sdkerrors.Register(SubModuleName, 22, "timeout not reached")
	ErrInvalidBatch             = sdkerrors.Register(SubModuleName, 23, "invalid packet batch")
	ErrPacketNotReceived        = sdkerrors.Register(SubModuleName, 24, "packet has not been received")
)

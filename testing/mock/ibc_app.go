package mock

import (
	channeltypes "github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// IBCApp contains IBC application module callbacks as defined in 05-port.
// A nil callback falls back to the default mock behaviour.
type IBCApp struct {
	PortID string

	OnChanOpenInit func(
		ctx coretypes.Context,
		order channeltypes.Order,
		connectionHops []string,
		portID string,
		channelID string,
		counterparty channeltypes.Counterparty,
		version string,
	) (string, error)

	OnChanOpenTry func(
		ctx coretypes.Context,
		order channeltypes.Order,
		connectionHops []string,
		portID,
		channelID string,
		counterparty channeltypes.Counterparty,
		counterpartyVersion string,
	) (version string, err error)

	OnChanOpenAck func(
		ctx coretypes.Context,
		portID,
		channelID string,
		counterpartyChannelID string,
		counterpartyVersion string,
	) error

	OnChanOpenConfirm func(
		ctx coretypes.Context,
		portID,
		channelID string,
	) error

	OnChanCloseInit func(
		ctx coretypes.Context,
		portID,
		channelID string,
	) error

	OnChanCloseConfirm func(
		ctx coretypes.Context,
		portID,
		channelID string,
	) error

	// OnRecvPacket returns the acknowledgement to write for the packet. A
	// returned error aborts the receive.
	OnRecvPacket func(
		ctx coretypes.Context,
		packet channeltypes.Packet,
		relayer string,
	) ([]byte, error)

	OnIntentRecvPacket func(
		ctx coretypes.Context,
		packet channeltypes.Packet,
		marketMaker string,
	) ([]byte, error)

	OnAcknowledgementPacket func(
		ctx coretypes.Context,
		packet channeltypes.Packet,
		acknowledgement []byte,
		relayer string,
	) error

	OnTimeoutPacket func(
		ctx coretypes.Context,
		packet channeltypes.Packet,
		relayer string,
	) error
}

// NewIBCApp returns a IBCApp bound to portID.
func NewIBCApp(portID string) *IBCApp {
	return &IBCApp{
		PortID: portID,
	}
}

package types

import (
	channeltypes "github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// IBCModule defines an interface that implements all the callbacks
// that modules must define as specified in ICS-26. Every callback runs inside
// the cached context of the message that triggered it: an error aborts the
// whole message and discards its writes, core state included.
type IBCModule interface {
	// OnChanOpenInit will verify that the relayer-chosen parameters
	// are valid and perform any custom INIT logic.
	// It may return an error if the chosen parameters are invalid
	// in which case the handshake is aborted.
	// If the provided version string is non-empty, OnChanOpenInit should return
	// the version string if valid or an error if the provided version is invalid.
	// If the version string is empty, OnChanOpenInit is expected to
	// return a default version string representing the version(s) it supports.
	OnChanOpenInit(
		ctx coretypes.Context,
		order channeltypes.Order,
		connectionHops []string,
		portID string,
		channelID string,
		counterparty channeltypes.Counterparty,
		version string,
	) (string, error)

	// OnChanOpenTry will verify the relayer-chosen parameters along with the
	// counterparty-chosen version string and perform custom TRY logic.
	// If the counterparty-chosen version is not compatible with this modules
	// supported versions, the callback must return an error to abort the
	// handshake. If the versions are compatible, the try callback must select
	// the final version string and return it to core IBC.
	OnChanOpenTry(
		ctx coretypes.Context,
		order channeltypes.Order,
		connectionHops []string,
		portID,
		channelID string,
		counterparty channeltypes.Counterparty,
		counterpartyVersion string,
	) (version string, err error)

	// OnChanOpenAck will error if the counterparty selected version string
	// is invalid to abort the handshake. It may also perform custom ACK logic.
	OnChanOpenAck(
		ctx coretypes.Context,
		portID,
		channelID string,
		counterpartyChannelID string,
		counterpartyVersion string,
	) error

	// OnChanOpenConfirm will perform custom CONFIRM logic and may error to abort the handshake.
	OnChanOpenConfirm(
		ctx coretypes.Context,
		portID,
		channelID string,
	) error

	OnChanCloseInit(
		ctx coretypes.Context,
		portID,
		channelID string,
	) error

	OnChanCloseConfirm(
		ctx coretypes.Context,
		portID,
		channelID string,
	) error

	// OnRecvPacket returns the acknowledgement bytes committed by core IBC.
	// An error fails the receive: no receipt and no acknowledgement are written.
	OnRecvPacket(
		ctx coretypes.Context,
		packet channeltypes.Packet,
		relayer string,
	) ([]byte, error)

	// OnIntentRecvPacket is the market maker counterpart of OnRecvPacket.
	// No proof of the counterparty commitment backs the packet.
	OnIntentRecvPacket(
		ctx coretypes.Context,
		packet channeltypes.Packet,
		marketMaker string,
	) ([]byte, error)

	OnAcknowledgementPacket(
		ctx coretypes.Context,
		packet channeltypes.Packet,
		acknowledgement []byte,
		relayer string,
	) error

	OnTimeoutPacket(
		ctx coretypes.Context,
		packet channeltypes.Packet,
		relayer string,
	) error
}

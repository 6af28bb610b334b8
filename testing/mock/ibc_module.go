package mock

import (
	"bytes"
	"strings"

	channeltypes "github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// applicationCallbackError is a custom error type that will be unique for testing purposes.
type applicationCallbackError struct{}

func (applicationCallbackError) Error() string {
	return "mock application callback failed"
}

// IBCModule implements the ICS26 callbacks for testing/mock.
type IBCModule struct {
	IBCApp *IBCApp
}

// NewIBCModule creates a new IBCModule given the underlying mock IBC application.
func NewIBCModule(app *IBCApp) IBCModule {
	return IBCModule{
		IBCApp: app,
	}
}

// OnChanOpenInit implements the IBCModule interface.
func (im IBCModule) OnChanOpenInit(
	ctx coretypes.Context, order channeltypes.Order, connectionHops []string, portID string,
	channelID string, counterparty channeltypes.Counterparty, version string,
) (string, error) {
	if strings.TrimSpace(version) == "" {
		version = Version
	}

	if im.IBCApp.OnChanOpenInit != nil {
		return im.IBCApp.OnChanOpenInit(ctx, order, connectionHops, portID, channelID, counterparty, version)
	}

	return version, nil
}

// OnChanOpenTry implements the IBCModule interface.
func (im IBCModule) OnChanOpenTry(
	ctx coretypes.Context, order channeltypes.Order, connectionHops []string, portID string,
	channelID string, counterparty channeltypes.Counterparty, counterpartyVersion string,
) (version string, err error) {
	if im.IBCApp.OnChanOpenTry != nil {
		return im.IBCApp.OnChanOpenTry(ctx, order, connectionHops, portID, channelID, counterparty, counterpartyVersion)
	}

	return Version, nil
}

// OnChanOpenAck implements the IBCModule interface.
func (im IBCModule) OnChanOpenAck(ctx coretypes.Context, portID string, channelID string, counterpartyChannelID string, counterpartyVersion string) error {
	if im.IBCApp.OnChanOpenAck != nil {
		return im.IBCApp.OnChanOpenAck(ctx, portID, channelID, counterpartyChannelID, counterpartyVersion)
	}

	return nil
}

// OnChanOpenConfirm implements the IBCModule interface.
func (im IBCModule) OnChanOpenConfirm(ctx coretypes.Context, portID, channelID string) error {
	if im.IBCApp.OnChanOpenConfirm != nil {
		return im.IBCApp.OnChanOpenConfirm(ctx, portID, channelID)
	}

	return nil
}

// OnChanCloseInit implements the IBCModule interface.
func (im IBCModule) OnChanCloseInit(ctx coretypes.Context, portID, channelID string) error {
	if im.IBCApp.OnChanCloseInit != nil {
		return im.IBCApp.OnChanCloseInit(ctx, portID, channelID)
	}

	return nil
}

// OnChanCloseConfirm implements the IBCModule interface.
func (im IBCModule) OnChanCloseConfirm(ctx coretypes.Context, portID, channelID string) error {
	if im.IBCApp.OnChanCloseConfirm != nil {
		return im.IBCApp.OnChanCloseConfirm(ctx, portID, channelID)
	}

	return nil
}

// OnRecvPacket implements the IBCModule interface. The default behaviour
// writes TestKey to the store and acknowledges with MockAcknowledgement,
// unless the packet carries MockFailPacketData.
func (im IBCModule) OnRecvPacket(ctx coretypes.Context, packet channeltypes.Packet, relayer string) ([]byte, error) {
	if im.IBCApp.OnRecvPacket != nil {
		return im.IBCApp.OnRecvPacket(ctx, packet, relayer)
	}

	ctx.EventManager().EmitEvent(NewMockRecvPacketEvent(relayer))

	if bytes.Equal(MockFailPacketData, packet.GetData()) {
		return nil, MockApplicationCallbackError
	}

	ctx.KVStore().Set(TestKey, TestValue)

	return MockAcknowledgement, nil
}

// OnIntentRecvPacket implements the IBCModule interface.
func (im IBCModule) OnIntentRecvPacket(ctx coretypes.Context, packet channeltypes.Packet, marketMaker string) ([]byte, error) {
	if im.IBCApp.OnIntentRecvPacket != nil {
		return im.IBCApp.OnIntentRecvPacket(ctx, packet, marketMaker)
	}

	ctx.EventManager().EmitEvent(NewMockIntentRecvPacketEvent(marketMaker))

	if bytes.Equal(MockFailPacketData, packet.GetData()) {
		return nil, MockApplicationCallbackError
	}

	return MockAcknowledgement, nil
}

// OnAcknowledgementPacket implements the IBCModule interface.
func (im IBCModule) OnAcknowledgementPacket(ctx coretypes.Context, packet channeltypes.Packet, acknowledgement []byte, relayer string) error {
	if im.IBCApp.OnAcknowledgementPacket != nil {
		return im.IBCApp.OnAcknowledgementPacket(ctx, packet, acknowledgement, relayer)
	}

	ctx.EventManager().EmitEvent(NewMockAckPacketEvent(relayer))

	return nil
}

// OnTimeoutPacket implements the IBCModule interface.
func (im IBCModule) OnTimeoutPacket(ctx coretypes.Context, packet channeltypes.Packet, relayer string) error {
	if im.IBCApp.OnTimeoutPacket != nil {
		return im.IBCApp.OnTimeoutPacket(ctx, packet, relayer)
	}

	ctx.EventManager().EmitEvent(NewMockTimeoutPacketEvent(relayer))

	return nil
}

package mock

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	porttypes "github.com/ComposableFi/ibc-core/modules/core/05-port/types"
)

const (
	ModuleName = "mock"

	PortID = ModuleName

	Version = "mock-version"
)

var (
	MockAcknowledgement = []byte("mock acknowledgement")
	MockPacketData      = []byte("mock packet data")
	MockFailPacketData  = []byte("mock failed packet data")
	UpgradeVersion      = fmt.Sprintf("%s-v2", Version)
	// MockApplicationCallbackError should be returned when an application callback should fail. It is possible to
	// test that this error was returned using ErrorIs.
	MockApplicationCallbackError error = &applicationCallbackError{}
)

var (
	TestKey   = []byte("test-key")
	TestValue = []byte("test-value")
)

var _ porttypes.IBCModule = (*IBCModule)(nil)

// Mock event types and attribute keys emitted by the mock callbacks.
const (
	EventTypeRecvPacket       = "mock-recv-packet"
	EventTypeIntentRecvPacket = "mock-intent-recv-packet"
	EventTypeAckPacket        = "mock-ack-packet"
	EventTypeTimeoutPacket    = "mock-timeout"

	AttributeKeyRelayer = "relayer"
)

// NewMockRecvPacketEvent returns a mock receive packet event
func NewMockRecvPacketEvent(relayer string) sdk.Event {
	return sdk.NewEvent(EventTypeRecvPacket, sdk.NewAttribute(AttributeKeyRelayer, relayer))
}

// NewMockIntentRecvPacketEvent returns a mock intent receive packet event
func NewMockIntentRecvPacketEvent(marketMaker string) sdk.Event {
	return sdk.NewEvent(EventTypeIntentRecvPacket, sdk.NewAttribute(AttributeKeyRelayer, marketMaker))
}

// NewMockAckPacketEvent returns a mock acknowledgement packet event
func NewMockAckPacketEvent(relayer string) sdk.Event {
	return sdk.NewEvent(EventTypeAckPacket, sdk.NewAttribute(AttributeKeyRelayer, relayer))
}

// NewMockTimeoutPacketEvent emits a mock timeout packet event
func NewMockTimeoutPacketEvent(relayer string) sdk.Event {
	return sdk.NewEvent(EventTypeTimeoutPacket, sdk.NewAttribute(AttributeKeyRelayer, relayer))
}

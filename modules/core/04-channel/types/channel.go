package types

import (
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/rlp"

	connectiontypes "github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	ibcerrors "github.com/ComposableFi/ibc-core/modules/core/errors"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var (
	_ exported.ChannelI             = (*Channel)(nil)
	_ exported.CounterpartyChannelI = (*Counterparty)(nil)
)

// State defines if a channel is in one of the following states:
// CLOSED, INIT, TRYOPEN, OPEN or UNINITIALIZED.
type State uint32

const (
	// Default State
	UNINITIALIZED State = iota
	// A channel has just started the opening handshake.
	INIT
	// A channel has acknowledged the handshake step on the counterparty chain.
	TRYOPEN
	// A channel has completed the handshake. Open channels are
	// ready to send and receive packets.
	OPEN
	// A channel has been closed and can no longer be used to send or receive
	// packets.
	CLOSED
)

var stateNames = map[State]string{
	UNINITIALIZED: "STATE_UNINITIALIZED_UNSPECIFIED",
	INIT:          "STATE_INIT",
	TRYOPEN:       "STATE_TRYOPEN",
	OPEN:          "STATE_OPEN",
	CLOSED:        "STATE_CLOSED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATE_UNKNOWN(%d)", uint32(s))
}

// Order defines if a channel is ORDERED or UNORDERED
type Order uint32

const (
	// zero-value for channel ordering
	NONE Order = iota
	// packets can be delivered in any order, which may differ from the order in
	// which they were sent.
	UNORDERED
	// packets are delivered exactly in the order which they were sent.
	// Ordered channels are not supported by this implementation.
	ORDERED
)

func (o Order) String() string {
	switch o {
	case UNORDERED:
		return "ORDER_UNORDERED"
	case ORDERED:
		return "ORDER_ORDERED"
	default:
		return "ORDER_NONE_UNSPECIFIED"
	}
}

// Channel defines pipeline for exactly-once packet delivery between specific
// modules on separate blockchains, which has at least one end capable of
// sending packets and one end capable of receiving packets.
type Channel struct {
	// current state of the channel end
	State State
	// whether the channel is ordered or unordered
	Ordering Order
	// counterparty channel end
	Counterparty Counterparty
	// list of connection identifiers, in order, along which packets sent on
	// this channel will travel
	ConnectionHops []string
	// opaque channel version, which is agreed upon during the handshake
	Version string
}

// Counterparty defines a channel end counterparty
type Counterparty struct {
	// port on the counterparty chain which owns the other end of the channel.
	PortId string
	// channel end on the counterparty chain
	ChannelId string
}

// NewChannel creates a new Channel instance
func NewChannel(
	state State, ordering Order, counterparty Counterparty,
	hops []string, version string,
) Channel {
	return Channel{
		State:          state,
		Ordering:       ordering,
		Counterparty:   counterparty,
		ConnectionHops: hops,
		Version:        version,
	}
}

// GetState implements Channel interface.
func (ch Channel) GetState() uint32 {
	return uint32(ch.State)
}

// GetCounterparty implements Channel interface.
func (ch Channel) GetCounterparty() exported.CounterpartyChannelI {
	return ch.Counterparty
}

// GetConnectionHops implements Channel interface.
func (ch Channel) GetConnectionHops() []string {
	return ch.ConnectionHops
}

// GetVersion implements Channel interface.
func (ch Channel) GetVersion() string {
	return ch.Version
}

// ValidateBasic performs a basic validation of the channel fields
func (ch Channel) ValidateBasic() error {
	if ch.State == UNINITIALIZED {
		return ErrInvalidChannelState
	}
	if ch.Ordering != UNORDERED {
		return sdkerrors.Wrapf(ErrInvalidChannelOrdering, "only unordered channels are supported, got %s", ch.Ordering)
	}
	if len(ch.ConnectionHops) != 1 {
		return sdkerrors.Wrapf(
			ErrTooManyConnectionHops,
			"current IBC version only supports one connection hop, got %d", len(ch.ConnectionHops),
		)
	}
	if err := host.ConnectionIdentifierValidator(ch.ConnectionHops[0]); err != nil {
		return sdkerrors.Wrap(err, "invalid connection hop ID")
	}
	return ch.Counterparty.ValidateBasic()
}

// Bytes returns the deterministic encoding of the channel end that is
// committed under the channel path.
func (ch Channel) Bytes() []byte {
	bz, err := rlp.EncodeToBytes(ch)
	if err != nil {
		panic(err)
	}
	return bz
}

// UnmarshalChannel decodes a channel end.
func UnmarshalChannel(bz []byte) (Channel, error) {
	var channel Channel
	if err := rlp.DecodeBytes(bz, &channel); err != nil {
		return Channel{}, sdkerrors.Wrap(ibcerrors.ErrDecode, err.Error())
	}
	return channel, nil
}

// NewCounterparty returns a new Counterparty instance
func NewCounterparty(portID, channelID string) Counterparty {
	return Counterparty{
		PortId:    portID,
		ChannelId: channelID,
	}
}

// GetPortID implements CounterpartyChannelI interface
func (c Counterparty) GetPortID() string {
	return c.PortId
}

// GetChannelID implements CounterpartyChannelI interface
func (c Counterparty) GetChannelID() string {
	return c.ChannelId
}

// ValidateBasic performs a basic validation check of the identifiers
func (c Counterparty) ValidateBasic() error {
	if err := host.PortIdentifierValidator(c.PortId); err != nil {
		return sdkerrors.Wrap(err, "invalid counterparty port ID")
	}
	if c.ChannelId != "" {
		if err := host.ChannelIdentifierValidator(c.ChannelId); err != nil {
			return sdkerrors.Wrap(err, "invalid counterparty channel ID")
		}
	}
	return nil
}

// IdentifiedChannel defines a channel with additional port and channel
// identifier fields.
type IdentifiedChannel struct {
	PortId    string
	ChannelId string
	Channel
}

// NewIdentifiedChannel creates a new IdentifiedChannel instance
func NewIdentifiedChannel(portID, channelID string, ch Channel) IdentifiedChannel {
	return IdentifiedChannel{
		PortId:    portID,
		ChannelId: channelID,
		Channel:   ch,
	}
}

// SupportsOrdering returns true if the connection version allows channels of
// the given ordering.
func SupportsOrdering(connection connectiontypes.ConnectionEnd, order Order) bool {
	if len(connection.Versions) != 1 {
		return false
	}
	return connectiontypes.VerifySupportedFeature(connection.Versions[0], order.String())
}

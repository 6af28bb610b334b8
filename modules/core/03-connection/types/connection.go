package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	ibcerrors "github.com/ComposableFi/ibc-core/modules/core/errors"
)

// State defines if a connection is in one of the following states:
// INIT, TRYOPEN, OPEN or UNINITIALIZED.
type State uint32

const (
	// Default State
	UNINITIALIZED State = iota
	// A connection end has just started the opening handshake.
	INIT
	// A connection end has acknowledged the handshake step on the counterparty
	// chain.
	TRYOPEN
	// A connection end has completed the handshake.
	OPEN
)

var stateNames = map[State]string{
	UNINITIALIZED: "STATE_UNINITIALIZED_UNSPECIFIED",
	INIT:          "STATE_INIT",
	TRYOPEN:       "STATE_TRYOPEN",
	OPEN:          "STATE_OPEN",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATE_UNKNOWN(%d)", uint32(s))
}

// ConnectionEnd defines a stateful object on a chain connected to another
// separate one.
// NOTE: there must only be 2 defined ConnectionEnds to establish
// a connection between two chains.
type ConnectionEnd struct {
	// client associated with this connection.
	ClientId string
	// IBC version which can be utilised to determine encodings or protocols for
	// channels or packets utilising this connection.
	Versions []*Version
	// current state of the connection end.
	State State
	// counterparty chain associated with this connection.
	Counterparty Counterparty
	// delay period that must pass before a consensus state can be used for
	// packet-verification NOTE: delay period logic is only implemented by some
	// clients.
	DelayPeriod uint64
}

// Counterparty defines the counterparty chain associated with a connection end.
type Counterparty struct {
	// identifies the client on the counterparty chain associated with a given
	// connection.
	ClientId string
	// identifies the connection end on the counterparty chain associated with a
	// given connection.
	ConnectionId string
	// commitment merkle prefix of the counterparty chain.
	Prefix commitmenttypes.MerklePrefix
}

// NewConnectionEnd creates a new ConnectionEnd instance.
func NewConnectionEnd(state State, clientID string, counterparty Counterparty, versions []*Version, delayPeriod uint64) ConnectionEnd {
	return ConnectionEnd{
		ClientId:     clientID,
		Versions:     versions,
		State:        state,
		Counterparty: counterparty,
		DelayPeriod:  delayPeriod,
	}
}

// ValidateBasic implements the Connection interface.
// NOTE: the protocol supports that the connection and client IDs match the
// counterparty's.
func (c ConnectionEnd) ValidateBasic() error {
	if err := host.ClientIdentifierValidator(c.ClientId); err != nil {
		return sdkerrors.Wrap(err, "invalid client ID")
	}
	if len(c.Versions) == 0 {
		return sdkerrors.Wrap(ErrInvalidVersion, "empty connection versions")
	}
	for _, version := range c.Versions {
		if err := ValidateVersion(version); err != nil {
			return err
		}
	}
	return c.Counterparty.ValidateBasic()
}

// Bytes returns the deterministic encoding of the connection end. It is the
// value committed under the connection path and the value a counterparty
// verifies.
func (c ConnectionEnd) Bytes() []byte {
	bz, err := rlp.EncodeToBytes(c)
	if err != nil {
		panic(err)
	}
	return bz
}

// UnmarshalConnectionEnd decodes a connection end.
func UnmarshalConnectionEnd(bz []byte) (ConnectionEnd, error) {
	var connection ConnectionEnd
	if err := rlp.DecodeBytes(bz, &connection); err != nil {
		return ConnectionEnd{}, sdkerrors.Wrap(ibcerrors.ErrDecode, err.Error())
	}
	return connection, nil
}

// NewCounterparty creates a new Counterparty instance.
func NewCounterparty(clientID, connectionID string, prefix commitmenttypes.MerklePrefix) Counterparty {
	return Counterparty{
		ClientId:     clientID,
		ConnectionId: connectionID,
		Prefix:       prefix,
	}
}

// ValidateBasic performs a basic validation check of the identifiers. An
// empty prefix is accepted: counterparties that key storage by the raw path
// (EVM slots, Move tables) commit without one.
func (c Counterparty) ValidateBasic() error {
	if c.ConnectionId != "" {
		if err := host.ConnectionIdentifierValidator(c.ConnectionId); err != nil {
			return sdkerrors.Wrap(err, "invalid counterparty connection ID")
		}
	}
	if err := host.ClientIdentifierValidator(c.ClientId); err != nil {
		return sdkerrors.Wrap(err, "invalid counterparty client ID")
	}
	return nil
}

// IdentifiedConnection defines a connection with additional connection
// identifier field.
type IdentifiedConnection struct {
	Id string
	ConnectionEnd
}

// NewIdentifiedConnection creates a new IdentifiedConnection instance
func NewIdentifiedConnection(connectionID string, conn ConnectionEnd) IdentifiedConnection {
	return IdentifiedConnection{
		Id:            connectionID,
		ConnectionEnd: conn,
	}
}

// ValidateBasic performs a basic validation of the connection identifier and connection fields.
func (ic IdentifiedConnection) ValidateBasic() error {
	if err := host.ConnectionIdentifierValidator(ic.Id); err != nil {
		return sdkerrors.Wrap(err, "invalid connection ID")
	}
	return ic.ConnectionEnd.ValidateBasic()
}

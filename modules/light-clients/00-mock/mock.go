package mock

import (
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var (
	_ exported.ClientState    = (*ClientState)(nil)
	_ exported.ConsensusState = (*ConsensusState)(nil)
	_ exported.ClientMessage  = (*Header)(nil)
	_ exported.ClientMessage  = (*Misbehaviour)(nil)
)

// ClientState is a deterministic client used by tests. When DelegateClientID
// is set, proofs are not checked locally but forwarded to that client.
type ClientState struct {
	ChainID          string
	LatestHeight     clienttypes.Height
	FrozenHeight     clienttypes.Height
	TrustingPeriod   uint64 // nanoseconds, zero never expires
	DelegateClientID string
	// InitialData is persisted as client data under InitialDataKey at creation.
	InitialData []byte
}

// InitialDataKey is the client data key written from ClientState.InitialData.
var InitialDataKey = []byte("initial")

// NewClientState creates a mock client state at the given height.
func NewClientState(chainID string, height clienttypes.Height) *ClientState {
	return &ClientState{ChainID: chainID, LatestHeight: height}
}

func (*ClientState) ClientType() string { return exported.Mock }

func (cs *ClientState) GetLatestHeight() exported.Height { return cs.LatestHeight }

func (cs *ClientState) GetFrozenHeight() exported.Height { return cs.FrozenHeight }

func (cs *ClientState) Validate() error {
	if cs.ChainID == "" {
		return sdkerrors.Wrap(ErrInvalidCreation, "chain id cannot be empty")
	}
	if cs.LatestHeight.IsZero() {
		return sdkerrors.Wrap(ErrInvalidCreation, "latest height cannot be zero")
	}
	return nil
}

// ConsensusState commits to a set of key value pairs through Root.
type ConsensusState struct {
	Root      []byte
	Timestamp uint64
}

// NewConsensusState creates a consensus state over the given entries.
func NewConsensusState(timestamp time.Time, entries ...Entry) *ConsensusState {
	return &ConsensusState{Root: Root(entries), Timestamp: uint64(timestamp.UnixNano())}
}

func (*ConsensusState) ClientType() string { return exported.Mock }

func (cs *ConsensusState) GetRoot() []byte { return cs.Root }

func (cs *ConsensusState) GetTimestamp() uint64 { return cs.Timestamp }

func (cs *ConsensusState) ValidateBasic() error {
	if len(cs.Root) == 0 {
		return sdkerrors.Wrap(ErrInvalidCreation, "root cannot be empty")
	}
	if cs.Timestamp == 0 {
		return sdkerrors.Wrap(ErrInvalidCreation, "timestamp cannot be zero")
	}
	return nil
}

// Header moves the client to Height with the given consensus state.
type Header struct {
	Height    clienttypes.Height
	Root      []byte
	Timestamp uint64
	// Data is written to the client data namespace.
	Data []exported.StoreWrite
}

// NewHeader creates a header at height committing to entries.
func NewHeader(height clienttypes.Height, timestamp time.Time, entries ...Entry) *Header {
	return &Header{Height: height, Root: Root(entries), Timestamp: uint64(timestamp.UnixNano())}
}

func (*Header) ClientType() string { return exported.Mock }

func (h *Header) ValidateBasic() error {
	if h.Height.IsZero() {
		return sdkerrors.Wrap(ErrInvalidClientMsg, "header height cannot be zero")
	}
	if len(h.Root) == 0 || h.Timestamp == 0 {
		return sdkerrors.Wrap(ErrInvalidClientMsg, "header root and timestamp cannot be empty")
	}
	return nil
}

// Misbehaviour is two headers for the same height with different roots.
type Misbehaviour struct {
	Header1 *Header
	Header2 *Header
}

func (*Misbehaviour) ClientType() string { return exported.Mock }

func (m *Misbehaviour) ValidateBasic() error {
	if m.Header1 == nil || m.Header2 == nil {
		return sdkerrors.Wrap(ErrInvalidClientMsg, "misbehaviour headers cannot be nil")
	}
	if err := m.Header1.ValidateBasic(); err != nil {
		return err
	}
	return m.Header2.ValidateBasic()
}

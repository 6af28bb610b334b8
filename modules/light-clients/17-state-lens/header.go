package statelens

import (
	"bytes"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var (
	_ exported.ClientMessage = (*Header)(nil)
	_ exported.ClientMessage = (*Misbehaviour)(nil)
)

// Header is the consensus state the L1 stores for the L2 at L2Height, with
// its membership proof at L1Height.
type Header struct {
	L1Height              clienttypes.Height
	L2Height              clienttypes.Height
	L2ConsensusState      []byte
	L2ConsensusStateProof []byte
}

func (Header) ClientType() string {
	return exported.StateLens
}

func (h Header) GetHeight() clienttypes.Height {
	return h.L2Height
}

func (h Header) ValidateBasic() error {
	if h.L1Height.IsZero() {
		return sdkerrors.Wrap(ErrInvalidHeader, "l1 height cannot be zero")
	}
	if h.L2Height.IsZero() {
		return sdkerrors.Wrap(ErrInvalidHeader, "l2 height cannot be zero")
	}
	if len(h.L2ConsensusState) == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "l2 consensus state cannot be empty")
	}
	if len(h.L2ConsensusStateProof) == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "l2 consensus state proof cannot be empty")
	}
	return nil
}

// Misbehaviour is two L2 consensus states for the same L2 height, both
// committed on the L1.
type Misbehaviour struct {
	Header1 *Header
	Header2 *Header
}

func (Misbehaviour) ClientType() string {
	return exported.StateLens
}

func (m Misbehaviour) ValidateBasic() error {
	if m.Header1 == nil || m.Header2 == nil {
		return sdkerrors.Wrap(ErrInvalidMisbehaviour, "misbehaviour headers cannot be nil")
	}
	if err := m.Header1.ValidateBasic(); err != nil {
		return sdkerrors.Wrap(err, "header 1 failed validation")
	}
	if err := m.Header2.ValidateBasic(); err != nil {
		return sdkerrors.Wrap(err, "header 2 failed validation")
	}
	if !m.Header1.L2Height.EQ(m.Header2.L2Height) {
		return sdkerrors.Wrap(ErrInvalidMisbehaviour, "headers are for different l2 heights")
	}
	if bytes.Equal(m.Header1.L2ConsensusState, m.Header2.L2ConsensusState) {
		return sdkerrors.Wrap(ErrInvalidMisbehaviour, "headers carry the same l2 consensus state")
	}
	return nil
}

package berachain

import (
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/internal/ssz"
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.ClientMessage = (*Header)(nil)

// Header is an execution payload header with the proof that its root is
// committed in the CometBFT state at L1Height.
type Header struct {
	L1Height        clienttypes.Height
	ExecutionHeader ssz.ExecutionPayloadHeader
	Proof           []byte
}

func (Header) ClientType() string {
	return exported.Berachain
}

// GetHeight returns the execution block number.
func (h Header) GetHeight() clienttypes.Height {
	return clienttypes.NewHeight(0, h.ExecutionHeader.BlockNumber)
}

// GetTime returns the execution block time.
func (h Header) GetTime() time.Time {
	return time.Unix(int64(h.ExecutionHeader.Timestamp), 0)
}

func (h Header) ValidateBasic() error {
	if h.L1Height.IsZero() {
		return sdkerrors.Wrap(ErrInvalidHeader, "l1 height cannot be zero")
	}
	if h.ExecutionHeader.BlockNumber == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "block number cannot be zero")
	}
	if h.ExecutionHeader.Timestamp == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "timestamp cannot be zero")
	}
	if len(h.Proof) == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "proof cannot be empty")
	}
	return nil
}

package statelens

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.ConsensusState = (*ConsensusState)(nil)

// ConsensusState is the L2 state root and timestamp read from the L2
// consensus state committed on the L1 at L1Height.
type ConsensusState struct {
	StateRoot [32]byte
	Timestamp uint64
	L1Height  clienttypes.Height
}

func (ConsensusState) ClientType() string {
	return exported.StateLens
}

func (cs ConsensusState) GetRoot() []byte {
	return cs.StateRoot[:]
}

func (cs ConsensusState) GetTimestamp() uint64 {
	return cs.Timestamp
}

func (cs ConsensusState) ValidateBasic() error {
	if cs.StateRoot == ([32]byte{}) {
		return sdkerrors.Wrap(ErrInvalidConsensusState, "state root cannot be empty")
	}
	if cs.Timestamp == 0 {
		return sdkerrors.Wrap(ErrInvalidConsensusState, "timestamp cannot be zero")
	}
	return nil
}

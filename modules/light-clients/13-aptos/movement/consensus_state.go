package movement

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.ConsensusState = (*ConsensusState)(nil)

// ConsensusState is the state checkpoint of a settled ledger version.
// L1Height is the L1 height the settlement was proven at.
type ConsensusState struct {
	StateRoot [32]byte
	Timestamp uint64
	L1Height  clienttypes.Height
}

func (ConsensusState) ClientType() string {
	return exported.Movement
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

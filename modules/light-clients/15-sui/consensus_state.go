package sui

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.ConsensusState = (*ConsensusState)(nil)

// ConsensusState is the object root of a certified checkpoint. Committee is
// the committee of Epoch.
type ConsensusState struct {
	ObjectRoot [32]byte
	Timestamp  uint64
	Digest     [32]byte
	Epoch      uint64
	Committee  CommitteeInfo
}

func (ConsensusState) ClientType() string {
	return exported.Sui
}

func (cs ConsensusState) GetRoot() []byte {
	return cs.ObjectRoot[:]
}

func (cs ConsensusState) GetTimestamp() uint64 {
	return cs.Timestamp
}

func (cs ConsensusState) ValidateBasic() error {
	if cs.ObjectRoot == ([32]byte{}) {
		return sdkerrors.Wrap(ErrInvalidConsensusState, "object root cannot be empty")
	}
	if cs.Timestamp == 0 {
		return sdkerrors.Wrap(ErrInvalidConsensusState, "timestamp cannot be zero")
	}
	if cs.Committee.Root == ([32]byte{}) || cs.Committee.Size == 0 {
		return sdkerrors.Wrap(ErrInvalidConsensusState, "committee cannot be empty")
	}
	return nil
}

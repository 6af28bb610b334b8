package prooflens

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.ConsensusState = (*ConsensusState)(nil)

// ConsensusState marks a target height as usable. It carries the timestamp
// of the target consensus state and no root: proofs are checked by the
// target.
type ConsensusState struct {
	Timestamp uint64
}

func (ConsensusState) ClientType() string {
	return exported.ProofLens
}

func (ConsensusState) GetRoot() []byte {
	return nil
}

func (cs ConsensusState) GetTimestamp() uint64 {
	return cs.Timestamp
}

func (cs ConsensusState) ValidateBasic() error {
	if cs.Timestamp == 0 {
		return sdkerrors.Wrap(ErrInvalidConsensusState, "timestamp cannot be zero")
	}
	return nil
}

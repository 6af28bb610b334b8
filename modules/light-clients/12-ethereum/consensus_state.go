package ethereum

import (
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.ConsensusState = (*ConsensusState)(nil)

// ConsensusState is a finalized beacon block. StateRoot is the execution
// state root of its payload and is what membership proofs are checked
// against. The committee fields are ssz roots.
type ConsensusState struct {
	Slot                 uint64
	StateRoot            [32]byte
	Timestamp            uint64
	CurrentSyncCommittee [32]byte
	NextSyncCommittee    [32]byte
}

// NewConsensusState creates a consensus state. timestamp is the execution
// payload time.
func NewConsensusState(slot uint64, stateRoot [32]byte, timestamp time.Time, current, next [32]byte) *ConsensusState {
	return &ConsensusState{
		Slot:                 slot,
		StateRoot:            stateRoot,
		Timestamp:            uint64(timestamp.UnixNano()),
		CurrentSyncCommittee: current,
		NextSyncCommittee:    next,
	}
}

func (ConsensusState) ClientType() string {
	return exported.Ethereum
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
	if cs.CurrentSyncCommittee == ([32]byte{}) {
		return sdkerrors.Wrap(ErrInvalidConsensusState, "current sync committee cannot be empty")
	}
	return nil
}

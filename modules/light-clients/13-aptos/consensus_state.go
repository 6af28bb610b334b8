package aptos

import (
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.ConsensusState = (*ConsensusState)(nil)

// ConsensusState is the state checkpoint of a ledger version.
// ValidatorsHash is the hash of the validator set of Epoch.
type ConsensusState struct {
	StateRoot      [32]byte
	Timestamp      uint64
	Epoch          uint64
	ValidatorsHash [32]byte
}

func NewConsensusState(stateRoot [32]byte, timestamp time.Time, epoch uint64, validatorsHash [32]byte) *ConsensusState {
	return &ConsensusState{
		StateRoot:      stateRoot,
		Timestamp:      uint64(timestamp.UnixNano()),
		Epoch:          epoch,
		ValidatorsHash: validatorsHash,
	}
}

func (ConsensusState) ClientType() string {
	return exported.Aptos
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
	if cs.ValidatorsHash == ([32]byte{}) {
		return sdkerrors.Wrap(ErrInvalidConsensusState, "validators hash cannot be empty")
	}
	return nil
}

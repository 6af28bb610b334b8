package prooflens

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// targetConsensusState returns the timestamp of the target consensus state
// at height.
func (cs *ClientState) targetConsensusState(
	ctx coretypes.Context, host exported.ClientHost, height exported.Height,
) (*ConsensusState, error) {
	consensusState, found := host.GetClientConsensusState(ctx, cs.TargetClientID, height)
	if !found {
		return nil, sdkerrors.Wrapf(clienttypes.ErrConsensusStateNotFound, "target client %s at height %s", cs.TargetClientID, height)
	}
	return &ConsensusState{Timestamp: consensusState.GetTimestamp()}, nil
}

func (cs *ClientState) verifyHeader(
	ctx coretypes.Context, host exported.ClientHost, header *Header,
) (*exported.StateUpdate, error) {
	consensusState, err := cs.targetConsensusState(ctx, host, header.Height)
	if err != nil {
		return nil, err
	}

	update := &exported.StateUpdate{
		Height:         header.Height,
		ConsensusState: consensusState,
	}
	if header.Height.GT(cs.LatestHeight) {
		newState := *cs
		newState.LatestHeight = header.Height
		update.ClientState = &newState
	}
	return update, nil
}

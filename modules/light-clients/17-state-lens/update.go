package statelens

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// verifyL2Consensus proves through the L1 client that the header's L2
// consensus state is stored on the L1 and returns the consensus state it
// yields.
func (cs *ClientState) verifyL2Consensus(
	ctx coretypes.Context, host exported.ClientHost, header *Header,
) (*ConsensusState, error) {
	root, timestamp, err := cs.extractConsensus(header.L2ConsensusState)
	if err != nil {
		return nil, err
	}

	key := cs.ConsensusKey(header.L2Height)
	if err := host.VerifyMembership(ctx, cs.L1ClientID, header.L1Height, header.L2ConsensusStateProof, key, header.L2ConsensusState); err != nil {
		return nil, sdkerrors.Wrapf(err, "l2 consensus state at %s through client %s", header.L2Height, cs.L1ClientID)
	}

	return &ConsensusState{
		StateRoot: root,
		Timestamp: timestamp,
		L1Height:  header.L1Height,
	}, nil
}

func (cs *ClientState) verifyHeader(
	ctx coretypes.Context, host exported.ClientHost, header *Header,
) (*exported.StateUpdate, error) {
	consensusState, err := cs.verifyL2Consensus(ctx, host, header)
	if err != nil {
		return nil, err
	}

	update := &exported.StateUpdate{
		Height:         header.L2Height,
		ConsensusState: consensusState,
	}
	if header.L2Height.GT(cs.LatestHeight) {
		newState := *cs
		newState.LatestHeight = header.L2Height
		update.ClientState = &newState
	}
	return update, nil
}

// verifyMisbehaviour freezes the client when the L1 committed two L2
// consensus states with a different root or timestamp for one height.
func (cs *ClientState) verifyMisbehaviour(
	ctx coretypes.Context, host exported.ClientHost, misbehaviour *Misbehaviour,
) (exported.ClientState, error) {
	consensus1, err := cs.verifyL2Consensus(ctx, host, misbehaviour.Header1)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "header 1")
	}
	consensus2, err := cs.verifyL2Consensus(ctx, host, misbehaviour.Header2)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "header 2")
	}

	if consensus1.StateRoot == consensus2.StateRoot && consensus1.Timestamp == consensus2.Timestamp {
		return nil, sdkerrors.Wrap(ErrInvalidMisbehaviour, "l2 consensus states agree on state root and timestamp")
	}

	frozen := *cs
	frozen.FrozenHeight = misbehaviour.Header1.L2Height
	return &frozen, nil
}

package berachain

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// verifyHeader proves the execution payload header root through the
// tendermint client and returns the execution state root as the new
// consensus state.
func (cs *ClientState) verifyHeader(
	ctx coretypes.Context, host exported.ClientHost, header *Header,
) (*exported.StateUpdate, error) {
	root, err := header.ExecutionHeader.HashTreeRoot()
	if err != nil {
		return nil, sdkerrors.Wrap(ErrInvalidHeader, err.Error())
	}

	if err := host.VerifyMembership(ctx, cs.L1ClientID, header.L1Height, header.Proof, cs.ExecutionHeaderKey, root[:]); err != nil {
		return nil, sdkerrors.Wrapf(err, "execution header %d through client %s", header.ExecutionHeader.BlockNumber, cs.L1ClientID)
	}

	update := &exported.StateUpdate{
		Height: header.GetHeight(),
		ConsensusState: &ConsensusState{
			StateRoot: header.ExecutionHeader.StateRoot,
			Timestamp: uint64(header.GetTime().UnixNano()),
			L1Height:  header.L1Height,
		},
	}
	if header.GetHeight().GT(cs.LatestHeight) {
		newState := *cs
		newState.LatestHeight = header.GetHeight()
		update.ClientState = &newState
	}
	return update, nil
}

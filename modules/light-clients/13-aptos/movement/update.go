package movement

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// verifySettlement proves through the L1 client that the accumulator root
// of the header ledger info was settled at its version.
func (cs *ClientState) verifySettlement(ctx coretypes.Context, host exported.ClientHost, header *Header) error {
	commit := header.LedgerInfo.CommitInfo
	if commit.ExecutedStateID == ([32]byte{}) {
		return sdkerrors.Wrapf(ErrInvalidSettlement, "empty accumulator root at version %d", commit.Version)
	}

	path := cs.SettlementPath(commit.Version)
	if err := host.VerifyMembership(ctx, cs.L1ClientID, header.L1Height, header.SettlementProof, path, commit.ExecutedStateID[:]); err != nil {
		return sdkerrors.Wrapf(err, "settlement of version %d through client %s", commit.Version, cs.L1ClientID)
	}
	return nil
}

func (cs *ClientState) verifyHeader(
	ctx coretypes.Context, host exported.ClientHost, header *Header,
) (*exported.StateUpdate, error) {
	if err := cs.verifySettlement(ctx, host, header); err != nil {
		return nil, err
	}

	stateRoot, err := header.StateProof.Verify(header.LedgerInfo)
	if err != nil {
		return nil, err
	}

	update := &exported.StateUpdate{
		Height: header.GetHeight(),
		ConsensusState: &ConsensusState{
			StateRoot: stateRoot,
			Timestamp: header.LedgerInfo.CommitInfo.TimestampUsecs * 1000,
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

func (cs *ClientState) verifyMisbehaviour(
	ctx coretypes.Context, host exported.ClientHost, misbehaviour *Misbehaviour,
) (exported.ClientState, error) {
	if misbehaviour.Header1.LedgerInfo.CommitInfo.ExecutedStateID == misbehaviour.Header2.LedgerInfo.CommitInfo.ExecutedStateID {
		return nil, sdkerrors.Wrap(ErrInvalidMisbehaviour, "headers settle the same accumulator root")
	}
	if err := cs.verifySettlement(ctx, host, misbehaviour.Header1); err != nil {
		return nil, sdkerrors.Wrap(err, "header 1")
	}
	if err := cs.verifySettlement(ctx, host, misbehaviour.Header2); err != nil {
		return nil, sdkerrors.Wrap(err, "header 2")
	}

	frozen := *cs
	frozen.FrozenHeight = misbehaviour.Header1.GetHeight()
	return &frozen, nil
}

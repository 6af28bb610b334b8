package sui

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

func committeeInfo(ctx coretypes.Context, host exported.ClientHost, clientID string, epoch uint64) (CommitteeInfo, bool, error) {
	bz, found := host.GetClientData(ctx, clientID, CommitteeKey(epoch))
	if !found {
		return CommitteeInfo{}, false, nil
	}
	info, err := decodeCommitteeInfo(bz)
	if err != nil {
		return CommitteeInfo{}, false, err
	}
	return info, true, nil
}

// verifyCheckpoint verifies the certificate of a checkpoint against the
// stored committee of its epoch and returns that committee.
func verifyCheckpoint(
	ctx coretypes.Context, host exported.ClientHost, clientID string, checkpoint CertifiedCheckpointSummary,
) (CommitteeInfo, error) {
	epoch := checkpoint.Summary.Epoch
	committee, found, err := committeeInfo(ctx, host, clientID, epoch)
	if err != nil {
		return CommitteeInfo{}, err
	}
	if !found {
		return CommitteeInfo{}, sdkerrors.Wrapf(ErrCommitteeNotFound, "epoch %d", epoch)
	}

	if err := checkpoint.Verify(committee); err != nil {
		return CommitteeInfo{}, err
	}
	return committee, nil
}

// verifyHeader verifies the checkpoint certificate and records the next
// committee when the checkpoint ends its epoch.
func (cs *ClientState) verifyHeader(
	ctx coretypes.Context, host exported.ClientHost, clientID string, header *Header,
) (*exported.StateUpdate, error) {
	summary := header.Checkpoint.Summary

	committee, err := verifyCheckpoint(ctx, host, clientID, header.Checkpoint)
	if err != nil {
		return nil, err
	}

	checkpointDigest, err := summary.Digest()
	if err != nil {
		return nil, err
	}

	update := &exported.StateUpdate{
		Height: header.GetHeight(),
		ConsensusState: &ConsensusState{
			ObjectRoot: summary.ObjectRoot,
			Timestamp:  summary.TimestampMs * 1_000_000,
			Digest:     checkpointDigest,
			Epoch:      summary.Epoch,
			Committee:  committee,
		},
	}

	currentEpoch := summary.Epoch
	if summary.EndOfEpoch != nil {
		next, err := summary.EndOfEpoch.NextEpochCommittee.Info()
		if err != nil {
			return nil, err
		}

		nextEpoch := summary.Epoch + 1
		stored, found, err := committeeInfo(ctx, host, clientID, nextEpoch)
		if err != nil {
			return nil, err
		}
		if found && stored != next {
			return nil, sdkerrors.Wrapf(ErrInvalidCommittee, "conflicts with the stored committee of epoch %d", nextEpoch)
		}

		update.SideEffects = []exported.StoreWrite{{Key: CommitteeKey(nextEpoch), Value: next.Bytes()}}
		currentEpoch = nextEpoch
	}

	if header.GetHeight().GT(cs.LatestHeight) {
		newState := *cs
		newState.LatestHeight = header.GetHeight()
		if currentEpoch > newState.CurrentEpoch {
			newState.CurrentEpoch = currentEpoch
		}
		update.ClientState = &newState
	}
	return update, nil
}

// verifyMisbehaviour freezes the client on two certified checkpoints with
// the same sequence number and different digests.
func (cs *ClientState) verifyMisbehaviour(
	ctx coretypes.Context, host exported.ClientHost, clientID string, misbehaviour *Misbehaviour,
) (exported.ClientState, error) {
	digest1, err := misbehaviour.Checkpoint1.Summary.Digest()
	if err != nil {
		return nil, err
	}
	digest2, err := misbehaviour.Checkpoint2.Summary.Digest()
	if err != nil {
		return nil, err
	}
	if digest1 == digest2 {
		return nil, sdkerrors.Wrap(ErrInvalidMisbehaviour, "checkpoints have the same digest")
	}

	if _, err := verifyCheckpoint(ctx, host, clientID, misbehaviour.Checkpoint1); err != nil {
		return nil, sdkerrors.Wrap(err, "checkpoint 1")
	}
	if _, err := verifyCheckpoint(ctx, host, clientID, misbehaviour.Checkpoint2); err != nil {
		return nil, sdkerrors.Wrap(err, "checkpoint 2")
	}

	frozen := *cs
	frozen.FrozenHeight = (&Header{Checkpoint: misbehaviour.Checkpoint1}).GetHeight()
	return &frozen, nil
}

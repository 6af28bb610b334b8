package ethereum

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/internal/bls"
	"github.com/ComposableFi/ibc-core/internal/ssz"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// verifiedUpdate is what a light client update proves.
type verifiedUpdate struct {
	finalizedRoot [32]byte
	// nextCommittee is set when the update proved the committee of the
	// period after the attested one.
	nextCommittee *[32]byte
	nextPeriod    uint64
}

// verifyUpdate checks a light client update in the order of the sync
// protocol: participation, finality branch, execution branch, next sync
// committee branch and finally the aggregate signature.
func (cs *ClientState) verifyUpdate(
	ctx coretypes.Context, host exported.ClientHost, clientID string, header *Header,
) (*verifiedUpdate, error) {
	participants := header.SyncAggregate.Participants(cs.SyncCommitteeSize)
	if uint64(len(header.SyncAggregate.SyncCommitteeBits)) != (cs.SyncCommitteeSize+7)/8 {
		return nil, sdkerrors.Wrapf(ErrInvalidHeader, "sync committee bits must be %d bytes", (cs.SyncCommitteeSize+7)/8)
	}
	if participants*3 < cs.SyncCommitteeSize*2 {
		return nil, sdkerrors.Wrapf(ErrInsufficientParticipation, "%d of %d signed", participants, cs.SyncCommitteeSize)
	}

	finalizedRoot, err := header.FinalizedHeader.Beacon.HashTreeRoot()
	if err != nil {
		return nil, sdkerrors.Wrap(ErrInvalidHeader, err.Error())
	}
	if err := ssz.VerifyGindex(finalizedRoot, header.FinalityBranch, ssz.FinalizedRootGindex, header.AttestedHeader.Beacon.StateRoot); err != nil {
		return nil, sdkerrors.Wrap(ErrInvalidFinalityBranch, err.Error())
	}

	executionRoot, err := header.FinalizedHeader.Execution.HashTreeRoot()
	if err != nil {
		return nil, sdkerrors.Wrap(ErrInvalidHeader, err.Error())
	}
	if err := ssz.VerifyGindex(executionRoot, header.FinalizedHeader.ExecutionBranch, ssz.ExecutionPayloadGindex, header.FinalizedHeader.Beacon.BodyRoot); err != nil {
		return nil, sdkerrors.Wrap(ErrInvalidExecutionBranch, err.Error())
	}

	update := &verifiedUpdate{finalizedRoot: finalizedRoot}
	if header.NextSyncCommittee != nil {
		if uint64(len(header.NextSyncCommittee.Pubkeys)) != cs.SyncCommitteeSize {
			return nil, sdkerrors.Wrapf(ErrInvalidNextSyncCommittee, "expected %d keys, got %d", cs.SyncCommitteeSize, len(header.NextSyncCommittee.Pubkeys))
		}
		nextRoot, err := header.NextSyncCommittee.HashTreeRoot()
		if err != nil {
			return nil, sdkerrors.Wrap(ErrInvalidNextSyncCommittee, err.Error())
		}
		if err := ssz.VerifyGindex(nextRoot, header.NextSyncCommitteeBranch, ssz.NextSyncCommitteeGindex, header.AttestedHeader.Beacon.StateRoot); err != nil {
			return nil, sdkerrors.Wrap(ErrInvalidNextSyncCommittee, err.Error())
		}

		nextPeriod := cs.SyncPeriod(header.AttestedHeader.Beacon.Slot) + 1
		if stored, found := committeeRoot(ctx, host, clientID, nextPeriod); found && stored != nextRoot {
			return nil, sdkerrors.Wrapf(ErrInvalidNextSyncCommittee, "conflicts with the stored committee of period %d", nextPeriod)
		}
		update.nextCommittee = &nextRoot
		update.nextPeriod = nextPeriod
	}

	if err := cs.verifySignature(ctx, host, clientID, header); err != nil {
		return nil, err
	}

	return update, nil
}

func (cs *ClientState) verifySignature(
	ctx coretypes.Context, host exported.ClientHost, clientID string, header *Header,
) error {
	period := cs.SyncPeriod(header.SignatureSlot)
	trusted, found := committeeRoot(ctx, host, clientID, period)
	if !found {
		return sdkerrors.Wrapf(ErrSyncCommitteeNotFound, "period %d", period)
	}

	committee := header.TrustedSyncCommittee
	if uint64(len(committee.Pubkeys)) != cs.SyncCommitteeSize {
		return sdkerrors.Wrapf(ErrInvalidSyncCommittee, "expected %d keys, got %d", cs.SyncCommitteeSize, len(committee.Pubkeys))
	}
	root, err := committee.HashTreeRoot()
	if err != nil {
		return sdkerrors.Wrap(ErrInvalidSyncCommittee, err.Error())
	}
	if root != trusted {
		return sdkerrors.Wrapf(ErrInvalidSyncCommittee, "period %d", period)
	}

	var pubkeys [][]byte
	for i := range committee.Pubkeys {
		if header.SyncAggregate.participated(uint64(i)) {
			pubkeys = append(pubkeys, committee.Pubkeys[i][:])
		}
	}

	domain, err := ssz.ComputeDomain(ssz.DomainSyncCommittee, cs.ForkVersion(header.SignatureSlot), cs.GenesisValidatorsRoot)
	if err != nil {
		return sdkerrors.Wrap(ErrInvalidSignature, err.Error())
	}
	attestedRoot, err := header.AttestedHeader.Beacon.HashTreeRoot()
	if err != nil {
		return sdkerrors.Wrap(ErrInvalidHeader, err.Error())
	}
	signingRoot, err := ssz.ComputeSigningRoot(attestedRoot, domain)
	if err != nil {
		return sdkerrors.Wrap(ErrInvalidSignature, err.Error())
	}

	if err := bls.FastAggregateVerify(pubkeys, signingRoot[:], header.SyncAggregate.SyncCommitteeSignature); err != nil {
		return sdkerrors.Wrap(ErrInvalidSignature, err.Error())
	}
	return nil
}

// verifyHeader verifies the update and builds the consensus state of the
// finalized block.
func (cs *ClientState) verifyHeader(
	ctx coretypes.Context, host exported.ClientHost, clientID string, header *Header,
) (*exported.StateUpdate, error) {
	update, err := cs.verifyUpdate(ctx, host, clientID, header)
	if err != nil {
		return nil, err
	}

	finalized := header.FinalizedHeader
	finalizedPeriod := cs.SyncPeriod(finalized.Beacon.Slot)

	lookup := func(period uint64) [32]byte {
		if update.nextCommittee != nil && update.nextPeriod == period {
			return *update.nextCommittee
		}
		root, _ := committeeRoot(ctx, host, clientID, period)
		return root
	}

	current := lookup(finalizedPeriod)
	if current == ([32]byte{}) {
		return nil, sdkerrors.Wrapf(ErrSyncCommitteeNotFound, "period %d of finalized slot %d", finalizedPeriod, finalized.Beacon.Slot)
	}

	consensusState := &ConsensusState{
		Slot:                 finalized.Beacon.Slot,
		StateRoot:            finalized.Execution.StateRoot,
		Timestamp:            finalized.Execution.Timestamp * 1e9,
		CurrentSyncCommittee: current,
		NextSyncCommittee:    lookup(finalizedPeriod + 1),
	}
	if err := consensusState.ValidateBasic(); err != nil {
		return nil, err
	}

	stateUpdate := &exported.StateUpdate{
		Height:         header.GetHeight(),
		ConsensusState: consensusState,
	}
	if update.nextCommittee != nil {
		stateUpdate.SideEffects = []exported.StoreWrite{{
			Key:   SyncCommitteeKey(update.nextPeriod),
			Value: update.nextCommittee[:],
		}}
	}
	if finalized.Beacon.Slot > cs.LatestSlot {
		newState := *cs
		newState.LatestSlot = finalized.Beacon.Slot
		stateUpdate.ClientState = &newState
	}

	return stateUpdate, nil
}

// verifyMisbehaviour freezes the client when two valid updates finalize
// different blocks at the same slot.
func (cs *ClientState) verifyMisbehaviour(
	ctx coretypes.Context, host exported.ClientHost, clientID string, misbehaviour *Misbehaviour,
) (exported.ClientState, error) {
	update1, err := cs.verifyUpdate(ctx, host, clientID, misbehaviour.Header1)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "header 1")
	}
	update2, err := cs.verifyUpdate(ctx, host, clientID, misbehaviour.Header2)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "header 2")
	}

	if update1.finalizedRoot == update2.finalizedRoot {
		return nil, sdkerrors.Wrap(ErrInvalidMisbehaviour, "headers finalize the same block")
	}

	frozen := *cs
	frozen.FrozenHeight = misbehaviour.Header1.GetHeight()
	return &frozen, nil
}

func committeeRoot(ctx coretypes.Context, host exported.ClientHost, clientID string, period uint64) ([32]byte, bool) {
	var root [32]byte
	bz, found := host.GetClientData(ctx, clientID, SyncCommitteeKey(period))
	if !found || len(bz) != len(root) {
		return root, false
	}
	copy(root[:], bz)
	return root, true
}

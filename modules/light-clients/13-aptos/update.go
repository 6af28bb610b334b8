package aptos

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// verifyTrustedValidators checks that verifier is the validator set stored
// for epoch and returns its hash.
func verifyTrustedValidators(
	ctx coretypes.Context, host exported.ClientHost, clientID string, epoch uint64, verifier ValidatorVerifier,
) ([32]byte, error) {
	stored, found := epochHash(ctx, host, clientID, epoch)
	if !found {
		return [32]byte{}, sdkerrors.Wrapf(ErrEpochNotFound, "epoch %d", epoch)
	}

	hash, err := verifier.Hash()
	if err != nil {
		return [32]byte{}, err
	}
	if hash != stored {
		return [32]byte{}, sdkerrors.Wrapf(ErrInvalidValidatorSet, "validator set does not match epoch %d", epoch)
	}
	return hash, nil
}

// verifyHeader verifies the ledger info quorum certificate, proves the state
// checkpoint at its version and records the next epoch when it ends one.
func (cs *ClientState) verifyHeader(
	ctx coretypes.Context, host exported.ClientHost, clientID string, header *Header,
) (*exported.StateUpdate, error) {
	commit := header.LedgerInfo.LedgerInfo.CommitInfo

	validatorsHash, err := verifyTrustedValidators(ctx, host, clientID, commit.Epoch, header.TrustedValidators)
	if err != nil {
		return nil, err
	}
	if err := header.LedgerInfo.Verify(header.TrustedValidators); err != nil {
		return nil, err
	}

	stateRoot, err := header.StateProof.Verify(header.LedgerInfo.LedgerInfo)
	if err != nil {
		return nil, err
	}

	update := &exported.StateUpdate{
		Height: header.GetHeight(),
		ConsensusState: &ConsensusState{
			StateRoot:      stateRoot,
			Timestamp:      commit.TimestampUsecs * 1000,
			Epoch:          commit.Epoch,
			ValidatorsHash: validatorsHash,
		},
	}

	currentEpoch := commit.Epoch
	if next := commit.NextEpochState; next != nil {
		nextHash, err := next.Verifier.Hash()
		if err != nil {
			return nil, err
		}
		if stored, found := epochHash(ctx, host, clientID, next.Epoch); found && stored != nextHash {
			return nil, sdkerrors.Wrapf(ErrInvalidEpochChange, "conflicts with the stored validator set of epoch %d", next.Epoch)
		}
		update.SideEffects = []exported.StoreWrite{{Key: EpochKey(next.Epoch), Value: nextHash[:]}}
		currentEpoch = next.Epoch
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

// verifyMisbehaviour freezes the client when a quorum of one epoch signed
// two different accumulator roots for the same version.
func (cs *ClientState) verifyMisbehaviour(
	ctx coretypes.Context, host exported.ClientHost, clientID string, misbehaviour *Misbehaviour,
) (exported.ClientState, error) {
	commit1, commit2 := misbehaviour.LedgerInfo1.LedgerInfo.CommitInfo, misbehaviour.LedgerInfo2.LedgerInfo.CommitInfo

	if _, err := verifyTrustedValidators(ctx, host, clientID, commit1.Epoch, misbehaviour.TrustedValidators); err != nil {
		return nil, err
	}
	if commit1.ExecutedStateID == commit2.ExecutedStateID {
		return nil, sdkerrors.Wrap(ErrInvalidMisbehaviour, "ledger infos commit the same accumulator root")
	}
	if err := misbehaviour.LedgerInfo1.Verify(misbehaviour.TrustedValidators); err != nil {
		return nil, sdkerrors.Wrap(err, "ledger info 1")
	}
	if err := misbehaviour.LedgerInfo2.Verify(misbehaviour.TrustedValidators); err != nil {
		return nil, sdkerrors.Wrap(err, "ledger info 2")
	}

	frozen := *cs
	frozen.FrozenHeight = clienttypes.NewHeight(0, commit1.Version)
	return &frozen, nil
}

func epochHash(ctx coretypes.Context, host exported.ClientHost, clientID string, epoch uint64) ([32]byte, bool) {
	var hash [32]byte
	bz, found := host.GetClientData(ctx, clientID, EpochKey(epoch))
	if !found || len(bz) != len(hash) {
		return hash, false
	}
	copy(hash[:], bz)
	return hash, true
}

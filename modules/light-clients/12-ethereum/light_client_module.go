package ethereum

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/internal/mpt"
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	ibcerrors "github.com/ComposableFi/ibc-core/modules/core/errors"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

var _ exported.LightClientModule = (*LightClientModule)(nil)

// LightClientModule implements the 12-ethereum light client.
type LightClientModule struct{}

// NewLightClientModule creates and returns a new 12-ethereum LightClientModule.
func NewLightClientModule() LightClientModule {
	return LightClientModule{}
}

// ClientType returns 12-ethereum.
func (LightClientModule) ClientType() string {
	return exported.Ethereum
}

func (LightClientModule) DecodeClientState(bz []byte) (exported.ClientState, error) {
	var clientState ClientState
	if err := clienttypes.Decode(bz, &clientState); err != nil {
		return nil, err
	}
	return &clientState, nil
}

func (LightClientModule) DecodeConsensusState(bz []byte) (exported.ConsensusState, error) {
	var consensusState ConsensusState
	if err := clienttypes.Decode(bz, &consensusState); err != nil {
		return nil, err
	}
	return &consensusState, nil
}

func (LightClientModule) DecodeHeader(bz []byte) (exported.ClientMessage, error) {
	var header Header
	if err := clienttypes.Decode(bz, &header); err != nil {
		return nil, err
	}
	return &header, nil
}

func (LightClientModule) DecodeMisbehaviour(bz []byte) (exported.ClientMessage, error) {
	var misbehaviour Misbehaviour
	if err := clienttypes.Decode(bz, &misbehaviour); err != nil {
		return nil, err
	}
	return &misbehaviour, nil
}

// VerifyCreation persists the sync committee roots carried by the initial
// consensus state, keyed by the period they sign for.
func (LightClientModule) VerifyCreation(
	_ coretypes.Context, _ exported.ClientHost, _ string,
	clientState exported.ClientState, consensusState exported.ConsensusState, _, _ string,
) ([]exported.StoreWrite, error) {
	cs, ok := clientState.(*ClientState)
	if !ok {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrInvalidType, "expected %T, got %T", &ClientState{}, clientState)
	}
	ethConsensusState, ok := consensusState.(*ConsensusState)
	if !ok {
		return nil, sdkerrors.Wrapf(clienttypes.ErrInvalidConsensus, "invalid initial consensus state. expected type: %T, got: %T",
			&ConsensusState{}, consensusState)
	}
	if ethConsensusState.Slot != cs.LatestSlot {
		return nil, sdkerrors.Wrapf(ErrInvalidConsensusState, "consensus slot %d does not match latest slot %d", ethConsensusState.Slot, cs.LatestSlot)
	}

	period := cs.SyncPeriod(ethConsensusState.Slot)
	writes := []exported.StoreWrite{{
		Key:   SyncCommitteeKey(period),
		Value: append([]byte(nil), ethConsensusState.CurrentSyncCommittee[:]...),
	}}
	if ethConsensusState.NextSyncCommittee != ([32]byte{}) {
		writes = append(writes, exported.StoreWrite{
			Key:   SyncCommitteeKey(period + 1),
			Value: append([]byte(nil), ethConsensusState.NextSyncCommittee[:]...),
		})
	}
	return writes, nil
}

// VerifyHeader verifies a sync committee signed light client update.
func (LightClientModule) VerifyHeader(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, clientMsg exported.ClientMessage, _, _ string,
) (*exported.StateUpdate, error) {
	cs, ok := clientState.(*ClientState)
	if !ok {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrInvalidType, "expected %T, got %T", &ClientState{}, clientState)
	}

	header, ok := clientMsg.(*Header)
	if !ok {
		return nil, sdkerrors.Wrapf(clienttypes.ErrInvalidClientType, "expected type %T, got %T", &Header{}, clientMsg)
	}

	return cs.verifyHeader(ctx, host, clientID, header)
}

func (LightClientModule) Misbehaviour(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, clientMsg exported.ClientMessage, _, _ string,
) (exported.ClientState, error) {
	cs, ok := clientState.(*ClientState)
	if !ok {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrInvalidType, "expected %T, got %T", &ClientState{}, clientState)
	}

	misbehaviour, ok := clientMsg.(*Misbehaviour)
	if !ok {
		return nil, sdkerrors.Wrapf(clienttypes.ErrInvalidClientType, "expected type %T, got %T", &Misbehaviour{}, clientMsg)
	}

	return cs.verifyMisbehaviour(ctx, host, clientID, misbehaviour)
}

// VerifyMembership verifies that the ibc contract stores keccak256(value)
// in the commitment slot of path. The proof is an rlp encoded account
// proof with a single storage proof.
func (LightClientModule) VerifyMembership(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height, proof, path, value []byte,
) error {
	cs, consensusState, err := verificationStates(ctx, host, clientID, clientState, height)
	if err != nil {
		return err
	}

	if err := mpt.VerifyCommitment(consensusState.StateRoot, cs.IbcContractAddress, proof, path, value); err != nil {
		return commitmenttypes.WrapInvalidProof(sdkerrors.Wrap(ErrInvalidProof, err.Error()))
	}
	return nil
}

// VerifyNonMembership verifies that the commitment slot of path is empty in
// the ibc contract storage.
func (LightClientModule) VerifyNonMembership(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height, proof, path []byte,
) error {
	cs, consensusState, err := verificationStates(ctx, host, clientID, clientState, height)
	if err != nil {
		return err
	}

	if err := mpt.VerifyCommitmentAbsence(consensusState.StateRoot, cs.IbcContractAddress, proof, path); err != nil {
		return commitmenttypes.WrapInvalidProof(sdkerrors.Wrap(ErrInvalidProof, err.Error()))
	}
	return nil
}

// Status returns Frozen once misbehaviour was submitted and Expired when the
// consensus state at the latest slot is missing.
func (LightClientModule) Status(
	ctx coretypes.Context, host exported.ClientHost, clientID string, clientState exported.ClientState,
) exported.Status {
	cs, ok := clientState.(*ClientState)
	if !ok {
		return exported.Unknown
	}

	if !cs.FrozenHeight.IsZero() {
		return exported.Frozen
	}

	if _, err := getConsensusState(ctx, host, clientID, cs.GetLatestHeight()); err != nil {
		return exported.Expired
	}

	return exported.Active
}

func (LightClientModule) TimestampAtHeight(
	ctx coretypes.Context, host exported.ClientHost, clientID string, height exported.Height,
) (uint64, error) {
	consensusState, err := getConsensusState(ctx, host, clientID, height)
	if err != nil {
		return 0, err
	}
	return consensusState.GetTimestamp(), nil
}

// verificationStates returns the client state and the consensus state at
// height, which cannot be above the latest slot.
func verificationStates(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height,
) (*ClientState, *ConsensusState, error) {
	cs, ok := clientState.(*ClientState)
	if !ok {
		return nil, nil, sdkerrors.Wrapf(ibcerrors.ErrInvalidType, "expected %T, got %T", &ClientState{}, clientState)
	}

	if cs.GetLatestHeight().LT(height) {
		return nil, nil, sdkerrors.Wrapf(
			ibcerrors.ErrInvalidHeight,
			"client state height < proof height (%s < %s), please ensure the client has been updated", cs.GetLatestHeight(), height,
		)
	}

	consensusState, err := getConsensusState(ctx, host, clientID, height)
	if err != nil {
		return nil, nil, err
	}
	return cs, consensusState, nil
}

func getConsensusState(
	ctx coretypes.Context, host exported.ClientHost, clientID string, height exported.Height,
) (*ConsensusState, error) {
	consensusState, found := host.GetClientConsensusState(ctx, clientID, height)
	if !found {
		return nil, sdkerrors.Wrapf(clienttypes.ErrConsensusStateNotFound, "height %s", height)
	}

	ethConsensusState, ok := consensusState.(*ConsensusState)
	if !ok {
		return nil, sdkerrors.Wrapf(clienttypes.ErrInvalidConsensus, "expected type %T, got %T", &ConsensusState{}, consensusState)
	}
	return ethConsensusState, nil
}

package sui

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	ibcerrors "github.com/ComposableFi/ibc-core/modules/core/errors"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

var _ exported.LightClientModule = (*LightClientModule)(nil)

// LightClientModule implements the 15-sui light client.
type LightClientModule struct{}

// NewLightClientModule creates and returns a new 15-sui LightClientModule.
func NewLightClientModule() LightClientModule {
	return LightClientModule{}
}

// ClientType returns 15-sui.
func (LightClientModule) ClientType() string {
	return exported.Sui
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

// VerifyCreation persists the committee of the initial epoch.
func (LightClientModule) VerifyCreation(
	_ coretypes.Context, _ exported.ClientHost, _ string,
	clientState exported.ClientState, consensusState exported.ConsensusState, _, _ string,
) ([]exported.StoreWrite, error) {
	cs, ok := clientState.(*ClientState)
	if !ok {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrInvalidType, "expected %T, got %T", &ClientState{}, clientState)
	}
	suiConsensusState, ok := consensusState.(*ConsensusState)
	if !ok {
		return nil, sdkerrors.Wrapf(clienttypes.ErrInvalidConsensus, "invalid initial consensus state. expected type: %T, got: %T",
			&ConsensusState{}, consensusState)
	}
	if suiConsensusState.Epoch != cs.CurrentEpoch {
		return nil, sdkerrors.Wrapf(ErrInvalidConsensusState, "consensus epoch %d does not match current epoch %d", suiConsensusState.Epoch, cs.CurrentEpoch)
	}

	return []exported.StoreWrite{{
		Key:   CommitteeKey(suiConsensusState.Epoch),
		Value: suiConsensusState.Committee.Bytes(),
	}}, nil
}

// VerifyHeader verifies a checkpoint certified by the committee of its epoch.
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

func (LightClientModule) VerifyMembership(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height, proof, path, value []byte,
) error {
	cs, consensusState, err := verificationStates(ctx, host, clientID, clientState, height)
	if err != nil {
		return err
	}

	return commitmenttypes.WrapInvalidProof(VerifyObjectMembership(consensusState.ObjectRoot, cs.IbcStoreID, proof, path, value))
}

func (LightClientModule) VerifyNonMembership(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height, proof, path []byte,
) error {
	cs, consensusState, err := verificationStates(ctx, host, clientID, clientState, height)
	if err != nil {
		return err
	}

	return commitmenttypes.WrapInvalidProof(VerifyObjectNonMembership(consensusState.ObjectRoot, cs.IbcStoreID, proof, path))
}

// Status is Frozen once misbehaviour was submitted and Expired when the
// consensus state at the latest height is missing.
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

	if _, err := getConsensusState(ctx, host, clientID, cs.LatestHeight); err != nil {
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

func verificationStates(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height,
) (*ClientState, *ConsensusState, error) {
	cs, ok := clientState.(*ClientState)
	if !ok {
		return nil, nil, sdkerrors.Wrapf(ibcerrors.ErrInvalidType, "expected %T, got %T", &ClientState{}, clientState)
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

	suiConsensusState, ok := consensusState.(*ConsensusState)
	if !ok {
		return nil, sdkerrors.Wrapf(clienttypes.ErrInvalidConsensus, "expected type %T, got %T", &ConsensusState{}, consensusState)
	}
	return suiConsensusState, nil
}

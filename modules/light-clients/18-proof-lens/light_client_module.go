package prooflens

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	ibcerrors "github.com/ComposableFi/ibc-core/modules/core/errors"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

var _ exported.LightClientModule = (*LightClientModule)(nil)

// LightClientModule implements the 18-proof-lens light client.
type LightClientModule struct{}

// NewLightClientModule creates and returns a new 18-proof-lens LightClientModule.
func NewLightClientModule() LightClientModule {
	return LightClientModule{}
}

// ClientType returns 18-proof-lens.
func (LightClientModule) ClientType() string {
	return exported.ProofLens
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

func (LightClientModule) DecodeMisbehaviour([]byte) (exported.ClientMessage, error) {
	return nil, ErrMisbehaviourNotSupported
}

// VerifyCreation checks that the target client exists and that the initial
// consensus state matches the target consensus state at the latest height.
func (LightClientModule) VerifyCreation(
	ctx coretypes.Context, host exported.ClientHost, _ string,
	clientState exported.ClientState, consensusState exported.ConsensusState, _, _ string,
) ([]exported.StoreWrite, error) {
	cs, ok := clientState.(*ClientState)
	if !ok {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrInvalidType, "expected %T, got %T", &ClientState{}, clientState)
	}
	initial, ok := consensusState.(*ConsensusState)
	if !ok {
		return nil, sdkerrors.Wrapf(clienttypes.ErrInvalidConsensus, "invalid initial consensus state. expected type: %T, got: %T",
			&ConsensusState{}, consensusState)
	}

	if _, found := host.GetClientState(ctx, cs.TargetClientID); !found {
		return nil, sdkerrors.Wrapf(clienttypes.ErrClientNotFound, "target client %s", cs.TargetClientID)
	}

	target, err := cs.targetConsensusState(ctx, host, cs.LatestHeight)
	if err != nil {
		return nil, err
	}
	if target.Timestamp != initial.Timestamp {
		return nil, sdkerrors.Wrapf(ErrInvalidConsensusState, "timestamp %d, target client has %d", initial.Timestamp, target.Timestamp)
	}
	return nil, nil
}

// VerifyHeader records a height at which the target client has a consensus
// state.
func (LightClientModule) VerifyHeader(
	ctx coretypes.Context, host exported.ClientHost, _ string,
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

	return cs.verifyHeader(ctx, host, header)
}

func (LightClientModule) Misbehaviour(
	coretypes.Context, exported.ClientHost, string, exported.ClientState, exported.ClientMessage, string, string,
) (exported.ClientState, error) {
	return nil, ErrMisbehaviourNotSupported
}

func (LightClientModule) VerifyMembership(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height, proof, path, value []byte,
) error {
	cs, err := verificationState(ctx, host, clientID, clientState, height)
	if err != nil {
		return err
	}

	return host.VerifyMembership(ctx, cs.TargetClientID, height, proof, path, value)
}

func (LightClientModule) VerifyNonMembership(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height, proof, path []byte,
) error {
	cs, err := verificationState(ctx, host, clientID, clientState, height)
	if err != nil {
		return err
	}

	return host.VerifyNonMembership(ctx, cs.TargetClientID, height, proof, path)
}

// Status follows the target client unless the proof-lens client itself was
// frozen.
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

	if status := host.GetClientStatus(ctx, cs.TargetClientID); status != exported.Active {
		return status
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

// verificationState requires the height to be recorded by the proof-lens
// client before delegating to the target.
func verificationState(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height,
) (*ClientState, error) {
	cs, ok := clientState.(*ClientState)
	if !ok {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrInvalidType, "expected %T, got %T", &ClientState{}, clientState)
	}

	if _, err := getConsensusState(ctx, host, clientID, height); err != nil {
		return nil, err
	}
	return cs, nil
}

func getConsensusState(
	ctx coretypes.Context, host exported.ClientHost, clientID string, height exported.Height,
) (*ConsensusState, error) {
	consensusState, found := host.GetClientConsensusState(ctx, clientID, height)
	if !found {
		return nil, sdkerrors.Wrapf(clienttypes.ErrConsensusStateNotFound, "height %s", height)
	}

	lensConsensusState, ok := consensusState.(*ConsensusState)
	if !ok {
		return nil, sdkerrors.Wrapf(clienttypes.ErrInvalidConsensus, "expected type %T, got %T", &ConsensusState{}, consensusState)
	}
	return lensConsensusState, nil
}

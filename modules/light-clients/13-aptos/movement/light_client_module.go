package movement

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	ibcerrors "github.com/ComposableFi/ibc-core/modules/core/errors"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
	aptos "github.com/ComposableFi/ibc-core/modules/light-clients/13-aptos"
)

var _ exported.LightClientModule = (*LightClientModule)(nil)

// LightClientModule implements the 13-movement light client.
type LightClientModule struct{}

// NewLightClientModule creates and returns a new 13-movement LightClientModule.
func NewLightClientModule() LightClientModule {
	return LightClientModule{}
}

// ClientType returns 13-movement.
func (LightClientModule) ClientType() string {
	return exported.Movement
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

// VerifyCreation checks that the L1 client exists. The movement client has
// no auxiliary data.
func (LightClientModule) VerifyCreation(
	ctx coretypes.Context, host exported.ClientHost, _ string,
	clientState exported.ClientState, consensusState exported.ConsensusState, _, _ string,
) ([]exported.StoreWrite, error) {
	cs, ok := clientState.(*ClientState)
	if !ok {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrInvalidType, "expected %T, got %T", &ClientState{}, clientState)
	}
	if _, ok := consensusState.(*ConsensusState); !ok {
		return nil, sdkerrors.Wrapf(clienttypes.ErrInvalidConsensus, "invalid initial consensus state. expected type: %T, got: %T",
			&ConsensusState{}, consensusState)
	}

	if _, found := host.GetClientState(ctx, cs.L1ClientID); !found {
		return nil, sdkerrors.Wrapf(clienttypes.ErrClientNotFound, "l1 client %s", cs.L1ClientID)
	}
	return nil, nil
}

// VerifyHeader verifies the settlement of the header ledger info on the L1
// and the state checkpoint at its version.
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
	ctx coretypes.Context, host exported.ClientHost, _ string,
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

	return cs.verifyMisbehaviour(ctx, host, misbehaviour)
}

func (LightClientModule) VerifyMembership(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height, proof, path, value []byte,
) error {
	cs, consensusState, err := verificationStates(ctx, host, clientID, clientState, height)
	if err != nil {
		return err
	}

	return commitmenttypes.WrapInvalidProof(aptos.VerifyStateMembership(consensusState.StateRoot, cs.IbcAddress, proof, path, value))
}

func (LightClientModule) VerifyNonMembership(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height, proof, path []byte,
) error {
	cs, consensusState, err := verificationStates(ctx, host, clientID, clientState, height)
	if err != nil {
		return err
	}

	return commitmenttypes.WrapInvalidProof(aptos.VerifyStateNonMembership(consensusState.StateRoot, cs.IbcAddress, proof, path))
}

// Status is Frozen once misbehaviour was submitted. A client whose L1
// client is not active takes the status of the L1 client.
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

	if status := host.GetClientStatus(ctx, cs.L1ClientID); status != exported.Active {
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

	movementConsensusState, ok := consensusState.(*ConsensusState)
	if !ok {
		return nil, sdkerrors.Wrapf(clienttypes.ErrInvalidConsensus, "expected type %T, got %T", &ConsensusState{}, consensusState)
	}
	return movementConsensusState, nil
}

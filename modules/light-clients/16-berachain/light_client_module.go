package berachain

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

// LightClientModule implements the 16-berachain light client.
type LightClientModule struct{}

// NewLightClientModule creates and returns a new 16-berachain LightClientModule.
func NewLightClientModule() LightClientModule {
	return LightClientModule{}
}

// ClientType returns 16-berachain.
func (LightClientModule) ClientType() string {
	return exported.Berachain
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

// VerifyCreation checks that L1ClientID is a tendermint client.
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

	l1ClientState, found := host.GetClientState(ctx, cs.L1ClientID)
	if !found {
		return nil, sdkerrors.Wrapf(clienttypes.ErrClientNotFound, "l1 client %s", cs.L1ClientID)
	}
	if l1ClientState.ClientType() != exported.Tendermint {
		return nil, sdkerrors.Wrapf(ErrInvalidClientState, "l1 client %s is a %s client", cs.L1ClientID, l1ClientState.ClientType())
	}
	return nil, nil
}

// VerifyHeader verifies an execution payload header committed in the
// CometBFT state tracked by the tendermint client.
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
	cs, consensusState, err := verificationStates(ctx, host, clientID, clientState, height)
	if err != nil {
		return err
	}

	if err := mpt.VerifyCommitment(consensusState.StateRoot, cs.IbcContractAddress, proof, path, value); err != nil {
		return commitmenttypes.WrapInvalidProof(sdkerrors.Wrap(ErrInvalidProof, err.Error()))
	}
	return nil
}

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

// Status is Frozen when the client or its tendermint client is frozen. A
// client whose tendermint client expired is Expired.
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

	berachainConsensusState, ok := consensusState.(*ConsensusState)
	if !ok {
		return nil, sdkerrors.Wrapf(clienttypes.ErrInvalidConsensus, "expected type %T, got %T", &ConsensusState{}, consensusState)
	}
	return berachainConsensusState, nil
}

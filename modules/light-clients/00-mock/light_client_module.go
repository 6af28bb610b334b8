package mock

import (
	"bytes"
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

var _ exported.LightClientModule = (*LightClientModule)(nil)

// LightClientModule implements the mock client.
type LightClientModule struct{}

// NewLightClientModule creates the mock light client module.
func NewLightClientModule() LightClientModule {
	return LightClientModule{}
}

func (LightClientModule) ClientType() string { return exported.Mock }

func (LightClientModule) DecodeClientState(bz []byte) (exported.ClientState, error) {
	var cs ClientState
	if err := clienttypes.Decode(bz, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

func (LightClientModule) DecodeConsensusState(bz []byte) (exported.ConsensusState, error) {
	var cs ConsensusState
	if err := clienttypes.Decode(bz, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

func (LightClientModule) DecodeHeader(bz []byte) (exported.ClientMessage, error) {
	var h Header
	if err := clienttypes.Decode(bz, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (LightClientModule) DecodeMisbehaviour(bz []byte) (exported.ClientMessage, error) {
	var m Misbehaviour
	if err := clienttypes.Decode(bz, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// VerifyCreation persists InitialData and checks the delegate exists.
func (LightClientModule) VerifyCreation(
	ctx coretypes.Context, host exported.ClientHost, _ string,
	clientState exported.ClientState, _ exported.ConsensusState, _, _ string,
) ([]exported.StoreWrite, error) {
	cs, ok := clientState.(*ClientState)
	if !ok {
		return nil, sdkerrors.Wrapf(ErrInvalidCreation, "invalid client state type %T", clientState)
	}

	if cs.DelegateClientID != "" {
		if _, found := host.GetClientState(ctx, cs.DelegateClientID); !found {
			return nil, sdkerrors.Wrapf(ErrInvalidCreation, "delegate client %s not found", cs.DelegateClientID)
		}
	}

	if len(cs.InitialData) == 0 {
		return nil, nil
	}
	return []exported.StoreWrite{{Key: InitialDataKey, Value: cs.InitialData}}, nil
}

func (LightClientModule) VerifyHeader(
	_ coretypes.Context, _ exported.ClientHost, _ string,
	clientState exported.ClientState, clientMsg exported.ClientMessage, _, _ string,
) (*exported.StateUpdate, error) {
	cs := clientState.(*ClientState)
	header, ok := clientMsg.(*Header)
	if !ok {
		return nil, sdkerrors.Wrapf(ErrInvalidClientMsg, "invalid client message type %T", clientMsg)
	}

	update := &exported.StateUpdate{
		Height:         header.Height,
		ConsensusState: &ConsensusState{Root: header.Root, Timestamp: header.Timestamp},
		SideEffects:    header.Data,
	}

	if header.Height.GT(cs.LatestHeight) {
		newState := *cs
		newState.LatestHeight = header.Height
		update.ClientState = &newState
	}

	return update, nil
}

func (LightClientModule) Misbehaviour(
	_ coretypes.Context, _ exported.ClientHost, _ string,
	clientState exported.ClientState, clientMsg exported.ClientMessage, _, _ string,
) (exported.ClientState, error) {
	cs := clientState.(*ClientState)
	misbehaviour, ok := clientMsg.(*Misbehaviour)
	if !ok {
		return nil, sdkerrors.Wrapf(ErrInvalidClientMsg, "invalid client message type %T", clientMsg)
	}

	if !misbehaviour.Header1.Height.EQ(misbehaviour.Header2.Height) {
		return nil, sdkerrors.Wrap(clienttypes.ErrInvalidMisbehaviour, "headers are for different heights")
	}
	if bytes.Equal(misbehaviour.Header1.Root, misbehaviour.Header2.Root) {
		return nil, sdkerrors.Wrap(clienttypes.ErrInvalidMisbehaviour, "headers commit to the same root")
	}

	frozen := *cs
	frozen.FrozenHeight = misbehaviour.Header1.Height
	return &frozen, nil
}

func (LightClientModule) VerifyMembership(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height, proof, path, value []byte,
) error {
	cs := clientState.(*ClientState)
	if cs.DelegateClientID != "" {
		return host.VerifyMembership(ctx, cs.DelegateClientID, height, proof, path, value)
	}

	consensusState, found := host.GetClientConsensusState(ctx, clientID, height)
	if !found {
		return sdkerrors.Wrapf(clienttypes.ErrConsensusStateNotFound, "height %s", height)
	}

	stored, found, err := lookup(consensusState.GetRoot(), proof, path)
	switch {
	case err != nil:
		return commitmenttypes.WrapInvalidProof(err)
	case !found:
		return commitmenttypes.WrapInvalidProof(sdkerrors.Wrapf(ErrKeyNotFound, "key %s", path))
	case !bytes.Equal(stored, value):
		return commitmenttypes.WrapInvalidProof(sdkerrors.Wrapf(ErrValueMismatch, "key %s", path))
	}
	return nil
}

func (LightClientModule) VerifyNonMembership(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height, proof, path []byte,
) error {
	cs := clientState.(*ClientState)
	if cs.DelegateClientID != "" {
		return host.VerifyNonMembership(ctx, cs.DelegateClientID, height, proof, path)
	}

	consensusState, found := host.GetClientConsensusState(ctx, clientID, height)
	if !found {
		return sdkerrors.Wrapf(clienttypes.ErrConsensusStateNotFound, "height %s", height)
	}

	_, found, err := lookup(consensusState.GetRoot(), proof, path)
	switch {
	case err != nil:
		return commitmenttypes.WrapInvalidProof(err)
	case found:
		return commitmenttypes.WrapInvalidProof(sdkerrors.Wrapf(ErrKeyExists, "key %s", path))
	}
	return nil
}

// Status is Expired once the latest consensus state is older than the
// trusting period.
func (LightClientModule) Status(
	ctx coretypes.Context, host exported.ClientHost, clientID string, clientState exported.ClientState,
) exported.Status {
	cs := clientState.(*ClientState)
	if !cs.FrozenHeight.IsZero() {
		return exported.Frozen
	}

	if cs.TrustingPeriod == 0 {
		return exported.Active
	}

	consensusState, found := host.GetClientConsensusState(ctx, clientID, cs.LatestHeight)
	if !found {
		return exported.Expired
	}

	expiry := time.Unix(0, int64(consensusState.GetTimestamp())).Add(time.Duration(cs.TrustingPeriod))
	if !expiry.After(ctx.BlockTime()) {
		return exported.Expired
	}
	return exported.Active
}

func (LightClientModule) TimestampAtHeight(
	ctx coretypes.Context, host exported.ClientHost, clientID string, height exported.Height,
) (uint64, error) {
	consensusState, found := host.GetClientConsensusState(ctx, clientID, height)
	if !found {
		return 0, sdkerrors.Wrapf(clienttypes.ErrConsensusStateNotFound, "height %s", height)
	}
	return consensusState.GetTimestamp(), nil
}

package tendermint

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	ibcerrors "github.com/ComposableFi/ibc-core/modules/core/errors"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

var _ exported.LightClientModule = (*LightClientModule)(nil)

// LightClientModule implements the 07-tendermint light client.
type LightClientModule struct{}

// NewLightClientModule creates and returns a new 07-tendermint LightClientModule.
func NewLightClientModule() LightClientModule {
	return LightClientModule{}
}

// ClientType returns 07-tendermint.
func (LightClientModule) ClientType() string {
	return exported.Tendermint
}

// DecodeClientState decodes rlp bytes into a tendermint ClientState.
func (LightClientModule) DecodeClientState(bz []byte) (exported.ClientState, error) {
	var clientState ClientState
	if err := clienttypes.Decode(bz, &clientState); err != nil {
		return nil, err
	}
	return &clientState, nil
}

// DecodeConsensusState decodes rlp bytes into a tendermint ConsensusState.
func (LightClientModule) DecodeConsensusState(bz []byte) (exported.ConsensusState, error) {
	var consensusState ConsensusState
	if err := clienttypes.Decode(bz, &consensusState); err != nil {
		return nil, err
	}
	return &consensusState, nil
}

// DecodeHeader decodes rlp bytes into a tendermint Header.
func (LightClientModule) DecodeHeader(bz []byte) (exported.ClientMessage, error) {
	var header Header
	if err := clienttypes.Decode(bz, &header); err != nil {
		return nil, err
	}
	return &header, nil
}

// DecodeMisbehaviour decodes rlp bytes into a tendermint Misbehaviour.
func (LightClientModule) DecodeMisbehaviour(bz []byte) (exported.ClientMessage, error) {
	var misbehaviour Misbehaviour
	if err := clienttypes.Decode(bz, &misbehaviour); err != nil {
		return nil, err
	}
	return &misbehaviour, nil
}

// VerifyCreation checks the initial consensus state commits to a validator
// set. The tendermint client has no auxiliary data.
func (LightClientModule) VerifyCreation(
	_ coretypes.Context, _ exported.ClientHost, _ string,
	clientState exported.ClientState, consensusState exported.ConsensusState, _, _ string,
) ([]exported.StoreWrite, error) {
	if _, ok := clientState.(*ClientState); !ok {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrInvalidType, "expected %T, got %T", &ClientState{}, clientState)
	}

	tmConsensusState, ok := consensusState.(*ConsensusState)
	if !ok {
		return nil, sdkerrors.Wrapf(clienttypes.ErrInvalidConsensus, "invalid initial consensus state. expected type: %T, got: %T",
			&ConsensusState{}, consensusState)
	}
	if len(tmConsensusState.NextValidatorsHash) == 0 {
		return nil, sdkerrors.Wrap(ErrInvalidConsensusState, "next validators hash cannot be empty")
	}

	return nil, nil
}

// VerifyHeader verifies the header against the trusted consensus state at
// its TrustedHeight.
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

// Misbehaviour verifies the evidence and returns the client state frozen at
// the height of the conflicting header.
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

// VerifyMembership verifies an ICS23 existence proof of value at path
// against the AppHash stored at height.
func (LightClientModule) VerifyMembership(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height, proof, path, value []byte,
) error {
	consensusState, err := verificationConsensusState(ctx, host, clientID, clientState, height)
	if err != nil {
		return err
	}

	return commitmenttypes.VerifyMembershipBytes(proof, consensusState.GetRoot(), path, value)
}

// VerifyNonMembership verifies an ICS23 non-existence proof of path against
// the AppHash stored at height.
func (LightClientModule) VerifyNonMembership(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height, proof, path []byte,
) error {
	consensusState, err := verificationConsensusState(ctx, host, clientID, clientState, height)
	if err != nil {
		return err
	}

	return commitmenttypes.VerifyNonMembershipBytes(proof, consensusState.GetRoot(), path)
}

// Status returns the status of the tendermint client.
// The client may be:
// - Active: FrozenHeight is zero and client is not expired
// - Frozen: Frozen Height is not zero
// - Expired: the latest consensus state timestamp + trusting period <= current time
//
// A frozen client will become expired, so the Frozen status
// has higher precedence.
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

	// get latest consensus state to check for expiry
	consensusState, err := getConsensusState(ctx, host, clientID, cs.LatestHeight)
	if err != nil {
		// if the client state does not have an associated consensus state for its latest height
		// then it must be expired
		return exported.Expired
	}

	if cs.IsExpired(consensusState.GetTime(), ctx.BlockTime()) {
		return exported.Expired
	}

	return exported.Active
}

// TimestampAtHeight returns the block time in nanoseconds of the consensus
// state at height.
func (LightClientModule) TimestampAtHeight(
	ctx coretypes.Context, host exported.ClientHost, clientID string, height exported.Height,
) (uint64, error) {
	consensusState, err := getConsensusState(ctx, host, clientID, height)
	if err != nil {
		return 0, err
	}
	return consensusState.GetTimestamp(), nil
}

func verificationConsensusState(
	ctx coretypes.Context, host exported.ClientHost, clientID string,
	clientState exported.ClientState, height exported.Height,
) (*ConsensusState, error) {
	cs, ok := clientState.(*ClientState)
	if !ok {
		return nil, sdkerrors.Wrapf(ibcerrors.ErrInvalidType, "expected %T, got %T", &ClientState{}, clientState)
	}

	if cs.LatestHeight.LT(height) {
		return nil, sdkerrors.Wrapf(
			ibcerrors.ErrInvalidHeight,
			"client state height < proof height (%s < %s), please ensure the client has been updated", cs.LatestHeight, height,
		)
	}

	consensusState, err := getConsensusState(ctx, host, clientID, height)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "please ensure the proof was constructed against a height that exists on the client")
	}
	return consensusState, nil
}

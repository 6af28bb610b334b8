package tendermint

import (
	"bytes"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/light"
	tmtypes "github.com/tendermint/tendermint/types"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// verifyHeader checks if the tendermint header is valid using the trusted
// consensus state at header.TrustedHeight and returns the resulting update.
//
// The header is verified with the tendermint light client verification:
// adjacent headers must be signed by more than 2/3 of the trusted next
// validators, non-adjacent headers need TrustLevel of the trusted validators
// and more than 2/3 of their own validator set. The client state only moves
// forward; an older header adds a consensus state without touching it.
func (cs *ClientState) verifyHeader(
	ctx coretypes.Context, host exported.ClientHost, clientID string, header *Header,
) (*exported.StateUpdate, error) {
	trustedConsState, err := getConsensusState(ctx, host, clientID, header.TrustedHeight)
	if err != nil {
		return nil, sdkerrors.Wrapf(err, "could not get trusted consensus state for Header at TrustedHeight: %s", header.TrustedHeight)
	}

	if err := checkTrustedHeader(header, trustedConsState); err != nil {
		return nil, err
	}

	// UpdateClient only accepts updates with a header at the same revision
	// as the trusted consensus state
	if header.GetHeight().RevisionNumber != header.TrustedHeight.RevisionNumber {
		return nil, sdkerrors.Wrapf(
			ErrInvalidHeaderHeight,
			"header height revision %d does not match trusted header revision %d",
			header.GetHeight().RevisionNumber, header.TrustedHeight.RevisionNumber,
		)
	}

	tmTrustedValidators, err := tmtypes.ValidatorSetFromProto(header.TrustedValidators)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "trusted validator set in not tendermint validator set type")
	}

	tmSignedHeader, err := tmtypes.SignedHeaderFromProto(header.SignedHeader)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "signed header in not tendermint signed header type")
	}

	tmValidatorSet, err := tmtypes.ValidatorSetFromProto(header.ValidatorSet)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "validator set in not tendermint validator set type")
	}

	// Construct a trusted header using the fields in consensus state
	// Only Height, Time, and NextValidatorsHash are necessary for verification
	tmTrustedSignedHeader := &tmtypes.SignedHeader{
		Header: &tmtypes.Header{
			ChainID:            cs.GetChainID(),
			Height:             int64(header.TrustedHeight.RevisionHeight),
			Time:               trustedConsState.GetTime(),
			NextValidatorsHash: trustedConsState.NextValidatorsHash,
		},
	}

	// Verify next header with the passed-in trustedVals
	// - asserts trusting period not passed
	// - assert header timestamp is not past the trusting period
	// - assert header timestamp is past latest stored consensus state timestamp
	// - assert that a TrustLevel proportion of TrustedValidators signed new Commit
	err = light.Verify(
		tmTrustedSignedHeader,
		tmTrustedValidators, tmSignedHeader, tmValidatorSet,
		cs.trustingPeriod(), ctx.BlockTime(), cs.maxClockDrift(), cs.TrustLevel.ToTendermint(),
	)
	if err != nil {
		return nil, sdkerrors.Wrap(clienttypes.ErrInvalidHeader, sdkerrors.Wrap(err, "failed to verify header").Error())
	}

	height := header.GetHeight()
	update := &exported.StateUpdate{
		Height:         height,
		ConsensusState: header.ConsensusState(),
	}

	if height.GT(cs.LatestHeight) {
		newClientState := *cs
		newClientState.LatestHeight = height
		update.ClientState = &newClientState
	}

	return update, nil
}

// checkTrustedHeader checks that consensus state matches trusted fields of Header
func checkTrustedHeader(header *Header, consState *ConsensusState) error {
	tmTrustedValidators, err := tmtypes.ValidatorSetFromProto(header.TrustedValidators)
	if err != nil {
		return sdkerrors.Wrap(err, "trusted validator set in not tendermint validator set type")
	}

	// assert that trustedVals is NextValidators of last trusted header
	// to do this, we check that trustedVals.Hash() == consState.NextValidatorsHash
	tvalHash := tmTrustedValidators.Hash()
	if !bytes.Equal(consState.NextValidatorsHash, tvalHash) {
		return sdkerrors.Wrapf(
			ErrInvalidValidatorSet,
			"trusted validators %s, does not hash to latest trusted validators. Expected: %X, got: %X",
			header.TrustedValidators, consState.NextValidatorsHash, tvalHash,
		)
	}
	return nil
}

// getConsensusState retrieves the consensus state of this client at height
// through the registry.
func getConsensusState(
	ctx coretypes.Context, host exported.ClientHost, clientID string, height exported.Height,
) (*ConsensusState, error) {
	consensusState, found := host.GetClientConsensusState(ctx, clientID, height)
	if !found {
		return nil, sdkerrors.Wrapf(clienttypes.ErrConsensusStateNotFound, "height %s", height)
	}

	tmConsensusState, ok := consensusState.(*ConsensusState)
	if !ok {
		return nil, sdkerrors.Wrapf(clienttypes.ErrInvalidConsensus, "expected type %T, got %T", &ConsensusState{}, consensusState)
	}
	return tmConsensusState, nil
}

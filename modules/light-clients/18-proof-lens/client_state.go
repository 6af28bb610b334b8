package prooflens

import (
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.ClientState = (*ClientState)(nil)

// ClientState exposes the consensus states of TargetClientID. Heights are
// heights of the target client.
type ClientState struct {
	ChainId        string
	TargetClientID string
	LatestHeight   clienttypes.Height
	FrozenHeight   clienttypes.Height
}

func (ClientState) ClientType() string {
	return exported.ProofLens
}

func (cs ClientState) GetLatestHeight() exported.Height {
	return cs.LatestHeight
}

func (cs ClientState) GetFrozenHeight() exported.Height {
	return cs.FrozenHeight
}

func (cs ClientState) Validate() error {
	if strings.TrimSpace(cs.ChainId) == "" {
		return sdkerrors.Wrap(ErrInvalidClientState, "chain id cannot be empty")
	}
	if err := host.ClientIdentifierValidator(cs.TargetClientID); err != nil {
		return sdkerrors.Wrap(ErrInvalidClientState, err.Error())
	}
	if cs.LatestHeight.IsZero() {
		return sdkerrors.Wrap(ErrInvalidClientState, "latest height cannot be zero")
	}
	return nil
}

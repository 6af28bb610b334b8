package sui

import (
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.ClientState = (*ClientState)(nil)

// ClientState tracks a Sui chain. Heights are checkpoint sequence numbers
// with revision number zero.
type ClientState struct {
	ChainId      string
	LatestHeight clienttypes.Height
	FrozenHeight clienttypes.Height
	CurrentEpoch uint64
	// IbcStoreID is the object holding the commitments of the ibc module.
	IbcStoreID [32]byte
}

func (ClientState) ClientType() string {
	return exported.Sui
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
	if cs.LatestHeight.RevisionNumber != 0 || cs.LatestHeight.IsZero() {
		return sdkerrors.Wrapf(ErrInvalidClientState, "latest height %s must be a non-zero checkpoint", cs.LatestHeight)
	}
	if cs.IbcStoreID == ([32]byte{}) {
		return sdkerrors.Wrap(ErrInvalidClientState, "ibc store id cannot be empty")
	}
	return nil
}

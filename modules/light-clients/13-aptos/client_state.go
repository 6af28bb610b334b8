package aptos

import (
	"fmt"
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.ClientState = (*ClientState)(nil)

// ClientState tracks an Aptos chain. Heights are ledger versions with
// revision number zero.
type ClientState struct {
	ChainId      string
	LatestHeight clienttypes.Height
	FrozenHeight clienttypes.Height
	CurrentEpoch uint64
	// IbcAddress is the account of the ibc module whose commitments are
	// proven.
	IbcAddress [32]byte
}

func (ClientState) ClientType() string {
	return exported.Aptos
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
		return sdkerrors.Wrapf(ErrInvalidClientState, "latest height %s must be a non-zero version", cs.LatestHeight)
	}
	if cs.IbcAddress == ([32]byte{}) {
		return sdkerrors.Wrap(ErrInvalidClientState, "ibc address cannot be empty")
	}
	return nil
}

// EpochKey is the client data key of the validator set hash of epoch.
func EpochKey(epoch uint64) []byte {
	return []byte(fmt.Sprintf("epochs/%d", epoch))
}

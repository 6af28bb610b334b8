package movement

import (
	"strconv"
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.ClientState = (*ClientState)(nil)

// ClientState tracks a chain whose ledger is settled on the chain of
// L1ClientID. Heights are ledger versions with revision number zero.
type ClientState struct {
	ChainId    string
	L1ClientID string
	// SettlementPrefix is the L1 path prefix under which the settlement
	// contract commits accumulator roots by version.
	SettlementPrefix []byte
	LatestHeight     clienttypes.Height
	FrozenHeight     clienttypes.Height
	IbcAddress       [32]byte
}

func (ClientState) ClientType() string {
	return exported.Movement
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
	if err := host.ClientIdentifierValidator(cs.L1ClientID); err != nil {
		return sdkerrors.Wrap(ErrInvalidClientState, err.Error())
	}
	if len(cs.SettlementPrefix) == 0 {
		return sdkerrors.Wrap(ErrInvalidClientState, "settlement prefix cannot be empty")
	}
	if cs.LatestHeight.RevisionNumber != 0 || cs.LatestHeight.IsZero() {
		return sdkerrors.Wrapf(ErrInvalidClientState, "latest height %s must be a non-zero version", cs.LatestHeight)
	}
	if cs.IbcAddress == ([32]byte{}) {
		return sdkerrors.Wrap(ErrInvalidClientState, "ibc address cannot be empty")
	}
	return nil
}

// SettlementPath is the L1 path of the accumulator root settled at version.
func (cs ClientState) SettlementPath(version uint64) []byte {
	path := make([]byte, 0, len(cs.SettlementPrefix)+21)
	path = append(path, cs.SettlementPrefix...)
	path = append(path, '/')
	return strconv.AppendUint(path, version, 10)
}

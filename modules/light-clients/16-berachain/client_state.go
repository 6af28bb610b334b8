package berachain

import (
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/common"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.ClientState = (*ClientState)(nil)

// DefaultExecutionHeaderKey is the beacon store key holding the root of the
// latest execution payload header.
var DefaultExecutionHeaderKey = []byte("beacon/latestExecutionPayloadHeader")

// ClientState tracks the Berachain execution layer through the tendermint
// client L1ClientID.
type ClientState struct {
	ChainId    string
	L1ClientID string
	// ExecutionHeaderKey is the CometBFT store key of the execution payload
	// header root.
	ExecutionHeaderKey []byte
	LatestHeight       clienttypes.Height
	FrozenHeight       clienttypes.Height
	IbcContractAddress common.Address
}

func (ClientState) ClientType() string {
	return exported.Berachain
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
	if len(cs.ExecutionHeaderKey) == 0 {
		return sdkerrors.Wrap(ErrInvalidClientState, "execution header key cannot be empty")
	}
	if cs.LatestHeight.RevisionNumber != 0 || cs.LatestHeight.IsZero() {
		return sdkerrors.Wrapf(ErrInvalidClientState, "latest height %s must be a non-zero block number", cs.LatestHeight)
	}
	if cs.IbcContractAddress == (common.Address{}) {
		return sdkerrors.Wrap(ErrInvalidClientState, "ibc contract address cannot be empty")
	}
	return nil
}

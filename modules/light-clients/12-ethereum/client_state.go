package ethereum

import (
	"fmt"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/common"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.ClientState = (*ClientState)(nil)

// Fork activates Version at Epoch.
type Fork struct {
	Version [4]byte
	Epoch   uint64
}

// ForkParameters lists the forks of the tracked chain in activation order.
type ForkParameters struct {
	GenesisForkVersion [4]byte
	GenesisSlot        uint64
	Forks              []Fork
}

// VersionAtEpoch returns the fork version active at epoch.
func (fp ForkParameters) VersionAtEpoch(epoch uint64) [4]byte {
	version := fp.GenesisForkVersion
	for _, fork := range fp.Forks {
		if epoch < fork.Epoch {
			break
		}
		version = fork.Version
	}
	return version
}

// ClientState tracks the finalized head of an Ethereum beacon chain. Heights
// are beacon slots with revision number zero.
type ClientState struct {
	ChainId               uint64
	GenesisValidatorsRoot [32]byte
	GenesisTime           uint64
	ForkParameters        ForkParameters

	SecondsPerSlot               uint64
	SlotsPerEpoch                uint64
	EpochsPerSyncCommitteePeriod uint64
	SyncCommitteeSize            uint64

	LatestSlot   uint64
	FrozenHeight clienttypes.Height

	// IbcContractAddress is the handler contract whose storage holds the
	// IBC commitments.
	IbcContractAddress common.Address
}

func (ClientState) ClientType() string {
	return exported.Ethereum
}

func (cs ClientState) GetLatestHeight() exported.Height {
	return clienttypes.NewHeight(0, cs.LatestSlot)
}

func (cs ClientState) GetFrozenHeight() exported.Height {
	return cs.FrozenHeight
}

func (cs ClientState) Validate() error {
	if cs.ChainId == 0 {
		return sdkerrors.Wrap(ErrInvalidClientState, "chain id cannot be zero")
	}
	if cs.GenesisValidatorsRoot == ([32]byte{}) {
		return sdkerrors.Wrap(ErrInvalidClientState, "genesis validators root cannot be empty")
	}
	if cs.SecondsPerSlot == 0 || cs.SlotsPerEpoch == 0 || cs.EpochsPerSyncCommitteePeriod == 0 {
		return sdkerrors.Wrap(ErrInvalidClientState, "chain spec parameters cannot be zero")
	}
	if cs.SyncCommitteeSize == 0 {
		return sdkerrors.Wrap(ErrInvalidClientState, "sync committee size cannot be zero")
	}
	if cs.LatestSlot == 0 {
		return sdkerrors.Wrap(ErrInvalidClientState, "latest slot cannot be zero")
	}
	for i := 1; i < len(cs.ForkParameters.Forks); i++ {
		if cs.ForkParameters.Forks[i].Epoch < cs.ForkParameters.Forks[i-1].Epoch {
			return sdkerrors.Wrapf(ErrInvalidClientState, "fork %d activates before fork %d", i, i-1)
		}
	}
	if cs.IbcContractAddress == (common.Address{}) {
		return sdkerrors.Wrap(ErrInvalidClientState, "ibc contract address cannot be empty")
	}
	return nil
}

func (cs ClientState) slotsPerPeriod() uint64 {
	return cs.SlotsPerEpoch * cs.EpochsPerSyncCommitteePeriod
}

// SyncPeriod returns the sync committee period of slot.
func (cs ClientState) SyncPeriod(slot uint64) uint64 {
	return slot / cs.slotsPerPeriod()
}

// ForkVersion returns the fork version a signature made at signatureSlot
// is domain separated with.
func (cs ClientState) ForkVersion(signatureSlot uint64) [4]byte {
	slot := signatureSlot
	if slot > 0 {
		slot--
	}
	return cs.ForkParameters.VersionAtEpoch(slot / cs.SlotsPerEpoch)
}

// SyncCommitteeKey is the client data key of the committee root of period.
func SyncCommitteeKey(period uint64) []byte {
	return []byte(fmt.Sprintf("syncCommittee/%d", period))
}

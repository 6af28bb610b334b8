package ethereum

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/internal/bls"
	"github.com/ComposableFi/ibc-core/internal/ssz"
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var (
	_ exported.ClientMessage = (*Header)(nil)
	_ exported.ClientMessage = (*Misbehaviour)(nil)
)

// LightClientHeader is a beacon block header with the execution payload
// header proven against its body root.
type LightClientHeader struct {
	Beacon          ssz.BeaconBlockHeader
	Execution       ssz.ExecutionPayloadHeader
	ExecutionBranch [][32]byte
}

// SyncAggregate is the sync committee signature over the attested header.
// SyncCommitteeBits is an ssz bitvector, least significant bit first.
type SyncAggregate struct {
	SyncCommitteeBits      []byte
	SyncCommitteeSignature []byte
}

// Participants returns the number of set bits among the first size bits.
func (sa SyncAggregate) Participants(size uint64) uint64 {
	var n uint64
	for i := uint64(0); i < size; i++ {
		if sa.participated(i) {
			n++
		}
	}
	return n
}

func (sa SyncAggregate) participated(i uint64) bool {
	if i/8 >= uint64(len(sa.SyncCommitteeBits)) {
		return false
	}
	return sa.SyncCommitteeBits[i/8]>>(i%8)&1 == 1
}

// Header is a light client update. TrustedSyncCommittee is the committee
// of the signature period; its root must match the one the client stores.
type Header struct {
	AttestedHeader          LightClientHeader
	FinalizedHeader         LightClientHeader
	FinalityBranch          [][32]byte
	NextSyncCommittee       *ssz.SyncCommittee `rlp:"nil"`
	NextSyncCommitteeBranch [][32]byte
	SyncAggregate           SyncAggregate
	SignatureSlot           uint64
	TrustedSyncCommittee    ssz.SyncCommittee
}

func (Header) ClientType() string {
	return exported.Ethereum
}

// GetHeight returns the finalized slot.
func (h Header) GetHeight() clienttypes.Height {
	return clienttypes.NewHeight(0, h.FinalizedHeader.Beacon.Slot)
}

func (h Header) ValidateBasic() error {
	finalized, attested := h.FinalizedHeader.Beacon.Slot, h.AttestedHeader.Beacon.Slot
	if finalized == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "finalized slot cannot be zero")
	}
	if attested < finalized {
		return sdkerrors.Wrapf(ErrInvalidHeader, "attested slot %d before finalized slot %d", attested, finalized)
	}
	if h.SignatureSlot <= attested {
		return sdkerrors.Wrapf(ErrInvalidHeader, "signature slot %d must be after attested slot %d", h.SignatureSlot, attested)
	}
	if (h.NextSyncCommittee == nil) != (len(h.NextSyncCommitteeBranch) == 0) {
		return sdkerrors.Wrap(ErrInvalidHeader, "next sync committee and its branch must be set together")
	}
	if len(h.SyncAggregate.SyncCommitteeSignature) != bls.SignatureSize {
		return sdkerrors.Wrapf(ErrInvalidHeader, "signature must be %d bytes", bls.SignatureSize)
	}
	if len(h.TrustedSyncCommittee.Pubkeys) == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "trusted sync committee cannot be empty")
	}
	return nil
}

// Misbehaviour is two valid updates finalizing different blocks at the
// same slot.
type Misbehaviour struct {
	Header1 *Header
	Header2 *Header
}

func (Misbehaviour) ClientType() string {
	return exported.Ethereum
}

func (m Misbehaviour) ValidateBasic() error {
	if m.Header1 == nil || m.Header2 == nil {
		return sdkerrors.Wrap(ErrInvalidMisbehaviour, "misbehaviour headers cannot be nil")
	}
	if err := m.Header1.ValidateBasic(); err != nil {
		return sdkerrors.Wrap(err, "header 1 failed validation")
	}
	if err := m.Header2.ValidateBasic(); err != nil {
		return sdkerrors.Wrap(err, "header 2 failed validation")
	}
	if m.Header1.FinalizedHeader.Beacon.Slot != m.Header2.FinalizedHeader.Beacon.Slot {
		return sdkerrors.Wrap(ErrInvalidMisbehaviour, "headers finalize different slots")
	}
	return nil
}

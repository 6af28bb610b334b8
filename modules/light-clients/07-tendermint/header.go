package tendermint

import (
	"bytes"
	"io"
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/rlp"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	tmtypes "github.com/tendermint/tendermint/types"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.ClientMessage = (*Header)(nil)

// Header defines the tendermint client consensus Header.
// It encapsulates all the information necessary to update from a trusted
// tendermint ConsensusState. The inclusion of TrustedHeight and
// TrustedValidators allows this update to process correctly, so long as the
// ConsensusState for the TrustedHeight exists, this removes race conditions
// among relayers. The SignedHeader and ValidatorSet are the new untrusted
// update fields for the client. The TrustedHeight is the height of a stored
// ConsensusState on the client that will be used to verify the new untrusted
// header. The Trusted ConsensusState must be within the unbonding period of
// current time in order to correctly verify, and the TrustedValidators must
// hash to TrustedConsensusState.NextValidatorsHash since that is the last
// trusted validator set at the TrustedHeight.
type Header struct {
	SignedHeader      *tmproto.SignedHeader
	ValidatorSet      *tmproto.ValidatorSet
	TrustedHeight     clienttypes.Height
	TrustedValidators *tmproto.ValidatorSet
}

// rlpHeader is the wire form of a Header: the tendermint parts keep their
// protobuf encoding inside the rlp list.
type rlpHeader struct {
	SignedHeader      []byte
	ValidatorSet      []byte
	TrustedHeight     clienttypes.Height
	TrustedValidators []byte
}

// EncodeRLP implements rlp.Encoder.
func (h *Header) EncodeRLP(w io.Writer) error {
	var (
		raw = rlpHeader{TrustedHeight: h.TrustedHeight}
		err error
	)
	if h.SignedHeader != nil {
		if raw.SignedHeader, err = h.SignedHeader.Marshal(); err != nil {
			return err
		}
	}
	if h.ValidatorSet != nil {
		if raw.ValidatorSet, err = h.ValidatorSet.Marshal(); err != nil {
			return err
		}
	}
	if h.TrustedValidators != nil {
		if raw.TrustedValidators, err = h.TrustedValidators.Marshal(); err != nil {
			return err
		}
	}
	return rlp.Encode(w, raw)
}

// DecodeRLP implements rlp.Decoder.
func (h *Header) DecodeRLP(s *rlp.Stream) error {
	var raw rlpHeader
	if err := s.Decode(&raw); err != nil {
		return err
	}

	*h = Header{TrustedHeight: raw.TrustedHeight}
	if len(raw.SignedHeader) > 0 {
		h.SignedHeader = new(tmproto.SignedHeader)
		if err := h.SignedHeader.Unmarshal(raw.SignedHeader); err != nil {
			return err
		}
	}
	if len(raw.ValidatorSet) > 0 {
		h.ValidatorSet = new(tmproto.ValidatorSet)
		if err := h.ValidatorSet.Unmarshal(raw.ValidatorSet); err != nil {
			return err
		}
	}
	if len(raw.TrustedValidators) > 0 {
		h.TrustedValidators = new(tmproto.ValidatorSet)
		if err := h.TrustedValidators.Unmarshal(raw.TrustedValidators); err != nil {
			return err
		}
	}
	return nil
}

// ConsensusState returns the updated consensus state associated with the header
func (h Header) ConsensusState() *ConsensusState {
	return NewConsensusState(h.GetTime(), h.SignedHeader.Header.AppHash, h.SignedHeader.Header.NextValidatorsHash)
}

// ClientType defines that the Header is a Tendermint consensus algorithm
func (Header) ClientType() string {
	return exported.Tendermint
}

// GetHeight returns the current height. It returns 0 if the tendermint
// header is nil.
// NOTE: the header.Header is checked to be non nil in ValidateBasic.
func (h Header) GetHeight() clienttypes.Height {
	if h.SignedHeader == nil || h.SignedHeader.Header == nil {
		return clienttypes.ZeroHeight()
	}
	revision := clienttypes.ParseChainID(h.SignedHeader.Header.ChainID)
	return clienttypes.NewHeight(revision, uint64(h.SignedHeader.Header.Height))
}

// GetTime returns the current block timestamp. It returns a zero time if
// the tendermint header is nil.
// NOTE: the header.Header is checked to be non nil in ValidateBasic.
func (h Header) GetTime() time.Time {
	if h.SignedHeader == nil || h.SignedHeader.Header == nil {
		return time.Time{}
	}
	return h.SignedHeader.Header.Time
}

// ValidateBasic calls the SignedHeader ValidateBasic function and checks
// that validatorsets are not nil.
// NOTE: TrustedHeight and TrustedValidators may be empty when creating client
// with MsgCreateClient
func (h Header) ValidateBasic() error {
	if h.SignedHeader == nil {
		return sdkerrors.Wrap(clienttypes.ErrInvalidHeader, "tendermint signed header cannot be nil")
	}
	if h.SignedHeader.Header == nil {
		return sdkerrors.Wrap(clienttypes.ErrInvalidHeader, "tendermint header cannot be nil")
	}
	tmSignedHeader, err := tmtypes.SignedHeaderFromProto(h.SignedHeader)
	if err != nil {
		return sdkerrors.Wrap(err, "header is not a tendermint header")
	}
	// NOTE: SignedHeader ValidateBasic checks that header has the same chainID as the commit
	if err := tmSignedHeader.ValidateBasic(h.SignedHeader.Header.GetChainID()); err != nil {
		return sdkerrors.Wrap(err, "header failed basic validation")
	}

	// TrustedHeight is less than Header for updates and misbehaviour
	if h.TrustedHeight.GTE(h.GetHeight()) {
		return sdkerrors.Wrapf(ErrInvalidHeaderHeight, "TrustedHeight %s must be less than header height %s",
			h.TrustedHeight, h.GetHeight())
	}

	if h.ValidatorSet == nil {
		return sdkerrors.Wrap(clienttypes.ErrInvalidHeader, "validator set is nil")
	}
	tmValset, err := tmtypes.ValidatorSetFromProto(h.ValidatorSet)
	if err != nil {
		return sdkerrors.Wrap(err, "validator set is not tendermint validator set")
	}
	if !bytes.Equal(h.SignedHeader.Header.ValidatorsHash, tmValset.Hash()) {
		return sdkerrors.Wrap(clienttypes.ErrInvalidHeader, "validator set does not match hash")
	}
	return nil
}

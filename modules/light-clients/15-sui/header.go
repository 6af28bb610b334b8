package sui

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/internal/bls"
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var (
	_ exported.ClientMessage = (*Header)(nil)
	_ exported.ClientMessage = (*Misbehaviour)(nil)
)

// Header is a certified checkpoint summary.
type Header struct {
	Checkpoint CertifiedCheckpointSummary
}

func (Header) ClientType() string {
	return exported.Sui
}

// GetHeight returns the checkpoint sequence number.
func (h Header) GetHeight() clienttypes.Height {
	return clienttypes.NewHeight(0, h.Checkpoint.Summary.SequenceNumber)
}

func (h Header) ValidateBasic() error {
	return validateCheckpoint(h.Checkpoint)
}

func validateCheckpoint(c CertifiedCheckpointSummary) error {
	summary := c.Summary
	if summary.SequenceNumber == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "sequence number cannot be zero")
	}
	if summary.TimestampMs == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "timestamp cannot be zero")
	}
	if summary.ObjectRoot == ([32]byte{}) {
		return sdkerrors.Wrap(ErrInvalidHeader, "object root cannot be empty")
	}
	if len(c.Certificate.Signature) != bls.SignatureSizeMinSig {
		return sdkerrors.Wrapf(ErrInvalidHeader, "signature must be %d bytes", bls.SignatureSizeMinSig)
	}
	if summary.EndOfEpoch != nil {
		if err := summary.EndOfEpoch.NextEpochCommittee.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Misbehaviour is two certified summaries with different digests for the
// same checkpoint.
type Misbehaviour struct {
	Checkpoint1 CertifiedCheckpointSummary
	Checkpoint2 CertifiedCheckpointSummary
}

func (Misbehaviour) ClientType() string {
	return exported.Sui
}

func (m Misbehaviour) ValidateBasic() error {
	if err := validateCheckpoint(m.Checkpoint1); err != nil {
		return sdkerrors.Wrap(err, "checkpoint 1 failed validation")
	}
	if err := validateCheckpoint(m.Checkpoint2); err != nil {
		return sdkerrors.Wrap(err, "checkpoint 2 failed validation")
	}
	if m.Checkpoint1.Summary.SequenceNumber != m.Checkpoint2.Summary.SequenceNumber {
		return sdkerrors.Wrap(ErrInvalidMisbehaviour, "checkpoints have different sequence numbers")
	}
	return nil
}

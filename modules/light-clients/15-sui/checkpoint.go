package sui

import (
	"encoding/binary"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/rlp"
)

// checkpointIntent is the intent prefix of checkpoint summary signatures:
// scope CheckpointSummary, version 0, app id Sui.
var checkpointIntent = []byte{2, 0, 0}

// EndOfEpochData is carried by the last checkpoint of an epoch.
type EndOfEpochData struct {
	NextEpochCommittee Committee
}

// CheckpointSummary is what the committee certifies. ObjectRoot commits to
// the object store after the checkpoint.
type CheckpointSummary struct {
	Epoch                    uint64
	SequenceNumber           uint64
	NetworkTotalTransactions uint64
	ContentDigest            [32]byte
	PreviousDigest           [32]byte
	ObjectRoot               [32]byte
	TimestampMs              uint64
	EndOfEpoch               *EndOfEpochData `rlp:"nil"`
}

func (s CheckpointSummary) encode() ([]byte, error) {
	bz, err := rlp.EncodeToBytes(&s)
	if err != nil {
		return nil, sdkerrors.Wrap(ErrInvalidHeader, err.Error())
	}
	return bz, nil
}

// Digest is the blake2b-256 digest of the summary.
func (s CheckpointSummary) Digest() ([32]byte, error) {
	bz, err := s.encode()
	if err != nil {
		return [32]byte{}, err
	}
	return digest([]byte("CheckpointSummary::"), bz), nil
}

// SigningMessage is the intent message signed by the committee: the intent
// prefix, the summary and the epoch.
func (s CheckpointSummary) SigningMessage() ([]byte, error) {
	bz, err := s.encode()
	if err != nil {
		return nil, err
	}

	msg := make([]byte, 0, len(checkpointIntent)+len(bz)+8)
	msg = append(msg, checkpointIntent...)
	msg = append(msg, bz...)
	return binary.LittleEndian.AppendUint64(msg, s.Epoch), nil
}

// CertifiedCheckpointSummary is a summary with the certificate of its
// epoch committee.
type CertifiedCheckpointSummary struct {
	Summary     CheckpointSummary
	Certificate AuthorityQuorumSignInfo
}

// Verify checks the certificate against the committee of the summary epoch.
func (c CertifiedCheckpointSummary) Verify(committee CommitteeInfo) error {
	if c.Certificate.Epoch != c.Summary.Epoch {
		return sdkerrors.Wrapf(ErrInvalidSignature, "certificate of epoch %d for a summary of epoch %d", c.Certificate.Epoch, c.Summary.Epoch)
	}

	msg, err := c.Summary.SigningMessage()
	if err != nil {
		return err
	}
	return c.Certificate.Verify(committee, msg)
}

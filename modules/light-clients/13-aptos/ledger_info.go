package aptos

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/ComposableFi/ibc-core/internal/bls"
	"github.com/ComposableFi/ibc-core/internal/smt"
)

var validatorVerifierHasher = smt.NewHasher("ValidatorVerifier")

// ValidatorConsensusInfo is a validator's BLS public key and voting power.
type ValidatorConsensusInfo struct {
	Address     [32]byte
	PublicKey   []byte
	VotingPower uint64
}

// ValidatorVerifier is the validator set of an epoch.
type ValidatorVerifier struct {
	Validators []ValidatorConsensusInfo
}

func (v ValidatorVerifier) Validate() error {
	if len(v.Validators) == 0 {
		return sdkerrors.Wrap(ErrInvalidValidatorSet, "validator set cannot be empty")
	}
	var total uint64
	for i, val := range v.Validators {
		if len(val.PublicKey) != bls.PublicKeySize {
			return sdkerrors.Wrapf(ErrInvalidValidatorSet, "validator %d public key must be %d bytes", i, bls.PublicKeySize)
		}
		if val.VotingPower == 0 {
			return sdkerrors.Wrapf(ErrInvalidValidatorSet, "validator %d has no voting power", i)
		}
		if total+val.VotingPower < total {
			return sdkerrors.Wrap(ErrInvalidValidatorSet, "total voting power overflows")
		}
		total += val.VotingPower
	}
	return nil
}

// Hash commits to the validator set. Clients store it per epoch.
func (v ValidatorVerifier) Hash() ([32]byte, error) {
	bz, err := rlp.EncodeToBytes(&v)
	if err != nil {
		return [32]byte{}, sdkerrors.Wrap(ErrInvalidValidatorSet, err.Error())
	}
	return validatorVerifierHasher.Hash(bz), nil
}

func (v ValidatorVerifier) TotalVotingPower() uint64 {
	var total uint64
	for _, val := range v.Validators {
		total += val.VotingPower
	}
	return total
}

// QuorumVotingPower is the voting power strictly above two thirds, that is
// floor(2*total/3)+1, computed without overflowing for any total.
func (v ValidatorVerifier) QuorumVotingPower() uint64 {
	total := v.TotalVotingPower()
	twoThirds := total - total/3
	if total%3 != 0 {
		twoThirds--
	}
	return twoThirds + 1
}

// VerifyAggregate checks that the validators marked in sig hold a quorum
// and that their aggregate signature over message is valid.
func (v ValidatorVerifier) VerifyAggregate(message []byte, sig AggregateSignature) error {
	if len(sig.ValidatorBitmask) > (len(v.Validators)+7)/8 {
		return sdkerrors.Wrapf(ErrInvalidSignature, "bitmask of %d bytes for %d validators", len(sig.ValidatorBitmask), len(v.Validators))
	}

	var (
		pubkeys [][]byte
		power   uint64
	)
	for i, val := range v.Validators {
		if !sig.signed(i) {
			continue
		}
		pubkeys = append(pubkeys, val.PublicKey)
		power += val.VotingPower
	}

	if quorum := v.QuorumVotingPower(); power < quorum {
		return sdkerrors.Wrapf(ErrInsufficientVotingPower, "%d signed, quorum is %d", power, quorum)
	}
	if err := bls.FastAggregateVerify(pubkeys, message, sig.Signature); err != nil {
		return sdkerrors.Wrap(ErrInvalidSignature, err.Error())
	}
	return nil
}

// AggregateSignature is a min-pk BLS aggregate. Bit i of ValidatorBitmask,
// most significant bit first, marks validator i as a signer.
type AggregateSignature struct {
	ValidatorBitmask []byte
	Signature        []byte
}

func (s AggregateSignature) signed(i int) bool {
	if i/8 >= len(s.ValidatorBitmask) {
		return false
	}
	return s.ValidatorBitmask[i/8]&(0x80>>uint(i%8)) != 0
}

// EpochState is announced by the last block of an epoch.
type EpochState struct {
	Epoch    uint64
	Verifier ValidatorVerifier
}

// BlockInfo is the block a ledger info commits. ExecutedStateID is the
// transaction accumulator root after Version.
type BlockInfo struct {
	Epoch           uint64
	Round           uint64
	ID              [32]byte
	ExecutedStateID [32]byte
	Version         uint64
	TimestampUsecs  uint64
	NextEpochState  *EpochState `rlp:"nil"`
}

// LedgerInfo is what validators sign.
type LedgerInfo struct {
	CommitInfo        BlockInfo
	ConsensusDataHash [32]byte
}

// Hash returns the signing message of the ledger info.
func (li LedgerInfo) Hash() ([32]byte, error) {
	bz, err := rlp.EncodeToBytes(&li)
	if err != nil {
		return [32]byte{}, sdkerrors.Wrap(ErrInvalidHeader, err.Error())
	}
	return smt.LedgerInfoHasher.Hash(bz), nil
}

// LedgerInfoWithSignatures is a ledger info with the quorum certificate of
// its epoch.
type LedgerInfoWithSignatures struct {
	LedgerInfo LedgerInfo
	Signatures AggregateSignature
}

// Verify checks the signatures against the validator set of the epoch.
func (l LedgerInfoWithSignatures) Verify(verifier ValidatorVerifier) error {
	message, err := l.LedgerInfo.Hash()
	if err != nil {
		return err
	}
	return verifier.VerifyAggregate(message[:], l.Signatures)
}

// TransactionInfo is a leaf of the transaction accumulator.
type TransactionInfo struct {
	GasUsed             uint64
	Success             bool
	TransactionHash     [32]byte
	EventRootHash       [32]byte
	StateChangeHash     [32]byte
	StateCheckpointHash [32]byte
}

func (ti TransactionInfo) Hash() ([32]byte, error) {
	bz, err := rlp.EncodeToBytes(&ti)
	if err != nil {
		return [32]byte{}, sdkerrors.Wrap(ErrInvalidTransactionInfo, err.Error())
	}
	return smt.TransactionInfoHasher.Hash(bz), nil
}

// TransactionInfoWithProof proves a transaction info against an accumulator
// root.
type TransactionInfoWithProof struct {
	Version         uint64
	TransactionInfo TransactionInfo
	Proof           smt.AccumulatorProof
}

// Verify proves the transaction info at the committed version of
// ledgerInfo and returns its state checkpoint root.
func (p TransactionInfoWithProof) Verify(ledgerInfo LedgerInfo) ([32]byte, error) {
	if p.Version != ledgerInfo.CommitInfo.Version {
		return [32]byte{}, sdkerrors.Wrapf(ErrInvalidTransactionInfo, "proof at version %d, ledger info at %d", p.Version, ledgerInfo.CommitInfo.Version)
	}
	if p.TransactionInfo.StateCheckpointHash == ([32]byte{}) {
		return [32]byte{}, sdkerrors.Wrapf(ErrInvalidTransactionInfo, "transaction %d is not a state checkpoint", p.Version)
	}

	leaf, err := p.TransactionInfo.Hash()
	if err != nil {
		return [32]byte{}, err
	}
	if err := smt.VerifyAccumulator(ledgerInfo.CommitInfo.ExecutedStateID, leaf, p.Version, p.Proof); err != nil {
		return [32]byte{}, sdkerrors.Wrap(ErrInvalidTransactionInfo, err.Error())
	}
	return p.TransactionInfo.StateCheckpointHash, nil
}

package types

import (
	"bytes"

	ics23 "github.com/confio/ics23/go"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/gogo/protobuf/proto"
)

// sdkSpecs are the proof specs of the commitment store. A single IAVL tree
// backs the IBC store, so proofs are one level deep.
var sdkSpecs = []*ics23.ProofSpec{ics23.IavlSpec}

// GetSDKSpecs is a getter function for the proofspecs of an IAVL commitment store.
func GetSDKSpecs() []*ics23.ProofSpec {
	return sdkSpecs
}

// MerkleRoot defines a merkle root hash.
type MerkleRoot struct {
	Hash []byte
}

// NewMerkleRoot constructs a new MerkleRoot
func NewMerkleRoot(hash []byte) MerkleRoot {
	return MerkleRoot{
		Hash: hash,
	}
}

// GetHash implements RootI interface
func (mr MerkleRoot) GetHash() []byte {
	return mr.Hash
}

// Empty returns true if the root is empty
func (mr MerkleRoot) Empty() bool {
	return len(mr.GetHash()) == 0
}

// MerklePrefix is merkle path prefixed to the key.
// The constructed key from the Path and the key will be append(Prefix.KeyPrefix, key...)
type MerklePrefix struct {
	KeyPrefix []byte
}

// NewMerklePrefix constructs new MerklePrefix instance
func NewMerklePrefix(keyPrefix []byte) MerklePrefix {
	return MerklePrefix{
		KeyPrefix: keyPrefix,
	}
}

// Bytes returns the key prefix bytes
func (mp MerklePrefix) Bytes() []byte {
	return mp.KeyPrefix
}

// Empty returns true if the prefix is empty
func (mp MerklePrefix) Empty() bool {
	return len(mp.Bytes()) == 0
}

// ApplyPrefix constructs the counterparty key of an IBC path. An empty
// prefix is valid: chain families whose storage keys are derived from the raw
// path (EVM slots, Move tables) use it.
func ApplyPrefix(prefix MerklePrefix, path []byte) []byte {
	key := make([]byte, 0, len(prefix.KeyPrefix)+len(path))
	key = append(key, prefix.KeyPrefix...)
	return append(key, path...)
}

// MerkleProof is a wrapper type over a single ICS23 commitment proof.
type MerkleProof struct {
	Proof *ics23.CommitmentProof
}

// NewMerkleProofFromBytes decodes a gogo protobuf encoded ICS23 proof.
func NewMerkleProofFromBytes(bz []byte) (MerkleProof, error) {
	if len(bz) == 0 {
		return MerkleProof{}, ErrEmptyProof
	}

	var proof ics23.CommitmentProof
	if err := proto.Unmarshal(bz, &proof); err != nil {
		return MerkleProof{}, sdkerrors.Wrap(ErrInvalidMerkleProof, err.Error())
	}

	return MerkleProof{Proof: &proof}, nil
}

// ValidateBasic checks if the proof is empty.
func (proof MerkleProof) ValidateBasic() error {
	if proof.Proof == nil {
		return ErrEmptyProof
	}
	return nil
}

// Empty returns true if the root is empty
func (proof *MerkleProof) Empty() bool {
	return proof == nil || proof.Proof == nil
}

// VerifyMembership verifies the membership of a merkle proof against the given root, key and value.
func (proof MerkleProof) VerifyMembership(specs []*ics23.ProofSpec, root MerkleRoot, key []byte, value []byte) error {
	if err := proof.validateVerificationArgs(specs, root); err != nil {
		return err
	}
	if len(value) == 0 {
		return sdkerrors.Wrap(ErrInvalidProof, "empty value in membership proof")
	}

	exist := proof.Proof.GetExist()
	if exist == nil {
		return sdkerrors.Wrapf(ErrInvalidProof, "expected existence proof for key %s", key)
	}
	if !bytes.Equal(exist.Key, key) {
		return sdkerrors.Wrapf(ErrKeyMismatch, "proof key %s, requested %s", exist.Key, key)
	}
	if !bytes.Equal(exist.Value, value) {
		return sdkerrors.Wrapf(ErrValueMismatch, "key %s", key)
	}

	calculated, err := exist.Calculate()
	if err != nil {
		return sdkerrors.Wrap(ErrInvalidProof, err.Error())
	}
	if !bytes.Equal(calculated, root.GetHash()) {
		return sdkerrors.Wrapf(ErrRootMismatch, "calculated %X, trusted %X", []byte(calculated), root.GetHash())
	}

	if ok := ics23.VerifyMembership(specs[0], root.GetHash(), proof.Proof, key, value); !ok {
		return sdkerrors.Wrapf(ErrInvalidProof, "failed to verify membership proof for key %s", key)
	}

	return nil
}

// VerifyNonMembership verifies the absence of a merkle proof against the given root and key.
// The proof must show the key falls between two neighbouring leaves of the tree.
func (proof MerkleProof) VerifyNonMembership(specs []*ics23.ProofSpec, root MerkleRoot, key []byte) error {
	if err := proof.validateVerificationArgs(specs, root); err != nil {
		return err
	}

	nonexist := proof.Proof.GetNonexist()
	if nonexist == nil {
		return sdkerrors.Wrapf(ErrInvalidProof, "expected non-existence proof for key %s", key)
	}
	if !bytes.Equal(nonexist.Key, key) {
		return sdkerrors.Wrapf(ErrKeyMismatch, "proof key %s, requested %s", nonexist.Key, key)
	}

	if ok := ics23.VerifyNonMembership(specs[0], root.GetHash(), proof.Proof, key); !ok {
		return sdkerrors.Wrapf(ErrInvalidProof, "failed to verify non-membership proof for key %s", key)
	}

	return nil
}

func (proof MerkleProof) validateVerificationArgs(specs []*ics23.ProofSpec, root MerkleRoot) error {
	if proof.Empty() {
		return ErrEmptyProof
	}
	if root.Empty() {
		return sdkerrors.Wrap(ErrInvalidProof, "root cannot be empty")
	}
	if len(specs) != 1 {
		return sdkerrors.Wrapf(ErrInvalidProof, "expected a single proof spec, got %d", len(specs))
	}
	return nil
}

// VerifyMembershipBytes decodes proof bytes and verifies membership against root.
func VerifyMembershipBytes(proofBz, root, key, value []byte) error {
	proof, err := NewMerkleProofFromBytes(proofBz)
	if err != nil {
		return WrapInvalidProof(err)
	}
	return WrapInvalidProof(proof.VerifyMembership(GetSDKSpecs(), NewMerkleRoot(root), key, value))
}

// VerifyNonMembershipBytes decodes proof bytes and verifies non-membership against root.
func VerifyNonMembershipBytes(proofBz, root, key []byte) error {
	proof, err := NewMerkleProofFromBytes(proofBz)
	if err != nil {
		return WrapInvalidProof(err)
	}
	return WrapInvalidProof(proof.VerifyNonMembership(GetSDKSpecs(), NewMerkleRoot(root), key))
}

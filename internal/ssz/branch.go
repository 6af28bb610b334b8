package ssz

import (
	"math/bits"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	fastssz "github.com/ferranbt/fastssz"
)

// Generalized indices into the Deneb beacon state and block body.
const (
	FinalizedRootGindex     = 105
	NextSyncCommitteeGindex = 55
	ExecutionPayloadGindex  = 25
)

// DomainSyncCommittee is the domain type of sync committee signatures.
var DomainSyncCommittee = [4]byte{0x07, 0x00, 0x00, 0x00}

// FloorLog2 returns the depth of a generalized index.
func FloorLog2(gindex uint64) int {
	return bits.Len64(gindex) - 1
}

// SubtreeIndex returns the position of a generalized index within its depth.
func SubtreeIndex(gindex uint64) uint64 {
	return gindex - (1 << uint(FloorLog2(gindex)))
}

// VerifyBranch checks that leaf sits at index in a tree of the given depth
// whose root is root.
func VerifyBranch(leaf [32]byte, branch [][32]byte, depth int, index uint64, root [32]byte) error {
	if len(branch) != depth {
		return sdkerrors.Wrapf(ErrInvalidBranch, "branch length %d, expected depth %d", len(branch), depth)
	}
	if index >= 1<<uint(depth) {
		return sdkerrors.Wrapf(ErrInvalidBranch, "index %d out of range for depth %d", index, depth)
	}

	hashes := make([][]byte, len(branch))
	for i := range branch {
		hashes[i] = branch[i][:]
	}

	proof := &fastssz.Proof{
		Index:  int(1<<uint(depth) + index),
		Leaf:   leaf[:],
		Hashes: hashes,
	}
	ok, err := fastssz.VerifyProof(root[:], proof)
	if err != nil {
		return sdkerrors.Wrap(ErrInvalidBranch, err.Error())
	}
	if !ok {
		return sdkerrors.Wrapf(ErrInvalidBranch, "leaf %x does not fold to root %x", leaf, root)
	}
	return nil
}

// VerifyGindex is VerifyBranch addressed by generalized index.
func VerifyGindex(leaf [32]byte, branch [][32]byte, gindex uint64, root [32]byte) error {
	return VerifyBranch(leaf, branch, FloorLog2(gindex), SubtreeIndex(gindex), root)
}

// ComputeDomain returns domainType || fork_data_root[:28].
func ComputeDomain(domainType [4]byte, forkVersion [4]byte, genesisValidatorsRoot [32]byte) ([32]byte, error) {
	forkData := &ForkData{CurrentVersion: forkVersion, GenesisValidatorsRoot: genesisValidatorsRoot}
	forkDataRoot, err := forkData.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}

	var domain [32]byte
	copy(domain[:4], domainType[:])
	copy(domain[4:], forkDataRoot[:28])
	return domain, nil
}

// ComputeSigningRoot returns the message a validator signs for objectRoot.
func ComputeSigningRoot(objectRoot [32]byte, domain [32]byte) ([32]byte, error) {
	return (&SigningData{ObjectRoot: objectRoot, Domain: domain}).HashTreeRoot()
}

package smt

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

const (
	maxSparseDepth      = 256
	maxAccumulatorDepth = 63
)

// Leaf is a sparse Merkle leaf node.
type Leaf struct {
	Key       [32]byte
	ValueHash [32]byte
}

// Hash returns the leaf node hash.
func (l *Leaf) Hash() [32]byte {
	return SparseMerkleLeafNodeHasher.Hash(l.Key[:], l.ValueHash[:])
}

// SparseMerkleProof proves the presence or absence of a key. Siblings are
// ordered from the leaf level up to the root.
type SparseMerkleProof struct {
	Leaf     *Leaf `rlp:"nil"`
	Siblings [][32]byte
}

// VerifyExistence checks that key maps to valueHash under root.
func (p *SparseMerkleProof) VerifyExistence(root, key, valueHash [32]byte) error {
	if len(p.Siblings) > maxSparseDepth {
		return sdkerrors.Wrapf(ErrInvalidProof, "%d siblings", len(p.Siblings))
	}
	if p.Leaf == nil {
		return sdkerrors.Wrapf(ErrInvalidProof, "no leaf for key %x", key)
	}
	if p.Leaf.Key != key {
		return sdkerrors.Wrapf(ErrKeyMismatch, "expected %x, got %x", key, p.Leaf.Key)
	}
	if p.Leaf.ValueHash != valueHash {
		return sdkerrors.Wrapf(ErrValueMismatch, "key %x", key)
	}
	return p.fold(root, key, p.Leaf.Hash())
}

// VerifyNonExistence checks that key is absent under root. The proof ends
// either in an empty subtree or in a leaf for another key that shares the
// path to that subtree.
func (p *SparseMerkleProof) VerifyNonExistence(root, key [32]byte) error {
	if len(p.Siblings) > maxSparseDepth {
		return sdkerrors.Wrapf(ErrInvalidProof, "%d siblings", len(p.Siblings))
	}

	current := SparseMerklePlaceholder
	if p.Leaf != nil {
		if p.Leaf.Key == key {
			return sdkerrors.Wrapf(ErrKeyExists, "key %x", key)
		}
		if commonPrefixBits(p.Leaf.Key, key) < len(p.Siblings) {
			return sdkerrors.Wrapf(ErrInvalidProof, "leaf %x is not on the path of %x", p.Leaf.Key, key)
		}
		current = p.Leaf.Hash()
	}
	return p.fold(root, key, current)
}

func (p *SparseMerkleProof) fold(root, key [32]byte, current [32]byte) error {
	depth := len(p.Siblings)
	for i, sibling := range p.Siblings {
		sibling := sibling
		if bit(key, depth-1-i) {
			current = SparseMerkleInternalHasher.Hash(sibling[:], current[:])
		} else {
			current = SparseMerkleInternalHasher.Hash(current[:], sibling[:])
		}
	}
	if current != root {
		return sdkerrors.Wrapf(ErrRootMismatch, "expected %x, got %x", root, current)
	}
	return nil
}

// AccumulatorProof proves a leaf of a transaction accumulator. Siblings are
// ordered from the leaf level up to the root.
type AccumulatorProof struct {
	Siblings [][32]byte
}

// VerifyAccumulator checks that leafHash is the leaf at index under root.
func VerifyAccumulator(root, leafHash [32]byte, index uint64, proof AccumulatorProof) error {
	if len(proof.Siblings) > maxAccumulatorDepth {
		return sdkerrors.Wrapf(ErrInvalidProof, "%d siblings", len(proof.Siblings))
	}
	if index>>uint(len(proof.Siblings)) != 0 {
		return sdkerrors.Wrapf(ErrInvalidProof, "index %d out of range for %d siblings", index, len(proof.Siblings))
	}

	current := leafHash
	for i, sibling := range proof.Siblings {
		sibling := sibling
		if index>>uint(i)&1 == 1 {
			current = TransactionAccumulatorHasher.Hash(sibling[:], current[:])
		} else {
			current = TransactionAccumulatorHasher.Hash(current[:], sibling[:])
		}
	}
	if current != root {
		return sdkerrors.Wrapf(ErrRootMismatch, "expected %x, got %x", root, current)
	}
	return nil
}

// bit returns bit i of key, most significant first.
func bit(key [32]byte, i int) bool {
	return key[i/8]>>(7-uint(i%8))&1 == 1
}

func commonPrefixBits(a, b [32]byte) int {
	for i := 0; i < maxSparseDepth; i++ {
		if bit(a, i) != bit(b, i) {
			return i
		}
	}
	return maxSparseDepth
}

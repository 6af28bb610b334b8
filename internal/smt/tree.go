package smt

import (
	"bytes"
	"sort"
)

// Tree is an in-memory sparse Merkle tree shaped like the Aptos state tree:
// a subtree holding a single leaf collapses into that leaf.
type Tree struct {
	leaves map[[32]byte][32]byte
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{leaves: make(map[[32]byte][32]byte)}
}

// Set maps key to valueHash.
func (t *Tree) Set(key, valueHash [32]byte) *Tree {
	t.leaves[key] = valueHash
	return t
}

// Root returns the tree root.
func (t *Tree) Root() [32]byte {
	return subtreeHash(t.sorted(), 0)
}

// Prove returns the proof for key, an existence proof when key is set.
func (t *Tree) Prove(key [32]byte) SparseMerkleProof {
	leaves := t.sorted()

	var siblings [][32]byte
	for depth := 0; len(leaves) > 1; depth++ {
		left, right := split(leaves, depth)
		if bit(key, depth) {
			siblings = append(siblings, subtreeHash(left, depth+1))
			leaves = right
		} else {
			siblings = append(siblings, subtreeHash(right, depth+1))
			leaves = left
		}
	}

	// bottom-up order
	for i, j := 0, len(siblings)-1; i < j; i, j = i+1, j-1 {
		siblings[i], siblings[j] = siblings[j], siblings[i]
	}

	proof := SparseMerkleProof{Siblings: siblings}
	if len(leaves) == 1 {
		leaf := leaves[0]
		proof.Leaf = &leaf
	}
	return proof
}

func (t *Tree) sorted() []Leaf {
	leaves := make([]Leaf, 0, len(t.leaves))
	for k, v := range t.leaves {
		leaves = append(leaves, Leaf{Key: k, ValueHash: v})
	}
	sort.Slice(leaves, func(i, j int) bool { return bytes.Compare(leaves[i].Key[:], leaves[j].Key[:]) < 0 })
	return leaves
}

// split partitions sorted leaves on bit depth.
func split(leaves []Leaf, depth int) ([]Leaf, []Leaf) {
	i := sort.Search(len(leaves), func(i int) bool { return bit(leaves[i].Key, depth) })
	return leaves[:i], leaves[i:]
}

func subtreeHash(leaves []Leaf, depth int) [32]byte {
	switch len(leaves) {
	case 0:
		return SparseMerklePlaceholder
	case 1:
		return leaves[0].Hash()
	}
	left, right := split(leaves, depth)
	l, r := subtreeHash(left, depth+1), subtreeHash(right, depth+1)
	return SparseMerkleInternalHasher.Hash(l[:], r[:])
}

// Accumulator is an in-memory transaction accumulator.
type Accumulator struct {
	leaves [][32]byte
}

// Append adds a leaf and returns its index.
func (a *Accumulator) Append(leaf [32]byte) uint64 {
	a.leaves = append(a.leaves, leaf)
	return uint64(len(a.leaves) - 1)
}

// Root returns the accumulator root.
func (a *Accumulator) Root() [32]byte {
	if len(a.leaves) == 0 {
		return AccumulatorPlaceholder
	}
	return a.node(0, a.width())
}

// Prove returns the proof of the leaf at index.
func (a *Accumulator) Prove(index uint64) AccumulatorProof {
	var siblings [][32]byte
	for size := uint64(1); size < a.width(); size <<= 1 {
		start := (index / size) * size
		sibling := start ^ size
		siblings = append(siblings, a.node(sibling, sibling+size))
	}
	return AccumulatorProof{Siblings: siblings}
}

func (a *Accumulator) width() uint64 {
	w := uint64(1)
	for w < uint64(len(a.leaves)) {
		w <<= 1
	}
	return w
}

func (a *Accumulator) node(lo, hi uint64) [32]byte {
	if lo >= uint64(len(a.leaves)) {
		return AccumulatorPlaceholder
	}
	if hi-lo == 1 {
		return a.leaves[lo]
	}
	mid := lo + (hi-lo)/2
	l, r := a.node(lo, mid), a.node(mid, hi)
	return TransactionAccumulatorHasher.Hash(l[:], r[:])
}

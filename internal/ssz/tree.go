package ssz

import (
	fastssz "github.com/ferranbt/fastssz"
)

// Tree is a sparse binary merkle tree addressed by generalized index. Nodes
// that were never set and have no set descendant hash to zero. It builds
// branches for fixtures and relayer tooling.
type Tree struct {
	nodes map[uint64][32]byte
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{nodes: make(map[uint64][32]byte)}
}

// Set places leaf at gindex.
func (t *Tree) Set(gindex uint64, leaf [32]byte) *Tree {
	t.nodes[gindex] = leaf
	return t
}

// Root returns the root of the tree.
func (t *Tree) Root() [32]byte {
	return t.node(1)
}

// Branch returns the sibling path of gindex, leaf first.
func (t *Tree) Branch(gindex uint64) [][32]byte {
	branch := make([][32]byte, 0, FloorLog2(gindex))
	for g := gindex; g > 1; g >>= 1 {
		branch = append(branch, t.node(g^1))
	}
	return branch
}

func (t *Tree) node(gindex uint64) [32]byte {
	if leaf, ok := t.nodes[gindex]; ok {
		return leaf
	}
	if !t.hasDescendant(gindex) {
		return [32]byte{}
	}
	return hashPair(t.node(2*gindex), t.node(2*gindex+1))
}

func (t *Tree) hasDescendant(gindex uint64) bool {
	depth := FloorLog2(gindex)
	for g := range t.nodes {
		d := FloorLog2(g)
		if d > depth && g>>uint(d-depth) == gindex {
			return true
		}
	}
	return false
}

func hashPair(left, right [32]byte) [32]byte {
	hh := fastssz.DefaultHasherPool.Get()
	defer fastssz.DefaultHasherPool.Put(hh)

	hh.AppendBytes32(left[:])
	hh.AppendBytes32(right[:])
	hh.Merkleize(0)
	root, err := hh.HashRoot()
	if err != nil {
		panic(err)
	}
	return root
}

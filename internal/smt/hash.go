// Package smt verifies Aptos sparse Merkle and transaction accumulator
// proofs.
package smt

import (
	"golang.org/x/crypto/sha3"
)

// HashPrefix salts every Aptos hasher seed.
const HashPrefix = "APTOS::"

// Hasher is a domain separated sha3-256 hasher.
type Hasher struct {
	seed [32]byte
}

// NewHasher returns the hasher for the named type.
func NewHasher(name string) Hasher {
	return Hasher{seed: sha3.Sum256([]byte(HashPrefix + name))}
}

// Hash returns sha3-256(seed || data...).
func (h Hasher) Hash(data ...[]byte) [32]byte {
	hasher := sha3.New256()
	hasher.Write(h.seed[:])
	for _, d := range data {
		hasher.Write(d)
	}

	var out [32]byte
	copy(out[:], hasher.Sum(nil))
	return out
}

var (
	SparseMerkleLeafNodeHasher   = NewHasher("SparseMerkleLeafNode")
	SparseMerkleInternalHasher   = NewHasher("SparseMerkleInternal")
	TransactionAccumulatorHasher = NewHasher("TransactionAccumulator")
	TransactionInfoHasher        = NewHasher("TransactionInfo")
	LedgerInfoHasher             = NewHasher("LedgerInfo")
	StateValueHasher             = NewHasher("StateValue")
)

var (
	// SparseMerklePlaceholder is the hash of an empty sparse Merkle subtree.
	SparseMerklePlaceholder = placeholder("SPARSE_MERKLE_PLACEHOLDER_HASH")

	// AccumulatorPlaceholder is the hash of an empty accumulator subtree.
	AccumulatorPlaceholder = placeholder("ACCUMULATOR_PLACEHOLDER_HASH")
)

func placeholder(s string) [32]byte {
	var h [32]byte
	copy(h[:], s)
	return h
}

// ValueHash hashes a raw state value.
func ValueHash(value []byte) [32]byte {
	return StateValueHasher.Hash(value)
}

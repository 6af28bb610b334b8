package mpt

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"
)

// Builder assembles secure tries in memory and produces proofs against them.
// Relayer tooling and fixtures use it to stand in for an execution client.
type Builder struct {
	trie *trie.Trie
}

// NewBuilder returns an empty trie builder.
func NewBuilder() *Builder {
	tr, err := trie.New(common.Hash{}, trie.NewDatabase(memorydb.New()))
	if err != nil {
		panic(err)
	}
	return &Builder{trie: tr}
}

// SetStorage writes value into slot the way the EVM stores a word.
func (b *Builder) SetStorage(slot common.Hash, value common.Hash) *Builder {
	bz, err := rlp.EncodeToBytes(common.TrimLeftZeroes(value[:]))
	if err != nil {
		panic(err)
	}
	b.trie.Update(crypto.Keccak256(slot[:]), bz)
	return b
}

// SetAccount writes account at address.
func (b *Builder) SetAccount(address common.Address, account Account) *Builder {
	bz, err := rlp.EncodeToBytes(&account)
	if err != nil {
		panic(err)
	}
	b.trie.Update(crypto.Keccak256(address[:]), bz)
	return b
}

// Root returns the trie root.
func (b *Builder) Root() common.Hash {
	return b.trie.Hash()
}

// ProveStorage returns the proof nodes of slot.
func (b *Builder) ProveStorage(slot common.Hash) [][]byte {
	return b.prove(crypto.Keccak256(slot[:]))
}

// ProveAccount returns the proof nodes of address.
func (b *Builder) ProveAccount(address common.Address) [][]byte {
	return b.prove(crypto.Keccak256(address[:]))
}

func (b *Builder) prove(key []byte) [][]byte {
	var nodes proofList
	if err := b.trie.Prove(key, 0, &nodes); err != nil {
		panic(err)
	}
	return nodes
}

type proofList [][]byte

func (l *proofList) Put(_ []byte, value []byte) error {
	*l = append(*l, common.CopyBytes(value))
	return nil
}

func (l *proofList) Delete([]byte) error {
	return nil
}

// ProveCommitment encodes the account proof of contract in state together
// with the storage proof of the commitment slot of path in storage.
func ProveCommitment(state, storage *Builder, contract common.Address, path []byte) ([]byte, error) {
	slot := CommitmentSlot(path)
	return rlp.EncodeToBytes(&AccountProof{
		Address: contract,
		Proof:   state.ProveAccount(contract),
		Storage: []StorageProof{{Key: slot[:], Proof: storage.ProveStorage(slot)}},
	})
}

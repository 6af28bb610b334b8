package sui

import (
	"bytes"
	"sort"

	"github.com/ComposableFi/go-merkle-trees/merkle"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/rlp"
)

// ObjectKey is the object store key of an IBC commitment path in the store
// object storeID.
func ObjectKey(storeID [32]byte, path []byte) [32]byte {
	return digest([]byte("ObjectKey::"), storeID[:], path)
}

// ObjectEntry is a leaf of the object tree.
type ObjectEntry struct {
	Key   [32]byte
	Value []byte
}

func (e ObjectEntry) leaf() []byte {
	bz, err := rlp.EncodeToBytes(&e)
	if err != nil {
		panic(err)
	}
	h := digest([]byte("ObjectEntry::"), bz)
	return h[:]
}

// ProvenEntry is an object entry at its position in the sorted tree.
type ProvenEntry struct {
	Index uint32
	Entry ObjectEntry
}

// ObjectProof proves one entry, or the adjacent entries bracketing an
// absent key, against an object root.
type ObjectProof struct {
	Total       uint32
	Entries     []ProvenEntry
	ProofHashes [][]byte
}

func decodeObjectProof(bz []byte) (*ObjectProof, error) {
	var proof ObjectProof
	if err := rlp.DecodeBytes(bz, &proof); err != nil {
		return nil, sdkerrors.Wrap(ErrInvalidProof, err.Error())
	}
	if len(proof.Entries) == 0 || proof.Total == 0 {
		return nil, sdkerrors.Wrap(ErrInvalidProof, "empty object proof")
	}
	for i, e := range proof.Entries {
		if e.Index >= proof.Total {
			return nil, sdkerrors.Wrapf(ErrInvalidProof, "entry index %d, tree of %d", e.Index, proof.Total)
		}
		if i > 0 && e.Index <= proof.Entries[i-1].Index {
			return nil, sdkerrors.Wrap(ErrInvalidProof, "entries must be sorted by index")
		}
	}
	return &proof, nil
}

func (p *ObjectProof) verify(root [32]byte) error {
	leaves := make([]merkle.Leaf, len(p.Entries))
	for i, e := range p.Entries {
		leaves[i] = merkle.Leaf{Hash: e.Entry.leaf(), Index: e.Index}
	}

	valid, err := merkle.NewProof(leaves, p.ProofHashes, p.Total, Blake2b256{}).Verify(root[:])
	if err != nil || !valid {
		return sdkerrors.Wrap(ErrInvalidProof, "entries are not in the object tree")
	}
	return nil
}

// VerifyObjectMembership proves that value is stored under path.
func VerifyObjectMembership(root, storeID [32]byte, proofBz, path, value []byte) error {
	proof, err := decodeObjectProof(proofBz)
	if err != nil {
		return err
	}
	if len(proof.Entries) != 1 {
		return sdkerrors.Wrapf(ErrInvalidProof, "membership proof must hold one entry, got %d", len(proof.Entries))
	}

	entry := proof.Entries[0].Entry
	if entry.Key != ObjectKey(storeID, path) {
		return sdkerrors.Wrapf(ErrInvalidProof, "proof of key %x, not of path %s", entry.Key, path)
	}
	if !bytes.Equal(entry.Value, value) {
		return sdkerrors.Wrapf(ErrInvalidProof, "value mismatch at path %s", path)
	}
	return proof.verify(root)
}

// VerifyObjectNonMembership proves that nothing is stored under path. The
// proof holds the entries directly before and after the key. An entry at
// either end of the tree stands alone.
func VerifyObjectNonMembership(root, storeID [32]byte, proofBz, path []byte) error {
	proof, err := decodeObjectProof(proofBz)
	if err != nil {
		return err
	}

	key := ObjectKey(storeID, path)
	switch len(proof.Entries) {
	case 1:
		e := proof.Entries[0]
		cmp := bytes.Compare(key[:], e.Entry.Key[:])
		switch {
		case e.Index == 0 && cmp < 0:
		case e.Index == proof.Total-1 && cmp > 0:
		default:
			return sdkerrors.Wrapf(ErrInvalidProof, "entry %d does not bound path %s", e.Index, path)
		}
	case 2:
		left, right := proof.Entries[0], proof.Entries[1]
		if right.Index != left.Index+1 {
			return sdkerrors.Wrapf(ErrInvalidProof, "entries %d and %d are not adjacent", left.Index, right.Index)
		}
		if bytes.Compare(left.Entry.Key[:], key[:]) >= 0 || bytes.Compare(key[:], right.Entry.Key[:]) >= 0 {
			return sdkerrors.Wrapf(ErrInvalidProof, "entries %d and %d do not bracket path %s", left.Index, right.Index, path)
		}
	default:
		return sdkerrors.Wrapf(ErrInvalidProof, "non-membership proof must hold one or two entries, got %d", len(proof.Entries))
	}

	return proof.verify(root)
}

// ObjectTree builds object roots and proofs. It is used by relayers and
// test fixtures.
type ObjectTree struct {
	entries []ObjectEntry
}

// NewObjectTree sorts entries by key.
func NewObjectTree(entries ...ObjectEntry) *ObjectTree {
	sorted := make([]ObjectEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return bytes.Compare(sorted[i].Key[:], sorted[j].Key[:]) < 0 })
	return &ObjectTree{entries: sorted}
}

func (t *ObjectTree) leaves() [][]byte {
	leaves := make([][]byte, len(t.entries))
	for i, e := range t.entries {
		leaves[i] = e.leaf()
	}
	return leaves
}

func (t *ObjectTree) Root() ([32]byte, error) {
	tree, err := merkle.NewTree(Blake2b256{}).FromLeaves(t.leaves())
	if err != nil {
		return [32]byte{}, err
	}
	var root [32]byte
	copy(root[:], tree.Root())
	return root, nil
}

// Prove returns a membership proof for a present key and a non-membership
// proof for an absent one.
func (t *ObjectTree) Prove(key [32]byte) ([]byte, error) {
	tree, err := merkle.NewTree(Blake2b256{}).FromLeaves(t.leaves())
	if err != nil {
		return nil, err
	}

	pos := sort.Search(len(t.entries), func(i int) bool { return bytes.Compare(t.entries[i].Key[:], key[:]) >= 0 })

	var indices []uint32
	switch {
	case pos < len(t.entries) && t.entries[pos].Key == key:
		indices = []uint32{uint32(pos)}
	case pos == 0:
		indices = []uint32{0}
	case pos == len(t.entries):
		indices = []uint32{uint32(pos - 1)}
	default:
		indices = []uint32{uint32(pos - 1), uint32(pos)}
	}

	proof := ObjectProof{Total: uint32(len(t.entries)), ProofHashes: tree.Proof(indices).ProofHashes()}
	for _, index := range indices {
		proof.Entries = append(proof.Entries, ProvenEntry{Index: index, Entry: t.entries[index]})
	}
	return rlp.EncodeToBytes(&proof)
}

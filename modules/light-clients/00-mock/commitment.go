package mock

import (
	"bytes"
	"crypto/sha256"
	"sort"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/rlp"
)

// Entry is a committed key value pair.
type Entry struct {
	Key   []byte
	Value []byte
}

// Proof carries the full committed set. Its hash must equal the consensus root.
type Proof struct {
	Entries []Entry
}

func sortEntries(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return bytes.Compare(sorted[i].Key, sorted[j].Key) < 0 })
	return sorted
}

// Root returns the commitment root of a set of entries.
func Root(entries []Entry) []byte {
	bz, err := rlp.EncodeToBytes(Proof{Entries: sortEntries(entries)})
	if err != nil {
		panic(err)
	}
	root := sha256.Sum256(bz)
	return root[:]
}

// NewProof returns the proof bytes for a set of entries.
func NewProof(entries ...Entry) []byte {
	bz, err := rlp.EncodeToBytes(Proof{Entries: sortEntries(entries)})
	if err != nil {
		panic(err)
	}
	return bz
}

func lookup(root, proofBz, key []byte) ([]byte, bool, error) {
	var proof Proof
	if err := rlp.DecodeBytes(proofBz, &proof); err != nil {
		return nil, false, sdkerrors.Wrap(ErrInvalidProof, err.Error())
	}
	if !bytes.Equal(Root(proof.Entries), root) {
		return nil, false, ErrRootMismatch
	}
	for _, e := range proof.Entries {
		if bytes.Equal(e.Key, key) {
			return e.Value, true, nil
		}
	}
	return nil, false, nil
}

package sui

import (
	"golang.org/x/crypto/blake2b"
)

// Blake2b256 is the hasher of committee and object trees.
type Blake2b256 struct{}

func (Blake2b256) Merge(left, right interface{}) interface{} {
	l := left.([]byte)
	r := right.([]byte)
	h := blake2b.Sum256(append(append([]byte{}, l...), r...))
	return h[:]
}

func (Blake2b256) Hash(data []byte) ([]byte, error) {
	h := blake2b.Sum256(data)
	return h[:], nil
}

// digest hashes the concatenation of parts.
func digest(parts ...[]byte) [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

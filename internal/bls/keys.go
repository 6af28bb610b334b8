package bls

import (
	"crypto/sha256"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	blst "github.com/supranational/blst/bindings/go"
)

// SecretKey signs for both schemes. It is used by relayer tooling and test
// fixtures; light clients only ever verify.
type SecretKey struct {
	sk *blst.SecretKey
}

// GenerateKey derives a secret key from seed. Seeds shorter than 32 bytes
// are stretched with sha256.
func GenerateKey(seed []byte) *SecretKey {
	ikm := seed
	if len(ikm) < 32 {
		h := sha256.Sum256(seed)
		ikm = h[:]
	}
	return &SecretKey{sk: blst.KeyGen(ikm)}
}

// SecretKeyFromBytes deserializes a 32 byte secret key.
func SecretKeyFromBytes(bz []byte) (*SecretKey, error) {
	sk := new(blst.SecretKey).Deserialize(bz)
	if sk == nil {
		return nil, sdkerrors.Wrap(ErrInvalidSecretKey, "cannot deserialize secret key")
	}
	return &SecretKey{sk: sk}, nil
}

// Bytes serializes the secret key.
func (k *SecretKey) Bytes() []byte {
	return k.sk.Serialize()
}

// PublicKey returns the compressed min-pk (G1) public key.
func (k *SecretKey) PublicKey() []byte {
	return new(blst.P1Affine).From(k.sk).Compress()
}

// Sign returns the compressed min-pk (G2) signature of msg.
func (k *SecretKey) Sign(msg []byte) []byte {
	return new(blst.P2Affine).Sign(k.sk, msg, DST).Compress()
}

// PublicKeyMinSig returns the compressed min-sig (G2) public key.
func (k *SecretKey) PublicKeyMinSig() []byte {
	return new(blst.P2Affine).From(k.sk).Compress()
}

// SignMinSig returns the compressed min-sig (G1) signature of msg.
func (k *SecretKey) SignMinSig(msg []byte) []byte {
	return new(blst.P1Affine).Sign(k.sk, msg, DSTMinSig).Compress()
}

// AggregateSignatures aggregates compressed min-pk signatures.
func AggregateSignatures(sigs [][]byte) ([]byte, error) {
	if len(sigs) == 0 {
		return nil, sdkerrors.Wrap(ErrInvalidSignature, "no signatures")
	}

	agg := new(blst.P2Aggregate)
	if !agg.AggregateCompressed(sigs, true) {
		return nil, sdkerrors.Wrap(ErrInvalidSignature, "signature aggregation failed")
	}
	return agg.ToAffine().Compress(), nil
}

// AggregateSignaturesMinSig aggregates compressed min-sig signatures.
func AggregateSignaturesMinSig(sigs [][]byte) ([]byte, error) {
	if len(sigs) == 0 {
		return nil, sdkerrors.Wrap(ErrInvalidSignature, "no signatures")
	}

	agg := new(blst.P1Aggregate)
	if !agg.AggregateCompressed(sigs, true) {
		return nil, sdkerrors.Wrap(ErrInvalidSignature, "signature aggregation failed")
	}
	return agg.ToAffine().Compress(), nil
}

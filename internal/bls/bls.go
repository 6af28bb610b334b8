// Package bls verifies BLS12-381 signatures with the blst library.
//
// Two schemes are supported. Ethereum sync committees and Aptos validators
// use min-pk: public keys in G1 (48 bytes) and signatures in G2 (96 bytes).
// Sui committees use min-sig: public keys in G2 (96 bytes) and signatures
// in G1 (48 bytes).
package bls

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	blst "github.com/supranational/blst/bindings/go"
)

const (
	PublicKeySize = 48
	SignatureSize = 96

	PublicKeySizeMinSig = 96
	SignatureSizeMinSig = 48
)

var (
	// DST is the proof-of-possession ciphersuite used by Ethereum and Aptos.
	DST = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_POP_")

	// DSTMinSig is the basic min-sig ciphersuite used by Sui.
	DSTMinSig = []byte("BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_")
)

// Verify checks a single min-pk signature.
func Verify(pubkey, msg, sig []byte) error {
	pk, err := decodePublicKey(pubkey)
	if err != nil {
		return err
	}

	s, err := decodeSignature(sig)
	if err != nil {
		return err
	}

	if !s.Verify(true, pk, true, msg, DST) {
		return ErrInvalidSignature
	}
	return nil
}

// FastAggregateVerify checks a min-pk aggregate signature of pubkeys over
// a single message.
func FastAggregateVerify(pubkeys [][]byte, msg, sig []byte) error {
	if len(pubkeys) == 0 {
		return sdkerrors.Wrap(ErrInvalidPublicKey, "no public keys")
	}

	pks := make([]*blst.P1Affine, len(pubkeys))
	for i, bz := range pubkeys {
		pk, err := decodePublicKey(bz)
		if err != nil {
			return sdkerrors.Wrapf(err, "public key %d", i)
		}
		pks[i] = pk
	}

	s, err := decodeSignature(sig)
	if err != nil {
		return err
	}

	if !s.FastAggregateVerify(true, pks, msg, DST) {
		return ErrInvalidSignature
	}
	return nil
}

// AggregatePublicKeys returns the compressed sum of min-pk public keys.
func AggregatePublicKeys(pubkeys [][]byte) ([]byte, error) {
	if len(pubkeys) == 0 {
		return nil, sdkerrors.Wrap(ErrInvalidPublicKey, "no public keys")
	}

	agg := new(blst.P1Aggregate)
	if !agg.AggregateCompressed(pubkeys, true) {
		return nil, sdkerrors.Wrap(ErrInvalidPublicKey, "public key aggregation failed")
	}
	return agg.ToAffine().Compress(), nil
}

// FastAggregateVerifyMinSig checks a min-sig aggregate signature of pubkeys
// over a single message.
func FastAggregateVerifyMinSig(pubkeys [][]byte, msg, sig []byte) error {
	if len(pubkeys) == 0 {
		return sdkerrors.Wrap(ErrInvalidPublicKey, "no public keys")
	}

	pks := make([]*blst.P2Affine, len(pubkeys))
	for i, bz := range pubkeys {
		if len(bz) != PublicKeySizeMinSig {
			return sdkerrors.Wrapf(ErrInvalidPublicKey, "public key %d: expected %d bytes, got %d", i, PublicKeySizeMinSig, len(bz))
		}
		pk := new(blst.P2Affine).Uncompress(bz)
		if pk == nil || !pk.KeyValidate() {
			return sdkerrors.Wrapf(ErrInvalidPublicKey, "public key %d", i)
		}
		pks[i] = pk
	}

	if len(sig) != SignatureSizeMinSig {
		return sdkerrors.Wrapf(ErrInvalidSignature, "expected %d bytes, got %d", SignatureSizeMinSig, len(sig))
	}
	s := new(blst.P1Affine).Uncompress(sig)
	if s == nil {
		return sdkerrors.Wrap(ErrInvalidSignature, "cannot decompress signature")
	}

	if !s.FastAggregateVerify(true, pks, msg, DSTMinSig) {
		return ErrInvalidSignature
	}
	return nil
}

func decodePublicKey(bz []byte) (*blst.P1Affine, error) {
	if len(bz) != PublicKeySize {
		return nil, sdkerrors.Wrapf(ErrInvalidPublicKey, "expected %d bytes, got %d", PublicKeySize, len(bz))
	}
	pk := new(blst.P1Affine).Uncompress(bz)
	if pk == nil || !pk.KeyValidate() {
		return nil, sdkerrors.Wrap(ErrInvalidPublicKey, "not a valid G1 point")
	}
	return pk, nil
}

func decodeSignature(bz []byte) (*blst.P2Affine, error) {
	if len(bz) != SignatureSize {
		return nil, sdkerrors.Wrapf(ErrInvalidSignature, "expected %d bytes, got %d", SignatureSize, len(bz))
	}
	s := new(blst.P2Affine).Uncompress(bz)
	if s == nil {
		return nil, sdkerrors.Wrap(ErrInvalidSignature, "cannot decompress signature")
	}
	return s, nil
}

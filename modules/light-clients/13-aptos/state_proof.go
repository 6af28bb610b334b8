package aptos

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/ComposableFi/ibc-core/internal/smt"
)

var stateKeyHasher = smt.NewHasher("StateKey")

// StateKey is the key of an IBC commitment stored by the module at address.
func StateKey(address [32]byte, path []byte) [32]byte {
	return stateKeyHasher.Hash(address[:], path)
}

// NewStateProof encodes a sparse Merkle proof as membership proof bytes.
func NewStateProof(proof smt.SparseMerkleProof) ([]byte, error) {
	return rlp.EncodeToBytes(&proof)
}

func decodeStateProof(bz []byte) (*smt.SparseMerkleProof, error) {
	var proof smt.SparseMerkleProof
	if err := rlp.DecodeBytes(bz, &proof); err != nil {
		return nil, sdkerrors.Wrap(ErrInvalidProof, err.Error())
	}
	return &proof, nil
}

// VerifyStateMembership proves that the module at address stores value
// under path in the state tree with the given root.
func VerifyStateMembership(root, address [32]byte, proof, path, value []byte) error {
	stateProof, err := decodeStateProof(proof)
	if err != nil {
		return err
	}
	if err := stateProof.VerifyExistence(root, StateKey(address, path), smt.ValueHash(value)); err != nil {
		return sdkerrors.Wrap(ErrInvalidProof, err.Error())
	}
	return nil
}

// VerifyStateNonMembership proves that nothing is stored under path.
func VerifyStateNonMembership(root, address [32]byte, proof, path []byte) error {
	stateProof, err := decodeStateProof(proof)
	if err != nil {
		return err
	}
	if err := stateProof.VerifyNonExistence(root, StateKey(address, path)); err != nil {
		return sdkerrors.Wrap(ErrInvalidProof, err.Error())
	}
	return nil
}

// Package mpt verifies Ethereum Merkle-Patricia account and storage proofs.
package mpt

import (
	"bytes"
	"math/big"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"
)

// Account is the rlp encoded leaf of the state trie.
type Account struct {
	Nonce    uint64
	Balance  *big.Int
	Root     common.Hash
	CodeHash []byte
}

// StorageProof proves the value of one storage slot.
type StorageProof struct {
	Key   []byte
	Value []byte
	Proof [][]byte
}

// AccountProof proves an account and some of its storage against a state root.
type AccountProof struct {
	Address common.Address
	Proof   [][]byte
	Storage []StorageProof
}

// CommitmentSlot returns the storage slot of path in the IBC commitments
// mapping, which lives at slot 0 of the handler contract.
func CommitmentSlot(path []byte) common.Hash {
	var slot0 common.Hash
	return crypto.Keccak256Hash(crypto.Keccak256(path), slot0[:])
}

// CommitmentValue is the word the handler contract stores for value.
func CommitmentValue(value []byte) common.Hash {
	return crypto.Keccak256Hash(value)
}

// DecodeStorageProof decodes an rlp StorageProof.
func DecodeStorageProof(bz []byte) (*StorageProof, error) {
	var proof StorageProof
	if err := rlp.DecodeBytes(bz, &proof); err != nil {
		return nil, sdkerrors.Wrap(ErrProofInvalid, err.Error())
	}
	return &proof, nil
}

// DecodeAccountProof decodes an rlp AccountProof.
func DecodeAccountProof(bz []byte) (*AccountProof, error) {
	var proof AccountProof
	if err := rlp.DecodeBytes(bz, &proof); err != nil {
		return nil, sdkerrors.Wrap(ErrProofInvalid, err.Error())
	}
	return &proof, nil
}

// VerifyAccount proves the account of address under stateRoot.
func VerifyAccount(stateRoot common.Hash, address common.Address, proof [][]byte) (*Account, error) {
	bz, err := verify(stateRoot, crypto.Keccak256(address[:]), proof)
	if err != nil {
		return nil, err
	}
	if len(bz) == 0 {
		return nil, sdkerrors.Wrapf(ErrProofInvalid, "account %s not found", address)
	}

	var account Account
	if err := rlp.DecodeBytes(bz, &account); err != nil {
		return nil, sdkerrors.Wrapf(ErrProofInvalid, "decode account %s: %s", address, err)
	}
	return &account, nil
}

// VerifyStorage proves that slot holds expected under storageRoot.
func VerifyStorage(storageRoot common.Hash, slot common.Hash, expected common.Hash, proof [][]byte) error {
	bz, err := verify(storageRoot, crypto.Keccak256(slot[:]), proof)
	if err != nil {
		return err
	}
	if len(bz) == 0 {
		return sdkerrors.Wrapf(ErrProofInvalid, "slot %s not found", slot)
	}

	var content []byte
	if err := rlp.DecodeBytes(bz, &content); err != nil {
		return sdkerrors.Wrapf(ErrProofInvalid, "decode slot %s: %s", slot, err)
	}
	if !bytes.Equal(common.BytesToHash(content).Bytes(), expected.Bytes()) {
		return sdkerrors.Wrapf(ErrValueMismatch, "slot %s: expected %s, got %x", slot, expected, content)
	}
	return nil
}

// VerifyStorageAbsence proves that slot is empty under storageRoot.
func VerifyStorageAbsence(storageRoot common.Hash, slot common.Hash, proof [][]byte) error {
	bz, err := verify(storageRoot, crypto.Keccak256(slot[:]), proof)
	if err != nil {
		return err
	}
	if len(bz) != 0 {
		return sdkerrors.Wrapf(ErrKeyExists, "slot %s", slot)
	}
	return nil
}

// verify returns the value at key, or nil for a valid absence proof.
func verify(root common.Hash, key []byte, proof [][]byte) ([]byte, error) {
	db := memorydb.New()
	for _, node := range proof {
		if err := db.Put(crypto.Keccak256(node), node); err != nil {
			return nil, sdkerrors.Wrap(ErrProofInvalid, err.Error())
		}
	}

	value, err := trie.VerifyProof(root, key, db)
	if err != nil {
		return nil, sdkerrors.Wrap(ErrProofInvalid, err.Error())
	}
	return value, nil
}

// contractStorage proves the account of contract under stateRoot and returns
// its storage root with the single storage proof of the commitment slot of
// path carried by proofBz.
func contractStorage(stateRoot common.Hash, contract common.Address, proofBz, path []byte) (common.Hash, common.Hash, *StorageProof, error) {
	accountProof, err := DecodeAccountProof(proofBz)
	if err != nil {
		return common.Hash{}, common.Hash{}, nil, err
	}
	if accountProof.Address != contract {
		return common.Hash{}, common.Hash{}, nil, sdkerrors.Wrapf(ErrProofInvalid, "account %s is not the ibc contract %s", accountProof.Address, contract)
	}
	if len(accountProof.Storage) != 1 {
		return common.Hash{}, common.Hash{}, nil, sdkerrors.Wrapf(ErrProofInvalid, "expected a single storage proof, got %d", len(accountProof.Storage))
	}

	account, err := VerifyAccount(stateRoot, accountProof.Address, accountProof.Proof)
	if err != nil {
		return common.Hash{}, common.Hash{}, nil, err
	}

	slot := CommitmentSlot(path)
	storageProof := &accountProof.Storage[0]
	if !bytes.Equal(storageProof.Key, slot[:]) {
		return common.Hash{}, common.Hash{}, nil, sdkerrors.Wrapf(ErrProofInvalid, "storage key %x does not match commitment slot %s", storageProof.Key, slot)
	}
	return account.Root, slot, storageProof, nil
}

// VerifyCommitment proves that the ibc contract at contract stores the
// commitment of value for path under stateRoot.
func VerifyCommitment(stateRoot common.Hash, contract common.Address, proofBz, path, value []byte) error {
	storageRoot, slot, storageProof, err := contractStorage(stateRoot, contract, proofBz, path)
	if err != nil {
		return err
	}
	return VerifyStorage(storageRoot, slot, CommitmentValue(value), storageProof.Proof)
}

// VerifyCommitmentAbsence proves that the ibc contract holds no commitment
// for path under stateRoot.
func VerifyCommitmentAbsence(stateRoot common.Hash, contract common.Address, proofBz, path []byte) error {
	storageRoot, slot, storageProof, err := contractStorage(stateRoot, contract, proofBz, path)
	if err != nil {
		return err
	}
	return VerifyStorageAbsence(storageRoot, slot, storageProof.Proof)
}

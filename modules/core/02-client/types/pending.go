package types

import (
	"bytes"
	"crypto/sha256"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

// StoreWriteRecord is the stored form of an exported.StoreWrite.
type StoreWriteRecord struct {
	Key    []byte
	Value  []byte
	Delete bool
}

// PendingCreation is the record kept between the two phases of client
// creation. It holds everything CompleteCreateClient needs to register the
// client once the external address is known.
type PendingCreation struct {
	Nonce          uint64
	ClientType     string
	ClientState    []byte
	ConsensusState []byte
	SideEffects    []StoreWriteRecord
	Caller         string
	Relayer        string
}

// PendingCreationToken is returned by BeginCreateClient and must be handed
// back to CompleteCreateClient. Digest binds the token to the pending record.
type PendingCreationToken struct {
	Nonce      uint64
	ClientType string
	Digest     []byte
}

// NewPendingCreation builds the pending record for the given creation inputs.
func NewPendingCreation(
	nonce uint64, clientType string, clientState, consensusState []byte,
	sideEffects []exported.StoreWrite, caller, relayer string,
) PendingCreation {
	records := make([]StoreWriteRecord, len(sideEffects))
	for i, w := range sideEffects {
		records[i] = StoreWriteRecord{Key: w.Key, Value: w.Value, Delete: w.Value == nil}
	}

	return PendingCreation{
		Nonce:          nonce,
		ClientType:     clientType,
		ClientState:    clientState,
		ConsensusState: consensusState,
		SideEffects:    records,
		Caller:         caller,
		Relayer:        relayer,
	}
}

// StoreWrites converts the recorded side effects back into store writes.
func (p PendingCreation) StoreWrites() []exported.StoreWrite {
	writes := make([]exported.StoreWrite, len(p.SideEffects))
	for i, r := range p.SideEffects {
		value := r.Value
		if r.Delete {
			value = nil
		} else if value == nil {
			value = []byte{}
		}
		writes[i] = exported.StoreWrite{Key: r.Key, Value: value}
	}
	return writes
}

// Digest returns the sha256 of the rlp encoded record.
func (p PendingCreation) Digest() ([]byte, error) {
	bz, err := rlp.EncodeToBytes(p)
	if err != nil {
		return nil, err
	}
	digest := sha256.Sum256(bz)
	return digest[:], nil
}

// Token returns the creation token of the record.
func (p PendingCreation) Token() (PendingCreationToken, error) {
	digest, err := p.Digest()
	if err != nil {
		return PendingCreationToken{}, err
	}
	return PendingCreationToken{Nonce: p.Nonce, ClientType: p.ClientType, Digest: digest}, nil
}

// Matches checks that the token was issued for the given record.
func (t PendingCreationToken) Matches(p PendingCreation) error {
	if t.Nonce != p.Nonce {
		return sdkerrors.Wrapf(ErrInvalidPendingCreation, "token nonce %d does not match record nonce %d", t.Nonce, p.Nonce)
	}
	if t.ClientType != p.ClientType {
		return sdkerrors.Wrapf(ErrInvalidPendingCreation, "token client type %s does not match record client type %s", t.ClientType, p.ClientType)
	}

	digest, err := p.Digest()
	if err != nil {
		return err
	}
	if !bytes.Equal(t.Digest, digest) {
		return sdkerrors.Wrap(ErrInvalidPendingCreation, "token digest does not match the pending record")
	}
	return nil
}

// Bytes returns the rlp serialized token.
func (t PendingCreationToken) Bytes() []byte {
	bz, err := rlp.EncodeToBytes(t)
	if err != nil {
		panic(err)
	}
	return bz
}

// ParsePendingCreationToken decodes a serialized token.
func ParsePendingCreationToken(bz []byte) (PendingCreationToken, error) {
	var token PendingCreationToken
	if err := rlp.DecodeBytes(bz, &token); err != nil {
		return PendingCreationToken{}, sdkerrors.Wrap(ErrInvalidPendingCreation, err.Error())
	}
	if len(token.Digest) != sha256.Size {
		return PendingCreationToken{}, sdkerrors.Wrapf(ErrInvalidPendingCreation, "digest length %d", len(token.Digest))
	}
	return token, nil
}

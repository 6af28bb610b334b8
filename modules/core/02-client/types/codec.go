package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/rlp"

	ibcerrors "github.com/ComposableFi/ibc-core/modules/core/errors"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

// MarshalClientState encodes a client state for storage. Client states are
// rlp encoded structs; the owning light client module decodes them.
func MarshalClientState(clientState exported.ClientState) ([]byte, error) {
	if clientState == nil {
		return nil, sdkerrors.Wrap(ErrInvalidClient, "client state cannot be nil")
	}
	return rlp.EncodeToBytes(clientState)
}

// MustMarshalClientState encodes a client state and panics on failure.
func MustMarshalClientState(clientState exported.ClientState) []byte {
	bz, err := MarshalClientState(clientState)
	if err != nil {
		panic(err)
	}
	return bz
}

// MarshalConsensusState encodes a consensus state for storage.
func MarshalConsensusState(consensusState exported.ConsensusState) ([]byte, error) {
	if consensusState == nil {
		return nil, sdkerrors.Wrap(ErrInvalidConsensus, "consensus state cannot be nil")
	}
	return rlp.EncodeToBytes(consensusState)
}

// MustMarshalConsensusState encodes a consensus state and panics on failure.
func MustMarshalConsensusState(consensusState exported.ConsensusState) []byte {
	bz, err := MarshalConsensusState(consensusState)
	if err != nil {
		panic(err)
	}
	return bz
}

// MarshalClientMessage encodes a header or misbehaviour for submission.
func MarshalClientMessage(msg exported.ClientMessage) ([]byte, error) {
	if msg == nil {
		return nil, sdkerrors.Wrap(ErrInvalidHeader, "client message cannot be nil")
	}
	return rlp.EncodeToBytes(msg)
}

// Decode decodes rlp bytes into the given pointer, wrapping failures in ErrDecode.
// Light client modules use it to implement their Decode* methods.
func Decode(bz []byte, ptr interface{}) error {
	if len(bz) == 0 {
		return sdkerrors.Wrap(ibcerrors.ErrDecode, "empty bytes")
	}
	if err := rlp.DecodeBytes(bz, ptr); err != nil {
		return sdkerrors.Wrapf(ibcerrors.ErrDecode, "%T: %s", ptr, err)
	}
	return nil
}

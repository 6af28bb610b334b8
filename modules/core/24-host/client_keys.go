package host

import (
	"fmt"

	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

// KeyClientStorePrefix defines the KVStore key prefix for IBC clients
var KeyClientStorePrefix = []byte("clients")

const (
	KeyClientState          = "clientState"
	KeyConsensusStatePrefix = "consensusStates"
	KeyClientDataPrefix     = "data"
	KeyClientAddress        = "address"
	KeyNextClientSequence   = "nextClientSequence"
	KeyPendingClientPrefix  = "pendingClients"
	KeyNextPendingSequence  = "nextPendingClientSequence"
)

// FullClientPath returns the full path of a specific client path in the format:
// "clients/{clientID}/{path}" as a string.
func FullClientPath(clientID string, path string) string {
	return fmt.Sprintf("%s/%s/%s", KeyClientStorePrefix, clientID, path)
}

// FullClientKey returns the full path of specific client path in the format:
// "clients/{clientID}/{path}" as a byte array.
func FullClientKey(clientID string, path []byte) []byte {
	return []byte(FullClientPath(clientID, string(path)))
}

// ICS02
// The following paths are the keys to the store as defined in https://github.com/cosmos/ibc/tree/master/spec/core/ics-002-client-semantics#path-space

// FullClientStatePath takes a client identifier and returns a Path under which to store a
// particular client state
func FullClientStatePath(clientID string) string {
	return FullClientPath(clientID, KeyClientState)
}

// FullClientStateKey takes a client identifier and returns a Key under which to store a
// particular client state.
func FullClientStateKey(clientID string) []byte {
	return FullClientKey(clientID, []byte(KeyClientState))
}

// FullConsensusStatePath takes a client identifier and returns a Path under which to
// store the consensus state of a client.
func FullConsensusStatePath(clientID string, height exported.Height) string {
	return FullClientPath(clientID, ConsensusStatePath(height))
}

// FullConsensusStateKey returns the store key for the consensus state of a particular
// client.
func FullConsensusStateKey(clientID string, height exported.Height) []byte {
	return []byte(FullConsensusStatePath(clientID, height))
}

// ConsensusStatePath returns the suffix store key for the consensus state at a
// particular height stored in a client prefixed store.
func ConsensusStatePath(height exported.Height) string {
	return fmt.Sprintf("%s/%s", KeyConsensusStatePrefix, height)
}

// FullClientDataKey returns the key of auxiliary client data written by a
// light client as a side effect, e.g. a sync committee or validator set.
func FullClientDataKey(clientID string, key []byte) []byte {
	return FullClientKey(clientID, append([]byte(KeyClientDataPrefix+"/"), key...))
}

// FullClientAddressKey returns the key of the external address a client was
// bound to when its creation completed.
func FullClientAddressKey(clientID string) []byte {
	return FullClientKey(clientID, []byte(KeyClientAddress))
}

// NextClientSequenceKey returns the key of the client identifier counter.
func NextClientSequenceKey() []byte {
	return []byte(KeyNextClientSequence)
}

// PendingClientKey returns the key of a pending two-phase client creation.
func PendingClientKey(nonce uint64) []byte {
	return []byte(fmt.Sprintf("%s/%d", KeyPendingClientPrefix, nonce))
}

// NextPendingClientSequenceKey returns the key of the pending creation nonce counter.
func NextPendingClientSequenceKey() []byte {
	return []byte(KeyNextPendingSequence)
}

package exported

import (
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// Status represents the status of a client
type Status string

const (
	// TypeClientMisbehaviour is the shared evidence misbehaviour type
	TypeClientMisbehaviour string = "client_misbehaviour"

	// Mock is used to indicate that the client is a deterministic test client.
	Mock string = "00-mock"

	// Tendermint is used to indicate that the client uses the Tendermint Consensus Algorithm.
	Tendermint string = "07-tendermint"

	// Ethereum is used to indicate that the client tracks the Ethereum beacon chain through its sync committee.
	Ethereum string = "12-ethereum"

	// Aptos is used to indicate that the client verifies Aptos ledger infos signed by the validator set.
	Aptos string = "13-aptos"

	// Movement is used to indicate that the client verifies Aptos-style ledger infos settled on an L1.
	Movement string = "13-movement"

	// Sui is used to indicate that the client verifies Sui checkpoints signed by the committee.
	Sui string = "15-sui"

	// Berachain is used to indicate that the client tracks the Berachain execution layer through a CometBFT client.
	Berachain string = "16-berachain"

	// StateLens is used to indicate that the client tracks an L2 through the consensus states committed on an L1.
	StateLens string = "17-state-lens"

	// ProofLens is used to indicate that the client delegates proof verification to another client.
	ProofLens string = "18-proof-lens"

	// Active is a status type of a client. An active client is allowed to be used.
	Active Status = "Active"

	// Frozen is a status type of a client. A frozen client is not allowed to be used.
	Frozen Status = "Frozen"

	// Expired is a status type of a client. An expired client is not allowed to be used.
	Expired Status = "Expired"

	// Unknown indicates there was an error in determining the status of a client.
	Unknown Status = "Unknown"
)

// String returns the status as a string.
func (s Status) String() string {
	return string(s)
}

// ClientState defines the required common functions for light clients.
type ClientState interface {
	ClientType() string
	GetLatestHeight() Height
	// GetFrozenHeight returns the zero height unless misbehaviour was proven.
	GetFrozenHeight() Height
	Validate() error
}

// ConsensusState is the state of the consensus process
type ConsensusState interface {
	ClientType() string

	// GetRoot returns the commitment root of the consensus state,
	// which is used for key-value pair verification.
	GetRoot() []byte

	// GetTimestamp returns the timestamp (in nanoseconds) of the consensus state
	GetTimestamp() uint64

	ValidateBasic() error
}

// ClientMessage is an interface used to update an IBC client.
// The update may be done by a single header, a batch of headers, misbehaviour, or any type which when verified produces
// a change to state of the IBC client
type ClientMessage interface {
	ClientType() string
	ValidateBasic() error
}

// Height is a wrapper interface over clienttypes.Height
// all clients must use the concrete implementation in types
type Height interface {
	IsZero() bool
	LT(Height) bool
	LTE(Height) bool
	EQ(Height) bool
	GT(Height) bool
	GTE(Height) bool
	GetRevisionNumber() uint64
	GetRevisionHeight() uint64
	Increment() Height
	Decrement() (Height, bool)
	String() string
}

// StoreWrite is an auxiliary client store write requested by a light client,
// e.g. a committee persisted at creation. Key is relative to the client's
// data namespace. A nil Value deletes the key.
type StoreWrite struct {
	Key   []byte
	Value []byte
}

// StateUpdate describes the registry mutation produced by a successful header
// verification. The light client never applies it itself; the registry writes
// all of it atomically.
type StateUpdate struct {
	// Height is the height of the new consensus state.
	Height Height
	// ClientState is the new client state, nil when unchanged.
	ClientState ClientState
	// ConsensusState is stored at Height.
	ConsensusState ConsensusState
	SideEffects    []StoreWrite
}

// ClientHost is the read-only view of the client registry handed to light
// client modules. Composed clients use VerifyMembership and
// VerifyNonMembership to verify through another registered client.
type ClientHost interface {
	GetClientState(ctx coretypes.Context, clientID string) (ClientState, bool)
	GetClientConsensusState(ctx coretypes.Context, clientID string, height Height) (ConsensusState, bool)
	GetClientData(ctx coretypes.Context, clientID string, key []byte) ([]byte, bool)
	GetClientStatus(ctx coretypes.Context, clientID string) Status

	VerifyMembership(ctx coretypes.Context, clientID string, height Height, proof, path, value []byte) error
	VerifyNonMembership(ctx coretypes.Context, clientID string, height Height, proof, path []byte) error
}

// LightClientModule is the contract every consensus family implements. The
// client registry resolves the module by client type and calls it with the
// decoded client state; modules never write to the registry directly.
type LightClientModule interface {
	ClientType() string

	DecodeClientState(bz []byte) (ClientState, error)
	DecodeConsensusState(bz []byte) (ConsensusState, error)
	DecodeHeader(bz []byte) (ClientMessage, error)
	DecodeMisbehaviour(bz []byte) (ClientMessage, error)

	// VerifyCreation sanity checks the initial states before the client is
	// registered and may return auxiliary writes to persist with it. The
	// client identifier is not assigned yet, so clientID is empty.
	VerifyCreation(
		ctx coretypes.Context,
		host ClientHost,
		clientID string,
		clientState ClientState,
		consensusState ConsensusState,
		caller, relayer string,
	) ([]StoreWrite, error)

	// VerifyHeader verifies the client message against the trusted state and
	// returns the mutation to apply.
	VerifyHeader(
		ctx coretypes.Context,
		host ClientHost,
		clientID string,
		clientState ClientState,
		clientMsg ClientMessage,
		caller, relayer string,
	) (*StateUpdate, error)

	// Misbehaviour verifies the evidence and returns the frozen client state.
	Misbehaviour(
		ctx coretypes.Context,
		host ClientHost,
		clientID string,
		clientState ClientState,
		clientMsg ClientMessage,
		caller, relayer string,
	) (ClientState, error)

	VerifyMembership(
		ctx coretypes.Context,
		host ClientHost,
		clientID string,
		clientState ClientState,
		height Height,
		proof []byte,
		path []byte,
		value []byte,
	) error

	VerifyNonMembership(
		ctx coretypes.Context,
		host ClientHost,
		clientID string,
		clientState ClientState,
		height Height,
		proof []byte,
		path []byte,
	) error

	Status(ctx coretypes.Context, host ClientHost, clientID string, clientState ClientState) Status

	TimestampAtHeight(ctx coretypes.Context, host ClientHost, clientID string, height Height) (uint64, error)
}

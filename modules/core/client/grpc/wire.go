package ibcgrpc

import (
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
)

// Every request carries the height to read at. Zero selects the latest
// committed height. Every response carries the ICS23 proof of the returned
// value and the height the proof verifies against.

type QueryClientStateRequest struct {
	ClientId string
	Height   uint64
}

// QueryClientStateResponse holds the encoded client state. ClientType names
// the light client module able to decode it.
type QueryClientStateResponse struct {
	ClientType  string
	ClientState []byte
	Proof       []byte
	ProofHeight clienttypes.Height
}

type QueryConsensusStateRequest struct {
	ClientId        string
	ConsensusHeight clienttypes.Height
	Height          uint64
}

type QueryConsensusStateResponse struct {
	ConsensusState []byte
	Proof          []byte
	ProofHeight    clienttypes.Height
}

type QueryConnectionRequest struct {
	ConnectionId string
	Height       uint64
}

type QueryConnectionResponse struct {
	Connection  connectiontypes.ConnectionEnd
	Proof       []byte
	ProofHeight clienttypes.Height
}

type QueryChannelRequest struct {
	PortId    string
	ChannelId string
	Height    uint64
}

type QueryChannelResponse struct {
	Channel     channeltypes.Channel
	Proof       []byte
	ProofHeight clienttypes.Height
}

// QueryPacketRequest selects a packet commitment, acknowledgement or receipt.
type QueryPacketRequest struct {
	PortId    string
	ChannelId string
	Sequence  uint64
	Height    uint64
}

type QueryPacketCommitmentResponse struct {
	Commitment  []byte
	Proof       []byte
	ProofHeight clienttypes.Height
}

type QueryPacketAcknowledgementResponse struct {
	Acknowledgement []byte
	Proof           []byte
	ProofHeight     clienttypes.Height
}

// QueryPacketReceiptResponse proves the receipt when Received is true and its
// absence otherwise.
type QueryPacketReceiptResponse struct {
	Received    bool
	Proof       []byte
	ProofHeight clienttypes.Height
}

// QueryProofRequest reads an arbitrary IBC path.
type QueryProofRequest struct {
	Key    []byte
	Height uint64
}

// QueryProofResponse holds the value under the path, empty when absent, and
// the matching existence or non-existence proof.
type QueryProofResponse struct {
	Value       []byte
	Proof       []byte
	ProofHeight clienttypes.Height
}

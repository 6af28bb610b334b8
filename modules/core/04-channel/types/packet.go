package types

import (
	"crypto/sha256"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.PacketI = (*Packet)(nil)

// Packet defines a type that carries data across different chains through IBC
type Packet struct {
	// number corresponds to the order of sends and receives, where a Packet
	// with an earlier sequence number must be sent and received before a Packet
	// with a later sequence number.
	Sequence uint64
	// identifies the port on the sending chain.
	SourcePort string
	// identifies the channel end on the sending chain.
	SourceChannel string
	// identifies the port on the receiving chain.
	DestinationPort string
	// identifies the channel end on the receiving chain.
	DestinationChannel string
	// actual opaque bytes transferred directly to the application module
	Data []byte
	// block height after which the packet times out
	TimeoutHeight clienttypes.Height
	// block timestamp (in nanoseconds) after which the packet times out
	TimeoutTimestamp uint64
}

// NewPacket creates a new Packet instance. It panics if the provided
// packet data interface is not registered.
func NewPacket(
	data []byte,
	sequence uint64, sourcePort, sourceChannel,
	destinationPort, destinationChannel string,
	timeoutHeight clienttypes.Height, timeoutTimestamp uint64,
) Packet {
	return Packet{
		Data:               data,
		Sequence:           sequence,
		SourcePort:         sourcePort,
		SourceChannel:      sourceChannel,
		DestinationPort:    destinationPort,
		DestinationChannel: destinationChannel,
		TimeoutHeight:      timeoutHeight,
		TimeoutTimestamp:   timeoutTimestamp,
	}
}

// CommitPacket returns the packet commitment bytes. The commitment consists of:
// sha256_hash(timeout_timestamp + timeout_height.RevisionNumber + timeout_height.RevisionHeight + sha256_hash(data))
// from a given packet. Every integer is encoded big endian on 8 bytes.
func CommitPacket(packet exported.PacketI) []byte {
	timeoutHeight := packet.GetTimeoutHeight()

	buf := sdk.Uint64ToBigEndian(packet.GetTimeoutTimestamp())

	revisionNumber := sdk.Uint64ToBigEndian(timeoutHeight.GetRevisionNumber())
	buf = append(buf, revisionNumber...)

	revisionHeight := sdk.Uint64ToBigEndian(timeoutHeight.GetRevisionHeight())
	buf = append(buf, revisionHeight...)

	dataHash := sha256.Sum256(packet.GetData())
	buf = append(buf, dataHash[:]...)

	hash := sha256.Sum256(buf)
	return hash[:]
}

// CommitAcknowledgement returns the hash of commitment bytes
func CommitAcknowledgement(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}

// CommitBatch returns the hash committing to an ordered list of batch leaves.
func CommitBatch(leaves [][]byte) []byte {
	h := sha256.New()
	for _, leaf := range leaves {
		h.Write(leaf)
	}
	return h.Sum(nil)
}

// CommitBatchLeaf binds a packet or acknowledgement commitment to the
// sequence and both channel ends of its packet. Identifiers are length
// prefixed.
func CommitBatchLeaf(packet exported.PacketI, commitment []byte) []byte {
	buf := sdk.Uint64ToBigEndian(packet.GetSequence())
	for _, id := range []string{
		packet.GetSourcePort(), packet.GetSourceChannel(),
		packet.GetDestPort(), packet.GetDestChannel(),
	} {
		buf = append(buf, sdk.Uint64ToBigEndian(uint64(len(id)))...)
		buf = append(buf, id...)
	}
	buf = append(buf, commitment...)

	hash := sha256.Sum256(buf)
	return hash[:]
}

// CommitPacketBatch returns the hash of a batch of packets sent together.
func CommitPacketBatch(packets []Packet) []byte {
	leaves := make([][]byte, len(packets))
	for i, packet := range packets {
		leaves[i] = CommitBatchLeaf(packet, CommitPacket(packet))
	}
	return CommitBatch(leaves)
}

// CommitAcknowledgementBatch returns the hash of the acknowledgements
// written for a batch of packets. acks[i] acknowledges packets[i].
func CommitAcknowledgementBatch(packets []Packet, acks [][]byte) []byte {
	leaves := make([][]byte, len(packets))
	for i, packet := range packets {
		leaves[i] = CommitBatchLeaf(packet, CommitAcknowledgement(acks[i]))
	}
	return CommitBatch(leaves)
}

// PacketReceipt is the value stored under the receipt path of a received packet.
var PacketReceipt = []byte{byte(1)}

// BatchCommitted is the value stored under a batch path.
var BatchCommitted = []byte{byte(1)}

// GetSequence implements PacketI interface
func (p Packet) GetSequence() uint64 { return p.Sequence }

// GetSourcePort implements PacketI interface
func (p Packet) GetSourcePort() string { return p.SourcePort }

// GetSourceChannel implements PacketI interface
func (p Packet) GetSourceChannel() string { return p.SourceChannel }

// GetDestPort implements PacketI interface
func (p Packet) GetDestPort() string { return p.DestinationPort }

// GetDestChannel implements PacketI interface
func (p Packet) GetDestChannel() string { return p.DestinationChannel }

// GetData implements PacketI interface
func (p Packet) GetData() []byte { return p.Data }

// GetTimeoutHeight implements PacketI interface
func (p Packet) GetTimeoutHeight() exported.Height { return p.TimeoutHeight }

// GetTimeoutTimestamp implements PacketI interface
func (p Packet) GetTimeoutTimestamp() uint64 { return p.TimeoutTimestamp }

// GetTimeout returns the packet timeout.
func (p Packet) GetTimeout() Timeout {
	return NewTimeout(p.TimeoutHeight, p.TimeoutTimestamp)
}

// ValidateBasic implements PacketI interface
func (p Packet) ValidateBasic() error {
	if err := host.PortIdentifierValidator(p.SourcePort); err != nil {
		return sdkerrors.Wrap(err, "invalid source port ID")
	}
	if err := host.PortIdentifierValidator(p.DestinationPort); err != nil {
		return sdkerrors.Wrap(err, "invalid destination port ID")
	}
	if err := host.ChannelIdentifierValidator(p.SourceChannel); err != nil {
		return sdkerrors.Wrap(err, "invalid source channel ID")
	}
	if err := host.ChannelIdentifierValidator(p.DestinationChannel); err != nil {
		return sdkerrors.Wrap(err, "invalid destination channel ID")
	}
	if p.Sequence == 0 {
		return sdkerrors.Wrap(ErrInvalidPacket, "packet sequence cannot be 0")
	}
	if !p.GetTimeout().IsValid() {
		return sdkerrors.Wrap(ErrInvalidPacket, "packet timeout height and packet timeout timestamp cannot both be 0")
	}
	return nil
}

// SameDestination returns true when every packet targets the same destination
// port and channel.
func SameDestination(packets []Packet) bool {
	for _, p := range packets[1:] {
		if p.DestinationPort != packets[0].DestinationPort || p.DestinationChannel != packets[0].DestinationChannel {
			return false
		}
	}
	return true
}

// SameSource returns true when every packet originates from the same source
// port and channel.
func SameSource(packets []Packet) bool {
	for _, p := range packets[1:] {
		if p.SourcePort != packets[0].SourcePort || p.SourceChannel != packets[0].SourceChannel {
			return false
		}
	}
	return true
}

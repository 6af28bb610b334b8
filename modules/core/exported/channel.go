package exported

// ChannelI is a channel end as stored and proven to the counterparty during
// the channel handshake.
type ChannelI interface {
	GetState() uint32
	GetCounterparty() CounterpartyChannelI
	GetConnectionHops() []string
	GetVersion() string
	ValidateBasic() error
}

// CounterpartyChannelI names the remote end of a channel.
type CounterpartyChannelI interface {
	GetPortID() string
	GetChannelID() string
	ValidateBasic() error
}

// PacketI is a packet as committed by its sender. Packet commitments cover
// the timeout and data, and batch leaves additionally bind the sequence and
// both channel ends.
type PacketI interface {
	GetSequence() uint64
	GetSourcePort() string
	GetSourceChannel() string
	GetDestPort() string
	GetDestChannel() string

	GetTimeoutHeight() Height
	GetTimeoutTimestamp() uint64
	GetData() []byte
}

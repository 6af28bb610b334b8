package ibctesting

import (
	"time"

	connectiontypes "github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	ibctm "github.com/ComposableFi/ibc-core/modules/light-clients/07-tendermint"
	"github.com/ComposableFi/ibc-core/testing/mock"
)

const (
	// Default params constants used to create a TM client
	TrustingPeriod  time.Duration = time.Hour * 24 * 7 * 2
	UnbondingPeriod time.Duration = time.Hour * 24 * 7 * 3
	MaxClockDrift   time.Duration = time.Second * 10

	DefaultDelayPeriod uint64 = 0

	// InvalidID is an identifier that is never assigned.
	InvalidID = "IDisInvalid"

	DefaultChannelVersion = mock.Version
	MockPort              = mock.PortID

	// Authority is the address allowed to administer intent market makers.
	Authority = "ibc-authority"

	// MarketMaker is registered at genesis on every test chain.
	MarketMaker = "market-maker"
)

var (
	DefaultTrustLevel = ibctm.DefaultTrustLevel

	// DefaultOpenInitVersion lets the counterparty pick the connection version.
	DefaultOpenInitVersion *connectiontypes.Version

	ConnectionVersion = connectiontypes.GetCompatibleVersions()[0]

	MockAcknowledgement = mock.MockAcknowledgement
	MockPacketData      = mock.MockPacketData
	MockFailPacketData  = mock.MockFailPacketData
)

type ClientConfig interface {
	GetClientType() string
}

type TendermintConfig struct {
	TrustLevel      ibctm.Fraction
	TrustingPeriod  time.Duration
	UnbondingPeriod time.Duration
	MaxClockDrift   time.Duration
}

func NewTendermintConfig() *TendermintConfig {
	return &TendermintConfig{
		TrustLevel:      DefaultTrustLevel,
		TrustingPeriod:  TrustingPeriod,
		UnbondingPeriod: UnbondingPeriod,
		MaxClockDrift:   MaxClockDrift,
	}
}

func (*TendermintConfig) GetClientType() string {
	return exported.Tendermint
}

type ConnectionConfig struct {
	DelayPeriod uint64
	Version     *connectiontypes.Version
}

func NewConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		DelayPeriod: DefaultDelayPeriod,
		Version:     ConnectionVersion,
	}
}

type ChannelConfig struct {
	PortID  string
	Version string
	Order   channeltypes.Order
}

func NewChannelConfig() *ChannelConfig {
	return &ChannelConfig{
		PortID:  mock.PortID,
		Version: DefaultChannelVersion,
		Order:   channeltypes.UNORDERED,
	}
}

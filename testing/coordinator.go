package ibctesting

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	chainIDPrefix = "testchain"
	// chainIDRevision is the revision suffix of every test chain id, so
	// heights of test chains carry revision number 1.
	chainIDRevision = 1

	// BlockTime is how far the shared clock moves with every committed block.
	BlockTime = 5 * time.Second
)

var genesisTime = time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)

// Coordinator drives a set of TestChains over a shared clock. Every block
// committed through it moves the clock by BlockTime on all chains.
type Coordinator struct {
	tb testing.TB

	CurrentTime time.Time
	Chains      map[string]*TestChain
}

// NewCoordinator starts n chains named GetChainID(1) to GetChainID(n), each
// backed by the default testing app.
func NewCoordinator(tb testing.TB, n int) *Coordinator {
	tb.Helper()

	coord := &Coordinator{
		tb:          tb,
		CurrentTime: genesisTime,
		Chains:      make(map[string]*TestChain, n),
	}
	for i := 1; i <= n; i++ {
		chainID := GetChainID(i)
		coord.Chains[chainID] = NewTestChain(tb, coord, chainID)
	}

	return coord
}

// GetChainID returns the chain id of the test chain with the given index.
func GetChainID(index int) string {
	return fmt.Sprintf("%s%d-%d", chainIDPrefix, index, chainIDRevision)
}

// GetChain returns the chain with chainID and fails the test if there is none.
func (coord *Coordinator) GetChain(chainID string) *TestChain {
	chain, found := coord.Chains[chainID]
	require.True(coord.tb, found, "chain %s does not exist", chainID)
	return chain
}

// IncrementTime moves the clock of every chain forward by BlockTime. It runs
// after every commit.
func (coord *Coordinator) IncrementTime() {
	coord.IncrementTimeBy(BlockTime)
}

// IncrementTimeBy moves the clock of every chain forward by increment.
func (coord *Coordinator) IncrementTimeBy(increment time.Duration) {
	coord.CurrentTime = coord.CurrentTime.Add(increment).UTC()
	for _, chain := range coord.Chains {
		coord.UpdateTimeForChain(chain)
	}
}

// UpdateTimeForChain sets the time of the block chain is building to the
// shared clock.
func (coord *Coordinator) UpdateTimeForChain(chain *TestChain) {
	chain.ProposedHeader.Time = coord.CurrentTime.UTC()
}

// CreateMockChannels opens the channels of path on the mock port. Any
// handshake failure fails the test.
func (*Coordinator) CreateMockChannels(path *Path) {
	path.EndpointA.ChannelConfig.PortID = MockPort
	path.EndpointB.ChannelConfig.PortID = MockPort

	path.CreateChannels()
}

// CommitBlock commits one block on each of chains, then moves the clock once.
// chains must not repeat.
func (coord *Coordinator) CommitBlock(chains ...*TestChain) {
	for _, chain := range chains {
		chain.NextBlock()
	}
	coord.IncrementTime()
}

// CommitNBlocks commits n blocks on chain, moving the clock after each one.
func (coord *Coordinator) CommitNBlocks(chain *TestChain, n uint64) {
	for i := uint64(0); i < n; i++ {
		chain.NextBlock()
		coord.IncrementTime()
	}
}

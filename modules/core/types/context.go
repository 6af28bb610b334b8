package types

import (
	"time"

	"github.com/cosmos/cosmos-sdk/store/cachekv"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/tendermint/tendermint/libs/log"
)

// DefaultMaxClientDepth bounds how many light clients may be composed while
// serving a single verification (state-lens over L1, proof-lens over
// state-lens, ...).
const DefaultMaxClientDepth uint32 = 4

// Context is the execution environment of a single message against one chain:
// the IBC store, the host block height and time, a logger, the event manager
// and the current light client composition depth.
//
// Context is passed by value. All With* methods return a modified copy.
type Context struct {
	store        storetypes.KVStore
	chainID      string
	blockHeight  int64
	blockTime    time.Time
	logger       log.Logger
	eventManager *sdk.EventManager

	clientDepth    uint32
	maxClientDepth uint32
}

// NewContext creates a new Context for the given store and block info.
func NewContext(store storetypes.KVStore, chainID string, height int64, blockTime time.Time, logger log.Logger) Context {
	return Context{
		store:          store,
		chainID:        chainID,
		blockHeight:    height,
		blockTime:      blockTime.UTC(),
		logger:         logger,
		eventManager:   sdk.NewEventManager(),
		maxClientDepth: DefaultMaxClientDepth,
	}
}

func (c Context) KVStore() storetypes.KVStore { return c.store }
func (c Context) ChainID() string { return c.chainID }
func (c Context) BlockHeight() int64 { return c.blockHeight }
func (c Context) BlockTime() time.Time { return c.blockTime }
func (c Context) Logger() log.Logger { return c.logger }
func (c Context) EventManager() *sdk.EventManager { return c.eventManager }
func (c Context) ClientDepth() uint32 { return c.clientDepth }
func (c Context) MaxClientDepth() uint32 { return c.maxClientDepth }
func (c Context) IsZero() bool { return c.store == nil }

// WithKVStore returns a Context with an updated store.
func (c Context) WithKVStore(store storetypes.KVStore) Context {
	c.store = store
	return c
}

// WithBlockHeight returns a Context with an updated block height.
func (c Context) WithBlockHeight(height int64) Context {
	c.blockHeight = height
	return c
}

// WithBlockTime returns a Context with an updated block time.
func (c Context) WithBlockTime(t time.Time) Context {
	c.blockTime = t.UTC()
	return c
}

// WithLogger returns a Context with an updated logger.
func (c Context) WithLogger(logger log.Logger) Context {
	c.logger = logger
	return c
}

// WithEventManager returns a Context with an updated event manager.
func (c Context) WithEventManager(em *sdk.EventManager) Context {
	c.eventManager = em
	return c
}

// WithClientDepth returns a Context with an updated composition depth.
func (c Context) WithClientDepth(depth uint32) Context {
	c.clientDepth = depth
	return c
}

// WithMaxClientDepth returns a Context with an updated composition bound.
func (c Context) WithMaxClientDepth(depth uint32) Context {
	c.maxClientDepth = depth
	return c
}

// CacheContext returns a new Context with the store branched into a cache
// and a fresh event manager. Nothing reaches the parent store until
// writeCache is called, at which point the cached events are emitted on the
// parent event manager as well.
func (c Context) CacheContext() (cc Context, writeCache func()) {
	cache := cachekv.NewStore(c.store)
	cc = c.WithKVStore(cache).WithEventManager(sdk.NewEventManager())

	writeCache = func() {
		cache.Write()
		c.EventManager().EmitEvents(cc.EventManager().Events())
	}

	return cc, writeCache
}

package main

import (
	"context"
	"net"
	"time"

	"github.com/cosmos/cosmos-sdk/telemetry"
	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/libs/log"
	"google.golang.org/grpc"

	"github.com/ComposableFi/ibc-core/internal/config"
	ibc "github.com/ComposableFi/ibc-core/modules/core"
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	porttypes "github.com/ComposableFi/ibc-core/modules/core/05-port/types"
	ibcgrpc "github.com/ComposableFi/ibc-core/modules/core/client/grpc"
	"github.com/ComposableFi/ibc-core/modules/core/keeper"
	"github.com/ComposableFi/ibc-core/modules/core/store"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
	ibctm "github.com/ComposableFi/ibc-core/modules/light-clients/07-tendermint"
	ethereum "github.com/ComposableFi/ibc-core/modules/light-clients/12-ethereum"
	aptos "github.com/ComposableFi/ibc-core/modules/light-clients/13-aptos"
	"github.com/ComposableFi/ibc-core/modules/light-clients/13-aptos/movement"
	sui "github.com/ComposableFi/ibc-core/modules/light-clients/15-sui"
	berachain "github.com/ComposableFi/ibc-core/modules/light-clients/16-berachain"
	statelens "github.com/ComposableFi/ibc-core/modules/light-clients/17-state-lens"
	prooflens "github.com/ComposableFi/ibc-core/modules/light-clients/18-proof-lens"
)

// node hosts the IBC keeper over a persistent commitment store and serves the
// committed state to relayers.
type node struct {
	cfg    config.Config
	logger log.Logger

	store   *store.CommitStore
	keeper  *keeper.Keeper
	queries *ibcgrpc.Server
}

// newClientRouter returns a router holding every light client the node
// accepts. The mock client is left out on purpose: it verifies nothing.
func newClientRouter() *clienttypes.Router {
	router := clienttypes.NewRouter()
	router.AddRoute(ibctm.NewLightClientModule())
	router.AddRoute(ethereum.NewLightClientModule())
	router.AddRoute(aptos.NewLightClientModule())
	router.AddRoute(movement.NewLightClientModule())
	router.AddRoute(sui.NewLightClientModule())
	router.AddRoute(berachain.NewLightClientModule())
	router.AddRoute(statelens.NewLightClientModule())
	router.AddRoute(prooflens.NewLightClientModule())
	return router
}

func newNode(cfg config.Config, logger log.Logger) (*node, error) {
	if cfg.Authority == "" {
		return nil, errors.Errorf("%s must be set to start a node", config.KeyAuthority)
	}

	db, err := store.OpenDB(cfg.DBBackend, cfg.DBDir)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database in %s", cfg.DBBackend, cfg.DBDir)
	}

	commitStore, err := store.NewCommitStore(db, logger)
	if err != nil {
		return nil, errors.Wrap(err, "load commitment store")
	}

	k := keeper.NewKeeper(newClientRouter(), cfg.Authority)
	k.SetRouter(porttypes.NewRouter())

	return &node{
		cfg:     cfg,
		logger:  logger,
		store:   commitStore,
		keeper:  k,
		queries: ibcgrpc.NewServer(commitStore, cfg.ChainID, logger),
	}, nil
}

// context returns the execution context of the next block.
func (n *node) context(blockTime time.Time) coretypes.Context {
	return coretypes.NewContext(n.store.KVStore(), n.cfg.ChainID, n.store.LatestHeight()+1, blockTime, n.logger).
		WithMaxClientDepth(n.cfg.MaxClientDepth)
}

// initGenesis writes the genesis state into the first block of a fresh store.
func (n *node) initGenesis() error {
	if n.store.LatestHeight() != 0 {
		return nil
	}

	gs := ibc.DefaultGenesisState()
	gs.MarketMakers = n.cfg.MarketMakers
	if err := ibc.InitGenesis(n.context(time.Now().UTC()), n.keeper, gs); err != nil {
		return errors.Wrap(err, "init genesis")
	}

	_, height := n.store.Commit()
	n.logger.Info("initialized genesis", "height", height, "market-makers", len(gs.MarketMakers))
	return nil
}

// run serves queries on lis and commits a block every BlockTime until ctx is
// done.
func (n *node) run(ctx context.Context, lis net.Listener) error {
	if n.cfg.Telemetry.Enabled {
		if _, err := telemetry.New(telemetry.Config{
			ServiceName:             n.cfg.Telemetry.ServiceName,
			Enabled:                 true,
			PrometheusRetentionTime: int64(n.cfg.Telemetry.Retention.Seconds()),
		}); err != nil {
			return errors.Wrap(err, "init telemetry")
		}
	}

	gs := grpc.NewServer()
	n.queries.Register(gs)

	errCh := make(chan error, 1)
	go func() {
		n.logger.Info("serving ibc queries", "addr", lis.Addr().String())
		errCh <- gs.Serve(lis)
	}()

	ticker := time.NewTicker(n.cfg.BlockTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			gs.GracefulStop()
			return nil
		case err := <-errCh:
			return errors.Wrap(err, "grpc server")
		case <-ticker.C:
			n.store.Commit()
		}
	}
}

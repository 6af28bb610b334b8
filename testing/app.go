package ibctesting

import (
	"github.com/tendermint/tendermint/libs/log"

	ibc "github.com/ComposableFi/ibc-core/modules/core"
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	porttypes "github.com/ComposableFi/ibc-core/modules/core/05-port/types"
	"github.com/ComposableFi/ibc-core/modules/core/keeper"
	"github.com/ComposableFi/ibc-core/modules/core/store"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
	mockclient "github.com/ComposableFi/ibc-core/modules/light-clients/00-mock"
	ibctm "github.com/ComposableFi/ibc-core/modules/light-clients/07-tendermint"
	ethereum "github.com/ComposableFi/ibc-core/modules/light-clients/12-ethereum"
	aptos "github.com/ComposableFi/ibc-core/modules/light-clients/13-aptos"
	"github.com/ComposableFi/ibc-core/modules/light-clients/13-aptos/movement"
	sui "github.com/ComposableFi/ibc-core/modules/light-clients/15-sui"
	berachain "github.com/ComposableFi/ibc-core/modules/light-clients/16-berachain"
	statelens "github.com/ComposableFi/ibc-core/modules/light-clients/17-state-lens"
	prooflens "github.com/ComposableFi/ibc-core/modules/light-clients/18-proof-lens"
	"github.com/ComposableFi/ibc-core/testing/mock"
)

type TestingApp interface {
	GetIBCKeeper() *keeper.Keeper
	GetStore() *store.CommitStore
}

// AppCreator builds the application backing a TestChain.
type AppCreator func() TestingApp

var _ TestingApp = (*App)(nil)

// App is the minimal host of the IBC core used by the testing package: a
// commitment store, the IBC keeper with every light client registered, and
// the mock application bound to MockPort.
type App struct {
	Store     *store.CommitStore
	IBCKeeper *keeper.Keeper

	MockModule mock.IBCModule
}

// DefaultTestingAppInit returns a fresh App with an in-memory store.
func DefaultTestingAppInit() TestingApp {
	return NewApp(log.NewNopLogger())
}

// NewApp wires the IBC keeper over a new in-memory commitment store.
func NewApp(logger log.Logger) *App {
	clientRouter := clienttypes.NewRouter()
	clientRouter.AddRoute(ibctm.NewLightClientModule())
	clientRouter.AddRoute(mockclient.NewLightClientModule())
	clientRouter.AddRoute(ethereum.NewLightClientModule())
	clientRouter.AddRoute(aptos.NewLightClientModule())
	clientRouter.AddRoute(movement.NewLightClientModule())
	clientRouter.AddRoute(sui.NewLightClientModule())
	clientRouter.AddRoute(berachain.NewLightClientModule())
	clientRouter.AddRoute(statelens.NewLightClientModule())
	clientRouter.AddRoute(prooflens.NewLightClientModule())

	ibcKeeper := keeper.NewKeeper(clientRouter, Authority)

	mockModule := mock.NewIBCModule(mock.NewIBCApp(mock.PortID))

	portRouter := porttypes.NewRouter()
	portRouter.AddRoute(mock.PortID, mockModule)
	ibcKeeper.SetRouter(portRouter)

	return &App{
		Store:      store.NewMemCommitStore(logger),
		IBCKeeper:  ibcKeeper,
		MockModule: mockModule,
	}
}

// GetIBCKeeper implements the TestingApp interface.
func (app *App) GetIBCKeeper() *keeper.Keeper {
	return app.IBCKeeper
}

// GetStore implements the TestingApp interface.
func (app *App) GetStore() *store.CommitStore {
	return app.Store
}

// InitGenesis initializes the IBC state with a registered market maker.
func InitGenesis(ctx coretypes.Context, app TestingApp) error {
	gs := ibc.DefaultGenesisState()
	gs.MarketMakers = []string{MarketMaker}

	return ibc.InitGenesis(ctx, app.GetIBCKeeper(), gs)
}

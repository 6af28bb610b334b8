package keeper

import (
	"errors"
	"strings"

	clientkeeper "github.com/ComposableFi/ibc-core/modules/core/02-client/keeper"
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	connectionkeeper "github.com/ComposableFi/ibc-core/modules/core/03-connection/keeper"
	channelkeeper "github.com/ComposableFi/ibc-core/modules/core/04-channel/keeper"
	porttypes "github.com/ComposableFi/ibc-core/modules/core/05-port/types"
)

// Keeper defines each ICS keeper for IBC
type Keeper struct {
	ClientKeeper     *clientkeeper.Keeper
	ConnectionKeeper *connectionkeeper.Keeper
	ChannelKeeper    *channelkeeper.Keeper
	Router           *porttypes.Router

	authority string
}

// NewKeeper creates a new ibc Keeper. The client router must hold every light
// client module the chain accepts; it is sealed here.
func NewKeeper(clientRouter *clienttypes.Router, authority string) *Keeper {
	if clientRouter == nil {
		panic(errors.New("cannot initialize IBC keeper: empty client router"))
	}

	if strings.TrimSpace(authority) == "" {
		panic(errors.New("authority must be non-empty"))
	}

	if !clientRouter.Sealed() {
		clientRouter.Seal()
	}

	clientKeeper := clientkeeper.NewKeeper(clientRouter)
	connectionKeeper := connectionkeeper.NewKeeper(clientKeeper)
	channelKeeper := channelkeeper.NewKeeper(clientKeeper, connectionKeeper, authority)

	return &Keeper{
		ClientKeeper:     clientKeeper,
		ConnectionKeeper: connectionKeeper,
		ChannelKeeper:    channelKeeper,
		authority:        authority,
	}
}

// SetRouter sets the Router in IBC Keeper and seals it. The method panics if
// there is an existing router that's already sealed.
func (k *Keeper) SetRouter(rtr *porttypes.Router) {
	if k.Router != nil && k.Router.Sealed() {
		panic(errors.New("cannot reset a sealed router"))
	}

	k.Router = rtr
	k.Router.Seal()
}

// GetAuthority returns the ibc module's authority.
func (k *Keeper) GetAuthority() string {
	return k.authority
}

package types

import (
	"errors"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/internal/collections"
)

// The router is a map from port identifier to the IBCModule
// which contains all the module-defined callbacks required by ICS-26
type Router struct {
	routes map[string]IBCModule
	sealed bool
}

func NewRouter() *Router {
	return &Router{
		routes: make(map[string]IBCModule),
	}
}

// Seal prevents the Router from any subsequent route handlers to be registered.
// Seal will panic if called more than once.
func (rtr *Router) Seal() {
	if rtr.sealed {
		panic(errors.New("router already sealed"))
	}
	rtr.sealed = true
}

// Sealed returns a boolean signifying if the Router is sealed or not.
func (rtr Router) Sealed() bool {
	return rtr.sealed
}

// AddRoute adds IBCModule for a given port. It returns the Router
// so AddRoute calls can be linked. It will panic if the Router is sealed.
func (rtr *Router) AddRoute(portID string, cbs IBCModule) *Router {
	if rtr.sealed {
		panic(fmt.Errorf("router sealed; cannot register %s route callbacks", portID))
	}
	if !sdk.IsAlphaNumeric(portID) {
		panic(errors.New("route expressions can only contain alphanumeric characters"))
	}
	if rtr.HasRoute(portID) {
		panic(fmt.Errorf("route %s has already been registered", portID))
	}

	rtr.routes[portID] = cbs
	return rtr
}

// HasRoute returns true if the Router has a module registered or false otherwise.
func (rtr *Router) HasRoute(portID string) bool {
	_, ok := rtr.routes[portID]
	return ok
}

// GetRoute returns a IBCModule for a given port.
func (rtr *Router) GetRoute(portID string) (IBCModule, bool) {
	if !rtr.HasRoute(portID) {
		return nil, false
	}
	return rtr.routes[portID], true
}

// Route returns the IBCModule bound to portID or ErrInvalidRoute.
func (rtr *Router) Route(portID string) (IBCModule, error) {
	cbs, ok := rtr.GetRoute(portID)
	if !ok {
		return nil, sdkerrors.Wrapf(ErrInvalidRoute, "route not found to module: %s", portID)
	}
	return cbs, nil
}

// Ports returns the registered port identifiers in sorted order.
func (rtr *Router) Ports() []string {
	return collections.SortedKeys(rtr.routes)
}

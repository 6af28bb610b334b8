package keeper

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// VerifyMembership verifies that value is stored under path on the
// counterparty of the given client at exactly the given height. The client
// must be active and hold a consensus state at that height. Light clients
// composed over other clients reach this method again through the
// ClientHost, each time one level deeper.
func (k Keeper) VerifyMembership(
	ctx coretypes.Context, clientID string, height exported.Height, proof, path, value []byte,
) error {
	nested, module, clientState, err := k.verificationTarget(ctx, clientID, height)
	if err != nil {
		return err
	}

	if err := module.VerifyMembership(nested, k, clientID, clientState, height, proof, path, value); err != nil {
		return sdkerrors.Wrapf(err, "client (%s) height %s", clientID, height)
	}
	return nil
}

// VerifyNonMembership verifies that nothing is stored under path on the
// counterparty of the given client at exactly the given height.
func (k Keeper) VerifyNonMembership(
	ctx coretypes.Context, clientID string, height exported.Height, proof, path []byte,
) error {
	nested, module, clientState, err := k.verificationTarget(ctx, clientID, height)
	if err != nil {
		return err
	}

	if err := module.VerifyNonMembership(nested, k, clientID, clientState, height, proof, path); err != nil {
		return sdkerrors.Wrapf(err, "client (%s) height %s", clientID, height)
	}
	return nil
}

// verificationTarget enforces the registry rules shared by every light client
// before any proof is looked at, and returns the context one composition
// level deeper.
func (k Keeper) verificationTarget(
	ctx coretypes.Context, clientID string, height exported.Height,
) (coretypes.Context, exported.LightClientModule, exported.ClientState, error) {
	depth := ctx.ClientDepth() + 1
	if depth > ctx.MaxClientDepth() {
		return ctx, nil, nil, sdkerrors.Wrapf(types.ErrMaxRecursionDepth, "verifying through client (%s) at depth %d, max %d", clientID, depth, ctx.MaxClientDepth())
	}

	module, err := k.Route(clientID)
	if err != nil {
		return ctx, nil, nil, err
	}

	clientState, found := k.GetClientState(ctx, clientID)
	if !found {
		return ctx, nil, nil, sdkerrors.Wrapf(types.ErrClientNotFound, "client (%s)", clientID)
	}

	if !clientState.GetFrozenHeight().IsZero() {
		return ctx, nil, nil, sdkerrors.Wrapf(types.ErrClientFrozen, "client (%s) frozen at height %s", clientID, clientState.GetFrozenHeight())
	}

	if height == nil || height.IsZero() {
		return ctx, nil, nil, sdkerrors.Wrapf(types.ErrInvalidHeight, "client (%s) proof height cannot be zero", clientID)
	}

	if !k.HasClientConsensusState(ctx, clientID, height) {
		return ctx, nil, nil, sdkerrors.Wrapf(types.ErrConsensusStateNotFound, "client (%s) at height %s", clientID, height)
	}

	if status := module.Status(ctx, k, clientID, clientState); status != exported.Active {
		return ctx, nil, nil, statusError(clientID, status)
	}

	return ctx.WithClientDepth(depth), module, clientState, nil
}

package keeper

import (
	"github.com/armon/go-metrics"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coremetrics "github.com/ComposableFi/ibc-core/modules/core/metrics"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// CreateClient registers a client in a single step: it begins the creation
// and completes it immediately without an external address.
func (k Keeper) CreateClient(
	ctx coretypes.Context, clientType string, clientState, consensusState []byte, caller, relayer string,
) (string, error) {
	token, err := k.BeginCreateClient(ctx, clientType, clientState, consensusState, caller, relayer)
	if err != nil {
		return "", err
	}

	return k.CompleteCreateClient(ctx, token, "")
}

// BeginCreateClient verifies the initial client and consensus states with the
// light client module of the given type and stores a pending creation record.
// The returned token must be passed to CompleteCreateClient to register the client.
func (k Keeper) BeginCreateClient(
	ctx coretypes.Context, clientType string, clientStateBz, consensusStateBz []byte, caller, relayer string,
) (types.PendingCreationToken, error) {
	module, err := k.routeByType(clientType)
	if err != nil {
		return types.PendingCreationToken{}, err
	}

	clientState, consensusState, err := decodeInitialStates(module, clientStateBz, consensusStateBz)
	if err != nil {
		return types.PendingCreationToken{}, err
	}

	if !clientState.GetFrozenHeight().IsZero() {
		return types.PendingCreationToken{}, sdkerrors.Wrap(types.ErrClientFrozen, "cannot create a frozen client")
	}

	sideEffects, err := module.VerifyCreation(ctx, k, "", clientState, consensusState, caller, relayer)
	if err != nil {
		return types.PendingCreationToken{}, sdkerrors.Wrapf(err, "cannot create client of type %s", clientType)
	}

	nonce := getSequence(ctx, host.NextPendingClientSequenceKey())
	setSequence(ctx, host.NextPendingClientSequenceKey(), nonce+1)

	pending := types.NewPendingCreation(nonce, clientType, clientStateBz, consensusStateBz, sideEffects, caller, relayer)
	token, err := pending.Token()
	if err != nil {
		return types.PendingCreationToken{}, err
	}

	bz, err := rlp.EncodeToBytes(pending)
	if err != nil {
		return types.PendingCreationToken{}, err
	}
	ctx.KVStore().Set(host.PendingClientKey(nonce), bz)

	k.Logger(ctx).Debug("client creation pending", "client-type", clientType, "nonce", nonce)

	emitBeginCreateClientEvent(ctx, clientType, nonce)

	return token, nil
}

// CompleteCreateClient registers the client of a pending creation: it assigns
// the client identifier, writes the initial client and consensus states and
// the side effects returned by the light client, binds the external address
// and removes the pending record.
func (k Keeper) CompleteCreateClient(
	ctx coretypes.Context, token types.PendingCreationToken, externalAddress string,
) (string, error) {
	pending, found := k.GetPendingCreation(ctx, token.Nonce)
	if !found {
		return "", sdkerrors.Wrapf(types.ErrPendingCreationNotFound, "nonce %d", token.Nonce)
	}

	if err := token.Matches(pending); err != nil {
		return "", err
	}

	module, err := k.routeByType(pending.ClientType)
	if err != nil {
		return "", err
	}

	clientState, consensusState, err := decodeInitialStates(module, pending.ClientState, pending.ConsensusState)
	if err != nil {
		return "", err
	}

	// the client is only registered if it is active once written
	cacheCtx, writeFn := ctx.CacheContext()

	clientID := k.GenerateClientIdentifier(cacheCtx, pending.ClientType)

	k.SetClientState(cacheCtx, clientID, clientState)
	k.SetClientConsensusState(cacheCtx, clientID, clientState.GetLatestHeight(), consensusState)
	k.applySideEffects(cacheCtx, clientID, pending.StoreWrites())
	if externalAddress != "" {
		cacheCtx.KVStore().Set(host.FullClientAddressKey(clientID), []byte(externalAddress))
	}
	cacheCtx.KVStore().Delete(host.PendingClientKey(pending.Nonce))

	if status := k.GetClientStatus(cacheCtx, clientID); status != exported.Active {
		return "", sdkerrors.Wrapf(types.ErrClientNotActive, "cannot create client (%s) with status %s", clientID, status)
	}

	writeFn()

	k.Logger(ctx).Info("client created at height", "client-id", clientID, "height", clientState.GetLatestHeight().String())

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", "client", "create"},
		1,
		[]metrics.Label{telemetry.NewLabel(coremetrics.LabelClientType, pending.ClientType)},
	)

	emitCreateClientEvent(ctx, clientID, pending.ClientType, clientState.GetLatestHeight(), externalAddress)

	return clientID, nil
}

// GetPendingCreation returns the pending creation record stored under the nonce.
func (k Keeper) GetPendingCreation(ctx coretypes.Context, nonce uint64) (types.PendingCreation, bool) {
	bz := ctx.KVStore().Get(host.PendingClientKey(nonce))
	if len(bz) == 0 {
		return types.PendingCreation{}, false
	}

	var pending types.PendingCreation
	if err := rlp.DecodeBytes(bz, &pending); err != nil {
		panic(err)
	}
	return pending, true
}

// UpdateClient verifies the client message with the light client module and
// applies the resulting state update.
func (k Keeper) UpdateClient(
	ctx coretypes.Context, clientID string, clientMsg exported.ClientMessage, caller, relayer string,
) error {
	clientState, found := k.GetClientState(ctx, clientID)
	if !found {
		return sdkerrors.Wrapf(types.ErrClientNotFound, "cannot update client with ID %s", clientID)
	}

	if status := k.GetClientStatus(ctx, clientID); status != exported.Active {
		return statusError(clientID, status)
	}

	module, err := k.Route(clientID)
	if err != nil {
		return err
	}

	if err := validateClientMessage(module, clientMsg); err != nil {
		return err
	}

	update, err := module.VerifyHeader(ctx, k, clientID, clientState, clientMsg, caller, relayer)
	if err != nil {
		return sdkerrors.Wrapf(err, "cannot update client (%s)", clientID)
	}

	noop, err := k.applyStateUpdate(ctx, clientID, clientState, update)
	if err != nil {
		return err
	}
	if noop {
		k.Logger(ctx).Debug("client update is a no-op", "client-id", clientID, "height", update.Height.String())
		return nil
	}

	k.Logger(ctx).Info("client state updated", "client-id", clientID, "height", update.Height.String())

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", "client", "update"},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelClientType, module.ClientType()),
			telemetry.NewLabel(coremetrics.LabelClientID, clientID),
			telemetry.NewLabel(coremetrics.LabelUpdateType, "msg"),
		},
	)

	// emitting events in the keeper emits for both begin block and handler client updates
	emitUpdateClientEvent(ctx, clientID, module.ClientType(), []exported.Height{update.Height}, clientMsg)

	return nil
}

// SubmitMisbehaviour verifies the misbehaviour evidence with the light client
// module and stores the frozen client state it returns.
func (k Keeper) SubmitMisbehaviour(
	ctx coretypes.Context, clientID string, misbehaviour exported.ClientMessage, caller, relayer string,
) error {
	clientState, found := k.GetClientState(ctx, clientID)
	if !found {
		return sdkerrors.Wrapf(types.ErrClientNotFound, "cannot check misbehaviour for client with ID %s", clientID)
	}

	if status := k.GetClientStatus(ctx, clientID); status != exported.Active {
		return statusError(clientID, status)
	}

	module, err := k.Route(clientID)
	if err != nil {
		return err
	}

	if err := validateClientMessage(module, misbehaviour); err != nil {
		return err
	}

	frozen, err := module.Misbehaviour(ctx, k, clientID, clientState, misbehaviour, caller, relayer)
	if err != nil {
		return sdkerrors.Wrapf(err, "cannot freeze client (%s)", clientID)
	}

	if frozen == nil || frozen.GetFrozenHeight().IsZero() {
		return sdkerrors.Wrapf(types.ErrInvalidMisbehaviour, "client (%s) was not frozen by misbehaviour", clientID)
	}

	k.SetClientState(ctx, clientID, frozen)

	k.Logger(ctx).Info("client frozen due to misbehaviour", "client-id", clientID, "frozen-height", frozen.GetFrozenHeight().String())

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", "client", "misbehaviour"},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelClientType, module.ClientType()),
			telemetry.NewLabel(coremetrics.LabelClientID, clientID),
			telemetry.NewLabel(coremetrics.LabelMsgType, "misbehaviour"),
		},
	)

	emitSubmitMisbehaviourEvent(ctx, clientID, module.ClientType())

	return nil
}

// applyStateUpdate writes a verified state update. An update whose consensus
// state is already stored with identical bytes is a no-op; a conflicting one
// is rejected. The latest height of the client never decreases.
func (k Keeper) applyStateUpdate(
	ctx coretypes.Context, clientID string, clientState exported.ClientState, update *exported.StateUpdate,
) (bool, error) {
	if update == nil || update.Height == nil || update.ConsensusState == nil {
		return false, sdkerrors.Wrapf(types.ErrInvalidHeader, "client (%s) returned an empty state update", clientID)
	}

	consensusBz, err := types.MarshalConsensusState(update.ConsensusState)
	if err != nil {
		return false, err
	}

	height := types.MustHeight(update.Height)
	if existing := ctx.KVStore().Get(host.FullConsensusStateKey(clientID, height)); existing != nil {
		if string(existing) == string(consensusBz) {
			return true, nil
		}
		return false, sdkerrors.Wrapf(types.ErrInvalidConsensus, "client (%s) already has a different consensus state at height %s", clientID, height)
	}

	if update.ClientState != nil {
		if update.ClientState.GetLatestHeight().LT(clientState.GetLatestHeight()) {
			return false, sdkerrors.Wrapf(
				types.ErrInvalidHeight, "client (%s) latest height cannot decrease from %s to %s",
				clientID, clientState.GetLatestHeight(), update.ClientState.GetLatestHeight(),
			)
		}
		k.SetClientState(ctx, clientID, update.ClientState)
	}

	ctx.KVStore().Set(host.FullConsensusStateKey(clientID, height), consensusBz)
	k.applySideEffects(ctx, clientID, update.SideEffects)

	return false, nil
}

func (k Keeper) applySideEffects(ctx coretypes.Context, clientID string, writes []exported.StoreWrite) {
	for _, w := range writes {
		key := host.FullClientDataKey(clientID, w.Key)
		if w.Value == nil {
			ctx.KVStore().Delete(key)
			continue
		}
		ctx.KVStore().Set(key, w.Value)
	}
}

func decodeInitialStates(
	module exported.LightClientModule, clientStateBz, consensusStateBz []byte,
) (exported.ClientState, exported.ConsensusState, error) {
	clientState, err := module.DecodeClientState(clientStateBz)
	if err != nil {
		return nil, nil, sdkerrors.Wrap(types.ErrInvalidClient, err.Error())
	}
	if clientState.ClientType() != module.ClientType() {
		return nil, nil, sdkerrors.Wrapf(types.ErrInvalidClientType, "expected %s, got %s", module.ClientType(), clientState.ClientType())
	}
	if err := clientState.Validate(); err != nil {
		return nil, nil, sdkerrors.Wrap(types.ErrInvalidClient, err.Error())
	}

	consensusState, err := module.DecodeConsensusState(consensusStateBz)
	if err != nil {
		return nil, nil, sdkerrors.Wrap(types.ErrInvalidConsensus, err.Error())
	}
	if consensusState.ClientType() != module.ClientType() {
		return nil, nil, sdkerrors.Wrapf(types.ErrInvalidClientType, "expected %s, got %s", module.ClientType(), consensusState.ClientType())
	}
	if err := consensusState.ValidateBasic(); err != nil {
		return nil, nil, sdkerrors.Wrap(types.ErrInvalidConsensus, err.Error())
	}

	return clientState, consensusState, nil
}

func validateClientMessage(module exported.LightClientModule, clientMsg exported.ClientMessage) error {
	if clientMsg == nil {
		return sdkerrors.Wrap(types.ErrInvalidHeader, "client message cannot be nil")
	}
	if clientMsg.ClientType() != module.ClientType() {
		return sdkerrors.Wrapf(types.ErrInvalidClientType, "expected %s, got %s", module.ClientType(), clientMsg.ClientType())
	}
	return clientMsg.ValidateBasic()
}

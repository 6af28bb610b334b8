package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

var _ exported.ClientHost = (*Keeper)(nil)

// Keeper represents a type that grants read and write permissions to any client
// state information
type Keeper struct {
	router *types.Router
}

// NewKeeper creates a new NewKeeper instance
func NewKeeper(router *types.Router) *Keeper {
	return &Keeper{
		router: router,
	}
}

// Logger returns a module-specific logger.
func (Keeper) Logger(ctx coretypes.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName+"-"+types.SubModuleName)
}

// GetRouter returns the light client router.
func (k Keeper) GetRouter() *types.Router {
	return k.router
}

// Route returns the light client module of the given client identifier.
func (k Keeper) Route(clientID string) (exported.LightClientModule, error) {
	clientType, _, err := types.ParseClientIdentifier(clientID)
	if err != nil {
		return nil, sdkerrors.Wrapf(types.ErrClientNotFound, "clientID (%s): %s", clientID, err)
	}

	return k.routeByType(clientType)
}

func (k Keeper) routeByType(clientType string) (exported.LightClientModule, error) {
	module, found := k.router.GetRoute(clientType)
	if !found {
		return nil, sdkerrors.Wrapf(types.ErrClientTypeNotRegistered, "client type %s", clientType)
	}
	return module, nil
}

// GenerateClientIdentifier returns the next client identifier.
func (k Keeper) GenerateClientIdentifier(ctx coretypes.Context, clientType string) string {
	nextClientSeq := k.GetNextClientSequence(ctx)
	clientID := types.FormatClientIdentifier(clientType, nextClientSeq)

	k.SetNextClientSequence(ctx, nextClientSeq+1)
	return clientID
}

// GetNextClientSequence gets the next client sequence from the store.
func (k Keeper) GetNextClientSequence(ctx coretypes.Context) uint64 {
	return getSequence(ctx, host.NextClientSequenceKey())
}

// SetNextClientSequence sets the next client sequence to the store.
func (k Keeper) SetNextClientSequence(ctx coretypes.Context, sequence uint64) {
	setSequence(ctx, host.NextClientSequenceKey(), sequence)
}

// GetClientState gets a particular client from the store
func (k Keeper) GetClientState(ctx coretypes.Context, clientID string) (exported.ClientState, bool) {
	bz := ctx.KVStore().Get(host.FullClientStateKey(clientID))
	if len(bz) == 0 {
		return nil, false
	}

	module, err := k.Route(clientID)
	if err != nil {
		return nil, false
	}

	clientState, err := module.DecodeClientState(bz)
	if err != nil {
		panic(fmt.Errorf("stored client state of %s cannot be decoded: %w", clientID, err))
	}
	return clientState, true
}

// SetClientState sets a particular Client to the store
func (k Keeper) SetClientState(ctx coretypes.Context, clientID string, clientState exported.ClientState) {
	ctx.KVStore().Set(host.FullClientStateKey(clientID), types.MustMarshalClientState(clientState))
}

// GetClientConsensusState gets the stored consensus state from a client at a given height.
func (k Keeper) GetClientConsensusState(ctx coretypes.Context, clientID string, height exported.Height) (exported.ConsensusState, bool) {
	if height == nil {
		return nil, false
	}

	bz := ctx.KVStore().Get(host.FullConsensusStateKey(clientID, types.MustHeight(height)))
	if len(bz) == 0 {
		return nil, false
	}

	module, err := k.Route(clientID)
	if err != nil {
		return nil, false
	}

	consensusState, err := module.DecodeConsensusState(bz)
	if err != nil {
		panic(fmt.Errorf("stored consensus state of %s at %s cannot be decoded: %w", clientID, height, err))
	}
	return consensusState, true
}

// SetClientConsensusState sets a ConsensusState to a particular client at the given
// height
func (k Keeper) SetClientConsensusState(ctx coretypes.Context, clientID string, height exported.Height, consensusState exported.ConsensusState) {
	ctx.KVStore().Set(host.FullConsensusStateKey(clientID, types.MustHeight(height)), types.MustMarshalConsensusState(consensusState))
}

// HasClientConsensusState returns if keeper has a ConsensusState for a particular
// client at the given height
func (k Keeper) HasClientConsensusState(ctx coretypes.Context, clientID string, height exported.Height) bool {
	return ctx.KVStore().Has(host.FullConsensusStateKey(clientID, types.MustHeight(height)))
}

// GetClientData returns auxiliary data a light client stored as a side effect.
func (k Keeper) GetClientData(ctx coretypes.Context, clientID string, key []byte) ([]byte, bool) {
	bz := ctx.KVStore().Get(host.FullClientDataKey(clientID, key))
	if bz == nil {
		return nil, false
	}
	return bz, true
}

// GetClientAddress returns the external address the client was bound to at creation.
func (k Keeper) GetClientAddress(ctx coretypes.Context, clientID string) (string, bool) {
	bz := ctx.KVStore().Get(host.FullClientAddressKey(clientID))
	if len(bz) == 0 {
		return "", false
	}
	return string(bz), true
}

// GetLatestHeight returns the latest height of the given client, or the zero
// height if the client does not exist.
func (k Keeper) GetLatestHeight(ctx coretypes.Context, clientID string) types.Height {
	clientState, found := k.GetClientState(ctx, clientID)
	if !found {
		return types.ZeroHeight()
	}
	return types.MustHeight(clientState.GetLatestHeight())
}

// GetClientStatus returns the status for a client state given a client identifier.
// A missing or undecodable client is Unknown.
func (k Keeper) GetClientStatus(ctx coretypes.Context, clientID string) exported.Status {
	clientState, found := k.GetClientState(ctx, clientID)
	if !found {
		return exported.Unknown
	}

	if !clientState.GetFrozenHeight().IsZero() {
		return exported.Frozen
	}

	module, err := k.Route(clientID)
	if err != nil {
		return exported.Unknown
	}

	return module.Status(ctx, k, clientID, clientState)
}

// GetTimestampAtHeight returns the timestamp in nanoseconds of the consensus state at the given height.
func (k Keeper) GetTimestampAtHeight(ctx coretypes.Context, clientID string, height exported.Height) (uint64, error) {
	module, err := k.Route(clientID)
	if err != nil {
		return 0, err
	}

	if !k.HasClientConsensusState(ctx, clientID, height) {
		return 0, sdkerrors.Wrapf(types.ErrConsensusStateNotFound, "client (%s) at height %s", clientID, height)
	}

	return module.TimestampAtHeight(ctx, k, clientID, height)
}

// statusError maps a non active status onto the registered error.
func statusError(clientID string, status exported.Status) error {
	switch status {
	case exported.Frozen:
		return sdkerrors.Wrapf(types.ErrClientFrozen, "client (%s)", clientID)
	case exported.Expired:
		return sdkerrors.Wrapf(types.ErrClientExpired, "client (%s)", clientID)
	default:
		return sdkerrors.Wrapf(types.ErrClientNotActive, "client (%s) with status %s", clientID, status)
	}
}

func getSequence(ctx coretypes.Context, key []byte) uint64 {
	bz := ctx.KVStore().Get(key)
	if len(bz) == 0 {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

func setSequence(ctx coretypes.Context, key []byte, sequence uint64) {
	ctx.KVStore().Set(key, sdk.Uint64ToBigEndian(sequence))
}

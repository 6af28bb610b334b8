package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	"github.com/ComposableFi/ibc-core/modules/core/store"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// Keeper defines the IBC connection keeper
type Keeper struct {
	clientKeeper types.ClientKeeper
}

// NewKeeper creates a new IBC connection Keeper instance
func NewKeeper(ck types.ClientKeeper) *Keeper {
	return &Keeper{
		clientKeeper: ck,
	}
}

// Logger returns a module-specific logger.
func (Keeper) Logger(ctx coretypes.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName+"-"+types.SubModuleName)
}

// GetCommitmentPrefix returns the IBC connection store prefix as a commitment
// Prefix
func (Keeper) GetCommitmentPrefix() commitmenttypes.MerklePrefix {
	return commitmenttypes.NewMerklePrefix(store.IBCPrefix)
}

// GenerateConnectionIdentifier returns the next connection identifier.
func (k Keeper) GenerateConnectionIdentifier(ctx coretypes.Context) string {
	nextConnSeq := k.GetNextConnectionSequence(ctx)
	connectionID := types.FormatConnectionIdentifier(nextConnSeq)

	nextConnSeq++
	k.SetNextConnectionSequence(ctx, nextConnSeq)
	return connectionID
}

// GetConnection returns a connection with a particular identifier
func (k Keeper) GetConnection(ctx coretypes.Context, connectionID string) (types.ConnectionEnd, bool) {
	bz := ctx.KVStore().Get(host.ConnectionKey(connectionID))
	if len(bz) == 0 {
		return types.ConnectionEnd{}, false
	}

	connection, err := types.UnmarshalConnectionEnd(bz)
	if err != nil {
		panic(sdkerrors.Wrapf(err, "connection %s", connectionID))
	}

	return connection, true
}

// HasConnection returns a true if the connection with the given identifier
// exists in the store.
func (k Keeper) HasConnection(ctx coretypes.Context, connectionID string) bool {
	return ctx.KVStore().Has(host.ConnectionKey(connectionID))
}

// SetConnection sets a connection to the store
func (k Keeper) SetConnection(ctx coretypes.Context, connectionID string, connection types.ConnectionEnd) {
	ctx.KVStore().Set(host.ConnectionKey(connectionID), connection.Bytes())
}

// GetClientConnectionPaths returns all the connection paths stored under a
// particular client
func (k Keeper) GetClientConnectionPaths(ctx coretypes.Context, clientID string) ([]string, bool) {
	bz := ctx.KVStore().Get(host.ClientConnectionsKey(clientID))
	if len(bz) == 0 {
		return nil, false
	}

	var paths []string
	if err := rlp.DecodeBytes(bz, &paths); err != nil {
		panic(sdkerrors.Wrapf(err, "client %s connection paths", clientID))
	}
	return paths, true
}

// SetClientConnectionPaths sets the connections paths for client
func (k Keeper) SetClientConnectionPaths(ctx coretypes.Context, clientID string, paths []string) {
	bz, err := rlp.EncodeToBytes(paths)
	if err != nil {
		panic(err)
	}
	ctx.KVStore().Set(host.ClientConnectionsKey(clientID), bz)
}

// GetNextConnectionSequence gets the next connection sequence from the store.
func (k Keeper) GetNextConnectionSequence(ctx coretypes.Context) uint64 {
	bz := ctx.KVStore().Get(host.NextConnectionSequenceKey())
	if len(bz) == 0 {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

// SetNextConnectionSequence sets the next connection sequence to the store.
func (k Keeper) SetNextConnectionSequence(ctx coretypes.Context, sequence uint64) {
	ctx.KVStore().Set(host.NextConnectionSequenceKey(), sdk.Uint64ToBigEndian(sequence))
}

// addConnectionToClient is used to add a connection identifier to the set of
// connections associated with a client.
func (k Keeper) addConnectionToClient(ctx coretypes.Context, clientID, connectionID string) error {
	if _, found := k.clientKeeper.GetClientState(ctx, clientID); !found {
		return sdkerrors.Wrapf(types.ErrClientConnectionPathsNotFound, "client (%s) does not exist", clientID)
	}

	conns, _ := k.GetClientConnectionPaths(ctx, clientID)
	conns = append(conns, connectionID)
	k.SetClientConnectionPaths(ctx, clientID, conns)
	return nil
}

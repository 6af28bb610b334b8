package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	"github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	ibcerrors "github.com/ComposableFi/ibc-core/modules/core/errors"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// Keeper defines the IBC channel keeper
type Keeper struct {
	clientKeeper     types.ClientKeeper
	connectionKeeper types.ConnectionKeeper

	// authority is the address allowed to manage market makers
	authority string
}

// NewKeeper creates a new IBC channel Keeper instance
func NewKeeper(
	clientKeeper types.ClientKeeper,
	connectionKeeper types.ConnectionKeeper,
	authority string,
) *Keeper {
	return &Keeper{
		clientKeeper:     clientKeeper,
		connectionKeeper: connectionKeeper,
		authority:        authority,
	}
}

// Logger returns a module-specific logger.
func (Keeper) Logger(ctx coretypes.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName+"-"+types.SubModuleName)
}

// GetAuthority returns the address allowed to manage market makers.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// GenerateChannelIdentifier returns the next channel identifier.
func (k Keeper) GenerateChannelIdentifier(ctx coretypes.Context) string {
	nextChannelSeq := k.GetNextChannelSequence(ctx)
	channelID := types.FormatChannelIdentifier(nextChannelSeq)

	nextChannelSeq++
	k.SetNextChannelSequence(ctx, nextChannelSeq)
	return channelID
}

// HasChannel true if the channel with the given identifiers exists in state.
func (k Keeper) HasChannel(ctx coretypes.Context, portID, channelID string) bool {
	return ctx.KVStore().Has(host.ChannelKey(portID, channelID))
}

// GetChannel returns a channel with a particular identifier binded to a specific port
func (k Keeper) GetChannel(ctx coretypes.Context, portID, channelID string) (types.Channel, bool) {
	bz := ctx.KVStore().Get(host.ChannelKey(portID, channelID))
	if len(bz) == 0 {
		return types.Channel{}, false
	}

	channel, err := types.UnmarshalChannel(bz)
	if err != nil {
		panic(sdkerrors.Wrapf(err, "channel %s/%s", portID, channelID))
	}

	return channel, true
}

// SetChannel sets a channel to the store
func (k Keeper) SetChannel(ctx coretypes.Context, portID, channelID string, channel types.Channel) {
	ctx.KVStore().Set(host.ChannelKey(portID, channelID), channel.Bytes())
}

// GetNextChannelSequence gets the next channel sequence from the store.
func (k Keeper) GetNextChannelSequence(ctx coretypes.Context) uint64 {
	bz := ctx.KVStore().Get(host.NextChannelSequenceKey())
	if len(bz) == 0 {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

// SetNextChannelSequence sets the next channel sequence to the store.
func (k Keeper) SetNextChannelSequence(ctx coretypes.Context, sequence uint64) {
	ctx.KVStore().Set(host.NextChannelSequenceKey(), sdk.Uint64ToBigEndian(sequence))
}

// GetNextSequenceSend gets a channel's next send sequence from the store
func (k Keeper) GetNextSequenceSend(ctx coretypes.Context, portID, channelID string) (uint64, bool) {
	bz := ctx.KVStore().Get(host.NextSequenceSendKey(portID, channelID))
	if len(bz) == 0 {
		return 0, false
	}

	return sdk.BigEndianToUint64(bz), true
}

// SetNextSequenceSend sets a channel's next send sequence to the store
func (k Keeper) SetNextSequenceSend(ctx coretypes.Context, portID, channelID string, sequence uint64) {
	ctx.KVStore().Set(host.NextSequenceSendKey(portID, channelID), sdk.Uint64ToBigEndian(sequence))
}

// GetPacketReceipt gets a packet receipt from the store
func (k Keeper) GetPacketReceipt(ctx coretypes.Context, portID, channelID string, sequence uint64) (string, bool) {
	bz := ctx.KVStore().Get(host.PacketReceiptKey(portID, channelID, sequence))
	if len(bz) == 0 {
		return "", false
	}

	return string(bz), true
}

// HasPacketReceipt returns true if the packet receipt exists
func (k Keeper) HasPacketReceipt(ctx coretypes.Context, portID, channelID string, sequence uint64) bool {
	return ctx.KVStore().Has(host.PacketReceiptKey(portID, channelID, sequence))
}

// SetPacketReceipt sets an empty packet receipt to the store
func (k Keeper) SetPacketReceipt(ctx coretypes.Context, portID, channelID string, sequence uint64) {
	ctx.KVStore().Set(host.PacketReceiptKey(portID, channelID, sequence), types.PacketReceipt)
}

// GetPacketCommitment gets the packet commitment hash from the store
func (k Keeper) GetPacketCommitment(ctx coretypes.Context, portID, channelID string, sequence uint64) []byte {
	return ctx.KVStore().Get(host.PacketCommitmentKey(portID, channelID, sequence))
}

// HasPacketCommitment returns true if the packet commitment exists
func (k Keeper) HasPacketCommitment(ctx coretypes.Context, portID, channelID string, sequence uint64) bool {
	return ctx.KVStore().Has(host.PacketCommitmentKey(portID, channelID, sequence))
}

// SetPacketCommitment sets the packet commitment hash to the store
func (k Keeper) SetPacketCommitment(ctx coretypes.Context, portID, channelID string, sequence uint64, commitmentHash []byte) {
	ctx.KVStore().Set(host.PacketCommitmentKey(portID, channelID, sequence), commitmentHash)
}

func (k Keeper) deletePacketCommitment(ctx coretypes.Context, portID, channelID string, sequence uint64) {
	ctx.KVStore().Delete(host.PacketCommitmentKey(portID, channelID, sequence))
}

// SetPacketAcknowledgement sets the packet ack hash to the store
func (k Keeper) SetPacketAcknowledgement(ctx coretypes.Context, portID, channelID string, sequence uint64, ackHash []byte) {
	ctx.KVStore().Set(host.PacketAcknowledgementKey(portID, channelID, sequence), ackHash)
}

// GetPacketAcknowledgement gets the packet ack hash from the store
func (k Keeper) GetPacketAcknowledgement(ctx coretypes.Context, portID, channelID string, sequence uint64) ([]byte, bool) {
	bz := ctx.KVStore().Get(host.PacketAcknowledgementKey(portID, channelID, sequence))
	if len(bz) == 0 {
		return nil, false
	}
	return bz, true
}

// HasPacketAcknowledgement check if the packet ack hash is already on the store
func (k Keeper) HasPacketAcknowledgement(ctx coretypes.Context, portID, channelID string, sequence uint64) bool {
	return ctx.KVStore().Has(host.PacketAcknowledgementKey(portID, channelID, sequence))
}

// HasBatchPackets returns true if the packet batch was committed on the channel.
func (k Keeper) HasBatchPackets(ctx coretypes.Context, portID, channelID string, batchHash []byte) bool {
	return ctx.KVStore().Has(host.BatchPacketsKey(portID, channelID, batchHash))
}

// HasBatchReceipts returns true if the acknowledgement batch was committed on the channel.
func (k Keeper) HasBatchReceipts(ctx coretypes.Context, portID, channelID string, batchHash []byte) bool {
	return ctx.KVStore().Has(host.BatchReceiptsKey(portID, channelID, batchHash))
}

// IsMarketMaker returns true if the address may relay intent packets.
func (k Keeper) IsMarketMaker(ctx coretypes.Context, address string) bool {
	return address != "" && ctx.KVStore().Has(host.MarketMakerKey(address))
}

// SetMarketMaker registers address as an intent market maker. Only the
// authority may register market makers.
func (k Keeper) SetMarketMaker(ctx coretypes.Context, signer, address string) error {
	if err := k.checkAuthority(signer); err != nil {
		return err
	}
	if address == "" {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidAddress, "market maker address cannot be empty")
	}

	ctx.KVStore().Set(host.MarketMakerKey(address), []byte{1})
	k.Logger(ctx).Info("market maker registered", "address", address)
	return nil
}

// RemoveMarketMaker revokes the intent market maker role of address.
func (k Keeper) RemoveMarketMaker(ctx coretypes.Context, signer, address string) error {
	if err := k.checkAuthority(signer); err != nil {
		return err
	}
	if !k.IsMarketMaker(ctx, address) {
		return sdkerrors.Wrapf(ibcerrors.ErrNotFound, "market maker %s", address)
	}

	ctx.KVStore().Delete(host.MarketMakerKey(address))
	k.Logger(ctx).Info("market maker removed", "address", address)
	return nil
}

// GetAllMarketMakers returns every registered intent market maker in key order.
func (k Keeper) GetAllMarketMakers(ctx coretypes.Context) []string {
	prefix := []byte(host.KeyMarketMakerPrefix + "/")
	iterator := sdk.KVStorePrefixIterator(ctx.KVStore(), prefix)
	defer iterator.Close()

	var marketMakers []string
	for ; iterator.Valid(); iterator.Next() {
		marketMakers = append(marketMakers, string(iterator.Key()[len(prefix):]))
	}
	return marketMakers
}

func (k Keeper) checkAuthority(signer string) error {
	if k.authority == "" || signer != k.authority {
		return sdkerrors.Wrapf(ibcerrors.ErrUnauthorized, "expected %s, got %s", k.authority, signer)
	}
	return nil
}

// GetChannelConnection returns the connection ID and state associated with the given port and channel identifier.
func (k Keeper) GetChannelConnection(ctx coretypes.Context, portID, channelID string) (string, connectiontypes.ConnectionEnd, error) {
	channel, found := k.GetChannel(ctx, portID, channelID)
	if !found {
		return "", connectiontypes.ConnectionEnd{}, sdkerrors.Wrapf(types.ErrChannelNotFound, "port-id: %s, channel-id: %s", portID, channelID)
	}

	connectionID := channel.ConnectionHops[0]

	connection, found := k.connectionKeeper.GetConnection(ctx, connectionID)
	if !found {
		return "", connectiontypes.ConnectionEnd{}, sdkerrors.Wrapf(connectiontypes.ErrConnectionNotFound, "connection-id: %s", connectionID)
	}

	return connectionID, connection, nil
}

// GetChannelClientState returns the client state of the client the channel
// rides on.
func (k Keeper) GetChannelClientState(ctx coretypes.Context, portID, channelID string) (string, exported.ClientState, error) {
	_, connection, err := k.GetChannelConnection(ctx, portID, channelID)
	if err != nil {
		return "", nil, err
	}

	clientState, found := k.clientKeeper.GetClientState(ctx, connection.ClientId)
	if !found {
		return "", nil, sdkerrors.Wrapf(clienttypes.ErrClientNotFound, "client (%s)", connection.ClientId)
	}

	return connection.ClientId, clientState, nil
}

package keeper

import (
	"bytes"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	"github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	ibcerrors "github.com/ComposableFi/ibc-core/modules/core/errors"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// SendPacket is called by a module in order to send an IBC packet on a channel.
// The packet sequence generated for the packet to be sent is returned. An error
// is returned if one occurs.
func (k Keeper) SendPacket(
	ctx coretypes.Context,
	sourcePort string,
	sourceChannel string,
	timeoutHeight clienttypes.Height,
	timeoutTimestamp uint64,
	data []byte,
) (uint64, error) {
	channel, found := k.GetChannel(ctx, sourcePort, sourceChannel)
	if !found {
		return 0, sdkerrors.Wrapf(types.ErrChannelNotFound, "port ID (%s) channel ID (%s)", sourcePort, sourceChannel)
	}

	if channel.State != types.OPEN {
		return 0, sdkerrors.Wrapf(types.ErrInvalidChannelState, "channel is not OPEN (got %s)", channel.State)
	}

	sequence, found := k.GetNextSequenceSend(ctx, sourcePort, sourceChannel)
	if !found {
		return 0, sdkerrors.Wrapf(
			types.ErrSequenceSendNotFound,
			"source port: %s, source channel: %s", sourcePort, sourceChannel,
		)
	}

	// construct packet from given fields and channel state
	packet := types.NewPacket(data, sequence, sourcePort, sourceChannel,
		channel.Counterparty.PortId, channel.Counterparty.ChannelId, timeoutHeight, timeoutTimestamp)

	if err := packet.ValidateBasic(); err != nil {
		return 0, sdkerrors.Wrap(err, "constructed packet failed basic validation")
	}

	_, connectionEnd, err := k.GetChannelConnection(ctx, sourcePort, sourceChannel)
	if err != nil {
		return 0, err
	}

	// prevent accidental sends with clients that cannot be updated
	if status := k.clientKeeper.GetClientStatus(ctx, connectionEnd.ClientId); status != exported.Active {
		return 0, sdkerrors.Wrapf(clienttypes.ErrClientNotActive, "cannot send packet using client (%s) with status %s", connectionEnd.ClientId, status)
	}

	clientState, found := k.clientKeeper.GetClientState(ctx, connectionEnd.ClientId)
	if !found {
		return 0, sdkerrors.Wrapf(clienttypes.ErrClientNotFound, "client (%s)", connectionEnd.ClientId)
	}

	latestHeight := clientState.GetLatestHeight()
	latestTimestamp, err := k.clientKeeper.GetTimestampAtHeight(ctx, connectionEnd.ClientId, latestHeight)
	if err != nil {
		return 0, err
	}

	// check if packet is timed out on the receiving chain
	timeout := packet.GetTimeout()
	if timeout.Elapsed(clienttypes.MustHeight(latestHeight), latestTimestamp) {
		return 0, timeout.ErrTimeoutElapsed(clienttypes.MustHeight(latestHeight), latestTimestamp)
	}

	commitment := types.CommitPacket(packet)

	k.SetNextSequenceSend(ctx, sourcePort, sourceChannel, sequence+1)
	k.SetPacketCommitment(ctx, sourcePort, sourceChannel, packet.GetSequence(), commitment)

	emitSendPacketEvent(ctx, packet, channel, timeoutHeight)

	k.Logger(ctx).Info(
		"packet sent",
		"sequence", sequence,
		"src_port", sourcePort,
		"src_channel", sourceChannel,
		"dst_port", packet.GetDestPort(),
		"dst_channel", packet.GetDestChannel(),
	)

	return packet.GetSequence(), nil
}

// RecvPacket is called by a module in order to receive & process an IBC packet
// sent on the corresponding channel end on the counterparty chain. The packet
// commitment is proven against the counterparty and a receipt is written. The
// acknowledgement is written separately by WriteAcknowledgement once the
// application has processed the packet.
func (k Keeper) RecvPacket(
	ctx coretypes.Context,
	packet types.Packet,
	proof []byte,
	proofHeight exported.Height,
) error {
	return k.recvPacket(ctx, packet, "", func(connection connectiontypes.ConnectionEnd) error {
		commitment := types.CommitPacket(packet)

		// verify that the counterparty did commit to sending this packet
		if err := k.connectionKeeper.VerifyPacketCommitment(
			ctx, connection, proofHeight, proof,
			packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence(),
			commitment,
		); err != nil {
			return sdkerrors.Wrap(err, "couldn't verify counterparty packet commitment")
		}
		return nil
	})
}

// IntentRecvPacket receives a packet on behalf of a registered market maker
// without any proof of the counterparty commitment. The market maker fills
// the packet ahead of the relayed proof and is trusted to only do so for
// packets that were really sent.
func (k Keeper) IntentRecvPacket(
	ctx coretypes.Context,
	packet types.Packet,
	marketMaker string,
) error {
	if !k.IsMarketMaker(ctx, marketMaker) {
		return sdkerrors.Wrapf(ibcerrors.ErrOnlyMarketMaker, "address %s", marketMaker)
	}

	k.Logger(ctx).Info("intent packet fill", "sequence", packet.GetSequence(), "market_maker", marketMaker)

	return k.recvPacket(ctx, packet, marketMaker, func(connectiontypes.ConnectionEnd) error { return nil })
}

// recvPacket runs the receive checks shared by proven and intent receives.
// verify is called once the packet passed every local check. marketMaker is
// empty unless the packet is filled as an intent.
func (k Keeper) recvPacket(
	ctx coretypes.Context,
	packet types.Packet,
	marketMaker string,
	verify func(connection connectiontypes.ConnectionEnd) error,
) error {
	if err := packet.ValidateBasic(); err != nil {
		return sdkerrors.Wrap(types.ErrInvalidPacket, err.Error())
	}

	channel, found := k.GetChannel(ctx, packet.GetDestPort(), packet.GetDestChannel())
	if !found {
		return sdkerrors.Wrap(types.ErrChannelNotFound, packet.GetDestChannel())
	}

	if channel.State != types.OPEN {
		return sdkerrors.Wrapf(types.ErrInvalidChannelState, "channel state is not OPEN (got %s)", channel.State)
	}

	// packet must come from the channel's counterparty
	if packet.GetSourcePort() != channel.Counterparty.PortId {
		return sdkerrors.Wrapf(
			types.ErrInvalidPacket,
			"packet source port doesn't match the counterparty's port (%s ≠ %s)", packet.GetSourcePort(), channel.Counterparty.PortId,
		)
	}

	if packet.GetSourceChannel() != channel.Counterparty.ChannelId {
		return sdkerrors.Wrapf(
			types.ErrInvalidPacket,
			"packet source channel doesn't match the counterparty's channel (%s ≠ %s)", packet.GetSourceChannel(), channel.Counterparty.ChannelId,
		)
	}

	// Connection must be OPEN to receive a packet. It is possible for connection to not yet be open if packet was
	// sent optimistically before connection and channel handshake completed. However, to receive a packet,
	// connection and channel must both be open
	connectionEnd, found := k.connectionKeeper.GetConnection(ctx, channel.ConnectionHops[0])
	if !found {
		return sdkerrors.Wrap(connectiontypes.ErrConnectionNotFound, channel.ConnectionHops[0])
	}

	if connectionEnd.State != connectiontypes.OPEN {
		return sdkerrors.Wrapf(connectiontypes.ErrInvalidConnectionState, "connection state is not OPEN (got %s)", connectionEnd.State)
	}

	// check if packet timed out by comparing it with the latest height of the chain
	selfHeight, selfTimestamp := clienttypes.GetSelfHeight(ctx.ChainID(), ctx.BlockHeight()), uint64(ctx.BlockTime().UnixNano())
	timeout := packet.GetTimeout()
	if timeout.Elapsed(selfHeight, selfTimestamp) {
		return timeout.ErrTimeoutElapsed(selfHeight, selfTimestamp)
	}

	if err := verify(connectionEnd); err != nil {
		return err
	}

	// check if the packet receipt has been received already for unordered channels
	if k.HasPacketReceipt(ctx, packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence()) {
		return sdkerrors.Wrapf(types.ErrPacketReceived, "sequence %d", packet.GetSequence())
	}

	// All verification complete, write the receipt
	k.SetPacketReceipt(ctx, packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())

	k.Logger(ctx).Info(
		"packet received",
		"sequence", packet.GetSequence(),
		"src_port", packet.GetSourcePort(),
		"src_channel", packet.GetSourceChannel(),
		"dst_port", packet.GetDestPort(),
		"dst_channel", packet.GetDestChannel(),
	)

	emitRecvPacketEvent(ctx, packet, channel, marketMaker)

	return nil
}

// WriteAcknowledgement writes the packet execution acknowledgement to the state,
// which will be verified by the counterparty chain using AcknowledgePacket.
func (k Keeper) WriteAcknowledgement(
	ctx coretypes.Context,
	packet exported.PacketI,
	acknowledgement []byte,
) error {
	channel, found := k.GetChannel(ctx, packet.GetDestPort(), packet.GetDestChannel())
	if !found {
		return sdkerrors.Wrap(types.ErrChannelNotFound, packet.GetDestChannel())
	}

	if channel.State != types.OPEN {
		return sdkerrors.Wrapf(types.ErrInvalidChannelState, "channel state is not OPEN (got %s)", channel.State)
	}

	// NOTE: IBC app modules might have written the acknowledgement synchronously on
	// the OnRecvPacket callback so we need to check if the acknowledgement is already
	// set on the store and return an error if so.
	if k.HasPacketAcknowledgement(ctx, packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence()) {
		return types.ErrAcknowledgementExists
	}

	if len(acknowledgement) == 0 {
		return sdkerrors.Wrap(types.ErrInvalidAcknowledgement, "acknowledgement cannot be empty")
	}

	// set the acknowledgement so that it can be verified on the other side
	k.SetPacketAcknowledgement(
		ctx, packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence(),
		types.CommitAcknowledgement(acknowledgement),
	)

	k.Logger(ctx).Info(
		"acknowledgement written",
		"sequence", packet.GetSequence(),
		"src_port", packet.GetSourcePort(),
		"src_channel", packet.GetSourceChannel(),
		"dst_port", packet.GetDestPort(),
		"dst_channel", packet.GetDestChannel(),
	)

	emitWriteAcknowledgementEvent(ctx, packet, channel, acknowledgement)

	return nil
}

// AcknowledgePacket is called by a module to process the acknowledgement of a
// packet previously sent by the calling module on a channel to a counterparty
// module on the counterparty chain. Its intended usage is within the ante
// handler. AcknowledgePacket will clean up the packet commitment,
// which is no longer necessary since the packet has been received and acted upon.
func (k Keeper) AcknowledgePacket(
	ctx coretypes.Context,
	packet types.Packet,
	acknowledgement []byte,
	proof []byte,
	proofHeight exported.Height,
) error {
	return k.acknowledgePacket(ctx, packet, acknowledgement, func(connection connectiontypes.ConnectionEnd) error {
		if err := k.connectionKeeper.VerifyPacketAcknowledgement(
			ctx, connection, proofHeight, proof, packet.GetDestPort(), packet.GetDestChannel(),
			packet.GetSequence(), types.CommitAcknowledgement(acknowledgement),
		); err != nil {
			return sdkerrors.Wrap(err, "couldn't verify counterparty acknowledgement")
		}
		return nil
	})
}

func (k Keeper) acknowledgePacket(
	ctx coretypes.Context,
	packet types.Packet,
	acknowledgement []byte,
	verify func(connection connectiontypes.ConnectionEnd) error,
) error {
	channel, found := k.GetChannel(ctx, packet.GetSourcePort(), packet.GetSourceChannel())
	if !found {
		return sdkerrors.Wrapf(
			types.ErrChannelNotFound,
			"port ID (%s) channel ID (%s)", packet.GetSourcePort(), packet.GetSourceChannel(),
		)
	}

	if channel.State != types.OPEN {
		return sdkerrors.Wrapf(types.ErrInvalidChannelState, "channel state is not OPEN (got %s)", channel.State)
	}

	// packet must have been sent to the channel's counterparty
	if packet.GetDestPort() != channel.Counterparty.PortId {
		return sdkerrors.Wrapf(
			types.ErrInvalidPacket,
			"packet destination port doesn't match the counterparty's port (%s ≠ %s)", packet.GetDestPort(), channel.Counterparty.PortId,
		)
	}

	if packet.GetDestChannel() != channel.Counterparty.ChannelId {
		return sdkerrors.Wrapf(
			types.ErrInvalidPacket,
			"packet destination channel doesn't match the counterparty's channel (%s ≠ %s)", packet.GetDestChannel(), channel.Counterparty.ChannelId,
		)
	}

	connectionEnd, found := k.connectionKeeper.GetConnection(ctx, channel.ConnectionHops[0])
	if !found {
		return sdkerrors.Wrap(connectiontypes.ErrConnectionNotFound, channel.ConnectionHops[0])
	}

	if connectionEnd.State != connectiontypes.OPEN {
		return sdkerrors.Wrapf(connectiontypes.ErrInvalidConnectionState, "connection state is not OPEN (got %s)", connectionEnd.State)
	}

	commitment := k.GetPacketCommitment(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
	if len(commitment) == 0 {
		return sdkerrors.Wrapf(types.ErrPacketCommitmentNotFound, "sequence %d", packet.GetSequence())
	}

	packetCommitment := types.CommitPacket(packet)

	// verify we sent the packet and haven't cleared it out yet
	if !bytes.Equal(commitment, packetCommitment) {
		return sdkerrors.Wrapf(types.ErrInvalidPacket, "commitment bytes are not equal: got (%X), expected (%X)", packetCommitment, commitment)
	}

	if len(acknowledgement) == 0 {
		return sdkerrors.Wrap(types.ErrInvalidAcknowledgement, "acknowledgement cannot be empty")
	}

	if err := verify(connectionEnd); err != nil {
		return err
	}

	// Delete packet commitment, since the packet has been acknowledged, the commitement is no longer necessary
	k.deletePacketCommitment(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())

	k.Logger(ctx).Info(
		"packet acknowledged",
		"sequence", packet.GetSequence(),
		"src_port", packet.GetSourcePort(),
		"src_channel", packet.GetSourceChannel(),
		"dst_port", packet.GetDestPort(),
		"dst_channel", packet.GetDestChannel(),
	)

	emitAcknowledgePacketEvent(ctx, packet, channel)

	return nil
}

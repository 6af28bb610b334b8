package keeper

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/tendermint/tendermint/libs/log"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	porttypes "github.com/ComposableFi/ibc-core/modules/core/05-port/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	"github.com/ComposableFi/ibc-core/modules/core/internal/telemetry"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// Every handler executes inside a cached context: state and events reach the
// chain only when the whole message, application callbacks included,
// succeeds.

// Logger returns the logger of the message server.
func (*Keeper) Logger(ctx coretypes.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+exported.ModuleName)
}

// CreateClient defines a rpc handler method for MsgCreateClient.
func (k *Keeper) CreateClient(ctx coretypes.Context, msg *clienttypes.MsgCreateClient) (*clienttypes.MsgCreateClientResponse, error) {
	cacheCtx, writeFn := ctx.CacheContext()

	clientID, err := k.ClientKeeper.CreateClient(cacheCtx, msg.ClientType, msg.ClientState, msg.ConsensusState, msg.Signer, msg.Relayer)
	if err != nil {
		return nil, err
	}

	writeFn()

	return &clienttypes.MsgCreateClientResponse{ClientId: clientID}, nil
}

// BeginCreateClient defines a rpc handler method for MsgBeginCreateClient.
func (k *Keeper) BeginCreateClient(ctx coretypes.Context, msg *clienttypes.MsgBeginCreateClient) (*clienttypes.MsgBeginCreateClientResponse, error) {
	cacheCtx, writeFn := ctx.CacheContext()

	token, err := k.ClientKeeper.BeginCreateClient(cacheCtx, msg.ClientType, msg.ClientState, msg.ConsensusState, msg.Signer, msg.Relayer)
	if err != nil {
		return nil, err
	}

	writeFn()

	return &clienttypes.MsgBeginCreateClientResponse{Token: token}, nil
}

// CompleteCreateClient defines a rpc handler method for MsgCompleteCreateClient.
func (k *Keeper) CompleteCreateClient(ctx coretypes.Context, msg *clienttypes.MsgCompleteCreateClient) (*clienttypes.MsgCompleteCreateClientResponse, error) {
	cacheCtx, writeFn := ctx.CacheContext()

	clientID, err := k.ClientKeeper.CompleteCreateClient(cacheCtx, msg.Token, msg.ExternalAddress)
	if err != nil {
		return nil, err
	}

	writeFn()

	return &clienttypes.MsgCompleteCreateClientResponse{ClientId: clientID}, nil
}

// UpdateClient defines a rpc handler method for MsgUpdateClient.
func (k *Keeper) UpdateClient(ctx coretypes.Context, msg *clienttypes.MsgUpdateClient) (*clienttypes.MsgUpdateClientResponse, error) {
	module, err := k.ClientKeeper.Route(msg.ClientId)
	if err != nil {
		return nil, err
	}

	header, err := module.DecodeHeader(msg.ClientMessage)
	if err != nil {
		return nil, sdkerrors.Wrap(clienttypes.ErrInvalidHeader, err.Error())
	}

	cacheCtx, writeFn := ctx.CacheContext()
	if err := k.ClientKeeper.UpdateClient(cacheCtx, msg.ClientId, header, msg.Signer, msg.Relayer); err != nil {
		return nil, err
	}

	writeFn()

	return &clienttypes.MsgUpdateClientResponse{}, nil
}

// SubmitMisbehaviour defines a rpc handler method for MsgSubmitMisbehaviour.
func (k *Keeper) SubmitMisbehaviour(ctx coretypes.Context, msg *clienttypes.MsgSubmitMisbehaviour) (*clienttypes.MsgSubmitMisbehaviourResponse, error) {
	module, err := k.ClientKeeper.Route(msg.ClientId)
	if err != nil {
		return nil, err
	}

	misbehaviour, err := module.DecodeMisbehaviour(msg.Misbehaviour)
	if err != nil {
		return nil, sdkerrors.Wrap(clienttypes.ErrInvalidMisbehaviour, err.Error())
	}

	cacheCtx, writeFn := ctx.CacheContext()
	if err := k.ClientKeeper.SubmitMisbehaviour(cacheCtx, msg.ClientId, misbehaviour, msg.Signer, msg.Relayer); err != nil {
		return nil, err
	}

	writeFn()

	return &clienttypes.MsgSubmitMisbehaviourResponse{}, nil
}

// ConnectionOpenInit defines a rpc handler method for MsgConnectionOpenInit.
func (k *Keeper) ConnectionOpenInit(ctx coretypes.Context, msg *connectiontypes.MsgConnectionOpenInit) (*connectiontypes.MsgConnectionOpenInitResponse, error) {
	cacheCtx, writeFn := ctx.CacheContext()

	connectionID, err := k.ConnectionKeeper.ConnOpenInit(cacheCtx, msg.ClientId, msg.Counterparty, msg.Version, msg.DelayPeriod)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "connection handshake open init failed")
	}

	writeFn()

	return &connectiontypes.MsgConnectionOpenInitResponse{ConnectionId: connectionID}, nil
}

// ConnectionOpenTry defines a rpc handler method for MsgConnectionOpenTry.
func (k *Keeper) ConnectionOpenTry(ctx coretypes.Context, msg *connectiontypes.MsgConnectionOpenTry) (*connectiontypes.MsgConnectionOpenTryResponse, error) {
	cacheCtx, writeFn := ctx.CacheContext()

	connectionID, err := k.ConnectionKeeper.ConnOpenTry(
		cacheCtx, msg.Counterparty, msg.DelayPeriod, msg.ClientId,
		msg.CounterpartyVersions, msg.ProofInit, msg.ProofHeight,
	)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "connection handshake open try failed")
	}

	writeFn()

	return &connectiontypes.MsgConnectionOpenTryResponse{ConnectionId: connectionID}, nil
}

// ConnectionOpenAck defines a rpc handler method for MsgConnectionOpenAck.
func (k *Keeper) ConnectionOpenAck(ctx coretypes.Context, msg *connectiontypes.MsgConnectionOpenAck) (*connectiontypes.MsgConnectionOpenAckResponse, error) {
	cacheCtx, writeFn := ctx.CacheContext()

	if err := k.ConnectionKeeper.ConnOpenAck(
		cacheCtx, msg.ConnectionId, msg.Version, msg.CounterpartyConnectionId,
		msg.ProofTry, msg.ProofHeight,
	); err != nil {
		return nil, sdkerrors.Wrap(err, "connection handshake open ack failed")
	}

	writeFn()

	return &connectiontypes.MsgConnectionOpenAckResponse{}, nil
}

// ConnectionOpenConfirm defines a rpc handler method for MsgConnectionOpenConfirm.
func (k *Keeper) ConnectionOpenConfirm(ctx coretypes.Context, msg *connectiontypes.MsgConnectionOpenConfirm) (*connectiontypes.MsgConnectionOpenConfirmResponse, error) {
	cacheCtx, writeFn := ctx.CacheContext()

	if err := k.ConnectionKeeper.ConnOpenConfirm(cacheCtx, msg.ConnectionId, msg.ProofAck, msg.ProofHeight); err != nil {
		return nil, sdkerrors.Wrap(err, "connection handshake open confirm failed")
	}

	writeFn()

	return &connectiontypes.MsgConnectionOpenConfirmResponse{}, nil
}

// ChannelOpenInit defines a rpc handler method for MsgChannelOpenInit.
// ChannelOpenInit will perform 04-channel checks, route to the application
// callback, and write an OpenInit channel into state upon successful execution.
func (k *Keeper) ChannelOpenInit(ctx coretypes.Context, msg *channeltypes.MsgChannelOpenInit) (*channeltypes.MsgChannelOpenInitResponse, error) {
	cbs, err := k.route(msg.PortId)
	if err != nil {
		k.Logger(ctx).Error("channel open init failed", "port-id", msg.PortId, "error", sdkerrors.Wrap(err, "could not retrieve module from port-id"))
		return nil, sdkerrors.Wrap(err, "could not retrieve module from port-id")
	}

	cacheCtx, writeFn := ctx.CacheContext()

	// Perform 04-channel verification
	channelID, err := k.ChannelKeeper.ChanOpenInit(
		cacheCtx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId,
		msg.Channel.Counterparty, msg.Channel.Version,
	)
	if err != nil {
		k.Logger(ctx).Error("channel open init failed", "error", sdkerrors.Wrap(err, "channel handshake open init failed"))
		return nil, sdkerrors.Wrap(err, "channel handshake open init failed")
	}

	// Perform application logic callback
	version, err := cbs.OnChanOpenInit(
		cacheCtx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId,
		channelID, msg.Channel.Counterparty, msg.Channel.Version,
	)
	if err != nil {
		k.Logger(ctx).Error("channel open init failed", "port-id", msg.PortId, "channel-id", channelID, "error", err.Error())
		return nil, sdkerrors.Wrapf(err, "channel open init callback failed for port ID: %s, channel ID: %s", msg.PortId, channelID)
	}

	// Write channel into state
	k.ChannelKeeper.WriteOpenInitChannel(
		cacheCtx, msg.PortId, channelID, msg.Channel.Ordering, msg.Channel.ConnectionHops,
		msg.Channel.Counterparty, version,
	)

	writeFn()

	k.Logger(ctx).Info("channel open init succeeded", "channel-id", channelID, "version", version)

	return &channeltypes.MsgChannelOpenInitResponse{
		ChannelId: channelID,
		Version:   version,
	}, nil
}

// ChannelOpenTry defines a rpc handler method for MsgChannelOpenTry.
// ChannelOpenTry will perform 04-channel checks, route to the application
// callback, and write an OpenTry channel into state upon successful execution.
func (k *Keeper) ChannelOpenTry(ctx coretypes.Context, msg *channeltypes.MsgChannelOpenTry) (*channeltypes.MsgChannelOpenTryResponse, error) {
	cbs, err := k.route(msg.PortId)
	if err != nil {
		k.Logger(ctx).Error("channel open try failed", "port-id", msg.PortId, "error", sdkerrors.Wrap(err, "could not retrieve module from port-id"))
		return nil, sdkerrors.Wrap(err, "could not retrieve module from port-id")
	}

	cacheCtx, writeFn := ctx.CacheContext()

	// Perform 04-channel verification
	channelID, err := k.ChannelKeeper.ChanOpenTry(
		cacheCtx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId,
		msg.Channel.Counterparty, msg.CounterpartyVersion, msg.ProofInit, msg.ProofHeight,
	)
	if err != nil {
		k.Logger(ctx).Error("channel open try failed", "error", sdkerrors.Wrap(err, "channel handshake open try failed"))
		return nil, sdkerrors.Wrap(err, "channel handshake open try failed")
	}

	// Perform application logic callback
	version, err := cbs.OnChanOpenTry(
		cacheCtx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId,
		channelID, msg.Channel.Counterparty, msg.CounterpartyVersion,
	)
	if err != nil {
		k.Logger(ctx).Error("channel open try failed", "port-id", msg.PortId, "channel-id", channelID, "error", err.Error())
		return nil, sdkerrors.Wrapf(err, "channel open try callback failed for port ID: %s, channel ID: %s", msg.PortId, channelID)
	}

	// Write channel into state
	k.ChannelKeeper.WriteOpenTryChannel(
		cacheCtx, msg.PortId, channelID, msg.Channel.Ordering, msg.Channel.ConnectionHops,
		msg.Channel.Counterparty, version,
	)

	writeFn()

	k.Logger(ctx).Info("channel open try succeeded", "channel-id", channelID, "port-id", msg.PortId, "version", version)

	return &channeltypes.MsgChannelOpenTryResponse{
		ChannelId: channelID,
		Version:   version,
	}, nil
}

// ChannelOpenAck defines a rpc handler method for MsgChannelOpenAck.
// ChannelOpenAck will perform 04-channel checks, route to the application
// callback, and write an OpenAck channel into state upon successful execution.
func (k *Keeper) ChannelOpenAck(ctx coretypes.Context, msg *channeltypes.MsgChannelOpenAck) (*channeltypes.MsgChannelOpenAckResponse, error) {
	cbs, err := k.route(msg.PortId)
	if err != nil {
		k.Logger(ctx).Error("channel open ack failed", "port-id", msg.PortId, "error", sdkerrors.Wrap(err, "could not retrieve module from port-id"))
		return nil, sdkerrors.Wrap(err, "could not retrieve module from port-id")
	}

	cacheCtx, writeFn := ctx.CacheContext()

	// Perform 04-channel verification
	if err := k.ChannelKeeper.ChanOpenAck(
		cacheCtx, msg.PortId, msg.ChannelId, msg.CounterpartyVersion,
		msg.CounterpartyChannelId, msg.ProofTry, msg.ProofHeight,
	); err != nil {
		k.Logger(ctx).Error("channel open ack failed", "error", err.Error())
		return nil, sdkerrors.Wrap(err, "channel handshake open ack failed")
	}

	// Perform application logic callback
	if err := cbs.OnChanOpenAck(cacheCtx, msg.PortId, msg.ChannelId, msg.CounterpartyChannelId, msg.CounterpartyVersion); err != nil {
		k.Logger(ctx).Error("channel open ack failed", "port-id", msg.PortId, "channel-id", msg.ChannelId, "error", err.Error())
		return nil, sdkerrors.Wrapf(err, "channel open ack callback failed for port ID: %s, channel ID: %s", msg.PortId, msg.ChannelId)
	}

	// Write channel into state
	k.ChannelKeeper.WriteOpenAckChannel(cacheCtx, msg.PortId, msg.ChannelId, msg.CounterpartyChannelId)

	writeFn()

	k.Logger(ctx).Info("channel open ack succeeded", "channel-id", msg.ChannelId, "port-id", msg.PortId)

	return &channeltypes.MsgChannelOpenAckResponse{}, nil
}

// ChannelOpenConfirm defines a rpc handler method for MsgChannelOpenConfirm.
// ChannelOpenConfirm will perform 04-channel checks, route to the application
// callback, and write an OpenConfirm channel into state upon successful execution.
func (k *Keeper) ChannelOpenConfirm(ctx coretypes.Context, msg *channeltypes.MsgChannelOpenConfirm) (*channeltypes.MsgChannelOpenConfirmResponse, error) {
	cbs, err := k.route(msg.PortId)
	if err != nil {
		k.Logger(ctx).Error("channel open confirm failed", "port-id", msg.PortId, "error", sdkerrors.Wrap(err, "could not retrieve module from port-id"))
		return nil, sdkerrors.Wrap(err, "could not retrieve module from port-id")
	}

	cacheCtx, writeFn := ctx.CacheContext()

	// Perform 04-channel verification
	if err := k.ChannelKeeper.ChanOpenConfirm(cacheCtx, msg.PortId, msg.ChannelId, msg.ProofAck, msg.ProofHeight); err != nil {
		k.Logger(ctx).Error("channel open confirm failed", "error", err.Error())
		return nil, sdkerrors.Wrap(err, "channel handshake open confirm failed")
	}

	// Perform application logic callback
	if err := cbs.OnChanOpenConfirm(cacheCtx, msg.PortId, msg.ChannelId); err != nil {
		k.Logger(ctx).Error("channel open confirm failed", "port-id", msg.PortId, "channel-id", msg.ChannelId, "error", err.Error())
		return nil, sdkerrors.Wrapf(err, "channel open confirm callback failed for port ID: %s, channel ID: %s", msg.PortId, msg.ChannelId)
	}

	// Write channel into state
	k.ChannelKeeper.WriteOpenConfirmChannel(cacheCtx, msg.PortId, msg.ChannelId)

	writeFn()

	k.Logger(ctx).Info("channel open confirm succeeded", "channel-id", msg.ChannelId, "port-id", msg.PortId)

	return &channeltypes.MsgChannelOpenConfirmResponse{}, nil
}

// ChannelCloseInit defines a rpc handler method for MsgChannelCloseInit.
func (k *Keeper) ChannelCloseInit(ctx coretypes.Context, msg *channeltypes.MsgChannelCloseInit) (*channeltypes.MsgChannelCloseInitResponse, error) {
	cbs, err := k.route(msg.PortId)
	if err != nil {
		k.Logger(ctx).Error("channel close init failed", "port-id", msg.PortId, "error", sdkerrors.Wrap(err, "could not retrieve module from port-id"))
		return nil, sdkerrors.Wrap(err, "could not retrieve module from port-id")
	}

	cacheCtx, writeFn := ctx.CacheContext()

	if err := cbs.OnChanCloseInit(cacheCtx, msg.PortId, msg.ChannelId); err != nil {
		k.Logger(ctx).Error("channel close init failed", "port-id", msg.PortId, "channel-id", msg.ChannelId, "error", err.Error())
		return nil, sdkerrors.Wrapf(err, "channel close init callback failed for port ID: %s, channel ID: %s", msg.PortId, msg.ChannelId)
	}

	if err := k.ChannelKeeper.ChanCloseInit(cacheCtx, msg.PortId, msg.ChannelId); err != nil {
		k.Logger(ctx).Error("channel close init failed", "port-id", msg.PortId, "channel-id", msg.ChannelId, "error", err.Error())
		return nil, sdkerrors.Wrap(err, "channel handshake close init failed")
	}

	writeFn()

	k.Logger(ctx).Info("channel close init succeeded", "channel-id", msg.ChannelId, "port-id", msg.PortId)

	return &channeltypes.MsgChannelCloseInitResponse{}, nil
}

// ChannelCloseConfirm defines a rpc handler method for MsgChannelCloseConfirm.
func (k *Keeper) ChannelCloseConfirm(ctx coretypes.Context, msg *channeltypes.MsgChannelCloseConfirm) (*channeltypes.MsgChannelCloseConfirmResponse, error) {
	cbs, err := k.route(msg.PortId)
	if err != nil {
		k.Logger(ctx).Error("channel close confirm failed", "port-id", msg.PortId, "error", sdkerrors.Wrap(err, "could not retrieve module from port-id"))
		return nil, sdkerrors.Wrap(err, "could not retrieve module from port-id")
	}

	cacheCtx, writeFn := ctx.CacheContext()

	if err := cbs.OnChanCloseConfirm(cacheCtx, msg.PortId, msg.ChannelId); err != nil {
		k.Logger(ctx).Error("channel close confirm failed", "port-id", msg.PortId, "channel-id", msg.ChannelId, "error", err.Error())
		return nil, sdkerrors.Wrapf(err, "channel close confirm callback failed for port ID: %s, channel ID: %s", msg.PortId, msg.ChannelId)
	}

	if err := k.ChannelKeeper.ChanCloseConfirm(cacheCtx, msg.PortId, msg.ChannelId, msg.ProofInit, msg.ProofHeight); err != nil {
		k.Logger(ctx).Error("channel close confirm failed", "port-id", msg.PortId, "channel-id", msg.ChannelId, "error", err.Error())
		return nil, sdkerrors.Wrap(err, "channel handshake close confirm failed")
	}

	writeFn()

	k.Logger(ctx).Info("channel close confirm succeeded", "channel-id", msg.ChannelId, "port-id", msg.PortId)

	return &channeltypes.MsgChannelCloseConfirmResponse{}, nil
}

// SendPacket defines a rpc handler method for MsgSendPacket. The source port
// must be bound to an application.
func (k *Keeper) SendPacket(ctx coretypes.Context, msg *channeltypes.MsgSendPacket) (*channeltypes.MsgSendPacketResponse, error) {
	if _, err := k.route(msg.SourcePort); err != nil {
		k.Logger(ctx).Error("send packet failed", "port-id", msg.SourcePort, "error", sdkerrors.Wrap(err, "could not retrieve module from port-id"))
		return nil, sdkerrors.Wrap(err, "could not retrieve module from port-id")
	}

	cacheCtx, writeFn := ctx.CacheContext()

	sequence, err := k.ChannelKeeper.SendPacket(cacheCtx, msg.SourcePort, msg.SourceChannel, msg.TimeoutHeight, msg.TimeoutTimestamp, msg.Data)
	if err != nil {
		k.Logger(ctx).Error("send packet failed", "port-id", msg.SourcePort, "channel-id", msg.SourceChannel, "error", err.Error())
		return nil, sdkerrors.Wrap(err, "send packet failed")
	}

	writeFn()

	telemetry.ReportSendPacket(channeltypes.Packet{SourcePort: msg.SourcePort, SourceChannel: msg.SourceChannel})

	return &channeltypes.MsgSendPacketResponse{Sequence: sequence}, nil
}

// RecvPacket defines a rpc handler method for MsgRecvPacket.
func (k *Keeper) RecvPacket(ctx coretypes.Context, msg *channeltypes.MsgRecvPacket) (*channeltypes.MsgRecvPacketResponse, error) {
	cbs, err := k.route(msg.Packet.DestinationPort)
	if err != nil {
		k.Logger(ctx).Error("receive packet failed", "port-id", msg.Packet.DestinationPort, "error", sdkerrors.Wrap(err, "could not retrieve module from port-id"))
		return nil, sdkerrors.Wrap(err, "could not retrieve module from port-id")
	}

	cacheCtx, writeFn := ctx.CacheContext()

	// Perform TAO verification
	if err := k.ChannelKeeper.RecvPacket(cacheCtx, msg.Packet, msg.ProofCommitment, msg.ProofHeight); err != nil {
		k.Logger(ctx).Error("receive packet failed", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "error", sdkerrors.Wrap(err, "receive packet verification failed"))
		return nil, sdkerrors.Wrap(err, "receive packet verification failed")
	}

	ack, err := k.onRecvPacket(ctx, cacheCtx, msg.Packet, func(cacheCtx coretypes.Context) ([]byte, error) {
		return cbs.OnRecvPacket(cacheCtx, msg.Packet, msg.Signer)
	})
	if err != nil {
		return nil, err
	}

	writeFn()

	defer telemetry.ReportRecvPacket(msg.Packet)

	k.Logger(ctx).Info("receive packet callback succeeded", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "result", channeltypes.SUCCESS)

	return &channeltypes.MsgRecvPacketResponse{Result: channeltypes.SUCCESS, Acknowledgement: ack}, nil
}

// IntentRecvPacket defines a rpc handler method for MsgIntentRecvPacket. The
// packet is filled by a registered market maker without a proof of the
// counterparty commitment.
func (k *Keeper) IntentRecvPacket(ctx coretypes.Context, msg *channeltypes.MsgIntentRecvPacket) (*channeltypes.MsgIntentRecvPacketResponse, error) {
	cbs, err := k.route(msg.Packet.DestinationPort)
	if err != nil {
		k.Logger(ctx).Error("intent receive packet failed", "port-id", msg.Packet.DestinationPort, "error", sdkerrors.Wrap(err, "could not retrieve module from port-id"))
		return nil, sdkerrors.Wrap(err, "could not retrieve module from port-id")
	}

	cacheCtx, writeFn := ctx.CacheContext()

	if err := k.ChannelKeeper.IntentRecvPacket(cacheCtx, msg.Packet, msg.MarketMaker); err != nil {
		k.Logger(ctx).Error("intent receive packet failed", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "market-maker", msg.MarketMaker, "error", err.Error())
		return nil, sdkerrors.Wrap(err, "intent receive packet failed")
	}

	ack, err := k.onRecvPacket(ctx, cacheCtx, msg.Packet, func(cacheCtx coretypes.Context) ([]byte, error) {
		return cbs.OnIntentRecvPacket(cacheCtx, msg.Packet, msg.MarketMaker)
	})
	if err != nil {
		return nil, err
	}

	writeFn()

	defer telemetry.ReportIntentRecvPacket(msg.Packet, msg.MarketMaker)

	k.Logger(ctx).Info("intent receive packet callback succeeded", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "market-maker", msg.MarketMaker)

	return &channeltypes.MsgIntentRecvPacketResponse{Result: channeltypes.SUCCESS, Acknowledgement: ack}, nil
}

// RecvPackets defines a rpc handler method for MsgRecvPackets. Every packet is
// delivered to its application; the acknowledgements are returned in packet
// order.
func (k *Keeper) RecvPackets(ctx coretypes.Context, msg *channeltypes.MsgRecvPackets) (*channeltypes.MsgRecvPacketsResponse, error) {
	if len(msg.Packets) == 0 {
		return nil, sdkerrors.Wrap(channeltypes.ErrInvalidBatch, "batch cannot be empty")
	}

	cbs, err := k.route(msg.Packets[0].DestinationPort)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "could not retrieve module from port-id")
	}

	cacheCtx, writeFn := ctx.CacheContext()

	if err := k.ChannelKeeper.RecvPackets(cacheCtx, msg.Packets, msg.Proof, msg.ProofHeight); err != nil {
		k.Logger(ctx).Error("receive packets failed", "count", len(msg.Packets), "error", err.Error())
		return nil, sdkerrors.Wrap(err, "receive packets verification failed")
	}

	acks := make([][]byte, len(msg.Packets))
	for i, packet := range msg.Packets {
		packet := packet
		ack, err := k.onRecvPacket(ctx, cacheCtx, packet, func(cacheCtx coretypes.Context) ([]byte, error) {
			return cbs.OnRecvPacket(cacheCtx, packet, msg.Signer)
		})
		if err != nil {
			return nil, err
		}
		acks[i] = ack
	}

	writeFn()

	for _, packet := range msg.Packets {
		telemetry.ReportRecvPacket(packet)
	}
	telemetry.ReportBatch("recv", len(msg.Packets))

	return &channeltypes.MsgRecvPacketsResponse{Acknowledgements: acks}, nil
}

// Acknowledgement defines a rpc handler method for MsgAcknowledgement.
func (k *Keeper) Acknowledgement(ctx coretypes.Context, msg *channeltypes.MsgAcknowledgement) (*channeltypes.MsgAcknowledgementResponse, error) {
	cbs, err := k.route(msg.Packet.SourcePort)
	if err != nil {
		k.Logger(ctx).Error("acknowledgement failed", "port-id", msg.Packet.SourcePort, "error", sdkerrors.Wrap(err, "could not retrieve module from port-id"))
		return nil, sdkerrors.Wrap(err, "could not retrieve module from port-id")
	}

	cacheCtx, writeFn := ctx.CacheContext()

	// Perform TAO verification
	if err := k.ChannelKeeper.AcknowledgePacket(cacheCtx, msg.Packet, msg.Acknowledgement, msg.ProofAcked, msg.ProofHeight); err != nil {
		k.Logger(ctx).Error("acknowledgement failed", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "error", sdkerrors.Wrap(err, "acknowledge packet verification failed"))
		return nil, sdkerrors.Wrap(err, "acknowledge packet verification failed")
	}

	// Perform application logic callback
	if err := cbs.OnAcknowledgementPacket(cacheCtx, msg.Packet, msg.Acknowledgement, msg.Signer); err != nil {
		k.Logger(ctx).Error("acknowledgement failed", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "error", sdkerrors.Wrap(err, "acknowledge packet callback failed"))
		return nil, sdkerrors.Wrap(err, "acknowledge packet callback failed")
	}

	writeFn()

	defer telemetry.ReportAcknowledgePacket(msg.Packet)

	k.Logger(ctx).Info("acknowledgement succeeded", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "result", channeltypes.SUCCESS)

	return &channeltypes.MsgAcknowledgementResponse{Result: channeltypes.SUCCESS}, nil
}

// Acknowledgements defines a rpc handler method for MsgAcknowledgements.
func (k *Keeper) Acknowledgements(ctx coretypes.Context, msg *channeltypes.MsgAcknowledgements) (*channeltypes.MsgAcknowledgementsResponse, error) {
	if len(msg.Packets) == 0 {
		return nil, sdkerrors.Wrap(channeltypes.ErrInvalidBatch, "batch cannot be empty")
	}

	cbs, err := k.route(msg.Packets[0].SourcePort)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "could not retrieve module from port-id")
	}

	cacheCtx, writeFn := ctx.CacheContext()

	if err := k.ChannelKeeper.AcknowledgePackets(cacheCtx, msg.Packets, msg.Acknowledgements, msg.Proof, msg.ProofHeight); err != nil {
		k.Logger(ctx).Error("acknowledgements failed", "count", len(msg.Packets), "error", err.Error())
		return nil, sdkerrors.Wrap(err, "acknowledge packets verification failed")
	}

	for i, packet := range msg.Packets {
		if err := cbs.OnAcknowledgementPacket(cacheCtx, packet, msg.Acknowledgements[i], msg.Signer); err != nil {
			return nil, sdkerrors.Wrapf(err, "acknowledge packet callback failed for sequence %d", packet.Sequence)
		}
	}

	writeFn()

	for _, packet := range msg.Packets {
		telemetry.ReportAcknowledgePacket(packet)
	}
	telemetry.ReportBatch("ack", len(msg.Packets))

	return &channeltypes.MsgAcknowledgementsResponse{}, nil
}

// Timeout defines a rpc handler method for MsgTimeout.
func (k *Keeper) Timeout(ctx coretypes.Context, msg *channeltypes.MsgTimeout) (*channeltypes.MsgTimeoutResponse, error) {
	cbs, err := k.route(msg.Packet.SourcePort)
	if err != nil {
		k.Logger(ctx).Error("timeout failed", "port-id", msg.Packet.SourcePort, "error", sdkerrors.Wrap(err, "could not retrieve module from port-id"))
		return nil, sdkerrors.Wrap(err, "could not retrieve module from port-id")
	}

	cacheCtx, writeFn := ctx.CacheContext()

	// Perform TAO verification
	if err := k.ChannelKeeper.TimeoutPacket(cacheCtx, msg.Packet, msg.ProofUnreceived, msg.ProofHeight); err != nil {
		k.Logger(ctx).Error("timeout failed", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "error", sdkerrors.Wrap(err, "timeout packet verification failed"))
		return nil, sdkerrors.Wrap(err, "timeout packet verification failed")
	}

	// Perform application logic callback
	if err := cbs.OnTimeoutPacket(cacheCtx, msg.Packet, msg.Signer); err != nil {
		k.Logger(ctx).Error("timeout failed", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "error", sdkerrors.Wrap(err, "timeout packet callback failed"))
		return nil, sdkerrors.Wrap(err, "timeout packet callback failed")
	}

	writeFn()

	timeoutType := telemetry.TimeoutTypeTimestamp
	if !msg.Packet.TimeoutHeight.IsZero() && msg.ProofHeight.GTE(msg.Packet.TimeoutHeight) {
		timeoutType = telemetry.TimeoutTypeHeight
	}
	defer telemetry.ReportTimeoutPacket(msg.Packet, timeoutType)

	k.Logger(ctx).Info("timeout packet callback succeeded", "port-id", msg.Packet.SourcePort, "channel-id", msg.Packet.SourceChannel, "result", channeltypes.SUCCESS)

	return &channeltypes.MsgTimeoutResponse{Result: channeltypes.SUCCESS}, nil
}

// BatchSend defines a rpc handler method for MsgBatchSend.
func (k *Keeper) BatchSend(ctx coretypes.Context, msg *channeltypes.MsgBatchSend) (*channeltypes.MsgBatchSendResponse, error) {
	cacheCtx, writeFn := ctx.CacheContext()

	batchHash, err := k.ChannelKeeper.BatchSend(cacheCtx, msg.Packets)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "batch send failed")
	}

	writeFn()

	telemetry.ReportBatch("send", len(msg.Packets))

	return &channeltypes.MsgBatchSendResponse{BatchHash: batchHash}, nil
}

// BatchAcks defines a rpc handler method for MsgBatchAcks.
func (k *Keeper) BatchAcks(ctx coretypes.Context, msg *channeltypes.MsgBatchAcks) (*channeltypes.MsgBatchAcksResponse, error) {
	cacheCtx, writeFn := ctx.CacheContext()

	batchHash, err := k.ChannelKeeper.BatchAcks(cacheCtx, msg.Packets, msg.Acknowledgements)
	if err != nil {
		return nil, sdkerrors.Wrap(err, "batch acks failed")
	}

	writeFn()

	telemetry.ReportBatch("acks", len(msg.Packets))

	return &channeltypes.MsgBatchAcksResponse{BatchHash: batchHash}, nil
}

// SetMarketMaker defines a rpc handler method for MsgSetMarketMaker.
func (k *Keeper) SetMarketMaker(ctx coretypes.Context, msg *channeltypes.MsgSetMarketMaker) (*channeltypes.MsgMarketMakerResponse, error) {
	if err := k.ChannelKeeper.SetMarketMaker(ctx, msg.Authority, msg.MarketMaker); err != nil {
		return nil, err
	}

	k.Logger(ctx).Info("market maker registered", "address", msg.MarketMaker)

	return &channeltypes.MsgMarketMakerResponse{}, nil
}

// RemoveMarketMaker defines a rpc handler method for MsgRemoveMarketMaker.
func (k *Keeper) RemoveMarketMaker(ctx coretypes.Context, msg *channeltypes.MsgRemoveMarketMaker) (*channeltypes.MsgMarketMakerResponse, error) {
	if err := k.ChannelKeeper.RemoveMarketMaker(ctx, msg.Authority, msg.MarketMaker); err != nil {
		return nil, err
	}

	k.Logger(ctx).Info("market maker removed", "address", msg.MarketMaker)

	return &channeltypes.MsgMarketMakerResponse{}, nil
}

// onRecvPacket runs the receive callback in its own branch of cacheCtx and
// writes the acknowledgement it returns. A failing callback aborts the
// message; its events are surfaced on ctx as error events.
func (k *Keeper) onRecvPacket(
	ctx, cacheCtx coretypes.Context,
	packet channeltypes.Packet,
	callback func(coretypes.Context) ([]byte, error),
) ([]byte, error) {
	callbackCtx, writeCallback := cacheCtx.CacheContext()

	ack, err := callback(callbackCtx)
	if err != nil {
		ctx.EventManager().EmitEvents(coretypes.ConvertToErrorEvents(callbackCtx.EventManager().Events()))
		k.Logger(ctx).Error("receive packet failed", "port-id", packet.DestinationPort, "channel-id", packet.DestinationChannel, "sequence", packet.Sequence, "error", err.Error())
		return nil, sdkerrors.Wrapf(err, "receive packet callback failed for sequence %d", packet.Sequence)
	}

	writeCallback()

	if err := k.ChannelKeeper.WriteAcknowledgement(cacheCtx, packet, ack); err != nil {
		return nil, err
	}

	return ack, nil
}

func (k *Keeper) route(portID string) (porttypes.IBCModule, error) {
	if k.Router == nil {
		return nil, sdkerrors.Wrap(porttypes.ErrInvalidRoute, "port router not set")
	}
	return k.Router.Route(portID)
}

package keeper

import (
	"bytes"
	"encoding/hex"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	connectiontypes "github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	"github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// BatchSend commits to a set of packets already sent on the same channel so
// that a relayer can prove all of them with a single proof of the batch key.
// Every packet must still be committed. The batch hash binds each packet
// commitment to its sequence and channel ends and is returned.
func (k Keeper) BatchSend(ctx coretypes.Context, packets []types.Packet) ([]byte, error) {
	if len(packets) == 0 {
		return nil, sdkerrors.Wrap(types.ErrInvalidBatch, "batch cannot be empty")
	}
	if !types.SameSource(packets) {
		return nil, sdkerrors.Wrap(types.ErrInvalidBatch, "packets must be sent on the same channel")
	}

	for _, packet := range packets {
		stored := k.GetPacketCommitment(ctx, packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
		if len(stored) == 0 {
			return nil, sdkerrors.Wrapf(types.ErrPacketCommitmentNotFound, "sequence %d", packet.GetSequence())
		}

		if !bytes.Equal(stored, types.CommitPacket(packet)) {
			return nil, sdkerrors.Wrapf(types.ErrInvalidPacket, "sequence %d: commitment bytes are not equal", packet.GetSequence())
		}
	}

	batchHash := types.CommitPacketBatch(packets)
	ctx.KVStore().Set(host.BatchPacketsKey(packets[0].GetSourcePort(), packets[0].GetSourceChannel(), batchHash), types.BatchCommitted)

	k.Logger(ctx).Info("packet batch committed", "batch_hash", hex.EncodeToString(batchHash), "size", len(packets))

	emitBatchEvent(ctx, types.EventTypeBatchSend, packets[0].GetSourcePort(), packets[0].GetSourceChannel(), batchHash, len(packets))

	return batchHash, nil
}

// BatchAcks commits to the acknowledgements written for a set of packets
// received on the same channel so that the sender can acknowledge all of them
// with a single proof. The batch hash is returned.
func (k Keeper) BatchAcks(ctx coretypes.Context, packets []types.Packet, acks [][]byte) ([]byte, error) {
	if len(packets) == 0 {
		return nil, sdkerrors.Wrap(types.ErrInvalidBatch, "batch cannot be empty")
	}
	if len(packets) != len(acks) {
		return nil, sdkerrors.Wrapf(types.ErrInvalidBatch, "%d packets, %d acknowledgements", len(packets), len(acks))
	}
	if !types.SameDestination(packets) {
		return nil, sdkerrors.Wrap(types.ErrInvalidBatch, "packets must be received on the same channel")
	}

	for i, packet := range packets {
		stored, found := k.GetPacketAcknowledgement(ctx, packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
		if !found {
			return nil, sdkerrors.Wrapf(types.ErrAcknowledgementNotFound, "sequence %d", packet.GetSequence())
		}

		if !bytes.Equal(stored, types.CommitAcknowledgement(acks[i])) {
			return nil, sdkerrors.Wrapf(types.ErrInvalidAcknowledgement, "sequence %d: acknowledgement commitment bytes are not equal", packet.GetSequence())
		}
	}

	batchHash := types.CommitAcknowledgementBatch(packets, acks)
	ctx.KVStore().Set(host.BatchReceiptsKey(packets[0].GetDestPort(), packets[0].GetDestChannel(), batchHash), types.BatchCommitted)

	k.Logger(ctx).Info("acknowledgement batch committed", "batch_hash", hex.EncodeToString(batchHash), "size", len(packets))

	emitBatchEvent(ctx, types.EventTypeBatchAcks, packets[0].GetDestPort(), packets[0].GetDestChannel(), batchHash, len(packets))

	return batchHash, nil
}

// RecvPackets receives a set of packets under one proof. A single packet is
// proven by its own commitment; several packets are proven by the batch key
// the sender wrote with BatchSend.
func (k Keeper) RecvPackets(
	ctx coretypes.Context,
	packets []types.Packet,
	proof []byte,
	proofHeight exported.Height,
) error {
	switch len(packets) {
	case 0:
		return sdkerrors.Wrap(types.ErrInvalidBatch, "batch cannot be empty")
	case 1:
		return k.RecvPacket(ctx, packets[0], proof, proofHeight)
	}

	if !types.SameSource(packets) || !types.SameDestination(packets) {
		return sdkerrors.Wrap(types.ErrInvalidBatch, "packets must travel over the same channel")
	}

	batchHash := types.CommitPacketBatch(packets)
	sourcePort, sourceChannel := packets[0].GetSourcePort(), packets[0].GetSourceChannel()

	verified := false
	for _, packet := range packets {
		if err := k.recvPacket(ctx, packet, "", func(connection connectiontypes.ConnectionEnd) error {
			if verified {
				return nil
			}
			if err := k.connectionKeeper.VerifyBatchPackets(ctx, connection, proofHeight, proof, sourcePort, sourceChannel, batchHash, types.BatchCommitted); err != nil {
				return sdkerrors.Wrap(err, "couldn't verify counterparty packet batch")
			}
			verified = true
			return nil
		}); err != nil {
			return sdkerrors.Wrapf(err, "sequence %d", packet.GetSequence())
		}
	}

	return nil
}

// AcknowledgePackets processes the acknowledgements of a set of packets under
// one proof. A single packet is proven by its own acknowledgement commitment;
// several packets are proven by the batch key the receiver wrote with
// BatchAcks.
func (k Keeper) AcknowledgePackets(
	ctx coretypes.Context,
	packets []types.Packet,
	acks [][]byte,
	proof []byte,
	proofHeight exported.Height,
) error {
	if len(packets) != len(acks) {
		return sdkerrors.Wrapf(types.ErrInvalidBatch, "%d packets, %d acknowledgements", len(packets), len(acks))
	}

	switch len(packets) {
	case 0:
		return sdkerrors.Wrap(types.ErrInvalidBatch, "batch cannot be empty")
	case 1:
		return k.AcknowledgePacket(ctx, packets[0], acks[0], proof, proofHeight)
	}

	if !types.SameSource(packets) || !types.SameDestination(packets) {
		return sdkerrors.Wrap(types.ErrInvalidBatch, "packets must travel over the same channel")
	}

	batchHash := types.CommitAcknowledgementBatch(packets, acks)
	destPort, destChannel := packets[0].GetDestPort(), packets[0].GetDestChannel()

	verified := false
	for i, packet := range packets {
		if err := k.acknowledgePacket(ctx, packet, acks[i], func(connection connectiontypes.ConnectionEnd) error {
			if verified {
				return nil
			}
			if err := k.connectionKeeper.VerifyBatchReceipts(ctx, connection, proofHeight, proof, destPort, destChannel, batchHash, types.BatchCommitted); err != nil {
				return sdkerrors.Wrap(err, "couldn't verify counterparty acknowledgement batch")
			}
			verified = true
			return nil
		}); err != nil {
			return sdkerrors.Wrapf(err, "sequence %d", packet.GetSequence())
		}
	}

	return nil
}

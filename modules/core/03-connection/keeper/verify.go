package keeper

import (
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/rlp"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// VerifyConnectionState verifies a proof of the connection state of the
// specified connection end stored on the target machine.
func (k Keeper) VerifyConnectionState(
	ctx coretypes.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	connectionID string,
	counterpartyConnection types.ConnectionEnd, // opposite connection
) error {
	clientID := connection.ClientId
	if err := k.checkClientActive(ctx, clientID); err != nil {
		return err
	}

	path := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, host.ConnectionKey(connectionID))

	if err := k.clientKeeper.VerifyMembership(
		ctx, clientID, height,
		proof, path, counterpartyConnection.Bytes(),
	); err != nil {
		return sdkerrors.Wrapf(err, "failed connection state verification for client (%s)", clientID)
	}

	return nil
}

// VerifyChannelState verifies a proof of the channel state of the specified
// channel end, under the specified port, stored on the target machine.
func (k Keeper) VerifyChannelState(
	ctx coretypes.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	channel exported.ChannelI,
) error {
	clientID := connection.ClientId
	if err := k.checkClientActive(ctx, clientID); err != nil {
		return err
	}

	bz, err := rlp.EncodeToBytes(channel)
	if err != nil {
		return err
	}

	path := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, host.ChannelKey(portID, channelID))

	if err := k.clientKeeper.VerifyMembership(
		ctx, clientID, height,
		proof, path, bz,
	); err != nil {
		return sdkerrors.Wrapf(err, "failed channel state verification for client (%s)", clientID)
	}

	return nil
}

// VerifyPacketCommitment verifies a proof of an outgoing packet commitment at
// the specified port, specified channel, and specified sequence.
func (k Keeper) VerifyPacketCommitment(
	ctx coretypes.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	sequence uint64,
	commitmentBytes []byte,
) error {
	path := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, host.PacketCommitmentKey(portID, channelID, sequence))

	if err := k.verifyPacketMembership(ctx, connection, height, proof, path, commitmentBytes); err != nil {
		return sdkerrors.Wrapf(err, "failed packet commitment verification for client (%s)", connection.ClientId)
	}

	return nil
}

// VerifyPacketAcknowledgement verifies a proof of an incoming packet
// acknowledgement at the specified port, specified channel, and specified sequence.
// The acknowledgement commitment is the hash the counterparty stored.
func (k Keeper) VerifyPacketAcknowledgement(
	ctx coretypes.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	sequence uint64,
	ackCommitment []byte,
) error {
	path := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, host.PacketAcknowledgementKey(portID, channelID, sequence))

	if err := k.verifyPacketMembership(ctx, connection, height, proof, path, ackCommitment); err != nil {
		return sdkerrors.Wrapf(err, "failed packet acknowledgement verification for client (%s)", connection.ClientId)
	}

	return nil
}

// VerifyPacketReceiptAbsence verifies a proof of the absence of an
// incoming packet receipt at the specified port, specified channel, and
// specified sequence.
func (k Keeper) VerifyPacketReceiptAbsence(
	ctx coretypes.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	sequence uint64,
) error {
	clientID := connection.ClientId
	if err := k.checkClientActive(ctx, clientID); err != nil {
		return err
	}

	if err := k.verifyDelayPeriodPassed(ctx, connection, height); err != nil {
		return err
	}

	path := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, host.PacketReceiptKey(portID, channelID, sequence))

	if err := k.clientKeeper.VerifyNonMembership(
		ctx, clientID, height,
		proof, path,
	); err != nil {
		return sdkerrors.Wrapf(err, "failed packet receipt absence verification for client (%s)", clientID)
	}

	return nil
}

// VerifyBatchPackets verifies a proof that the counterparty committed the
// batch batchHash of packets sent on portID/channelID.
func (k Keeper) VerifyBatchPackets(
	ctx coretypes.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	batchHash []byte,
	commitment []byte,
) error {
	path := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, host.BatchPacketsKey(portID, channelID, batchHash))

	if err := k.verifyPacketMembership(ctx, connection, height, proof, path, commitment); err != nil {
		return sdkerrors.Wrapf(err, "failed batch packets verification for client (%s)", connection.ClientId)
	}

	return nil
}

// VerifyBatchReceipts verifies a proof that the counterparty committed the
// acknowledgement batch batchHash for packets received on portID/channelID.
func (k Keeper) VerifyBatchReceipts(
	ctx coretypes.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof []byte,
	portID,
	channelID string,
	batchHash []byte,
	commitment []byte,
) error {
	path := commitmenttypes.ApplyPrefix(connection.Counterparty.Prefix, host.BatchReceiptsKey(portID, channelID, batchHash))

	if err := k.verifyPacketMembership(ctx, connection, height, proof, path, commitment); err != nil {
		return sdkerrors.Wrapf(err, "failed batch receipts verification for client (%s)", connection.ClientId)
	}

	return nil
}

func (k Keeper) verifyPacketMembership(
	ctx coretypes.Context,
	connection types.ConnectionEnd,
	height exported.Height,
	proof, path, value []byte,
) error {
	clientID := connection.ClientId
	if err := k.checkClientActive(ctx, clientID); err != nil {
		return err
	}

	if err := k.verifyDelayPeriodPassed(ctx, connection, height); err != nil {
		return err
	}

	return k.clientKeeper.VerifyMembership(ctx, clientID, height, proof, path, value)
}

func (k Keeper) checkClientActive(ctx coretypes.Context, clientID string) error {
	if status := k.clientKeeper.GetClientStatus(ctx, clientID); status != exported.Active {
		return sdkerrors.Wrapf(clienttypes.ErrClientNotActive, "client (%s) status is %s", clientID, status)
	}
	return nil
}

// verifyDelayPeriodPassed checks that the connection delay period has elapsed
// since the timestamp of the consensus state used for verification. Handshake
// proofs skip the check.
func (k Keeper) verifyDelayPeriodPassed(ctx coretypes.Context, connection types.ConnectionEnd, height exported.Height) error {
	if connection.DelayPeriod == 0 {
		return nil
	}

	timestamp, err := k.clientKeeper.GetTimestampAtHeight(ctx, connection.ClientId, height)
	if err != nil {
		return err
	}

	validTime := timestamp + connection.DelayPeriod
	if now := uint64(ctx.BlockTime().UnixNano()); now < validTime {
		return sdkerrors.Wrapf(
			types.ErrDelayPeriodNotPassed,
			"cannot verify packet until time: %s, current time: %s",
			time.Unix(0, int64(validTime)).UTC(), ctx.BlockTime(),
		)
	}

	return nil
}

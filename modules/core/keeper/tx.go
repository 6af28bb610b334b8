package keeper

import (
	"errors"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	ibcerrors "github.com/ComposableFi/ibc-core/modules/core/errors"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// Msg is a message accepted by the IBC message server.
type Msg interface {
	ValidateBasic() error
}

// HandleMsg validates msg and routes it to its handler.
func (k *Keeper) HandleMsg(ctx coretypes.Context, msg Msg) (interface{}, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	switch msg := msg.(type) {
	case *clienttypes.MsgCreateClient:
		return k.CreateClient(ctx, msg)
	case *clienttypes.MsgBeginCreateClient:
		return k.BeginCreateClient(ctx, msg)
	case *clienttypes.MsgCompleteCreateClient:
		return k.CompleteCreateClient(ctx, msg)
	case *clienttypes.MsgUpdateClient:
		return k.UpdateClient(ctx, msg)
	case *clienttypes.MsgSubmitMisbehaviour:
		return k.SubmitMisbehaviour(ctx, msg)

	case *connectiontypes.MsgConnectionOpenInit:
		return k.ConnectionOpenInit(ctx, msg)
	case *connectiontypes.MsgConnectionOpenTry:
		return k.ConnectionOpenTry(ctx, msg)
	case *connectiontypes.MsgConnectionOpenAck:
		return k.ConnectionOpenAck(ctx, msg)
	case *connectiontypes.MsgConnectionOpenConfirm:
		return k.ConnectionOpenConfirm(ctx, msg)

	case *channeltypes.MsgChannelOpenInit:
		return k.ChannelOpenInit(ctx, msg)
	case *channeltypes.MsgChannelOpenTry:
		return k.ChannelOpenTry(ctx, msg)
	case *channeltypes.MsgChannelOpenAck:
		return k.ChannelOpenAck(ctx, msg)
	case *channeltypes.MsgChannelOpenConfirm:
		return k.ChannelOpenConfirm(ctx, msg)
	case *channeltypes.MsgChannelCloseInit:
		return k.ChannelCloseInit(ctx, msg)
	case *channeltypes.MsgChannelCloseConfirm:
		return k.ChannelCloseConfirm(ctx, msg)

	case *channeltypes.MsgSendPacket:
		return k.SendPacket(ctx, msg)
	case *channeltypes.MsgRecvPacket:
		return k.RecvPacket(ctx, msg)
	case *channeltypes.MsgIntentRecvPacket:
		return k.IntentRecvPacket(ctx, msg)
	case *channeltypes.MsgRecvPackets:
		return k.RecvPackets(ctx, msg)
	case *channeltypes.MsgAcknowledgement:
		return k.Acknowledgement(ctx, msg)
	case *channeltypes.MsgAcknowledgements:
		return k.Acknowledgements(ctx, msg)
	case *channeltypes.MsgTimeout:
		return k.Timeout(ctx, msg)
	case *channeltypes.MsgBatchSend:
		return k.BatchSend(ctx, msg)
	case *channeltypes.MsgBatchAcks:
		return k.BatchAcks(ctx, msg)
	case *channeltypes.MsgSetMarketMaker:
		return k.SetMarketMaker(ctx, msg)
	case *channeltypes.MsgRemoveMarketMaker:
		return k.RemoveMarketMaker(ctx, msg)

	default:
		return nil, sdkerrors.Wrapf(ibcerrors.ErrInvalidType, "unrecognized IBC message type: %T", msg)
	}
}

// DeliverTx executes msgs in order as one atomic unit: if any message fails,
// none of the state changes or events of the transaction are kept.
func (k *Keeper) DeliverTx(ctx coretypes.Context, msgs ...Msg) ([]interface{}, error) {
	cacheCtx, writeFn := ctx.CacheContext()

	responses := make([]interface{}, len(msgs))
	for i, msg := range msgs {
		res, err := k.HandleMsg(cacheCtx, msg)
		if err != nil {
			return nil, sdkerrors.Wrapf(err, "message index %d", i)
		}
		responses[i] = res
	}

	writeFn()

	return responses, nil
}

// CheckTx performs redundancy checks on IBC relays. If a transaction contains
// relay messages (RecvPacket, Acknowledgement, Timeout and their batched
// forms) and all of them were already processed, it is rejected with
// ErrRedundantTx. Any non relay message, with the exception of UpdateClient,
// lets the transaction through. No state is written.
func (k *Keeper) CheckTx(ctx coretypes.Context, msgs ...Msg) error {
	cacheCtx, _ := ctx.CacheContext()

	// keep track of total packet messages and number of redundancies
	redundancies := 0
	packetMsgs := 0

	for _, msg := range msgs {
		switch msg.(type) {
		case *channeltypes.MsgRecvPacket, *channeltypes.MsgRecvPackets,
			*channeltypes.MsgAcknowledgement, *channeltypes.MsgAcknowledgements,
			*channeltypes.MsgTimeout:
			packetMsgs++

			_, err := k.HandleMsg(cacheCtx, msg)
			switch {
			case err == nil:
			case isRedundant(err):
				redundancies++
			default:
				return err
			}

		case *clienttypes.MsgUpdateClient:
			if _, err := k.HandleMsg(cacheCtx, msg); err != nil {
				return err
			}

		default:
			// if the tx has a msg that is not a packet msg or update msg, then we will not return error
			// regardless of if all packet messages are redundant. This ensures that non-packet messages get processed
			// even if they get batched with redundant packet messages.
			return nil
		}
	}

	// only return error if all packet messages are redundant
	if redundancies == packetMsgs && packetMsgs > 0 {
		return ibcerrors.ErrRedundantTx
	}

	return nil
}

// isRedundant reports whether a relay failed because the packet was already
// received, acknowledged or timed out.
func isRedundant(err error) bool {
	return errors.Is(err, channeltypes.ErrPacketReceived) ||
		errors.Is(err, channeltypes.ErrPacketCommitmentNotFound)
}

package keeper

import (
	"encoding/hex"
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// emitBeginCreateClientEvent emits a begin create client event
func emitBeginCreateClientEvent(ctx coretypes.Context, clientType string, nonce uint64) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeBeginCreateClient,
			sdk.NewAttribute(types.AttributeKeyClientType, clientType),
			sdk.NewAttribute(types.AttributeKeyPendingNonce, fmt.Sprintf("%d", nonce)),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		),
	})
}

// emitCreateClientEvent emits a create client event
func emitCreateClientEvent(ctx coretypes.Context, clientID, clientType string, height exported.Height, address string) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeCreateClient,
			sdk.NewAttribute(types.AttributeKeyClientID, clientID),
			sdk.NewAttribute(types.AttributeKeyClientType, clientType),
			sdk.NewAttribute(types.AttributeKeyConsensusHeight, height.String()),
			sdk.NewAttribute(types.AttributeKeyClientAddress, address),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		),
	})
}

// emitUpdateClientEvent emits an update client event
func emitUpdateClientEvent(ctx coretypes.Context, clientID string, clientType string, consensusHeights []exported.Height, clientMsg exported.ClientMessage) {
	var header string
	if bz, err := types.MarshalClientMessage(clientMsg); err == nil {
		header = hex.EncodeToString(bz)
	}

	heights := make([]string, len(consensusHeights))
	for i, height := range consensusHeights {
		heights[i] = height.String()
	}

	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeUpdateClient,
			sdk.NewAttribute(types.AttributeKeyClientID, clientID),
			sdk.NewAttribute(types.AttributeKeyClientType, clientType),
			// the first consensus height is emitted for backwards compatibility
			sdk.NewAttribute(types.AttributeKeyConsensusHeight, consensusHeights[0].String()),
			sdk.NewAttribute(types.AttributeKeyConsensusHeights, strings.Join(heights, ",")),
			sdk.NewAttribute(types.AttributeKeyHeader, header),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		),
	})
}

// emitSubmitMisbehaviourEvent emits a client misbehaviour event
func emitSubmitMisbehaviourEvent(ctx coretypes.Context, clientID string, clientType string) {
	ctx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeSubmitMisbehaviour,
			sdk.NewAttribute(types.AttributeKeyClientID, clientID),
			sdk.NewAttribute(types.AttributeKeyClientType, clientType),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		),
	})
}

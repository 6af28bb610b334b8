package types

import (
	"fmt"

	ibcexported "github.com/ComposableFi/ibc-core/modules/core/exported"
)

// IBC client events
const (
	AttributeKeyClientID         = "client_id"
	AttributeKeyClientType       = "client_type"
	AttributeKeyConsensusHeight  = "consensus_height"
	AttributeKeyConsensusHeights = "consensus_heights"
	AttributeKeyHeader           = "header"
	AttributeKeyCaller           = "caller"
	AttributeKeyRelayer          = "relayer"
	AttributeKeyPendingNonce     = "pending_nonce"
	AttributeKeyClientAddress    = "client_address"
)

// IBC client events vars
var (
	EventTypeCreateClient       = "create_client"
	EventTypeBeginCreateClient  = "begin_create_client"
	EventTypeUpdateClient       = "update_client"
	EventTypeSubmitMisbehaviour = "client_misbehaviour"

	AttributeValueCategory = fmt.Sprintf("%s_%s", ibcexported.ModuleName, SubModuleName)
)


package types

import (
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

// ClientKeeper expected account IBC client keeper
type ClientKeeper interface {
	GetClientStatus(ctx coretypes.Context, clientID string) exported.Status
	GetClientState(ctx coretypes.Context, clientID string) (exported.ClientState, bool)
	GetClientConsensusState(ctx coretypes.Context, clientID string, height exported.Height) (exported.ConsensusState, bool)
	GetTimestampAtHeight(ctx coretypes.Context, clientID string, height exported.Height) (uint64, error)
	VerifyMembership(ctx coretypes.Context, clientID string, height exported.Height, proof, path, value []byte) error
	VerifyNonMembership(ctx coretypes.Context, clientID string, height exported.Height, proof, path []byte) error
}

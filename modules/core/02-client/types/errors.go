package types

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// IBC client sentinel errors
var (
	ErrClientExists            = sdkerrors.Register(SubModuleName, 2, "light client already exists")
	ErrInvalidClient           = sdkerrors.Register(SubModuleName, 3, "light client is invalid")
	ErrClientNotFound          = sdkerrors.Register(SubModuleName, 4, "light client not found")
	ErrClientFrozen            = sdkerrors.Register(SubModuleName, 5, "light client is frozen due to misbehaviour")
	ErrClientExpired           = sdkerrors.Register(SubModuleName, 6, "light client is expired")
	ErrClientNotActive         = sdkerrors.Register(SubModuleName, 7, "client state is not active")
	ErrInvalidClientMetadata   = sdkerrors.Register(SubModuleName, 8, "invalid client metadata")
	ErrConsensusStateNotFound  = sdkerrors.Register(SubModuleName, 9, "consensus state not found")
	ErrInvalidConsensus        = sdkerrors.Register(SubModuleName, 10, "invalid consensus state")
	ErrClientTypeNotFound      = sdkerrors.Register(SubModuleName, 11, "client type not found")
	ErrInvalidClientType       = sdkerrors.Register(SubModuleName, 12, "invalid client type")
	ErrClientTypeNotRegistered = sdkerrors.Register(SubModuleName, 13, "client type not registered")
	ErrRootNotFound            = sdkerrors.Register(SubModuleName, 14, "commitment root not found")
	ErrInvalidHeader           = sdkerrors.Register(SubModuleName, 15, "invalid client header")
	ErrInvalidMisbehaviour     = sdkerrors.Register(SubModuleName, 16, "invalid light client misbehaviour")
	ErrInvalidHeight           = sdkerrors.Register(SubModuleName, 17, "invalid height")
	ErrMaxRecursionDepth       = sdkerrors.Register(SubModuleName, 18, "light client composition exceeds the maximum depth")
	ErrInvalidPendingCreation  = sdkerrors.Register(SubModuleName, 19, "invalid pending client creation")
	ErrPendingCreationNotFound = sdkerrors.Register(SubModuleName, 20, "pending client creation not found")
	ErrRouteNotFound           = sdkerrors.Register(SubModuleName, 21, "light client module route not found")
	ErrClientDataNotFound      = sdkerrors.Register(SubModuleName, 22, "light client data not found")
)

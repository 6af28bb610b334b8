package errors

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

const codespace = exported.ModuleName

var (
	// ErrUnauthorized is used whenever a request without sufficient
	// authorization is handled.
	ErrUnauthorized = sdkerrors.Register(codespace, 2, "unauthorized")

	// ErrOnlyMarketMaker is returned when a permissioned intent fast path is
	// used by a caller that is not registered as a market maker.
	ErrOnlyMarketMaker = sdkerrors.Register(codespace, 3, "only market maker")

	// ErrInvalidRequest defines an error where the request contains
	// invalid data.
	ErrInvalidRequest = sdkerrors.Register(codespace, 4, "invalid request")

	// ErrInvalidHeight defines an error for an invalid height
	ErrInvalidHeight = sdkerrors.Register(codespace, 5, "invalid height")

	// ErrInvalidAddress is used when an address is found to be invalid.
	ErrInvalidAddress = sdkerrors.Register(codespace, 6, "invalid address")

	// ErrInvalidType defines an error an invalid type.
	ErrInvalidType = sdkerrors.Register(codespace, 7, "invalid type")

	// ErrDecode is returned when stored or submitted bytes cannot be decoded.
	ErrDecode = sdkerrors.Register(codespace, 8, "failed to decode")

	// ErrLogic defines an internal logic error, e.g. an invariant or assertion
	// that is violated. It is a programmer error, not a user-facing error.
	ErrLogic = sdkerrors.Register(codespace, 9, "internal logic error")

	// ErrNotFound defines an error when requested entity doesn't exist in the state.
	ErrNotFound = sdkerrors.Register(codespace, 10, "not found")

	// ErrRedundantTx is returned when every packet message of a transaction
	// has already been relayed.
	ErrRedundantTx = sdkerrors.Register(codespace, 11, "packet messages are redundant")
)

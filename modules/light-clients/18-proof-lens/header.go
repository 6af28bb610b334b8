package prooflens

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var _ exported.ClientMessage = (*Header)(nil)

// Header records Height of the target client as usable.
type Header struct {
	Height clienttypes.Height
}

func (Header) ClientType() string {
	return exported.ProofLens
}

func (h Header) ValidateBasic() error {
	if h.Height.IsZero() {
		return sdkerrors.Wrap(ErrInvalidHeader, "height cannot be zero")
	}
	return nil
}

package movement

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	aptos "github.com/ComposableFi/ibc-core/modules/light-clients/13-aptos"
)

var (
	_ exported.ClientMessage = (*Header)(nil)
	_ exported.ClientMessage = (*Misbehaviour)(nil)
)

// Header is a ledger info whose accumulator root was settled on the L1 at
// L1Height, with the state checkpoint at its version.
type Header struct {
	L1Height        clienttypes.Height
	LedgerInfo      aptos.LedgerInfo
	SettlementProof []byte
	StateProof      aptos.TransactionInfoWithProof
}

func (Header) ClientType() string {
	return exported.Movement
}

// GetHeight returns the settled ledger version.
func (h Header) GetHeight() clienttypes.Height {
	return clienttypes.NewHeight(0, h.LedgerInfo.CommitInfo.Version)
}

func (h Header) ValidateBasic() error {
	if h.L1Height.IsZero() {
		return sdkerrors.Wrap(ErrInvalidHeader, "l1 height cannot be zero")
	}
	if h.LedgerInfo.CommitInfo.Version == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "version cannot be zero")
	}
	if h.LedgerInfo.CommitInfo.TimestampUsecs == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "timestamp cannot be zero")
	}
	if len(h.SettlementProof) == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "settlement proof cannot be empty")
	}
	return nil
}

// Misbehaviour is two settled ledger infos with different accumulator roots
// at the same version.
type Misbehaviour struct {
	Header1 *Header
	Header2 *Header
}

func (Misbehaviour) ClientType() string {
	return exported.Movement
}

func (m Misbehaviour) ValidateBasic() error {
	if m.Header1 == nil || m.Header2 == nil {
		return sdkerrors.Wrap(ErrInvalidMisbehaviour, "misbehaviour headers cannot be nil")
	}
	if err := m.Header1.ValidateBasic(); err != nil {
		return sdkerrors.Wrap(err, "header 1 failed validation")
	}
	if err := m.Header2.ValidateBasic(); err != nil {
		return sdkerrors.Wrap(err, "header 2 failed validation")
	}
	if !m.Header1.GetHeight().EQ(m.Header2.GetHeight()) {
		return sdkerrors.Wrap(ErrInvalidMisbehaviour, "headers settle different versions")
	}
	return nil
}

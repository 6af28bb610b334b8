package aptos

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/internal/bls"
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

var (
	_ exported.ClientMessage = (*Header)(nil)
	_ exported.ClientMessage = (*Misbehaviour)(nil)
)

// Header is a signed ledger info with the state checkpoint at its version.
// TrustedValidators is the validator set of the ledger info epoch.
type Header struct {
	LedgerInfo        LedgerInfoWithSignatures
	TrustedValidators ValidatorVerifier
	StateProof        TransactionInfoWithProof
}

func (Header) ClientType() string {
	return exported.Aptos
}

// GetHeight returns the committed ledger version.
func (h Header) GetHeight() clienttypes.Height {
	return clienttypes.NewHeight(0, h.LedgerInfo.LedgerInfo.CommitInfo.Version)
}

func (h Header) ValidateBasic() error {
	commit := h.LedgerInfo.LedgerInfo.CommitInfo
	if commit.Version == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "version cannot be zero")
	}
	if commit.TimestampUsecs == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "timestamp cannot be zero")
	}
	if len(h.LedgerInfo.Signatures.Signature) != bls.SignatureSize {
		return sdkerrors.Wrapf(ErrInvalidHeader, "signature must be %d bytes", bls.SignatureSize)
	}
	if err := h.TrustedValidators.Validate(); err != nil {
		return sdkerrors.Wrap(ErrInvalidHeader, err.Error())
	}
	if next := commit.NextEpochState; next != nil {
		if next.Epoch != commit.Epoch+1 {
			return sdkerrors.Wrapf(ErrInvalidEpochChange, "epoch %d cannot follow epoch %d", next.Epoch, commit.Epoch)
		}
		if err := next.Verifier.Validate(); err != nil {
			return sdkerrors.Wrap(ErrInvalidEpochChange, err.Error())
		}
	}
	return nil
}

// Misbehaviour is two ledger infos of one epoch committing different
// accumulator roots at the same version.
type Misbehaviour struct {
	LedgerInfo1       LedgerInfoWithSignatures
	LedgerInfo2       LedgerInfoWithSignatures
	TrustedValidators ValidatorVerifier
}

func (Misbehaviour) ClientType() string {
	return exported.Aptos
}

func (m Misbehaviour) ValidateBasic() error {
	commit1, commit2 := m.LedgerInfo1.LedgerInfo.CommitInfo, m.LedgerInfo2.LedgerInfo.CommitInfo
	if commit1.Version == 0 || commit1.Version != commit2.Version {
		return sdkerrors.Wrapf(ErrInvalidMisbehaviour, "versions %d and %d must be equal and non-zero", commit1.Version, commit2.Version)
	}
	if commit1.Epoch != commit2.Epoch {
		return sdkerrors.Wrapf(ErrInvalidMisbehaviour, "epochs %d and %d differ", commit1.Epoch, commit2.Epoch)
	}
	if err := m.TrustedValidators.Validate(); err != nil {
		return sdkerrors.Wrap(ErrInvalidMisbehaviour, err.Error())
	}
	return nil
}

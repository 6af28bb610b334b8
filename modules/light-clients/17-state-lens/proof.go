package statelens

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/ComposableFi/ibc-core/internal/mpt"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
)

func (cs ClientState) verifyMembership(stateRoot [32]byte, proof, path, value []byte) error {
	var err error
	switch cs.ProofType {
	case ProofTypeICS23:
		err = commitmenttypes.VerifyMembershipBytes(proof, stateRoot[:], path, value)
	case ProofTypeMPT:
		err = mpt.VerifyCommitment(stateRoot, cs.IbcContractAddress, proof, path, value)
	default:
		return sdkerrors.Wrapf(ErrInvalidClientState, "unknown proof type %q", cs.ProofType)
	}
	if err != nil {
		return commitmenttypes.WrapInvalidProof(sdkerrors.Wrap(ErrInvalidProof, err.Error()))
	}
	return nil
}

func (cs ClientState) verifyNonMembership(stateRoot [32]byte, proof, path []byte) error {
	var err error
	switch cs.ProofType {
	case ProofTypeICS23:
		err = commitmenttypes.VerifyNonMembershipBytes(proof, stateRoot[:], path)
	case ProofTypeMPT:
		err = mpt.VerifyCommitmentAbsence(stateRoot, cs.IbcContractAddress, proof, path)
	default:
		return sdkerrors.Wrapf(ErrInvalidClientState, "unknown proof type %q", cs.ProofType)
	}
	if err != nil {
		return commitmenttypes.WrapInvalidProof(sdkerrors.Wrap(ErrInvalidProof, err.Error()))
	}
	return nil
}

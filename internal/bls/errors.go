package bls

import (
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

const ModuleName = "bls"

var (
	ErrInvalidPublicKey = sdkerrors.Register(ModuleName, 2, "invalid bls public key")
	ErrInvalidSignature = sdkerrors.Register(ModuleName, 3, "invalid bls signature")
	ErrInvalidSecretKey = sdkerrors.Register(ModuleName, 4, "invalid bls secret key")
)

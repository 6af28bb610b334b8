package validate

import (
	"strconv"
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
)

// GRPCRequest validates that the portID and channelID of a gRPC Request are valid identifiers.
func GRPCRequest(portID, channelID string) error {
	if err := host.PortIdentifierValidator(portID); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	if err := host.ChannelIdentifierValidator(channelID); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	return nil
}

// GRPCClientRequest validates the client identifier of a gRPC request.
func GRPCClientRequest(clientID string) error {
	if err := host.ClientIdentifierValidator(clientID); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

// GRPCConnectionRequest validates the connection identifier of a gRPC request.
func GRPCConnectionRequest(connectionID string) error {
	if err := host.ConnectionIdentifierValidator(connectionID); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

// ParseIdentifierSequence parses the sequence from the identifier using the provided prefix.
// The identifier must be of the form {prefix}{N} and the sequence must not
// contain leading zeros.
func ParseIdentifierSequence(identifier, identifierPrefix string) (uint64, error) {
	if !strings.HasPrefix(identifier, identifierPrefix) {
		return 0, sdkerrors.Wrapf(host.ErrInvalidID, "identifier doesn't contain prefix `%s`", identifierPrefix)
	}

	splitStr := strings.Split(identifier, identifierPrefix)
	if len(splitStr) != 2 {
		return 0, sdkerrors.Wrapf(host.ErrInvalidID, "identifier must contain the prefix `%s` once", identifierPrefix)
	}

	// sanity check
	if splitStr[0] != "" {
		return 0, sdkerrors.Wrapf(host.ErrInvalidID, "identifier must begin with prefix %s", identifierPrefix)
	}

	return ParseUint64(splitStr[1])
}

// ParseUint64 parses a decimal sequence without leading zeros.
func ParseUint64(s string) (uint64, error) {
	if len(s) > 1 && s[0] == '0' {
		return 0, sdkerrors.Wrap(host.ErrInvalidID, "sequence cannot contain leading zeros")
	}

	sequence, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, sdkerrors.Wrap(host.ErrInvalidID, err.Error())
	}

	return sequence, nil
}

// NonEmptyBytes returns an error wrapping err when bz is empty.
func NonEmptyBytes(bz []byte, err error, what string) error {
	if len(bz) == 0 {
		return sdkerrors.Wrapf(err, "%s cannot be empty", what)
	}
	return nil
}

// Bytes32 checks that bz is exactly 32 bytes long, the size of every hash root
// the light clients store.
func Bytes32(bz []byte, err error, what string) error {
	if len(bz) != 32 {
		return sdkerrors.Wrapf(err, "%s must be 32 bytes, got %d", what, len(bz))
	}
	return nil
}

package types

import (
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	ibcerrors "github.com/ComposableFi/ibc-core/modules/core/errors"
)

// MsgCreateClient defines a message to create an IBC client in a single step.
type MsgCreateClient struct {
	ClientType     string
	ClientState    []byte
	ConsensusState []byte
	Signer         string
	Relayer        string
}

// MsgCreateClientResponse defines the Msg/CreateClient response type.
type MsgCreateClientResponse struct {
	ClientId string
}

// MsgBeginCreateClient defines a message starting a two-phase client creation.
type MsgBeginCreateClient struct {
	ClientType     string
	ClientState    []byte
	ConsensusState []byte
	Signer         string
	Relayer        string
}

// MsgBeginCreateClientResponse carries the token CompleteCreateClient expects.
type MsgBeginCreateClientResponse struct {
	Token PendingCreationToken
}

// MsgCompleteCreateClient defines a message registering a pending client once
// its external address is known.
type MsgCompleteCreateClient struct {
	Token           PendingCreationToken
	ExternalAddress string
	Signer          string
}

// MsgCompleteCreateClientResponse defines the Msg/CompleteCreateClient response type.
type MsgCompleteCreateClientResponse struct {
	ClientId string
}

// MsgUpdateClient defines a message to update an IBC client with an encoded
// client message (header).
type MsgUpdateClient struct {
	ClientId      string
	ClientMessage []byte
	Signer        string
	Relayer       string
}

// MsgUpdateClientResponse defines the Msg/UpdateClient response type.
type MsgUpdateClientResponse struct{}

// MsgSubmitMisbehaviour defines a message to freeze an IBC client with
// evidence of misbehaviour.
type MsgSubmitMisbehaviour struct {
	ClientId     string
	Misbehaviour []byte
	Signer       string
	Relayer      string
}

// MsgSubmitMisbehaviourResponse defines the Msg/SubmitMisbehaviour response type.
type MsgSubmitMisbehaviourResponse struct{}

// ValidateBasic implements sdk.Msg
func (msg MsgCreateClient) ValidateBasic() error {
	return validateCreation(msg.ClientType, msg.ClientState, msg.ConsensusState, msg.Signer)
}

// ValidateBasic implements sdk.Msg
func (msg MsgBeginCreateClient) ValidateBasic() error {
	return validateCreation(msg.ClientType, msg.ClientState, msg.ConsensusState, msg.Signer)
}

// ValidateBasic implements sdk.Msg
func (msg MsgCompleteCreateClient) ValidateBasic() error {
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	if err := ValidateClientType(msg.Token.ClientType); err != nil {
		return sdkerrors.Wrap(ErrInvalidPendingCreation, err.Error())
	}
	if len(msg.Token.Digest) == 0 {
		return sdkerrors.Wrap(ErrInvalidPendingCreation, "token digest cannot be empty")
	}
	return nil
}

// ValidateBasic implements sdk.Msg
func (msg MsgUpdateClient) ValidateBasic() error {
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	if len(msg.ClientMessage) == 0 {
		return sdkerrors.Wrap(ErrInvalidHeader, "client message cannot be empty")
	}
	return host.ClientIdentifierValidator(msg.ClientId)
}

// ValidateBasic implements sdk.Msg
func (msg MsgSubmitMisbehaviour) ValidateBasic() error {
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	if len(msg.Misbehaviour) == 0 {
		return sdkerrors.Wrap(ErrInvalidMisbehaviour, "misbehaviour cannot be empty")
	}
	return host.ClientIdentifierValidator(msg.ClientId)
}

func validateCreation(clientType string, clientState, consensusState []byte, signer string) error {
	if err := validateSigner(signer); err != nil {
		return err
	}
	if err := ValidateClientType(clientType); err != nil {
		return err
	}
	if len(clientState) == 0 {
		return sdkerrors.Wrap(ErrInvalidClient, "client state cannot be empty")
	}
	if len(consensusState) == 0 {
		return sdkerrors.Wrap(ErrInvalidConsensus, "consensus state cannot be empty")
	}
	return nil
}

func validateSigner(signer string) error {
	if strings.TrimSpace(signer) == "" {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidAddress, "signer cannot be blank")
	}
	return nil
}

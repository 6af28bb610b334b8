package types

import (
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	ibcerrors "github.com/ComposableFi/ibc-core/modules/core/errors"
)

// ResponseResultType defines the possible outcomes of the execution of a message
type ResponseResultType uint32

const (
	// Default zero value enumeration
	UNSPECIFIED ResponseResultType = iota
	// The message was executed successfully
	SUCCESS
)

// MsgChannelOpenInit defines an sdk.Msg to initialize a channel handshake. It
// is called by a relayer on Chain A.
type MsgChannelOpenInit struct {
	PortId  string
	Channel Channel
	Signer  string
}

// MsgChannelOpenInitResponse defines the Msg/ChannelOpenInit response type.
type MsgChannelOpenInitResponse struct {
	ChannelId string
	Version   string
}

// MsgChannelOpenTry defines a msg sent by a Relayer to try to open a channel
// on Chain B.
type MsgChannelOpenTry struct {
	PortId              string
	Channel             Channel
	CounterpartyVersion string
	ProofInit           []byte
	ProofHeight         clienttypes.Height
	Signer              string
}

// MsgChannelOpenTryResponse defines the Msg/ChannelOpenTry response type.
type MsgChannelOpenTryResponse struct {
	ChannelId string
	Version   string
}

// MsgChannelOpenAck defines a msg sent by a Relayer to Chain A to acknowledge
// the change of channel state to TRYOPEN on Chain B.
type MsgChannelOpenAck struct {
	PortId                string
	ChannelId             string
	CounterpartyChannelId string
	CounterpartyVersion   string
	ProofTry              []byte
	ProofHeight           clienttypes.Height
	Signer                string
}

// MsgChannelOpenAckResponse defines the Msg/ChannelOpenAck response type.
type MsgChannelOpenAckResponse struct{}

// MsgChannelOpenConfirm defines a msg sent by a Relayer to Chain B to
// acknowledge the change of channel state to OPEN on Chain A.
type MsgChannelOpenConfirm struct {
	PortId      string
	ChannelId   string
	ProofAck    []byte
	ProofHeight clienttypes.Height
	Signer      string
}

// MsgChannelOpenConfirmResponse defines the Msg/ChannelOpenConfirm response type.
type MsgChannelOpenConfirmResponse struct{}

// MsgChannelCloseInit defines a msg sent by a Relayer to Chain A
// to close a channel with Chain B.
type MsgChannelCloseInit struct {
	PortId    string
	ChannelId string
	Signer    string
}

// MsgChannelCloseInitResponse defines the Msg/ChannelCloseInit response type.
type MsgChannelCloseInitResponse struct{}

// MsgChannelCloseConfirm defines a msg sent by a Relayer to Chain B
// to acknowledge the change of channel state to CLOSED on Chain A.
type MsgChannelCloseConfirm struct {
	PortId      string
	ChannelId   string
	ProofInit   []byte
	ProofHeight clienttypes.Height
	Signer      string
}

// MsgChannelCloseConfirmResponse defines the Msg/ChannelCloseConfirm response type.
type MsgChannelCloseConfirmResponse struct{}

// MsgSendPacket sends an application packet on an open channel.
type MsgSendPacket struct {
	SourcePort       string
	SourceChannel    string
	TimeoutHeight    clienttypes.Height
	TimeoutTimestamp uint64
	Data             []byte
	Signer           string
}

// MsgSendPacketResponse defines the Msg/SendPacket response type.
type MsgSendPacketResponse struct {
	Sequence uint64
}

// MsgRecvPacket receives incoming IBC packet
type MsgRecvPacket struct {
	Packet          Packet
	ProofCommitment []byte
	ProofHeight     clienttypes.Height
	Signer          string
}

// MsgRecvPacketResponse defines the Msg/RecvPacket response type.
type MsgRecvPacketResponse struct {
	Result          ResponseResultType
	Acknowledgement []byte
}

// MsgIntentRecvPacket fills a packet on behalf of a market maker without a
// proof of the counterparty commitment.
type MsgIntentRecvPacket struct {
	Packet      Packet
	MarketMaker string
}

// MsgIntentRecvPacketResponse defines the Msg/IntentRecvPacket response type.
type MsgIntentRecvPacketResponse struct {
	Result          ResponseResultType
	Acknowledgement []byte
}

// MsgRecvPackets receives a set of packets proven by a single proof.
type MsgRecvPackets struct {
	Packets     []Packet
	Proof       []byte
	ProofHeight clienttypes.Height
	Signer      string
}

// MsgRecvPacketsResponse carries the acknowledgements in packet order.
type MsgRecvPacketsResponse struct {
	Acknowledgements [][]byte
}

// MsgAcknowledgement receives incoming IBC acknowledgement
type MsgAcknowledgement struct {
	Packet          Packet
	Acknowledgement []byte
	ProofAcked      []byte
	ProofHeight     clienttypes.Height
	Signer          string
}

// MsgAcknowledgementResponse defines the Msg/Acknowledgement response type.
type MsgAcknowledgementResponse struct {
	Result ResponseResultType
}

// MsgAcknowledgements processes a set of acknowledgements proven by a single proof.
type MsgAcknowledgements struct {
	Packets          []Packet
	Acknowledgements [][]byte
	Proof            []byte
	ProofHeight      clienttypes.Height
	Signer           string
}

// MsgAcknowledgementsResponse defines the Msg/Acknowledgements response type.
type MsgAcknowledgementsResponse struct{}

// MsgTimeout receives timed-out packet
type MsgTimeout struct {
	Packet          Packet
	ProofUnreceived []byte
	ProofHeight     clienttypes.Height
	Signer          string
}

// MsgTimeoutResponse defines the Msg/Timeout response type.
type MsgTimeoutResponse struct {
	Result ResponseResultType
}

// MsgBatchSend commits to a set of packets already sent on one channel.
type MsgBatchSend struct {
	Packets []Packet
	Signer  string
}

// MsgBatchSendResponse returns the batch key to prove.
type MsgBatchSendResponse struct {
	BatchHash []byte
}

// MsgBatchAcks commits to the acknowledgements of a set of packets received on one channel.
type MsgBatchAcks struct {
	Packets          []Packet
	Acknowledgements [][]byte
	Signer           string
}

// MsgBatchAcksResponse returns the batch key to prove.
type MsgBatchAcksResponse struct {
	BatchHash []byte
}

// MsgSetMarketMaker grants the intent market maker role.
type MsgSetMarketMaker struct {
	Authority   string
	MarketMaker string
}

// MsgRemoveMarketMaker revokes the intent market maker role.
type MsgRemoveMarketMaker struct {
	Authority   string
	MarketMaker string
}

// MsgMarketMakerResponse defines the response of market maker administration.
type MsgMarketMakerResponse struct{}

// NewMsgChannelOpenInit creates a new MsgChannelOpenInit. It sets the counterparty channel
// identifier to be empty.
func NewMsgChannelOpenInit(
	portID, version string, channelOrder Order, connectionHops []string,
	counterpartyPortID string, signer string,
) *MsgChannelOpenInit {
	counterparty := NewCounterparty(counterpartyPortID, "")
	channel := NewChannel(INIT, channelOrder, counterparty, connectionHops, version)
	return &MsgChannelOpenInit{
		PortId:  portID,
		Channel: channel,
		Signer:  signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgChannelOpenInit) ValidateBasic() error {
	if err := host.PortIdentifierValidator(msg.PortId); err != nil {
		return sdkerrors.Wrap(err, "invalid port ID")
	}
	if msg.Channel.State != INIT {
		return sdkerrors.Wrapf(ErrInvalidChannelState,
			"channel state must be INIT in MsgChannelOpenInit. expected: %s, got: %s",
			INIT, msg.Channel.State,
		)
	}
	if msg.Channel.Counterparty.ChannelId != "" {
		return sdkerrors.Wrap(ErrInvalidCounterparty, "counterparty channel identifier must be empty")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Channel.ValidateBasic()
}

// NewMsgChannelOpenTry creates a new MsgChannelOpenTry instance
func NewMsgChannelOpenTry(
	portID, version string, channelOrder Order, connectionHops []string,
	counterpartyPortID, counterpartyChannelID, counterpartyVersion string,
	proofInit []byte, proofHeight clienttypes.Height, signer string,
) *MsgChannelOpenTry {
	counterparty := NewCounterparty(counterpartyPortID, counterpartyChannelID)
	channel := NewChannel(TRYOPEN, channelOrder, counterparty, connectionHops, version)
	return &MsgChannelOpenTry{
		PortId:              portID,
		Channel:             channel,
		CounterpartyVersion: counterpartyVersion,
		ProofInit:           proofInit,
		ProofHeight:         proofHeight,
		Signer:              signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgChannelOpenTry) ValidateBasic() error {
	if err := host.PortIdentifierValidator(msg.PortId); err != nil {
		return sdkerrors.Wrap(err, "invalid port ID")
	}
	if len(msg.ProofInit) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrEmptyProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	if msg.Channel.State != TRYOPEN {
		return sdkerrors.Wrapf(ErrInvalidChannelState,
			"channel state must be TRYOPEN in MsgChannelOpenTry. expected: %s, got: %s",
			TRYOPEN, msg.Channel.State,
		)
	}
	if !IsValidChannelID(msg.Channel.Counterparty.ChannelId) {
		return sdkerrors.Wrap(ErrInvalidCounterparty, "invalid counterparty channel identifier")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Channel.ValidateBasic()
}

// NewMsgChannelOpenAck creates a new MsgChannelOpenAck instance
func NewMsgChannelOpenAck(
	portID, channelID, counterpartyChannelID string, cpv string, proofTry []byte, proofHeight clienttypes.Height,
	signer string,
) *MsgChannelOpenAck {
	return &MsgChannelOpenAck{
		PortId:                portID,
		ChannelId:             channelID,
		CounterpartyChannelId: counterpartyChannelID,
		CounterpartyVersion:   cpv,
		ProofTry:              proofTry,
		ProofHeight:           proofHeight,
		Signer:                signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgChannelOpenAck) ValidateBasic() error {
	if err := host.PortIdentifierValidator(msg.PortId); err != nil {
		return sdkerrors.Wrap(err, "invalid port ID")
	}
	if !IsValidChannelID(msg.ChannelId) {
		return ErrInvalidChannelIdentifier
	}
	if err := host.ChannelIdentifierValidator(msg.CounterpartyChannelId); err != nil {
		return sdkerrors.Wrap(err, "invalid counterparty channel ID")
	}
	if len(msg.ProofTry) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrEmptyProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	return validateSigner(msg.Signer)
}

// NewMsgChannelOpenConfirm creates a new MsgChannelOpenConfirm instance
func NewMsgChannelOpenConfirm(
	portID, channelID string, proofAck []byte, proofHeight clienttypes.Height,
	signer string,
) *MsgChannelOpenConfirm {
	return &MsgChannelOpenConfirm{
		PortId:      portID,
		ChannelId:   channelID,
		ProofAck:    proofAck,
		ProofHeight: proofHeight,
		Signer:      signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgChannelOpenConfirm) ValidateBasic() error {
	if err := host.PortIdentifierValidator(msg.PortId); err != nil {
		return sdkerrors.Wrap(err, "invalid port ID")
	}
	if !IsValidChannelID(msg.ChannelId) {
		return ErrInvalidChannelIdentifier
	}
	if len(msg.ProofAck) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrEmptyProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	return validateSigner(msg.Signer)
}

// NewMsgChannelCloseInit creates a new MsgChannelCloseInit instance
func NewMsgChannelCloseInit(portID string, channelID string, signer string) *MsgChannelCloseInit {
	return &MsgChannelCloseInit{
		PortId:    portID,
		ChannelId: channelID,
		Signer:    signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgChannelCloseInit) ValidateBasic() error {
	if err := host.PortIdentifierValidator(msg.PortId); err != nil {
		return sdkerrors.Wrap(err, "invalid port ID")
	}
	if !IsValidChannelID(msg.ChannelId) {
		return ErrInvalidChannelIdentifier
	}
	return validateSigner(msg.Signer)
}

// NewMsgChannelCloseConfirm creates a new MsgChannelCloseConfirm instance
func NewMsgChannelCloseConfirm(
	portID, channelID string, proofInit []byte, proofHeight clienttypes.Height,
	signer string,
) *MsgChannelCloseConfirm {
	return &MsgChannelCloseConfirm{
		PortId:      portID,
		ChannelId:   channelID,
		ProofInit:   proofInit,
		ProofHeight: proofHeight,
		Signer:      signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgChannelCloseConfirm) ValidateBasic() error {
	if err := host.PortIdentifierValidator(msg.PortId); err != nil {
		return sdkerrors.Wrap(err, "invalid port ID")
	}
	if !IsValidChannelID(msg.ChannelId) {
		return ErrInvalidChannelIdentifier
	}
	if len(msg.ProofInit) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrEmptyProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	return validateSigner(msg.Signer)
}

// ValidateBasic implements sdk.Msg
func (msg MsgSendPacket) ValidateBasic() error {
	if err := host.PortIdentifierValidator(msg.SourcePort); err != nil {
		return sdkerrors.Wrap(err, "invalid source port ID")
	}
	if !IsValidChannelID(msg.SourceChannel) {
		return ErrInvalidChannelIdentifier
	}
	if !NewTimeout(msg.TimeoutHeight, msg.TimeoutTimestamp).IsValid() {
		return sdkerrors.Wrap(ErrInvalidTimeout, "packet timeout height and packet timeout timestamp cannot both be 0")
	}
	return validateSigner(msg.Signer)
}

// NewMsgRecvPacket constructs new MsgRecvPacket
func NewMsgRecvPacket(
	packet Packet, proofCommitment []byte, proofHeight clienttypes.Height,
	signer string,
) *MsgRecvPacket {
	return &MsgRecvPacket{
		Packet:          packet,
		ProofCommitment: proofCommitment,
		ProofHeight:     proofHeight,
		Signer:          signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgRecvPacket) ValidateBasic() error {
	if len(msg.ProofCommitment) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrEmptyProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Packet.ValidateBasic()
}

// ValidateBasic implements sdk.Msg
func (msg MsgIntentRecvPacket) ValidateBasic() error {
	if err := validateSigner(msg.MarketMaker); err != nil {
		return err
	}
	return msg.Packet.ValidateBasic()
}

// ValidateBasic implements sdk.Msg
func (msg MsgRecvPackets) ValidateBasic() error {
	if len(msg.Packets) == 0 {
		return sdkerrors.Wrap(ErrInvalidBatch, "batch cannot be empty")
	}
	if len(msg.Proof) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrEmptyProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return validatePackets(msg.Packets)
}

// NewMsgAcknowledgement constructs a new MsgAcknowledgement
func NewMsgAcknowledgement(
	packet Packet,
	ack, proofAcked []byte,
	proofHeight clienttypes.Height,
	signer string,
) *MsgAcknowledgement {
	return &MsgAcknowledgement{
		Packet:          packet,
		Acknowledgement: ack,
		ProofAcked:      proofAcked,
		ProofHeight:     proofHeight,
		Signer:          signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgAcknowledgement) ValidateBasic() error {
	if len(msg.ProofAcked) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrEmptyProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	if len(msg.Acknowledgement) == 0 {
		return sdkerrors.Wrap(ErrInvalidAcknowledgement, "ack bytes cannot be empty")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Packet.ValidateBasic()
}

// ValidateBasic implements sdk.Msg
func (msg MsgAcknowledgements) ValidateBasic() error {
	if len(msg.Packets) != len(msg.Acknowledgements) {
		return sdkerrors.Wrapf(ErrInvalidBatch, "%d packets, %d acknowledgements", len(msg.Packets), len(msg.Acknowledgements))
	}
	if len(msg.Proof) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrEmptyProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	for _, ack := range msg.Acknowledgements {
		if len(ack) == 0 {
			return sdkerrors.Wrap(ErrInvalidAcknowledgement, "ack bytes cannot be empty")
		}
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return validatePackets(msg.Packets)
}

// NewMsgTimeout constructs new MsgTimeout
func NewMsgTimeout(
	packet Packet, proofUnreceived []byte,
	proofHeight clienttypes.Height, signer string,
) *MsgTimeout {
	return &MsgTimeout{
		Packet:          packet,
		ProofUnreceived: proofUnreceived,
		ProofHeight:     proofHeight,
		Signer:          signer,
	}
}

// ValidateBasic implements sdk.Msg
func (msg MsgTimeout) ValidateBasic() error {
	if len(msg.ProofUnreceived) == 0 {
		return sdkerrors.Wrap(commitmenttypes.ErrEmptyProof, "cannot submit an empty proof")
	}
	if msg.ProofHeight.IsZero() {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidHeight, "proof height must be non-zero")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return msg.Packet.ValidateBasic()
}

// ValidateBasic implements sdk.Msg
func (msg MsgBatchSend) ValidateBasic() error {
	if len(msg.Packets) == 0 {
		return sdkerrors.Wrap(ErrInvalidBatch, "batch cannot be empty")
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return validatePackets(msg.Packets)
}

// ValidateBasic implements sdk.Msg
func (msg MsgBatchAcks) ValidateBasic() error {
	if len(msg.Packets) == 0 || len(msg.Packets) != len(msg.Acknowledgements) {
		return sdkerrors.Wrapf(ErrInvalidBatch, "%d packets, %d acknowledgements", len(msg.Packets), len(msg.Acknowledgements))
	}
	if err := validateSigner(msg.Signer); err != nil {
		return err
	}
	return validatePackets(msg.Packets)
}

// ValidateBasic implements sdk.Msg
func (msg MsgSetMarketMaker) ValidateBasic() error {
	if err := validateSigner(msg.Authority); err != nil {
		return err
	}
	return validateSigner(msg.MarketMaker)
}

// ValidateBasic implements sdk.Msg
func (msg MsgRemoveMarketMaker) ValidateBasic() error {
	if err := validateSigner(msg.Authority); err != nil {
		return err
	}
	return validateSigner(msg.MarketMaker)
}

func validatePackets(packets []Packet) error {
	for _, packet := range packets {
		if err := packet.ValidateBasic(); err != nil {
			return sdkerrors.Wrapf(err, "sequence %d", packet.GetSequence())
		}
	}
	return nil
}

func validateSigner(signer string) error {
	if strings.TrimSpace(signer) == "" {
		return sdkerrors.Wrap(ibcerrors.ErrInvalidAddress, "signer cannot be blank")
	}
	return nil
}

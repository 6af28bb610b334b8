package keeper_test

import (
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	"github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	ibctesting "github.com/ComposableFi/ibc-core/testing"
)

// TestTimeoutPacket tests the TimeoutPacket call on chainA by ensuring the timeout has passed
// on chainB, but that no receipt has been written yet.
func (suite *KeeperTestSuite) TestTimeoutPacket() {
	var (
		path              *ibctesting.Path
		packet            types.Packet
		proofHeightOffset uint64
	)

	// sendPacket sends a packet on chainA which times out at the current height
	// of chainB. Once the client on chainA is updated the timeout has elapsed.
	sendPacket := func(timeoutHeight clienttypes.Height, timeoutTimestamp uint64) {
		seq, err := path.EndpointA.SendPacket(timeoutHeight, timeoutTimestamp, ibctesting.MockPacketData)
		suite.Require().NoError(err)

		packet = types.NewPacket(ibctesting.MockPacketData, seq, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
			path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, timeoutTimestamp)
	}

	testCases := []testCase{
		{"success: timeout height", func() {}, nil},
		{"success: timeout timestamp", func() {
			sendPacket(disabledTimeoutHeight, uint64(suite.chainB.GetContext().BlockTime().UnixNano()))
			suite.Require().NoError(path.EndpointA.UpdateClient())
		}, nil},
		{"success: channel closed", func() {
			suite.Require().NoError(path.EndpointA.SetChannelState(types.CLOSED))
		}, nil},
		{"channel not found", func() {
			packet.SourceChannel = ibctesting.InvalidID
		}, types.ErrChannelNotFound},
		{"packet destination port does not match counterparty port", func() {
			packet.DestinationPort = ibctesting.InvalidID
		}, types.ErrInvalidPacket},
		{"packet destination channel does not match counterparty channel", func() {
			packet.DestinationChannel = chanIDA
		}, types.ErrInvalidPacket},
		{"connection not found", func() {
			channel := path.EndpointA.GetChannel()
			channel.ConnectionHops = []string{connIDA}
			path.EndpointA.SetChannel(channel)
		}, connectiontypes.ErrConnectionNotFound},
		{"packet never sent", func() {
			packet.Sequence = 5
		}, types.ErrPacketCommitmentNotFound},
		{"packet already timed out", func() {
			suite.Require().NoError(path.EndpointA.TimeoutPacket(packet))
		}, types.ErrPacketCommitmentNotFound},
		{"packet does not match the commitment", func() {
			packet.Data = []byte("tampered packet data")
		}, types.ErrInvalidPacket},
		{"timeout not reached", func() {
			sendPacket(suite.chainB.GetTimeoutHeight(), disabledTimeoutTimestamp)
			suite.Require().NoError(path.EndpointA.UpdateClient())
		}, types.ErrTimeoutNotReached},
		{"consensus state not found at proof height", func() {
			proofHeightOffset = 100
		}, clienttypes.ErrConsensusStateNotFound},
		{"packet received on the counterparty", func() {
			suite.chainB.App.GetIBCKeeper().ChannelKeeper.SetPacketReceipt(suite.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
			suite.coordinator.CommitBlock(suite.chainB)
			suite.Require().NoError(path.EndpointA.UpdateClient())
		}, commitmenttypes.ErrInvalidProof},
		{"client frozen", func() {
			freezeClient(path.EndpointA)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.Setup()

			sendPacket(suite.chainB.GetSelfHeight(), disabledTimeoutTimestamp)
			suite.Require().NoError(path.EndpointA.UpdateClient())
			proofHeightOffset = 0

			tc.malleate()

			proof, proofHeight := path.EndpointB.QueryProof(host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence()))
			proofHeight.RevisionHeight += proofHeightOffset

			channelKeeper := suite.chainA.App.GetIBCKeeper().ChannelKeeper
			err := channelKeeper.TimeoutPacket(suite.chainA.GetContext(), packet, proof, proofHeight)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().False(channelKeeper.HasPacketCommitment(suite.chainA.GetContext(), packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence()))
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestTimeoutThenAcknowledge checks that a timed out packet can no longer be
// acknowledged.
func (suite *KeeperTestSuite) TestTimeoutThenAcknowledge() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.Setup()

	timeoutHeight := suite.chainB.GetSelfHeight()
	seq, err := path.EndpointA.SendPacket(timeoutHeight, disabledTimeoutTimestamp, ibctesting.MockPacketData)
	suite.Require().NoError(err)

	packet := types.NewPacket(ibctesting.MockPacketData, seq, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
		path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, disabledTimeoutTimestamp)

	// the packet can no longer be received on chainB
	err = path.EndpointB.RecvPacket(packet)
	suite.Require().ErrorIs(err, types.ErrPacketTimeout)

	suite.Require().NoError(path.EndpointA.UpdateClient())
	suite.Require().NoError(path.EndpointA.TimeoutPacket(packet))

	err = path.EndpointA.AcknowledgePacket(packet, ibctesting.MockAcknowledgement)
	suite.Require().ErrorIs(err, types.ErrPacketCommitmentNotFound)
}

package keeper_test

import (
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	"github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	ibcerrors "github.com/ComposableFi/ibc-core/modules/core/errors"
	ibctesting "github.com/ComposableFi/ibc-core/testing"
)

// TestSendPacket tests SendPacket from chainA to chainB
func (suite *KeeperTestSuite) TestSendPacket() {
	var (
		path             *ibctesting.Path
		sourcePort       string
		sourceChannel    string
		timeoutHeight    clienttypes.Height
		timeoutTimestamp uint64
		packetData       []byte
	)

	testCases := []testCase{
		{"success", func() {}, nil},
		{"success with timeout timestamp only", func() {
			timeoutHeight = disabledTimeoutHeight
			timeoutTimestamp = uint64(suite.chainB.GetContext().BlockTime().UnixNano()) + 1_000_000_000_000
		}, nil},
		{"channel not found", func() {
			sourceChannel = ibctesting.InvalidID
		}, types.ErrChannelNotFound},
		{"channel closed", func() {
			suite.Require().NoError(path.EndpointA.SetChannelState(types.CLOSED))
		}, types.ErrInvalidChannelState},
		{"next sequence send not found", func() {
			// copy the channel under an identifier that never went through the handshake
			suite.chainA.App.GetIBCKeeper().ChannelKeeper.SetChannel(suite.chainA.GetContext(), sourcePort, chanIDA, path.EndpointA.GetChannel())
			sourceChannel = chanIDA
		}, types.ErrSequenceSendNotFound},
		{"timeout disabled", func() {
			timeoutHeight = disabledTimeoutHeight
			timeoutTimestamp = disabledTimeoutTimestamp
		}, types.ErrInvalidPacket},
		{"client frozen", func() {
			freezeClient(path.EndpointA)
		}, clienttypes.ErrClientNotActive},
		{"timeout height already passed on the counterparty", func() {
			timeoutHeight = path.EndpointA.GetClientState().GetLatestHeight().(clienttypes.Height)
		}, types.ErrPacketTimeout},
		{"timeout timestamp already passed on the counterparty", func() {
			timeoutHeight = disabledTimeoutHeight
			timeoutTimestamp = 1
		}, types.ErrPacketTimeout},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.Setup()

			sourcePort = path.EndpointA.ChannelConfig.PortID
			sourceChannel = path.EndpointA.ChannelID
			timeoutHeight = suite.chainB.GetTimeoutHeight()
			timeoutTimestamp = disabledTimeoutTimestamp
			packetData = ibctesting.MockPacketData

			tc.malleate()

			channelKeeper := suite.chainA.App.GetIBCKeeper().ChannelKeeper
			seq, err := channelKeeper.SendPacket(suite.chainA.GetContext(), sourcePort, sourceChannel, timeoutHeight, timeoutTimestamp, packetData)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(uint64(1), seq)

				packet := types.NewPacket(packetData, seq, sourcePort, sourceChannel,
					path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, timeoutTimestamp)
				commitment := channelKeeper.GetPacketCommitment(suite.chainA.GetContext(), sourcePort, sourceChannel, seq)
				suite.Require().Equal(types.CommitPacket(packet), commitment)

				nextSeq, found := channelKeeper.GetNextSequenceSend(suite.chainA.GetContext(), sourcePort, sourceChannel)
				suite.Require().True(found)
				suite.Require().Equal(uint64(2), nextSeq)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Zero(seq)
			}
		})
	}
}

// TestRecvPacket tests RecvPacket on chainB. Since packet commitment verification will always
// occur last (resource instensive), only tests expected to succeed and packet commitment
// verification tests need to simulate sending a packet from chainA to chainB.
func (suite *KeeperTestSuite) TestRecvPacket() {
	var (
		path   *ibctesting.Path
		packet types.Packet
	)

	sendPacket := func(timeoutHeight clienttypes.Height, timeoutTimestamp uint64) {
		seq, err := path.EndpointA.SendPacket(timeoutHeight, timeoutTimestamp, ibctesting.MockPacketData)
		suite.Require().NoError(err)

		packet = types.NewPacket(ibctesting.MockPacketData, seq, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
			path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, timeoutTimestamp)
	}

	testCases := []testCase{
		{"success", func() {}, nil},
		{"channel not found", func() {
			packet.DestinationChannel = ibctesting.InvalidID
		}, types.ErrChannelNotFound},
		{"channel not open", func() {
			suite.Require().NoError(path.EndpointB.SetChannelState(types.CLOSED))
		}, types.ErrInvalidChannelState},
		{"packet source port does not match counterparty port", func() {
			packet.SourcePort = ibctesting.InvalidID
		}, types.ErrInvalidPacket},
		{"packet source channel does not match counterparty channel", func() {
			packet.SourceChannel = chanIDA
		}, types.ErrInvalidPacket},
		{"connection not open", func() {
			connection := path.EndpointB.GetConnection()
			connection.State = connectiontypes.TRYOPEN
			path.EndpointB.SetConnection(connection)
		}, connectiontypes.ErrInvalidConnectionState},
		{"timeout height passed", func() {
			sendPacket(suite.chainB.GetSelfHeight(), disabledTimeoutTimestamp)
		}, types.ErrPacketTimeout},
		{"timeout timestamp passed", func() {
			sendPacket(disabledTimeoutHeight, uint64(suite.chainB.GetContext().BlockTime().UnixNano()))
		}, types.ErrPacketTimeout},
		{"packet data does not match the commitment", func() {
			packet.Data = []byte("tampered packet data")
		}, commitmenttypes.ErrValueMismatch},
		{"packet already received", func() {
			proof, proofHeight := queryPacketProof(path, packet)
			suite.Require().NoError(suite.chainB.App.GetIBCKeeper().ChannelKeeper.RecvPacket(suite.chainB.GetContext(), packet, proof, proofHeight))
		}, types.ErrPacketReceived},
		{"client frozen", func() {
			freezeClient(path.EndpointB)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.Setup()

			sendPacket(suite.chainB.GetTimeoutHeight(), disabledTimeoutTimestamp)

			tc.malleate()

			proof, proofHeight := queryPacketProof(path, packet)
			channelKeeper := suite.chainB.App.GetIBCKeeper().ChannelKeeper
			err := channelKeeper.RecvPacket(suite.chainB.GetContext(), packet, proof, proofHeight)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().True(channelKeeper.HasPacketReceipt(suite.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence()))

				// the acknowledgement is written separately by the message server
				suite.Require().False(channelKeeper.HasPacketAcknowledgement(suite.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence()))
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// queryPacketProof returns the proof of the packet commitment on chainA at the
// latest height known by the client on chainB.
func queryPacketProof(path *ibctesting.Path, packet types.Packet) ([]byte, clienttypes.Height) {
	return path.EndpointA.QueryProof(host.PacketCommitmentKey(packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence()))
}

func (suite *KeeperTestSuite) TestIntentRecvPacket() {
	var (
		path        *ibctesting.Path
		packet      types.Packet
		marketMaker string
	)

	testCases := []testCase{
		{"success", func() {}, nil},
		{"success with a market maker added by the authority", func() {
			marketMaker = "relayer-fill"
			suite.Require().NoError(suite.chainB.App.GetIBCKeeper().ChannelKeeper.SetMarketMaker(suite.chainB.GetContext(), ibctesting.Authority, marketMaker))
		}, nil},
		{"unregistered market maker", func() {
			marketMaker = "relayer-fill"
		}, ibcerrors.ErrOnlyMarketMaker},
		{"removed market maker", func() {
			suite.Require().NoError(suite.chainB.App.GetIBCKeeper().ChannelKeeper.RemoveMarketMaker(suite.chainB.GetContext(), ibctesting.Authority, marketMaker))
		}, ibcerrors.ErrOnlyMarketMaker},
		{"packet already received through a proof", func() {
			suite.Require().NoError(path.EndpointB.RecvPacket(packet))
		}, types.ErrPacketReceived},
		{"channel not open", func() {
			suite.Require().NoError(path.EndpointB.SetChannelState(types.CLOSED))
		}, types.ErrInvalidChannelState},
		{"timeout height passed", func() {
			// the intent is not proven so the packet need not be committed on chainA
			packet.TimeoutHeight = suite.chainB.GetSelfHeight()
		}, types.ErrPacketTimeout},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.Setup()

			timeoutHeight := suite.chainB.GetTimeoutHeight()
			seq, err := path.EndpointA.SendPacket(timeoutHeight, disabledTimeoutTimestamp, ibctesting.MockPacketData)
			suite.Require().NoError(err)

			packet = types.NewPacket(ibctesting.MockPacketData, seq, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
				path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, disabledTimeoutTimestamp)
			marketMaker = ibctesting.MarketMaker

			tc.malleate()

			channelKeeper := suite.chainB.App.GetIBCKeeper().ChannelKeeper
			err = channelKeeper.IntentRecvPacket(suite.chainB.GetContext(), packet, marketMaker)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().True(channelKeeper.HasPacketReceipt(suite.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence()))

				// a later proven receive of the same packet is rejected
				proof, proofHeight := queryPacketProof(path, packet)
				err = channelKeeper.RecvPacket(suite.chainB.GetContext(), packet, proof, proofHeight)
				suite.Require().ErrorIs(err, types.ErrPacketReceived)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestIntentRecvPacketWritesAcknowledgement fills a packet through the message
// server and checks the acknowledgement can be relayed back to chainA.
func (suite *KeeperTestSuite) TestIntentRecvPacketWritesAcknowledgement() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.Setup()

	timeoutHeight := suite.chainB.GetTimeoutHeight()
	seq, err := path.EndpointA.SendPacket(timeoutHeight, disabledTimeoutTimestamp, ibctesting.MockPacketData)
	suite.Require().NoError(err)

	packet := types.NewPacket(ibctesting.MockPacketData, seq, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
		path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, disabledTimeoutTimestamp)

	res, err := path.EndpointB.IntentRecvPacket(packet)
	suite.Require().NoError(err)

	ack, err := ibctesting.ParseAckFromEvents(res.Events)
	suite.Require().NoError(err)
	suite.Require().Equal(ibctesting.MockAcknowledgement, ack)

	stored, found := suite.chainB.App.GetIBCKeeper().ChannelKeeper.GetPacketAcknowledgement(suite.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
	suite.Require().True(found)
	suite.Require().Equal(types.CommitAcknowledgement(ack), stored)

	suite.Require().NoError(path.EndpointA.AcknowledgePacket(packet, ack))
	suite.Require().False(suite.chainA.App.GetIBCKeeper().ChannelKeeper.HasPacketCommitment(suite.chainA.GetContext(), packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence()))
}

func (suite *KeeperTestSuite) TestWriteAcknowledgement() {
	var (
		path   *ibctesting.Path
		packet types.Packet
		ack    []byte
	)

	testCases := []testCase{
		{"success", func() {}, nil},
		{"channel not found", func() {
			packet.DestinationChannel = ibctesting.InvalidID
		}, types.ErrChannelNotFound},
		{"channel not open", func() {
			suite.Require().NoError(path.EndpointB.SetChannelState(types.CLOSED))
		}, types.ErrInvalidChannelState},
		{"acknowledgement already written", func() {
			suite.Require().NoError(suite.chainB.App.GetIBCKeeper().ChannelKeeper.WriteAcknowledgement(suite.chainB.GetContext(), packet, ack))
		}, types.ErrAcknowledgementExists},
		{"empty acknowledgement", func() {
			ack = []byte{}
		}, types.ErrInvalidAcknowledgement},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.Setup()

			timeoutHeight := suite.chainB.GetTimeoutHeight()
			seq, err := path.EndpointA.SendPacket(timeoutHeight, disabledTimeoutTimestamp, ibctesting.MockPacketData)
			suite.Require().NoError(err)

			packet = types.NewPacket(ibctesting.MockPacketData, seq, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
				path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, disabledTimeoutTimestamp)

			proof, proofHeight := queryPacketProof(path, packet)
			suite.Require().NoError(suite.chainB.App.GetIBCKeeper().ChannelKeeper.RecvPacket(suite.chainB.GetContext(), packet, proof, proofHeight))

			ack = ibctesting.MockAcknowledgement

			tc.malleate()

			channelKeeper := suite.chainB.App.GetIBCKeeper().ChannelKeeper
			err = channelKeeper.WriteAcknowledgement(suite.chainB.GetContext(), packet, ack)

			if tc.expErr == nil {
				suite.Require().NoError(err)

				stored, found := channelKeeper.GetPacketAcknowledgement(suite.chainB.GetContext(), packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
				suite.Require().True(found)
				suite.Require().Equal(types.CommitAcknowledgement(ack), stored)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestAcknowledgePacket tests the call AcknowledgePacket on chainA.
func (suite *KeeperTestSuite) TestAcknowledgePacket() {
	var (
		path   *ibctesting.Path
		packet types.Packet
		ack    []byte
	)

	testCases := []testCase{
		{"success", func() {}, nil},
		{"channel not found", func() {
			packet.SourceChannel = ibctesting.InvalidID
		}, types.ErrChannelNotFound},
		{"channel not open", func() {
			suite.Require().NoError(path.EndpointA.SetChannelState(types.CLOSED))
		}, types.ErrInvalidChannelState},
		{"packet destination port does not match counterparty port", func() {
			packet.DestinationPort = ibctesting.InvalidID
		}, types.ErrInvalidPacket},
		{"packet destination channel does not match counterparty channel", func() {
			packet.DestinationChannel = chanIDA
		}, types.ErrInvalidPacket},
		{"connection not open", func() {
			connection := path.EndpointA.GetConnection()
			connection.State = connectiontypes.TRYOPEN
			path.EndpointA.SetConnection(connection)
		}, connectiontypes.ErrInvalidConnectionState},
		{"packet already acknowledged", func() {
			suite.Require().NoError(path.EndpointA.AcknowledgePacket(packet, ack))
		}, types.ErrPacketCommitmentNotFound},
		{"packet does not match the commitment", func() {
			packet.Data = []byte("tampered packet data")
		}, types.ErrInvalidPacket},
		{"empty acknowledgement", func() {
			ack = []byte{}
		}, types.ErrInvalidAcknowledgement},
		{"acknowledgement does not match the counterparty", func() {
			ack = []byte("other acknowledgement")
		}, commitmenttypes.ErrValueMismatch},
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

			timeoutHeight := suite.chainB.GetTimeoutHeight()
			seq, err := path.EndpointA.SendPacket(timeoutHeight, disabledTimeoutTimestamp, ibctesting.MockPacketData)
			suite.Require().NoError(err)

			packet = types.NewPacket(ibctesting.MockPacketData, seq, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
				path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, timeoutHeight, disabledTimeoutTimestamp)

			// receiving updates the client on chainA
			suite.Require().NoError(path.EndpointB.RecvPacket(packet))
			ack = ibctesting.MockAcknowledgement

			tc.malleate()

			proof, proofHeight := path.EndpointB.QueryProof(host.PacketAcknowledgementKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence()))

			channelKeeper := suite.chainA.App.GetIBCKeeper().ChannelKeeper
			err = channelKeeper.AcknowledgePacket(suite.chainA.GetContext(), packet, ack, proof, proofHeight)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().False(channelKeeper.HasPacketCommitment(suite.chainA.GetContext(), packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence()))
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

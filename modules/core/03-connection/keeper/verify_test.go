package keeper_test

import (
	"time"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	ibctesting "github.com/ComposableFi/ibc-core/testing"
)

var defaultTimeoutHeight = clienttypes.NewHeight(1, 100000)

// TestVerifyConnectionState verifies the connection state of the connection
// on chainB. The connections on chainA and chainB are fully opened.
func (suite *KeeperTestSuite) TestVerifyConnectionState() {
	var (
		path               *ibctesting.Path
		expectedConnection types.ConnectionEnd
		heightDiff         uint64
	)

	cases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"verification success", func() {}, nil},
		{"client state not found", func() {
			connection := path.EndpointA.GetConnection()
			connection.ClientId = ibctesting.InvalidID
			path.EndpointA.SetConnection(connection)
		}, clienttypes.ErrClientNotActive},
		{"consensus state for proof height not found", func() {
			heightDiff = 5
		}, clienttypes.ErrConsensusStateNotFound},
		{"verification failed", func() {
			expectedConnection.ClientId = ibctesting.InvalidID
		}, commitmenttypes.ErrValueMismatch},
		{"client status is not active - client is frozen", func() {
			freezeClient(path.EndpointA)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range cases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest() // reset
			heightDiff = 0    // must be explicitly changed

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupConnections()

			expectedConnection = path.EndpointB.GetConnection()

			tc.malleate()

			connection := path.EndpointA.GetConnection()

			connectionKey := host.ConnectionKey(path.EndpointB.ConnectionID)
			proof, proofHeight := path.EndpointB.QueryProof(connectionKey)
			proofHeight = clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+heightDiff)

			err := suite.chainA.App.GetIBCKeeper().ConnectionKeeper.VerifyConnectionState(
				suite.chainA.GetContext(), connection,
				proofHeight, proof, path.EndpointB.ConnectionID, expectedConnection,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestVerifyPacketCommitment has chainA verify the packet commitment
// on chainB.
func (suite *KeeperTestSuite) TestVerifyPacketCommitment() {
	var (
		path            *ibctesting.Path
		packet          channeltypes.Packet
		heightDiff      uint64
		delayPeriod     uint64
		commitmentBytes []byte
	)

	cases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"verification success", func() {}, nil},
		{"verification success: delay period passed", func() {
			delayPeriod = uint64(time.Second.Nanoseconds())
		}, nil},
		{"delay period has not passed", func() {
			delayPeriod = uint64(time.Hour.Nanoseconds())
		}, types.ErrDelayPeriodNotPassed},
		{"client state not found", func() {
			connection := path.EndpointB.GetConnection()
			connection.ClientId = ibctesting.InvalidID
			path.EndpointB.SetConnection(connection)
		}, clienttypes.ErrClientNotActive},
		{"consensus state not found", func() {
			heightDiff = 5
		}, clienttypes.ErrConsensusStateNotFound},
		{"verification failed", func() {
			commitmentBytes = []byte("invalid packet commitment")
		}, commitmenttypes.ErrValueMismatch},
		{"client status is not active - client is frozen", func() {
			freezeClient(path.EndpointB)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range cases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest() // reset
			heightDiff = 0
			delayPeriod = 0

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.Setup()

			sequence, err := path.EndpointA.SendPacket(defaultTimeoutHeight, 0, ibctesting.MockPacketData)
			suite.Require().NoError(err)

			packet = channeltypes.NewPacket(ibctesting.MockPacketData, sequence, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, 0)
			commitmentBytes = channeltypes.CommitPacket(packet)

			tc.malleate()

			connection := path.EndpointB.GetConnection()
			connection.DelayPeriod = delayPeriod
			commitmentKey := host.PacketCommitmentKey(packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence())
			proof, proofHeight := path.EndpointA.QueryProof(commitmentKey)
			proofHeight = clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+heightDiff)

			err = suite.chainB.App.GetIBCKeeper().ConnectionKeeper.VerifyPacketCommitment(
				suite.chainB.GetContext(), connection, proofHeight, proof,
				packet.GetSourcePort(), packet.GetSourceChannel(), packet.GetSequence(), commitmentBytes,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestVerifyPacketAcknowledgement has chainA verify the acknowledgement on
// chainB.
func (suite *KeeperTestSuite) TestVerifyPacketAcknowledgement() {
	var (
		path        *ibctesting.Path
		ack         []byte
		heightDiff  uint64
		delayPeriod uint64
	)

	cases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"verification success", func() {}, nil},
		{"verification success: delay period passed", func() {
			delayPeriod = uint64(time.Second.Nanoseconds())
		}, nil},
		{"delay period has not passed", func() {
			delayPeriod = uint64(time.Hour.Nanoseconds())
		}, types.ErrDelayPeriodNotPassed},
		{"client state not found", func() {
			connection := path.EndpointA.GetConnection()
			connection.ClientId = ibctesting.InvalidID
			path.EndpointA.SetConnection(connection)
		}, clienttypes.ErrClientNotActive},
		{"consensus state not found", func() {
			heightDiff = 5
		}, clienttypes.ErrConsensusStateNotFound},
		{"verification failed", func() {
			ack = []byte("different ack")
		}, commitmenttypes.ErrValueMismatch},
		{"client status is not active - client is frozen", func() {
			freezeClient(path.EndpointA)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range cases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest() // reset
			ack = ibctesting.MockAcknowledgement
			heightDiff = 0
			delayPeriod = 0

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.Setup()

			// send and receive packet
			sequence, err := path.EndpointA.SendPacket(defaultTimeoutHeight, 0, ibctesting.MockPacketData)
			suite.Require().NoError(err)

			packet := channeltypes.NewPacket(ibctesting.MockPacketData, sequence, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, 0)
			err = path.EndpointB.RecvPacket(packet)
			suite.Require().NoError(err)

			tc.malleate()

			connection := path.EndpointA.GetConnection()
			connection.DelayPeriod = delayPeriod
			packetAckKey := host.PacketAcknowledgementKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
			proof, proofHeight := path.EndpointB.QueryProof(packetAckKey)
			proofHeight = clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+heightDiff)

			err = suite.chainA.App.GetIBCKeeper().ConnectionKeeper.VerifyPacketAcknowledgement(
				suite.chainA.GetContext(), connection, proofHeight, proof,
				packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence(), channeltypes.CommitAcknowledgement(ack),
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestVerifyPacketReceiptAbsence has chainA verify the receipt absence on
// chainB.
func (suite *KeeperTestSuite) TestVerifyPacketReceiptAbsence() {
	var (
		path        *ibctesting.Path
		packet      channeltypes.Packet
		heightDiff  uint64
		delayPeriod uint64
	)

	cases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{"verification success", func() {}, nil},
		{"verification success: delay period passed", func() {
			delayPeriod = uint64(time.Second.Nanoseconds())
		}, nil},
		{"delay period has not passed", func() {
			delayPeriod = uint64(time.Hour.Nanoseconds())
		}, types.ErrDelayPeriodNotPassed},
		{"client state not found", func() {
			connection := path.EndpointA.GetConnection()
			connection.ClientId = ibctesting.InvalidID
			path.EndpointA.SetConnection(connection)
		}, clienttypes.ErrClientNotActive},
		{"consensus state not found", func() {
			heightDiff = 5
		}, clienttypes.ErrConsensusStateNotFound},
		{"verification failed - receipt exists", func() {
			err := path.EndpointB.RecvPacket(packet)
			suite.Require().NoError(err)
		}, commitmenttypes.ErrInvalidProof},
		{"client status is not active - client is frozen", func() {
			freezeClient(path.EndpointA)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range cases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest() // reset
			heightDiff = 0
			delayPeriod = 0

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.Setup()

			// send, only receive in malleate if applicable
			sequence, err := path.EndpointA.SendPacket(defaultTimeoutHeight, 0, ibctesting.MockPacketData)
			suite.Require().NoError(err)

			packet = channeltypes.NewPacket(ibctesting.MockPacketData, sequence, path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID, path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID, defaultTimeoutHeight, 0)

			tc.malleate()

			connection := path.EndpointA.GetConnection()
			connection.DelayPeriod = delayPeriod

			if tc.expErr != clienttypes.ErrClientNotActive {
				suite.Require().NoError(path.EndpointA.UpdateClient())
			}

			packetReceiptKey := host.PacketReceiptKey(packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence())
			proof, proofHeight := path.EndpointB.QueryProof(packetReceiptKey)
			proofHeight = clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+heightDiff)

			err = suite.chainA.App.GetIBCKeeper().ConnectionKeeper.VerifyPacketReceiptAbsence(
				suite.chainA.GetContext(), connection, proofHeight, proof,
				packet.GetDestPort(), packet.GetDestChannel(), packet.GetSequence(),
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

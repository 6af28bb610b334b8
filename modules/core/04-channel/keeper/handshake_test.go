package keeper_test

import (
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	"github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	ibctesting "github.com/ComposableFi/ibc-core/testing"
)

type testCase = struct {
	msg      string
	malleate func()
	expErr   error
}

// TestChanOpenInit tests the OpenInit handshake call for channels. It uses message passing
// to enter into the appropriate state and then calls ChanOpenInit directly. The channel is
// being created on chainA.
func (suite *KeeperTestSuite) TestChanOpenInit() {
	var (
		path           *ibctesting.Path
		order          types.Order
		connectionHops []string
		counterparty   types.Counterparty
	)

	testCases := []testCase{
		{"success", func() {}, nil},
		{"ordered channel is rejected", func() {
			order = types.ORDERED
		}, types.ErrInvalidChannelOrdering},
		{"too many connection hops", func() {
			connectionHops = []string{path.EndpointA.ConnectionID, path.EndpointA.ConnectionID}
		}, types.ErrTooManyConnectionHops},
		{"counterparty channel identifier is not empty", func() {
			counterparty.ChannelId = types.FormatChannelIdentifier(1)
		}, types.ErrInvalidCounterparty},
		{"connection doesn't exist", func() {
			connectionHops = []string{connIDA}
		}, connectiontypes.ErrConnectionNotFound},
		{"client is frozen", func() {
			freezeClient(path.EndpointA)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupConnections()

			order = types.UNORDERED
			connectionHops = []string{path.EndpointA.ConnectionID}
			counterparty = types.NewCounterparty(ibctesting.MockPort, "")

			tc.malleate()

			channelID, err := suite.chainA.App.GetIBCKeeper().ChannelKeeper.ChanOpenInit(
				suite.chainA.GetContext(), order, connectionHops,
				path.EndpointA.ChannelConfig.PortID, counterparty, path.EndpointA.ChannelConfig.Version,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.FormatChannelIdentifier(0), channelID)

				// the channel is only written once the application accepted it
				suite.Require().False(suite.chainA.App.GetIBCKeeper().ChannelKeeper.HasChannel(suite.chainA.GetContext(), path.EndpointA.ChannelConfig.PortID, channelID))
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Equal("", channelID)
			}
		})
	}
}

// TestChanOpenTry tests the OpenTry handshake call for channels. It uses message passing
// to enter into the appropriate state and then calls ChanOpenTry directly. The channel
// is being created on chainB.
func (suite *KeeperTestSuite) TestChanOpenTry() {
	var (
		path                *ibctesting.Path
		order               types.Order
		connectionHops      []string
		counterparty        types.Counterparty
		counterpartyVersion string
		heightDiff          uint64
	)

	testCases := []testCase{
		{"success", func() {}, nil},
		{"ordered channel is rejected", func() {
			order = types.ORDERED
		}, types.ErrInvalidChannelOrdering},
		{"too many connection hops", func() {
			connectionHops = []string{path.EndpointB.ConnectionID, path.EndpointB.ConnectionID}
		}, types.ErrTooManyConnectionHops},
		{"counterparty channel identifier is empty", func() {
			counterparty.ChannelId = ""
		}, types.ErrInvalidCounterparty},
		{"connection doesn't exist", func() {
			connectionHops = []string{connIDA}
		}, connectiontypes.ErrConnectionNotFound},
		{"connection is not OPEN", func() {
			connection := path.EndpointB.GetConnection()
			connection.State = connectiontypes.TRYOPEN
			path.EndpointB.SetConnection(connection)
		}, connectiontypes.ErrInvalidConnectionState},
		{"counterparty version does not match", func() {
			counterpartyVersion = "version"
		}, commitmenttypes.ErrValueMismatch},
		{"counterparty channel was never initialised", func() {
			counterparty.ChannelId = types.FormatChannelIdentifier(5)
		}, commitmenttypes.ErrInvalidProof},
		{"consensus state not found", func() {
			heightDiff = 3
		}, clienttypes.ErrConsensusStateNotFound},
		{"client is frozen", func() {
			freezeClient(path.EndpointB)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			heightDiff = 0

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupConnections()

			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			order = types.UNORDERED
			connectionHops = []string{path.EndpointB.ConnectionID}
			counterparty = types.NewCounterparty(path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID)
			counterpartyVersion = path.EndpointA.ChannelConfig.Version

			suite.Require().NoError(path.EndpointB.UpdateClient())

			tc.malleate()

			channelKey := host.ChannelKey(counterparty.PortId, counterparty.ChannelId)
			proof, proofHeight := path.EndpointA.QueryProof(channelKey)
			proofHeight = clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+heightDiff)

			channelID, err := suite.chainB.App.GetIBCKeeper().ChannelKeeper.ChanOpenTry(
				suite.chainB.GetContext(), order, connectionHops, path.EndpointB.ChannelConfig.PortID,
				counterparty, counterpartyVersion, proof, proofHeight,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.FormatChannelIdentifier(0), channelID)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Equal("", channelID)
			}
		})
	}
}

// TestChanOpenAck tests the OpenAck handshake call for channels. It uses message passing
// to enter into the appropriate state and then calls ChanOpenAck directly. The handshake
// call is occurring on chainA.
func (suite *KeeperTestSuite) TestChanOpenAck() {
	var (
		path                  *ibctesting.Path
		counterpartyChannelID string
		counterpartyVersion   string
	)

	testCases := []testCase{
		{"success", func() {}, nil},
		{"channel doesn't exist", func() {
			path.EndpointA.ChannelID = types.FormatChannelIdentifier(5)
		}, types.ErrChannelNotFound},
		{"channel state is not INIT", func() {
			err := path.EndpointA.SetChannelState(types.OPEN)
			suite.Require().NoError(err)
		}, types.ErrInvalidChannelState},
		{"invalid counterparty channel identifier", func() {
			counterpartyChannelID = "otherchannel"
		}, types.ErrInvalidChannelIdentifier},
		{"counterparty version does not match", func() {
			counterpartyVersion = "version"
		}, types.ErrVersionMismatch},
		{"connection is not OPEN", func() {
			connection := path.EndpointA.GetConnection()
			connection.State = connectiontypes.INIT
			path.EndpointA.SetConnection(connection)
		}, connectiontypes.ErrInvalidConnectionState},
		{"counterparty channel was never created", func() {
			counterpartyChannelID = types.FormatChannelIdentifier(5)
		}, commitmenttypes.ErrInvalidProof},
		{"client is frozen", func() {
			freezeClient(path.EndpointA)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupConnections()

			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ChanOpenTry()
			suite.Require().NoError(err)

			suite.Require().NoError(path.EndpointA.UpdateClient())

			counterpartyChannelID = path.EndpointB.ChannelID
			counterpartyVersion = path.EndpointB.ChannelConfig.Version

			tc.malleate()

			channelKey := host.ChannelKey(path.EndpointB.ChannelConfig.PortID, counterpartyChannelID)
			proof, proofHeight := path.EndpointB.QueryProof(channelKey)

			err = suite.chainA.App.GetIBCKeeper().ChannelKeeper.ChanOpenAck(
				suite.chainA.GetContext(), path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
				counterpartyVersion, counterpartyChannelID, proof, proofHeight,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestChanOpenConfirm tests the OpenConfirm handshake call for channels. It uses message passing
// to enter into the appropriate state and then calls ChanOpenConfirm directly. The handshake
// call is occurring on chainB.
func (suite *KeeperTestSuite) TestChanOpenConfirm() {
	var path *ibctesting.Path

	testCases := []testCase{
		{"success", func() {
			err := path.EndpointA.ChanOpenAck()
			suite.Require().NoError(err)
		}, nil},
		{"channel doesn't exist", func() {
			path.EndpointB.ChannelID = types.FormatChannelIdentifier(5)
		}, types.ErrChannelNotFound},
		{"channel state is not TRYOPEN", func() {
			err := path.EndpointA.ChanOpenAck()
			suite.Require().NoError(err)

			err = path.EndpointB.SetChannelState(types.OPEN)
			suite.Require().NoError(err)
		}, types.ErrInvalidChannelState},
		{"connection is not OPEN", func() {
			connection := path.EndpointB.GetConnection()
			connection.State = connectiontypes.TRYOPEN
			path.EndpointB.SetConnection(connection)
		}, connectiontypes.ErrInvalidConnectionState},
		{"counterparty channel is not OPEN", func() {
			// chainA channel is left in INIT
		}, commitmenttypes.ErrValueMismatch},
		{"client is frozen", func() {
			err := path.EndpointA.ChanOpenAck()
			suite.Require().NoError(err)

			freezeClient(path.EndpointB)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupConnections()

			err := path.EndpointA.ChanOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ChanOpenTry()
			suite.Require().NoError(err)

			tc.malleate()

			if tc.expErr != clienttypes.ErrClientNotActive {
				suite.Require().NoError(path.EndpointB.UpdateClient())
			}

			channelKey := host.ChannelKey(path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID)
			proof, proofHeight := path.EndpointA.QueryProof(channelKey)

			err = suite.chainB.App.GetIBCKeeper().ChannelKeeper.ChanOpenConfirm(
				suite.chainB.GetContext(), path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
				proof, proofHeight,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestChanCloseInit tests the initial closing of a handshake on chainA.
func (suite *KeeperTestSuite) TestChanCloseInit() {
	var path *ibctesting.Path

	testCases := []testCase{
		{"success", func() {}, nil},
		{"channel doesn't exist", func() {
			path.EndpointA.ChannelID = types.FormatChannelIdentifier(5)
		}, types.ErrChannelNotFound},
		{"channel state is CLOSED", func() {
			err := path.EndpointA.SetChannelState(types.CLOSED)
			suite.Require().NoError(err)
		}, types.ErrInvalidChannelState},
		{"client is frozen", func() {
			freezeClient(path.EndpointA)
		}, clienttypes.ErrClientNotActive},
		{"connection is not OPEN", func() {
			connection := path.EndpointA.GetConnection()
			connection.State = connectiontypes.INIT
			path.EndpointA.SetConnection(connection)
		}, connectiontypes.ErrInvalidConnectionState},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.Setup()

			tc.malleate()

			err := suite.chainA.App.GetIBCKeeper().ChannelKeeper.ChanCloseInit(
				suite.chainA.GetContext(), path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.CLOSED, path.EndpointA.GetChannel().State)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestChanCloseConfirm tests the confirming closing channel ends by chainA and chainB.
func (suite *KeeperTestSuite) TestChanCloseConfirm() {
	var path *ibctesting.Path

	testCases := []testCase{
		{"success", func() {
			err := path.EndpointA.ChanCloseInit()
			suite.Require().NoError(err)
		}, nil},
		{"channel doesn't exist", func() {
			path.EndpointB.ChannelID = types.FormatChannelIdentifier(5)
		}, types.ErrChannelNotFound},
		{"channel state is CLOSED", func() {
			err := path.EndpointB.SetChannelState(types.CLOSED)
			suite.Require().NoError(err)
		}, types.ErrInvalidChannelState},
		{"counterparty channel is still OPEN", func() {}, commitmenttypes.ErrValueMismatch},
		{"client is frozen", func() {
			err := path.EndpointA.ChanCloseInit()
			suite.Require().NoError(err)

			freezeClient(path.EndpointB)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.Setup()

			tc.malleate()

			if tc.expErr != clienttypes.ErrClientNotActive {
				suite.Require().NoError(path.EndpointB.UpdateClient())
			}

			channelKey := host.ChannelKey(path.EndpointA.ChannelConfig.PortID, path.EndpointA.ChannelID)
			proof, proofHeight := path.EndpointA.QueryProof(channelKey)

			err := suite.chainB.App.GetIBCKeeper().ChannelKeeper.ChanCloseConfirm(
				suite.chainB.GetContext(), path.EndpointB.ChannelConfig.PortID, path.EndpointB.ChannelID,
				proof, proofHeight,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.CLOSED, path.EndpointB.GetChannel().State)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestHandshakeThroughMessages runs the full handshake through the message
// server and checks the channel ends written on both chains.
func (suite *KeeperTestSuite) TestHandshakeThroughMessages() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.Setup()

	channelA := path.EndpointA.GetChannel()
	channelB := path.EndpointB.GetChannel()

	suite.Require().Equal(types.OPEN, channelA.State)
	suite.Require().Equal(types.OPEN, channelB.State)
	suite.Require().Equal(path.EndpointB.ChannelID, channelA.Counterparty.ChannelId)
	suite.Require().Equal(path.EndpointA.ChannelID, channelB.Counterparty.ChannelId)
	suite.Require().Equal([]string{path.EndpointA.ConnectionID}, channelA.ConnectionHops)
	suite.Require().Equal([]string{path.EndpointB.ConnectionID}, channelB.ConnectionHops)
	suite.Require().Equal(channelA.Version, channelB.Version)

	path.SetChannelOrdered()
	path.EndpointA.ChannelID = ""
	err := path.EndpointA.ChanOpenInit()
	suite.Require().ErrorIs(err, types.ErrInvalidChannelOrdering)
}

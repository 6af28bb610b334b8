package keeper_test

import (
	"time"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	ibctm "github.com/ComposableFi/ibc-core/modules/light-clients/07-tendermint"
	ibctesting "github.com/ComposableFi/ibc-core/testing"
)

// freezeClient freezes the client of the given endpoint.
func freezeClient(endpoint *ibctesting.Endpoint) {
	clientState := endpoint.GetClientState().(*ibctm.ClientState)
	clientState.FrozenHeight = clienttypes.NewHeight(0, 1)
	endpoint.SetClientState(clientState)
}

// TestConnOpenInit - chainA initializes (INIT state) a connection with
// chainB which is yet UNINITIALIZED
func (suite *KeeperTestSuite) TestConnOpenInit() {
	var (
		path         *ibctesting.Path
		version      *types.Version
		delayPeriod  uint64
		counterparty types.Counterparty
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{"success", func() {}, nil},
		{"success with non empty version", func() {
			version = types.GetCompatibleVersions()[0]
		}, nil},
		{"success with non zero delayPeriod", func() {
			delayPeriod = uint64(time.Hour.Nanoseconds())
		}, nil},
		{"invalid version", func() {
			version = &types.Version{}
		}, types.ErrInvalidVersion},
		{"counterparty connection identifier is not empty", func() {
			counterparty.ConnectionId = "connection-9"
		}, types.ErrInvalidCounterparty},
		{"counterparty client identifier is invalid", func() {
			counterparty.ClientId = ""
		}, types.ErrInvalidCounterparty},
		{"client does not exist", func() {
			path.EndpointA.ClientID = "07-tendermint-99"
		}, clienttypes.ErrClientNotActive},
		{"client is frozen", func() {
			freezeClient(path.EndpointA)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			version = nil     // must be explicitly changed
			delayPeriod = 0

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()
			counterparty = types.NewCounterparty(path.EndpointB.ClientID, "", suite.chainB.GetPrefix())

			tc.malleate()

			connectionID, err := suite.chainA.App.GetIBCKeeper().ConnectionKeeper.ConnOpenInit(suite.chainA.GetContext(), path.EndpointA.ClientID, counterparty, version, delayPeriod)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.FormatConnectionIdentifier(0), connectionID)

				path.EndpointA.ConnectionID = connectionID
				connection := path.EndpointA.GetConnection()
				suite.Require().Equal(types.INIT, connection.State)
				suite.Require().Equal(delayPeriod, connection.DelayPeriod)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Equal("", connectionID)
			}
		})
	}
}

// TestConnOpenTry - chainB calls ConnOpenTry to verify the state of
// connection on chainA is INIT
func (suite *KeeperTestSuite) TestConnOpenTry() {
	var (
		path        *ibctesting.Path
		delayPeriod uint64
		versions    []*types.Version
		heightDiff  uint64
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{"success", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)
		}, nil},
		{"success with delay period", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			delayPeriod = uint64(time.Hour.Nanoseconds())

			// set delay period on counterparty to non-zero value
			conn := path.EndpointA.GetConnection()
			conn.DelayPeriod = delayPeriod
			path.EndpointA.SetConnection(conn)

			// commit in order for proof to return correct value
			suite.coordinator.CommitBlock(suite.chainA)
		}, nil},
		{"counterparty versions is empty", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			versions = nil
		}, types.ErrVersionNegotiationFailed},
		{"counterparty versions don't have a match", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			version := types.NewVersion("0.0", nil)
			versions = []*types.Version{version}
		}, types.ErrVersionNegotiationFailed},
		{"connection state verification failed", func() {
			// chainA connection not created
			path.EndpointA.ConnectionID = types.FormatConnectionIdentifier(0)
		}, commitmenttypes.ErrInvalidProof},
		{"delay period differs from the counterparty connection", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			delayPeriod = 1
		}, commitmenttypes.ErrValueMismatch},
		{"consensus state not found", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			heightDiff = 5
		}, clienttypes.ErrConsensusStateNotFound},
		{"client is frozen", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			freezeClient(path.EndpointB)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest()                        // reset
			versions = types.GetCompatibleVersions() // may be changed in malleate
			delayPeriod = 0
			heightDiff = 0

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()

			tc.malleate()

			counterparty := types.NewCounterparty(path.EndpointA.ClientID, path.EndpointA.ConnectionID, suite.chainA.GetPrefix())

			// ensure client is up to date to receive proof
			if tc.expErr != clienttypes.ErrClientNotActive {
				err := path.EndpointB.UpdateClient()
				suite.Require().NoError(err)
			}

			connectionKey := host.ConnectionKey(path.EndpointA.ConnectionID)
			proofInit, proofHeight := path.EndpointA.QueryProof(connectionKey)
			proofHeight = clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+heightDiff)

			connectionID, err := suite.chainB.App.GetIBCKeeper().ConnectionKeeper.ConnOpenTry(
				suite.chainB.GetContext(), counterparty, delayPeriod, path.EndpointB.ClientID, versions,
				proofInit, proofHeight,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.FormatConnectionIdentifier(0), connectionID)

				path.EndpointB.ConnectionID = connectionID
				connection := path.EndpointB.GetConnection()
				suite.Require().Equal(types.TRYOPEN, connection.State)
				suite.Require().Equal(delayPeriod, connection.DelayPeriod)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Equal("", connectionID)
			}
		})
	}
}

// TestConnOpenAck - Ack the change of connection state to TRYOPEN on Chain B.
// The handshake call is occurring on chainA.
func (suite *KeeperTestSuite) TestConnOpenAck() {
	var (
		path       *ibctesting.Path
		version    *types.Version
		heightDiff uint64
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{"success", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ConnOpenTry()
			suite.Require().NoError(err)
		}, nil},
		{"connection not found", func() {
			// connections are never created
			path.EndpointA.ConnectionID = types.FormatConnectionIdentifier(0)
			path.EndpointB.ConnectionID = types.FormatConnectionIdentifier(0)
		}, types.ErrConnectionNotFound},
		{"invalid connection state", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ConnOpenTry()
			suite.Require().NoError(err)

			connection := path.EndpointA.GetConnection()
			connection.State = types.TRYOPEN
			path.EndpointA.SetConnection(connection)
		}, types.ErrInvalidConnectionState},
		{"incompatible version", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ConnOpenTry()
			suite.Require().NoError(err)

			version = types.NewVersion("2.0", nil)
		}, types.ErrVersionNegotiationFailed},
		{"connection state verification failed", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			// chainB connection is never created
			path.EndpointB.ConnectionID = types.FormatConnectionIdentifier(0)
		}, commitmenttypes.ErrInvalidProof},
		{"consensus state not found", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ConnOpenTry()
			suite.Require().NoError(err)

			heightDiff = 5
		}, clienttypes.ErrConsensusStateNotFound},
		{"client is frozen", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ConnOpenTry()
			suite.Require().NoError(err)

			freezeClient(path.EndpointA)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest()                      // reset
			version = ibctesting.ConnectionVersion // must be explicitly changed in malleate
			heightDiff = 0

			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()

			tc.malleate()

			// ensure client is up to date to receive proof
			if tc.expErr != clienttypes.ErrClientNotActive {
				err := path.EndpointA.UpdateClient()
				suite.Require().NoError(err)
			}

			connectionKey := host.ConnectionKey(path.EndpointB.ConnectionID)
			proofTry, proofHeight := path.EndpointB.QueryProof(connectionKey)
			proofHeight = clienttypes.NewHeight(proofHeight.RevisionNumber, proofHeight.RevisionHeight+heightDiff)

			err := suite.chainA.App.GetIBCKeeper().ConnectionKeeper.ConnOpenAck(
				suite.chainA.GetContext(), path.EndpointA.ConnectionID, version, path.EndpointB.ConnectionID,
				proofTry, proofHeight,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)

				connection := path.EndpointA.GetConnection()
				suite.Require().Equal(types.OPEN, connection.State)
				suite.Require().Equal(path.EndpointB.ConnectionID, connection.Counterparty.ConnectionId)
				suite.Require().Equal([]*types.Version{version}, connection.Versions)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestConnOpenConfirm - chainB calls ConnOpenConfirm to confirm that
// chainA state is now OPEN.
func (suite *KeeperTestSuite) TestConnOpenConfirm() {
	var path *ibctesting.Path
	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{"success", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ConnOpenTry()
			suite.Require().NoError(err)

			err = path.EndpointA.ConnOpenAck()
			suite.Require().NoError(err)
		}, nil},
		{"connection not found", func() {
			// connections are never created
			path.EndpointA.ConnectionID = types.FormatConnectionIdentifier(0)
			path.EndpointB.ConnectionID = types.FormatConnectionIdentifier(0)
		}, types.ErrConnectionNotFound},
		{"chain B's connection state is not TRYOPEN", func() {
			// connections are OPEN
			path.CreateConnections()
		}, types.ErrInvalidConnectionState},
		{"connection state verification failed", func() {
			// chainA is in INIT
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ConnOpenTry()
			suite.Require().NoError(err)
		}, commitmenttypes.ErrValueMismatch},
		{"client is frozen", func() {
			err := path.EndpointA.ConnOpenInit()
			suite.Require().NoError(err)

			err = path.EndpointB.ConnOpenTry()
			suite.Require().NoError(err)

			err = path.EndpointA.ConnOpenAck()
			suite.Require().NoError(err)

			freezeClient(path.EndpointB)
		}, clienttypes.ErrClientNotActive},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()

			tc.malleate()

			// ensure client is up to date to receive proof
			if tc.expErr != clienttypes.ErrClientNotActive {
				err := path.EndpointB.UpdateClient()
				suite.Require().NoError(err)
			}

			connectionKey := host.ConnectionKey(path.EndpointA.ConnectionID)
			proofAck, proofHeight := path.EndpointA.QueryProof(connectionKey)

			err := suite.chainB.App.GetIBCKeeper().ConnectionKeeper.ConnOpenConfirm(
				suite.chainB.GetContext(), path.EndpointB.ConnectionID, proofAck, proofHeight,
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(types.OPEN, path.EndpointB.GetConnection().State)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestHandshakeStatus checks that every step of the handshake reports the
// status of the client it verifies against.
func (suite *KeeperTestSuite) TestHandshakeStatus() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupClients()

	suite.Require().Equal(exported.Active, suite.chainB.App.GetIBCKeeper().ClientKeeper.GetClientStatus(suite.chainB.GetContext(), path.EndpointB.ClientID))

	suite.Require().NoError(path.EndpointA.ConnOpenInit())

	// expire the client of chainA on chainB
	suite.chainB.ExpireClient(ibctesting.TrustingPeriod)
	suite.Require().Equal(exported.Expired, suite.chainB.App.GetIBCKeeper().ClientKeeper.GetClientStatus(suite.chainB.GetContext(), path.EndpointB.ClientID))

	connectionKey := host.ConnectionKey(path.EndpointA.ConnectionID)
	proofInit, proofHeight := path.EndpointA.QueryProof(connectionKey)
	counterparty := types.NewCounterparty(path.EndpointA.ClientID, path.EndpointA.ConnectionID, suite.chainA.GetPrefix())

	_, err := suite.chainB.App.GetIBCKeeper().ConnectionKeeper.ConnOpenTry(
		suite.chainB.GetContext(), counterparty, 0, path.EndpointB.ClientID, types.GetCompatibleVersions(),
		proofInit, proofHeight,
	)
	suite.Require().ErrorIs(err, clienttypes.ErrClientNotActive)
}

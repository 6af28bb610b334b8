package tendermint_test

import (
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	ibctm "github.com/ComposableFi/ibc-core/modules/light-clients/07-tendermint"
	ibctesting "github.com/ComposableFi/ibc-core/testing"
)

func (suite *TendermintTestSuite) TestVerifyHeader() {
	var (
		path   *ibctesting.Path
		header *ibctm.Header
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success", func() {}, nil,
		},
		{
			"success: non-adjacent header", func() {
				suite.coordinator.CommitNBlocks(suite.chainB, 3)

				var err error
				header, err = suite.chainA.ConstructUpdateTMClientHeader(suite.chainB, path.EndpointA.ClientID)
				suite.Require().NoError(err)
			}, nil,
		},
		{
			"trusted consensus state not found", func() {
				suite.coordinator.CommitBlock(suite.chainB)

				var err error
				header, err = suite.chainA.ConstructUpdateTMClientHeader(suite.chainB, path.EndpointA.ClientID)
				suite.Require().NoError(err)

				// a height between the client's latest height and the header
				header.TrustedHeight = header.GetHeight()
				header.TrustedHeight.RevisionHeight--
			}, clienttypes.ErrConsensusStateNotFound,
		},
		{
			"trusted validators do not match the consensus state", func() {
				valSet, _ := newValSet(suite.T())
				trustedVals, err := valSet.ToProto()
				suite.Require().NoError(err)
				header.TrustedValidators = trustedVals
			}, ibctm.ErrInvalidValidatorSet,
		},
		{
			"header signed by an unknown validator set", func() {
				valSet, signers := newValSet(suite.T())
				trustedHeight := clienttypes.MustHeight(path.EndpointA.GetClientState().GetLatestHeight())
				header = suite.createHeader(
					suite.chainB.ProposedHeader.Height, trustedHeight, suite.chainB.ProposedHeader.Time,
					appHash("unknown"), valSet, signers,
				)
			}, clienttypes.ErrInvalidHeader,
		},
		{
			"client expired", func() {
				suite.chainA.ExpireClient(ibctesting.TrustingPeriod)
			}, clienttypes.ErrClientExpired,
		},
		{
			"client frozen", func() {
				clientState := path.EndpointA.GetClientState().(*ibctm.ClientState)
				clientState.FrozenHeight = clienttypes.NewHeight(0, 1)
				path.EndpointA.SetClientState(clientState)
			}, clienttypes.ErrClientFrozen,
		},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset
			path = ibctesting.NewPath(suite.chainA, suite.chainB)
			path.SetupClients()

			suite.coordinator.CommitBlock(suite.chainB)

			var err error
			header, err = suite.chainA.ConstructUpdateTMClientHeader(suite.chainB, path.EndpointA.ClientID)
			suite.Require().NoError(err)

			tc.malleate()

			clientKeeper := suite.chainA.App.GetIBCKeeper().ClientKeeper
			err = clientKeeper.UpdateClient(suite.chainA.GetContext(), path.EndpointA.ClientID, header, suite.chainA.SenderAccount, suite.chainA.SenderAccount)

			if tc.expErr == nil {
				suite.Require().NoError(err)

				clientState := path.EndpointA.GetClientState()
				suite.Require().Equal(header.GetHeight(), clientState.GetLatestHeight())

				consensusState := path.EndpointA.GetConsensusState(header.GetHeight())
				suite.Require().Equal(header.ConsensusState(), consensusState)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestUpdateOlderHeader checks that a header below the latest height adds a
// consensus state without moving the client back.
func (suite *TendermintTestSuite) TestUpdateOlderHeader() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupClients()

	trustedHeight := clienttypes.MustHeight(path.EndpointA.GetClientState().GetLatestHeight())

	suite.coordinator.CommitBlock(suite.chainB)
	olderHeader, err := suite.chainA.ConstructUpdateTMClientHeader(suite.chainB, path.EndpointA.ClientID)
	suite.Require().NoError(err)

	suite.coordinator.CommitBlock(suite.chainB)
	suite.Require().NoError(path.EndpointA.UpdateClient())
	latestHeight := path.EndpointA.GetClientState().GetLatestHeight()
	suite.Require().True(latestHeight.GT(olderHeader.GetHeight()))

	olderHeader.TrustedHeight = trustedHeight
	suite.Require().NoError(path.EndpointA.UpdateClientWithMessage(olderHeader))

	suite.Require().Equal(latestHeight, path.EndpointA.GetClientState().GetLatestHeight())
	suite.Require().Equal(olderHeader.ConsensusState(), path.EndpointA.GetConsensusState(olderHeader.GetHeight()))
}

func (suite *TendermintTestSuite) TestStatus() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupClients()

	clientKeeper := suite.chainA.App.GetIBCKeeper().ClientKeeper
	suite.Require().Equal(exported.Active, clientKeeper.GetClientStatus(suite.chainA.GetContext(), path.EndpointA.ClientID))

	suite.chainA.ExpireClient(ibctesting.TrustingPeriod)
	suite.Require().Equal(exported.Expired, clientKeeper.GetClientStatus(suite.chainA.GetContext(), path.EndpointA.ClientID))

	// a frozen client reports Frozen even once expired
	clientState := path.EndpointA.GetClientState().(*ibctm.ClientState)
	clientState.FrozenHeight = clienttypes.NewHeight(0, 1)
	path.EndpointA.SetClientState(clientState)
	suite.Require().Equal(exported.Frozen, clientKeeper.GetClientStatus(suite.chainA.GetContext(), path.EndpointA.ClientID))
}

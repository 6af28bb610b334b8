package tendermint_test

import (
	"time"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	ibctm "github.com/ComposableFi/ibc-core/modules/light-clients/07-tendermint"
	ibctesting "github.com/ComposableFi/ibc-core/testing"
)

func (suite *TendermintTestSuite) TestVerifyMisbehaviour() {
	var (
		path          *ibctesting.Path
		misbehaviour  *ibctm.Misbehaviour
		trustedHeight clienttypes.Height
		height        int64
		now           time.Time
	)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success: conflicting headers at the same height", func() {}, nil,
		},
		{
			"success: time violation at increasing heights", func() {
				misbehaviour = ibctm.NewMisbehaviour(
					suite.createHeader(height+1, trustedHeight, now, appHash("app"), suite.chainB.Vals, suite.chainB.Signers),
					suite.createHeader(height, trustedHeight, now.Add(time.Minute), appHash("app"), suite.chainB.Vals, suite.chainB.Signers),
				)
			}, nil,
		},
		{
			"identical headers", func() {
				header := suite.createHeader(height, trustedHeight, now, appHash("app"), suite.chainB.Vals, suite.chainB.Signers)
				misbehaviour = ibctm.NewMisbehaviour(header, header)
			}, clienttypes.ErrInvalidMisbehaviour,
		},
		{
			"monotonically increasing time", func() {
				misbehaviour = ibctm.NewMisbehaviour(
					suite.createHeader(height+1, trustedHeight, now.Add(time.Minute), appHash("app"), suite.chainB.Vals, suite.chainB.Signers),
					suite.createHeader(height, trustedHeight, now, appHash("app"), suite.chainB.Vals, suite.chainB.Signers),
				)
			}, clienttypes.ErrInvalidMisbehaviour,
		},
		{
			"trusted consensus state not found", func() {
				misbehaviour.Header2.TrustedHeight = clienttypes.NewHeight(trustedHeight.RevisionNumber, uint64(height-1))
				suite.Require().NotEqual(trustedHeight, misbehaviour.Header2.TrustedHeight)
			}, clienttypes.ErrConsensusStateNotFound,
		},
		{
			"header signed by an unknown validator set", func() {
				valSet, signers := newValSet(suite.T())
				misbehaviour.Header1 = suite.createHeader(height, trustedHeight, now, appHash("app"), valSet, signers)
			}, clienttypes.ErrInvalidMisbehaviour,
		},
		{
			"trusting period passed", func() {
				suite.chainA.ExpireClient(ibctesting.TrustingPeriod)
			}, clienttypes.ErrClientExpired,
		},
		{
			"client already frozen", func() {
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

			trustedHeight = clienttypes.MustHeight(path.EndpointA.GetClientState().GetLatestHeight())
			height = int64(trustedHeight.RevisionHeight) + 2
			now = suite.chainB.ProposedHeader.Time

			misbehaviour = ibctm.NewMisbehaviour(
				suite.createHeader(height, trustedHeight, now, appHash("app"), suite.chainB.Vals, suite.chainB.Signers),
				suite.createHeader(height, trustedHeight, now, appHash("fork"), suite.chainB.Vals, suite.chainB.Signers),
			)

			tc.malleate()

			clientKeeper := suite.chainA.App.GetIBCKeeper().ClientKeeper
			err := clientKeeper.SubmitMisbehaviour(suite.chainA.GetContext(), path.EndpointA.ClientID, misbehaviour, suite.chainA.SenderAccount, suite.chainA.SenderAccount)

			if tc.expErr == nil {
				suite.Require().NoError(err)

				clientState := path.EndpointA.GetClientState()
				suite.Require().Equal(misbehaviour.Header1.GetHeight(), clientState.GetFrozenHeight())
				suite.Require().Equal(exported.Frozen, clientKeeper.GetClientStatus(suite.chainA.GetContext(), path.EndpointA.ClientID))
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

// TestSubmitMisbehaviourThroughEndpoint freezes a client through the message
// server and checks that it can no longer be updated.
func (suite *TendermintTestSuite) TestSubmitMisbehaviourThroughEndpoint() {
	path := ibctesting.NewPath(suite.chainA, suite.chainB)
	path.SetupClients()

	trustedHeight := clienttypes.MustHeight(path.EndpointA.GetClientState().GetLatestHeight())
	height := int64(trustedHeight.RevisionHeight) + 1
	now := suite.chainB.ProposedHeader.Time

	misbehaviour := ibctm.NewMisbehaviour(
		suite.createHeader(height, trustedHeight, now, appHash("app"), suite.chainB.Vals, suite.chainB.Signers),
		suite.createHeader(height, trustedHeight, now, appHash("fork"), suite.chainB.Vals, suite.chainB.Signers),
	)
	suite.Require().NoError(path.EndpointA.SubmitMisbehaviour(misbehaviour))

	err := path.EndpointA.UpdateClient()
	suite.Require().ErrorIs(err, clienttypes.ErrClientFrozen)
}

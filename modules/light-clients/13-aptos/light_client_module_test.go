package aptos_test

import (
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	aptos "github.com/ComposableFi/ibc-core/modules/light-clients/13-aptos"
)

func (suite *AptosTestSuite) TestVerifyCreation() {
	stored, found := suite.keeper.GetClientData(suite.ctx, suite.clientID, aptos.EpochKey(initialEpoch))
	suite.Require().True(found)
	suite.Require().Equal(suite.validators.hash[:], stored)

	consensusState := aptos.NewConsensusState([32]byte{0x01}, versionTime(initialVersion), initialEpoch+1, suite.validators.hash)
	_, err := suite.keeper.CreateClient(
		suite.ctx, exported.Aptos,
		clienttypes.MustMarshalClientState(suite.clientState), clienttypes.MustMarshalConsensusState(consensusState),
		"caller", "relayer",
	)
	suite.Require().ErrorIs(err, aptos.ErrInvalidConsensusState)
}

func (suite *AptosTestSuite) TestVerifyMembership() {
	var (
		height exported.Height
		proof  []byte
		path   []byte
		value  []byte
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
			"wrong value", func() {
				value = []byte("other commitment")
			}, aptos.ErrInvalidProof,
		},
		{
			"proof of another path", func() {
				path = []byte("clients/07-tendermint-0/clientState")
			}, aptos.ErrInvalidProof,
		},
		{
			"absence proof", func() {
				proof = suite.state.proof(suite, absentPath)
			}, aptos.ErrInvalidProof,
		},
		{
			"malformed proof", func() {
				proof = []byte{0x01}
			}, aptos.ErrInvalidProof,
		},
		{
			"height above the latest height", func() {
				height = clienttypes.NewHeight(0, 6)
			}, clienttypes.ErrConsensusStateNotFound,
		},
		{
			"proof against another state root", func() {
				height = clienttypes.NewHeight(0, initialVersion)
			}, aptos.ErrInvalidProof,
		},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			header := suite.newHeader(5, initialEpoch, suite.validators, nil)
			suite.Require().NoError(suite.keeper.UpdateClient(suite.ctx, suite.clientID, header, "caller", "relayer"))

			height = header.GetHeight()
			proof = suite.state.proof(suite, commitmentPath)
			path = commitmentPath
			value = commitmentValue

			tc.malleate()

			err := suite.keeper.VerifyMembership(suite.ctx, suite.clientID, height, proof, path, value)

			if tc.expErr == nil {
				suite.Require().NoError(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (suite *AptosTestSuite) TestVerifyNonMembership() {
	header := suite.newHeader(5, initialEpoch, suite.validators, nil)
	suite.Require().NoError(suite.keeper.UpdateClient(suite.ctx, suite.clientID, header, "caller", "relayer"))
	height := header.GetHeight()

	suite.Require().NoError(suite.keeper.VerifyNonMembership(suite.ctx, suite.clientID, height, suite.state.proof(suite, absentPath), absentPath))

	err := suite.keeper.VerifyNonMembership(suite.ctx, suite.clientID, height, suite.state.proof(suite, commitmentPath), commitmentPath)
	suite.Require().ErrorIs(err, aptos.ErrInvalidProof)
	suite.Require().ErrorIs(err, commitmenttypes.ErrInvalidProof)

	err = suite.keeper.VerifyNonMembership(suite.ctx, suite.clientID, height, suite.state.proof(suite, absentPath), commitmentPath)
	suite.Require().ErrorIs(err, aptos.ErrInvalidProof)
	suite.Require().ErrorIs(err, commitmenttypes.ErrInvalidProof)
}

func (suite *AptosTestSuite) TestStatus() {
	module := aptos.NewLightClientModule()
	suite.Require().Equal(exported.Active, module.Status(suite.ctx, suite.keeper, suite.clientID, suite.clientState))

	clientState := *suite.clientState
	clientState.LatestHeight = clienttypes.NewHeight(0, initialVersion+1)
	suite.Require().Equal(exported.Expired, module.Status(suite.ctx, suite.keeper, suite.clientID, &clientState))

	clientState = *suite.clientState
	clientState.FrozenHeight = clienttypes.NewHeight(0, initialVersion)
	suite.Require().Equal(exported.Frozen, module.Status(suite.ctx, suite.keeper, suite.clientID, &clientState))

	timestamp, err := module.TimestampAtHeight(suite.ctx, suite.keeper, suite.clientID, clienttypes.NewHeight(0, initialVersion))
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(versionTime(initialVersion).UnixNano()), timestamp)
}

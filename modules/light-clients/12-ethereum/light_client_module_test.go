package ethereum_test

import (
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	ethereum "github.com/ComposableFi/ibc-core/modules/light-clients/12-ethereum"
)

func (suite *EthereumTestSuite) TestVerifyCreation() {
	stored, found := suite.keeper.GetClientData(suite.ctx, suite.clientID, ethereum.SyncCommitteeKey(0))
	suite.Require().True(found)
	suite.Require().Equal(suite.committee0.root[:], stored)

	_, found = suite.keeper.GetClientData(suite.ctx, suite.clientID, ethereum.SyncCommitteeKey(1))
	suite.Require().False(found)

	// the initial consensus state must be at the latest slot
	consensusState := ethereum.NewConsensusState(initialSlot+1, [32]byte{0x01}, slotTime(initialSlot), suite.committee0.root, suite.committee1.root)
	_, err := suite.keeper.CreateClient(
		suite.ctx, exported.Ethereum,
		clienttypes.MustMarshalClientState(suite.clientState), clienttypes.MustMarshalConsensusState(consensusState),
		"caller", "relayer",
	)
	suite.Require().ErrorIs(err, ethereum.ErrInvalidConsensusState)

	consensusState.Slot = initialSlot
	clientID, err := suite.keeper.CreateClient(
		suite.ctx, exported.Ethereum,
		clienttypes.MustMarshalClientState(suite.clientState), clienttypes.MustMarshalConsensusState(consensusState),
		"caller", "relayer",
	)
	suite.Require().NoError(err)

	stored, found = suite.keeper.GetClientData(suite.ctx, clientID, ethereum.SyncCommitteeKey(1))
	suite.Require().True(found)
	suite.Require().Equal(suite.committee1.root[:], stored)
}

func (suite *EthereumTestSuite) TestVerifyMembership() {
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
			}, ethereum.ErrInvalidProof,
		},
		{
			"proof of another account", func() {
				proof = suite.execution.wrongContract
			}, ethereum.ErrInvalidProof,
		},
		{
			"storage proof for another path", func() {
				path = absentPath
			}, ethereum.ErrInvalidProof,
		},
		{
			"malformed proof", func() {
				proof = []byte("proof")
			}, ethereum.ErrInvalidProof,
		},
		{
			"consensus state not found", func() {
				height = clienttypes.NewHeight(0, 19)
			}, clienttypes.ErrConsensusStateNotFound,
		},
		{
			"proof against a state without the commitment", func() {
				height = clienttypes.NewHeight(0, initialSlot)
			}, ethereum.ErrInvalidProof,
		},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			header := suite.newHeader(20, suite.execution.root, suite.committee0, nil)
			suite.Require().NoError(suite.keeper.UpdateClient(suite.ctx, suite.clientID, header, "caller", "relayer"))

			height = header.GetHeight()
			proof = suite.execution.membership
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

func (suite *EthereumTestSuite) TestVerifyNonMembership() {
	header := suite.newHeader(20, suite.execution.root, suite.committee0, nil)
	suite.Require().NoError(suite.keeper.UpdateClient(suite.ctx, suite.clientID, header, "caller", "relayer"))
	height := header.GetHeight()

	suite.Require().NoError(suite.keeper.VerifyNonMembership(suite.ctx, suite.clientID, height, suite.execution.nonMembership, absentPath))

	// the commitment exists
	err := suite.keeper.VerifyNonMembership(suite.ctx, suite.clientID, height, suite.execution.membership, commitmentPath)
	suite.Require().ErrorIs(err, ethereum.ErrInvalidProof)
	suite.Require().ErrorIs(err, commitmenttypes.ErrInvalidProof)

	// the absence proof does not cover another slot
	err = suite.keeper.VerifyNonMembership(suite.ctx, suite.clientID, height, suite.execution.nonMembership, commitmentPath)
	suite.Require().ErrorIs(err, ethereum.ErrInvalidProof)
	suite.Require().ErrorIs(err, commitmenttypes.ErrInvalidProof)
}

func (suite *EthereumTestSuite) TestMisbehaviour() {
	testCases := []struct {
		name         string
		misbehaviour func() *ethereum.Misbehaviour
		expErr       error
	}{
		{
			"success: conflicting finalized blocks", func() *ethereum.Misbehaviour {
				return &ethereum.Misbehaviour{
					Header1: suite.newHeader(20, suite.execution.root, suite.committee0, nil),
					Header2: suite.newHeader(20, [32]byte{0x02}, suite.committee0, nil),
				}
			}, nil,
		},
		{
			"same finalized block", func() *ethereum.Misbehaviour {
				return &ethereum.Misbehaviour{
					Header1: suite.newHeader(20, suite.execution.root, suite.committee0, nil),
					Header2: suite.newHeader(20, suite.execution.root, suite.committee0, nil),
				}
			}, ethereum.ErrInvalidMisbehaviour,
		},
		{
			"different slots", func() *ethereum.Misbehaviour {
				return &ethereum.Misbehaviour{
					Header1: suite.newHeader(20, suite.execution.root, suite.committee0, nil),
					Header2: suite.newHeader(21, [32]byte{0x02}, suite.committee0, nil),
				}
			}, ethereum.ErrInvalidMisbehaviour,
		},
		{
			"second header not signed by the committee", func() *ethereum.Misbehaviour {
				header2 := suite.newHeader(20, [32]byte{0x02}, suite.committee0, nil)
				suite.sign(header2, suite.committee1, committeeSize)
				return &ethereum.Misbehaviour{
					Header1: suite.newHeader(20, suite.execution.root, suite.committee0, nil),
					Header2: header2,
				}
			}, ethereum.ErrInvalidSignature,
		},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			err := suite.keeper.SubmitMisbehaviour(suite.ctx, suite.clientID, tc.misbehaviour(), "caller", "relayer")

			if tc.expErr == nil {
				suite.Require().NoError(err)

				clientState, found := suite.keeper.GetClientState(suite.ctx, suite.clientID)
				suite.Require().True(found)
				suite.Require().Equal(clienttypes.NewHeight(0, 20), clientState.GetFrozenHeight())
				suite.Require().Equal(exported.Frozen, suite.keeper.GetClientStatus(suite.ctx, suite.clientID))
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Equal(exported.Active, suite.keeper.GetClientStatus(suite.ctx, suite.clientID))
			}
		})
	}
}

func (suite *EthereumTestSuite) TestStatusAndTimestamp() {
	module := ethereum.NewLightClientModule()
	suite.Require().Equal(exported.Active, module.Status(suite.ctx, suite.keeper, suite.clientID, suite.clientState))

	timestamp, err := suite.keeper.GetTimestampAtHeight(suite.ctx, suite.clientID, clienttypes.NewHeight(0, initialSlot))
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(slotTime(initialSlot).UnixNano()), timestamp)

	_, err = suite.keeper.GetTimestampAtHeight(suite.ctx, suite.clientID, clienttypes.NewHeight(0, initialSlot+1))
	suite.Require().Error(err)

	// no consensus state at the latest slot
	clientState := *suite.clientState
	clientState.LatestSlot = initialSlot + 1
	suite.Require().Equal(exported.Expired, module.Status(suite.ctx, suite.keeper, suite.clientID, &clientState))

	clientState = *suite.clientState
	clientState.FrozenHeight = clienttypes.NewHeight(0, 1)
	suite.Require().Equal(exported.Frozen, module.Status(suite.ctx, suite.keeper, suite.clientID, &clientState))
}

package berachain_test

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ComposableFi/ibc-core/internal/mpt"
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
	mock "github.com/ComposableFi/ibc-core/modules/light-clients/00-mock"
	ibctm "github.com/ComposableFi/ibc-core/modules/light-clients/07-tendermint"
	berachain "github.com/ComposableFi/ibc-core/modules/light-clients/16-berachain"
)

func (suite *BerachainTestSuite) TestVerifyCreation() {
	ctx := suite.chainA.GetContext()
	consensusState := clienttypes.MustMarshalConsensusState(&berachain.ConsensusState{
		StateRoot: suite.state.Root(),
		Timestamp: 1,
		L1Height:  suite.l1Height,
	})

	mockClientID, err := suite.keeper().CreateClient(
		ctx, exported.Mock,
		clienttypes.MustMarshalClientState(mock.NewClientState("l1-chain", clienttypes.NewHeight(1, 1))),
		clienttypes.MustMarshalConsensusState(mock.NewConsensusState(time.Unix(1700000000, 0))),
		"caller", "relayer",
	)
	suite.Require().NoError(err)

	testCases := []struct {
		name       string
		l1ClientID string
		expErr     error
	}{
		{"success", suite.path.EndpointA.ClientID, nil},
		{"l1 client not found", "07-tendermint-99", clienttypes.ErrClientNotFound},
		{"l1 client is not a tendermint client", mockClientID, berachain.ErrInvalidClientState},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			clientState := *suite.clientState
			clientState.L1ClientID = tc.l1ClientID

			_, err := suite.keeper().CreateClient(
				ctx, exported.Berachain,
				clienttypes.MustMarshalClientState(&clientState), consensusState,
				"caller", "relayer",
			)

			if tc.expErr == nil {
				suite.Require().NoError(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (suite *BerachainTestSuite) TestVerifyHeader() {
	var (
		ctx    coretypes.Context
		header *berachain.Header
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
			"execution header changed after commit", func() {
				header.ExecutionHeader.GasUsed++
			}, commitmenttypes.ErrValueMismatch,
		},
		{
			"proof against an earlier tendermint height", func() {
				header.L1Height = suite.l1Height
			}, commitmenttypes.ErrRootMismatch,
		},
		{
			"tendermint height not tracked", func() {
				header.L1Height = clienttypes.NewHeight(header.L1Height.RevisionNumber, 1000)
			}, clienttypes.ErrConsensusStateNotFound,
		},
		{
			"malformed proof", func() {
				header.Proof = []byte{0x01}
			}, commitmenttypes.ErrInvalidMerkleProof,
		},
		{
			"base fee overflows uint256", func() {
				header.ExecutionHeader.BaseFeePerGas = new(big.Int).Lsh(big.NewInt(1), 256)
			}, berachain.ErrInvalidHeader,
		},
		{
			"recursion depth exceeded", func() {
				ctx = ctx.WithMaxClientDepth(0)
			}, clienttypes.ErrMaxRecursionDepth,
		},
		{
			"tendermint client frozen", func() {
				tmClientState := *suite.path.EndpointA.GetClientState().(*ibctm.ClientState)
				tmClientState.FrozenHeight = clienttypes.NewHeight(0, 1)
				suite.path.EndpointA.SetClientState(&tmClientState)
			}, clienttypes.ErrClientFrozen,
		},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			header = suite.commitExecutionHeader(suite.executionHeader(initialBlock + 1))
			ctx = suite.chainA.GetContext()

			tc.malleate()

			err := suite.keeper().UpdateClient(ctx, suite.clientID, header, "caller", "relayer")

			if tc.expErr == nil {
				suite.Require().NoError(err)

				clientState, found := suite.keeper().GetClientState(ctx, suite.clientID)
				suite.Require().True(found)
				suite.Require().Equal(clienttypes.NewHeight(0, initialBlock+1), clientState.GetLatestHeight())

				consensusState := suite.consensusState(initialBlock + 1)
				suite.Require().Equal([32]byte(suite.state.Root()), consensusState.StateRoot)
				suite.Require().Equal(header.L1Height, consensusState.L1Height)
				suite.Require().Equal(uint64(header.GetTime().UnixNano()), consensusState.Timestamp)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (suite *BerachainTestSuite) TestUpdateBelowLatestHeight() {
	header := suite.commitExecutionHeader(suite.executionHeader(initialBlock - 1))
	ctx := suite.chainA.GetContext()

	suite.Require().NoError(suite.keeper().UpdateClient(ctx, suite.clientID, header, "caller", "relayer"))

	suite.Require().Equal(clienttypes.NewHeight(0, initialBlock), suite.keeper().GetLatestHeight(ctx, suite.clientID))
	suite.Require().Equal(header.L1Height, suite.consensusState(initialBlock-1).L1Height)
}

func (suite *BerachainTestSuite) TestMisbehaviour() {
	header := suite.commitExecutionHeader(suite.executionHeader(initialBlock + 1))

	err := suite.keeper().SubmitMisbehaviour(suite.chainA.GetContext(), suite.clientID, header, "caller", "relayer")
	suite.Require().ErrorIs(err, berachain.ErrMisbehaviourNotSupported)

	_, err = berachain.NewLightClientModule().DecodeMisbehaviour([]byte{0x01})
	suite.Require().ErrorIs(err, berachain.ErrMisbehaviourNotSupported)
}

func (suite *BerachainTestSuite) TestVerifyMembership() {
	var (
		height exported.Height
		proof  []byte
		path   []byte
		value  []byte
	)

	prove := func(contract common.Address, path []byte) []byte {
		bz, err := mpt.ProveCommitment(suite.state, suite.storage, contract, path)
		suite.Require().NoError(err)
		return bz
	}

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
			}, berachain.ErrInvalidProof,
		},
		{
			"proof of another path", func() {
				path = absentPath
			}, berachain.ErrInvalidProof,
		},
		{
			"proof of another contract", func() {
				proof = prove(common.HexToAddress("0x0000000000000000000000000000000000000fff"), commitmentPath)
			}, berachain.ErrInvalidProof,
		},
		{
			"malformed proof", func() {
				proof = []byte{0x01}
			}, berachain.ErrInvalidProof,
		},
		{
			"consensus state not found", func() {
				height = clienttypes.NewHeight(0, initialBlock+5)
			}, clienttypes.ErrConsensusStateNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			height = clienttypes.NewHeight(0, initialBlock)
			proof = prove(ibcContract, commitmentPath)
			path = commitmentPath
			value = commitmentValue

			tc.malleate()

			err := suite.keeper().VerifyMembership(suite.chainA.GetContext(), suite.clientID, height, proof, path, value)

			if tc.expErr == nil {
				suite.Require().NoError(err)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (suite *BerachainTestSuite) TestVerifyNonMembership() {
	ctx := suite.chainA.GetContext()
	height := clienttypes.NewHeight(0, initialBlock)

	absence, err := mpt.ProveCommitment(suite.state, suite.storage, ibcContract, absentPath)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.keeper().VerifyNonMembership(ctx, suite.clientID, height, absence, absentPath))

	membership, err := mpt.ProveCommitment(suite.state, suite.storage, ibcContract, commitmentPath)
	suite.Require().NoError(err)
	err = suite.keeper().VerifyNonMembership(ctx, suite.clientID, height, membership, commitmentPath)
	suite.Require().ErrorIs(err, berachain.ErrInvalidProof)
	suite.Require().ErrorIs(err, commitmenttypes.ErrInvalidProof)
}

func (suite *BerachainTestSuite) TestStatus() {
	ctx := suite.chainA.GetContext()
	suite.Require().Equal(exported.Active, suite.keeper().GetClientStatus(ctx, suite.clientID))

	module := berachain.NewLightClientModule()

	clientState := *suite.clientState
	clientState.LatestHeight = clienttypes.NewHeight(0, initialBlock+1)
	suite.Require().Equal(exported.Expired, module.Status(ctx, suite.keeper(), suite.clientID, &clientState))

	clientState = *suite.clientState
	clientState.FrozenHeight = clienttypes.NewHeight(0, initialBlock)
	suite.Require().Equal(exported.Frozen, module.Status(ctx, suite.keeper(), suite.clientID, &clientState))

	tmClientState := *suite.path.EndpointA.GetClientState().(*ibctm.ClientState)
	tmClientState.FrozenHeight = clienttypes.NewHeight(0, 1)
	suite.path.EndpointA.SetClientState(&tmClientState)
	suite.Require().Equal(exported.Frozen, suite.keeper().GetClientStatus(suite.chainA.GetContext(), suite.clientID))

	timestamp, err := module.TimestampAtHeight(ctx, suite.keeper(), suite.clientID, clienttypes.NewHeight(0, initialBlock))
	suite.Require().NoError(err)
	suite.Require().Equal(suite.consensusState(initialBlock).Timestamp, timestamp)
}

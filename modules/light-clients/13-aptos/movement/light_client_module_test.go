package movement_test

import (
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	mock "github.com/ComposableFi/ibc-core/modules/light-clients/00-mock"
	aptos "github.com/ComposableFi/ibc-core/modules/light-clients/13-aptos"
	"github.com/ComposableFi/ibc-core/modules/light-clients/13-aptos/movement"
)

func (suite *MovementTestSuite) TestVerifyCreation() {
	clientState := *suite.clientState
	clientState.L1ClientID = "09-unknown-7"

	consensusState := &movement.ConsensusState{StateRoot: [32]byte{0x01}, Timestamp: 1, L1Height: suite.l1Height}
	_, err := suite.keeper.CreateClient(
		suite.ctx, exported.Movement,
		clienttypes.MustMarshalClientState(&clientState), clienttypes.MustMarshalConsensusState(consensusState),
		"caller", "relayer",
	)
	suite.Require().ErrorIs(err, clienttypes.ErrClientNotFound)
}

func (suite *MovementTestSuite) TestVerifyHeader() {
	var header *movement.Header

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success", func() {}, nil,
		},
		{
			"settled root differs", func() {
				header.LedgerInfo.CommitInfo.ExecutedStateID[0] ^= 1
			}, mock.ErrValueMismatch,
		},
		{
			"version not settled", func() {
				ledgerInfo, stateProof := newLedgerInfo(6, suite.stateRoot)
				header.LedgerInfo = ledgerInfo
				header.StateProof = stateProof
			}, mock.ErrKeyNotFound,
		},
		{
			"empty accumulator root", func() {
				header.LedgerInfo.CommitInfo.ExecutedStateID = [32]byte{}
			}, movement.ErrInvalidSettlement,
		},
		{
			"l1 consensus state not found", func() {
				header.L1Height = clienttypes.NewHeight(1, 100)
			}, clienttypes.ErrConsensusStateNotFound,
		},
		{
			"state proof at another version", func() {
				_, header.StateProof = newLedgerInfo(4, suite.stateRoot)
			}, aptos.ErrInvalidTransactionInfo,
		},
		{
			"composition deeper than allowed", func() {
				suite.ctx = suite.ctx.WithMaxClientDepth(0)
			}, clienttypes.ErrMaxRecursionDepth,
		},
		{
			"l1 client frozen", func() {
				l1, found := suite.keeper.GetClientState(suite.ctx, suite.l1ClientID)
				suite.Require().True(found)
				frozen := *l1.(*mock.ClientState)
				frozen.FrozenHeight = clienttypes.NewHeight(1, 1)
				suite.keeper.SetClientState(suite.ctx, suite.l1ClientID, &frozen)
			}, clienttypes.ErrClientFrozen,
		},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			header = suite.newHeader(5)

			tc.malleate()

			err := suite.keeper.UpdateClient(suite.ctx, suite.clientID, header, "caller", "relayer")

			if tc.expErr == nil {
				suite.Require().NoError(err)

				clientState, found := suite.keeper.GetClientState(suite.ctx, suite.clientID)
				suite.Require().True(found)
				suite.Require().Equal(header.GetHeight(), clientState.GetLatestHeight())

				consensusState, found := suite.keeper.GetClientConsensusState(suite.ctx, suite.clientID, header.GetHeight())
				suite.Require().True(found)
				suite.Require().Equal(suite.stateRoot, consensusState.(*movement.ConsensusState).StateRoot)
				suite.Require().Equal(header.L1Height, consensusState.(*movement.ConsensusState).L1Height)
				suite.Require().Equal(uint64(versionTime(5).UnixNano()), consensusState.GetTimestamp())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (suite *MovementTestSuite) TestVerifyMembership() {
	header := suite.newHeader(5)
	suite.Require().NoError(suite.keeper.UpdateClient(suite.ctx, suite.clientID, header, "caller", "relayer"))
	height := header.GetHeight()

	err := suite.keeper.VerifyMembership(suite.ctx, suite.clientID, height, suite.stateProof(commitmentPath), commitmentPath, commitmentValue)
	suite.Require().NoError(err)

	err = suite.keeper.VerifyMembership(suite.ctx, suite.clientID, height, suite.stateProof(commitmentPath), commitmentPath, []byte("other"))
	suite.Require().ErrorIs(err, aptos.ErrInvalidProof)

	err = suite.keeper.VerifyMembership(suite.ctx, suite.clientID, clienttypes.NewHeight(0, initialVersion), suite.stateProof(commitmentPath), commitmentPath, commitmentValue)
	suite.Require().ErrorIs(err, aptos.ErrInvalidProof)

	suite.Require().NoError(suite.keeper.VerifyNonMembership(suite.ctx, suite.clientID, height, suite.stateProof(absentPath), absentPath))

	err = suite.keeper.VerifyNonMembership(suite.ctx, suite.clientID, height, suite.stateProof(commitmentPath), commitmentPath)
	suite.Require().ErrorIs(err, aptos.ErrInvalidProof)
}

func (suite *MovementTestSuite) TestMisbehaviour() {
	// settles two conflicting ledger infos at version 5 on the L1
	conflicting := func() *movement.Misbehaviour {
		ledgerInfo1, stateProof1 := newLedgerInfo(5, suite.stateRoot)
		ledgerInfo2, stateProof2 := newLedgerInfo(5, [32]byte{0x02})
		root1 := ledgerInfo1.CommitInfo.ExecutedStateID
		root2 := ledgerInfo2.CommitInfo.ExecutedStateID

		path := suite.clientState.SettlementPath(5)
		height1, proof1 := suite.settle(mock.Entry{Key: path, Value: root1[:]})
		height2, proof2 := suite.settle(mock.Entry{Key: path, Value: root2[:]})

		return &movement.Misbehaviour{
			Header1: &movement.Header{L1Height: height1, LedgerInfo: ledgerInfo1, SettlementProof: proof1, StateProof: stateProof1},
			Header2: &movement.Header{L1Height: height2, LedgerInfo: ledgerInfo2, SettlementProof: proof2, StateProof: stateProof2},
		}
	}

	testCases := []struct {
		name     string
		malleate func(*movement.Misbehaviour)
		expErr   error
	}{
		{
			"success", func(*movement.Misbehaviour) {}, nil,
		},
		{
			"same accumulator root", func(m *movement.Misbehaviour) {
				m.Header2 = m.Header1
			}, movement.ErrInvalidMisbehaviour,
		},
		{
			"second root never settled", func(m *movement.Misbehaviour) {
				m.Header2.SettlementProof = m.Header1.SettlementProof
				m.Header2.L1Height = m.Header1.L1Height
			}, mock.ErrValueMismatch,
		},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			misbehaviour := conflicting()
			tc.malleate(misbehaviour)

			err := suite.keeper.SubmitMisbehaviour(suite.ctx, suite.clientID, misbehaviour, "caller", "relayer")

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(exported.Frozen, suite.keeper.GetClientStatus(suite.ctx, suite.clientID))
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Equal(exported.Active, suite.keeper.GetClientStatus(suite.ctx, suite.clientID))
			}
		})
	}
}

func (suite *MovementTestSuite) TestStatus() {
	module := movement.NewLightClientModule()
	suite.Require().Equal(exported.Active, module.Status(suite.ctx, suite.keeper, suite.clientID, suite.clientState))

	clientState := *suite.clientState
	clientState.LatestHeight = clienttypes.NewHeight(0, initialVersion+1)
	suite.Require().Equal(exported.Expired, module.Status(suite.ctx, suite.keeper, suite.clientID, &clientState))

	clientState = *suite.clientState
	clientState.FrozenHeight = clienttypes.NewHeight(0, initialVersion)
	suite.Require().Equal(exported.Frozen, module.Status(suite.ctx, suite.keeper, suite.clientID, &clientState))

	// a frozen L1 client freezes the rollup client
	l1, found := suite.keeper.GetClientState(suite.ctx, suite.l1ClientID)
	suite.Require().True(found)
	frozen := *l1.(*mock.ClientState)
	frozen.FrozenHeight = clienttypes.NewHeight(1, 1)
	suite.keeper.SetClientState(suite.ctx, suite.l1ClientID, &frozen)
	suite.Require().Equal(exported.Frozen, suite.keeper.GetClientStatus(suite.ctx, suite.clientID))

	timestamp, err := module.TimestampAtHeight(suite.ctx, suite.keeper, suite.clientID, clienttypes.NewHeight(0, initialVersion))
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(versionTime(initialVersion).UnixNano()), timestamp)
}

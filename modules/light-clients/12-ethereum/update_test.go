package ethereum_test

import (
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	ethereum "github.com/ComposableFi/ibc-core/modules/light-clients/12-ethereum"
)

func (suite *EthereumTestSuite) TestVerifyHeader() {
	var header *ethereum.Header

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
	}{
		{
			"success", func() {}, nil,
		},
		{
			"success: without next sync committee", func() {
				header = suite.newHeader(20, suite.execution.root, suite.committee0, nil)
			}, nil,
		},
		{
			"success: two thirds participation", func() {
				suite.sign(header, suite.committee0, 11)
			}, nil,
		},
		{
			"insufficient participation", func() {
				suite.sign(header, suite.committee0, 10)
			}, ethereum.ErrInsufficientParticipation,
		},
		{
			"sync committee bits have the wrong length", func() {
				header.SyncAggregate.SyncCommitteeBits = append(header.SyncAggregate.SyncCommitteeBits, 0xff)
			}, ethereum.ErrInvalidHeader,
		},
		{
			"finality branch does not prove the finalized header", func() {
				header.FinalityBranch[0][0] ^= 1
			}, ethereum.ErrInvalidFinalityBranch,
		},
		{
			"execution branch does not prove the payload header", func() {
				header.FinalizedHeader.Execution.StateRoot[0] ^= 1
			}, ethereum.ErrInvalidExecutionBranch,
		},
		{
			"next sync committee is not the proven one", func() {
				nextCommittee := suite.committee0.ssz
				header.NextSyncCommittee = &nextCommittee
			}, ethereum.ErrInvalidNextSyncCommittee,
		},
		{
			"next sync committee without a branch", func() {
				header.NextSyncCommitteeBranch = nil
			}, ethereum.ErrInvalidHeader,
		},
		{
			"no sync committee stored for the signature period", func() {
				header.SignatureSlot = 2*slotsPerPeriod + 1
			}, ethereum.ErrSyncCommitteeNotFound,
		},
		{
			"trusted sync committee does not match the stored root", func() {
				header.TrustedSyncCommittee = suite.committee1.ssz
			}, ethereum.ErrInvalidSyncCommittee,
		},
		{
			"signed by another committee", func() {
				suite.sign(header, suite.committee1, 16)
			}, ethereum.ErrInvalidSignature,
		},
		{
			"signature over a different attested header", func() {
				header.AttestedHeader.Beacon.ProposerIndex++
			}, ethereum.ErrInvalidSignature,
		},
		{
			"signature slot not after the attested slot", func() {
				header.SignatureSlot = header.AttestedHeader.Beacon.Slot
			}, ethereum.ErrInvalidHeader,
		},
		{
			"client frozen", func() {
				clientState := *suite.clientState
				clientState.FrozenHeight = clienttypes.NewHeight(0, 1)
				suite.keeper.SetClientState(suite.ctx, suite.clientID, &clientState)
			}, clienttypes.ErrClientFrozen,
		},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			header = suite.newHeader(20, suite.execution.root, suite.committee0, suite.committee1)

			tc.malleate()

			err := suite.keeper.UpdateClient(suite.ctx, suite.clientID, header, "caller", "relayer")

			if tc.expErr == nil {
				suite.Require().NoError(err)

				clientState, found := suite.keeper.GetClientState(suite.ctx, suite.clientID)
				suite.Require().True(found)
				suite.Require().Equal(header.GetHeight(), clientState.GetLatestHeight())

				consensusState := suite.consensusState(20)
				suite.Require().Equal([32]byte(suite.execution.root), consensusState.StateRoot)
				suite.Require().Equal(uint64(slotTime(20).UnixNano()), consensusState.Timestamp)
				suite.Require().Equal(suite.committee0.root, consensusState.CurrentSyncCommittee)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (suite *EthereumTestSuite) TestSyncCommitteeRotation() {
	header := suite.newHeader(20, suite.execution.root, suite.committee0, suite.committee1)
	suite.Require().NoError(suite.keeper.UpdateClient(suite.ctx, suite.clientID, header, "caller", "relayer"))

	stored, found := suite.keeper.GetClientData(suite.ctx, suite.clientID, ethereum.SyncCommitteeKey(1))
	suite.Require().True(found)
	suite.Require().Equal(suite.committee1.root[:], stored)
	suite.Require().Equal(suite.committee1.root, suite.consensusState(20).NextSyncCommittee)

	// the next period is signed by the rotated committee only
	next := suite.newHeader(slotsPerPeriod+6, suite.execution.root, suite.committee0, nil)
	err := suite.keeper.UpdateClient(suite.ctx, suite.clientID, next, "caller", "relayer")
	suite.Require().ErrorIs(err, ethereum.ErrInvalidSyncCommittee)

	next = suite.newHeader(slotsPerPeriod+6, suite.execution.root, suite.committee1, nil)
	suite.Require().NoError(suite.keeper.UpdateClient(suite.ctx, suite.clientID, next, "caller", "relayer"))

	consensusState := suite.consensusState(slotsPerPeriod + 6)
	suite.Require().Equal(suite.committee1.root, consensusState.CurrentSyncCommittee)
	suite.Require().Equal([32]byte{}, consensusState.NextSyncCommittee)

	// a conflicting committee for an already known period is rejected
	conflicting := suite.newHeader(30, suite.execution.root, suite.committee0, suite.committee0)
	err = suite.keeper.UpdateClient(suite.ctx, suite.clientID, conflicting, "caller", "relayer")
	suite.Require().ErrorIs(err, ethereum.ErrInvalidNextSyncCommittee)
}

// TestUpdateOlderSlot checks that an update below the latest slot adds a
// consensus state without moving the client back.
func (suite *EthereumTestSuite) TestUpdateOlderSlot() {
	suite.Require().NoError(suite.keeper.UpdateClient(
		suite.ctx, suite.clientID, suite.newHeader(30, suite.execution.root, suite.committee0, nil), "caller", "relayer",
	))
	suite.Require().NoError(suite.keeper.UpdateClient(
		suite.ctx, suite.clientID, suite.newHeader(20, suite.execution.root, suite.committee0, nil), "caller", "relayer",
	))

	clientState, found := suite.keeper.GetClientState(suite.ctx, suite.clientID)
	suite.Require().True(found)
	suite.Require().Equal(clienttypes.NewHeight(0, 30), clientState.GetLatestHeight())
	suite.Require().Equal([32]byte(suite.execution.root), suite.consensusState(20).StateRoot)

	// resubmitting the same update is a no-op
	suite.Require().NoError(suite.keeper.UpdateClient(
		suite.ctx, suite.clientID, suite.newHeader(20, suite.execution.root, suite.committee0, nil), "caller", "relayer",
	))
}

package sui_test

import (
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	sui "github.com/ComposableFi/ibc-core/modules/light-clients/15-sui"
)

func (suite *SuiTestSuite) TestVerifyHeader() {
	var header *sui.Header

	resign := func(indices ...uint32) {
		header.Checkpoint.Certificate = suite.committee.sign(suite, header.Checkpoint.Summary, indices...)
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
			"success: three of four members", func() {
				resign(0, 2, 3)
			}, nil,
		},
		{
			"insufficient stake", func() {
				resign(1, 3)
			}, sui.ErrInsufficientStake,
		},
		{
			"signer stake inflated", func() {
				resign(1, 3)
				header.Checkpoint.Certificate.Signers[0].Authority.Stake = 5000
			}, sui.ErrInvalidCommittee,
		},
		{
			"signer is not a committee member", func() {
				header.Checkpoint.Certificate.Signers[0].Authority.PublicKey = suite.nextCommittee.members[0].PublicKey
			}, sui.ErrInvalidCommittee,
		},
		{
			"signers out of order", func() {
				signers := header.Checkpoint.Certificate.Signers
				signers[0], signers[1] = signers[1], signers[0]
			}, sui.ErrInvalidCommittee,
		},
		{
			"signer index outside the committee", func() {
				header.Checkpoint.Certificate.Signers[3].Index = committeeSize
			}, sui.ErrInvalidCommittee,
		},
		{
			"summary changed after signing", func() {
				header.Checkpoint.Summary.NetworkTotalTransactions++
			}, sui.ErrInvalidSignature,
		},
		{
			"signature of another committee", func() {
				other := suite.nextCommittee.sign(suite, header.Checkpoint.Summary, 0, 1, 2, 3)
				header.Checkpoint.Certificate.Signature = other.Signature
			}, sui.ErrInvalidSignature,
		},
		{
			"certificate of another epoch", func() {
				header.Checkpoint.Certificate.Epoch = initialEpoch + 1
			}, sui.ErrInvalidSignature,
		},
		{
			"committee of epoch not found", func() {
				header.Checkpoint.Summary.Epoch = initialEpoch + 1
				header.Checkpoint.Certificate = suite.nextCommittee.sign(suite, header.Checkpoint.Summary, 0, 1, 2, 3)
			}, sui.ErrCommitteeNotFound,
		},
		{
			"next committee stake does not add up", func() {
				members := append(sui.Committee{}, suite.nextCommittee.members...)
				members[0].Stake++
				header.Checkpoint.Summary.EndOfEpoch = &sui.EndOfEpochData{NextEpochCommittee: members}
				resign(0, 1, 2, 3)
			}, sui.ErrInvalidCommittee,
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

			header = suite.newHeader(5, initialEpoch, suite.committee, nil)

			tc.malleate()

			err := suite.keeper.UpdateClient(suite.ctx, suite.clientID, header, "caller", "relayer")

			if tc.expErr == nil {
				suite.Require().NoError(err)

				clientState, found := suite.keeper.GetClientState(suite.ctx, suite.clientID)
				suite.Require().True(found)
				suite.Require().Equal(header.GetHeight(), clientState.GetLatestHeight())

				digest, err := header.Checkpoint.Summary.Digest()
				suite.Require().NoError(err)

				consensusState := suite.consensusState(5)
				suite.Require().Equal(suite.objectRoot, consensusState.ObjectRoot)
				suite.Require().Equal(digest, consensusState.Digest)
				suite.Require().Equal(uint64(checkpointTime(5).UnixNano()), consensusState.Timestamp)
				suite.Require().Equal(suite.committee.info, consensusState.Committee)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (suite *SuiTestSuite) TestCommitteeRotation() {
	header := suite.newHeader(5, initialEpoch, suite.committee, suite.nextCommittee)
	suite.Require().NoError(suite.keeper.UpdateClient(suite.ctx, suite.clientID, header, "caller", "relayer"))

	stored, found := suite.keeper.GetClientData(suite.ctx, suite.clientID, sui.CommitteeKey(initialEpoch+1))
	suite.Require().True(found)
	suite.Require().Equal(suite.nextCommittee.info.Bytes(), stored)

	clientState, found := suite.keeper.GetClientState(suite.ctx, suite.clientID)
	suite.Require().True(found)
	suite.Require().Equal(uint64(initialEpoch+1), clientState.(*sui.ClientState).CurrentEpoch)

	// the old committee cannot certify the new epoch
	stale := suite.newHeader(9, initialEpoch+1, suite.committee, nil)
	err := suite.keeper.UpdateClient(suite.ctx, suite.clientID, stale, "caller", "relayer")
	suite.Require().ErrorIs(err, sui.ErrInvalidCommittee)

	next := suite.newHeader(9, initialEpoch+1, suite.nextCommittee, nil)
	suite.Require().NoError(suite.keeper.UpdateClient(suite.ctx, suite.clientID, next, "caller", "relayer"))
	suite.Require().Equal(suite.nextCommittee.info, suite.consensusState(9).Committee)

	// an end of epoch announcing a different committee for a known epoch
	conflicting := suite.newHeader(7, initialEpoch, suite.committee, suite.committee)
	err = suite.keeper.UpdateClient(suite.ctx, suite.clientID, conflicting, "caller", "relayer")
	suite.Require().ErrorIs(err, sui.ErrInvalidCommittee)
}

func (suite *SuiTestSuite) TestMisbehaviour() {
	certified := func(contentDigest byte, indices ...uint32) sui.CertifiedCheckpointSummary {
		summary := suite.newSummary(5, initialEpoch, nil)
		summary.ContentDigest = [32]byte{contentDigest}
		return sui.CertifiedCheckpointSummary{Summary: summary, Certificate: suite.committee.sign(suite, summary, indices...)}
	}

	testCases := []struct {
		name     string
		malleate func(*sui.Misbehaviour)
		expErr   error
	}{
		{
			"success", func(*sui.Misbehaviour) {}, nil,
		},
		{
			"same digest", func(m *sui.Misbehaviour) {
				m.Checkpoint2 = m.Checkpoint1
			}, sui.ErrInvalidMisbehaviour,
		},
		{
			"different sequence numbers", func(m *sui.Misbehaviour) {
				m.Checkpoint2.Summary.SequenceNumber++
			}, sui.ErrInvalidMisbehaviour,
		},
		{
			"second checkpoint without quorum", func(m *sui.Misbehaviour) {
				m.Checkpoint2 = certified(0x02, 0, 1)
			}, sui.ErrInsufficientStake,
		},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			misbehaviour := &sui.Misbehaviour{
				Checkpoint1: certified(0x01, 0, 1, 2, 3),
				Checkpoint2: certified(0x02, 0, 1, 2),
			}
			tc.malleate(misbehaviour)

			err := suite.keeper.SubmitMisbehaviour(suite.ctx, suite.clientID, misbehaviour, "caller", "relayer")

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal(exported.Frozen, suite.keeper.GetClientStatus(suite.ctx, suite.clientID))

				clientState, found := suite.keeper.GetClientState(suite.ctx, suite.clientID)
				suite.Require().True(found)
				suite.Require().Equal(clienttypes.NewHeight(0, 5), clientState.GetFrozenHeight())
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Equal(exported.Active, suite.keeper.GetClientStatus(suite.ctx, suite.clientID))
			}
		})
	}
}

package aptos_test

import (
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	aptos "github.com/ComposableFi/ibc-core/modules/light-clients/13-aptos"
)

func (suite *AptosTestSuite) TestVerifyHeader() {
	var header *aptos.Header

	resign := func(signers int) {
		header.LedgerInfo.Signatures = suite.validators.sign(suite, header.LedgerInfo.LedgerInfo, signers)
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
			"success: quorum of three validators", func() {
				resign(3)
			}, nil,
		},
		{
			"insufficient voting power", func() {
				resign(2)
			}, aptos.ErrInsufficientVotingPower,
		},
		{
			"bitmask longer than the validator set", func() {
				header.LedgerInfo.Signatures.ValidatorBitmask = append(header.LedgerInfo.Signatures.ValidatorBitmask, 0xff)
			}, aptos.ErrInvalidSignature,
		},
		{
			"trusted validators are not the epoch validator set", func() {
				header.TrustedValidators = suite.nextValidators.verifier
			}, aptos.ErrInvalidValidatorSet,
		},
		{
			"epoch not found", func() {
				header.LedgerInfo.LedgerInfo.CommitInfo.Epoch = initialEpoch + 1
				resign(validatorCount)
			}, aptos.ErrEpochNotFound,
		},
		{
			"ledger info changed after signing", func() {
				header.LedgerInfo.LedgerInfo.CommitInfo.Round++
			}, aptos.ErrInvalidSignature,
		},
		{
			"signed by another validator set", func() {
				header.LedgerInfo.Signatures = suite.nextValidators.sign(suite, header.LedgerInfo.LedgerInfo, validatorCount)
			}, aptos.ErrInvalidSignature,
		},
		{
			"transaction info at another version", func() {
				header.StateProof, _ = newTransactionInfo(4, suite.state.root)
			}, aptos.ErrInvalidTransactionInfo,
		},
		{
			"transaction info not in the accumulator", func() {
				header.StateProof.TransactionInfo.StateCheckpointHash[0] ^= 1
			}, aptos.ErrInvalidTransactionInfo,
		},
		{
			"transaction is not a state checkpoint", func() {
				header.StateProof.TransactionInfo.StateCheckpointHash = [32]byte{}
			}, aptos.ErrInvalidTransactionInfo,
		},
		{
			"next epoch does not follow", func() {
				header.LedgerInfo.LedgerInfo.CommitInfo.NextEpochState = &aptos.EpochState{
					Epoch:    initialEpoch + 2,
					Verifier: suite.nextValidators.verifier,
				}
				resign(validatorCount)
			}, aptos.ErrInvalidEpochChange,
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

			header = suite.newHeader(5, initialEpoch, suite.validators, nil)

			tc.malleate()

			err := suite.keeper.UpdateClient(suite.ctx, suite.clientID, header, "caller", "relayer")

			if tc.expErr == nil {
				suite.Require().NoError(err)

				clientState, found := suite.keeper.GetClientState(suite.ctx, suite.clientID)
				suite.Require().True(found)
				suite.Require().Equal(header.GetHeight(), clientState.GetLatestHeight())

				consensusState := suite.consensusState(5)
				suite.Require().Equal(suite.state.root, consensusState.StateRoot)
				suite.Require().Equal(uint64(versionTime(5).UnixNano()), consensusState.Timestamp)
				suite.Require().Equal(suite.validators.hash, consensusState.ValidatorsHash)
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (suite *AptosTestSuite) TestEpochChange() {
	header := suite.newHeader(5, initialEpoch, suite.validators, suite.nextValidators)
	suite.Require().NoError(suite.keeper.UpdateClient(suite.ctx, suite.clientID, header, "caller", "relayer"))

	stored, found := suite.keeper.GetClientData(suite.ctx, suite.clientID, aptos.EpochKey(initialEpoch+1))
	suite.Require().True(found)
	suite.Require().Equal(suite.nextValidators.hash[:], stored)

	clientState, found := suite.keeper.GetClientState(suite.ctx, suite.clientID)
	suite.Require().True(found)
	suite.Require().Equal(uint64(initialEpoch+1), clientState.(*aptos.ClientState).CurrentEpoch)

	// the old validator set cannot sign for the new epoch
	stale := suite.newHeader(9, initialEpoch+1, suite.validators, nil)
	err := suite.keeper.UpdateClient(suite.ctx, suite.clientID, stale, "caller", "relayer")
	suite.Require().ErrorIs(err, aptos.ErrInvalidValidatorSet)

	next := suite.newHeader(9, initialEpoch+1, suite.nextValidators, nil)
	suite.Require().NoError(suite.keeper.UpdateClient(suite.ctx, suite.clientID, next, "caller", "relayer"))
	suite.Require().Equal(suite.nextValidators.hash, suite.consensusState(9).ValidatorsHash)

	// an epoch change announcing a different set for a known epoch
	conflicting := suite.newHeader(7, initialEpoch, suite.validators, suite.validators)
	err = suite.keeper.UpdateClient(suite.ctx, suite.clientID, conflicting, "caller", "relayer")
	suite.Require().ErrorIs(err, aptos.ErrInvalidEpochChange)
}

func (suite *AptosTestSuite) TestMisbehaviour() {
	newLedgerInfo := func(accumulatorRoot [32]byte) aptos.LedgerInfoWithSignatures {
		ledgerInfo := aptos.LedgerInfo{
			CommitInfo: aptos.BlockInfo{
				Epoch:           initialEpoch,
				Round:           10,
				ExecutedStateID: accumulatorRoot,
				Version:         5,
				TimestampUsecs:  uint64(versionTime(5).UnixNano() / 1000),
			},
		}
		return aptos.LedgerInfoWithSignatures{
			LedgerInfo: ledgerInfo,
			Signatures: suite.validators.sign(suite, ledgerInfo, validatorCount),
		}
	}

	testCases := []struct {
		name     string
		malleate func(*aptos.Misbehaviour)
		expErr   error
	}{
		{
			"success", func(*aptos.Misbehaviour) {}, nil,
		},
		{
			"same accumulator root", func(m *aptos.Misbehaviour) {
				m.LedgerInfo2 = m.LedgerInfo1
			}, aptos.ErrInvalidMisbehaviour,
		},
		{
			"different versions", func(m *aptos.Misbehaviour) {
				m.LedgerInfo2.LedgerInfo.CommitInfo.Version++
			}, aptos.ErrInvalidMisbehaviour,
		},
		{
			"second ledger info without quorum", func(m *aptos.Misbehaviour) {
				m.LedgerInfo2.Signatures = suite.validators.sign(suite, m.LedgerInfo2.LedgerInfo, 2)
			}, aptos.ErrInsufficientVotingPower,
		},
		{
			"unknown validator set", func(m *aptos.Misbehaviour) {
				m.TrustedValidators = suite.nextValidators.verifier
			}, aptos.ErrInvalidValidatorSet,
		},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			misbehaviour := &aptos.Misbehaviour{
				LedgerInfo1:       newLedgerInfo([32]byte{0x01}),
				LedgerInfo2:       newLedgerInfo([32]byte{0x02}),
				TrustedValidators: suite.validators.verifier,
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

package sui_test

import (
	"github.com/ethereum/go-ethereum/rlp"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	sui "github.com/ComposableFi/ibc-core/modules/light-clients/15-sui"
)

func (suite *SuiTestSuite) TestVerifyCreation() {
	stored, found := suite.keeper.GetClientData(suite.ctx, suite.clientID, sui.CommitteeKey(initialEpoch))
	suite.Require().True(found)
	suite.Require().Equal(suite.committee.info.Bytes(), stored)

	consensusState := &sui.ConsensusState{
		ObjectRoot: [32]byte{0x01},
		Timestamp:  1,
		Epoch:      initialEpoch + 1,
		Committee:  suite.committee.info,
	}
	_, err := suite.keeper.CreateClient(
		suite.ctx, exported.Sui,
		clienttypes.MustMarshalClientState(suite.clientState), clienttypes.MustMarshalConsensusState(consensusState),
		"caller", "relayer",
	)
	suite.Require().ErrorIs(err, sui.ErrInvalidConsensusState)
}

func (suite *SuiTestSuite) TestVerifyMembership() {
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
			}, sui.ErrInvalidProof,
		},
		{
			"proof of another path", func() {
				path = []byte("connections/connection-0")
			}, sui.ErrInvalidProof,
		},
		{
			"absence proof", func() {
				proof = suite.prove(absentPath)
			}, sui.ErrInvalidProof,
		},
		{
			"malformed proof", func() {
				proof = []byte{0x01}
			}, sui.ErrInvalidProof,
		},
		{
			"consensus state not found", func() {
				height = clienttypes.NewHeight(0, 6)
			}, clienttypes.ErrConsensusStateNotFound,
		},
		{
			"proof against another object root", func() {
				height = clienttypes.NewHeight(0, initialSeq)
			}, sui.ErrInvalidProof,
		},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			header := suite.newHeader(5, initialEpoch, suite.committee, nil)
			suite.Require().NoError(suite.keeper.UpdateClient(suite.ctx, suite.clientID, header, "caller", "relayer"))

			height = header.GetHeight()
			proof = suite.prove(commitmentPath)
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

func (suite *SuiTestSuite) TestVerifyNonMembership() {
	header := suite.newHeader(5, initialEpoch, suite.committee, nil)
	suite.Require().NoError(suite.keeper.UpdateClient(suite.ctx, suite.clientID, header, "caller", "relayer"))
	height := header.GetHeight()

	suite.Require().NoError(suite.keeper.VerifyNonMembership(suite.ctx, suite.clientID, height, suite.prove(absentPath), absentPath))

	err := suite.keeper.VerifyNonMembership(suite.ctx, suite.clientID, height, suite.prove(commitmentPath), commitmentPath)
	suite.Require().ErrorIs(err, sui.ErrInvalidProof)
	suite.Require().ErrorIs(err, commitmenttypes.ErrInvalidProof)
}

// TestObjectNonMembership covers keys before, between and after the leaves
// of the object tree.
func (suite *SuiTestSuite) TestObjectNonMembership() {
	key := sui.ObjectKey(ibcStoreID, absentPath)
	below, above := decrement(key), increment(key)

	testCases := []struct {
		name    string
		entries []sui.ObjectEntry
	}{
		{"between two leaves", []sui.ObjectEntry{{Key: below, Value: []byte{1}}, {Key: above, Value: []byte{2}}}},
		{"before the first leaf", []sui.ObjectEntry{{Key: above, Value: []byte{1}}, {Key: increment(above), Value: []byte{2}}}},
		{"after the last leaf", []sui.ObjectEntry{{Key: decrement(below), Value: []byte{1}}, {Key: below, Value: []byte{2}}}},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			tree := sui.NewObjectTree(tc.entries...)
			root, err := tree.Root()
			suite.Require().NoError(err)

			proof, err := tree.Prove(key)
			suite.Require().NoError(err)

			suite.Require().NoError(sui.VerifyObjectNonMembership(root, ibcStoreID, proof, absentPath))
			suite.Require().ErrorIs(sui.VerifyObjectMembership(root, ibcStoreID, proof, absentPath, []byte{1}), sui.ErrInvalidProof)
		})
	}

	// a bracket with a gap, or a lone leaf inside the tree, proves nothing
	tree := sui.NewObjectTree(
		sui.ObjectEntry{Key: decrement(below), Value: []byte{1}},
		sui.ObjectEntry{Key: below, Value: []byte{2}},
		sui.ObjectEntry{Key: above, Value: []byte{3}},
	)
	root, err := tree.Root()
	suite.Require().NoError(err)

	bz, err := tree.Prove(key)
	suite.Require().NoError(err)

	var proof sui.ObjectProof
	suite.Require().NoError(rlp.DecodeBytes(bz, &proof))
	suite.Require().Len(proof.Entries, 2)

	lone := proof
	lone.Entries = proof.Entries[:1]
	loneBz, err := rlp.EncodeToBytes(&lone)
	suite.Require().NoError(err)
	suite.Require().ErrorIs(sui.VerifyObjectNonMembership(root, ibcStoreID, loneBz, absentPath), sui.ErrInvalidProof)

	gap := proof
	gap.Entries = []sui.ProvenEntry{proof.Entries[0], proof.Entries[1]}
	gap.Entries[0].Index = 0
	gapBz, err := rlp.EncodeToBytes(&gap)
	suite.Require().NoError(err)
	suite.Require().ErrorIs(sui.VerifyObjectNonMembership(root, ibcStoreID, gapBz, absentPath), sui.ErrInvalidProof)
}

func (suite *SuiTestSuite) TestStatus() {
	module := sui.NewLightClientModule()
	suite.Require().Equal(exported.Active, module.Status(suite.ctx, suite.keeper, suite.clientID, suite.clientState))

	clientState := *suite.clientState
	clientState.LatestHeight = clienttypes.NewHeight(0, initialSeq+1)
	suite.Require().Equal(exported.Expired, module.Status(suite.ctx, suite.keeper, suite.clientID, &clientState))

	clientState = *suite.clientState
	clientState.FrozenHeight = clienttypes.NewHeight(0, initialSeq)
	suite.Require().Equal(exported.Frozen, module.Status(suite.ctx, suite.keeper, suite.clientID, &clientState))

	timestamp, err := module.TimestampAtHeight(suite.ctx, suite.keeper, suite.clientID, clienttypes.NewHeight(0, initialSeq))
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(checkpointTime(initialSeq).UnixNano()), timestamp)
}

func (suite *SuiTestSuite) prove(path []byte) []byte {
	proof, err := suite.objects.Prove(sui.ObjectKey(ibcStoreID, path))
	suite.Require().NoError(err)
	return proof
}

func increment(key [32]byte) [32]byte {
	for i := len(key) - 1; i >= 0; i-- {
		key[i]++
		if key[i] != 0 {
			break
		}
	}
	return key
}

func decrement(key [32]byte) [32]byte {
	for i := len(key) - 1; i >= 0; i-- {
		key[i]--
		if key[i] != 0xff {
			break
		}
	}
	return key
}

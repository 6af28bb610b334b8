package keeper_test

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	mock "github.com/ComposableFi/ibc-core/modules/light-clients/00-mock"
)

func (suite *KeeperTestSuite) TestCreateClient() {
	var (
		clientType     string
		clientState    []byte
		consensusState []byte
	)

	testCases := []struct {
		msg      string
		malleate func()
		expErr   error
	}{
		{
			"success: mock client type supported",
			func() {},
			nil,
		},
		{
			"failure: client type not registered",
			func() {
				clientType = exported.Tendermint
			},
			types.ErrClientTypeNotRegistered,
		},
		{
			"failure: client state cannot be decoded",
			func() {
				clientState = []byte("invalid")
			},
			types.ErrInvalidClient,
		},
		{
			"failure: client state fails validation",
			func() {
				clientState = types.MustMarshalClientState(mock.NewClientState("", testClientHeight))
			},
			types.ErrInvalidClient,
		},
		{
			"failure: consensus state fails validation",
			func() {
				consensusState = types.MustMarshalConsensusState(&mock.ConsensusState{Root: []byte("root")})
			},
			types.ErrInvalidConsensus,
		},
		{
			"failure: frozen client",
			func() {
				cs := mock.NewClientState(testChainID, testClientHeight)
				cs.FrozenHeight = testClientHeight
				clientState = types.MustMarshalClientState(cs)
			},
			types.ErrClientFrozen,
		},
		{
			"failure: client is expired once created",
			func() {
				cs := mock.NewClientState(testChainID, testClientHeight)
				cs.TrustingPeriod = uint64(time.Second)
				clientState = types.MustMarshalClientState(cs)
				suite.ctx = suite.ctx.WithBlockTime(suite.now.Add(time.Minute))
			},
			types.ErrClientNotActive,
		},
		{
			"failure: creation rejected by the light client",
			func() {
				cs := mock.NewClientState(testChainID, testClientHeight)
				cs.DelegateClientID = "00-mock-10"
				clientState = types.MustMarshalClientState(cs)
			},
			mock.ErrInvalidCreation,
		},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.msg, func() {
			suite.SetupTest() // reset

			clientType = exported.Mock
			clientState = types.MustMarshalClientState(mock.NewClientState(testChainID, testClientHeight))
			consensusState = types.MustMarshalConsensusState(mock.NewConsensusState(suite.now, suite.entries...))

			tc.malleate()

			clientID, err := suite.keeper.CreateClient(suite.ctx, clientType, clientState, consensusState, "caller", "relayer")

			if tc.expErr == nil {
				suite.Require().NoError(err)
				suite.Require().Equal("00-mock-0", clientID)

				_, found := suite.keeper.GetClientState(suite.ctx, clientID)
				suite.Require().True(found)
				suite.Require().True(suite.keeper.HasClientConsensusState(suite.ctx, clientID, testClientHeight))
				suite.Require().Equal(exported.Active, suite.keeper.GetClientStatus(suite.ctx, clientID))
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
				suite.Require().Empty(clientID)
				suite.Require().Zero(suite.keeper.GetNextClientSequence(suite.ctx))
			}
		})
	}
}

func (suite *KeeperTestSuite) TestTwoPhaseCreateClient() {
	cs := mock.NewClientState(testChainID, testClientHeight)
	cs.InitialData = []byte("committee")
	clientState := types.MustMarshalClientState(cs)
	consensusState := types.MustMarshalConsensusState(mock.NewConsensusState(suite.now, suite.entries...))

	token, err := suite.keeper.BeginCreateClient(suite.ctx, exported.Mock, clientState, consensusState, "caller", "relayer")
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(0), token.Nonce)

	// nothing is registered until completion
	suite.Require().Zero(suite.keeper.GetNextClientSequence(suite.ctx))
	pending, found := suite.keeper.GetPendingCreation(suite.ctx, token.Nonce)
	suite.Require().True(found)
	suite.Require().Equal("caller", pending.Caller)

	// a token that does not match the record is rejected
	tampered := token
	tampered.Digest = make([]byte, len(token.Digest))
	_, err = suite.keeper.CompleteCreateClient(suite.ctx, tampered, "addr")
	suite.Require().ErrorIs(err, types.ErrInvalidPendingCreation)

	unknown := token
	unknown.Nonce = 5
	_, err = suite.keeper.CompleteCreateClient(suite.ctx, unknown, "addr")
	suite.Require().ErrorIs(err, types.ErrPendingCreationNotFound)

	parsed, err := types.ParsePendingCreationToken(token.Bytes())
	suite.Require().NoError(err)

	clientID, err := suite.keeper.CompleteCreateClient(suite.ctx, parsed, "contract-address")
	suite.Require().NoError(err)
	suite.Require().Equal("00-mock-0", clientID)

	data, found := suite.keeper.GetClientData(suite.ctx, clientID, mock.InitialDataKey)
	suite.Require().True(found)
	suite.Require().Equal([]byte("committee"), data)

	address, found := suite.keeper.GetClientAddress(suite.ctx, clientID)
	suite.Require().True(found)
	suite.Require().Equal("contract-address", address)

	// the pending record is consumed
	_, found = suite.keeper.GetPendingCreation(suite.ctx, token.Nonce)
	suite.Require().False(found)
	_, err = suite.keeper.CompleteCreateClient(suite.ctx, parsed, "contract-address")
	suite.Require().ErrorIs(err, types.ErrPendingCreationNotFound)

	// identifiers are never reused
	secondID := suite.createMockClient(nil)
	suite.Require().Equal("00-mock-1", secondID)

	var created int
	for _, event := range suite.ctx.EventManager().Events() {
		if event.Type == types.EventTypeCreateClient {
			created++
		}
	}
	suite.Require().Equal(2, created)
}

func (suite *KeeperTestSuite) TestUpdateClient() {
	var (
		clientID string
		header   exported.ClientMessage
	)

	newHeight := testClientHeight.Increment().(types.Height)

	testCases := []struct {
		name     string
		malleate func()
		expErr   error
		noop     bool
	}{
		{
			"success: new height", func() {}, nil, false,
		},
		{
			"success: past height fills a gap without moving the latest height", func() {
				header = mock.NewHeader(types.NewHeight(1, 2), suite.now, suite.entries...)
			}, nil, false,
		},
		{
			"success: identical consensus state is a no-op", func() {
				header = mock.NewHeader(testClientHeight, suite.now, suite.entries...)
			}, nil, true,
		},
		{
			"failure: conflicting consensus state at a stored height", func() {
				header = mock.NewHeader(testClientHeight, suite.now, mock.Entry{Key: []byte("other"), Value: []byte("value")})
			}, types.ErrInvalidConsensus, false,
		},
		{
			"failure: client not found", func() {
				clientID = "00-mock-9"
			}, types.ErrClientNotFound, false,
		},
		{
			"failure: client frozen", func() {
				clientState, _ := suite.keeper.GetClientState(suite.ctx, clientID)
				cs := clientState.(*mock.ClientState)
				cs.FrozenHeight = testClientHeight
				suite.keeper.SetClientState(suite.ctx, clientID, cs)
			}, types.ErrClientFrozen, false,
		},
		{
			"failure: invalid header", func() {
				header = &mock.Header{Height: newHeight}
			}, mock.ErrInvalidClientMsg, false,
		},
		{
			"failure: nil header", func() {
				header = nil
			}, types.ErrInvalidHeader, false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			suite.SetupTest()
			clientID = suite.createMockClient(nil)
			header = mock.NewHeader(newHeight, suite.now.Add(1), suite.entries...)
			events := len(suite.ctx.EventManager().Events())

			tc.malleate()

			err := suite.keeper.UpdateClient(suite.ctx, clientID, header, "caller", "relayer")

			if tc.expErr != nil {
				suite.Require().ErrorIs(err, tc.expErr)
				return
			}

			suite.Require().NoError(err)
			if tc.noop {
				suite.Require().Len(suite.ctx.EventManager().Events(), events)
				return
			}

			mockHeader := header.(*mock.Header)
			suite.Require().True(suite.keeper.HasClientConsensusState(suite.ctx, clientID, mockHeader.Height))

			expLatest := testClientHeight
			if mockHeader.Height.GT(testClientHeight) {
				expLatest = mockHeader.Height
			}
			suite.Require().Equal(expLatest, suite.keeper.GetLatestHeight(suite.ctx, clientID))

			lastEvent := suite.ctx.EventManager().Events()[len(suite.ctx.EventManager().Events())-2]
			suite.Require().Equal(types.EventTypeUpdateClient, lastEvent.Type)
		})
	}
}

func (suite *KeeperTestSuite) TestUpdateClientSideEffects() {
	clientID := suite.createMockClient(func(cs *mock.ClientState) { cs.InitialData = []byte("old") })

	header := mock.NewHeader(testClientHeight.Increment().(types.Height), suite.now, suite.entries...)
	header.Data = []exported.StoreWrite{{Key: []byte("next"), Value: []byte("committee")}}
	suite.Require().NoError(suite.keeper.UpdateClient(suite.ctx, clientID, header, "caller", "relayer"))

	data, found := suite.keeper.GetClientData(suite.ctx, clientID, []byte("next"))
	suite.Require().True(found)
	suite.Require().Equal([]byte("committee"), data)
	suite.Require().True(suite.ctx.KVStore().Has(host.FullClientDataKey(clientID, mock.InitialDataKey)))
}

func (suite *KeeperTestSuite) TestSubmitMisbehaviour() {
	clientID := suite.createMockClient(nil)
	height := testClientHeight.Increment().(types.Height)

	// headers agreeing on the root are not misbehaviour
	err := suite.keeper.SubmitMisbehaviour(suite.ctx, clientID, &mock.Misbehaviour{
		Header1: mock.NewHeader(height, suite.now, suite.entries...),
		Header2: mock.NewHeader(height, suite.now, suite.entries...),
	}, "caller", "relayer")
	suite.Require().ErrorIs(err, types.ErrInvalidMisbehaviour)

	err = suite.keeper.SubmitMisbehaviour(suite.ctx, clientID, &mock.Misbehaviour{
		Header1: mock.NewHeader(height, suite.now, suite.entries...),
		Header2: mock.NewHeader(height, suite.now, mock.Entry{Key: []byte("fork"), Value: []byte{1}}),
	}, "caller", "relayer")
	suite.Require().NoError(err)
	suite.Require().Equal(exported.Frozen, suite.keeper.GetClientStatus(suite.ctx, clientID))

	// a frozen client accepts no further header or proof
	err = suite.keeper.UpdateClient(suite.ctx, clientID, mock.NewHeader(height.Increment().(types.Height), suite.now, suite.entries...), "caller", "relayer")
	suite.Require().ErrorIs(err, types.ErrClientFrozen)

	proof := mock.NewProof(suite.entries...)
	err = suite.keeper.VerifyMembership(suite.ctx, clientID, testClientHeight, proof, testKey, testValue)
	suite.Require().ErrorIs(err, types.ErrClientFrozen)
	err = suite.keeper.VerifyNonMembership(suite.ctx, clientID, testClientHeight, proof, []byte("absent"))
	suite.Require().ErrorIs(err, types.ErrClientFrozen)

	var found bool
	for _, event := range suite.ctx.EventManager().Events() {
		if event.Type == types.EventTypeSubmitMisbehaviour {
			found = true
			suite.Require().Contains(event.Attributes, sdk.NewAttribute(types.AttributeKeyClientID, clientID).ToKVPair())
		}
	}
	suite.Require().True(found)
}

func (suite *KeeperTestSuite) TestVerifyMembership() {
	var (
		clientID string
		height   exported.Height
		proof    []byte
		key      []byte
		value    []byte
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
			"success: delegated to another client", func() {
				delegate := clientID
				clientID = suite.createMockClient(func(cs *mock.ClientState) { cs.DelegateClientID = delegate })
			}, nil,
		},
		{
			"failure: wrong value", func() {
				value = []byte("other")
			}, mock.ErrValueMismatch,
		},
		{
			"failure: wrong key", func() {
				key = []byte("other")
			}, mock.ErrKeyNotFound,
		},
		{
			"failure: proof for another root", func() {
				proof = mock.NewProof(mock.Entry{Key: testKey, Value: testValue}, mock.Entry{Key: []byte("extra"), Value: []byte{1}})
			}, mock.ErrRootMismatch,
		},
		{
			"failure: consensus state not found at the exact height", func() {
				height = testClientHeight.Increment()
			}, types.ErrConsensusStateNotFound,
		},
		{
			"failure: zero height", func() {
				height = types.ZeroHeight()
			}, types.ErrInvalidHeight,
		},
		{
			"failure: client not found", func() {
				clientID = "00-mock-9"
			}, types.ErrClientNotFound,
		},
		{
			"failure: unregistered client type", func() {
				clientID = "07-tendermint-0"
			}, types.ErrClientTypeNotRegistered,
		},
		{
			"failure: client expired", func() {
				clientState, _ := suite.keeper.GetClientState(suite.ctx, clientID)
				cs := clientState.(*mock.ClientState)
				cs.TrustingPeriod = uint64(time.Second)
				suite.keeper.SetClientState(suite.ctx, clientID, cs)
				suite.ctx = suite.ctx.WithBlockTime(suite.now.Add(time.Minute))
			}, types.ErrClientExpired,
		},
	}

	for _, tc := range testCases {
		tc := tc
		suite.Run(tc.name, func() {
			suite.SetupTest()
			clientID = suite.createMockClient(nil)
			height = testClientHeight
			proof = mock.NewProof(suite.entries...)
			key = testKey
			value = testValue

			tc.malleate()

			err := suite.keeper.VerifyMembership(suite.ctx, clientID, height, proof, key, value)
			if tc.expErr == nil {
				suite.Require().NoError(err)
				// membership and non-membership are mutually exclusive
				suite.Require().Error(suite.keeper.VerifyNonMembership(suite.ctx, clientID, height, proof, key))
			} else {
				suite.Require().ErrorIs(err, tc.expErr)
			}
		})
	}
}

func (suite *KeeperTestSuite) TestVerifyNonMembership() {
	clientID := suite.createMockClient(nil)
	proof := mock.NewProof(suite.entries...)

	suite.Require().NoError(suite.keeper.VerifyNonMembership(suite.ctx, clientID, testClientHeight, proof, []byte("absent")))
	err := suite.keeper.VerifyNonMembership(suite.ctx, clientID, testClientHeight, proof, testKey)
	suite.Require().ErrorIs(err, mock.ErrKeyExists)
	suite.Require().ErrorIs(err, commitmenttypes.ErrInvalidProof)
	suite.Require().Error(suite.keeper.VerifyMembership(suite.ctx, clientID, testClientHeight, proof, []byte("absent"), testValue))
}

func (suite *KeeperTestSuite) TestCompositionDepth() {
	base := suite.createMockClient(nil)
	proof := mock.NewProof(suite.entries...)

	// build a chain of delegating clients, each one level above the previous
	chain := []string{base}
	for i := 0; i < 4; i++ {
		next := chain[len(chain)-1]
		chain = append(chain, suite.createMockClient(func(cs *mock.ClientState) { cs.DelegateClientID = next }))
	}

	// depth 4: three delegations on top of the base client
	suite.Require().NoError(suite.keeper.VerifyMembership(suite.ctx, chain[3], testClientHeight, proof, testKey, testValue))

	// depth 5 exceeds the default bound
	err := suite.keeper.VerifyMembership(suite.ctx, chain[4], testClientHeight, proof, testKey, testValue)
	suite.Require().ErrorIs(err, types.ErrMaxRecursionDepth)

	// the bound is configurable per context
	err = suite.keeper.VerifyMembership(suite.ctx.WithMaxClientDepth(2), chain[2], testClientHeight, proof, testKey, testValue)
	suite.Require().ErrorIs(err, types.ErrMaxRecursionDepth)

	// self referential clients terminate
	selfID := types.FormatClientIdentifier(exported.Mock, suite.keeper.GetNextClientSequence(suite.ctx))
	loop := suite.createMockClient(func(cs *mock.ClientState) { cs.DelegateClientID = base })
	clientState, _ := suite.keeper.GetClientState(suite.ctx, loop)
	cs := clientState.(*mock.ClientState)
	cs.DelegateClientID = selfID
	suite.keeper.SetClientState(suite.ctx, loop, cs)

	err = suite.keeper.VerifyNonMembership(suite.ctx, loop, testClientHeight, proof, []byte("absent"))
	suite.Require().ErrorIs(err, types.ErrMaxRecursionDepth)
}

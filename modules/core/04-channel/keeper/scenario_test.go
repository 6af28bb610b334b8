package keeper_test

import (
	"time"

	"github.com/tendermint/tendermint/libs/log"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	"github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
	mockclient "github.com/ComposableFi/ibc-core/modules/light-clients/00-mock"
	ibctesting "github.com/ComposableFi/ibc-core/testing"
	"github.com/ComposableFi/ibc-core/testing/mock"
)

const (
	scenarioConnectionID = "connection-0"
	scenarioChannelID    = "channel-0"
)

// mockEnd is one side of a channel whose connection is backed by a 00-mock
// client, so that heights, timestamps and proofs are fully controlled.
type mockEnd struct {
	chain    *ibctesting.TestChain
	clientID string
}

// ctx returns a context at block height 3 and 1µs after the epoch, far below
// any timeout used by the scenario.
func (end mockEnd) ctx() coretypes.Context {
	return coretypes.NewContext(end.chain.App.GetStore().KVStore(), end.chain.ChainID, 3, time.Unix(0, 1000), log.NewNopLogger())
}

// setCounterpartyRoot moves the mock client to height, committing to the
// given entries of the counterparty store.
func (end mockEnd) setCounterpartyRoot(height clienttypes.Height, entries ...mockclient.Entry) {
	clientKeeper := end.chain.App.GetIBCKeeper().ClientKeeper
	clientKeeper.SetClientConsensusState(end.ctx(), end.clientID, height, mockclient.NewConsensusState(time.Unix(0, 600), entries...))

	clientState, found := clientKeeper.GetClientState(end.ctx(), end.clientID)
	if !found {
		panic("mock client not found")
	}
	cs := *clientState.(*mockclient.ClientState)
	cs.LatestHeight = height
	clientKeeper.SetClientState(end.ctx(), end.clientID, &cs)
}

// setupMockChannel creates a mock client, an OPEN connection and an OPEN
// channel on the mock port of chain, facing the same identifiers on the
// counterparty.
func (suite *KeeperTestSuite) setupMockChannel(chain, counterparty *ibctesting.TestChain) mockEnd {
	end := mockEnd{chain: chain}
	ctx := end.ctx()
	ibcKeeper := chain.App.GetIBCKeeper()

	clientState := mockclient.NewClientState(counterparty.ChainID, clienttypes.NewHeight(1, 5))
	consensusState := mockclient.NewConsensusState(time.Unix(0, 500), mockclient.Entry{Key: []byte("genesis"), Value: []byte{1}})

	var err error
	end.clientID, err = ibcKeeper.ClientKeeper.CreateClient(
		ctx, exported.Mock,
		clienttypes.MustMarshalClientState(clientState), clienttypes.MustMarshalConsensusState(consensusState),
		chain.SenderAccount, chain.SenderAccount,
	)
	suite.Require().NoError(err)

	connection := connectiontypes.NewConnectionEnd(
		connectiontypes.OPEN, end.clientID,
		connectiontypes.NewCounterparty(end.clientID, scenarioConnectionID, counterparty.GetPrefix()),
		[]*connectiontypes.Version{connectiontypes.DefaultIBCVersion}, 0,
	)
	ibcKeeper.ConnectionKeeper.SetConnection(ctx, scenarioConnectionID, connection)

	channel := types.NewChannel(
		types.OPEN, types.UNORDERED, types.NewCounterparty(mock.PortID, scenarioChannelID),
		[]string{scenarioConnectionID}, mock.Version,
	)
	ibcKeeper.ChannelKeeper.SetChannel(ctx, mock.PortID, scenarioChannelID, channel)
	ibcKeeper.ChannelKeeper.SetNextSequenceSend(ctx, mock.PortID, scenarioChannelID, 1)

	return end
}

// TestPacketLifecycleScenario walks a packet through send, a rejected and an
// accepted receive, acknowledgement and a late timeout attempt.
func (suite *KeeperTestSuite) TestPacketLifecycleScenario() {
	endA := suite.setupMockChannel(suite.chainA, suite.chainB)
	endB := suite.setupMockChannel(suite.chainB, suite.chainA)

	keeperA := suite.chainA.App.GetIBCKeeper().ChannelKeeper
	keeperB := suite.chainB.App.GetIBCKeeper().ChannelKeeper

	timeoutHeight := clienttypes.NewHeight(1, 10)
	timeoutTimestamp := uint64(1_000_000)
	data := []byte{0, 1, 2}

	seq, err := keeperA.SendPacket(endA.ctx(), mock.PortID, scenarioChannelID, timeoutHeight, timeoutTimestamp, data)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(1), seq)

	packet := types.NewPacket(data, seq, mock.PortID, scenarioChannelID, mock.PortID, scenarioChannelID, timeoutHeight, timeoutTimestamp)
	commitment := keeperA.GetPacketCommitment(endA.ctx(), mock.PortID, scenarioChannelID, 1)
	suite.Require().Equal(types.CommitPacket(packet), commitment)
	suite.Require().False(keeperA.HasPacketCommitment(endA.ctx(), mock.PortID, scenarioChannelID, 2))

	seq, err = keeperA.SendPacket(endA.ctx(), mock.PortID, scenarioChannelID, timeoutHeight, timeoutTimestamp, data)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(2), seq)

	// chainB learns about the commitment of sequence 1
	proofHeight := clienttypes.NewHeight(1, 6)
	commitmentEntry := mockclient.Entry{
		Key:   commitmenttypes.ApplyPrefix(suite.chainA.GetPrefix(), host.PacketCommitmentKey(mock.PortID, scenarioChannelID, 1)),
		Value: commitment,
	}
	endB.setCounterpartyRoot(proofHeight, commitmentEntry)

	err = keeperB.RecvPacket(endB.ctx(), packet, []byte("not a proof"), proofHeight)
	suite.Require().ErrorIs(err, mockclient.ErrInvalidProof)
	suite.Require().ErrorIs(err, commitmenttypes.ErrInvalidProof)
	suite.Require().False(keeperB.HasPacketReceipt(endB.ctx(), mock.PortID, scenarioChannelID, 1))
	suite.Require().Equal(commitment, keeperA.GetPacketCommitment(endA.ctx(), mock.PortID, scenarioChannelID, 1))

	err = keeperB.RecvPacket(endB.ctx(), packet, mockclient.NewProof(commitmentEntry), proofHeight)
	suite.Require().NoError(err)
	suite.Require().NoError(keeperB.WriteAcknowledgement(endB.ctx(), packet, ibctesting.MockAcknowledgement))

	// chainA learns about the acknowledgement of sequence 1
	ackCommitment, found := keeperB.GetPacketAcknowledgement(endB.ctx(), mock.PortID, scenarioChannelID, 1)
	suite.Require().True(found)
	ackEntry := mockclient.Entry{
		Key:   commitmenttypes.ApplyPrefix(suite.chainB.GetPrefix(), host.PacketAcknowledgementKey(mock.PortID, scenarioChannelID, 1)),
		Value: ackCommitment,
	}
	endA.setCounterpartyRoot(proofHeight, ackEntry)

	err = keeperA.AcknowledgePacket(endA.ctx(), packet, ibctesting.MockAcknowledgement, mockclient.NewProof(ackEntry), proofHeight)
	suite.Require().NoError(err)
	suite.Require().False(keeperA.HasPacketCommitment(endA.ctx(), mock.PortID, scenarioChannelID, 1))
	suite.Require().True(keeperA.HasPacketCommitment(endA.ctx(), mock.PortID, scenarioChannelID, 2))

	err = keeperA.TimeoutPacket(endA.ctx(), packet, mockclient.NewProof(), proofHeight)
	suite.Require().ErrorIs(err, types.ErrPacketCommitmentNotFound)
}

package ibctesting

import (
	"fmt"
	"testing"
	"time"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/crypto/tmhash"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	tmprotoversion "github.com/tendermint/tendermint/proto/tendermint/version"
	tmtypes "github.com/tendermint/tendermint/types"
	tmversion "github.com/tendermint/tendermint/version"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/ComposableFi/ibc-core/modules/core/23-commitment/types"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
	"github.com/ComposableFi/ibc-core/modules/core/keeper"
	"github.com/ComposableFi/ibc-core/modules/core/store"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
	ibctm "github.com/ComposableFi/ibc-core/modules/light-clients/07-tendermint"
	"github.com/ComposableFi/ibc-core/testing/mock"
)

// MaxValidators is the number of validators signing every test chain block.
var MaxValidators = 4

// TestChain is a testing struct that wraps a simulated chain: an App holding
// the IBC keeper over its own commitment store, and a validator set that
// signs a tendermint header for every committed block. The 07-tendermint
// client of a counterparty tracks the chain through these headers.
type TestChain struct {
	testing.TB

	Coordinator    *Coordinator
	App            TestingApp
	ChainID        string
	LatestHeader   *ibctm.Header  // header for last block height committed
	ProposedHeader tmproto.Header // proposed (uncommitted) header for current block height
	Vals           *tmtypes.ValidatorSet
	NextVals       *tmtypes.ValidatorSet

	// Signers is a map from validator address to the PrivValidator
	// The map is converted into an array that is the same order as the validators right before signing commit
	// This ensures that signers will always be in correct order even as validator powers change.
	// If a test adds a new validator after chain creation, then the signer map must be updated to include
	// the new PrivValidator entry.
	Signers map[string]tmtypes.PrivValidator

	// TrustedValidators records the NextVals committed to at every height.
	TrustedValidators map[uint64]*tmtypes.ValidatorSet

	// SenderAccount signs every message sent by the chain.
	SenderAccount string
}

// Result is the outcome of a delivered transaction.
type Result struct {
	Responses []interface{}
	Events    []abci.Event
}

// NewTestChainWithValSet initializes a new TestChain instance with the given
// validator set and signer map. The genesis state is committed as the first
// block so the store has a non-empty root for the first header.
func NewTestChainWithValSet(tb testing.TB, coord *Coordinator, chainID string, appCreator AppCreator, valSet *tmtypes.ValidatorSet, signers map[string]tmtypes.PrivValidator) *TestChain {
	tb.Helper()

	chain := &TestChain{
		TB:          tb,
		Coordinator: coord,
		App:         appCreator(),
		ChainID:     chainID,
		ProposedHeader: tmproto.Header{
			ChainID: chainID,
			Height:  1,
			Time:    coord.CurrentTime.UTC(),
		},
		Vals:              valSet,
		NextVals:          valSet,
		Signers:           signers,
		TrustedValidators: make(map[uint64]*tmtypes.ValidatorSet),
		SenderAccount:     fmt.Sprintf("relayer-%s", chainID),
	}

	require.NoError(tb, InitGenesis(chain.GetContext(), chain.App))

	chain.NextBlock()

	return chain
}

// NewTestChain initializes a new test chain with MaxValidators validators of
// equal voting power.
func NewTestChain(tb testing.TB, coord *Coordinator, chainID string) *TestChain {
	tb.Helper()
	return NewCustomAppTestChain(tb, coord, chainID, DefaultTestingAppInit)
}

// NewCustomAppTestChain initializes a new test chain backed by the app
// returned from appCreator.
func NewCustomAppTestChain(tb testing.TB, coord *Coordinator, chainID string, appCreator AppCreator) *TestChain {
	tb.Helper()

	validators := make([]*tmtypes.Validator, 0, MaxValidators)
	signers := make(map[string]tmtypes.PrivValidator, MaxValidators)

	for i := 0; i < MaxValidators; i++ {
		privVal := tmtypes.NewMockPV()
		pubKey, err := privVal.GetPubKey()
		require.NoError(tb, err)

		validators = append(validators, tmtypes.NewValidator(pubKey, 1))
		signers[pubKey.Address().String()] = privVal
	}

	valSet := tmtypes.NewValidatorSet(validators)

	return NewTestChainWithValSet(tb, coord, chainID, appCreator, valSet, signers)
}

// GetContext returns the context of the block being built.
func (chain *TestChain) GetContext() coretypes.Context {
	return coretypes.NewContext(
		chain.App.GetStore().KVStore(), chain.ChainID,
		chain.ProposedHeader.Height, chain.ProposedHeader.Time,
		log.NewNopLogger(),
	)
}

// GetMockIBCApp returns the callbacks of the mock application so tests can
// override them. It requires the default App.
func (chain *TestChain) GetMockIBCApp() *mock.IBCApp {
	app, ok := chain.App.(*App)
	require.True(chain.TB, ok, "chain does not run the default testing app")
	return app.MockModule.IBCApp
}

// QueryProof performs a proof query on the latest committed height and
// returns the proof together with the height it was built at.
func (chain *TestChain) QueryProof(key []byte) ([]byte, clienttypes.Height) {
	return chain.QueryProofAtHeight(key, chain.App.GetStore().LatestHeight())
}

// QueryProofAtHeight queries a proof of key against the root committed at
// height. It returns a non-existence proof when key is absent.
func (chain *TestChain) QueryProofAtHeight(key []byte, height int64) ([]byte, clienttypes.Height) {
	_, proof, err := chain.App.GetStore().QueryProof(key, height)
	require.NoError(chain.TB, err)

	revision := clienttypes.ParseChainID(chain.ChainID)

	return proof, clienttypes.NewHeight(revision, uint64(height))
}

// NextBlock commits the current block, records its signed header as
// LatestHeader and starts the next block. It does not update the time as
// that is handled by the Coordinator, unless the block time would not move
// past the previous header, in which case global time is incremented first.
func (chain *TestChain) NextBlock() {
	if chain.LatestHeader != nil && !chain.ProposedHeader.Time.After(chain.LatestHeader.GetTime()) {
		chain.Coordinator.IncrementTime()
	}

	root, height := chain.App.GetStore().Commit()

	chain.LatestHeader = chain.CreateTMClientHeader(
		chain.ChainID, height, clienttypes.Height{}, chain.ProposedHeader.Time, root,
		chain.Vals, chain.NextVals, nil, chain.Signers,
	)
	chain.TrustedValidators[uint64(height)] = chain.NextVals

	// val set changes returned from previous block get applied to the next validators
	// of this block. See tendermint spec for details.
	chain.Vals = chain.NextVals

	chain.ProposedHeader = tmproto.Header{
		ChainID: chain.ChainID,
		Height:  height + 1,
		// NOTE: the time is increased by the coordinator to maintain time synchrony amongst
		// chains.
		Time: chain.ProposedHeader.Time,
	}
}

// SendMsgs delivers msgs as one transaction in the current block. On success
// the block is committed and the global time is incremented.
func (chain *TestChain) SendMsgs(msgs ...keeper.Msg) (*Result, error) {
	// ensure the chain has the latest time
	chain.Coordinator.UpdateTimeForChain(chain)

	ctx := chain.GetContext()
	responses, err := chain.App.GetIBCKeeper().DeliverTx(ctx, msgs...)
	if err != nil {
		return nil, err
	}

	chain.Coordinator.CommitBlock(chain)

	return &Result{
		Responses: responses,
		Events:    ctx.EventManager().ABCIEvents(),
	}, nil
}

// sendMsgs delivers msgs and discards the result.
func (chain *TestChain) sendMsgs(msgs ...keeper.Msg) error {
	_, err := chain.SendMsgs(msgs...)
	return err
}

// GetClientState retrieves the client state for the provided clientID. The client is
// expected to exist otherwise testing will fail.
func (chain *TestChain) GetClientState(clientID string) exported.ClientState {
	clientState, found := chain.App.GetIBCKeeper().ClientKeeper.GetClientState(chain.GetContext(), clientID)
	require.True(chain.TB, found)

	return clientState
}

// GetConsensusState retrieves the consensus state for the provided clientID and height.
// It will return a success boolean depending on if consensus state exists or not.
func (chain *TestChain) GetConsensusState(clientID string, height exported.Height) (exported.ConsensusState, bool) {
	return chain.App.GetIBCKeeper().ClientKeeper.GetClientConsensusState(chain.GetContext(), clientID, height)
}

// GetValsAtHeight will return the trusted validator set of the chain for the given trusted height.
func (chain *TestChain) GetValsAtHeight(trustedHeight int64) (*tmtypes.ValidatorSet, bool) {
	vals, ok := chain.TrustedValidators[uint64(trustedHeight)]
	return vals, ok
}

// GetPrefix returns the prefix for used by a chain in connection creation
func (*TestChain) GetPrefix() commitmenttypes.MerklePrefix {
	return commitmenttypes.NewMerklePrefix(store.IBCPrefix)
}

// GetSelfHeight returns the height of the block being built.
func (chain *TestChain) GetSelfHeight() clienttypes.Height {
	return clienttypes.GetSelfHeight(chain.ChainID, chain.ProposedHeader.Height)
}

// GetTimeoutHeight is a convenience function which returns a IBC packet timeout height
// to be used for testing. It returns the current IBC height + 100 blocks
func (chain *TestChain) GetTimeoutHeight() clienttypes.Height {
	return clienttypes.NewHeight(clienttypes.ParseChainID(chain.ChainID), uint64(chain.ProposedHeader.Height)+100)
}

// CurrentTMClientHeader creates a TM header using the current header parameters
// on the chain. The trusted fields in the header are set to nil.
func (chain *TestChain) CurrentTMClientHeader() *ibctm.Header {
	return chain.LatestHeader
}

// ConstructUpdateTMClientHeader will construct a valid 07-tendermint Header to update the
// light client on the source chain.
func (chain *TestChain) ConstructUpdateTMClientHeader(counterparty *TestChain, clientID string) (*ibctm.Header, error) {
	// Relayer must query for LatestHeight on client to get TrustedHeight if the trusted height is not set
	trustedHeight := clienttypes.MustHeight(chain.GetClientState(clientID).GetLatestHeight())
	return chain.ConstructUpdateTMClientHeaderWithTrustedHeight(counterparty, clientID, trustedHeight)
}

// ConstructUpdateTMClientHeaderWithTrustedHeight will construct a valid 07-tendermint Header to update the
// light client on the source chain.
func (chain *TestChain) ConstructUpdateTMClientHeaderWithTrustedHeight(counterparty *TestChain, clientID string, trustedHeight clienttypes.Height) (*ibctm.Header, error) {
	require.False(chain.TB, trustedHeight.IsZero())

	// the trusted validators of a header at trustedHeight are the next
	// validators committed to at trustedHeight
	tmTrustedVals, ok := counterparty.GetValsAtHeight(int64(trustedHeight.RevisionHeight))
	if !ok {
		return nil, sdkerrors.Wrapf(ibctm.ErrInvalidHeaderHeight, "could not retrieve trusted validators at trustedHeight: %d", trustedHeight)
	}

	trustedVals, err := tmTrustedVals.ToProto()
	if err != nil {
		return nil, err
	}

	// copy so the counterparty's LatestHeader is not mutated
	header := *counterparty.LatestHeader
	header.TrustedHeight = trustedHeight
	header.TrustedValidators = trustedVals

	return &header, nil
}

// CreateTMClientHeader creates a TM header to update the TM client. Args are passed in to allow
// caller flexibility to use params that differ from the chain.
func (chain *TestChain) CreateTMClientHeader(
	chainID string, blockHeight int64, trustedHeight clienttypes.Height, timestamp time.Time, appHash []byte,
	tmValSet, nextVals, tmTrustedVals *tmtypes.ValidatorSet, signers map[string]tmtypes.PrivValidator,
) *ibctm.Header {
	var (
		valSet      *tmproto.ValidatorSet
		trustedVals *tmproto.ValidatorSet
	)
	require.NotNil(chain.TB, tmValSet)
	if nextVals == nil {
		nextVals = tmValSet
	}

	tmHeader := tmtypes.Header{
		Version:            tmprotoversion.Consensus{Block: tmversion.BlockProtocol, App: 2},
		ChainID:            chainID,
		Height:             blockHeight,
		Time:               timestamp,
		LastBlockID:        MakeBlockID(make([]byte, tmhash.Size), 10_000, make([]byte, tmhash.Size)),
		LastCommitHash:     tmhash.Sum([]byte("last_commit_hash")),
		DataHash:           tmhash.Sum([]byte("data_hash")),
		ValidatorsHash:     tmValSet.Hash(),
		NextValidatorsHash: nextVals.Hash(),
		ConsensusHash:      tmhash.Sum([]byte("consensus_hash")),
		AppHash:            appHash,
		LastResultsHash:    tmhash.Sum([]byte("last_results_hash")),
		EvidenceHash:       tmhash.Sum([]byte("evidence_hash")),
		ProposerAddress:    tmValSet.GetProposer().Address,
	}

	hhash := tmHeader.Hash()
	blockID := MakeBlockID(hhash, 3, tmhash.Sum([]byte("part_set")))
	voteSet := tmtypes.NewVoteSet(chainID, blockHeight, 1, tmproto.PrecommitType, tmValSet)

	// MakeCommit expects a signer array in the same order as the validator array.
	// Thus we iterate over the ordered validator set and construct a signer array
	// from the signer map in the same order.
	signerArr := make([]tmtypes.PrivValidator, len(tmValSet.Validators))
	for i, v := range tmValSet.Validators {
		signerArr[i] = signers[v.Address.String()]
	}

	commit, err := tmtypes.MakeCommit(blockID, blockHeight, 1, voteSet, signerArr, timestamp)
	require.NoError(chain.TB, err)

	signedHeader := &tmproto.SignedHeader{
		Header: tmHeader.ToProto(),
		Commit: commit.ToProto(),
	}

	valSet, err = tmValSet.ToProto()
	require.NoError(chain.TB, err)

	if tmTrustedVals != nil {
		trustedVals, err = tmTrustedVals.ToProto()
		require.NoError(chain.TB, err)
	}

	// The trusted fields may be nil. They may be filled before relaying messages to a client.
	// The relayer is responsible for querying client and injecting appropriate trusted fields.
	return &ibctm.Header{
		SignedHeader:      signedHeader,
		ValidatorSet:      valSet,
		TrustedHeight:     trustedHeight,
		TrustedValidators: trustedVals,
	}
}

// MakeBlockID copied unimported test functions from tmtypes to use them here
func MakeBlockID(hash []byte, partSetSize uint32, partSetHash []byte) tmtypes.BlockID {
	return tmtypes.BlockID{
		Hash: hash,
		PartSetHeader: tmtypes.PartSetHeader{
			Total: partSetSize,
			Hash:  partSetHash,
		},
	}
}

// ExpireClient fast forwards the chain's block time by the provided amount of time which will
// expire any clients with a trusting period less than or equal to this amount of time.
func (chain *TestChain) ExpireClient(amount time.Duration) {
	chain.Coordinator.IncrementTimeBy(amount)
}

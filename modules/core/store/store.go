package store

import (
	"fmt"
	"sync"

	ics23 "github.com/confio/ics23/go"
	sdkiavl "github.com/cosmos/cosmos-sdk/store/iavl"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/cosmos/iavl"
	"github.com/gogo/protobuf/proto"
	"github.com/tendermint/tendermint/libs/log"
	dbm "github.com/tendermint/tm-db"
)

// DefaultCacheSize is the number of IAVL nodes kept in memory.
const DefaultCacheSize = 10000

// IBCPrefix is the key prefix every IBC path is stored under. Counterparties
// verify proofs for prefix || path.
var IBCPrefix = []byte("ibc/")

// CommitStore is the Commitment Store of a single chain: a versioned IAVL tree
// whose root at version H is the commitment root of height H.
//
// Writes go through KVStore and are only visible to proofs after Commit.
// Proofs are built against committed immutable versions and may be queried
// concurrently with message execution.
type CommitStore struct {
	mtx sync.RWMutex

	db     dbm.DB
	tree   *iavl.MutableTree
	store  *sdkiavl.Store
	logger log.Logger
}

// OpenDB opens the backing database for the given backend (memdb, goleveldb, ...).
func OpenDB(backend, dir string) (dbm.DB, error) {
	return dbm.NewDB("ibc", dbm.BackendType(backend), dir)
}

// NewCommitStore loads the latest version of the tree stored in db.
func NewCommitStore(db dbm.DB, logger log.Logger) (*CommitStore, error) {
	tree, err := iavl.NewMutableTree(db, DefaultCacheSize)
	if err != nil {
		return nil, err
	}

	if _, err := tree.Load(); err != nil {
		return nil, err
	}

	return &CommitStore{
		db:     db,
		tree:   tree,
		store:  sdkiavl.UnsafeNewStore(tree),
		logger: logger.With("module", "commitment-store"),
	}, nil
}

// NewMemCommitStore returns a CommitStore backed by an in-memory database.
func NewMemCommitStore(logger log.Logger) *CommitStore {
	s, err := NewCommitStore(dbm.NewMemDB(), logger)
	if err != nil {
		panic(err)
	}
	return s
}

// KVStore returns the writable IBC store (working tree, prefixed by IBCPrefix).
func (s *CommitStore) KVStore() storetypes.KVStore {
	return prefix.NewStore(s.store, IBCPrefix)
}

// Commit saves the working tree as a new version and returns its root and height.
func (s *CommitStore) Commit() ([]byte, int64) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	cid := s.store.Commit()
	s.logger.Debug("committed store", "height", cid.Version, "root", fmt.Sprintf("%X", cid.Hash))

	return cid.Hash, cid.Version
}

// LatestHeight returns the last committed version.
func (s *CommitStore) LatestHeight() int64 {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.tree.Version()
}

// Root returns the commitment root at the given height.
func (s *CommitStore) Root(height int64) ([]byte, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tree, err := s.immutable(height)
	if err != nil {
		return nil, err
	}

	return tree.Hash(), nil
}

// Get reads the committed value of an IBC path at the given height.
func (s *CommitStore) Get(path []byte, height int64) ([]byte, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tree, err := s.immutable(height)
	if err != nil {
		return nil, err
	}

	_, value := tree.Get(prefixed(path))
	return value, nil
}

// QueryProof returns the value stored under the IBC path at the given height
// together with a serialized ICS23 proof: an existence proof when the value is
// present, a non-existence proof otherwise. The proof is only valid against
// Root(height).
func (s *CommitStore) QueryProof(path []byte, height int64) (value []byte, proof []byte, err error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tree, err := s.immutable(height)
	if err != nil {
		return nil, nil, err
	}

	key := prefixed(path)

	var commitmentProof *ics23.CommitmentProof
	if _, value = tree.Get(key); value != nil {
		commitmentProof, err = tree.GetMembershipProof(key)
	} else {
		commitmentProof, err = tree.GetNonMembershipProof(key)
	}
	if err != nil {
		return nil, nil, sdkerrors.Wrapf(ErrProofConstruction, "path %s at height %d: %s", path, height, err)
	}

	proof, err = proto.Marshal(commitmentProof)
	if err != nil {
		return nil, nil, err
	}

	return value, proof, nil
}

func (s *CommitStore) immutable(height int64) (*iavl.ImmutableTree, error) {
	if height <= 0 || !s.tree.VersionExists(height) {
		return nil, sdkerrors.Wrapf(ErrHeightNotFound, "height %d (latest %d)", height, s.tree.Version())
	}

	return s.tree.GetImmutable(height)
}

func prefixed(path []byte) []byte {
	key := make([]byte, 0, len(IBCPrefix)+len(path))
	key = append(key, IBCPrefix...)
	return append(key, path...)
}

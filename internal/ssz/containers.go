// Package ssz hashes the beacon chain containers the Ethereum light client
// consumes and verifies merkle branches against their roots.
package ssz

import (
	"math/big"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	fastssz "github.com/ferranbt/fastssz"
	"github.com/holiman/uint256"
)

const (
	maxExtraDataBytes = 32
	logsBloomSize     = 256
)

// BeaconBlockHeader is the phase0 beacon block header.
type BeaconBlockHeader struct {
	Slot          uint64
	ProposerIndex uint64
	ParentRoot    [32]byte
	StateRoot     [32]byte
	BodyRoot      [32]byte
}

func (h *BeaconBlockHeader) HashTreeRootWith(hh fastssz.HashWalker) error {
	indx := hh.Index()
	hh.PutUint64(h.Slot)
	hh.PutUint64(h.ProposerIndex)
	hh.PutBytes(h.ParentRoot[:])
	hh.PutBytes(h.StateRoot[:])
	hh.PutBytes(h.BodyRoot[:])
	hh.Merkleize(indx)
	return nil
}

// HashTreeRoot returns the ssz hash tree root of the header.
func (h *BeaconBlockHeader) HashTreeRoot() ([32]byte, error) {
	return hashTreeRoot(h)
}

// SyncCommittee is the set of validators signing beacon headers for one
// sync committee period. The vector length is the preset's committee size.
type SyncCommittee struct {
	Pubkeys         [][48]byte
	AggregatePubkey [48]byte
}

func (s *SyncCommittee) HashTreeRootWith(hh fastssz.HashWalker) error {
	indx := hh.Index()
	{
		subIndx := hh.Index()
		for _, pk := range s.Pubkeys {
			hh.PutBytes(pk[:])
		}
		hh.Merkleize(subIndx)
	}
	hh.PutBytes(s.AggregatePubkey[:])
	hh.Merkleize(indx)
	return nil
}

func (s *SyncCommittee) HashTreeRoot() ([32]byte, error) {
	return hashTreeRoot(s)
}

// PubkeyBytes returns the committee keys as byte slices.
func (s *SyncCommittee) PubkeyBytes() [][]byte {
	pks := make([][]byte, len(s.Pubkeys))
	for i := range s.Pubkeys {
		pks[i] = s.Pubkeys[i][:]
	}
	return pks
}

// ExecutionPayloadHeader is the Deneb execution payload header.
type ExecutionPayloadHeader struct {
	ParentHash       [32]byte
	FeeRecipient     [20]byte
	StateRoot        [32]byte
	ReceiptsRoot     [32]byte
	LogsBloom        [logsBloomSize]byte
	PrevRandao       [32]byte
	BlockNumber      uint64
	GasLimit         uint64
	GasUsed          uint64
	Timestamp        uint64
	ExtraData        []byte
	BaseFeePerGas    *big.Int
	BlockHash        [32]byte
	TransactionsRoot [32]byte
	WithdrawalsRoot  [32]byte
	BlobGasUsed      uint64
	ExcessBlobGas    uint64
}

func (e *ExecutionPayloadHeader) HashTreeRootWith(hh fastssz.HashWalker) error {
	indx := hh.Index()
	hh.PutBytes(e.ParentHash[:])
	hh.PutBytes(e.FeeRecipient[:])
	hh.PutBytes(e.StateRoot[:])
	hh.PutBytes(e.ReceiptsRoot[:])
	hh.PutBytes(e.LogsBloom[:])
	hh.PutBytes(e.PrevRandao[:])
	hh.PutUint64(e.BlockNumber)
	hh.PutUint64(e.GasLimit)
	hh.PutUint64(e.GasUsed)
	hh.PutUint64(e.Timestamp)
	{
		elemIndx := hh.Index()
		byteLen := uint64(len(e.ExtraData))
		if byteLen > maxExtraDataBytes {
			return sdkerrors.Wrapf(ErrInvalidContainer, "extra data is %d bytes, max %d", byteLen, maxExtraDataBytes)
		}
		hh.Append(e.ExtraData)
		hh.FillUpTo32()
		hh.MerkleizeWithMixin(elemIndx, byteLen, (maxExtraDataBytes+31)/32)
	}
	baseFee, err := littleEndianUint256(e.BaseFeePerGas)
	if err != nil {
		return err
	}
	hh.PutBytes(baseFee[:])
	hh.PutBytes(e.BlockHash[:])
	hh.PutBytes(e.TransactionsRoot[:])
	hh.PutBytes(e.WithdrawalsRoot[:])
	hh.PutUint64(e.BlobGasUsed)
	hh.PutUint64(e.ExcessBlobGas)
	hh.Merkleize(indx)
	return nil
}

func (e *ExecutionPayloadHeader) HashTreeRoot() ([32]byte, error) {
	return hashTreeRoot(e)
}

// ForkData is hashed into the signature domain.
type ForkData struct {
	CurrentVersion        [4]byte
	GenesisValidatorsRoot [32]byte
}

func (f *ForkData) HashTreeRootWith(hh fastssz.HashWalker) error {
	indx := hh.Index()
	hh.PutBytes(f.CurrentVersion[:])
	hh.PutBytes(f.GenesisValidatorsRoot[:])
	hh.Merkleize(indx)
	return nil
}

func (f *ForkData) HashTreeRoot() ([32]byte, error) {
	return hashTreeRoot(f)
}

// SigningData binds an object root to a signature domain.
type SigningData struct {
	ObjectRoot [32]byte
	Domain     [32]byte
}

func (s *SigningData) HashTreeRootWith(hh fastssz.HashWalker) error {
	indx := hh.Index()
	hh.PutBytes(s.ObjectRoot[:])
	hh.PutBytes(s.Domain[:])
	hh.Merkleize(indx)
	return nil
}

func (s *SigningData) HashTreeRoot() ([32]byte, error) {
	return hashTreeRoot(s)
}

type hashable interface {
	HashTreeRootWith(hh fastssz.HashWalker) error
}

func hashTreeRoot(v hashable) ([32]byte, error) {
	hh := fastssz.DefaultHasherPool.Get()
	defer fastssz.DefaultHasherPool.Put(hh)

	if err := v.HashTreeRootWith(hh); err != nil {
		return [32]byte{}, err
	}
	return hh.HashRoot()
}

// littleEndianUint256 encodes a uint256 the way ssz serializes it.
func littleEndianUint256(v *big.Int) ([32]byte, error) {
	var out [32]byte
	if v == nil {
		return out, nil
	}
	if v.Sign() < 0 {
		return out, sdkerrors.Wrap(ErrInvalidContainer, "negative uint256")
	}

	u, overflow := uint256.FromBig(v)
	if overflow {
		return out, sdkerrors.Wrap(ErrInvalidContainer, "uint256 overflow")
	}

	be := u.Bytes32()
	for i := range be {
		out[i] = be[31-i]
	}
	return out, nil
}

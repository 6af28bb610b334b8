package statelens

import (
	"encoding/binary"
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/common"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	"github.com/ComposableFi/ibc-core/modules/core/exported"
)

const (
	// ProofTypeICS23 verifies L2 membership with ICS23 proofs against the
	// state root.
	ProofTypeICS23 = "ics23"
	// ProofTypeMPT verifies L2 membership with an account proof of the IBC
	// contract and a storage proof of the commitment slot.
	ProofTypeMPT = "mpt"
)

var _ exported.ClientState = (*ClientState)(nil)

// ClientState tracks L2ChainId through L2ClientID, the client of the L2 on
// the chain of L1ClientID. Heights are L2 heights.
type ClientState struct {
	L2ChainId  string
	L1ClientID string
	L2ClientID string
	// ConsensusKeyPrefix is prepended to the 24-host consensus state key of
	// L2ClientID to form the L1 path of an L2 consensus state.
	ConsensusKeyPrefix []byte
	// TimestampOffset and StateRootOffset locate the big-endian nanosecond
	// timestamp and the 32 byte state root in the L2 consensus state bytes.
	TimestampOffset uint32
	StateRootOffset uint32

	ProofType          string
	IbcContractAddress common.Address
	LatestHeight       clienttypes.Height
	FrozenHeight       clienttypes.Height
}

func (ClientState) ClientType() string {
	return exported.StateLens
}

func (cs ClientState) GetLatestHeight() exported.Height {
	return cs.LatestHeight
}

func (cs ClientState) GetFrozenHeight() exported.Height {
	return cs.FrozenHeight
}

func (cs ClientState) Validate() error {
	if strings.TrimSpace(cs.L2ChainId) == "" {
		return sdkerrors.Wrap(ErrInvalidClientState, "l2 chain id cannot be empty")
	}
	if err := host.ClientIdentifierValidator(cs.L1ClientID); err != nil {
		return sdkerrors.Wrap(ErrInvalidClientState, err.Error())
	}
	if err := host.ClientIdentifierValidator(cs.L2ClientID); err != nil {
		return sdkerrors.Wrap(ErrInvalidClientState, err.Error())
	}
	if cs.LatestHeight.IsZero() {
		return sdkerrors.Wrap(ErrInvalidClientState, "latest height cannot be zero")
	}

	switch cs.ProofType {
	case ProofTypeICS23:
	case ProofTypeMPT:
		if cs.IbcContractAddress == (common.Address{}) {
			return sdkerrors.Wrap(ErrInvalidClientState, "ibc contract address cannot be empty for mpt proofs")
		}
	default:
		return sdkerrors.Wrapf(ErrInvalidClientState, "unknown proof type %q", cs.ProofType)
	}
	return nil
}

// ConsensusKey is the L1 path of the L2 consensus state at height.
func (cs ClientState) ConsensusKey(height exported.Height) []byte {
	key := host.FullConsensusStateKey(cs.L2ClientID, height)
	path := make([]byte, 0, len(cs.ConsensusKeyPrefix)+len(key))
	path = append(path, cs.ConsensusKeyPrefix...)
	return append(path, key...)
}

// extractConsensus reads the state root and timestamp of an L2 consensus
// state encoding.
func (cs ClientState) extractConsensus(bz []byte) ([32]byte, uint64, error) {
	var root [32]byte
	if uint64(len(bz)) < uint64(cs.StateRootOffset)+32 {
		return root, 0, sdkerrors.Wrapf(ErrInvalidL2Consensus, "state root at offset %d out of %d bytes", cs.StateRootOffset, len(bz))
	}
	if uint64(len(bz)) < uint64(cs.TimestampOffset)+8 {
		return root, 0, sdkerrors.Wrapf(ErrInvalidL2Consensus, "timestamp at offset %d out of %d bytes", cs.TimestampOffset, len(bz))
	}

	copy(root[:], bz[cs.StateRootOffset:])
	timestamp := binary.BigEndian.Uint64(bz[cs.TimestampOffset:])
	if timestamp == 0 {
		return root, 0, sdkerrors.Wrap(ErrInvalidL2Consensus, "timestamp cannot be zero")
	}
	return root, timestamp, nil
}

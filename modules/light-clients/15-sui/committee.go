package sui

import (
	"fmt"

	"github.com/ComposableFi/go-merkle-trees/merkle"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/ComposableFi/ibc-core/internal/bls"
)

const (
	// TotalStake is the voting power of every committee.
	TotalStake uint64 = 10000
	// QuorumThreshold is the stake a certificate needs.
	QuorumThreshold uint64 = 6667
)

// Authority is a committee member with its min-sig public key.
type Authority struct {
	PublicKey []byte
	Stake     uint64
}

func (a Authority) leaf() []byte {
	bz, err := rlp.EncodeToBytes(&a)
	if err != nil {
		panic(err)
	}
	h := digest([]byte("Authority::"), bz)
	return h[:]
}

// Committee is the authority set of an epoch.
type Committee []Authority

// Validate checks the keys and that the stake adds up to TotalStake.
func (c Committee) Validate() error {
	if len(c) == 0 {
		return sdkerrors.Wrap(ErrInvalidCommittee, "committee cannot be empty")
	}

	var total uint64
	for i, a := range c {
		if len(a.PublicKey) != bls.PublicKeySizeMinSig {
			return sdkerrors.Wrapf(ErrInvalidCommittee, "authority %d public key must be %d bytes", i, bls.PublicKeySizeMinSig)
		}
		if a.Stake == 0 || a.Stake > TotalStake {
			return sdkerrors.Wrapf(ErrInvalidCommittee, "authority %d stake %d out of range", i, a.Stake)
		}
		total += a.Stake
	}
	if total != TotalStake {
		return sdkerrors.Wrapf(ErrInvalidCommittee, "total stake %d, expected %d", total, TotalStake)
	}
	return nil
}

// Info returns the root and size the client stores for the committee.
func (c Committee) Info() (CommitteeInfo, error) {
	leaves := make([][]byte, len(c))
	for i, a := range c {
		leaves[i] = a.leaf()
	}

	tree, err := merkle.NewTree(Blake2b256{}).FromLeaves(leaves)
	if err != nil {
		return CommitteeInfo{}, sdkerrors.Wrap(ErrInvalidCommittee, err.Error())
	}

	info := CommitteeInfo{Size: uint32(len(c))}
	copy(info.Root[:], tree.Root())
	return info, nil
}

// Prove returns the signers at indices with the proof of their membership.
func (c Committee) Prove(indices []uint32) ([]Signer, [][]byte, error) {
	leaves := make([][]byte, len(c))
	for i, a := range c {
		leaves[i] = a.leaf()
	}

	tree, err := merkle.NewTree(Blake2b256{}).FromLeaves(leaves)
	if err != nil {
		return nil, nil, sdkerrors.Wrap(ErrInvalidCommittee, err.Error())
	}

	signers := make([]Signer, len(indices))
	for i, index := range indices {
		signers[i] = Signer{Index: index, Authority: c[index]}
	}
	return signers, tree.Proof(indices).ProofHashes(), nil
}

// CommitteeInfo is the client data kept for each epoch.
type CommitteeInfo struct {
	Root [32]byte
	Size uint32
}

func (info CommitteeInfo) Bytes() []byte {
	bz, err := rlp.EncodeToBytes(&info)
	if err != nil {
		panic(err)
	}
	return bz
}

func decodeCommitteeInfo(bz []byte) (CommitteeInfo, error) {
	var info CommitteeInfo
	if err := rlp.DecodeBytes(bz, &info); err != nil {
		return CommitteeInfo{}, sdkerrors.Wrap(ErrInvalidCommittee, err.Error())
	}
	return info, nil
}

// CommitteeKey is the client data key of the committee of epoch.
func CommitteeKey(epoch uint64) []byte {
	return []byte(fmt.Sprintf("committees/%d", epoch))
}

// Signer is a committee member that signed a certificate.
type Signer struct {
	Index     uint32
	Authority Authority
}

// AuthorityQuorumSignInfo is the committee certificate of a checkpoint.
// ProofHashes prove the signers against the committee root.
type AuthorityQuorumSignInfo struct {
	Epoch       uint64
	Signature   []byte
	Signers     []Signer
	ProofHashes [][]byte
}

// Verify checks that the signers belong to the committee, hold a quorum and
// that their aggregate signature over message is valid.
func (s AuthorityQuorumSignInfo) Verify(committee CommitteeInfo, message []byte) error {
	if len(s.Signers) == 0 {
		return sdkerrors.Wrap(ErrInsufficientStake, "no signers")
	}

	var (
		leaves  = make([]merkle.Leaf, len(s.Signers))
		pubkeys = make([][]byte, len(s.Signers))
		stake   uint64
	)
	for i, signer := range s.Signers {
		if signer.Index >= committee.Size {
			return sdkerrors.Wrapf(ErrInvalidCommittee, "signer index %d, committee of %d", signer.Index, committee.Size)
		}
		if i > 0 && signer.Index <= s.Signers[i-1].Index {
			return sdkerrors.Wrap(ErrInvalidCommittee, "signers must be sorted by index without duplicates")
		}
		if signer.Authority.Stake > TotalStake {
			return sdkerrors.Wrapf(ErrInvalidCommittee, "signer %d stake %d out of range", signer.Index, signer.Authority.Stake)
		}

		leaves[i] = merkle.Leaf{Hash: signer.Authority.leaf(), Index: signer.Index}
		pubkeys[i] = signer.Authority.PublicKey
		stake += signer.Authority.Stake
	}

	valid, err := merkle.NewProof(leaves, s.ProofHashes, committee.Size, Blake2b256{}).Verify(committee.Root[:])
	if err != nil || !valid {
		return sdkerrors.Wrap(ErrInvalidCommittee, "signers are not members of the committee")
	}

	if stake < QuorumThreshold {
		return sdkerrors.Wrapf(ErrInsufficientStake, "%d signed, quorum is %d", stake, QuorumThreshold)
	}

	if err := bls.FastAggregateVerifyMinSig(pubkeys, message, s.Signature); err != nil {
		return sdkerrors.Wrap(ErrInvalidSignature, err.Error())
	}
	return nil
}

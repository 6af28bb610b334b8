package ibcgrpc

import (
	"context"
	"net"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/pkg/errors"
	"github.com/tendermint/tendermint/libs/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ComposableFi/ibc-core/internal/validate"
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/ComposableFi/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/ComposableFi/ibc-core/modules/core/04-channel/types"
	host "github.com/ComposableFi/ibc-core/modules/core/24-host"
	"github.com/ComposableFi/ibc-core/modules/core/store"
)

var _ QueryServer = (*Server)(nil)

// Server answers queries from the committed versions of a CommitStore. It
// never reads the working tree, so it may run alongside message execution.
type Server struct {
	store    *store.CommitStore
	revision uint64
	logger   log.Logger
}

// NewServer creates a query server over the committed state of the chain
// identified by chainID. The revision number of returned proof heights is
// parsed from chainID.
func NewServer(commitStore *store.CommitStore, chainID string, logger log.Logger) *Server {
	return &Server{
		store:    commitStore,
		revision: clienttypes.ParseChainID(chainID),
		logger:   logger.With("module", "grpc-query"),
	}
}

// Register adds the query service to a gRPC server.
func (s *Server) Register(gs *grpc.Server) {
	RegisterQueryServer(gs, s)
}

// Serve starts a gRPC server on the given listener. It blocks until the
// listener fails or the server is stopped.
func (s *Server) Serve(lis net.Listener, opts ...grpc.ServerOption) error {
	gs := grpc.NewServer(opts...)
	s.Register(gs)

	s.logger.Info("serving ibc queries", "addr", lis.Addr().String())
	return gs.Serve(lis)
}

func (s *Server) ClientState(_ context.Context, req *QueryClientStateRequest) (*QueryClientStateResponse, error) {
	if err := validate.GRPCClientRequest(req.ClientId); err != nil {
		return nil, err
	}
	clientType, _, err := clienttypes.ParseClientIdentifier(req.ClientId)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	value, proof, height, err := s.query(host.FullClientStateKey(req.ClientId), req.Height)
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, status.Error(codes.NotFound, sdkerrors.Wrap(clienttypes.ErrClientNotFound, req.ClientId).Error())
	}

	return &QueryClientStateResponse{
		ClientType:  clientType,
		ClientState: value,
		Proof:       proof,
		ProofHeight: height,
	}, nil
}

func (s *Server) ConsensusState(_ context.Context, req *QueryConsensusStateRequest) (*QueryConsensusStateResponse, error) {
	if err := validate.GRPCClientRequest(req.ClientId); err != nil {
		return nil, err
	}
	if req.ConsensusHeight.IsZero() {
		return nil, status.Error(codes.InvalidArgument, "consensus state height cannot be zero")
	}

	value, proof, height, err := s.query(host.FullConsensusStateKey(req.ClientId, req.ConsensusHeight), req.Height)
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, status.Error(codes.NotFound, sdkerrors.Wrapf(clienttypes.ErrConsensusStateNotFound, "client %s height %s", req.ClientId, req.ConsensusHeight).Error())
	}

	return &QueryConsensusStateResponse{
		ConsensusState: value,
		Proof:          proof,
		ProofHeight:    height,
	}, nil
}

func (s *Server) Connection(_ context.Context, req *QueryConnectionRequest) (*QueryConnectionResponse, error) {
	if err := validate.GRPCConnectionRequest(req.ConnectionId); err != nil {
		return nil, err
	}

	value, proof, height, err := s.query(host.ConnectionKey(req.ConnectionId), req.Height)
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, status.Error(codes.NotFound, sdkerrors.Wrap(connectiontypes.ErrConnectionNotFound, req.ConnectionId).Error())
	}

	connection, err := connectiontypes.UnmarshalConnectionEnd(value)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &QueryConnectionResponse{
		Connection:  connection,
		Proof:       proof,
		ProofHeight: height,
	}, nil
}

func (s *Server) Channel(_ context.Context, req *QueryChannelRequest) (*QueryChannelResponse, error) {
	if err := validate.GRPCRequest(req.PortId, req.ChannelId); err != nil {
		return nil, err
	}

	value, proof, height, err := s.query(host.ChannelKey(req.PortId, req.ChannelId), req.Height)
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, status.Error(codes.NotFound, sdkerrors.Wrapf(channeltypes.ErrChannelNotFound, "port-id: %s, channel-id %s", req.PortId, req.ChannelId).Error())
	}

	channel, err := channeltypes.UnmarshalChannel(value)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &QueryChannelResponse{
		Channel:     channel,
		Proof:       proof,
		ProofHeight: height,
	}, nil
}

func (s *Server) PacketCommitment(_ context.Context, req *QueryPacketRequest) (*QueryPacketCommitmentResponse, error) {
	if err := validatePacketRequest(req); err != nil {
		return nil, err
	}

	value, proof, height, err := s.query(host.PacketCommitmentKey(req.PortId, req.ChannelId, req.Sequence), req.Height)
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, status.Error(codes.NotFound, "packet commitment hash not found")
	}

	return &QueryPacketCommitmentResponse{
		Commitment:  value,
		Proof:       proof,
		ProofHeight: height,
	}, nil
}

func (s *Server) PacketAcknowledgement(_ context.Context, req *QueryPacketRequest) (*QueryPacketAcknowledgementResponse, error) {
	if err := validatePacketRequest(req); err != nil {
		return nil, err
	}

	value, proof, height, err := s.query(host.PacketAcknowledgementKey(req.PortId, req.ChannelId, req.Sequence), req.Height)
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, status.Error(codes.NotFound, "packet acknowledgement hash not found")
	}

	return &QueryPacketAcknowledgementResponse{
		Acknowledgement: value,
		Proof:           proof,
		ProofHeight:     height,
	}, nil
}

func (s *Server) PacketReceipt(_ context.Context, req *QueryPacketRequest) (*QueryPacketReceiptResponse, error) {
	if err := validatePacketRequest(req); err != nil {
		return nil, err
	}

	value, proof, height, err := s.query(host.PacketReceiptKey(req.PortId, req.ChannelId, req.Sequence), req.Height)
	if err != nil {
		return nil, err
	}

	return &QueryPacketReceiptResponse{
		Received:    len(value) != 0,
		Proof:       proof,
		ProofHeight: height,
	}, nil
}

func (s *Server) Proof(_ context.Context, req *QueryProofRequest) (*QueryProofResponse, error) {
	if len(req.Key) == 0 {
		return nil, status.Error(codes.InvalidArgument, "empty key")
	}

	value, proof, height, err := s.query(req.Key, req.Height)
	if err != nil {
		return nil, err
	}

	return &QueryProofResponse{
		Value:       value,
		Proof:       proof,
		ProofHeight: height,
	}, nil
}

// query reads path at the requested committed height, or the latest one when
// height is zero.
func (s *Server) query(path []byte, height uint64) ([]byte, []byte, clienttypes.Height, error) {
	version := int64(height)
	if height == 0 {
		version = s.store.LatestHeight()
	}

	value, proof, err := s.store.QueryProof(path, version)
	if err != nil {
		if errors.Is(err, store.ErrHeightNotFound) {
			return nil, nil, clienttypes.ZeroHeight(), status.Error(codes.NotFound, err.Error())
		}
		s.logger.Error("proof query failed", "path", string(path), "height", version, "error", err)
		return nil, nil, clienttypes.ZeroHeight(), status.Error(codes.Internal, err.Error())
	}

	return value, proof, clienttypes.NewHeight(s.revision, uint64(version)), nil
}

func validatePacketRequest(req *QueryPacketRequest) error {
	if err := validate.GRPCRequest(req.PortId, req.ChannelId); err != nil {
		return err
	}
	if req.Sequence == 0 {
		return status.Error(codes.InvalidArgument, "packet sequence cannot be 0")
	}
	return nil
}

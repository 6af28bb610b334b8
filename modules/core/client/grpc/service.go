package ibcgrpc

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "ibc.core.v1.Query"

// QueryServer is the server-side interface of the IBC query service.
type QueryServer interface {
	ClientState(context.Context, *QueryClientStateRequest) (*QueryClientStateResponse, error)
	ConsensusState(context.Context, *QueryConsensusStateRequest) (*QueryConsensusStateResponse, error)
	Connection(context.Context, *QueryConnectionRequest) (*QueryConnectionResponse, error)
	Channel(context.Context, *QueryChannelRequest) (*QueryChannelResponse, error)
	PacketCommitment(context.Context, *QueryPacketRequest) (*QueryPacketCommitmentResponse, error)
	PacketAcknowledgement(context.Context, *QueryPacketRequest) (*QueryPacketAcknowledgementResponse, error)
	PacketReceipt(context.Context, *QueryPacketRequest) (*QueryPacketReceiptResponse, error)
	Proof(context.Context, *QueryProofRequest) (*QueryProofResponse, error)
}

// RegisterQueryServer registers the QueryServer on a gRPC server.
func RegisterQueryServer(s *grpc.Server, srv QueryServer) {
	s.RegisterService(&serviceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + serviceName + "/" + method
}

func handlerClientState(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(QueryClientStateRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(QueryServer).ClientState(ctx, req)
}

func handlerConsensusState(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(QueryConsensusStateRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(QueryServer).ConsensusState(ctx, req)
}

func handlerConnection(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(QueryConnectionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(QueryServer).Connection(ctx, req)
}

func handlerChannel(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(QueryChannelRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(QueryServer).Channel(ctx, req)
}

func handlerPacketCommitment(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(QueryPacketRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(QueryServer).PacketCommitment(ctx, req)
}

func handlerPacketAcknowledgement(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(QueryPacketRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(QueryServer).PacketAcknowledgement(ctx, req)
}

func handlerPacketReceipt(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(QueryPacketRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(QueryServer).PacketReceipt(ctx, req)
}

func handlerProof(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(QueryProofRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(QueryServer).Proof(ctx, req)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*QueryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ClientState", Handler: handlerClientState},
		{MethodName: "ConsensusState", Handler: handlerConsensusState},
		{MethodName: "Connection", Handler: handlerConnection},
		{MethodName: "Channel", Handler: handlerChannel},
		{MethodName: "PacketCommitment", Handler: handlerPacketCommitment},
		{MethodName: "PacketAcknowledgement", Handler: handlerPacketAcknowledgement},
		{MethodName: "PacketReceipt", Handler: handlerPacketReceipt},
		{MethodName: "Proof", Handler: handlerProof},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ibc/core/v1/query",
}

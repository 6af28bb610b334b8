package ibcgrpc

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/grpc"

	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
)

// Client queries a remote IBC query service.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to a query server. The rlp codec is forced on every call.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(Codec{}),
	))
	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", addr)
	}
	return &Client{cc: cc}, nil
}

func (c *Client) Close() error {
	return c.cc.Close()
}

// ClientState queries the client state of clientID at height, zero meaning
// the latest committed height.
func (c *Client) ClientState(ctx context.Context, clientID string, height uint64) (*QueryClientStateResponse, error) {
	resp := new(QueryClientStateResponse)
	req := &QueryClientStateRequest{ClientId: clientID, Height: height}
	if err := c.cc.Invoke(ctx, fullMethod("ClientState"), req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) ConsensusState(ctx context.Context, clientID string, consensusHeight clienttypes.Height, height uint64) (*QueryConsensusStateResponse, error) {
	resp := new(QueryConsensusStateResponse)
	req := &QueryConsensusStateRequest{ClientId: clientID, ConsensusHeight: consensusHeight, Height: height}
	if err := c.cc.Invoke(ctx, fullMethod("ConsensusState"), req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Connection(ctx context.Context, connectionID string, height uint64) (*QueryConnectionResponse, error) {
	resp := new(QueryConnectionResponse)
	req := &QueryConnectionRequest{ConnectionId: connectionID, Height: height}
	if err := c.cc.Invoke(ctx, fullMethod("Connection"), req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Channel(ctx context.Context, portID, channelID string, height uint64) (*QueryChannelResponse, error) {
	resp := new(QueryChannelResponse)
	req := &QueryChannelRequest{PortId: portID, ChannelId: channelID, Height: height}
	if err := c.cc.Invoke(ctx, fullMethod("Channel"), req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) PacketCommitment(ctx context.Context, portID, channelID string, sequence, height uint64) (*QueryPacketCommitmentResponse, error) {
	resp := new(QueryPacketCommitmentResponse)
	req := &QueryPacketRequest{PortId: portID, ChannelId: channelID, Sequence: sequence, Height: height}
	if err := c.cc.Invoke(ctx, fullMethod("PacketCommitment"), req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) PacketAcknowledgement(ctx context.Context, portID, channelID string, sequence, height uint64) (*QueryPacketAcknowledgementResponse, error) {
	resp := new(QueryPacketAcknowledgementResponse)
	req := &QueryPacketRequest{PortId: portID, ChannelId: channelID, Sequence: sequence, Height: height}
	if err := c.cc.Invoke(ctx, fullMethod("PacketAcknowledgement"), req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) PacketReceipt(ctx context.Context, portID, channelID string, sequence, height uint64) (*QueryPacketReceiptResponse, error) {
	resp := new(QueryPacketReceiptResponse)
	req := &QueryPacketRequest{PortId: portID, ChannelId: channelID, Sequence: sequence, Height: height}
	if err := c.cc.Invoke(ctx, fullMethod("PacketReceipt"), req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Proof queries the value and proof of an arbitrary IBC path.
func (c *Client) Proof(ctx context.Context, key []byte, height uint64) (*QueryProofResponse, error) {
	resp := new(QueryProofResponse)
	req := &QueryProofRequest{Key: key, Height: height}
	if err := c.cc.Invoke(ctx, fullMethod("Proof"), req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

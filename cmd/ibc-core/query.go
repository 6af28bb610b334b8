package main

import (
	"context"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"gopkg.in/yaml.v2"

	"github.com/ComposableFi/ibc-core/internal/config"
	clienttypes "github.com/ComposableFi/ibc-core/modules/core/02-client/types"
	ibcgrpc "github.com/ComposableFi/ibc-core/modules/core/client/grpc"
)

const (
	flagHeight  = "height"
	dialTimeout = 10 * time.Second
)

// queryCmd groups the proof queries a relayer needs. Every query prints the
// value together with its proof and proof height.
func queryCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Query committed ibc state and proofs from a node",
		SuggestionsMinimumDistance: 2,
	}

	cmd.PersistentFlags().String(flagNode, config.DefaultConfig().GRPCAddress, "gRPC address of the node, overrides grpc_address")
	cmd.PersistentFlags().Uint64(flagHeight, 0, "height to query at, 0 for the latest committed height")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "client-state [client-id]",
			Short: "Query a client state",
			Args:  cobra.ExactArgs(1),
			RunE: withClient(v, func(ctx context.Context, c *ibcgrpc.Client, height uint64, args []string) (interface{}, error) {
				resp, err := c.ClientState(ctx, args[0], height)
				if err != nil {
					return nil, err
				}
				return proofOutput{
					"client_type":  resp.ClientType,
					"client_state": hexutil.Encode(resp.ClientState),
				}.with(resp.Proof, resp.ProofHeight), nil
			}),
		},
		&cobra.Command{
			Use:   "consensus-state [client-id] [height]",
			Short: "Query the consensus state of a client at a height, e.g. 1-100",
			Args:  cobra.ExactArgs(2),
			RunE: withClient(v, func(ctx context.Context, c *ibcgrpc.Client, height uint64, args []string) (interface{}, error) {
				consensusHeight, err := clienttypes.ParseHeight(args[1])
				if err != nil {
					return nil, err
				}
				resp, err := c.ConsensusState(ctx, args[0], consensusHeight, height)
				if err != nil {
					return nil, err
				}
				return proofOutput{
					"consensus_state": hexutil.Encode(resp.ConsensusState),
				}.with(resp.Proof, resp.ProofHeight), nil
			}),
		},
		&cobra.Command{
			Use:   "connection [connection-id]",
			Short: "Query a connection end",
			Args:  cobra.ExactArgs(1),
			RunE: withClient(v, func(ctx context.Context, c *ibcgrpc.Client, height uint64, args []string) (interface{}, error) {
				resp, err := c.Connection(ctx, args[0], height)
				if err != nil {
					return nil, err
				}
				return proofOutput{
					"connection": resp.Connection,
				}.with(resp.Proof, resp.ProofHeight), nil
			}),
		},
		&cobra.Command{
			Use:   "channel [port-id] [channel-id]",
			Short: "Query a channel end",
			Args:  cobra.ExactArgs(2),
			RunE: withClient(v, func(ctx context.Context, c *ibcgrpc.Client, height uint64, args []string) (interface{}, error) {
				resp, err := c.Channel(ctx, args[0], args[1], height)
				if err != nil {
					return nil, err
				}
				return proofOutput{
					"channel": resp.Channel,
				}.with(resp.Proof, resp.ProofHeight), nil
			}),
		},
		&cobra.Command{
			Use:   "packet-commitment [port-id] [channel-id] [sequence]",
			Short: "Query a packet commitment",
			Args:  cobra.ExactArgs(3),
			RunE: withClient(v, func(ctx context.Context, c *ibcgrpc.Client, height uint64, args []string) (interface{}, error) {
				sequence, err := parseSequence(args[2])
				if err != nil {
					return nil, err
				}
				resp, err := c.PacketCommitment(ctx, args[0], args[1], sequence, height)
				if err != nil {
					return nil, err
				}
				return proofOutput{
					"commitment": hexutil.Encode(resp.Commitment),
				}.with(resp.Proof, resp.ProofHeight), nil
			}),
		},
		&cobra.Command{
			Use:   "packet-ack [port-id] [channel-id] [sequence]",
			Short: "Query a packet acknowledgement commitment",
			Args:  cobra.ExactArgs(3),
			RunE: withClient(v, func(ctx context.Context, c *ibcgrpc.Client, height uint64, args []string) (interface{}, error) {
				sequence, err := parseSequence(args[2])
				if err != nil {
					return nil, err
				}
				resp, err := c.PacketAcknowledgement(ctx, args[0], args[1], sequence, height)
				if err != nil {
					return nil, err
				}
				return proofOutput{
					"acknowledgement": hexutil.Encode(resp.Acknowledgement),
				}.with(resp.Proof, resp.ProofHeight), nil
			}),
		},
		&cobra.Command{
			Use:   "packet-receipt [port-id] [channel-id] [sequence]",
			Short: "Query a packet receipt, proving its absence when the packet was not received",
			Args:  cobra.ExactArgs(3),
			RunE: withClient(v, func(ctx context.Context, c *ibcgrpc.Client, height uint64, args []string) (interface{}, error) {
				sequence, err := parseSequence(args[2])
				if err != nil {
					return nil, err
				}
				resp, err := c.PacketReceipt(ctx, args[0], args[1], sequence, height)
				if err != nil {
					return nil, err
				}
				return proofOutput{
					"received": resp.Received,
				}.with(resp.Proof, resp.ProofHeight), nil
			}),
		},
		&cobra.Command{
			Use:   "proof [path]",
			Short: "Query the value and proof of an ibc store path, e.g. clients/07-tendermint-0/clientState",
			Args:  cobra.ExactArgs(1),
			RunE: withClient(v, func(ctx context.Context, c *ibcgrpc.Client, height uint64, args []string) (interface{}, error) {
				resp, err := c.Proof(ctx, []byte(args[0]), height)
				if err != nil {
					return nil, err
				}
				return proofOutput{
					"value": hexutil.Encode(resp.Value),
				}.with(resp.Proof, resp.ProofHeight), nil
			}),
		},
	)

	return cmd
}

type queryFunc func(ctx context.Context, c *ibcgrpc.Client, height uint64, args []string) (interface{}, error)

// withClient dials the configured node, runs query and prints its result as
// yaml.
func withClient(v *viper.Viper, query queryFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		height, err := cmd.Flags().GetUint64(flagHeight)
		if err != nil {
			return err
		}

		addr := v.GetString(config.KeyGRPCAddress)
		if cmd.Flags().Changed(flagNode) {
			if addr, err = cmd.Flags().GetString(flagNode); err != nil {
				return err
			}
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), dialTimeout)
		defer cancel()

		c, err := ibcgrpc.Dial(ctx, addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return err
		}
		defer c.Close()

		out, err := query(ctx, c, height, args)
		if err != nil {
			return errors.Wrapf(err, "query %s", addr)
		}

		bz, err := yaml.Marshal(out)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(bz)
		return err
	}
}

// proofOutput is the printed form of a query result.
type proofOutput map[string]interface{}

func (o proofOutput) with(proof []byte, proofHeight clienttypes.Height) proofOutput {
	o["proof"] = hexutil.Encode(proof)
	o["proof_height"] = proofHeight.String()
	return o
}

func parseSequence(arg string) (uint64, error) {
	sequence, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid sequence %q", arg)
	}
	return sequence, nil
}

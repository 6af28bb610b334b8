package main

import (
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ComposableFi/ibc-core/internal/config"
)

func startCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the node: commit blocks and serve ibc queries over gRPC",
		Long: `Run the node: commit blocks and serve ibc queries over gRPC.

The node is query-only. It writes genesis into a fresh store, commits a block
every block-time and serves the committed state with proofs to relayers. It
has no transaction ingress: ibc messages are executed by embedding the keeper
and calling HandleMsg or DeliverTx, the way the testing package drives chains.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			if !filepath.IsAbs(cfg.DBDir) {
				cfg.DBDir = filepath.Join(homeDir(v), cfg.DBDir)
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			logger = logger.With("chain-id", cfg.ChainID)

			n, err := newNode(cfg, logger)
			if err != nil {
				return err
			}
			if err := n.initGenesis(); err != nil {
				return err
			}

			lis, err := net.Listen("tcp", cfg.GRPCAddress)
			if err != nil {
				return errors.Wrapf(err, "listen on %s", cfg.GRPCAddress)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return n.run(ctx, lis)
		},
	}

	cmd.Flags().String("chain-id", config.DefaultConfig().ChainID, "chain identifier, its revision suffix sets the proof height revision")
	cmd.Flags().String("grpc-address", config.DefaultConfig().GRPCAddress, "address the query service listens on")
	cmd.Flags().String("db-backend", config.DefaultConfig().DBBackend, "database backend (memdb, goleveldb)")
	cmd.Flags().String("db-dir", config.DefaultConfig().DBDir, "database directory")
	cmd.Flags().StringSlice("market-makers", nil, "addresses allowed to deliver packets through intent receive")
	cmd.Flags().String("authority", "", "address administering the market maker set")
	cmd.Flags().Uint32("max-client-depth", config.DefaultMaxClientDepth, "bound on nested light client verification")
	cmd.Flags().Duration("block-time", config.DefaultConfig().BlockTime, "interval between commits")
	cmd.Flags().Bool("telemetry", false, "collect in-memory metrics")

	bindFlag(v, config.KeyChainID, cmd, "chain-id")
	bindFlag(v, config.KeyGRPCAddress, cmd, "grpc-address")
	bindFlag(v, config.KeyDBBackend, cmd, "db-backend")
	bindFlag(v, config.KeyDBDir, cmd, "db-dir")
	bindFlag(v, config.KeyMarketMakers, cmd, "market-makers")
	bindFlag(v, config.KeyAuthority, cmd, "authority")
	bindFlag(v, config.KeyMaxClientDepth, cmd, "max-client-depth")
	bindFlag(v, config.KeyBlockTime, cmd, "block-time")
	bindFlag(v, config.KeyTelemetryOn, cmd, "telemetry")

	return cmd
}

package ibc

import (
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	ibcerrors "github.com/ComposableFi/ibc-core/modules/core/errors"
	"github.com/ComposableFi/ibc-core/modules/core/keeper"
	coretypes "github.com/ComposableFi/ibc-core/modules/core/types"
)

// GenesisState is the initial state of the IBC store: identifier sequences
// and the registered intent market makers.
type GenesisState struct {
	NextClientSequence     uint64   `yaml:"next_client_sequence"`
	NextConnectionSequence uint64   `yaml:"next_connection_sequence"`
	NextChannelSequence    uint64   `yaml:"next_channel_sequence"`
	MarketMakers           []string `yaml:"market_makers"`
}

// DefaultGenesisState returns the ibc module's default genesis state.
func DefaultGenesisState() GenesisState {
	return GenesisState{}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	seen := make(map[string]bool, len(gs.MarketMakers))
	for i, mm := range gs.MarketMakers {
		if strings.TrimSpace(mm) == "" {
			return sdkerrors.Wrapf(ibcerrors.ErrInvalidAddress, "market maker %d cannot be blank", i)
		}
		if seen[mm] {
			return sdkerrors.Wrapf(ibcerrors.ErrInvalidRequest, "duplicate market maker %s", mm)
		}
		seen[mm] = true
	}
	return nil
}

// InitGenesis initializes the ibc state from a provided genesis
// state.
func InitGenesis(ctx coretypes.Context, k *keeper.Keeper, gs GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}

	k.ClientKeeper.SetNextClientSequence(ctx, gs.NextClientSequence)
	k.ConnectionKeeper.SetNextConnectionSequence(ctx, gs.NextConnectionSequence)
	k.ChannelKeeper.SetNextChannelSequence(ctx, gs.NextChannelSequence)

	for _, mm := range gs.MarketMakers {
		if err := k.ChannelKeeper.SetMarketMaker(ctx, k.GetAuthority(), mm); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis returns the ibc exported genesis.
func ExportGenesis(ctx coretypes.Context, k *keeper.Keeper) GenesisState {
	return GenesisState{
		NextClientSequence:     k.ClientKeeper.GetNextClientSequence(ctx),
		NextConnectionSequence: k.ConnectionKeeper.GetNextConnectionSequence(ctx),
		NextChannelSequence:    k.ChannelKeeper.GetNextChannelSequence(ctx),
		MarketMakers:           k.ChannelKeeper.GetAllMarketMakers(ctx),
	}
}

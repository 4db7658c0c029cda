package keeper_test

import (
	"context"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vestamm/vestamm/testutil/keeper"
	"github.com/vestamm/vestamm/x/vestamm/types"
)

const (
	authority = "authority"
	treasury  = "treasury"
	alice     = "alice"
	bob       = "bob"

	tokenA = "uatom"
	tokenB = "uusdc"
)

// setupPool creates a pool with the given fee split and a funded first
// deposit of 1M/1M from alice, vested for the minimum window. The bootstrap
// mints exactly 1M LP shares.
func setupPool(t *testing.T, f *keepertest.Fixture, protocolBps, treasuryBps, rewardBps uint32) (poolID, stakeID uint64) {
	t.Helper()
	ctx := context.Background()

	poolID, err := f.Keeper.InitializePool(ctx, authority, treasury, tokenA, tokenB, protocolBps, treasuryBps, rewardBps)
	require.NoError(t, err)

	f.Bank.Fund(tokenA, alice, math.NewInt(10_000_000))
	f.Bank.Fund(tokenB, alice, math.NewInt(10_000_000))

	stakeID, err = f.Keeper.DepositAndVest(ctx, alice, poolID,
		math.NewInt(1_000_000), math.NewInt(1_000_000),
		types.DefaultMinVestingSeconds)
	require.NoError(t, err)

	return poolID, stakeID
}

// fundTrader gives bob both pool tokens.
func fundTrader(f *keepertest.Fixture) {
	f.Bank.Fund(tokenA, bob, math.NewInt(10_000_000))
	f.Bank.Fund(tokenB, bob, math.NewInt(10_000_000))
}

// matureStakes moves the clock past the minimum vesting window.
func matureStakes(f *keepertest.Fixture) {
	f.Clock.Advance(types.DefaultMinVestingSeconds*time.Second + time.Second)
}

package keeper_test

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vestamm/vestamm/testutil/keeper"
	"github.com/vestamm/vestamm/x/vestamm/types"
)

// seedUnlockedLp writes a pool with free (non-staked) LP supply and funds the
// ledger to match, modeling state where unlocked shares circulate.
func seedUnlockedLp(t *testing.T, f *keepertest.Fixture) uint64 {
	t.Helper()

	poolID, err := f.Keeper.InitializePool(context.Background(), authority, treasury,
		tokenA, tokenB, 30, 10, 20)
	require.NoError(t, err)

	pool, err := f.Keeper.GetPool(poolID)
	require.NoError(t, err)
	pool.ReserveA = math.NewInt(1_000_000)
	pool.ReserveB = math.NewInt(1_000_000)
	pool.LpSupply = math.NewInt(1_000_000)
	require.NoError(t, f.Keeper.SetPool(pool))

	f.Bank.Fund(tokenA, types.PoolAddress(poolID), math.NewInt(1_000_000))
	f.Bank.Fund(tokenB, types.PoolAddress(poolID), math.NewInt(1_000_000))
	f.Bank.Fund(types.LpDenom(poolID), alice, math.NewInt(1_000_000))

	return poolID
}

func TestWithdrawUnlocked_Valid(t *testing.T) {
	f := keepertest.VestammKeeper(t)
	poolID := seedUnlockedLp(t, f)

	amountA, amountB, err := f.Keeper.WithdrawUnlocked(context.Background(), alice, poolID,
		math.NewInt(250_000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(250_000), amountA)
	require.Equal(t, math.NewInt(250_000), amountB)

	pool, err := f.Keeper.GetPool(poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(750_000), pool.LpSupply)
	require.Equal(t, math.NewInt(750_000), pool.ReserveA)
	require.Equal(t, math.NewInt(750_000), pool.ReserveB)

	require.Equal(t, math.NewInt(750_000), f.Bank.Balance(types.LpDenom(poolID), alice))
	require.Equal(t, math.NewInt(250_000), f.Bank.Balance(tokenA, alice))
}

func TestWithdrawUnlocked_StakedSharesNotFree(t *testing.T) {
	f := keepertest.VestammKeeper(t)
	poolID, _ := setupPool(t, f, 30, 10, 20)

	// all supply is locked in the vesting stake
	_, _, err := f.Keeper.WithdrawUnlocked(context.Background(), alice, poolID,
		math.NewInt(1))
	require.ErrorIs(t, err, types.ErrInsufficientShares)
}

func TestWithdrawUnlocked_Paused(t *testing.T) {
	f := keepertest.VestammKeeper(t)
	poolID := seedUnlockedLp(t, f)
	require.NoError(t, f.Keeper.Pause(context.Background(), authority, poolID))

	_, _, err := f.Keeper.WithdrawUnlocked(context.Background(), alice, poolID,
		math.NewInt(1000))
	require.ErrorIs(t, err, types.ErrPoolPaused)
}

func TestWithdrawUnlocked_ZeroAmount(t *testing.T) {
	f := keepertest.VestammKeeper(t)
	poolID := seedUnlockedLp(t, f)

	_, _, err := f.Keeper.WithdrawUnlocked(context.Background(), alice, poolID, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidInput)
}

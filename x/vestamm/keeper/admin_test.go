package keeper_test

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/vestamm/vestamm/testutil/keeper"
	"github.com/vestamm/vestamm/x/vestamm/types"
)

func TestPause_Idempotent(t *testing.T) {
	f := keepertest.VestammKeeper(t)
	poolID, _ := setupPool(t, f, 30, 10, 20)
	ctx := context.Background()

	require.NoError(t, f.Keeper.Pause(ctx, authority, poolID))
	require.NoError(t, f.Keeper.Pause(ctx, authority, poolID))

	pool, err := f.Keeper.GetPool(poolID)
	require.NoError(t, err)
	require.True(t, pool.Paused)

	// only the transition emits
	paused := 0
	for _, ev := range f.Emitter.Events() {
		if _, ok := ev.(types.EventPaused); ok {
			paused++
		}
	}
	require.Equal(t, 1, paused)
}

func TestPause_Unauthorized(t *testing.T) {
	f := keepertest.VestammKeeper(t)
	poolID, _ := setupPool(t, f, 30, 10, 20)

	err := f.Keeper.Pause(context.Background(), bob, poolID)
	require.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestUnpause_RestoresOperation(t *testing.T) {
	f := keepertest.VestammKeeper(t)
	poolID, _ := setupPool(t, f, 30, 10, 20)
	fundTrader(f)
	ctx := context.Background()

	require.NoError(t, f.Keeper.Pause(ctx, authority, poolID))
	_, err := f.Keeper.Swap(ctx, bob, poolID, tokenA, math.NewInt(1000), math.NewInt(1))
	require.ErrorIs(t, err, types.ErrPoolPaused)

	require.NoError(t, f.Keeper.Unpause(ctx, authority, poolID))
	_, err = f.Keeper.Swap(ctx, bob, poolID, tokenA, math.NewInt(1000), math.NewInt(1))
	require.NoError(t, err)

	// unpausing a running pool is a no-op
	require.NoError(t, f.Keeper.Unpause(ctx, authority, poolID))
}

func TestEmergencyWithdraw_Valid(t *testing.T) {
	f := keepertest.VestammKeeper(t)
	poolID, _ := setupPool(t, f, 30, 10, 20)
	ctx := context.Background()

	// works on a paused pool
	require.NoError(t, f.Keeper.Pause(ctx, authority, poolID))

	err := f.Keeper.EmergencyWithdraw(ctx, authority, poolID, tokenA,
		math.NewInt(400_000), "multisig")
	require.NoError(t, err)

	pool, err := f.Keeper.GetPool(poolID)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(600_000), pool.ReserveA)
	require.Equal(t, math.NewInt(400_000), f.Bank.Balance(tokenA, "multisig"))
}

func TestEmergencyWithdraw_Unauthorized(t *testing.T) {
	f := keepertest.VestammKeeper(t)
	poolID, _ := setupPool(t, f, 30, 10, 20)

	err := f.Keeper.EmergencyWithdraw(context.Background(), bob, poolID, tokenA,
		math.NewInt(1000), "multisig")
	require.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestEmergencyWithdraw_ExceedsReserve(t *testing.T) {
	f := keepertest.VestammKeeper(t)
	poolID, _ := setupPool(t, f, 30, 10, 20)

	err := f.Keeper.EmergencyWithdraw(context.Background(), authority, poolID, tokenA,
		math.NewInt(2_000_000), "multisig")
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestEmergencyWithdraw_AssetNotInPool(t *testing.T) {
	f := keepertest.VestammKeeper(t)
	poolID, _ := setupPool(t, f, 30, 10, 20)

	err := f.Keeper.EmergencyWithdraw(context.Background(), authority, poolID, "uosmo",
		math.NewInt(1000), "multisig")
	require.ErrorIs(t, err, types.ErrInvalidTokenPair)
}

package keeper_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	keepertest "github.com/vestamm/vestamm/testutil/keeper"
	"github.com/vestamm/vestamm/x/vestamm/types"
)

func TestInitializePool_Valid(t *testing.T) {
	f := keepertest.VestammKeeper(t)

	poolID, err := f.Keeper.InitializePool(context.Background(), authority, treasury,
		tokenA, tokenB, 30, 10, 20)
	require.NoError(t, err)
	require.Equal(t, uint64(1), poolID)

	pool, err := f.Keeper.GetPool(poolID)
	require.NoError(t, err)
	require.Equal(t, tokenA, pool.TokenA)
	require.Equal(t, tokenB, pool.TokenB)
	require.True(t, pool.ReserveA.IsZero())
	require.True(t, pool.LpSupply.IsZero())
	require.False(t, pool.Paused)

	// IDs are sequential
	next, err := f.Keeper.InitializePool(context.Background(), authority, treasury,
		"uosmo", "ujuno", 30, 10, 20)
	require.NoError(t, err)
	require.Equal(t, uint64(2), next)
}

func TestInitializePool_ConcurrentCreationsGetUniqueIDs(t *testing.T) {
	f := keepertest.VestammKeeper(t)

	const n = 16
	type result struct {
		id  uint64
		err error
	}
	results := make(chan result, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			poolID, err := f.Keeper.InitializePool(context.Background(), authority, treasury,
				fmt.Sprintf("utoken%da", i), fmt.Sprintf("utoken%db", i), 30, 10, 20)
			results <- result{id: poolID, err: err}
		}(i)
	}
	wg.Wait()
	close(results)

	seen := make(map[uint64]bool)
	for res := range results {
		require.NoError(t, res.err)
		require.False(t, seen[res.id], "pool ID %d allocated twice", res.id)
		seen[res.id] = true
	}
	require.Len(t, seen, n)

	count, err := f.Keeper.GetPoolCount()
	require.NoError(t, err)
	require.Equal(t, uint64(n+1), count)

	pools, err := f.Keeper.GetAllPools()
	require.NoError(t, err)
	require.Len(t, pools, n)
}

func TestInitializePool_InvalidFeeSplit(t *testing.T) {
	f := keepertest.VestammKeeper(t)

	// 20 + 20 > 30
	_, err := f.Keeper.InitializePool(context.Background(), authority, treasury,
		tokenA, tokenB, 30, 20, 20)
	require.ErrorIs(t, err, types.ErrInvalidFeeSplit)
}

func TestInitializePool_IdenticalTokens(t *testing.T) {
	f := keepertest.VestammKeeper(t)

	_, err := f.Keeper.InitializePool(context.Background(), authority, treasury,
		tokenA, tokenA, 30, 10, 20)
	require.ErrorIs(t, err, types.ErrInvalidTokenPair)
}

func TestGetPool_NotFound(t *testing.T) {
	f := keepertest.VestammKeeper(t)

	_, err := f.Keeper.GetPool(42)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

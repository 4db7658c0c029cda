package keeper

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/vestamm/vestamm/x/vestamm/types"
)

func TestSafeAdd_Valid(t *testing.T) {
	result, err := SafeAdd(math.NewInt(100), math.NewInt(200))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(300), result)
}

func TestSafeAdd_Overflow(t *testing.T) {
	huge := math.NewIntFromBigInt(new(big.Int).Sub(maxIntBound, big.NewInt(1)))
	_, err := SafeAdd(huge, math.NewInt(1))
	require.ErrorIs(t, err, types.ErrNumericOverflow)
}

func TestSafeSub_Valid(t *testing.T) {
	result, err := SafeSub(math.NewInt(500), math.NewInt(200))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(300), result)
}

func TestSafeSub_Underflow(t *testing.T) {
	_, err := SafeSub(math.NewInt(100), math.NewInt(200))
	require.ErrorIs(t, err, types.ErrNumericOverflow)
}

func TestSafeMul_Zero(t *testing.T) {
	result, err := SafeMul(math.NewInt(0), math.NewInt(12345))
	require.NoError(t, err)
	require.True(t, result.IsZero())
}

func TestSafeQuo_DivisionByZero(t *testing.T) {
	_, err := SafeQuo(math.NewInt(100), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrNumericOverflow)
}

func TestSafeMulDiv_Floors(t *testing.T) {
	// floor(7 * 3 / 2) = 10
	result, err := SafeMulDiv(math.NewInt(7), math.NewInt(3), math.NewInt(2))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(10), result)
}

func TestApplyFee_SplitsExactly(t *testing.T) {
	fee, net, err := ApplyFee(math.NewInt(1000), 30)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(3), fee)
	require.Equal(t, math.NewInt(997), net)
	require.Equal(t, math.NewInt(1000), fee.Add(net))
}

func TestApplyFee_ZeroBps(t *testing.T) {
	fee, net, err := ApplyFee(math.NewInt(1000), 0)
	require.NoError(t, err)
	require.True(t, fee.IsZero())
	require.Equal(t, math.NewInt(1000), net)
}

func TestApplyFee_TruncationFavorsNet(t *testing.T) {
	// floor(99 * 30 / 10000) = 0; the whole amount stays net
	fee, net, err := ApplyFee(math.NewInt(99), 30)
	require.NoError(t, err)
	require.True(t, fee.IsZero())
	require.Equal(t, math.NewInt(99), net)
}

func TestIntegerSqrt(t *testing.T) {
	tests := []struct {
		in   int64
		want int64
	}{
		{0, 0},
		{1, 1},
		{4, 2},
		{99, 9},
		{100, 10},
		{1_000_000_000_000, 1_000_000},
	}
	for _, tc := range tests {
		got, err := IntegerSqrt(math.NewInt(tc.in))
		require.NoError(t, err)
		require.Equal(t, math.NewInt(tc.want), got, "sqrt(%d)", tc.in)
	}
}

func TestCalculateLpMint_Bootstrap(t *testing.T) {
	minted, err := calculateLpMint(
		math.NewInt(1_000_000), math.NewInt(1_000_000),
		math.ZeroInt(), math.ZeroInt(), math.ZeroInt(),
	)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1_000_000), minted)
}

func TestCalculateLpMint_BootstrapAsymmetric(t *testing.T) {
	// sqrt(4_000_000 * 1_000_000) = 2_000_000
	minted, err := calculateLpMint(
		math.NewInt(4_000_000), math.NewInt(1_000_000),
		math.ZeroInt(), math.ZeroInt(), math.ZeroInt(),
	)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(2_000_000), minted)
}

func TestCalculateLpMint_TighterRatioWins(t *testing.T) {
	// Reserves 1:1 with supply 1M; an imbalanced 100k/50k deposit mints on
	// the smaller side only.
	minted, err := calculateLpMint(
		math.NewInt(100_000), math.NewInt(50_000),
		math.NewInt(1_000_000), math.NewInt(1_000_000), math.NewInt(1_000_000),
	)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(50_000), minted)
}

func TestCalculateLpMint_DustRejected(t *testing.T) {
	_, err := calculateLpMint(
		math.NewInt(1), math.NewInt(1),
		math.NewInt(1_000_000_000), math.NewInt(1_000_000_000), math.NewInt(1_000),
	)
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestSplitProtocolFee(t *testing.T) {
	pool := types.NewPool(1, "auth", "treasury", "uatom", "uusdc", 30, 10, 20)

	treasuryCut, rewardCut, err := splitProtocolFee(math.NewInt(3), pool)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1), treasuryCut)
	require.Equal(t, math.NewInt(2), rewardCut)
}

func TestSplitProtocolFee_RemainderToReward(t *testing.T) {
	pool := types.NewPool(1, "auth", "treasury", "uatom", "uusdc", 30, 10, 20)

	// floor(100*10/30) = 33 treasury, 67 reward; nothing lost
	treasuryCut, rewardCut, err := splitProtocolFee(math.NewInt(100), pool)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(33), treasuryCut)
	require.Equal(t, math.NewInt(67), rewardCut)
	require.Equal(t, math.NewInt(100), treasuryCut.Add(rewardCut))
}

func TestCreditReward_AdvancesAccumulator(t *testing.T) {
	pool := types.NewPool(1, "auth", "treasury", "uatom", "uusdc", 30, 10, 20)
	pool.LpSupply = math.NewInt(1_000_000)

	require.NoError(t, creditReward(pool, math.NewInt(2)))
	// floor(2 * 1e12 / 1e6) = 2e6
	require.Equal(t, math.NewInt(2_000_000), pool.AccRewardPerLp)

	require.NoError(t, creditReward(pool, math.NewInt(2)))
	require.Equal(t, math.NewInt(4_000_000), pool.AccRewardPerLp)
}

func TestCreditReward_ZeroIsNoop(t *testing.T) {
	pool := types.NewPool(1, "auth", "treasury", "uatom", "uusdc", 30, 10, 20)
	pool.LpSupply = math.NewInt(1_000_000)

	require.NoError(t, creditReward(pool, math.ZeroInt()))
	require.True(t, pool.AccRewardPerLp.IsZero())
}

package types_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/vestamm/vestamm/x/vestamm/types"
)

func newTestStake(amount int64, vestingEnd int64) *types.VestingStake {
	return &types.VestingStake{
		PoolId:     1,
		Owner:      "alice",
		DepositId:  0,
		Amount:     math.NewInt(amount),
		VestingEnd: vestingEnd,
		RewardDebt: math.ZeroInt(),
	}
}

func TestStake_StatusTransitions(t *testing.T) {
	end := int64(1_700_000_000)
	stake := newTestStake(1000, end)

	require.Equal(t, types.StakeStatusActive, stake.Status(time.Unix(end-1, 0)))
	require.Equal(t, types.StakeStatusMatured, stake.Status(time.Unix(end, 0)))
	require.Equal(t, types.StakeStatusMatured, stake.Status(time.Unix(end+1, 0)))

	stake.Claimed = true
	require.Equal(t, types.StakeStatusClaimed, stake.Status(time.Unix(end+1, 0)))
}

func TestStake_PendingReward(t *testing.T) {
	stake := newTestStake(1_000_000, 0)

	// acc = 3e6 scaled units per share: pending = floor(1e6*3e6/1e12) = 3
	acc := math.NewInt(3_000_000)
	require.Equal(t, math.NewInt(3), stake.PendingReward(acc))

	// baseline priced in: nothing pending
	stake.Rebaseline(acc)
	require.True(t, stake.PendingReward(acc).IsZero())

	// further accrual measured from the new baseline
	require.Equal(t, math.NewInt(2), stake.PendingReward(math.NewInt(5_000_000)))
}

func TestStake_PendingRewardFloors(t *testing.T) {
	stake := newTestStake(7, 0)

	// 7 * 100_000_000_000 = 7e11 < 1e12: floors to zero
	require.True(t, stake.PendingReward(math.NewInt(100_000_000_000)).IsZero())
}

func TestStake_PendingRewardNeverNegative(t *testing.T) {
	stake := newTestStake(1000, 0)
	stake.RewardDebt = math.NewInt(1_000_000_000_000_000)

	require.True(t, stake.PendingReward(math.NewInt(1)).IsZero())
}

func TestStake_Validate(t *testing.T) {
	stake := newTestStake(1000, 0)
	require.NoError(t, stake.Validate())

	noOwner := newTestStake(1000, 0)
	noOwner.Owner = ""
	require.Error(t, noOwner.Validate())

	zombie := newTestStake(0, 0)
	require.Error(t, zombie.Validate())

	zombie.Claimed = true
	require.NoError(t, zombie.Validate())
}

func TestStakeStatus_String(t *testing.T) {
	require.Equal(t, "active", types.StakeStatusActive.String())
	require.Equal(t, "matured", types.StakeStatusMatured.String())
	require.Equal(t, "claimed", types.StakeStatusClaimed.String())
}

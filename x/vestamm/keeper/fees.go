package keeper

import (
	"cosmossdk.io/math"

	"github.com/vestamm/vestamm/x/vestamm/types"
)

// splitProtocolFee divides a collected protocol fee into treasury and reward
// cuts. The treasury cut truncates toward zero; any rounding remainder after
// both sub-splits folds into the reward cut, so rounding favors reward
// distribution.
func splitProtocolFee(fee math.Int, pool *types.Pool) (treasuryCut, rewardCut math.Int, err error) {
	if fee.IsZero() || pool.ProtocolFeeBps == 0 {
		return math.ZeroInt(), math.ZeroInt(), nil
	}

	protocol := math.NewInt(int64(pool.ProtocolFeeBps))
	treasuryCut, err = SafeMulDiv(fee, math.NewInt(int64(pool.TreasuryFeeBps)), protocol)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	rewardCut, err = SafeSub(fee, treasuryCut)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return treasuryCut, rewardCut, nil
}

// creditReward advances the pool's per-share accumulator by the scaled reward
// cut. The accumulator never decreases. Calling this with a zero LP supply is
// a bug in the caller; swaps against empty pools are rejected earlier.
func creditReward(pool *types.Pool, rewardCut math.Int) error {
	if rewardCut.IsZero() {
		return nil
	}
	scaled, err := SafeMulDiv(rewardCut, math.NewInt(types.RewardScale), pool.LpSupply)
	if err != nil {
		return err
	}
	acc, err := SafeAdd(pool.AccRewardPerLp, scaled)
	if err != nil {
		return err
	}
	pool.AccRewardPerLp = acc
	return nil
}

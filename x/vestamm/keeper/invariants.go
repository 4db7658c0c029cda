package keeper

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/vestamm/vestamm/x/vestamm/types"
)

// CheckInvariants walks every pool and verifies the accounting identities the
// module relies on. It is wired into test helpers and the node's diagnostics
// command; a non-nil return means state corruption.
func (k *Keeper) CheckInvariants() error {
	pools, err := k.GetAllPools()
	if err != nil {
		return err
	}
	for i := range pools {
		if err := k.checkPoolInvariants(&pools[i]); err != nil {
			return err
		}
	}
	return nil
}

func (k *Keeper) checkPoolInvariants(pool *types.Pool) error {
	if pool.ReserveA.IsNegative() || pool.ReserveB.IsNegative() {
		return fmt.Errorf("pool %d: negative reserve (%s, %s)",
			pool.Id, pool.ReserveA, pool.ReserveB)
	}
	if pool.LpSupply.IsNegative() {
		return fmt.Errorf("pool %d: negative LP supply %s", pool.Id, pool.LpSupply)
	}
	if pool.StakedLp.IsNegative() || pool.StakedLp.GT(pool.LpSupply) {
		return fmt.Errorf("pool %d: staked LP %s outside [0, %s]",
			pool.Id, pool.StakedLp, pool.LpSupply)
	}
	if pool.AccRewardPerLp.IsNegative() {
		return fmt.Errorf("pool %d: negative reward accumulator %s",
			pool.Id, pool.AccRewardPerLp)
	}
	if err := types.ValidateFeeSplit(pool.ProtocolFeeBps, pool.TreasuryFeeBps, pool.RewardFeeBps); err != nil {
		return fmt.Errorf("pool %d: %w", pool.Id, err)
	}

	// Unclaimed stakes must exactly back the pool's staked LP.
	staked := math.ZeroInt()
	var stakeErr error
	err := k.IterateStakesByPool(pool.Id, func(stake types.VestingStake) bool {
		if stake.Claimed {
			return false
		}
		if stake.Amount.IsNegative() {
			stakeErr = fmt.Errorf("stake %d/%d: negative amount %s",
				stake.PoolId, stake.DepositId, stake.Amount)
			return true
		}
		if stake.DepositId >= pool.VestingNonce {
			stakeErr = fmt.Errorf("stake %d/%d: deposit ID beyond nonce %d",
				stake.PoolId, stake.DepositId, pool.VestingNonce)
			return true
		}
		staked = staked.Add(stake.Amount)
		return false
	})
	if err != nil {
		return err
	}
	if stakeErr != nil {
		return stakeErr
	}
	if !staked.Equal(pool.StakedLp) {
		return fmt.Errorf("pool %d: stake sum %s != staked LP %s",
			pool.Id, staked, pool.StakedLp)
	}
	return nil
}

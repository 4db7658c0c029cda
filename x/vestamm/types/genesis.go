package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// GenesisState is the full exported state of the module.
type GenesisState struct {
	Params    Params         `json:"params"`
	PoolCount uint64         `json:"pool_count"`
	Pools     []Pool         `json:"pools"`
	Stakes    []VestingStake `json:"stakes"`
}

// DefaultGenesis returns the empty genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:    DefaultParams(),
		PoolCount: 1, // next pool ID; IDs are assigned from 1
	}
}

// Validate performs structural and referential checks over the genesis state.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	poolIDs := make(map[uint64]*Pool, len(gs.Pools))
	for i := range gs.Pools {
		pool := &gs.Pools[i]
		if _, ok := poolIDs[pool.Id]; ok {
			return fmt.Errorf("duplicate pool id %d", pool.Id)
		}
		if pool.Id == 0 || pool.Id >= gs.PoolCount {
			return fmt.Errorf("pool id %d outside [1, %d)", pool.Id, gs.PoolCount)
		}
		if err := pool.Validate(); err != nil {
			return fmt.Errorf("pool %d: %w", pool.Id, err)
		}
		poolIDs[pool.Id] = pool
	}

	type stakeKey struct {
		pool    uint64
		deposit uint64
	}
	seen := make(map[stakeKey]struct{}, len(gs.Stakes))
	staked := make(map[uint64]math.Int, len(gs.Pools))
	for id := range poolIDs {
		staked[id] = math.ZeroInt()
	}
	for i := range gs.Stakes {
		stake := &gs.Stakes[i]
		pool, ok := poolIDs[stake.PoolId]
		if !ok {
			return fmt.Errorf("stake %d references unknown pool %d", stake.DepositId, stake.PoolId)
		}
		key := stakeKey{pool: stake.PoolId, deposit: stake.DepositId}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate stake %d in pool %d", stake.DepositId, stake.PoolId)
		}
		seen[key] = struct{}{}
		if stake.DepositId >= pool.VestingNonce {
			return fmt.Errorf("stake %d not below pool %d vesting nonce %d",
				stake.DepositId, stake.PoolId, pool.VestingNonce)
		}
		if err := stake.Validate(); err != nil {
			return fmt.Errorf("stake %d: %w", stake.DepositId, err)
		}
		if !stake.Claimed {
			staked[stake.PoolId] = staked[stake.PoolId].Add(stake.Amount)
		}
	}

	// Unclaimed stake totals must match each pool's staked LP bookkeeping.
	for id, pool := range poolIDs {
		if !staked[id].Equal(pool.StakedLp) {
			return fmt.Errorf("pool %d staked LP %s does not match stake total %s",
				id, pool.StakedLp, staked[id])
		}
	}

	return nil
}

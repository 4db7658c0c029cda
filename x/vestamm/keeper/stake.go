package keeper

import (
	dbm "github.com/cosmos/cosmos-db"

	"github.com/vestamm/vestamm/x/vestamm/types"
)

// GetStake loads a vesting stake by pool and deposit ID.
func (k *Keeper) GetStake(poolID, depositID uint64) (*types.VestingStake, error) {
	bz, err := k.db.Get(StakeKey(poolID, depositID))
	if err != nil {
		return nil, types.ErrInvalidState.Wrapf("read stake %d/%d: %v", poolID, depositID, err)
	}
	if bz == nil {
		return nil, types.ErrStakeNotFound.Wrapf("stake %d in pool %d", depositID, poolID)
	}
	var stake types.VestingStake
	if err := k.unmarshal(bz, &stake); err != nil {
		return nil, err
	}
	return &stake, nil
}

// setStake queues a stake write into batch.
func (k *Keeper) setStake(batch dbm.Batch, stake *types.VestingStake) error {
	bz, err := k.marshal(stake)
	if err != nil {
		return err
	}
	if err := batch.Set(StakeKey(stake.PoolId, stake.DepositId), bz); err != nil {
		return types.ErrInvalidState.Wrapf("write stake %d/%d: %v", stake.PoolId, stake.DepositId, err)
	}
	return nil
}

// SetStake writes a stake directly, outside any operation batch. Used by
// genesis import and tests.
func (k *Keeper) SetStake(stake *types.VestingStake) error {
	bz, err := k.marshal(stake)
	if err != nil {
		return err
	}
	if err := k.db.Set(StakeKey(stake.PoolId, stake.DepositId), bz); err != nil {
		return types.ErrInvalidState.Wrapf("write stake %d/%d: %v", stake.PoolId, stake.DepositId, err)
	}
	return nil
}

// IterateStakesByPool walks all stakes of one pool in deposit order.
func (k *Keeper) IterateStakesByPool(poolID uint64, cb func(stake types.VestingStake) (stop bool)) error {
	prefix := StakePrefix(poolID)
	it, err := k.db.Iterator(prefix, PrefixEnd(prefix))
	if err != nil {
		return types.ErrInvalidState.Wrapf("iterate stakes: %v", err)
	}
	defer it.Close()

	for ; it.Valid(); it.Next() {
		var stake types.VestingStake
		if err := k.unmarshal(it.Value(), &stake); err != nil {
			return err
		}
		if cb(stake) {
			break
		}
	}
	return nil
}

// GetAllStakes returns every stake across all pools.
func (k *Keeper) GetAllStakes() ([]types.VestingStake, error) {
	it, err := k.db.Iterator(StakeKeyPrefix, PrefixEnd(StakeKeyPrefix))
	if err != nil {
		return nil, types.ErrInvalidState.Wrapf("iterate stakes: %v", err)
	}
	defer it.Close()

	var stakes []types.VestingStake
	for ; it.Valid(); it.Next() {
		var stake types.VestingStake
		if err := k.unmarshal(it.Value(), &stake); err != nil {
			return nil, err
		}
		stakes = append(stakes, stake)
	}
	return stakes, nil
}

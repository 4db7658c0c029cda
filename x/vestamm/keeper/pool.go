package keeper

import (
	"context"
	"encoding/binary"

	dbm "github.com/cosmos/cosmos-db"

	"github.com/vestamm/vestamm/x/vestamm/types"
)

// nextPoolID returns the next pool ID and advances the counter inside batch.
func (k *Keeper) nextPoolID(batch dbm.Batch) (uint64, error) {
	bz, err := k.db.Get(PoolCountKey)
	if err != nil {
		return 0, types.ErrInvalidState.Wrapf("read pool counter: %v", err)
	}

	var poolID uint64 = 1
	if bz != nil {
		poolID = binary.BigEndian.Uint64(bz)
	}

	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, poolID+1)
	if err := batch.Set(PoolCountKey, next); err != nil {
		return 0, types.ErrInvalidState.Wrapf("write pool counter: %v", err)
	}
	return poolID, nil
}

// GetPoolCount returns the next pool ID counter value.
func (k *Keeper) GetPoolCount() (uint64, error) {
	bz, err := k.db.Get(PoolCountKey)
	if err != nil {
		return 0, types.ErrInvalidState.Wrapf("read pool counter: %v", err)
	}
	if bz == nil {
		return 1, nil
	}
	return binary.BigEndian.Uint64(bz), nil
}

// setPoolCount stores the next pool ID counter.
func (k *Keeper) setPoolCount(count uint64) error {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, count)
	if err := k.db.Set(PoolCountKey, bz); err != nil {
		return types.ErrInvalidState.Wrapf("write pool counter: %v", err)
	}
	return nil
}

// GetPool loads a pool by ID.
func (k *Keeper) GetPool(poolID uint64) (*types.Pool, error) {
	bz, err := k.db.Get(PoolKey(poolID))
	if err != nil {
		return nil, types.ErrInvalidState.Wrapf("read pool %d: %v", poolID, err)
	}
	if bz == nil {
		return nil, types.ErrPoolNotFound.Wrapf("pool %d", poolID)
	}
	var pool types.Pool
	if err := k.unmarshal(bz, &pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

// setPool queues a pool write into batch.
func (k *Keeper) setPool(batch dbm.Batch, pool *types.Pool) error {
	bz, err := k.marshal(pool)
	if err != nil {
		return err
	}
	if err := batch.Set(PoolKey(pool.Id), bz); err != nil {
		return types.ErrInvalidState.Wrapf("write pool %d: %v", pool.Id, err)
	}
	return nil
}

// SetPool writes a pool directly, outside any operation batch. Used by
// genesis import and tests.
func (k *Keeper) SetPool(pool *types.Pool) error {
	bz, err := k.marshal(pool)
	if err != nil {
		return err
	}
	if err := k.db.Set(PoolKey(pool.Id), bz); err != nil {
		return types.ErrInvalidState.Wrapf("write pool %d: %v", pool.Id, err)
	}
	return nil
}

// GetAllPools returns every pool in ID order.
func (k *Keeper) GetAllPools() ([]types.Pool, error) {
	it, err := k.db.Iterator(PoolKeyPrefix, PrefixEnd(PoolKeyPrefix))
	if err != nil {
		return nil, types.ErrInvalidState.Wrapf("iterate pools: %v", err)
	}
	defer it.Close()

	var pools []types.Pool
	for ; it.Valid(); it.Next() {
		var pool types.Pool
		if err := k.unmarshal(it.Value(), &pool); err != nil {
			return nil, err
		}
		pools = append(pools, pool)
	}
	return pools, nil
}

// InitializePool creates a new empty pool for the given pair. The fee split
// must satisfy treasury+reward <= protocol <= 10000 bps.
func (k *Keeper) InitializePool(
	ctx context.Context,
	authority, treasury, tokenA, tokenB string,
	protocolFeeBps, treasuryFeeBps, rewardFeeBps uint32,
) (uint64, error) {
	if authority == "" || treasury == "" {
		return 0, types.ErrInvalidInput.Wrap("authority and treasury cannot be empty")
	}
	if tokenA == "" || tokenB == "" {
		return 0, types.ErrInvalidTokenPair.Wrap("token denoms cannot be empty")
	}
	if tokenA == tokenB {
		return 0, types.ErrInvalidTokenPair.Wrap("cannot create pool with identical tokens")
	}
	if err := types.ValidateFeeSplit(protocolFeeBps, treasuryFeeBps, rewardFeeBps); err != nil {
		return 0, err
	}

	// The counter read and its batched advance must not interleave with
	// another creation, or two pools would share an ID.
	k.createMu.Lock()
	defer k.createMu.Unlock()

	batch := k.db.NewBatch()
	defer batch.Close()

	poolID, err := k.nextPoolID(batch)
	if err != nil {
		return 0, err
	}

	pool := types.NewPool(poolID, authority, treasury, tokenA, tokenB, protocolFeeBps, treasuryFeeBps, rewardFeeBps)
	if err := pool.Validate(); err != nil {
		return 0, err
	}
	if err := k.setPool(batch, pool); err != nil {
		return 0, err
	}
	if err := batch.Write(); err != nil {
		return 0, types.ErrInvalidState.Wrapf("commit pool %d: %v", poolID, err)
	}

	k.logger.Info("pool initialized",
		"pool_id", poolID,
		"token_a", tokenA,
		"token_b", tokenB,
		"protocol_fee_bps", protocolFeeBps,
		"treasury_fee_bps", treasuryFeeBps,
		"reward_fee_bps", rewardFeeBps,
	)
	k.metrics.PoolsTotal.Inc()
	k.emitter.Emit(types.EventPoolInitialized{
		PoolId:         poolID,
		TokenA:         tokenA,
		TokenB:         tokenB,
		ProtocolFeeBps: protocolFeeBps,
		TreasuryFeeBps: treasuryFeeBps,
		RewardFeeBps:   rewardFeeBps,
		Authority:      authority,
		Treasury:       treasury,
	})

	return poolID, nil
}

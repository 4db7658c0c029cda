package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/vestamm/vestamm/x/vestamm/types"
)

// Pause halts swaps, deposits, early exits and withdrawals on a pool. Claims
// of matured stakes stay available. Pausing an already paused pool succeeds
// without emitting anything.
func (k *Keeper) Pause(ctx context.Context, caller string, poolID uint64) error {
	unlock := k.lockPool(poolID)
	defer unlock()

	pool, err := k.GetPool(poolID)
	if err != nil {
		return err
	}
	if caller != pool.Authority {
		return types.ErrUnauthorized.Wrapf("caller %s is not pool authority", caller)
	}
	if pool.Paused {
		return nil
	}

	pool.Paused = true

	batch := k.db.NewBatch()
	defer batch.Close()
	if err := k.setPool(batch, pool); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return types.ErrInvalidState.Wrapf("commit pause: %v", err)
	}

	k.observePool(pool)
	k.logger.Info("pool paused", "pool_id", poolID, "authority", caller)
	k.emitter.Emit(types.EventPaused{PoolId: poolID})
	return nil
}

// Unpause resumes normal operation. Unpausing a running pool is a no-op.
func (k *Keeper) Unpause(ctx context.Context, caller string, poolID uint64) error {
	unlock := k.lockPool(poolID)
	defer unlock()

	pool, err := k.GetPool(poolID)
	if err != nil {
		return err
	}
	if caller != pool.Authority {
		return types.ErrUnauthorized.Wrapf("caller %s is not pool authority", caller)
	}
	if !pool.Paused {
		return nil
	}

	pool.Paused = false

	batch := k.db.NewBatch()
	defer batch.Close()
	if err := k.setPool(batch, pool); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return types.ErrInvalidState.Wrapf("commit unpause: %v", err)
	}

	k.observePool(pool)
	k.logger.Info("pool unpaused", "pool_id", poolID, "authority", caller)
	k.emitter.Emit(types.EventUnpaused{PoolId: poolID})
	return nil
}

// EmergencyWithdraw moves amount of one pool asset to destination, bypassing
// the pause flag. Authority only. Reserves are debited so the pool's internal
// accounting stays consistent with its ledger balance.
func (k *Keeper) EmergencyWithdraw(
	ctx context.Context,
	caller string,
	poolID uint64,
	asset string,
	amount math.Int,
	destination string,
) error {
	unlock := k.lockPool(poolID)
	defer unlock()

	if destination == "" {
		return types.ErrInvalidInput.Wrap("destination cannot be empty")
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidInput.Wrap("amount must be positive")
	}

	pool, err := k.GetPool(poolID)
	if err != nil {
		return err
	}
	if caller != pool.Authority {
		return types.ErrUnauthorized.Wrapf("caller %s is not pool authority", caller)
	}
	if !pool.HasToken(asset) {
		return types.ErrInvalidTokenPair.Wrapf("asset %s not in pool %d", asset, poolID)
	}

	switch asset {
	case pool.TokenA:
		if amount.GT(pool.ReserveA) {
			return types.ErrInsufficientLiquidity.Wrapf(
				"reserve %s below requested %s", pool.ReserveA, amount,
			)
		}
		pool.ReserveA, err = SafeSub(pool.ReserveA, amount)
	default:
		if amount.GT(pool.ReserveB) {
			return types.ErrInsufficientLiquidity.Wrapf(
				"reserve %s below requested %s", pool.ReserveB, amount,
			)
		}
		pool.ReserveB, err = SafeSub(pool.ReserveB, amount)
	}
	if err != nil {
		return err
	}

	tx := k.bankKeeper.NewTx()
	defer tx.Discard()
	if err := tx.Transfer(ctx, asset, types.PoolAddress(poolID), destination, amount); err != nil {
		return types.ErrTransferFailed.Wrapf("emergency withdraw: %v", err)
	}

	batch := k.db.NewBatch()
	defer batch.Close()
	if err := k.setPool(batch, pool); err != nil {
		return err
	}
	if err := tx.Commit(batch); err != nil {
		return types.ErrTransferFailed.Wrapf("commit ledger: %v", err)
	}
	if err := batch.Write(); err != nil {
		return types.ErrInvalidState.Wrapf("commit emergency withdraw: %v", err)
	}

	k.observePool(pool)
	k.logger.Error("emergency withdrawal executed",
		"pool_id", poolID,
		"asset", asset,
		"amount", amount.String(),
		"destination", destination,
	)
	k.emitter.Emit(types.EventEmergencyWithdrawn{
		PoolId:      poolID,
		Asset:       asset,
		Amount:      amount,
		Destination: destination,
	})
	return nil
}

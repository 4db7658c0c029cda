package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"

	"github.com/vestamm/vestamm/x/vestamm/types"
)

// calculateLpMint computes the LP shares minted for a two-sided deposit
// against pre-deposit reserves. The first deposit bootstraps the price with
// sqrt(amountA*amountB); later deposits mint the tighter of the two ratios so
// an imbalanced deposit cannot move the price.
func calculateLpMint(amountA, amountB, reserveA, reserveB, lpSupply math.Int) (math.Int, error) {
	if lpSupply.IsZero() {
		prod, err := SafeMul(amountA, amountB)
		if err != nil {
			return math.Int{}, err
		}
		minted, err := IntegerSqrt(prod)
		if err != nil {
			return math.Int{}, err
		}
		if minted.IsZero() {
			return math.Int{}, types.ErrInsufficientLiquidity.Wrap("initial deposit too small")
		}
		return minted, nil
	}

	mintA, err := SafeMulDiv(amountA, lpSupply, reserveA)
	if err != nil {
		return math.Int{}, err
	}
	mintB, err := SafeMulDiv(amountB, lpSupply, reserveB)
	if err != nil {
		return math.Int{}, err
	}
	minted := math.MinInt(mintA, mintB)
	if minted.IsZero() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("deposit too small for current reserves")
	}
	return minted, nil
}

// shareOfReserves computes the proportional underlying amounts for lpAmount
// shares at the current supply, floored.
func shareOfReserves(pool *types.Pool, lpAmount math.Int) (amountA, amountB math.Int, err error) {
	amountA, err = SafeMulDiv(pool.ReserveA, lpAmount, pool.LpSupply)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	amountB, err = SafeMulDiv(pool.ReserveB, lpAmount, pool.LpSupply)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return amountA, amountB, nil
}

// WithdrawUnlocked burns free (non-staked) LP shares held by owner and pays
// out the proportional reserves. Unlocked holders carry no accumulator
// snapshot, so no reward is due.
func (k *Keeper) WithdrawUnlocked(
	ctx context.Context,
	owner string,
	poolID uint64,
	lpAmount math.Int,
) (math.Int, math.Int, error) {
	unlock := k.lockPool(poolID)
	defer unlock()

	if owner == "" {
		return math.Int{}, math.Int{}, types.ErrInvalidInput.Wrap("owner cannot be empty")
	}
	if lpAmount.IsNil() || !lpAmount.IsPositive() {
		return math.Int{}, math.Int{}, types.ErrInvalidInput.Wrap("LP amount must be positive")
	}

	pool, err := k.GetPool(poolID)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if pool.Paused {
		return math.Int{}, math.Int{}, types.ErrPoolPaused.Wrapf("pool %d", poolID)
	}
	if pool.LpSupply.IsZero() {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidity.Wrapf("pool %d has no LP supply", poolID)
	}
	if lpAmount.GT(pool.FreeLp()) {
		return math.Int{}, math.Int{}, types.ErrInsufficientShares.Wrapf(
			"requested %s exceeds free supply %s", lpAmount, pool.FreeLp(),
		)
	}

	amountA, amountB, err := shareOfReserves(pool, lpAmount)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	pool.LpSupply, err = SafeSub(pool.LpSupply, lpAmount)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	pool.ReserveA, err = SafeSub(pool.ReserveA, amountA)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	pool.ReserveB, err = SafeSub(pool.ReserveB, amountB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	poolAddr := types.PoolAddress(poolID)
	tx := k.bankKeeper.NewTx()
	defer tx.Discard()
	if err := tx.BurnLP(ctx, poolID, owner, lpAmount); err != nil {
		return math.Int{}, math.Int{}, types.ErrTransferFailed.Wrapf("burn LP: %v", err)
	}
	if amountA.IsPositive() {
		if err := tx.Transfer(ctx, pool.TokenA, poolAddr, owner, amountA); err != nil {
			return math.Int{}, math.Int{}, types.ErrTransferFailed.Wrapf("withdraw %s: %v", pool.TokenA, err)
		}
	}
	if amountB.IsPositive() {
		if err := tx.Transfer(ctx, pool.TokenB, poolAddr, owner, amountB); err != nil {
			return math.Int{}, math.Int{}, types.ErrTransferFailed.Wrapf("withdraw %s: %v", pool.TokenB, err)
		}
	}

	batch := k.db.NewBatch()
	defer batch.Close()
	if err := k.setPool(batch, pool); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := tx.Commit(batch); err != nil {
		return math.Int{}, math.Int{}, types.ErrTransferFailed.Wrapf("commit ledger: %v", err)
	}
	if err := batch.Write(); err != nil {
		return math.Int{}, math.Int{}, types.ErrInvalidState.Wrapf("commit withdraw: %v", err)
	}

	k.metrics.WithdrawalsTotal.WithLabelValues(strconv.FormatUint(poolID, 10)).Inc()
	k.observePool(pool)
	k.logger.Info("unlocked LP withdrawn",
		"pool_id", poolID,
		"owner", owner,
		"lp_burned", lpAmount.String(),
	)
	k.emitter.Emit(types.EventWithdrawn{
		PoolId:   poolID,
		Owner:    owner,
		LpBurned: lpAmount,
		AmountA:  amountA,
		AmountB:  amountB,
	})

	return amountA, amountB, nil
}

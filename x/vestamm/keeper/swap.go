package keeper

import (
	"context"
	"strconv"
	"time"

	"cosmossdk.io/math"

	"github.com/vestamm/vestamm/x/vestamm/types"
)

// Swap executes a constant-product swap of amountIn of tokenIn against the
// pool, returning the output amount. The protocol fee is carved off the
// input before pricing; its treasury share moves to the pool treasury via
// the ledger and its reward share advances the per-LP accumulator. Reserve
// and accumulator updates are computed from one pre-state snapshot and
// committed together.
func (k *Keeper) Swap(
	ctx context.Context,
	trader string,
	poolID uint64,
	tokenIn string,
	amountIn, minAmountOut math.Int,
) (math.Int, error) {
	unlock := k.lockPool(poolID)
	defer unlock()

	start := time.Now()
	defer func() {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
	}()

	if trader == "" {
		return math.Int{}, types.ErrInvalidInput.Wrap("trader cannot be empty")
	}
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.Int{}, types.ErrInvalidInput.Wrap("swap amount must be positive")
	}
	// A nil minimum means the trader accepts any output.
	if minAmountOut.IsNil() {
		minAmountOut = math.ZeroInt()
	}

	pool, err := k.GetPool(poolID)
	if err != nil {
		return math.Int{}, err
	}
	if pool.Paused {
		return math.Int{}, types.ErrPoolPaused.Wrapf("pool %d", poolID)
	}

	reserveIn, reserveOut, tokenOut, err := pool.ReservesFor(tokenIn)
	if err != nil {
		return math.Int{}, err
	}

	// An empty pool has no price; reject rather than bootstrap one.
	if pool.LpSupply.IsZero() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("pool %d has no liquidity", poolID)
	}

	fee, netIn, err := ApplyFee(amountIn, pool.ProtocolFeeBps)
	if err != nil {
		return math.Int{}, err
	}

	// amountOut = floor(reserveOut * netIn / (reserveIn + netIn))
	newReserveIn, err := SafeAdd(reserveIn, netIn)
	if err != nil {
		return math.Int{}, err
	}
	amountOut, err := SafeMulDiv(reserveOut, netIn, newReserveIn)
	if err != nil {
		return math.Int{}, err
	}

	if amountOut.LT(minAmountOut) {
		return math.Int{}, types.ErrSlippageExceeded.Wrapf(
			"output %s below minimum %s", amountOut, minAmountOut,
		)
	}
	if amountOut.GTE(reserveOut) {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf(
			"output %s would drain reserve %s", amountOut, reserveOut,
		)
	}
	if amountOut.IsZero() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("output rounds to zero")
	}

	treasuryCut, rewardCut, err := splitProtocolFee(fee, pool)
	if err != nil {
		return math.Int{}, err
	}

	// Apply the transition on the snapshot: the full gross input joins the
	// in-side reserve, the output leaves the out-side reserve, and the reward
	// share is priced into the accumulator.
	grossReserveIn, err := SafeAdd(reserveIn, amountIn)
	if err != nil {
		return math.Int{}, err
	}
	remainingOut, err := SafeSub(reserveOut, amountOut)
	if err != nil {
		return math.Int{}, err
	}
	if tokenIn == pool.TokenA {
		pool.ReserveA = grossReserveIn
		pool.ReserveB = remainingOut
	} else {
		pool.ReserveB = grossReserveIn
		pool.ReserveA = remainingOut
	}
	if err := creditReward(pool, rewardCut); err != nil {
		return math.Int{}, err
	}

	// Stage the ledger moves, then commit them with the pool record in one
	// batch. A failed stage aborts with no state change anywhere.
	poolAddr := types.PoolAddress(poolID)
	tx := k.bankKeeper.NewTx()
	defer tx.Discard()
	if err := tx.Transfer(ctx, tokenIn, trader, poolAddr, amountIn); err != nil {
		return math.Int{}, types.ErrTransferFailed.Wrapf("swap input: %v", err)
	}
	if err := tx.Transfer(ctx, tokenOut, poolAddr, trader, amountOut); err != nil {
		return math.Int{}, types.ErrTransferFailed.Wrapf("swap output: %v", err)
	}
	if treasuryCut.IsPositive() {
		if err := tx.Transfer(ctx, tokenIn, poolAddr, pool.Treasury, treasuryCut); err != nil {
			return math.Int{}, types.ErrTransferFailed.Wrapf("treasury cut: %v", err)
		}
	}

	batch := k.db.NewBatch()
	defer batch.Close()
	if err := k.setPool(batch, pool); err != nil {
		return math.Int{}, err
	}
	if err := tx.Commit(batch); err != nil {
		return math.Int{}, types.ErrTransferFailed.Wrapf("commit ledger: %v", err)
	}
	if err := batch.Write(); err != nil {
		return math.Int{}, types.ErrInvalidState.Wrapf("commit swap: %v", err)
	}

	poolLabel := strconv.FormatUint(poolID, 10)
	k.metrics.SwapsTotal.WithLabelValues(poolLabel, tokenIn, tokenOut).Inc()
	k.metrics.SwapVolume.WithLabelValues(poolLabel, tokenIn).Add(intToFloat(amountIn))
	k.observePool(pool)

	k.logger.Debug("swap executed",
		"pool_id", poolID,
		"token_in", tokenIn,
		"amount_in", amountIn.String(),
		"amount_out", amountOut.String(),
		"fee", fee.String(),
	)
	k.emitter.Emit(types.EventSwapped{
		PoolId:      poolID,
		Trader:      trader,
		TokenIn:     tokenIn,
		TokenOut:    tokenOut,
		AmountIn:    amountIn,
		AmountOut:   amountOut,
		Fee:         fee,
		TreasuryCut: treasuryCut,
		RewardCut:   rewardCut,
	})

	return amountOut, nil
}

// SimulateSwap prices a swap against current reserves without mutating any
// state or touching the ledger.
func (k *Keeper) SimulateSwap(poolID uint64, tokenIn string, amountIn math.Int) (math.Int, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.Int{}, types.ErrInvalidInput.Wrap("swap amount must be positive")
	}
	pool, err := k.GetPool(poolID)
	if err != nil {
		return math.Int{}, err
	}
	reserveIn, reserveOut, _, err := pool.ReservesFor(tokenIn)
	if err != nil {
		return math.Int{}, err
	}
	if pool.LpSupply.IsZero() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("pool %d has no liquidity", poolID)
	}
	_, netIn, err := ApplyFee(amountIn, pool.ProtocolFeeBps)
	if err != nil {
		return math.Int{}, err
	}
	denominator, err := SafeAdd(reserveIn, netIn)
	if err != nil {
		return math.Int{}, err
	}
	return SafeMulDiv(reserveOut, netIn, denominator)
}

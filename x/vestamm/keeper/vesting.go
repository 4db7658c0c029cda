package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"

	"github.com/vestamm/vestamm/x/vestamm/types"
)

// DepositAndVest deposits amountA/amountB into the pool, mints LP shares into
// the pool's vesting escrow, and records a stake that matures after
// durationSeconds. The stake's reward baseline snapshots the current
// accumulator so only fees collected after the deposit accrue to it.
func (k *Keeper) DepositAndVest(
	ctx context.Context,
	owner string,
	poolID uint64,
	amountA, amountB math.Int,
	durationSeconds int64,
) (uint64, error) {
	unlock := k.lockPool(poolID)
	defer unlock()

	if owner == "" {
		return 0, types.ErrInvalidInput.Wrap("owner cannot be empty")
	}
	if amountA.IsNil() || amountB.IsNil() || !amountA.IsPositive() || !amountB.IsPositive() {
		return 0, types.ErrInvalidInput.Wrap("deposit amounts must be positive")
	}

	params, err := k.GetParams()
	if err != nil {
		return 0, err
	}
	if durationSeconds < params.MinVestingSeconds || durationSeconds > params.MaxVestingSeconds {
		return 0, types.ErrInvalidVestingPeriod.Wrapf(
			"duration %ds outside [%ds, %ds]",
			durationSeconds, params.MinVestingSeconds, params.MaxVestingSeconds,
		)
	}

	pool, err := k.GetPool(poolID)
	if err != nil {
		return 0, err
	}
	if pool.Paused {
		return 0, types.ErrPoolPaused.Wrapf("pool %d", poolID)
	}

	minted, err := calculateLpMint(amountA, amountB, pool.ReserveA, pool.ReserveB, pool.LpSupply)
	if err != nil {
		return 0, err
	}

	pool.ReserveA, err = SafeAdd(pool.ReserveA, amountA)
	if err != nil {
		return 0, err
	}
	pool.ReserveB, err = SafeAdd(pool.ReserveB, amountB)
	if err != nil {
		return 0, err
	}
	pool.LpSupply, err = SafeAdd(pool.LpSupply, minted)
	if err != nil {
		return 0, err
	}
	pool.StakedLp, err = SafeAdd(pool.StakedLp, minted)
	if err != nil {
		return 0, err
	}

	stakeID := pool.VestingNonce
	pool.VestingNonce++

	stake := &types.VestingStake{
		PoolId:     poolID,
		Owner:      owner,
		DepositId:  stakeID,
		Amount:     minted,
		VestingEnd: k.clock.Now().Unix() + durationSeconds,
		Claimed:    false,
	}
	stake.Rebaseline(pool.AccRewardPerLp)

	poolAddr := types.PoolAddress(poolID)
	tx := k.bankKeeper.NewTx()
	defer tx.Discard()
	if err := tx.Transfer(ctx, pool.TokenA, owner, poolAddr, amountA); err != nil {
		return 0, types.ErrTransferFailed.Wrapf("deposit %s: %v", pool.TokenA, err)
	}
	if err := tx.Transfer(ctx, pool.TokenB, owner, poolAddr, amountB); err != nil {
		return 0, types.ErrTransferFailed.Wrapf("deposit %s: %v", pool.TokenB, err)
	}
	if err := tx.MintLP(ctx, poolID, types.VestingEscrowAddress(poolID), minted); err != nil {
		return 0, types.ErrTransferFailed.Wrapf("mint LP: %v", err)
	}

	batch := k.db.NewBatch()
	defer batch.Close()
	if err := k.setPool(batch, pool); err != nil {
		return 0, err
	}
	if err := k.setStake(batch, stake); err != nil {
		return 0, err
	}
	if err := tx.Commit(batch); err != nil {
		return 0, types.ErrTransferFailed.Wrapf("commit ledger: %v", err)
	}
	if err := batch.Write(); err != nil {
		return 0, types.ErrInvalidState.Wrapf("commit deposit: %v", err)
	}

	k.metrics.DepositsTotal.WithLabelValues(strconv.FormatUint(poolID, 10)).Inc()
	k.observePool(pool)
	k.logger.Info("vesting deposit",
		"pool_id", poolID,
		"stake_id", stakeID,
		"owner", owner,
		"lp_minted", minted.String(),
		"vesting_end", stake.VestingEnd,
	)
	k.emitter.Emit(types.EventDeposited{
		PoolId:     poolID,
		StakeId:    stakeID,
		Owner:      owner,
		AmountA:    amountA,
		AmountB:    amountB,
		LpMinted:   minted,
		VestingEnd: stake.VestingEnd,
	})

	return stakeID, nil
}

// ClaimVested burns a matured stake's LP, pays the proportional reserves and
// the accrued reward to the owner, and marks the stake terminal. Claiming a
// matured stake is allowed even while the pool is paused.
func (k *Keeper) ClaimVested(
	ctx context.Context,
	caller string,
	poolID, stakeID uint64,
) (math.Int, math.Int, math.Int, error) {
	unlock := k.lockPool(poolID)
	defer unlock()

	zero := math.Int{}

	pool, err := k.GetPool(poolID)
	if err != nil {
		return zero, zero, zero, err
	}
	stake, err := k.GetStake(poolID, stakeID)
	if err != nil {
		return zero, zero, zero, err
	}
	if caller != stake.Owner {
		return zero, zero, zero, types.ErrUnauthorized.Wrapf("stake %d belongs to %s", stakeID, stake.Owner)
	}

	switch stake.Status(k.clock.Now()) {
	case types.StakeStatusClaimed:
		return zero, zero, zero, types.ErrAlreadyClaimed.Wrapf("stake %d", stakeID)
	case types.StakeStatusActive:
		return zero, zero, zero, types.ErrVestingNotFinished.Wrapf(
			"stake %d matures at %d", stakeID, stake.VestingEnd,
		)
	}

	pending := stake.PendingReward(pool.AccRewardPerLp)

	amountA, amountB, err := shareOfReserves(pool, stake.Amount)
	if err != nil {
		return zero, zero, zero, err
	}

	pool.LpSupply, err = SafeSub(pool.LpSupply, stake.Amount)
	if err != nil {
		return zero, zero, zero, err
	}
	pool.StakedLp, err = SafeSub(pool.StakedLp, stake.Amount)
	if err != nil {
		return zero, zero, zero, err
	}
	pool.ReserveA, err = SafeSub(pool.ReserveA, amountA)
	if err != nil {
		return zero, zero, zero, err
	}
	pool.ReserveB, err = SafeSub(pool.ReserveB, amountB)
	if err != nil {
		return zero, zero, zero, err
	}

	stake.Claimed = true

	poolAddr := types.PoolAddress(poolID)
	tx := k.bankKeeper.NewTx()
	defer tx.Discard()
	if err := tx.BurnLP(ctx, poolID, types.VestingEscrowAddress(poolID), stake.Amount); err != nil {
		return zero, zero, zero, types.ErrTransferFailed.Wrapf("burn LP: %v", err)
	}
	if amountA.IsPositive() {
		if err := tx.Transfer(ctx, pool.TokenA, poolAddr, stake.Owner, amountA); err != nil {
			return zero, zero, zero, types.ErrTransferFailed.Wrapf("claim %s: %v", pool.TokenA, err)
		}
	}
	if amountB.IsPositive() {
		if err := tx.Transfer(ctx, pool.TokenB, poolAddr, stake.Owner, amountB); err != nil {
			return zero, zero, zero, types.ErrTransferFailed.Wrapf("claim %s: %v", pool.TokenB, err)
		}
	}
	if pending.IsPositive() {
		if err := tx.Transfer(ctx, types.LpDenom(poolID), types.RewardVaultAddress(poolID), stake.Owner, pending); err != nil {
			return zero, zero, zero, types.ErrTransferFailed.Wrapf("reward payout: %v", err)
		}
	}

	batch := k.db.NewBatch()
	defer batch.Close()
	if err := k.setPool(batch, pool); err != nil {
		return zero, zero, zero, err
	}
	if err := k.setStake(batch, stake); err != nil {
		return zero, zero, zero, err
	}
	if err := tx.Commit(batch); err != nil {
		return zero, zero, zero, types.ErrTransferFailed.Wrapf("commit ledger: %v", err)
	}
	if err := batch.Write(); err != nil {
		return zero, zero, zero, types.ErrInvalidState.Wrapf("commit claim: %v", err)
	}

	k.metrics.ClaimsTotal.WithLabelValues(strconv.FormatUint(poolID, 10)).Inc()
	k.observePool(pool)
	k.logger.Info("stake claimed",
		"pool_id", poolID,
		"stake_id", stakeID,
		"owner", stake.Owner,
		"reward", pending.String(),
	)
	k.emitter.Emit(types.EventClaimed{
		PoolId:  poolID,
		StakeId: stakeID,
		Owner:   stake.Owner,
		AmountA: amountA,
		AmountB: amountB,
		Reward:  pending,
	})

	return amountA, amountB, pending, nil
}

// EarlyUnvest exits the full remaining stake before maturity, applying the
// penalty to principal only; the accrued reward is paid whole. Once matured,
// the stake must be claimed instead so no penalty can apply.
func (k *Keeper) EarlyUnvest(
	ctx context.Context,
	caller string,
	poolID, stakeID uint64,
	penaltyBps uint32,
) (math.Int, math.Int, math.Int, error) {
	return k.earlyUnvest(ctx, caller, poolID, stakeID, math.Int{}, penaltyBps)
}

// EarlyUnvestPartial exits lpAmount of the stake before maturity. The full
// pending reward is paid out and the remainder is re-baselined against the
// current accumulator; the stake terminates when its amount reaches zero.
func (k *Keeper) EarlyUnvestPartial(
	ctx context.Context,
	caller string,
	poolID, stakeID uint64,
	lpAmount math.Int,
	penaltyBps uint32,
) (math.Int, math.Int, math.Int, error) {
	if lpAmount.IsNil() || !lpAmount.IsPositive() {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrInvalidInput.Wrap("LP amount must be positive")
	}
	return k.earlyUnvest(ctx, caller, poolID, stakeID, lpAmount, penaltyBps)
}

// earlyUnvest implements both exit variants; a nil lpAmount means the full
// remaining stake.
func (k *Keeper) earlyUnvest(
	ctx context.Context,
	caller string,
	poolID, stakeID uint64,
	lpAmount math.Int,
	penaltyBps uint32,
) (math.Int, math.Int, math.Int, error) {
	unlock := k.lockPool(poolID)
	defer unlock()

	zero := math.Int{}

	if penaltyBps > types.BpsDenominator {
		return zero, zero, zero, types.ErrInvalidPenalty.Wrapf("%d bps", penaltyBps)
	}

	pool, err := k.GetPool(poolID)
	if err != nil {
		return zero, zero, zero, err
	}
	if pool.Paused {
		return zero, zero, zero, types.ErrPoolPaused.Wrapf("pool %d", poolID)
	}
	stake, err := k.GetStake(poolID, stakeID)
	if err != nil {
		return zero, zero, zero, err
	}
	if caller != stake.Owner {
		return zero, zero, zero, types.ErrUnauthorized.Wrapf("stake %d belongs to %s", stakeID, stake.Owner)
	}

	switch stake.Status(k.clock.Now()) {
	case types.StakeStatusClaimed:
		return zero, zero, zero, types.ErrAlreadyClaimed.Wrapf("stake %d", stakeID)
	case types.StakeStatusMatured:
		return zero, zero, zero, types.ErrStakeMatured.Wrapf("stake %d matured at %d", stakeID, stake.VestingEnd)
	}

	if lpAmount.IsNil() {
		lpAmount = stake.Amount
	}
	if lpAmount.GT(stake.Amount) {
		return zero, zero, zero, types.ErrInsufficientShares.Wrapf(
			"requested %s exceeds staked %s", lpAmount, stake.Amount,
		)
	}

	// The whole accrued reward is paid now; the remainder restarts from a
	// fresh accumulator baseline.
	pending := stake.PendingReward(pool.AccRewardPerLp)

	grossA, grossB, err := shareOfReserves(pool, lpAmount)
	if err != nil {
		return zero, zero, zero, err
	}
	penaltyA, netA, err := ApplyFee(grossA, penaltyBps)
	if err != nil {
		return zero, zero, zero, err
	}
	penaltyB, netB, err := ApplyFee(grossB, penaltyBps)
	if err != nil {
		return zero, zero, zero, err
	}

	pool.LpSupply, err = SafeSub(pool.LpSupply, lpAmount)
	if err != nil {
		return zero, zero, zero, err
	}
	pool.StakedLp, err = SafeSub(pool.StakedLp, lpAmount)
	if err != nil {
		return zero, zero, zero, err
	}
	pool.ReserveA, err = SafeSub(pool.ReserveA, grossA)
	if err != nil {
		return zero, zero, zero, err
	}
	pool.ReserveB, err = SafeSub(pool.ReserveB, grossB)
	if err != nil {
		return zero, zero, zero, err
	}

	stake.Amount, err = SafeSub(stake.Amount, lpAmount)
	if err != nil {
		return zero, zero, zero, err
	}
	if stake.Amount.IsZero() {
		stake.Claimed = true
	}
	stake.Rebaseline(pool.AccRewardPerLp)

	poolAddr := types.PoolAddress(poolID)
	tx := k.bankKeeper.NewTx()
	defer tx.Discard()
	if err := tx.BurnLP(ctx, poolID, types.VestingEscrowAddress(poolID), lpAmount); err != nil {
		return zero, zero, zero, types.ErrTransferFailed.Wrapf("burn LP: %v", err)
	}
	if netA.IsPositive() {
		if err := tx.Transfer(ctx, pool.TokenA, poolAddr, stake.Owner, netA); err != nil {
			return zero, zero, zero, types.ErrTransferFailed.Wrapf("exit %s: %v", pool.TokenA, err)
		}
	}
	if netB.IsPositive() {
		if err := tx.Transfer(ctx, pool.TokenB, poolAddr, stake.Owner, netB); err != nil {
			return zero, zero, zero, types.ErrTransferFailed.Wrapf("exit %s: %v", pool.TokenB, err)
		}
	}
	if penaltyA.IsPositive() {
		if err := tx.Transfer(ctx, pool.TokenA, poolAddr, pool.Treasury, penaltyA); err != nil {
			return zero, zero, zero, types.ErrTransferFailed.Wrapf("penalty %s: %v", pool.TokenA, err)
		}
	}
	if penaltyB.IsPositive() {
		if err := tx.Transfer(ctx, pool.TokenB, poolAddr, pool.Treasury, penaltyB); err != nil {
			return zero, zero, zero, types.ErrTransferFailed.Wrapf("penalty %s: %v", pool.TokenB, err)
		}
	}
	if pending.IsPositive() {
		if err := tx.Transfer(ctx, types.LpDenom(poolID), types.RewardVaultAddress(poolID), stake.Owner, pending); err != nil {
			return zero, zero, zero, types.ErrTransferFailed.Wrapf("reward payout: %v", err)
		}
	}

	batch := k.db.NewBatch()
	defer batch.Close()
	if err := k.setPool(batch, pool); err != nil {
		return zero, zero, zero, err
	}
	if err := k.setStake(batch, stake); err != nil {
		return zero, zero, zero, err
	}
	if err := tx.Commit(batch); err != nil {
		return zero, zero, zero, types.ErrTransferFailed.Wrapf("commit ledger: %v", err)
	}
	if err := batch.Write(); err != nil {
		return zero, zero, zero, types.ErrInvalidState.Wrapf("commit early unvest: %v", err)
	}

	k.metrics.EarlyExitsTotal.WithLabelValues(strconv.FormatUint(poolID, 10)).Inc()
	k.observePool(pool)
	k.logger.Info("early unvest",
		"pool_id", poolID,
		"stake_id", stakeID,
		"owner", stake.Owner,
		"lp_exited", lpAmount.String(),
		"penalty_bps", penaltyBps,
		"reward", pending.String(),
	)
	k.emitter.Emit(types.EventEarlyUnvested{
		PoolId:     poolID,
		StakeId:    stakeID,
		Owner:      stake.Owner,
		LpExited:   lpAmount,
		AmountA:    netA,
		AmountB:    netB,
		PenaltyA:   penaltyA,
		PenaltyB:   penaltyB,
		PenaltyBps: penaltyBps,
		Reward:     pending,
	})

	return netA, netB, pending, nil
}

package types

import (
	"time"

	"cosmossdk.io/math"
)

// StakeStatus is the lifecycle state of a vesting stake.
type StakeStatus int32

const (
	StakeStatusActive  StakeStatus = 0
	StakeStatusMatured StakeStatus = 1
	StakeStatusClaimed StakeStatus = 2
)

func (s StakeStatus) String() string {
	switch s {
	case StakeStatusActive:
		return "active"
	case StakeStatusMatured:
		return "matured"
	case StakeStatusClaimed:
		return "claimed"
	default:
		return "unknown"
	}
}

// VestingStake records a single time-locked LP deposit. Pool linkage is by ID,
// never by embedded pointer.
type VestingStake struct {
	PoolId    uint64 `json:"pool_id"`
	Owner     string `json:"owner"`
	DepositId uint64 `json:"deposit_id"`

	// Amount is the LP shares locked in this stake. It only decreases, via
	// partial early exits, and the stake terminates when it reaches zero.
	Amount math.Int `json:"amount"`

	// VestingEnd is the absolute unix timestamp at which the stake matures.
	// Fixed at creation, never extended or shortened.
	VestingEnd int64 `json:"vesting_end"`

	// RewardDebt is the accumulator value already priced into this stake,
	// kept in RewardScale units: Amount * AccRewardPerLp at the last update.
	RewardDebt math.Int `json:"reward_debt"`

	Claimed bool `json:"claimed"`
}

// Status derives the lifecycle state at the given time.
func (v *VestingStake) Status(now time.Time) StakeStatus {
	if v.Claimed {
		return StakeStatusClaimed
	}
	if now.Unix() >= v.VestingEnd {
		return StakeStatusMatured
	}
	return StakeStatusActive
}

// PendingReward computes the unclaimed reward accrued by this stake against
// the pool accumulator, descaled from RewardScale units. The result is
// floored and never negative.
func (v *VestingStake) PendingReward(accRewardPerLp math.Int) math.Int {
	if v.Amount.IsZero() {
		return math.ZeroInt()
	}
	total := v.Amount.Mul(accRewardPerLp)
	if total.LTE(v.RewardDebt) {
		return math.ZeroInt()
	}
	return total.Sub(v.RewardDebt).Quo(math.NewInt(RewardScale))
}

// Rebaseline resets the reward debt snapshot to price in the accumulator at
// the stake's current amount. Called after any payout or amount change.
func (v *VestingStake) Rebaseline(accRewardPerLp math.Int) {
	v.RewardDebt = v.Amount.Mul(accRewardPerLp)
}

// Validate checks structural stake invariants against its pool.
func (v *VestingStake) Validate() error {
	if v.Owner == "" {
		return ErrInvalidState.Wrap("stake owner cannot be empty")
	}
	if v.Amount.IsNegative() {
		return ErrInvalidState.Wrap("negative stake amount")
	}
	if v.RewardDebt.IsNegative() {
		return ErrInvalidState.Wrap("negative reward debt")
	}
	if !v.Claimed && v.Amount.IsZero() {
		return ErrInvalidState.Wrap("unclaimed stake with zero amount")
	}
	return nil
}

package types

import (
	"cosmossdk.io/math"
)

// Event types for the vesting AMM module
const (
	EventTypePoolInitialized    = "pool_initialized"
	EventTypeDeposited          = "deposited"
	EventTypeClaimed            = "claimed"
	EventTypeEarlyUnvested      = "early_unvested"
	EventTypeWithdrawn          = "withdrawn"
	EventTypeSwapped            = "swapped"
	EventTypePaused             = "paused"
	EventTypeUnpaused           = "unpaused"
	EventTypeEmergencyWithdrawn = "emergency_withdrawn"
)

// Event is a typed record handed to the observability sink. One record is
// emitted per state-changing operation.
type Event interface {
	Type() string
}

type EventPoolInitialized struct {
	PoolId         uint64 `json:"pool_id"`
	TokenA         string `json:"token_a"`
	TokenB         string `json:"token_b"`
	ProtocolFeeBps uint32 `json:"protocol_fee_bps"`
	TreasuryFeeBps uint32 `json:"treasury_fee_bps"`
	RewardFeeBps   uint32 `json:"reward_fee_bps"`
	Authority      string `json:"authority"`
	Treasury       string `json:"treasury"`
}

func (EventPoolInitialized) Type() string { return EventTypePoolInitialized }

type EventDeposited struct {
	PoolId     uint64   `json:"pool_id"`
	StakeId    uint64   `json:"stake_id"`
	Owner      string   `json:"owner"`
	AmountA    math.Int `json:"amount_a"`
	AmountB    math.Int `json:"amount_b"`
	LpMinted   math.Int `json:"lp_minted"`
	VestingEnd int64    `json:"vesting_end"`
}

func (EventDeposited) Type() string { return EventTypeDeposited }

type EventClaimed struct {
	PoolId  uint64   `json:"pool_id"`
	StakeId uint64   `json:"stake_id"`
	Owner   string   `json:"owner"`
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
	Reward  math.Int `json:"reward"`
}

func (EventClaimed) Type() string { return EventTypeClaimed }

type EventEarlyUnvested struct {
	PoolId     uint64   `json:"pool_id"`
	StakeId    uint64   `json:"stake_id"`
	Owner      string   `json:"owner"`
	LpExited   math.Int `json:"lp_exited"`
	AmountA    math.Int `json:"amount_a"`
	AmountB    math.Int `json:"amount_b"`
	PenaltyA   math.Int `json:"penalty_a"`
	PenaltyB   math.Int `json:"penalty_b"`
	PenaltyBps uint32   `json:"penalty_bps"`
	Reward     math.Int `json:"reward"`
}

func (EventEarlyUnvested) Type() string { return EventTypeEarlyUnvested }

type EventWithdrawn struct {
	PoolId   uint64   `json:"pool_id"`
	Owner    string   `json:"owner"`
	LpBurned math.Int `json:"lp_burned"`
	AmountA  math.Int `json:"amount_a"`
	AmountB  math.Int `json:"amount_b"`
}

func (EventWithdrawn) Type() string { return EventTypeWithdrawn }

type EventSwapped struct {
	PoolId      uint64   `json:"pool_id"`
	Trader      string   `json:"trader"`
	TokenIn     string   `json:"token_in"`
	TokenOut    string   `json:"token_out"`
	AmountIn    math.Int `json:"amount_in"`
	AmountOut   math.Int `json:"amount_out"`
	Fee         math.Int `json:"fee"`
	TreasuryCut math.Int `json:"treasury_cut"`
	RewardCut   math.Int `json:"reward_cut"`
}

func (EventSwapped) Type() string { return EventTypeSwapped }

type EventPaused struct {
	PoolId uint64 `json:"pool_id"`
}

func (EventPaused) Type() string { return EventTypePaused }

type EventUnpaused struct {
	PoolId uint64 `json:"pool_id"`
}

func (EventUnpaused) Type() string { return EventTypeUnpaused }

type EventEmergencyWithdrawn struct {
	PoolId      uint64   `json:"pool_id"`
	Asset       string   `json:"asset"`
	Amount      math.Int `json:"amount"`
	Destination string   `json:"destination"`
}

func (EventEmergencyWithdrawn) Type() string { return EventTypeEmergencyWithdrawn }

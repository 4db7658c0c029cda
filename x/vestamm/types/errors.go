package types

import (
	"cosmossdk.io/errors"
)

// Vesting AMM module sentinel errors
var (
	ErrPoolNotFound          = errors.Register(ModuleName, 1, "pool not found")
	ErrStakeNotFound         = errors.Register(ModuleName, 2, "vesting stake not found")
	ErrInvalidInput          = errors.Register(ModuleName, 3, "invalid input")
	ErrInvalidTokenPair      = errors.Register(ModuleName, 4, "invalid token pair")
	ErrInvalidFeeSplit       = errors.Register(ModuleName, 5, "invalid fee split")
	ErrInvalidVestingPeriod  = errors.Register(ModuleName, 6, "vesting period outside allowed window")
	ErrNumericOverflow       = errors.Register(ModuleName, 7, "numeric overflow")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 8, "insufficient liquidity in pool")
	ErrVestingNotFinished    = errors.Register(ModuleName, 9, "vesting period not finished")
	ErrStakeMatured          = errors.Register(ModuleName, 10, "stake already matured, use claim instead")
	ErrAlreadyClaimed        = errors.Register(ModuleName, 11, "stake already claimed")
	ErrSlippageExceeded      = errors.Register(ModuleName, 12, "output amount below caller minimum")
	ErrPoolPaused            = errors.Register(ModuleName, 13, "pool is paused")
	ErrTransferFailed        = errors.Register(ModuleName, 14, "ledger transfer failed")
	ErrUnauthorized          = errors.Register(ModuleName, 15, "caller not authorized")
	ErrInvalidPenalty        = errors.Register(ModuleName, 16, "penalty exceeds 10000 bps")
	ErrInsufficientShares    = errors.Register(ModuleName, 17, "insufficient LP shares")
	ErrInvalidState          = errors.Register(ModuleName, 18, "invalid stored state")
)

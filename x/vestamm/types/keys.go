package types

import "fmt"

const (
	// ModuleName defines the module name
	ModuleName = "vestamm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// BpsDenominator is the basis-point scale: 10000 bps = 100%.
const BpsDenominator = 10_000

// RewardScale is the fixed-point scale applied to the per-share reward
// accumulator to preserve precision across integer division.
const RewardScale = 1_000_000_000_000

// PoolAddress returns the ledger account that holds a pool's reserves.
func PoolAddress(poolID uint64) string {
	return fmt.Sprintf("%s/pool/%d", ModuleName, poolID)
}

// RewardVaultAddress returns the ledger account that backs a pool's reward
// payouts.
func RewardVaultAddress(poolID uint64) string {
	return fmt.Sprintf("%s/rewards/%d", ModuleName, poolID)
}

// LpDenom returns the ledger denom of a pool's LP share. Reward payouts are
// denominated in LP shares and drawn from the pool's reward vault.
func LpDenom(poolID uint64) string {
	return fmt.Sprintf("%s/lp/%d", ModuleName, poolID)
}

// VestingEscrowAddress returns the ledger account holding LP shares locked in
// vesting stakes of a pool.
func VestingEscrowAddress(poolID uint64) string {
	return fmt.Sprintf("%s/vesting/%d", ModuleName, poolID)
}

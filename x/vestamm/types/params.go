package types

import "fmt"

const (
	// DefaultMinVestingSeconds is the shortest allowed vesting duration (30 days).
	DefaultMinVestingSeconds = 30 * 24 * 3600

	// DefaultMaxVestingSeconds is the longest allowed vesting duration (180 days).
	DefaultMaxVestingSeconds = 180 * 24 * 3600
)

// Params holds module-wide parameters governing the vesting window.
type Params struct {
	MinVestingSeconds int64 `json:"min_vesting_seconds"`
	MaxVestingSeconds int64 `json:"max_vesting_seconds"`
}

// DefaultParams returns the default module parameters.
func DefaultParams() Params {
	return Params{
		MinVestingSeconds: DefaultMinVestingSeconds,
		MaxVestingSeconds: DefaultMaxVestingSeconds,
	}
}

// Validate checks parameter sanity.
func (p Params) Validate() error {
	if p.MinVestingSeconds <= 0 {
		return fmt.Errorf("min vesting seconds must be positive, got %d", p.MinVestingSeconds)
	}
	if p.MaxVestingSeconds < p.MinVestingSeconds {
		return fmt.Errorf("max vesting seconds (%d) below min (%d)", p.MaxVestingSeconds, p.MinVestingSeconds)
	}
	return nil
}

package types

import (
	"cosmossdk.io/math"
)

// Pool is the aggregate for a single constant-product pair. Reserve and supply
// fields model the engine's accounting state; the tokens themselves live with
// the external ledger collaborator.
type Pool struct {
	Id             uint64   `json:"id"`
	TokenA         string   `json:"token_a"`
	TokenB         string   `json:"token_b"`
	ReserveA       math.Int `json:"reserve_a"`
	ReserveB       math.Int `json:"reserve_b"`
	LpSupply       math.Int `json:"lp_supply"`
	StakedLp       math.Int `json:"staked_lp"`
	ProtocolFeeBps uint32   `json:"protocol_fee_bps"`
	TreasuryFeeBps uint32   `json:"treasury_fee_bps"`
	RewardFeeBps   uint32   `json:"reward_fee_bps"`

	// AccRewardPerLp is the cumulative reward per LP share ever distributed,
	// scaled by RewardScale. Monotonically non-decreasing.
	AccRewardPerLp math.Int `json:"acc_reward_per_lp"`

	Paused       bool   `json:"paused"`
	VestingNonce uint64 `json:"vesting_nonce"`
	Treasury     string `json:"treasury"`
	Authority    string `json:"authority"`
}

// NewPool returns an empty pool for the given pair and fee configuration.
// Fee validation is the caller's responsibility (see ValidateFeeSplit).
func NewPool(id uint64, authority, treasury, tokenA, tokenB string, protocolFeeBps, treasuryFeeBps, rewardFeeBps uint32) *Pool {
	return &Pool{
		Id:             id,
		TokenA:         tokenA,
		TokenB:         tokenB,
		ReserveA:       math.ZeroInt(),
		ReserveB:       math.ZeroInt(),
		LpSupply:       math.ZeroInt(),
		StakedLp:       math.ZeroInt(),
		ProtocolFeeBps: protocolFeeBps,
		TreasuryFeeBps: treasuryFeeBps,
		RewardFeeBps:   rewardFeeBps,
		AccRewardPerLp: math.ZeroInt(),
		Paused:         false,
		VestingNonce:   0,
		Treasury:       treasury,
		Authority:      authority,
	}
}

// ValidateFeeSplit enforces treasury+reward <= protocol <= 10000 bps.
func ValidateFeeSplit(protocolFeeBps, treasuryFeeBps, rewardFeeBps uint32) error {
	if protocolFeeBps > BpsDenominator {
		return ErrInvalidFeeSplit.Wrapf("protocol fee %d bps exceeds %d", protocolFeeBps, BpsDenominator)
	}
	if treasuryFeeBps > BpsDenominator || rewardFeeBps > BpsDenominator {
		return ErrInvalidFeeSplit.Wrapf("fee component exceeds %d bps", BpsDenominator)
	}
	if treasuryFeeBps+rewardFeeBps > protocolFeeBps {
		return ErrInvalidFeeSplit.Wrapf(
			"treasury %d bps + reward %d bps exceeds protocol fee %d bps",
			treasuryFeeBps, rewardFeeBps, protocolFeeBps,
		)
	}
	return nil
}

// Validate checks structural pool state invariants.
func (p *Pool) Validate() error {
	if p.TokenA == "" || p.TokenB == "" {
		return ErrInvalidTokenPair.Wrap("token denoms cannot be empty")
	}
	if p.TokenA == p.TokenB {
		return ErrInvalidTokenPair.Wrap("pool requires two distinct tokens")
	}
	if err := ValidateFeeSplit(p.ProtocolFeeBps, p.TreasuryFeeBps, p.RewardFeeBps); err != nil {
		return err
	}
	if p.ReserveA.IsNegative() || p.ReserveB.IsNegative() {
		return ErrInvalidState.Wrap("negative reserve")
	}
	if p.LpSupply.IsNegative() {
		return ErrInvalidState.Wrap("negative LP supply")
	}
	if p.StakedLp.IsNegative() {
		return ErrInvalidState.Wrap("negative staked LP")
	}
	if p.StakedLp.GT(p.LpSupply) {
		return ErrInvalidState.Wrapf("staked LP %s exceeds supply %s", p.StakedLp, p.LpSupply)
	}
	if p.AccRewardPerLp.IsNegative() {
		return ErrInvalidState.Wrap("negative reward accumulator")
	}
	return nil
}

// HasToken reports whether denom is one of the pool's two reserve assets.
func (p *Pool) HasToken(denom string) bool {
	return denom == p.TokenA || denom == p.TokenB
}

// ReservesFor returns the (in, out) reserves for a swap selling tokenIn, along
// with the output denom.
func (p *Pool) ReservesFor(tokenIn string) (reserveIn, reserveOut math.Int, tokenOut string, err error) {
	switch tokenIn {
	case p.TokenA:
		return p.ReserveA, p.ReserveB, p.TokenB, nil
	case p.TokenB:
		return p.ReserveB, p.ReserveA, p.TokenA, nil
	default:
		return math.Int{}, math.Int{}, "", ErrInvalidTokenPair.Wrapf(
			"pool %d holds %s/%s, not %s", p.Id, p.TokenA, p.TokenB, tokenIn,
		)
	}
}

// FreeLp returns the LP supply not locked in vesting stakes.
func (p *Pool) FreeLp() math.Int {
	return p.LpSupply.Sub(p.StakedLp)
}

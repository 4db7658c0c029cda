package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/vestamm/vestamm/x/vestamm/types"
)

// SafeMath provides overflow-checked arithmetic for pool amounts and the
// scaled reward accumulator. Any overflow or underflow surfaces as
// ErrNumericOverflow and aborts the enclosing operation.

// maxIntBound is the exclusive upper bound for math.Int results (2^256).
var maxIntBound = new(big.Int).Exp(big.NewInt(2), big.NewInt(256), nil)

// SafeAdd adds two math.Int values with overflow checking
func SafeAdd(a, b math.Int) (math.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	if result.Cmp(maxIntBound) >= 0 {
		return math.Int{}, types.ErrNumericOverflow.Wrap("addition result exceeds maximum value")
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeSub subtracts b from a with underflow checking
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, types.ErrNumericOverflow.Wrapf("cannot subtract %s from %s", b, a)
	}
	return math.NewIntFromBigInt(new(big.Int).Sub(a.BigInt(), b.BigInt())), nil
}

// SafeMul multiplies two math.Int values with overflow checking
func SafeMul(a, b math.Int) (math.Int, error) {
	if a.IsZero() || b.IsZero() {
		return math.ZeroInt(), nil
	}
	result := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if result.Cmp(maxIntBound) >= 0 {
		return math.Int{}, types.ErrNumericOverflow.Wrap("multiplication result exceeds maximum value")
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeQuo divides a by b, truncating toward zero, with zero-divisor checking
func SafeQuo(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.Int{}, types.ErrNumericOverflow.Wrap("division by zero")
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(a.BigInt(), b.BigInt())), nil
}

// SafeMulDiv performs floor((a * b) / c) with overflow protection. This is
// the workhorse for proportional share and fee computations.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrNumericOverflow.Wrap("division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	if intermediate.Cmp(maxIntBound) >= 0 {
		return math.Int{}, types.ErrNumericOverflow.Wrap("overflow in multiplication step")
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(intermediate, c.BigInt())), nil
}

// ApplyFee splits gross into (fee, net) where fee = floor(gross*bps/10000).
// Truncation leaves residual basis points with the net side; nothing is
// fabricated or destroyed.
func ApplyFee(gross math.Int, bps uint32) (fee, net math.Int, err error) {
	if gross.IsNegative() {
		return math.Int{}, math.Int{}, types.ErrNumericOverflow.Wrap("negative gross amount")
	}
	fee, err = SafeMulDiv(gross, math.NewInt(int64(bps)), math.NewInt(types.BpsDenominator))
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	net, err = SafeSub(gross, fee)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return fee, net, nil
}

// IntegerSqrt returns floor(sqrt(x)) for non-negative x.
func IntegerSqrt(x math.Int) (math.Int, error) {
	if x.IsNegative() {
		return math.Int{}, types.ErrNumericOverflow.Wrap("square root of negative value")
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(x.BigInt())), nil
}

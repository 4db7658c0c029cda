package keeper

import (
	"math/big"
	"strconv"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vestamm/vestamm/x/vestamm/types"
)

// Metrics holds all Prometheus metrics for the vesting AMM module
type Metrics struct {
	// Swap metrics
	SwapsTotal  *prometheus.CounterVec
	SwapVolume  *prometheus.CounterVec
	SwapLatency prometheus.Histogram

	// Vesting metrics
	DepositsTotal    *prometheus.CounterVec
	ClaimsTotal      *prometheus.CounterVec
	EarlyExitsTotal  *prometheus.CounterVec
	WithdrawalsTotal *prometheus.CounterVec

	// Pool metrics
	PoolsTotal   prometheus.Counter
	PoolReserves *prometheus.GaugeVec
	LpSupply     *prometheus.GaugeVec
	StakedLp     *prometheus.GaugeVec
	RewardPerLp  *prometheus.GaugeVec
	PausedPools  *prometheus.GaugeVec
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics creates and registers module metrics (singleton pattern)
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: types.ModuleName,
					Name:      "swaps_total",
					Help:      "Total number of executed swaps",
				},
				[]string{"pool", "token_in", "token_out"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: types.ModuleName,
					Name:      "swap_volume",
					Help:      "Cumulative swap input volume per pool and denom",
				},
				[]string{"pool", "denom"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: types.ModuleName,
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency",
					Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
				},
			),
			DepositsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: types.ModuleName,
					Name:      "deposits_total",
					Help:      "Total number of vesting deposits",
				},
				[]string{"pool"},
			),
			ClaimsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: types.ModuleName,
					Name:      "claims_total",
					Help:      "Total number of matured stake claims",
				},
				[]string{"pool"},
			),
			EarlyExitsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: types.ModuleName,
					Name:      "early_exits_total",
					Help:      "Total number of early unvest operations",
				},
				[]string{"pool"},
			),
			WithdrawalsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: types.ModuleName,
					Name:      "withdrawals_total",
					Help:      "Total number of unlocked LP withdrawals",
				},
				[]string{"pool"},
			),
			PoolsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: types.ModuleName,
					Name:      "pools_total",
					Help:      "Total number of initialized pools",
				},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: types.ModuleName,
					Name:      "pool_reserves",
					Help:      "Current pool reserves per denom",
				},
				[]string{"pool", "denom"},
			),
			LpSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: types.ModuleName,
					Name:      "lp_supply",
					Help:      "Outstanding LP shares per pool",
				},
				[]string{"pool"},
			),
			StakedLp: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: types.ModuleName,
					Name:      "staked_lp",
					Help:      "LP shares locked in vesting stakes per pool",
				},
				[]string{"pool"},
			),
			RewardPerLp: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: types.ModuleName,
					Name:      "acc_reward_per_lp",
					Help:      "Scaled cumulative reward per LP share",
				},
				[]string{"pool"},
			),
			PausedPools: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: types.ModuleName,
					Name:      "paused",
					Help:      "1 when the pool is paused",
				},
				[]string{"pool"},
			),
		}
	})
	return metrics
}

// intToFloat converts a math.Int to float64 for gauge exposition; precision
// loss is acceptable for metrics.
func intToFloat(v math.Int) float64 {
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}

// observePool refreshes the per-pool gauges after a committed transition.
func (k *Keeper) observePool(pool *types.Pool) {
	label := strconv.FormatUint(pool.Id, 10)
	k.metrics.PoolReserves.WithLabelValues(label, pool.TokenA).Set(intToFloat(pool.ReserveA))
	k.metrics.PoolReserves.WithLabelValues(label, pool.TokenB).Set(intToFloat(pool.ReserveB))
	k.metrics.LpSupply.WithLabelValues(label).Set(intToFloat(pool.LpSupply))
	k.metrics.StakedLp.WithLabelValues(label).Set(intToFloat(pool.StakedLp))
	k.metrics.RewardPerLp.WithLabelValues(label).Set(intToFloat(pool.AccRewardPerLp))
	if pool.Paused {
		k.metrics.PausedPools.WithLabelValues(label).Set(1)
	} else {
		k.metrics.PausedPools.WithLabelValues(label).Set(0)
	}
}

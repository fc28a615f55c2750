package allocation

import "math"

// allocateProportionally converts normalized scores into pre-rounding
// monetary amounts.
//
// Each metric carries its weighted share of the pool; within a metric,
// participants split that share in proportion to their normalized scores
// (a zero score total leaves everyone's share for that metric at zero).
// Coefficients and the signed manual adjustment apply after the split, so
// the aggregate generally drifts away from the pool; when the drift exceeds
// the scaling tolerance a uniform correction rescales every allocation.
// Rescaling preserves the relative coefficient effects while restoring
// aggregate conservation ahead of rounding.
func allocateProportionally(results []*ParticipantResult, totalBonus int64, cfg Config) {
	pool := float64(totalBonus)

	for _, m := range Metrics {
		weight := cfg.Weights.Percent(m) / 100
		if weight == 0 {
			continue
		}
		metricPool := pool * weight

		scoreTotal := 0.0
		for _, res := range results {
			scoreTotal += res.Scores[m]
		}
		if scoreTotal == 0 {
			continue
		}

		for _, res := range results {
			res.RawAllocation += res.Scores[m] / scoreTotal * metricPool
		}
	}

	sum := 0.0
	for _, res := range results {
		res.RawAllocation = res.RawAllocation*res.RoleCoefficient*res.TenureCoefficient + res.Record.Adjustment
		sum += res.RawAllocation
	}

	if math.Abs(sum-pool) > cfg.scalingTolerance() && sum != 0 {
		scale := pool / sum
		for _, res := range results {
			res.RawAllocation *= scale
		}
	}
}

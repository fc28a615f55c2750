package allocation

import "github.com/jakechorley/bonuspool/pkg/core/model"

// AggregateMetrics computes the per-metric sum/min/max/avg across the group
// in a single pass. The returned statistics are treated as immutable by the
// later pipeline stages.
//
// Returns ErrEmptyGroup when no records are supplied.
func AggregateMetrics(records []model.MetricRecord) (GroupStatistics, error) {
	if len(records) == 0 {
		return GroupStatistics{}, ErrEmptyGroup
	}

	stats := GroupStatistics{
		Count:   len(records),
		Metrics: make(map[Metric]MetricStats, len(Metrics)),
	}

	for _, m := range Metrics {
		ms := MetricStats{
			Min: MetricValue(records[0], m),
			Max: MetricValue(records[0], m),
		}
		for _, r := range records {
			v := MetricValue(r, m)
			ms.Sum += v
			if v < ms.Min {
				ms.Min = v
			}
			if v > ms.Max {
				ms.Max = v
			}
		}
		ms.Avg = ms.Sum / float64(len(records))
		stats.Metrics[m] = ms
	}

	for _, r := range records {
		stats.AdjustmentSum += r.Adjustment
	}

	return stats, nil
}

package allocation

import "math"

// normalizeScores fills each result's per-metric 0-100 score and its
// weight-combined score. Scores are relative to the current group: min-max
// rescaling against the group statistics, so a participant's score depends
// on their peers in the same computation.
//
// A flat metric (group max == group min) scores 100 for everyone, which also
// avoids the division by zero.
func normalizeScores(results []*ParticipantResult, stats GroupStatistics, cfg Config) {
	for _, res := range results {
		res.Scores = make(map[Metric]float64, len(Metrics))
		for _, m := range Metrics {
			ms := stats.Metrics[m]
			res.Scores[m] = normalizeOne(MetricValue(res.Record, m), ms, cfg)
		}

		weighted := 0.0
		for _, m := range Metrics {
			weighted += res.Scores[m] * cfg.Weights.Percent(m) / 100
		}
		res.WeightedScore = weighted
	}
}

// normalizeOne converts a raw metric value into its normalized score.
func normalizeOne(value float64, ms MetricStats, cfg Config) float64 {
	var score float64
	if ms.Max == ms.Min {
		score = 100
	} else {
		score = (value - ms.Min) / (ms.Max - ms.Min) * 100
	}

	if cfg.NonlinearScoring {
		linear := score
		// Compress the spread: mid-low performers gain relatively more.
		score = math.Sqrt(score/100) * 100
		if cfg.ExcellenceBonus > 1 && linear >= cfg.ExcellenceThreshold {
			score *= cfg.ExcellenceBonus
		}
	}

	return clampScore(score, cfg.MinScore)
}

// clampScore restricts a score to [floor, 100].
func clampScore(score, floor float64) float64 {
	if score < floor {
		return floor
	}
	if score > 100 {
		return 100
	}
	return score
}

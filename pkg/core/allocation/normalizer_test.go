package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOne_MinMax(t *testing.T) {
	ms := MetricStats{Min: 10, Max: 30}
	cfg := Config{}

	// (10-10)/(30-10)*100 = 0, (20-10)/20*100 = 50, (30-10)/20*100 = 100
	assert.Equal(t, 0.0, normalizeOne(10, ms, cfg))
	assert.Equal(t, 50.0, normalizeOne(20, ms, cfg))
	assert.Equal(t, 100.0, normalizeOne(30, ms, cfg))
}

func TestNormalizeOne_FlatMetric(t *testing.T) {
	// Everyone shares the same value: maximal score, no division by zero
	ms := MetricStats{Min: 42, Max: 42}
	assert.Equal(t, 100.0, normalizeOne(42, ms, Config{}))

	ms = MetricStats{Min: 0, Max: 0}
	assert.Equal(t, 100.0, normalizeOne(0, ms, Config{}))
}

func TestNormalizeOne_NonlinearCompression(t *testing.T) {
	ms := MetricStats{Min: 0, Max: 100}
	cfg := Config{NonlinearScoring: true}

	// linear 25 -> sqrt(0.25)*100 = 50: mid-low performers gain
	assert.InDelta(t, 50.0, normalizeOne(25, ms, cfg), 1e-9)
	// linear 100 -> sqrt(1)*100 = 100
	assert.InDelta(t, 100.0, normalizeOne(100, ms, cfg), 1e-9)
	// linear 0 stays 0
	assert.InDelta(t, 0.0, normalizeOne(0, ms, cfg), 1e-9)
}

func TestNormalizeOne_ExcellenceBonus(t *testing.T) {
	ms := MetricStats{Min: 0, Max: 100}
	cfg := Config{
		NonlinearScoring:    true,
		ExcellenceThreshold: 90,
		ExcellenceBonus:     1.05,
	}

	// linear 90.25 >= 90: sqrt(0.9025)*100 = 95, * 1.05 = 99.75
	assert.InDelta(t, 99.75, normalizeOne(90.25, ms, cfg), 1e-9)

	// linear 89 < 90: no bonus, sqrt(0.89)*100 ≈ 94.3398
	assert.InDelta(t, 94.33981132, normalizeOne(89, ms, cfg), 1e-6)

	// linear 100: sqrt(1)*100*1.05 = 105, clamped to 100
	assert.Equal(t, 100.0, normalizeOne(100, ms, cfg))
}

func TestNormalizeOne_BonusRequiresNonlinear(t *testing.T) {
	ms := MetricStats{Min: 0, Max: 100}
	cfg := Config{ExcellenceThreshold: 90, ExcellenceBonus: 1.05}

	// Linear mode: the bonus never applies
	assert.Equal(t, 95.0, normalizeOne(95, ms, cfg))
}

func TestNormalizeOne_MinScoreFloor(t *testing.T) {
	ms := MetricStats{Min: 10, Max: 30}
	cfg := Config{MinScore: 60}

	assert.Equal(t, 60.0, normalizeOne(10, ms, cfg))
	assert.Equal(t, 60.0, normalizeOne(14, ms, cfg)) // linear 20, floored
	assert.Equal(t, 75.0, normalizeOne(25, ms, cfg))
}

func TestNormalizeOne_Monotonic(t *testing.T) {
	// Holding the group fixed, a larger value never scores lower
	ms := MetricStats{Min: 0, Max: 100}
	configs := []Config{
		{},
		{NonlinearScoring: true},
		{NonlinearScoring: true, ExcellenceThreshold: 90, ExcellenceBonus: 1.05},
		{MinScore: 40},
	}

	for _, cfg := range configs {
		prev := -1.0
		for v := 0.0; v <= 100; v += 0.5 {
			score := normalizeOne(v, ms, cfg)
			assert.GreaterOrEqual(t, score, prev, "score dropped at value %v", v)
			prev = score
		}
	}
}

func TestNormalizeScores_WeightedScore(t *testing.T) {
	cfg := Config{Weights: Weights{Attendance: 50, Discharges: 50}}
	results := []*ParticipantResult{
		{Record: record("p1", 10, 30, 0, 0)},
		{Record: record("p2", 30, 10, 0, 0)},
	}
	stats, err := AggregateMetrics(records(results))
	assert.NoError(t, err)

	normalizeScores(results, stats, cfg)

	// p1: attendance 0, discharges 100 -> weighted 0*0.5 + 100*0.5 = 50
	assert.Equal(t, 0.0, results[0].Scores[MetricAttendance])
	assert.Equal(t, 100.0, results[0].Scores[MetricDischarges])
	assert.InDelta(t, 50.0, results[0].WeightedScore, 1e-9)

	// p2 mirrors p1
	assert.InDelta(t, 50.0, results[1].WeightedScore, 1e-9)
}

package allocation

import "github.com/jakechorley/bonuspool/pkg/core/model"

// Metric identifies one of the measured performance quantities.
type Metric string

const (
	MetricAttendance Metric = "attendance"
	MetricDischarges Metric = "discharges"
	MetricBedDays    Metric = "bedDays"
	MetricRevenue    Metric = "revenue"
)

// Metrics lists all weighted metrics in their canonical order.
var Metrics = []Metric{MetricAttendance, MetricDischarges, MetricBedDays, MetricRevenue}

// MetricStats holds the group-wide aggregates for a single metric.
type MetricStats struct {
	Sum float64
	Min float64
	Max float64
	Avg float64
}

// GroupStatistics is the immutable per-metric aggregate view of the group,
// computed once per call and passed down to the later pipeline stages. It is
// both a normalization input and a reporting output.
type GroupStatistics struct {
	// Count is the number of participants included in the computation
	Count int

	// Metrics holds sum/min/max/avg for each weighted metric
	Metrics map[Metric]MetricStats

	// AdjustmentSum is the net signed reward/penalty total across the group
	AdjustmentSum float64
}

// ParticipantResult is the per-participant outcome of a computation.
type ParticipantResult struct {
	Participant model.Participant

	// Record is the metric record the result was computed from
	Record model.MetricRecord

	// Rank is the 1-based position when sorted by weighted score descending
	Rank int

	// Scores holds the normalized 0-100 score per metric
	Scores map[Metric]float64

	// WeightedScore is the weight-combined score on the 0-100 scale
	WeightedScore float64

	// RoleCoefficient and TenureCoefficient are the resolved multiplicative
	// adjustments for this participant
	RoleCoefficient   float64
	TenureCoefficient float64

	// AdjustedScore is WeightedScore multiplied by both coefficients
	AdjustedScore float64

	// RawAllocation is the pre-rounding monetary amount, after coefficients,
	// manual adjustment and any uniform scaling correction
	RawAllocation float64

	// FinalAllocation is the reconciled integer amount in currency units
	FinalAllocation int64

	// Ratio is FinalAllocation divided by the total pool
	Ratio float64

	// inputIndex preserves the caller's ordering for deterministic tie-breaks
	inputIndex int
}

// TraceEntry records a single ±1 unit nudge applied during reconciliation.
type TraceEntry struct {
	ParticipantID string
	Delta         int64

	// Pass is 1 for the initial residual distribution, 2 after the
	// proportional re-correction
	Pass int
}

// ScoreDistribution buckets the group's weighted scores into fixed bands.
type ScoreDistribution struct {
	Excellent int // 90-100
	Good      int // 80-89
	Fair      int // 70-79
	Pass      int // 60-69
	Poor      int // 0-59
}

// ScoreSummary holds the group-level score statistics for reporting.
type ScoreSummary struct {
	Count        int
	TotalScore   float64
	AverageScore float64
	MaxScore     float64
	MinScore     float64
	Distribution ScoreDistribution

	// ReducedTenure counts participants whose tenure coefficient is below 1.0
	ReducedTenure int
}

// Report is the complete outcome of one allocation computation. Results are
// ordered by rank (weighted score descending, caller order on ties) and the
// final allocations sum exactly to the pool.
type Report struct {
	// ID uniquely identifies this computation
	ID string

	// TotalBonus is the pool that was distributed, in integer currency units
	TotalBonus int64

	// Results holds one entry per included participant, in rank order
	Results []*ParticipantResult

	// Statistics is the group aggregate view used for normalization
	Statistics GroupStatistics

	// Summary is the group-level score overview
	Summary ScoreSummary

	// Rescaled is true when the balancer needed the proportional
	// re-correction pass
	Rescaled bool

	// Trace lists every ±1 unit reconciliation nudge that was applied
	Trace []TraceEntry

	// Skipped lists participant IDs excluded for lack of a metric record
	Skipped []string
}

// MetricValue returns the record's raw value for the given metric.
func MetricValue(r model.MetricRecord, m Metric) float64 {
	switch m {
	case MetricAttendance:
		return r.Attendance
	case MetricDischarges:
		return r.Discharges
	case MetricBedDays:
		return r.BedDays
	case MetricRevenue:
		return r.Revenue
	}
	return 0
}

// Package allocation distributes a fixed integer bonus pool among clinical
// staff by weighted performance metrics.
//
// The computation is a pure, synchronous pipeline: aggregate group
// statistics, normalize each metric to a group-relative 0-100 score, resolve
// role and tenure coefficients, split the pool proportionally, then round
// and reconcile so the final integer allocations sum exactly to the pool.
// One call processes one (participants, records, pool, config) tuple and
// either returns a complete report or fails atomically; concurrent calls are
// independent.
package allocation

import (
	"github.com/google/uuid"

	"github.com/jakechorley/bonuspool/pkg/core/model"
)

// Allocate runs the full allocation computation.
//
// Participants without a matching metric record are excluded and listed in
// Report.Skipped; a record whose participant is unknown is ignored the same
// way. Duplicate records for one participant keep the first and skip the
// rest. The returned report's final allocations always sum exactly to
// totalBonus.
//
// Returns ErrInvalidConfig, ErrEmptyGroup, or a *ReconciliationError.
func Allocate(participants []model.Participant, records []model.MetricRecord, totalBonus int64, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results, skipped := joinInputs(participants, records)
	if len(results) == 0 {
		return nil, ErrEmptyGroup
	}

	included := make([]model.MetricRecord, len(results))
	for i, res := range results {
		included[i] = res.Record
	}
	stats, err := AggregateMetrics(included)
	if err != nil {
		return nil, err
	}

	normalizeScores(results, stats, cfg)
	resolveCoefficients(results, cfg)
	allocateProportionally(results, totalBonus, cfg)

	trace, rescaled, err := balanceRounding(results, totalBonus, cfg)
	if err != nil {
		return nil, err
	}

	summary := assembleReport(results, totalBonus)

	return &Report{
		ID:         uuid.NewString(),
		TotalBonus: totalBonus,
		Results:    results,
		Statistics: stats,
		Summary:    summary,
		Rescaled:   rescaled,
		Trace:      trace,
		Skipped:    skipped,
	}, nil
}

// Rebalance re-runs only the rounding balancer over a report whose final
// allocations were overwritten by a manual override, restoring the pool-sum
// invariant. The report's trace, ratios and rescale flag are refreshed;
// scores and coefficients are untouched.
func Rebalance(report *Report, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	for _, res := range report.Results {
		res.RawAllocation = float64(res.FinalAllocation)
	}

	trace, rescaled, err := balanceRounding(report.Results, report.TotalBonus, cfg)
	if err != nil {
		return err
	}

	for _, res := range report.Results {
		if report.TotalBonus != 0 {
			res.Ratio = float64(res.FinalAllocation) / float64(report.TotalBonus)
		}
	}
	report.Trace = trace
	report.Rescaled = rescaled
	return nil
}

// joinInputs pairs each participant with their metric record, preserving the
// caller's participant order. The skipped list holds participant IDs without
// a record; duplicate or orphaned records are dropped silently.
func joinInputs(participants []model.Participant, records []model.MetricRecord) ([]*ParticipantResult, []string) {
	byParticipant := make(map[string]model.MetricRecord, len(records))
	for _, r := range records {
		if _, ok := byParticipant[r.ParticipantID]; ok {
			continue
		}
		byParticipant[r.ParticipantID] = r
	}

	results := make([]*ParticipantResult, 0, len(participants))
	var skipped []string
	for i, p := range participants {
		record, ok := byParticipant[p.ID]
		if !ok {
			skipped = append(skipped, p.ID)
			continue
		}
		results = append(results, &ParticipantResult{
			Participant: p,
			Record:      record,
			inputIndex:  i,
		})
	}

	return results, skipped
}

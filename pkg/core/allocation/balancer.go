package allocation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// balanceRounding rounds every raw allocation to integer currency units and
// reconciles the residual so the final amounts sum exactly to the pool.
//
// The flow is a small state machine: Rounded, then either WithinTolerance
// (the residual is distributed as ±1 nudges) or OverTolerance (one
// proportional re-correction, then the nudge step again), ending Reconciled.
// Nudges start at the smallest rounded allocation so relative proportions
// among the large earners stay stable; ties keep the caller's input order.
//
// Returns the applied trace, whether the re-correction ran, and a
// *ReconciliationError if the residual cannot be eliminated (which only
// happens on broken inputs such as a non-positive pool).
func balanceRounding(results []*ParticipantResult, totalBonus int64, cfg Config) ([]TraceEntry, bool, error) {
	tolerance := cfg.residualTolerance()

	for _, res := range results {
		res.FinalAllocation = roundHalfUp(res.RawAllocation)
	}

	residual := totalBonus - sumFinal(results)
	if residual == 0 {
		return nil, false, nil
	}

	if abs64(residual) <= tolerance {
		trace, err := distributeResidual(results, residual, tolerance, 1)
		return trace, false, err
	}

	// OverTolerance: an upstream scaling problem. Apply a proportional
	// correction against the rounded sum and try once more.
	rounded := sumFinal(results)
	if rounded == 0 {
		return nil, true, &ReconciliationError{Residual: residual, Tolerance: tolerance}
	}
	factor := float64(totalBonus) / float64(rounded)
	for _, res := range results {
		res.RawAllocation *= factor
		res.FinalAllocation = roundHalfUp(res.RawAllocation)
	}

	residual = totalBonus - sumFinal(results)
	if residual == 0 {
		return nil, true, nil
	}
	if abs64(residual) <= tolerance {
		trace, err := distributeResidual(results, residual, tolerance, 2)
		return trace, true, err
	}

	return nil, true, &ReconciliationError{Residual: residual, Tolerance: tolerance}
}

// distributeResidual applies |residual| single-unit nudges, smallest rounded
// allocation first. When removing units, participants already at or below
// zero are passed over so non-negative inputs keep non-negative outputs. The
// order wraps around if there are fewer participants than units.
func distributeResidual(results []*ParticipantResult, residual, tolerance int64, pass int) ([]TraceEntry, error) {
	order := make([]*ParticipantResult, len(results))
	copy(order, results)
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].FinalAllocation != order[j].FinalAllocation {
			return order[i].FinalAllocation < order[j].FinalAllocation
		}
		return order[i].inputIndex < order[j].inputIndex
	})

	var direction int64 = 1
	if residual < 0 {
		direction = -1
	}

	trace := make([]TraceEntry, 0, abs64(residual))
	remaining := abs64(residual)
	for remaining > 0 {
		progressed := false
		for _, res := range order {
			if remaining == 0 {
				break
			}
			if direction < 0 && res.FinalAllocation <= 0 {
				continue
			}
			res.FinalAllocation += direction
			trace = append(trace, TraceEntry{
				ParticipantID: res.Participant.ID,
				Delta:         direction,
				Pass:          pass,
			})
			remaining--
			progressed = true
		}
		if !progressed {
			return trace, &ReconciliationError{Residual: residual, Tolerance: tolerance}
		}
	}

	return trace, nil
}

// roundHalfUp rounds to the nearest integer unit, halves away from zero.
func roundHalfUp(v float64) int64 {
	return decimal.NewFromFloat(v).Round(0).IntPart()
}

func sumFinal(results []*ParticipantResult) int64 {
	var sum int64
	for _, res := range results {
		sum += res.FinalAllocation
	}
	return sum
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

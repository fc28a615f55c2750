package allocation

import "sort"

// assembleReport ranks the results and computes the group-level score
// summary. Ranking is by weighted score descending with caller
// order breaking ties; the results slice is sorted in place.
func assembleReport(results []*ParticipantResult, totalBonus int64) ScoreSummary {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].WeightedScore != results[j].WeightedScore {
			return results[i].WeightedScore > results[j].WeightedScore
		}
		return results[i].inputIndex < results[j].inputIndex
	})

	summary := ScoreSummary{Count: len(results)}
	for i, res := range results {
		res.Rank = i + 1
		if totalBonus != 0 {
			res.Ratio = float64(res.FinalAllocation) / float64(totalBonus)
		}

		score := res.WeightedScore
		summary.TotalScore += score
		if i == 0 || score > summary.MaxScore {
			summary.MaxScore = score
		}
		if i == 0 || score < summary.MinScore {
			summary.MinScore = score
		}

		switch {
		case score >= 90:
			summary.Distribution.Excellent++
		case score >= 80:
			summary.Distribution.Good++
		case score >= 70:
			summary.Distribution.Fair++
		case score >= 60:
			summary.Distribution.Pass++
		default:
			summary.Distribution.Poor++
		}

		if res.TenureCoefficient < 1.0 {
			summary.ReducedTenure++
		}
	}

	if summary.Count > 0 {
		summary.AverageScore = summary.TotalScore / float64(summary.Count)
	}

	return summary
}

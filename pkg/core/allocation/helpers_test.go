package allocation

import "github.com/jakechorley/bonuspool/pkg/core/model"

// record builds a metric record for the four weighted metrics.
func record(id string, att, dis, bed, rev float64) model.MetricRecord {
	return model.MetricRecord{
		ParticipantID: id,
		Attendance:    att,
		Discharges:    dis,
		BedDays:       bed,
		Revenue:       rev,
	}
}

// records extracts the metric records from a result slice.
func records(results []*ParticipantResult) []model.MetricRecord {
	out := make([]model.MetricRecord, len(results))
	for i, res := range results {
		out[i] = res.Record
	}
	return out
}

// veteran builds a participant comfortably past the tenure threshold.
func veteran(id string) model.Participant {
	return model.Participant{ID: id, Name: id, TenureMonths: 60}
}

// attendanceOnly is a config that weights attendance at 100% with neutral
// coefficients for long-tenured participants.
func attendanceOnly() Config {
	return Config{
		Weights: Weights{Attendance: 100},
		Tenure: TenureTable{
			UncertifiedCoefficient: 0.8,
			CertifiedCoefficient:   0.9,
			NormalCoefficient:      1.0,
			ThresholdYears:         1,
		},
	}
}

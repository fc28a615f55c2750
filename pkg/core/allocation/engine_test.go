package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/bonuspool/pkg/core/model"
)

func sumAllocations(report *Report) int64 {
	var sum int64
	for _, res := range report.Results {
		sum += res.FinalAllocation
	}
	return sum
}

func byID(report *Report, id string) *ParticipantResult {
	for _, res := range report.Results {
		if res.Participant.ID == id {
			return res
		}
	}
	return nil
}

func TestAllocate_TwoParticipantsSingleMetric(t *testing.T) {
	participants := []model.Participant{veteran("p1"), veteran("p2")}
	records := []model.MetricRecord{
		record("p1", 10, 0, 0, 0),
		record("p2", 30, 0, 0, 0),
	}

	report, err := Allocate(participants, records, 100, attendanceOnly())
	require.NoError(t, err)

	// min=10, max=30: scores 0 and 100
	p1, p2 := byID(report, "p1"), byID(report, "p2")
	assert.Equal(t, 0.0, p1.Scores[MetricAttendance])
	assert.Equal(t, 100.0, p2.Scores[MetricAttendance])

	// Score-proportional split with neutral coefficients: 0 and 100
	assert.Equal(t, int64(0), p1.FinalAllocation)
	assert.Equal(t, int64(100), p2.FinalAllocation)
	assert.Equal(t, int64(100), sumAllocations(report))

	assert.Equal(t, 1, p2.Rank)
	assert.Equal(t, 2, p1.Rank)
	assert.Equal(t, 1.0, p2.Ratio)
}

func TestAllocate_EqualGroupOddPool(t *testing.T) {
	participants := []model.Participant{veteran("p1"), veteran("p2"), veteran("p3")}
	records := []model.MetricRecord{
		record("p1", 50, 0, 0, 0),
		record("p2", 50, 0, 0, 0),
		record("p3", 50, 0, 0, 0),
	}

	report, err := Allocate(participants, records, 101, attendanceOnly())
	require.NoError(t, err)

	// Equal values: flat metric, everyone scores 100, each share 33.67
	for _, res := range report.Results {
		assert.Equal(t, 100.0, res.WeightedScore)
	}

	// Rounded to 34 each (102); the lowest-sorted participant gives up the
	// extra unit: p1 by input-order tie-break
	assert.Equal(t, int64(33), byID(report, "p1").FinalAllocation)
	assert.Equal(t, int64(34), byID(report, "p2").FinalAllocation)
	assert.Equal(t, int64(34), byID(report, "p3").FinalAllocation)
	assert.Equal(t, int64(101), sumAllocations(report))

	require.Len(t, report.Trace, 1)
	assert.Equal(t, TraceEntry{ParticipantID: "p1", Delta: -1, Pass: 1}, report.Trace[0])
}

func TestAllocate_OverTolerantResidualRescales(t *testing.T) {
	// An enormous scaling tolerance leaves the coefficient inflation in
	// place, forcing the balancer's proportional correction path.
	cfg := attendanceOnly()
	cfg.ScalingTolerance = 1e9
	cfg.RoleCoefficients = map[string]float64{"Nurse": 1.06}

	var participants []model.Participant
	var metricRecords []model.MetricRecord
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		p := veteran(id)
		p.Role = "Nurse"
		participants = append(participants, p)
		metricRecords = append(metricRecords, record(id, 50, 0, 0, 0))
	}

	report, err := Allocate(participants, metricRecords, 1000, cfg)
	require.NoError(t, err)

	// Raw 212 each, rounded sum 1060, residual -60 beyond tolerance 10:
	// rescaled to exactly 200 each
	assert.True(t, report.Rescaled)
	assert.Equal(t, int64(1000), sumAllocations(report))
	for _, res := range report.Results {
		assert.Equal(t, int64(200), res.FinalAllocation)
	}
}

func TestAllocate_Conservation(t *testing.T) {
	participants := []model.Participant{
		{ID: "p1", Name: "Wren", Role: "Head nurse", TenureMonths: 48},
		{ID: "p2", Name: "Ada", Role: "Nurse", TenureMonths: 6, Certified: true},
		{ID: "p3", Name: "Kim", Role: "Nurse", TenureMonths: 30},
		{ID: "p4", Name: "Lou", Role: "Assistant", TenureMonths: 3},
	}
	records := []model.MetricRecord{
		{ParticipantID: "p1", Attendance: 22, Discharges: 14, BedDays: 310, Revenue: 91000, Adjustment: 150},
		{ParticipantID: "p2", Attendance: 20, Discharges: 9, BedDays: 250, Revenue: 63000},
		{ParticipantID: "p3", Attendance: 21, Discharges: 11, BedDays: 275, Revenue: 72000, Adjustment: -80},
		{ParticipantID: "p4", Attendance: 18, Discharges: 5, BedDays: 190, Revenue: 41000},
	}
	cfg := DefaultConfig()
	cfg.RoleCoefficients = map[string]float64{"Head nurse": 1.4, "Nurse": 1.1}
	cfg.NonlinearScoring = true

	for _, pool := range []int64{1, 97, 10000, 999983} {
		report, err := Allocate(participants, records, pool, cfg)
		require.NoError(t, err, "pool=%d", pool)
		assert.Equal(t, pool, sumAllocations(report), "pool=%d", pool)
	}
}

func TestAllocate_NonNegativity(t *testing.T) {
	participants := []model.Participant{veteran("p1"), veteran("p2"), veteran("p3")}
	records := []model.MetricRecord{
		record("p1", 0, 0, 0, 0),
		record("p2", 10, 0, 0, 0),
		record("p3", 10, 0, 0, 0),
	}

	report, err := Allocate(participants, records, 99, attendanceOnly())
	require.NoError(t, err)

	assert.Equal(t, int64(99), sumAllocations(report))
	for _, res := range report.Results {
		assert.GreaterOrEqual(t, res.FinalAllocation, int64(0))
	}
	// The zero-score participant was not pushed negative by reconciliation
	assert.Equal(t, int64(0), byID(report, "p1").FinalAllocation)
}

func TestAllocate_SkipsParticipantsWithoutRecords(t *testing.T) {
	participants := []model.Participant{veteran("p1"), veteran("p2"), veteran("p3")}
	records := []model.MetricRecord{
		record("p1", 10, 0, 0, 0),
		record("p3", 30, 0, 0, 0),
	}

	report, err := Allocate(participants, records, 100, attendanceOnly())
	require.NoError(t, err)

	assert.Len(t, report.Results, 2)
	assert.Equal(t, []string{"p2"}, report.Skipped)
	assert.Equal(t, int64(100), sumAllocations(report))
	assert.Nil(t, byID(report, "p2"))
}

func TestAllocate_DuplicateRecordsKeepFirst(t *testing.T) {
	participants := []model.Participant{veteran("p1"), veteran("p2")}
	records := []model.MetricRecord{
		record("p1", 10, 0, 0, 0),
		record("p1", 99, 0, 0, 0), // dropped
		record("p2", 30, 0, 0, 0),
	}

	report, err := Allocate(participants, records, 100, attendanceOnly())
	require.NoError(t, err)

	assert.Equal(t, 10.0, byID(report, "p1").Record.Attendance)
}

func TestAllocate_EmptyGroup(t *testing.T) {
	_, err := Allocate(nil, nil, 100, attendanceOnly())
	assert.ErrorIs(t, err, ErrEmptyGroup)

	// Participants exist but none has a record
	_, err = Allocate([]model.Participant{veteran("p1")}, nil, 100, attendanceOnly())
	assert.ErrorIs(t, err, ErrEmptyGroup)
}

func TestAllocate_InvalidConfig(t *testing.T) {
	cfg := attendanceOnly()
	cfg.Weights.Attendance = 90 // sums to 90%

	_, err := Allocate([]model.Participant{veteran("p1")}, []model.MetricRecord{record("p1", 1, 0, 0, 0)}, 100, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRebalance_AfterManualOverride(t *testing.T) {
	participants := []model.Participant{veteran("p1"), veteran("p2"), veteran("p3")}
	records := []model.MetricRecord{
		record("p1", 50, 0, 0, 0),
		record("p2", 50, 0, 0, 0),
		record("p3", 50, 0, 0, 0),
	}

	report, err := Allocate(participants, records, 100, attendanceOnly())
	require.NoError(t, err)

	// External collaborator bumps one allocation, breaking the invariant
	byID(report, "p2").FinalAllocation += 5
	assert.NotEqual(t, int64(100), sumAllocations(report))

	require.NoError(t, Rebalance(report, attendanceOnly()))
	assert.Equal(t, int64(100), sumAllocations(report))
}

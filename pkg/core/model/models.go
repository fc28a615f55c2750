package model

// Participant represents a clinical staff member eligible for a share of
// the bonus pool. Participants are created by the data-entry layer and are
// immutable during a single computation.
type Participant struct {
	ID   string
	Name string

	// Role is the job title used for the role-coefficient lookup
	Role string

	// RoleCoefficient, when positive, overrides the configured
	// role-coefficient table for this participant
	RoleCoefficient float64

	// TenureMonths is the number of months worked
	TenureMonths int

	// Certified indicates whether the participant holds their
	// professional certification
	Certified bool
}

// MetricRecord holds one evaluation period's measured performance for a
// participant. All metric fields are non-negative; Adjustment is a signed
// reward/penalty in currency units.
type MetricRecord struct {
	ParticipantID string

	// Period labels the evaluation period (e.g. "2026-07")
	Period string

	Attendance float64
	Discharges float64
	BedDays    float64
	Revenue    float64

	// Adjustment is a manual reward (positive) or penalty (negative)
	// applied directly to the participant's allocation
	Adjustment float64
}

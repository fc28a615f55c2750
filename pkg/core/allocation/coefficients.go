package allocation

import "github.com/jakechorley/bonuspool/pkg/core/model"

const rampMonths = 12

// resolveCoefficients fills each result's role and tenure coefficients and
// the coefficient-adjusted score. The two coefficients multiply the monetary
// allocation later in the pipeline; they are never blended into the 0-100
// score itself.
func resolveCoefficients(results []*ParticipantResult, cfg Config) {
	for _, res := range results {
		res.RoleCoefficient = roleCoefficient(res.Participant, cfg)
		res.TenureCoefficient = tenureCoefficient(res.Participant, cfg.Tenure)
		res.AdjustedScore = res.WeightedScore * res.RoleCoefficient * res.TenureCoefficient
	}
}

// roleCoefficient resolves the role-based multiplier. A positive coefficient
// carried on the participant record wins over the configured table; unknown
// role names fall back to 1.0 rather than failing.
func roleCoefficient(p model.Participant, cfg Config) float64 {
	if p.RoleCoefficient > 0 {
		return p.RoleCoefficient
	}
	if c, ok := cfg.RoleCoefficients[p.Role]; ok {
		return c
	}
	return 1.0
}

// tenureCoefficient resolves the tenure/certification multiplier.
//
// At or above the threshold the coefficient is always NormalCoefficient.
// Below it, the base depends on certification; with the progressive ramp the
// coefficient interpolates linearly from base toward NormalCoefficient over
// the first twelve months worked.
func tenureCoefficient(p model.Participant, t TenureTable) float64 {
	normal := t.NormalCoefficient
	if normal == 0 {
		normal = 1.0
	}

	if float64(p.TenureMonths) >= t.ThresholdYears*12 {
		return normal
	}

	base := t.UncertifiedCoefficient
	if p.Certified {
		base = t.CertifiedCoefficient
	}
	if base == 0 {
		base = normal
	}

	if t.ProgressiveRamp {
		progress := float64(p.TenureMonths) / rampMonths
		if progress > 1 {
			progress = 1
		}
		return base + (normal-base)*progress
	}

	return base
}

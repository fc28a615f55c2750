package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/bonuspool/pkg/core/allocation"
	"github.com/jakechorley/bonuspool/pkg/core/model"
)

// AllocateBonus runs one allocation computation over already-loaded inputs,
// logging warnings for skipped participants and a summary of the outcome.
// The heavy lifting lives in pkg/core/allocation; this layer owns the
// logging and the user-facing framing of errors.
func AllocateBonus(
	logger *zap.Logger,
	participants []model.Participant,
	records []model.MetricRecord,
	totalBonus int64,
	cfg allocation.Config,
) (*allocation.Report, error) {
	logger.Debug("Starting bonus allocation",
		zap.Int("participants", len(participants)),
		zap.Int("records", len(records)),
		zap.Int64("total_bonus", totalBonus))

	if totalBonus <= 0 {
		return nil, fmt.Errorf("total bonus must be positive, got %d", totalBonus)
	}

	report, err := allocation.Allocate(participants, records, totalBonus, cfg)
	if err != nil {
		return nil, fmt.Errorf("allocation failed: %w", err)
	}

	for _, id := range report.Skipped {
		logger.Warn("Participant skipped: no metric record", zap.String("participant_id", id))
	}
	if report.Rescaled {
		logger.Warn("Rounding residual exceeded tolerance, proportional re-correction applied",
			zap.String("report_id", report.ID))
	}

	logger.Info("Bonus allocation complete",
		zap.String("report_id", report.ID),
		zap.Int("included", len(report.Results)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("reconciliation_nudges", len(report.Trace)),
		zap.Int64("total_bonus", totalBonus))

	return report, nil
}

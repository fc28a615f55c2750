package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidateConfigCmd creates the validateConfig command
func ValidateConfigCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validateConfig",
		Short: "Check the active configuration and print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Loading already validated; just echo what's in effect.
			a := app.Cfg.Allocation

			fmt.Printf("\n✅ Configuration is valid\n\n")
			fmt.Printf("Weights:      attendance %.1f%%, discharges %.1f%%, bedDays %.1f%%, revenue %.1f%%\n",
				a.Weights.Attendance, a.Weights.Discharges, a.Weights.BedDays, a.Weights.Revenue)
			fmt.Printf("Tenure:       uncertified %.2f, certified %.2f, normal %.2f, threshold %.1fy, ramp %v\n",
				a.Tenure.UncertifiedCoefficient, a.Tenure.CertifiedCoefficient,
				a.Tenure.NormalCoefficient, a.Tenure.ThresholdYears, a.Tenure.ProgressiveRamp)
			fmt.Printf("Scoring:      nonlinear %v, excellence ≥%.1f ×%.2f, floor %.1f\n",
				a.NonlinearScoring, a.ExcellenceThreshold, a.ExcellenceBonus, a.MinScore)
			fmt.Printf("Tolerances:   scaling %.1f unit(s), residual %d unit(s)\n",
				a.ScalingTolerance, a.ResidualTolerance)

			if len(a.RoleCoefficients) > 0 {
				fmt.Printf("Roles:\n")
				for role, coeff := range a.RoleCoefficients {
					fmt.Printf("  %-20s %.2f\n", role, coeff)
				}
			} else {
				fmt.Printf("Roles:        none configured (all roles default to 1.00)\n")
			}
			fmt.Println()

			return nil
		},
	}
}

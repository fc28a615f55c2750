package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/bonuspool/pkg/core/services"
	"github.com/jakechorley/bonuspool/pkg/dataset"
)

// AllocateCmd creates the allocate command
func AllocateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate <dataset> <pool>",
		Short: "Distribute a bonus pool across the dataset's participants",
		Long:  "Run the allocation computation over a roster/metrics dataset file and print the per-participant results",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			datasetPath := args[0]
			pool, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("pool must be an integer amount: %w", err)
			}

			showTrace, _ := cmd.Flags().GetBool("trace")
			top, _ := cmd.Flags().GetInt("top")

			app.Logger.Debug("allocate command",
				zap.String("dataset", datasetPath),
				zap.Int64("pool", pool))

			ds, err := dataset.Load(datasetPath)
			if err != nil {
				return err
			}

			report, err := services.AllocateBonus(app.Logger, ds.Participants, ds.Records, pool, app.Cfg.Allocation)
			if err != nil {
				return err
			}

			// Display header
			fmt.Printf("\n💰 Bonus Allocation Results\n\n")
			fmt.Printf("Report ID:    %s\n", report.ID)
			fmt.Printf("Pool:         %d\n", report.TotalBonus)
			fmt.Printf("Participants: %d included, %d skipped\n", len(report.Results), len(report.Skipped))
			if report.Rescaled {
				fmt.Printf("Balancing:    ⚠️  proportional re-correction applied\n")
			}
			fmt.Println()

			// Name column sizes itself to the data
			nameColWidth := 12
			for _, res := range report.Results {
				if len(res.Participant.Name) > nameColWidth {
					nameColWidth = len(res.Participant.Name)
				}
			}

			const (
				colorReset = "\033[0m"
				colorGreen = "\033[32m"
				colorBold  = "\033[1m"
			)

			fmt.Printf("%s%4s  %-*s  %8s  %6s  %6s  %10s  %7s%s\n",
				colorBold, "Rank", nameColWidth, "Name", "Score", "Role", "Tenure", "Allocation", "Share", colorReset)
			fmt.Printf("%s  %s  %s  %s  %s  %s  %s\n",
				strings.Repeat("-", 4), strings.Repeat("-", nameColWidth), strings.Repeat("-", 8),
				strings.Repeat("-", 6), strings.Repeat("-", 6), strings.Repeat("-", 10), strings.Repeat("-", 7))

			shown := 0
			for _, res := range report.Results {
				if top > 0 && shown >= top {
					fmt.Printf("  ... %d more\n", len(report.Results)-shown)
					break
				}
				alloc := fmt.Sprintf("%d", res.FinalAllocation)
				if res.Rank == 1 {
					alloc = fmt.Sprintf("%s%s%s", colorGreen, alloc, colorReset)
				}
				fmt.Printf("%4d  %-*s  %8.2f  %6.2f  %6.2f  %10s  %6.2f%%\n",
					res.Rank, nameColWidth, res.Participant.Name,
					res.WeightedScore, res.RoleCoefficient, res.TenureCoefficient,
					alloc, res.Ratio*100)
				shown++
			}
			fmt.Println()

			// Group summary
			s := report.Summary
			fmt.Printf("📊 Scores: avg %.2f, min %.2f, max %.2f\n", s.AverageScore, s.MinScore, s.MaxScore)
			fmt.Printf("   Bands: 90-100: %d | 80-89: %d | 70-79: %d | 60-69: %d | 0-59: %d\n",
				s.Distribution.Excellent, s.Distribution.Good, s.Distribution.Fair,
				s.Distribution.Pass, s.Distribution.Poor)
			if s.ReducedTenure > 0 {
				fmt.Printf("   %d participant(s) on a reduced tenure coefficient\n", s.ReducedTenure)
			}

			if len(report.Skipped) > 0 {
				fmt.Printf("\n⚠️  Skipped (no metric record): %s\n", strings.Join(report.Skipped, ", "))
			}

			if showTrace && len(report.Trace) > 0 {
				fmt.Printf("\n🔧 Reconciliation trace (%d nudges):\n", len(report.Trace))
				for _, t := range report.Trace {
					sign := "+"
					if t.Delta < 0 {
						sign = ""
					}
					fmt.Printf("  pass %d: %s%d unit to %s\n", t.Pass, sign, t.Delta, t.ParticipantID)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("trace", false, "Show the reconciliation trace")
	cmd.Flags().Int("top", 0, "Limit the table to the top N participants")

	return cmd
}

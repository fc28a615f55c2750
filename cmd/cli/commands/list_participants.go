package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/bonuspool/pkg/dataset"
)

// ListParticipantsCmd creates the listParticipants command
func ListParticipantsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listParticipants <dataset>",
		Short: "List the participants in a dataset file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := dataset.Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load dataset: %w", err)
			}

			recorded := make(map[string]bool, len(ds.Records))
			for _, r := range ds.Records {
				recorded[r.ParticipantID] = true
			}

			fmt.Printf("\nFound %d participants:\n\n", len(ds.Participants))
			for _, p := range ds.Participants {
				certInfo := ""
				if p.Certified {
					certInfo = " [certified]"
				}
				metricInfo := ""
				if !recorded[p.ID] {
					metricInfo = " ⚠️ no metric record"
				}
				fmt.Printf("- %s (%s) - %s - %d months%s%s\n",
					p.Name, p.ID, p.Role, p.TenureMonths, certInfo, metricInfo)
			}
			fmt.Println()

			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abramin/Victus-sub005/internal/cli/formatter"
	"github.com/abramin/Victus-sub005/internal/contract"
)

func newStatusCmd(a *App) *cobra.Command {
	var date, planID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the dual-track analysis for the active plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.Analysis.Analyze(cmd.Context(), contract.AnalysisRequest{
				PlanID: planID,
				Date:   date,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatAnalysis(view))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Analysis date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&planID, "plan", "", "Plan ID (default: the active plan)")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abramin/Victus-sub005/internal/cli/formatter"
	"github.com/abramin/Victus-sub005/internal/contract"
)

func newLoadCmd(a *App) *cobra.Command {
	var date string
	var days int

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Show acute/chronic training load and the current zone",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Analysis.TrainingLoad(cmd.Context(), contract.LoadRequest{
				Date: date,
				Days: days,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLoad(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "As-of date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&days, "days", 0, "Series length in days (default 28)")

	return cmd
}

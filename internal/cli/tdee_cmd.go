package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abramin/Victus-sub005/internal/app"
	"github.com/abramin/Victus-sub005/internal/cli/formatter"
	"github.com/abramin/Victus-sub005/internal/contract"
)

func newTdeeCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tdee",
		Short: "Adaptive metabolic estimates and drift notifications",
	}

	cmd.AddCommand(
		newTdeeChartCmd(a),
		newTdeeNotificationCmd(a),
		newTdeeDismissCmd(a),
	)

	return cmd
}

func newTdeeChartCmd(a *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Show the adaptive vs formula TDEE series",
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := a.Metabolic.Chart(cmd.Context(), contract.ChartRequest{From: from, To: to})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatChart(chart))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD, default 28 days before the end)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (YYYY-MM-DD, default today)")

	return cmd
}

func newTdeeNotificationCmd(a *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "notification",
		Short: "Check for metabolic drift against the active plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.Metabolic.Notification(cmd.Context(), date)
			if err != nil {
				return err
			}
			if n == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No metabolic drift detected.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNotification(app.NewNotificationView(n)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Detection date (YYYY-MM-DD, default today)")

	return cmd
}

func newTdeeDismissCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss",
		Short: "Dismiss the active drift notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Metabolic.Dismiss(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Dismissed.")
			return nil
		},
	}
}

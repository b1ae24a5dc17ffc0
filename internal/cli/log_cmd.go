package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abramin/Victus-sub005/internal/app"
	"github.com/abramin/Victus-sub005/internal/cli/formatter"
	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/domain"
)

func newLogCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record and inspect daily logs",
	}

	cmd.AddCommand(
		newLogAddCmd(a),
		newLogShowCmd(a),
		newLogListCmd(a),
		newLogTrainingCmd(a),
		newLogImportCmd(a),
	)

	return cmd
}

func newLogAddCmd(a *App) *cobra.Command {
	var date string
	var weight, intake, bodyFat, sleep float64
	var rhr, steps, activeKcal int
	var update bool
	actual := &sessionsFlag{}
	planned := &sessionsFlag{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a daily log (weight is required)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = domain.FormatDate(a.now())
			}

			req := contract.CreateLogRequest{
				Date:            date,
				WeightKg:        weight,
				PlannedSessions: planned.sessions,
				ActualSessions:  actual.sessions,
			}
			if cmd.Flags().Changed("intake") {
				req.IntakeKcal = &intake
			}
			if cmd.Flags().Changed("bodyfat") {
				req.BodyFatPercent = &bodyFat
			}
			if cmd.Flags().Changed("sleep") {
				req.SleepHours = &sleep
			}
			if cmd.Flags().Changed("rhr") {
				req.RestingHeartRate = &rhr
			}
			if cmd.Flags().Changed("steps") {
				req.Steps = &steps
			}
			if cmd.Flags().Changed("active-kcal") {
				req.ActiveCalories = &activeKcal
			}

			submit := a.Logs.Create
			if update {
				submit = a.Logs.Update
			}
			snap, err := submit(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSnapshot(app.NewSnapshotView(snap)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Log date (YYYY-MM-DD, default today)")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Morning weight in kg")
	cmd.Flags().Float64Var(&intake, "intake", 0, "Calorie intake in kcal")
	cmd.Flags().Float64Var(&bodyFat, "bodyfat", 0, "Body fat percent")
	cmd.Flags().Float64Var(&sleep, "sleep", 0, "Sleep hours")
	cmd.Flags().IntVar(&rhr, "rhr", 0, "Resting heart rate in bpm")
	cmd.Flags().IntVar(&steps, "steps", 0, "Step count")
	cmd.Flags().IntVar(&activeKcal, "active-kcal", 0, "Active calories from a tracker")
	cmd.Flags().Var(actual, "session", "Completed training session (repeatable)")
	cmd.Flags().Var(planned, "planned", "Planned training session (repeatable)")
	cmd.Flags().BoolVar(&update, "update", false, "Replace an existing log for the date")
	_ = cmd.MarkFlagRequired("weight")

	return cmd
}

func newLogShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show DATE",
		Short: "Show one day's log with its computed snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.Logs.GetByDate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSnapshot(app.NewSnapshotView(snap)))
			return nil
		},
	}
}

func newLogListCmd(a *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logs in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				to = domain.FormatDate(a.now())
			}
			if from == "" {
				from = domain.FormatDate(a.now().AddDate(0, 0, -13))
			}

			snaps, err := a.Logs.Range(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No logs between %s and %s.\n", from, to)
				return nil
			}

			views := make([]contract.SnapshotView, 0, len(snaps))
			for _, s := range snaps {
				views = append(views, app.NewSnapshotView(s))
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnapshotList(views))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD, default 14 days ago)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (YYYY-MM-DD, default today)")

	return cmd
}

func newLogTrainingCmd(a *App) *cobra.Command {
	sessions := &sessionsFlag{}

	cmd := &cobra.Command{
		Use:   "training DATE",
		Short: "Replace a log's completed training sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.Logs.PatchTraining(cmd.Context(), contract.TrainingPatchRequest{
				Date:           args[0],
				ActualSessions: sessions.sessions,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSnapshot(app.NewSnapshotView(snap)))
			return nil
		},
	}

	cmd.Flags().Var(sessions, "session", "Completed training session (repeatable)")

	return cmd
}

func newLogImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import logs in bulk from a JSON export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.Imports.ImportLogs(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d logs (%s → %s).\n",
				result.LogCount,
				domain.FormatDate(result.FirstDate),
				domain.FormatDate(result.LastDate))
			return nil
		},
	}
}

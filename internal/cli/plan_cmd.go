package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abramin/Victus-sub005/internal/app"
	"github.com/abramin/Victus-sub005/internal/cli/formatter"
	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/domain"
	"github.com/abramin/Victus-sub005/internal/solver"
)

// resolvePlanID maps user input to a plan ID. Accepts "active" (or empty) for
// the active plan, a full ID, or a unique ID prefix.
func resolvePlanID(ctx context.Context, a *App, input string) (string, error) {
	if input == "" || strings.EqualFold(input, "active") {
		p, err := a.Plans.GetActive(ctx)
		if err != nil {
			return "", err
		}
		return p.ID, nil
	}

	plans, err := a.Plans.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range plans {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range plans {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("plan not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("plan ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newPlanCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage nutrition plans",
	}

	cmd.AddCommand(
		newPlanNewCmd(a),
		newPlanListCmd(a),
		newPlanShowCmd(a),
		newPlanTransitionCmd(a, "complete", "Mark a plan as completed", a.Plans.Complete),
		newPlanTransitionCmd(a, "abandon", "Abandon a plan", a.Plans.Abandon),
		newPlanTransitionCmd(a, "pause", "Pause a plan", a.Plans.Pause),
		newPlanTransitionCmd(a, "resume", "Resume a paused plan", a.Plans.Resume),
		newPlanRecalibrateCmd(a),
		newPlanRemoveCmd(a),
		newPlanMenuCmd(a),
	)

	return cmd
}

func newPlanNewCmd(a *App) *cobra.Command {
	var start string
	var startWeight, goalWeight, tolerance float64
	var weeks int

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new nutrition plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.CreatePlanRequest{
				StartDate:     start,
				StartWeightKg: startWeight,
				GoalWeightKg:  goalWeight,
				DurationWeeks: weeks,
			}
			if cmd.Flags().Changed("tolerance") {
				req.TolerancePercent = &tolerance
			}

			// Without flags on a terminal, walk through the wizard instead.
			if !cmd.Flags().Changed("start-weight") && a.interactive() {
				if err := wizardNewPlan(a, &req); err != nil {
					return err
				}
			}

			plan, err := a.Plans.Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(app.NewPlanView(plan, a.now())))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&startWeight, "start-weight", 0, "Starting weight in kg")
	cmd.Flags().Float64Var(&goalWeight, "goal-weight", 0, "Goal weight in kg")
	cmd.Flags().IntVar(&weeks, "weeks", 0, fmt.Sprintf("Duration in weeks (%d-%d)", domain.MinDurationWeeks, domain.MaxDurationWeeks))
	cmd.Flags().Float64Var(&tolerance, "tolerance", domain.DefaultTolerancePercent, "Variance tolerance in percent")

	return cmd
}

func newPlanListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := a.Plans.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(plans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plans yet. Run `victus plan new` to create one.")
				return nil
			}

			views := make([]contract.PlanView, 0, len(plans))
			for _, p := range plans {
				views = append(views, app.NewPlanView(p, a.now()))
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanList(views))
			return nil
		},
	}
}

func newPlanShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [ID]",
		Short: "Show a plan with its weekly targets (defaults to the active plan)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			planID, err := resolvePlanID(ctx, a, input)
			if err != nil {
				return err
			}
			plan, err := a.Plans.GetByID(ctx, planID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(app.NewPlanView(plan, a.now())))
			return nil
		},
	}
}

func newPlanTransitionCmd(a *App, use, short string, apply func(context.Context, string) (*domain.NutritionPlan, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [ID]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			planID, err := resolvePlanID(ctx, a, input)
			if err != nil {
				return err
			}
			plan, err := apply(ctx, planID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Plan %s is now %s.\n", plan.ID[:8], plan.Status)
			return nil
		},
	}
}

func newPlanRecalibrateCmd(a *App) *cobra.Command {
	var option, date string

	cmd := &cobra.Command{
		Use:   "recalibrate [ID]",
		Short: "Apply a recalibration option to a plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			planID, err := resolvePlanID(ctx, a, input)
			if err != nil {
				return err
			}

			if option == "" {
				if !a.interactive() {
					return fmt.Errorf("--option is required (one of increase_deficit, decrease_deficit, extend_timeline, revise_goal, keep_current)")
				}
				analysisView, err := a.Analysis.Analyze(ctx, contract.AnalysisRequest{PlanID: planID, Date: date})
				if err != nil {
					return err
				}
				form := wizardSelectOption(analysisView, &option)
				if form == nil {
					return fmt.Errorf("no recalibration options are available yet")
				}
				if err := form.Run(); err != nil {
					return err
				}
			}

			plan, err := a.Plans.Recalibrate(ctx, contract.RecalibrateRequest{
				PlanID:     planID,
				OptionType: option,
				Date:       date,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Applied %s.\n", option)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(app.NewPlanView(plan, a.now())))
			return nil
		},
	}

	cmd.Flags().StringVar(&option, "option", "", "Option to apply (increase_deficit|decrease_deficit|extend_timeline|revise_goal|keep_current)")
	cmd.Flags().StringVar(&date, "date", "", "Analysis date (YYYY-MM-DD, default today)")

	return cmd
}

func newPlanRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a plan and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, a, args[0])
			if err != nil {
				return err
			}
			if err := a.Plans.Delete(ctx, planID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed plan %s.\n", planID[:8])
			return nil
		},
	}
}

func newPlanMenuCmd(a *App) *cobra.Command {
	var week int

	cmd := &cobra.Command{
		Use:   "menu [ID]",
		Short: "Suggest a menu for a plan week via the solver",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.SolverEnabled || a.Solver == nil {
				return fmt.Errorf("menu solver is not configured (set VICTUS_SOLVER_ENABLED=true)")
			}

			ctx := cmd.Context()
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			planID, err := resolvePlanID(ctx, a, input)
			if err != nil {
				return err
			}
			plan, err := a.Plans.GetByID(ctx, planID)
			if err != nil {
				return err
			}

			if week == 0 {
				week = plan.CurrentWeek(a.now())
			}
			var target *domain.WeeklyTarget
			for i := range plan.Targets {
				if plan.Targets[i].WeekNumber == week {
					target = &plan.Targets[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("plan has no week %d", week)
			}

			menu, err := a.Solver.Suggest(ctx, solver.SuggestRequest{
				WeekNumber:       week,
				TargetIntakeKcal: target.ProjectedIntakeKcal,
				TargetWeightKg:   target.ProjectedWeightKg,
				WeeklyChangeKg:   plan.RequiredWeeklyChangeKg(),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Menu for week %d (%s):\n", week, formatter.FormatKcal(target.ProjectedIntakeKcal))
			for _, item := range menu.Items {
				fmt.Fprintf(out, "  %-10s %-30s %s\n", item.Meal, item.Name, formatter.FormatKcal(item.Kcal))
			}
			fmt.Fprintf(out, "Total: %s\n", formatter.FormatKcal(menu.TotalKcal))
			return nil
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "Week number (default: current week)")

	return cmd
}

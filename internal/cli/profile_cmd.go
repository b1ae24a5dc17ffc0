package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abramin/Victus-sub005/internal/app"
	"github.com/abramin/Victus-sub005/internal/cli/formatter"
	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/domain"
)

func newProfileCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the user profile behind the formula TDEE",
	}

	cmd.AddCommand(
		newProfileShowCmd(a),
		newProfileSetCmd(a),
	)

	return cmd
}

func newProfileShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := a.Profiles.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(app.NewProfileView(profile)))
			return nil
		},
	}
}

func newProfileSetCmd(a *App) *cobra.Command {
	var sex, birth, activity, formula string
	var height float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields (unchanged flags keep their current value)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			current, err := a.Profiles.Get(ctx)
			if err != nil {
				return err
			}

			req := contract.UpdateProfileRequest{
				Sex:           string(current.Sex),
				BirthDate:     domain.FormatDate(current.BirthDate),
				HeightCm:      current.HeightCm,
				ActivityLevel: string(current.ActivityLevel),
			}
			if cmd.Flags().Changed("sex") {
				req.Sex = sex
			}
			if cmd.Flags().Changed("birth") {
				req.BirthDate = birth
			}
			if cmd.Flags().Changed("height") {
				req.HeightCm = height
			}
			if cmd.Flags().Changed("activity") {
				req.ActivityLevel = activity
			}
			if cmd.Flags().Changed("formula") {
				req.BMRFormula = formula
			}

			profile, err := a.Profiles.Update(ctx, req)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(app.NewProfileView(profile)))
			return nil
		},
	}

	cmd.Flags().StringVar(&sex, "sex", "", "Biological sex (male|female)")
	cmd.Flags().StringVar(&birth, "birth", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&height, "height", 0, "Height in cm")
	cmd.Flags().StringVar(&activity, "activity", "", "Activity level (sedentary|light|moderate|active|very_active)")
	cmd.Flags().StringVar(&formula, "formula", "", "BMR formula (mifflin_st_jeor|harris_benedict|katch_mcardle)")

	return cmd
}

func newCatalogCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the training-type catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(a.Catalog.List(cmd.Context())))
			return nil
		},
	}
}

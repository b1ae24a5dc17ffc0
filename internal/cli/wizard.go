package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/abramin/Victus-sub005/internal/cli/formatter"
	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/domain"
)

// victusHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func victusHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateDate accepts a YYYY-MM-DD date string.
func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateWeight accepts a positive decimal weight.
func validateWeight(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive weight in kg")
	}
	return nil
}

// validateWeeks accepts a plan duration within the allowed bounds.
func validateWeeks(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v < domain.MinDurationWeeks || v > domain.MaxDurationWeeks {
		return fmt.Errorf("enter %d-%d weeks", domain.MinDurationWeeks, domain.MaxDurationWeeks)
	}
	return nil
}

// wizardNewPlan walks through the plan parameters interactively and fills req
// with the validated values.
func wizardNewPlan(a *App, req *contract.CreatePlanRequest) error {
	start := domain.FormatDate(a.now())
	var startWeight, goalWeight, weeks string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Placeholder(start).
				Value(&start).
				Validate(validateDate),
			huh.NewInput().
				Title("Current weight (kg)").
				Value(&startWeight).
				Validate(validateWeight),
			huh.NewInput().
				Title("Goal weight (kg)").
				Value(&goalWeight).
				Validate(validateWeight),
			huh.NewInput().
				Title("Duration (weeks)").
				Value(&weeks).
				Validate(validateWeeks),
		),
	).WithTheme(victusHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}

	// The validators above guarantee these parse.
	req.StartDate = start
	req.StartWeightKg, _ = strconv.ParseFloat(startWeight, 64)
	req.GoalWeightKg, _ = strconv.ParseFloat(goalWeight, 64)
	req.DurationWeeks, _ = strconv.Atoi(weeks)
	return nil
}

// wizardSelectOption creates a huh form to pick a recalibration option from a
// computed analysis. Returns nil when no options are available.
func wizardSelectOption(v *contract.AnalysisView, result *string) *huh.Form {
	if len(v.Options.Options) == 0 {
		return nil
	}

	options := make([]huh.Option[string], 0, len(v.Options.Options)+1)
	for _, opt := range v.Options.Options {
		label := fmt.Sprintf("%s — %s (%s)", opt.Type, opt.Impact, opt.Feasibility)
		options = append(options, huh.NewOption(label, opt.Type))
	}
	options = append(options, huh.NewOption("keep_current — stay the course", "keep_current"))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Apply which option?").
				Options(options...).
				Value(result),
		),
	).WithTheme(victusHuhTheme()).WithShowHelp(false)
}

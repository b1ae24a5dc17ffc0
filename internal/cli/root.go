package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/abramin/Victus-sub005/internal/service"
	"github.com/abramin/Victus-sub005/internal/solver"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans     service.PlanService
	Logs      service.LogService
	Imports   service.ImportService
	Analysis  service.AnalysisService
	Metabolic service.MetabolicService
	Profiles  service.ProfileService
	Catalog   service.CatalogService

	Solver        solver.Client
	SolverEnabled bool

	// IsInteractive reports whether stdin is a terminal. Wizards are only
	// offered when it returns true.
	IsInteractive func() bool

	// Now supplies the CLI's notion of the current time; nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "victus" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "victus",
		Short: "Nutrition planning with adaptive metabolic and training analytics",
	}

	root.AddCommand(
		newPlanCmd(app),
		newLogCmd(app),
		newStatusCmd(app),
		newTdeeCmd(app),
		newLoadCmd(app),
		newProfileCmd(app),
		newCatalogCmd(app),
		newDashboardCmd(app),
		newServeCmd(app),
	)

	return root
}

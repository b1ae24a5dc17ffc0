package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/abramin/Victus-sub005/internal/catalog"
	"github.com/abramin/Victus-sub005/internal/cli"
	"github.com/abramin/Victus-sub005/internal/db"
	"github.com/abramin/Victus-sub005/internal/repository"
	"github.com/abramin/Victus-sub005/internal/service"
	"github.com/abramin/Victus-sub005/internal/solver"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development; environment variables win.
	_ = godotenv.Load()

	// Determine DB path: env var or default ~/.victus/victus.db
	dbPath := os.Getenv("VICTUS_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".victus", "victus.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	// Wire repositories
	planRepo := repository.NewSQLitePlanRepo(database)
	profileRepo := repository.NewSQLiteProfileRepo(database)
	logRepo := repository.NewSQLiteLogRepo(database)
	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)
	notificationRepo := repository.NewSQLiteNotificationRepo(database)
	recalibrationRepo := repository.NewSQLiteRecalibrationRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	observer := service.NewLogUseCaseObserver(os.Stderr)

	app := &cli.App{
		Plans:     service.NewPlanService(planRepo, profileRepo, logRepo, recalibrationRepo, uow, observer),
		Logs:      service.NewLogService(logRepo, snapshotRepo, planRepo, uow, cat, observer),
		Imports:   service.NewImportService(uow, cat, observer),
		Analysis:  service.NewAnalysisService(planRepo, logRepo, cat, observer),
		Metabolic: service.NewMetabolicService(snapshotRepo, planRepo, profileRepo, notificationRepo, observer),
		Profiles:  service.NewProfileService(profileRepo),
		Catalog:   service.NewCatalogService(cat),
	}

	// Detect interactive terminal so wizards only run on a TTY.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Wire the menu solver (only when enabled)
	solverCfg := solver.LoadConfig()
	if solverCfg.Enabled {
		var obs solver.Observer = solver.NoopObserver{}
		if solverCfg.LogCalls {
			obs = solver.NewLogObserver(os.Stderr)
		}
		app.Solver = solver.NewClient(solverCfg, obs)
		app.SolverEnabled = true
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/abramin/Victus-sub005/internal/app"
	"github.com/abramin/Victus-sub005/internal/cli/formatter"
	"github.com/abramin/Victus-sub005/internal/contract"
	"github.com/abramin/Victus-sub005/internal/service"
)

func newDashboardCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive dashboard for the active plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.interactive() {
				return fmt.Errorf("dashboard requires an interactive terminal")
			}
			program := tea.NewProgram(newDashboardModel(a), tea.WithAltScreen())
			_, err := program.Run()
			return err
		},
	}
}

// ── data loading ─────────────────────────────────────────────────────────────

// dashboardData is everything one refresh gathers.
type dashboardData struct {
	plan         *contract.PlanView
	analysis     *contract.AnalysisView
	load         *contract.LoadResponse
	notification *contract.NotificationView
}

type dashboardLoadedMsg struct {
	data dashboardData
	err  error
}

type notificationDismissedMsg struct{ err error }

// ── model ────────────────────────────────────────────────────────────────────

type dashboardModel struct {
	app     *App
	spinner spinner.Model
	loading bool
	err     error
	width   int

	data dashboardData
}

func newDashboardModel(a *App) *dashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(formatter.ColorHeader)

	return &dashboardModel{
		app:     a,
		spinner: sp,
		loading: true,
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadData())
}

func (m *dashboardModel) loadData() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		ctx := context.Background()
		var data dashboardData

		plan, err := a.Plans.GetActive(ctx)
		if err != nil {
			// No active plan is a normal state for the dashboard.
			if se, ok := service.AsServiceError(err); ok && se.Code == service.CodeNotFound {
				return dashboardLoadedMsg{data: data}
			}
			return dashboardLoadedMsg{err: err}
		}
		planView := app.NewPlanView(plan, a.now())
		data.plan = &planView

		data.analysis, err = a.Analysis.Analyze(ctx, contract.AnalysisRequest{PlanID: plan.ID})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		data.load, err = a.Analysis.TrainingLoad(ctx, contract.LoadRequest{})
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		n, err := a.Metabolic.Notification(ctx, "")
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		if n != nil {
			view := app.NewNotificationView(n)
			data.notification = &view
		}

		return dashboardLoadedMsg{data: data}
	}
}

func (m *dashboardModel) dismissNotification() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		return notificationDismissedMsg{err: a.Metabolic.Dismiss(context.Background())}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.data = msg.data
		}
		return m, nil

	case notificationDismissedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.loading = true
		return m, m.loadData()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.loadData())
		case "d":
			if m.data.notification != nil {
				return m, m.dismissNotification()
			}
		}
	}

	return m, nil
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m *dashboardModel) View() string {
	if m.loading {
		return "\n  " + m.spinner.View() + formatter.Dim(" Loading...") + "\n"
	}
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n" + m.helpLine()
	}

	var b strings.Builder
	b.WriteString("\n")

	if m.data.plan == nil {
		b.WriteString("  " + formatter.Dim("No active plan. Run `victus plan new` to start one.") + "\n")
		b.WriteString(m.helpLine())
		return b.String()
	}

	if m.data.analysis != nil {
		b.WriteString(formatter.FormatAnalysis(m.data.analysis))
		b.WriteString("\n")
	}
	if m.data.load != nil {
		b.WriteString(formatter.FormatLoad(m.data.load))
		b.WriteString("\n")
	}
	if m.data.notification != nil {
		b.WriteString(formatter.FormatNotification(*m.data.notification))
		b.WriteString("\n")
	}

	b.WriteString(m.helpLine())
	return b.String()
}

func (m *dashboardModel) helpLine() string {
	help := "r refresh · q quit"
	if m.data.notification != nil {
		help = "r refresh · d dismiss drift · q quit"
	}
	return "\n  " + formatter.Dim(help) + "\n"
}

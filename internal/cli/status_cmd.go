package cli

import (
	"context"
	"fmt"
	"time"

	appdto "github.com/alexanderramin/examplan/internal/app"
	"github.com/alexanderramin/examplan/internal/cli/formatter"
	"github.com/alexanderramin/examplan/internal/contract"
	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "status PLAN",
		Short: "Show the latest generation run for a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if watch && app.interactive() {
				return runWatch(app.statusUseCase(), args[0])
			}

			status, err := app.statusUseCase().GetStatus(ctx, contract.StatusRequest{PlanID: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(status))
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Poll until the run reaches a terminal state")
	return cmd
}

const watchPollInterval = 500 * time.Millisecond

type watchTickMsg struct{}

type watchStatusMsg struct {
	status *contract.StatusResponse
	err    error
}

// watchModel polls the status service until the latest run leaves the
// running state.
type watchModel struct {
	svc     appdto.StatusUseCase
	planRef string
	spin    spinner.Model
	status  *contract.StatusResponse
	err     error
	done    bool
}

func newWatchModel(svc appdto.StatusUseCase, planRef string) watchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(formatter.ColorPurple)
	return watchModel{svc: svc, planRef: planRef, spin: s}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.poll())
}

func (m watchModel) poll() tea.Cmd {
	return func() tea.Msg {
		status, err := m.svc.GetStatus(context.Background(), contract.StatusRequest{PlanID: m.planRef})
		return watchStatusMsg{status: status, err: err}
	}
}

func scheduleTick() tea.Cmd {
	return tea.Tick(watchPollInterval, func(time.Time) tea.Msg {
		return watchTickMsg{}
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit
		}
	case watchStatusMsg:
		m.status, m.err = msg.status, msg.err
		if m.err != nil || m.status.RunStatus != domain.RunRunning {
			m.done = true
			return m, tea.Quit
		}
		return m, scheduleTick()
	case watchTickMsg:
		return m, m.poll()
	default:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("\n  %s %s\n", m.spin.View(), formatter.Dim("waiting for the generation run..."))
}

func runWatch(svc appdto.StatusUseCase, planRef string) error {
	program := tea.NewProgram(newWatchModel(svc, planRef))
	final, err := program.Run()
	if err != nil {
		return err
	}

	m := final.(watchModel)
	if m.err != nil {
		return m.err
	}
	if m.status == nil {
		return nil
	}
	fmt.Print(formatter.FormatStatus(m.status))
	return nil
}

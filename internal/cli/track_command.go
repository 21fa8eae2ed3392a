package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"tito/internal/domain"
	"tito/internal/timer"
)

// newTrackCommand builds the interactive timer command.
func newTrackCommand(r *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "track",
		Short: "Run the interactive timer",
		Long: `Run the interactive timer in the terminal.

Select a project and track time against it. The running timer stays
attached to the project it was started on, even while the selection
moves. Timer state is transient: quitting without stopping discards
the in-progress run.

Keys:
  up/down   Select a project
  space     Start or pause the timer
  s         Stop and save the entry
  r         Reset without saving
  q         Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrack(r.app, r.getAppTimeout())
		},
	}
}

var (
	trackTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	trackRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#04B575")).
				Bold(true)

	trackPausedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#F7DC6F")).
				Bold(true)

	trackIdleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	trackElapsedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#874BFD")).
				Padding(0, 2).
				Bold(true)

	trackSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7D56F4")).
				Bold(true)

	trackFooterStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#626262"))
)

type trackTickMsg time.Time

func trackTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return trackTickMsg(t)
	})
}

// trackModel is the bubbletea model of the interactive timer session.
type trackModel struct {
	app      *App
	timeout  time.Duration
	projects []*domain.Project
	cursor   int
	status   string
	width    int
}

func runTrack(app *App, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	projects, err := app.projects.ListProjects(ctx)
	cancel()
	if err != nil {
		return NewErrorHandler().Handle("start tracker", err)
	}
	if len(projects) == 0 {
		fmt.Println("No projects yet. Create one with: tito project add \"name\"")
		return nil
	}

	m := trackModel{app: app, timeout: timeout, projects: projects}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m trackModel) Init() tea.Cmd {
	return trackTick()
}

func (m trackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			// Transient by design: an unstopped run is discarded.
			m.app.timer.Reset()
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.projects)-1 {
				m.cursor++
			}
		case " ":
			if err := m.app.timer.TogglePlayPause(m.selected()); err != nil {
				m.status = err.Error()
			} else {
				m.status = ""
			}
		case "s":
			m = m.stopTimer()
		case "r":
			m.app.timer.Reset()
			m.status = "Timer reset, nothing saved"
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case trackTickMsg:
		// Refresh the project list so deletes from another terminal show up.
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		projects, err := m.app.projects.ListProjects(ctx)
		cancel()
		if err == nil {
			m.projects = projects
			if m.cursor >= len(m.projects) && len(m.projects) > 0 {
				m.cursor = len(m.projects) - 1
			}
		}
		return m, trackTick()
	}
	return m, nil
}

func (m trackModel) stopTimer() trackModel {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	result, err := m.app.timer.Stop(ctx)
	if err != nil {
		m.status = err.Error()
		return m
	}
	if result.Vanished {
		m.status = "Project was deleted, run discarded"
		return m
	}
	m.status = fmt.Sprintf("Saved entry %d (%s)", result.Entry.ID, timer.FormatElapsedMS(result.Entry.DurationMS))
	return m
}

func (m trackModel) selected() *domain.Project {
	if m.cursor < 0 || m.cursor >= len(m.projects) {
		return nil
	}
	return m.projects[m.cursor]
}

func (m trackModel) View() string {
	state := m.app.timer.DisplayState()

	var b strings.Builder
	b.WriteString(trackTitleStyle.Render("TiTo"))
	b.WriteString("\n\n")

	switch {
	case state.IsRunning && !state.IsPaused:
		b.WriteString(trackRunningStyle.Render("RUNNING"))
	case state.IsRunning && state.IsPaused:
		b.WriteString(trackPausedStyle.Render("PAUSED"))
	default:
		b.WriteString(trackIdleStyle.Render("IDLE"))
	}
	b.WriteString("\n\n")

	b.WriteString(trackElapsedStyle.Render(timer.FormatElapsedMS(state.ElapsedMS)))
	b.WriteString("\n\n")

	for i, project := range m.projects {
		line := "  " + project.Name
		if i == m.cursor {
			line = trackSelectedStyle.Render("> " + project.Name)
		}
		if state.IsRunning && project.ID == state.AttachedProjectID {
			line += trackRunningStyle.Render(" ●")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(trackFooterStyle.Render("space start/pause · s stop · r reset · q quit"))
	b.WriteString("\n")
	return b.String()
}

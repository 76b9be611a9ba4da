package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joebot/nudged/internal/config"
	"github.com/joebot/nudged/internal/schedule"
)

// --- message types ---

type reportMsg schedule.StatusReport

// --- watch model ---

type watchModel struct {
	cfg     *config.Config
	spinner spinner.Model
	report  schedule.StatusReport
	loaded  bool
	width   int
}

func newWatchModel(cfg *config.Config) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Accent)
	return watchModel{cfg: cfg, spinner: sp}
}

func (m watchModel) pollReport() tea.Cmd {
	cfg := m.cfg
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return reportMsg(readReport(cfg, time.Now()))
	})
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return reportMsg(readReport(m.cfg, time.Now())) },
	)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case reportMsg:
		m.report = schedule.StatusReport(msg)
		m.loaded = true
		return m, m.pollReport()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(TitleStyle.Render(fmt.Sprintf("  %s nudged", Logo)))
	sb.WriteString(DimStyle.Render("  watching · " + time.Now().Format("15:04:05")))
	sb.WriteString("\n\n")

	if !m.loaded {
		sb.WriteString("  " + m.spinner.View() + " loading state…\n")
		return sb.String()
	}

	rep := m.report
	sb.WriteString(fmt.Sprintf("  quota %d/%d", rep.MessageCount, rep.DailyCap))
	if rep.QuietHours {
		sb.WriteString("  " + WarnStyle.Render("quiet hours"))
	}
	if rep.CoolingDown {
		sb.WriteString("  " + WarnStyle.Render("cooldown"))
	}
	sb.WriteString("\n\n")

	for _, job := range rep.Jobs {
		sb.WriteString(fmt.Sprintf("  %s  %-17s %-13s %s %s\n",
			firedBadge(job), job.ID,
			DimStyle.Render(job.Window.String()),
			targetString(job), outcomeString(job.LastResult)))
	}

	sb.WriteString("\n" + DimStyle.Render("  q to quit") + "\n")
	return sb.String()
}

// RunWatch starts the live status view, polling the persisted
// snapshot once a second until the user quits.
func RunWatch(cfg *config.Config) error {
	p := tea.NewProgram(newWatchModel(cfg))
	_, err := p.Run()
	return err
}

// Package viewer renders the fullscreen countdown for the next reminder.
// It re-evaluates the task set every tick so completions and recurrence
// spawns from other sessions show up without a restart.
package viewer

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"remindik/internal/domain"
	"remindik/internal/schedule"
	"remindik/internal/selector"
	"remindik/internal/services"
)

type tickMsg time.Time

// Model is the bubbletea model for the countdown screen
type Model struct {
	service services.LifecycleService
	clock   schedule.Clock
	quotes  []Quote
	tick    time.Duration

	current *domain.Task
	stats   domain.Stats
	status  string
	err     error
	width   int
}

// New creates the viewer model with the first task already selected
func New(service services.LifecycleService, clock schedule.Clock, quotes []Quote, tick time.Duration) Model {
	m := Model{
		service: service,
		clock:   clock,
		quotes:  quotes,
		tick:    tick,
	}
	m.refresh()
	return m
}

// Run starts the fullscreen viewer and blocks until the user quits
func Run(service services.LifecycleService, clock schedule.Clock, quotes []Quote, tick time.Duration) error {
	program := tea.NewProgram(New(service, clock, quotes, tick), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// refresh re-selects the next task and recomputes the stats line
func (m *Model) refresh() {
	ctx := context.Background()

	m.current, m.err = m.service.NextTask(ctx)
	if m.err != nil {
		return
	}
	m.stats, m.err = m.service.Stats(ctx)
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "d", "enter":
			return m.completeCurrent(), nil
		case "x":
			return m.deleteCurrent(), nil
		}
	case tickMsg:
		m.refresh()
		return m, m.tickCmd()
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// completeCurrent marks the displayed task done, when the done action is
// offered for it
func (m Model) completeCurrent() Model {
	if m.current == nil {
		return m
	}

	remaining, hasDue := selector.Countdown(*m.current, m.clock.Now())
	if !DoneAllowed(remaining, hasDue) {
		m.status = "too early, hang in there"
		return m
	}

	if _, err := m.service.ToggleComplete(context.Background(), m.current.ID); err != nil {
		m.err = err
		return m
	}
	m.status = ""
	m.refresh()
	return m
}

// deleteCurrent removes the displayed task entirely
func (m Model) deleteCurrent() Model {
	if m.current == nil {
		return m
	}

	if err := m.service.DeleteTask(context.Background(), m.current.ID); err != nil {
		m.err = err
		return m
	}
	m.status = ""
	m.refresh()
	return m
}

var (
	textStyle   = lipgloss.NewStyle().Bold(true).Padding(1, 2)
	metaStyle   = lipgloss.NewStyle().Faint(true).Padding(0, 2)
	statusStyle = lipgloss.NewStyle().Italic(true).Padding(1, 2)
	quoteStyle  = lipgloss.NewStyle().Italic(true).Padding(1, 2)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1, 2)

	// One border color per urgency level, calm to alarming.
	levelColors = map[int]lipgloss.Color{
		urgencyGentle:   lipgloss.Color("36"),
		urgencySubtle:   lipgloss.Color("42"),
		urgencyModerate: lipgloss.Color("220"),
		urgencyHigh:     lipgloss.Color("214"),
		urgencyIntense:  lipgloss.Color("208"),
		urgencyExtreme:  lipgloss.Color("196"),
	}
)

func cardStyle(level int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(levelColors[level]).
		Padding(1, 3).
		Margin(1, 2)
}

func (m Model) View() string {
	if m.err != nil {
		return errStyle.Render("error: " + m.err.Error())
	}

	if m.current == nil {
		return m.allDoneView()
	}

	now := m.clock.Now()
	remaining, hasDue := selector.Countdown(*m.current, now)

	var b strings.Builder
	b.WriteString(textStyle.Render(m.current.Text))
	b.WriteString("\n")

	level := urgencyGentle
	if hasDue {
		level = UrgencyLevel(remaining)
		due := m.current.DueAt()
		b.WriteString(metaStyle.Render(due.Format("Mon Jan 2 15:04")))
		b.WriteString("\n")
		b.WriteString(textStyle.Render(FormatCountdown(remaining)))
	} else {
		b.WriteString(metaStyle.Render("No specific time"))
	}
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(m.typeLine()))

	view := cardStyle(level).Render(b.String())
	if DoneAllowed(remaining, hasDue) {
		view += "\n" + statusStyle.Render("press d when done")
	}
	if m.status != "" {
		view += "\n" + statusStyle.Render(m.status)
	}
	return view
}

// allDoneView is shown when nothing is eligible: the stats line plus the
// quote of the day
func (m Model) allDoneView() string {
	var b strings.Builder
	b.WriteString(textStyle.Render("All done!"))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("%d of %d tasks completed", m.stats.Completed, m.stats.Total)))
	b.WriteString("\n")

	quote := DailyQuote(m.quotes, m.clock.Now())
	b.WriteString(quoteStyle.Render(fmt.Sprintf("%q", quote.Text)))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("%s (%s)", quote.Author, quote.Year)))

	return cardStyle(urgencyGentle).Render(b.String())
}

// typeLine describes the task kind under the countdown
func (m Model) typeLine() string {
	switch m.current.Kind {
	case domain.KindRecurring:
		if m.current.Recurrence != nil {
			return m.current.Recurrence.String()
		}
		return "Recurring"
	case domain.KindScheduled:
		return "One-time"
	default:
		return "Anytime"
	}
}

// FormatCountdown renders a duration as h/m/s, or an overdue notice when
// it is negative
func FormatCountdown(remaining time.Duration) string {
	if remaining < 0 {
		return "Overdue by " + formatHMS(-remaining)
	}
	return formatHMS(remaining)
}

func formatHMS(d time.Duration) string {
	d = d.Round(time.Second)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %02ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lynneapp/lynne/internal/adherence"
	"github.com/lynneapp/lynne/internal/model"
	"github.com/lynneapp/lynne/internal/output"
	"github.com/lynneapp/lynne/internal/storage"
)

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// errMsg is sent when an error occurs.
type errMsg struct {
	err error
}

// DashboardModel is the main bubbletea model for the daily dashboard.
type DashboardModel struct {
	// Data
	target    time.Time
	targetSet bool
	today     *model.CheckInRecord
	plan      *model.ReminderPlan
	stats     adherence.Stats

	// Repositories
	checkinRepo *storage.CheckInRepo
	planRepo    *storage.PlanRepo

	// UI state
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time

	refreshInterval time.Duration
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	CheckInRepo     *storage.CheckInRepo
	PlanRepo        *storage.PlanRepo
	RefreshInterval time.Duration
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}

	return &DashboardModel{
		checkinRepo:     config.CheckInRepo,
		planRepo:        config.PlanRepo,
		refreshInterval: config.RefreshInterval,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Clear expired messages
		if !m.messageExp.IsZero() && time.Now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "c":
		if m.today != nil {
			m.setMessage("Already checked in today", 3*time.Second)
			return m, nil
		}
		if !m.targetSet {
			m.setMessage("Set a pill time first: 'lynne target 9:00pm'", 3*time.Second)
			return m, nil
		}
		if err := m.checkIn(); err != nil {
			m.err = err
		} else {
			m.setMessage("Checked in!", 2*time.Second)
			m.loadData()
		}
		return m, nil

	case "r":
		return m, m.refreshCmd()
	}

	return m, nil
}

// checkIn records a check-in for right now.
func (m *DashboardModel) checkIn() error {
	now := time.Now()
	target := time.Date(now.Year(), now.Month(), now.Day(),
		m.target.Hour(), m.target.Minute(), 0, 0, now.Location())

	rec := model.CheckInRecord{
		Status:     adherence.Evaluate(now, target),
		Timestamp:  now,
		TargetTime: target,
	}
	return m.checkinRepo.SaveCheckIn(model.DateKey(now), rec)
}

// loadData reloads everything the dashboard shows.
func (m *DashboardModel) loadData() {
	m.err = nil

	target, ok, err := m.checkinRepo.TargetTime()
	if err != nil {
		m.err = err
		return
	}
	m.target, m.targetSet = target, ok

	m.today = nil
	if rec, found, err := m.checkinRepo.Get(model.DateKey(time.Now())); err != nil {
		m.err = err
	} else if found {
		m.today = &rec
	}

	if plan, err := m.planRepo.Get(); err != nil {
		m.err = err
	} else {
		m.plan = plan
	}

	if history, err := m.checkinRepo.History(); err != nil {
		m.err = err
	} else {
		m.stats = adherence.Summarize(history, time.Now())
	}
}

// setMessage shows a transient message.
func (m *DashboardModel) setMessage(text string, ttl time.Duration) {
	m.message = text
	m.messageExp = time.Now().Add(ttl)
}

// tickCmd schedules the next tick.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd triggers a data reload.
func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	var sections []string
	sections = append(sections, m.statusView(width))
	sections = append(sections, m.planView(width))
	sections = append(sections, m.statsView(width))

	if m.message != "" {
		sections = append(sections, StyleSuccess.Render(m.message))
	}
	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	help := StyleHelp.Render(
		StyleHelpKey.Render("c") + StyleMuted.Render(" check in  ") +
			StyleHelpKey.Render("r") + StyleMuted.Render(" refresh  ") +
			StyleHelpKey.Render("q") + StyleMuted.Render(" quit"))
	sections = append(sections, help)

	return strings.Join(sections, "\n")
}

// statusView renders today's check-in box.
func (m *DashboardModel) statusView(width int) string {
	var content strings.Builder

	if !m.targetSet {
		content.WriteString(StyleMuted.Render("No daily pill time set"))
		content.WriteString("\n\n")
		content.WriteString(StyleSubtitle.Render("Run 'lynne target 9:00pm' to set one"))
		return StyleStatusBox.Width(width - 4).Render(content.String())
	}

	content.WriteString(StyleTitle.Render("Today"))
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("Pill time: %s", output.FormatTimeOnly(m.target)))
	content.WriteString("\n")

	if m.today == nil {
		content.WriteString(StyleWarning.Render("Not checked in yet"))
		return StyleStatusBox.Width(width - 4).Render(content.String())
	}

	style := lipgloss.NewStyle().Bold(true).Foreground(StatusColor(m.today.Status.Severity()))
	label := style.Render(m.today.Status.Label())
	content.WriteString(fmt.Sprintf("Checked in at %s (%s)",
		output.FormatTimeOnly(m.today.Timestamp), label))
	return StyleCheckedInBox.Width(width - 4).Render(content.String())
}

// planView renders the upcoming reminders.
func (m *DashboardModel) planView(width int) string {
	var content strings.Builder
	content.WriteString(StyleTitle.Render("Reminders"))
	content.WriteString("\n")

	if m.plan == nil || len(m.plan.Entries) == 0 {
		content.WriteString(StyleMuted.Render("None scheduled"))
	} else {
		upcoming := m.plan.Upcoming(time.Now())
		if len(upcoming) == 0 {
			content.WriteString(StyleMuted.Render("All done for today"))
		}
		for i, e := range upcoming {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(fmt.Sprintf("%s  %s",
				output.FormatTimeOnly(e.At), e.Title))
		}
	}

	return StyleStatusBox.Width(width - 4).Render(content.String())
}

// statsView renders the adherence summary line.
func (m *DashboardModel) statsView(width int) string {
	var content strings.Builder
	content.WriteString(StyleTitle.Render("Adherence"))
	content.WriteString("\n")

	if m.stats.Total == 0 {
		content.WriteString(StyleMuted.Render("No check-ins yet"))
	} else {
		content.WriteString(fmt.Sprintf("%d check-ins · %d day streak · %.0f%% on time",
			m.stats.Total, m.stats.Streak, m.stats.OnTimeRate*100))
	}

	return StyleStatusBox.Width(width - 4).Render(content.String())
}

// RunDashboard runs the dashboard TUI until the user quits.
func RunDashboard(config DashboardConfig) error {
	p := tea.NewProgram(NewDashboardModel(config), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

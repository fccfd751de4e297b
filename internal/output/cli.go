package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lynneapp/lynne/internal/adherence"
	"github.com/lynneapp/lynne/internal/education"
	"github.com/lynneapp/lynne/internal/model"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorLate    = lipgloss.Color("#F97316") // Orange
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleOnTime       = lipgloss.NewStyle().Foreground(colorSuccess)
	styleSlightlyLate = lipgloss.NewStyle().Foreground(colorWarning)
	styleVeryLate     = lipgloss.NewStyle().Foreground(colorLate)
	styleMissed       = lipgloss.NewStyle().Foreground(colorError)
)

// statusStyle returns the lipgloss style for a check-in status.
func statusStyle(s model.CheckInStatus) lipgloss.Style {
	switch s {
	case model.StatusOnTime:
		return styleOnTime
	case model.StatusSlightlyLate:
		return styleSlightlyLate
	case model.StatusVeryLate:
		return styleVeryLate
	case model.StatusMissed:
		return styleMissed
	default:
		return styleMuted
	}
}

// StatusGlyph is the single-character marker used in the history grid.
func StatusGlyph(s model.CheckInStatus) string {
	switch s {
	case model.StatusOnTime:
		return "●"
	case model.StatusSlightlyLate:
		return "◐"
	case model.StatusVeryLate:
		return "◑"
	case model.StatusMissed:
		return "○"
	default:
		return "·"
	}
}

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	if c.IsColorEnabled() {
		c.Println(styleTitle.Render(text))
	} else {
		c.Println(text)
	}
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	if c.IsColorEnabled() {
		c.Println(styleSuccess.Render("✓ " + text))
	} else {
		c.Println("✓ " + text)
	}
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	if c.IsColorEnabled() {
		c.Println(styleWarning.Render("⚠ " + text))
	} else {
		c.Println("⚠ " + text)
	}
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	if c.IsColorEnabled() {
		c.Println(styleError.Render("✗ " + text))
	} else {
		c.Println("✗ " + text)
	}
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	if c.IsColorEnabled() {
		c.Println(styleMuted.Render(text))
	} else {
		c.Println(text)
	}
}

// StatusLabel renders a status label in its color.
func (c *CLIFormatter) StatusLabel(s model.CheckInStatus) string {
	if c.IsColorEnabled() {
		return statusStyle(s).Render(s.Label())
	}
	return s.Label()
}

// PrintCheckInResult prints the outcome of a check-in.
func (c *CLIFormatter) PrintCheckInResult(rec model.CheckInRecord, message string) {
	c.Success(message)
	c.Printf("  Status: %s\n", c.StatusLabel(rec.Status))
	c.Printf("  Checked in: %s\n", FormatTimeOnly(rec.Timestamp))
	c.Printf("  Target: %s\n", FormatTimeOnly(rec.TargetTime))
}

// PrintStatus prints today's check-in state.
func (c *CLIFormatter) PrintStatus(target time.Time, targetSet bool, rec *model.CheckInRecord) {
	if !targetSet {
		c.Muted("No daily pill time set.")
		c.Muted("Use 'lynne target 9:00pm' to set one.")
		return
	}

	c.Printf("Daily pill time: %s\n", FormatTimeOnly(target))
	if rec == nil {
		c.Warning("Not checked in yet today.")
		c.Muted("Use 'lynne checkin' once you've taken your pill.")
		return
	}

	c.Printf("Checked in today at %s (%s)\n",
		FormatTimeOnly(rec.Timestamp), c.StatusLabel(rec.Status))
}

// PrintHistoryMonth prints a calendar grid for one month, one glyph per day.
func (c *CLIFormatter) PrintHistoryMonth(year int, month time.Month, days map[int]model.CheckInRecord) {
	c.Title(fmt.Sprintf("%s %d", month, year))
	c.Println("Mo Tu We Th Fr Sa Su")

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Monday-indexed leading pad
	lead := (int(first.Weekday()) + 6) % 7

	var line strings.Builder
	line.WriteString(strings.Repeat("   ", lead))

	col := lead
	for day := 1; day <= daysInMonth; day++ {
		cell := fmt.Sprintf("%2d", day)
		if rec, ok := days[day]; ok {
			glyph := StatusGlyph(rec.Status)
			if c.IsColorEnabled() {
				glyph = statusStyle(rec.Status).Render(glyph)
			}
			cell = " " + glyph
		}
		line.WriteString(cell + " ")

		col++
		if col == 7 {
			c.Println(strings.TrimRight(line.String(), " "))
			line.Reset()
			col = 0
		}
	}
	if line.Len() > 0 {
		c.Println(strings.TrimRight(line.String(), " "))
	}

	c.Println()
	c.printLegend()
}

func (c *CLIFormatter) printLegend() {
	var parts []string
	for _, s := range model.AllStatuses() {
		glyph := StatusGlyph(s)
		if c.IsColorEnabled() {
			glyph = statusStyle(s).Render(glyph)
		}
		parts = append(parts, fmt.Sprintf("%s %s", glyph, s.Label()))
	}
	c.Muted(strings.Join(parts, "   "))
}

// PrintStats prints adherence statistics.
func (c *CLIFormatter) PrintStats(stats adherence.Stats) {
	c.Title("Adherence")
	if stats.Total == 0 {
		c.Muted("No check-ins recorded yet.")
		return
	}

	c.Printf("  Check-ins: %s\n", styleBold.Render(fmt.Sprintf("%d", stats.Total)))
	c.Printf("  Streak: %d day(s)\n", stats.Streak)
	c.Printf("  On time: %.0f%%\n", stats.OnTimeRate*100)
	c.Println()

	for _, s := range model.AllStatuses() {
		count := stats.ByStatus[s]
		pct := float64(count) / float64(stats.Total) * 100
		bar := ProgressBar(pct, 20)
		if c.IsColorEnabled() {
			bar = statusStyle(s).Render(bar)
		}
		c.Printf("  %-14s %s %d\n", s.Label(), bar, count)
	}
}

// PrintSettings prints notification settings.
func (c *CLIFormatter) PrintSettings(s *model.NotificationSettings, defaulted bool) {
	c.Title("Notification Settings")
	if defaulted {
		c.Muted("(defaults, nothing saved yet)")
	}
	c.Printf("  Pre-notification: %d minute(s) before\n", s.PreNotificationTime)
	c.Printf("  Follow-up interval: %d minute(s)\n", s.ReminderInterval)
	c.Printf("  Stop after check-in: %t\n", s.StopAfterCheckIn)
}

// PrintConflict prints a calendar conflict recommendation, or a
// no-conflict message when rec is nil.
func (c *CLIFormatter) PrintConflict(target time.Time, rec *model.ConflictRecommendation) {
	if rec == nil {
		c.Success(fmt.Sprintf("No calendar conflict at %s.", FormatTimeOnly(target)))
		return
	}

	c.Warning(fmt.Sprintf("'%s' (%s - %s) overlaps your pill time.",
		rec.Event.Title(),
		FormatTimeOnly(rec.Event.Start),
		FormatTimeOnly(rec.Event.End)))
	c.Println("Suggested alternatives:")
	c.Printf("  Before: %s\n", FormatTimeOnly(rec.Before))
	c.Printf("  After:  %s\n", FormatTimeOnly(rec.After))
}

// PrintPlan prints today's reminder schedule.
func (c *CLIFormatter) PrintPlan(plan *model.ReminderPlan) {
	if plan == nil || len(plan.Entries) == 0 {
		c.Muted("No reminders scheduled.")
		c.Muted("Use 'lynne remind sync' after setting a target time.")
		return
	}

	c.Title("Today's Reminders")
	rows := make([]TableRow, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		state := "pending"
		if e.Delivered {
			state = "sent"
		}
		rows = append(rows, TableRow{Columns: []string{
			FormatTimeOnly(e.At),
			string(e.Kind),
			e.Title,
			state,
		}})
	}
	c.PrintTable([]string{"TIME", "KIND", "TITLE", "STATE"}, rows)
}

// PrintArticles prints the education article list.
func (c *CLIFormatter) PrintArticles(articles []education.Article) {
	c.Title("Learn")
	for _, a := range articles {
		title := a.Title
		if c.IsColorEnabled() {
			title = styleBold.Render(title)
		}
		c.Printf("  %d. %s\n", a.ID, title)
		c.Muted(fmt.Sprintf("     %s · %s", a.Publication, a.Link))
	}
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return bar
}

// Table helpers for CLI output.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && len(col) > widths[i] {
				widths[i] = len(col)
			}
		}
	}

	// Print headers
	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], h))
	}
	c.Println(styleBold.Render(headerLine.String()))

	// Print separator
	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(sep.String())

	// Print rows
	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], col))
			}
		}
		c.Println(rowLine.String())
	}
}

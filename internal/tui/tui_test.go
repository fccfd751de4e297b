package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynneapp/lynne/internal/chat"
	"github.com/lynneapp/lynne/internal/model"
	"github.com/lynneapp/lynne/internal/storage"
)

// ============================================================================
// Test Helpers
// ============================================================================

// fakeGenerator returns a canned reply, or an error when failWith is set.
type fakeGenerator struct {
	reply    string
	failWith error
}

func (f *fakeGenerator) Generate(_ context.Context, _ string, _ []chat.Turn) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	return f.reply, nil
}

func testChatModel(reply string) *ChatModel {
	return NewChatModel(chat.NewSession(&fakeGenerator{reply: reply}))
}

func setupDashboard(t *testing.T) *DashboardModel {
	t.Helper()

	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewDashboardModel(DashboardConfig{
		CheckInRepo: storage.NewCheckInRepo(db),
		PlanRepo:    storage.NewPlanRepo(db),
	})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ============================================================================
// Chat Model Tests
// ============================================================================

func TestChatModelTypesInput(t *testing.T) {
	m := testChatModel("hi")

	m.Update(keyRunes("hel"))
	m.Update(keyRunes("lo"))
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(keyRunes("there"))

	assert.Equal(t, "hello there", m.input)
}

func TestChatModelBackspace(t *testing.T) {
	m := testChatModel("hi")
	m.input = "héllo"

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "héll", m.input)

	m.input = ""
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "", m.input)
}

func TestChatModelEnterEmptyInputIsNoop(t *testing.T) {
	m := testChatModel("hi")
	m.input = "   "

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, m.waiting)
}

func TestChatModelEnterSendsMessage(t *testing.T) {
	m := testChatModel("take it at the same time every day")
	m.input = "when should I take my pill?"

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.waiting)
	assert.Equal(t, "", m.input)

	// Run the command synchronously and feed the reply back.
	msg := cmd()
	reply, ok := msg.(replyMsg)
	require.True(t, ok)
	assert.NoError(t, reply.err)

	m.Update(reply)
	assert.False(t, m.waiting)

	history := m.session.History()
	require.Len(t, history, 2)
	assert.True(t, history[0].FromUser)
	assert.Equal(t, "take it at the same time every day", history[1].Text)
}

func TestChatModelEnterWhileWaitingIsIgnored(t *testing.T) {
	m := testChatModel("hi")
	m.waiting = true
	m.input = "queued"

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, "queued", m.input)
}

func TestChatModelSendFailureShowsError(t *testing.T) {
	session := chat.NewSession(&fakeGenerator{failWith: errors.New("api down")})
	m := NewChatModel(session)
	m.input = "hello"

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m.Update(cmd())

	assert.False(t, m.waiting)
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "api down")
}

func TestChatModelQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m := testChatModel("hi")
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd, "key %v should quit", key)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestChatViewShowsGreeting(t *testing.T) {
	m := testChatModel("hi")

	view := m.View()

	assert.Contains(t, view, "Chat with Lynne")
	assert.Contains(t, view, chat.Greeting)
}

func TestChatViewShowsTranscript(t *testing.T) {
	m := testChatModel("* first\n* second")
	_, err := m.session.Send(context.Background(), "list two tips")
	require.NoError(t, err)

	view := m.View()

	assert.Contains(t, view, "You:")
	assert.Contains(t, view, "list two tips")
	assert.Contains(t, view, "Lynne:")
	assert.Contains(t, view, "- first")
	assert.NotContains(t, view, chat.Greeting)
}

func TestChatViewShowsThinkingIndicator(t *testing.T) {
	m := testChatModel("hi")
	m.waiting = true

	assert.Contains(t, m.View(), "Lynne is thinking...")
}

func TestChatModelWindowSize(t *testing.T) {
	m := testChatModel("hi")
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

// ============================================================================
// Dashboard Model Tests
// ============================================================================

func TestDashboardDefaults(t *testing.T) {
	m := setupDashboard(t)

	assert.Equal(t, time.Second, m.refreshInterval)
	assert.NotNil(t, m.Init())
}

func TestDashboardViewWithoutTarget(t *testing.T) {
	m := setupDashboard(t)
	m.loadData()

	view := m.View()

	assert.Contains(t, view, "No daily pill time set")
	assert.Contains(t, view, "lynne target")
}

func TestDashboardViewNotCheckedIn(t *testing.T) {
	m := setupDashboard(t)
	target := time.Date(2026, 1, 1, 21, 0, 0, 0, time.Local)
	require.NoError(t, m.checkinRepo.SetTargetTime(target))
	m.loadData()

	view := m.View()

	assert.Contains(t, view, "Not checked in yet")
	assert.Contains(t, view, "21:00")
}

func TestDashboardCheckInKey(t *testing.T) {
	m := setupDashboard(t)
	require.NoError(t, m.checkinRepo.SetTargetTime(time.Now()))
	m.loadData()

	m.handleKeyPress(keyRunes("c"))

	require.NotNil(t, m.today)
	assert.Equal(t, model.StatusOnTime, m.today.Status)
	assert.Contains(t, m.View(), "Checked in")
}

func TestDashboardCheckInTwiceRefused(t *testing.T) {
	m := setupDashboard(t)
	require.NoError(t, m.checkinRepo.SetTargetTime(time.Now()))
	m.loadData()

	m.handleKeyPress(keyRunes("c"))
	m.handleKeyPress(keyRunes("c"))

	assert.Contains(t, m.message, "Already checked in")

	history, err := m.checkinRepo.History()
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestDashboardCheckInWithoutTargetRefused(t *testing.T) {
	m := setupDashboard(t)
	m.loadData()

	m.handleKeyPress(keyRunes("c"))

	assert.Nil(t, m.today)
	assert.Contains(t, m.message, "Set a pill time first")
}

func TestDashboardQuitKey(t *testing.T) {
	m := setupDashboard(t)

	_, cmd := m.handleKeyPress(keyRunes("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDashboardShowsUpcomingReminders(t *testing.T) {
	m := setupDashboard(t)

	future := time.Now().Add(2 * time.Hour)
	plan := &model.ReminderPlan{
		Target:    future,
		CreatedAt: time.Now(),
		Entries: []model.PlannedReminder{
			{ID: "a", Kind: model.ReminderMain, At: future, Title: "Time to take your pill"},
		},
	}
	require.NoError(t, m.planRepo.Replace(plan))
	m.loadData()

	assert.Contains(t, m.View(), "Time to take your pill")
}

func TestDashboardMessageExpires(t *testing.T) {
	m := setupDashboard(t)
	m.setMessage("done", -time.Second)

	m.Update(tickMsg(time.Now()))

	assert.Equal(t, "", m.message)
}

// ============================================================================
// Style Tests
// ============================================================================

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status model.CheckInStatus
		want   string
	}{
		{model.StatusOnTime, string(ColorSuccess)},
		{model.StatusSlightlyLate, string(ColorWarning)},
		{model.StatusVeryLate, string(ColorLate)},
		{model.StatusMissed, string(ColorError)},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got := StatusColor(tt.status.Severity())
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestStylesRenderContent(t *testing.T) {
	for name, style := range map[string]interface{ Render(...string) string }{
		"title":   StyleTitle,
		"muted":   StyleMuted,
		"warning": StyleWarning,
		"error":   StyleError,
		"success": StyleSuccess,
	} {
		assert.True(t, strings.Contains(style.Render("x"), "x"), name)
	}
}

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lynneapp/lynne/internal/chat"
	"github.com/lynneapp/lynne/internal/validate"
)

// replyMsg carries the assistant's reply back into the update loop.
type replyMsg struct {
	text string
	err  error
}

// ChatModel is the bubbletea model for the chat assistant.
type ChatModel struct {
	session *chat.Session

	// UI state
	input   string
	waiting bool
	width   int
	height  int
	err     error
}

// NewChatModel creates a new chat model over an active session.
func NewChatModel(session *chat.Session) *ChatModel {
	return &ChatModel{session: session}
}

// Init initializes the model.
func (m *ChatModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case replyMsg:
		m.waiting = false
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *ChatModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		if m.waiting {
			return m, nil
		}
		text := validate.ChatMessage(m.input)
		if text == "" {
			return m, nil
		}
		m.input = ""
		m.waiting = true
		m.err = nil
		return m, m.sendCmd(text)

	case "backspace":
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
		return m, nil

	default:
		if msg.Type == tea.KeyRunes {
			m.input += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.input += " "
		}
		return m, nil
	}
}

// sendCmd sends the message to the assistant off the update loop.
func (m *ChatModel) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		reply, err := m.session.Send(ctx, text)
		return replyMsg{text: reply, err: err}
	}
}

// View renders the chat transcript and the input line.
func (m *ChatModel) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render("Chat with Lynne"))
	content.WriteString("\n")

	history := m.session.History()
	if len(history) == 0 {
		content.WriteString(StyleMuted.Render(chat.Greeting))
		content.WriteString("\n")
	}
	for _, turn := range history {
		if turn.FromUser {
			content.WriteString(StyleUserTurn.Render("You: "))
			content.WriteString(turn.Text)
		} else {
			content.WriteString(StyleAssistantTurn.Render("Lynne: "))
			content.WriteString(chat.FormatReply(turn.Text))
		}
		content.WriteString("\n\n")
	}

	if m.waiting {
		content.WriteString(StyleMuted.Render("Lynne is thinking..."))
		content.WriteString("\n")
	}
	if m.err != nil {
		content.WriteString(StyleError.Render(fmt.Sprintf("! %v", m.err)))
		content.WriteString("\n")
	}

	width := m.width
	if width == 0 {
		width = 80
	}
	box := StyleChatBox.Width(width - 4)

	prompt := fmt.Sprintf("> %s█", m.input)
	help := StyleHelp.Render(
		StyleHelpKey.Render("enter") + StyleMuted.Render(" send  ") +
			StyleHelpKey.Render("esc") + StyleMuted.Render(" quit"))

	return box.Render(content.String()) + "\n" + prompt + "\n" + help
}

// RunChat runs the chat TUI until the user quits.
func RunChat(session *chat.Session) error {
	p := tea.NewProgram(NewChatModel(session), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

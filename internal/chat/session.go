package chat

import (
	"context"
	"regexp"
	"strings"
)

// SystemPrompt steers the assistant toward birth-control-pill education
// and away from everything else.
const SystemPrompt = `You are Lynne, a friendly and educational AI assistant focused on birth control pill education. Your main goals are:
- Help users understand how different oral contraceptives (birth control pills) work
- Share reliable, evidence-based information about birth control pills
- Keep the focus on birth control pill education and usage
- Track the user's symptoms and side effects from birth control pills

Key guidelines:
- Keep responses around a few sentences
- Break responses into bullet point format
- Any symptoms or side effects that a user inputs should be treated as if they are logging them; remember them so trends can be asked about later
- Use easy to understand language
- If asked about other birth control methods or unrelated topics, politely redirect to birth control pill topics
- Remind users that this is for educational purposes only and that they should consult a healthcare provider for personalized medical advice`

// Greeting is shown when the assistant cannot be reached on startup.
const Greeting = "Hi! I'm Lynne, your birth control education assistant. How can I help you learn about birth control options today?"

// ErrorReply is returned in place of a chat failure.
const ErrorReply = "I apologize, but I encountered an error. Please try asking your question again."

// Turn is one message in a conversation.
type Turn struct {
	Text     string
	FromUser bool
}

// Generator produces a model reply for a conversation.
type Generator interface {
	Generate(ctx context.Context, system string, turns []Turn) (string, error)
}

// Session owns one conversation's history. It is not safe for concurrent
// use; each caller creates its own.
type Session struct {
	gen   Generator
	turns []Turn
}

// NewSession creates a session on top of a generator.
func NewSession(gen Generator) *Session {
	return &Session{gen: gen}
}

// History returns a copy of the conversation so far.
func (s *Session) History() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Send appends the user message, asks the model, records its reply, and
// returns the formatted reply text. On failure the user turn is kept, a
// fallback reply is recorded, and the error is returned alongside it so
// the caller can log it.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	s.turns = append(s.turns, Turn{Text: text, FromUser: true})

	reply, err := s.gen.Generate(ctx, SystemPrompt, s.turns)
	if err != nil {
		s.turns = append(s.turns, Turn{Text: ErrorReply})
		return ErrorReply, err
	}

	reply = FormatReply(reply)
	s.turns = append(s.turns, Turn{Text: reply})
	return reply, nil
}

var bulletRe = regexp.MustCompile(`(?m)^\s*\*\s*`)

// FormatReply normalizes markdown asterisk bullets to bullet points for
// terminal display.
func FormatReply(text string) string {
	return bulletRe.ReplaceAllString(text, "- ")
}

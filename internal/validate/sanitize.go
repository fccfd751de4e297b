package validate

import (
	"strings"
	"unicode"
)

// MaxChatMessageLength bounds a single chat message.
const MaxChatMessageLength = 4096

// StripControlChars removes control characters, keeping newlines and tabs.
func StripControlChars(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// TruncateString shortens s to at most maxLen runes.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// ChatMessage cleans a chat message for sending: trims space, strips
// control characters, and bounds the length.
func ChatMessage(s string) string {
	s = strings.TrimSpace(StripControlChars(s))
	return TruncateString(s, MaxChatMessageLength)
}

package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynneapp/lynne/internal/errors"
	"github.com/lynneapp/lynne/internal/model"
)

func TestMinutes(t *testing.T) {
	n, err := Minutes("pre", "10")
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	n, err = Minutes("pre", "0")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, bad := range []string{"abc", "-1", "1441", "1.5", ""} {
		_, err := Minutes("pre", bad)
		assert.Error(t, err, bad)
		assert.True(t, errors.IsUserError(err), bad)
	}
}

func TestSettings(t *testing.T) {
	assert.NoError(t, Settings(model.DefaultNotificationSettings()))

	assert.Error(t, Settings(&model.NotificationSettings{PreNotificationTime: -1}))
	assert.Error(t, Settings(&model.NotificationSettings{ReminderInterval: 99999}))
}

func TestWebhookName(t *testing.T) {
	assert.NoError(t, WebhookName("phone-1"))
	assert.Error(t, WebhookName(""))
	assert.Error(t, WebhookName("has space"))
}

func TestURL(t *testing.T) {
	assert.NoError(t, URL("https://example.com/webhook"))
	assert.NoError(t, URL("http://localhost:8080/hook"))
	assert.NoError(t, URL("http://127.0.0.1/hook"))

	assert.Error(t, URL(""))
	assert.Error(t, URL("ftp://example.com"))
	assert.Error(t, URL("http://example.com/hook"))
	assert.Error(t, URL("https://"))
	assert.Error(t, URL("https://example.com/"+strings.Repeat("x", MaxURLLength)))
}

func TestStripControlChars(t *testing.T) {
	assert.Equal(t, "ab\ncd\te", StripControlChars("ab\ncd\te\x00\x07"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", TruncateString("abc", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
	assert.Equal(t, "", TruncateString("abc", 0))
	// Rune-aware, not byte-aware.
	assert.Equal(t, "hél", TruncateString("héllo", 3))
}

func TestChatMessage(t *testing.T) {
	assert.Equal(t, "hello", ChatMessage("  hello\x00  "))
	long := strings.Repeat("a", MaxChatMessageLength+50)
	assert.Len(t, ChatMessage(long), MaxChatMessageLength)
}

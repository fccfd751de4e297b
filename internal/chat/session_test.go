package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply string
	err   error
	calls [][]Turn
}

func (f *fakeGenerator) Generate(_ context.Context, system string, turns []Turn) (string, error) {
	cp := make([]Turn, len(turns))
	copy(cp, turns)
	f.calls = append(f.calls, cp)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestSessionSendRecordsBothTurns(t *testing.T) {
	gen := &fakeGenerator{reply: "* Pills work by...\n* Take daily"}
	s := NewSession(gen)

	reply, err := s.Send(context.Background(), "How do pills work?")
	require.NoError(t, err)
	assert.Equal(t, "- Pills work by...\n- Take daily", reply)

	h := s.History()
	require.Len(t, h, 2)
	assert.True(t, h[0].FromUser)
	assert.Equal(t, "How do pills work?", h[0].Text)
	assert.False(t, h[1].FromUser)
}

func TestSessionSendKeepsHistoryAcrossTurns(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	s := NewSession(gen)

	_, err := s.Send(context.Background(), "first")
	require.NoError(t, err)
	_, err = s.Send(context.Background(), "second")
	require.NoError(t, err)

	// The second call carries the whole conversation.
	require.Len(t, gen.calls, 2)
	assert.Len(t, gen.calls[1], 3)
}

func TestSessionSendFailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("network down")}
	s := NewSession(gen)

	reply, err := s.Send(context.Background(), "hello")
	assert.Error(t, err)
	assert.Equal(t, ErrorReply, reply)

	// User turn and the fallback reply both recorded.
	assert.Len(t, s.History(), 2)
}

func TestSessionSendEmptyInputIsNoop(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	s := NewSession(gen)

	reply, err := s.Send(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, reply)
	assert.Empty(t, s.History())
	assert.Empty(t, gen.calls)
}

func TestFormatReply(t *testing.T) {
	in := "Header\n* one\n  * two\nplain * not a bullet"
	assert.Equal(t, "Header\n- one\n- two\nplain * not a bullet", FormatReply(in))
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("", "gemini-1.5-flash", 0)
	assert.Error(t, err)

	c, err := NewClient("key", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", c.model)
}

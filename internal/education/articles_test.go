package education

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedIsWellFormed(t *testing.T) {
	feed := Feed()
	require.NotEmpty(t, feed)

	seen := make(map[int]bool)
	for _, a := range feed {
		assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
		seen[a.ID] = true
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Publication)
		assert.True(t, strings.HasPrefix(a.Link, "https://"), a.Link)
	}
}

func TestByID(t *testing.T) {
	a, ok := ByID(1)
	require.True(t, ok)
	assert.Equal(t, "Medical News Today", a.Publication)

	_, ok = ByID(999)
	assert.False(t, ok)
}

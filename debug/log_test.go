package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesTaggedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")
	require.NoError(t, Enable(path))
	t.Cleanup(Disable)

	assert.True(t, Enabled())
	id := Session()
	assert.Len(t, id, 8)

	Log("quiz", "round %d", 3)
	for i := 0; i < 4; i++ {
		LogEvery(2, "midi", "note")
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Debug logging started")
	assert.Contains(t, lines[1], "quiz")
	assert.Contains(t, lines[1], "round 3")
	assert.Contains(t, lines[2], "(every 2, count=2)")
	assert.Contains(t, lines[3], "(every 2, count=4)")
	for _, l := range lines {
		assert.Contains(t, l, id)
	}
}

func TestLogIsSilentWhenDisabled(t *testing.T) {
	Disable()
	assert.False(t, Enabled())
	assert.Equal(t, "", Session())
	Log("quiz", "dropped")
}

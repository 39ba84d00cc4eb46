package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"note-quiz/midi"
)

func TestNotesTableListsEveryNote(t *testing.T) {
	out := notesTable()
	for _, want := range []string{"G5", "C4", "E2", "50%", "98%", "34%"} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 2, strings.Count(out, "true"))
}

func TestNotesCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"notes"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "MIDI")
	assert.Contains(t, buf.String(), "treble")
}

func TestDescribeNote(t *testing.T) {
	assert.Equal(t, " 60  C4  vel=100 counts as C", describeNote(midi.NoteEvent{Note: 60, Velocity: 100}))
	assert.Contains(t, describeNote(midi.NoteEvent{Note: 61, Velocity: 1}), "always wrong")
}

func TestMonitorStopsWhenChannelCloses(t *testing.T) {
	notes := make(chan midi.NoteEvent, 2)
	notes <- midi.NoteEvent{Note: 67, Velocity: 80}
	notes <- midi.NoteEvent{Note: 40, Velocity: 80}
	close(notes)

	var lines []string
	err := monitor(context.Background(), notes, func(s string) { lines = append(lines, s) })
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "G4")
	assert.Contains(t, lines[1], "E2")
}

func TestMonitorStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := monitor(ctx, make(chan midi.NoteEvent), func(string) { t.Fatal("no output expected") })
	assert.NoError(t, err)
}

package tui

import (
	"note-quiz/midi"
	"note-quiz/quiz"
	"note-quiz/theme"
)

// Launchpad layout: the bottom row holds one pad per pitch name, C to B,
// and the last pad asks for a new note
const (
	padRow     = 0
	newNoteCol = 7
)

type padAction struct {
	pitch   string
	newNote bool
}

func padToAction(ev midi.PadEvent) (padAction, bool) {
	if ev.Row != padRow {
		return padAction{}, false
	}
	if ev.Col == newNoteCol {
		return padAction{newNote: true}, true
	}
	if ev.Col >= 0 && ev.Col < len(quiz.PitchNames) {
		return padAction{pitch: quiz.PitchNames[ev.Col]}, true
	}
	return padAction{}, false
}

func pitchCol(pitch string) int {
	for i, p := range quiz.PitchNames {
		if p == pitch {
			return i
		}
	}
	return -1
}

// padLayout colours the guess pads along the palette and the new-note pad
// with the accent colour. guess is lit green or red when set.
func padLayout(th *theme.Theme, guess string, kind quiz.FeedbackKind) []midi.LEDUpdate {
	n := len(quiz.PitchNames)
	updates := make([]midi.LEDUpdate, 0, n+1)
	for i := range quiz.PitchNames {
		updates = append(updates, midi.LEDUpdate{
			Row:   padRow,
			Col:   i,
			Color: th.RGB(0.3 + 0.4*float64(i)/float64(n-1)),
		})
	}
	updates = append(updates, midi.LEDUpdate{Row: padRow, Col: newNoteCol, Color: th.RGB(theme.RoleAccent)})

	if col := pitchCol(guess); col >= 0 && kind != quiz.FeedbackPrompt {
		u := &updates[col]
		u.Channel = midi.ChannelPulse
		u.Color = [3]uint8{255, 0, 0}
		if kind == quiz.FeedbackCorrect {
			u.Color = [3]uint8{0, 255, 0}
		}
	}
	return updates
}

// padPreview is what the TUI shows of the Launchpad bottom row
func padPreview(updates []midi.LEDUpdate) [][3]uint8 {
	colors := make([][3]uint8, newNoteCol+1)
	for _, u := range updates {
		if u.Row == padRow && u.Col <= newNoteCol {
			colors[u.Col] = u.Color
		}
	}
	return colors
}

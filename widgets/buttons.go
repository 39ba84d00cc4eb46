package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"note-quiz/theme"
)

// Button is one clickable label in a ButtonRow
type Button struct {
	Key   string // what the button submits
	Label string
}

// ButtonRow is a single line of buttons: "[ C ] [ D ] ..."
type ButtonRow struct {
	Buttons []Button

	highlight int // index of the button last pressed, -1 for none
	correct   bool
}

const buttonGap = 1

func NewButtonRow(buttons []Button) *ButtonRow {
	return &ButtonRow{Buttons: buttons, highlight: -1}
}

// PitchButtons returns one button per pitch name
func PitchButtons(pitches []string) []Button {
	buttons := make([]Button, len(pitches))
	for i, p := range pitches {
		buttons[i] = Button{Key: p, Label: p}
	}
	return buttons
}

func buttonText(b Button) string {
	return fmt.Sprintf("[ %s ]", b.Label)
}

// Highlight marks the button with key as pressed, coloured by outcome
func (r *ButtonRow) Highlight(key string, correct bool) {
	r.highlight = -1
	for i, b := range r.Buttons {
		if b.Key == key {
			r.highlight = i
			r.correct = correct
			return
		}
	}
}

// ClearHighlight removes any pressed marker
func (r *ButtonRow) ClearHighlight() {
	r.highlight = -1
}

// HitTest returns the button under column x of the row
func (r *ButtonRow) HitTest(x int) (Button, bool) {
	col := 0
	for _, b := range r.Buttons {
		w := lipgloss.Width(buttonText(b))
		if x >= col && x < col+w {
			return b, true
		}
		col += w + buttonGap
	}
	return Button{}, false
}

// Plain returns the row without styling
func (r *ButtonRow) Plain() string {
	parts := make([]string, len(r.Buttons))
	for i, b := range r.Buttons {
		parts[i] = buttonText(b)
	}
	return strings.Join(parts, strings.Repeat(" ", buttonGap))
}

func (r *ButtonRow) Render(th *theme.Theme) string {
	normal := lipgloss.NewStyle().Foreground(th.FG())
	good := lipgloss.NewStyle().Foreground(th.Success()).Bold(true)
	bad := lipgloss.NewStyle().Foreground(th.Active()).Bold(true)

	parts := make([]string, len(r.Buttons))
	for i, b := range r.Buttons {
		style := normal
		if i == r.highlight {
			style = bad
			if r.correct {
				style = good
			}
		}
		parts[i] = style.Render(buttonText(b))
	}
	return strings.Join(parts, strings.Repeat(" ", buttonGap))
}

package widgets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"note-quiz/quiz"
	"note-quiz/theme"
)

var sym = theme.New(theme.DefaultPalette()).Symbols

func TestPositionRow(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(12, PositionRow(50))
	assert.Equal(8, PositionRow(34))
	assert.Equal(24, PositionRow(98))
	assert.Equal(1, PositionRow(6))
	assert.Equal(0, PositionRow(-10))
	assert.Equal(24, PositionRow(140))
}

func TestEveryTableNoteLandsOnItsStep(t *testing.T) {
	for _, n := range quiz.Notes {
		assert.Equal(t, 12-n.Steps, PositionRow(n.Position()), n.String())
	}
}

func TestEmptyStaffHasTenLines(t *testing.T) {
	s := NewStaff(11)
	lines := s.Lines(sym)
	require.Len(t, lines, StaffRows)

	var lineRows []int
	for i, l := range lines {
		if strings.ContainsRune(l, sym.StaffLine) {
			lineRows = append(lineRows, i)
		}
	}
	assert.Equal(t, []int{2, 4, 6, 8, 10, 14, 16, 18, 20, 22}, lineRows)
	assert.Equal(t, -1, s.NoteRow())
	assert.True(t, strings.HasPrefix(lines[8], sym.Treble))
	assert.True(t, strings.HasPrefix(lines[16], sym.Bass))
}

func TestMiddleCGetsLedgerLine(t *testing.T) {
	s := NewStaff(11)
	s.SetNote(50, true)

	lines := s.Lines(sym)
	row := []rune(lines[12])
	assert.Equal(t, sym.NoteHead, row[labelWidth+5])
	assert.Equal(t, sym.LedgerLine, row[labelWidth+4])
	assert.Equal(t, sym.LedgerLine, row[labelWidth+7])
	assert.Equal(t, 1, strings.Count(strings.Join(lines, ""), string(sym.NoteHead)))
}

func TestLedgerClearedOnNextNote(t *testing.T) {
	s := NewStaff(11)
	s.SetNote(50, true)
	s.SetNote(34, false)

	joined := strings.Join(s.Lines(sym), "\n")
	assert.NotContains(t, joined, string(sym.LedgerLine))
	row := []rune(s.Lines(sym)[8])
	assert.Equal(t, sym.NoteHead, row[labelWidth+5])
	assert.Equal(t, sym.StaffLine, row[labelWidth+4], "head sits on the G line")
}

func TestClear(t *testing.T) {
	s := NewStaff(11)
	s.SetNote(98, true)
	s.Clear()
	assert.NotContains(t, strings.Join(s.Lines(sym), ""), string(sym.NoteHead))
}

func TestRenderKeepsShape(t *testing.T) {
	th := theme.New(theme.DefaultPalette())
	s := NewStaff(15)
	s.SetNote(98, true)
	out := s.Render(th)
	assert.Equal(t, StaffRows, len(strings.Split(out, "\n")))
	assert.Contains(t, out, string(sym.NoteHead))
}

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"note-quiz/theme"
)

// StaffRows is the height of the grand staff: one row per staff step from
// +12 (top) to -12 (bottom)
const StaffRows = 25

const (
	rowStepPercent = 4
	labelWidth     = 3
	ledgerHalf     = 2
)

type cellKind int

const (
	cellBlank cellKind = iota
	cellLine
	cellLabel
	cellLedger
	cellHead
)

// Staff draws a grand staff with a single note on it. Each Render starts
// from a clean staff, so a ledger line only shows when the current note
// asks for one.
type Staff struct {
	Width int // body width, excluding the clef label column

	visible  bool
	position int
	ledger   bool
}

func NewStaff(width int) *Staff {
	if width < 2*ledgerHalf+1 {
		width = 2*ledgerHalf + 1
	}
	return &Staff{Width: width}
}

// SetNote places the note head at position percent of the staff height,
// with or without a ledger line
func (s *Staff) SetNote(position int, ledger bool) {
	s.visible = true
	s.position = position
	s.ledger = ledger
}

// Clear removes the note
func (s *Staff) Clear() {
	s.visible = false
	s.ledger = false
}

// NoteRow returns the row the note head sits on, or -1 when there is none
func (s *Staff) NoteRow() int {
	if !s.visible {
		return -1
	}
	return PositionRow(s.position)
}

// PositionRow maps a vertical position in percent to a staff row
func PositionRow(position int) int {
	row := position / rowStepPercent
	if row < 0 {
		return 0
	}
	if row >= StaffRows {
		return StaffRows - 1
	}
	return row
}

// isStaffLine reports whether row carries one of the ten staff lines
func isStaffLine(row int) bool {
	steps := 12 - row
	if steps < 0 {
		steps = -steps
	}
	return steps >= 2 && steps <= 10 && steps%2 == 0
}

func (s *Staff) grid(sym theme.Symbols) ([][]rune, [][]cellKind) {
	runes := make([][]rune, StaffRows)
	kinds := make([][]cellKind, StaffRows)
	total := labelWidth + s.Width
	noteCol := labelWidth + s.Width/2

	for row := 0; row < StaffRows; row++ {
		runes[row] = make([]rune, total)
		kinds[row] = make([]cellKind, total)
		for col := range runes[row] {
			runes[row][col] = sym.Space
		}
		if isStaffLine(row) {
			for col := labelWidth; col < total; col++ {
				runes[row][col] = sym.StaffLine
				kinds[row][col] = cellLine
			}
		}
	}

	// clef letters on the G line (+4) and the F line (-4)
	putLabel(runes, kinds, 12-4, sym.Treble)
	putLabel(runes, kinds, 12+4, sym.Bass)

	if row := s.NoteRow(); row >= 0 {
		if s.ledger {
			for col := noteCol - ledgerHalf; col <= noteCol+ledgerHalf; col++ {
				runes[row][col] = sym.LedgerLine
				kinds[row][col] = cellLedger
			}
		}
		runes[row][noteCol] = sym.NoteHead
		kinds[row][noteCol] = cellHead
	}
	return runes, kinds
}

func putLabel(runes [][]rune, kinds [][]cellKind, row int, label string) {
	for i, r := range []rune(label) {
		if i >= labelWidth-1 {
			break
		}
		runes[row][i] = r
		kinds[row][i] = cellLabel
	}
}

// Lines returns the staff as plain text, one string per row
func (s *Staff) Lines(sym theme.Symbols) []string {
	runes, _ := s.grid(sym)
	lines := make([]string, len(runes))
	for i, r := range runes {
		lines[i] = string(r)
	}
	return lines
}

// Render draws the staff with theme colours
func (s *Staff) Render(th *theme.Theme) string {
	runes, kinds := s.grid(th.Symbols)

	styles := map[cellKind]lipgloss.Style{
		cellBlank:  lipgloss.NewStyle(),
		cellLine:   lipgloss.NewStyle().Foreground(th.Muted()),
		cellLabel:  lipgloss.NewStyle().Foreground(th.Accent()),
		cellLedger: lipgloss.NewStyle().Foreground(th.FG()),
		cellHead:   lipgloss.NewStyle().Foreground(th.Cursor()).Bold(true),
	}

	lines := make([]string, len(runes))
	for row := range runes {
		var line strings.Builder
		// style runs of equal kind together
		start := 0
		for col := 1; col <= len(runes[row]); col++ {
			if col < len(runes[row]) && kinds[row][col] == kinds[row][start] {
				continue
			}
			line.WriteString(styles[kinds[row][start]].Render(string(runes[row][start:col])))
			start = col
		}
		lines[row] = line.String()
	}
	return strings.Join(lines, "\n")
}

package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Staff
	StaffLine  rune // ─ one of the five lines
	LedgerLine rune // ─ short line through an out-of-staff note
	NoteHead   rune // ● the note to name
	Space      rune // between lines

	// Clef labels, drawn on the line each clef names
	Treble string // G line
	Bass   string // F line

	// Feedback markers
	Correct   rune // ✓
	Incorrect rune // ✗
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			StaffLine:  '─',
			LedgerLine: '━',
			NoteHead:   '●',
			Space:      ' ',

			Treble: "G",
			Bass:   "F",

			Correct:   '✓',
			Incorrect: '✗',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0 // deep blue
	RoleSurface = 0.1
	RoleMuted   = 0.2 // staff lines, help text
	RoleFG      = 0.4 // readable text
	RoleAccent  = 0.5 // header
	RoleCursor  = 0.6 // note head
	RoleActive  = 0.7 // wrong answer
	RoleWarning = 0.8
	RoleSuccess = 0.9 // right answer
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Cursor() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleCursor))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// RGB returns raw RGB for any normalized value (for Launchpad LEDs)
func (t *Theme) RGB(norm float64) RGB {
	return t.Palette.Lookup(norm)
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

package quiz

import "fmt"

// Staff geometry, in percent of the staff height
const (
	ReferencePosition = 50 // middle C sits in the centre
	StepPercent       = 4  // one line-or-space step
)

// Pitch names in button order
var PitchNames = []string{"C", "D", "E", "F", "G", "A", "B"}

// Clef identifies which staff a note is drawn on
type Clef int

const (
	ClefMiddle Clef = iota // middle C ledger note between the staves
	ClefTreble
	ClefBass
)

func (c Clef) String() string {
	switch c {
	case ClefTreble:
		return "treble"
	case ClefBass:
		return "bass"
	default:
		return "middle"
	}
}

// NoteDefinition is one playable note: its pitch name and its offset in staff
// steps from middle C (positive is up)
type NoteDefinition struct {
	Pitch string
	Steps int
}

// Notes is the fixed table of playable notes, treble staff top to bass staff
// bottom
var Notes = [24]NoteDefinition{
	// treble
	{"G", 11}, // above the top line
	{"F", 10}, // line 5
	{"E", 9},
	{"D", 8}, // line 4
	{"C", 7},
	{"B", 6}, // line 3
	{"A", 5},
	{"G", 4}, // line 2
	{"F", 3},
	{"E", 2}, // line 1
	{"D", 1}, // below the staff

	// middle C
	{"C", 0},

	// bass
	{"B", -1}, // above the staff
	{"A", -2}, // line 5
	{"G", -3},
	{"F", -4}, // line 4
	{"E", -5},
	{"D", -6}, // line 3
	{"C", -7},
	{"B", -8}, // line 2
	{"A", -9},
	{"G", -10}, // line 1
	{"F", -11},
	{"E", -12}, // ledger below
}

// Position returns the vertical display position of a note in percent of the
// staff height, 0 at the top
func Position(steps int) int {
	return ReferencePosition - steps*StepPercent
}

// NeedsLedgerLine reports whether a note at steps needs a ledger line drawn
// through it. Even steps inside either five-line staff never do.
func NeedsLedgerLine(steps int) bool {
	even := steps%2 == 0
	switch {
	case steps == 0:
		return true
	case steps <= -12 && even:
		return true
	case steps >= 12 && even:
		return true
	}
	return false
}

// Position is the note's vertical display position in percent
func (n NoteDefinition) Position() int {
	return Position(n.Steps)
}

// NeedsLedgerLine reports whether the note is drawn with a ledger line
func (n NoteDefinition) NeedsLedgerLine() bool {
	return NeedsLedgerLine(n.Steps)
}

func (n NoteDefinition) Clef() Clef {
	switch {
	case n.Steps > 0:
		return ClefTreble
	case n.Steps < 0:
		return ClefBass
	}
	return ClefMiddle
}

// Octave returns the scientific pitch octave, middle C being 4
func (n NoteDefinition) Octave() int {
	return 4 + floorDiv(n.Steps, 7)
}

// Name returns the scientific pitch name, e.g. "G4"
func (n NoteDefinition) Name() string {
	return fmt.Sprintf("%s%d", n.Pitch, n.Octave())
}

// semitone offsets of the diatonic degrees from C
var degreeSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

// MIDINote returns the MIDI key number of the note (middle C = 60)
func (n NoteDefinition) MIDINote() uint8 {
	degree := n.Steps - floorDiv(n.Steps, 7)*7
	return uint8(60 + 12*floorDiv(n.Steps, 7) + degreeSemitones[degree])
}

func (n NoteDefinition) String() string {
	return fmt.Sprintf("%s(%+d)", n.Name(), n.Steps)
}

// IsPitchName reports whether s is one of the seven natural pitch names
func IsPitchName(s string) bool {
	for _, p := range PitchNames {
		if p == s {
			return true
		}
	}
	return false
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableHas24Notes(t *testing.T) {
	assert := assert.New(t)
	assert.Len(Notes, 24)
	assert.Equal(NoteDefinition{"G", 11}, Notes[0])
	assert.Equal(NoteDefinition{"C", 0}, Notes[11])
	assert.Equal(NoteDefinition{"E", -12}, Notes[23])

	for i := 1; i < len(Notes); i++ {
		assert.Equal(Notes[i-1].Steps-1, Notes[i].Steps, "table is contiguous and descending")
	}
	for _, n := range Notes {
		assert.True(IsPitchName(n.Pitch), n.String())
	}
}

func TestPositionStaysOnStaff(t *testing.T) {
	for _, n := range Notes {
		pos := Position(n.Steps)
		assert.GreaterOrEqual(t, pos, 2, n.String())
		assert.LessOrEqual(t, pos, 98, n.String())
		assert.Equal(t, 50-n.Steps*4, pos)
	}
}

func TestPositionExamples(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(50, Position(0))
	assert.Equal(34, Position(4))
	assert.Equal(66, Position(-4))
	assert.Equal(98, Position(-12))
	assert.Equal(6, Position(11))
}

func TestNeedsLedgerLine(t *testing.T) {
	cases := []struct {
		steps int
		want  bool
	}{
		{0, true},
		{2, false},
		{-2, false},
		{12, true},
		{-12, true},
		{11, false},
		{-11, false},
		{13, false},
		{-13, false},
		{14, true},
		{-14, true},
		{10, false},
		{-10, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NeedsLedgerLine(c.steps), "steps=%d", c.steps)
	}
}

func TestOnlyMiddleAndLowENeedLedgerInTable(t *testing.T) {
	var ledger []string
	for _, n := range Notes {
		if n.NeedsLedgerLine() {
			ledger = append(ledger, n.Name())
		}
	}
	assert.Equal(t, []string{"C4", "E2"}, ledger)
}

func TestScientificNames(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("G5", Notes[0].Name())
	assert.Equal("C4", NoteDefinition{"C", 0}.Name())
	assert.Equal("B3", NoteDefinition{"B", -1}.Name())
	assert.Equal("C3", NoteDefinition{"C", -7}.Name())
	assert.Equal("E2", NoteDefinition{"E", -12}.Name())
}

func TestMIDINote(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(60), NoteDefinition{"C", 0}.MIDINote())
	assert.Equal(uint8(67), NoteDefinition{"G", 4}.MIDINote())
	assert.Equal(uint8(79), NoteDefinition{"G", 11}.MIDINote())
	assert.Equal(uint8(59), NoteDefinition{"B", -1}.MIDINote())
	assert.Equal(uint8(40), NoteDefinition{"E", -12}.MIDINote())
}

func TestClef(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(ClefTreble, NoteDefinition{"D", 1}.Clef())
	assert.Equal(ClefMiddle, NoteDefinition{"C", 0}.Clef())
	assert.Equal(ClefBass, NoteDefinition{"B", -1}.Clef())
	assert.Equal("bass", ClefBass.String())
}

func TestIsPitchName(t *testing.T) {
	assert := assert.New(t)
	assert.True(IsPitchName("A"))
	assert.False(IsPitchName("a"))
	assert.False(IsPitchName("H"))
	assert.False(IsPitchName("C#"))
	assert.False(IsPitchName(""))
}

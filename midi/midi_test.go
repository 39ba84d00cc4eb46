package midi

import (
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPitchName(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("C", PitchName(60))
	assert.Equal("C#", PitchName(61))
	assert.Equal("G", PitchName(67))
	assert.Equal("B", PitchName(59))
	assert.Equal("E", PitchName(40))
	assert.Equal("A", PitchName(21))
	assert.Equal(4, Octave(60))
	assert.Equal(2, Octave(40))
}

func TestClassifyPort(t *testing.T) {
	cases := []struct {
		name, filter string
		want         ControllerType
	}{
		{"Launchpad X LPX MIDI", "", ControllerLaunchpad},
		{"Launchpad X LPX DAW", "", ControllerUnknown},
		{"Midi Through Port-0", "", ControllerUnknown},
		{"Digital Piano MIDI 1", "", ControllerKeyboard},
		{"Digital Piano MIDI 1", "piano", ControllerKeyboard},
		{"Arturia KeyStep 32", "piano", ControllerUnknown},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyPort(c.name, c.filter), c.name)
	}
}

func TestLaunchpadNoteMapping(t *testing.T) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 9; col++ {
			r, c := noteToRowCol(rowColToNote(row, col))
			assert.Equal(t, row, r)
			assert.Equal(t, col, c)
		}
	}
	r, c := noteToRowCol(95)
	assert.Equal(t, 8, r)
	assert.Equal(t, 4, c)
	r, _ = noteToRowCol(5)
	assert.Equal(t, -1, r)
	r, c = ccToRowCol(91)
	assert.Equal(t, 8, r)
	assert.Equal(t, 0, c)
}

func TestMapRGBToLaunchpad(t *testing.T) {
	assert.Equal(t, uint8(0), mapRGBToLaunchpad([3]uint8{0, 0, 0}))
	assert.Equal(t, uint8(21), mapRGBToLaunchpad([3]uint8{0, 250, 10}))
	assert.Equal(t, uint8(5), mapRGBToLaunchpad([3]uint8{250, 0, 0}))
	assert.Equal(t, uint8(119), mapRGBToLaunchpad([3]uint8{255, 255, 255}))
}

func TestKeyboardForwardsNoteOn(t *testing.T) {
	kb, err := NewKeyboardController("test", nil)
	require.NoError(t, err)

	kb.handle(gomidi.NoteOn(0, 64, 90), 0)
	kb.handle(gomidi.NoteOn(0, 65, 0), 0) // running-status note off
	kb.handle(gomidi.NoteOff(0, 64), 0)

	ev := <-kb.NoteEvents()
	assert.Equal(t, NoteEvent{Note: 64, Velocity: 90}, ev)
	assert.Len(t, kb.NoteEvents(), 0)

	assert.Equal(t, ControllerKeyboard, kb.Type())
	assert.NoError(t, kb.SetLEDBatch([]LEDUpdate{{Row: 0, Col: 0}}))
	require.NoError(t, kb.Close())
}

func TestLaunchpadForwardsPads(t *testing.T) {
	lp, err := NewLaunchpadController("test", nil, nil)
	require.NoError(t, err)

	lp.handle(gomidi.NoteOn(0, 13, 127), 0)
	lp.handle(gomidi.ControlChange(0, 93, 127), 0)
	lp.handle(gomidi.ControlChange(0, 93, 0), 0)

	assert.Equal(t, PadEvent{Row: 0, Col: 2, Velocity: 127}, <-lp.PadEvents())
	assert.Equal(t, PadEvent{Row: 8, Col: 2, Velocity: 127}, <-lp.PadEvents())
	assert.Len(t, lp.PadEvents(), 0)
	assert.NoError(t, lp.SetLEDBatch([]LEDUpdate{{Row: 0, Col: 0}}))
	require.NoError(t, lp.Close())
}

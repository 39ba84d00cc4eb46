package midi

var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// PitchName returns the pitch class name of a MIDI key, ignoring the octave.
// Black keys come back as sharps.
func PitchName(note uint8) string {
	return pitchClasses[note%12]
}

// Octave returns the scientific octave of a MIDI key (60 = C4)
func Octave(note uint8) int {
	return int(note)/12 - 1
}

// Package mdtools provides clock-synced performance tools for the
// Elektron MachineDrum (and similar fixed-track MIDI hardware):
// an arpeggiator with recording, a euclidean pitch trigger and a
// bounded parameter randomizer with single-level undo.
//
// The engines are driven by an external MIDI clock (see Clock) and
// emit notes and parameter changes through narrow interfaces
// (NoteSender, ParamWriter), so they can be wired to real ports or
// to test doubles.
package mdtools

const VERSION = "0.1.0"

type note uint8

const (
	C   note = 0
	Cis      = iota
	D
	Dis
	E
	F
	Fis
	G
	Gis
	A
	Ais
	B
)

// Pitch builds a MIDI pitch from a pitch class and an octave,
// C4 = 60. Out-of-range results are clamped.
func Pitch(n note, octave uint8) uint8 {
	return clamp7bit(int(n) + 12*(int(octave)+1))
}

// NoPitch marks an empty slot or "no note sounding".
const NoPitch uint8 = 255

// NoteSender emits notes towards the MIDI transport.
// track selects the target hardware track (0-15).
type NoteSender interface {
	SendNoteOn(track, pitch, velocity uint8) error
	SendNoteOff(track, pitch uint8) error
}

// ParamWriter applies a changed track parameter to the device.
// The call is assumed to be idempotent and never failing in
// practice; errors are still surfaced for diagnostics.
type ParamWriter interface {
	SetTrackParam(track, param, value uint8) error
}

func clamp7bit(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}

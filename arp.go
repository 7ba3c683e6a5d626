package mdtools

import (
	"math/rand"
	"sync"
	"time"
)

// Retrig selects when the arpeggiator resets its playback position.
type Retrig uint8

const (
	RetrigOff Retrig = iota
	RetrigNote
	RetrigBeat
	numRetrigs
)

var retrigNames = [numRetrigs]string{"OFF", "NOTE", "BEAT"}

func (r Retrig) String() string {
	if r >= numRetrigs {
		return "???"
	}
	return retrigNames[r]
}

// NumNotes is the capacity of the held-note set.
const NumNotes = 8

// Arpeggiator captures a chord of held notes and replays it as a
// clock-synced sequence of single notes. It is driven by Tick (one
// call per 16th note) and OnBeat from a Clock, and by NoteOn/NoteOff
// from the input layer.
type Arpeggiator struct {
	mu sync.RWMutex

	// held notes in insertion order
	notes      [NumNotes]uint8
	velocities [NumNotes]uint8
	numNotes   int

	// derived view, sorted ascending by pitch
	ordered     []uint8
	orderedVels []uint8

	seq []step

	style   ArpStyle
	octaves uint8
	speed   uint8 // ticks per playback step, min 1
	times   uint8 // full traversals before going idle, 0 = endless
	retrig  Retrig
	track   uint8

	arpStep      int
	arpCount     int
	speedCounter uint8
	lastPitch    uint8

	rnd *rand.Rand
	out NoteSender
}

// NewArpeggiator returns an arpeggiator writing to out.
func NewArpeggiator(out NoteSender, opts ...ArpOption) *Arpeggiator {
	a := &Arpeggiator{
		out:       out,
		speed:     1,
		lastPitch: NoPitch,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NoteOn adds a held note. A note set that is already full rejects
// the new note. Re-playing a held pitch only updates its velocity.
func (a *Arpeggiator) NoteOn(pitch, velocity uint8) {
	a.mu.Lock()
	for i := 0; i < a.numNotes; i++ {
		if a.notes[i] == pitch {
			a.velocities[i] = velocity
			a.recalc()
			a.mu.Unlock()
			return
		}
	}
	if a.numNotes >= NumNotes {
		a.mu.Unlock()
		return
	}
	a.notes[a.numNotes] = pitch
	a.velocities[a.numNotes] = velocity
	a.numNotes++
	a.recalc()
	retrig := a.retrig == RetrigNote
	if retrig {
		a.retrigger()
	}
	a.mu.Unlock()
}

// NoteOff removes the first held note matching pitch. Unknown
// pitches are ignored.
func (a *Arpeggiator) NoteOff(pitch uint8) {
	a.mu.Lock()
	for i := 0; i < a.numNotes; i++ {
		if a.notes[i] == pitch {
			copy(a.notes[i:], a.notes[i+1:a.numNotes])
			copy(a.velocities[i:], a.velocities[i+1:a.numNotes])
			a.numNotes--
			a.recalc()
			break
		}
	}
	a.mu.Unlock()
}

// recalc rebuilds the ordered view and the playback sequence.
// Caller must hold the lock.
func (a *Arpeggiator) recalc() {
	a.ordered = append(a.ordered[:0], a.notes[:a.numNotes]...)
	a.orderedVels = append(a.orderedVels[:0], a.velocities[:a.numNotes]...)

	// stable insertion sort, ties keep insertion order
	for i := 1; i < len(a.ordered); i++ {
		for j := i; j > 0 && a.ordered[j-1] > a.ordered[j]; j-- {
			a.ordered[j-1], a.ordered[j] = a.ordered[j], a.ordered[j-1]
			a.orderedVels[j-1], a.orderedVels[j] = a.orderedVels[j], a.orderedVels[j-1]
		}
	}

	a.seq = buildSequence(a.ordered, a.orderedVels,
		a.notes[:a.numNotes], a.velocities[:a.numNotes],
		a.style, a.octaves, a.rnd)
	if a.arpStep >= len(a.seq) {
		a.arpStep = 0
	}
}

// Retrigger resets the playback position to the start of the
// sequence.
func (a *Arpeggiator) Retrigger() {
	a.mu.Lock()
	a.retrigger()
	a.mu.Unlock()
}

func (a *Arpeggiator) retrigger() {
	a.arpStep = 0
	a.arpCount = 0
	a.speedCounter = 0
}

// Tick advances the scheduler by one 16th note. It emits the note-off
// of the previous step before the note-on of the next, so identical
// pitches never overlap on the same track.
func (a *Arpeggiator) Tick(counter uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.seq) == 0 || a.numNotes == 0 {
		a.silence()
		return
	}

	a.speedCounter++
	if a.speedCounter < a.speed {
		return
	}
	a.speedCounter = 0

	a.silence()

	if a.times > 0 && a.arpCount >= int(a.times) {
		return
	}

	s := a.seq[a.arpStep]
	a.out.SendNoteOn(a.track, s.pitch, s.velocity)
	a.lastPitch = s.pitch

	a.arpStep++
	if a.arpStep >= len(a.seq) {
		a.arpStep = 0
		a.arpCount++
		if a.style == StyleRandom {
			a.recalc()
		}
	}
}

// OnBeat is called by the clock on every quarter-note boundary.
func (a *Arpeggiator) OnBeat(beat uint32) {
	a.mu.Lock()
	if a.retrig == RetrigBeat {
		a.retrigger()
	}
	a.mu.Unlock()
}

// silence sends the note-off for a still sounding note.
// Caller must hold the lock.
func (a *Arpeggiator) silence() {
	if a.lastPitch != NoPitch {
		a.out.SendNoteOff(a.track, a.lastPitch)
		a.lastPitch = NoPitch
	}
}

// Silence stops the currently sounding note, if any.
func (a *Arpeggiator) Silence() {
	a.mu.Lock()
	a.silence()
	a.mu.Unlock()
}

func (a *Arpeggiator) SetStyle(s ArpStyle) {
	a.mu.Lock()
	if s < numStyles {
		a.style = s
		a.recalc()
	}
	a.mu.Unlock()
}

func (a *Arpeggiator) Style() ArpStyle {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.style
}

func (a *Arpeggiator) SetOctaves(o uint8) {
	a.mu.Lock()
	a.octaves = o
	a.recalc()
	a.mu.Unlock()
}

// SetSpeed sets the number of 16th ticks per playback step.
func (a *Arpeggiator) SetSpeed(speed uint8) {
	a.mu.Lock()
	if speed < 1 {
		speed = 1
	}
	a.speed = speed
	a.mu.Unlock()
}

// SetTimes bounds how many full traversals are played before the
// engine goes idle. 0 plays endlessly.
func (a *Arpeggiator) SetTimes(times uint8) {
	a.mu.Lock()
	a.times = times
	a.mu.Unlock()
}

func (a *Arpeggiator) SetRetrig(r Retrig) {
	a.mu.Lock()
	if r < numRetrigs {
		a.retrig = r
	}
	a.mu.Unlock()
}

func (a *Arpeggiator) SetTrack(track uint8) {
	a.mu.Lock()
	a.track = track
	a.mu.Unlock()
}

// Sequence returns a copy of the current playback pitches.
func (a *Arpeggiator) Sequence() []uint8 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]uint8, len(a.seq))
	for i, s := range a.seq {
		out[i] = s.pitch
	}
	return out
}

// CurrentPitch returns the pitch currently sounding, or NoPitch.
func (a *Arpeggiator) CurrentPitch() uint8 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastPitch
}

// Ordered returns a copy of the held notes sorted ascending.
func (a *Arpeggiator) Ordered() []uint8 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]uint8(nil), a.ordered...)
}

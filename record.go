package mdtools

import "sync"

// RecordSlots is the capacity of the recording buffer.
const RecordSlots = 64

// Recorder wraps an Arpeggiator with a fixed-length step recorder.
// Incoming notes are written into a cyclic pitch buffer and played
// back step by step, independent of the live arpeggiation.
//
// Each step holds a single pitch. Recording over an old step
// overwrites it, but of two simultaneous notes (a chord landing on
// one step) only the first is kept, mirroring the single-slot
// layout of the hardware original.
type Recorder struct {
	mu sync.RWMutex

	arp *Arpeggiator

	pitches    [RecordSlots]uint8
	velocities [RecordSlots]uint8
	length     int
	start      int

	playStep  int
	lastPitch uint8
	track     uint8

	out NoteSender
}

// NewRecorder returns a recorder around arp, writing playback to out
// on the given track.
func NewRecorder(arp *Arpeggiator, out NoteSender, track uint8) *Recorder {
	r := &Recorder{
		arp:       arp,
		out:       out,
		length:    32,
		track:     track % 16,
		lastPitch: NoPitch,
	}
	for i := range r.pitches {
		r.pitches[i] = NoPitch
	}
	return r
}

// Arp exposes the wrapped arpeggiator.
func (r *Recorder) Arp() *Arpeggiator { return r.arp }

// NoteOn records the note at the given position and forwards it to
// the wrapped arpeggiator's note set.
func (r *Recorder) NoteOn(pitch, velocity uint8) {
	r.arp.NoteOn(pitch, velocity)
}

// NoteOff forwards the release to the wrapped arpeggiator.
func (r *Recorder) NoteOff(pitch uint8) {
	r.arp.NoteOff(pitch)
}

// RecordNote writes a pitch into the step buffer at pos,
// overwriting whatever the step held before.
func (r *Recorder) RecordNote(pos int, pitch, velocity uint8) {
	r.mu.Lock()
	idx := r.slot(pos)
	r.pitches[idx] = clamp7bit(int(pitch))
	r.velocities[idx] = velocity
	r.mu.Unlock()
}

// RecordNoteSecond merges a second simultaneous note into the step
// at pos. A step holds a single pitch, so an occupied step keeps its
// first note and the second one is dropped.
func (r *Recorder) RecordNoteSecond(pos int, pitch, velocity uint8) {
	r.mu.Lock()
	idx := r.slot(pos)
	if r.pitches[idx] == NoPitch {
		r.pitches[idx] = clamp7bit(int(pitch))
		r.velocities[idx] = velocity
	}
	r.mu.Unlock()
}

// ClearStep empties the slot at pos.
func (r *Recorder) ClearStep(pos int) {
	r.mu.Lock()
	idx := r.slot(pos)
	r.pitches[idx] = NoPitch
	r.velocities[idx] = 0
	r.mu.Unlock()
}

// Clear empties the whole buffer and rewinds playback.
func (r *Recorder) Clear() {
	r.mu.Lock()
	for i := range r.pitches {
		r.pitches[i] = NoPitch
		r.velocities[i] = 0
	}
	r.playStep = 0
	r.mu.Unlock()
}

// SetLength resizes the playback window (1-64 steps).
func (r *Recorder) SetLength(length int) {
	r.mu.Lock()
	if length < 1 {
		length = 1
	}
	if length > RecordSlots {
		length = RecordSlots
	}
	r.length = length
	r.playStep = r.playStep % length
	r.mu.Unlock()
}

// SetStart rotates the playback window within the buffer.
func (r *Recorder) SetStart(start int) {
	r.mu.Lock()
	r.start = start
	r.mu.Unlock()
}

// PlayNext plays the note recorded at the current playback position
// and advances it. With recording true, the note the wrapped
// arpeggiator is currently sounding is captured into the step before
// it is played, so a running arpeggio can be frozen into the pattern.
func (r *Recorder) PlayNext(recording bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lastPitch != NoPitch {
		r.out.SendNoteOff(r.track, r.lastPitch)
		r.lastPitch = NoPitch
	}

	idx := r.slot(r.playStep)
	r.playStep = (r.playStep + 1) % r.length

	if recording {
		if cur := r.arp.CurrentPitch(); cur != NoPitch && r.pitches[idx] == NoPitch {
			r.pitches[idx] = cur
			r.velocities[idx] = 100
		}
	}

	pitch := r.pitches[idx]
	if pitch == NoPitch {
		return
	}
	vel := r.velocities[idx]
	if vel == 0 {
		vel = 100
	}
	r.out.SendNoteOn(r.track, pitch, vel)
	r.lastPitch = pitch
}

// Tick drives the recorder from the clock, one step per 16th.
func (r *Recorder) Tick(counter uint32) {
	r.PlayNext(false)
}

// slot maps a playback position to a buffer index. Caller must hold
// the lock.
func (r *Recorder) slot(pos int) int {
	n := (pos + r.start) % r.length
	if n < 0 {
		n += r.length
	}
	return n
}

// Pitches returns a copy of the active playback window.
func (r *Recorder) Pitches() []uint8 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]uint8, r.length)
	for i := 0; i < r.length; i++ {
		out[i] = r.pitches[r.slot(i)]
	}
	return out
}

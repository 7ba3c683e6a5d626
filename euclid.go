package mdtools

import (
	"math/rand"
	"sync"
	"time"
)

// EuclidPattern is a rhythmic on/off pattern distributing hits as
// evenly as possible across a fixed number of steps.
type EuclidPattern struct {
	steps  uint8
	hits   uint8
	offset uint8
}

// NewEuclidPattern builds a pattern of hits over steps, rotated by
// offset. steps of 0 falls back to the classic 16.
func NewEuclidPattern(hits, steps, offset uint8) EuclidPattern {
	if steps == 0 {
		steps = 16
	}
	if hits > steps {
		hits = steps
	}
	return EuclidPattern{steps: steps, hits: hits, offset: offset % steps}
}

// IsHit reports whether the pattern fires on the given step counter.
func (p EuclidPattern) IsHit(counter uint32) bool {
	if p.hits == 0 {
		return false
	}
	i := (counter + uint32(p.offset)) % uint32(p.steps)
	return (i*uint32(p.hits))%uint32(p.steps) < uint32(p.hits)
}

// Steps returns the pattern length.
func (p EuclidPattern) Steps() uint8 { return p.steps }

// Hits returns the number of hits per cycle.
func (p EuclidPattern) Hits() uint8 { return p.hits }

// MaxPitches bounds the cyclic pitch buffer of a PitchEuclid.
const MaxPitches = 32

// PitchEuclid fires scale pitches on a euclidean rhythm. On every
// hit it plays the next pitch of a cyclic buffer of scale-derived
// offsets and schedules the note-off noteLength ticks later.
// A noteLength of 0 disables the engine.
type PitchEuclid struct {
	mu sync.RWMutex

	pattern EuclidPattern
	scale   *Scale

	pitches    [MaxPitches]uint8
	pitchesLen int
	pitchesIdx int

	basePitch  uint8
	octaves    uint8
	noteLength uint8
	track      uint8
	muted      bool

	lastPitch  uint8
	lastLength uint8

	rnd *rand.Rand
	out NoteSender
}

// NewPitchEuclid returns a trigger with a 3-over-8 pattern, a four
// note pitch buffer and the first scale of the table, matching the
// classic power-on state.
func NewPitchEuclid(out NoteSender, opts ...EuclidOption) *PitchEuclid {
	p := &PitchEuclid{
		out:        out,
		pattern:    NewEuclidPattern(3, 8, 0),
		scale:      &Scales[0],
		basePitch:  Pitch(C, 4),
		noteLength: 1,
		lastPitch:  NoPitch,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.SetPitchLength(4)
	return p
}

// Tick advances the trigger by one 16th note.
func (p *PitchEuclid) Tick(counter uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lastLength > 0 {
		p.lastLength--
	}

	if p.lastPitch != NoPitch {
		if p.noteLength == 0 || p.lastLength == 0 {
			p.out.SendNoteOff(p.track, p.lastPitch)
			p.lastPitch = NoPitch
		}
	}

	// noteLength 0 disables the trigger entirely
	if p.noteLength == 0 {
		return
	}

	if !p.pattern.IsHit(counter) {
		return
	}

	if p.lastPitch != NoPitch {
		p.out.SendNoteOff(p.track, p.lastPitch)
		p.lastPitch = NoPitch
	}

	pitch := int(p.basePitch) + int(p.pitches[p.pitchesIdx])
	if pitch <= 127 && !p.muted {
		p.out.SendNoteOn(p.track, uint8(pitch), 100)
		p.lastLength = p.noteLength
		p.lastPitch = uint8(pitch)
	}
	p.pitchesIdx = (p.pitchesIdx + 1) % p.pitchesLen
}

// RandomizePitches refills the whole pitch buffer with random draws
// from the current scale.
func (p *PitchEuclid) RandomizePitches() {
	p.mu.Lock()
	for i := 0; i < p.pitchesLen; i++ {
		p.pitches[i] = RandomScalePitch(p.rnd, p.scale, p.octaves)
	}
	p.mu.Unlock()
}

// SetPitchLength resizes the pitch buffer and randomizes it.
func (p *PitchEuclid) SetPitchLength(length int) {
	p.mu.Lock()
	if length < 1 {
		length = 1
	}
	if length > MaxPitches {
		length = MaxPitches
	}
	p.pitchesLen = length
	p.pitchesIdx = p.pitchesIdx % length
	p.mu.Unlock()
	p.RandomizePitches()
}

// SetPattern replaces the rhythm.
func (p *PitchEuclid) SetPattern(pattern EuclidPattern) {
	p.mu.Lock()
	p.pattern = pattern
	p.mu.Unlock()
}

// SetScale selects the scale by index into Scales and rerolls the
// pitch buffer so all offsets are members of the new scale.
func (p *PitchEuclid) SetScale(idx int) {
	p.mu.Lock()
	if idx < 0 || idx >= len(Scales) {
		p.mu.Unlock()
		return
	}
	p.scale = &Scales[idx]
	p.mu.Unlock()
	p.RandomizePitches()
}

// SetNoteLength sets the sustain in ticks. 0 disables the engine.
func (p *PitchEuclid) SetNoteLength(l uint8) {
	p.mu.Lock()
	p.noteLength = l
	p.mu.Unlock()
}

// SetMuted suppresses note-ons while keeping the pitch cursor
// advancing, so unmuting continues in phase.
func (p *PitchEuclid) SetMuted(m bool) {
	p.mu.Lock()
	p.muted = m
	p.mu.Unlock()
}

func (p *PitchEuclid) SetBasePitch(pitch uint8) {
	p.mu.Lock()
	p.basePitch = clamp7bit(int(pitch))
	p.mu.Unlock()
}

func (p *PitchEuclid) SetTrack(track uint8) {
	p.mu.Lock()
	p.track = track
	p.mu.Unlock()
}

// Pitches returns a copy of the active pitch buffer.
func (p *PitchEuclid) Pitches() []uint8 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]uint8(nil), p.pitches[:p.pitchesLen]...)
}

package mdtools

import "math/rand"

// ArpStyle selects the traversal rule that turns the held chord into
// a playback sequence.
type ArpStyle uint8

const (
	StyleUp ArpStyle = iota
	StyleDown
	StyleUpDown
	StyleDownUp
	StyleUpAndDown
	StyleDownAndUp
	StyleConverge
	StyleDiverge
	StyleConAndDiverge
	StylePinkyUp
	StylePinkyUpDown
	StyleThumbUp
	StyleThumbUpDown
	StyleRandom
	StyleRandomOnce
	StyleOrder
	numStyles
)

var styleNames = [numStyles]string{
	"UP",
	"DOWN",
	"UPDOWN",
	"DOWNUP",
	"UP&DOWN",
	"DOWN&UP",
	"CONV",
	"DIV",
	"CON&DIV",
	"PINK UP",
	"PINK UD",
	"THMB UP",
	"THMB UD",
	"RANDOM",
	"RND ONCE",
	"ORDER",
}

func (s ArpStyle) String() string {
	if s >= numStyles {
		return "???"
	}
	return styleNames[s]
}

// MaxArpLen bounds the generated sequence.
const MaxArpLen = 64

// step is one playback entry of the generated sequence.
type step struct {
	pitch    uint8
	velocity uint8
}

// seqBuilder appends steps up to MaxArpLen, clamping pitches.
type seqBuilder struct {
	steps []step
}

func (b *seqBuilder) add(pitch int, velocity uint8) {
	if len(b.steps) >= MaxArpLen {
		return
	}
	b.steps = append(b.steps, step{clamp7bit(pitch), velocity})
}

// expand turns the base notes into the octave-expanded pool:
// one block per octave, each block transposed up 12*octave semitones.
func expand(notes, vels []uint8, octaves uint8) []step {
	pool := make([]step, 0, len(notes)*(int(octaves)+1))
	for oct := 0; oct <= int(octaves); oct++ {
		for i := range notes {
			pool = append(pool, step{clamp7bit(int(notes[i]) + 12*oct), vels[i]})
		}
	}
	return pool
}

func reversed(in []step) []step {
	out := make([]step, len(in))
	for i := range in {
		out[i] = in[len(in)-1-i]
	}
	return out
}

// converge interleaves the pool from the outside in:
// lowest, highest, second-lowest, second-highest, ...
func converge(pool []step) []step {
	out := make([]step, 0, len(pool))
	lo, hi := 0, len(pool)-1
	for lo <= hi {
		out = append(out, pool[lo])
		if lo != hi {
			out = append(out, pool[hi])
		}
		lo++
		hi--
	}
	return out
}

// buildSequence generates the playback sequence for one style.
// ordered holds the held notes sorted ascending by pitch, insertion
// holds them in the order they were played (for StyleOrder).
func buildSequence(ordered, orderedVels, insertion, insertionVels []uint8, style ArpStyle, octaves uint8, rnd *rand.Rand) []step {
	if len(ordered) == 0 {
		return nil
	}

	var b seqBuilder
	pool := expand(ordered, orderedVels, octaves)

	addAll := func(steps []step) {
		for _, s := range steps {
			b.add(int(s.pitch), s.velocity)
		}
	}
	// interior drops the first and last entry, the boundary notes
	// already covered by the adjacent pass.
	interior := func(steps []step) []step {
		if len(steps) <= 2 {
			return nil
		}
		return steps[1 : len(steps)-1]
	}

	switch style {
	case StyleUp:
		addAll(pool)
	case StyleDown:
		addAll(reversed(pool))
	case StyleUpDown:
		addAll(pool)
		addAll(interior(reversed(pool)))
	case StyleDownUp:
		addAll(reversed(pool))
		addAll(interior(pool))
	case StyleUpAndDown:
		addAll(pool)
		addAll(reversed(pool))
	case StyleDownAndUp:
		addAll(reversed(pool))
		addAll(pool)
	case StyleConverge:
		addAll(converge(pool))
	case StyleDiverge:
		addAll(reversed(converge(pool)))
	case StyleConAndDiverge:
		addAll(converge(pool))
		addAll(reversed(converge(pool)))
	case StylePinkyUp:
		if len(pool) == 1 {
			addAll(pool)
			break
		}
		pinky := pool[len(pool)-1]
		for _, s := range pool[:len(pool)-1] {
			b.add(int(s.pitch), s.velocity)
			b.add(int(pinky.pitch), pinky.velocity)
		}
	case StylePinkyUpDown:
		if len(pool) == 1 {
			addAll(pool)
			break
		}
		pinky := pool[len(pool)-1]
		rest := pool[:len(pool)-1]
		for _, s := range append(append([]step{}, rest...), interior(reversed(rest))...) {
			b.add(int(s.pitch), s.velocity)
			b.add(int(pinky.pitch), pinky.velocity)
		}
	case StyleThumbUp:
		if len(pool) == 1 {
			addAll(pool)
			break
		}
		thumb := pool[0]
		for _, s := range pool[1:] {
			b.add(int(thumb.pitch), thumb.velocity)
			b.add(int(s.pitch), s.velocity)
		}
	case StyleThumbUpDown:
		if len(pool) == 1 {
			addAll(pool)
			break
		}
		thumb := pool[0]
		rest := pool[1:]
		for _, s := range append(append([]step{}, rest...), interior(reversed(rest))...) {
			b.add(int(thumb.pitch), thumb.velocity)
			b.add(int(s.pitch), s.velocity)
		}
	case StyleRandom:
		for range pool {
			s := pool[rnd.Intn(len(pool))]
			b.add(int(s.pitch), s.velocity)
		}
	case StyleRandomOnce:
		perm := rnd.Perm(len(pool))
		for _, i := range perm {
			b.add(int(pool[i].pitch), pool[i].velocity)
		}
	case StyleOrder:
		for _, s := range expand(insertion, insertionVels, octaves) {
			b.add(int(s.pitch), s.velocity)
		}
	}

	return b.steps
}

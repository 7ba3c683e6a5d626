package mdtools

import "math/rand"

// ArpOption configures an Arpeggiator at construction time.
type ArpOption func(a *Arpeggiator)

// ArpTrack sets the target track (0-15).
func ArpTrack(track uint8) ArpOption {
	return func(a *Arpeggiator) {
		if track < 16 {
			a.track = track
		}
	}
}

// ArpWithStyle sets the initial traversal style.
func ArpWithStyle(s ArpStyle) ArpOption {
	return func(a *Arpeggiator) {
		if s < numStyles {
			a.style = s
		}
	}
}

// ArpOctaves sets how many additional octaves the sequence spans.
func ArpOctaves(o uint8) ArpOption {
	return func(a *Arpeggiator) {
		a.octaves = o
	}
}

// ArpSpeed sets the number of 16th ticks per playback step.
func ArpSpeed(speed uint8) ArpOption {
	return func(a *Arpeggiator) {
		if speed >= 1 {
			a.speed = speed
		}
	}
}

// ArpTimes bounds the number of full traversals (0 = endless).
func ArpTimes(times uint8) ArpOption {
	return func(a *Arpeggiator) {
		a.times = times
	}
}

// ArpRetrig sets the retrigger mode.
func ArpRetrig(r Retrig) ArpOption {
	return func(a *Arpeggiator) {
		if r < numRetrigs {
			a.retrig = r
		}
	}
}

// ArpRand replaces the random source, mainly for reproducible tests
// of the RANDOM styles.
func ArpRand(rnd *rand.Rand) ArpOption {
	return func(a *Arpeggiator) {
		a.rnd = rnd
	}
}

// EuclidOption configures a PitchEuclid at construction time.
type EuclidOption func(p *PitchEuclid)

// EuclidTrack sets the target track (0-15).
func EuclidTrack(track uint8) EuclidOption {
	return func(p *PitchEuclid) {
		if track < 16 {
			p.track = track
		}
	}
}

// EuclidScale selects the scale by index into Scales.
func EuclidScale(idx int) EuclidOption {
	return func(p *PitchEuclid) {
		if idx >= 0 && idx < len(Scales) {
			p.scale = &Scales[idx]
		}
	}
}

// EuclidBasePitch sets the root pitch the scale offsets are added to.
func EuclidBasePitch(pitch uint8) EuclidOption {
	return func(p *PitchEuclid) {
		p.basePitch = clamp7bit(int(pitch))
	}
}

// EuclidOctaves spreads randomized pitches over additional octaves.
func EuclidOctaves(o uint8) EuclidOption {
	return func(p *PitchEuclid) {
		p.octaves = o
	}
}

// EuclidNoteLength sets the sustain in 16th ticks. 0 disables the
// engine.
func EuclidNoteLength(l uint8) EuclidOption {
	return func(p *PitchEuclid) {
		p.noteLength = l
	}
}

// EuclidRand replaces the random source used for pitch draws.
func EuclidRand(rnd *rand.Rand) EuclidOption {
	return func(p *PitchEuclid) {
		p.rnd = rnd
	}
}

// RandomizerOption configures a Randomizer at construction time.
type RandomizerOption func(r *Randomizer)

// RandomizerTrack sets the initially targeted track (0-15).
func RandomizerTrack(track uint8) RandomizerOption {
	return func(r *Randomizer) {
		if track < 16 {
			r.track = track
		}
	}
}

// RandomizerRand replaces the random source used for the deltas.
func RandomizerRand(rnd *rand.Rand) RandomizerOption {
	return func(r *Randomizer) {
		r.rnd = rnd
	}
}

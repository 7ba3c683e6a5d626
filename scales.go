package mdtools

import "math/rand"

// Scale is an immutable ordered set of semitone offsets from a root
// pitch. Scales are referenced, never copied, by the pitch generators.
type Scale struct {
	Name    string
	Offsets []uint8
}

// Scales is the compiled-in scale table. The order matters: a scale is
// addressed by its index, e.g. from a CLI flag or an encoder position.
var Scales = []Scale{
	{"IONIAN", []uint8{0, 2, 4, 5, 7, 9, 11}},
	{"AEOLIAN", []uint8{0, 2, 3, 5, 7, 8, 10}},

	{"HARM MIN", []uint8{0, 2, 3, 5, 7, 8, 11}},
	{"MEL MIN", []uint8{0, 2, 3, 5, 7, 9, 11}},
	{"LYD DOM", []uint8{0, 2, 4, 6, 7, 9, 10}},

	{"WHOLE", []uint8{0, 2, 4, 6, 8, 10}},
	{"WH-HALF", []uint8{0, 2, 3, 5, 6, 8, 9, 11}},
	{"HALF-WH", []uint8{0, 1, 3, 4, 6, 7, 9, 10}},

	{"BLUES", []uint8{0, 3, 5, 6, 7, 10}},
	{"MAJ PENT", []uint8{0, 2, 4, 7, 9}},
	{"MIN PENT", []uint8{0, 3, 5, 7, 10}},
	{"SUS PENT", []uint8{0, 2, 5, 7, 10}},
	{"IN SEN", []uint8{0, 1, 5, 7, 10}},

	{"MAJ BEBOP", []uint8{0, 2, 4, 5, 7, 8, 9, 11}},
	{"DOM BEBOP", []uint8{0, 2, 4, 5, 7, 9, 10, 11}},
	{"MIN BEBOP", []uint8{0, 2, 3, 5, 7, 9, 10, 11}},

	{"MAJ ARP", []uint8{0, 4, 7}},
	{"MIN ARP", []uint8{0, 3, 7}},
	{"MAJ7 ARP", []uint8{0, 4, 7, 11}},
	{"DOM7 ARP", []uint8{0, 4, 7, 10}},
	{"MIN7 ARP", []uint8{0, 3, 7, 10}},
}

// RandomScalePitch draws a uniformly random member of the scale,
// spread across octaves+1 octave bands. Draws beyond the MIDI range
// are folded down by whole octaves, so the result always stays a
// scale member.
func RandomScalePitch(rnd *rand.Rand, s *Scale, octaves uint8) uint8 {
	off := int(s.Offsets[rnd.Intn(len(s.Offsets))])
	if octaves > 0 {
		off += 12 * rnd.Intn(int(octaves)+1)
	}
	for off > 127 {
		off -= 12
	}
	return uint8(off)
}

package mdtools_test

import (
	"math/rand"
	"testing"

	"gitlab.com/gomidi/mdtools"
)

func newArp(style mdtools.ArpStyle, octaves uint8, notes ...uint8) *mdtools.Arpeggiator {
	a := mdtools.NewArpeggiator(&captureSender{},
		mdtools.ArpWithStyle(style),
		mdtools.ArpOctaves(octaves),
		mdtools.ArpRand(rand.New(rand.NewSource(1))),
	)
	for _, n := range notes {
		a.NoteOn(n, 100)
	}
	return a
}

func TestStyleSequences(t *testing.T) {
	var tests = []struct {
		style    mdtools.ArpStyle
		octaves  uint8
		notes    []uint8
		expected []uint8
	}{
		{mdtools.StyleUp, 0, []uint8{60, 64, 67}, []uint8{60, 64, 67}},
		{mdtools.StyleDown, 0, []uint8{60, 64, 67}, []uint8{67, 64, 60}},
		{mdtools.StyleUp, 1, []uint8{60, 64}, []uint8{60, 64, 72, 76}},
		{mdtools.StyleDown, 1, []uint8{60, 64}, []uint8{76, 72, 64, 60}},
		{mdtools.StyleUpDown, 0, []uint8{60, 64, 67}, []uint8{60, 64, 67, 64}},
		{mdtools.StyleDownUp, 0, []uint8{60, 64, 67}, []uint8{67, 64, 60, 64}},
		{mdtools.StyleUpAndDown, 0, []uint8{60, 64, 67}, []uint8{60, 64, 67, 67, 64, 60}},
		{mdtools.StyleDownAndUp, 0, []uint8{60, 64, 67}, []uint8{67, 64, 60, 60, 64, 67}},
		{mdtools.StyleConverge, 0, []uint8{60, 62, 64, 67}, []uint8{60, 67, 62, 64}},
		{mdtools.StyleConverge, 0, []uint8{60, 64, 67}, []uint8{60, 67, 64}},
		{mdtools.StyleDiverge, 0, []uint8{60, 62, 64, 67}, []uint8{64, 62, 67, 60}},
		{mdtools.StyleConAndDiverge, 0, []uint8{60, 64, 67}, []uint8{60, 67, 64, 64, 67, 60}},
		{mdtools.StylePinkyUp, 0, []uint8{60, 64, 67}, []uint8{60, 67, 64, 67}},
		{mdtools.StylePinkyUpDown, 0, []uint8{60, 62, 64, 67}, []uint8{60, 67, 62, 67, 64, 67, 62, 67}},
		{mdtools.StyleThumbUp, 0, []uint8{60, 64, 67}, []uint8{60, 64, 60, 67}},
		{mdtools.StyleThumbUpDown, 0, []uint8{60, 62, 64, 67}, []uint8{60, 62, 60, 64, 60, 67, 60, 64}},
	}

	for i, test := range tests {
		a := newArp(test.style, test.octaves, test.notes...)
		got := a.Sequence()
		if !equalU8(got, test.expected) {
			t.Errorf("[%v] %s notes %v: got %v, expected %v",
				i, test.style, test.notes, got, test.expected)
		}
	}
}

func TestStyleOrderKeepsInsertionOrder(t *testing.T) {
	a := newArp(mdtools.StyleOrder, 0, 64, 60, 67)
	if got := a.Sequence(); !equalU8(got, []uint8{64, 60, 67}) {
		t.Errorf("got %v, expected insertion order [64 60 67]", got)
	}
}

func TestOrderedViewIsSorted(t *testing.T) {
	a := newArp(mdtools.StyleOrder, 0, 64, 60, 67)
	if got := a.Ordered(); !equalU8(got, []uint8{60, 64, 67}) {
		t.Errorf("got %v, expected sorted [60 64 67]", got)
	}
}

func TestStyleRandomOnceIsPermutation(t *testing.T) {
	a := newArp(mdtools.StyleRandomOnce, 0, 60, 64, 67)
	got := a.Sequence()
	if len(got) != 3 {
		t.Fatalf("got length %v, expected 3", len(got))
	}
	seen := map[uint8]int{}
	for _, p := range got {
		seen[p]++
	}
	for _, want := range []uint8{60, 64, 67} {
		if seen[want] != 1 {
			t.Errorf("sequence %v is not a permutation of the held notes", got)
		}
	}
	// fixed until the next regeneration
	if again := a.Sequence(); !equalU8(got, again) {
		t.Errorf("sequence changed without regeneration: %v then %v", got, again)
	}
}

func TestStyleRandomDrawsFromHeldNotes(t *testing.T) {
	a := newArp(mdtools.StyleRandom, 0, 60, 64, 67)
	got := a.Sequence()
	if len(got) != 3 {
		t.Fatalf("got length %v, expected 3", len(got))
	}
	for _, p := range got {
		if p != 60 && p != 64 && p != 67 {
			t.Errorf("sequence %v contains a pitch outside the held notes", got)
		}
	}
}

func TestNoteSetRejectsWhenFull(t *testing.T) {
	a := newArp(mdtools.StyleUp, 0, 10, 20, 30, 40, 50, 60, 70, 80)
	a.NoteOn(90, 100) // 9th note, must be rejected
	got := a.Sequence()
	if len(got) != 8 {
		t.Fatalf("got length %v, expected 8", len(got))
	}
	for _, p := range got {
		if p == 90 {
			t.Errorf("rejected note ended up in the sequence: %v", got)
		}
	}
}

func TestEmptyNoteSetYieldsEmptySequence(t *testing.T) {
	a := newArp(mdtools.StyleUp, 0)
	if got := a.Sequence(); len(got) != 0 {
		t.Errorf("got %v, expected empty sequence", got)
	}
}

func TestRemoveNoteShrinksSequence(t *testing.T) {
	a := newArp(mdtools.StyleUp, 0, 60, 64, 67)
	a.NoteOff(64)
	if got := a.Sequence(); !equalU8(got, []uint8{60, 67}) {
		t.Errorf("got %v, expected [60 67]", got)
	}
	a.NoteOff(99) // unknown pitch is a no-op
	if got := a.Sequence(); !equalU8(got, []uint8{60, 67}) {
		t.Errorf("got %v after removing unknown pitch, expected [60 67]", got)
	}
}

func TestSequenceIsCapped(t *testing.T) {
	a := newArp(mdtools.StyleUpAndDown, 7, 10, 20, 30, 40, 50, 60, 70, 80)
	if got := a.Sequence(); len(got) > mdtools.MaxArpLen {
		t.Errorf("sequence length %v exceeds cap %v", len(got), mdtools.MaxArpLen)
	}
}

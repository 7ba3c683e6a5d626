package mdtools_test

import (
	"testing"

	"gitlab.com/gomidi/mdtools"
)

func tick(a *mdtools.Arpeggiator, n int) {
	for i := 0; i < n; i++ {
		a.Tick(uint32(i))
	}
}

func TestSchedulerWalksSequence(t *testing.T) {
	out := &captureSender{}
	a := mdtools.NewArpeggiator(out, mdtools.ArpWithStyle(mdtools.StyleUp))
	a.NoteOn(60, 100)
	a.NoteOn(64, 110)
	a.NoteOn(67, 120)

	tick(a, 4)

	expected := []noteEvent{
		{on: true, pitch: 60, velocity: 100},
		{on: false, pitch: 60},
		{on: true, pitch: 64, velocity: 110},
		{on: false, pitch: 64},
		{on: true, pitch: 67, velocity: 120},
		{on: false, pitch: 67},
		{on: true, pitch: 60, velocity: 100}, // wrapped around
	}
	if len(out.events) != len(expected) {
		t.Fatalf("got %v events, expected %v:\n%v", len(out.events), len(expected), out.events)
	}
	for i := range expected {
		if out.events[i] != expected[i] {
			t.Errorf("event %v: got %v, expected %v", i, out.events[i], expected[i])
		}
	}
}

func TestSchedulerNoteOffBeforeNoteOn(t *testing.T) {
	out := &captureSender{}
	a := mdtools.NewArpeggiator(out, mdtools.ArpWithStyle(mdtools.StyleUp))
	a.NoteOn(60, 100)
	a.NoteOn(64, 100)

	tick(a, 8)

	sounding := false
	for i, e := range out.events {
		if e.on && sounding {
			t.Fatalf("event %v: note-on while previous note still sounding:\n%v", i, out.events)
		}
		sounding = e.on
	}
}

func TestSchedulerSpeedDividesTicks(t *testing.T) {
	out := &captureSender{}
	a := mdtools.NewArpeggiator(out,
		mdtools.ArpWithStyle(mdtools.StyleUp), mdtools.ArpSpeed(2))
	a.NoteOn(60, 100)
	a.NoteOn(64, 100)

	tick(a, 8) // 8 ticks at speed 2 = 4 playback steps

	if got := out.pitches(); !equalU8(got, []uint8{60, 64, 60, 64}) {
		t.Errorf("got %v, expected [60 64 60 64]", got)
	}
}

func TestSchedulerTimesGoesIdle(t *testing.T) {
	out := &captureSender{}
	a := mdtools.NewArpeggiator(out,
		mdtools.ArpWithStyle(mdtools.StyleUp), mdtools.ArpTimes(1))
	a.NoteOn(60, 100)
	a.NoteOn(64, 100)

	tick(a, 10)

	if got := out.pitches(); !equalU8(got, []uint8{60, 64}) {
		t.Errorf("got %v, expected one traversal [60 64]", got)
	}
	// the final note must have been released
	last := out.events[len(out.events)-1]
	if last.on {
		t.Errorf("idle engine left a note sounding: %v", out.events)
	}
}

func TestSchedulerIdleWithoutNotes(t *testing.T) {
	out := &captureSender{}
	a := mdtools.NewArpeggiator(out, mdtools.ArpWithStyle(mdtools.StyleUp))

	tick(a, 8)

	if len(out.events) != 0 {
		t.Errorf("playback without held notes emitted %v", out.events)
	}
}

func TestRetriggerResetsPosition(t *testing.T) {
	out := &captureSender{}
	a := mdtools.NewArpeggiator(out, mdtools.ArpWithStyle(mdtools.StyleUp))
	a.NoteOn(60, 100)
	a.NoteOn(64, 100)
	a.NoteOn(67, 100)

	tick(a, 2) // 60, 64
	a.Retrigger()
	tick(a, 2) // 60, 64 again

	if got := out.pitches(); !equalU8(got, []uint8{60, 64, 60, 64}) {
		t.Errorf("got %v, expected [60 64 60 64]", got)
	}
}

func TestRetrigNoteRestartsOnNewNote(t *testing.T) {
	out := &captureSender{}
	a := mdtools.NewArpeggiator(out,
		mdtools.ArpWithStyle(mdtools.StyleUp), mdtools.ArpRetrig(mdtools.RetrigNote))
	a.NoteOn(60, 100)
	a.NoteOn(64, 100)

	tick(a, 2) // 60, 64
	a.NoteOn(67, 100)
	tick(a, 2) // restarted: 60, 64

	if got := out.pitches(); !equalU8(got, []uint8{60, 64, 60, 64}) {
		t.Errorf("got %v, expected [60 64 60 64]", got)
	}
}

func TestRetrigBeatRestartsOnBeat(t *testing.T) {
	out := &captureSender{}
	a := mdtools.NewArpeggiator(out,
		mdtools.ArpWithStyle(mdtools.StyleUp), mdtools.ArpRetrig(mdtools.RetrigBeat))
	a.NoteOn(60, 100)
	a.NoteOn(64, 100)
	a.NoteOn(67, 100)

	tick(a, 2) // 60, 64
	a.OnBeat(1)
	tick(a, 2) // 60, 64 again

	if got := out.pitches(); !equalU8(got, []uint8{60, 64, 60, 64}) {
		t.Errorf("got %v, expected [60 64 60 64]", got)
	}
}

func TestReleasingAllNotesSilences(t *testing.T) {
	out := &captureSender{}
	a := mdtools.NewArpeggiator(out, mdtools.ArpWithStyle(mdtools.StyleUp))
	a.NoteOn(60, 100)

	a.Tick(0)
	a.NoteOff(60)
	a.Tick(1)

	expected := []noteEvent{
		{on: true, pitch: 60, velocity: 100},
		{on: false, pitch: 60},
	}
	if len(out.events) != len(expected) {
		t.Fatalf("got %v, expected %v", out.events, expected)
	}
	for i := range expected {
		if out.events[i] != expected[i] {
			t.Errorf("event %v: got %v, expected %v", i, out.events[i], expected[i])
		}
	}
}

func TestArpTrackIsForwarded(t *testing.T) {
	out := &captureSender{}
	a := mdtools.NewArpeggiator(out,
		mdtools.ArpWithStyle(mdtools.StyleUp), mdtools.ArpTrack(5))
	a.NoteOn(60, 100)

	a.Tick(0)

	if len(out.events) != 1 || out.events[0].track != 5 {
		t.Errorf("got %v, expected note on track 5", out.events)
	}
}

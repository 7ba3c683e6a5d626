package mdtools

import (
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi"
	"gitlab.com/gomidi/midi/writer"
)

// Device adapts a midi.Out port to the NoteSender and ParamWriter
// interfaces. Tracks map to MIDI channels, parameters map to
// control changes 16-39 on the track's channel.
type Device struct {
	mu sync.Mutex
	wr *writer.Writer
}

// NewDevice returns a device adapter writing to the given port.
func NewDevice(out midi.Out) (*Device, error) {
	if !out.IsOpen() {
		return nil, fmt.Errorf("midi out port no %v (%s) is not opened, please open before wiring it", out.Number(), out.String())
	}
	return &Device{wr: writer.New(out)}, nil
}

func (d *Device) SendNoteOn(track, pitch, velocity uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.wr.SetChannel(track % 16)
	return writer.NoteOn(d.wr, pitch, velocity)
}

func (d *Device) SendNoteOff(track, pitch uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.wr.SetChannel(track % 16)
	return writer.NoteOff(d.wr, pitch)
}

func (d *Device) SetTrackParam(track, param, value uint8) error {
	if param >= NumParams {
		return fmt.Errorf("param index %v out of range", param)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.wr.SetChannel(track % 16)
	return writer.ControlChange(d.wr, 16+param, value)
}

// Silence sends note-offs for everything sounding on the channel
// (-1 = all channels).
func (d *Device) Silence(channel int8) {
	d.mu.Lock()
	d.wr.Silence(channel, false)
	d.mu.Unlock()
}

package mdtools

import (
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi"
	"gitlab.com/gomidi/midi/midimessage/channel"
	"gitlab.com/gomidi/midi/midimessage/realtime"
	"gitlab.com/gomidi/midi/reader"
)

// Ticker receives one callback per 16th note with a monotonically
// increasing tick counter.
type Ticker interface {
	Tick(counter uint32)
}

// BeatListener receives one callback per quarter-note boundary.
type BeatListener interface {
	OnBeat(beat uint32)
}

// NoteReceiver consumes note events from the input layer.
type NoteReceiver interface {
	NoteOn(pitch, velocity uint8)
	NoteOff(pitch uint8)
}

// Clock drives the engines from an external MIDI clock. It listens
// to a midi.In port, derives 16th ticks from realtime.TimingClock
// (24 PPQN, one tick every 6 clocks, one beat every 24) and routes
// channel note events to the registered receivers.
//
// Start resets the counters, Stop pauses dispatch and Continue
// resumes it. Without any transport message the clock counts from
// the first TimingClock received.
type Clock struct {
	mu sync.RWMutex

	in        midi.In
	channelIn int8 // -1 = all channels

	tickers   []Ticker
	beats     []BeatListener
	receivers []NoteReceiver

	clocks  uint32
	running bool

	messages chan midi.Message
	done     chan struct{}
}

// NewClock returns a clock reading from the given port. channelIn
// filters the note events (-1 accepts all channels).
func NewClock(in midi.In, channelIn int8) *Clock {
	return &Clock{
		in:        in,
		channelIn: channelIn,
		running:   true,
		messages:  make(chan midi.Message, 100),
		done:      make(chan struct{}),
	}
}

// AddTicker registers a 16th-note callback.
func (c *Clock) AddTicker(t Ticker) {
	c.mu.Lock()
	c.tickers = append(c.tickers, t)
	c.mu.Unlock()
}

// AddBeatListener registers a quarter-note callback.
func (c *Clock) AddBeatListener(b BeatListener) {
	c.mu.Lock()
	c.beats = append(c.beats, b)
	c.mu.Unlock()
}

// AddNoteReceiver registers a consumer for incoming note events.
func (c *Clock) AddNoteReceiver(r NoteReceiver) {
	c.mu.Lock()
	c.receivers = append(c.receivers, r)
	c.mu.Unlock()
}

// Run starts listening on the input port. It returns immediately;
// dispatch happens on an internal goroutine.
func (c *Clock) Run() error {
	if !c.in.IsOpen() {
		return fmt.Errorf("midi in port no %v (%s) is not opened, please open before calling Run", c.in.Number(), c.in.String())
	}

	go func() {
		for {
			select {
			case <-c.done:
				return
			case msg := <-c.messages:
				c.handleMessage(msg)
			}
		}
	}()

	rd := reader.New(
		reader.NoLogger(),
		reader.Each(func(p *reader.Position, msg midi.Message) {
			select {
			case c.messages <- msg:
			case <-c.done:
			}
		}),
	)
	go rd.ListenTo(c.in)
	return nil
}

// Close stops listening and shuts down the dispatch loop.
func (c *Clock) Close() error {
	err := c.in.StopListening()
	close(c.done)
	return err
}

// Ticks returns the number of 16th ticks dispatched so far.
func (c *Clock) Ticks() uint32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clocks / 6
}

func (c *Clock) handleMessage(msg midi.Message) {
	switch msg {
	case realtime.Start:
		c.mu.Lock()
		c.clocks = 0
		c.running = true
		c.mu.Unlock()
		return
	case realtime.Continue:
		c.mu.Lock()
		c.running = true
		c.mu.Unlock()
		return
	case realtime.Stop:
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		return
	case realtime.TimingClock:
		c.onClock()
		return
	}

	chMsg, isCh := msg.(channel.Message)
	if !isCh {
		return
	}
	if c.channelIn >= 0 && uint8(c.channelIn) != chMsg.Channel() {
		return
	}

	switch v := msg.(type) {
	case channel.NoteOn:
		c.mu.RLock()
		receivers := c.receivers
		c.mu.RUnlock()
		for _, r := range receivers {
			if v.Velocity() > 0 {
				r.NoteOn(v.Key(), v.Velocity())
			} else {
				r.NoteOff(v.Key())
			}
		}
	case channel.NoteOff:
		c.noteOff(v.Key())
	case channel.NoteOffVelocity:
		c.noteOff(v.Key())
	}
}

func (c *Clock) noteOff(key uint8) {
	c.mu.RLock()
	receivers := c.receivers
	c.mu.RUnlock()
	for _, r := range receivers {
		r.NoteOff(key)
	}
}

// onClock advances the raw 24 PPQN counter. Beat listeners fire
// before tickers so a beat retrigger takes effect on the same tick.
func (c *Clock) onClock() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	clocks := c.clocks
	c.clocks++
	tickers := c.tickers
	beats := c.beats
	c.mu.Unlock()

	if clocks%6 != 0 {
		return
	}
	if clocks%24 == 0 {
		for _, b := range beats {
			b.OnBeat(clocks / 24)
		}
	}
	tick := clocks / 6
	for _, t := range tickers {
		t.Tick(tick)
	}
}

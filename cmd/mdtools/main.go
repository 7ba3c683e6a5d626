package main

import (
	"fmt"
	"os"
	"os/signal"

	driver "gitlab.com/gomidi/rtmididrv"

	"gitlab.com/gomidi/mdtools"
	"gitlab.com/gomidi/midi"
	config "gitlab.com/metakeule/config"
)

var CONFIG = config.MustNew("mdtools", mdtools.VERSION, "clock-synced MachineDrum performance tools (arpeggiator, euclidean pitch trigger, parameter randomizer)")

var (
	inArg      = CONFIG.NewInt32("in", "number of the input device (clock + notes)", config.Required, config.Shortflag('i'))
	outArg     = CONFIG.NewInt32("out", "number of the output device", config.Required, config.Shortflag('o'))
	channelArg = CONFIG.NewInt32("channel", "input channel to listen to (-1 = all)", config.Default(int32(-1)), config.Shortflag('c'))
	trackArg   = CONFIG.NewInt32("track", "target track (0-15)", config.Default(int32(0)), config.Shortflag('t'))
	styleArg   = CONFIG.NewInt32("style", "arp style (0=UP 1=DOWN 2=UPDOWN ... 15=ORDER)", config.Default(int32(0)), config.Shortflag('s'))
	speedArg   = CONFIG.NewInt32("speed", "16th ticks per arp step", config.Default(int32(1)))
	octavesArg = CONFIG.NewInt32("octaves", "additional octaves", config.Default(int32(0)))
	timesArg   = CONFIG.NewInt32("times", "full traversals before idle (0 = endless)", config.Default(int32(0)))
	retrigArg  = CONFIG.NewInt32("retrig", "retrigger mode (0=off 1=note 2=beat)", config.Default(int32(0)))

	euclidArg    = CONFIG.NewBool("euclid", "also run the euclidean pitch trigger", config.Default(false))
	etrackArg    = CONFIG.NewInt32("etrack", "euclid target track (0-15)", config.Default(int32(3)))
	escaleArg    = CONFIG.NewInt32("escale", "euclid scale index", config.Default(int32(0)))
	ehitsArg     = CONFIG.NewInt32("ehits", "euclid hits per cycle", config.Default(int32(3)))
	estepsArg    = CONFIG.NewInt32("esteps", "euclid steps per cycle", config.Default(int32(16)))
	elenArg      = CONFIG.NewInt32("elength", "euclid note length in ticks (0 = disabled)", config.Default(int32(1)))
	ebaseArg     = CONFIG.NewInt32("ebase", "euclid base pitch", config.Default(int32(60)))
	epitchLenArg = CONFIG.NewInt32("epitches", "euclid pitch buffer length", config.Default(int32(4)))
	eoctavesArg  = CONFIG.NewInt32("eoctaves", "euclid octave spread for random pitches", config.Default(int32(0)))

	listCmd = CONFIG.MustCommand("list", "list devices").Relax("in").Relax("out")

	randomizeCmd = CONFIG.MustCommand("randomize", "send one randomized parameter nudge and exit").Relax("in")
	amountArg    = randomizeCmd.NewInt32("amount", "randomization amount (0-127)", config.Default(int32(8)))
	groupArg     = randomizeCmd.NewInt32("group", "selection group (0=FILTER ... 12=ALL)", config.Default(int32(12)))
)

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n\n", err.Error())
		os.Exit(1)
		return
	}
	os.Exit(0)
}

func run() error {
	drv, err := driver.New()
	if err != nil {
		return err
	}
	defer drv.Close()

	err = CONFIG.Run()
	if err != nil {
		fmt.Fprint(os.Stderr, CONFIG.Usage())
		listMIDIDevices(drv)
		return err
	}

	if CONFIG.ActiveCommand() == listCmd {
		listMIDIDevices(drv)
		return nil
	}

	outPort, err := midi.OpenOut(drv, int(outArg.Get()), "")
	if err != nil {
		return err
	}
	defer outPort.Close()

	dev, err := mdtools.NewDevice(outPort)
	if err != nil {
		return err
	}

	if CONFIG.ActiveCommand() == randomizeCmd {
		return randomizeOnce(dev)
	}

	inPort, err := midi.OpenIn(drv, int(inArg.Get()), "")
	if err != nil {
		return err
	}
	defer inPort.Close()

	arp := mdtools.NewArpeggiator(dev,
		mdtools.ArpTrack(uint8(trackArg.Get())),
		mdtools.ArpWithStyle(mdtools.ArpStyle(styleArg.Get())),
		mdtools.ArpSpeed(uint8(speedArg.Get())),
		mdtools.ArpOctaves(uint8(octavesArg.Get())),
		mdtools.ArpTimes(uint8(timesArg.Get())),
		mdtools.ArpRetrig(mdtools.Retrig(retrigArg.Get())),
	)

	clock := mdtools.NewClock(inPort, int8(channelArg.Get()))
	clock.AddTicker(arp)
	clock.AddBeatListener(arp)
	clock.AddNoteReceiver(arp)

	if euclidArg.Get() {
		euclid := mdtools.NewPitchEuclid(dev,
			mdtools.EuclidTrack(uint8(etrackArg.Get())),
			mdtools.EuclidScale(int(escaleArg.Get())),
			mdtools.EuclidBasePitch(uint8(ebaseArg.Get())),
			mdtools.EuclidNoteLength(uint8(elenArg.Get())),
			mdtools.EuclidOctaves(uint8(eoctavesArg.Get())),
		)
		euclid.SetPattern(mdtools.NewEuclidPattern(
			uint8(ehitsArg.Get()), uint8(estepsArg.Get()), 0))
		euclid.SetPitchLength(int(epitchLenArg.Get()))
		clock.AddTicker(euclid)
	}

	err = clock.Run()
	if err != nil {
		return err
	}
	defer clock.Close()
	defer dev.Silence(-1)

	sigchan := make(chan os.Signal, 10)

	// listen for ctrl+c
	go signal.Notify(sigchan, os.Interrupt)

	<-sigchan
	fmt.Println("\n--interrupted!")

	return nil
}

// randomizeOnce nudges the selected parameter group around the
// center position and exits. Without a kit dump there is no stored
// state to undo to, so this is a fire-and-forget gesture.
func randomizeOnce(dev *mdtools.Device) error {
	kit := &mdtools.Kit{}
	track := uint8(trackArg.Get())
	for i := uint8(0); i < mdtools.NumParams; i++ {
		kit.SetParam(track, mdtools.Param(i), 64)
	}

	rnd := mdtools.NewRandomizer(kit, dev, mdtools.RandomizerTrack(track))
	rnd.Randomize(int(amountArg.Get()), mdtools.Selection(groupArg.Get()))
	fmt.Printf("randomized %s on track %v\n", mdtools.Selection(groupArg.Get()), track)
	return nil
}

func listMIDIDevices(d midi.Driver) {
	ins, _ := d.Ins()

	fmt.Print("\n--- MIDI input ports ---\n\n")

	for _, port := range ins {
		fmt.Printf("[%d] %#v\n", port.Number(), port.String())
	}

	outs, _ := d.Outs()

	fmt.Print("\n--- MIDI output ports ---\n\n")

	for _, port := range outs {
		fmt.Printf("[%d] %#v\n", port.Number(), port.String())
	}

	fmt.Println("\n\n")

	return
}

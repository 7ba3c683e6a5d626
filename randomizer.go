package mdtools

import (
	"math/rand"
	"sync"
	"time"
)

// Param identifies one of the 24 parameters of a MachineDrum track.
type Param uint8

const (
	ParamP1 Param = iota
	ParamP2
	ParamP3
	ParamP4
	ParamP5
	ParamP6
	ParamP7
	ParamP8
	ParamAMD
	ParamAMF
	ParamEQF
	ParamEQG
	ParamFLTF
	ParamFLTW
	ParamFLTQ
	ParamSRR
	ParamDIST
	ParamVOL
	ParamPAN
	ParamDEL
	ParamREV
	ParamLFOS
	ParamLFOD
	ParamLFOM

	// NumParams is the size of a track's parameter vector.
	NumParams = 24
)

// ParamSet is a fixed-size set of track parameters.
type ParamSet [NumParams]bool

// NewParamSet builds a set from the given parameters.
func NewParamSet(params ...Param) ParamSet {
	var s ParamSet
	for _, p := range params {
		if p < NumParams {
			s[p] = true
		}
	}
	return s
}

// Union returns the set containing the members of both sets.
func (s ParamSet) Union(o ParamSet) ParamSet {
	for i := range o {
		if o[i] {
			s[i] = true
		}
	}
	return s
}

// Has reports set membership.
func (s ParamSet) Has(p Param) bool {
	return p < NumParams && s[p]
}

// Selection names one of the fixed parameter groups a randomize
// operation can target.
type Selection uint8

const (
	SelectFilter Selection = iota
	SelectAM
	SelectEQ
	SelectEffect
	SelectLowSyn
	SelectUpSyn
	SelectSyn
	SelectLFO
	SelectSends
	SelectDist
	SelectFXLowSyn
	SelectFXSyn
	SelectAll
	numSelections
)

var selectionNames = [numSelections]string{
	"FILTER",
	"AMD",
	"EQ",
	"EFFECT",
	"LOWSYN",
	"UP SYN",
	"SYN",
	"LFO",
	"SENDS",
	"DIST",
	"FX LOW",
	"FX SYN",
	"ALL",
}

func (s Selection) String() string {
	if s >= numSelections {
		return "???"
	}
	return selectionNames[s]
}

// The parameter membership of every selection group. The aggregate
// groups are spelled out as unions of the base ones so the table
// reads like the device documentation.
var (
	filterParams = NewParamSet(ParamFLTF, ParamFLTW, ParamFLTQ)
	amParams     = NewParamSet(ParamAMD, ParamAMF)
	eqParams     = NewParamSet(ParamEQF, ParamEQG)
	lowSynParams = NewParamSet(ParamP5, ParamP6, ParamP7, ParamP8)
	upSynParams  = NewParamSet(ParamP2, ParamP3, ParamP4)
	lfoParams    = NewParamSet(ParamLFOS, ParamLFOD, ParamLFOM)
	sendParams   = NewParamSet(ParamDEL, ParamREV)
	distParams   = NewParamSet(ParamSRR, ParamDIST)
	effectParams = amParams.Union(eqParams).Union(filterParams)
	synParams    = upSynParams.Union(lowSynParams)

	selectionSets = [numSelections]ParamSet{
		SelectFilter:   filterParams,
		SelectAM:       amParams,
		SelectEQ:       eqParams,
		SelectEffect:   effectParams,
		SelectLowSyn:   lowSynParams,
		SelectUpSyn:    upSynParams,
		SelectSyn:      synParams,
		SelectLFO:      lfoParams,
		SelectSends:    sendParams,
		SelectDist:     distParams,
		SelectFXLowSyn: effectParams.Union(lowSynParams),
		SelectFXSyn:    effectParams.Union(synParams),
		SelectAll: effectParams.Union(synParams).Union(lfoParams).
			Union(sendParams).Union(distParams).
			Union(NewParamSet(ParamP1, ParamVOL, ParamPAN)),
	}
)

// SelectionParams returns the parameter set of a selection group.
func SelectionParams(sel Selection) ParamSet {
	if sel >= numSelections {
		return ParamSet{}
	}
	return selectionSets[sel]
}

// NumTracks is the number of addressable tracks of a kit.
const NumTracks = 16

// ParamVector is the bounded parameter state of one track.
type ParamVector [NumParams]uint8

// Kit holds the in-memory parameter state of all tracks.
type Kit struct {
	params [NumTracks]ParamVector
}

// Params returns a copy of the track's parameter vector.
func (k *Kit) Params(track uint8) ParamVector {
	return k.params[track%NumTracks]
}

// SetParam sets a single in-memory parameter, clamped to 0-127.
func (k *Kit) SetParam(track uint8, p Param, value uint8) {
	if p >= NumParams {
		return
	}
	k.params[track%NumTracks][p] = clamp7bit(int(value))
}

// Randomizer perturbs a bounded subset of a track's parameters and
// can undo the last perturbation. The undo slot is one level deep:
// a second Randomize before Undo discards the earlier snapshot for
// good, and switching tracks discards it as well.
type Randomizer struct {
	mu sync.Mutex

	kit   *Kit
	track uint8

	undo      ParamVector
	undoValid bool

	rnd *rand.Rand
	out ParamWriter
}

// NewRandomizer returns a randomizer operating on kit and writing
// changed parameters through to out.
func NewRandomizer(kit *Kit, out ParamWriter, opts ...RandomizerOption) *Randomizer {
	r := &Randomizer{
		kit: kit,
		out: out,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetTrack switches the target track and clears the undo slot.
func (r *Randomizer) SetTrack(track uint8) {
	r.mu.Lock()
	r.track = track % NumTracks
	r.undoValid = false
	r.mu.Unlock()
}

// Track returns the currently targeted track.
func (r *Randomizer) Track() uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.track
}

// Randomize adds a uniform random delta from [-amount, amount] to
// every parameter of the selection group, clamped to 0-127, and
// writes the changed values through to the device. An amount of 0 is
// a no-op and leaves the undo slot untouched.
func (r *Randomizer) Randomize(amount int, sel Selection) {
	if amount <= 0 || sel >= numSelections {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	set := selectionSets[sel]

	r.undo = r.kit.params[r.track]
	r.undoValid = true

	for i := Param(0); i < NumParams; i++ {
		if !set.Has(i) {
			continue
		}
		v := int(r.kit.params[r.track][i])
		v += r.rnd.Intn(2*amount+1) - amount
		pv := clamp7bit(v)
		r.kit.params[r.track][i] = pv
		r.out.SetTrackParam(r.track, uint8(i), pv)
	}
}

// Undo restores the parameter vector captured by the last Randomize
// and pushes every parameter back to the device. It reports false,
// without touching anything, when no snapshot is held.
func (r *Randomizer) Undo() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.undoValid {
		return false
	}

	r.kit.params[r.track] = r.undo
	r.undoValid = false
	for i := Param(0); i < NumParams; i++ {
		r.out.SetTrackParam(r.track, uint8(i), r.kit.params[r.track][i])
	}
	return true
}

package synth

import "math"

// ----- Pan ----- //

// pannedVolume maps a pan position in [-500,500] onto an equal-power stereo
// gain pair, saturating to hard left/right outside the range.
func pannedVolume(pan float64) StereoValue {
	if pan <= -500 {
		return StereoValue{1, 0}
	}
	if pan >= 500 {
		return StereoValue{0, 1}
	}
	const f = math.Pi / 2000
	return StereoValue{math.Sin(f * (500 - pan)), math.Sin(f * (500 + pan))}
}

// ----- Voice ----- //

// Voice renders one sounding note bound to one sample region. A voice is
// driven by a single caller: Update once per output sample, controller
// notifications between ticks, Render as a pure query. Once the volume
// envelope finishes the voice is inert and must be reclaimed, never reused.
type Voice struct {
	noteID    uint64
	actualKey uint8
	key       int16 // effective key, possibly generator-overridden
	velocity  int16

	generators  GeneratorSet
	modulators  []Modulator
	modulations [generatorCount]float64

	buffer      []int16
	samplePitch float64
	sampleMode  SampleMode
	start       int
	end         int
	startLoop   int
	endLoop     int

	phase            fixedPoint
	deltaPhase       fixedPoint
	deltaPhaseFactor float64
	voicePitch       float64
	deltaTime        float64 // seconds per tick

	volume   StereoValue
	released bool

	volEnv Envelope
	modEnv Envelope
	vibLFO LFO
	modLFO LFO
}

// initGenerators are resolved once at construction so the voice starts with
// pan, both LFOs, both envelopes and tuning fully consistent.
var initGenerators = []Generator{
	GenPan,
	GenDelayModLFO,
	GenFreqModLFO,
	GenDelayVibLFO,
	GenFreqVibLFO,
	GenDelayModEnv,
	GenAttackModEnv,
	GenHoldModEnv,
	GenDecayModEnv,
	GenSustainModEnv,
	GenReleaseModEnv,
	GenDelayVolEnv,
	GenAttackVolEnv,
	GenHoldVolEnv,
	GenDecayVolEnv,
	GenSustainVolEnv,
	GenReleaseVolEnv,
	GenCoarseTune,
}

// NewVoice builds a voice from pre-validated snapshots. Key and velocity
// generator overrides apply only when strictly positive; sample boundaries
// are adjusted by their coarse (x32768) and fine offset generator pairs.
func NewVoice(noteID uint64, outputRate float64, sample *Sample, generators GeneratorSet,
	modParams []ModulatorParams, key, velocity uint8) *Voice {

	v := &Voice{
		noteID:     noteID,
		actualKey:  key,
		generators: generators,
		buffer:     sample.Buffer,
		volume:     StereoValue{1, 1},
		deltaTime:  1 / outputRate,
	}

	if overridden := generators.GetOrDefault(GenKeynum); overridden > 0 {
		v.key = overridden
	} else {
		v.key = int16(key)
	}
	if overridden := generators.GetOrDefault(GenVelocity); overridden > 0 {
		v.velocity = overridden
	} else {
		v.velocity = int16(velocity)
	}

	rootKey := sample.Key
	if overridden := generators.GetOrDefault(GenOverridingRootKey); overridden > 0 {
		rootKey = overridden
	}
	v.samplePitch = float64(rootKey) - 0.01*float64(sample.Correction)

	v.sampleMode = SampleMode(generators.GetOrDefault(GenSampleModes))
	v.start = sample.Start +
		32768*int(generators.GetOrDefault(GenStartAddrsCoarseOffset)) +
		int(generators.GetOrDefault(GenStartAddrsOffset))
	v.end = sample.End +
		32768*int(generators.GetOrDefault(GenEndAddrsCoarseOffset)) +
		int(generators.GetOrDefault(GenEndAddrsOffset))
	v.startLoop = sample.StartLoop +
		32768*int(generators.GetOrDefault(GenStartloopAddrsCoarseOffset)) +
		int(generators.GetOrDefault(GenStartloopAddrsOffset))
	v.endLoop = sample.EndLoop +
		32768*int(generators.GetOrDefault(GenEndloopAddrsCoarseOffset)) +
		int(generators.GetOrDefault(GenEndloopAddrsOffset))
	v.phase = fixedPointFromInt(v.start)

	v.deltaPhaseFactor = 1 / keyToHertz(v.samplePitch) * sample.SampleRate / outputRate

	v.modulators = make([]Modulator, 0, len(modParams))
	for _, p := range modParams {
		v.modulators = append(v.modulators, NewModulator(p))
	}

	v.UpdateSFController(CtrlNoteOnVelocity, int16(velocity))
	v.UpdateSFController(CtrlNoteOnKeyNumber, int16(key))
	v.UpdateSFController(CtrlPitchWheelSensitivity, 2)

	for _, g := range initGenerators {
		v.UpdateModulatedParams(g)
	}
	return v
}

// NoteID returns the note correlation id the voice was created with.
func (v *Voice) NoteID() uint64 {
	return v.noteID
}

// ActualKey returns the originally struck key, ignoring any override.
func (v *Voice) ActualKey() uint8 {
	return v.actualKey
}

// ExclusiveClass returns the note-choking group id.
func (v *Voice) ExclusiveClass() int16 {
	return int16(v.modulatedGenerator(GenExclusiveClass))
}

// Update advances the voice by one tick: move the phase, apply the loop
// policy, advance envelopes and LFOs, then fix the phase increment for the
// next tick from the current pitch. The pitch used to render tick N is the
// one computed at the end of tick N-1.
func (v *Voice) Update() {
	if v.volEnv.IsFinished() {
		return
	}

	v.phase += v.deltaPhase

	switch v.sampleMode {
	case SampleModeLooped:
		if v.phase.integerPart() > v.endLoop-1 {
			if v.released {
				v.volEnv.Finish()
				return
			}
			v.phase -= fixedPointFromInt(v.endLoop - v.startLoop)
		}
	case SampleModeLoopedWithRemainder:
		if v.released {
			if v.phase.integerPart() > v.end-1 {
				v.volEnv.Finish()
				return
			}
		} else if v.phase.integerPart() > v.endLoop-1 {
			v.phase -= fixedPointFromInt(v.endLoop - v.startLoop)
		}
	default: // unlooped, unused
		if v.phase.integerPart() > v.end-1 {
			v.volEnv.Finish()
			return
		}
	}

	v.vibLFO.Update(v.deltaTime)
	v.modLFO.Update(v.deltaTime)
	v.volEnv.Update(v.deltaTime)
	v.modEnv.Update(v.deltaTime)

	v.deltaPhase = fixedPointFromFloat(v.deltaPhaseFactor * keyToHertz(v.voicePitch+
		v.modulatedGenerator(GenModEnvToPitch)*v.modEnv.Value()+
		v.modulatedGenerator(GenVibLfoToPitch)*v.vibLFO.Value()+
		v.modulatedGenerator(GenModLfoToPitch)*v.modLFO.Value()))
}

// UpdateSFController notifies every modulator bound to c and re-resolves only
// the destinations those modulators target.
func (v *Voice) UpdateSFController(c GeneralController, value int16) {
	for i := range v.modulators {
		m := &v.modulators[i]
		if m.IsSourceSFController(c) {
			m.UpdateSFController(c, value)
			v.UpdateModulatedParams(m.Destination())
		}
	}
}

// UpdateMIDIController notifies every modulator bound to MIDI CC cc and
// re-resolves only the destinations those modulators target.
func (v *Voice) UpdateMIDIController(cc, value uint8) {
	for i := range v.modulators {
		m := &v.modulators[i]
		if m.IsSourceMIDIController(cc) {
			m.UpdateMIDIController(cc, value)
			v.UpdateModulatedParams(m.Destination())
		}
	}
}

// OverrideGenerator forces a generator's static value. It does not re-resolve
// dependent parameters; the caller triggers UpdateModulatedParams separately.
func (v *Voice) OverrideGenerator(g Generator, value int16) {
	v.generators.Set(g, value)
}

// Render interpolates the sample buffer at the current phase and applies the
// volume envelope, tremolo and the static pan/attenuation vector. It mutates
// nothing; repeated calls between ticks return identical output.
func (v *Voice) Render() StereoValue {
	if v.volEnv.IsFinished() {
		return StereoValue{}
	}
	i := v.phase.integerPart()
	r := v.phase.fractionalPart()
	j := i + 1
	if j >= len(v.buffer) {
		j = len(v.buffer) - 1
	}
	interpolated := (1-r)*float64(v.buffer[i]) + r*float64(v.buffer[j])
	return v.volume.Scale(v.volEnv.Value() *
		centibelToRatio(v.modulatedGenerator(GenModLfoToVolume)*v.modLFO.Value()) *
		interpolated / math.MaxInt16)
}

// IsSounding reports whether the voice still produces audio. Once false the
// slot can be reclaimed.
func (v *Voice) IsSounding() bool {
	return !v.volEnv.IsFinished()
}

// Release starts the release stage of both envelopes and ends looping for
// the remainder sample mode.
func (v *Voice) Release() {
	v.released = true
	v.volEnv.Release()
	v.modEnv.Release()
}

// modulatedGenerator is the effective value of g: static snapshot plus the
// resolved modulation sum.
func (v *Voice) modulatedGenerator(g Generator) float64 {
	return float64(v.generators.GetOrDefault(g)) + v.modulations[g]
}

// ----- Modulation Resolution ----- //

// generatorHandlers maps a destination generator to the subsystem that
// depends on it. Destinations without an entry only update the accumulator.
var generatorHandlers = [generatorCount]func(*Voice){
	GenPan:                (*Voice).updateVolume,
	GenInitialAttenuation: (*Voice).updateVolume,

	GenDelayModLFO: func(v *Voice) { v.modLFO.SetDelay(timecentToSecond(v.modulatedGenerator(GenDelayModLFO))) },
	GenFreqModLFO:  func(v *Voice) { v.modLFO.SetFrequency(absoluteCentToHertz(v.modulatedGenerator(GenFreqModLFO))) },
	GenDelayVibLFO: func(v *Voice) { v.vibLFO.SetDelay(timecentToSecond(v.modulatedGenerator(GenDelayVibLFO))) },
	GenFreqVibLFO:  func(v *Voice) { v.vibLFO.SetFrequency(absoluteCentToHertz(v.modulatedGenerator(GenFreqVibLFO))) },

	GenDelayModEnv:   func(v *Voice) { v.modEnv.SetParameter(StageDelay, v.modulatedGenerator(GenDelayModEnv)) },
	GenAttackModEnv:  func(v *Voice) { v.modEnv.SetParameter(StageAttack, v.modulatedGenerator(GenAttackModEnv)) },
	GenSustainModEnv: func(v *Voice) { v.modEnv.SetParameter(StageSustain, v.modulatedGenerator(GenSustainModEnv)) },
	GenReleaseModEnv: func(v *Voice) { v.modEnv.SetParameter(StageRelease, v.modulatedGenerator(GenReleaseModEnv)) },

	GenHoldModEnv:          (*Voice).updateModEnvHold,
	GenKeynumToModEnvHold:  (*Voice).updateModEnvHold,
	GenDecayModEnv:         (*Voice).updateModEnvDecay,
	GenKeynumToModEnvDecay: (*Voice).updateModEnvDecay,

	GenDelayVolEnv:   func(v *Voice) { v.volEnv.SetParameter(StageDelay, v.modulatedGenerator(GenDelayVolEnv)) },
	GenAttackVolEnv:  func(v *Voice) { v.volEnv.SetParameter(StageAttack, v.modulatedGenerator(GenAttackVolEnv)) },
	GenSustainVolEnv: func(v *Voice) { v.volEnv.SetParameter(StageSustain, v.modulatedGenerator(GenSustainVolEnv)) },
	GenReleaseVolEnv: func(v *Voice) { v.volEnv.SetParameter(StageRelease, v.modulatedGenerator(GenReleaseVolEnv)) },

	GenHoldVolEnv:          (*Voice).updateVolEnvHold,
	GenKeynumToVolEnvHold:  (*Voice).updateVolEnvHold,
	GenDecayVolEnv:         (*Voice).updateVolEnvDecay,
	GenKeynumToVolEnvDecay: (*Voice).updateVolEnvDecay,

	GenCoarseTune:  (*Voice).updatePitch,
	GenFineTune:    (*Voice).updatePitch,
	GenScaleTuning: (*Voice).updatePitch,
	GenPitch:       (*Voice).updatePitch,
}

// UpdateModulatedParams recomputes the modulation sum for destination from
// exactly the modulators bound to it, then reconfigures the dependent
// subsystem. Only destinations that actually changed need to be passed here,
// so controller-driven work is bounded by the affected modulators.
func (v *Voice) UpdateModulatedParams(destination Generator) {
	if destination < 0 || destination >= generatorCount {
		return
	}
	sum := 0.0
	for i := range v.modulators {
		m := &v.modulators[i]
		if m.Destination() == destination {
			sum += m.Value()
		}
	}
	v.modulations[destination] = sum
	if handler := generatorHandlers[destination]; handler != nil {
		handler(v)
	}
}

func (v *Voice) updateVolume() {
	attenuation := 0.4*float64(v.generators.GetOrDefault(GenInitialAttenuation)) +
		v.modulations[GenInitialAttenuation]
	v.volume = pannedVolume(v.modulatedGenerator(GenPan)).Scale(centibelToRatio(attenuation))
}

func (v *Voice) updateModEnvHold() {
	v.modEnv.SetParameter(StageHold, v.modulatedGenerator(GenHoldModEnv)+
		v.modulatedGenerator(GenKeynumToModEnvHold)*(60-float64(v.key)))
}

func (v *Voice) updateModEnvDecay() {
	v.modEnv.SetParameter(StageDecay, v.modulatedGenerator(GenDecayModEnv)+
		v.modulatedGenerator(GenKeynumToModEnvDecay)*(60-float64(v.key)))
}

func (v *Voice) updateVolEnvHold() {
	v.volEnv.SetParameter(StageHold, v.modulatedGenerator(GenHoldVolEnv)+
		v.modulatedGenerator(GenKeynumToVolEnvHold)*(60-float64(v.key)))
}

func (v *Voice) updateVolEnvDecay() {
	v.volEnv.SetParameter(StageDecay, v.modulatedGenerator(GenDecayVolEnv)+
		v.modulatedGenerator(GenKeynumToVolEnvDecay)*(60-float64(v.key)))
}

func (v *Voice) updatePitch() {
	v.voicePitch = v.samplePitch +
		1e-4*v.modulations[GenPitch] +
		0.01*v.modulatedGenerator(GenScaleTuning)*(float64(v.actualKey)-v.samplePitch) +
		v.modulatedGenerator(GenCoarseTune) +
		0.01*v.modulatedGenerator(GenFineTune)
}

package player

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"math"

	"github.com/soundkit/sfvoice/src/synth"
)

// ----- Preset ----- //

// Preset is one playable instrument zone: a sample region, a generator
// snapshot and the modulator bindings handed to every new voice.
type Preset struct {
	Name       string
	Sample     *synth.Sample
	Generators synth.GeneratorSet
	Modulators []synth.ModulatorParams
}

type presetJSON struct {
	Name       string           `json:"name"`
	Generators map[string]int16 `json:"generators"`
}

// generatorNames maps the preset-addressable generators to their ids.
var generatorNames = map[string]synth.Generator{
	"pan":                synth.GenPan,
	"initialAttenuation": synth.GenInitialAttenuation,
	"coarseTune":         synth.GenCoarseTune,
	"fineTune":           synth.GenFineTune,
	"scaleTuning":        synth.GenScaleTuning,
	"sampleModes":        synth.GenSampleModes,
	"exclusiveClass":     synth.GenExclusiveClass,
	"delayVolEnv":        synth.GenDelayVolEnv,
	"attackVolEnv":       synth.GenAttackVolEnv,
	"holdVolEnv":         synth.GenHoldVolEnv,
	"decayVolEnv":        synth.GenDecayVolEnv,
	"sustainVolEnv":      synth.GenSustainVolEnv,
	"releaseVolEnv":      synth.GenReleaseVolEnv,
	"delayModEnv":        synth.GenDelayModEnv,
	"attackModEnv":       synth.GenAttackModEnv,
	"holdModEnv":         synth.GenHoldModEnv,
	"decayModEnv":        synth.GenDecayModEnv,
	"sustainModEnv":      synth.GenSustainModEnv,
	"releaseModEnv":      synth.GenReleaseModEnv,
	"delayVibLFO":        synth.GenDelayVibLFO,
	"freqVibLFO":         synth.GenFreqVibLFO,
	"delayModLFO":        synth.GenDelayModLFO,
	"freqModLFO":         synth.GenFreqModLFO,
	"vibLfoToPitch":      synth.GenVibLfoToPitch,
	"modLfoToPitch":      synth.GenModLfoToPitch,
	"modLfoToVolume":     synth.GenModLfoToVolume,
	"modEnvToPitch":      synth.GenModEnvToPitch,
}

func (p *Preset) applyJSON(data []byte) {
	var j presetJSON
	if err := json.Unmarshal(data, &j); err != nil {
		log.Printf("failed to apply JSON to Preset: %v", err)
		return
	}
	if j.Name != "" {
		p.Name = j.Name
	}
	for name, value := range j.Generators {
		g, ok := generatorNames[name]
		if !ok {
			log.Printf("unknown generator %q in preset", name)
			continue
		}
		p.Generators.Set(g, value)
	}
}

// LoadPreset reads a JSON preset on top of the default one.
func LoadPreset(path string) (*Preset, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := DefaultPreset()
	p.applyJSON(data)
	return p, nil
}

// DefaultPreset is a looped single-cycle sine zone with the standard
// modulator set, so the player makes sound without any preset file.
func DefaultPreset() *Preset {
	const cycle = 64
	buffer := make([]int16, cycle+2)
	for i := range buffer {
		buffer[i] = int16(30000 * math.Sin(2*math.Pi*float64(i%cycle)/cycle))
	}
	sample := &synth.Sample{
		Buffer:     buffer,
		SampleRate: sampleRate,
		// one cycle of 64 samples at 44100 Hz is ~689 Hz, between E5 and F5
		Key:        77,
		Correction: 23,
		Start:      0,
		End:        len(buffer),
		StartLoop:  0,
		EndLoop:    cycle,
	}
	generators := synth.NewGeneratorSet()
	generators.Set(synth.GenSampleModes, int16(synth.SampleModeLooped))
	generators.Set(synth.GenAttackVolEnv, -7000)  // ~17 ms
	generators.Set(synth.GenReleaseVolEnv, -3000) // ~180 ms
	return &Preset{
		Name:       "default",
		Sample:     sample,
		Generators: generators,
		Modulators: synth.DefaultModulatorParams(),
	}
}

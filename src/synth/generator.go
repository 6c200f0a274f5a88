package synth

// ----- Generators ----- //

// Generator identifies one synthesis parameter. The numbering follows the
// SoundFont 2 generator enumeration; GenPitch is an extra slot used as the
// destination of raw pitch modulation (the pitch wheel's default rule).
type Generator int

const (
	GenStartAddrsOffset Generator = iota
	GenEndAddrsOffset
	GenStartloopAddrsOffset
	GenEndloopAddrsOffset
	GenStartAddrsCoarseOffset
	GenModLfoToPitch
	GenVibLfoToPitch
	GenModEnvToPitch
	GenInitialFilterFc
	GenInitialFilterQ
	GenModLfoToFilterFc
	GenModEnvToFilterFc
	GenEndAddrsCoarseOffset
	GenModLfoToVolume
	genUnused1
	GenChorusEffectsSend
	GenReverbEffectsSend
	GenPan
	genUnused2
	genUnused3
	genUnused4
	GenDelayModLFO
	GenFreqModLFO
	GenDelayVibLFO
	GenFreqVibLFO
	GenDelayModEnv
	GenAttackModEnv
	GenHoldModEnv
	GenDecayModEnv
	GenSustainModEnv
	GenReleaseModEnv
	GenKeynumToModEnvHold
	GenKeynumToModEnvDecay
	GenDelayVolEnv
	GenAttackVolEnv
	GenHoldVolEnv
	GenDecayVolEnv
	GenSustainVolEnv
	GenReleaseVolEnv
	GenKeynumToVolEnvHold
	GenKeynumToVolEnvDecay
	GenInstrument
	genReserved1
	GenKeyRange
	GenVelRange
	GenStartloopAddrsCoarseOffset
	GenKeynum
	GenVelocity
	GenInitialAttenuation
	genReserved2
	GenEndloopAddrsCoarseOffset
	GenCoarseTune
	GenFineTune
	GenSampleID
	GenSampleModes
	genReserved3
	GenScaleTuning
	GenExclusiveClass
	GenOverridingRootKey
	genUnused5
	genEndOper

	// GenPitch is the raw pitch modulation destination, in 0.01-cent units.
	GenPitch

	generatorCount
)

// generatorDefaults holds the SoundFont default for every generator.
// Unlisted ids default to zero.
var generatorDefaults = [generatorCount]int16{
	GenInitialFilterFc:   13500,
	GenDelayModLFO:       -12000,
	GenDelayVibLFO:       -12000,
	GenDelayModEnv:       -12000,
	GenAttackModEnv:      -12000,
	GenHoldModEnv:        -12000,
	GenDecayModEnv:       -12000,
	GenReleaseModEnv:     -12000,
	GenDelayVolEnv:       -12000,
	GenAttackVolEnv:      -12000,
	GenHoldVolEnv:        -12000,
	GenDecayVolEnv:       -12000,
	GenReleaseVolEnv:     -12000,
	GenKeynum:            -1,
	GenVelocity:          -1,
	GenScaleTuning:       100,
	GenOverridingRootKey: -1,
}

// ----- Generator Set ----- //

// GeneratorSet is a snapshot of generator values for one voice. Ids that were
// never set read back as their SoundFont default. The zero value is an
// all-default set.
type GeneratorSet struct {
	values [generatorCount]int16
	used   [generatorCount]bool
}

// NewGeneratorSet returns a set with every generator at its default.
func NewGeneratorSet() GeneratorSet {
	return GeneratorSet{}
}

// GetOrDefault returns the value set for g, or g's default.
func (s *GeneratorSet) GetOrDefault(g Generator) int16 {
	if g < 0 || g >= generatorCount {
		return 0
	}
	if s.used[g] {
		return s.values[g]
	}
	return generatorDefaults[g]
}

// Set assigns a value to g.
func (s *GeneratorSet) Set(g Generator, value int16) {
	if g < 0 || g >= generatorCount {
		return
	}
	s.values[g] = value
	s.used[g] = true
}

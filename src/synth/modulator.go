package synth

import "math"

// ----- Modulator Sources ----- //

// GeneralController identifies a non-MIDI modulation source.
type GeneralController uint8

const (
	CtrlNoController          GeneralController = 0
	CtrlNoteOnVelocity        GeneralController = 2
	CtrlNoteOnKeyNumber       GeneralController = 3
	CtrlPolyPressure          GeneralController = 10
	CtrlChannelPressure       GeneralController = 13
	CtrlPitchWheel            GeneralController = 14
	CtrlPitchWheelSensitivity GeneralController = 16
	CtrlLink                  GeneralController = 127
)

// CurveType selects the mapping applied to a normalized source value.
type CurveType uint8

const (
	CurveLinear CurveType = iota
	CurveConcave
	CurveConvex
	CurveSwitch
)

// ModSource describes one modulator input: where the value comes from and how
// it is mapped into [0,1] (unipolar) or [-1,1] (bipolar).
type ModSource struct {
	Index     uint8 // controller number; GeneralController value when CC is false
	CC        bool  // true: MIDI continuous controller palette
	Direction bool  // true: input runs max to min
	Polarity  bool  // true: bipolar
	Curve     CurveType
}

func (s ModSource) isNone() bool {
	return !s.CC && s.Index == uint8(CtrlNoController)
}

func (s ModSource) matchesSF(c GeneralController) bool {
	return !s.CC && s.Index == uint8(c)
}

func (s ModSource) matchesMIDI(cc uint8) bool {
	return s.CC && s.Index == cc
}

func curveValue(curve CurveType, x float64) float64 {
	switch curve {
	case CurveConcave:
		return concaveCurve(x)
	case CurveConvex:
		return 1 - concaveCurve(1-x)
	case CurveSwitch:
		if x < 0.5 {
			return 0
		}
		return 1
	default:
		return x
	}
}

func concaveCurve(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	v := -(40.0 / 96.0) * math.Log10(1-x)
	if v > 1 {
		return 1
	}
	return v
}

// apply renormalizes a raw value already scaled to [0,1].
func (s ModSource) apply(n float64) float64 {
	if n < 0 {
		n = 0
	} else if n > 1 {
		n = 1
	}
	if s.Direction {
		n = 1 - n
	}
	if s.Polarity {
		n = 2*n - 1
		if n < 0 {
			return -curveValue(s.Curve, -n)
		}
		return curveValue(s.Curve, n)
	}
	return curveValue(s.Curve, n)
}

// ----- Modulator ----- //

// ModulatorParams is one immutable modulation rule: source(s) through a curve
// into a signed contribution on a destination generator.
type ModulatorParams struct {
	Source       ModSource
	AmountSource ModSource
	Destination  Generator
	Amount       int16
}

// Modulator evaluates one rule. It caches its two input values so a
// controller event only costs the modulators actually bound to that
// controller.
type Modulator struct {
	params       ModulatorParams
	source       float64
	amountSource float64
	value        float64
}

// NewModulator builds a modulator from its descriptor. An input bound to no
// controller contributes a constant 1; a bound input reads 0 until its
// controller is first seen.
func NewModulator(params ModulatorParams) Modulator {
	m := Modulator{params: params}
	if params.Source.isNone() {
		m.source = 1
	}
	if params.AmountSource.isNone() {
		m.amountSource = 1
	}
	m.calculateValue()
	return m
}

// IsSourceSFController reports whether either input is bound to c.
func (m *Modulator) IsSourceSFController(c GeneralController) bool {
	return m.params.Source.matchesSF(c) || m.params.AmountSource.matchesSF(c)
}

// IsSourceMIDIController reports whether either input is bound to MIDI CC cc.
func (m *Modulator) IsSourceMIDIController(cc uint8) bool {
	return m.params.Source.matchesMIDI(cc) || m.params.AmountSource.matchesMIDI(cc)
}

// UpdateSFController renormalizes whichever input is bound to c and
// recomputes the contribution.
func (m *Modulator) UpdateSFController(c GeneralController, value int16) {
	var n float64
	switch c {
	case CtrlPitchWheel:
		n = float64(value) / 16384
	case CtrlPitchWheelSensitivity:
		n = float64(value) / 128
	default:
		n = float64(value) / 127
	}
	if m.params.Source.matchesSF(c) {
		m.source = m.params.Source.apply(n)
	}
	if m.params.AmountSource.matchesSF(c) {
		m.amountSource = m.params.AmountSource.apply(n)
	}
	m.calculateValue()
}

// UpdateMIDIController renormalizes whichever input is bound to CC cc and
// recomputes the contribution.
func (m *Modulator) UpdateMIDIController(cc, value uint8) {
	n := float64(value) / 127
	if m.params.Source.matchesMIDI(cc) {
		m.source = m.params.Source.apply(n)
	}
	if m.params.AmountSource.matchesMIDI(cc) {
		m.amountSource = m.params.AmountSource.apply(n)
	}
	m.calculateValue()
}

// Destination returns the generator this modulator contributes to.
func (m *Modulator) Destination() Generator {
	return m.params.Destination
}

// Value returns the current contribution.
func (m *Modulator) Value() float64 {
	return m.value
}

func (m *Modulator) calculateValue() {
	m.value = m.source * m.amountSource * float64(m.params.Amount)
}

// ----- Default Modulators ----- //

// DefaultModulatorParams returns the standard always-on modulation rules:
// velocity and CC7/CC11 into attenuation, CC10 into pan, CC1 into vibrato
// depth, CC91/CC93 into the effects sends, and pitch wheel scaled by its
// sensitivity into raw pitch.
func DefaultModulatorParams() []ModulatorParams {
	return []ModulatorParams{
		{
			Source:      ModSource{Index: uint8(CtrlNoteOnVelocity), Direction: true, Curve: CurveConcave},
			Destination: GenInitialAttenuation,
			Amount:      960,
		},
		{
			Source:      ModSource{Index: 7, CC: true, Direction: true, Curve: CurveConcave},
			Destination: GenInitialAttenuation,
			Amount:      960,
		},
		{
			Source:      ModSource{Index: 11, CC: true, Direction: true, Curve: CurveConcave},
			Destination: GenInitialAttenuation,
			Amount:      960,
		},
		{
			Source:      ModSource{Index: 10, CC: true, Polarity: true},
			Destination: GenPan,
			Amount:      1000,
		},
		{
			Source:      ModSource{Index: 1, CC: true},
			Destination: GenVibLfoToPitch,
			Amount:      50,
		},
		{
			Source:      ModSource{Index: 91, CC: true},
			Destination: GenReverbEffectsSend,
			Amount:      200,
		},
		{
			Source:      ModSource{Index: 93, CC: true},
			Destination: GenChorusEffectsSend,
			Amount:      200,
		},
		{
			Source:       ModSource{Index: uint8(CtrlPitchWheel), Polarity: true},
			AmountSource: ModSource{Index: uint8(CtrlPitchWheelSensitivity)},
			Destination:  GenPitch,
			Amount:       12700,
		},
	}
}

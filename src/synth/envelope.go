package synth

// ----- Envelope ----- //

/*
  1 +        x----x
    |       /      \
    |      /        \
  s +     /          x-------x
    |    /                    \
    |   /                      \
  0 +--+                        x------
    |delay|attack|hold|decay| … |release|
*/

// EnvelopeStage identifies one stage of the six-stage envelope.
type EnvelopeStage int

const (
	StageDelay EnvelopeStage = iota
	StageAttack
	StageHold
	StageDecay
	StageSustain
	StageRelease
	StageFinished
)

// Envelope is the timed amplitude/parameter shaping state machine. Stages
// advance strictly forward; Finished is terminal. The zero value starts in
// Delay with zero-length stages, ready for SetParameter.
type Envelope struct {
	durations    [StageRelease + 1]float64 // seconds; sustain slot unused
	sustain      float64                   // level fraction
	stage        EnvelopeStage
	elapsed      float64 // seconds into the current stage
	releaseStart float64
}

// SetParameter reconfigures one stage without resetting progress already made.
// Timed stages take timecents, Sustain takes a level decrease in 0.1% units.
func (e *Envelope) SetParameter(stage EnvelopeStage, value float64) {
	switch stage {
	case StageDelay, StageAttack, StageHold, StageDecay, StageRelease:
		e.durations[stage] = timecentToSecond(value)
	case StageSustain:
		level := 1 - 0.001*value
		if level < 0 {
			level = 0
		} else if level > 1 {
			level = 1
		}
		e.sustain = level
	}
}

// Update advances elapsed time, transitioning as stage durations run out.
func (e *Envelope) Update(deltaTime float64) {
	if e.stage == StageFinished {
		return
	}
	e.elapsed += deltaTime
	for {
		switch e.stage {
		case StageDelay, StageAttack, StageHold, StageDecay:
			d := e.durations[e.stage]
			if e.elapsed < d {
				return
			}
			e.elapsed -= d
			e.stage++
		case StageRelease:
			if e.elapsed >= e.durations[StageRelease] {
				e.stage = StageFinished
			}
			return
		default:
			// Sustain holds until Release; Finished is terminal.
			return
		}
	}
}

// Value returns the instantaneous multiplier.
func (e *Envelope) Value() float64 {
	switch e.stage {
	case StageAttack:
		d := e.durations[StageAttack]
		if d <= 0 {
			return 1
		}
		return e.elapsed / d
	case StageHold:
		return 1
	case StageDecay:
		d := e.durations[StageDecay]
		if d <= 0 {
			return e.sustain
		}
		v := 1 + (e.sustain-1)*(e.elapsed/d)
		if v < e.sustain {
			return e.sustain
		}
		return v
	case StageSustain:
		return e.sustain
	case StageRelease:
		d := e.durations[StageRelease]
		if d <= 0 {
			return 0
		}
		v := e.releaseStart * (1 - e.elapsed/d)
		if v < 0 {
			return 0
		}
		return v
	default:
		// Delay and Finished are silent.
		return 0
	}
}

// Release jumps into the Release stage from any live stage, keeping the
// current output as the release start level.
func (e *Envelope) Release() {
	if e.stage >= StageRelease {
		return
	}
	e.releaseStart = e.Value()
	e.stage = StageRelease
	e.elapsed = 0
}

// Finish forces the terminal stage unconditionally.
func (e *Envelope) Finish() {
	e.stage = StageFinished
}

// IsFinished reports whether the envelope has reached its terminal stage.
func (e *Envelope) IsFinished() bool {
	return e.stage == StageFinished
}

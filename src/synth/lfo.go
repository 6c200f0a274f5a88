package synth

import "math"

// ----- LFO ----- //

// LFO is a low-frequency oscillator with a startup delay. It outputs zero
// until the delay elapses, then a bipolar triangle rising from zero.
// Reconfiguring delay or frequency never resets the current phase.
type LFO struct {
	delay   float64 // seconds
	freq    float64 // Hz
	elapsed float64 // seconds since the voice started
	phase   float64 // cycles, [0,1)
	value   float64
}

// SetDelay sets the startup delay in seconds.
func (l *LFO) SetDelay(seconds float64) {
	l.delay = seconds
}

// SetFrequency sets the oscillation frequency in hertz.
func (l *LFO) SetFrequency(hertz float64) {
	l.freq = hertz
}

// Update advances the oscillator once past the delay.
func (l *LFO) Update(deltaTime float64) {
	l.elapsed += deltaTime
	if l.elapsed < l.delay {
		l.value = 0
		return
	}
	l.phase += l.freq * deltaTime
	l.phase -= math.Floor(l.phase)
	switch {
	case l.phase < 0.25:
		l.value = 4 * l.phase
	case l.phase < 0.75:
		l.value = 2 - 4*l.phase
	default:
		l.value = 4*l.phase - 4
	}
}

// Value samples the waveform.
func (l *LFO) Value() float64 {
	return l.value
}

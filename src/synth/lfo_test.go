package synth

import "testing"

func TestLFODelayGating(t *testing.T) {
	l := &LFO{}
	l.SetDelay(1.0)
	l.SetFrequency(2.0)
	for i := 0; i < 9; i++ {
		l.Update(0.1)
		if l.Value() != 0 {
			t.Fatalf("value during delay at step %d: got %v", i, l.Value())
		}
	}
	l.Update(0.2) // past the delay
	if l.Value() == 0 {
		t.Error("expected oscillation after delay")
	}
}

func TestLFOTriangle(t *testing.T) {
	l := &LFO{}
	l.SetFrequency(1.0)
	l.Update(0.25)
	expectApprox(t, "quarter cycle", l.Value(), 1, 1e-9)
	l.Update(0.25)
	expectApprox(t, "half cycle", l.Value(), 0, 1e-9)
	l.Update(0.25)
	expectApprox(t, "three quarters", l.Value(), -1, 1e-9)
	l.Update(0.25)
	expectApprox(t, "full cycle", l.Value(), 0, 1e-9)
	// one more full cycle lands at the same point
	for i := 0; i < 8; i++ {
		l.Update(0.125)
	}
	expectApprox(t, "periodicity", l.Value(), 0, 1e-9)
}

func TestLFOReconfigureKeepsPhase(t *testing.T) {
	l := &LFO{}
	l.SetFrequency(1.0)
	l.Update(0.25)
	expectApprox(t, "before reconfigure", l.Value(), 1, 1e-9)
	l.SetFrequency(0)
	l.SetDelay(0)
	l.Update(0.1)
	// zero frequency freezes the phase where it was
	expectApprox(t, "after reconfigure", l.Value(), 1, 1e-9)
}

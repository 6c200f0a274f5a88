package synth

import "testing"

// oneSecond is the timecent value for a one-second stage.
const oneSecond = 0.0

func newTestEnvelope() *Envelope {
	e := &Envelope{}
	e.SetParameter(StageDelay, oneSecond)
	e.SetParameter(StageAttack, oneSecond)
	e.SetParameter(StageHold, oneSecond)
	e.SetParameter(StageDecay, oneSecond)
	e.SetParameter(StageSustain, 500) // level 0.5
	e.SetParameter(StageRelease, oneSecond)
	return e
}

func TestEnvelopeStageWalk(t *testing.T) {
	e := newTestEnvelope()
	if e.Value() != 0 {
		t.Errorf("value before any update: got %v", e.Value())
	}
	e.Update(0.5) // mid delay
	if e.Value() != 0 {
		t.Errorf("value during delay: got %v", e.Value())
	}
	e.Update(0.6) // 0.1 into attack
	expectApprox(t, "attack ramp", e.Value(), 0.1, 1e-9)
	e.Update(0.9) // attack complete, hold begins
	if e.Value() != 1 {
		t.Errorf("value during hold: got %v", e.Value())
	}
	e.Update(1.0) // hold complete, decay begins
	if e.Value() != 1 {
		t.Errorf("value at decay start: got %v", e.Value())
	}
	e.Update(0.5) // mid decay
	expectApprox(t, "decay ramp", e.Value(), 0.75, 1e-9)
	e.Update(0.5) // decay complete
	expectApprox(t, "sustain level", e.Value(), 0.5, 1e-9)
	e.Update(10) // sustain holds indefinitely
	expectApprox(t, "sustain holds", e.Value(), 0.5, 1e-9)
	if e.IsFinished() {
		t.Error("must not finish without release")
	}
}

func TestEnvelopeRelease(t *testing.T) {
	e := newTestEnvelope()
	e.Update(2.5) // mid hold
	e.Release()
	// release starts from the current output, not from sustain
	if e.Value() != 1 {
		t.Errorf("release start level: got %v", e.Value())
	}
	e.Update(0.5)
	expectApprox(t, "release ramp", e.Value(), 0.5, 1e-9)
	e.Update(0.5)
	if !e.IsFinished() {
		t.Error("expected finished after release elapses")
	}
	if e.Value() != 0 {
		t.Errorf("finished value: got %v", e.Value())
	}
}

func TestEnvelopeReleaseFromDelay(t *testing.T) {
	e := newTestEnvelope()
	e.Update(0.2)
	e.Release()
	if e.Value() != 0 {
		t.Errorf("release from delay should start silent, got %v", e.Value())
	}
	e.Update(1.0)
	if !e.IsFinished() {
		t.Error("expected finished")
	}
}

func TestEnvelopeSetParameterMidFlight(t *testing.T) {
	e := newTestEnvelope()
	e.Update(2.0) // hold begins
	// reconfiguring decay must not reset completed stages
	e.SetParameter(StageDecay, 1200) // two seconds now
	if e.Value() != 1 {
		t.Errorf("hold disturbed by SetParameter: got %v", e.Value())
	}
	e.Update(1.0) // decay begins
	e.Update(1.0) // halfway through the longer decay
	expectApprox(t, "reconfigured decay", e.Value(), 0.75, 1e-9)
}

func TestEnvelopeFinishIsTerminal(t *testing.T) {
	e := newTestEnvelope()
	e.Update(1.5)
	e.Finish()
	if !e.IsFinished() {
		t.Error("expected finished")
	}
	e.Update(1.0)
	e.Release()
	if !e.IsFinished() || e.Value() != 0 {
		t.Error("finished must be irreversible")
	}
}

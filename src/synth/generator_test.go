package synth

import "testing"

func TestGeneratorDefaults(t *testing.T) {
	s := NewGeneratorSet()
	cases := []struct {
		g    Generator
		want int16
	}{
		{GenInitialFilterFc, 13500},
		{GenDelayVolEnv, -12000},
		{GenAttackVolEnv, -12000},
		{GenScaleTuning, 100},
		{GenKeynum, -1},
		{GenVelocity, -1},
		{GenOverridingRootKey, -1},
		{GenPan, 0},
		{GenInitialAttenuation, 0},
		{GenSampleModes, 0},
	}
	for _, c := range cases {
		if got := s.GetOrDefault(c.g); got != c.want {
			t.Errorf("default for generator %d: expected %d, but got %d", c.g, c.want, got)
		}
	}
}

func TestGeneratorSetOverridesDefault(t *testing.T) {
	s := NewGeneratorSet()
	s.Set(GenAttackVolEnv, -3000)
	if got := s.GetOrDefault(GenAttackVolEnv); got != -3000 {
		t.Errorf("expected -3000, but got %d", got)
	}
	// an explicit zero must win over a non-zero default
	s.Set(GenScaleTuning, 0)
	if got := s.GetOrDefault(GenScaleTuning); got != 0 {
		t.Errorf("expected 0, but got %d", got)
	}
}

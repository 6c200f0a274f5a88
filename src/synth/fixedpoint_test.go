package synth

import "testing"

func TestFixedPointParts(t *testing.T) {
	p := fixedPointFromFloat(1.5)
	if p.integerPart() != 1 {
		t.Errorf("integerPart: got %v", p.integerPart())
	}
	if p.fractionalPart() != 0.5 {
		t.Errorf("fractionalPart: got %v", p.fractionalPart())
	}
	if fixedPointFromInt(7).integerPart() != 7 {
		t.Errorf("fromInt roundtrip failed")
	}
	if fixedPointFromInt(7).fractionalPart() != 0 {
		t.Errorf("fromInt should have no fraction")
	}
}

func TestFixedPointExactArithmetic(t *testing.T) {
	// subtracting an integer sample count must be exact
	p := fixedPointFromFloat(5.25)
	q := p - fixedPointFromInt(4)
	if q != fixedPointFromFloat(1.25) {
		t.Errorf("subtraction not exact: got %v", q)
	}
	// repeated integer addition never drifts
	p = fixedPointFromInt(0)
	for i := 0; i < 1000000; i++ {
		p += fixedPointFromInt(1)
	}
	if p.integerPart() != 1000000 || p.fractionalPart() != 0 {
		t.Errorf("drift after repeated addition: %v + %v", p.integerPart(), p.fractionalPart())
	}
}

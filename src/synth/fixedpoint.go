package synth

// ----- Fixed-Point Phase ----- //

// fixedPoint is a 32.32 fixed-point value used for the playback phase.
// Plain integer addition keeps long sustained notes free of floating-point
// drift, and subtracting a whole sample count (loop wrap) is exact.
type fixedPoint uint64

func fixedPointFromInt(n int) fixedPoint {
	return fixedPoint(uint64(n) << 32)
}

func fixedPointFromFloat(f float64) fixedPoint {
	return fixedPoint(f * (1 << 32))
}

func (p fixedPoint) integerPart() int {
	return int(p >> 32)
}

func (p fixedPoint) fractionalPart() float64 {
	return float64(p&0xffffffff) / (1 << 32)
}

package synth

// ----- Stereo Value ----- //

// StereoValue is a two-channel amplitude pair. It carries no clamping or
// limiting; that belongs to the output stage.
type StereoValue struct {
	Left  float64
	Right float64
}

// Add returns the elementwise sum.
func (v StereoValue) Add(w StereoValue) StereoValue {
	return StereoValue{v.Left + w.Left, v.Right + w.Right}
}

// Scale returns both channels multiplied by a scalar.
func (v StereoValue) Scale(s float64) StereoValue {
	return StereoValue{v.Left * s, v.Right * s}
}

// Mul returns the elementwise product.
func (v StereoValue) Mul(w StereoValue) StereoValue {
	return StereoValue{v.Left * w.Left, v.Right * w.Right}
}

// Accumulate adds w in place.
func (v *StereoValue) Accumulate(w StereoValue) {
	v.Left += w.Left
	v.Right += w.Right
}

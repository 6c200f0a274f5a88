package synth

// ----- Sample ----- //

// SampleMode is the loop policy of a sample region.
type SampleMode int16

const (
	// SampleModeUnlooped plays start to end once.
	SampleModeUnlooped SampleMode = 0
	// SampleModeLooped wraps from loop end back to loop start forever.
	SampleModeLooped SampleMode = 1
	// SampleModeUnused behaves like SampleModeUnlooped.
	SampleModeUnused SampleMode = 2
	// SampleModeLoopedWithRemainder loops while held, then plays the
	// remainder of the sample after release.
	SampleModeLoopedWithRemainder SampleMode = 3
)

// Sample is one recorded waveform region. The buffer is shared between every
// voice playing the region and is never mutated by a voice; sharing the slice
// is the ownership model, the runtime keeps it alive as long as any voice
// holds it.
type Sample struct {
	Buffer     []int16 // read-only, signed 16-bit full scale
	SampleRate float64 // native rate, Hz
	Key        int16   // root key
	Correction int16   // pitch correction, cents
	Start      int
	End        int
	StartLoop  int
	EndLoop    int
}

package synth

import (
	"math"
	"sync"
)

// ----- Conversion Tables ----- //

// The synthesis hot path converts centibels, keys and timecents thousands of
// times per second. The expensive mappings are precomputed once into immutable
// tables; every kernel below saturates instead of failing on out-of-range input.

const centibelTableSize = 1441

var (
	tablesOnce           sync.Once
	centibelToRatioTable [centibelTableSize]float64
	centToHertzTable     [1200]float64
)

func initTables() {
	tablesOnce.Do(func() {
		for i := range centibelToRatioTable {
			// -200 instead of -100 for compatibility
			centibelToRatioTable[i] = math.Pow(10, float64(i)/-200)
		}
		for i := range centToHertzTable {
			centToHertzTable[i] = 6.875 * math.Exp2(float64(i)/1200)
		}
	})
}

// ----- Conversion Kernels ----- //

// centibelToRatio maps a centibel attenuation to an amplitude ratio.
// Non-positive input yields unity, input past the table bound yields silence.
func centibelToRatio(cb float64) float64 {
	if cb <= 0 {
		return 1
	}
	if cb >= centibelTableSize {
		return 0
	}
	initTables()
	return centibelToRatioTable[int(cb)]
}

// keyToHertz converts a (fractional) MIDI key number to a frequency.
// The key is folded into successive 1200-cent octave bands, each band
// doubling a running multiplier, so one 1200-entry table covers the
// whole keyboard. Negative input yields 1.
func keyToHertz(key float64) float64 {
	if key < 0 {
		return 1
	}
	initTables()
	offset := 300
	th := 900.0
	r := 1.0
	for th <= 14100 {
		if key*100 < th {
			return r * centToHertzTable[int(key*100)+offset]
		}
		th += 1200
		offset -= 1200
		r *= 2
	}
	return 1
}

// timecentToSecond converts an absolute timecent value to seconds.
func timecentToSecond(tc float64) float64 {
	return math.Exp2(tc / 1200)
}

// absoluteCentToHertz converts an absolute cent value to a frequency.
func absoluteCentToHertz(ac float64) float64 {
	return 8.176 * math.Exp2(ac/1200)
}

// JoinBytes combines two 7-bit MIDI data bytes into one 14-bit value,
// MSB first.
func JoinBytes(msb, lsb uint8) uint16 {
	return uint16(msb)<<7 + uint16(lsb)
}

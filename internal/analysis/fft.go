package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// data, zero-padded to the next power of two. The mean is removed first so
// bin 0 does not swamp the result.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}

	n := nextPow2(len(data))
	buf := make([]float64, n)

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	for i, v := range data {
		buf[i] = v - mean
	}

	spectrum := fft.FFTReal(buf)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin
// along with its magnitude.
func DominantFrequency(data []float64, sampleRate float64) (freq, power float64) {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0, 0
	}

	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}

	n := 2 * len(ps)
	return float64(best) * sampleRate / float64(n), ps[best]
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Peak is the strongest non-constant component of a series. Frequency is in
// cycles per frame and Period in frames.
type Peak struct {
	Bin       int
	Frequency float64
	Period    float64
	Power     float64
}

// PowerSpectrum returns the magnitude of the first half of the discrete
// Fourier transform of data, with the mean removed first so bin 0 does not
// swamp the rest. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// Dominant finds the strongest bin of a spectrum computed from n samples.
// It reports false when the series had no variation.
func Dominant(ps []float64, n int) (Peak, bool) {
	best := Peak{}
	for i := 1; i < len(ps); i++ {
		if ps[i] > best.Power {
			best = Peak{Bin: i, Power: ps[i]}
		}
	}
	if best.Bin == 0 || best.Power < 1e-9 {
		return Peak{}, false
	}
	best.Frequency = float64(best.Bin) / float64(n)
	best.Period = 1 / best.Frequency
	return best, true
}

type Summary struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	s := Summary{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range data {
		s.Mean += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean /= float64(len(data))
	for _, v := range data {
		d := v - s.Mean
		s.StdDev += d * d
	}
	s.StdDev = math.Sqrt(s.StdDev / float64(len(data)))
	return s
}

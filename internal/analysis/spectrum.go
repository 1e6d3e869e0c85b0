package analysis

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	ErrTooShort = errors.New("analysis: need at least 4 samples")
	ErrFlat     = errors.New("analysis: signal does not oscillate")
)

// Peak is a spectral line.
type Peak struct {
	Frequency float64 // Hz in simulation time
	Period    float64
	Amplitude float64
}

// Spectrum returns the one-sided amplitude spectrum of samples taken every
// dt seconds, with the mean removed, and the width of one bin in Hz.
func Spectrum(samples []float64, dt float64) ([]float64, float64, error) {
	n := len(samples)
	if n < 4 {
		return nil, 0, ErrTooShort
	}
	if !(dt > 0) {
		return nil, 0, fmt.Errorf("analysis: sample interval %v must be positive", dt)
	}
	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)
	centred := make([]float64, n)
	for i, v := range samples {
		centred[i] = v - mean
	}

	coeffs := fft.FFTReal(centred)
	amps := make([]float64, n/2+1)
	for k := range amps {
		amps[k] = 2 * cmplx.Abs(coeffs[k]) / float64(n)
	}
	return amps, 1 / (float64(n) * dt), nil
}

// Dominant finds the strongest non-DC line, refined between bins by a
// parabola through the peak and its neighbours.
func Dominant(samples []float64, dt float64) (Peak, error) {
	amps, binWidth, err := Spectrum(samples, dt)
	if err != nil {
		return Peak{}, err
	}
	k := 1
	for i := 2; i < len(amps); i++ {
		if amps[i] > amps[k] {
			k = i
		}
	}
	if amps[k] < 1e-12 {
		return Peak{}, ErrFlat
	}

	offset := 0.0
	if k > 1 && k < len(amps)-1 {
		a, b, c := amps[k-1], amps[k], amps[k+1]
		if d := a - 2*b + c; d != 0 {
			offset = 0.5 * (a - c) / d
		}
	}
	f := (float64(k) + offset) * binWidth
	return Peak{Frequency: f, Period: 1 / f, Amplitude: amps[k]}, nil
}

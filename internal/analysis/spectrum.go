package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/recart/internal/stats"
)

// PowerSpectrum returns |X[k]| for k in [0, n/2] of the series with its mean
// removed. Series shorter than two samples have no spectrum.
func PowerSpectrum(series []float64) []float64 {
	n := len(series)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range series {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, n/2+1)
	for k := range ps {
		ps[k] = cmplx.Abs(spectrum[k])
	}
	return ps
}

// DominantPeriod returns the period in frames of the strongest non-constant
// component and its magnitude. A flat or too short series yields 0, 0.
func DominantPeriod(series []float64) (period, power float64) {
	ps := PowerSpectrum(series)
	best := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > power {
			best, power = k, ps[k]
		}
	}
	if best == 0 || power < 1e-9 {
		return 0, 0
	}
	return float64(len(series)) / float64(best), power
}

// Flicker is the mean absolute difference between consecutive samples.
func Flicker(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	sum := 0.0
	for i := 1; i < len(series); i++ {
		sum += math.Abs(series[i] - series[i-1])
	}
	return sum / float64(len(series)-1)
}

type Report struct {
	Series  string
	Min     float64
	Max     float64
	Mean    float64
	Flicker float64
	Period  float64
	Power   float64
}

// Analyze reports on the mean red, green and blue channels and the luminance
// of frames, in that order.
func Analyze(frames []stats.Frame) []Report {
	c := &stats.Collector{Frames: frames}
	series := []struct {
		name string
		fn   func(stats.Frame) float64
	}{
		{"red", func(f stats.Frame) float64 { return f.MeanR }},
		{"green", func(f stats.Frame) float64 { return f.MeanG }},
		{"blue", func(f stats.Frame) float64 { return f.MeanB }},
		{"luminance", func(f stats.Frame) float64 { return f.Luminance }},
	}

	reports := make([]Report, 0, len(series))
	for _, s := range series {
		values := c.Series(s.fn)
		r := Report{Series: s.name}
		if len(values) > 0 {
			r.Min, r.Max = values[0], values[0]
			for _, v := range values {
				r.Min, r.Max = min(r.Min, v), max(r.Max, v)
				r.Mean += v
			}
			r.Mean /= float64(len(values))
		}
		r.Flicker = Flicker(values)
		r.Period, r.Power = DominantPeriod(values)
		reports = append(reports, r)
	}
	return reports
}

package main

import (
	"fmt"
	"math"
	"sort"

	"github.com/pivolan/numchart/domain/models"
	"github.com/pivolan/numchart/plot"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Коэффициенты сглаживающего фильтра Савицкого-Голея, окно 5, полином 2 степени
var sgWeights = []float64{-3, 12, 17, 12, -3}

const sgNorm = 35

// smooth сглаживает ряд фильтром Савицкого-Голея.
// На краях, где окно не помещается, значения копируются как есть.
func smooth(y []float64) []float64 {
	out := make([]float64, len(y))
	copy(out, y)
	half := len(sgWeights) / 2
	for i := half; i < len(y)-half; i++ {
		var sum float64
		for j, w := range sgWeights {
			sum += w * y[i-half+j]
		}
		out[i] = sum / sgNorm
	}
	return out
}

// findPeaks возвращает индексы локальных максимумов не ниже minHeight
func findPeaks(y []float64, minHeight float64) []int {
	var peaks []int
	for i := 1; i < len(y)-1; i++ {
		if y[i] > y[i-1] && y[i] >= y[i+1] && y[i] >= minHeight {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

// interpolate кусочно-линейная интерполяция по отсортированным x
func interpolate(x, y []float64) func(float64) float64 {
	return func(v float64) float64 {
		i := sort.SearchFloat64s(x, v)
		switch {
		case i == 0:
			return y[0]
		case i >= len(x):
			return y[len(y)-1]
		}
		t := (v - x[i-1]) / (x[i] - x[i-1])
		return y[i-1] + t*(y[i]-y[i-1])
	}
}

// signalData генерирует сумму синусоид с шумом, sampleRate отсчетов в секунду
func signalData(n int, sampleRate float64, freqs []float64, noise float64) []float64 {
	y := make([]float64, n)
	eps := distuv.Normal{Mu: 0, Sigma: noise}
	for i := range y {
		t := float64(i) / sampleRate
		for k, f := range freqs {
			y[i] += math.Sin(2*math.Pi*f*t) / float64(k+1)
		}
		if noise > 0 {
			y[i] += eps.Rand()
		}
	}
	return y
}

func spectrumChart(style models.Style, samples []float64, sampleRate float64) (*models.Chart, error) {
	s, err := plot.SpectrumSeries("amplitude", samples, sampleRate)
	if err != nil {
		return nil, err
	}
	return plot.ToChart(style, []*models.Series{s},
		[]string{"Spectrum", fmt.Sprintf("%d samples at %g Hz", len(samples), sampleRate)},
		"frequency, Hz", "amplitude"), nil
}

func peaksChart(style models.Style, x, y []float64, minHeight float64) (*models.Chart, error) {
	raw, err := plot.NewSeries("signal", models.KindScatter, plot.Values(x), plot.Values(y))
	if err != nil {
		return nil, err
	}
	smoothed := smooth(y)
	line, err := plot.NewSeries("smoothed", models.KindLine, plot.Values(x), plot.Values(smoothed))
	if err != nil {
		return nil, err
	}
	peaks := findPeaks(smoothed, minHeight)
	keys := make([]plot.KeyValue, len(peaks))
	for i, p := range peaks {
		keys[i] = plot.KeyValue{X: x[p], Label: fmt.Sprintf("%.3g", smoothed[p])}
	}
	plot.AnnotateKeys(line, interpolate(x, smoothed), keys)
	return plot.ToChart(style, []*models.Series{raw, line},
		[]string{"Peaks", fmt.Sprintf("%d peaks above %g", len(peaks), minHeight)},
		"x", "y"), nil
}

func newFFTCmd() *cobra.Command {
	var samples int
	var rate, noise float64
	var freqs []float64
	cmd := &cobra.Command{
		Use:   "fft",
		Short: "Plot the amplitude spectrum of a synthetic signal",
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := currentStyle()
			if err != nil {
				return err
			}
			c, err := spectrumChart(style, signalData(samples, rate, freqs, noise), rate)
			if err != nil {
				return err
			}
			return emit(cmd, c)
		},
	}
	cmd.Flags().IntVar(&samples, "samples", 256, "Number of samples")
	cmd.Flags().Float64Var(&rate, "rate", 64, "Sample rate, Hz")
	cmd.Flags().Float64SliceVar(&freqs, "freq", []float64{5, 12}, "Component frequencies, Hz")
	cmd.Flags().Float64Var(&noise, "noise", 0.1, "Standard deviation of the noise")
	return cmd
}

func newPeaksCmd() *cobra.Command {
	var points int
	var minHeight, noise float64
	cmd := &cobra.Command{
		Use:   "peaks",
		Short: "Smooth a noisy signal and mark its local maxima",
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := currentStyle()
			if err != nil {
				return err
			}
			if points < 2 {
				return fmt.Errorf("points %d: %w", points, plot.ErrInvalidArgument)
			}
			x := make([]float64, points)
			floats.Span(x, 0, 4*math.Pi)
			y := make([]float64, points)
			eps := distuv.Normal{Mu: 0, Sigma: noise}
			for i, v := range x {
				y[i] = math.Sin(v) + 0.5*math.Sin(3*v)
				if noise > 0 {
					y[i] += eps.Rand()
				}
			}
			c, err := peaksChart(style, x, y, minHeight)
			if err != nil {
				return err
			}
			return emit(cmd, c)
		},
	}
	cmd.Flags().IntVar(&points, "points", 200, "Number of samples")
	cmd.Flags().Float64Var(&minHeight, "min-height", 0.5, "Minimum peak height")
	cmd.Flags().Float64Var(&noise, "noise", 0.05, "Standard deviation of the noise")
	return cmd
}

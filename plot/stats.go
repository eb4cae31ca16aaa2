package plot

import (
	"fmt"
	"math"
	"sort"

	"github.com/pivolan/numchart/domain/models"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Distribution - вероятностное распределение; типы gonum distuv подходят напрямую
type Distribution interface {
	Prob(x float64) float64
	CDF(x float64) float64
	Quantile(p float64) float64
}

type DistFunc int

const (
	DistPDF DistFunc = iota
	DistCDF
	DistQuantile
)

func (f DistFunc) String() string {
	switch f {
	case DistPDF:
		return "PDF"
	case DistCDF:
		return "CDF"
	case DistQuantile:
		return "Inverse CDF"
	default:
		return fmt.Sprintf("DistFunc(%d)", int(f))
	}
}

// квантиль не определена на границах [0, 1]
const quantileEps = 1e-6

func distFunction(d Distribution, fn DistFunc) func(float64) float64 {
	switch fn {
	case DistCDF:
		return d.CDF
	case DistQuantile:
		return func(p float64) float64 {
			return d.Quantile(math.Min(math.Max(p, quantileEps), 1-quantileEps))
		}
	default:
		return d.Prob
	}
}

// DistributionSeries вычисляет PDF, CDF или обратную CDF распределения
func DistributionSeries(name string, d Distribution, fn DistFunc, xmin, xmax float64, n int) *models.Series {
	return SampleFunction(name, models.KindLine, distFunction(d, fn), xmin, xmax, n)
}

// DistributionChart строит график функции распределения и отмечает ключевые значения
func DistributionChart(style models.Style, d Distribution, fn DistFunc, xmin, xmax float64, n int, keys []KeyValue) *models.Chart {
	f := distFunction(d, fn)
	s := SampleFunction(fn.String(), models.KindLine, f, xmin, xmax, n)
	AnnotateKeys(s, f, keys)
	xTitle, yTitle := "x", fn.String()
	if fn == DistQuantile {
		xTitle, yTitle = "p", "x"
	}
	return ToChart(style, []*models.Series{s}, []string{fn.String()}, xTitle, yTitle)
}

// FitResult - результат подгонки модели к данным
type FitResult struct {
	X         []float64
	Observed  []float64
	Predicted []float64
	Params    []float64
	Lower     []float64 // нижние границы доверительных интервалов параметров
	Upper     []float64
	RSS       float64
}

// FitSeries возвращает наблюдения (точки) и предсказание модели (линия)
func FitSeries(r FitResult) ([]*models.Series, error) {
	observed, err := NewSeries("observed", models.KindScatter, Values(r.X), Values(r.Observed))
	if err != nil {
		return nil, err
	}
	predicted, err := NewSeries("fitted", models.KindLine, Values(r.X), Values(r.Predicted))
	if err != nil {
		return nil, err
	}
	return []*models.Series{observed, predicted}, nil
}

// FitChart строит график подгонки, в подзаголовках - RSS и интервалы параметров
func FitChart(style models.Style, r FitResult, title, xTitle, yTitle string) (*models.Chart, error) {
	if len(r.Lower) != len(r.Upper) || len(r.Lower) != 0 && len(r.Lower) != len(r.Params) {
		return nil, fmt.Errorf("fit has %d params, %d lower and %d upper bounds: %w",
			len(r.Params), len(r.Lower), len(r.Upper), ErrSizeMismatch)
	}
	series, err := FitSeries(r)
	if err != nil {
		return nil, err
	}
	titles := []string{title, fmt.Sprintf("RSS = %.4g", r.RSS)}
	for i, p := range r.Params {
		if len(r.Lower) == 0 {
			titles = append(titles, fmt.Sprintf("p%d = %.4g", i, p))
			continue
		}
		titles = append(titles, fmt.Sprintf("p%d = %.4g [%.4g, %.4g]", i, p, r.Lower[i], r.Upper[i]))
	}
	return ToChart(style, series, titles, xTitle, yTitle), nil
}

// HistogramSeries раскладывает значения по bins интервалам равной ширины
func HistogramSeries(name string, data []float64, bins int) (*models.Series, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("histogram bins %d: %w", bins, ErrInvalidArgument)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("histogram of empty data: %w", ErrInvalidArgument)
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		hi = lo + 1
	}
	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// последний интервал полуоткрытый, поэтому максимум сдвигается вверх
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)

	s := &models.Series{Name: name, Kind: models.KindColumn, Marker: models.MarkerNone}
	for i, count := range counts {
		s.Points = append(s.Points, models.Point{
			X:     (dividers[i] + dividers[i+1]) / 2,
			Y:     count,
			Label: fmt.Sprintf("%.3g-%.3g", dividers[i], dividers[i+1]),
		})
	}
	return s, nil
}

// PCASeries строит проекции строк data на главные компоненты xPC и yPC
func PCASeries(name string, data mat.Matrix, xPC, yPC int) (*models.Series, error) {
	vecs, _, err := principalComponents(data)
	if err != nil {
		return nil, err
	}
	_, k := vecs.Dims()
	for _, pc := range []int{xPC, yPC} {
		if pc < 0 || pc >= k {
			return nil, fmt.Errorf("principal component %d of %d: %w", pc, k, ErrOutOfRange)
		}
	}
	var proj mat.Dense
	proj.Mul(centered(data), vecs)
	x, _ := Column(&proj, xPC)
	y, _ := Column(&proj, yPC)
	return NewSeries(name, models.KindScatter, x, y)
}

// ScreeSeries показывает долю объясненной дисперсии каждой компоненты
func ScreeSeries(name string, data mat.Matrix) (*models.Series, error) {
	_, vars, err := principalComponents(data)
	if err != nil {
		return nil, err
	}
	total := floats.Sum(vars)
	if total == 0 {
		return nil, fmt.Errorf("data has zero variance: %w", ErrInvalidArgument)
	}
	explained := make([]float64, len(vars))
	for i, v := range vars {
		explained[i] = v / total
	}
	return NewSeriesY(name, models.KindColumn, models.AxisUnit{Start: 1, Step: 1, Name: "component"}, Values(explained)), nil
}

// centered вычитает из каждого столбца его среднее
func centered(data mat.Matrix) *mat.Dense {
	r, c := data.Dims()
	out := mat.DenseCopyOf(data)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, out)
		mean := stat.Mean(col, nil)
		for i := 0; i < r; i++ {
			out.Set(i, j, col[i]-mean)
		}
	}
	return out
}

func principalComponents(data mat.Matrix) (*mat.Dense, []float64, error) {
	var pc stat.PC
	if ok := pc.PrincipalComponents(data, nil); !ok {
		return nil, nil, fmt.Errorf("principal component analysis failed: %w", ErrInvalidArgument)
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	return &vecs, pc.VarsTo(nil), nil
}

// SpectrumSeries считает амплитудный спектр сигнала, ось x в Гц
func SpectrumSeries(name string, samples []float64, sampleRate float64) (*models.Series, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("spectrum of empty signal: %w", ErrInvalidArgument)
	}
	fft := fourier.NewFFT(len(samples))
	coeff := fft.Coefficients(nil, samples)
	freqs := make([]float64, len(coeff))
	for i := range coeff {
		freqs[i] = fft.Freq(i) * sampleRate
	}
	return NewSeries(name, models.KindLine, Values(freqs), Magnitudes(coeff))
}

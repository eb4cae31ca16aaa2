package plot

import (
	"math"
	"testing"

	"github.com/pivolan/numchart/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestDistFuncString(t *testing.T) {
	assert.Equal(t, "PDF", DistPDF.String())
	assert.Equal(t, "CDF", DistCDF.String())
	assert.Equal(t, "Inverse CDF", DistQuantile.String())
	assert.Equal(t, "DistFunc(7)", DistFunc(7).String())
}

func TestDistributionSeries(t *testing.T) {
	d := distuv.Normal{Mu: 0, Sigma: 1}

	pdf := DistributionSeries("pdf", d, DistPDF, -1, 1, 3)
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), pdf.Points[1].Y, 1e-12)

	cdf := DistributionSeries("cdf", d, DistCDF, -1, 1, 3)
	assert.InDelta(t, 0.5, cdf.Points[1].Y, 1e-12)

	q := DistributionSeries("q", d, DistQuantile, 0, 1, 3)
	assert.InDelta(t, 0, q.Points[1].Y, 1e-12)
	assert.False(t, math.IsInf(q.Points[0].Y, 0), "quantile at 0 is clamped")
	assert.False(t, math.IsInf(q.Points[2].Y, 0), "quantile at 1 is clamped")
}

func TestDistributionChart(t *testing.T) {
	d := distuv.Normal{Mu: 0, Sigma: 1}
	c := DistributionChart(models.DefaultStyle(), d, DistCDF, -3, 3, 7, []KeyValue{{X: 0, Label: "median"}})
	assert.Equal(t, "CDF", c.MainTitle())
	assert.Equal(t, "x", c.XAxis.Title)
	assert.Equal(t, "CDF", c.YAxis.Title)
	assert.Equal(t, "median", c.Series[0].Points[3].Label)

	c = DistributionChart(models.DefaultStyle(), d, DistQuantile, 0, 1, 5, nil)
	assert.Equal(t, "p", c.XAxis.Title)
	assert.Equal(t, "x", c.YAxis.Title)
}

func TestFitChart(t *testing.T) {
	r := FitResult{
		X:         []float64{0, 1, 2},
		Observed:  []float64{1, 3, 5.2},
		Predicted: []float64{1, 3.05, 5.1},
		Params:    []float64{1, 2.05},
		Lower:     []float64{0.8, 1.9},
		Upper:     []float64{1.2, 2.2},
		RSS:       0.0125,
	}
	c, err := FitChart(models.DefaultStyle(), r, "linear", "x", "y")
	require.NoError(t, err)

	require.Len(t, c.Series, 2)
	assert.Equal(t, models.KindScatter, c.Series[0].Kind)
	assert.Equal(t, models.KindLine, c.Series[1].Kind)
	assert.NotNil(t, c.Legend)
	assert.Equal(t, []string{"RSS = 0.0125", "p0 = 1 [0.8, 1.2]", "p1 = 2.05 [1.9, 2.2]"}, c.Subtitles())

	r.Upper = r.Upper[:1]
	_, err = FitChart(models.DefaultStyle(), r, "linear", "x", "y")
	assert.ErrorIs(t, err, ErrSizeMismatch)

	r.Lower, r.Upper = nil, nil
	c, err = FitChart(models.DefaultStyle(), r, "linear", "x", "y")
	require.NoError(t, err)
	assert.Equal(t, "p0 = 1", c.Subtitles()[1])

	r.Predicted = r.Predicted[:2]
	_, err = FitChart(models.DefaultStyle(), r, "linear", "x", "y")
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestHistogramSeries(t *testing.T) {
	s, err := HistogramSeries("h", []float64{0, 1, 1, 2, 3, 4}, 2)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, []float64{3, 3}, s.YValues())
	assert.Equal(t, models.KindColumn, s.Kind)
	assert.Equal(t, "0-2", s.Points[0].Label)

	s, err = HistogramSeries("h", []float64{0.1, 0.2, 0.3, 0.9}, 4)
	require.NoError(t, err)
	labels := make([]string, s.Len())
	for i, p := range s.Points {
		labels[i] = p.Label
	}
	assert.Equal(t, []string{"0.1-0.3", "0.3-0.5", "0.5-0.7", "0.7-0.9"}, labels)

	s, err = HistogramSeries("h", []float64{5, 5, 5}, 3)
	require.NoError(t, err)
	total := 0.0
	for _, v := range s.YValues() {
		total += v
	}
	assert.Equal(t, 3.0, total)

	_, err = HistogramSeries("h", nil, 3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = HistogramSeries("h", []float64{1}, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPCASeries(t *testing.T) {
	// точки на прямой y = 2x: вся дисперсия в первой компоненте
	data := mat.NewDense(5, 2, []float64{
		-2, -4,
		-1, -2,
		0, 0,
		1, 2,
		2, 4,
	})
	s, err := PCASeries("pca", data, 0, 1)
	require.NoError(t, err)
	require.Equal(t, 5, s.Len())
	for _, p := range s.Points {
		assert.InDelta(t, 0, p.Y, 1e-9)
	}
	assert.InDelta(t, math.Sqrt(20), math.Abs(s.Points[4].X), 1e-9)

	_, err = PCASeries("pca", data, 0, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)

	scree, err := ScreeSeries("scree", data)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, scree.XValues())
	assert.InDelta(t, 1, scree.Points[0].Y, 1e-9)
	assert.InDelta(t, 0, scree.Points[1].Y, 1e-9)
}

func TestPCASeriesCentersScores(t *testing.T) {
	data := mat.NewDense(4, 2, []float64{
		10, 1,
		12, 2,
		14, 4,
		16, 5,
	})
	s, err := PCASeries("pca", data, 0, 1)
	require.NoError(t, err)
	var sumX, sumY float64
	for _, p := range s.Points {
		sumX += p.X
		sumY += p.Y
	}
	assert.InDelta(t, 0, sumX, 1e-9)
	assert.InDelta(t, 0, sumY, 1e-9)
	assert.Equal(t, 10.0, data.At(0, 0), "input is not modified")
}

func TestSpectrumSeries(t *testing.T) {
	const n, rate = 64, 32.0
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Cos(2 * math.Pi * 4 * float64(i) / rate)
	}
	s, err := SpectrumSeries("spectrum", samples, rate)
	require.NoError(t, err)
	require.Equal(t, n/2+1, s.Len())

	peak := 0
	for i, p := range s.Points {
		if p.Y > s.Points[peak].Y {
			peak = i
		}
	}
	assert.InDelta(t, 4, s.Points[peak].X, 1e-9)
	assert.InDelta(t, n/2, s.Points[peak].Y, 1e-9)
	assert.InDelta(t, rate/2, s.Points[n/2].X, 1e-9)

	_, err = SpectrumSeries("spectrum", nil, rate)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

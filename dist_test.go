package main

import (
	"testing"

	"github.com/pivolan/numchart/domain/models"
	"github.com/pivolan/numchart/plot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDistribution(t *testing.T) {
	for _, name := range []string{"normal", "LogNormal", "gamma", "beta", "exponential", "student", "weibull"} {
		d, err := parseDistribution(name, 2, 3)
		require.NoError(t, err, name)
		assert.NotNil(t, d)
	}
	_, err := parseDistribution("cauchy", 0, 1)
	assert.ErrorIs(t, err, plot.ErrInvalidArgument)
}

func TestParseDistFunc(t *testing.T) {
	fn, err := parseDistFunc("CDF")
	require.NoError(t, err)
	assert.Equal(t, plot.DistCDF, fn)
	fn, err = parseDistFunc("icdf")
	require.NoError(t, err)
	assert.Equal(t, plot.DistQuantile, fn)
	_, err = parseDistFunc("mgf")
	assert.ErrorIs(t, err, plot.ErrInvalidArgument)
}

func TestDistChartNormalPDF(t *testing.T) {
	d, err := parseDistribution("normal", 0, 1)
	require.NoError(t, err)
	c := distChart(models.DefaultStyle(), d, plot.DistPDF, 101)

	require.Len(t, c.Series, 1)
	s := c.Series[0]
	assert.InDelta(t, -3.09, s.Points[0].X, 1e-2)
	assert.InDelta(t, 3.09, s.Points[len(s.Points)-1].X, 1e-2)

	labels := map[string]float64{}
	for _, p := range s.Points {
		if p.Label != "" {
			labels[p.Label] = p.X
		}
	}
	assert.InDelta(t, -1.645, labels["5%"], 1e-3)
	assert.InDelta(t, 0, labels["median"], 1e-9)
	assert.InDelta(t, 1.645, labels["95%"], 1e-3)
	assert.Nil(t, c.Legend)
}

func TestDistChartQuantile(t *testing.T) {
	d, err := parseDistribution("exponential", 1, 0)
	require.NoError(t, err)
	c := distChart(models.DefaultStyle(), d, plot.DistQuantile, 11)

	s := c.Series[0]
	assert.Equal(t, 0.0, s.Points[0].X)
	assert.Equal(t, 1.0, s.Points[len(s.Points)-1].X)
	assert.Equal(t, "p", c.XAxis.Title)
	for _, p := range s.Points {
		if p.Label == "median" {
			assert.Equal(t, 0.5, p.X)
		}
	}
}

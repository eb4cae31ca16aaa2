package main

import (
	"testing"

	"github.com/pivolan/numchart/domain/models"
	"github.com/pivolan/numchart/plot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitModelExactData(t *testing.T) {
	x, y := decayData(40, 0)
	r, err := fitModel(expDecay, x, y, []float64{1, 1, 0})
	require.NoError(t, err)

	assert.InDelta(t, 3, r.Params[0], 1e-2)
	assert.InDelta(t, 1.2, r.Params[1], 1e-2)
	assert.InDelta(t, 0.5, r.Params[2], 1e-2)
	assert.Less(t, r.RSS, 1e-4)
	assert.Len(t, r.Predicted, len(x))
	for i := range y {
		assert.InDelta(t, y[i], r.Predicted[i], 1e-2)
	}
}

func TestFitModelIntervalsContainEstimate(t *testing.T) {
	x, y := decayData(60, 0.05)
	r, err := fitModel(expDecay, x, y, []float64{1, 1, 0})
	require.NoError(t, err)
	if len(r.Lower) == 0 {
		t.Skip("singular hessian")
	}
	require.Len(t, r.Upper, len(r.Params))
	for i, p := range r.Params {
		assert.LessOrEqual(t, r.Lower[i], p)
		assert.GreaterOrEqual(t, r.Upper[i], p)
	}

	c, err := plot.FitChart(models.DefaultStyle(), r, "decay", "x", "y")
	require.NoError(t, err)
	assert.Len(t, c.Series, 2)
	assert.Len(t, c.Titles, 2+len(r.Params))
}

func TestFitModelErrors(t *testing.T) {
	_, err := fitModel(expDecay, []float64{1, 2}, []float64{1}, []float64{1, 1, 0})
	assert.ErrorIs(t, err, plot.ErrSizeMismatch)

	_, err = fitModel(expDecay, []float64{1, 2}, []float64{1, 2}, []float64{1, 1, 0})
	assert.ErrorIs(t, err, plot.ErrInvalidArgument)
}

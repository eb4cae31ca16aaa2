package main

import (
	"testing"

	"github.com/pivolan/numchart/domain/models"
	"github.com/pivolan/numchart/plot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestKMeansSeparatesGroups(t *testing.T) {
	data := mat.NewDense(6, 2, []float64{
		0, 0,
		0.1, 0.2,
		10, 10,
		0.2, 0.1,
		10.1, 9.9,
		9.8, 10.2,
	})
	labels, centers, err := kmeans(data, 2)
	require.NoError(t, err)

	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[0], labels[3])
	assert.Equal(t, labels[2], labels[4])
	assert.Equal(t, labels[2], labels[5])
	assert.NotEqual(t, labels[0], labels[2])

	assert.InDelta(t, 0.1, centers.At(labels[0], 0), 1e-9)
	assert.InDelta(t, 0.1, centers.At(labels[0], 1), 1e-9)
	assert.InDelta(t, 9.9667, centers.At(labels[2], 0), 1e-3)
}

func TestKMeansInvalidK(t *testing.T) {
	data := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
	_, _, err := kmeans(data, 0)
	assert.ErrorIs(t, err, plot.ErrInvalidArgument)
	_, _, err = kmeans(data, 3)
	assert.ErrorIs(t, err, plot.ErrInvalidArgument)
}

func TestClusterChart(t *testing.T) {
	data := blobs(3, 20, 0.3)
	c, err := clusterChart(models.DefaultStyle(), data, 3)
	require.NoError(t, err)

	require.Len(t, c.Series, 4)
	total := 0
	for _, s := range c.Series[:3] {
		total += s.Len()
		assert.Equal(t, models.KindScatter, s.Kind)
	}
	assert.Equal(t, 60, total)
	assert.Equal(t, "centers", c.Series[3].Name)
	assert.Equal(t, 3, c.Series[3].Len())
	assert.Equal(t, models.MarkerCross, c.Series[3].Marker)
	assert.NotNil(t, c.Legend)
}

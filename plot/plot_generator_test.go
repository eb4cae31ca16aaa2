package plot

import (
	"bytes"
	"testing"
	"time"

	"github.com/pivolan/numchart/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func sampleChart(t *testing.T) *models.Chart {
	t.Helper()
	style := models.DefaultStyle()
	line := SampleFunction("square", models.KindLine, square, 0, 4, 9)
	AnnotateKeys(line, square, []KeyValue{{X: 2, Label: "two"}})
	points, err := NewSeries("points", models.KindScatter, Values([]float64{0, 1, 3}), Values([]float64{1, 2, 8}))
	require.NoError(t, err)
	return ToChart(style, []*models.Series{line, points}, []string{"Test chart", "subtitle"}, "x", "y")
}

func TestRenderGoChartPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderGoChart(sampleChart(t), &buf, chart.PNG))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderGoChartSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderGoChart(sampleChart(t), &buf, chart.SVG))
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "Test chart")
	assert.Contains(t, buf.String(), "two")
}

func TestRenderGoChartBar(t *testing.T) {
	s := NewSeriesY("count", models.KindColumn, models.AxisUnit{Start: 1, Step: 1}, Values([]float64{3, 7, 2}))
	c := ToChart(models.DefaultStyle(), []*models.Series{s}, []string{"Bars"}, "n", "count")

	var buf bytes.Buffer
	require.NoError(t, renderGoChart(c, &buf, chart.PNG))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderGoChartEmpty(t *testing.T) {
	c := ToChart(models.DefaultStyle(), nil, []string{"Empty"}, "", "")
	var buf bytes.Buffer
	assert.Error(t, renderGoChart(c, &buf, chart.PNG))
}

func TestBarLabels(t *testing.T) {
	s := NewSeriesY("v", models.KindColumn, models.AxisUnit{Start: 1, Step: 1}, Values([]float64{1, 2}))
	s.Points[1].Label = "second"
	c := ToChart(models.DefaultStyle(), []*models.Series{s}, []string{"Bars"}, "", "")
	data := newDataSeriesForGraph(c, s)
	assert.Equal(t, []string{"1", "second"}, data.getLabels())
	assert.Equal(t, "Bars", data.GetNameGraph())

	c.XAxis.TimeUnit = "day"
	s.Points[0].X = float64(time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC).Unix())
	data = newDataSeriesForGraph(c, s)
	assert.Equal(t, "2024-05-17", data.getLabels()[0])
}

func TestFormatTimeValue(t *testing.T) {
	v := float64(time.Date(2023, 11, 2, 14, 30, 0, 0, time.UTC).Unix())
	assert.Equal(t, "2023", formatTimeValue(v, "year"))
	assert.Equal(t, "2023-11", formatTimeValue(v, "month"))
	assert.Equal(t, "2023-11-02", formatTimeValue(v, "day"))
	assert.Equal(t, "2023-11-02 14:30", formatTimeValue(v, "hour"))
	assert.Equal(t, "1.5", formatTimeValue(1.5, ""))
}

func TestColorFromHex(t *testing.T) {
	c := colorFromHex("#ff0000", chart.ColorBlack)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, chart.ColorBlack, colorFromHex("nope", chart.ColorBlack))
}

func TestCalculateGridStep(t *testing.T) {
	tests := []struct {
		name     string
		maxValue float64
		want     float64
	}{
		{"zero", 0, 0},
		{"negative", -5, 0},
		{"tiny", 1e-12, 1e-10},
		{"one", 1, 0.2},
		{"two", 2, 0.5},
		{"five", 5, 1},
		{"eight", 8, 2},
		{"seventy", 70, 20},
		{"hundreds", 450, 100},
		{"thousands", 9000, 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, calculateGridStep(tt.maxValue), 1e-12)
		})
	}
}

func TestGenerateGrid(t *testing.T) {
	s := NewSeriesY("v", models.KindColumn, models.AxisUnit{Start: 1, Step: 1}, Values([]float64{1, 5}))
	c := ToChart(models.DefaultStyle(), []*models.Series{s}, nil, "", "")
	ticks := newDataSeriesForGraph(c, s).generateGrid()
	require.Len(t, ticks, 6)
	assert.Equal(t, 5.0, ticks[5].Value)
	assert.Equal(t, "5.0", ticks[5].Label)

	zero := NewSeriesY("z", models.KindColumn, models.AxisUnit{}, Values([]float64{0}))
	assert.Nil(t, newDataSeriesForGraph(c, zero).generateGrid())
}

func TestRenderGoChartBarAllZero(t *testing.T) {
	s := NewSeriesY("std", models.KindColumn, models.AxisUnit{Start: 1, Step: 1}, Values([]float64{0, 0, 0}))
	c := ToChart(models.DefaultStyle(), []*models.Series{s}, []string{"Zeros"}, "", "")

	var buf bytes.Buffer
	require.NoError(t, renderGoChart(c, &buf, chart.PNG))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

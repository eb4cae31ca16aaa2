package plot

import (
	"fmt"
	"time"

	"github.com/pivolan/numchart/domain/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// dataSeriesForGraph - одна столбчатая серия графика в виде, удобном для chart.BarChart
type dataSeriesForGraph struct {
	series    *models.Series
	nameYAxis string
	nameGraph string
	timeUnit  string
}

func newDataSeriesForGraph(c *models.Chart, s *models.Series) dataSeriesForGraph {
	return dataSeriesForGraph{
		series:    s,
		nameYAxis: c.YAxis.Title,
		nameGraph: c.MainTitle(),
		timeUnit:  c.XAxis.TimeUnit,
	}
}

func (d dataSeriesForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataSeriesForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataSeriesForGraph) getYValues() []float64 {
	return d.series.YValues()
}

// getLabels возвращает подписи столбцов: подпись точки, дату или число
func (d dataSeriesForGraph) getLabels() []string {
	labels := make([]string, d.lenXValues())
	for i, p := range d.series.Points {
		switch {
		case p.Label != "":
			labels[i] = p.Label
		case d.timeUnit != "":
			labels[i] = formatTimeValue(p.X, d.timeUnit)
		default:
			labels[i] = fmt.Sprintf("%g", p.X)
		}
	}
	return labels
}

func (d dataSeriesForGraph) lenXValues() int {
	return d.series.Len()
}

func (d dataSeriesForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	// Проверка входных параметров
	if d.lenXValues() <= 0 || minBarWidth <= 0 {
		return 0, 0
	}
	x := 1.1
	if d.lenXValues() < 2 {
		x = 10.0
	} else if d.lenXValues() < 10 {
		x = 3.0
	}

	// Константы для отступов и пропорций
	const (
		paddingY     = 100        // отступ для оси Y и подписей
		spacingRatio = 0.2        // соотношение отступа между столбцами к ширине столбца
		aspectRatio  = 9.0 / 16.0 // соотношение сторон по умолчанию
	)

	// Рассчитываем ширину
	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(d.lenXValues()) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

func (d dataSeriesForGraph) generateBarValues() []chart.Value {
	var bars []chart.Value
	fill := colorFromHex(d.series.Color, drawing.ColorPurple).WithAlpha(100)
	for i, label := range d.getLabels() {
		bars = append(bars, chart.Value{
			Value: d.series.Points[i].Y,
			Label: label,
			Style: chart.Style{
				FillColor: fill,
			},
		})
	}
	return bars
}

func (d dataSeriesForGraph) generateGrid() []chart.Tick {
	var ticks []chart.Tick
	max := findMaxValue(d.getYValues())
	gridStep := calculateGridStep(max)
	if gridStep <= 0 {
		return nil
	}
	for i := 0.0; i <= max; i += gridStep {
		ticks = append(ticks, chart.Tick{
			Value: i,
			Label: fmt.Sprintf("%.1f", i),
		})
	}
	return ticks
}

// formatTimeValue форматирует unix-время с точностью до единицы оси
func formatTimeValue(v float64, unit string) string {
	t := time.Unix(int64(v), 0).UTC()
	switch unit {
	case "year":
		return fmt.Sprintf("%d", t.Year())
	case "month":
		return fmt.Sprintf("%d-%02d", t.Year(), t.Month())
	case "day":
		return fmt.Sprintf("%d-%02d-%02d", t.Year(), t.Month(), t.Day())
	case "hour":
		return fmt.Sprintf("%d-%02d-%02d %02d:%02d", t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute())
	default:
		return fmt.Sprintf("%g", v)
	}
}

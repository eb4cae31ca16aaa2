package plot

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pivolan/numchart/domain/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// renderGoChart отрисовывает график в PNG или SVG.
// Одиночная столбчатая серия рисуется как chart.BarChart, остальное - как chart.Chart.
func renderGoChart(c *models.Chart, w io.Writer, provider chart.RendererProvider) error {
	if len(c.Series) == 1 && isBarKind(c.Series[0].Kind) {
		return DrawPlotBar(newDataSeriesForGraph(c, c.Series[0]), c, w, provider)
	}
	return DrawContinuous(c, w, provider)
}

func isBarKind(kind models.SeriesKind) bool {
	return kind == models.KindColumn || kind == models.KindBar
}

// DrawContinuous рисует линии, точки и области в общей системе координат
func DrawContinuous(c *models.Chart, w io.Writer, provider chart.RendererProvider) error {
	var series []chart.Series
	var annotations []chart.Value2
	for i, s := range c.Series {
		if s.Len() == 0 {
			continue
		}
		series = append(series, continuousSeries(s, i))
		for _, p := range s.Points {
			if p.Label != "" {
				annotations = append(annotations, chart.Value2{XValue: p.X, YValue: p.Y, Label: p.Label})
			}
		}
	}
	if len(series) == 0 {
		return fmt.Errorf("error rendering chart: no points to draw")
	}
	if len(annotations) > 0 {
		series = append(series, chart.AnnotationSeries{Annotations: annotations})
	}

	subtitles := c.Subtitles()
	titleFont := titleFontOf(c)
	xFormatter := func(v interface{}) string {
		if vf, isFloat := v.(float64); isFloat {
			if c.XAxis.TimeUnit != "" {
				return formatTimeValue(vf, c.XAxis.TimeUnit)
			}
			return fmt.Sprintf("%.4g", vf)
		}
		return ""
	}

	// Настраиваем график
	graph := chart.Chart{
		Title:      c.MainTitle(),
		TitleStyle: chart.Style{FontSize: titleFont.Size},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40 + 18*len(subtitles),
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: drawing.ColorWhite,
		},
		Width:  c.Width,
		Height: c.Height,
		XAxis: chart.XAxis{
			Name:           c.XAxis.Title,
			NameStyle:      chart.Style{FontSize: c.XAxis.Font.Size},
			ValueFormatter: xFormatter,
			GridMajorStyle: gridStyle(c.XAxis),
		},
		YAxis: chart.YAxis{
			Name:      c.YAxis.Title,
			NameStyle: chart.Style{FontSize: c.YAxis.Font.Size},
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.4g", vf)
				}
				return ""
			},
			GridMajorStyle: gridStyle(c.YAxis),
		},
		Series: series,
	}
	if len(subtitles) > 0 {
		graph.Elements = append(graph.Elements, subtitleElement(subtitles))
	}
	if c.Legend != nil {
		graph.Elements = append(graph.Elements, chart.Legend(&graph))
	}
	graph.Background.StrokeWidth = 1
	graph.Background.StrokeColor = drawing.ColorFromHex("efefef")

	err := graph.Render(provider, w)
	if err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}
	return nil
}

func continuousSeries(s *models.Series, index int) chart.Series {
	color := colorFromHex(s.Color, chart.GetDefaultColor(index))
	style := chart.Style{
		StrokeColor: color,
		StrokeWidth: 2,
	}
	switch s.Kind {
	case models.KindScatter:
		style.StrokeWidth = chart.Disabled
		style.DotWidth = float64(s.MarkerSize)
		style.DotColor = color
	case models.KindColumn, models.KindBar:
		// Создаем область под кривой
		style.FillColor = color.WithAlpha(100)
		style.StrokeWidth = 1
	default:
		if s.Marker != "" && s.Marker != models.MarkerNone {
			style.DotWidth = float64(s.MarkerSize)
			style.DotColor = color
		}
	}
	return &chart.ContinuousSeries{
		Name:    s.Name,
		XValues: s.XValues(),
		YValues: s.YValues(),
		Style:   style,
	}
}

func gridStyle(a models.Axis) chart.Style {
	if a.GridColor == "" {
		return chart.Style{}
	}
	return chart.Style{
		StrokeColor: colorFromHex(a.GridColor, drawing.ColorFromHex("d3d3d3")),
		StrokeWidth: 1,
	}
}

// subtitleElement печатает подзаголовки над областью графика
func subtitleElement(subtitles []string) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		r.SetFont(defaults.GetFont())
		r.SetFontSize(11)
		r.SetFontColor(drawing.ColorFromHex("555555"))
		for i, text := range subtitles {
			y := canvasBox.Top - 18*(len(subtitles)-i) + 6
			r.Text(text, canvasBox.Left, y)
		}
	}
}

func titleFontOf(c *models.Chart) models.Font {
	for _, t := range c.Titles {
		if t.Main {
			return t.Font
		}
	}
	return models.Font{}
}

func colorFromHex(hex string, fallback drawing.Color) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 && len(hex) != 3 {
		return fallback
	}
	return drawing.ColorFromHex(hex)
}

func calculateGridStep(maxValue float64) float64 {
	// Проверка на корректность входного значения
	if maxValue <= 0 {
		return 0
	}

	// Обработка очень маленьких чисел
	if maxValue < 1e-10 {
		return 1e-10
	}

	// Находим порядок величины максимального значения
	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))

	// Нормализуем значение к диапазону [1, 10)
	normalized := maxValue / magnitude

	// Шаг 0.2, 0.5, 1 или 2 порядка величины
	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}

	// Возвращаем окончательный шаг с учетом порядка величины
	finalStep := step * magnitude

	// Округляем большие шаги до "красивых" чисел
	if finalStep >= 1000 {
		// Округляем до сотен для тысяч
		return math.Round(finalStep/100) * 100
	}
	if finalStep >= 100 {
		// Округляем до десятков для сотен
		return math.Round(finalStep/10) * 10
	}

	return finalStep
}

// DrawPlotBar рисует одну столбчатую серию
func DrawPlotBar(data dataForGraph, c *models.Chart, w io.Writer, provider chart.RendererProvider) error {
	barValues := data.generateBarValues()
	if len(barValues) == 0 {
		return fmt.Errorf("error rendering chart: no bars to draw")
	}
	paddingX := customizePaddingXBottom(barValues)
	width, height := data.calculateChartDimensions(100)
	if c.Width > 0 && c.Width < width {
		width, height = c.Width, c.Height
	}
	bar := chart.BarChart{}
	bar.Title = data.GetNameGraph()
	bar.Background = chart.Style{
		StrokeColor: chart.ColorBlack,
		Padding: chart.Box{
			Bottom: paddingX,
			Top:    50,
		},
	}
	bar.Height = height + 50
	bar.Width = width + paddingX + 50
	bar.BarWidth = 60
	bar.Bars = barValues
	yMin := math.Min(0, findMinValue(data.getYValues()))
	yMax := math.Max(0, findMaxValue(data.getYValues()))
	if yMax == yMin {
		// все столбцы нулевые: go-chart не рисует пустой диапазон
		yMax = yMin + 1
	}
	bar.YAxis = chart.YAxis{
		Name: data.getNameYAxis(),
		Range: &chart.ContinuousRange{
			Min: yMin,
			Max: yMax,
		},
		Style: chart.Style{
			StrokeWidth: 2, // Толщина линии
			StrokeColor: chart.ColorBlack,
			FontSize:    17,
		},
		Ticks: data.generateGrid(),
		GridMinorStyle: chart.Style{
			StrokeColor: chart.ColorBlack,
			StrokeWidth: 1,
			DotWidth:    1,
		},
		GridMajorStyle: chart.Style{
			StrokeColor:     chart.ColorBlack,
			StrokeWidth:     1,
			DotWidth:        1,
			StrokeDashArray: []float64{5.0, 5.0}, // Пунктирная линия
		},
	}
	bar.XAxis = chart.Style{
		StrokeWidth:         2, // Толщина линии
		StrokeColor:         chart.ColorBlack,
		TextRotationDegrees: 88,
		FontSize:            17,
	}

	err := bar.Render(provider, w)
	if err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}
	return nil
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

func findMinValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	min := y[0]
	for _, v := range y {
		if v < min {
			min = v
		}
	}
	return min
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return int(count * 8)
}

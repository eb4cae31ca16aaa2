package plot

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pivolan/numchart/domain/models"
	"github.com/wcharczuk/go-chart/v2/drawing"
	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// siTicks подписывает деления оси с SI-префиксами (1k, 2.5M, ...)
type siTicks struct{}

func (siTicks) Ticks(min, max float64) []gonumplot.Tick {
	ticks := gonumplot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = humanize.SIWithDigits(ticks[i].Value, 2, "")
		}
	}
	return ticks
}

// newGonumPlot переводит график в gonum/plot для векторных форматов
func newGonumPlot(c *models.Chart) (*gonumplot.Plot, error) {
	p := gonumplot.New()
	p.Title.Text = strings.Join(append([]string{c.MainTitle()}, c.Subtitles()...), "\n")
	if f := titleFontOf(c); f.Size > 0 {
		p.Title.TextStyle.Font.Size = vg.Points(f.Size)
	}
	p.X.Label.Text = c.XAxis.Title
	p.Y.Label.Text = c.YAxis.Title
	p.Y.Tick.Marker = siTicks{}
	if c.XAxis.TimeUnit != "" {
		p.X.Tick.Marker = gonumplot.TimeTicks{Format: timeLayout(c.XAxis.TimeUnit)}
	}

	if c.XAxis.GridColor != "" || c.YAxis.GridColor != "" {
		grid := plotter.NewGrid()
		grid.Vertical.Color = plotColor(c.XAxis.GridColor)
		grid.Horizontal.Color = plotColor(c.YAxis.GridColor)
		if c.XAxis.GridColor == "" {
			grid.Vertical.Color = nil
		}
		if c.YAxis.GridColor == "" {
			grid.Horizontal.Color = nil
		}
		p.Add(grid)
	}

	for _, s := range c.Series {
		if s.Len() == 0 {
			continue
		}
		xys := make(plotter.XYs, s.Len())
		for i, pt := range s.Points {
			xys[i].X = pt.X
			xys[i].Y = pt.Y
		}
		col := plotColor(s.Color)
		var thumb gonumplot.Thumbnailer
		switch s.Kind {
		case models.KindScatter:
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, fmt.Errorf("could not create scatter %q: %w", s.Name, err)
			}
			sc.GlyphStyle.Color = col
			sc.GlyphStyle.Shape = glyphShape(s.Marker)
			sc.GlyphStyle.Radius = vg.Points(float64(s.MarkerSize) / 2)
			p.Add(sc)
			thumb = sc
		case models.KindColumn, models.KindBar:
			h, err := plotter.NewHistogram(xyHistogram(xys), len(xys))
			if err != nil {
				return nil, fmt.Errorf("could not create columns %q: %w", s.Name, err)
			}
			h.FillColor = col
			h.LineStyle.Color = col
			p.Add(h)
			thumb = h
		default:
			l, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("could not create line %q: %w", s.Name, err)
			}
			l.LineStyle.Color = col
			l.LineStyle.Width = vg.Points(1.5)
			p.Add(l)
			thumb = l
		}
		if c.Legend != nil {
			p.Legend.Add(s.Name, thumb)
		}
		if err := addLabels(p, s); err != nil {
			return nil, err
		}
	}
	p.Legend.Top = true
	return p, nil
}

// xyHistogram отдает точки серии как готовые столбцы гистограммы
type xyHistogram plotter.XYs

func (h xyHistogram) Len() int                    { return len(h) }
func (h xyHistogram) XY(i int) (float64, float64) { return h[i].X, h[i].Y }

func addLabels(p *gonumplot.Plot, s *models.Series) error {
	var labels plotter.XYLabels
	for _, pt := range s.Points {
		if pt.Label == "" {
			continue
		}
		labels.XYs = append(labels.XYs, plotter.XY{X: pt.X, Y: pt.Y})
		labels.Labels = append(labels.Labels, pt.Label)
	}
	if len(labels.Labels) == 0 {
		return nil
	}
	l, err := plotter.NewLabels(labels)
	if err != nil {
		return fmt.Errorf("could not create labels for %q: %w", s.Name, err)
	}
	p.Add(l)
	return nil
}

func renderGonum(c *models.Chart, w io.Writer, format string) error {
	p, err := newGonumPlot(c)
	if err != nil {
		return err
	}
	width, height := vg.Points(float64(c.Width)*0.75), vg.Points(float64(c.Height)*0.75)
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("could not render plot: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("could not write plot: %w", err)
	}
	return nil
}

func glyphShape(m models.MarkerStyle) draw.GlyphDrawer {
	switch m {
	case models.MarkerSquare:
		return draw.BoxGlyph{}
	case models.MarkerDiamond:
		return draw.PyramidGlyph{}
	case models.MarkerTriangle:
		return draw.TriangleGlyph{}
	case models.MarkerCross:
		return draw.CrossGlyph{}
	default:
		return draw.CircleGlyph{}
	}
}

func plotColor(hex string) color.Color {
	c := colorFromHex(hex, drawing.ColorBlack)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func timeLayout(unit string) string {
	switch unit {
	case "year":
		return "2006"
	case "month":
		return "2006-01"
	case "hour":
		return "2006-01-02 15:04"
	default:
		return "2006-01-02"
	}
}

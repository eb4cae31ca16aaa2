package plot

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pivolan/numchart/domain/models"
)

// newECharts собирает интерактивный график: базовый график с числовыми осями,
// на который накладываются точечные и столбчатые серии.
func newECharts(c *models.Chart) *charts.Line {
	base := charts.NewLine()
	base.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: c.MainTitle(),
			Width:     fmt.Sprintf("%dpx", c.Width),
			Height:    fmt.Sprintf("%dpx", c.Height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    c.MainTitle(),
			Subtitle: strings.Join(c.Subtitles(), "\n"),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XAxis.Title, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YAxis.Title, Type: "value"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(c.Legend != nil), Top: "bottom"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item"}),
	)

	for _, s := range c.Series {
		if s.Len() == 0 {
			continue
		}
		color := charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color})
		switch s.Kind {
		case models.KindScatter:
			scatter := charts.NewScatter()
			data := make([]opts.ScatterData, s.Len())
			for i, p := range s.Points {
				data[i] = opts.ScatterData{
					Name:       p.Label,
					Value:      []interface{}{p.X, p.Y},
					Symbol:     echartsSymbol(s.Marker),
					SymbolSize: s.MarkerSize * 2,
				}
			}
			scatter.AddSeries(s.Name, data, color)
			base.Overlap(scatter)
		case models.KindColumn, models.KindBar:
			bar := charts.NewBar()
			data := make([]opts.BarData, s.Len())
			for i, p := range s.Points {
				data[i] = opts.BarData{Name: p.Label, Value: []interface{}{p.X, p.Y}}
			}
			bar.AddSeries(s.Name, data, color)
			base.Overlap(bar)
		default:
			data := make([]opts.LineData, s.Len())
			for i, p := range s.Points {
				data[i] = opts.LineData{Name: p.Label, Value: []interface{}{p.X, p.Y}}
				if p.Label != "" {
					data[i].Symbol = echartsSymbol(p.Marker)
					data[i].SymbolSize = s.MarkerSize * 2
				}
			}
			base.AddSeries(s.Name, data, color)
		}
	}
	return base
}

func renderHTML(c *models.Chart, w io.Writer) error {
	if err := newECharts(c).Render(w); err != nil {
		return fmt.Errorf("error rendering page: %w", err)
	}
	return nil
}

func echartsSymbol(m models.MarkerStyle) string {
	switch m {
	case models.MarkerSquare:
		return "rect"
	case models.MarkerDiamond:
		return "diamond"
	case models.MarkerTriangle:
		return "triangle"
	case models.MarkerCross:
		return "pin"
	case models.MarkerNone:
		return "none"
	default:
		return "circle"
	}
}

package plot

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pivolan/numchart/domain/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func summaryTable(c *models.Chart) table.Writer {
	t := table.NewWriter()
	if title := c.MainTitle(); title != "" {
		t.SetTitle(title)
	}
	t.AppendHeader(table.Row{"Series", "Kind", "Points", "X min", "X max", "Y min", "Y max", "Y mean"})

	for _, s := range c.Series {
		row := table.Row{s.Name, s.Kind, humanize.Comma(int64(s.Len()))}
		if s.Len() == 0 {
			row = append(row, "-", "-", "-", "-", "-")
		} else {
			x, y := s.XValues(), s.YValues()
			row = append(row,
				formatFloat(floats.Min(x)),
				formatFloat(floats.Max(x)),
				formatFloat(floats.Min(y)),
				formatFloat(floats.Max(y)),
				formatFloat(stat.Mean(y, nil)),
			)
		}
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleLight)
	return t
}

// FormatTable печатает сводку по сериям графика
func FormatTable(c *models.Chart) string {
	return summaryTable(c).Render()
}

// FormatTableMarkdown то же самое в markdown
func FormatTableMarkdown(c *models.Chart) string {
	return summaryTable(c).RenderMarkdown()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 5, 64)
}

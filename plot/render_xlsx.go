package plot

import (
	"fmt"
	"io"
	"strings"

	"github.com/pivolan/numchart/domain/models"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Sheet1"

// renderXLSX пишет книгу Excel: данные серий на листе и нативный график над ними
func renderXLSX(c *models.Chart, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	byKind := map[models.SeriesKind][]excelize.ChartSeries{}
	var kinds []models.SeriesKind
	for i, s := range c.Series {
		if s.Len() == 0 {
			continue
		}
		xCol, yCol := 2*i+1, 2*i+2
		if err := writeColumn(f, xCol, s.Name+" x", s.XValues()); err != nil {
			return err
		}
		if err := writeColumn(f, yCol, s.Name, s.YValues()); err != nil {
			return err
		}
		categories, err := columnRange(xCol, s.Len())
		if err != nil {
			return err
		}
		values, err := columnRange(yCol, s.Len())
		if err != nil {
			return err
		}
		name, _ := excelize.CoordinatesToCellName(yCol, 1, true)
		cs := excelize.ChartSeries{
			Name:       xlsxSheet + "!" + name,
			Categories: categories,
			Values:     values,
		}
		if hex := strings.TrimPrefix(s.Color, "#"); hex != "" {
			cs.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hex}}
			cs.Line = excelize.ChartLine{Width: 1.5}
		}
		if s.Marker != "" && s.Marker != models.MarkerNone {
			cs.Marker = excelize.ChartMarker{Symbol: xlsxMarker(s.Marker), Size: s.MarkerSize}
		} else {
			cs.Marker = excelize.ChartMarker{Symbol: "none"}
		}
		if _, ok := byKind[s.Kind]; !ok {
			kinds = append(kinds, s.Kind)
		}
		byKind[s.Kind] = append(byKind[s.Kind], cs)
	}
	if len(kinds) == 0 {
		return fmt.Errorf("error rendering workbook: no points to draw")
	}

	charts := make([]*excelize.Chart, 0, len(kinds))
	for _, kind := range kinds {
		charts = append(charts, &excelize.Chart{
			Type:   xlsxChartType(kind),
			Series: byKind[kind],
		})
	}
	main := charts[0]
	main.Dimension = excelize.ChartDimension{Width: uint(c.Width), Height: uint(c.Height)}
	if title := c.MainTitle(); title != "" {
		main.Title = []excelize.RichTextRun{{Text: title}}
	}
	main.XAxis = excelize.ChartAxis{MajorGridLines: c.XAxis.GridColor != ""}
	main.YAxis = excelize.ChartAxis{MajorGridLines: c.YAxis.GridColor != ""}
	if c.XAxis.Title != "" {
		main.XAxis.Title = []excelize.RichTextRun{{Text: c.XAxis.Title}}
	}
	if c.YAxis.Title != "" {
		main.YAxis.Title = []excelize.RichTextRun{{Text: c.YAxis.Title}}
	}
	main.Legend = excelize.ChartLegend{Position: "none"}
	if c.Legend != nil {
		main.Legend = excelize.ChartLegend{Position: "right"}
	}

	anchor, _ := excelize.CoordinatesToCellName(2*len(c.Series)+2, 2)
	if err := f.AddChart(xlsxSheet, anchor, main, charts[1:]...); err != nil {
		return fmt.Errorf("error adding chart to workbook: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

func writeColumn(f *excelize.File, col int, header string, data []float64) error {
	cell, err := excelize.CoordinatesToCellName(col, 1)
	if err != nil {
		return err
	}
	column := make([]interface{}, 0, len(data)+1)
	column = append(column, header)
	for _, v := range data {
		column = append(column, v)
	}
	if err := f.SetSheetCol(xlsxSheet, cell, &column); err != nil {
		return fmt.Errorf("error writing column %q: %w", header, err)
	}
	return nil
}

func columnRange(col, n int) (string, error) {
	from, err := excelize.CoordinatesToCellName(col, 2, true)
	if err != nil {
		return "", err
	}
	to, err := excelize.CoordinatesToCellName(col, n+1, true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s!%s:%s", xlsxSheet, from, to), nil
}

func xlsxChartType(kind models.SeriesKind) excelize.ChartType {
	switch kind {
	case models.KindScatter:
		return excelize.Scatter
	case models.KindColumn:
		return excelize.Col
	case models.KindBar:
		return excelize.Bar
	default:
		return excelize.Line
	}
}

func xlsxMarker(m models.MarkerStyle) string {
	switch m {
	case models.MarkerSquare, models.MarkerDiamond, models.MarkerTriangle:
		return string(m)
	case models.MarkerCross:
		return "x"
	default:
		return "circle"
	}
}

package main

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pivolan/numchart/domain/models"
	"github.com/pivolan/numchart/plot"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

type NumberStats struct {
	Average   float64
	Median    float64
	Min       float64
	Max       float64
	StdDev    float64
	Count     int
	Quantiles map[float64]float64
	IQR       float64   // Межквартильный размах
	Outliers  []float64 // Выбросы
}

var quantileLevels = []float64{0.01, 0.025, 0.1, 0.25, 0.75, 0.9, 0.975, 0.99}

var numberRe = regexp.MustCompile(`-?\d*\.?\d+(?:[eE][-+]?\d+)?`)

// ExtractNumbers извлекает числа из текста, поддерживая различные разделители
func ExtractNumbers(text string) []float64 {
	matches := numberRe.FindAllString(text, -1)
	numbers := make([]float64, 0, len(matches))
	for _, match := range matches {
		if num, err := strconv.ParseFloat(match, 64); err == nil {
			numbers = append(numbers, num)
		}
	}
	return numbers
}

// AnalyzeNumbers вычисляет статистические метрики для массива чисел
func AnalyzeNumbers(numbers []float64) *NumberStats {
	if len(numbers) == 0 {
		return nil
	}

	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)

	quantiles := make(map[float64]float64, len(quantileLevels))
	for _, p := range quantileLevels {
		quantiles[p] = stat.Quantile(p, stat.LinInterp, sorted, nil)
	}
	iqr := quantiles[0.75] - quantiles[0.25]

	mean, std := stat.MeanStdDev(numbers, nil)
	if len(numbers) < 2 {
		std = 0
	}
	return &NumberStats{
		Average:   mean,
		Median:    stat.Quantile(0.5, stat.LinInterp, sorted, nil),
		Min:       sorted[0],
		Max:       sorted[len(sorted)-1],
		StdDev:    std,
		Count:     len(numbers),
		Quantiles: quantiles,
		IQR:       iqr,
		Outliers:  findOutliers(numbers, quantiles[0.25], quantiles[0.75], iqr),
	}
}

// findOutliers находит выбросы на основе межквартильного размаха
func findOutliers(numbers []float64, q1, q3, iqr float64) []float64 {
	outliers := make([]float64, 0)
	lowerBound := q1 - 1.5*iqr
	upperBound := q3 + 1.5*iqr
	for _, num := range numbers {
		if num < lowerBound || num > upperBound {
			outliers = append(outliers, num)
		}
	}
	return outliers
}

// FormatStats печатает статистику таблицей
func FormatStats(stats *NumberStats) string {
	if stats == nil {
		return "no numbers found"
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"count", stats.Count},
		{"mean", roundToTwo(stats.Average)},
		{"std dev", roundToTwo(stats.StdDev)},
		{"median", roundToTwo(stats.Median)},
		{"min", roundToTwo(stats.Min)},
		{"max", roundToTwo(stats.Max)},
	})
	t.AppendSeparator()
	for _, p := range quantileLevels {
		t.AppendRow(table.Row{fmt.Sprintf("p%g", p*100), roundToTwo(stats.Quantiles[p])})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"IQR", roundToTwo(stats.IQR)})
	if len(stats.Outliers) > 0 {
		t.AppendRow(table.Row{"outliers", fmt.Sprintf("%.2f", stats.Outliers)})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

// numbersChart строит гистограмму или эмпирическую квантильную функцию с квартилями
func numbersChart(style models.Style, numbers []float64, bins int, quantile bool) (*models.Chart, error) {
	stats := AnalyzeNumbers(numbers)
	if stats == nil {
		return nil, fmt.Errorf("no numbers: %w", plot.ErrInvalidArgument)
	}
	subtitle := fmt.Sprintf("n = %d, mean = %.4g, median = %.4g", stats.Count, stats.Average, stats.Median)

	if !quantile {
		s, err := plot.HistogramSeries("count", numbers, bins)
		if err != nil {
			return nil, err
		}
		return plot.ToChart(style, []*models.Series{s}, []string{"Histogram", subtitle}, "value", "count"), nil
	}

	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)
	f := func(p float64) float64 { return stat.Quantile(p, stat.LinInterp, sorted, nil) }
	s := plot.SampleFunction("quantile", models.KindLine, f, 0, 1, int(math.Max(float64(len(sorted)), 2)))
	plot.AnnotateKeys(s, f, []plot.KeyValue{
		{X: 0.25, Label: "Q1"},
		{X: 0.5, Label: "median"},
		{X: 0.75, Label: "Q3"},
	})
	series := []*models.Series{s}
	if len(stats.Outliers) > 0 {
		var ps, vs []float64
		for _, v := range stats.Outliers {
			ps = append(ps, stat.CDF(v, stat.Empirical, sorted, nil))
			vs = append(vs, v)
		}
		out, err := plot.NewSeries("outliers", models.KindScatter, plot.Values(ps), plot.Values(vs))
		if err != nil {
			return nil, err
		}
		series = append(series, out)
	}
	return plot.ToChart(style, series, []string{"Empirical quantiles", subtitle}, "p", "value"), nil
}

// roundToTwo округляет число до двух знаков после запятой
func roundToTwo(num float64) float64 {
	return math.Round(num*100) / 100
}

func newStatsCmd() *cobra.Command {
	var bins int
	var quantile bool
	cmd := &cobra.Command{
		Use:   "stats [numbers...]",
		Short: "Describe numbers from arguments or stdin and plot their distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := currentStyle()
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("error reading stdin: %w", err)
				}
				text = string(data)
			}
			numbers := ExtractNumbers(text)
			fmt.Fprintln(cmd.OutOrStdout(), FormatStats(AnalyzeNumbers(numbers)))
			if len(numbers) == 0 {
				return nil
			}
			c, err := numbersChart(style, numbers, bins, quantile)
			if err != nil {
				return err
			}
			return emit(cmd, c)
		},
	}
	cmd.Flags().IntVar(&bins, "bins", 10, "Histogram bins")
	cmd.Flags().BoolVar(&quantile, "quantile", false, "Plot empirical quantiles with quartiles marked")
	return cmd
}

package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/pivolan/numchart/domain/models"
	"github.com/pivolan/numchart/plot"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat/distuv"
)

type distribution interface {
	plot.Distribution
	Mean() float64
	StdDev() float64
}

// parseDistribution создает распределение по имени и параметрам
func parseDistribution(name string, a, b float64) (distribution, error) {
	switch strings.ToLower(name) {
	case "normal":
		return distuv.Normal{Mu: a, Sigma: b}, nil
	case "lognormal":
		return distuv.LogNormal{Mu: a, Sigma: b}, nil
	case "gamma":
		return distuv.Gamma{Alpha: a, Beta: b}, nil
	case "beta":
		return distuv.Beta{Alpha: a, Beta: b}, nil
	case "exponential":
		return distuv.Exponential{Rate: a}, nil
	case "student":
		return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: a}, nil
	case "weibull":
		return distuv.Weibull{K: a, Lambda: b}, nil
	}
	return nil, fmt.Errorf("distribution %q: %w", name, plot.ErrInvalidArgument)
}

func parseDistFunc(name string) (plot.DistFunc, error) {
	switch strings.ToLower(name) {
	case "pdf":
		return plot.DistPDF, nil
	case "cdf":
		return plot.DistCDF, nil
	case "quantile", "icdf":
		return plot.DistQuantile, nil
	}
	return 0, fmt.Errorf("distribution function %q: %w", name, plot.ErrInvalidArgument)
}

// distRange подбирает интервал по x, покрывающий почти всю массу распределения
func distRange(d distribution) (float64, float64) {
	lo, hi := d.Quantile(0.001), d.Quantile(0.999)
	if math.IsInf(lo, 0) || math.IsNaN(lo) {
		lo = d.Mean() - 4*d.StdDev()
	}
	if math.IsInf(hi, 0) || math.IsNaN(hi) {
		hi = d.Mean() + 4*d.StdDev()
	}
	return lo, hi
}

// distKeys отмечает 5%, медиану и 95%; для квантильной функции ключи - вероятности
func distKeys(d distribution, fn plot.DistFunc) []plot.KeyValue {
	probs := []float64{0.05, 0.5, 0.95}
	labels := []string{"5%", "median", "95%"}
	keys := make([]plot.KeyValue, len(probs))
	for i, p := range probs {
		x := p
		if fn != plot.DistQuantile {
			x = d.Quantile(p)
		}
		keys[i] = plot.KeyValue{X: x, Label: labels[i]}
	}
	return keys
}

func distChart(style models.Style, d distribution, fn plot.DistFunc, points int) *models.Chart {
	xmin, xmax := distRange(d)
	if fn == plot.DistQuantile {
		xmin, xmax = 0, 1
	}
	return plot.DistributionChart(style, d, fn, xmin, xmax, points, distKeys(d, fn))
}

func newDistCmd() *cobra.Command {
	var name, fnName string
	var a, b float64
	var points int
	cmd := &cobra.Command{
		Use:   "dist",
		Short: "Plot PDF, CDF or inverse CDF of a distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := currentStyle()
			if err != nil {
				return err
			}
			d, err := parseDistribution(name, a, b)
			if err != nil {
				return err
			}
			fn, err := parseDistFunc(fnName)
			if err != nil {
				return err
			}
			c := distChart(style, d, fn, points)
			c.Titles = append(c.Titles, models.Title{
				Text: fmt.Sprintf("%s(%g, %g)", name, a, b),
				Font: style.SubtitleFont,
			})
			return emit(cmd, c)
		},
	}
	cmd.Flags().StringVar(&name, "dist", "normal", "normal, lognormal, gamma, beta, exponential, student, weibull")
	cmd.Flags().StringVar(&fnName, "func", "pdf", "pdf, cdf or quantile")
	cmd.Flags().Float64VarP(&a, "a", "a", 0, "First parameter (mu, alpha, rate, nu or k)")
	cmd.Flags().Float64VarP(&b, "b", "b", 1, "Second parameter (sigma, beta or lambda)")
	cmd.Flags().IntVar(&points, "points", 200, "Number of samples")
	return cmd
}

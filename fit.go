package main

import (
	"fmt"
	"math"

	"github.com/pivolan/numchart/plot"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat/distuv"
)

// 95% двусторонний квантиль нормального распределения
const z95 = 1.959963984540054

// model вычисляет значение модели в точке x для параметров p
type model func(x float64, p []float64) float64

// expDecay: a*exp(-b*x) + c
func expDecay(x float64, p []float64) float64 {
	return p[0]*math.Exp(-p[1]*x) + p[2]
}

// fitModel подгоняет параметры методом Нелдера-Мида по сумме квадратов остатков.
// Доверительные интервалы считаются по гессиану RSS в найденной точке.
func fitModel(f model, x, y, init []float64) (plot.FitResult, error) {
	if len(x) != len(y) {
		return plot.FitResult{}, fmt.Errorf("fit %d x values to %d y values: %w", len(x), len(y), plot.ErrSizeMismatch)
	}
	if len(x) <= len(init) {
		return plot.FitResult{}, fmt.Errorf("fit %d parameters to %d points: %w", len(init), len(x), plot.ErrInvalidArgument)
	}

	rss := func(p []float64) float64 {
		var sum float64
		for i := range x {
			r := y[i] - f(x[i], p)
			sum += r * r
		}
		return sum
	}

	res, err := optimize.Minimize(optimize.Problem{Func: rss}, init, &optimize.Settings{
		Converger: &optimize.FunctionConverge{Absolute: 1e-12, Iterations: 200},
	}, &optimize.NelderMead{})
	if err != nil {
		return plot.FitResult{}, fmt.Errorf("error fitting model: %w", err)
	}

	params := res.X
	r := plot.FitResult{
		X:         x,
		Observed:  y,
		Predicted: make([]float64, len(x)),
		Params:    params,
		RSS:       res.F,
	}
	for i := range x {
		r.Predicted[i] = f(x[i], params)
	}

	var h mat.SymDense
	fd.Hessian(&h, rss, params, nil)
	var inv mat.Dense
	if err := inv.Inverse(&h); err != nil {
		// вырожденный гессиан: параметры без интервалов
		return r, nil
	}
	sigma2 := res.F / float64(len(x)-len(params))
	r.Lower = make([]float64, len(params))
	r.Upper = make([]float64, len(params))
	for i := range params {
		se := math.Sqrt(math.Abs(2 * sigma2 * inv.At(i, i)))
		r.Lower[i] = params[i] - z95*se
		r.Upper[i] = params[i] + z95*se
	}
	return r, nil
}

// decayData генерирует зашумленную экспоненту
func decayData(n int, noise float64) ([]float64, []float64) {
	x := make([]float64, n)
	floats.Span(x, 0, 5)
	y := make([]float64, n)
	eps := distuv.Normal{Mu: 0, Sigma: noise}
	truth := []float64{3, 1.2, 0.5}
	for i := range x {
		y[i] = expDecay(x[i], truth)
		if noise > 0 {
			y[i] += eps.Rand()
		}
	}
	return x, y
}

func newFitCmd() *cobra.Command {
	var points int
	var noise float64
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit a*exp(-b*x)+c to noisy data and plot observed vs fitted",
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := currentStyle()
			if err != nil {
				return err
			}
			if points < 2 {
				return fmt.Errorf("points %d: %w", points, plot.ErrInvalidArgument)
			}
			x, y := decayData(points, noise)
			r, err := fitModel(expDecay, x, y, []float64{1, 1, 0})
			if err != nil {
				return err
			}
			c, err := plot.FitChart(style, r, "a*exp(-b*x)+c", "x", "y")
			if err != nil {
				return err
			}
			return emit(cmd, c)
		},
	}
	cmd.Flags().IntVar(&points, "points", 50, "Number of samples")
	cmd.Flags().Float64Var(&noise, "noise", 0.05, "Standard deviation of the noise")
	return cmd
}

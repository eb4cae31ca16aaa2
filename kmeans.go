package main

import (
	"fmt"
	"math"

	"github.com/pivolan/numchart/domain/models"
	"github.com/pivolan/numchart/plot"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const kmeansMaxIter = 100

// kmeans раскладывает строки data по k кластерам алгоритмом Ллойда.
// Начальные центры выбираются детерминированно: первая строка, затем каждый
// раз самая дальняя от уже выбранных.
func kmeans(data mat.Matrix, k int) (plot.Assignment, *mat.Dense, error) {
	rows, cols := data.Dims()
	if k <= 0 || k > rows {
		return nil, nil, fmt.Errorf("k = %d for %d rows: %w", k, rows, plot.ErrInvalidArgument)
	}

	points := make([][]float64, rows)
	for i := range points {
		points[i] = mat.Row(nil, i, data)
	}

	centers := mat.NewDense(k, cols, nil)
	centers.SetRow(0, points[0])
	dist := make([]float64, rows)
	for i := range dist {
		dist[i] = floats.Distance(points[i], points[0], 2)
	}
	for c := 1; c < k; c++ {
		far := floats.MaxIdx(dist)
		centers.SetRow(c, points[far])
		for i := range dist {
			dist[i] = math.Min(dist[i], floats.Distance(points[i], points[far], 2))
		}
	}

	labels := make(plot.Assignment, rows)
	for iter := 0; iter < kmeansMaxIter; iter++ {
		changed := false
		for i, p := range points {
			best, bestDist := 0, math.Inf(1)
			for c := 0; c < k; c++ {
				if d := floats.Distance(p, centers.RawRowView(c), 2); d < bestDist {
					best, bestDist = c, d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := mat.NewDense(k, cols, nil)
		counts := make([]float64, k)
		for i, p := range points {
			floats.Add(sums.RawRowView(labels[i]), p)
			counts[labels[i]]++
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			row := sums.RawRowView(c)
			floats.Scale(1/counts[c], row)
			centers.SetRow(c, row)
		}
	}
	return labels, centers, nil
}

// blobs генерирует k гауссовых облаков по n точек с центрами на окружности
func blobs(k, n int, spread float64) *mat.Dense {
	data := mat.NewDense(k*n, 2, nil)
	for c := 0; c < k; c++ {
		angle := 2 * math.Pi * float64(c) / float64(k)
		x := distuv.Normal{Mu: 5 * math.Cos(angle), Sigma: spread}
		y := distuv.Normal{Mu: 5 * math.Sin(angle), Sigma: spread}
		for i := 0; i < n; i++ {
			data.Set(c*n+i, 0, x.Rand())
			data.Set(c*n+i, 1, y.Rand())
		}
	}
	return data
}

func clusterChart(style models.Style, data mat.Matrix, k int) (*models.Chart, error) {
	labels, centers, err := kmeans(data, k)
	if err != nil {
		return nil, err
	}
	series, err := plot.ClusterSeries(data, labels, 0, 1, models.KindScatter)
	if err != nil {
		return nil, err
	}
	cx, _ := plot.Column(centers, 0)
	cy, _ := plot.Column(centers, 1)
	cs, err := plot.NewSeries("centers", models.KindScatter, cx, cy)
	if err != nil {
		return nil, err
	}
	cs.Marker = models.MarkerCross
	series = append(series, cs)
	rows, _ := data.Dims()
	return plot.ToChart(style, series,
		[]string{"k-means", fmt.Sprintf("%d points, k = %d", rows, k)},
		"x", "y"), nil
}

func newClusterCmd() *cobra.Command {
	var k, perCluster int
	var spread float64
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Cluster synthetic 2D data with k-means and plot each cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := currentStyle()
			if err != nil {
				return err
			}
			if k <= 0 || perCluster <= 0 {
				return fmt.Errorf("k = %d, points = %d: %w", k, perCluster, plot.ErrInvalidArgument)
			}
			c, err := clusterChart(style, blobs(k, perCluster, spread), k)
			if err != nil {
				return err
			}
			return emit(cmd, c)
		},
	}
	cmd.Flags().IntVarP(&k, "clusters", "k", 3, "Number of clusters")
	cmd.Flags().IntVar(&perCluster, "points", 50, "Points per cluster")
	cmd.Flags().Float64Var(&spread, "spread", 1, "Standard deviation of each cluster")
	return cmd
}

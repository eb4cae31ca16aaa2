package main

import (
	"fmt"
	"math"

	"github.com/pivolan/numchart/dataset"
	"github.com/pivolan/numchart/domain/models"
	"github.com/pivolan/numchart/plot"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// correlatedData генерирует n наблюдений трех признаков, два из которых коррелированы
func correlatedData(n int) *mat.Dense {
	data := mat.NewDense(n, 3, nil)
	base := distuv.Normal{Mu: 0, Sigma: 3}
	eps := distuv.Normal{Mu: 0, Sigma: 0.5}
	for i := 0; i < n; i++ {
		t := base.Rand()
		data.Set(i, 0, t+eps.Rand())
		data.Set(i, 1, 0.5*t+eps.Rand())
		data.Set(i, 2, eps.Rand())
	}
	return data
}

func pcaChart(style models.Style, data mat.Matrix, xPC, yPC int, scree bool) (*models.Chart, error) {
	if scree {
		s, err := plot.ScreeSeries("explained variance", data)
		if err != nil {
			return nil, err
		}
		return plot.ToChart(style, []*models.Series{s}, []string{"Explained variance"}, "component", "fraction"), nil
	}
	s, err := plot.PCASeries("projection", data, xPC, yPC)
	if err != nil {
		return nil, err
	}
	rows, cols := data.Dims()
	return plot.ToChart(style, []*models.Series{s},
		[]string{"PCA", fmt.Sprintf("%d observations, %d features", rows, cols)},
		fmt.Sprintf("PC%d", xPC+1), fmt.Sprintf("PC%d", yPC+1)), nil
}

func newPCACmd() *cobra.Command {
	var file string
	var columns []string
	var xPC, yPC, points int
	var scree bool
	cmd := &cobra.Command{
		Use:   "pca",
		Short: "Project data onto principal components",
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := currentStyle()
			if err != nil {
				return err
			}
			var data mat.Matrix
			if file != "" {
				table, err := loadTable(file)
				if err != nil {
					return err
				}
				if len(columns) == 0 {
					columns = table.NumericColumns()
				}
				m, err := table.Matrix(columns...)
				if err != nil {
					return err
				}
				data = m
			} else {
				data = correlatedData(int(math.Max(float64(points), 3)))
			}
			c, err := pcaChart(style, data, xPC-1, yPC-1, scree)
			if err != nil {
				return err
			}
			return emit(cmd, c)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV file with observations in rows (default: synthetic data)")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to use (default: all numeric)")
	cmd.Flags().IntVar(&xPC, "x", 1, "Component on the x axis, 1-based")
	cmd.Flags().IntVar(&yPC, "y", 2, "Component on the y axis, 1-based")
	cmd.Flags().IntVar(&points, "points", 200, "Synthetic observations")
	cmd.Flags().BoolVar(&scree, "scree", false, "Plot explained variance instead of the projection")
	return cmd
}

// loadTable читает CSV, в том числе из архива
func loadTable(path string) (*dataset.Table, error) {
	rc, err := dataset.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer rc.Close()
	return dataset.LoadCSV(rc)
}

package main

import (
	"fmt"
	"time"

	"github.com/pivolan/numchart/config"
	"github.com/pivolan/numchart/dataset"
	"github.com/pivolan/numchart/domain/models"
	"github.com/pivolan/numchart/plot"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

// tableChart строит по колонке x и нескольким колонкам y по серии на колонку.
// Если x похожа на даты, ось x становится временной.
func tableChart(style models.Style, table *dataset.Table, title, xCol string, yCols []string, kind models.SeriesKind) (*models.Chart, error) {
	if len(yCols) == 0 {
		for _, name := range table.NumericColumns() {
			if name != xCol {
				yCols = append(yCols, name)
			}
		}
	}
	if len(yCols) == 0 {
		return nil, fmt.Errorf("no numeric columns to plot: %w", plot.ErrInvalidArgument)
	}

	timeAxis := xCol != "" && table.IsTimeColumn(xCol)
	series := make([]*models.Series, 0, len(yCols))
	var minX, maxX float64
	for _, yCol := range yCols {
		var s *models.Series
		switch {
		case xCol == "":
			// номер строки берется из таблицы, чтобы пропуски не сдвигали значения
			x, y, err := table.NumericRows(yCol)
			if err != nil {
				return nil, err
			}
			if s, err = plot.NewSeries(yCol, kind, plot.Values(x), plot.Values(y)); err != nil {
				return nil, err
			}
		case timeAxis:
			x, y, err := table.TimeXY(xCol, yCol)
			if err != nil {
				return nil, err
			}
			if s, err = plot.NewSeries(yCol, kind, plot.Values(x), plot.Values(y)); err != nil {
				return nil, err
			}
			if len(series) == 0 {
				minX, maxX = floats.Min(x), floats.Max(x)
			} else {
				minX, maxX = min(minX, floats.Min(x)), max(maxX, floats.Max(x))
			}
		default:
			m, err := table.Matrix(xCol, yCol)
			if err != nil {
				return nil, err
			}
			x, _ := plot.Column(m, 0)
			y, _ := plot.Column(m, 1)
			if s, err = plot.NewSeries(yCol, kind, x, y); err != nil {
				return nil, err
			}
		}
		series = append(series, s)
	}

	xTitle := xCol
	if xTitle == "" {
		xTitle = "row"
	}
	yTitle := ""
	if len(yCols) == 1 {
		yTitle = yCols[0]
	}
	c := plot.ToChart(style, series, []string{title}, xTitle, yTitle)
	if timeAxis {
		c.XAxis.TimeUnit = dataset.TimeUnit(time.Unix(int64(minX), 0), time.Unix(int64(maxX), 0))
	}
	return c, nil
}

func newCSVCmd() *cobra.Command {
	var xCol, kindName string
	var yCols []string
	cmd := &cobra.Command{
		Use:   "csv [file]",
		Short: "Plot columns of a CSV file (.csv, .zip, .gz, .lz4)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := currentStyle()
			if err != nil {
				return err
			}
			kind, err := plot.ParseKind(kindName)
			if err != nil {
				return err
			}
			table, err := loadTable(args[0])
			if err != nil {
				return err
			}
			c, err := tableChart(style, table, dataset.BaseName(args[0]), xCol, yCols, kind)
			if err != nil {
				return err
			}
			return emit(cmd, c)
		},
	}
	cmd.Flags().StringVarP(&xCol, "x", "x", "", "Column for the x axis (default: row number)")
	cmd.Flags().StringSliceVarP(&yCols, "y", "y", nil, "Columns for the y axis (default: all numeric)")
	cmd.Flags().StringVar(&kindName, "kind", string(models.KindLine), "Series kind: line, scatter, column, bar")
	return cmd
}

func newSQLCmd() *cobra.Command {
	var tableName, xCol, yCol, kindName string
	var limit int
	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Plot two numeric columns of a database table (DB_DSN)",
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := currentStyle()
			if err != nil {
				return err
			}
			kind, err := plot.ParseKind(kindName)
			if err != nil {
				return err
			}
			db, err := dataset.OpenDB(config.GetConfig().DbDsn)
			if err != nil {
				return err
			}
			x, y, err := dataset.LoadXY(commandContext(cmd), db, tableName, xCol, yCol, limit)
			if err != nil {
				return err
			}
			s, err := plot.NewSeries(yCol, kind, plot.Values(x), plot.Values(y))
			if err != nil {
				return err
			}
			c := plot.ToChart(style, []*models.Series{s}, []string{tableName}, xCol, yCol)
			return emit(cmd, c)
		},
	}
	cmd.Flags().StringVarP(&tableName, "table", "t", "", "Table name")
	cmd.Flags().StringVarP(&xCol, "x", "x", "", "Numeric column for the x axis")
	cmd.Flags().StringVarP(&yCol, "y", "y", "", "Numeric column for the y axis")
	cmd.Flags().StringVar(&kindName, "kind", string(models.KindLine), "Series kind: line, scatter, column, bar")
	cmd.Flags().IntVar(&limit, "limit", 10000, "Maximum number of rows, 0 for all")
	for _, name := range []string{"table", "x", "y"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

package main

import (
	"fmt"

	"github.com/pivolan/numchart/config"
	"github.com/pivolan/numchart/dataset"
	"github.com/pivolan/numchart/domain/models"
	"github.com/pivolan/numchart/plot"
	"github.com/spf13/cobra"
)

// describeChart рисует средние по колонкам со столбцами, подписанными именами колонок
func describeChart(style models.Style, tableName string, stats []dataset.ColumnStats) *models.Chart {
	avg := make([]float64, len(stats))
	for i, s := range stats {
		avg[i] = s.Avg
	}
	s := plot.NewSeriesY("avg", models.KindColumn, models.AxisUnit{Start: 1, Step: 1}, plot.Values(avg))
	for i, st := range stats {
		s.Points[i].Label = st.Name
	}
	return plot.ToChart(style, []*models.Series{s}, []string{tableName, fmt.Sprintf("%d numeric columns", len(stats))}, "column", "average")
}

func newDescribeCmd() *cobra.Command {
	var tableName string
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Aggregate every numeric column of a database table (DB_DSN)",
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := currentStyle()
			if err != nil {
				return err
			}
			db, err := dataset.OpenDB(config.GetConfig().DbDsn)
			if err != nil {
				return err
			}
			stats, err := dataset.Describe(commandContext(cmd), db, tableName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dataset.FormatColumnStats(stats))
			return emit(cmd, describeChart(style, tableName, stats))
		},
	}
	cmd.Flags().StringVarP(&tableName, "table", "t", "", "Table name")
	_ = cmd.MarkFlagRequired("table")
	return cmd
}

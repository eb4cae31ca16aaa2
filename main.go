package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pivolan/numchart/config"
	"github.com/pivolan/numchart/domain/models"
	"github.com/pivolan/numchart/plot"
	"github.com/spf13/cobra"
)

var (
	outputPath string
	showChart  bool
	termChart  bool
	stylePath  string
	printTable bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "numchart",
		Short: "Plot numeric and statistical data",
		Long: `numchart binds vectors, matrices, distributions, fits and clusters to charts
and renders them to PNG, SVG, PDF, XLSX, HTML or the terminal.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&outputPath, "out", "o", "", "Output file, format by extension (default: <title>-<uuid>.png in NUMCHART_OUTPUT_DIR)")
	flags.BoolVar(&showChart, "show", false, "Serve the chart over HTTP until interrupted")
	flags.BoolVar(&termChart, "term", false, "Draw the chart in the terminal")
	flags.StringVar(&stylePath, "style", "", "YAML style file (default: NUMCHART_STYLE)")
	flags.BoolVar(&printTable, "summary", false, "Print a summary table of the series")

	rootCmd.AddCommand(
		newFitCmd(),
		newFFTCmd(),
		newPeaksCmd(),
		newClusterCmd(),
		newDistCmd(),
		newPCACmd(),
		newStatsCmd(),
		newCSVCmd(),
		newSQLCmd(),
		newDescribeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// currentStyle возвращает стиль из --style или из конфигурации
func currentStyle() (models.Style, error) {
	if stylePath != "" {
		return config.LoadStyle(stylePath)
	}
	return config.GetConfig().Style, nil
}

// emit выводит готовый график туда, куда попросили флаги.
// Без флагов график сохраняется в файл.
func emit(cmd *cobra.Command, c *models.Chart) error {
	cfg := config.GetConfig()
	out := cmd.OutOrStdout()

	if printTable {
		fmt.Fprintln(out, plot.FormatTable(c))
	}
	if termChart {
		if err := plot.ShowTerminal(out, c, 15); err != nil {
			return err
		}
	}
	if outputPath != "" || (!termChart && !showChart) {
		path := outputPath
		if path == "" {
			path = filepath.Join(cfg.OutputDir, plot.DefaultFileName(c, plot.FormatPNG))
		}
		saved, err := plot.Save(c, path)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, saved)
	}
	if showChart {
		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
		defer stop()
		log.Printf("serving on %s, press Ctrl+C to stop", cfg.ShowAddr)
		return plot.Show(ctx, c, cfg.ShowAddr)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

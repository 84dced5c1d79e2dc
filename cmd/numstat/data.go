package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/numstat/internal/chart"
	"github.com/verte-zerg/numstat/internal/dataio"
	"github.com/verte-zerg/numstat/internal/stats"
)

func newSummaryCmd() *cobra.Command {
	var decimals int
	cmd := &cobra.Command{
		Use:   "summary <file>",
		Short: "Print statistics and histogram for a CSV or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummaryCmd(cmd, args[0], decimals)
		},
	}
	cmd.Flags().IntVar(&decimals, "decimals", stats.DefaultDecimals, "decimals shown for statistics")
	return cmd
}

func runSummaryCmd(cmd *cobra.Command, path string, decimals int) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "decimals", &decimals, fileCfg.View.Decimals)
	if decimals < 0 || decimals > maxDecimals {
		return fmt.Errorf("--decimals must be between 0 and %d", maxDecimals)
	}

	values, err := dataio.Import(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	summaryErr := stats.RenderSummary(out, values, decimals)
	if summaryErr != nil && !errors.Is(summaryErr, stats.ErrInsufficient) {
		return fmt.Errorf("failed to write output: %w", summaryErr)
	}
	if err := stats.RenderHistogramTable(out, stats.Bin(values)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if summaryErr != nil {
		// The message is already part of the output.
		cmd.SilenceErrors = true
		return summaryErr
	}
	return nil
}

func newPlotCmd() *cobra.Command {
	flags := &viewFlags{}
	var outPath string
	var width, height int
	cmd := &cobra.Command{
		Use:   "plot <file>",
		Short: "Plot a CSV or XLSX file as text or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlotCmd(cmd, args[0], flags, plotTarget{out: outPath, width: width, height: height})
		},
	}
	addViewFlags(cmd, flags)
	cmd.Flags().StringVar(&outPath, "out", "", "write an image (.png, .svg, .pdf) instead of a text chart")
	cmd.Flags().IntVar(&width, "width", 0, "total text chart width in columns (default: terminal width)")
	cmd.Flags().IntVar(&height, "height", 0, "text chart height in rows")
	return cmd
}

type plotTarget struct {
	out    string
	width  int
	height int
}

func runPlotCmd(cmd *cobra.Command, path string, flags *viewFlags, target plotTarget) error {
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}
	values, err := dataio.Import(path)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("no numbers found in %s", path)
	}

	if target.out != "" {
		err := chart.SavePNG(target.out, values, chart.Options{
			Kind:  cfg.Chart,
			Zoom:  cfg.Zoom,
			Theme: cfg.Theme,
			XAxis: cfg.XAxis,
			YAxis: cfg.YAxis,
		})
		if err != nil {
			return err
		}
		logErrf("Wrote %s\n", target.out)
		return nil
	}

	width := target.width
	if width > 0 {
		width = stats.PlotWidthFor(width)
	}
	opts := stats.PlotOptions{
		Title:  cfg.Chart.Title(),
		XAxis:  cfg.XAxis,
		YAxis:  cfg.YAxis,
		Width:  width,
		Height: target.height,
		Theme:  cfg.Theme,
	}
	if err := stats.RenderChart(cmd.OutOrStdout(), values, cfg.Chart, float64(cfg.Zoom), opts); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

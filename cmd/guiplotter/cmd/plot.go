package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iafilius/GUIPlotter/src/dataset"
	"github.com/iafilius/GUIPlotter/src/loader"
	"github.com/iafilius/GUIPlotter/src/logging"
	"github.com/iafilius/GUIPlotter/src/render"
	"github.com/iafilius/GUIPlotter/src/session"
)

// seriesSpec is one --left/--right argument: FILE:COLUMN[:LABEL].
type seriesSpec struct {
	File   string
	Column string
	Label  string
	Axis   dataset.Axis
}

func parseSeriesSpec(s string, axis dataset.Axis) (seriesSpec, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return seriesSpec{}, fmt.Errorf("invalid series %q (want FILE:COLUMN[:LABEL])", s)
	}
	spec := seriesSpec{File: strings.TrimSpace(parts[0]), Column: strings.TrimSpace(parts[1]), Axis: axis}
	if len(parts) == 3 {
		spec.Label = parts[2]
	}
	return spec, nil
}

type plotOptions struct {
	Left   []string
	Right  []string
	Output string
	Config render.Config
	Width  int
	Height int
}

var plotOpts = plotOptions{Config: render.DefaultConfig()}

var plotCmd = &cobra.Command{
	Use:   "plot --x COLUMN --left FILE:COLUMN[:LABEL] [--right ...] -o out.png",
	Short: "Render a chart to a PNG or SVG file without opening a window",
	Long: `Render one chart headlessly. Each --left/--right names a file, a column and an
optional legend label. Files named more than once are loaded once. Series that
cannot be drawn are logged and skipped. The output format follows the file
extension (.png or .svg).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := tableLoader()
		if err != nil {
			return err
		}
		noLegend, _ := cmd.Flags().GetBool("no-legend")
		opts := plotOpts
		opts.Config.ShowLegend = !noLegend
		opts.Width, opts.Height = chartSize()
		return runPlot(l, opts)
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	f := plotCmd.Flags()
	c := &plotOpts.Config
	f.StringVar(&c.XColumn, "x", "", "column used for the X axis (required)")
	f.StringArrayVar(&plotOpts.Left, "left", nil, "series on the left axis, FILE:COLUMN[:LABEL] (repeatable)")
	f.StringArrayVar(&plotOpts.Right, "right", nil, "series on the right axis, FILE:COLUMN[:LABEL] (repeatable)")
	f.StringVarP(&plotOpts.Output, "output", "o", "plot.png", "output file (.png or .svg)")

	f.StringVar(&c.XLabel, "x-label", c.XLabel, "X axis label (empty uses the column name)")
	f.StringVar(&c.LeftLabel, "left-label", c.LeftLabel, "left axis label")
	f.StringVar(&c.RightLabel, "right-label", c.RightLabel, "right axis label")
	f.StringVar(&c.XScale, "x-scale", c.XScale, "multiplier applied to X values")
	f.StringVar(&c.LeftScale, "left-scale", c.LeftScale, "multiplier applied to left axis values")
	f.StringVar(&c.RightScale, "right-scale", c.RightScale, "multiplier applied to right axis values")
	f.StringVar(&c.XMin, "x-min", "", "X axis minimum")
	f.StringVar(&c.XMax, "x-max", "", "X axis maximum")
	f.StringVar(&c.LeftMin, "left-min", "", "left axis minimum")
	f.StringVar(&c.LeftMax, "left-max", "", "left axis maximum")
	f.StringVar(&c.RightMin, "right-min", "", "right axis minimum")
	f.StringVar(&c.RightMax, "right-max", "", "right axis maximum")
	f.BoolVar(&c.XLog, "x-log", false, "logarithmic X axis")
	f.BoolVar(&c.LeftLog, "left-log", false, "logarithmic left axis")
	f.BoolVar(&c.RightLog, "right-log", false, "logarithmic right axis")
	f.Bool("no-legend", false, "omit the legend")
	_ = plotCmd.MarkFlagRequired("x")
}

// runPlot loads every referenced file once, selects the series in argument order
// (left before right) and writes the rendered chart.
func runPlot(l loader.TableLoader, opts plotOptions) error {
	var specs []seriesSpec
	for _, group := range []struct {
		args []string
		axis dataset.Axis
	}{{opts.Left, dataset.AxisLeft}, {opts.Right, dataset.AxisRight}} {
		for _, a := range group.args {
			spec, err := parseSeriesSpec(a, group.axis)
			if err != nil {
				return err
			}
			specs = append(specs, spec)
		}
	}
	if len(specs) == 0 {
		return errors.New("no series given; use --left or --right")
	}

	var files []string
	index := map[string]int{}
	for _, s := range specs {
		if _, ok := index[s.File]; !ok {
			index[s.File] = len(files)
			files = append(files, s.File)
		}
	}
	tables, err := l.Load(files)
	if err != nil {
		return err
	}
	sess := session.New()
	sess.AddTables(tables...)
	for _, s := range specs {
		if _, err := sess.AddSeries(index[s.File], s.Column, s.Axis, s.Label); err != nil {
			logging.Warnf("skipping %s:%s: %v", s.File, s.Column, err)
		}
	}

	snap := sess.Snapshot()
	c, warnings, err := render.Render(snap.Tables, snap.Selections, opts.Config)
	if err != nil {
		return err
	}
	if len(c.Lines) == 0 {
		return fmt.Errorf("none of the %d series could be drawn (%d skipped)", len(specs), len(specs)-len(snap.Selections)+len(warnings))
	}

	out, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	format := render.FormatForPath(opts.Output, render.FormatPNG)
	if err := c.Write(out, format, opts.Width, opts.Height); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	logging.Infof("wrote %s chart with %d series to %s", format, len(c.Lines), opts.Output)
	return nil
}

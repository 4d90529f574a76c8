package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"csvexplorer/adapters/excel"
	"csvexplorer/app"
	"csvexplorer/internal/charts"
	"csvexplorer/internal/config"
	apperrors "csvexplorer/internal/errors"
	"csvexplorer/internal/report"

	"github.com/spf13/cobra"
)

// newExplorer builds the explorer from the same environment the server reads
func newExplorer() (*app.Explorer, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	readerConfig := excel.DefaultReaderConfig()
	readerConfig.MaxBytes = cfg.Upload.MaxBytes()

	defaults := app.DefaultOptions()
	defaults.PreviewRows = cfg.View.PreviewRows
	defaults.HistogramBins = cfg.View.HistogramBins
	return app.NewExplorer(excel.NewDataReader(readerConfig), defaults), cfg, nil
}

func loadFile(explorer *app.Explorer, path string) (*app.Upload, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "read %s", path)
	}
	return explorer.Load(filepath.Base(path), content)
}

func newAnalyzeCmd() *cobra.Command {
	var column, chartOut, format string
	var noSummary, noChart bool

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Analyze one column of a CSV or Excel file",
		Long: `Load a file, print its shape and analyze one column: mean, median, min
and max for numeric columns, unique count and frequencies otherwise.

The column defaults to the first one. Summary statistics for every column
are included unless --no-summary is given.

Example: csvexplorer analyze sales.csv --column region --chart-out region.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explorer, cfg, err := newExplorer()
			if err != nil {
				return err
			}
			upload, err := loadFile(explorer, args[0])
			if err != nil {
				return err
			}

			if column == "" {
				column = app.DefaultSelection(upload.Table)
			}
			vm, err := app.Render(upload.Table, column, explorer.WithToggles(!noSummary, !noChart || chartOut != ""))
			if err != nil {
				return err
			}

			if chartOut != "" {
				if err := writeChart(vm, chartOut, cfg.View.ChartWidth, cfg.View.ChartHeight); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(vm)
			case "markdown", "md":
				_, err := io.WriteString(out, report.Markdown(upload.Manifest.Filename, vm))
				return err
			case "text":
				return printView(out, vm)
			default:
				return apperrors.InvalidInput(fmt.Sprintf("unknown format %q (text, json, markdown)", format))
			}
		},
	}

	cmd.Flags().StringVarP(&column, "column", "c", "", "Column to analyze (default: first column)")
	cmd.Flags().BoolVar(&noSummary, "no-summary", false, "Skip the summary statistics table")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "Skip chart selection")
	cmd.Flags().StringVar(&chartOut, "chart-out", "", "Write the column chart to this file (.svg or .png)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or markdown")

	return cmd
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe FILE",
		Short: "Print summary statistics for every column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explorer, _, err := newExplorer()
			if err != nil {
				return err
			}
			upload, err := loadFile(explorer, args[0])
			if err != nil {
				return err
			}

			vm, err := app.Render(upload.Table, "", explorer.WithToggles(true, false))
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), vm.Summary.Headers, vm.Summary.Rows)
		},
	}
}

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Re-serialize a file as CSV (or XLSX when the output ends in .xlsx)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explorer, _, err := newExplorer()
			if err != nil {
				return err
			}
			upload, err := loadFile(explorer, args[0])
			if err != nil {
				return err
			}

			write := excel.WriteCSV
			if ft, _ := excel.DetectFileType(output); ft == excel.FileTypeXLSX {
				write = excel.WriteXLSX
			}

			var buf bytes.Buffer
			if err := write(&buf, upload.Table); err != nil {
				return apperrors.Wrap(err, "export failed")
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return apperrors.Wrapf(err, "write %s", output)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", output, upload.Table.Shape())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "processed_data.csv", "Output file")
	return cmd
}

func writeChart(vm app.ViewModel, path string, width, height int) error {
	if vm.Column == nil || vm.Column.Chart == nil {
		return apperrors.InvalidInput("the selected column has no chart")
	}

	render := charts.RenderSVG
	if strings.EqualFold(filepath.Ext(path), ".png") {
		render = charts.RenderPNG
	}

	var buf bytes.Buffer
	if err := render(*vm.Column.Chart, &buf, width, height); err != nil {
		return apperrors.Wrap(err, "chart rendering failed")
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func printView(out io.Writer, vm app.ViewModel) error {
	fmt.Fprintf(out, "Shape: %s\n", vm.Shape)

	if col := vm.Column; col != nil {
		fmt.Fprintf(out, "\nAnalysis for `%s` (%s)\n", col.Name, col.Kind)
		switch {
		case col.Message != "":
			fmt.Fprintf(out, "  %s\n", col.Message)
		case len(col.Stats) > 0:
			for _, s := range col.Stats {
				fmt.Fprintf(out, "  %s: %s\n", s.Label, s.Value)
			}
		case col.Unique != nil:
			fmt.Fprintf(out, "  Unique Values: %d\n", *col.Unique)
			for _, f := range col.Frequencies {
				fmt.Fprintf(out, "    %s\t%d\n", f.Value, f.Count)
			}
		}
		if col.Chart != nil {
			fmt.Fprintf(out, "  Chart: %s (%s, %d bars)\n", col.Chart.Title, col.Chart.Kind, len(col.Chart.Bars))
		}
	}

	if vm.Summary != nil {
		fmt.Fprintln(out, "\nSummary Statistics")
		return printTable(out, vm.Summary.Headers, vm.Summary.Rows)
	}
	return nil
}

func printTable(out io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

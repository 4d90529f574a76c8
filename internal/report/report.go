package report

import (
	"fmt"
	"strings"

	"csvexplorer/app"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders the view as a standalone markdown document. title is
// usually the uploaded filename.
func Markdown(title string, vm app.ViewModel) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Data Exploration Report: %s\n\n", escape(title))
	if !vm.Loaded {
		b.WriteString("No dataset loaded.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Dataset shape: **%s**\n\n", vm.Shape)

	writePreview(&b, vm.Preview)

	if vm.Summary != nil {
		b.WriteString("## Summary Statistics\n\n")
		writeTable(&b, vm.Summary.Headers, vm.Summary.Rows)
	}

	if col := vm.Column; col != nil {
		fmt.Fprintf(&b, "## Column Analysis: %s\n\n", escape(col.Name))
		fmt.Fprintf(&b, "Type: %s\n\n", col.Kind)
		switch {
		case col.Message != "":
			fmt.Fprintf(&b, "_%s_\n\n", col.Message)
		case col.Kind.IsNumeric():
			rows := make([][]string, len(col.Stats))
			for i, s := range col.Stats {
				rows[i] = []string{s.Label, s.Value}
			}
			writeTable(&b, []string{"Statistic", "Value"}, rows)
		case col.Unique != nil:
			fmt.Fprintf(&b, "Unique values: %d\n\n", *col.Unique)
			rows := make([][]string, len(col.Frequencies))
			for i, f := range col.Frequencies {
				rows[i] = []string{f.Value, fmt.Sprint(f.Count)}
			}
			writeTable(&b, []string{col.Name, "Count"}, rows)
		}

		if vm.Options.ShowChart {
			if col.Chart != nil {
				fmt.Fprintf(&b, "Chart: %s (%d bars)\n", escape(col.Chart.Title), len(col.Chart.Bars))
			} else if col.ChartMessage != "" {
				fmt.Fprintf(&b, "Chart: _%s_\n", col.ChartMessage)
			}
		}
	}

	return b.String()
}

// HTML converts a markdown report to an HTML fragment
func HTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func writePreview(b *strings.Builder, preview app.Preview) {
	if len(preview.Columns) == 0 {
		return
	}
	fmt.Fprintf(b, "## Data Preview (first %d rows)\n\n", len(preview.Rows))
	rows := make([][]string, len(preview.Rows))
	for i, row := range preview.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cell.Text
		}
		rows[i] = cells
	}
	writeTable(b, preview.Columns, rows)
}

func writeTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("|")
	for _, h := range headers {
		b.WriteString(" " + escape(h) + " |")
	}
	b.WriteString("\n|")
	for range headers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString("|")
		for _, cell := range row {
			b.WriteString(" " + escape(cell) + " |")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// cellEscaper keeps user text literal inside markdown tables and HTML
var cellEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"|", "\\|",
	"<", "\\<", ">", "\\>", "&", "\\&",
	"\r\n", " ", "\n", " ", "\r", " ",
)

func escape(s string) string {
	return cellEscaper.Replace(strings.TrimSpace(s))
}

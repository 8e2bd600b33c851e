// Package ui renders engine results for the terminal. Styled output is used
// on a TTY; pipes and files get plain tab-separated lines.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/seenimoa/smebench/pkg/models"
	"github.com/seenimoa/smebench/pkg/utils"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorGood   = lipgloss.Color("#2CD7C7")
	colorWarn   = lipgloss.Color("#F4D03F")
	colorBad    = lipgloss.Color("#E74C3C")
	colorMuted  = lipgloss.Color("#5C7A84")
)

var styles = struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Muted  lipgloss.Style
	Good   lipgloss.Style
	Warn   lipgloss.Style
	Bad    lipgloss.Style
	Box    lipgloss.Style
}{
	Title:  lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Header: lipgloss.NewStyle().Bold(true).Underline(true),
	Muted:  lipgloss.NewStyle().Foreground(colorMuted),
	Good:   lipgloss.NewStyle().Foreground(colorGood),
	Warn:   lipgloss.NewStyle().Foreground(colorWarn),
	Bad:    lipgloss.NewStyle().Foreground(colorBad),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1),
}

// Printer writes results either styled or as plain tab-separated text.
type Printer struct {
	w      io.Writer
	styled bool
}

// NewPrinter returns a Printer for w, styled only when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	styled := false
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		styled = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return &Printer{w: w, styled: styled}
}

// NewPlainPrinter returns a Printer that never styles its output.
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Styled reports whether the printer renders for a terminal.
func (p *Printer) Styled() bool { return p.styled }

// Title prints a heading. Plain output omits it.
func (p *Printer) Title(text string) {
	if !p.styled {
		return
	}
	fmt.Fprintln(p.w, styles.Title.Render(text))
}

// List prints one item per line.
func (p *Printer) List(title string, items []string) {
	p.Title(fmt.Sprintf("%s (%d)", title, len(items)))
	for _, it := range items {
		if p.styled {
			fmt.Fprintf(p.w, "  %s %s\n", styles.Muted.Render("•"), it)
			continue
		}
		fmt.Fprintln(p.w, it)
	}
}

// Table prints rows under a header with padded columns, or tab-separated
// when plain.
func (p *Printer) Table(header []string, rows [][]string) {
	if !p.styled {
		fmt.Fprintln(p.w, strings.Join(header, "\t"))
		for _, r := range rows {
			fmt.Fprintln(p.w, strings.Join(r, "\t"))
		}
		return
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	line := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = style.Width(widths[i]).Render(c)
		}
		return strings.Join(parts, "  ")
	}
	fmt.Fprintln(p.w, line(header, styles.Header))
	for _, r := range rows {
		fmt.Fprintln(p.w, line(r, lipgloss.NewStyle()))
	}
}

// Series prints each series as a table of its points. Plain output is one
// TSV stream with a metric column.
func (p *Printer) Series(series []*models.BenchmarkSeries) {
	header := []string{"period", "value", "p10", "p25", "p75", "p90", "n"}
	if !p.styled {
		fmt.Fprintln(p.w, "metric\t"+strings.Join(header, "\t"))
		for _, s := range series {
			for _, pt := range s.Points {
				fmt.Fprintln(p.w, s.MetricName+"\t"+strings.Join(pointRow(s.MetricName, pt), "\t"))
			}
		}
		return
	}

	for i, s := range series {
		if i > 0 {
			fmt.Fprintln(p.w)
		}
		p.Title(fmt.Sprintf("%s · %s · %s · %s", s.MetricName, s.Industry, s.CompanySize, s.Region))
		rows := make([][]string, 0, len(s.Points))
		for _, pt := range s.Points {
			rows = append(rows, pointRow(s.MetricName, pt))
		}
		p.Table(header, rows)
	}
}

func pointRow(metric string, pt models.BenchmarkPoint) []string {
	return []string{
		pt.Period.String(),
		utils.FormatMetricValue(metric, pt.Value),
		marker(metric, pt.P10),
		marker(metric, pt.P25),
		marker(metric, pt.P75),
		marker(metric, pt.P90),
		fmt.Sprintf("%d", pt.SampleSize),
	}
}

// Comparisons prints compared metrics and any that were skipped.
func (p *Printer) Comparisons(batch models.BatchComparison) {
	if !p.styled {
		fmt.Fprintln(p.w, "metric\tuser_value\tbenchmark\tdiff_pct\tpercentile\tinterpretation")
		for _, c := range batch.Results {
			fmt.Fprintf(p.w, "%s\t%g\t%g\t%.2f\t%s\t%s\n",
				c.MetricName, c.UserValue, c.BenchmarkValue, c.PercentageDifference,
				rank(c.PercentileRank), c.Interpretation)
		}
		for _, s := range batch.Skipped {
			fmt.Fprintf(p.w, "%s\tskipped\t%s\t%s\n", s.Metric, s.Kind, s.Reason)
		}
		return
	}

	for _, c := range batch.Results {
		body := strings.Join([]string{
			fmt.Sprintf("You:        %s", utils.FormatMetricValue(c.MetricName, c.UserValue)),
			fmt.Sprintf("Benchmark:  %s (%s)", utils.FormatMetricValue(c.MetricName, c.BenchmarkValue), c.Period),
			fmt.Sprintf("Difference: %s", utils.FormatPct(c.PercentageDifference)),
			fmt.Sprintf("Percentile: %s", rank(c.PercentileRank)),
			interpretationStyle(c.Interpretation).Render(c.Summary()),
		}, "\n")
		fmt.Fprintln(p.w, styles.Box.Width(72).Render(styles.Title.Render(c.MetricName)+"\n"+body))
	}
	for _, s := range batch.Skipped {
		fmt.Fprintf(p.w, "%s %s: %s\n", styles.Warn.Render("skipped"), s.Metric, styles.Muted.Render(s.Reason))
	}
}

// KeyValues prints aligned key/value pairs in the given order.
func (p *Printer) KeyValues(pairs [][2]string) {
	width := 0
	for _, kv := range pairs {
		width = max(width, len(kv[0]))
	}
	for _, kv := range pairs {
		if p.styled {
			fmt.Fprintf(p.w, "  %s %s\n", styles.Muted.Render(fmt.Sprintf("%-*s", width+1, kv[0]+":")), kv[1])
			continue
		}
		fmt.Fprintf(p.w, "%s\t%s\n", kv[0], kv[1])
	}
}

func interpretationStyle(i models.Interpretation) lipgloss.Style {
	switch i {
	case models.SignificantlyAbove, models.AboveAverage:
		return styles.Good
	case models.BelowAverage:
		return styles.Warn
	case models.SignificantlyBelow:
		return styles.Bad
	}
	return lipgloss.NewStyle()
}

func marker(metric string, v *float64) string {
	if v == nil {
		return "-"
	}
	return utils.FormatMetricValue(metric, *v)
}

func rank(r *int) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *r)
}

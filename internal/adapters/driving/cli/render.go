package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
)

// significance is the p-value below which a correlation is highlighted.
const significance = 0.05

// renderJSON writes the report as indented JSON.
func renderJSON(w io.Writer, report *domain.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// renderText writes a human-readable report.
// Per-night values are listed only when showPoints is set.
func renderText(w io.Writer, st *Styles, report *domain.Report, showPoints bool) {
	fmt.Fprintln(w, st.Title.Render("Slumber report"))
	fmt.Fprintf(w, "%s %s\n", st.Label.Render("Data:"), report.Root)
	fmt.Fprintf(w, "%s %s\n", st.Label.Render("Run:"), st.Muted.Render(report.RunID))

	for i := range report.Analyses {
		fmt.Fprintln(w)
		renderAnalysis(w, st, &report.Analyses[i], showPoints)
	}
}

func renderAnalysis(w io.Writer, st *Styles, ar *domain.AnalysisReport, showPoints bool) {
	fmt.Fprintln(w, st.Section.Render("== "+ar.Name+" =="))
	fmt.Fprintln(w, st.Muted.Render(ar.Description))
	fmt.Fprintf(w, "%s %d (requires %s)\n", st.Label.Render("Nights:"), ar.Nights, ar.Requires)

	if len(ar.Series) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, st.Label.Render("Series"))
		for _, s := range ar.Series {
			fmt.Fprintf(w, "  %-20s n=%-4d mean=%s\n", s.Metric, s.Len(), formatNull(s.Mean))
			if !showPoints {
				continue
			}
			for _, p := range s.Points {
				fmt.Fprintf(w, "    %s  %s\n", p.Date.Format(domain.DateLayout), formatValue(p.Value))
			}
		}
	}

	if len(ar.Categories) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, st.Label.Render("Latency categories"))
		for _, c := range ar.Categories {
			fmt.Fprintf(w, "  %-18s %d\n", c.Category, c.Count)
		}
	}

	if len(ar.Keywords) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, st.Label.Render("Keywords"))
		for _, k := range ar.Keywords {
			fmt.Fprintf(w, "  %-18s mentioned %d, not mentioned %d\n", k.Keyword, k.Mentioned, k.NotMentioned)
		}
	}

	if len(ar.Correlations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, st.Label.Render("Correlations"))
		for _, c := range ar.Correlations {
			fmt.Fprintf(w, "  %s\n", formatCorrelation(st, c))
		}
	}

	if len(ar.Skipped) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, st.Warning.Render(fmt.Sprintf("Skipped %d night(s)", len(ar.Skipped))))
		for _, s := range ar.Skipped {
			line := fmt.Sprintf("  %-12s %s", s.Night, s.Reason)
			if s.Reason.IsStructural() {
				fmt.Fprintln(w, st.Muted.Render(line))
				continue
			}
			if s.Err != nil {
				line += ": " + s.Err.Error()
			}
			fmt.Fprintln(w, st.Error.Render(line))
		}
	}
}

func formatCorrelation(st *Styles, c domain.Correlation) string {
	pair := fmt.Sprintf("%s ~ %s", c.X, c.Y)
	if !c.Calculated {
		return fmt.Sprintf("%-28s %s", pair, st.Warning.Render(fmt.Sprintf("not calculated (%s, n=%d)", c.Reason, c.N)))
	}
	stats := fmt.Sprintf("r=%+.3f p=%.4f n=%d", c.R, c.P, c.N)
	if c.P < significance {
		stats = st.Significant.Render(stats)
	}
	return fmt.Sprintf("%-28s %s", pair, stats)
}

func formatNull(v domain.NullFloat64) string {
	if !v.Valid {
		return "-"
	}
	return formatValue(v.Float64)
}

func formatValue(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

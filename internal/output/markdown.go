package output

import (
	"fmt"
	"io"
	"time"

	"github.com/spiffcs/linear-stats/internal/model"
)

// MarkdownFormatter formats output as Markdown, suitable for a GitHub
// Actions job summary.
type MarkdownFormatter struct{}

// Format outputs a run summary as a Markdown table
func (f *MarkdownFormatter) Format(summary model.RunSummary, w io.Writer) error {
	md := summary.Metadata

	fmt.Fprintf(w, "## Linear issue statistics: %s\n\n", md.TeamName)
	fmt.Fprintf(w, "*%s (%s) · %s*\n\n", md.OrganizationName, md.TeamID, md.Timestamp.Format(time.RFC3339))

	fmt.Fprintln(w, "| Status | Issues |")
	fmt.Fprintln(w, "|---|---:|")
	for _, e := range summary.Statistics.Entries() {
		fmt.Fprintf(w, "| %s | %d |\n", e.Bucket, e.Count)
	}
	fmt.Fprintf(w, "| **Total** | **%d** |\n", md.TotalIssues)

	if md.Schedule != "" {
		fmt.Fprintf(w, "\nSchedule: `%s`\n", md.Schedule)
	}

	return nil
}

// FormatHistory outputs past runs as a Markdown table
func (f *MarkdownFormatter) FormatHistory(summaries []model.RunSummary, w io.Writer) error {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprint(w, "| Timestamp | Team | Total |")
	for _, b := range model.Buckets() {
		fmt.Fprintf(w, " %s |", b)
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "|---|---|---:|")
	for range model.Buckets() {
		fmt.Fprint(w, "---:|")
	}
	fmt.Fprintln(w)

	for _, s := range summaries {
		fmt.Fprintf(w, "| %s | %s | %d |", s.Metadata.Timestamp.Format(time.RFC3339), s.Metadata.TeamName, s.Metadata.TotalIssues)
		for _, e := range s.Statistics.Entries() {
			fmt.Fprintf(w, " %d |", e.Count)
		}
		fmt.Fprintln(w)
	}

	return nil
}

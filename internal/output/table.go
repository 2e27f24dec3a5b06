package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spiffcs/linear-stats/internal/model"
)

const ruleWidth = 24

// TableFormatter formats output as a terminal table
type TableFormatter struct{}

// bucketColors highlights each bucket in the console table.
var bucketColors = map[model.Bucket]*color.Color{
	model.BucketTodo:       color.New(color.FgCyan),
	model.BucketInProgress: color.New(color.FgYellow),
	model.BucketBacklog:    color.New(color.FgBlue),
	model.BucketWaiting:    color.New(color.FgMagenta),
	model.BucketOther:      color.New(color.FgHiBlack),
}

// padRight pads s with spaces to reach width display columns.
func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// Format prints one "bucket: count" line per bucket followed by the total.
func (f *TableFormatter) Format(summary model.RunSummary, w io.Writer) error {
	md := summary.Metadata
	rule := strings.Repeat("-", ruleWidth)
	bold := color.New(color.Bold)

	labelWidth := runewidth.StringWidth("Total issues:")
	for _, b := range model.Buckets() {
		labelWidth = max(labelWidth, runewidth.StringWidth(string(b)+":"))
	}

	fmt.Fprintln(w)
	if md.TeamName != "" {
		fmt.Fprintf(w, "%s %s (%s)\n", bold.Sprint("Issue Statistics:"), md.TeamName, md.OrganizationName)
	} else {
		fmt.Fprintln(w, bold.Sprint("Issue Statistics:"))
	}
	fmt.Fprintln(w, rule)

	for _, e := range summary.Statistics.Entries() {
		label := padRight(string(e.Bucket)+":", labelWidth)
		if c, ok := bucketColors[e.Bucket]; ok {
			label = c.Sprint(label)
		}
		fmt.Fprintf(w, "%s %d\n", label, e.Count)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%s %d\n", bold.Sprint(padRight("Total issues:", labelWidth)), md.TotalIssues)
	fmt.Fprintln(w, rule)

	return nil
}

// FormatHistory prints past runs, oldest first.
func (f *TableFormatter) FormatHistory(summaries []model.RunSummary, w io.Writer) error {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	const (
		colTime = 20
		colTeam = 20
		colNum  = 11
	)

	header := padRight("Timestamp", colTime) + "  " + padRight("Team", colTeam) + "  " + padRight("Total", 6)
	for _, b := range model.Buckets() {
		header += "  " + padRight(string(b), colNum)
	}
	fmt.Fprintln(w, color.New(color.Bold).Sprint(strings.TrimRight(header, " ")))
	fmt.Fprintln(w, strings.Repeat("-", runewidth.StringWidth(strings.TrimRight(header, " "))))

	for _, s := range summaries {
		team := runewidth.Truncate(s.Metadata.TeamName, colTeam, "...")
		line := padRight(s.Metadata.Timestamp.Format("2006-01-02 15:04:05"), colTime) +
			"  " + padRight(team, colTeam) +
			"  " + padRight(fmt.Sprint(s.Metadata.TotalIssues), 6)
		for _, e := range s.Statistics.Entries() {
			line += "  " + padRight(fmt.Sprint(e.Count), colNum)
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}

	return nil
}

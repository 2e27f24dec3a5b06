package output

import (
	"fmt"
	"io"

	"github.com/spiffcs/linear-stats/internal/model"
)

// Format represents the output format
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter defines the interface for output formatters
type Formatter interface {
	Format(summary model.RunSummary, w io.Writer) error
	FormatHistory(summaries []model.RunSummary, w io.Writer) error
}

// ParseFormat validates a format name. An empty name selects the table.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatMarkdown:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q: use table, json, or markdown", s)
	}
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

package output

import (
	"encoding/json"
	"io"

	"github.com/spiffcs/linear-stats/internal/model"
)

// JSONFormatter formats output as JSON. Keys keep struct order: the
// metadata block first, then statistics in bucket order.
type JSONFormatter struct {
	Pretty bool
}

// Format outputs a run summary as JSON
func (f *JSONFormatter) Format(summary model.RunSummary, w io.Writer) error {
	return f.encoder(w).Encode(summary)
}

// FormatHistory outputs past run summaries as a JSON array
func (f *JSONFormatter) FormatHistory(summaries []model.RunSummary, w io.Writer) error {
	if summaries == nil {
		summaries = []model.RunSummary{}
	}
	return f.encoder(w).Encode(summaries)
}

func (f *JSONFormatter) encoder(w io.Writer) *json.Encoder {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder
}

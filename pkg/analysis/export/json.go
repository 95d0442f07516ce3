package export

import (
	"context"
	"encoding/json"
	"io"

	"optward-hq/callisto/pkg/analysis"
)

// FullExporter exports complete form profiles as a JSON array.
type FullExporter struct {
	// Pretty enables pretty-printing with indentation. It affects layout
	// only, never content.
	Pretty bool
}

// NewFullExporter creates a new full-dump exporter.
func NewFullExporter(pretty bool) *FullExporter {
	return &FullExporter{
		Pretty: pretty,
	}
}

// Export writes every field of every profile to the provided writer as one
// JSON array. Decoded structured fields appear as structures, malformed
// stored text appears verbatim as a string, and NULL columns appear as
// null (see analysis.JSONField).
func (e *FullExporter) Export(ctx context.Context, profiles []*analysis.FormProfile, w io.Writer) error {
	if profiles == nil {
		profiles = []*analysis.FormProfile{}
	}

	var data []byte
	var err error
	if e.Pretty {
		data, err = json.MarshalIndent(profiles, "", "  ")
	} else {
		data, err = json.Marshal(profiles)
	}
	if err != nil {
		return analysis.NewExportError("full", len(profiles), err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return analysis.NewExportError("full", len(profiles), err)
	}

	return nil
}

package export

import (
	"context"
	"encoding/csv"
	"io"

	"optward-hq/callisto/pkg/analysis"
)

// CSVExporter exports form profiles to CSV format with stored-value
// fidelity: structured fields appear as their original serialized text,
// flags as 0/1, and NULL columns as empty cells.
type CSVExporter struct {
	// IncludeHeader includes a header row with column names.
	IncludeHeader bool
}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{
		IncludeHeader: includeHeader,
	}
}

// Export writes form profiles to the provided writer in CSV format.
// Columns follow analysis.Columns order.
func (e *CSVExporter) Export(ctx context.Context, profiles []*analysis.FormProfile, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if e.IncludeHeader {
		if err := writer.Write(analysis.ColumnNames()); err != nil {
			return analysis.NewExportError("csv", len(profiles), err)
		}
	}

	for _, p := range profiles {
		if err := writer.Write(profileToRow(p)); err != nil {
			return analysis.NewExportError("csv", len(profiles), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return analysis.NewExportError("csv", len(profiles), err)
	}

	return nil
}

// profileToRow converts a form profile to a CSV row in schema order.
func profileToRow(p *analysis.FormProfile) []string {
	return []string{
		p.BrokerID,
		p.PageURL,
		p.FormSelector,
		p.FieldMappings.Text(),
		optionalCell(p.CaptchaType),
		optionalCell(p.CaptchaSelector),
		p.SubmitButtonSelector,
		p.ConfirmationSelector,
		optionalCell(p.ConfirmationTextPattern),
		p.SearchFormDetails.Text(),
		p.RequiredDelays.Text(),
		flagCell(p.MultiStep),
		flagCell(p.RequiresSearchFirst),
		flagCell(p.HasRateLimiting),
		flagCell(p.UsesAjax),
		flagCell(p.RedirectAfterSubmit),
		flagCell(p.KnownWorking),
		optionalCell(p.AnalyzedAt),
	}
}

// optionalCell renders a nullable text column; NULL becomes an empty cell.
func optionalCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// flagCell renders a flag as it is stored: "1", "0", or empty for NULL.
func flagCell(v *bool) string {
	switch {
	case v == nil:
		return ""
	case *v:
		return "1"
	default:
		return "0"
	}
}

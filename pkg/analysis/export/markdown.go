package export

import (
	"context"
	"fmt"
	"io"
	"strings"

	"optward-hq/callisto/pkg/analysis"
)

// MarkdownExporter exports a tabular summary of form profiles as a
// Markdown table with a fixed column subset.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a new Markdown table exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export writes the summary table to the provided writer. Rows appear in
// the order delivered by the store (broker id ascending).
//
// Display rules: a NULL or empty captcha type renders as the literal
// "none"; multi_step renders ✓ when true and ✗ otherwise; known_working
// renders ✓ when true and ? otherwise (an explicit false is not
// distinguishable from never-analyzed); analyzed_at renders only its date
// portion, or N/A when absent.
func (e *MarkdownExporter) Export(ctx context.Context, profiles []*analysis.FormProfile, w io.Writer) error {
	lines := []string{
		"| Broker ID | Page URL | CAPTCHA | Multi-Step | Working | Analyzed |",
		"|-----------|----------|---------|------------|---------|----------|",
	}

	for _, p := range profiles {
		captcha := "none"
		if p.CaptchaType != nil && *p.CaptchaType != "" {
			captcha = *p.CaptchaType
		}

		multiStep := "✗"
		if p.IsMultiStep() {
			multiStep = "✓"
		}

		working := "?"
		if p.IsKnownWorking() {
			working = "✓"
		}

		analyzed := "N/A"
		if p.AnalyzedAt != nil {
			if fields := strings.Fields(*p.AnalyzedAt); len(fields) > 0 {
				analyzed = fields[0]
			}
		}

		lines = append(lines, fmt.Sprintf("| %s | %s | %s | %s | %s | %s |",
			p.BrokerID, p.PageURL, captcha, multiStep, working, analyzed))
	}

	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return analysis.NewExportError("markdown", len(profiles), err)
	}

	return nil
}

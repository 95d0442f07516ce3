package export

import (
	"context"
	"encoding/json"
	"io"

	"optward-hq/callisto/pkg/analysis"
)

// AutomationConfig is the minimal field subset a downstream automation
// executor needs to drive one broker's removal form.
type AutomationConfig struct {
	PageURL                 string  `json:"page_url"`
	FormSelector            string  `json:"form_selector"`
	FieldMappings           any     `json:"field_mappings"`
	CaptchaType             *string `json:"captcha_type"`
	CaptchaSelector         *string `json:"captcha_selector"`
	SubmitButtonSelector    string  `json:"submit_button_selector"`
	ConfirmationSelector    string  `json:"confirmation_selector"`
	ConfirmationTextPattern *string `json:"confirmation_text_pattern"`
	RequiredDelays          any     `json:"required_delays"`
	RequiresSearchFirst     bool    `json:"requires_search_first"`
	SearchFormDetails       any     `json:"search_form_details"`
}

// AutomationExporter exports automation-ready configuration as a JSON
// object keyed by broker id.
//
// The input must already be restricted to known-working profiles; the
// store applies that filter at the SQL level and this exporter does not
// re-filter. Output prioritizes machine-consumability over fidelity:
// structured fields that failed to decode become null instead of raw
// text, and requires_search_first is always a definite boolean (NULL
// coerces to false).
type AutomationExporter struct{}

// NewAutomationExporter creates a new automation-config exporter.
func NewAutomationExporter() *AutomationExporter {
	return &AutomationExporter{}
}

// Export writes the automation config map to the provided writer. Output
// is always indented; map keys serialize in sorted order.
func (e *AutomationExporter) Export(ctx context.Context, profiles []*analysis.FormProfile, w io.Writer) error {
	configs := make(map[string]*AutomationConfig, len(profiles))
	for _, p := range profiles {
		configs[p.BrokerID] = &AutomationConfig{
			PageURL:                 p.PageURL,
			FormSelector:            p.FormSelector,
			FieldMappings:           p.FieldMappings.AutomationValue(),
			CaptchaType:             p.CaptchaType,
			CaptchaSelector:         p.CaptchaSelector,
			SubmitButtonSelector:    p.SubmitButtonSelector,
			ConfirmationSelector:    p.ConfirmationSelector,
			ConfirmationTextPattern: p.ConfirmationTextPattern,
			RequiredDelays:          p.RequiredDelays.AutomationValue(),
			RequiresSearchFirst:     p.RequiresSearchFirst != nil && *p.RequiresSearchFirst,
			SearchFormDetails:       p.SearchFormDetails.AutomationValue(),
		}
	}

	data, err := json.MarshalIndent(configs, "", "  ")
	if err != nil {
		return analysis.NewExportError("automation", len(profiles), err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return analysis.NewExportError("automation", len(profiles), err)
	}

	return nil
}

package analysis

// FormProfile represents one broker's form-automation profile: everything
// the upstream analyzer recorded about a single removal form, including
// element selectors, CAPTCHA information, and behavior flags.
//
// Nullable text columns map to *string and the 0/1 flag columns map to
// *bool so that NULL in the store survives as nil. The full-dump exporter
// relies on this to emit null rather than a zero value.
type FormProfile struct {
	// Identity
	BrokerID string `json:"broker_id"` // Unique broker identifier
	PageURL  string `json:"page_url"`  // URL of the removal form page

	// Element selectors
	FormSelector         string `json:"form_selector"`
	SubmitButtonSelector string `json:"submit_button_selector"`
	ConfirmationSelector string `json:"confirmation_selector"`

	// CAPTCHA
	CaptchaType     *string `json:"captcha_type"`     // nil and "none" are equivalent
	CaptchaSelector *string `json:"captcha_selector"` // Selector for the CAPTCHA widget

	// Structured fields (JSON-in-TEXT in the store)
	FieldMappings     JSONField `json:"field_mappings"`      // Form field name -> selector/metadata
	SearchFormDetails JSONField `json:"search_form_details"` // Pre-submit search form description
	RequiredDelays    JSONField `json:"required_delays"`     // Step name -> delay

	// Behavior flags (0/1 in the store, NULL preserved as nil)
	MultiStep           *bool `json:"multi_step"`
	RequiresSearchFirst *bool `json:"requires_search_first"`
	HasRateLimiting     *bool `json:"has_rate_limiting"`
	UsesAjax            *bool `json:"uses_ajax"`
	RedirectAfterSubmit *bool `json:"redirect_after_submit"`
	KnownWorking        *bool `json:"known_working"` // Verified to work at least once

	// Confirmation matching
	ConfirmationTextPattern *string `json:"confirmation_text_pattern"`

	// Free-form timestamp text, date-prefixed (e.g. "2026-08-01 14:03:22")
	AnalyzedAt *string `json:"analyzed_at"`
}

// IsKnownWorking reports whether the profile has been verified to work.
// A nil (never analyzed) or false flag both report false; the store does
// not disambiguate the two.
func (p *FormProfile) IsKnownWorking() bool {
	return p.KnownWorking != nil && *p.KnownWorking
}

// IsMultiStep reports whether the form spans multiple steps. nil counts
// as single-step.
func (p *FormProfile) IsMultiStep() bool {
	return p.MultiStep != nil && *p.MultiStep
}

// HasCaptcha reports whether a CAPTCHA is recorded for the profile.
// A NULL captcha_type and the literal "none" both mean no CAPTCHA.
func (p *FormProfile) HasCaptcha() bool {
	return p.CaptchaType != nil && *p.CaptchaType != "none"
}

// Query describes the record selection for Store.Query.
// The zero value selects every profile.
type Query struct {
	// BrokerID restricts the query to a single broker. Zero matching rows
	// is a valid outcome, not an error.
	BrokerID string

	// KnownWorkingOnly restricts the query to profiles with
	// known_working = 1. The automation-config path sets this so the
	// filter is applied at the SQL level rather than by the exporter.
	KnownWorkingOnly bool
}

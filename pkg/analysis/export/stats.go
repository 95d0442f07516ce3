package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"optward-hq/callisto/pkg/analysis"
)

// Stats holds aggregate statistics over a set of form profiles.
type Stats struct {
	// Total is the number of profiles.
	Total int

	// KnownWorking is the number of profiles verified to work.
	KnownWorking int

	// WithCaptcha is the number of profiles with a recorded CAPTCHA
	// (captcha_type non-NULL and not "none").
	WithCaptcha int

	// MultiStep is the number of multi-step forms.
	MultiStep int

	// CaptchaBreakdown counts profiles per captcha type, restricted to
	// non-NULL, non-"none" values.
	CaptchaBreakdown map[string]int
}

// WorkingPercent returns the known-working share as a percentage.
// It is 0 for an empty set rather than a division by zero.
func (s *Stats) WorkingPercent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.KnownWorking) / float64(s.Total) * 100
}

// ComputeStats aggregates statistics over the given profiles.
func ComputeStats(profiles []*analysis.FormProfile) *Stats {
	stats := &Stats{
		CaptchaBreakdown: make(map[string]int),
	}

	for _, p := range profiles {
		stats.Total++
		if p.IsKnownWorking() {
			stats.KnownWorking++
		}
		if p.IsMultiStep() {
			stats.MultiStep++
		}
		if p.HasCaptcha() {
			stats.WithCaptcha++
			stats.CaptchaBreakdown[*p.CaptchaType]++
		}
	}

	return stats
}

// StatsReporter renders aggregate coverage statistics as a plain-text
// report. Unlike the other exporters it writes the report directly to the
// stream rather than returning a document.
type StatsReporter struct{}

// NewStatsReporter creates a new statistics reporter.
func NewStatsReporter() *StatsReporter {
	return &StatsReporter{}
}

// Report writes the statistics report for the given profiles to w.
func (r *StatsReporter) Report(profiles []*analysis.FormProfile, w io.Writer) error {
	stats := ComputeStats(profiles)

	fmt.Fprintln(w, "Form Analysis Statistics")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Total brokers analyzed: %d\n", stats.Total)
	fmt.Fprintf(w, "Known working: %d (%.1f%%)\n", stats.KnownWorking, stats.WorkingPercent())
	fmt.Fprintf(w, "With CAPTCHA: %d\n", stats.WithCaptcha)
	fmt.Fprintf(w, "Multi-step forms: %d\n", stats.MultiStep)
	fmt.Fprintln(w)

	if len(stats.CaptchaBreakdown) > 0 {
		fmt.Fprintln(w, "CAPTCHA Types:")

		// Map iteration order is random; sort for a stable report.
		types := make([]string, 0, len(stats.CaptchaBreakdown))
		for captchaType := range stats.CaptchaBreakdown {
			types = append(types, captchaType)
		}
		sort.Strings(types)

		for _, captchaType := range types {
			fmt.Fprintf(w, "  - %s: %d\n", captchaType, stats.CaptchaBreakdown[captchaType])
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return analysis.NewExportError("stats", len(profiles), err)
	}

	return nil
}

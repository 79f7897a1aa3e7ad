package extract

import (
	"strings"

	"github.com/Bobska/autocraftcv-sub000/internal/config"
	"github.com/Bobska/autocraftcv-sub000/internal/jobposting"
)

// Phrases that mean a field holds an error marker instead of real data.
// Upstream services used to leak these into results.
var errorMarkers = []string{
	"not available",
	"not found",
	"extraction failed",
	"manual entry required",
	"manual review required",
	"unknown company",
}

// Accepted is the single acceptance predicate every strategy's output is
// judged against: a meaningful title, plus either a meaningful company or a
// substantial description. It is implemented once here and shared - never
// re-derived per strategy.
func Accepted(result jobposting.ExtractionResult, cfg *config.Config) bool {
	title := strings.TrimSpace(result.Title)
	if len(title) <= cfg.TitleMinLength || isErrorMarker(title) {
		return false
	}

	company := strings.TrimSpace(result.Company)
	hasCompany := len(company) > cfg.CompanyMinLength && !isErrorMarker(company)

	return hasCompany || len(strings.TrimSpace(result.Description)) > cfg.DescriptionMinLength
}

func isErrorMarker(value string) bool {
	lower := strings.ToLower(value)
	if jobposting.IsPlaceholder(value) {
		return true
	}
	for _, marker := range errorMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

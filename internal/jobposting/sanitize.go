package jobposting

import (
	"net/url"
	"strings"
)

// Field minimums below which a value is considered junk and replaced by a
// placeholder. These mirror the NOT NULL guard in front of the job store.
const (
	minTitleLen    = 3
	minCompanyLen  = 2
	minLocationLen = 2

	maxRawContentLen = 10000
)

// Sanitize normalizes a raw extraction result into a schema-safe record.
// It is pure and total: any input, including the zero value, comes out with
// non-empty title/company/location (placeholders substituted), every other
// field a plain string, site_domain derived from the URL, and needs_review
// recomputed from the final field values. Running it twice is a no-op.
func Sanitize(result ExtractionResult, jobURL string) ExtractionResult {
	result.Title = sanitizeRequired(result.Title, minTitleLen, PlaceholderTitle)
	result.Company = sanitizeRequired(result.Company, minCompanyLen, PlaceholderCompany)
	result.Location = sanitizeRequired(result.Location, minLocationLen, PlaceholderLocation)

	result.Description = strings.TrimSpace(result.Description)
	result.Requirements = strings.TrimSpace(result.Requirements)
	result.Responsibilities = strings.TrimSpace(result.Responsibilities)
	result.SalaryRange = strings.TrimSpace(result.SalaryRange)
	result.EmploymentType = strings.TrimSpace(result.EmploymentType)
	result.ApplicationInstructions = strings.TrimSpace(result.ApplicationInstructions)
	result.FailureReason = strings.TrimSpace(result.FailureReason)

	result.RawContent = strings.TrimSpace(result.RawContent)
	if len(result.RawContent) > maxRawContentLen {
		result.RawContent = result.RawContent[:maxRawContentLen]
	}

	if result.ExtractionMethod == "" {
		result.ExtractionMethod = "unknown"
	}

	result.SiteDomain = DomainFromURL(jobURL)

	// Do not trust an upstream strategy's self-reported flags: recompute
	// quality and needs_review from what actually survived sanitization.
	result.Quality = assessQuality(result)
	result.NeedsReview = IsPlaceholder(result.Title) ||
		IsPlaceholder(result.Company) ||
		result.Quality == QualityPoor ||
		result.Quality == QualityFair

	return result
}

func sanitizeRequired(value string, minLen int, placeholder string) string {
	value = strings.TrimSpace(value)
	if len(value) < minLen {
		return placeholder
	}
	return value
}

// DomainFromURL returns the lower-cased host of jobURL, or "unknown" when
// the URL cannot be parsed into something with a host.
func DomainFromURL(jobURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(jobURL))
	if err != nil || parsed.Host == "" {
		return "unknown"
	}
	return strings.ToLower(parsed.Host)
}

// assessQuality scores the result 0-8 across the fields that matter for a
// usable posting and buckets the score into the quality enum.
func assessQuality(result ExtractionResult) ExtractionQuality {
	score := 0
	if !IsPlaceholder(result.Title) {
		score += 2
	}
	if !IsPlaceholder(result.Company) {
		score += 2
	}
	if len(result.Description) > 100 {
		score += 2
	}
	if len(result.Requirements) > 50 {
		score++
	}
	if !IsPlaceholder(result.Location) {
		score++
	}

	switch {
	case score >= 6:
		return QualityExcellent
	case score >= 4:
		return QualityGood
	case score >= 2:
		return QualityFair
	default:
		return QualityPoor
	}
}

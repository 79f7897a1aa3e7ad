package jobposting

// ExtractionQuality grades how complete an extraction came out
type ExtractionQuality string

const (
	QualityExcellent ExtractionQuality = "excellent"
	QualityGood      ExtractionQuality = "good"
	QualityFair      ExtractionQuality = "fair"
	QualityPoor      ExtractionQuality = "poor"
)

// Placeholder values substituted by the sanitizer. The persistence layer
// rejects NULL text columns, so every field must carry at least these.
const (
	PlaceholderTitle    = "Job Title Not Available"
	PlaceholderCompany  = "Company Not Available"
	PlaceholderLocation = "Location Not Available"
)

// ExtractionRequest is the immutable input of one pipeline run
type ExtractionRequest struct {
	URL        string
	RawContent string //pasted text for the manual path, empty otherwise
	SiteHint   string //optional domain hint, overrides URL classification
	TaskID     string //progress-reporting key, empty when nobody polls
}

// ExtractionResult is the pipeline's output unit. Every field is a plain
// string (possibly empty) after sanitization - never a language-native null.
type ExtractionResult struct {
	Title                   string            `json:"title"`
	Company                 string            `json:"company"`
	Location                string            `json:"location"`
	Description             string            `json:"description"`
	Requirements            string            `json:"requirements"`
	Responsibilities        string            `json:"responsibilities"`
	SalaryRange             string            `json:"salary_range"`
	EmploymentType          string            `json:"employment_type"`
	ApplicationInstructions string            `json:"application_instructions"`
	RawContent              string            `json:"raw_content"`
	SiteDomain              string            `json:"site_domain"`
	ExtractionMethod        string            `json:"extraction_method"`
	Quality                 ExtractionQuality `json:"extraction_quality"`
	NeedsReview             bool              `json:"needs_review"`
	FailureReason           string            `json:"failure_reason,omitempty"` //set only for manual_required results
}

// IsPlaceholder reports whether a field value is one of the sanitizer's
// substituted placeholders rather than real extracted text
func IsPlaceholder(value string) bool {
	switch value {
	case PlaceholderTitle, PlaceholderCompany, PlaceholderLocation:
		return true
	}
	return false
}

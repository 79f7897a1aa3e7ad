package jobposting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_Totality(t *testing.T) {
	tests := []struct {
		name   string
		input  ExtractionResult
		url    string
		title  string
		domain string
	}{
		{
			name:   "zero value input",
			input:  ExtractionResult{},
			url:    "https://www.seek.com.au/job/12345",
			title:  PlaceholderTitle,
			domain: "www.seek.com.au",
		},
		{
			name:   "whitespace only fields",
			input:  ExtractionResult{Title: "   \n\t ", Company: "  ", Location: " "},
			url:    "https://careers.acme.com/roles/1",
			title:  PlaceholderTitle,
			domain: "careers.acme.com",
		},
		{
			name:   "below minimum length",
			input:  ExtractionResult{Title: "ab", Company: "x", Location: "y"},
			url:    "not a url at all",
			title:  PlaceholderTitle,
			domain: "unknown",
		},
		{
			name:   "real values survive",
			input:  ExtractionResult{Title: "Senior Backend Engineer", Company: "Acme Corp", Location: "Melbourne, VIC"},
			url:    "HTTPS://WWW.Seek.com.au/job/1",
			title:  "Senior Backend Engineer",
			domain: "www.seek.com.au",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Sanitize(tt.input, tt.url)

			assert.Equal(t, tt.title, out.Title)
			assert.Equal(t, tt.domain, out.SiteDomain)
			assert.NotEmpty(t, out.Company)
			assert.NotEmpty(t, out.Location)
			assert.NotEmpty(t, out.Quality)
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	input := ExtractionResult{
		Title:       "Go",
		Company:     "",
		Location:    "Remote",
		Description: strings.Repeat("backend services in Go. ", 10),
	}

	once := Sanitize(input, "https://example.com/jobs/1")
	twice := Sanitize(once, "https://example.com/jobs/1")

	assert.Equal(t, once, twice)
	// No double placeholder-wrapping
	assert.Equal(t, PlaceholderCompany, twice.Company)
	assert.Equal(t, PlaceholderTitle, twice.Title)
}

func TestSanitize_NeedsReviewRecomputed(t *testing.T) {
	// Upstream claims no review needed, but company is missing
	input := ExtractionResult{
		Title:       "Graduate Analyst",
		Description: strings.Repeat("analysis of market data ", 10),
		NeedsReview: false,
	}
	out := Sanitize(input, "https://example.com/jobs/2")

	assert.Equal(t, PlaceholderCompany, out.Company)
	assert.True(t, out.NeedsReview)
}

func TestSanitize_ConfidentResultNotFlagged(t *testing.T) {
	input := ExtractionResult{
		Title:        "Senior Backend Engineer",
		Company:      "Acme Corp",
		Location:     "Melbourne, VIC",
		Description:  strings.Repeat("design and build APIs ", 10),
		Requirements: strings.Repeat("5+ years Go experience ", 5),
	}
	out := Sanitize(input, "https://example.com/jobs/3")

	assert.Equal(t, QualityExcellent, out.Quality)
	assert.False(t, out.NeedsReview)
}

func TestSanitize_RawContentBounded(t *testing.T) {
	input := ExtractionResult{RawContent: strings.Repeat("x", 50000)}
	out := Sanitize(input, "https://example.com")

	assert.Len(t, out.RawContent, 10000)
}

func TestDomainFromURL(t *testing.T) {
	assert.Equal(t, "www.linkedin.com", DomainFromURL("https://www.linkedin.com/jobs/view/1"))
	assert.Equal(t, "unknown", DomainFromURL(""))
	assert.Equal(t, "unknown", DomainFromURL("://bad"))
}

// Package structured extracts job data from machine-readable metadata
// embedded by the publisher (JSON-LD JobPosting blocks, itemprop
// microdata). Cheapest and highest-confidence strategy: it either finds a
// well-formed block or declines, it never guesses.
package structured

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bobska/autocraftcv-sub000/internal/extract"
	"github.com/Bobska/autocraftcv-sub000/internal/jobposting"
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Name() string {
	return "structured_data"
}

func (e *Extractor) Extract(doc *goquery.Document, pageURL string) extract.Outcome {
	var result *jobposting.ExtractionResult

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		posting, ok := parseJobPostingBlock(s.Text())
		if !ok {
			return true //keep scanning remaining script tags
		}
		result = posting
		return false
	})

	if result == nil {
		result = extractMicrodata(doc)
	}
	if result == nil {
		return extract.Failed(extract.FailureNoMatch, "no JobPosting structured data on page")
	}
	if result.Title == "" && result.Company == "" {
		return extract.Failed(extract.FailureNoMatch, "structured data block had neither title nor company")
	}

	result.RawContent = doc.Text()
	return extract.Extracted(*result)
}

// parseJobPostingBlock decodes one ld+json script body and pulls a
// JobPosting out of it, handling single objects, top-level arrays, and
// @graph containers.
func parseJobPostingBlock(raw string) (*jobposting.ExtractionResult, bool) {
	var decoded any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &decoded); err != nil {
		return nil, false
	}

	for _, node := range flatten(decoded) {
		obj, ok := node.(map[string]any)
		if !ok || !isJobPosting(obj) {
			continue
		}
		return &jobposting.ExtractionResult{
			Title:          stringField(obj, "title"),
			Company:        companyOf(obj),
			Description:    htmlToText(stringField(obj, "description")),
			Location:       locationOf(obj),
			EmploymentType: employmentTypeOf(obj),
			SalaryRange:    salaryOf(obj),
		}, true
	}
	return nil, false
}

// flatten yields candidate nodes from a decoded ld+json value: the value
// itself, array members, and @graph members.
func flatten(decoded any) []any {
	switch v := decoded.(type) {
	case []any:
		return v
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			return append([]any{v}, graph...)
		}
		return []any{v}
	default:
		return nil
	}
}

func isJobPosting(obj map[string]any) bool {
	switch t := obj["@type"].(type) {
	case string:
		return t == "JobPosting"
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

func stringField(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func companyOf(obj map[string]any) string {
	switch org := obj["hiringOrganization"].(type) {
	case map[string]any:
		return stringField(org, "name")
	case string:
		return strings.TrimSpace(org)
	}
	return stringField(obj, "organizationName")
}

// locationOf composes "City, Region" from the nested address of the first
// jobLocation entry.
func locationOf(obj map[string]any) string {
	location := obj["jobLocation"]
	if arr, ok := location.([]any); ok && len(arr) > 0 {
		location = arr[0]
	}
	place, ok := location.(map[string]any)
	if !ok {
		return ""
	}
	address, ok := place["address"].(map[string]any)
	if !ok {
		return ""
	}

	parts := make([]string, 0, 2)
	for _, key := range []string{"addressLocality", "addressRegion"} {
		if part := stringField(address, key); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return stringField(address, "addressCountry")
	}
	return strings.Join(parts, ", ")
}

func employmentTypeOf(obj map[string]any) string {
	switch t := obj["employmentType"].(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// salaryOf composes a display string from baseSalary min/max/currency.
func salaryOf(obj map[string]any) string {
	base, ok := obj["baseSalary"].(map[string]any)
	if !ok {
		return ""
	}
	value, ok := base["value"].(map[string]any)
	if !ok {
		return ""
	}

	currency := stringField(base, "currency")
	if currency == "" {
		currency = "$"
	}
	minVal := numberField(value, "minValue")
	maxVal := numberField(value, "maxValue")

	switch {
	case minVal != "" && maxVal != "":
		return fmt.Sprintf("%s%s - %s%s", currency, minVal, currency, maxVal)
	case minVal != "":
		return fmt.Sprintf("%s%s+", currency, minVal)
	default:
		return ""
	}
}

func numberField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case string:
		return strings.TrimSpace(v)
	}
	return ""
}

// extractMicrodata handles the itemprop flavor of schema.org JobPosting
func extractMicrodata(doc *goquery.Document) *jobposting.ExtractionResult {
	scope := doc.Find(`[itemtype*="JobPosting"]`).First()
	if scope.Length() == 0 {
		return nil
	}

	itemprop := func(name string) string {
		sel := scope.Find(fmt.Sprintf(`[itemprop=%q]`, name)).First()
		if content, ok := sel.Attr("content"); ok {
			return strings.TrimSpace(content)
		}
		return strings.TrimSpace(sel.Text())
	}

	result := &jobposting.ExtractionResult{
		Title:          itemprop("title"),
		Company:        itemprop("hiringOrganization"),
		Description:    itemprop("description"),
		Location:       itemprop("jobLocation"),
		EmploymentType: itemprop("employmentType"),
	}
	if result.Title == "" && result.Company == "" {
		return nil
	}
	return result
}

// htmlToText strips markup from a description that was embedded as HTML
func htmlToText(raw string) string {
	if !strings.Contains(raw, "<") {
		return raw
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	return strings.TrimSpace(doc.Text())
}

// Package selectors extracts job fields by trying ordered lists of
// site-specific and generic CSS selectors against fetched HTML.
package selectors

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/Bobska/autocraftcv-sub000/internal/extract"
	"github.com/Bobska/autocraftcv-sub000/internal/jobposting"
)

// Literal UI artifacts that job boards render inside otherwise useful
// elements. Stripped as substrings; a value that *is* one of these (exact
// match after trimming) counts as not found at all.
var artifacts = []string{
	"Apply Now",
	"Quick Apply",
	"Easy Apply",
	"Apply on Company Website",
	"Save Job",
	"Share Job",
	"Share",
	"View Job",
	"Back to results",
	"View all jobs",
	"(opens in a new window)",
	"(opens in new tab)",
}

var artifactSet = mapset.NewSet[string]()

func init() {
	for _, a := range artifacts {
		artifactSet.Add(strings.ToLower(a))
	}
}

type Extractor struct {
	tables *Tables
}

func New(tables *Tables) *Extractor {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Extractor{tables: tables}
}

func (e *Extractor) Name() string {
	return "css_selectors"
}

func (e *Extractor) Extract(doc *goquery.Document, pageURL string) extract.Outcome {
	table := e.tables.For(jobposting.DomainFromURL(pageURL))

	result := jobposting.ExtractionResult{
		Title:        e.firstMatch(doc, table.Title),
		Company:      e.firstMatch(doc, table.Company),
		Location:     e.firstMatch(doc, table.Location),
		Description:  e.firstMatch(doc, table.Description),
		Requirements: e.firstMatch(doc, table.Requirements),
	}

	if result.Title == "" && result.Company == "" {
		return extract.Failed(extract.FailureNoMatch, "no selector matched title or company")
	}

	result.RawContent = doc.Text()
	return extract.Extracted(result)
}

// firstMatch tries selectors in priority order and returns the first one
// whose element yields non-empty, non-boilerplate text. Fields with no
// surviving match stay empty - placeholder substitution is the sanitizer's
// job, not ours.
func (e *Extractor) firstMatch(doc *goquery.Document, selectorList []string) string {
	for _, selector := range selectorList {
		var found string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if text := cleanText(s.Text()); text != "" {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// cleanText collapses whitespace and strips UI artifacts. Text that was
// nothing but an artifact ("Apply Now") comes back empty so the next
// selector in the priority list gets its turn.
func cleanText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return ""
	}
	if artifactSet.Contains(strings.ToLower(text)) {
		return ""
	}
	for _, artifact := range artifacts {
		text = strings.ReplaceAll(text, artifact, "")
	}
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}

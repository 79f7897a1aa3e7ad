// Package mining is the last-resort heuristic strategy: regex pattern
// pulls, heading detection, and paragraph scoring over raw page text. It is
// intentionally the lowest-confidence extractor and its results are
// expected to come out needs_review more often than not.
package mining

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Bobska/autocraftcv-sub000/internal/extract"
	"github.com/Bobska/autocraftcv-sub000/internal/jobposting"
)

// roleKeywords marks a heading as a plausible job title
var roleKeywords = []string{
	"manager", "engineer", "analyst", "developer", "designer", "consultant",
	"specialist", "coordinator", "administrator", "architect", "lead",
	"officer", "assistant", "director", "scientist", "technician", "intern",
}

// descriptionKeywords marks a paragraph as job-description material
var descriptionKeywords = []string{
	"responsibilities", "requirements", "experience", "skills", "role",
	"position", "candidate", "team", "opportunity", "salary", "benefits",
}

// siteSuffixSeparators split "Job Title - Board Name" page titles
var siteSuffixSeparators = []string{" - ", " | ", " at ", " – "}

// fieldPattern binds one regex to one logical field. Patterns are tried in
// order and the first match wins; that contract is explicit and tested per
// field rather than buried in procedural code.
type fieldPattern struct {
	field string
	re    *regexp.Regexp
}

var fieldPatterns = []fieldPattern{
	{"requirements", regexp.MustCompile(`(?is)(?:requirements?|qualifications?|what you(?:'ll)? need|must have)[:\-]\s*(.{50,1000}?)(?:\n\s*\n|\n[A-Z][a-z]+:|\z)`)},
	{"requirements", regexp.MustCompile(`(?is)(?:you\s+(?:will\s+)?(?:have|need|must))[:\-]\s*(.{50,1000}?)(?:\n\s*\n|\n[A-Z][a-z]+:|\z)`)},
	{"responsibilities", regexp.MustCompile(`(?is)(?:responsibilities|duties|tasks|what you(?:'ll)? do)[:\-]\s*(.{50,1000}?)(?:\n\s*\n|\n[A-Z][a-z]+:|\z)`)},
	{"responsibilities", regexp.MustCompile(`(?is)(?:you\s+will\s+be\s+responsible\s+for)[:\-]?\s*(.{50,1000}?)(?:\n\s*\n|\n[A-Z][a-z]+:|\z)`)},
	{"salary_range", regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?(?:\s*-\s*\$[\d,]+(?:\.\d{2})?)?(?:\s*(?:per|/)\s*(?:year|yr|hour|hr|month|annum))?`)},
	{"salary_range", regexp.MustCompile(`(?i)(?:salary|compensation|pay)[:\s]*\$?[\d,]+k?(?:\s*-\s*\$?[\d,]+k?)?`)},
	{"location", regexp.MustCompile(`(?im)^(?:location|based in)[:\s-]+([A-Za-z][A-Za-z\s,]+?)\s*$`)},
	{"location", regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)?,\s*[A-Z]{2,3})\b`)},
	{"employment_type", regexp.MustCompile(`(?i)\b(full[\s-]?time|part[\s-]?time|contract|temporary|permanent|casual|internship|freelance)\b`)},
	{"company", regexp.MustCompile(`(?im)^(?:company|employer|organization)[:\s-]+(.+?)\s*$`)},
	{"company", regexp.MustCompile(`(?m)\b(?:at|with|for)\s+([A-Z][A-Za-z&.\-]+(?:\s[A-Z][A-Za-z&.\-]+){0,3})\s+(?:is|we|you|in)\b`)},
	{"company", regexp.MustCompile(`(?m)\b([A-Z][A-Za-z&.\-]+(?:\s[A-Z][A-Za-z&.\-]+){0,3})\s+(?:is\s+)?(?:hiring|seeking|looking\s+for)\b`)},
}

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Name() string {
	return "content_mining"
}

func (e *Extractor) Extract(doc *goquery.Document, pageURL string) extract.Outcome {
	// Work on a clone: stripping chrome must not leak into other strategies
	clone := goquery.CloneDocument(doc)
	clone.Find("script, style, nav, header, footer, aside, menu").Remove()

	text := visibleText(clone)
	result := MineText(text)

	if result.Title == "" {
		result.Title = titleFromPage(clone)
	}
	if result.Title == "" {
		result.Title = titleFromHeadings(clone)
	}
	if result.Description == "" {
		result.Description = bestParagraph(splitParagraphs(text))
	}

	if result.Title == "" && result.Company == "" {
		return extract.Failed(extract.FailureNoMatch, "text mining found neither title nor company")
	}

	result.RawContent = text
	return extract.Extracted(result)
}

// MineText runs the heuristic pass over plain text with no DOM available.
// The manual-entry fallback shares it.
func MineText(text string) jobposting.ExtractionResult {
	result := jobposting.ExtractionResult{}

	for _, fp := range fieldPatterns {
		if fieldValue(&result, fp.field) != "" {
			continue //first match wins
		}
		match := fp.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		value := match[0]
		if len(match) > 1 {
			value = match[1]
		}
		if fp.field == "requirements" || fp.field == "responsibilities" {
			setFieldValue(&result, fp.field, cleanBlock(value))
		} else {
			setFieldValue(&result, fp.field, collapseWhitespace(value))
		}
	}

	if result.Title == "" {
		result.Title = titleFromFirstLine(text)
	}
	if result.Description == "" {
		result.Description = bestParagraph(splitParagraphs(text))
	}
	result.Requirements = dedupeLines(result.Requirements)

	return result
}

func fieldValue(r *jobposting.ExtractionResult, field string) string {
	switch field {
	case "requirements":
		return r.Requirements
	case "responsibilities":
		return r.Responsibilities
	case "salary_range":
		return r.SalaryRange
	case "location":
		return r.Location
	case "employment_type":
		return r.EmploymentType
	case "company":
		return r.Company
	}
	return ""
}

func setFieldValue(r *jobposting.ExtractionResult, field, value string) {
	switch field {
	case "requirements":
		r.Requirements = value
	case "responsibilities":
		r.Responsibilities = value
	case "salary_range":
		r.SalaryRange = value
	case "location":
		r.Location = value
	case "employment_type":
		r.EmploymentType = value
	case "company":
		r.Company = value
	}
}

// titleFromPage takes the <title> tag and trims site-name suffixes
func titleFromPage(doc *goquery.Document) string {
	title := collapseWhitespace(doc.Find("title").First().Text())
	for _, sep := range siteSuffixSeparators {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
		}
	}
	title = strings.TrimSpace(title)
	if len(title) > 5 && len(title) <= 200 {
		return title
	}
	return ""
}

// titleFromHeadings returns the first h1/h2 containing a role keyword
func titleFromHeadings(doc *goquery.Document) string {
	var found string
	doc.Find("h1, h2").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := collapseWhitespace(s.Text())
		if len(text) < 5 || len(text) > 200 {
			return true
		}
		if containsKeyword(text, roleKeywords) {
			found = text
			return false
		}
		return true
	})
	return found
}

// titleFromFirstLine treats a short leading line with a role keyword as
// the title. Pasted postings usually start with one.
func titleFromFirstLine(text string) string {
	for _, line := range strings.SplitN(text, "\n", 5) {
		line = collapseWhitespace(line)
		if len(line) < 5 || len(line) > 120 {
			continue
		}
		if containsKeyword(line, roleKeywords) {
			return line
		}
	}
	return ""
}

// bestParagraph scores paragraphs by length, keeping only those mentioning
// at least one job-description keyword, and returns the longest.
func bestParagraph(paragraphs []string) string {
	best := ""
	for _, p := range paragraphs {
		p = collapseWhitespace(p)
		if len(p) < 80 || !containsKeyword(p, descriptionKeywords) {
			continue
		}
		if len(p) > len(best) {
			best = p
		}
	}
	return best
}

func splitParagraphs(text string) []string {
	return regexp.MustCompile(`\n\s*\n`).Split(text, -1)
}

func visibleText(doc *goquery.Document) string {
	var sb strings.Builder
	doc.Find("body").Find("h1, h2, h3, p, li, div").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > 0 {
			return //only leaf blocks, parents would duplicate text
		}
		text := strings.TrimSpace(s.Text())
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}
	})
	if sb.Len() == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.TrimSpace(sb.String())
}

// containsKeyword matches after accent-stripping normalization so keyword
// lists keep working on non-ASCII postings
func containsKeyword(text string, keywords []string) bool {
	normalized := normalizeText(text)
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}

// dedupeLines drops repeated bullet lines from a requirements block
func dedupeLines(block string) string {
	if block == "" {
		return ""
	}
	seen := mapset.NewSet[string]()
	var kept []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key := strings.ToLower(line)
		if seen.Contains(key) {
			continue
		}
		seen.Add(key)
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}

// cleanBlock tidies a multi-line block while keeping its line structure,
// so bullet lists survive for later per-line dedup
func cleanBlock(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = collapseWhitespace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

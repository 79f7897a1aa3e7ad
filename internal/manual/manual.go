// Package manual is the fallback path for content the pipeline could not
// fetch or extract: the user pastes the posting text and the same mining
// heuristics run over it, optionally sharpened by a generative parse.
package manual

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/Bobska/autocraftcv-sub000/internal/ai"
	"github.com/Bobska/autocraftcv-sub000/internal/extract/mining"
	"github.com/Bobska/autocraftcv-sub000/internal/jobposting"
)

// Method labels recorded on results from this path
const (
	MethodManualEntry = "manual_entry"
	MethodAIParsing   = "ai_manual_parsing"
)

// MinContentLength is the boundary contract for callers: pasted text
// shorter than this is rejected before extraction even starts.
const MinContentLength = 100

// webArtifactPatterns strip boilerplate lines that pasted pages drag along
var webArtifactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)cookie\s+policy.*?(?:\n|$)`),
	regexp.MustCompile(`(?i)privacy\s+policy.*?(?:\n|$)`),
	regexp.MustCompile(`(?i)terms\s+(?:and\s+conditions|of\s+service).*?(?:\n|$)`),
	regexp.MustCompile(`(?i)subscribe\s+to\s+(?:our\s+)?newsletter.*?(?:\n|$)`),
	regexp.MustCompile(`(?i)follow\s+us\s+on\s+social\s+media.*?(?:\n|$)`),
	regexp.MustCompile(`(?i)share\s+this\s+job.*?(?:\n|$)`),
	regexp.MustCompile(`(?i)apply\s+now.*?(?:\n|$)`),
	regexp.MustCompile(`(?i)save\s+(?:this\s+)?job.*?(?:\n|$)`),
	regexp.MustCompile(`(?i)back\s+to\s+(?:search\s+)?results.*?(?:\n|$)`),
	regexp.MustCompile(`(?i)view\s+all\s+jobs.*?(?:\n|$)`),
}

var (
	urlPattern         = regexp.MustCompile(`https?://\S+`)
	emailPattern       = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	blankLinesPattern  = regexp.MustCompile(`\n\s*\n`)
	spacesPattern      = regexp.MustCompile(`[ \t]+`)
	jsonEncodedPattern = regexp.MustCompile(`\\u003[A-Fa-f0-9]|\\u002[A-Fa-f0-9]|\\['"]`)
	jsonTagPattern     = regexp.MustCompile(`\\u003[Cc].*?\\u003[Ee]`)
	escapedQuotes      = regexp.MustCompile(`\\['"]`)
)

// Extractor runs the manual-entry path. ai may be nil when no generative
// model is configured; the heuristic pass alone then decides.
type Extractor struct {
	ai ai.Client
}

func New(client ai.Client) *Extractor {
	return &Extractor{ai: client}
}

// ExtractFromPastedContent cleans the pasted text, mines it, optionally
// merges a generative parse on top, and sanitizes. jobURL may be empty.
func (e *Extractor) ExtractFromPastedContent(ctx context.Context, content, jobURL string) jobposting.ExtractionResult {
	log.Printf("📋 Manual extraction from pasted content (%d chars)", len(content))

	cleaned := CleanContent(content)
	result := mining.MineText(cleaned)
	result.RawContent = cleaned
	result.ExtractionMethod = MethodManualEntry

	if e.ai != nil {
		parsed, err := e.ai.ParseJobContent(ctx, cleaned)
		if err != nil {
			log.Printf("⚠️ Generative parse failed, keeping heuristic result: %v", err)
		} else if parsed != nil {
			result = mergeParsed(result, *parsed)
			result.ExtractionMethod = MethodAIParsing
		}
	}

	return jobposting.Sanitize(result, jobURL)
}

// mergeParsed overlays the generative fields onto the heuristic result.
// A generative value wins only when present and longer than 3 characters;
// the heuristic value stays otherwise.
func mergeParsed(base jobposting.ExtractionResult, parsed ai.ParsedJob) jobposting.ExtractionResult {
	overlay := func(target *string, value string) {
		value = strings.TrimSpace(value)
		if len(value) > 3 {
			*target = value
		}
	}
	overlay(&base.Title, parsed.JobTitle)
	overlay(&base.Company, parsed.CompanyName)
	overlay(&base.Location, parsed.Location)
	overlay(&base.Description, parsed.JobDescription)
	overlay(&base.Requirements, parsed.Requirements)
	overlay(&base.SalaryRange, parsed.SalaryRange)
	overlay(&base.EmploymentType, parsed.EmploymentType)
	return base
}

// CleanContent strips web boilerplate, URLs, email addresses, and
// JSON-encoded script contamination from pasted text.
func CleanContent(raw string) string {
	cleaned := removeJSONEncoded(raw)

	cleaned = blankLinesPattern.ReplaceAllString(cleaned, "\n\n")
	cleaned = spacesPattern.ReplaceAllString(cleaned, " ")

	for _, pattern := range webArtifactPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}

	cleaned = urlPattern.ReplaceAllString(cleaned, "")
	cleaned = emailPattern.ReplaceAllString(cleaned, "")
	cleaned = blankLinesPattern.ReplaceAllString(cleaned, "\n\n")

	return strings.TrimSpace(cleaned)
}

// removeJSONEncoded guards against pasted script-tag payloads: text that
// is mostly JSON-encoded HTML came from a <script> blob, not the posting,
// and is discarded wholesale rather than half-cleaned.
func removeJSONEncoded(text string) string {
	if text == "" {
		return text
	}

	matches := jsonEncodedPattern.FindAllString(text, -1)
	if len(matches) > 0 {
		percentage := float64(len(matches)) / float64(len(text)) * 100
		if percentage > 10 || len(matches) > 50 {
			log.Printf("⚠️ Discarding content with JSON encoding contamination (%.1f%%, %d matches)", percentage, len(matches))
			return ""
		}
	}

	text = jsonTagPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, `\u002F`, "/")
	text = escapedQuotes.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

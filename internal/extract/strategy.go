package extract

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bobska/autocraftcv-sub000/internal/jobposting"
)

type FailureKind string

const (
	//FailureNoMatch means the strategy found no usable data. Not an error,
	//just fallthrough to the next strategy.
	FailureNoMatch FailureKind = "no_match"
	//FailureBlocked means the target actively rejected the request
	FailureBlocked FailureKind = "blocked_by_anti_bot"
	//FailureFetch means the target could not be reached at all
	FailureFetch FailureKind = "fetch_error"
	//FailureTimeout means a strategy exceeded its time bound
	FailureTimeout FailureKind = "timeout"
	//FailureValidation means output existed but failed the acceptance predicate
	FailureValidation FailureKind = "validation_failed"
)

// Outcome is what one strategy attempt produced: either a populated partial
// result or a typed failure. Strategies never raise across the orchestrator
// boundary.
type Outcome struct {
	Result  *jobposting.ExtractionResult
	Failure *Failure
}

type Failure struct {
	Kind   FailureKind
	Reason string
}

func (o Outcome) OK() bool {
	return o.Result != nil
}

func Extracted(result jobposting.ExtractionResult) Outcome {
	return Outcome{Result: &result}
}

func Failed(kind FailureKind, reason string) Outcome {
	return Outcome{Failure: &Failure{Kind: kind, Reason: reason}}
}

// Strategy is one extraction approach run against an already-fetched page.
// Implementations must be side-effect free on the document and cheap to
// skip: the orchestrator stops at the first accepted outcome.
type Strategy interface {
	//Name is the method label recorded on results (structured_data, ...)
	Name() string

	//Extract pulls whatever fields this strategy can find. A result with
	//both title and company empty must come back as FailureNoMatch.
	Extract(doc *goquery.Document, pageURL string) Outcome
}

// Fetcher retrieves HTML for a URL. detectedBlock reports that the target
// served an anti-bot wall instead of content; extractors never see such
// pages.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, detectedBlock bool, err error)
}

package extract

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bobska/autocraftcv-sub000/internal/config"
	"github.com/Bobska/autocraftcv-sub000/internal/jobposting"
	"github.com/Bobska/autocraftcv-sub000/internal/progress"
)

// Method label for the terminal hand-off-to-human outcome
const MethodManualRequired = "manual_required"

// Reasons attached to manual_required results. The caller routes the user
// to different manual-entry UIs based on these.
const (
	ReasonAntiBot          = "anti_bot_detected"
	ReasonFetchError       = "fetch_error"
	ReasonExtractionFailed = "extraction_failed"
)

// Orchestrator runs extraction strategies in priority order per target and
// decides success, retry-with-next-strategy, or hand-off to manual entry.
type Orchestrator struct {
	cfg        *config.Config
	plain      Fetcher
	stealth    Fetcher
	strategies []Strategy
	progress   progress.Reporter
}

// New wires an orchestrator. stealth may be nil when no browser is
// available; protected domains then fall through to the plain client.
func New(cfg *config.Config, plain, stealth Fetcher, reporter progress.Reporter, strategies ...Strategy) *Orchestrator {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	return &Orchestrator{
		cfg:        cfg,
		plain:      plain,
		stealth:    stealth,
		strategies: strategies,
		progress:   reporter,
	}
}

// Extract runs the full pipeline for one request: classify, fetch, run
// strategies in priority order, sanitize the first accepted result. A run
// that cannot produce an acceptable result returns an honest
// manual_required record, never a fabricated guess. The returned error is
// non-nil only for caller-side problems (cancelled context).
func (o *Orchestrator) Extract(ctx context.Context, req jobposting.ExtractionRequest) (jobposting.ExtractionResult, error) {
	started := time.Now()
	log.Printf("🚀 Starting extraction for %s", req.URL)
	o.progress.Report(req.TaskID, 5, "classifying")

	if !validURL(req.URL) {
		log.Printf("❌ Invalid URL: %s", req.URL)
		return o.manualRequired(req.URL, ReasonFetchError,
			fmt.Sprintf("The URL %q is not a valid http(s) address.", req.URL)), nil
	}

	useStealth := o.NeedsStealth(req)
	log.Printf("🔎 Domain classification: stealth=%v", useStealth)
	o.progress.Report(req.TaskID, 15, "fetching")

	html, blocked, err := o.fetch(ctx, req.URL, useStealth)
	if err != nil {
		if ctx.Err() != nil {
			return jobposting.ExtractionResult{}, ctx.Err()
		}
		log.Printf("❌ Fetch failed for %s: %v", req.URL, err)
		return o.manualRequired(req.URL, ReasonFetchError,
			fmt.Sprintf("The page could not be fetched: %v. Please paste the job content manually.", err)), nil
	}
	if blocked {
		//extractors never see blocked pages
		log.Printf("🛡️ Anti-bot wall detected on %s", req.URL)
		return o.manualRequired(req.URL, ReasonAntiBot,
			"The site blocked automated access. Please paste the job content manually."), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Printf("❌ Failed to parse HTML from %s: %v", req.URL, err)
		return o.manualRequired(req.URL, ReasonExtractionFailed,
			fmt.Sprintf("The fetched page could not be parsed: %v.", err)), nil
	}

	o.progress.Report(req.TaskID, 40, "extracting")

	for _, strategy := range o.strategies {
		if ctx.Err() != nil {
			return jobposting.ExtractionResult{}, ctx.Err()
		}

		attempt := time.Now()
		outcome := o.runStrategy(strategy, doc, req.URL)
		elapsed := time.Since(attempt)

		if !outcome.OK() {
			log.Printf("  ⚠️ Strategy %s: %s (%s) in %v", strategy.Name(), outcome.Failure.Kind, outcome.Failure.Reason, elapsed)
			continue
		}

		if !Accepted(*outcome.Result, o.cfg) {
			log.Printf("  ⚠️ Strategy %s: validation_failed (title=%q company=%q) in %v",
				strategy.Name(), outcome.Result.Title, outcome.Result.Company, elapsed)
			continue
		}

		//first accepted outcome wins - priority order encodes a
		//cost/confidence trade-off, lower strategies are not consulted
		log.Printf("  ✅ Strategy %s accepted (title=%q) in %v", strategy.Name(), outcome.Result.Title, elapsed)
		o.progress.Report(req.TaskID, 80, "sanitizing")

		result := *outcome.Result
		result.ExtractionMethod = strategy.Name()
		result = jobposting.Sanitize(result, req.URL)

		o.progress.Report(req.TaskID, 100, "complete")
		log.Printf("🏁 Extraction finished via %s in %v", strategy.Name(), time.Since(started))
		return result, nil
	}

	log.Printf("❌ All strategies exhausted for %s", req.URL)
	return o.manualRequired(req.URL, ReasonExtractionFailed,
		"No extraction strategy produced acceptable data. The page layout may have changed. Please paste the job content manually."), nil
}

// NeedsStealth classifies the target domain: known protected sites go
// straight to the stealth browser, everything else gets the plain client.
func (o *Orchestrator) NeedsStealth(req jobposting.ExtractionRequest) bool {
	target := strings.ToLower(req.URL)
	if req.SiteHint != "" {
		target = strings.ToLower(req.SiteHint)
	}
	for _, site := range o.cfg.ProtectedSites {
		if strings.Contains(target, site) {
			return true
		}
	}
	return false
}

// fetch retrieves the page once, with bounded retries and backoff on
// transport failure. A detected block is returned immediately: retrying an
// anti-bot wall identically wastes time and raises suspicion.
func (o *Orchestrator) fetch(ctx context.Context, pageURL string, useStealth bool) (string, bool, error) {
	fetcher := o.plain
	label := "http"
	if useStealth && o.stealth != nil {
		fetcher = o.stealth
		label = "stealth"
	}

	var lastErr error
	for attempt := 0; attempt <= o.cfg.FetchRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 2 * time.Second
			log.Printf("  ⏳ Fetch retry %d/%d after %v", attempt, o.cfg.FetchRetries, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", false, ctx.Err()
			}
		}

		started := time.Now()
		html, blocked, err := fetcher.Fetch(ctx, pageURL)
		if err != nil {
			lastErr = err
			log.Printf("  ⚠️ %s fetch attempt %d failed: %v", label, attempt+1, err)
			if ctx.Err() != nil {
				return "", false, ctx.Err()
			}
			continue
		}
		log.Printf("  📥 %s fetch succeeded (%d bytes) in %v", label, len(html), time.Since(started))
		return html, blocked, nil
	}
	return "", false, fmt.Errorf("fetch failed after %d attempts: %w", o.cfg.FetchRetries+1, lastErr)
}

// runStrategy shields the pipeline from a strategy that panics (a bad
// selector table must not abort the whole run).
func (o *Orchestrator) runStrategy(strategy Strategy, doc *goquery.Document, pageURL string) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("  🚨 Strategy %s panicked: %v", strategy.Name(), r)
			outcome = Failed(FailureNoMatch, fmt.Sprintf("strategy panicked: %v", r))
		}
	}()
	return strategy.Extract(doc, pageURL)
}

// manualRequired builds the honest terminal outcome: placeholders only, a
// stated reason, and needs_review raised by the sanitizer.
func (o *Orchestrator) manualRequired(pageURL, reason, detail string) jobposting.ExtractionResult {
	result := jobposting.ExtractionResult{
		Description:      detail,
		ExtractionMethod: MethodManualRequired,
		FailureReason:    reason,
	}
	return jobposting.Sanitize(result, pageURL)
}

func validURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bobska/autocraftcv-sub000/internal/config"
	"github.com/Bobska/autocraftcv-sub000/internal/jobposting"
	"github.com/Bobska/autocraftcv-sub000/internal/progress"
)

const fakePage = `<html><head><title>posting</title></head><body><p>job content</p></body></html>`

type fakeFetcher struct {
	html    string
	blocked bool
	err     error
	calls   int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (string, bool, error) {
	f.calls++
	return f.html, f.blocked, f.err
}

type fakeStrategy struct {
	name    string
	outcome Outcome
	calls   int
	panics  bool
}

func (s *fakeStrategy) Name() string { return s.name }

func (s *fakeStrategy) Extract(_ *goquery.Document, _ string) Outcome {
	s.calls++
	if s.panics {
		panic("selector table gone bad")
	}
	return s.outcome
}

func acceptableResult(title string) Outcome {
	return Extracted(jobposting.ExtractionResult{
		Title:   title,
		Company: "Acme Corp",
	})
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.FetchRetries = 0
	return cfg
}

func TestExtract_FirstAcceptedWins(t *testing.T) {
	plain := &fakeFetcher{html: fakePage}
	first := &fakeStrategy{name: "structured_data", outcome: acceptableResult("Backend Engineer")}
	second := &fakeStrategy{name: "css_selectors", outcome: acceptableResult("Wrong Title")}

	o := New(testConfig(), plain, nil, nil, first, second)
	result, err := o.Extract(context.Background(), jobposting.ExtractionRequest{URL: "https://example.com/jobs/1"})

	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", result.Title)
	assert.Equal(t, "structured_data", result.ExtractionMethod)
	assert.Equal(t, "example.com", result.SiteDomain)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "later strategies must not be consulted after an accepted outcome")
}

func TestExtract_FallsThroughToNextStrategy(t *testing.T) {
	plain := &fakeFetcher{html: fakePage}
	first := &fakeStrategy{name: "structured_data", outcome: Failed(FailureNoMatch, "no json-ld blocks")}
	second := &fakeStrategy{name: "css_selectors", outcome: acceptableResult("Data Engineer")}

	o := New(testConfig(), plain, nil, nil, first, second)
	result, err := o.Extract(context.Background(), jobposting.ExtractionRequest{URL: "https://example.com/jobs/2"})

	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", result.Title)
	assert.Equal(t, "css_selectors", result.ExtractionMethod)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestExtract_RejectedResultFallsThrough(t *testing.T) {
	plain := &fakeFetcher{html: fakePage}
	//title too short to pass acceptance, company too short to compensate
	weak := &fakeStrategy{name: "structured_data", outcome: Extracted(jobposting.ExtractionResult{Title: "Job", Company: "X"})}
	strong := &fakeStrategy{name: "content_mining", outcome: acceptableResult("Platform Engineer")}

	o := New(testConfig(), plain, nil, nil, weak, strong)
	result, err := o.Extract(context.Background(), jobposting.ExtractionRequest{URL: "https://example.com/jobs/3"})

	require.NoError(t, err)
	assert.Equal(t, "Platform Engineer", result.Title)
	assert.Equal(t, "content_mining", result.ExtractionMethod)
}

func TestExtract_AllStrategiesExhausted(t *testing.T) {
	plain := &fakeFetcher{html: fakePage}
	first := &fakeStrategy{name: "structured_data", outcome: Failed(FailureNoMatch, "nothing")}
	second := &fakeStrategy{name: "css_selectors", outcome: Failed(FailureNoMatch, "nothing")}

	o := New(testConfig(), plain, nil, nil, first, second)
	result, err := o.Extract(context.Background(), jobposting.ExtractionRequest{URL: "https://example.com/jobs/4"})

	require.NoError(t, err)
	assert.Equal(t, MethodManualRequired, result.ExtractionMethod)
	assert.Equal(t, ReasonExtractionFailed, result.FailureReason)
	assert.True(t, result.NeedsReview)
	//placeholders, never empty columns
	assert.Equal(t, jobposting.PlaceholderTitle, result.Title)
	assert.Equal(t, jobposting.PlaceholderCompany, result.Company)
}

func TestExtract_AntiBotShortCircuit(t *testing.T) {
	plain := &fakeFetcher{html: "", blocked: true}
	strategy := &fakeStrategy{name: "structured_data", outcome: acceptableResult("Should Not Run")}

	o := New(testConfig(), plain, nil, nil, strategy)
	result, err := o.Extract(context.Background(), jobposting.ExtractionRequest{URL: "https://example.com/jobs/5"})

	require.NoError(t, err)
	assert.Equal(t, MethodManualRequired, result.ExtractionMethod)
	assert.Equal(t, ReasonAntiBot, result.FailureReason)
	assert.Equal(t, 0, strategy.calls, "no extractor may run against a blocked page")
}

func TestExtract_FetchErrorBecomesManualRequired(t *testing.T) {
	plain := &fakeFetcher{err: errors.New("connection refused")}
	strategy := &fakeStrategy{name: "structured_data", outcome: acceptableResult("Should Not Run")}

	o := New(testConfig(), plain, nil, nil, strategy)
	result, err := o.Extract(context.Background(), jobposting.ExtractionRequest{URL: "https://example.com/jobs/6"})

	require.NoError(t, err)
	assert.Equal(t, MethodManualRequired, result.ExtractionMethod)
	assert.Equal(t, ReasonFetchError, result.FailureReason)
	assert.Equal(t, 0, strategy.calls)
}

func TestExtract_FetchRetries(t *testing.T) {
	plain := &fakeFetcher{err: errors.New("reset by peer")}
	cfg := testConfig()
	cfg.FetchRetries = 1

	o := New(cfg, plain, nil, nil)
	result, err := o.Extract(context.Background(), jobposting.ExtractionRequest{URL: "https://example.com/jobs/7"})

	require.NoError(t, err)
	assert.Equal(t, 2, plain.calls)
	assert.Equal(t, ReasonFetchError, result.FailureReason)
}

func TestExtract_InvalidURL(t *testing.T) {
	plain := &fakeFetcher{html: fakePage}

	o := New(testConfig(), plain, nil, nil)
	result, err := o.Extract(context.Background(), jobposting.ExtractionRequest{URL: "not a url"})

	require.NoError(t, err)
	assert.Equal(t, MethodManualRequired, result.ExtractionMethod)
	assert.Equal(t, ReasonFetchError, result.FailureReason)
	assert.Equal(t, 0, plain.calls)
}

func TestExtract_PanickingStrategyRecovered(t *testing.T) {
	plain := &fakeFetcher{html: fakePage}
	bad := &fakeStrategy{name: "css_selectors", panics: true}
	good := &fakeStrategy{name: "content_mining", outcome: acceptableResult("Site Reliability Engineer")}

	o := New(testConfig(), plain, nil, nil, bad, good)
	result, err := o.Extract(context.Background(), jobposting.ExtractionRequest{URL: "https://example.com/jobs/8"})

	require.NoError(t, err)
	assert.Equal(t, "Site Reliability Engineer", result.Title)
	assert.Equal(t, 1, bad.calls)
}

func TestExtract_ProtectedDomainUsesStealth(t *testing.T) {
	plain := &fakeFetcher{html: fakePage}
	stealth := &fakeFetcher{html: fakePage}
	strategy := &fakeStrategy{name: "structured_data", outcome: acceptableResult("Account Manager")}

	o := New(testConfig(), plain, stealth, nil, strategy)
	_, err := o.Extract(context.Background(), jobposting.ExtractionRequest{URL: "https://www.linkedin.com/jobs/view/9"})

	require.NoError(t, err)
	assert.Equal(t, 0, plain.calls)
	assert.Equal(t, 1, stealth.calls)
}

func TestExtract_UnprotectedDomainUsesPlainClient(t *testing.T) {
	plain := &fakeFetcher{html: fakePage}
	stealth := &fakeFetcher{html: fakePage}
	strategy := &fakeStrategy{name: "structured_data", outcome: acceptableResult("Account Manager")}

	o := New(testConfig(), plain, stealth, nil, strategy)
	_, err := o.Extract(context.Background(), jobposting.ExtractionRequest{URL: "https://smallboard.example.com/jobs/10"})

	require.NoError(t, err)
	assert.Equal(t, 1, plain.calls)
	assert.Equal(t, 0, stealth.calls)
}

func TestExtract_SiteHintOverridesURLClassification(t *testing.T) {
	o := New(testConfig(), nil, nil, nil)

	assert.True(t, o.NeedsStealth(jobposting.ExtractionRequest{
		URL:      "https://redirect.example.com/out?target=1",
		SiteHint: "seek.com.au",
	}))
	assert.False(t, o.NeedsStealth(jobposting.ExtractionRequest{
		URL: "https://smallboard.example.com/jobs/1",
	}))
}

func TestExtract_CancelledContext(t *testing.T) {
	plain := &fakeFetcher{err: errors.New("dial interrupted")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := New(testConfig(), plain, nil, nil)
	_, err := o.Extract(ctx, jobposting.ExtractionRequest{URL: "https://example.com/jobs/11"})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtract_ReportsProgress(t *testing.T) {
	plain := &fakeFetcher{html: fakePage}
	strategy := &fakeStrategy{name: "structured_data", outcome: acceptableResult("QA Engineer")}
	mem := progress.NewMemory()

	o := New(testConfig(), plain, nil, mem, strategy)
	_, err := o.Extract(context.Background(), jobposting.ExtractionRequest{URL: "https://example.com/jobs/12", TaskID: "task-1"})

	require.NoError(t, err)
	update, ok := mem.Get("task-1")
	require.True(t, ok)
	assert.Equal(t, 100, update.Percent)
	assert.Equal(t, "complete", update.Stage)
}

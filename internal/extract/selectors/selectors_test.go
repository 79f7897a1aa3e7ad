package selectors

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtract_GenericSelectors(t *testing.T) {
	html := `<html><body>
 <h1 class="job-title">Graduate Analyst</h1>
 <div class="job-description">` + strings.Repeat("Analyse quarterly market data for clients. ", 4) + `</div>
</body></html>`

	outcome := New(nil).Extract(docFrom(t, html), "https://jobs.smallco.example/roles/1")

	require.True(t, outcome.OK())
	assert.Equal(t, "Graduate Analyst", outcome.Result.Title)
	assert.Empty(t, outcome.Result.Company, "missing company stays empty, no placeholder here")
	assert.Greater(t, len(outcome.Result.Description), 100)
}

func TestExtract_SiteSpecificTable(t *testing.T) {
	html := `<html><body>
 <h1 data-automation="job-detail-title">Platform Engineer</h1>
 <span data-automation="advertiser-name">Acme Corp</span>
 <div data-automation="jobAdDetails">Run the platform.</div>
</body></html>`

	outcome := New(nil).Extract(docFrom(t, html), "https://www.seek.com.au/job/77")

	require.True(t, outcome.OK())
	assert.Equal(t, "Platform Engineer", outcome.Result.Title)
	assert.Equal(t, "Acme Corp", outcome.Result.Company)
}

func TestExtract_ArtifactOnlyMatchFallsThrough(t *testing.T) {
	// The first matching selector yields pure UI chrome; the next one in
	// the priority list must be tried.
	html := `<html><body>
 <h1 class="job-title">Apply Now</h1>
 <h1>Senior QA Engineer</h1>
 <span class="company-name">Acme Corp</span>
</body></html>`

	outcome := New(nil).Extract(docFrom(t, html), "https://jobs.smallco.example/roles/2")

	require.True(t, outcome.OK())
	assert.Equal(t, "Senior QA Engineer", outcome.Result.Title)
}

func TestExtract_ArtifactStrippedFromRealText(t *testing.T) {
	html := `<html><body>
 <h1 class="job-title">Backend Engineer Apply Now</h1>
 <div class="company">Acme Corp</div>
</body></html>`

	outcome := New(nil).Extract(docFrom(t, html), "https://jobs.smallco.example/roles/3")

	require.True(t, outcome.OK())
	assert.Equal(t, "Backend Engineer", outcome.Result.Title)
}

func TestExtract_NoMatch(t *testing.T) {
	html := `<html><body><p>nothing here</p></body></html>`

	outcome := New(nil).Extract(docFrom(t, html), "https://example.com")

	require.False(t, outcome.OK())
	assert.Equal(t, "no_match", string(outcome.Failure.Kind))
}

func TestLoad_YAMLTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "selectors.yaml")
	yaml := `
sites:
  example-board.com:
    title: [".posting-title"]
    company: [".posting-org"]
generic:
  title: ["h1"]
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	tables, err := Load(path)
	require.NoError(t, err)

	site := tables.For("jobs.example-board.com")
	assert.Equal(t, []string{".posting-title"}, site.Title)

	generic := tables.For("unknown.example")
	assert.Equal(t, []string{"h1"}, generic.Title)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	tables, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, tables.For("www.linkedin.com").Title)
	assert.NotEmpty(t, tables.Generic.Title)
}

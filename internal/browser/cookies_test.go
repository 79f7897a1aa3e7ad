package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCookies(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cookies-linkedin.json")
	payload := `[
 {"name":"li_at","value":"secret","domain":".linkedin.com","path":"/","expires":1767225600,"httpOnly":true,"secure":true,"sameSite":"None"},
 {"name":"lang","value":"en","domain":".linkedin.com","path":"/","expires":0,"httpOnly":false,"secure":false,"sameSite":"Lax"}
]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	cookies, err := LoadCookies(path)

	require.NoError(t, err)
	require.Len(t, cookies, 2)

	first := cookies[0]
	assert.Equal(t, "li_at", first.Name)
	assert.Equal(t, "secret", first.Value)
	assert.Equal(t, ".linkedin.com", *first.Domain)
	require.NotNil(t, first.Expires)
	assert.Equal(t, float64(1767225600), *first.Expires)
	require.NotNil(t, first.HttpOnly)
	assert.True(t, *first.HttpOnly)
	assert.Equal(t, playwright.SameSiteAttributeNone, first.SameSite)

	second := cookies[1]
	assert.Nil(t, second.Expires)
	assert.Nil(t, second.HttpOnly)
	assert.Equal(t, playwright.SameSiteAttributeLax, second.SameSite)
}

func TestLoadCookies_MissingFile(t *testing.T) {
	_, err := LoadCookies(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadCookies_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies-bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadCookies(path)
	assert.Error(t, err)
}

func TestSiteLabel(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.linkedin.com/jobs/view/123", "linkedin"},
		{"https://seek.com.au/job/456", "seek"},
		{"https://jobs.example.io/789", "jobs"},
		{"not a url", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, siteLabel(tt.url), tt.url)
	}
}

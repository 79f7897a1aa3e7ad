package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bobska/autocraftcv-sub000/internal/config"
)

func jobPage() string {
	return `<html><head><title>Backend Engineer - Acme</title></head><body><article>` +
		strings.Repeat("<p>Build and run backend services for the platform team.</p>", 40) +
		`</article></body></html>`
}

func testClient(t *testing.T) *Client {
	t.Helper()
	cfg := config.Default()
	return NewClient(cfg)
}

func TestFetch_Success(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(jobPage()))
	}))
	defer srv.Close()

	html, blocked, err := testClient(t).Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.False(t, blocked)
	assert.Contains(t, html, "Backend Engineer")
	assert.NotEmpty(t, gotUA)
}

func TestFetch_ForbiddenReportsBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, blocked, err := testClient(t).Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestFetch_InterstitialReportsBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		page := `<html><head><title>Just a moment...</title></head><body>` +
			`<p>Checking your browser before accessing the site.</p>` +
			strings.Repeat("<p>please wait while we confirm the request came from you.</p>", 30) +
			`</body></html>`
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	_, blocked, err := testClient(t).Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestFetch_ShortPageReportsBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>hi</body></html>"))
	}))
	defer srv.Close()

	_, blocked, err := testClient(t).Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestFetch_RedirectToErrorPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/job", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/error/expired", http.StatusFound)
	})
	mux.HandleFunc("/error/expired", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(jobPage()))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, _, err := testClient(t).Fetch(context.Background(), srv.URL+"/job")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error page")
}

func TestFetch_NonHTMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	_, _, err := testClient(t).Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "content type")
}

func TestFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, _, err := testClient(t).Fetch(context.Background(), srv.URL)

	require.Error(t, err)
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(jobPage()))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := testClient(t).Fetch(ctx, srv.URL)

	require.Error(t, err)
}

func TestDetectBlock(t *testing.T) {
	realPage := jobPage()

	tests := []struct {
		name     string
		html     string
		title    string
		finalURL string
		blocked  bool
	}{
		{"clean page", realPage, "Backend Engineer - Acme", "https://example.com/job/1", false},
		{"cloudflare body", strings.Replace(realPage, "platform team", "cloudflare", 1), "x", "https://example.com/job/1", true},
		{"captcha title", realPage, "Captcha required", "https://example.com/job/1", true},
		{"challenge redirect", realPage, "ok", "https://example.com/cdn-cgi/challenge", true},
		{"tiny body", "<html><body>nope</body></html>", "ok", "https://example.com/job/1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.blocked, DetectBlock(tt.html, tt.title, tt.finalURL))
		})
	}
}

// Package fetch is the plain HTTP retrieval path for unprotected job
// boards. Protected domains never come through here.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bobska/autocraftcv-sub000/internal/config"
)

// maxBodyBytes caps how much of a response we read. Job pages are far
// smaller, anything bigger is a download link or a broken server.
const maxBodyBytes = 5 << 20

// errorPathFragments flag a redirect onto an error page
var errorPathFragments = []string{"error", "404", "not-found", "blocked"}

type Client struct {
	http       *http.Client
	userAgents []string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		http: &http.Client{
			Timeout: time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		},
		userAgents: cfg.UserAgents,
	}
}

// Fetch retrieves one page. It follows redirects but treats a landing on
// an error path as a failed fetch, and runs block detection so callers
// never hand an interstitial to the extractors.
func (c *Client) Fetch(ctx context.Context, pageURL string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", false, fmt.Errorf("build request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	finalURL := resp.Request.URL.String()
	if finalURL != pageURL && redirectedToErrorPage(finalURL) {
		return "", false, fmt.Errorf("redirected to error page %s", finalURL)
	}

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		//these two read as anti-bot, not transport failure
		log.Printf("🛡️ HTTP %d from %s", resp.StatusCode, pageURL)
		return "", true, nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("get %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if contentType != "" && !strings.Contains(contentType, "text/html") {
		return "", false, fmt.Errorf("get %s: unexpected content type %q", pageURL, contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", false, fmt.Errorf("read body of %s: %w", pageURL, err)
	}

	html := string(body)
	if DetectBlock(html, pageTitle(html), finalURL) {
		return "", true, nil
	}
	return html, false, nil
}

func (c *Client) userAgent() string {
	if len(c.userAgents) == 0 {
		return "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	}
	return c.userAgents[rand.Intn(len(c.userAgents))]
}

func redirectedToErrorPage(finalURL string) bool {
	lowered := strings.ToLower(finalURL)
	for _, fragment := range errorPathFragments {
		if strings.Contains(lowered, fragment) {
			return true
		}
	}
	return false
}

func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return doc.Find("title").First().Text()
}

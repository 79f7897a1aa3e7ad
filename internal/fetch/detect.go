package fetch

import "strings"

// blockIndicators are phrases that only ever show up on anti-bot
// interstitials, never in real job posting copy.
var blockIndicators = []string{
	"cloudflare",
	"captcha",
	"verify you are human",
	"prove you're not a robot",
	"security check",
	"access denied",
	"robot verification",
	"checking your browser",
	"ddos protection",
	"rate limited",
	"too many requests",
	"suspicious activity",
}

// blockPathFragments flag a redirect onto a protection page
var blockPathFragments = []string{"challenge", "captcha", "blocked", "denied"}

// DetectBlock reports whether a fetched page is an anti-bot wall rather
// than content. finalURL is the URL after redirects. The checks are
// deliberately loose: a false positive costs one manual entry, a false
// negative feeds garbage into extraction.
func DetectBlock(html, title, finalURL string) bool {
	body := strings.ToLower(html)
	heading := strings.ToLower(title)

	for _, indicator := range blockIndicators {
		if strings.Contains(body, indicator) || strings.Contains(heading, indicator) {
			return true
		}
	}
	for _, fragment := range blockPathFragments {
		if strings.Contains(strings.ToLower(finalURL), fragment) {
			return true
		}
	}
	//an interstitial is tiny, a real posting never is
	return len(html) < 1000
}

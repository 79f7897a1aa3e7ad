package browser

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/Bobska/autocraftcv-sub000/internal/config"
	"github.com/Bobska/autocraftcv-sub000/internal/fetch"
	"github.com/Bobska/autocraftcv-sub000/utils"
)

// StealthFetcher retrieves pages through the hardened browser. Each fetch
// gets a fresh context so identities never bleed between targets.
type StealthFetcher struct {
	manager    *PlaywrightManager
	cfg        *config.Config
	screenshot *utils.ScreenShotDebugger
}

func NewStealthFetcher(manager *PlaywrightManager, cfg *config.Config) *StealthFetcher {
	return &StealthFetcher{
		manager:    manager,
		cfg:        cfg,
		screenshot: utils.NewScreenShotDebugger(),
	}
}

func (f *StealthFetcher) Fetch(ctx context.Context, pageURL string) (string, bool, error) {
	browserCtx, err := f.manager.NewContext(f.cookiesFor(pageURL))
	if err != nil {
		return "", false, err
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		return "", false, fmt.Errorf("create page: %w", err)
	}
	//bound locator queries (the captcha-widget probe) so a hung DOM
	//cannot stall the whole fetch
	page.SetDefaultTimeout(float64(f.cfg.SelectorTimeoutMillis))

	if ctx.Err() != nil {
		return "", false, ctx.Err()
	}

	timeout := float64(f.cfg.PageLoadTimeoutSeconds * 1000)
	if _, err := page.Goto(pageURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(timeout),
	}); err != nil {
		return "", false, fmt.Errorf("navigate to %s: %w", pageURL, err)
	}

	//behave like a reader before touching the DOM; the bottom scroll also
	//triggers lazy-loaded description blocks
	utils.RandomDelay(1000, 2000)
	utils.MouseJiggle(page)
	utils.SmoothScroll(page)
	utils.SimulateReading(page)
	utils.RandomDelay(500, 1000)

	if ctx.Err() != nil {
		return "", false, ctx.Err()
	}

	title, _ := page.Title()
	html, err := page.Content()
	if err != nil {
		return "", false, fmt.Errorf("read page content: %w", err)
	}

	if f.blocked(page, title, html) {
		if f.cfg.ScreenshotOnBlock {
			f.screenshot.CaptureAndLog(page, siteLabel(pageURL),
				fmt.Sprintf("🚨 Blocked by anti-bot protection on %s", pageURL))
		}
		return "", true, nil
	}

	return html, false, nil
}

func (f *StealthFetcher) blocked(page playwright.Page, title, html string) bool {
	if fetch.DetectBlock(html, title, page.URL()) {
		return true
	}
	//interstitials render captcha widgets that body text checks can miss
	count, err := page.Locator(".captcha, .recaptcha, [data-captcha], iframe[src*='captcha']").Count()
	return err == nil && count > 0
}

// cookiesFor loads the per-site cookie export if one exists. Missing or
// broken cookie files mean an anonymous session, which is fine for most
// boards.
func (f *StealthFetcher) cookiesFor(pageURL string) []playwright.OptionalCookie {
	site := siteLabel(pageURL)
	if site == "" || f.cfg.CookiesPath == "" {
		return nil
	}

	path := filepath.Join(f.cfg.CookiesPath, "cookies-"+site+".json")
	cookies, err := LoadCookies(path)
	if err != nil {
		return nil
	}
	log.Printf("🍪 Loaded %s cookies (%d)", site, len(cookies))
	return cookies
}

// siteLabel turns "https://www.linkedin.com/jobs/1" into "linkedin"
func siteLabel(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if idx := strings.Index(host, "."); idx > 0 {
		return host[:idx]
	}
	return host
}

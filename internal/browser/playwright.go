// Package browser runs the stealth retrieval path: a hardened headless
// Chromium for domains that block plain HTTP clients.
package browser

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/playwright-community/playwright-go"

	"github.com/Bobska/autocraftcv-sub000/internal/config"
)

// launchArgs strip the obvious automation tells before any page loads
var launchArgs = []string{
	"--no-first-run",
	"--no-service-autorun",
	"--no-default-browser-check",
	"--disable-blink-features=AutomationControlled",
	"--disable-features=TranslateUI",
	"--disable-ipc-flooding-protection",
}

// fingerprintScript papers over the navigator properties headless Chromium
// leaks. Injected into every context before page scripts run.
const fingerprintScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
Object.defineProperty(navigator, 'permissions', {
	get: () => ({ query: () => Promise.resolve({ state: 'granted' }) }),
});
`

type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     *config.Config
}

func NewPlaywright(ctx context.Context, cfg *config.Config) (*PlaywrightManager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	chromium, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		Args:     launchArgs,
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	return &PlaywrightManager{pw: pw, browser: chromium, cfg: cfg}, nil
}

// NewContext builds a browser context with a randomized identity: rotated
// user agent, jittered viewport, and the fingerprint overrides. Cookies
// may be nil.
func (pm *PlaywrightManager) NewContext(cookies []playwright.OptionalCookie) (playwright.BrowserContext, error) {
	viewport := &playwright.Size{
		Width:  rand.Intn(400) + 1200,
		Height: rand.Intn(400) + 800,
	}

	browserCtx, err := pm.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(pm.randomUserAgent()),
		Viewport:  viewport,
		Locale:    playwright.String("en-US"),
	})
	if err != nil {
		return nil, fmt.Errorf("create browser context: %w", err)
	}

	if err := browserCtx.AddInitScript(playwright.Script{Content: playwright.String(fingerprintScript)}); err != nil {
		browserCtx.Close()
		return nil, fmt.Errorf("inject fingerprint script: %w", err)
	}

	if len(cookies) > 0 {
		if err := browserCtx.AddCookies(cookies); err != nil {
			//stale cookies degrade to an anonymous session, not a failure
			log.Printf("⚠️ Could not add cookies to context: %v", err)
		}
	}

	return browserCtx, nil
}

func (pm *PlaywrightManager) Close() error {
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			log.Printf("⚠️ Error closing browser: %v", err)
		}
	}
	if pm.pw != nil {
		return pm.pw.Stop()
	}
	return nil
}

func (pm *PlaywrightManager) randomUserAgent() string {
	agents := pm.cfg.UserAgents
	if len(agents) == 0 {
		return "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	}
	return agents[rand.Intn(len(agents))]
}

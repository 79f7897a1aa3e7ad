package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Bobska/autocraftcv-sub000/internal/browser"
	"github.com/Bobska/autocraftcv-sub000/internal/config"
)

func main() {
	url := "https://example.com/"
	if len(os.Args) > 1 {
		url = os.Args[1]
	}

	fmt.Println("🌐 Testing stealth browser fetch...")

	cfg := config.Load()
	ctx := context.Background()

	pm, err := browser.NewPlaywright(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Playwright: %v", err)
	}
	defer pm.Close()

	fmt.Println("✅ Playwright started")

	fetcher := browser.NewStealthFetcher(pm, cfg)

	fmt.Printf("🔍 Fetching %s...\n", url)
	html, blocked, err := fetcher.Fetch(ctx, url)
	if err != nil {
		log.Fatalf("Fetch failed: %v", err)
	}
	if blocked {
		fmt.Println("🛡️ Anti-bot wall detected")
		return
	}

	fmt.Printf("✅ Fetched %d bytes\n", len(html))
	fmt.Println("✨ Test complete!")
}

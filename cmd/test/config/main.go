package main

import (
	"fmt"

	"github.com/Bobska/autocraftcv-sub000/internal/config"
)

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg := config.Load()
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Title min length: %d\n", cfg.TitleMinLength)
	fmt.Printf("   Fetch retries: %d (timeout %ds)\n", cfg.FetchRetries, cfg.FetchTimeoutSeconds)
	fmt.Printf("   Protected sites: %v\n", cfg.ProtectedSites)
	fmt.Printf("   Selectors path: %s\n", cfg.SelectorsPath)
	fmt.Printf("   Cookies Path: %s\n", cfg.CookiesPath)
	fmt.Printf("   Headless: %t (page load timeout %ds)\n", cfg.Headless, cfg.PageLoadTimeoutSeconds)
	fmt.Printf("   Groq model: %s (key set: %t)\n", cfg.GroqModel, cfg.GroqAPIKey != "")
	fmt.Printf("   Database configured: %t, Redis configured: %t\n", cfg.DatabaseURL != "", cfg.RedisURL != "")
}

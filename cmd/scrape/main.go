package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Bobska/autocraftcv-sub000/internal/ai"
	"github.com/Bobska/autocraftcv-sub000/internal/browser"
	"github.com/Bobska/autocraftcv-sub000/internal/config"
	"github.com/Bobska/autocraftcv-sub000/internal/database"
	"github.com/Bobska/autocraftcv-sub000/internal/extract"
	"github.com/Bobska/autocraftcv-sub000/internal/extract/mining"
	"github.com/Bobska/autocraftcv-sub000/internal/extract/selectors"
	"github.com/Bobska/autocraftcv-sub000/internal/extract/structured"
	"github.com/Bobska/autocraftcv-sub000/internal/fetch"
	"github.com/Bobska/autocraftcv-sub000/internal/jobposting"
	"github.com/Bobska/autocraftcv-sub000/internal/manual"
	"github.com/Bobska/autocraftcv-sub000/internal/models"
	"github.com/Bobska/autocraftcv-sub000/internal/progress"
	"github.com/Bobska/autocraftcv-sub000/internal/reporter"
)

func main() {
	pasteFile := flag.String("paste", "", "path to a file with pasted job text instead of fetching a URL")
	save := flag.Bool("save", false, "persist the result to the configured database")
	flag.Parse()

	cfg := config.Load()
	log.Printf("🔧 Config loaded. Protected sites: %v", cfg.ProtectedSites)

	//one extraction run, stealth browser included, gets 10 minutes
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var aiClient ai.Client
	if cfg.GroqAPIKey != "" {
		aiClient = ai.NewGrokClient(cfg.GroqAPIKey, cfg.GroqModel)
	}

	var result jobposting.ExtractionResult
	jobURL := flag.Arg(0)

	if *pasteFile != "" {
		content, err := os.ReadFile(*pasteFile)
		if err != nil {
			log.Fatalf("❌ Could not read pasted content: %v", err)
		}
		if len(content) < manual.MinContentLength {
			log.Fatalf("❌ Pasted content too short: %d chars (minimum %d)", len(content), manual.MinContentLength)
		}
		result = manual.New(aiClient).ExtractFromPastedContent(ctx, string(content), jobURL)
	} else {
		if jobURL == "" {
			log.Fatal("❌ Usage: scrape [flags] <job-url>")
		}
		result = runPipeline(ctx, cfg, jobURL)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("❌ Could not encode result: %v", err)
	}
	os.Stdout.Write(append(encoded, '\n'))

	if *save {
		persist(ctx, cfg, jobURL, result)
	}

	if cfg.TelegramToken != "" {
		notifier, err := reporter.NewTelegramReporter(cfg)
		if err != nil {
			log.Printf("⚠️ Telegram reporter unavailable: %v", err)
		} else if err := notifier.SendExtraction(jobURL, result); err != nil {
			log.Printf("⚠️ Telegram notify failed: %v", err)
		}
	}
}

func runPipeline(ctx context.Context, cfg *config.Config, jobURL string) jobposting.ExtractionResult {
	tables, err := selectors.Load(cfg.SelectorsPath)
	if err != nil {
		log.Fatalf("❌ Failed to load selector tables: %v", err)
	}

	var stealth extract.Fetcher
	pwManager, err := browser.NewPlaywright(ctx, cfg)
	if err != nil {
		log.Printf("⚠️ Playwright unavailable, protected sites will fall back to plain HTTP: %v", err)
	} else {
		defer pwManager.Close()
		stealth = browser.NewStealthFetcher(pwManager, cfg)
	}

	orchestrator := extract.New(cfg, fetch.NewClient(cfg), stealth, progress.Nop{},
		structured.New(),
		selectors.New(tables),
		mining.New(),
	)

	result, err := orchestrator.Extract(ctx, jobposting.ExtractionRequest{
		URL:    jobURL,
		TaskID: uuid.NewString(),
	})
	if err != nil {
		log.Fatalf("❌ Extraction aborted: %v", err)
	}
	return result
}

func persist(ctx context.Context, cfg *config.Config, jobURL string, result jobposting.ExtractionResult) {
	if cfg.DatabaseURL == "" {
		log.Println("⚠️ -save given but no DATABASE_URL configured, skipping")
		return
	}

	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer repo.Close()

	posting, err := repo.SaveJobPosting(ctx, models.FromExtraction(result, jobURL))
	if err != nil {
		log.Fatalf("❌ Failed to save job posting: %v", err)
	}
	log.Printf("✅ Saved job posting %s (%s at %s)", posting.ID, posting.Title, posting.Company)
}

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Bobska/autocraftcv-sub000/internal/config"
	"github.com/Bobska/autocraftcv-sub000/internal/database"
	"github.com/Bobska/autocraftcv-sub000/internal/jobposting"
	"github.com/Bobska/autocraftcv-sub000/internal/models"
	"github.com/Bobska/autocraftcv-sub000/internal/reporter"
)

// Exercises the persistence and notification collaborators end to end
// with a fabricated extraction result: save posting, walk the session
// through its states, push the Telegram summary.
func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" || cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
		log.Fatal("Missing DATABASE_URL, TELEGRAM_BOT_TOKEN, or TELEGRAM_CHAT_ID")
	}

	ctx := context.Background()
	repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer repo.Close()

	jobURL := fmt.Sprintf("https://example.com/jobs/e2e-%d", time.Now().Unix())
	result := jobposting.Sanitize(jobposting.ExtractionResult{
		Title:       "Senior Backend Engineer (Go/PostgreSQL)",
		Company:     "Example Systems",
		Location:    "Melbourne, VIC",
		Description: "We are looking for a Senior Backend Engineer to build robust extraction pipelines. You will own the fetch and parsing layers end to end and keep the review queue small.",
		Requirements: `- Extensive experience in Go (Golang) and concurrent programming.
- Deep understanding of PostgreSQL and database optimizations.
- Experience with Playwright-driven browser automation.`,
		ExtractionMethod: "structured_data",
	}, jobURL)

	sessionID := uuid.NewString()
	if _, err := repo.CreateScrapeSession(ctx, sessionID, jobURL); err != nil {
		log.Fatalf("Could not create scrape session: %v", err)
	}
	if err := repo.UpdateScrapeSession(ctx, sessionID, models.StatusInProgress, "", ""); err != nil {
		log.Fatalf("Could not advance scrape session: %v", err)
	}

	posting, err := repo.SaveJobPosting(ctx, models.FromExtraction(result, jobURL))
	if err != nil {
		log.Fatalf("Could not save posting: %v", err)
	}
	if err := repo.UpdateScrapeSession(ctx, sessionID, models.SessionStatusFor(result), posting.ID, ""); err != nil {
		log.Fatalf("Could not close scrape session: %v", err)
	}
	log.Printf("✅ DB round-trip complete. Posting ID: %s, Session ID: %s", posting.ID, sessionID)

	session, err := repo.GetScrapeSession(ctx, sessionID)
	if err != nil {
		log.Fatalf("Could not read session back: %v", err)
	}
	log.Printf("📋 Session status: %s", session.Status)

	notifier, err := reporter.NewTelegramReporter(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize telegram reporter: %v", err)
	}
	if err := notifier.SendExtraction(jobURL, result); err != nil {
		log.Fatalf("Failed to send message: %v", err)
	}

	log.Println("✅ Sent extraction summary to Telegram. Check the chat!")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
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

// extractionTimeout bounds one background run end to end, stealth
// browser included
const extractionTimeout = 5 * time.Minute

type server struct {
	cfg          *config.Config
	orchestrator *extract.Orchestrator
	manual       *manual.Extractor
	progress     progress.Store
	repo         *database.Repository
	notifier     *reporter.TelegramReporter
}

func main() {
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Protected sites: %v", cfg.ProtectedSites)

	ctx := context.Background()

	//selector tables, falling back to built-in defaults
	tables, err := selectors.Load(cfg.SelectorsPath)
	if err != nil {
		log.Fatalf("❌ Failed to load selector tables: %v", err)
	}

	//stealth browser is optional: without it protected domains degrade to
	//the plain client and usually come back manual_required
	var stealth extract.Fetcher
	pwManager, err := browser.NewPlaywright(ctx, cfg)
	if err != nil {
		log.Printf("⚠️ Playwright unavailable, protected sites will fall back to plain HTTP: %v", err)
	} else {
		defer pwManager.Close()
		stealth = browser.NewStealthFetcher(pwManager, cfg)
		log.Println("✅ Stealth browser initialized")
	}

	//progress store: Redis when configured, in-process otherwise
	var store progress.Store
	if cfg.RedisURL != "" {
		redisStore, err := progress.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("❌ Failed to connect to Redis: %v", err)
		}
		store = redisStore
		log.Println("✅ Redis progress store connected")
	} else {
		store = progress.NewMemory()
		log.Println("ℹ️ Using in-memory progress store")
	}

	//persistence is optional for local runs
	var repo *database.Repository
	if cfg.DatabaseURL != "" {
		repo, err = database.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Failed to connect to database: %v", err)
		}
		defer repo.Close()
		log.Println("✅ Database connected")
	}

	var notifier *reporter.TelegramReporter
	if cfg.TelegramToken != "" {
		notifier, err = reporter.NewTelegramReporter(cfg)
		if err != nil {
			log.Printf("⚠️ Telegram reporter unavailable: %v", err)
		} else {
			log.Println("🤖 Telegram reporter initialized")
		}
	}

	var aiClient ai.Client
	if cfg.GroqAPIKey != "" {
		aiClient = ai.NewGrokClient(cfg.GroqAPIKey, cfg.GroqModel)
		log.Println("✅ Generative parser enabled")
	}

	orchestrator := extract.New(cfg, fetch.NewClient(cfg), stealth, store,
		structured.New(),
		selectors.New(tables),
		mining.New(),
	)

	s := &server{
		cfg:          cfg,
		orchestrator: orchestrator,
		manual:       manual.New(aiClient),
		progress:     store,
		repo:         repo,
		notifier:     notifier,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := gin.Default()
	r.GET("/", s.health)
	r.POST("/api/scrape", s.startScrape)
	r.GET("/api/scrape/:id", s.scrapeStatus)
	r.GET("/api/scrape/:id/progress", s.scrapeProgress)
	r.POST("/api/manual", s.manualEntry)

	log.Printf("Server listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func (s *server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Job posting extraction API is running!",
		"status":  "healthy",
	})
}

type scrapeRequest struct {
	URL      string `json:"url" binding:"required"`
	SiteHint string `json:"site_hint"`
}

// startScrape kicks off a background extraction and returns the task ID
// the caller polls with.
func (s *server) startScrape(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	taskID := uuid.NewString()
	if s.repo != nil {
		if _, err := s.repo.CreateScrapeSession(c.Request.Context(), taskID, req.URL); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create scrape session"})
			return
		}
	}

	go s.runExtraction(taskID, jobposting.ExtractionRequest{
		URL:      req.URL,
		SiteHint: req.SiteHint,
		TaskID:   taskID,
	})

	c.JSON(http.StatusAccepted, gin.H{"task_id": taskID, "status": models.StatusPending})
}

// runExtraction is the background worker for one URL. Each run owns its
// own fetch session; nothing is shared between concurrent runs.
func (s *server) runExtraction(taskID string, req jobposting.ExtractionRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), extractionTimeout)
	defer cancel()

	if s.repo != nil {
		if err := s.repo.UpdateScrapeSession(ctx, taskID, models.StatusInProgress, "", ""); err != nil {
			log.Printf("⚠️ Could not mark session %s in progress: %v", taskID, err)
		}
	}

	result, err := s.orchestrator.Extract(ctx, req)
	if err != nil {
		log.Printf("❌ Extraction run %s aborted: %v", taskID, err)
		if s.repo != nil {
			_ = s.repo.UpdateScrapeSession(context.Background(), taskID, models.StatusFailed, "", err.Error())
		}
		return
	}

	s.finishRun(ctx, taskID, req.URL, result)
}

// finishRun persists the outcome and notifies. Shared by the URL and
// manual-entry paths.
func (s *server) finishRun(ctx context.Context, taskID, jobURL string, result jobposting.ExtractionResult) {
	status := models.SessionStatusFor(result)
	postingID := ""

	if s.repo != nil {
		posting, err := s.repo.SaveJobPosting(ctx, models.FromExtraction(result, jobURL))
		if err != nil {
			log.Printf("❌ Could not persist posting for %s: %v", jobURL, err)
			_ = s.repo.UpdateScrapeSession(ctx, taskID, models.StatusFailed, "", err.Error())
			return
		}
		postingID = posting.ID
		if err := s.repo.UpdateScrapeSession(ctx, taskID, status, postingID, result.FailureReason); err != nil {
			log.Printf("⚠️ Could not update session %s: %v", taskID, err)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.SendExtraction(jobURL, result); err != nil {
			log.Printf("⚠️ Telegram notify failed: %v", err)
		}
	}
}

// scrapeStatus reports the session state and, once finished, the posting
func (s *server) scrapeStatus(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no database configured, poll progress instead"})
		return
	}

	session, err := s.repo.GetScrapeSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scrape session not found"})
		return
	}

	response := gin.H{"session": session}
	if session.JobPostingID != nil {
		posting, err := s.repo.GetJobPostingByID(c.Request.Context(), *session.JobPostingID)
		if err == nil {
			response["job_posting"] = posting
		}
	}
	c.JSON(http.StatusOK, response)
}

func (s *server) scrapeProgress(c *gin.Context) {
	update, ok, err := s.progress.Fetch(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "progress store unavailable"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown task"})
		return
	}
	c.JSON(http.StatusOK, update)
}

type manualRequest struct {
	Content string `json:"content" binding:"required"`
	URL     string `json:"url"`
}

// manualEntry runs the pasted-content fallback synchronously; mining plus
// an optional generative parse is fast enough to answer inline.
func (s *server) manualEntry(c *gin.Context) {
	var req manualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}
	if len(req.Content) < manual.MinContentLength {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "content too short",
			"min":   manual.MinContentLength,
		})
		return
	}

	taskID := uuid.NewString()
	if s.repo != nil {
		if _, err := s.repo.CreateScrapeSession(c.Request.Context(), taskID, req.URL); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create scrape session"})
			return
		}
	}

	result := s.manual.ExtractFromPastedContent(c.Request.Context(), req.Content, req.URL)
	s.finishRun(c.Request.Context(), taskID, req.URL, result)
	c.JSON(http.StatusOK, gin.H{"task_id": taskID, "result": result})
}

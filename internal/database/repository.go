package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Bobska/autocraftcv-sub000/internal/models"
)

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// IMPORTANT: Supabase connection pooler (PgBouncer in Transaction mode)
	// does not support prepared statements easily. We MUST disable the statement cache.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// ---------------- JOB POSTING OPERATIONS ----------------

// SaveJobPosting inserts a new posting or refreshes an existing one for
// the same URL. Text columns are NOT NULL in the schema; the sanitizer
// upstream guarantees the values here are never empty.
func (r *Repository) SaveJobPosting(ctx context.Context, posting *models.JobPosting) (*models.JobPosting, error) {
	query := `
		INSERT INTO job_postings (url, title, company, location, description, requirements,
			responsibilities, salary_range, employment_type, application_instructions,
			raw_content, site_domain, extraction_method, quality, needs_review)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (url)
		DO UPDATE SET title = EXCLUDED.title, company = EXCLUDED.company,
			location = EXCLUDED.location, description = EXCLUDED.description,
			requirements = EXCLUDED.requirements, responsibilities = EXCLUDED.responsibilities,
			salary_range = EXCLUDED.salary_range, employment_type = EXCLUDED.employment_type,
			application_instructions = EXCLUDED.application_instructions,
			raw_content = EXCLUDED.raw_content, extraction_method = EXCLUDED.extraction_method,
			quality = EXCLUDED.quality, needs_review = EXCLUDED.needs_review,
			scraped_at = now()
		RETURNING id, scraped_at`

	err := r.db.QueryRow(ctx, query,
		posting.URL, posting.Title, posting.Company, posting.Location, posting.Description,
		posting.Requirements, posting.Responsibilities, posting.SalaryRange, posting.EmploymentType,
		posting.ApplicationInstructions, posting.RawContent, posting.SiteDomain,
		posting.ExtractionMethod, posting.Quality, posting.NeedsReview).
		Scan(&posting.ID, &posting.ScrapedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to save job posting: %w", err)
	}

	return posting, nil
}

func (r *Repository) GetJobPostingByID(ctx context.Context, id string) (*models.JobPosting, error) {
	var posting models.JobPosting
	query := `SELECT id, url, title, company, location, description, requirements,
		responsibilities, salary_range, employment_type, application_instructions,
		raw_content, site_domain, extraction_method, quality, needs_review, scraped_at
		FROM job_postings WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&posting.ID, &posting.URL, &posting.Title, &posting.Company, &posting.Location,
		&posting.Description, &posting.Requirements, &posting.Responsibilities,
		&posting.SalaryRange, &posting.EmploymentType, &posting.ApplicationInstructions,
		&posting.RawContent, &posting.SiteDomain, &posting.ExtractionMethod,
		&posting.Quality, &posting.NeedsReview, &posting.ScrapedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("job posting not found")
		}
		return nil, fmt.Errorf("failed to get job posting by ID: %w", err)
	}
	return &posting, nil
}

// ListPostingsNeedingReview returns low-confidence postings for the
// review queue, newest first.
func (r *Repository) ListPostingsNeedingReview(ctx context.Context, limit int) ([]models.JobPosting, error) {
	query := `SELECT id, url, title, company, site_domain, extraction_method, quality, scraped_at
		FROM job_postings WHERE needs_review ORDER BY scraped_at DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list postings needing review: %w", err)
	}
	defer rows.Close()

	var postings []models.JobPosting
	for rows.Next() {
		var p models.JobPosting
		if err := rows.Scan(&p.ID, &p.URL, &p.Title, &p.Company, &p.SiteDomain,
			&p.ExtractionMethod, &p.Quality, &p.ScrapedAt); err != nil {
			return nil, fmt.Errorf("failed to scan posting row: %w", err)
		}
		p.NeedsReview = true
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

// ---------------- SCRAPE SESSION OPERATIONS ----------------

// CreateScrapeSession opens a tracking record for one extraction run
func (r *Repository) CreateScrapeSession(ctx context.Context, sessionID, url string) (*models.ScrapeSession, error) {
	session := models.ScrapeSession{ID: sessionID, URL: url, Status: models.StatusPending}
	query := `
		INSERT INTO scrape_sessions (id, url, status)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query, session.ID, session.URL, session.Status).
		Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create scrape session: %w", err)
	}
	return &session, nil
}

// UpdateScrapeSession moves a session to its next state. jobPostingID and
// failureReason may be empty depending on the status.
func (r *Repository) UpdateScrapeSession(ctx context.Context, sessionID string, status models.SessionStatus, jobPostingID, failureReason string) error {
	var postingID *string
	if jobPostingID != "" {
		postingID = &jobPostingID
	}
	_, err := r.db.Exec(ctx,
		`UPDATE scrape_sessions SET status = $1, job_posting_id = $2, failure_reason = $3, updated_at = now() WHERE id = $4`,
		status, postingID, failureReason, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update scrape session: %w", err)
	}
	return nil
}

func (r *Repository) GetScrapeSession(ctx context.Context, sessionID string) (*models.ScrapeSession, error) {
	var session models.ScrapeSession
	query := `SELECT id, url, status, job_posting_id, failure_reason, created_at, updated_at
		FROM scrape_sessions WHERE id = $1`
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&session.ID, &session.URL, &session.Status, &session.JobPostingID,
		&session.FailureReason, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("scrape session not found")
		}
		return nil, fmt.Errorf("failed to get scrape session: %w", err)
	}
	return &session, nil
}

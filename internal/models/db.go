package models

import (
	"time"

	"github.com/Bobska/autocraftcv-sub000/internal/extract"
	"github.com/Bobska/autocraftcv-sub000/internal/jobposting"
)

type SessionStatus string

const (
	StatusPending      SessionStatus = "pending"
	StatusInProgress   SessionStatus = "in_progress"
	StatusSuccess      SessionStatus = "success"
	StatusFailed       SessionStatus = "failed"
	StatusRequiresAuth SessionStatus = "requires_authentication"
)

// JobPosting is the durable record an accepted extraction becomes. Text
// columns are never null: the sanitizer guarantees placeholders instead.
type JobPosting struct {
	ID                      string    `json:"id"`
	URL                     string    `json:"url"`
	Title                   string    `json:"title"`
	Company                 string    `json:"company"`
	Location                string    `json:"location"`
	Description             string    `json:"description"`
	Requirements            string    `json:"requirements"`
	Responsibilities        string    `json:"responsibilities"`
	SalaryRange             string    `json:"salary_range"`
	EmploymentType          string    `json:"employment_type"`
	ApplicationInstructions string    `json:"application_instructions"`
	RawContent              string    `json:"raw_content"`
	SiteDomain              string    `json:"site_domain"`
	ExtractionMethod        string    `json:"extraction_method"`
	Quality                 string    `json:"quality"`
	NeedsReview             bool      `json:"needs_review"`
	ScrapedAt               time.Time `json:"scraped_at"`
}

// ScrapeSession tracks one extraction run end to end so the polling API
// can answer "what happened to my URL".
type ScrapeSession struct {
	ID            string        `json:"id"`
	URL           string        `json:"url"`
	Status        SessionStatus `json:"status"`
	JobPostingID  *string       `json:"job_posting_id,omitempty"`
	FailureReason string        `json:"failure_reason,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// FromExtraction maps a sanitized pipeline result onto the persistence
// record. The caller assigns the ID.
func FromExtraction(result jobposting.ExtractionResult, jobURL string) *JobPosting {
	return &JobPosting{
		URL:                     jobURL,
		Title:                   result.Title,
		Company:                 result.Company,
		Location:                result.Location,
		Description:             result.Description,
		Requirements:            result.Requirements,
		Responsibilities:        result.Responsibilities,
		SalaryRange:             result.SalaryRange,
		EmploymentType:          result.EmploymentType,
		ApplicationInstructions: result.ApplicationInstructions,
		RawContent:              result.RawContent,
		SiteDomain:              result.SiteDomain,
		ExtractionMethod:        result.ExtractionMethod,
		Quality:                 string(result.Quality),
		NeedsReview:             result.NeedsReview,
	}
}

// SessionStatusFor maps a finished extraction onto the session state the
// polling API reports.
func SessionStatusFor(result jobposting.ExtractionResult) SessionStatus {
	if result.ExtractionMethod != extract.MethodManualRequired {
		return StatusSuccess
	}
	if result.FailureReason == extract.ReasonAntiBot {
		return StatusRequiresAuth
	}
	return StatusFailed
}

package ai

import (
	"context"
	"fmt"
)

// ParsedJob is what the model hands back for a blob of pasted job text.
// Field names mirror the JSON contract in the system prompt.
type ParsedJob struct {
	JobTitle       string `json:"job_title"`
	CompanyName    string `json:"company_name"`
	Location       string `json:"location"`
	JobDescription string `json:"job_description"`
	Requirements   string `json:"requirements"`
	SalaryRange    string `json:"salary_range"`
	EmploymentType string `json:"employment_type"`
}

// Client is the interface for AI providers
type Client interface {
	// ParseJobContent takes raw pasted job posting text and returns the
	// structured fields the model could identify.
	ParseJobContent(ctx context.Context, content string) (*ParsedJob, error)
}

// maxPromptContent bounds how much pasted text goes to the model. The
// useful fields live in the first couple thousand characters.
const maxPromptContent = 4000

// buildSystemPrompt creates the system instruction for the AI model
func buildSystemPrompt() string {
	return `You are a job posting parser. I will give you the raw text of a job posting.

Task:
1. Extract the fields below from the text. Use ONLY information present in the text, never invent values.
2. If a field is not present in the text, return an empty string "" for it.
3. Return ONLY a valid, raw JSON object with EXACTLY these keys:
{
    "job_title": "the job title/position",
    "company_name": "the hiring company name",
    "location": "job location (city, state/country)",
    "job_description": "main job responsibilities and duties",
    "requirements": "required qualifications, skills, experience",
    "salary_range": "stated pay or salary range",
    "employment_type": "full-time, part-time, contract, etc."
}
Do NOT wrap the JSON in markdown blocks. Output just the literal JSON string starting with { and ending with }.`
}

// buildUserPrompt creates the user message carrying the posting text
func buildUserPrompt(content string) string {
	if len(content) > maxPromptContent {
		content = content[:maxPromptContent]
	}
	return fmt.Sprintf("Job posting content:\n%s\n\nReturn only the JSON object, no other text.", content)
}

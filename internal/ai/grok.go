package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
)

const grokURL = "https://api.groq.com/openai/v1/chat/completions"

type grokClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGrokClient creates a Groq API client. model may be empty to use the
// default fast Llama-3 model.
func NewGrokClient(apiKey, model string) Client {
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &grokClient{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{},
	}
}

type grokMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type grokRequest struct {
	Model       string        `json:"model"`
	Messages    []grokMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type grokResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ParseJobContent sends the pasted posting text to Groq and decodes the
// structured fields from the reply.
func (c *grokClient) ParseJobContent(ctx context.Context, content string) (*ParsedJob, error) {
	reqBody := grokRequest{
		Model: c.model,
		Messages: []grokMessage{
			{
				Role:    "system",
				Content: buildSystemPrompt(),
			},
			{
				Role:    "user",
				Content: buildUserPrompt(content),
			},
		},
		Temperature: 0.3, // Low temperature for consistency
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal grok request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", grokURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("grok API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var grokResp grokResponse
	if err := json.Unmarshal(bodyBytes, &grokResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if grokResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", grokResp.Error.Message)
	}

	if len(grokResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned from grok API")
	}

	rawContent := grokResp.Choices[0].Message.Content
	cleanedJSON := cleanMarkdownJSON(rawContent)

	var parsed ParsedJob
	if err := json.Unmarshal([]byte(cleanedJSON), &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal AI response (raw length: %d): %w", len(cleanedJSON), err)
	}

	return &parsed, nil
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// cleanMarkdownJSON removes backticks and "json" prefix if the AI model
// tries to be helpful, then narrows to the outermost JSON object in case
// the model prefixed prose anyway.
func cleanMarkdownJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	content = strings.TrimSpace(content)

	if !strings.HasPrefix(content, "{") {
		if match := jsonObjectPattern.FindString(content); match != "" {
			return match
		}
	}
	return content
}

package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanMarkdownJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain object", `{"job_title":"Engineer"}`, `{"job_title":"Engineer"}`},
		{"json fence", "```json\n{\"job_title\":\"Engineer\"}\n```", `{"job_title":"Engineer"}`},
		{"bare fence", "```\n{\"job_title\":\"Engineer\"}\n```", `{"job_title":"Engineer"}`},
		{"leading prose", "Here you go:\n{\"job_title\":\"Engineer\"}", `{"job_title":"Engineer"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanMarkdownJSON(tt.input))
		})
	}
}

func TestBuildUserPrompt_Truncates(t *testing.T) {
	long := make([]byte, maxPromptContent*2)
	for i := range long {
		long[i] = 'a'
	}

	prompt := buildUserPrompt(string(long))

	assert.Less(t, len(prompt), maxPromptContent+100)
}

package gemini

import (
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"

	"github.com/swappi-app/swappi-backend/internal/domain"
)

func TestFallbackExplanation(t *testing.T) {
	viewer := &domain.Profile{SkillsWanted: []string{"Guitar", "French"}}
	candidate := &domain.Profile{Name: "Bob", Vibe: "Chill", SkillsKnown: []string{"French", "Guitar", "Guitar"}}

	assert.Equal(t, "Bob can teach you French and Guitar, which is on your wish list.",
		fallbackExplanation(viewer, candidate))

	candidate.SkillsKnown = []string{"Chess"}
	assert.Equal(t, "Bob has a chill vibe and could be a fun person to swap skills with.",
		fallbackExplanation(viewer, candidate))
}

func TestResponseText(t *testing.T) {
	assert.Empty(t, responseText(nil))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(" You both "), genai.Text("love jazz. ")}},
		}},
	}
	assert.Equal(t, "You both love jazz.", responseText(resp))
}

func TestMatchPromptMentionsSkills(t *testing.T) {
	viewer := &domain.Profile{SkillsWanted: []string{"Guitar"}, Mood: "Happy"}
	candidate := &domain.Profile{SkillsKnown: []string{"Guitar", "Piano"}}

	prompt := matchPrompt(viewer, candidate, 40)
	assert.Contains(t, prompt, "40/100")
	assert.Contains(t, prompt, "Guitar, Piano")
}

func TestLogFieldTruncatesModelText(t *testing.T) {
	short := logField("explanation", " You both love jazz. ")
	assert.Equal(t, "explanation", short.Key)
	assert.Equal(t, "You both love jazz.", short.String)

	long := logField("error", strings.Repeat("x", 5000))
	assert.Equal(t, strings.Repeat("x", maxLoggedChars)+"...", long.String)
}

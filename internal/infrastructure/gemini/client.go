package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/logger"
)

// maxLoggedChars caps model output and API error text written to the log.
const maxLoggedChars = 200

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    *zap.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string, log *zap.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(120)

	return &GeminiClient{
		client: client,
		model:  model,
		log:    log,
	}, nil
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// ExplainMatch writes a one or two sentence reason why candidate suits viewer.
// When the API is unavailable it falls back to a canned explanation.
func (c *GeminiClient) ExplainMatch(ctx context.Context, viewer, candidate *domain.Profile, score int) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(matchPrompt(viewer, candidate, score)))
	if err != nil {
		c.log.Warn("gemini unavailable, using fallback explanation", logField("error", err.Error()))
		return fallbackExplanation(viewer, candidate), nil
	}

	text := responseText(resp)
	if text == "" {
		c.log.Debug("gemini returned no text, using fallback explanation")
		return fallbackExplanation(viewer, candidate), nil
	}
	c.log.Debug("match explanation generated",
		zap.String("candidate_id", candidate.ID),
		logField("explanation", text),
	)
	return text, nil
}

func logField(key, value string) zap.Field {
	return zap.String(key, logger.TruncateForLog(value, maxLoggedChars))
}

func matchPrompt(viewer, candidate *domain.Profile, score int) string {
	return fmt.Sprintf(`
		Two people on a skill-swap app were matched with a compatibility score of %d/100.
		Person A wants to learn: %s. Mood: %s. Vibe: %s.
		Person B can teach: %s. Mood: %s. Vibe: %s.

		Task: Write a short, friendly explanation (1-2 sentences) addressed to Person A of
		why Person B is a good match. Mention concrete skills.
		Output: Just the explanation text.
	`, score,
		strings.Join(viewer.SkillsWanted, ", "), viewer.Mood, viewer.Vibe,
		strings.Join(candidate.SkillsKnown, ", "), candidate.Mood, candidate.Vibe,
	)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String())
}

func fallbackExplanation(viewer, candidate *domain.Profile) string {
	name := candidate.Name
	if name == "" {
		name = "This person"
	}
	shared := sharedSkills(viewer.SkillsWanted, candidate.SkillsKnown)
	if len(shared) == 0 {
		return fmt.Sprintf("%s has a %s vibe and could be a fun person to swap skills with.", name, strings.ToLower(candidate.Vibe))
	}
	return fmt.Sprintf("%s can teach you %s, which is on your wish list.", name, strings.Join(shared, " and "))
}

func sharedSkills(wanted, known []string) []string {
	want := make(map[string]bool, len(wanted))
	for _, s := range wanted {
		want[s] = true
	}
	var out []string
	for _, s := range known {
		if want[s] {
			out = append(out, s)
			delete(want, s)
		}
	}
	return out
}

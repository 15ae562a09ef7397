// Package extraction pulls skill mentions out of free text, using an LLM
// classifier when one is configured and the taxonomy matcher otherwise.
package extraction

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// Client is an abstraction over LLM-backed skill classifiers.
type Client interface {
	// ClassifySkills returns the skill names mentioned in the text.
	ClassifySkills(ctx context.Context, text string) ([]string, error)
	// Close releases any resources held by the client.
	Close() error
}

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// defaultRequestsPerMinute bounds calls to the Gemini API.
const defaultRequestsPerMinute = 30

// GeminiClassifier implements Client on the Gemini API in JSON mode.
type GeminiClassifier struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
}

// NewGeminiClassifier creates a rate-limited classifier. An empty model
// selects the default.
func NewGeminiClassifier(ctx context.Context, apiKey, model string) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClassifier{
		client:  client,
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(defaultRequestsPerMinute)/60, 1),
	}, nil
}

const classifyPrompt = `You are an expert technical recruiter. Identify every concrete skill, technology, tool, framework, or methodology mentioned in the text below.

Return ONLY valid JSON matching this exact structure:
{
  "skills": ["string"]
}

IMPORTANT:
- List each skill once, using its common name (e.g. "PostgreSQL", not "postgres databases").
- Extract skills directly from the text, do not invent or infer.
- Return ONLY the JSON object, no markdown, no explanation, no code blocks.

Input text:
"""
%s
"""
`

// ClassifySkills asks the model for the skills mentioned in the text.
func (c *GeminiClassifier) ClassifySkills(ctx context.Context, text string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(classifyPrompt, text)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	raw, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}
	return parseSkillsJSON(cleanJSONBlock(raw))
}

// Close releases resources held by the client.
func (c *GeminiClassifier) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/finsight-dev/finsight/internal/model"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// DefaultTimeout bounds a single classification call.
const DefaultTimeout = 15 * time.Second

// Gemini classifies queries with the Gemini API.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini classifier. The API key comes from the
// environment when empty. model and timeout fall back to defaults when
// zero.
func NewGemini(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	if modelName == "" {
		modelName = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gemini{client: client, model: modelName, timeout: timeout}, nil
}

// Classify sends the query and taxonomy to the model and parses its strict
// JSON reply. The call is bounded by the configured timeout.
func (g *Gemini) Classify(ctx context.Context, query string, taxonomy []model.IntentCategory) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildPrompt(query, taxonomy)},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var res Result
	if err := json.Unmarshal([]byte(cleanModelJSON(rawText)), &res); err != nil {
		return nil, fmt.Errorf("unmarshal classification: %w", err)
	}
	if res.Confidence < 0 || res.Confidence > 1 {
		return nil, fmt.Errorf("confidence %f out of range", res.Confidence)
	}
	return &res, nil
}

func buildPrompt(query string, taxonomy []model.IntentCategory) string {
	var b strings.Builder
	b.WriteString("You are an intent classifier for a personal finance assistant.\n\n")
	b.WriteString("Classify the user query into EXACTLY one of these intents:\n")
	for _, intent := range taxonomy {
		b.WriteString("- " + string(intent) + "\n")
	}
	b.WriteString("\nOutput STRICT JSON only (no comments, no extra text) with these fields:\n")
	b.WriteString("- \"intent\": string, one of the intents above\n")
	b.WriteString("- \"confidence\": number between 0 and 1\n")
	b.WriteString("- \"entities\": object mapping entity name to extracted value\n")
	b.WriteString("- \"needs_clarification\": boolean\n")
	b.WriteString("- \"suggested_query\": string, a clearer restatement of the query\n\n")
	b.WriteString("Return ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	b.WriteString("Output must begin with \"{\" and end with \"}\".\n\n")
	b.WriteString("Query: " + query + "\n")
	return b.String()
}

// cleanModelJSON strips Markdown fences and surrounding junk when the model
// ignores the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// Keep only the outermost JSON object if junk remains around it.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}

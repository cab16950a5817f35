package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/BerylCAtieno/persona-generator/internal/persona"
	"github.com/BerylCAtieno/persona-generator/internal/prompt"
	"github.com/BerylCAtieno/persona-generator/internal/questionnaire"
	"github.com/BerylCAtieno/persona-generator/internal/retry"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

const defaultMaxAttempts = 3

// Generator produces personas from a parsed questionnaire. The Gemini
// client implements it; tests substitute a scripted fake.
type Generator interface {
	GeneratePersonas(ctx context.Context, ds *questionnaire.Dataset) ([]persona.Persona, error)
}

// textModel isolates the network boundary so the retry and repair logic
// can run against scripted output in tests.
type textModel interface {
	generateText(ctx context.Context, promptText string) (string, error)
}

// Client generates personas with the Gemini API.
type Client struct {
	genai       *genai.Client
	model       textModel
	maxAttempts int
	sleep       func(time.Duration)
}

// New creates a Client for the given model name (DefaultModel when empty)
// with the fixed generation configuration.
func New(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(8192)

	return &Client{
		genai:       client,
		model:       &geminiModel{model: model},
		maxAttempts: defaultMaxAttempts,
	}, nil
}

func (c *Client) Close() {
	if c.genai != nil {
		c.genai.Close()
	}
}

// GeneratePersonas builds the prompt, calls the model with bounded
// retries, and coerces the reply into persona records. A parse failure on
// the final attempt degrades to the salvage parser instead of erroring,
// so callers must treat an empty result as its own failure-like state.
func (c *Client) GeneratePersonas(ctx context.Context, ds *questionnaire.Dataset) ([]persona.Persona, error) {
	promptText := prompt.Build(ds)

	attempt := 0
	return retry.Do(ctx, func(ctx context.Context) ([]persona.Persona, error) {
		attempt++

		text, err := c.model.generateText(ctx, promptText)
		if err != nil {
			log.Printf("generation error (attempt %d/%d): %v", attempt, c.maxAttempts, err)
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			log.Printf("empty model response (attempt %d/%d)", attempt, c.maxAttempts)
			return nil, ErrEmptyResponse
		}

		personas, err := ExtractPersonas(text)
		if err != nil {
			log.Printf("JSON parse error (attempt %d/%d): %v", attempt, c.maxAttempts, err)
			log.Printf("response head: %.500s", text)
			if attempt >= c.maxAttempts {
				return SalvagePersonas(text), nil
			}
			return nil, err
		}
		return personas, nil
	}, retry.Options{
		MaxAttempts: c.maxAttempts,
		Retryable: func(err error) bool {
			return IsRetryable(err) || errors.Is(err, ErrParse)
		},
		Sleep: c.sleep,
	})
}

type geminiModel struct {
	model *genai.GenerativeModel
}

func (g *geminiModel) generateText(ctx context.Context, promptText string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(promptText))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

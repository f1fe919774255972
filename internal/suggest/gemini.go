package suggest

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"

	"github.com/jmylchreest/chromascale/internal/config"
)

// Prompt is the instruction sent to the model.
const Prompt = `Suggest a single base Hue (0-360) and a single Saturation (0-100) for a design. Return only as JSON: {"hue": number, "saturation": number}`

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini is a Suggester backed by the Google Gen AI SDK.
type Gemini struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	logger  hclog.Logger
}

// NewGemini creates a Gemini suggester from the AI configuration.
func NewGemini(ctx context.Context, cfg config.AIConfig, logger hclog.Logger) (*Gemini, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	clientConfig := &genai.ClientConfig{}

	if cfg.Backend == config.BackendVertexAI {
		clientConfig.Backend = genai.BackendVertexAI
	} else {
		clientConfig.Backend = genai.BackendGeminiAPI
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("an API key is required for the %s backend (set %s)", config.BackendGeminiAPI, config.EnvGeminiAPIKey)
		}
		clientConfig.APIKey = cfg.APIKey
	}

	if cfg.BaseURL != "" {
		// Integration proxies serve the API without a version prefix.
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL, APIVersion: ""}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}

	backendName := "Gemini API"
	if client.ClientConfig().Backend == genai.BackendVertexAI {
		backendName = "Vertex AI"
	}
	logger.Debug("gen ai client ready", "backend", backendName, "model", cfg.Model)

	return newGemini(client.Models, cfg.Model, cfg.Timeout, logger), nil
}

func newGemini(models contentGenerator, model string, timeout time.Duration, logger hclog.Logger) *Gemini {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Gemini{models: models, model: model, timeout: timeout, logger: logger}
}

// Suggest implements Suggester.
func (g *Gemini) Suggest(ctx context.Context) (Suggestion, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	start := time.Now()
	response, err := g.models.GenerateContent(ctx, g.model, genai.Text(Prompt), genConfig)
	if err != nil {
		return Suggestion{}, fmt.Errorf("suggestion request failed: %w", err)
	}

	text := firstText(response)
	if text == "" {
		return Suggestion{}, ErrNoResponse
	}

	suggestion, err := ParseSuggestion(text)
	if err != nil {
		g.logger.Debug("unparseable suggestion", "text", text)
		return Suggestion{}, err
	}

	g.logger.Debug("suggestion received", "hue", suggestion.Hue, "saturation", suggestion.Saturation,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return suggestion, nil
}

// firstText returns the text of the first part of the first candidate.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return ""
	}
	return content.Parts[0].Text
}

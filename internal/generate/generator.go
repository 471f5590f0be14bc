// Package generate calls an OpenAI-compatible chat completion endpoint to
// suggest reference content for a brain region. The result is merged into
// a draft through the ordinary edit session operations; the core never
// depends on this collaborator being available.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	neuroerr "github.com/allenzhu312/Brain/internal/errors"
	"github.com/allenzhu312/Brain/internal/logging"
)

// RegionInfo is the structured suggestion returned for a region name.
type RegionInfo struct {
	// Description is a short overview, at most a couple of sentences.
	Description string
	// Functions lists key physiological functions.
	Functions []string
	// Diseases lists associated pathologies or clinical conditions.
	Diseases []string
}

// Generator produces suggested content for a region's display name.
// Implementations must be safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, regionName string) (RegionInfo, error)
}

// Options configures the OpenAI-backed generator.
type Options struct {
	APIKey  string
	BaseURL string // optional, for OpenAI-compatible local endpoints
	Model   string // defaults to gpt-4o-mini
}

// OpenAIGenerator implements Generator against a chat completion API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	logger logging.Logger
}

// NewOpenAIGenerator creates a generator with the given options.
func NewOpenAIGenerator(opts Options, logger logging.Logger) (*OpenAIGenerator, error) {
	if opts.APIKey == "" {
		return nil, neuroerr.NewValidationError("GEN_NO_KEY", "generation API key is not configured")
	}
	if opts.Model == "" {
		opts.Model = openai.GPT4oMini
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  opts.Model,
		logger: logger.WithComponent("generate"),
	}, nil
}

// wireInfo mirrors the JSON shape requested from the model: the two lists
// arrive as comma-delimited strings.
type wireInfo struct {
	Description string `json:"description"`
	Function    string `json:"function"`
	Diseases    string `json:"diseases"`
}

// Generate requests suggested content for the named region. Any network
// failure or malformed response is returned as a recoverable generation
// error; no partial data is ever produced.
func (g *OpenAIGenerator) Generate(ctx context.Context, regionName string) (RegionInfo, error) {
	prompt := fmt.Sprintf(`Provide detailed medical information for the brain structure: %q.
Return the result in JSON format with the following fields:
- description: A general overview (max 2 sentences).
- function: Key physiological functions (comma separated list).
- diseases: Associated pathologies or clinical conditions (comma separated list).`, regionName)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		g.logger.Warn(ctx, err, "generation request failed", "region", regionName)
		return RegionInfo{}, neuroerr.NewGenerationError("GEN_REQUEST", "content generation request failed", err)
	}
	if len(resp.Choices) == 0 {
		return RegionInfo{}, neuroerr.NewGenerationError("GEN_EMPTY", "content generation returned no choices", nil)
	}

	info, err := ParseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		g.logger.Warn(ctx, err, "generation response malformed", "region", regionName)
		return RegionInfo{}, err
	}

	g.logger.Debug(ctx, "generated region info", "region", regionName,
		"functions", len(info.Functions), "diseases", len(info.Diseases))
	return info, nil
}

// ParseResponse decodes the model's JSON payload into a RegionInfo. An
// empty description or a payload that is not a JSON object is rejected.
func ParseResponse(payload string) (RegionInfo, error) {
	var wire wireInfo
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return RegionInfo{}, neuroerr.NewGenerationError("GEN_PARSE", "content generation returned malformed JSON", err)
	}
	if strings.TrimSpace(wire.Description) == "" {
		return RegionInfo{}, neuroerr.NewGenerationError("GEN_SHAPE", "content generation response missing description", nil)
	}

	return RegionInfo{
		Description: strings.TrimSpace(wire.Description),
		Functions:   splitList(wire.Function),
		Diseases:    splitList(wire.Diseases),
	}, nil
}

// splitList splits a comma-delimited list, trimming whitespace and
// dropping empty items.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Package reasoning drives the LLM backend that predicts reaction outcomes
// and describes unknown chemicals. Model output is untrusted: every response
// is parsed and schema-validated before it leaves this package, and the
// attempt budget includes one reflection round where the model is shown its
// own invalid output.
package reasoning

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"chemezy-server/internal/config"
	"chemezy-server/internal/domain/chemical"
	"chemezy-server/internal/domain/reaction"
	"chemezy-server/internal/infrastructure/metrics"
)

const predictionSystemPrompt = `You are a rigorous computational chemist. Given reactants, an environment, an optional catalyst and factual reference data, predict the outcome of mixing the reactants.

Respond with a single JSON object and nothing else, using this exact schema:
{
  "products": [{"formula": string, "common_name": string, "quantity": number > 0, "is_soluble": boolean}],
  "effects": [{"effect_type": one of "gas_production"|"light_emission"|"volume_change"|"spill"|"state_change"|"temperature_change"|"texture_change"|"foam_production", ...variant fields}],
  "explanation": string
}

Variant fields:
- gas_production: gas_type, color, intensity (0..1), duration (>0)
- light_emission: color, intensity (0..1), radius (>0), duration (>0)
- volume_change: factor (>0)
- spill: amount_percentage (0..1), spread_radius (>0)
- state_change: product_reference, final_state
- temperature_change: delta_celsius
- texture_change: product_reference, texture_type, color, viscosity (0..1)
- foam_production: color, density (>0), bubble_size ("small"|"medium"|"large"), stability (>0)

At least one product is required. Base the prediction on real chemistry; prefer the factual reference data over your own recall when they disagree.`

const describeSystemPrompt = `You are a rigorous computational chemist. Describe the chemical with the given molecular formula.

Respond with a single JSON object and nothing else:
{
  "common_name": string,
  "state_of_matter": one of "solid"|"liquid"|"gas"|"plasma"|"aqueous",
  "color": string,
  "density": number > 0 (g/cm3),
  "properties": object with any additional notable properties
}`

// Client calls the configured OpenAI-compatible backend.
type Client struct {
	api         *openai.Client
	model       string
	maxAttempts int
	reflection  bool
	log         zerolog.Logger
}

var (
	_ reaction.Predictor           = (*Client)(nil)
	_ chemical.PropertiesGenerator = (*Client)(nil)
)

// NewClient returns nil when no API key is configured; callers treat a nil
// client as the fallback-only mode.
func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	if !cfg.ReasoningConfigured() {
		log.Info().Msg("no reasoning backend configured, heuristic fallback only")
		return nil
	}

	apiConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		apiConfig.BaseURL = cfg.OpenAIBaseURL
	}

	return &Client{
		api:         openai.NewClientWithConfig(apiConfig),
		model:       cfg.OpenAIModel,
		maxAttempts: cfg.ReasoningMaxAttempts,
		reflection:  cfg.ReasoningReflection,
		log:         log.With().Str("component", "reasoning_client").Logger(),
	}
}

// Predict asks the model for a structured reaction outcome. Invalid responses
// consume attempts; with reflection enabled the first invalid response is fed
// back to the model together with the validation failure. Exhausting the
// budget yields reaction.ErrReasoningFailed.
func (c *Client) Predict(ctx context.Context, input reaction.PredictorInput) (*reaction.PredictionResult, error) {
	userPrompt, err := buildPredictionPrompt(input)
	if err != nil {
		return nil, fmt.Errorf("build prediction prompt: %w", err)
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: predictionSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt},
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		raw, err := c.complete(ctx, messages)
		if err != nil {
			metrics.ReasoningAttemptsTotal.WithLabelValues("error").Inc()
			lastErr = err
			continue
		}

		result, err := parsePrediction(raw)
		if err == nil {
			metrics.ReasoningAttemptsTotal.WithLabelValues("ok").Inc()
			return result, nil
		}

		metrics.ReasoningAttemptsTotal.WithLabelValues("invalid").Inc()
		lastErr = err
		c.log.Warn().Err(err).Int("attempt", attempt).Msg("reasoning response failed validation")

		if c.reflection {
			messages = append(messages,
				openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: raw},
				openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf("Your previous response was rejected: %v. Reply again with a single JSON object that satisfies the schema exactly.", err),
				},
			)
		}
	}

	return nil, fmt.Errorf("%w: %v", reaction.ErrReasoningFailed, lastErr)
}

// DescribeChemical asks the model for catalog properties of a formula.
func (c *Client) DescribeChemical(ctx context.Context, formula string) (*chemical.GeneratedProperties, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: describeSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Molecular formula: %s", formula)},
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		raw, err := c.complete(ctx, messages)
		if err != nil {
			lastErr = err
			continue
		}

		var props chemical.GeneratedProperties
		if err := json.Unmarshal([]byte(stripCodeFences(raw)), &props); err != nil {
			lastErr = fmt.Errorf("decode properties: %w", err)
			continue
		}
		return &props, nil
	}

	return nil, fmt.Errorf("%w: %v", reaction.ErrReasoningFailed, lastErr)
}

func (c *Client) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildPredictionPrompt(input reaction.PredictorInput) (string, error) {
	payload := struct {
		Reactants   []reaction.ReactantContext       `json:"reactants"`
		Environment reaction.Environment             `json:"environment"`
		Catalyst    *reaction.ReactantContext        `json:"catalyst,omitempty"`
		Facts       map[string]reaction.CompoundFact `json:"factual_reference_data,omitempty"`
	}{
		Reactants:   input.Reactants,
		Environment: input.Environment,
		Catalyst:    input.Catalyst,
		Facts:       input.Facts,
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Predict the reaction outcome for:\n%s", encoded), nil
}

// parsePrediction is the validation boundary between raw model output and the
// rest of the engine.
func parsePrediction(raw string) (*reaction.PredictionResult, error) {
	var result reaction.PredictionResult
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &result); err != nil {
		return nil, fmt.Errorf("decode prediction: %w", err)
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return &result, nil
}

// stripCodeFences tolerates models that wrap JSON in markdown fences despite
// the response format instruction.
func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

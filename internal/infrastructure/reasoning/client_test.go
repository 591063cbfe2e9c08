package reasoning

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"chemezy-server/internal/config"
	"chemezy-server/internal/domain/reaction"
)

const validPrediction = `{
	"products": [{"formula": "H2O", "common_name": "Water", "quantity": 1, "is_soluble": true}],
	"effects": [{"effect_type": "temperature_change", "delta_celsius": 12}],
	"explanation": "Hydrogen combusts in oxygen to form water."
}`

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"fenced", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced with language", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"leading whitespace", "  \n{\"a\":1}\n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePrediction(t *testing.T) {
	result, err := parsePrediction(validPrediction)
	if err != nil {
		t.Fatalf("valid prediction rejected: %v", err)
	}
	if len(result.Products) != 1 || result.Products[0].Formula != "H2O" {
		t.Errorf("unexpected products: %+v", result.Products)
	}
	if result.Effects[0].Type != reaction.EffectTemperatureChange {
		t.Errorf("unexpected effect type: %s", result.Effects[0].Type)
	}
}

func TestParsePredictionRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "the reaction produces water"},
		{"no products", `{"products": [], "effects": [], "explanation": "x"}`},
		{"missing explanation", `{"products": [{"formula": "H2O", "common_name": "Water", "quantity": 1}], "effects": []}`},
		{"unknown effect", `{"products": [{"formula": "H2O", "common_name": "Water", "quantity": 1}], "effects": [{"effect_type": "explosion"}], "explanation": "x"}`},
		{"out of bounds intensity", `{"products": [{"formula": "H2O", "common_name": "Water", "quantity": 1}], "effects": [{"effect_type": "gas_production", "gas_type": "h2", "color": "clear", "intensity": 7, "duration": 1}], "explanation": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parsePrediction(tt.raw); err == nil {
				t.Error("expected validation failure")
			}
		})
	}
}

type chatRequest struct {
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatResponse(content string) string {
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
	encoded, _ := json.Marshal(payload)
	return string(encoded)
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client := NewClient(&config.Config{
		OpenAIAPIKey:         "test-key",
		OpenAIModel:          "gpt-4o",
		OpenAIBaseURL:        baseURL + "/v1",
		ReasoningMaxAttempts: 2,
		ReasoningReflection:  true,
	}, zerolog.Nop())
	if client == nil {
		t.Fatal("expected a configured client")
	}
	return client
}

func predictorInput() reaction.PredictorInput {
	return reaction.PredictorInput{
		Reactants: []reaction.ReactantContext{
			{Formula: "H2", CommonName: "Hydrogen", Quantity: 2},
			{Formula: "O2", CommonName: "Oxygen", Quantity: 1},
		},
		Environment: reaction.EnvironmentPureOxygen,
	}
}

func TestPredictReflectionRecoversFromInvalidResponse(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			_, _ = w.Write([]byte(chatResponse(`{"products": [], "effects": [], "explanation": ""}`)))
			return
		}
		// The retry must carry the rejected response and a critique.
		if len(req.Messages) != 4 {
			t.Errorf("expected 4 messages on reflection retry, got %d", len(req.Messages))
		}
		_, _ = w.Write([]byte(chatResponse(validPrediction)))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	result, err := client.Predict(context.Background(), predictorInput())
	if err != nil {
		t.Fatalf("expected recovery on second attempt: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
	if result.Products[0].Formula != "H2O" {
		t.Errorf("unexpected product: %+v", result.Products[0])
	}
}

func TestPredictExhaustedBudget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatResponse("not json at all")))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.Predict(context.Background(), predictorInput())
	if !errors.Is(err, reaction.ErrReasoningFailed) {
		t.Fatalf("expected ErrReasoningFailed, got %v", err)
	}
}

func TestPredictAcceptsFencedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatResponse("```json\n" + validPrediction + "\n```")))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	result, err := client.Predict(context.Background(), predictorInput())
	if err != nil {
		t.Fatalf("fenced response rejected: %v", err)
	}
	if result.Explanation == "" {
		t.Error("expected explanation to survive fence stripping")
	}
}

func TestDescribeChemical(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatResponse(`{
			"common_name": "Water",
			"state_of_matter": "liquid",
			"color": "colorless",
			"density": 1.0,
			"properties": {"polarity": "polar"}
		}`)))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	props, err := client.DescribeChemical(context.Background(), "H2O")
	if err != nil {
		t.Fatalf("describe failed: %v", err)
	}
	if props.CommonName != "Water" || props.StateOfMatter != "liquid" {
		t.Errorf("unexpected properties: %+v", props)
	}
}

func TestNewClientUnconfigured(t *testing.T) {
	if client := NewClient(&config.Config{}, zerolog.Nop()); client != nil {
		t.Error("expected nil client without an API key")
	}
}

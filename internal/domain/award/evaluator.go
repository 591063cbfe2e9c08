package award

import (
	"context"

	"github.com/rs/zerolog"
)

// DiscoveryEvent describes a world-first discovery handed to the award
// subsystem for evaluation.
type DiscoveryEvent struct {
	EffectKey    string
	DiscoveredBy string
	RequestID    string
	CacheEntryID *uint
}

// Evaluator is the boundary to the award subsystem. Calls are best-effort:
// callers log failures and never let them affect the reaction response.
type Evaluator interface {
	EvaluateDiscovery(ctx context.Context, event DiscoveryEvent) error
}

// LogEvaluator is the in-process evaluator used when no award backend is
// wired. It records the event and succeeds.
type LogEvaluator struct {
	log zerolog.Logger
}

var _ Evaluator = (*LogEvaluator)(nil)

func NewLogEvaluator(log zerolog.Logger) *LogEvaluator {
	return &LogEvaluator{log: log}
}

func (e *LogEvaluator) EvaluateDiscovery(_ context.Context, event DiscoveryEvent) error {
	e.log.Info().
		Str("effect_key", event.EffectKey).
		Str("discovered_by", event.DiscoveredBy).
		Str("request_id", event.RequestID).
		Msg("world-first discovery eligible for award evaluation")
	return nil
}

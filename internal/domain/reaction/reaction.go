package reaction

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Environment is the closed set of reaction environments the engine accepts.
type Environment string

const (
	EnvironmentNormal     Environment = "Earth (Normal)"
	EnvironmentVacuum     Environment = "Vacuum"
	EnvironmentPureOxygen Environment = "Pure Oxygen"
	EnvironmentInertGas   Environment = "Inert Gas"
	EnvironmentAcidic     Environment = "Acidic Environment"
	EnvironmentBasic      Environment = "Basic Environment"
)

// Environments lists every valid environment descriptor.
func Environments() []Environment {
	return []Environment{
		EnvironmentNormal,
		EnvironmentVacuum,
		EnvironmentPureOxygen,
		EnvironmentInertGas,
		EnvironmentAcidic,
		EnvironmentBasic,
	}
}

// ParseEnvironment validates a raw environment descriptor.
func ParseEnvironment(raw string) (Environment, error) {
	for _, env := range Environments() {
		if raw == string(env) {
			return env, nil
		}
	}
	return "", fmt.Errorf("unknown environment %q", raw)
}

// Valid reports whether the environment belongs to the closed enumeration.
func (e Environment) Valid() bool {
	_, err := ParseEnvironment(string(e))
	return err == nil
}

// Product is a single predicted reaction product.
type Product struct {
	Formula    string  `json:"formula" validate:"required"`
	CommonName string  `json:"common_name" validate:"required"`
	Quantity   float64 `json:"quantity" validate:"gt=0"`
	IsSoluble  bool    `json:"is_soluble"`
}

// PredictionResult is the structured outcome of a reaction prediction,
// whichever path produced it.
type PredictionResult struct {
	Products    []Product `json:"products" validate:"min=1,dive"`
	Effects     []Effect  `json:"effects"`
	Explanation string    `json:"explanation" validate:"required"`
}

// Validate enforces the prediction schema, including per-variant effect bounds.
// Responses from the reasoning backend are untrusted input and must pass this
// before they are used anywhere downstream.
func (r *PredictionResult) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid prediction: %w", err)
	}
	for i := range r.Effects {
		if err := r.Effects[i].Validate(); err != nil {
			return fmt.Errorf("invalid effect at index %d: %w", i, err)
		}
	}
	return nil
}

// PredictionSource identifies which path produced a prediction.
type PredictionSource string

const (
	SourceCache    PredictionSource = "cache_hit"
	SourceReasoned PredictionSource = "generated"
	SourceFallback PredictionSource = "fallback"
)

// ErrReasoningFailed is returned by a Predictor once its retry budget is
// exhausted without a schema-valid response.
var ErrReasoningFailed = errors.New("reasoning backend failed to produce a valid prediction")

// CompoundFact is the best-effort factual record for a single reactant.
type CompoundFact struct {
	Formula         string   `json:"formula"`
	MolecularWeight *float64 `json:"molecular_weight,omitempty"`
	HBondDonors     int      `json:"h_bond_donors"`
	HBondAcceptors  int      `json:"h_bond_acceptors"`
	Source          string   `json:"source"`
}

// FactSourceUnavailable marks a placeholder record for an identifier whose
// lookup failed after all retries.
const FactSourceUnavailable = "unavailable"

// FactRetriever fetches factual reference data for a set of identifiers.
// Implementations degrade to placeholder records and never fail the caller.
type FactRetriever interface {
	Fetch(ctx context.Context, identifiers []string) map[string]CompoundFact
}

// ReactantContext carries one reactant into the prediction prompt.
type ReactantContext struct {
	Formula    string  `json:"formula"`
	CommonName string  `json:"common_name,omitempty"`
	Quantity   float64 `json:"quantity"`
}

// PredictorInput is the grounded request handed to the reasoning backend.
type PredictorInput struct {
	Reactants   []ReactantContext
	Environment Environment
	Catalyst    *ReactantContext
	Facts       map[string]CompoundFact
}

// Predictor is the reasoning backend boundary. A nil Predictor is a valid
// runtime state meaning no backend is configured.
type Predictor interface {
	Predict(ctx context.Context, input PredictorInput) (*PredictionResult, error)
}

// CacheEntry is one persisted prediction, keyed by fingerprint.
// Entries are immutable after creation.
type CacheEntry struct {
	ID          uint
	Fingerprint string
	Reactants   []string
	Environment Environment
	Products    []Product
	Effects     []Effect
	Explanation string
	SubmittedBy string
	CreatedAt   time.Time
}

// Discovery is one row of the world-first ledger. For a given effect key
// exactly one Discovery ever exists.
type Discovery struct {
	ID           uint
	EffectKey    string
	DiscoveredBy string
	DiscoveredAt time.Time
	CacheEntryID *uint
}

// Stats summarises the persistent state of the engine.
type Stats struct {
	CacheEntries int64
	Discoveries  int64
}

// CacheRepository is the persistence boundary for reaction cache entries.
type CacheRepository interface {
	// FindByFingerprint returns nil, nil when no entry exists.
	FindByFingerprint(ctx context.Context, fingerprint string) (*CacheEntry, error)
	// Create inserts a new entry and surfaces duplicate fingerprints as a
	// platformerrors Conflict so callers can recover from insert races.
	Create(ctx context.Context, entry *CacheEntry) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

// DiscoveryRepository is the persistence boundary for the discovery ledger.
type DiscoveryRepository interface {
	// ClaimEffect attempts to record a world-first discovery. It returns true
	// only when this call inserted the row; losing a concurrent race returns
	// false with no error.
	ClaimEffect(ctx context.Context, discovery *Discovery) (bool, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

package reaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"chemezy-server/internal/domain/award"
	"chemezy-server/internal/domain/chemical"
	"chemezy-server/internal/infrastructure/database/transaction"
	"chemezy-server/internal/infrastructure/metrics"
	"chemezy-server/internal/utils/platformerrors"
)

// ReactantInput references one catalogued chemical taking part in a reaction.
type ReactantInput struct {
	ChemicalID uint
	Quantity   float64
}

// PredictInput is a fully resolved prediction request.
type PredictInput struct {
	Reactants   []ReactantInput
	Environment Environment
	CatalystID  *uint
	ActorID     string
}

// ProductOutput is one predicted product, linked back to the catalog when the
// formula is known there.
type ProductOutput struct {
	ChemicalID       *uint   `json:"chemical_id,omitempty"`
	MolecularFormula string  `json:"molecular_formula"`
	CommonName       string  `json:"common_name"`
	Quantity         float64 `json:"quantity"`
	IsSoluble        bool    `json:"is_soluble"`
}

// PredictOutput is the engine's answer to a prediction request.
type PredictOutput struct {
	RequestID    string           `json:"request_id"`
	Products     []ProductOutput  `json:"products"`
	Effects      []Effect         `json:"effects"`
	Explanation  string           `json:"explanation"`
	IsWorldFirst bool             `json:"is_world_first"`
	Source       PredictionSource `json:"source"`
}

// Service orchestrates the cache-first, generation-second prediction
// pipeline and the world-first discovery ledger.
type Service struct {
	cache       CacheRepository
	discoveries DiscoveryRepository
	chemicals   *chemical.Service
	facts       FactRetriever
	predictor   Predictor
	fallback    *FallbackPredictor
	awards      award.Evaluator
	txDB        *transaction.Database
	log         zerolog.Logger
}

func NewService(
	cache CacheRepository,
	discoveries DiscoveryRepository,
	chemicals *chemical.Service,
	facts FactRetriever,
	predictor Predictor,
	awards award.Evaluator,
	txDB *transaction.Database,
	log zerolog.Logger,
) *Service {
	return &Service{
		cache:       cache,
		discoveries: discoveries,
		chemicals:   chemicals,
		facts:       facts,
		predictor:   predictor,
		fallback:    NewFallbackPredictor(),
		awards:      awards,
		txDB:        txDB,
		log:         log.With().Str("component", "reaction_service").Logger(),
	}
}

// Predict runs the full pipeline: resolve reactants, consult the cache,
// generate on a miss, persist reasoned results and claim world-first
// discoveries atomically, then evaluate awards best-effort. Fallback results
// skip the cache but still go through the discovery check.
func (s *Service) Predict(ctx context.Context, input PredictInput) (*PredictOutput, error) {
	if len(input.Reactants) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"at least one reactant is required", nil, "")
	}
	if input.Environment == "" {
		input.Environment = EnvironmentNormal
	}
	if !input.Environment.Valid() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"unknown reaction environment", nil, "")
	}
	if input.ActorID == "" {
		input.ActorID = "guest"
	}

	requestID := uuid.NewString()

	reactants := make([]ReactantContext, 0, len(input.Reactants))
	formulas := make([]string, 0, len(input.Reactants))
	for _, r := range input.Reactants {
		chem, err := s.chemicals.FindByID(ctx, r.ChemicalID)
		if err != nil {
			return nil, err
		}
		quantity := r.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		reactants = append(reactants, ReactantContext{
			Formula:    chem.MolecularFormula,
			CommonName: chem.CommonName,
			Quantity:   quantity,
		})
		formulas = append(formulas, chem.MolecularFormula)
	}

	var catalyst *ReactantContext
	if input.CatalystID != nil {
		chem, err := s.chemicals.FindByID(ctx, *input.CatalystID)
		if err != nil {
			return nil, err
		}
		catalyst = &ReactantContext{
			Formula:    chem.MolecularFormula,
			CommonName: chem.CommonName,
			Quantity:   1,
		}
	}

	// The catalyst steers the reasoning prompt but never the cache key.
	fingerprint := Fingerprint(formulas, input.Environment)

	entry, err := s.cache.FindByFingerprint(ctx, fingerprint)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "cache lookup failed")
	}
	if entry != nil {
		s.log.Debug().Str("fingerprint", fingerprint).Msg("reaction cache hit")
		metrics.RecordReaction(string(SourceCache))
		return s.buildOutput(ctx, requestID, entry.Products, entry.Effects, entry.Explanation, false, SourceCache)
	}

	result, source := s.generate(ctx, PredictorInput{
		Reactants:   reactants,
		Environment: input.Environment,
		Catalyst:    catalyst,
	}, formulas)

	worldFirst := false
	var wonClaims []Discovery

	if source == SourceReasoned {
		// Network work is done; persistence and the discovery claims share
		// one transaction so a cache row never appears without its ledger
		// rows and vice versa.
		err = s.txDB.RunInTransaction(ctx, func(ctx context.Context) error {
			winner, err := s.cache.FindByFingerprint(ctx, fingerprint)
			if err != nil {
				return err
			}
			if winner != nil {
				metrics.CacheConflictsTotal.Inc()
				result = &PredictionResult{
					Products:    winner.Products,
					Effects:     winner.Effects,
					Explanation: winner.Explanation,
				}
				source = SourceCache
				return nil
			}

			newEntry := &CacheEntry{
				Fingerprint: fingerprint,
				Reactants:   formulas,
				Environment: input.Environment,
				Products:    result.Products,
				Effects:     result.Effects,
				Explanation: result.Explanation,
				SubmittedBy: input.ActorID,
			}
			if err := s.cache.Create(ctx, newEntry); err != nil {
				if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
					metrics.CacheConflictsTotal.Inc()
					winner, findErr := s.cache.FindByFingerprint(ctx, fingerprint)
					if findErr != nil {
						return findErr
					}
					if winner != nil {
						result = &PredictionResult{
							Products:    winner.Products,
							Effects:     winner.Effects,
							Explanation: winner.Explanation,
						}
						source = SourceCache
						return nil
					}
				}
				return err
			}

			claims, err := s.claimEffects(ctx, result.Effects, input.ActorID, &newEntry.ID)
			if err != nil {
				return err
			}
			wonClaims = claims
			worldFirst = len(claims) > 0
			return nil
		})
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to persist prediction")
		}
	}

	if source == SourceFallback {
		// Fallback output is never cached, but an effect first produced by
		// the heuristic path is still a discovery, so the ledger check runs
		// here too. The claims carry no cache entry reference.
		err = s.txDB.RunInTransaction(ctx, func(ctx context.Context) error {
			claims, err := s.claimEffects(ctx, result.Effects, input.ActorID, nil)
			if err != nil {
				return err
			}
			wonClaims = claims
			worldFirst = len(claims) > 0
			return nil
		})
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to record discoveries")
		}
	}

	for _, claim := range wonClaims {
		metrics.DiscoveriesTotal.Inc()
		if err := s.awards.EvaluateDiscovery(ctx, award.DiscoveryEvent{
			EffectKey:    claim.EffectKey,
			DiscoveredBy: claim.DiscoveredBy,
			RequestID:    requestID,
			CacheEntryID: claim.CacheEntryID,
		}); err != nil {
			s.log.Warn().Err(err).Str("effect_key", claim.EffectKey).Msg("award evaluation failed")
		}
	}

	metrics.RecordReaction(string(source))
	return s.buildOutput(ctx, requestID, result.Products, result.Effects, result.Explanation, worldFirst, source)
}

// generate runs the reasoning backend when one is configured and falls back
// to the heuristic predictor on any failure. Fact retrieval is best-effort
// and happens before the prediction call so the prompt can be grounded.
func (s *Service) generate(ctx context.Context, input PredictorInput, formulas []string) (*PredictionResult, PredictionSource) {
	if s.predictor == nil {
		return s.fallback.Predict(formulas, input.Environment), SourceFallback
	}

	if s.facts != nil {
		input.Facts = s.facts.Fetch(ctx, formulas)
	}

	start := time.Now()
	result, err := s.predictor.Predict(ctx, input)
	metrics.ReasoningDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.log.Warn().Err(err).Msg("reasoning backend failed, using fallback prediction")
		return s.fallback.Predict(formulas, input.Environment), SourceFallback
	}
	return result, SourceReasoned
}

// claimEffects attempts a world-first claim for every effect. Only claims
// this call actually inserted are returned.
func (s *Service) claimEffects(ctx context.Context, effects []Effect, actorID string, cacheEntryID *uint) ([]Discovery, error) {
	now := time.Now().UTC()
	var won []Discovery
	for _, effect := range effects {
		discovery := &Discovery{
			EffectKey:    effect.Key(),
			DiscoveredBy: actorID,
			DiscoveredAt: now,
			CacheEntryID: cacheEntryID,
		}
		claimed, err := s.discoveries.ClaimEffect(ctx, discovery)
		if err != nil {
			return nil, err
		}
		if claimed {
			won = append(won, *discovery)
		}
	}
	return won, nil
}

func (s *Service) buildOutput(ctx context.Context, requestID string, products []Product, effects []Effect, explanation string, worldFirst bool, source PredictionSource) (*PredictOutput, error) {
	outputs := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		out := ProductOutput{
			MolecularFormula: p.Formula,
			CommonName:       p.CommonName,
			Quantity:         p.Quantity,
			IsSoluble:        p.IsSoluble,
		}
		chem, err := s.chemicals.ResolveOrCreate(ctx, p.Formula, p.CommonName)
		if err != nil {
			s.log.Warn().Err(err).Str("formula", p.Formula).Msg("failed to resolve product chemical")
		} else if chem != nil {
			out.ChemicalID = &chem.ID
		}
		outputs = append(outputs, out)
	}

	if effects == nil {
		effects = []Effect{}
	}

	return &PredictOutput{
		RequestID:    requestID,
		Products:     outputs,
		Effects:      effects,
		Explanation:  explanation,
		IsWorldFirst: worldFirst,
		Source:       source,
	}, nil
}

// EraseAll wipes the cache and the discovery ledger in one transaction.
func (s *Service) EraseAll(ctx context.Context) error {
	err := s.txDB.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.discoveries.DeleteAll(ctx); err != nil {
			return err
		}
		return s.cache.DeleteAll(ctx)
	})
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to erase reaction data")
	}
	s.log.Info().Msg("reaction cache and discovery ledger erased")
	return nil
}

// Stats reports ledger and cache sizes.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	cacheCount, err := s.cache.Count(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count cache entries")
	}
	discoveryCount, err := s.discoveries.Count(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to count discoveries")
	}
	return &Stats{CacheEntries: cacheCount, Discoveries: discoveryCount}, nil
}

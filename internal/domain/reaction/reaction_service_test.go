package reaction

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"chemezy-server/internal/domain/award"
	"chemezy-server/internal/domain/chemical"
	"chemezy-server/internal/infrastructure/database/transaction"
	"chemezy-server/internal/utils/platformerrors"
)

type memCacheRepo struct {
	entries map[string]*CacheEntry
	nextID  uint
	// raceWinner, when set, is inserted by a simulated concurrent writer the
	// moment Create is attempted, which then fails with a conflict.
	raceWinner *CacheEntry
	creates    int
}

func newMemCacheRepo() *memCacheRepo {
	return &memCacheRepo{entries: make(map[string]*CacheEntry)}
}

func (m *memCacheRepo) FindByFingerprint(_ context.Context, fingerprint string) (*CacheEntry, error) {
	entry, ok := m.entries[fingerprint]
	if !ok {
		return nil, nil
	}
	clone := *entry
	return &clone, nil
}

func (m *memCacheRepo) Create(ctx context.Context, entry *CacheEntry) error {
	m.creates++
	if m.raceWinner != nil {
		winner := m.raceWinner
		m.raceWinner = nil
		m.nextID++
		winner.ID = m.nextID
		m.entries[winner.Fingerprint] = winner
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
			"cache entry already exists for fingerprint", nil, "")
	}
	if _, ok := m.entries[entry.Fingerprint]; ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
			"cache entry already exists for fingerprint", nil, "")
	}
	m.nextID++
	entry.ID = m.nextID
	clone := *entry
	m.entries[entry.Fingerprint] = &clone
	return nil
}

func (m *memCacheRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.entries)), nil
}

func (m *memCacheRepo) DeleteAll(_ context.Context) error {
	m.entries = make(map[string]*CacheEntry)
	return nil
}

type memDiscoveryRepo struct {
	claims map[string]*Discovery
	nextID uint
}

func newMemDiscoveryRepo() *memDiscoveryRepo {
	return &memDiscoveryRepo{claims: make(map[string]*Discovery)}
}

func (m *memDiscoveryRepo) ClaimEffect(_ context.Context, discovery *Discovery) (bool, error) {
	if _, ok := m.claims[discovery.EffectKey]; ok {
		return false, nil
	}
	m.nextID++
	discovery.ID = m.nextID
	clone := *discovery
	m.claims[discovery.EffectKey] = &clone
	return true, nil
}

func (m *memDiscoveryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.claims)), nil
}

func (m *memDiscoveryRepo) DeleteAll(_ context.Context) error {
	m.claims = make(map[string]*Discovery)
	return nil
}

type memChemicalRepo struct {
	byID map[uint]*chemical.Chemical
}

func (m *memChemicalRepo) FindByID(_ context.Context, id uint) (*chemical.Chemical, error) {
	return m.byID[id], nil
}

func (m *memChemicalRepo) FindByFormula(_ context.Context, formula string) (*chemical.Chemical, error) {
	for _, chem := range m.byID {
		if chem.MolecularFormula == formula {
			return chem, nil
		}
	}
	return nil, nil
}

func (m *memChemicalRepo) Create(_ context.Context, chem *chemical.Chemical) error {
	chem.ID = uint(len(m.byID) + 1)
	m.byID[chem.ID] = chem
	return nil
}

func (m *memChemicalRepo) List(_ context.Context) ([]chemical.Chemical, error) {
	chemicals := make([]chemical.Chemical, 0, len(m.byID))
	for _, chem := range m.byID {
		chemicals = append(chemicals, *chem)
	}
	return chemicals, nil
}

func (m *memChemicalRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.byID)), nil
}

type stubPredictor struct {
	result *PredictionResult
	err    error
	calls  int
}

func (s *stubPredictor) Predict(_ context.Context, _ PredictorInput) (*PredictionResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	clone := *s.result
	return &clone, nil
}

type stubFacts struct{}

func (stubFacts) Fetch(_ context.Context, identifiers []string) map[string]CompoundFact {
	facts := make(map[string]CompoundFact, len(identifiers))
	for _, id := range identifiers {
		facts[id] = CompoundFact{Formula: id, Source: FactSourceUnavailable}
	}
	return facts
}

func reasonedResult() *PredictionResult {
	return &PredictionResult{
		Products: []Product{
			{Formula: "H2", CommonName: "Hydrogen gas", Quantity: 1, IsSoluble: false},
			{Formula: "NaOH", CommonName: "Sodium hydroxide", Quantity: 1, IsSoluble: true},
		},
		Effects: []Effect{
			NewGasProductionEffect(GasProduction{GasType: "hydrogen", Color: "colorless", Intensity: 0.9, Duration: 4}),
			NewLightEmissionEffect(LightEmission{Color: "orange", Intensity: 0.6, Radius: 1, Duration: 2}),
		},
		Explanation: "Sodium reacts violently with water.",
	}
}

func newTestService(cache *memCacheRepo, discoveries *memDiscoveryRepo, predictor Predictor) *Service {
	chemRepo := &memChemicalRepo{byID: map[uint]*chemical.Chemical{
		1: {ID: 1, MolecularFormula: "Na", CommonName: "Sodium"},
		2: {ID: 2, MolecularFormula: "H2O", CommonName: "Water"},
	}}
	chemService := chemical.NewService(chemRepo, nil, zerolog.Nop())

	return NewService(
		cache,
		discoveries,
		chemService,
		stubFacts{},
		predictor,
		award.NewLogEvaluator(zerolog.Nop()),
		transaction.NewDatabase(nil),
		zerolog.Nop(),
	)
}

func testCtx() context.Context {
	return transaction.WithTx(context.Background(), nil)
}

func predictInput(actor string) PredictInput {
	return PredictInput{
		Reactants: []ReactantInput{
			{ChemicalID: 1, Quantity: 1},
			{ChemicalID: 2, Quantity: 2},
		},
		Environment: EnvironmentNormal,
		ActorID:     actor,
	}
}

func TestPredictGeneratesPersistsAndClaims(t *testing.T) {
	cache := newMemCacheRepo()
	discoveries := newMemDiscoveryRepo()
	predictor := &stubPredictor{result: reasonedResult()}
	svc := newTestService(cache, discoveries, predictor)

	output, err := svc.Predict(testCtx(), predictInput("alice"))
	require.NoError(t, err)
	require.Equal(t, SourceReasoned, output.Source)
	require.True(t, output.IsWorldFirst)
	require.Len(t, output.Products, 2)
	require.Len(t, cache.entries, 1)
	require.Len(t, discoveries.claims, 2)
	require.Equal(t, "alice", discoveries.claims["gas_production"].DiscoveredBy)

	// Previously unseen product formulas get catalog rows of their own.
	for _, product := range output.Products {
		require.NotNil(t, product.ChemicalID, "product %s should be catalogued", product.MolecularFormula)
	}
}

func TestPredictCacheHitSkipsPredictor(t *testing.T) {
	cache := newMemCacheRepo()
	discoveries := newMemDiscoveryRepo()
	predictor := &stubPredictor{result: reasonedResult()}
	svc := newTestService(cache, discoveries, predictor)

	first, err := svc.Predict(testCtx(), predictInput("alice"))
	require.NoError(t, err)
	require.True(t, first.IsWorldFirst)

	second, err := svc.Predict(testCtx(), predictInput("bob"))
	require.NoError(t, err)
	require.Equal(t, SourceCache, second.Source)
	require.False(t, second.IsWorldFirst)
	require.Equal(t, first.Explanation, second.Explanation)
	require.Equal(t, 1, predictor.calls)
	require.Len(t, discoveries.claims, 2)
}

func TestPredictFallbackNeverCached(t *testing.T) {
	cache := newMemCacheRepo()
	discoveries := newMemDiscoveryRepo()
	predictor := &stubPredictor{err: ErrReasoningFailed}
	svc := newTestService(cache, discoveries, predictor)

	output, err := svc.Predict(testCtx(), predictInput("alice"))
	require.NoError(t, err)
	require.Equal(t, SourceFallback, output.Source)
	require.True(t, output.IsWorldFirst)
	require.Empty(t, cache.entries)
	require.NotEmpty(t, discoveries.claims)

	// The miss repeats: fallback results must not poison the cache, and the
	// discovery check runs independently on every call.
	again, err := svc.Predict(testCtx(), predictInput("alice"))
	require.NoError(t, err)
	require.Equal(t, SourceFallback, again.Source)
	require.False(t, again.IsWorldFirst)
	require.Empty(t, cache.entries)
	require.Equal(t, 2, predictor.calls)
}

func TestPredictFallbackClaimsDiscoveries(t *testing.T) {
	cache := newMemCacheRepo()
	discoveries := newMemDiscoveryRepo()
	svc := newTestService(cache, discoveries, nil)

	output, err := svc.Predict(testCtx(), predictInput("alice"))
	require.NoError(t, err)
	require.Equal(t, SourceFallback, output.Source)
	require.True(t, output.IsWorldFirst)
	require.NotEmpty(t, discoveries.claims)
	for _, claim := range discoveries.claims {
		require.Equal(t, "alice", claim.DiscoveredBy)
		require.Nil(t, claim.CacheEntryID)
	}

	// Claims are gone for the next actor even though nothing was cached.
	second, err := svc.Predict(testCtx(), predictInput("bob"))
	require.NoError(t, err)
	require.Equal(t, SourceFallback, second.Source)
	require.False(t, second.IsWorldFirst)
}

func TestPredictNilPredictorUsesFallback(t *testing.T) {
	cache := newMemCacheRepo()
	discoveries := newMemDiscoveryRepo()
	svc := newTestService(cache, discoveries, nil)

	output, err := svc.Predict(testCtx(), predictInput("alice"))
	require.NoError(t, err)
	require.Equal(t, SourceFallback, output.Source)
	require.NotEmpty(t, output.Products)
	require.Empty(t, cache.entries)
}

func TestPredictLostInsertRaceAdoptsWinner(t *testing.T) {
	cache := newMemCacheRepo()
	discoveries := newMemDiscoveryRepo()
	predictor := &stubPredictor{result: reasonedResult()}
	svc := newTestService(cache, discoveries, predictor)

	fingerprint := Fingerprint([]string{"Na", "H2O"}, EnvironmentNormal)
	cache.raceWinner = &CacheEntry{
		Fingerprint: fingerprint,
		Reactants:   []string{"H2O", "NA"},
		Environment: EnvironmentNormal,
		Products:    []Product{{Formula: "H2", CommonName: "Hydrogen gas", Quantity: 1}},
		Effects:     []Effect{NewTemperatureChangeEffect(TemperatureChange{DeltaCelsius: 30})},
		Explanation: "winner explanation",
		SubmittedBy: "carol",
	}

	output, err := svc.Predict(testCtx(), predictInput("alice"))
	require.NoError(t, err)
	require.Equal(t, SourceCache, output.Source)
	require.False(t, output.IsWorldFirst)
	require.Equal(t, "winner explanation", output.Explanation)
	require.Empty(t, discoveries.claims)
	require.Len(t, cache.entries, 1)
}

func TestPredictWorldFirstExactlyOnce(t *testing.T) {
	cache := newMemCacheRepo()
	discoveries := newMemDiscoveryRepo()
	predictor := &stubPredictor{result: reasonedResult()}
	svc := newTestService(cache, discoveries, predictor)

	_, err := svc.Predict(testCtx(), predictInput("alice"))
	require.NoError(t, err)

	// Different reactant set, overlapping effects: the claims are already
	// taken so the second actor gets no world first.
	input := PredictInput{
		Reactants:   []ReactantInput{{ChemicalID: 2, Quantity: 1}},
		Environment: EnvironmentPureOxygen,
		ActorID:     "bob",
	}
	output, err := svc.Predict(testCtx(), input)
	require.NoError(t, err)
	require.Equal(t, SourceReasoned, output.Source)
	require.False(t, output.IsWorldFirst)
	require.Len(t, discoveries.claims, 2)
	require.Equal(t, "alice", discoveries.claims["gas_production"].DiscoveredBy)
}

func TestPredictValidation(t *testing.T) {
	svc := newTestService(newMemCacheRepo(), newMemDiscoveryRepo(), nil)

	_, err := svc.Predict(testCtx(), PredictInput{ActorID: "alice"})
	require.Error(t, err)
	require.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = svc.Predict(testCtx(), PredictInput{
		Reactants:   []ReactantInput{{ChemicalID: 1}},
		Environment: "Mars",
	})
	require.Error(t, err)
	require.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestPredictUnknownChemical(t *testing.T) {
	svc := newTestService(newMemCacheRepo(), newMemDiscoveryRepo(), nil)

	_, err := svc.Predict(testCtx(), PredictInput{
		Reactants: []ReactantInput{{ChemicalID: 99}},
	})
	require.Error(t, err)
	require.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestEraseAllClearsCacheAndLedger(t *testing.T) {
	cache := newMemCacheRepo()
	discoveries := newMemDiscoveryRepo()
	predictor := &stubPredictor{result: reasonedResult()}
	svc := newTestService(cache, discoveries, predictor)

	_, err := svc.Predict(testCtx(), predictInput("alice"))
	require.NoError(t, err)
	require.NotEmpty(t, cache.entries)

	require.NoError(t, svc.EraseAll(testCtx()))

	stats, err := svc.Stats(testCtx())
	require.NoError(t, err)
	require.Zero(t, stats.CacheEntries)
	require.Zero(t, stats.Discoveries)
}

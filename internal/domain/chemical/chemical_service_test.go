package chemical

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"chemezy-server/internal/utils/platformerrors"
)

type memRepo struct {
	byFormula map[string]*Chemical
	nextID    uint
	// raceWinner, when set, is inserted by a simulated concurrent writer the
	// moment Create is attempted, which then fails with a conflict.
	raceWinner *Chemical
}

func newMemRepo() *memRepo {
	return &memRepo{byFormula: make(map[string]*Chemical)}
}

func (m *memRepo) FindByID(_ context.Context, id uint) (*Chemical, error) {
	for _, chem := range m.byFormula {
		if chem.ID == id {
			return chem, nil
		}
	}
	return nil, nil
}

func (m *memRepo) FindByFormula(_ context.Context, formula string) (*Chemical, error) {
	return m.byFormula[formula], nil
}

func (m *memRepo) Create(ctx context.Context, chem *Chemical) error {
	if m.raceWinner != nil {
		winner := m.raceWinner
		m.raceWinner = nil
		m.nextID++
		winner.ID = m.nextID
		m.byFormula[winner.MolecularFormula] = winner
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
			"chemical already exists", nil, "")
	}
	if _, ok := m.byFormula[chem.MolecularFormula]; ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
			"chemical already exists", nil, "")
	}
	m.nextID++
	chem.ID = m.nextID
	m.byFormula[chem.MolecularFormula] = chem
	return nil
}

func (m *memRepo) List(_ context.Context) ([]Chemical, error) {
	chemicals := make([]Chemical, 0, len(m.byFormula))
	for _, chem := range m.byFormula {
		chemicals = append(chemicals, *chem)
	}
	return chemicals, nil
}

func (m *memRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.byFormula)), nil
}

type stubGenerator struct {
	props *GeneratedProperties
	err   error
	calls int
}

func (s *stubGenerator) DescribeChemical(_ context.Context, _ string) (*GeneratedProperties, error) {
	s.calls++
	return s.props, s.err
}

func waterProps() *GeneratedProperties {
	return &GeneratedProperties{
		CommonName:    "Water",
		StateOfMatter: "liquid",
		Color:         "colorless",
		Density:       1.0,
		Properties:    map[string]any{"boiling_point_celsius": 100.0},
	}
}

func TestGetOrGenerateReturnsExisting(t *testing.T) {
	repo := newMemRepo()
	repo.byFormula["H2O"] = &Chemical{ID: 1, MolecularFormula: "H2O", CommonName: "Water"}
	generator := &stubGenerator{props: waterProps()}
	svc := NewService(repo, generator, zerolog.Nop())

	chem, err := svc.GetOrGenerate(context.Background(), " H2O ")
	require.NoError(t, err)
	require.Equal(t, uint(1), chem.ID)
	require.Zero(t, generator.calls)
}

func TestGetOrGenerateCreatesOnFirstSight(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &stubGenerator{props: waterProps()}, zerolog.Nop())

	chem, err := svc.GetOrGenerate(context.Background(), "H2O")
	require.NoError(t, err)
	require.Equal(t, "Water", chem.CommonName)
	require.Equal(t, "liquid", chem.StateOfMatter)
	require.NotZero(t, chem.ID)
	require.Len(t, repo.byFormula, 1)
}

func TestGetOrGenerateWithoutGenerator(t *testing.T) {
	svc := NewService(newMemRepo(), nil, zerolog.Nop())

	_, err := svc.GetOrGenerate(context.Background(), "XeF6")
	require.Error(t, err)
	require.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestGetOrGenerateRejectsInvalidProperties(t *testing.T) {
	repo := newMemRepo()
	props := waterProps()
	props.StateOfMatter = "jelly"
	svc := NewService(repo, &stubGenerator{props: props}, zerolog.Nop())

	_, err := svc.GetOrGenerate(context.Background(), "H2O")
	require.Error(t, err)
	require.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeInternal))
	require.Empty(t, repo.byFormula)
}

func TestGetOrGenerateGeneratorFailure(t *testing.T) {
	svc := NewService(newMemRepo(), &stubGenerator{err: errors.New("backend down")}, zerolog.Nop())

	_, err := svc.GetOrGenerate(context.Background(), "H2O")
	require.Error(t, err)
	require.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeInternal))
}

func TestGetOrGenerateEmptyFormula(t *testing.T) {
	svc := NewService(newMemRepo(), nil, zerolog.Nop())

	_, err := svc.GetOrGenerate(context.Background(), "   ")
	require.Error(t, err)
	require.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestGetOrGenerateLostRaceReadsWinner(t *testing.T) {
	repo := newMemRepo()
	repo.raceWinner = &Chemical{MolecularFormula: "H2O", CommonName: "Water (winner)"}
	svc := NewService(repo, &stubGenerator{props: waterProps()}, zerolog.Nop())

	chem, err := svc.GetOrGenerate(context.Background(), "H2O")
	require.NoError(t, err)
	require.Equal(t, "Water (winner)", chem.CommonName)
	require.Len(t, repo.byFormula, 1)
}

func TestFindByIDNotFound(t *testing.T) {
	svc := NewService(newMemRepo(), nil, zerolog.Nop())

	_, err := svc.FindByID(context.Background(), 42)
	require.Error(t, err)
	require.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestResolveOrCreatePlaceholderWithoutGenerator(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil, zerolog.Nop())

	chem, err := svc.ResolveOrCreate(context.Background(), "NaOH", "Sodium hydroxide")
	require.NoError(t, err)
	require.NotNil(t, chem)
	require.NotZero(t, chem.ID)
	require.Equal(t, "Sodium hydroxide", chem.CommonName)
	require.Len(t, repo.byFormula, 1)

	// Second resolution reuses the placeholder row.
	again, err := svc.ResolveOrCreate(context.Background(), "NaOH", "")
	require.NoError(t, err)
	require.Equal(t, chem.ID, again.ID)
	require.Len(t, repo.byFormula, 1)
}

func TestResolveOrCreateUsesGenerator(t *testing.T) {
	repo := newMemRepo()
	generator := &stubGenerator{props: waterProps()}
	svc := NewService(repo, generator, zerolog.Nop())

	chem, err := svc.ResolveOrCreate(context.Background(), "H2O", "")
	require.NoError(t, err)
	require.Equal(t, "Water", chem.CommonName)
	require.Equal(t, 1, generator.calls)
}

func TestResolveOrCreateEmptyFormula(t *testing.T) {
	svc := NewService(newMemRepo(), nil, zerolog.Nop())

	chem, err := svc.ResolveOrCreate(context.Background(), "  ", "x")
	require.NoError(t, err)
	require.Nil(t, chem)
}

func TestSeedSkipsExisting(t *testing.T) {
	repo := newMemRepo()
	repo.byFormula["H2O"] = &Chemical{ID: 1, MolecularFormula: "H2O", CommonName: "Water"}
	svc := NewService(repo, nil, zerolog.Nop())

	err := svc.Seed(context.Background(), []Chemical{
		{MolecularFormula: "H2O", CommonName: "Water duplicate"},
		{MolecularFormula: "NaCl", CommonName: "Table salt"},
	})
	require.NoError(t, err)
	require.Len(t, repo.byFormula, 2)
	require.Equal(t, "Water", repo.byFormula["H2O"].CommonName)

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	chemicals, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, chemicals, 2)
}

package chemical

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"chemezy-server/internal/utils/platformerrors"
)

var validate = validator.New()

// Service handles chemical catalog lookups and lazy generation.
type Service struct {
	repo      Repository
	generator PropertiesGenerator
	log       zerolog.Logger
}

func NewService(repo Repository, generator PropertiesGenerator, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		generator: generator,
		log:       log.With().Str("component", "chemical_service").Logger(),
	}
}

// FindByID retrieves a chemical or a NotFound error.
func (s *Service) FindByID(ctx context.Context, id uint) (*Chemical, error) {
	chem, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load chemical")
	}
	if chem == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("chemical %d not found", id), nil, "")
	}
	return chem, nil
}

// GetOrGenerate returns the catalog entry for a formula, generating and
// persisting one on first sight when a generator is configured. Losing a
// concurrent insert race is recovered by re-reading the winner.
func (s *Service) GetOrGenerate(ctx context.Context, formula string) (*Chemical, error) {
	formula = strings.TrimSpace(formula)
	if formula == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"molecular formula must not be empty", nil, "")
	}

	chem, err := s.repo.FindByFormula(ctx, formula)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load chemical")
	}
	if chem != nil {
		return chem, nil
	}

	if s.generator == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			fmt.Sprintf("chemical %q not found and no generator is configured", formula), nil, "")
	}

	props, err := s.generator.DescribeChemical(ctx, formula)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			fmt.Sprintf("failed to generate properties for %q", formula), err, "")
	}
	if err := validate.Struct(props); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			fmt.Sprintf("generated properties for %q failed validation", formula), err, "")
	}

	chem = &Chemical{
		MolecularFormula: formula,
		CommonName:       props.CommonName,
		StateOfMatter:    props.StateOfMatter,
		Color:            props.Color,
		Density:          props.Density,
		Properties:       props.Properties,
	}
	if err := s.repo.Create(ctx, chem); err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
			winner, findErr := s.repo.FindByFormula(ctx, formula)
			if findErr == nil && winner != nil {
				return winner, nil
			}
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to persist generated chemical")
	}

	s.log.Info().Str("formula", formula).Msg("generated new chemical catalog entry")
	return chem, nil
}

// ResolveOrCreate maps a predicted product formula to a catalog row, creating
// one on first sight. With a generator configured the new row is fully
// described; without one a placeholder row is persisted so the product still
// gets a stable id. Losing an insert race is recovered by re-reading the
// winner.
func (s *Service) ResolveOrCreate(ctx context.Context, formula, commonName string) (*Chemical, error) {
	formula = strings.TrimSpace(formula)
	if formula == "" {
		return nil, nil
	}

	chem, err := s.repo.FindByFormula(ctx, formula)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve chemical")
	}
	if chem != nil {
		return chem, nil
	}

	if s.generator != nil {
		return s.GetOrGenerate(ctx, formula)
	}

	if commonName == "" {
		commonName = formula
	}
	chem = &Chemical{
		MolecularFormula: formula,
		CommonName:       commonName,
		StateOfMatter:    "solid",
		Color:            "unknown",
		Density:          1,
	}
	if err := s.repo.Create(ctx, chem); err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
			winner, findErr := s.repo.FindByFormula(ctx, formula)
			if findErr == nil && winner != nil {
				return winner, nil
			}
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to persist placeholder chemical")
	}

	s.log.Info().Str("formula", formula).Msg("created placeholder chemical for predicted product")
	return chem, nil
}

// Seed inserts the given chemicals, skipping formulas that already exist.
func (s *Service) Seed(ctx context.Context, chemicals []Chemical) error {
	for i := range chemicals {
		chem := chemicals[i]
		existing, err := s.repo.FindByFormula(ctx, chem.MolecularFormula)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check seed chemical")
		}
		if existing != nil {
			continue
		}
		if err := s.repo.Create(ctx, &chem); err != nil {
			if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
				continue
			}
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to seed chemical")
		}
	}
	return nil
}

// List returns the full catalog.
func (s *Service) List(ctx context.Context) ([]Chemical, error) {
	chemicals, err := s.repo.List(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list chemicals")
	}
	return chemicals, nil
}

// Count reports the catalog size.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

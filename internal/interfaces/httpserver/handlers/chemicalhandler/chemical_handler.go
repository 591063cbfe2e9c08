package chemicalhandler

import (
	"context"
	"strings"

	"chemezy-server/internal/domain/chemical"
	"chemezy-server/internal/interfaces/httpserver/responses/chemicalres"
	"chemezy-server/internal/utils/functional"
	"chemezy-server/internal/utils/platformerrors"
)

type ChemicalHandler struct {
	chemicalService *chemical.Service
}

func NewChemicalHandler(chemicalService *chemical.Service) *ChemicalHandler {
	return &ChemicalHandler{
		chemicalService: chemicalService,
	}
}

// GetByFormula returns the catalog entry for a formula, generating it on
// first sight when a properties generator is configured.
func (h *ChemicalHandler) GetByFormula(ctx context.Context, formula string) (*chemicalres.ChemicalResponse, error) {
	formula = strings.TrimSpace(formula)
	if formula == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"molecular formula is required", nil, "")
	}

	chem, err := h.chemicalService.GetOrGenerate(ctx, formula)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to get chemical")
	}
	return chemicalres.NewChemicalResponse(chem), nil
}

// List returns the full catalog.
func (h *ChemicalHandler) List(ctx context.Context) ([]*chemicalres.ChemicalResponse, error) {
	chemicals, err := h.chemicalService.List(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to list chemicals")
	}
	return functional.Map(chemicals, func(c chemical.Chemical) *chemicalres.ChemicalResponse {
		return chemicalres.NewChemicalResponse(&c)
	}), nil
}

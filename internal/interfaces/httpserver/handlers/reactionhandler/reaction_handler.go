package reactionhandler

import (
	"context"

	"chemezy-server/internal/domain/reaction"
	"chemezy-server/internal/interfaces/httpserver/requests/reactionreq"
	"chemezy-server/internal/utils/functional"
	"chemezy-server/internal/utils/platformerrors"
)

type ReactionHandler struct {
	reactionService *reaction.Service
}

func NewReactionHandler(reactionService *reaction.Service) *ReactionHandler {
	return &ReactionHandler{
		reactionService: reactionService,
	}
}

// React runs a prediction for the given actor.
func (h *ReactionHandler) React(
	ctx context.Context,
	actorID string,
	req reactionreq.ReactRequest,
) (*reaction.PredictOutput, error) {
	var environment reaction.Environment
	if req.Environment != "" {
		parsed, err := reaction.ParseEnvironment(req.Environment)
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
				"invalid environment", err, "")
		}
		environment = parsed
	}

	input := reaction.PredictInput{
		Reactants: functional.Map(req.Reactants, func(r reactionreq.ReactantRef) reaction.ReactantInput {
			return reaction.ReactantInput{ChemicalID: r.ChemicalID, Quantity: r.Quantity}
		}),
		Environment: environment,
		CatalystID:  req.CatalystID,
		ActorID:     actorID,
	}

	output, err := h.reactionService.Predict(ctx, input)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to predict reaction")
	}
	return output, nil
}

// Stats reports cache and ledger sizes.
func (h *ReactionHandler) Stats(ctx context.Context) (*reaction.Stats, error) {
	stats, err := h.reactionService.Stats(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to collect stats")
	}
	return stats, nil
}

// Erase wipes the cache and discovery ledger.
func (h *ReactionHandler) Erase(ctx context.Context) error {
	if err := h.reactionService.EraseAll(ctx); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "failed to erase reaction data")
	}
	return nil
}

package reactionroute

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chemezy-server/internal/interfaces/httpserver/handlers/reactionhandler"
	"chemezy-server/internal/interfaces/httpserver/middlewares"
	"chemezy-server/internal/interfaces/httpserver/requests/reactionreq"
	"chemezy-server/internal/interfaces/httpserver/responses"
	"chemezy-server/internal/utils/platformerrors"
)

type ReactionRoute struct {
	handler *reactionhandler.ReactionHandler
}

func NewReactionRoute(handler *reactionhandler.ReactionHandler) *ReactionRoute {
	return &ReactionRoute{
		handler: handler,
	}
}

// RegisterRouter registers reaction routes
func (r *ReactionRoute) RegisterRouter(rg gin.IRouter) {
	reactions := rg.Group("/reactions")
	reactions.POST("/react", r.react)
	reactions.GET("/stats", r.stats)
}

func (r *ReactionRoute) react(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var req reactionreq.ReactRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid request body: "+err.Error(), "")
		return
	}

	actorID := middlewares.ActorFromContext(reqCtx)

	response, err := r.handler.React(ctx, actorID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to predict reaction")
		return
	}

	reqCtx.JSON(http.StatusOK, response)
}

func (r *ReactionRoute) stats(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	stats, err := r.handler.Stats(ctx)
	if err != nil {
		responses.HandleError(reqCtx, err, "Failed to collect stats")
		return
	}

	reqCtx.JSON(http.StatusOK, gin.H{
		"cache_entries": stats.CacheEntries,
		"discoveries":   stats.Discoveries,
	})
}

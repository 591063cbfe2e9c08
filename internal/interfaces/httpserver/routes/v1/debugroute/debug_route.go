package debugroute

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chemezy-server/internal/interfaces/httpserver/handlers/reactionhandler"
	"chemezy-server/internal/interfaces/httpserver/responses"
)

// DebugRoute exposes destructive maintenance endpoints. They are part of the
// API surface for development and game-reset tooling.
type DebugRoute struct {
	handler *reactionhandler.ReactionHandler
}

func NewDebugRoute(handler *reactionhandler.ReactionHandler) *DebugRoute {
	return &DebugRoute{
		handler: handler,
	}
}

// RegisterRouter registers debug routes
func (r *DebugRoute) RegisterRouter(rg gin.IRouter) {
	debug := rg.Group("/debug")
	debug.DELETE("/reactions", r.eraseReactions)
}

func (r *DebugRoute) eraseReactions(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	if err := r.handler.Erase(ctx); err != nil {
		responses.HandleError(reqCtx, err, "Failed to erase reaction data")
		return
	}

	reqCtx.JSON(http.StatusOK, gin.H{"status": "erased"})
}

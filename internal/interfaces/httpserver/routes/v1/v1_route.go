package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chemezy-server/internal/config"
	"chemezy-server/internal/interfaces/httpserver/routes/v1/chemicalroute"
	"chemezy-server/internal/interfaces/httpserver/routes/v1/debugroute"
	"chemezy-server/internal/interfaces/httpserver/routes/v1/reactionroute"
)

type V1Route struct {
	reaction *reactionroute.ReactionRoute
	chemical *chemicalroute.ChemicalRoute
	debug    *debugroute.DebugRoute
}

func NewV1Route(
	reaction *reactionroute.ReactionRoute,
	chemical *chemicalroute.ChemicalRoute,
	debug *debugroute.DebugRoute,
) *V1Route {
	return &V1Route{
		reaction,
		chemical,
		debug,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Router.GET("/healthz", GetHealthz)
	v1Router.GET("/readyz", GetReadyz)

	v1Route.reaction.RegisterRouter(v1Router)
	v1Route.chemical.RegisterRouter(v1Router)
	v1Route.debug.RegisterRouter(v1Router)
}

// GetVersion returns the build version and environment reload timestamp.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":         config.Version,
		"env_reloaded_at": config.GetEnvReloadedAt().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// GetHealthz reports process health.
func GetHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetReadyz reports readiness to accept traffic.
func GetReadyz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

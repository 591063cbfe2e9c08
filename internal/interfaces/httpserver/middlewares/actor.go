package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	playerIDHeader  = "X-Player-Id"
	actorContextKey = "actor_id"
	// DefaultActor attributes anonymous requests. All guests share one
	// identity, so their discoveries are claimed collectively.
	DefaultActor = "guest"
)

// Actor resolves the acting player from the X-Player-Id header, defaulting
// anonymous requests to the shared guest identity.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(playerIDHeader))
		if actor == "" {
			actor = DefaultActor
		}
		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// ActorFromContext returns the acting player id for the request.
func ActorFromContext(c *gin.Context) string {
	if actor := c.GetString(actorContextKey); actor != "" {
		return actor
	}
	return DefaultActor
}
